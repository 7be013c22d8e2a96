package eval

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"strategyforge/internal/llm"
)

// analystSystemPrompt frames every benchmark case the same way so
// responses are comparable across models.
const analystSystemPrompt = `You are a military strategic analyst participating in a wargaming exercise.
Provide detailed, professional responses that demonstrate:
- Precise geographic and distance calculations
- Structured military reasoning
- Consideration of adversary actions
- Risk assessment and mitigation

Use grid references when discussing positions.
Show your calculations when making quantitative claims.
Structure your response clearly with sections.`

// CaseResult records one benchmark case run.
type CaseResult struct {
	CaseID          string         `json:"case_id"`
	CaseName        string         `json:"case_name"`
	Response        string         `json:"response"`
	Metrics         []MetricResult `json:"metrics"`
	ExpectedFound   []string       `json:"expected_found"`
	ExpectedMissing []string       `json:"expected_missing"`
	LatencyMS       float64        `json:"execution_time_ms"`
	Err             string         `json:"error,omitempty"`
}

// Score is the mean over this case's metrics.
func (c CaseResult) Score() float64 {
	if len(c.Metrics) == 0 {
		return 0
	}
	var sum float64
	for _, m := range c.Metrics {
		sum += m.Score
	}
	return sum / float64(len(c.Metrics))
}

// ExpectedCoverage is the fraction of expected elements present in the
// response. A case with no expected elements counts as full coverage.
func (c CaseResult) ExpectedCoverage() float64 {
	total := len(c.ExpectedFound) + len(c.ExpectedMissing)
	if total == 0 {
		return 1
	}
	return float64(len(c.ExpectedFound)) / float64(total)
}

// Runner executes benchmark suites against a model.
type Runner struct {
	Client llm.Client
	Logger *slog.Logger
	// Temperature for benchmark calls, kept low for reproducibility.
	Temperature float64
	// ContinueOnError records a failed case and moves on instead of
	// aborting the suite.
	ContinueOnError bool
	now             func() time.Time
}

// NewRunner builds a Runner with the conventional 0.3 temperature.
func NewRunner(client llm.Client, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		Client:      client,
		Logger:      logger,
		Temperature: 0.3,
		now:         time.Now,
	}
}

// RunSuite runs every case in the suite and aggregates the results into
// a report. maxCases > 0 limits the number of cases.
func (r *Runner) RunSuite(ctx context.Context, name string, suite Suite, maxCases int) (*Report, error) {
	cases := suite.Cases
	if maxCases > 0 && maxCases < len(cases) {
		cases = cases[:maxCases]
	}
	r.Logger.Info("running benchmark", "suite", suite.Name, "cases", len(cases), "model", r.Client.ModelName())

	report := &Report{
		ModelName:     r.Client.ModelName(),
		BenchmarkName: name,
		TotalCases:    len(cases),
	}
	for i, c := range cases {
		result, err := r.RunCase(ctx, c)
		if err != nil {
			if !r.ContinueOnError {
				return nil, fmt.Errorf("case %s: %w", c.ID, err)
			}
			r.Logger.Warn("benchmark case failed", "case", c.ID, "error", err)
			report.CaseResults = append(report.CaseResults, CaseResult{
				CaseID:   c.ID,
				CaseName: c.Name,
				Err:      err.Error(),
			})
			continue
		}
		r.Logger.Debug("benchmark case done",
			"case", c.ID, "n", i+1, "score", result.Score(), "coverage", result.ExpectedCoverage())
		report.CaseResults = append(report.CaseResults, result)
		report.Metrics = append(report.Metrics, result.Metrics...)
	}
	return report, nil
}

// RunCase runs a single benchmark case.
func (r *Runner) RunCase(ctx context.Context, c Case) (CaseResult, error) {
	start := r.now()
	resp, err := r.Client.Generate(ctx, llm.Request{
		System:      analystSystemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: c.Prompt}},
		Temperature: r.Temperature,
	})
	if err != nil {
		return CaseResult{}, err
	}
	latency := float64(r.now().Sub(start)) / float64(time.Millisecond)

	lower := strings.ToLower(resp.Content)
	var found, missing []string
	for _, el := range c.ExpectedElements {
		if strings.Contains(lower, strings.ToLower(el)) {
			found = append(found, el)
		} else {
			missing = append(missing, el)
		}
	}

	return CaseResult{
		CaseID:          c.ID,
		CaseName:        c.Name,
		Response:        resp.Content,
		Metrics:         EvaluateResponse(resp.Content, nil, nil, c.GroundTruth),
		ExpectedFound:   found,
		ExpectedMissing: missing,
		LatencyMS:       latency,
	}, nil
}

// RunPrompt evaluates a single ad-hoc prompt outside any suite.
func (r *Runner) RunPrompt(ctx context.Context, prompt string) (string, []MetricResult, error) {
	resp, err := r.Client.Generate(ctx, llm.Request{
		System:      analystSystemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: prompt}},
		Temperature: r.Temperature,
	})
	if err != nil {
		return "", nil, err
	}
	return resp.Content, EvaluateResponse(resp.Content, nil, nil, nil), nil
}
