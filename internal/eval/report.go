package eval

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Report aggregates every metric result from an evaluation run. The
// overall score is the pooled mean across all metric results, so a
// category with more metrics carries proportionally more weight.
type Report struct {
	ModelName     string         `json:"model_name"`
	BenchmarkName string         `json:"benchmark_name"`
	TotalCases    int            `json:"total_cases"`
	Metrics       []MetricResult `json:"metrics"`
	CaseResults   []CaseResult   `json:"case_results,omitempty"`
}

// OverallScore is the mean over all metric results, in [0,1].
func (r *Report) OverallScore() float64 {
	if len(r.Metrics) == 0 {
		return 0
	}
	var sum float64
	for _, m := range r.Metrics {
		sum += m.Score
	}
	return sum / float64(len(r.Metrics))
}

// OverallPercentage is the overall score scaled to percent.
func (r *Report) OverallPercentage() float64 {
	return r.OverallScore() * 100
}

// CategoryScores averages metric scores per category.
func (r *Report) CategoryScores() map[Category]float64 {
	sums := make(map[Category]float64)
	counts := make(map[Category]int)
	for _, m := range r.Metrics {
		sums[m.Category] += m.Score
		counts[m.Category]++
	}
	out := make(map[Category]float64, len(sums))
	for cat, sum := range sums {
		out[cat] = sum / float64(counts[cat])
	}
	return out
}

// Summary renders a human-readable report.
func (r *Report) Summary() string {
	var b strings.Builder
	b.WriteString("=== Evaluation Report ===\n")
	fmt.Fprintf(&b, "Model: %s\n", r.ModelName)
	fmt.Fprintf(&b, "Benchmark: %s\n", r.BenchmarkName)
	fmt.Fprintf(&b, "Cases: %d\n\n", r.TotalCases)
	fmt.Fprintf(&b, "Overall Score: %.1f%%\n\n", r.OverallPercentage())

	b.WriteString("Category Breakdown:\n")
	cats := r.CategoryScores()
	names := make([]string, 0, len(cats))
	for cat := range cats {
		names = append(names, string(cat))
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&b, "  %s%s: %.1f%%\n",
			strings.ToUpper(name[:1]), name[1:], cats[Category(name)]*100)
	}

	b.WriteString("\nIndividual Metrics:\n")
	for _, m := range r.Metrics {
		fmt.Fprintf(&b, "  [%s] %s: %.1f%%\n", m.Grade(), m.Name, m.Percentage())
		if m.Details != "" {
			fmt.Fprintf(&b, "      %s\n", m.Details)
		}
	}
	return b.String()
}

// Save writes the report as indented JSON, creating parent directories.
func (r *Report) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// LoadReport reads a report saved by Save.
func LoadReport(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse report %s: %w", path, err)
	}
	return &r, nil
}

// CategoryComparison pairs one category's score from each report.
type CategoryComparison struct {
	Model1 float64 `json:"model_1"`
	Model2 float64 `json:"model_2"`
}

// Comparison is the result of comparing two reports.
type Comparison struct {
	Model1     string                          `json:"model_1"`
	Model2     string                          `json:"model_2"`
	Score1     float64                         `json:"score_1"`
	Score2     float64                         `json:"score_2"`
	Difference float64                         `json:"difference"`
	Categories map[Category]CategoryComparison `json:"category_comparison"`
}

// Compare produces a side-by-side comparison of two reports. Difference
// is report1 minus report2 in percentage points.
func Compare(r1, r2 *Report) Comparison {
	c1 := r1.CategoryScores()
	c2 := r2.CategoryScores()
	cats := make(map[Category]CategoryComparison)
	for cat := range c1 {
		cats[cat] = CategoryComparison{Model1: c1[cat], Model2: c2[cat]}
	}
	for cat := range c2 {
		if _, ok := cats[cat]; !ok {
			cats[cat] = CategoryComparison{Model2: c2[cat]}
		}
	}
	return Comparison{
		Model1:     r1.ModelName,
		Model2:     r2.ModelName,
		Score1:     r1.OverallPercentage(),
		Score2:     r2.OverallPercentage(),
		Difference: r1.OverallPercentage() - r2.OverallPercentage(),
		Categories: cats,
	}
}
