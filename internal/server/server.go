// REST and SSE API exposing scenarios, benchmarks and simulation jobs
package server

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"strategyforge/internal/eval"
	"strategyforge/internal/game"
	"strategyforge/internal/llm"
	"strategyforge/internal/scenario"
	"strategyforge/internal/tools"
)

//go:embed templates/index.html
var content embed.FS

// ClientFactory builds an LLM client for a requested model name.
type ClientFactory func(model string) llm.Client

// Server serves the wargaming API.
type Server struct {
	Scenarios  *scenario.Registry
	Benchmarks *eval.Registry
	NewClient  ClientFactory
	Logger     *slog.Logger

	jobs *jobStore
	tpl  *template.Template
	// streamPoll is the SSE poll interval, shortened in tests.
	streamPoll time.Duration
}

// NewServer wires the API against the given model factory.
func NewServer(newClient ClientFactory, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	tpl := template.Must(template.New("index.html").ParseFS(content, "templates/index.html"))
	return &Server{
		Scenarios:  scenario.NewRegistry(),
		Benchmarks: eval.NewRegistry(),
		NewClient:  newClient,
		Logger:     logger,
		jobs:       newJobStore(),
		tpl:        tpl,
		streamPoll: 500 * time.Millisecond,
	}
}

// Handler returns the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /api/scenarios", s.handleListScenarios)
	mux.HandleFunc("GET /api/scenarios/{id}", s.handleGetScenario)
	mux.HandleFunc("GET /api/map/{id}", s.handleMapData)
	mux.HandleFunc("GET /api/benchmarks", s.handleListBenchmarks)
	mux.HandleFunc("GET /api/benchmarks/{name}", s.handleGetBenchmark)
	mux.HandleFunc("GET /api/metrics", s.handleMetricDefinitions)
	mux.HandleFunc("POST /api/evaluate", s.handleStartEvaluation)
	mux.HandleFunc("GET /api/evaluate/{id}", s.handleJobStatus)
	mux.HandleFunc("POST /api/simulation/start", s.handleStartSimulation)
	mux.HandleFunc("GET /api/simulation/{id}", s.handleSimulationStatus)
	mux.HandleFunc("GET /api/simulation/{id}/stream", s.handleStream)
	return mux
}

// Start runs the HTTP server until it fails.
func (s *Server) Start(addr string) error {
	s.Logger.Info("api listening", "addr", addr)
	return http.ListenAndServe(addr, s.Handler())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, format string, args ...any) {
	writeJSON(w, status, map[string]string{"detail": fmt.Sprintf(format, args...)})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := struct {
		Scenarios  []string
		Benchmarks []eval.SuiteInfo
	}{
		Scenarios:  s.Scenarios.IDs(),
		Benchmarks: s.Benchmarks.List(),
	}
	s.tpl.Execute(w, data)
}

func (s *Server) handleListScenarios(w http.ResponseWriter, r *http.Request) {
	type info struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Description string `json:"description"`
		BlueUnits   int    `json:"blue_units"`
		RedUnits    int    `json:"red_units"`
		Objectives  int    `json:"objectives"`
	}
	var out []info
	for _, id := range s.Scenarios.IDs() {
		sc, err := s.Scenarios.Get(id)
		if err != nil {
			continue
		}
		out = append(out, info{
			ID:          id,
			Name:        sc.Name,
			Description: sc.Description,
			BlueUnits:   len(sc.BlueForce.Units),
			RedUnits:    len(sc.RedForce.Units),
			Objectives:  len(sc.Objectives),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"scenarios": out})
}

func (s *Server) handleGetScenario(w http.ResponseWriter, r *http.Request) {
	sc, err := s.Scenarios.Get(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "%v", err)
		return
	}
	writeJSON(w, http.StatusOK, sc)
}

func (s *Server) handleMapData(w http.ResponseWriter, r *http.Request) {
	sc, err := s.Scenarios.Get(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "%v", err)
		return
	}
	writeJSON(w, http.StatusOK, mapFeatures(sc))
}

func (s *Server) handleListBenchmarks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"benchmarks": s.Benchmarks.List()})
}

func (s *Server) handleGetBenchmark(w http.ResponseWriter, r *http.Request) {
	suite, err := s.Benchmarks.Get(r.PathValue("name"))
	if err != nil {
		writeError(w, http.StatusNotFound, "%v", err)
		return
	}
	type casePreview struct {
		ID            string        `json:"id"`
		Name          string        `json:"name"`
		Category      eval.Category `json:"category"`
		Difficulty    string        `json:"difficulty"`
		PromptPreview string        `json:"prompt_preview"`
	}
	out := struct {
		Name        string        `json:"name"`
		Description string        `json:"description"`
		Cases       []casePreview `json:"cases"`
	}{Name: suite.Name, Description: suite.Description}
	for _, c := range suite.Cases {
		preview := c.Prompt
		if len(preview) > 200 {
			preview = preview[:200] + "..."
		}
		out.Cases = append(out.Cases, casePreview{
			ID: c.ID, Name: c.Name, Category: c.Category,
			Difficulty: c.Difficulty, PromptPreview: preview,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

type evaluationRequest struct {
	Benchmark string `json:"benchmark"`
	Model     string `json:"model"`
}

func (s *Server) handleStartEvaluation(w http.ResponseWriter, r *http.Request) {
	var req evaluationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: %v", err)
		return
	}
	if req.Benchmark == "" {
		req.Benchmark = "quick"
	}
	suite, err := s.Benchmarks.Get(req.Benchmark)
	if err != nil {
		writeError(w, http.StatusNotFound, "%v", err)
		return
	}

	job := s.jobs.create("", req.Model, 0)
	go s.runEvaluation(job.ID, req.Benchmark, suite, req.Model)

	writeJSON(w, http.StatusOK, map[string]string{
		"job_id":  job.ID,
		"status":  "started",
		"message": fmt.Sprintf("Evaluation started with benchmark %q", req.Benchmark),
	})
}

func (s *Server) runEvaluation(jobID, name string, suite eval.Suite, model string) {
	s.jobs.update(jobID, func(j *Job) { j.Status = StatusRunning })

	runner := eval.NewRunner(s.NewClient(model), s.Logger)
	report, err := runner.RunSuite(context.Background(), name, suite, 0)
	if err != nil {
		s.Logger.Warn("evaluation job failed", "job", jobID, "error", err)
		s.jobs.update(jobID, func(j *Job) {
			j.Status = StatusFailed
			j.Error = err.Error()
		})
		return
	}
	s.jobs.update(jobID, func(j *Job) {
		j.Status = StatusCompleted
		j.Report = report
	})
}

func (s *Server) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	job, ok := s.jobs.get(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "job %q not found", r.PathValue("id"))
		return
	}
	writeJSON(w, http.StatusOK, job)
}

type simulationRequest struct {
	Scenario string `json:"scenario"`
	Turns    int    `json:"turns"`
	Model    string `json:"model"`
}

func (s *Server) handleStartSimulation(w http.ResponseWriter, r *http.Request) {
	var req simulationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: %v", err)
		return
	}
	if req.Scenario == "" {
		req.Scenario = "taiwan_strait"
	}
	if req.Turns <= 0 {
		req.Turns = game.DefaultMaxTurns
	}
	sc, err := s.Scenarios.Get(req.Scenario)
	if err != nil {
		writeError(w, http.StatusNotFound, "%v", err)
		return
	}

	job := s.jobs.create(req.Scenario, req.Model, req.Turns)
	go s.runSimulation(job.ID, sc, req.Turns, req.Model)

	writeJSON(w, http.StatusOK, map[string]string{
		"job_id":  job.ID,
		"status":  "started",
		"message": fmt.Sprintf("Simulation started for scenario %q with %d turns", req.Scenario, req.Turns),
	})
}

func (s *Server) runSimulation(jobID string, sc *scenario.Scenario, maxTurns int, model string) {
	s.jobs.update(jobID, func(j *Job) { j.Status = StatusRunning })

	o := game.NewOrchestrator(s.NewClient(model), tools.NewRegistry(), nil, nil, s.Logger, 0.7)
	state := game.NewState(sc, maxTurns)
	snaps := o.Subscribe()
	done := make(chan error, 1)
	go func() { done <- o.Run(context.Background(), state) }()

	for snap := range snaps {
		s.jobs.update(jobID, func(j *Job) {
			j.Turn = snap.TurnNumber
			j.Messages = append([]game.Message(nil), snap.Messages...)
			j.Winner = snap.Winner
		})
	}
	if err := <-done; err != nil {
		s.Logger.Warn("simulation job failed", "job", jobID, "error", err)
		s.jobs.update(jobID, func(j *Job) {
			j.Status = StatusFailed
			j.Error = err.Error()
		})
		return
	}
	s.jobs.update(jobID, func(j *Job) { j.Status = StatusCompleted })
}

func (s *Server) handleSimulationStatus(w http.ResponseWriter, r *http.Request) {
	job, ok := s.jobs.get(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "simulation job %q not found", r.PathValue("id"))
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Job
		MessageCount int `json:"message_count"`
	}{Job: job, MessageCount: len(job.Messages)})
}

// handleStream pushes job messages to the client as Server-Sent Events
// until the job finishes or the client disconnects.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, ok := s.jobs.get(id); !ok {
		writeError(w, http.StatusNotFound, "simulation job %q not found", id)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	ticker := time.NewTicker(s.streamPoll)
	defer ticker.Stop()

	sent := 0
	for {
		job, ok := s.jobs.get(id)
		if !ok {
			sendEvent(w, map[string]any{"type": "error", "message": "job not found"})
			flusher.Flush()
			return
		}
		for _, msg := range job.Messages[sent:] {
			sendEvent(w, map[string]any{
				"type":    "message",
				"agent":   msg.Agent,
				"content": msg.Content,
				"turn":    msg.Turn,
			})
		}
		sent = len(job.Messages)

		switch job.Status {
		case StatusCompleted:
			sendEvent(w, map[string]any{"type": "status", "status": "completed", "turn": job.Turn, "winner": job.Winner})
			flusher.Flush()
			return
		case StatusFailed:
			sendEvent(w, map[string]any{"type": "error", "message": job.Error})
			flusher.Flush()
			return
		}
		flusher.Flush()

		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
		}
	}
}

func sendEvent(w http.ResponseWriter, payload map[string]any) {
	data, _ := json.Marshal(payload)
	fmt.Fprintf(w, "data: %s\n\n", data)
}

func (s *Server) handleMetricDefinitions(w http.ResponseWriter, r *http.Request) {
	type metricDef struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	type categoryDef struct {
		ID          string      `json:"id"`
		Name        string      `json:"name"`
		Description string      `json:"description"`
		Metrics     []metricDef `json:"metrics"`
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"categories": []categoryDef{
			{
				ID:          "geospatial",
				Name:        "Geospatial Reasoning",
				Description: "Ability to reason about distances, terrain, and geography",
				Metrics: []metricDef{
					{"Distance Accuracy", "Correct distance calculations"},
					{"Grid Reference Usage", "Use of proper military grid references"},
					{"Terrain Awareness", "Understanding of terrain effects"},
				},
			},
			{
				ID:          "strategic",
				Name:        "Strategic Coherence",
				Description: "Quality of strategic decision-making",
				Metrics: []metricDef{
					{"Objective Alignment", "Decisions support stated objectives"},
					{"Reasoning Structure", "Logical flow of reasoning"},
					{"Decision Consistency", "Consistency across turns"},
				},
			},
			{
				ID:          "adversarial",
				Name:        "Adversarial Reasoning",
				Description: "Ability to model and counter opponent actions",
				Metrics: []metricDef{
					{"Opponent Modeling", "Anticipation of enemy moves"},
					{"Multi-Step Planning", "Planning multiple moves ahead"},
				},
			},
		},
	})
}

// mapFeatures renders a scenario as a GeoJSON feature collection for
// the map frontend. Coordinates are [lon, lat] per the GeoJSON spec.
func mapFeatures(sc *scenario.Scenario) map[string]any {
	var features []map[string]any
	addUnit := func(u scenario.Unit, force string) {
		strength := 100
		if u.Status != scenario.StatusReady {
			strength = 50
		}
		features = append(features, map[string]any{
			"type": "Feature",
			"properties": map[string]any{
				"id":           u.ID,
				"name":         u.Name,
				"type":         u.Domain,
				"force":        force,
				"strength":     strength,
				"capabilities": u.Capabilities,
			},
			"geometry": map[string]any{
				"type":        "Point",
				"coordinates": []float64{u.Position.Lon, u.Position.Lat},
			},
		})
	}
	for _, u := range sc.BlueForce.Units {
		addUnit(u, "blue")
	}
	for _, u := range sc.RedForce.Units {
		addUnit(u, "red")
	}
	for _, obj := range sc.Objectives {
		features = append(features, map[string]any{
			"type": "Feature",
			"properties": map[string]any{
				"id":    obj.ID,
				"name":  obj.Name,
				"type":  "objective",
				"value": obj.Value,
				"owner": obj.Owner,
			},
			"geometry": map[string]any{
				"type":        "Point",
				"coordinates": []float64{obj.Position.Lon, obj.Position.Lat},
			},
		})
	}
	center := []float64{
		(sc.Bounds.North + sc.Bounds.South) / 2,
		(sc.Bounds.East + sc.Bounds.West) / 2,
	}
	return map[string]any{
		"type":     "FeatureCollection",
		"features": features,
		"bounds":   map[string]any{"center": center, "zoom": 7},
	}
}
