package server

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"strategyforge/internal/eval"
	"strategyforge/internal/game"
)

// JobStatus is the lifecycle state of a background job.
type JobStatus string

const (
	StatusStarting  JobStatus = "starting"
	StatusRunning   JobStatus = "running"
	StatusCompleted JobStatus = "completed"
	StatusFailed    JobStatus = "failed"
)

// Job tracks one background simulation or evaluation run.
type Job struct {
	ID        string         `json:"job_id"`
	Status    JobStatus      `json:"status"`
	Turn      int            `json:"turn"`
	MaxTurns  int            `json:"max_turns,omitempty"`
	Scenario  string         `json:"scenario,omitempty"`
	Model     string         `json:"model,omitempty"`
	Messages  []game.Message `json:"messages,omitempty"`
	Winner    game.Winner    `json:"winner,omitempty"`
	Report    *eval.Report   `json:"result,omitempty"`
	Error     string         `json:"error,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// jobStore is an in-memory job registry shared between the HTTP
// handlers and the background runners.
type jobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
}

func newJobStore() *jobStore {
	return &jobStore{jobs: make(map[string]*Job)}
}

// create registers a new job with a short unique id.
func (s *jobStore) create(scenario, model string, maxTurns int) *Job {
	job := &Job{
		ID:        uuid.NewString()[:8],
		Status:    StatusStarting,
		Scenario:  scenario,
		Model:     model,
		MaxTurns:  maxTurns,
		CreatedAt: time.Now(),
	}
	s.mu.Lock()
	s.jobs[job.ID] = job
	s.mu.Unlock()
	return job
}

// get returns a copy of the job so readers never race the runner.
func (s *jobStore) get(id string) (Job, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[id]
	if !ok {
		return Job{}, false
	}
	cp := *job
	cp.Messages = append([]game.Message(nil), job.Messages...)
	return cp, true
}

// update applies fn to the job under the store lock.
func (s *jobStore) update(id string, fn func(*Job)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if job, ok := s.jobs[id]; ok {
		fn(job)
	}
}
