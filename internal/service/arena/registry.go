package arena

import (
	"context"
	"sync"
	"time"

	"github.com/AlexisMrz/Connect-4-AI-Agent/pkg/uid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

type JobStatus string

const (
	JobRunning JobStatus = "running"
	JobDone    JobStatus = "done"
	JobFailed  JobStatus = "failed"
)

// Job is a series running in the background.
type Job struct {
	ID         string
	Config     Config
	Owner      string
	Status     JobStatus
	Completed  int
	Report     *Report
	Err        string
	CreatedAt  time.Time
	FinishedAt time.Time
	cancel     context.CancelFunc
}

// JobView is a copy of a job safe to hand to callers.
type JobView struct {
	ID         string     `json:"id"`
	Config     Config     `json:"config"`
	Owner      string     `json:"owner,omitempty"`
	Status     JobStatus  `json:"status"`
	Completed  int        `json:"completed"`
	Report     *Report    `json:"report,omitempty"`
	Error      string     `json:"error,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

// Manager owns every arena job
type Manager struct {
	Jobs     map[string]*Job
	maxGames int
	ttl      time.Duration
	mu       sync.Mutex
	wg       sync.WaitGroup
}

// NewManager builds a registry. maxGames <= 0 disables the series size cap.
func NewManager(maxGames int, ttl time.Duration) *Manager {
	return &Manager{
		Jobs:     make(map[string]*Job),
		maxGames: maxGames,
		ttl:      ttl,
	}
}

// Start validates cfg and launches the series in the background.
func (m *Manager) Start(cfg Config, owner string) (JobView, error) {
	if m.maxGames > 0 && cfg.Games > m.maxGames {
		return JobView{}, errors.Errorf("games must be at most %d, got %d", m.maxGames, cfg.Games)
	}
	if err := cfg.Validate(); err != nil {
		return JobView{}, err
	}
	id, err := uid.GenerateJobID()
	if err != nil {
		return JobView{}, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	job := &Job{
		ID:        id,
		Config:    cfg,
		Owner:     owner,
		Status:    JobRunning,
		CreatedAt: time.Now(),
		cancel:    cancel,
	}

	m.mu.Lock()
	m.Jobs[id] = job
	view := job.view()
	m.mu.Unlock()

	log.Info().Str("component", "arena").Str("job", id).Str("owner", owner).
		Str("a", cfg.A).Str("b", cfg.B).Int("games", cfg.Games).Msg("job started")

	m.wg.Add(1)
	go m.run(ctx, job)
	return view, nil
}

func (m *Manager) run(ctx context.Context, job *Job) {
	defer m.wg.Done()
	defer job.cancel()

	report, err := Run(ctx, job.Config, func(GameResult) {
		m.mu.Lock()
		job.Completed++
		m.mu.Unlock()
	})

	m.mu.Lock()
	defer m.mu.Unlock()
	job.FinishedAt = time.Now()
	if err != nil {
		job.Status = JobFailed
		job.Err = err.Error()
		log.Error().Str("component", "arena").Str("job", job.ID).Err(err).Msg("job failed")
		return
	}
	job.Status = JobDone
	job.Report = &report
	log.Info().Str("component", "arena").Str("job", job.ID).Msg("job finished")
}

// Get returns a snapshot of the job.
func (m *Manager) Get(id string) (JobView, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	job, ok := m.Jobs[id]
	if !ok {
		return JobView{}, false
	}
	return job.view(), true
}

// CleanupOldJobs drops finished jobs older than the TTL and cancels jobs that
// have been running for more than four TTLs. It returns how many were removed.
func (m *Manager) CleanupOldJobs() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := 0
	now := time.Now()

	for id, job := range m.Jobs {
		if job.Status != JobRunning {
			if now.Sub(job.FinishedAt) > m.ttl {
				delete(m.Jobs, id)
				count++
			}
		} else if now.Sub(job.CreatedAt) > 4*m.ttl {
			job.cancel()
		}
	}
	return count
}

// Shutdown cancels every running job and waits for them to stop.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	for _, job := range m.Jobs {
		if job.Status == JobRunning {
			job.cancel()
		}
	}
	m.mu.Unlock()
	m.wg.Wait()
}

// view must be called with the manager lock held.
func (j *Job) view() JobView {
	v := JobView{
		ID:        j.ID,
		Config:    j.Config,
		Owner:     j.Owner,
		Status:    j.Status,
		Completed: j.Completed,
		Report:    j.Report,
		Error:     j.Err,
		CreatedAt: j.CreatedAt,
	}
	if !j.FinishedAt.IsZero() {
		finished := j.FinishedAt
		v.FinishedAt = &finished
	}
	return v
}
