package health

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"
)

// Check statuses.
const (
	StatusOK        = "ok"
	StatusUnhealthy = "unhealthy"
)

// Report statuses.
const (
	StatusReady    = "ready"
	StatusDegraded = "degraded"
)

// DefaultCheckTimeout bounds a check when New is given zero.
const DefaultCheckTimeout = 5 * time.Second

// ErrCheckTimeout is reported when a check outlives its timeout.
var ErrCheckTimeout = errors.New("health check timeout")

// CheckFunc returns nil when the component is usable.
type CheckFunc func(ctx context.Context) error

// Result is the outcome of one check.
type Result struct {
	Name     string        `json:"name"`
	Status   string        `json:"status"`
	Message  string        `json:"message,omitempty"`
	Duration time.Duration `json:"duration_ns"`
}

// Report aggregates every check, sorted by name.
type Report struct {
	Status    string    `json:"status"`
	Checks    []Result  `json:"checks"`
	Timestamp time.Time `json:"timestamp"`
}

// Ready reports whether every check passed.
func (r Report) Ready() bool {
	return r.Status == StatusReady
}

// Checker holds named readiness checks.
type Checker struct {
	mu      sync.RWMutex
	checks  map[string]CheckFunc
	timeout time.Duration
}

// New creates a checker. A zero timeout uses DefaultCheckTimeout.
func New(timeout time.Duration) *Checker {
	if timeout <= 0 {
		timeout = DefaultCheckTimeout
	}
	return &Checker{
		checks:  make(map[string]CheckFunc),
		timeout: timeout,
	}
}

// Register adds or replaces the check for name.
func (c *Checker) Register(name string, check CheckFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.checks[name] = check
}

// Names returns the registered check names in sorted order.
func (c *Checker) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.checks))
	for name := range c.checks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run executes every check concurrently. With no checks the report is ready.
func (c *Checker) Run(ctx context.Context) Report {
	c.mu.RLock()
	checks := make(map[string]CheckFunc, len(c.checks))
	for name, check := range c.checks {
		checks[name] = check
	}
	c.mu.RUnlock()

	results := make([]Result, 0, len(checks))
	var mu sync.Mutex
	var wg sync.WaitGroup
	for name, check := range checks {
		wg.Add(1)
		go func(name string, check CheckFunc) {
			defer wg.Done()
			res := c.run(ctx, name, check)
			mu.Lock()
			results = append(results, res)
			mu.Unlock()
		}(name, check)
	}
	wg.Wait()

	sort.Slice(results, func(i, j int) bool { return results[i].Name < results[j].Name })

	status := StatusReady
	for _, res := range results {
		if res.Status != StatusOK {
			status = StatusDegraded
		}
	}
	return Report{Status: status, Checks: results, Timestamp: time.Now().UTC()}
}

func (c *Checker) run(ctx context.Context, name string, check CheckFunc) Result {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	done := make(chan error, 1)
	go func() { done <- check(ctx) }()

	res := Result{Name: name, Status: StatusOK}
	select {
	case err := <-done:
		if err != nil {
			res.Status = StatusUnhealthy
			res.Message = err.Error()
		}
	case <-ctx.Done():
		res.Status = StatusUnhealthy
		res.Message = ErrCheckTimeout.Error()
	}
	res.Duration = time.Since(start)
	return res
}
