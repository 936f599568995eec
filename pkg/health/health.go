package health

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/draccs2211/AUTOCERTIFY-WEB-APPLICATION/pkg/logger"
)

const (
	defaultTimeout = 5 * time.Second

	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

// CheckFunc reports a dependency as healthy by returning nil.
type CheckFunc func(ctx context.Context) error

// Checks maps check names to their functions.
type Checks map[string]CheckFunc

// Response is the JSON body of the readiness endpoint.
type Response struct {
	Checks map[string]Check `json:"checks,omitempty"`
	Status string           `json:"status"`
}

// Check is the outcome of one named check.
type Check struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type config struct {
	logger  *slog.Logger
	timeout time.Duration
}

// Option configures ReadinessHandler.
type Option func(*config)

// WithTimeout bounds the whole readiness run. Default: 5s.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger sets the logger for failed checks.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

func newConfig(opts ...Option) *config {
	cfg := &config{timeout: defaultTimeout, logger: logger.NewNope()}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Run executes checks concurrently and aggregates the outcome.
func Run(ctx context.Context, checks Checks, opts ...Option) *Response {
	return runChecks(ctx, checks, newConfig(opts...))
}

func runChecks(ctx context.Context, checks Checks, cfg *config) *Response {
	if len(checks) == 0 {
		return &Response{Status: StatusHealthy}
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.timeout)
	defer cancel()

	var (
		mu      sync.Mutex
		results = make(map[string]Check, len(checks))
		status  = StatusHealthy
	)

	// Checks never return errors to the group so that every check runs to completion.
	var g errgroup.Group
	for name, check := range checks {
		g.Go(func() error {
			err := runOne(ctx, check)

			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				results[name] = Check{Status: StatusHealthy}
				return nil
			}
			status = StatusUnhealthy
			results[name] = Check{Status: StatusUnhealthy, Error: err.Error()}
			cfg.logger.WarnContext(ctx, "health check failed",
				slog.String("check", name),
				slog.String("error", err.Error()),
			)
			return nil
		})
	}
	_ = g.Wait()

	return &Response{Status: status, Checks: results}
}

func runOne(ctx context.Context, check CheckFunc) error {
	done := make(chan error, 1)
	go func() { done <- check(ctx) }()

	select {
	case err := <-done:
		if err != nil && ctx.Err() != nil {
			return ErrCheckTimeout
		}
		if err != nil {
			return fmt.Errorf("%w: %v", ErrCheckFailed, err)
		}
		return nil
	case <-ctx.Done():
		return ErrCheckTimeout
	}
}

// DirWritable checks that dir exists and a file can be created in it.
func DirWritable(dir string) CheckFunc {
	return func(context.Context) error {
		info, err := os.Stat(dir)
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return fmt.Errorf("%s is not a directory", dir)
		}
		f, err := os.CreateTemp(dir, ".health-*")
		if err != nil {
			return err
		}
		name := f.Name()
		return errors.Join(f.Close(), os.Remove(name))
	}
}

// FileExists checks that path is a regular file.
func FileExists(path string) CheckFunc {
	return func(context.Context) error {
		info, err := os.Stat(path)
		if err != nil {
			return err
		}
		if !info.Mode().IsRegular() {
			return fmt.Errorf("%s is not a regular file", path)
		}
		return nil
	}
}
