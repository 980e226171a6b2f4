package advanced

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"scratchrobin-hq/advanced/pkg/audit"
	"scratchrobin-hq/advanced/pkg/config"
	"scratchrobin-hq/advanced/pkg/extension"
	"scratchrobin-hq/advanced/pkg/integration"
	"scratchrobin-hq/advanced/pkg/masking"
	"scratchrobin-hq/advanced/pkg/reject"
	"scratchrobin-hq/advanced/pkg/reliability"
	"scratchrobin-hq/advanced/pkg/review"
	"scratchrobin-hq/advanced/pkg/surface"
	"scratchrobin-hq/advanced/pkg/telemetry/metrics"
)

// Service is the AdvancedService facade.
type Service struct {
	mu sync.Mutex

	logger   *slog.Logger
	metrics  *metrics.Collector
	recorder *audit.Recorder
	waiter   reliability.Waiter

	pipeline     *reliability.Pipeline
	masking      *masking.Registry
	reviews      *review.Registry
	extensions   *extension.Registry
	gate         *surface.Gate
	integrations *integration.Validator

	environments map[string]review.Environment
	sandbox      extension.Capabilities
	maxAttempts  int
	backoff      time.Duration
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics records decisions and deliveries on c.
func WithMetrics(c *metrics.Collector) Option {
	return func(s *Service) { s.metrics = c }
}

// WithRecorder mirrors gated decisions to r.
func WithRecorder(r *audit.Recorder) Option {
	return func(s *Service) { s.recorder = r }
}

// WithWaiter hands the advisory delay between CDC attempts to w.
func WithWaiter(w reliability.Waiter) Option {
	return func(s *Service) { s.waiter = w }
}

// New creates a Service from cfg. A nil cfg uses config.DefaultConfig().
// Masking profiles and governance environments are loaded from cfg.
func New(cfg *config.Config, opts ...Option) (*Service, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	s := &Service{
		logger:     slog.Default(),
		masking:    masking.NewRegistry(),
		reviews:    review.NewRegistry(),
		extensions: extension.NewRegistry(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "advanced")

	var pipelineOpts []reliability.Option
	if s.waiter != nil {
		pipelineOpts = append(pipelineOpts, reliability.WithWaiter(s.waiter))
	}
	if s.metrics.Enabled() {
		pipelineOpts = append(pipelineOpts, reliability.WithObserver(s.metrics.CDC()))
	}
	s.pipeline = reliability.NewPipeline(nil, pipelineOpts...)

	if err := s.applyConfig(cfg); err != nil {
		return nil, err
	}
	return s, nil
}

// ApplyConfig replaces the configuration-derived state: masking profiles,
// governance environments, the default sandbox, preview profiles, supported
// integrations and delivery defaults. Registered review actions, extension
// packages and the dead-letter queue are kept. On error nothing changes.
func (s *Service) ApplyConfig(ctx context.Context, cfg *config.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.applyConfig(cfg); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "configuration applied",
		"masking_profiles", s.masking.Len(),
		"environments", len(s.environments),
	)
	return nil
}

func (s *Service) applyConfig(cfg *config.Config) error {
	profiles := make(map[string]masking.Rules, len(cfg.Masking.Profiles))
	for id, rules := range cfg.Masking.Profiles {
		profiles[id] = masking.Rules(rules)
	}
	if err := s.masking.Replace(profiles); err != nil {
		return fmt.Errorf("failed to load masking profiles: %w", err)
	}

	envs := make(map[string]review.Environment, len(cfg.Review.Environments))
	for id, env := range cfg.Review.Environments {
		envs[id] = review.Environment{
			AllowedRoles:     env.AllowedRoles,
			ApprovalRequired: env.ApprovalRequired,
			MinReviewers:     env.MinReviewers,
			AIEnabled:        env.AIEnabled,
			AIAllowedScopes:  env.AIAllowedScopes,
		}
	}
	s.environments = envs

	s.sandbox = extension.NewCapabilities(cfg.Extensions.SandboxAllowlist...)
	s.gate = surface.NewGate(cfg.Surfaces.PreviewProfiles...)
	s.integrations = integration.NewValidator(cfg.Integrations.AIProviders, cfg.Integrations.IssueTrackers)
	s.maxAttempts = cfg.Reliability.MaxAttempts
	s.backoff = cfg.Reliability.Backoff
	return nil
}

// WatchConfig applies every configuration w reloads until ctx is cancelled.
// A reloaded configuration that cannot be applied is logged and skipped.
func (s *Service) WatchConfig(ctx context.Context, w *config.Watcher) error {
	return w.Watch(ctx, func(cfg *config.Config) {
		if err := s.ApplyConfig(ctx, cfg); err != nil {
			s.logger.ErrorContext(ctx, "failed to apply reloaded configuration", "error", err)
		}
	})
}

// observe counts a gated decision and mirrors it to the audit recorder.
// It returns err unchanged.
func (s *Service) observe(ctx context.Context, component, operation, subject string, err error) error {
	s.count(component, err)

	if s.recorder == nil {
		return err
	}
	record := audit.Record{
		Component: component,
		Operation: operation,
		Subject:   subject,
		Outcome:   audit.OutcomeAllowed,
	}
	if r, ok := reject.As(err); ok {
		record.Outcome = audit.OutcomeRejected
		record.Code = r.Code
		record.Message = r.Message
	} else if err != nil {
		record.Outcome = audit.OutcomeRejected
		record.Message = err.Error()
	}
	s.recorder.RecordBestEffort(ctx, record)
	return err
}

// count records decision metrics only.
func (s *Service) count(component string, err error) {
	if !s.metrics.Enabled() {
		return
	}
	outcome := audit.OutcomeAllowed
	if err != nil {
		outcome = audit.OutcomeRejected
		if code := reject.CodeOf(err); code != "" {
			s.metrics.Decisions().RecordReject(code, component)
		}
	}
	s.metrics.Decisions().RecordDecision(component, outcome)
}

// auditWriter returns the recorder as a review.AuditWriter, or nil when
// auditing is off.
func (s *Service) auditWriter() review.AuditWriter {
	if s.recorder == nil {
		return nil
	}
	return s.recorder
}
