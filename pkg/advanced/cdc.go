package advanced

import (
	"context"
	"time"

	"scratchrobin-hq/advanced/pkg/reliability"
)

// RunCdcEvent delivers payload with up to maxAttempts publish calls and a
// fixed advisory backoff between them. An exhausted payload is appended to
// the dead-letter queue, passed to deadLetter once and reported as
// SRB1-R-7004.
func (s *Service) RunCdcEvent(ctx context.Context, payload string, maxAttempts int, backoff time.Duration, publish reliability.PublishFunc, deadLetter reliability.DeadLetterFunc) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	status, err := s.pipeline.RunEvent(payload, maxAttempts, backoff, publish, deadLetter)
	if err != nil {
		s.logger.WarnContext(ctx, "cdc event dead-lettered", "attempts", maxAttempts)
	}
	return status, s.observe(ctx, reliability.Component, "run_cdc_event", "", err)
}

// RunCdcEventDefault is RunCdcEvent with the configured attempts and backoff.
func (s *Service) RunCdcEventDefault(ctx context.Context, payload string, publish reliability.PublishFunc, deadLetter reliability.DeadLetterFunc) (string, error) {
	attempts, backoff := s.DeliveryDefaults()
	return s.RunCdcEvent(ctx, payload, attempts, backoff, publish, deadLetter)
}

// RunCdcBatch delivers events in input order and never fails; exhausted
// events land in the dead-letter queue.
func (s *Service) RunCdcBatch(ctx context.Context, events []string, maxAttempts int, backoff time.Duration, publish reliability.PublishFunc) reliability.BatchResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := s.pipeline.RunBatch(events, maxAttempts, backoff, publish)
	s.logger.InfoContext(ctx, "cdc batch delivered",
		"events", len(events),
		"published", res.Published,
		"dead_lettered", res.DeadLettered,
	)
	return res
}

// DeadLetterQueue returns a copy of every payload dead-lettered so far, in
// capture order.
func (s *Service) DeadLetterQueue() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pipeline.Queue().Snapshot()
}

// DeliveryDefaults returns the configured attempts and backoff.
func (s *Service) DeliveryDefaults() (int, time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maxAttempts, s.backoff
}
