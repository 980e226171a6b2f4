package advanced

import (
	"context"

	"scratchrobin-hq/advanced/pkg/reject"
	"scratchrobin-hq/advanced/pkg/review"
	"scratchrobin-hq/advanced/pkg/telemetry/logging"
)

// CheckReviewQuorum fails with SRB1-R-7301 when approved < min or min < 1.
func (s *Service) CheckReviewQuorum(ctx context.Context, approved, min int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.observe(ctx, review.Component, "check_review_quorum", "", review.CheckQuorum(approved, min))
}

// RequireChangeAdvisory fails with SRB1-R-7305 unless state is "Approved".
func (s *Service) RequireChangeAdvisory(ctx context.Context, actionID, state string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.observe(ctx, review.Component, "require_change_advisory", actionID, review.RequireAdvisory(actionID, state))
}

// EnforceReviewPolicy checks quorum, then the advisory state.
func (s *Service) EnforceReviewPolicy(ctx context.Context, approved, min int, actionID, state string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := review.EnforcePolicy(approved, min, actionID, state)
	return s.observe(ctx, review.Component, "enforce_review_policy", actionID, err)
}

// CreateReviewAction registers actionID with an advisory state, resetting
// any approvals it had.
func (s *Service) CreateReviewAction(ctx context.Context, actionID, state string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.observe(ctx, review.Component, "create_review_action", actionID, s.reviews.Create(actionID, state))
}

// ApproveReviewAction records reviewerID's approval. Repeat approvals count once.
func (s *Service) ApproveReviewAction(ctx context.Context, actionID, reviewerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.observe(ctx, review.Component, "approve_review_action", actionID, s.reviews.Approve(actionID, reviewerID))
}

// SetChangeAdvisoryState updates the advisory state of a registered action.
func (s *Service) SetChangeAdvisoryState(ctx context.Context, actionID, state string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.observe(ctx, review.Component, "set_advisory_state", actionID, s.reviews.SetAdvisoryState(actionID, state))
}

// EnforceReviewAction applies the review policy to a registered action.
func (s *Service) EnforceReviewAction(ctx context.Context, actionID string, min int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.observe(ctx, review.Component, "enforce_review_action", actionID, s.reviews.Enforce(actionID, min))
}

// ReviewApprovers returns the sorted approvers of actionID.
func (s *Service) ReviewApprovers(actionID string) ([]string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reviews.Approvers(actionID)
}

// EvaluateGovernance decides input against its configured environment. An
// unconfigured environment is denied.
func (s *Service) EvaluateGovernance(ctx context.Context, input review.GovernanceInput) review.Decision {
	s.mu.Lock()
	defer s.mu.Unlock()

	env, ok := s.environments[input.EnvironmentID]
	if !ok {
		return review.Decision{Reason: review.ReasonUnknownEnvironment}
	}
	decision := review.EvaluateGovernance(input, env)
	s.logger.DebugContext(ctx, "governance evaluated",
		"actor", input.Actor,
		"environment", input.EnvironmentID,
		"action", input.Action,
		"allowed", decision.Allowed,
		"reason", decision.Reason,
	)
	return decision
}

// ExecuteGovernedOperation runs op when governance allows input. The
// decision is always written to the audit recorder first; when
// input.RequireAudit is set a failed write aborts with SRB1-R-3201. A denial
// is SRB1-R-3202.
func (s *Service) ExecuteGovernedOperation(ctx context.Context, input review.GovernanceInput, op func(context.Context) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx = logging.WithActor(ctx, input.Actor)
	ctx = logging.WithEnvironment(ctx, input.EnvironmentID)
	ctx = logging.WithOperation(ctx, input.Action)

	var err error
	if env, ok := s.environments[input.EnvironmentID]; ok {
		err = review.ExecuteGoverned(ctx, input, env, s.auditWriter(), op)
	} else {
		err = review.ExecuteUnknownEnvironment(ctx, input, s.auditWriter())
	}
	s.count(review.GovernanceComponent, err)
	if err != nil {
		s.logger.InfoContext(ctx, "governed operation failed", "code", reject.CodeOf(err))
	}
	return err
}
