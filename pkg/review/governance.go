package review

import (
	"context"
	"slices"

	"scratchrobin-hq/advanced/pkg/audit"
	"scratchrobin-hq/advanced/pkg/reject"
)

// GovernanceComponent is the component name on governance rejects and audit records.
const GovernanceComponent = "governance"

// Denial reasons.
const (
	ReasonAllowed            = "allowed"
	ReasonRoleNotAllowed     = "actor role not allowed"
	ReasonApprovalsTooFew    = "approval count below minimum"
	ReasonAIDisabled         = "AI actions disabled"
	ReasonAIScopeDenied      = "AI scope denied"
	ReasonUnknownEnvironment = "environment not configured"
)

// Environment is the governance policy of one deployment environment.
type Environment struct {
	AllowedRoles     []string
	ApprovalRequired bool
	MinReviewers     int
	AIEnabled        bool
	AIAllowedScopes  []string
}

// GovernanceInput describes an attempted operation.
type GovernanceInput struct {
	Actor         string
	ActorRole     string
	Action        string
	TargetID      string
	EnvironmentID string
	Approvals     int

	// AIAction marks operations initiated by an AI assistant.
	AIAction bool
	AIScope  string

	// RequireAudit makes the audit write a precondition of the operation.
	RequireAudit bool
}

// Decision is the outcome of a governance evaluation.
type Decision struct {
	Allowed bool
	Reason  string
}

// EvaluateGovernance decides whether input is allowed in env. Checks run in
// order: role, approvals, AI enablement, AI scope. An empty AIScope is not
// checked against the allowed scopes.
func EvaluateGovernance(input GovernanceInput, env Environment) Decision {
	if !slices.Contains(env.AllowedRoles, input.ActorRole) {
		return Decision{Reason: ReasonRoleNotAllowed}
	}
	if env.ApprovalRequired && input.Approvals < env.MinReviewers {
		return Decision{Reason: ReasonApprovalsTooFew}
	}
	if input.AIAction {
		if !env.AIEnabled {
			return Decision{Reason: ReasonAIDisabled}
		}
		if input.AIScope != "" && len(env.AIAllowedScopes) > 0 && !slices.Contains(env.AIAllowedScopes, input.AIScope) {
			return Decision{Reason: ReasonAIScopeDenied}
		}
	}
	return Decision{Allowed: true, Reason: ReasonAllowed}
}

// AuditWriter is the audit sink used by ExecuteGoverned. *audit.Recorder
// implements it.
type AuditWriter interface {
	RecordRequired(ctx context.Context, record audit.Record) (*audit.Record, error)
	RecordBestEffort(ctx context.Context, record audit.Record)
}

// ExecuteGoverned evaluates input, writes an audit record of the decision and
// runs op when allowed. A failed required audit write yields SRB1-R-3201 and
// op is not run; a denial yields SRB1-R-3202 with the reason as detail.
// Otherwise the error of op is returned unchanged.
func ExecuteGoverned(ctx context.Context, input GovernanceInput, env Environment, sink AuditWriter, op func(context.Context) error) error {
	return executeDecision(ctx, input, EvaluateGovernance(input, env), sink, op)
}

// ExecuteUnknownEnvironment handles an input whose environment has no policy:
// the decision is always denied with ReasonUnknownEnvironment.
func ExecuteUnknownEnvironment(ctx context.Context, input GovernanceInput, sink AuditWriter) error {
	return executeDecision(ctx, input, Decision{Reason: ReasonUnknownEnvironment}, sink, nil)
}

func executeDecision(ctx context.Context, input GovernanceInput, decision Decision, sink AuditWriter, op func(context.Context) error) error {
	record := audit.Record{
		Component: GovernanceComponent,
		Operation: input.Action,
		Subject:   input.TargetID,
		Outcome:   audit.OutcomeAllowed,
		Message:   decision.Reason,
	}
	if !decision.Allowed {
		record.Outcome = audit.OutcomeRejected
		record.Code = reject.CodeGovernanceDenied
	}

	if input.RequireAudit {
		if sink == nil {
			return auditFailed(input.Action)
		}
		if _, err := sink.RecordRequired(ctx, record); err != nil {
			return auditFailed(input.Action)
		}
	} else if sink != nil {
		sink.RecordBestEffort(ctx, record)
	}

	if !decision.Allowed {
		return reject.New(reject.CodeGovernanceDenied, "governance policy denied action", GovernanceComponent, "execute_governed_operation").
			WithDetail(decision.Reason)
	}
	if op == nil {
		return nil
	}
	return op(ctx)
}

func auditFailed(action string) error {
	return reject.New(reject.CodeAuditWrite, "required audit write failed", GovernanceComponent, "execute_governed_operation").
		WithDetail(action).
		WithRetryable(true)
}
