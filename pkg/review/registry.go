package review

import (
	"sort"

	"scratchrobin-hq/advanced/pkg/reject"
)

type action struct {
	approvers map[string]struct{}
	state     string
}

// Registry tracks review actions. It is not safe for concurrent use.
type Registry struct {
	actions map[string]*action
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{actions: make(map[string]*action)}
}

// Create registers actionID with an advisory state. Creating an existing
// action resets its approvals.
func (r *Registry) Create(actionID, state string) error {
	if actionID == "" {
		return reject.New(reject.CodeReviewQuorum, "review action id missing", Component, "create_review_action")
	}
	r.actions[actionID] = &action{approvers: make(map[string]struct{}), state: state}
	return nil
}

// Approve records reviewerID's approval of actionID. Repeat approvals by the
// same reviewer count once.
func (r *Registry) Approve(actionID, reviewerID string) error {
	a, ok := r.actions[actionID]
	if reviewerID == "" || !ok {
		return reject.New(reject.CodeReviewQuorum, "review approval invalid", Component, "approve_review_action").
			WithDetail(actionID)
	}
	a.approvers[reviewerID] = struct{}{}
	return nil
}

// SetAdvisoryState updates the advisory state of an existing action without
// touching its approvals.
func (r *Registry) SetAdvisoryState(actionID, state string) error {
	a, ok := r.actions[actionID]
	if !ok {
		return notRegistered(actionID, "set_advisory_state")
	}
	a.state = state
	return nil
}

// Enforce applies EnforcePolicy to the action's distinct approvals and state.
func (r *Registry) Enforce(actionID string, min int) error {
	a, ok := r.actions[actionID]
	if !ok {
		return notRegistered(actionID, "enforce_review_action")
	}
	return EnforcePolicy(len(a.approvers), min, actionID, a.state)
}

// Approvers returns the sorted approving reviewers of actionID.
func (r *Registry) Approvers(actionID string) ([]string, bool) {
	a, ok := r.actions[actionID]
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(a.approvers))
	for id := range a.approvers {
		out = append(out, id)
	}
	sort.Strings(out)
	return out, true
}

// AdvisoryState returns the advisory state of actionID.
func (r *Registry) AdvisoryState(actionID string) (string, bool) {
	a, ok := r.actions[actionID]
	if !ok {
		return "", false
	}
	return a.state, true
}

func notRegistered(actionID, operation string) error {
	return reject.New(reject.CodeReviewQuorum, "review action not registered", Component, operation).WithDetail(actionID)
}
