// Package review gates change actions behind reviewer quorum, a change
// advisory state and per-environment governance policy.
//
// The quorum check fails with SRB1-R-7301 when fewer than the required number
// of distinct reviewers approved (or when the requirement itself is below one).
// The advisory check fails with SRB1-R-7305 unless the advisory state is
// exactly "Approved". EnforcePolicy applies them in that order.
//
// A Registry tracks review actions: their approving reviewers and advisory
// state. Approvals are idempotent per reviewer.
//
// Governance evaluates an actor against an Environment (allowed roles,
// approval requirement, AI controls). ExecuteGoverned writes one audit record
// for the decision and runs the operation only when the decision allows it.
package review
