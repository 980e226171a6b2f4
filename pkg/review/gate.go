package review

import (
	"fmt"

	"scratchrobin-hq/advanced/pkg/reject"
)

// Component is the reject component name for review failures.
const Component = "review"

// AdvisoryApproved is the only advisory state that passes the advisory check.
const AdvisoryApproved = "Approved"

// CheckQuorum fails with SRB1-R-7301 when approved < min or min < 1.
func CheckQuorum(approved, min int) error {
	if min < 1 || approved < min {
		return reject.New(reject.CodeReviewQuorum, "insufficient approvals", Component, "check_review_quorum").
			WithDetail(fmt.Sprintf("approved=%d min=%d", approved, min))
	}
	return nil
}

// RequireAdvisory fails with SRB1-R-7305 unless state is "Approved".
// The comparison is case-sensitive.
func RequireAdvisory(actionID, state string) error {
	if state != AdvisoryApproved {
		return reject.New(reject.CodeAdvisoryNotApproved,
			fmt.Sprintf("action %s requires approved advisory", actionID),
			Component, "require_change_advisory").WithDetail(state)
	}
	return nil
}

// EnforcePolicy checks quorum, then the advisory state.
func EnforcePolicy(approved, min int, actionID, state string) error {
	if err := CheckQuorum(approved, min); err != nil {
		return err
	}
	return RequireAdvisory(actionID, state)
}
