package review

import (
	"testing"

	"scratchrobin-hq/advanced/internal/testutil"
	"scratchrobin-hq/advanced/pkg/reject"
)

func TestCheckQuorum(t *testing.T) {
	tests := []struct {
		name     string
		approved int
		min      int
		wantErr  bool
	}{
		{"met exactly", 2, 2, false},
		{"exceeded", 3, 1, false},
		{"below", 1, 2, true},
		{"zero min", 5, 0, true},
		{"negative min", 5, -1, true},
		{"nothing approved", 0, 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckQuorum(tt.approved, tt.min)
			if !tt.wantErr {
				testutil.AssertNoError(t, err)
				return
			}
			r := testutil.AssertReject(t, err, reject.CodeReviewQuorum)
			if r.Message != "insufficient approvals" {
				t.Errorf("message = %q", r.Message)
			}
		})
	}
}

func TestRequireAdvisory(t *testing.T) {
	testutil.AssertNoError(t, RequireAdvisory("chg-1", "Approved"))

	for _, state := range []string{"approved", "Pending", "", "APPROVED"} {
		err := RequireAdvisory("chg-1", state)
		r := testutil.AssertReject(t, err, reject.CodeAdvisoryNotApproved)
		if r.Message != "action chg-1 requires approved advisory" {
			t.Errorf("state %q: message = %q", state, r.Message)
		}
	}
}

func TestEnforcePolicy_QuorumFirst(t *testing.T) {
	testutil.AssertReject(t, EnforcePolicy(0, 1, "a", "Pending"), reject.CodeReviewQuorum)
	testutil.AssertReject(t, EnforcePolicy(1, 1, "a", "Pending"), reject.CodeAdvisoryNotApproved)
	testutil.AssertNoError(t, EnforcePolicy(1, 1, "a", "Approved"))
}
