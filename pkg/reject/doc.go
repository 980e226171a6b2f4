// Package reject defines the single error kind shared by every component of the
// advanced-feature engine.
//
// A reject carries a stable code (for example "SRB1-R-7004") and a diagnostic
// message. The code is the external contract: the UI selects the dialog it
// renders from the code and never inspects the message text.
//
// # Usage
//
//	if err := svc.EnforceReviewAction(ctx, "apply_changes", 2); err != nil {
//		switch reject.CodeOf(err) {
//		case reject.CodeReviewQuorum:
//			// ask for more reviewers
//		case reject.CodeAdvisoryNotApproved:
//			// wait for the change advisory board
//		}
//	}
//
// Errors returned by the engine may be wrapped with fmt.Errorf("...: %w", err);
// CodeOf and Is look through the wrapping chain.
package reject
