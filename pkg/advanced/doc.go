// Package advanced is the single entry point for the engine's advanced and
// preview capabilities: CDC delivery, masking previews, review approval,
// extension execution, lineage reports, optional surfaces and integration
// readiness.
//
// A Service owns the mutable registries (dead-letter queue, masking profiles,
// review actions, extension packages) and serializes every call behind one
// mutex, so a sequence such as create, approve, enforce observes a consistent
// state. Callbacks run under that lock and must not call back into the same
// Service.
//
// Each gated decision is counted in the metrics collector and mirrored to the
// audit recorder when they are configured:
//
//	svc, err := advanced.New(cfg,
//		advanced.WithLogger(logger),
//		advanced.WithMetrics(collector),
//		advanced.WithRecorder(recorder),
//	)
//	if err != nil {
//		return err
//	}
//	err = svc.EnforceReviewAction(ctx, "chg-42", 2)
//	if reject.Is(err, reject.CodeReviewQuorum) {
//		// ask for more reviewers
//	}
package advanced
