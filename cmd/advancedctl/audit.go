package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"scratchrobin-hq/advanced/pkg/advanced"
	"scratchrobin-hq/advanced/pkg/audit"
	"scratchrobin-hq/advanced/pkg/audit/retention"
	"scratchrobin-hq/advanced/pkg/cli"
)

var auditFlags struct {
	component string
	outcome   string
	code      string
	since     string
	until     string
	last      time.Duration
	limit     int
}

var errAuditDisabled = errors.New("audit mirror is disabled (set audit.enabled in the configuration)")

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Inspect and maintain the decision audit mirror",
	Long: `Query and prune the decision audit mirror.

The memory backend only lives for one invocation; use the sqlite backend
to keep records between runs.

Subcommands:
  query   - Query audit records with filters
  prune   - Apply the retention limits once
  retain  - Apply the retention limits on the configured cron schedule`,
}

var auditQueryCmd = &cobra.Command{
	Use:   "query",
	Short: "Query audit records",
	Long: `Query audit records, newest first.

Examples:
  # Rejected decisions from the last day
  advancedctl audit query --outcome rejected --last 24h

  # Masking decisions in a time window, as CSV
  advancedctl audit query --component masking --since 2026-10-01T00:00:00Z --until 2026-10-02T00:00:00Z --format csv`,
	RunE: runAuditQuery,
}

var auditPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete records beyond the retention limits",
	RunE:  runAuditPrune,
}

var auditRetainCmd = &cobra.Command{
	Use:   "retain",
	Short: "Prune on the configured schedule until interrupted",
	RunE:  runAuditRetain,
}

func init() {
	auditQueryCmd.Flags().StringVar(&auditFlags.component, "component", "", "filter by component")
	auditQueryCmd.Flags().StringVar(&auditFlags.outcome, "outcome", "", "filter by outcome (allowed, rejected)")
	auditQueryCmd.Flags().StringVar(&auditFlags.code, "code", "", "filter by reject code")
	auditQueryCmd.Flags().StringVar(&auditFlags.since, "since", "", "earliest record time (RFC3339, inclusive)")
	auditQueryCmd.Flags().StringVar(&auditFlags.until, "until", "", "latest record time (RFC3339, exclusive)")
	auditQueryCmd.Flags().DurationVar(&auditFlags.last, "last", 0, "only records from this long ago until now")
	auditQueryCmd.Flags().IntVar(&auditFlags.limit, "limit", 100, "maximum records to return (0 for no limit)")
	auditQueryCmd.MarkFlagsMutuallyExclusive("since", "last")

	auditCmd.AddCommand(auditQueryCmd, auditPruneCmd, auditRetainCmd)
	rootCmd.AddCommand(auditCmd)
}

func buildAuditQuery(now time.Time) (*audit.Query, error) {
	q := &audit.Query{
		Component: auditFlags.component,
		Outcome:   auditFlags.outcome,
		Code:      auditFlags.code,
		Limit:     auditFlags.limit,
	}
	if q.Outcome != "" && q.Outcome != audit.OutcomeAllowed && q.Outcome != audit.OutcomeRejected {
		return nil, fmt.Errorf("invalid outcome %q (want %s or %s)", q.Outcome, audit.OutcomeAllowed, audit.OutcomeRejected)
	}
	if auditFlags.limit < 0 {
		return nil, fmt.Errorf("limit must not be negative")
	}
	if auditFlags.since != "" {
		t, err := time.Parse(time.RFC3339, auditFlags.since)
		if err != nil {
			return nil, fmt.Errorf("invalid --since: %w", err)
		}
		q.Since = t
	}
	if auditFlags.last > 0 {
		q.Since = now.Add(-auditFlags.last)
	}
	if auditFlags.until != "" {
		t, err := time.Parse(time.RFC3339, auditFlags.until)
		if err != nil {
			return nil, fmt.Errorf("invalid --until: %w", err)
		}
		q.Until = t
	}
	return q, nil
}

func runAuditQuery(cmd *cobra.Command, args []string) error {
	q, err := buildAuditQuery(time.Now().UTC())
	if err != nil {
		return err
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()
	if a.store == nil {
		return errAuditDisabled
	}

	records, err := a.store.Query(cmd.Context(), q)
	if err != nil {
		return fmt.Errorf("failed to query audit records: %w", err)
	}
	return render(cmd.OutOrStdout(), auditRecords(records))
}

func runAuditPrune(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()
	if a.store == nil {
		return errAuditDisabled
	}

	deleted, err := advanced.NewPruner(a.store, &a.cfg.Audit.Retention).Prune(cmd.Context())
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "✓ deleted %d audit records\n", deleted)
	return err
}

func runAuditRetain(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()
	if a.store == nil {
		return errAuditDisabled
	}
	if a.cfg.Audit.Retention.PruneSchedule == "" {
		return fmt.Errorf("audit.retention.prune_schedule is not set")
	}

	ctx, stop := cli.SetupSignalHandler(cmd.Context())
	defer stop()

	scheduler := retention.NewScheduler(advanced.NewPruner(a.store, &a.cfg.Audit.Retention))
	if err := scheduler.Start(ctx); err != nil {
		return err
	}
	if next := scheduler.NextRun(); next != nil {
		a.logger.Info("retention scheduler running", "next_run", next.Format(time.RFC3339))
	}

	<-ctx.Done()
	scheduler.Stop()
	return nil
}

type auditRecords []*audit.Record

func (r auditRecords) Table() cli.Table {
	t := cli.Table{Headers: []string{"TIME", "COMPONENT", "OPERATION", "SUBJECT", "OUTCOME", "CODE", "ID"}}
	for _, rec := range r {
		t.Rows = append(t.Rows, []string{
			rec.Time.Format(time.RFC3339),
			rec.Component,
			rec.Operation,
			rec.Subject,
			rec.Outcome,
			rec.Code,
			rec.ID,
		})
	}
	return t
}
