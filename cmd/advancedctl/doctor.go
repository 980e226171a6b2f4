package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"scratchrobin-hq/advanced/pkg/audit"
	"scratchrobin-hq/advanced/pkg/cli"
	"scratchrobin-hq/advanced/pkg/telemetry/health"
)

var doctorFlags struct {
	timeout time.Duration
}

var errNotReady = errors.New("engine is not ready")

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that the engine's dependencies are usable",
	Long: `Run readiness checks against the configured audit store, metrics
registry, masking profiles and credential directory. Exits non-zero when
any check fails.

Examples:
  advancedctl doctor --config engine.yaml
  advancedctl doctor --config engine.yaml --format json`,
	RunE: runDoctor,
}

func init() {
	doctorCmd.Flags().DurationVar(&doctorFlags.timeout, "timeout", health.DefaultCheckTimeout, "timeout per check")
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	checker := health.New(doctorFlags.timeout)
	registerChecks(checker, a)

	report := checker.Run(cmd.Context())
	if err := render(cmd.OutOrStdout(), healthReport(report)); err != nil {
		return err
	}
	if !report.Ready() {
		return errNotReady
	}
	return nil
}

func registerChecks(checker *health.Checker, a *app) {
	if a.store != nil {
		checker.Register("audit_storage", func(ctx context.Context) error {
			_, err := a.store.Count(ctx, &audit.Query{})
			return err
		})
	}
	if a.collector.Enabled() {
		checker.Register("metrics_registry", func(context.Context) error {
			_, err := a.collector.Registry().Gather()
			return err
		})
	}
	checker.Register("masking_profiles", func(context.Context) error {
		for _, id := range a.svc.MaskingProfileIDs() {
			rules, _ := a.svc.MaskingProfile(id)
			if err := rules.Validate(); err != nil {
				return fmt.Errorf("profile %s: %w", id, err)
			}
		}
		return nil
	})
	if dir := a.cfg.Integrations.SecretsDir; dir != "" {
		checker.Register("secrets_dir", func(context.Context) error {
			info, err := os.Stat(dir)
			if err != nil {
				return err
			}
			if !info.IsDir() {
				return fmt.Errorf("%s is not a directory", dir)
			}
			return nil
		})
	}
}

type healthReport health.Report

func (r healthReport) Table() cli.Table {
	t := cli.Table{Headers: []string{"CHECK", "STATUS", "DURATION", "MESSAGE"}}
	for _, c := range r.Checks {
		t.Rows = append(t.Rows, []string{c.Name, c.Status, c.Duration.Round(time.Microsecond).String(), c.Message})
	}
	t.Rows = append(t.Rows, []string{"overall", r.Status, "", ""})
	return t
}
