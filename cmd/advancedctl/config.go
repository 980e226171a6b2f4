package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"scratchrobin-hq/advanced/pkg/cli"
	"scratchrobin-hq/advanced/pkg/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Validate and watch engine configuration",
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration file",
	Long: `Load the configuration file, apply environment overrides
(SCRATCHROBIN_SECTION_FIELD) and validate the result, including every
masking rule and the retention cron schedule.

Examples:
  advancedctl config validate --config engine.yaml`,
	RunE: runConfigValidate,
}

var configWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Apply configuration changes as the file is edited",
	Long: `Build the engine from the configuration file and re-apply the file
every time it changes, until interrupted. Changes that fail validation are
logged and the previous configuration stays in effect.`,
	RunE: runConfigWatch,
}

func init() {
	configCmd.AddCommand(configValidateCmd, configWatchCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	if cfgFile == "" {
		return fmt.Errorf("--config is required")
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	return render(cmd.OutOrStdout(), configSummary{cfg})
}

func runConfigWatch(cmd *cobra.Command, args []string) error {
	if cfgFile == "" {
		return fmt.Errorf("--config is required")
	}
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := cli.SetupSignalHandler(cmd.Context())
	defer stop()

	a.logger.Info("watching configuration", "path", cfgFile)
	return a.svc.WatchConfig(ctx, config.NewWatcher(cfgFile, a.logger))
}

type configSummary struct {
	*config.Config
}

func (c configSummary) Table() cli.Table {
	return cli.Table{
		Headers: []string{"SECTION", "VALUE"},
		Rows: [][]string{
			{"masking_profiles", fmt.Sprint(len(c.Masking.Profiles))},
			{"environments", fmt.Sprint(len(c.Review.Environments))},
			{"sandbox_allowlist", fmt.Sprint(c.Extensions.SandboxAllowlist)},
			{"preview_profiles", fmt.Sprint(c.Surfaces.PreviewProfiles)},
			{"cdc_delivery", fmt.Sprintf("%d attempts, %s backoff", c.Reliability.MaxAttempts, c.Reliability.Backoff)},
			{"audit_backend", c.Audit.Backend},
		},
	}
}
