package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"scratchrobin-hq/advanced/pkg/cli"
	"scratchrobin-hq/advanced/pkg/integration/credential"
	"scratchrobin-hq/advanced/pkg/integration/gitsync"
)

var integrationsFlags struct {
	provider     string
	endpoint     string
	project      string
	credential   string
	secretsDir   string
	async        bool
	path         string
	probe        bool
	probeTimeout time.Duration
}

var integrationsCmd = &cobra.Command{
	Use:   "integrations",
	Short: "Check external integration readiness",
	Long: `Check whether AI provider, issue tracker and git sync integrations can
be used.

The credential named by --credential is read from the environment variable
SCRATCHROBIN_SECRET_<NAME> (uppercased, hyphens as underscores), then from
the file <secrets-dir>/<name>. Credential values are never printed.

Examples:
  advancedctl integrations ai --provider openai --endpoint gpt-4o --credential openai-api-key
  advancedctl integrations tracker --provider github --project org/repo --credential github-token --secrets-dir /run/secrets
  advancedctl integrations git --path . --probe`,
}

var integrationsAICmd = &cobra.Command{
	Use:   "ai",
	Short: "Check an AI provider configuration",
	RunE:  runIntegrationsAI,
}

var integrationsTrackerCmd = &cobra.Command{
	Use:   "tracker",
	Short: "Check an issue tracker configuration",
	RunE:  runIntegrationsTracker,
}

var integrationsGitCmd = &cobra.Command{
	Use:   "git",
	Short: "Check whether a git working copy is ready to sync",
	Long: `Inspect a git working copy: a branch must be checked out, a remote must
be configured (and reachable with --probe) and the index must hold no
unresolved conflicts.`,
	RunE: runIntegrationsGit,
}

func init() {
	integrationsCmd.PersistentFlags().StringVar(&integrationsFlags.provider, "provider", "", "provider id")
	integrationsCmd.PersistentFlags().StringVar(&integrationsFlags.credential, "credential", "", "credential name")
	integrationsCmd.PersistentFlags().StringVar(&integrationsFlags.secretsDir, "secrets-dir", "", "credential file directory (default: integrations.secrets_dir)")

	integrationsAICmd.Flags().StringVar(&integrationsFlags.endpoint, "endpoint", "", "endpoint URL or model name")
	integrationsAICmd.Flags().BoolVar(&integrationsFlags.async, "async", true, "async execution enabled")

	integrationsTrackerCmd.Flags().StringVar(&integrationsFlags.project, "project", "", "project or repository")

	integrationsGitCmd.Flags().StringVar(&integrationsFlags.path, "path", ".", "working copy path")
	integrationsGitCmd.Flags().BoolVar(&integrationsFlags.probe, "probe", false, "list remote references to check reachability")
	integrationsGitCmd.Flags().DurationVar(&integrationsFlags.probeTimeout, "probe-timeout", 10*time.Second, "timeout per remote probe")

	integrationsCmd.AddCommand(integrationsAICmd, integrationsTrackerCmd, integrationsGitCmd)
	rootCmd.AddCommand(integrationsCmd)
}

// resolveCredential looks up --credential in the environment and the
// secrets directory. It returns nil when neither has it.
func resolveCredential(cmd *cobra.Command, a *app) (*string, error) {
	sources := []credential.Source{credential.NewEnvSource(a.cfg.Integrations.SecretEnvPrefix)}
	dir := integrationsFlags.secretsDir
	if dir == "" {
		dir = a.cfg.Integrations.SecretsDir
	}
	if dir != "" {
		sources = append(sources, credential.NewFileSource(dir))
	}
	return credential.NewResolver(sources, credential.WithLogger(a.logger)).Resolve(cmd.Context(), integrationsFlags.credential)
}

func runIntegrationsAI(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	cred, err := resolveCredential(cmd, a)
	if err != nil {
		return err
	}
	f := integrationsFlags
	if err := a.svc.ValidateAiProviderConfig(cmd.Context(), f.provider, f.async, f.endpoint, cred); err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "✓ AI provider %s ready\n", f.provider)
	return err
}

func runIntegrationsTracker(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	cred, err := resolveCredential(cmd, a)
	if err != nil {
		return err
	}
	f := integrationsFlags
	if err := a.svc.ValidateIssueTrackerConfig(cmd.Context(), f.provider, f.project, cred); err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "✓ issue tracker %s ready\n", f.provider)
	return err
}

func runIntegrationsGit(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	var reachable gitsync.ReachableFunc
	if integrationsFlags.probe {
		reachable = gitsync.Probe(cmd.Context(), integrationsFlags.probeTimeout)
	}

	state, err := a.svc.CheckGitRepository(cmd.Context(), integrationsFlags.path, reachable)
	if state != nil {
		if rerr := render(cmd.OutOrStdout(), gitState{state}); rerr != nil {
			return rerr
		}
	}
	return err
}

type gitState struct {
	*gitsync.State
}

func (g gitState) Table() cli.Table {
	return cli.Table{
		Headers: []string{"CHECK", "VALUE"},
		Rows: [][]string{
			{"branch", g.Branch},
			{"remotes", strings.Join(g.Remotes, ",")},
			{"conflicts", strings.Join(g.Conflicts, ",")},
			{"branch_selected", strconv.FormatBool(g.BranchSelected)},
			{"remote_reachable", strconv.FormatBool(g.RemoteReachable)},
			{"conflicts_resolved", strconv.FormatBool(g.ConflictsResolved)},
		},
	}
}
