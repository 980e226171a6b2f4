package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"scratchrobin-hq/advanced/pkg/review"
)

var governanceFlags struct {
	environment  string
	actor        string
	role         string
	action       string
	target       string
	approvals    int
	ai           bool
	scope        string
	requireAudit bool
}

var governanceCmd = &cobra.Command{
	Use:   "governance",
	Short: "Evaluate an operation against environment governance",
	Long: `Decide whether an actor may perform an action in a configured
environment. The decision is written to the audit mirror. A denial exits
with SRB1-R-3202 and the denial reason.

Examples:
  advancedctl governance --config engine.yaml --environment prod --actor alice --role dba --action deploy --approvals 2
  advancedctl governance --config engine.yaml --environment prod --role dba --action explain --ai --scope read_only`,
	RunE: runGovernance,
}

func init() {
	f := governanceCmd.Flags()
	f.StringVar(&governanceFlags.environment, "environment", "", "environment id (required)")
	f.StringVar(&governanceFlags.actor, "actor", "", "actor id")
	f.StringVar(&governanceFlags.role, "role", "", "actor role")
	f.StringVar(&governanceFlags.action, "action", "", "action name")
	f.StringVar(&governanceFlags.target, "target", "", "target id")
	f.IntVar(&governanceFlags.approvals, "approvals", 0, "approvals collected")
	f.BoolVar(&governanceFlags.ai, "ai", false, "operation is initiated by an AI assistant")
	f.StringVar(&governanceFlags.scope, "scope", "", "AI scope")
	f.BoolVar(&governanceFlags.requireAudit, "require-audit", false, "fail unless the decision is audited")
	governanceCmd.MarkFlagRequired("environment")

	rootCmd.AddCommand(governanceCmd)
}

func runGovernance(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	g := governanceFlags
	input := review.GovernanceInput{
		Actor:         g.actor,
		ActorRole:     g.role,
		Action:        g.action,
		TargetID:      g.target,
		EnvironmentID: g.environment,
		Approvals:     g.approvals,
		AIAction:      g.ai,
		AIScope:       g.scope,
		RequireAudit:  g.requireAudit,
	}
	if err := a.svc.ExecuteGovernedOperation(cmd.Context(), input, nil); err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "✓ %s allowed in %s\n", g.action, g.environment)
	return err
}
