package main

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"scratchrobin-hq/advanced/pkg/cli"
	"scratchrobin-hq/advanced/pkg/surface"
)

var surfacesFlags struct {
	profile string
	target  string
}

var surfacesCmd = &cobra.Command{
	Use:   "surfaces",
	Short: "Show optional surfaces for a deployment profile",
	Long: `Show whether each optional surface is enabled for a deployment profile.
Disabled surfaces list the reject code an open attempt would return.

Examples:
  advancedctl surfaces --profile ga
  advancedctl surfaces open ClusterManagerFrame --profile preview --target cluster_main`,
	RunE: runSurfaces,
}

var surfacesOpenCmd = &cobra.Command{
	Use:       "open SURFACE",
	Short:     "Open an optional surface and print its descriptor",
	Args:      cobra.ExactArgs(1),
	ValidArgs: surface.Names(),
	RunE:      runSurfacesOpen,
}

func init() {
	surfacesCmd.PersistentFlags().StringVar(&surfacesFlags.profile, "profile", "preview", "deployment profile id")
	surfacesOpenCmd.Flags().StringVar(&surfacesFlags.target, "target", "", "target id (cluster, replication, job, operation or suite)")

	surfacesCmd.AddCommand(surfacesOpenCmd)
	rootCmd.AddCommand(surfacesCmd)
}

func runSurfaces(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	return render(cmd.OutOrStdout(), surfaceGate(a.svc.RegisterOptionalSurfaces(surfacesFlags.profile)))
}

func runSurfacesOpen(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	var open func(ctx context.Context, profileID, targetID string) (string, error)
	switch args[0] {
	case surface.ClusterManager:
		open = a.svc.OpenClusterManager
	case surface.ReplicationManager:
		open = a.svc.OpenReplicationManager
	case surface.EtlManager:
		open = a.svc.OpenEtlManager
	case surface.DockerManager:
		open = a.svc.OpenDockerManager
	case surface.TestRunner:
		open = a.svc.OpenTestRunner
	default:
		return fmt.Errorf("unknown surface %q", args[0])
	}

	payload, err := open(ctx, surfacesFlags.profile, surfacesFlags.target)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), payload)
	return err
}

// surfaceGate maps surface names to "" or their reject code.
type surfaceGate map[string]string

func (g surfaceGate) Table() cli.Table {
	names := make([]string, 0, len(g))
	for name := range g {
		names = append(names, name)
	}
	sort.Strings(names)

	t := cli.Table{Headers: []string{"SURFACE", "STATUS", "CODE"}}
	for _, name := range names {
		status := "enabled"
		if g[name] != "" {
			status = "disabled"
		}
		t.Rows = append(t.Rows, []string{name, status, g[name]})
	}
	return t
}
