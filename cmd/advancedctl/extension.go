package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"scratchrobin-hq/advanced/pkg/extension"
)

var extensionFlags struct {
	manifest string
	request  []string
	sandbox  []string
}

var extensionCmd = &cobra.Command{
	Use:   "extension",
	Short: "Manage extension packages",
}

var extensionVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify an extension manifest against a sandbox",
	Long: `Register the package described by a YAML manifest and check that it may
run with the requested capabilities.

Without --sandbox the configured sandbox allowlist is used.

Manifest format:
  id: pkg.audit
  signature_sha256: <64 lowercase hex characters>
  compatibility: srb1
  capabilities: [read_catalog, read_metadata]

Examples:
  advancedctl extension verify --manifest ext.yaml --request read_catalog
  advancedctl extension verify --manifest ext.yaml --request read_catalog,write_catalog --sandbox read_catalog,write_catalog`,
	RunE: runExtensionVerify,
}

func init() {
	extensionVerifyCmd.Flags().StringVar(&extensionFlags.manifest, "manifest", "", "extension manifest file (required)")
	extensionVerifyCmd.Flags().StringSliceVar(&extensionFlags.request, "request", nil, "requested capabilities")
	extensionVerifyCmd.Flags().StringSliceVar(&extensionFlags.sandbox, "sandbox", nil, "sandbox allowlist (default: configured allowlist)")
	extensionVerifyCmd.MarkFlagRequired("manifest")

	extensionCmd.AddCommand(extensionVerifyCmd)
	rootCmd.AddCommand(extensionCmd)
}

func runExtensionVerify(cmd *cobra.Command, args []string) error {
	m, err := extension.LoadManifest(extensionFlags.manifest)
	if err != nil {
		return err
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	if err := a.svc.RegisterExtensionPackage(ctx, m.ID, m.SignatureSHA256, m.Compatibility, extension.NewCapabilities(m.Capabilities...)); err != nil {
		return err
	}

	var sandbox extension.Capabilities
	if len(extensionFlags.sandbox) > 0 {
		sandbox = extension.NewCapabilities(extensionFlags.sandbox...)
	}
	requested := extension.NewCapabilities(extensionFlags.request...)
	if err := a.svc.ExecuteExtensionPackage(ctx, m.ID, requested, sandbox); err != nil {
		return err
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "✓ %s may run with %v\n", m.ID, requested.Sorted())
	return err
}
