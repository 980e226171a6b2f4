package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"scratchrobin-hq/advanced/pkg/cli"
	"scratchrobin-hq/advanced/pkg/masking"
)

var maskFlags struct {
	rows    string
	profile string
	rules   []string
}

var maskCmd = &cobra.Command{
	Use:   "mask",
	Short: "Preview masking on sample rows",
	Long: `Apply masking rules to rows read from a JSON file.

The rows file holds an array of objects with string values. Rules come
either from a profile in the configuration (--profile) or inline as
field=rule pairs (--rule). Supported rules: redact, prefix_mask, hash.

Examples:
  # Inline rules
  advancedctl mask --rows rows.json --rule email=redact --rule name=prefix_mask

  # Configured profile, JSON output
  advancedctl mask --rows rows.json --profile pii --config engine.yaml --format json`,
	RunE: runMask,
}

func init() {
	maskCmd.Flags().StringVar(&maskFlags.rows, "rows", "", "JSON file with rows to mask (required)")
	maskCmd.Flags().StringVar(&maskFlags.profile, "profile", "", "masking profile id")
	maskCmd.Flags().StringArrayVar(&maskFlags.rules, "rule", nil, "inline rule as field=rule (repeatable)")
	maskCmd.MarkFlagRequired("rows")
	maskCmd.MarkFlagsMutuallyExclusive("profile", "rule")

	rootCmd.AddCommand(maskCmd)
}

func runMask(cmd *cobra.Command, args []string) error {
	rows, err := loadRows(maskFlags.rows)
	if err != nil {
		return err
	}
	if maskFlags.profile == "" && len(maskFlags.rules) == 0 {
		return fmt.Errorf("either --profile or --rule is required")
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	var out []masking.Row
	if maskFlags.profile != "" {
		out, err = a.svc.PreviewMaskWithProfile(cmd.Context(), maskFlags.profile, rows)
	} else {
		rules, perr := parseRules(maskFlags.rules)
		if perr != nil {
			return perr
		}
		out, err = a.svc.PreviewMask(cmd.Context(), rows, rules)
	}
	if err != nil {
		return err
	}
	return render(cmd.OutOrStdout(), maskedRows(out))
}

func loadRows(path string) ([]masking.Row, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	var rows []masking.Row
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse rows %s: %w", path, err)
	}
	return rows, nil
}

func parseRules(pairs []string) (masking.Rules, error) {
	rules := make(masking.Rules, len(pairs))
	for _, pair := range pairs {
		field, rule, ok := strings.Cut(pair, "=")
		if !ok || field == "" {
			return nil, fmt.Errorf("invalid rule %q (want field=rule)", pair)
		}
		rules[field] = rule
	}
	return rules, nil
}

// maskedRows renders as a table whose columns are the union of row fields.
type maskedRows []masking.Row

func (m maskedRows) Table() cli.Table {
	seen := make(map[string]struct{})
	var headers []string
	for _, row := range m {
		for field := range row {
			if _, ok := seen[field]; !ok {
				seen[field] = struct{}{}
				headers = append(headers, field)
			}
		}
	}
	sort.Strings(headers)

	t := cli.Table{Headers: make([]string, len(headers))}
	for i, h := range headers {
		t.Headers[i] = strings.ToUpper(h)
	}
	for _, row := range m {
		cells := make([]string, len(headers))
		for i, h := range headers {
			cells[i] = row[h]
		}
		t.Rows = append(t.Rows, cells)
	}
	return t
}
