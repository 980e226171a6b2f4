/*
Package cli provides command-line helpers for advancedctl.

Output Formatting:

Command results are rendered as text tables, CSV or JSON. Results that
implement Tabular are rendered as a table in the text and CSV formats; JSON
always encodes the value itself:

	formatter, err := cli.NewFormatter(cli.FormatJSON)
	if err != nil {
		return err
	}
	if err := formatter.FormatTo(os.Stdout, result); err != nil {
		return err
	}

Errors:

Rejects are printed as "<code>: <message>" and map to exit code 2. Every
other failure maps to exit code 1:

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(err))
		os.Exit(cli.ExitCode(err))
	}

Signal Handling:

For commands that run until interrupted:

	ctx, stop := cli.SetupSignalHandler(context.Background())
	defer stop()
*/
package cli
