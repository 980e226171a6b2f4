package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"scratchrobin-hq/advanced/pkg/cli"
	"scratchrobin-hq/advanced/pkg/reliability"
)

var cdcFlags struct {
	events     string
	out        string
	deadLetter string
	attempts   int
	backoff    time.Duration
}

var cdcCmd = &cobra.Command{
	Use:   "cdc",
	Short: "Deliver change-data-capture events",
}

var cdcDeliverCmd = &cobra.Command{
	Use:   "deliver",
	Short: "Deliver events to a file sink with retries",
	Long: `Deliver each non-empty line of the events file to the sink file. A
failed append is retried with a fixed backoff; events that exhaust their
attempts are written to the dead-letter file.

Attempts and backoff default to the reliability section of the configuration.

Examples:
  advancedctl cdc deliver --events changes.txt --out sink.log --dead-letter dlq.log
  advancedctl cdc deliver --events changes.txt --out sink.log --attempts 5 --backoff 200ms`,
	RunE: runCdcDeliver,
}

func init() {
	cdcDeliverCmd.Flags().StringVar(&cdcFlags.events, "events", "", "file with one event payload per line (required)")
	cdcDeliverCmd.Flags().StringVar(&cdcFlags.out, "out", "", "sink file events are appended to (required)")
	cdcDeliverCmd.Flags().StringVar(&cdcFlags.deadLetter, "dead-letter", "", "file dead-lettered events are appended to")
	cdcDeliverCmd.Flags().IntVar(&cdcFlags.attempts, "attempts", 0, "publish attempts per event (default: configured)")
	cdcDeliverCmd.Flags().DurationVar(&cdcFlags.backoff, "backoff", -1, "delay between attempts (default: configured)")
	cdcDeliverCmd.MarkFlagRequired("events")
	cdcDeliverCmd.MarkFlagRequired("out")

	cdcCmd.AddCommand(cdcDeliverCmd)
	rootCmd.AddCommand(cdcCmd)
}

func readEvents(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open events: %w", err)
	}
	defer f.Close()

	var events []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			events = append(events, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read events: %w", err)
	}
	return events, nil
}

// fileSink appends one payload per line. Write errors fail the attempt.
func fileSink(f *os.File) reliability.PublishFunc {
	return func(payload string) bool {
		_, err := f.WriteString(payload + "\n")
		return err == nil
	}
}

func appendLines(path string, lines []string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open dead-letter file: %w", err)
	}
	for _, line := range lines {
		if _, err := f.WriteString(line + "\n"); err != nil {
			f.Close()
			return fmt.Errorf("failed to write dead-letter file: %w", err)
		}
	}
	return f.Close()
}

func runCdcDeliver(cmd *cobra.Command, args []string) error {
	events, err := readEvents(cdcFlags.events)
	if err != nil {
		return err
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	attempts, backoff := a.svc.DeliveryDefaults()
	if cdcFlags.attempts > 0 {
		attempts = cdcFlags.attempts
	}
	if cdcFlags.backoff >= 0 {
		backoff = cdcFlags.backoff
	}

	sink, err := os.OpenFile(cdcFlags.out, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open sink: %w", err)
	}
	defer sink.Close()

	res := a.svc.RunCdcBatch(cmd.Context(), events, attempts, backoff, fileSink(sink))

	if dead := a.svc.DeadLetterQueue(); len(dead) > 0 && cdcFlags.deadLetter != "" {
		if err := appendLines(cdcFlags.deadLetter, dead); err != nil {
			return err
		}
	}
	return render(cmd.OutOrStdout(), batchSummary(res))
}

type batchSummary reliability.BatchResult

func (b batchSummary) Table() cli.Table {
	return cli.Table{
		Headers: []string{"PUBLISHED", "DEAD_LETTERED"},
		Rows:    [][]string{{strconv.Itoa(b.Published), strconv.Itoa(b.DeadLettered)}},
	}
}
