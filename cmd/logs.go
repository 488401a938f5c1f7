package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/nibzard/tasklist-go/internal/logging"
)

// logsCommand tails the latest run log of the configured service.
func (c *cli) logsCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("logs", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	follow := fs.Bool("f", false, "Follow the log (like tail -f)")
	fs.BoolVar(follow, "follow", false, "Follow the log (like tail -f)")
	n := fs.Int("n", 0, "Number of lines to show (0 = all)")
	runs := fs.Bool("runs", false, "List recorded runs instead")
	if err := fs.Parse(args); err != nil {
		return err
	}

	logDir, err := logging.FindLogDir(c.cfg.LogDir, c.cfg.BaseURL)
	if err != nil {
		return fmt.Errorf("finding log directory: %w", err)
	}

	if *runs {
		return c.listRuns(logDir)
	}

	logPath, err := logging.FindLatestLog(logDir)
	if err != nil {
		return fmt.Errorf("finding latest log: %w", err)
	}
	if logPath == "" {
		fmt.Fprintln(c.stdout, "No log files found.")
		return nil
	}

	fmt.Fprintf(c.stdout, "Tailing: %s\n", logPath)
	if *follow {
		fmt.Fprintln(c.stdout, "(Ctrl+C to stop)")
	}
	fmt.Fprintln(c.stdout)

	return logging.TailLog(ctx, c.stdout, logPath, *n, *follow)
}

func (c *cli) listRuns(logDir string) error {
	runs, err := logging.FindLogRuns(logDir)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("listing runs: %w", err)
	}
	if len(runs) == 0 {
		fmt.Fprintln(c.stdout, "No log files found.")
		return nil
	}
	for _, r := range runs {
		fmt.Fprintf(c.stdout, "%-24s %10s  %s\n", r.RunID, humanize.Bytes(uint64(r.Size)), humanize.Time(r.ModTime))
	}
	return nil
}
