// Package cmd implements the CLI command structure for tasklist.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nibzard/tasklist-go/internal/config"
)

// Version is set via ldflags at build time.
var Version = "dev"

// cli carries what every subcommand needs.
type cli struct {
	cfg     *config.Config
	sources *config.ConfigWithSources
	stdout  io.Writer
	stderr  io.Writer
}

// Run executes the tasklist CLI.
func Run(ctx context.Context, args []string) error {
	return run(ctx, args, os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("tasklist", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		printUsage(fs, stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	c := &cli{
		cfg:     cws.Config,
		sources: cws,
		stdout:  stdout,
		stderr:  stderr,
	}
	if *help {
		printUsage(fs, stdout)
		return nil
	}
	if *showVersion {
		return c.versionCommand()
	}

	// No args or a leading flag means the TUI.
	subcommand := "tui"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	switch subcommand {
	case "tui":
		return c.tuiCommand(ctx, remainingArgs)
	case "ls", "list":
		return c.lsCommand(ctx, remainingArgs)
	case "add":
		return c.addCommand(ctx, remainingArgs)
	case "edit":
		return c.editCommand(ctx, remainingArgs)
	case "rm", "delete":
		return c.rmCommand(ctx, remainingArgs)
	case "logs", "tail":
		return c.logsCommand(ctx, remainingArgs)
	case "config":
		return c.configCommand(remainingArgs)
	case "version":
		return c.versionCommand()
	case "help":
		printUsage(fs, stdout)
		return nil
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// versionCommand prints version information.
func (c *cli) versionCommand() error {
	fmt.Fprintf(c.stdout, "tasklist version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "tasklist - a terminal client for a question & answer task service")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  tasklist [global options] [command] [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  tui              Launch the interactive client (default command)")
	fmt.Fprintln(w, "  ls               List tasks")
	fmt.Fprintln(w, "  add              Create a task")
	fmt.Fprintln(w, "  edit ID          Change fields of a task")
	fmt.Fprintln(w, "  rm ID            Delete a task")
	fmt.Fprintln(w, "  logs             Show the latest run log")
	fmt.Fprintln(w, "  config           Show the effective configuration")
	fmt.Fprintln(w, "  version          Show version information")
	fmt.Fprintln(w, "  help             Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	out := fs.Output()
	fs.SetOutput(w)
	fs.PrintDefaults()
	fs.SetOutput(out)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Ls Options:")
	fmt.Fprintln(w, "  -search string")
	fmt.Fprintln(w, "        Only show tasks whose question contains the term")
	fmt.Fprintln(w, "  -format string")
	fmt.Fprintln(w, "        Output format: table, json or yaml (default \"table\")")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Add/Edit Options:")
	fmt.Fprintln(w, "  -title string, -description string, -due YYYY-MM-DD, -completed")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Logs Options:")
	fmt.Fprintln(w, "  -f, --follow     Follow the log (like tail -f)")
	fmt.Fprintln(w, "  -n int           Number of lines to show (0 = all)")
	fmt.Fprintln(w, "  --runs           List recorded runs instead")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Config Options:")
	fmt.Fprintln(w, "  --example        Print an example config file")
}
