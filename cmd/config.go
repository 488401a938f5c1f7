package cmd

import (
	"flag"
	"fmt"

	"github.com/nibzard/tasklist-go/internal/config"
)

// configCommand prints the effective configuration with the source of
// every value.
func (c *cli) configCommand(args []string) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	example := fs.Bool("example", false, "Print an example config file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *example {
		fmt.Fprint(c.stdout, config.ExampleConfig())
		return nil
	}

	if path := c.sources.ConfigFile(); path != "" {
		fmt.Fprintf(c.stdout, "# config file: %s\n", path)
	} else {
		fmt.Fprintln(c.stdout, "# config file: none")
	}
	for _, field := range config.Fields() {
		fmt.Fprintf(c.stdout, "%s = %q  (%s)\n", field, c.cfg.Value(field), c.sources.Sources[field])
	}
	return nil
}
