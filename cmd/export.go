package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"
	patrimoine "github.com/timaelia1-mgt/patrimoine-immo-sub000"
	"go.uber.org/zap"
)

type exportCmd struct {
	output string
}

func (*exportCmd) Name() string { return "export" }
func (*exportCmd) Synopsis() string {
	return "write the snapshot in its canonical JSON form"
}
func (*exportCmd) Usage() string {
	return `immo export [-o <file>]

  Reads the snapshot, JSON or YAML, and writes it back as indented JSON with
  the generated ids and the monthly charges it was read as. The snapshot
  itself is never modified.

Usage Examples:
# converts a YAML snapshot
$ immo -portfolio biens.yaml export -o biens.json
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Output file. Defaults to the standard output.")
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return execute(c.run)
}

func (c *exportCmd) run(a *app, w io.Writer) error {
	if c.output == "" {
		return patrimoine.EncodePortfolio(w, a.pf)
	}
	if c.output == *portfolioFile || c.output == a.cfg.Portfolio && *portfolioFile == "" {
		return fmt.Errorf("refusing to overwrite the snapshot %q", c.output)
	}
	f, err := os.Create(c.output)
	if err != nil {
		return fmt.Errorf("error creating %q: %w", c.output, err)
	}
	defer f.Close()
	if err := patrimoine.EncodePortfolio(f, a.pf); err != nil {
		return fmt.Errorf("error writing %q: %w", c.output, err)
	}
	a.log.Info("snapshot exported", zap.String("file", c.output))
	return f.Close()
}
