package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"
	patrimoine "github.com/timaelia1-mgt/patrimoine-immo-sub000"
	"github.com/timaelia1-mgt/patrimoine-immo-sub000/renderer"
	"go.uber.org/zap"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	outputFlags
	date string
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display the portfolio totals and every property's indicators" }
func (*summaryCmd) Usage() string {
	return `immo summary [-d <date>] [-json | -q <query>]

  Displays the monthly cash flow of the portfolio, its yields and the
  indicators of each property. Properties with missing data are listed
  as warnings.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", patrimoine.Today().String(), "Date for the summary. Relative dates like -1y are accepted.")
	c.outputFlags.SetFlags(f)
}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := patrimoine.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	return execute(func(a *app, w io.Writer) error { return c.run(a, on, w) })
}

func (c *summaryCmd) run(a *app, on patrimoine.Date, w io.Writer) error {
	s := a.pf.Summarize(on)
	for _, skip := range s.Incomplete {
		a.log.Debug("incomplete property", zap.String("property", skip.PropertyID), zap.String("reason", skip.Reason))
	}
	return c.print(w, s, func() string { return renderer.RenderSummary(&s) })
}
