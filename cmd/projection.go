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
)

type projectionCmd struct {
	outputFlags
	date   string
	rate   float64
	past   int
	future int
	yearly bool
	// set records the flags given on the command line, the others come
	// from the configuration.
	set map[string]bool
}

func (*projectionCmd) Name() string     { return "projection" }
func (*projectionCmd) Synopsis() string { return "project the portfolio net worth" }
func (*projectionCmd) Usage() string {
	return `immo projection [-d <date>] [-rate <r>] [-past <years>] [-future <years>] [-yearly] [-json | -q <query>]

  Values the portfolio every quarter around the date: CASH properties at
  their appreciated investment, CREDIT properties at the capital repaid.
  The defaults come from the configuration, see 'immo topic configuration'.
`
}

func (c *projectionCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", patrimoine.Today().String(), "Date of the current point.")
	f.Float64Var(&c.rate, "rate", 0, "Yearly appreciation of CASH properties, 0.02 is 2%.")
	f.IntVar(&c.past, "past", 0, "Years of history.")
	f.IntVar(&c.future, "future", 0, "Years ahead.")
	f.BoolVar(&c.yearly, "yearly", false, "Print one point per year instead of one per quarter.")
	c.outputFlags.SetFlags(f)
}

func (c *projectionCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := patrimoine.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	c.set = make(map[string]bool)
	f.Visit(func(fl *flag.Flag) { c.set[fl.Name] = true })
	return execute(func(a *app, w io.Writer) error { return c.run(a, on, w) })
}

// options merges the command line flags into the configured options.
func (c *projectionCmd) options(a *app, on patrimoine.Date) (patrimoine.ProjectionOptions, error) {
	opts := a.cfg.ProjectionOptions()
	opts.Now = on
	opts.Logger = a.log
	if c.set["rate"] {
		if c.rate <= -1 {
			return opts, fmt.Errorf("-rate must be greater than -1, got %v", c.rate)
		}
		opts.AppreciationRate = patrimoine.Some(c.rate)
	}
	if c.set["past"] {
		if c.past < 0 {
			return opts, fmt.Errorf("-past cannot be negative")
		}
		opts.PastYears = patrimoine.Some(c.past)
	}
	if c.set["future"] {
		if c.future <= 0 {
			return opts, fmt.Errorf("-future must be positive")
		}
		opts.FutureYears = c.future
	}
	return opts, nil
}

func (c *projectionCmd) run(a *app, on patrimoine.Date, w io.Writer) error {
	opts, err := c.options(a, on)
	if err != nil {
		return err
	}
	proj := a.pf.Projection(opts)
	v := &renderer.ProjectionView{Projection: proj, Yearly: c.yearly}
	var out any = proj
	if c.yearly {
		out = v.Rows()
	}
	return c.print(w, out, func() string { return renderer.RenderProjection(v) })
}
