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

type propertyCmd struct {
	outputFlags
	id   string
	date string
}

func (*propertyCmd) Name() string     { return "property" }
func (*propertyCmd) Synopsis() string { return "display the detailed report of a property" }
func (*propertyCmd) Usage() string {
	return `immo property -p <id> [-d <date>] [-json | -q <query>]

  Displays the cash flow, the rentability indicators and, for a CREDIT
  property, the loan status of a property.
`
}

func (c *propertyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "p", "", "Property id.")
	f.StringVar(&c.date, "d", patrimoine.Today().String(), "Date of the report.")
	c.outputFlags.SetFlags(f)
}

func (c *propertyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := patrimoine.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	return execute(func(a *app, w io.Writer) error { return c.run(a, on, w) })
}

// propertyJSON is the JSON version of the property report.
type propertyJSON struct {
	Summary patrimoine.PropertySummary `json:"summary"`
	Loan    *renderer.LoanView         `json:"loan,omitempty"`
}

func (c *propertyCmd) run(a *app, on patrimoine.Date, w io.Writer) error {
	if _, err := a.property(c.id); err != nil {
		return err
	}
	v, _ := renderer.NewPropertyView(a.pf, c.id, on)
	return c.print(w, propertyJSON{Summary: v.PropertySummary, Loan: v.Loan}, func() string { return renderer.RenderProperty(v) })
}
