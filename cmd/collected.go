package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/subcommands"
	patrimoine "github.com/timaelia1-mgt/patrimoine-immo-sub000"
	"github.com/timaelia1-mgt/patrimoine-immo-sub000/renderer"
)

type collectedCmd struct {
	outputFlags
	id   string
	from string
	to   string
}

func (*collectedCmd) Name() string     { return "collected" }
func (*collectedCmd) Synopsis() string { return "display the rent actually collected for a property" }
func (*collectedCmd) Usage() string {
	return `immo collected -p <id> [-from <month>] [-to <month>] [-json | -q <query>]

  Displays, for each tenant of the property, the months paid by the tenant
  and by the housing aid, and what is still outstanding over the range of
  months. Months use the YYYY-MM format. The range defaults to the current
  year up to the current month.
`
}

func (c *collectedCmd) SetFlags(f *flag.FlagSet) {
	now := patrimoine.Today().MonthOf()
	f.StringVar(&c.id, "p", "", "Property id.")
	f.StringVar(&c.from, "from", patrimoine.NewMonth(now.Year(), time.January).String(), "First month of the range.")
	f.StringVar(&c.to, "to", now.String(), "Last month of the range.")
	c.outputFlags.SetFlags(f)
}

func (c *collectedCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	r, err := c.months()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	return execute(func(a *app, w io.Writer) error { return c.run(a, r, w) })
}

// months parses the range of months.
func (c *collectedCmd) months() (patrimoine.MonthRange, error) {
	from, err := patrimoine.ParseMonth(c.from)
	if err != nil {
		return patrimoine.MonthRange{}, fmt.Errorf("invalid -from: %w", err)
	}
	to, err := patrimoine.ParseMonth(c.to)
	if err != nil {
		return patrimoine.MonthRange{}, fmt.Errorf("invalid -to: %w", err)
	}
	if to.Before(from) {
		return patrimoine.MonthRange{}, fmt.Errorf("-to %v is before -from %v", to, from)
	}
	return patrimoine.MonthRange{From: from, To: to}, nil
}

func (c *collectedCmd) run(a *app, r patrimoine.MonthRange, w io.Writer) error {
	p, err := a.property(c.id)
	if err != nil {
		return err
	}
	coll := a.pf.Collected(p.ID, r)
	return c.print(w, coll, func() string {
		return renderer.RenderCollection(&renderer.CollectionView{Property: p, Collection: coll})
	})
}
