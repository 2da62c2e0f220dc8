package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/google/subcommands"
	patrimoine "github.com/timaelia1-mgt/patrimoine-immo-sub000"
	"github.com/timaelia1-mgt/patrimoine-immo-sub000/renderer"
)

type scheduleCmd struct {
	outputFlags
	id string
}

func (*scheduleCmd) Name() string     { return "schedule" }
func (*scheduleCmd) Synopsis() string { return "display the amortization table of a loan" }
func (*scheduleCmd) Usage() string {
	return `immo schedule -p <id> [-json | -q <query>]

  Displays the month by month amortization table of a CREDIT property's loan.
`
}

func (c *scheduleCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "p", "", "Property id.")
	c.outputFlags.SetFlags(f)
}

func (c *scheduleCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return execute(c.run)
}

func (c *scheduleCmd) run(a *app, w io.Writer) error {
	p, err := a.property(c.id)
	if err != nil {
		return err
	}
	if p.Financing != patrimoine.Credit {
		return fmt.Errorf("property %q is not financed by a loan", p.ID)
	}
	rows := p.Schedule(patrimoine.Today())
	if len(rows) == 0 {
		return fmt.Errorf("the loan of property %q has no principal or no duration", p.ID)
	}
	v := &renderer.ScheduleView{
		Property:      p,
		Payment:       p.LoanPayment(),
		TotalInterest: patrimoine.TotalInterest(rows),
		Rows:          rows,
	}
	return c.print(w, rows, func() string { return renderer.RenderSchedule(v) })
}
