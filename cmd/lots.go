package cmd

import (
	"context"
	"flag"
	"io"

	"github.com/google/subcommands"
	"github.com/timaelia1-mgt/patrimoine-immo-sub000/renderer"
	"go.uber.org/zap"
)

type lotsCmd struct {
	outputFlags
	id string
}

func (*lotsCmd) Name() string     { return "lots" }
func (*lotsCmd) Synopsis() string { return "display the per lot breakdown of a property" }
func (*lotsCmd) Usage() string {
	return `immo lots -p <id> [-json | -q <query>]

  Displays the rent, the prorated charges and loan payment, and the tenants
  of every lot of a property.
`
}

func (c *lotsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "p", "", "Property id.")
	c.outputFlags.SetFlags(f)
}

func (c *lotsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return execute(c.run)
}

func (c *lotsCmd) run(a *app, w io.Writer) error {
	p, err := a.property(c.id)
	if err != nil {
		return err
	}
	lots, _ := a.pf.LotReports(p.ID)
	if len(lots) == 0 {
		a.log.Info("property has no lot", zap.String("property", p.ID))
	}
	return c.print(w, lots, func() string { return renderer.RenderLots(&renderer.LotsView{Property: p, Lots: lots}) })
}
