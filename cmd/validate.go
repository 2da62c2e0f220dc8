package cmd

import (
	"context"
	"errors"
	"flag"
	"io"

	"github.com/google/subcommands"
	patrimoine "github.com/timaelia1-mgt/patrimoine-immo-sub000"
	"github.com/timaelia1-mgt/patrimoine-immo-sub000/renderer"
)

type validateCmd struct {
	outputFlags
	strict bool
}

func (*validateCmd) Name() string     { return "validate" }
func (*validateCmd) Synopsis() string { return "check the snapshot records for inconsistencies" }
func (*validateCmd) Usage() string {
	return `immo validate [-strict] [-json | -q <query>]

  Lists the warnings raised while reading the snapshot and the record
  inconsistencies: negative amounts, lots of unknown properties, lot rents
  that do not add up to the property rent, aid exceeding the rent...
  The reports are computed anyway, use -strict to fail on any issue.
`
}

func (c *validateCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.strict, "strict", false, "exit with an error when there is an issue")
	c.outputFlags.SetFlags(f)
}

func (c *validateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return execute(c.run)
}

// errIssues is returned in strict mode.
var errIssues = errors.New("the snapshot has issues")

func (c *validateCmd) run(a *app, w io.Writer) error {
	issues := patrimoine.ValidatePortfolio(a.pf)
	// decoding warnings are issues of the snapshot file itself
	all := make([]patrimoine.Issue, 0, len(a.warnings)+len(issues))
	for _, warning := range a.warnings {
		all = append(all, patrimoine.Issue{Record: "snapshot", Message: warning})
	}
	all = append(all, issues...)
	if err := c.print(w, all, func() string { return renderer.RenderIssues(all) }); err != nil {
		return err
	}
	if c.strict && len(all) > 0 {
		return errIssues
	}
	return nil
}
