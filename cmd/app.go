// Package cmd implements the immo command line.
package cmd

import (
	"flag"
	"fmt"

	"github.com/google/subcommands"
	patrimoine "github.com/timaelia1-mgt/patrimoine-immo-sub000"
	"github.com/timaelia1-mgt/patrimoine-immo-sub000/config"
	"github.com/timaelia1-mgt/patrimoine-immo-sub000/logger"
	"go.uber.org/zap"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	portfolioFile = flag.String("portfolio", "", "Path to the portfolio snapshot, JSON or YAML. Defaults to the configured one.")
	configFile    = flag.String("config", "", "Path to the configuration file. Defaults to immo.yaml in the working directory, if any.")
	Verbose       = flag.Bool("v", false, "log every decoding warning and the engine decisions")
)

// commands are the immo subcommands, by group.
var commands = []struct {
	group string
	cmd   subcommands.Command
}{
	{"reports", &summaryCmd{}},
	{"reports", &propertyCmd{}},
	{"reports", &lotsCmd{}},
	{"reports", &scheduleCmd{}},
	{"reports", &collectedCmd{}},
	{"reports", &projectionCmd{}},
	{"snapshot", &validateCmd{}},
	{"snapshot", &exportCmd{}},
	{"help", &topicCmd{}},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, e := range commands {
		c.Register(e.cmd, e.group)
	}
}

// IsCommand reports whether name is an immo subcommand.
func IsCommand(name string) bool {
	for _, e := range commands {
		if e.cmd.Name() == name {
			return true
		}
	}
	return false
}

// app is what the commands work on.
type app struct {
	cfg *config.Config
	log *zap.Logger
	pf  *patrimoine.Portfolio
	// warnings collected while decoding the snapshot.
	warnings []string
}

// loadApp loads the configuration, then the portfolio snapshot.
func loadApp() (*app, error) {
	cfg, err := config.Load(*configFile)
	if err != nil {
		return nil, err
	}
	lcfg := cfg.Logger()
	if *Verbose {
		lcfg.Level = "debug"
	}
	log, err := logger.New(lcfg)
	if err != nil {
		return nil, err
	}

	path := *portfolioFile
	if path == "" {
		path = cfg.Portfolio
	}
	pf, warnings, err := patrimoine.LoadPortfolio(path, cfg.Currency)
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		log.Debug("snapshot warning", zap.String("file", path), zap.String("warning", w))
	}
	if len(warnings) > 0 {
		log.Warn("snapshot has warnings, run immo validate for details", zap.String("file", path), zap.Int("count", len(warnings)))
	}
	pf.IRR = cfg.IRROptions()
	log.Debug("portfolio loaded", zap.String("file", path), zap.String("currency", pf.Currency),
		zap.Int("properties", len(pf.Properties)), zap.Int("lots", len(pf.Lots)), zap.Int("tenants", len(pf.Tenants)))
	return &app{cfg: cfg, log: log, pf: pf, warnings: warnings}, nil
}

// property returns the property id, or an error naming the known ones.
func (a *app) property(id string) (*patrimoine.Property, error) {
	if id == "" {
		return nil, fmt.Errorf("missing property, use -p <id>")
	}
	p, ok := a.pf.Property(id)
	if !ok {
		return nil, fmt.Errorf("unknown property %q", id)
	}
	return p, nil
}

// PropertyIDs returns the property IDs of the portfolio immo would load, for
// completion. It returns nothing when the portfolio cannot be loaded.
func PropertyIDs() []string {
	a, err := loadApp()
	if err != nil {
		return nil
	}
	ids := make([]string, 0, len(a.pf.Properties))
	for _, p := range a.pf.Properties {
		ids = append(ids, p.ID)
	}
	return ids
}
