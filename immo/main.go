// Command immo reports on a rental property portfolio.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
	"github.com/timaelia1-mgt/patrimoine-immo-sub000/cmd"
)

const name = "immo"

func main() {
	// does nothing unless the shell asks for a completion
	cmd.Completion().Complete(name)

	commander := subcommands.NewCommander(flag.CommandLine, name)
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()

	if sub := flag.Arg(0); sub != "" && !cmd.IsCommand(sub) && !builtin(sub) {
		if found, code := cmd.RunExtension(sub, flag.Args()[1:]); found {
			os.Exit(code)
		}
	}
	os.Exit(int(commander.Execute(context.Background())))
}

// builtin reports whether sub is one of the commands subcommands provides.
func builtin(sub string) bool {
	switch sub {
	case "help", "flags", "commands":
		return true
	}
	return false
}
