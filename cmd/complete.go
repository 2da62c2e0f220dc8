package cmd

import (
	"flag"

	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
	patrimoine "github.com/timaelia1-mgt/patrimoine-immo-sub000"
	"github.com/timaelia1-mgt/patrimoine-immo-sub000/docs"
)

// Completion returns the shell completion of immo, built from the global
// flags and the flags of every subcommand.
func Completion() *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command, len(commands)),
		Flags: predictors(flag.CommandLine),
	}
	for _, e := range commands {
		fs := flag.NewFlagSet(e.cmd.Name(), flag.ContinueOnError)
		e.cmd.SetFlags(fs)
		sub := &complete.Command{Flags: predictors(fs)}
		if e.cmd.Name() == "topic" {
			topics, _ := docs.GetAllTopics()
			sub.Args = predict.Set(topics)
		}
		root.Sub[e.cmd.Name()] = sub
	}
	return root
}

// predictors maps every flag of fs to what completes its value.
func predictors(fs *flag.FlagSet) map[string]complete.Predictor {
	m := make(map[string]complete.Predictor)
	fs.VisitAll(func(f *flag.Flag) { m[f.Name] = predictor(f) })
	return m
}

func predictor(f *flag.Flag) complete.Predictor {
	if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
		return predict.Nothing
	}
	switch f.Name {
	case "p":
		return complete.PredictFunc(func(string) []string { return PropertyIDs() })
	case "portfolio", "config", "o":
		return predict.Files("*")
	case "d":
		return predict.Set{patrimoine.Today().String(), "-1y", "+1y"}
	default:
		return predict.Something
	}
}
