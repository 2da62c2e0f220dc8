package cmd

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/PaesslerAG/jsonpath"
	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
)

// outputFlags select how a report is printed: markdown by default, JSON, or
// the result of a JSONPath query over the JSON.
type outputFlags struct {
	json  bool
	query string
	raw   bool
}

func (o *outputFlags) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&o.json, "json", false, "print the report as JSON")
	f.StringVar(&o.query, "q", "", "print the result of a JSONPath query over the JSON report, e.g. '$.netCashFlow'")
	f.BoolVar(&o.raw, "raw", false, "print the markdown source instead of rendering it")
}

// print writes the report v. md renders its markdown version, it is only
// called when needed.
func (o *outputFlags) print(w io.Writer, v any, md func() string) error {
	switch {
	case o.query != "":
		res, err := query(v, o.query)
		if err != nil {
			return err
		}
		// scalars are printed as is, to be used in scripts
		switch res := res.(type) {
		case string, float64, bool:
			_, err = fmt.Fprintln(w, res)
		default:
			err = writeJSON(w, res)
		}
		return err
	case o.json:
		return writeJSON(w, v)
	case o.raw:
		_, err := io.WriteString(w, md())
		return err
	default:
		return printMarkdown(w, md())
	}
}

// query evaluates a JSONPath expression over the JSON encoding of v.
func query(v any, path string) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	res, err := jsonpath.Get(path, doc)
	if err != nil {
		return nil, fmt.Errorf("invalid query %q: %w", path, err)
	}
	// A query selecting a single element still returns a list.
	if list, ok := res.([]any); ok && len(list) == 1 {
		res = list[0]
	}
	return res, nil
}

// execute loads the application and runs a command on it.
func execute(run func(a *app, w io.Writer) error) subcommands.ExitStatus {
	a, err := loadApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.log.Sync()
	if err := run(a, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printMarkdown renders markdown for the terminal.
func printMarkdown(w io.Writer, md string) error {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(120),
	)
	if err != nil {
		return err
	}
	out, err := r.Render(md)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}
