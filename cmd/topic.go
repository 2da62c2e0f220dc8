package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"
	"github.com/timaelia1-mgt/patrimoine-immo-sub000/docs"
)

type topicCmd struct {
	raw  bool
	list bool
}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "show documentation" }
func (*topicCmd) Usage() string {
	return `immo topic [-list] [<topic>...]

Show documentation for the given topics, '*' for every topic. Without a
topic, shows the introduction and the list of topics.
`
}

func (c *topicCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.raw, "raw", false, "print the markdown source instead of rendering it")
	f.BoolVar(&c.list, "list", false, "list the topics and their title")
}

func (c *topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.run(os.Stdout, f.Args()...); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading doc: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (c *topicCmd) run(w io.Writer, topics ...string) error {
	if c.list {
		return listTopics(w)
	}
	if len(topics) == 0 {
		topics = []string{"readme"}
	}
	doc, err := docs.GetTopics(topics...)
	if err != nil {
		return err
	}
	if c.raw {
		_, err = io.WriteString(w, doc)
		return err
	}
	return printMarkdown(w, doc)
}

func listTopics(w io.Writer) error {
	topics, err := docs.GetAllTopics()
	if err != nil {
		return err
	}
	for _, topic := range topics {
		title, err := docs.Title(topic)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%-15s %s\n", topic, title)
	}
	return nil
}
