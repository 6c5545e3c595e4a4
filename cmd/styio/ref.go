package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/styio-lang/styio/pkg/help"
)

func (a *app) refCmd() *cobra.Command {
	var index bool
	cmd := &cobra.Command{
		Use:   "ref [topic]",
		Short: "Print the Styio syntax reference",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if index {
				fmt.Fprint(a.stdout, help.Index())
				return nil
			}
			topic := ""
			if len(args) == 1 {
				topic = args[0]
			}
			if !a.printRef(topic) {
				return exitError(exitUsage)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&index, "index", false, "list topics with a one-line summary")
	return cmd
}

// printRef prints the quick reference or one topic and reports success.
func (a *app) printRef(topic string) bool {
	if topic == "" {
		fmt.Fprint(a.stdout, help.QUICKREF)
		return true
	}
	name, content, err := help.MatchTopic(topic)
	if err != nil {
		fmt.Fprintln(a.stderr, a.styles.err.Render(err.Error()))
		return false
	}
	fmt.Fprintln(a.stdout, a.styles.title.Render(name))
	fmt.Fprintln(a.stdout, content)
	return true
}
