package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ListEntry describes one registered test.
type ListEntry struct {
	Suite   string `json:"suite"`
	Group   string `json:"group"`
	Name    string `json:"name"`
	Ignored bool   `json:"ignored"`
	File    string `json:"file"`
	Line    int    `json:"line"`
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the registered tests",
		Long: `List every registered test in run order.

Examples:
  fixture list
  fixture list --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listTests(rootOpts, cmd)
		},
	}
}

func listTests(opts *RootOptions, cmd *cobra.Command) error {
	entries := []ListEntry{}
	for _, s := range opts.Suites {
		for _, g := range s.Groups {
			for _, c := range g.Cases {
				entries = append(entries, ListEntry{
					Suite:   s.Label,
					Group:   g.Name,
					Name:    c.Name,
					Ignored: c.Ignore,
					File:    c.File,
					Line:    c.Line,
				})
			}
		}
	}

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if opts.Format == "json" {
		return out.Success(entries)
	}

	w := cmd.OutOrStdout()
	for _, s := range opts.Suites {
		for _, id := range s.List() {
			fmt.Fprintf(w, "%s %s:%d\n", id.PrintableName, id.File, id.Line)
		}
	}
	fmt.Fprintf(w, "%d test(s)\n", len(entries))
	return nil
}
