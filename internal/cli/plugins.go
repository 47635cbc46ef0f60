package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// pluginsCommand reports the loader's view of the external plugins directory:
// one line per plugin directory, loaded or skipped with the reason.
func (a *app) pluginsCommand() *cobra.Command {
	var asJSON bool

	c := &cobra.Command{
		Use:   "plugins",
		Short: "List discovered external plugins",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries := a.report.Entries

			if asJSON {
				out, err := json.MarshalIndent(entries, "", "  ")
				if err != nil {
					return fmt.Errorf("marshaling plugin report: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(out))
				return nil
			}

			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No external plugins found.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "DIR\tVERB\tVERSION\tSTATUS")
			for _, e := range entries {
				verb, version := e.Verb, e.Version
				status := "loaded"
				if e.Skipped != "" {
					verb, version = "-", "-"
					status = "skipped (" + e.Skipped + ")"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Dir, verb, version, status)
			}
			return w.Flush()
		},
	}

	c.Flags().BoolVar(&asJSON, "json", false, "Output in JSON format")
	return c
}
