package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/verbkit-labs/verbkit/internal/branding"
)

func (a *app) versionCommand() *cobra.Command {
	var (
		short  bool
		asJSON bool
	)

	c := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			if short {
				fmt.Fprintln(cmd.OutOrStdout(), a.buildVersion)
				return nil
			}

			if asJSON {
				info := map[string]string{
					"version": a.buildVersion,
					"commit":  a.buildCommit,
					"date":    a.buildDate,
				}
				out, err := json.MarshalIndent(info, "", "  ")
				if err != nil {
					return fmt.Errorf("marshaling version info: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(out))
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (commit: %s, built: %s)\n",
				branding.CLIName(), a.buildVersion, a.buildCommit, a.buildDate)
			return nil
		},
	}

	c.Flags().BoolVar(&short, "short", false, "Print version number only")
	c.Flags().BoolVar(&asJSON, "json", false, "Print version info as JSON")
	return c
}
