package version

import (
	"fmt"
	"runtime"
	"time"

	"github.com/OLC-Bioinformatics/PoreSippr-GUI/cli"
	"github.com/OLC-Bioinformatics/PoreSippr-GUI/internal/buildinfo"
	"github.com/spf13/cobra"
)

// NewCmd creates the `poresippr version` command.
func NewCmd() *cobra.Command {
	var short, asJSON bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the launcher version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if short {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), buildinfo.ResolvedVersion())
				return err
			}
			if !asJSON {
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "poresippr %s\n", buildinfo.Summary())
				return err
			}

			// JSON goes to stdout, a human friendly line to stderr.
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "poresippr version: %s\n", buildinfo.Summary())
			out := map[string]any{
				"version":   buildinfo.ResolvedVersion(),
				"commit":    buildinfo.ResolvedCommit(),
				"date":      buildinfo.Date,
				"released":  cli.NiceDate(),
				"built_by":  buildinfo.BuiltBy,
				"go":        runtime.Version(),
				"go_os":     runtime.GOOS,
				"go_arch":   runtime.GOARCH,
				"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
			}
			return encodeJSON(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().BoolVar(&short, "short", false, "Print only the version string")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print detailed JSON version info")
	return cmd
}
