package root

import (
	"github.com/OLC-Bioinformatics/PoreSippr-GUI/cmd/poresippr/diagnose"
	"github.com/OLC-Bioinformatics/PoreSippr-GUI/cmd/poresippr/prepare"
	"github.com/OLC-Bioinformatics/PoreSippr-GUI/cmd/poresippr/run"
	"github.com/OLC-Bioinformatics/PoreSippr-GUI/cmd/poresippr/version"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for poresippr. Without a subcommand
// it launches the application with the default settings.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "poresippr",
		Short: "Launch the PoreSippr application inside its conda environment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run.Launch(cmd.Context(), run.Options{})
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Subcommands
	cmd.AddCommand(run.NewCmd())
	cmd.AddCommand(version.NewCmd())
	cmd.AddCommand(diagnose.NewCmd())
	cmd.AddCommand(prepare.NewCmd())

	return cmd
}

// Execute runs the root command with provided args.
func Execute(args []string) error {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	return cmd.Execute()
}
