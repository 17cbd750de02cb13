package prepare

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/OLC-Bioinformatics/PoreSippr-GUI/internal/config"
	"github.com/OLC-Bioinformatics/PoreSippr-GUI/internal/desktop"
	"github.com/OLC-Bioinformatics/PoreSippr-GUI/internal/stage"
	"github.com/spf13/cobra"
)

// testEnvAlias is the shorthand accepted for the development environment.
const testEnvAlias = "test"

type options struct {
	appDir   string
	appsDir  string
	exec     string
	envPath  string
	hasConda bool
}

// NewCmd creates `poresippr prepare [ENV_PATH]`.
func NewCmd() *cobra.Command {
	var o options
	cmd := &cobra.Command{
		Use:   "prepare [ENV_PATH]",
		Short: "Install the desktop entry and write the launcher config",
		Long: "Writes PoreSippr.desktop into the application directory, copies it to the\n" +
			"user's applications directory and records the launch profile in poresippr.cue.\n" +
			"With ENV_PATH the conda profile is used; \"test\" selects the development environment.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 && args[0] != "" {
				o.envPath = args[0]
				o.hasConda = true
			}
			return runPrepare(cmd, o)
		},
	}
	cmd.Flags().StringVar(&o.appDir, "app-dir", "", "Application directory (default: the launcher's directory)")
	cmd.Flags().StringVar(&o.appsDir, "applications-dir", "", "Desktop applications directory (default: ~/.local/share/applications)")
	cmd.Flags().StringVar(&o.exec, "exec", "", "Launcher path written to Exec= (default: this executable)")
	return cmd
}

func runPrepare(cmd *cobra.Command, o options) error {
	exe := o.exec
	if exe == "" {
		p, err := os.Executable()
		if err != nil {
			return fmt.Errorf("locate launcher: %w", err)
		}
		exe = p
	}
	exe, err := filepath.Abs(exe)
	if err != nil {
		return err
	}
	appDir := o.appDir
	if appDir == "" {
		appDir = stage.ExecutableDir(exe)
	}
	if appDir, err = filepath.Abs(appDir); err != nil {
		return err
	}
	appsDir := o.appsDir
	if appsDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("locate home directory: %w", err)
		}
		appsDir = desktop.ApplicationsDir(home)
	}

	version, err := desktop.ReadVersion(filepath.Join(appDir, desktop.VersionFile))
	if err != nil {
		return err
	}
	entryPath := filepath.Join(appDir, desktop.FileName)
	if err := desktop.Write(entryPath, desktop.NewEntry(version, exe, appDir)); err != nil {
		return fmt.Errorf("write desktop entry: %w", err)
	}
	if _, err := desktop.Install(entryPath, appsDir); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Desktop entry created and copied to %s\n", appsDir)

	cfgPath := filepath.Join(appDir, config.FileName)
	if err := config.Write(cfgPath, launchConfig(o, appDir)); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Launcher config created at %s\n", cfgPath)
	return nil
}

func launchConfig(o options, appDir string) config.Config {
	cfg := config.DefaultConfig()
	cfg.AppDir = appDir
	if !o.hasConda {
		cfg.Profile = config.ProfilePlain
		return cfg
	}
	cfg.Profile = config.ProfileConda
	if o.envPath != testEnvAlias {
		cfg.Env = o.envPath
	}
	return cfg
}
