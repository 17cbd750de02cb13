package run

import (
	"context"
	"io"
	"os"

	"github.com/OLC-Bioinformatics/PoreSippr-GUI/internal/config"
	"github.com/OLC-Bioinformatics/PoreSippr-GUI/internal/logfile"
	"github.com/OLC-Bioinformatics/PoreSippr-GUI/internal/stage"
	"github.com/spf13/cobra"
)

// Options are the inputs of one launch. Zero values use the running process.
type Options struct {
	ConfigPath string
	Profile    string
	// Executable locates the default config file and application directory.
	Executable string
	// Environ is the starting environment; nil means os.Environ().
	Environ []string
	Stdin   io.Reader
}

// NewCmd creates the `poresippr run` command.
func NewCmd() *cobra.Command {
	var opts Options
	cmd := &cobra.Command{
		Use:           "run",
		Short:         "Activate the environment, run the application and log everything",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Launch(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to config file (.cue)")
	cmd.Flags().StringVar(&opts.Profile, "profile", "", "Launch profile: conda|plain")
	return cmd
}

// Launch runs the whole pipeline with its output going to the log file.
// Only config and log-open failures are returned as plain errors; otherwise
// the result carries the exit status of the last command.
func Launch(ctx context.Context, opts Options) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, cfgFile, err := LoadConfig(opts.ConfigPath, opts.Profile, opts.Executable)
	if err != nil {
		return err
	}
	stdin := opts.Stdin
	if stdin == nil {
		stdin = os.Stdin
	}
	deps := stage.Deps{
		Stdin:      stdin,
		Environ:    opts.Environ,
		Executable: opts.Executable,
	}
	in := stage.Envelope{Steps: []stage.Step{}, Meta: &stage.Meta{ConfigPath: cfgFile, Config: &cfg}}

	stages := PreparedStages(cfg)
	env, err := stage.Run(ctx, stages[0], in, deps)
	if err != nil {
		return err
	}
	f, err := logfile.Open(env.Meta.Paths.LogFile, logfile.Mode(cfg.LogMode))
	if err != nil {
		return err
	}
	defer f.Close()
	deps.Log = logfile.NewLogger(f, cfg.Verbose)
	deps.Out = f

	env, err = runStages(ctx, env, stages[1:], deps)
	if err != nil {
		deps.Log.Error("launch aborted", "err", err)
		return err
	}
	return evaluateRunExit(env)
}

// LoadConfig loads the layered configuration; without an explicit file the
// directory of the launcher executable is searched.
func LoadConfig(path, profile, executable string) (config.Config, string, error) {
	return config.Load(config.LoadOptions{
		ConfigFilePath: path,
		SearchDirs:     []string{stage.ExecutableDir(executable)},
		Profile:        profile,
	})
}
