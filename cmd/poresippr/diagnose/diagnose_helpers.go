package diagnose

import (
	"context"
	"fmt"
	"path/filepath"

	runpkg "github.com/OLC-Bioinformatics/PoreSippr-GUI/cmd/poresippr/run"
	"github.com/OLC-Bioinformatics/PoreSippr-GUI/internal/logfile"
	"github.com/OLC-Bioinformatics/PoreSippr-GUI/internal/stage"
	"github.com/spf13/cobra"
)

func dumpStageBoundary(dir string) runpkg.StageHook {
	if dir == "" {
		return nil
	}
	return func(seq int, stageName, suffix string, env stage.Envelope) error {
		base := fmt.Sprintf("%03d_%s_%s.json", seq, stageName, suffix)
		return writeJSONFile(filepath.Join(dir, base), env)
	}
}

func runDiagnose(cmd *cobra.Command, f flags) error {
	cfg, cfgFile, err := runpkg.LoadConfig(f.config, f.profile, "")
	if err != nil {
		return err
	}
	stages, err := runpkg.StagesUntil(runpkg.PreparedStages(cfg), f.untilStage)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	deps := stage.Deps{
		Log:   logfile.NewLogger(cmd.ErrOrStderr(), f.verbose),
		Out:   cmd.ErrOrStderr(),
		Stdin: cmd.InOrStdin(),
	}
	in := stage.Envelope{Steps: []stage.Step{}, Meta: &stage.Meta{ConfigPath: cfgFile, Config: &cfg}}
	out, err := runpkg.RunStages(ctx, in, stages, deps, dumpStageBoundary(f.dumpDir))
	if err != nil {
		return err
	}
	return printEnvelopeOneLine(cmd.OutOrStdout(), out)
}
