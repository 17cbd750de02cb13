package diagnose

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	runpkg "github.com/OLC-Bioinformatics/PoreSippr-GUI/cmd/poresippr/run"
	"github.com/OLC-Bioinformatics/PoreSippr-GUI/internal/stage"
	"github.com/spf13/cobra"
)

type flags struct {
	config     string
	profile    string
	untilStage string
	dumpDir    string
	verbose    bool
}

// NewCmd creates `poresippr diagnose`. It runs the launch pipeline with the
// log on stderr and prints the resulting envelope as one JSON line.
func NewCmd() *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:           "diagnose",
		Short:         "Run the launch pipeline up to a stage and print the envelope",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiagnose(cmd, f)
		},
	}
	cmd.Flags().StringVarP(&f.config, "config", "c", "", "Path to config file (.cue)")
	cmd.Flags().StringVar(&f.profile, "profile", "", "Launch profile: conda|plain")
	cmd.Flags().StringVar(&f.untilStage, "until-stage", "", "Run through this stage name (inclusive); default stops before run-application")
	cmd.Flags().StringVar(&f.dumpDir, "dump-dir", "", "Directory to write per-stage dumps (<seq>_<stage>_{in,out}.json)")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", true, "Include debug lines in the log")
	return cmd
}

func writeJSONFile(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create dump dir: %w", err)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

func printEnvelopeOneLine(w io.Writer, env stage.Envelope) error {
	if env.Meta == nil {
		env.Meta = &stage.Meta{}
	}
	stage.SortEnvelopeErrors(&env)
	s, err := runpkg.EncodeJSON(env)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, s)
	return err
}
