package run

import (
	"fmt"

	"github.com/OLC-Bioinformatics/PoreSippr-GUI/internal/config"
	"github.com/OLC-Bioinformatics/PoreSippr-GUI/internal/stage"
)

// PreparedStages returns the deterministic stage order for the profile.
func PreparedStages(cfg config.Config) []string {
	if cfg.Conda() {
		return stage.CondaStages()
	}
	return stage.PlainStages()
}

// StagesUntil cuts stages after until (inclusive). An empty until stops
// before run-application so nothing is launched.
func StagesUntil(stages []string, until string) ([]string, error) {
	if until == "" {
		for i, name := range stages {
			if name == stage.RunApplication {
				return stages[:i], nil
			}
		}
		return stages, nil
	}
	for i, name := range stages {
		if name == until {
			return stages[:i+1], nil
		}
	}
	return nil, fmt.Errorf("unknown --until-stage: %s", until)
}
