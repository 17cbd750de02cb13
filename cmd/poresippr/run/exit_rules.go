package run

import (
	"fmt"

	"github.com/OLC-Bioinformatics/PoreSippr-GUI/internal/stage"
)

const exitCodeSuccess = 0

// runExitError carries the status of the last command. Its reason is
// already in the log, so nothing is printed for it.
type runExitError struct {
	code int
}

func (e runExitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }
func (e runExitError) ExitCode() int { return e.code }
func (e runExitError) Silent() bool  { return true }

func lastExitCode(env stage.Envelope) int {
	if env.Meta == nil {
		return exitCodeSuccess
	}
	return env.Meta.ExitCode
}

func evaluateRunExit(env stage.Envelope) error {
	code := lastExitCode(env)
	if code == exitCodeSuccess {
		return nil
	}
	return runExitError{code: code}
}
