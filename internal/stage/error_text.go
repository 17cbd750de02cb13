package stage

import "strings"

func sanitizeErrorMessage(msg string) string {
	s := strings.Join(strings.Fields(msg), " ")
	if s == "" {
		return "error"
	}
	return s
}

// recordStep appends a step; a non-empty msg marks it failed and adds a
// sanitized envelope error.
func recordStep(out *Envelope, stageName string, exitCode int, msg string) {
	st := Step{Stage: stageName, ExitCode: exitCode}
	if msg != "" {
		m := sanitizeErrorMessage(msg)
		st.Error = &RecError{Stage: stageName, Message: m}
		out.Errors = append(out.Errors, Error{Stage: stageName, Message: m})
		SortEnvelopeErrors(out)
	}
	out.Steps = append(out.Steps, st)
}

func recordSkipped(out *Envelope, stageName string) {
	out.Steps = append(out.Steps, Step{Stage: stageName, Skipped: true})
}
