package stage

import "sort"

// RecError is the error payload attached to a step.
type RecError struct {
	Stage   string `json:"stage"`
	Message string `json:"message"`
}

// Error is an envelope-level stage error.
type Error struct {
	Stage   string `json:"stage"`
	Message string `json:"message"`
}

// SortEnvelopeErrors orders errors by pipeline position, then message.
func SortEnvelopeErrors(env *Envelope) {
	if env == nil || len(env.Errors) == 0 {
		return
	}
	sort.SliceStable(env.Errors, func(i, j int) bool {
		ei, ej := env.Errors[i], env.Errors[j]
		if a, b := stageIndex(ei.Stage), stageIndex(ej.Stage); a != b {
			return a < b
		}
		return ei.Message < ej.Message
	})
}
