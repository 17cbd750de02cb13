package run

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/OLC-Bioinformatics/PoreSippr-GUI/internal/stage"
)

// StageHook observes the envelope around each stage; seq is 1-based.
type StageHook func(seq int, name, suffix string, env stage.Envelope) error

// runStages executes the provided list of stage names in order.
func runStages(ctx context.Context, in stage.Envelope, stages []string, deps stage.Deps) (stage.Envelope, error) {
	return RunStages(ctx, in, stages, deps, nil)
}

// RunStages executes stages in order, logging each stage's duration at
// debug level and calling hook before and after every stage.
func RunStages(ctx context.Context, in stage.Envelope, stages []string, deps stage.Deps, hook StageHook) (stage.Envelope, error) {
	out := in
	for i, name := range stages {
		if hook != nil {
			if err := hook(i+1, name, "in", out); err != nil {
				return stage.Envelope{}, err
			}
		}
		started := time.Now()
		next, err := stage.Run(ctx, name, out, deps)
		if err != nil {
			return stage.Envelope{}, err
		}
		if deps.Log != nil {
			deps.Log.Debug("stage finished", "stage", name, "took", time.Since(started).Round(time.Millisecond))
		}
		if hook != nil {
			if err := hook(i+1, name, "out", next); err != nil {
				return stage.Envelope{}, err
			}
		}
		out = next
	}
	return out, nil
}

// EncodeJSON returns the JSON encoding with HTML escaping disabled and a
// trailing newline.
func EncodeJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return buf.String(), nil
}
