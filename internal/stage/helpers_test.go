package stage

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/OLC-Bioinformatics/PoreSippr-GUI/internal/config"
	"github.com/OLC-Bioinformatics/PoreSippr-GUI/internal/logfile"
	"github.com/OLC-Bioinformatics/PoreSippr-GUI/internal/testutil"
)

type pipelineRun struct {
	env Envelope
	log string
}

func layoutConfig(l testutil.Layout) config.Config {
	cfg := config.DefaultConfig()
	cfg.AppDir = l.AppDir
	cfg.Revision = false
	return cfg
}

func runPipeline(t *testing.T, l testutil.Layout, cfg config.Config, stages []string, environ ...string) pipelineRun {
	t.Helper()
	var buf bytes.Buffer
	deps := Deps{
		Log:     logfile.NewLogger(&buf, true),
		Out:     &buf,
		Environ: l.Environ(environ...),
		WorkDir: l.AppDir,
	}
	env := Envelope{Steps: []Step{}, Meta: &Meta{Config: &cfg}}
	for _, name := range stages {
		var err error
		env, err = Run(context.Background(), name, env, deps)
		if err != nil {
			t.Fatalf("stage %s: %v", name, err)
		}
	}
	return pipelineRun{env: env, log: buf.String()}
}

func assertInOrder(t *testing.T, text string, parts ...string) {
	t.Helper()
	pos := 0
	for _, p := range parts {
		i := strings.Index(text[pos:], p)
		if i < 0 {
			t.Fatalf("missing %q after offset %d in:\n%s", p, pos, text)
		}
		pos += i + len(p)
	}
}

func mustJSON(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}

func stepFor(env Envelope, name string) (Step, bool) {
	for _, s := range env.Steps {
		if s.Stage == name {
			return s, true
		}
	}
	return Step{}, false
}
