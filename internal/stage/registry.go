package stage

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/OLC-Bioinformatics/PoreSippr-GUI/internal/logfile"
)

// Deps carries what stages need from the outside world. Zero values are
// usable: output is discarded and the process environment is used.
type Deps struct {
	// Log receives the launcher's own lines.
	Log *log.Logger
	// Out receives the application's and hook scripts' stdout and stderr.
	Out io.Writer
	// Stdin is handed to the application.
	Stdin io.Reader
	// Environ is the starting environment; nil means os.Environ().
	Environ []string
	// Executable is the launcher path used to derive the application directory.
	Executable string
	// WorkDir is the application's working directory; empty means inherit.
	WorkDir string
}

func (d Deps) logger() *log.Logger {
	if d.Log == nil {
		return logfile.Discard()
	}
	return d.Log
}

func (d Deps) out() io.Writer {
	if d.Out == nil {
		return io.Discard
	}
	return d.Out
}

func (d Deps) environ() []string {
	if d.Environ == nil {
		return os.Environ()
	}
	return d.Environ
}

// Runner executes a stage.
type Runner func(ctx context.Context, in Envelope, deps Deps) (Envelope, error)

var registry = map[string]Runner{}

// Register adds a stage runner.
func Register(name string, r Runner) {
	registry[name] = r
}

// Names returns the registered stage names in pipeline order.
func Names() []string {
	out := make([]string, 0, len(registry))
	for _, n := range pipelineOrder {
		if _, ok := registry[n]; ok {
			out = append(out, n)
		}
	}
	return out
}

// Run executes a registered stage by name.
func Run(ctx context.Context, name string, in Envelope, deps Deps) (Envelope, error) {
	r, ok := registry[name]
	if !ok {
		return Envelope{}, ErrUnknown{name: name}
	}
	out, err := r(ctx, in, deps)
	if err != nil {
		return Envelope{}, err
	}
	if out.Meta == nil {
		out.Meta = &Meta{}
	}
	out.Meta.Stage = name
	return out, nil
}

// ErrUnknown is returned when a stage is not found.
type ErrUnknown struct{ name string }

func (e ErrUnknown) Error() string { return "unknown stage: " + e.name }
