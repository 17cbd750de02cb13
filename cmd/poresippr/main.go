package main

import (
	"os"
	"strings"

	"github.com/OLC-Bioinformatics/PoreSippr-GUI/cmd/poresippr/root"
)

type exitCoder interface {
	ExitCode() int
}

// silentError marks exits whose reason already went to the log file.
type silentError interface {
	Silent() bool
}

func main() {
	err := root.Execute(os.Args[1:])
	if err == nil {
		return
	}
	if s, ok := err.(silentError); !ok || !s.Silent() {
		// Print a short, single-line error to stderr on failures.
		msg := strings.Join(strings.Fields(err.Error()), " ")
		if msg == "" {
			msg = "error"
		}
		_, _ = os.Stderr.WriteString(msg + "\n")
	}
	code := 1
	if ec, ok := err.(exitCoder); ok {
		if c := ec.ExitCode(); c != 0 {
			code = c
		}
	}
	os.Exit(code)
}
