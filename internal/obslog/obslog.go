// Package obslog wires oso.Logger to github.com/hashicorp/go-hclog. The
// core package never imports hclog itself (see pkg/oso.Logger); this is
// the one place that concrete dependency is allowed to show up, so a
// host embedding the engine can swap it for any other sink without
// touching dispatch code.
package obslog

import (
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
)

// Logger adapts an hclog.Logger to the oso.Logger interface.
type Logger struct {
	hc hclog.Logger
}

// New builds a Logger named "oso" at the given level, writing to w. A nil
// w defaults to os.Stderr.
func New(level string, w io.Writer) Logger {
	if w == nil {
		w = os.Stderr
	}
	return Logger{hc: hclog.New(&hclog.LoggerOptions{
		Name:   "oso",
		Level:  hclog.LevelFromString(level),
		Output: w,
	})}
}

// Null returns a Logger that discards everything, for tests and embedders
// that don't want dispatch diagnostics.
func Null() Logger {
	return Logger{hc: hclog.NewNullLogger()}
}

// Warn implements oso.Logger.
func (l Logger) Warn(msg string, keyvals ...any) {
	l.hc.Warn(msg, keyvals...)
}

// Named returns a Logger scoped under an additional name component, e.g.
// for per-registry or per-host labeling.
func (l Logger) Named(name string) Logger {
	return Logger{hc: l.hc.Named(name)}
}
