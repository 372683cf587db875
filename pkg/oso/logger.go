package oso

// Logger is the minimal structured-logging surface the core needs: a
// single warning sink for the one diagnostic the core emits (a
// class-lattice cycle, logged once per dispatch). Real logging
// (levels, fields, output sinks) lives in internal/obslog, which
// implements this interface over github.com/hashicorp/go-hclog so the
// core itself never imports a concrete logging library.
type Logger interface {
	Warn(msg string, keyvals ...any)
}

type noopLogger struct{}

func (noopLogger) Warn(string, ...any) {}
