package obslog

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWarnWritesToConfiguredOutput(t *testing.T) {
	var buf bytes.Buffer
	l := New("warn", &buf)

	l.Warn("class lattice cycle detected", "class_a", "A", "class_b", "B")

	assert.Contains(t, buf.String(), "class lattice cycle detected")
	assert.Contains(t, buf.String(), "class_a=A")
}

func TestNullDiscardsOutput(t *testing.T) {
	l := Null()
	assert.NotPanics(t, func() { l.Warn("ignored") })
}

func TestNamedScopesTheLoggerName(t *testing.T) {
	var buf bytes.Buffer
	l := New("trace", &buf).Named("dispatch")

	l.Warn("hello")
	assert.Contains(t, buf.String(), "oso.dispatch")
}
