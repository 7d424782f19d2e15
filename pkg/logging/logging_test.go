package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_DebugLevel(t *testing.T) {
	var buf bytes.Buffer

	log := New(false, &buf)
	log.Debug("hidden")
	assert.Empty(t, buf.String(), "debug records must be suppressed at info level")

	log = New(true, &buf)
	log.Debug("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestForSubsystem(t *testing.T) {
	var buf bytes.Buffer

	log := ForSubsystem(New(false, &buf), "rest")
	log.Info("request issued")

	out := buf.String()
	assert.Contains(t, out, "subsystem=rest")
	assert.Contains(t, out, "request issued")
}
