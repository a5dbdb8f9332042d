package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerReportsTimestamp(t *testing.T) {
	var buf bytes.Buffer
	newLoggerTo(&buf, false).Info("started")

	out := buf.String()
	assert.Contains(t, out, "mixmate")
	assert.Contains(t, out, "started")
	// The timestamp is written before the level.
	assert.Positive(t, strings.Index(out, "INFO"), "got %q", out)
}

func TestLoggerVerboseLevel(t *testing.T) {
	var quiet, verbose bytes.Buffer
	newLoggerTo(&quiet, false).Debug("hidden")
	newLoggerTo(&verbose, true).Debug("shown")

	assert.Empty(t, quiet.String())
	assert.Contains(t, verbose.String(), "shown")
}
