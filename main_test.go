package main

import (
	"bytes"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestFatalEntriesAreMirroredToStderrWriter(t *testing.T) {
	var buf bytes.Buffer

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	logger.ExitFunc = func(int) {}
	logger.AddHook(&stderrMirrorHook{out: &buf})

	logger.Fatalf("failed to write whitelist file '%s'", ".unicode_whitelist.json")

	assert.Contains(t, buf.String(), "failed to write whitelist file")
}

func TestMirrorHookCoversErrorAndAboveOnly(t *testing.T) {
	hook := &stderrMirrorHook{}

	assert.Contains(t, hook.Levels(), logrus.FatalLevel)
	assert.Contains(t, hook.Levels(), logrus.ErrorLevel)
	assert.NotContains(t, hook.Levels(), logrus.InfoLevel)
}
