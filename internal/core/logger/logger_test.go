package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestBuild_JSONLevel(t *testing.T) {
	var buf bytes.Buffer
	l, done := Build(Options{Level: "WARN", JSON: true, Out: &buf})
	l.Info("dropped")
	l.Warn("kept", zap.String("k", "v"))
	done()

	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), `"msg":"kept"`)
	assert.Contains(t, buf.String(), `"k":"v"`)
}

func TestBuild_BadLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	l, done := Build(Options{Level: "loud", JSON: true, Out: &buf})
	l.Debug("no")
	l.Info("yes")
	done()
	assert.NotContains(t, buf.String(), `"msg":"no"`)
	assert.Contains(t, buf.String(), `"msg":"yes"`)
}

func TestBuild_RotateWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	var buf bytes.Buffer
	l, done := Build(Options{Level: "info", Out: &buf, Rotate: FileRotate{Enable: true, Filename: path}})
	l.Info("to file")
	done()

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "to file")
	assert.NotContains(t, string(b), "\x1b[")
}

func TestToWriter(t *testing.T) {
	var buf bytes.Buffer
	l, done := Build(Options{Level: "debug", JSON: true, Out: &buf})
	w := ToWriter(l, zapcore.DebugLevel)
	_, err := w.Write([]byte("[GIN-debug] GET / --> handler\n"))
	require.NoError(t, err)
	done()
	assert.Contains(t, buf.String(), `[GIN-debug] GET / --> handler"`)
}
