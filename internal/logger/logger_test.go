package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestCoreSplitsLevels(t *testing.T) {
	tests := []struct {
		name        string
		debug       bool
		expectDebug bool
	}{
		{"Production", false, false},
		{"Debug", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out, errOut bytes.Buffer
			log := zap.New(newCore(tt.debug, zapcore.AddSync(&out), zapcore.AddSync(&errOut)))

			log.Debug("debug entry")
			log.Info("info entry")
			log.Warn("warn entry")
			log.Error("error entry")

			assert.Equal(t, tt.expectDebug, bytes.Contains(out.Bytes(), []byte("debug entry")))
			assert.Contains(t, out.String(), "info entry")
			assert.NotContains(t, out.String(), "warn entry")
			assert.Contains(t, errOut.String(), "warn entry")
			assert.Contains(t, errOut.String(), "error entry")
			assert.NotContains(t, errOut.String(), "info entry")
		})
	}
}

func TestNew(t *testing.T) {
	assert.NotNil(t, New(false))
	assert.NotNil(t, New(true))
}
