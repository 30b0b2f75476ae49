package tracker

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tracker.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, float32(0.5), cfg.Confidence)
	assert.Equal(t, 416, cfg.TensorWidth)
	assert.Equal(t, "person", cfg.Label)
	assert.Equal(t, "camera", cfg.LinkName)
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
model_path: /models/tinyyolov2-8.onnx
confidence: 0.3
label: car
debug: false
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/models/tinyyolov2-8.onnx", cfg.ModelPath)
	assert.Equal(t, float32(0.3), cfg.Confidence)
	assert.Equal(t, "car", cfg.Label)
	assert.False(t, cfg.Debug)
	assert.Equal(t, "grid", cfg.OutputName, "unset keys keep their defaults")
	assert.Equal(t, 13, cfg.Detector.Rows)
}

func TestLoadConfigDetectorOverride(t *testing.T) {
	path := writeConfig(t, `
detector:
  rows: 2
  cols: 2
  anchors_per_cell: 1
  class_count: 2
  channels: 7
  cell_width: 16
  cell_height: 16
  anchors:
    - {width: 1, height: 2}
  labels: [person, car]
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	detector, err := cfg.DetectorConfig()
	require.NoError(t, err)
	assert.Equal(t, 2*2*7, detector.TensorLength())
	assert.Equal(t, []string{"person", "car"}, detector.Labels())
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"Confidence above one", "confidence: 1.5"},
		{"Empty label", "label: ''"},
		{"Zero tensor width", "tensor_width: 0"},
		{"Bad channel count", "detector: {channels: 100}"},
		{"Malformed", "confidence: [1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
