// Package tracker - Consumes decoded detections and publishes markers and frames.
package tracker

import (
	"os"

	"github.com/nvr-ai/go-yolo/yolo"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config holds the tracker node parameters.
type Config struct {
	// ModelPath is the path of the Tiny-YOLOv2 ONNX model.
	ModelPath string `json:"model_path" yaml:"model_path"`
	// LibraryPath overrides the onnxruntime shared library location.
	LibraryPath string `json:"library_path" yaml:"library_path"`
	// Provider selects the execution provider: cpu, coreml or openvino.
	Provider string `json:"provider" yaml:"provider"`
	// InputName and OutputName are the model's tensor names.
	InputName  string `json:"input_name" yaml:"input_name"`
	OutputName string `json:"output_name" yaml:"output_name"`
	// LinkName is the frame id stamped on markers and frames.
	LinkName string `json:"link_name" yaml:"link_name"`
	// Confidence is the threshold used by both decode filter stages.
	Confidence float32 `json:"confidence" yaml:"confidence"`
	// TensorWidth and TensorHeight are the model input size in pixels.
	TensorWidth  int `json:"tensor_width" yaml:"tensor_width"`
	TensorHeight int `json:"tensor_height" yaml:"tensor_height"`
	// Label is the class that produces markers.
	Label string `json:"label" yaml:"label"`
	// Debug enables box drawing and debug logging.
	Debug bool `json:"debug" yaml:"debug"`
	// Normalize scales input pixels to [0, 1] instead of [0, 255].
	Normalize bool `json:"normalize" yaml:"normalize"`
	// Detector is the output geometry of the network.
	Detector yolo.ConfigArgs `json:"detector" yaml:"detector"`
}

// DefaultConfig returns the parameters of the stock tracker launch.
func DefaultConfig() Config {
	return Config{
		ModelPath:    "tinyyolov2-8.onnx",
		Provider:     "cpu",
		InputName:    "image",
		OutputName:   "grid",
		LinkName:     "camera",
		Confidence:   0.5,
		TensorWidth:  416,
		TensorHeight: 416,
		Label:        "person",
		Debug:        true,
		Detector:     yolo.DefaultArgs(),
	}
}

// LoadConfig reads a YAML file on top of DefaultConfig and validates it.
//
// Arguments:
//   - path: The YAML file to read.
//
// Returns:
//   - Config: The merged configuration.
//   - error: An error if the file cannot be read, parsed or validated.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "reading tracker config")
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parsing tracker config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the parameters and the detector geometry.
func (c Config) Validate() error {
	if c.ModelPath == "" {
		return errors.New("model_path is required")
	}
	if c.Label == "" {
		return errors.New("label is required")
	}
	if c.Confidence < 0 || c.Confidence > 1 {
		return errors.Errorf("confidence %v not in [0, 1]", c.Confidence)
	}
	if c.TensorWidth <= 0 || c.TensorHeight <= 0 {
		return errors.Errorf("tensor size %dx%d must be positive", c.TensorWidth, c.TensorHeight)
	}
	if _, err := c.DetectorConfig(); err != nil {
		return err
	}
	return nil
}

// DetectorConfig builds the immutable decode geometry.
func (c Config) DetectorConfig() (*yolo.Config, error) {
	cfg, err := yolo.NewConfig(c.Detector)
	if err != nil {
		return nil, errors.Wrap(err, "detector")
	}
	return cfg, nil
}
