// Package inference - Runs the detector model with onnxruntime and hands the raw
// output grid to the decoder.
package inference

import (
	"runtime"

	"github.com/pkg/errors"
	ort "github.com/yalue/onnxruntime_go"
)

// Provider represents an ONNX Runtime execution provider.
type Provider string

const (
	// CPUExecutionProvider uses the default CPU provider.
	CPUExecutionProvider Provider = "cpu"
	// CoreMLExecutionProvider uses Apple CoreML for macOS acceleration.
	CoreMLExecutionProvider Provider = "coreml"
	// OpenVINOExecutionProvider uses Intel OpenVINO.
	OpenVINOExecutionProvider Provider = "openvino"
)

// SharedLibPath returns the default onnxruntime shared library for this platform.
//
// Returns:
//   - string: The path to the shared library, empty if the platform is unknown.
func SharedLibPath() string {
	switch runtime.GOOS {
	case "windows":
		return "./third_party/onnxruntime.dll"
	case "darwin":
		return "./third_party/libonnxruntime.1.23.0.dylib"
	case "linux":
		if runtime.GOARCH == "arm64" {
			return "./third_party/onnxruntime_arm64.so"
		}
		return "./third_party/onnxruntime.so"
	}
	return ""
}

// appendProvider enables the execution provider on the session options.
func appendProvider(options *ort.SessionOptions, provider Provider) error {
	switch provider {
	case "", CPUExecutionProvider:
		return nil
	case CoreMLExecutionProvider:
		return errors.Wrap(options.AppendExecutionProviderCoreML(0), "enabling CoreML")
	case OpenVINOExecutionProvider:
		return errors.Wrap(options.AppendExecutionProviderOpenVINO(map[string]string{
			"device_type": "CPU",
			"precision":   "FP32",
		}), "enabling OpenVINO")
	default:
		return errors.Errorf("unsupported execution provider %q", provider)
	}
}
