package inference

import (
	"image"
	"os"
	"sync"

	"github.com/nvr-ai/go-yolo/yolo"
	"github.com/pkg/errors"
	ort "github.com/yalue/onnxruntime_go"
	"gorgonia.org/tensor"
)

// SessionArgs are the arguments for creating a new Session.
type SessionArgs struct {
	// ModelPath is the ONNX model file.
	ModelPath string
	// LibraryPath is the onnxruntime shared library, SharedLibPath() when empty.
	LibraryPath string
	// Provider is the execution provider.
	Provider Provider
	// InputName and OutputName are the model's tensor names.
	InputName  string
	OutputName string
	// Width and Height are the model input size.
	Width  int
	Height int
	// Normalize scales input pixels to [0, 1].
	Normalize bool
	// Detector describes the output grid.
	Detector *yolo.Config
}

// Session runs the detector model with preallocated input and output tensors.
//
// A Session is safe for concurrent use; runs are serialized.
type Session struct {
	mu      sync.Mutex
	args    SessionArgs
	session *ort.AdvancedSession
	input   *ort.Tensor[float32]
	output  *ort.Tensor[float32]
	last    []float32
}

// NewSession loads the model and allocates its tensors.
//
// Order of operations:
//  1. Library path check.
//  2. Environment setup, once per process.
//  3. Tensor allocation: [1, 3, height, width] in, [1, channels, rows, cols] out.
//  4. Session options and execution provider.
//  5. Session creation.
//
// Arguments:
//   - args: The session arguments.
//
// Returns:
//   - *Session: The session, to be released with Close.
//   - error: An error if any step fails. Partially created resources are released.
func NewSession(args SessionArgs) (*Session, error) {
	if args.Detector == nil {
		return nil, errors.New("detector config is required")
	}
	if args.Width <= 0 || args.Height <= 0 {
		return nil, errors.Errorf("input size %dx%d must be positive", args.Width, args.Height)
	}

	libPath := args.LibraryPath
	if libPath == "" {
		libPath = SharedLibPath()
	}
	if _, err := os.Stat(libPath); err != nil {
		return nil, errors.Wrapf(err, "onnxruntime library not found at %q", libPath)
	}

	if !ort.IsInitialized() {
		ort.SetSharedLibraryPath(libPath)
		if err := ort.InitializeEnvironment(); err != nil {
			return nil, errors.Wrap(err, "initializing onnxruntime environment")
		}
	}

	input, err := ort.NewEmptyTensor[float32](ort.NewShape(1, 3, int64(args.Height), int64(args.Width)))
	if err != nil {
		return nil, errors.Wrap(err, "creating input tensor")
	}

	d := args.Detector
	output, err := ort.NewEmptyTensor[float32](ort.NewShape(1, int64(d.Channels()), int64(d.Rows()), int64(d.Cols())))
	if err != nil {
		input.Destroy()
		return nil, errors.Wrap(err, "creating output tensor")
	}

	options, err := ort.NewSessionOptions()
	if err != nil {
		input.Destroy()
		output.Destroy()
		return nil, errors.Wrap(err, "creating session options")
	}
	defer options.Destroy()

	if err := appendProvider(options, args.Provider); err != nil {
		input.Destroy()
		output.Destroy()
		return nil, err
	}

	session, err := ort.NewAdvancedSession(
		args.ModelPath,
		[]string{args.InputName},
		[]string{args.OutputName},
		[]ort.Value{input},
		[]ort.Value{output},
		options,
	)
	if err != nil {
		input.Destroy()
		output.Destroy()
		return nil, errors.Wrapf(err, "creating session for %s", args.ModelPath)
	}

	return &Session{args: args, session: session, input: input, output: output}, nil
}

// Run prepares the image, runs the model and returns a copy of the raw output grid.
func (s *Session) Run(img image.Image) ([]float32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return nil, errors.New("session closed")
	}
	if err := PrepareInput(img, s.input.GetData(), s.args.Width, s.args.Height, s.args.Normalize); err != nil {
		return nil, errors.Wrap(err, "preparing input")
	}
	if err := s.session.Run(); err != nil {
		return nil, errors.Wrap(err, "running inference")
	}

	out := make([]float32, len(s.output.GetData()))
	copy(out, s.output.GetData())
	s.last = out
	return out, nil
}

// Output returns the last output grid as a (1, channels, rows, cols) tensor, or
// nil before the first Run.
func (s *Session) Output() tensor.Tensor {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.last == nil {
		return nil
	}
	d := s.args.Detector
	return tensor.New(tensor.WithShape(1, d.Channels(), d.Rows(), d.Cols()), tensor.WithBacking(s.last))
}

// Close releases the native session and tensors.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.input != nil {
		s.input.Destroy()
		s.input = nil
	}
	if s.output != nil {
		s.output.Destroy()
		s.output = nil
	}
	if s.session != nil {
		err := s.session.Destroy()
		s.session = nil
		if err != nil {
			return errors.Wrap(err, "destroying session")
		}
	}
	return nil
}
