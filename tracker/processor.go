package tracker

import (
	"context"

	"github.com/nvr-ai/go-yolo/images"
	"github.com/nvr-ai/go-yolo/yolo"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Frame is the image the output tensor was computed from.
type Frame interface {
	// Size returns the frame dimensions in pixels.
	Size() (width, height int)
	// DrawBox outlines a rectangle already clamped to the frame.
	DrawBox(r images.Rect)
}

// Publisher receives everything the processor emits.
type Publisher interface {
	PublishMarker(ctx context.Context, m Marker) error
	PublishFrame(ctx context.Context, frameID string, f Frame) error
}

// Processor turns raw network outputs into markers for one target label.
type Processor struct {
	cfg       Config
	detector  *yolo.Config
	publisher Publisher
	logger    *zap.Logger
}

// NewProcessor creates a processor.
//
// Arguments:
//   - cfg: The tracker parameters.
//   - detector: The decode geometry shared read-only with other goroutines.
//   - publisher: Receives markers and frames.
//   - logger: The logger, zap.NewNop() when nil.
//
// Returns:
//   - *Processor: The processor.
//   - error: An error if a dependency is missing.
func NewProcessor(cfg Config, detector *yolo.Config, publisher Publisher, logger *zap.Logger) (*Processor, error) {
	if detector == nil {
		return nil, errors.New("detector config is required")
	}
	if publisher == nil {
		return nil, errors.New("publisher is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Processor{cfg: cfg, detector: detector, publisher: publisher, logger: logger}, nil
}

// ProcessOutput decodes one output tensor and publishes the results.
//
// A marker is published for every detection of the configured label. In debug
// mode those detections are also drawn on the frame. The frame is always
// published, whether or not anything was detected.
//
// Arguments:
//   - ctx: The context passed to the publisher.
//   - output: The raw network output.
//   - frame: The source frame, may be nil.
//
// Returns:
//   - []Marker: The markers that were published.
//   - error: A decode or publish error.
func (p *Processor) ProcessOutput(ctx context.Context, output []float32, frame Frame) ([]Marker, error) {
	dets, err := yolo.Decode(output, p.detector, p.cfg.Confidence)
	if err != nil {
		return nil, errors.Wrap(err, "decoding output")
	}

	matched := FilterByLabel(dets, p.cfg.Label)
	markers := make([]Marker, 0, len(matched))
	for i, det := range matched {
		m := NewMarker(i, p.cfg.LinkName, det)
		if err := p.publisher.PublishMarker(ctx, m); err != nil {
			return markers, errors.Wrapf(err, "publishing marker %d", m.ID)
		}
		markers = append(markers, m)

		if p.cfg.Debug {
			p.logger.Debug("matched label",
				zap.String("label", det.Label),
				zap.Float32("score", det.Score),
				zap.Stringer("detection", det),
			)
			if frame != nil {
				w, h := frame.Size()
				frame.DrawBox(det.Rect().Clamp(w, h))
			}
		}
	}

	if frame != nil {
		if err := p.publisher.PublishFrame(ctx, p.cfg.LinkName, frame); err != nil {
			return markers, errors.Wrap(err, "publishing frame")
		}
	}
	return markers, nil
}

// LogPublisher writes markers and frame notifications to a logger.
type LogPublisher struct {
	Logger *zap.Logger
}

// PublishMarker logs the marker.
func (l LogPublisher) PublishMarker(_ context.Context, m Marker) error {
	l.Logger.Info("marker",
		zap.Int("id", m.ID),
		zap.String("frame_id", m.FrameID),
		zap.String("ns", m.Namespace),
		zap.String("label", m.Label),
		zap.Float32("score", m.Score),
		zap.Float32("x", m.X),
		zap.Float32("y", m.Y),
	)
	return nil
}

// PublishFrame logs the frame size.
func (l LogPublisher) PublishFrame(_ context.Context, frameID string, f Frame) error {
	w, h := f.Size()
	l.Logger.Debug("frame", zap.String("frame_id", frameID), zap.Int("width", w), zap.Int("height", h))
	return nil
}
