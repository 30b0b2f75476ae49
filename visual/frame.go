// Package visual - gocv backed frames and frame publishing.
package visual

import (
	"context"
	"fmt"
	"image/color"
	"path/filepath"
	"sync"

	"github.com/nvr-ai/go-yolo/images"
	"github.com/nvr-ai/go-yolo/tracker"
	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

// BoxColor is the outline color of detections.
var BoxColor = color.RGBA{R: 0, G: 255, B: 255, A: 255}

// MatFrame adapts a gocv.Mat to tracker.Frame.
type MatFrame struct {
	Mat       *gocv.Mat
	Color     color.RGBA
	Thickness int
}

// NewMatFrame wraps mat with the default box style.
func NewMatFrame(mat *gocv.Mat) *MatFrame {
	return &MatFrame{Mat: mat, Color: BoxColor, Thickness: 2}
}

// Size returns the frame dimensions in pixels.
func (f *MatFrame) Size() (int, int) {
	return f.Mat.Cols(), f.Mat.Rows()
}

// DrawBox outlines r on the underlying Mat.
func (f *MatFrame) DrawBox(r images.Rect) {
	if r.Empty() {
		return
	}
	gocv.Rectangle(f.Mat, r.ToImageRect(), f.Color, f.Thickness)
}

// FilePublisher writes every published frame to a directory and forwards
// markers to the embedded publisher.
type FilePublisher struct {
	tracker.Publisher

	Dir string

	mu    sync.Mutex
	count int
}

// PublishMarker forwards m to the embedded publisher, if any.
func (p *FilePublisher) PublishMarker(ctx context.Context, m tracker.Marker) error {
	if p.Publisher == nil {
		return nil
	}
	return p.Publisher.PublishMarker(ctx, m)
}

// PublishFrame encodes the frame as frame-N.jpg in Dir.
func (p *FilePublisher) PublishFrame(ctx context.Context, frameID string, f tracker.Frame) error {
	mf, ok := f.(*MatFrame)
	if !ok {
		return errors.Errorf("cannot write frame of type %T", f)
	}

	p.mu.Lock()
	n := p.count
	p.count++
	p.mu.Unlock()

	path := filepath.Join(p.Dir, fmt.Sprintf("frame-%d.jpg", n))
	if !gocv.IMWrite(path, *mf.Mat) {
		return errors.Errorf("writing %s", path)
	}

	if p.Publisher != nil {
		return p.Publisher.PublishFrame(ctx, frameID, f)
	}
	return nil
}
