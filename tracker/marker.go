package tracker

import (
	"github.com/nvr-ai/go-yolo/yolo"
)

// MarkerNamespace groups the markers emitted by the tracker.
const MarkerNamespace = "onnx_object_detection"

// Marker is a visualization marker placed at the center of a detection.
type Marker struct {
	ID        int
	FrameID   string
	Namespace string
	Label     string
	Score     float32
	X, Y, Z   float32
}

// NewMarker builds the marker for one detection.
func NewMarker(id int, frameID string, det yolo.Detection) Marker {
	x, y := det.Center()
	return Marker{
		ID:        id,
		FrameID:   frameID,
		Namespace: MarkerNamespace,
		Label:     det.Label,
		Score:     det.Score,
		X:         x,
		Y:         y,
	}
}

// FilterByLabel returns the detections carrying label, in their original order.
func FilterByLabel(dets []yolo.Detection, label string) []yolo.Detection {
	out := make([]yolo.Detection, 0, len(dets))
	for _, d := range dets {
		if d.Label == label {
			out = append(out, d)
		}
	}
	return out
}
