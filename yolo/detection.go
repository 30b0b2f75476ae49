package yolo

import (
	"fmt"

	"github.com/nvr-ai/go-yolo/images"
)

// Detection is one box that survived both confidence filters.
type Detection struct {
	// Label is the name of the most probable class.
	Label string
	// ClassID is the index of Label in the config's label list.
	ClassID int
	// X and Y are the top-left corner in pixels and may be negative.
	X, Y float32
	// Width and Height are the box size in pixels.
	Width, Height float32
	// Score is objectness multiplied by the top class probability.
	Score float32
}

// Center returns the box center in pixels.
func (d Detection) Center() (float32, float32) {
	return d.X + d.Width/2, d.Y + d.Height/2
}

// Rect truncates the box to integer pixel coordinates.
func (d Detection) Rect() images.Rect {
	x, y := int(d.X), int(d.Y)
	return images.Rect{X1: x, Y1: y, X2: x + int(d.Width), Y2: y + int(d.Height)}
}

func (d Detection) String() string {
	return fmt.Sprintf("Object %s (confidence %f): (%f, %f) %fx%f",
		d.Label, d.Score, d.X, d.Y, d.Width, d.Height)
}
