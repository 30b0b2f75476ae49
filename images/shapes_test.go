package images

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestRectClamp validates clipping of boxes against the image bounds.
func TestRectClamp(t *testing.T) {
	tests := []struct {
		name     string
		r        Rect
		width    int
		height   int
		expected Rect
	}{
		{
			name:     "Inside",
			r:        Rect{10, 10, 50, 60},
			width:    416,
			height:   416,
			expected: Rect{10, 10, 50, 60},
		},
		{
			name:     "Negative origin keeps extent",
			r:        Rect{-10, -20, 30, 20},
			width:    416,
			height:   416,
			expected: Rect{0, 0, 40, 40},
		},
		{
			name:     "Past right and bottom edges",
			r:        Rect{400, 380, 500, 480},
			width:    416,
			height:   416,
			expected: Rect{400, 380, 416, 416},
		},
		{
			name:     "Fully outside",
			r:        Rect{500, 500, 600, 600},
			width:    416,
			height:   416,
			expected: Rect{500, 500, 500, 500},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.r.Clamp(tt.width, tt.height))
		})
	}
}

func TestRectGeometry(t *testing.T) {
	r := Rect{X1: 5, Y1: 10, X2: 25, Y2: 50}
	assert.Equal(t, 20, r.Width())
	assert.Equal(t, 40, r.Height())
	assert.False(t, r.Empty())
	assert.True(t, Rect{5, 5, 5, 9}.Empty())
	assert.Equal(t, image.Rect(5, 10, 25, 50), r.ToImageRect())
}
