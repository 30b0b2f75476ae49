package yolo

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexerOffset(t *testing.T) {
	ix := NewIndexer(2, 2, 3)

	off, err := ix.Offset(1, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 2*4+1*2+1, off)
	assert.Equal(t, 11, off)

	off, err = ix.Offset(0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, off)

	// Planar layout: the next channel starts right after the last cell.
	off, err = ix.Offset(0, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, 4, off)
}

func TestIndexerCoversTensor(t *testing.T) {
	cfg := DefaultConfig()
	ix := cfg.Indexer()
	seen := make([]bool, cfg.TensorLength())

	for ch := 0; ch < cfg.Channels(); ch++ {
		for y := 0; y < cfg.Rows(); y++ {
			for x := 0; x < cfg.Cols(); x++ {
				off, err := ix.Offset(x, y, ch)
				require.NoError(t, err)
				require.False(t, seen[off], "offset %d produced twice", off)
				seen[off] = true
			}
		}
	}
}

func TestIndexerOutOfRange(t *testing.T) {
	ix := NewIndexer(2, 2, 3)
	tests := []struct {
		name     string
		x, y, ch int
	}{
		{"Negative x", -1, 0, 0},
		{"x past cols", 2, 0, 0},
		{"Negative y", 0, -1, 0},
		{"y past rows", 0, 2, 0},
		{"Negative channel", 0, 0, -1},
		{"Channel past end", 0, 0, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ix.Offset(tt.x, tt.y, tt.ch)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrIndexOutOfRange), "unexpected error: %v", err)
		})
	}
}
