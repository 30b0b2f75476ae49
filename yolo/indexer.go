package yolo

import "github.com/pkg/errors"

// Indexer maps (cell x, cell y, channel) triples onto a flat planar tensor.
//
// The layout is channel-major: every cell of channel 0 precedes every cell of
// channel 1, and within a channel cells are stored row by row.
type Indexer struct {
	rows     int
	cols     int
	channels int
}

// NewIndexer creates an Indexer for a tensor of shape (channels, rows, cols).
func NewIndexer(rows, cols, channels int) Indexer {
	return Indexer{rows: rows, cols: cols, channels: channels}
}

// Offset returns the flat index of a value in the raw tensor.
//
// Arguments:
//   - cellX: The grid column, in [0, cols).
//   - cellY: The grid row, in [0, rows).
//   - channel: The tensor plane, in [0, channels).
//
// Returns:
//   - int: channel*(rows*cols) + cellY*cols + cellX.
//   - error: An error wrapping ErrIndexOutOfRange if any coordinate is outside the tensor.
func (ix Indexer) Offset(cellX, cellY, channel int) (int, error) {
	if cellX < 0 || cellX >= ix.cols {
		return 0, errors.Wrapf(ErrIndexOutOfRange, "cell x %d not in [0, %d)", cellX, ix.cols)
	}
	if cellY < 0 || cellY >= ix.rows {
		return 0, errors.Wrapf(ErrIndexOutOfRange, "cell y %d not in [0, %d)", cellY, ix.rows)
	}
	if channel < 0 || channel >= ix.channels {
		return 0, errors.Wrapf(ErrIndexOutOfRange, "channel %d not in [0, %d)", channel, ix.channels)
	}
	return channel*(ix.rows*ix.cols) + cellY*ix.cols + cellX, nil
}
