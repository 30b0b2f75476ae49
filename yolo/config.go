// Package yolo - Decoding of YOLO-v2 grid outputs into detections.
//
// The network emits a planar tensor of shape (channels, rows, cols). Every grid
// cell regresses a fixed number of anchor boxes and each anchor owns a run of
// 5+classCount channels: tx, ty, tw, th, the objectness logit, then one logit
// per class.
package yolo

import (
	"github.com/nvr-ai/go-yolo/models"
	"github.com/pkg/errors"
)

// BoxFeatureCount is the number of fixed channels per anchor (tx, ty, tw, th, tc).
const BoxFeatureCount = 5

// Anchor is a prior box shape expressed in grid cells.
type Anchor struct {
	Width  float32 `json:"width" yaml:"width"`
	Height float32 `json:"height" yaml:"height"`
}

// ConfigArgs are the arguments for creating a new Config.
type ConfigArgs struct {
	Rows           int      `json:"rows" yaml:"rows"`
	Cols           int      `json:"cols" yaml:"cols"`
	AnchorsPerCell int      `json:"anchors_per_cell" yaml:"anchors_per_cell"`
	ClassCount     int      `json:"class_count" yaml:"class_count"`
	Channels       int      `json:"channels" yaml:"channels"`
	CellWidth      float32  `json:"cell_width" yaml:"cell_width"`
	CellHeight     float32  `json:"cell_height" yaml:"cell_height"`
	Anchors        []Anchor `json:"anchors" yaml:"anchors"`
	Labels         []string `json:"labels" yaml:"labels"`
}

// Config describes the output geometry of the network.
//
// A Config is immutable once NewConfig returns and may be shared between
// goroutines decoding different tensors.
type Config struct {
	rows           int
	cols           int
	anchorsPerCell int
	classCount     int
	channels       int
	cellWidth      float32
	cellHeight     float32
	anchors        []Anchor
	labels         []string
}

// NewConfig validates the arguments and builds an immutable Config.
//
// Arguments:
//   - args: The output geometry of the network.
//
// Returns:
//   - *Config: The validated configuration.
//   - error: An error wrapping ErrInvalidConfig if the geometry is inconsistent.
func NewConfig(args ConfigArgs) (*Config, error) {
	if args.Rows <= 0 || args.Cols <= 0 {
		return nil, errors.Wrapf(ErrInvalidConfig, "grid must be positive, got %dx%d", args.Rows, args.Cols)
	}
	if args.AnchorsPerCell <= 0 {
		return nil, errors.Wrapf(ErrInvalidConfig, "anchors per cell must be positive, got %d", args.AnchorsPerCell)
	}
	if args.ClassCount <= 0 {
		return nil, errors.Wrapf(ErrInvalidConfig, "class count must be positive, got %d", args.ClassCount)
	}
	if !(args.CellWidth > 0) || !(args.CellHeight > 0) {
		return nil, errors.Wrapf(ErrInvalidConfig, "cell size must be positive, got %vx%v", args.CellWidth, args.CellHeight)
	}
	if want := args.AnchorsPerCell * (BoxFeatureCount + args.ClassCount); args.Channels != want {
		return nil, errors.Wrapf(ErrInvalidConfig, "channels = %d, expected %d", args.Channels, want)
	}
	if len(args.Anchors) != args.AnchorsPerCell {
		return nil, errors.Wrapf(ErrInvalidConfig, "got %d anchors for %d anchors per cell", len(args.Anchors), args.AnchorsPerCell)
	}
	for i, a := range args.Anchors {
		if !(a.Width > 0) || !(a.Height > 0) {
			return nil, errors.Wrapf(ErrInvalidConfig, "anchor %d must have positive scales, got %vx%v", i, a.Width, a.Height)
		}
	}
	if len(args.Labels) != args.ClassCount {
		return nil, errors.Wrapf(ErrInvalidConfig, "got %d labels for %d classes", len(args.Labels), args.ClassCount)
	}

	return &Config{
		rows:           args.Rows,
		cols:           args.Cols,
		anchorsPerCell: args.AnchorsPerCell,
		classCount:     args.ClassCount,
		channels:       args.Channels,
		cellWidth:      args.CellWidth,
		cellHeight:     args.CellHeight,
		anchors:        append([]Anchor(nil), args.Anchors...),
		labels:         append([]string(nil), args.Labels...),
	}, nil
}

// DefaultArgs returns the Tiny-YOLOv2 Pascal VOC geometry: a 13x13 grid of 32
// pixel cells over a 416x416 input, 5 anchors and 20 classes.
func DefaultArgs() ConfigArgs {
	labels := models.VOCClasses.Names()
	return ConfigArgs{
		Rows:           13,
		Cols:           13,
		AnchorsPerCell: 5,
		ClassCount:     len(labels),
		Channels:       5 * (BoxFeatureCount + len(labels)),
		CellWidth:      32,
		CellHeight:     32,
		Anchors: []Anchor{
			{1.08, 1.19},
			{3.42, 4.41},
			{6.63, 11.38},
			{9.42, 5.11},
			{16.62, 10.52},
		},
		Labels: labels,
	}
}

// DefaultConfig returns the validated Tiny-YOLOv2 VOC configuration.
func DefaultConfig() *Config {
	cfg, err := NewConfig(DefaultArgs())
	if err != nil {
		panic(err)
	}
	return cfg
}

// Rows returns the grid height in cells.
func (c *Config) Rows() int { return c.rows }

// Cols returns the grid width in cells.
func (c *Config) Cols() int { return c.cols }

// AnchorsPerCell returns the number of boxes regressed per cell.
func (c *Config) AnchorsPerCell() int { return c.anchorsPerCell }

// ClassCount returns the number of class labels.
func (c *Config) ClassCount() int { return c.classCount }

// Channels returns the number of tensor planes.
func (c *Config) Channels() int { return c.channels }

// CellWidth returns the pixel width of one grid cell.
func (c *Config) CellWidth() float32 { return c.cellWidth }

// CellHeight returns the pixel height of one grid cell.
func (c *Config) CellHeight() float32 { return c.cellHeight }

// Anchors returns a copy of the anchor priors.
func (c *Config) Anchors() []Anchor {
	return append([]Anchor(nil), c.anchors...)
}

// Labels returns a copy of the class labels, indexed by class id.
func (c *Config) Labels() []string {
	return append([]string(nil), c.labels...)
}

// TensorLength is the number of floats a raw output tensor must hold.
func (c *Config) TensorLength() int {
	return c.channels * c.rows * c.cols
}

// Indexer returns the planar offset calculator for this geometry.
func (c *Config) Indexer() Indexer {
	return Indexer{rows: c.rows, cols: c.cols, channels: c.channels}
}
