package yolo

import (
	"iter"

	"github.com/pkg/errors"
	"gorgonia.org/tensor"
)

// Cell identifies one anchor of one grid cell: a single decode task.
type Cell struct {
	X      int
	Y      int
	Anchor int
}

// Cells yields every cell/anchor pair in decode order: rows outer, columns
// middle, anchors inner.
func (c *Config) Cells() iter.Seq[Cell] {
	return func(yield func(Cell) bool) {
		for cy := 0; cy < c.rows; cy++ {
			for cx := 0; cx < c.cols; cx++ {
				for b := 0; b < c.anchorsPerCell; b++ {
					if !yield(Cell{X: cx, Y: cy, Anchor: b}) {
						return
					}
				}
			}
		}
	}
}

// Decode turns a raw planar output tensor into detections.
//
// Every anchor of every cell is filtered twice against the same threshold:
// first on objectness alone, before any class scores are computed, then on
// objectness times the top class probability. Detections are returned in
// scan order and are not sorted or suppressed by overlap. An empty result is
// not an error.
//
// Arguments:
//   - output: The flat tensor, length cfg.TensorLength(), channel-major.
//   - cfg: The output geometry.
//   - threshold: The confidence cutoff applied at both stages.
//
// Returns:
//   - []Detection: A freshly allocated slice owned by the caller.
//   - error: An error wrapping ErrTensorSize if the tensor length is wrong.
func Decode(output []float32, cfg *Config, threshold float32) ([]Detection, error) {
	if err := checkLength(output, cfg); err != nil {
		return nil, err
	}

	var (
		ix      = cfg.Indexer()
		classes = make([]float32, cfg.classCount)
		dets    []Detection
	)
	for cell := range cfg.Cells() {
		det, ok, err := decodeCell(output, cfg, ix, classes, cell, threshold)
		if err != nil {
			return nil, err
		}
		if ok {
			dets = append(dets, det)
		}
	}

	if dets == nil {
		dets = []Detection{}
	}
	return dets, nil
}

// DecodeCell decodes a single cell/anchor task.
//
// Returns:
//   - Detection: The decoded box, valid only when the bool is true.
//   - bool: Whether the anchor passed both confidence filters.
//   - error: ErrTensorSize or ErrIndexOutOfRange conditions.
func DecodeCell(output []float32, cfg *Config, cell Cell, threshold float32) (Detection, bool, error) {
	if err := checkLength(output, cfg); err != nil {
		return Detection{}, false, err
	}
	if cell.Anchor < 0 || cell.Anchor >= cfg.anchorsPerCell {
		return Detection{}, false, errors.Wrapf(ErrIndexOutOfRange, "anchor %d not in [0, %d)", cell.Anchor, cfg.anchorsPerCell)
	}
	return decodeCell(output, cfg, cfg.Indexer(), make([]float32, cfg.classCount), cell, threshold)
}

// DecodeTensor decodes a float32 tensor shaped (channels, rows, cols) or
// (1, channels, rows, cols). Transposed or strided views are materialized
// before their data is read.
func DecodeTensor(t tensor.Tensor, cfg *Config, threshold float32) ([]Detection, error) {
	if t.Dtype() != tensor.Float32 {
		return nil, errors.Wrapf(ErrTensorSize, "expected float32 tensor, got %v", t.Dtype())
	}

	shape := t.Shape()
	if len(shape) == 4 {
		if shape[0] != 1 {
			return nil, errors.Wrapf(ErrTensorSize, "batch of %d tensors not supported", shape[0])
		}
		shape = shape[1:]
	}
	if len(shape) != 3 || shape[0] != cfg.channels || shape[1] != cfg.rows || shape[2] != cfg.cols {
		return nil, errors.Wrapf(ErrTensorSize, "shape %v, expected (%d, %d, %d)", t.Shape(), cfg.channels, cfg.rows, cfg.cols)
	}

	if t.RequiresIterator() {
		t = tensor.Materialize(t)
		if t.RequiresIterator() {
			return nil, errors.Wrapf(ErrTensorSize, "cannot materialize %T view", t)
		}
	}
	if t.DataOrder().IsColMajor() {
		return nil, errors.Wrap(ErrTensorSize, "column-major tensors not supported")
	}

	data, ok := t.Data().([]float32)
	if !ok {
		return nil, errors.Wrapf(ErrTensorSize, "tensor backing is %T", t.Data())
	}
	return Decode(data, cfg, threshold)
}

func checkLength(output []float32, cfg *Config) error {
	if want := cfg.TensorLength(); len(output) != want {
		return errors.Wrapf(ErrTensorSize, "got %d values, expected %d", len(output), want)
	}
	return nil
}

// decodeCell reads the anchor's channels, applies the two-stage filter and
// builds the detection. classes is scratch space of length classCount.
func decodeCell(output []float32, cfg *Config, ix Indexer, classes []float32, cell Cell, threshold float32) (Detection, bool, error) {
	channel := cell.Anchor * (cfg.classCount + BoxFeatureCount)

	var raw [BoxFeatureCount]float32
	for i := range raw {
		off, err := ix.Offset(cell.X, cell.Y, channel+i)
		if err != nil {
			return Detection{}, false, err
		}
		raw[i] = output[off]
	}
	tx, ty, tw, th, tc := raw[0], raw[1], raw[2], raw[3], raw[4]

	anchor := cfg.anchors[cell.Anchor]
	x := (float32(cell.X) + Sigmoid(tx)) * cfg.cellWidth
	y := (float32(cell.Y) + Sigmoid(ty)) * cfg.cellHeight
	width := exp(tw) * cfg.cellWidth * anchor.Width
	height := exp(th) * cfg.cellHeight * anchor.Height

	// Stage one: objectness alone, before touching the class logits.
	confidence := Sigmoid(tc)
	if confidence < threshold {
		return Detection{}, false, nil
	}

	classOffset := channel + BoxFeatureCount
	for i := range classes {
		off, err := ix.Offset(cell.X, cell.Y, classOffset+i)
		if err != nil {
			return Detection{}, false, err
		}
		classes[i] = output[off]
	}

	topClass, topProb := Argmax(Softmax(classes))
	// Stage two: the combined score against the same threshold.
	topScore := topProb * confidence
	if topScore < threshold {
		return Detection{}, false, nil
	}

	return Detection{
		Label:   cfg.labels[topClass],
		ClassID: topClass,
		X:       x - width/2,
		Y:       y - height/2,
		Width:   width,
		Height:  height,
		Score:   topScore,
	}, true, nil
}
