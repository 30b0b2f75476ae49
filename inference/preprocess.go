package inference

import (
	"image"

	"github.com/nfnt/resize"
	"github.com/pkg/errors"
)

// PrepareInput resizes an image and writes it into a planar RGB tensor.
//
// Arguments:
//   - img: The image to prepare.
//   - dst: The destination tensor data, at least 3*width*height floats.
//   - width: The model input width.
//   - height: The model input height.
//   - normalize: Scale pixel values to [0, 1] instead of [0, 255].
//
// Returns:
//   - error: An error if the destination is too small.
func PrepareInput(img image.Image, dst []float32, width, height int, normalize bool) error {
	if width <= 0 || height <= 0 {
		return errors.Errorf("input size %dx%d must be positive", width, height)
	}
	channelSize := width * height
	if len(dst) < channelSize*3 {
		return errors.Errorf("destination tensor only holds %d floats, needs %d", len(dst), channelSize*3)
	}
	red := dst[0:channelSize]
	green := dst[channelSize : channelSize*2]
	blue := dst[channelSize*2 : channelSize*3]

	b := img.Bounds()
	if b.Dx() != width || b.Dy() != height {
		img = resize.Resize(uint(width), uint(height), img, resize.Bilinear)
		b = img.Bounds()
	}

	scale := float32(1)
	if normalize {
		scale = 1.0 / 255.0
	}

	i := 0
	for y := b.Min.Y; y < b.Min.Y+height; y++ {
		for x := b.Min.X; x < b.Min.X+width; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			red[i] = float32(r>>8) * scale
			green[i] = float32(g>>8) * scale
			blue[i] = float32(bl>>8) * scale
			i++
		}
	}
	return nil
}
