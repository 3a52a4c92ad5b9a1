package heat

import (
	"fmt"
	"image"

	"github.com/katalvlaran/heatpipe/grid"
)

// Intensity maps a temperature to the 0..255 colour intensity used by the
// renderer: the integer part of t, clipped to the byte range.
func Intensity(t float32) uint8 {
	switch {
	case t != t || t <= 0: // NaN renders cold
		return 0
	case t >= 255:
		return 255
	default:
		return uint8(int(t))
	}
}

// shade writes the colour of temperature v at field cell (x,y) into out:
// hotter is redder, colder is bluer, alpha is opaque. A nil out is a no-op.
func shade(out *image.RGBA, x, y int, v float32) {
	if out == nil {
		return
	}
	b := out.Bounds()
	off := out.PixOffset(b.Min.X+x, b.Min.Y+y)
	i := Intensity(v)
	px := out.Pix[off : off+4 : off+4]
	px[0] = i
	px[1] = 0
	px[2] = 255 - i
	px[3] = 255
}

// Render colours every cell of field into out without stepping.
// out must have exactly the field's dimensions.
func Render(out *image.RGBA, field *grid.Field) error {
	if field == nil {
		return fmt.Errorf("Render: %w", ErrNilField)
	}
	if err := checkImage(out, field); err != nil {
		return fmt.Errorf("Render: %w", err)
	}
	data := field.Data()
	w := field.Width()
	for i, v := range data {
		shade(out, i%w, i/w, v)
	}

	return nil
}

// NewImage allocates an output buffer sized for field.
func NewImage(field *grid.Field) *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, field.Width(), field.Height()))
}

// checkImage enforces that out is non-nil, sized exactly like field and
// backed by a pixel buffer that covers its bounds.
func checkImage(out *image.RGBA, field *grid.Field) error {
	if out == nil {
		return ErrNilImage
	}
	b := out.Bounds()
	if b.Dx() != field.Width() || b.Dy() != field.Height() {
		return fmt.Errorf("image %dx%d, field %dx%d: %w", b.Dx(), b.Dy(), field.Width(), field.Height(), ErrDimensionMismatch)
	}
	if out.Stride < 4*b.Dx() {
		return fmt.Errorf("stride %d for width %d: %w", out.Stride, b.Dx(), ErrImageBuffer)
	}
	if last := out.PixOffset(b.Max.X-1, b.Max.Y-1) + 4; last < 0 || len(out.Pix) < last {
		return fmt.Errorf("pix length %d, need %d: %w", len(out.Pix), last, ErrImageBuffer)
	}

	return nil
}
