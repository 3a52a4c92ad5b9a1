// SPDX-License-Identifier: MIT

package stream

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/katalvlaran/heatpipe/grid"
	"github.com/vmihailenco/msgpack/v5"
)

// Frame is one broadcast message.
type Frame struct {
	Step     uint64  `msgpack:"step"`
	Width    int     `msgpack:"width"`
	Height   int     `msgpack:"height"`
	Min      float32 `msgpack:"min"`      // coldest cell
	Max      float32 `msgpack:"max"`      // hottest cell
	Residual float64 `msgpack:"residual"` // max |T'-T| of the step
	PNG      []byte  `msgpack:"png"`
}

// NewFrame encodes img as PNG and annotates it with the field range.
// field may be nil, in which case Min and Max stay zero.
func NewFrame(step uint64, img image.Image, field *grid.Field, residual float64) (Frame, error) {
	if img == nil {
		return Frame{}, fmt.Errorf("NewFrame: %w", ErrNilImage)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return Frame{}, fmt.Errorf("NewFrame: png: %w", err)
	}
	b := img.Bounds()
	fr := Frame{
		Step:     step,
		Width:    b.Dx(),
		Height:   b.Dy(),
		Residual: residual,
		PNG:      buf.Bytes(),
	}
	if field != nil {
		fr.Min, fr.Max = field.Min(), field.Max()
	}

	return fr, nil
}

// Marshal returns the wire form of f.
func (f Frame) Marshal() ([]byte, error) {
	return msgpack.Marshal(&f)
}

// UnmarshalFrame decodes a message produced by Frame.Marshal.
func UnmarshalFrame(data []byte) (Frame, error) {
	var f Frame
	err := msgpack.Unmarshal(data, &f)

	return f, err
}
