package stream

import "errors"

var (
	// ErrClosed indicates an operation on a Hub after Close.
	ErrClosed = errors.New("stream: hub closed")

	// ErrNilImage indicates NewFrame was given no image to encode.
	ErrNilImage = errors.New("stream: nil image")
)
