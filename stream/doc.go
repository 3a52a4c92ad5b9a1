// Package stream broadcasts simulation frames to WebSocket viewers.
//
// A Hub is an http.Handler. Each request is upgraded to a WebSocket and the
// connection is registered as a viewer; Broadcast then sends every viewer
// the same binary message: the msgpack encoding of a Frame, whose PNG field
// carries the rendered heat map.
//
// New viewers receive the most recent frame right after connecting. Viewers
// never send anything meaningful; incoming messages are read and dropped
// only to notice disconnects.
package stream
