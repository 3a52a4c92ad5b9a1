// Package heatpipe simulates heat flowing from a buried pipe through a
// rectangular plate, using an explicit finite-difference step that runs on
// a pool of worker goroutines.
//
// What is in the box?
//
//	grid/      — row-major float32 temperature field with safe accessors & statistics
//	boundary/  — boundary condition (pipe disk, air edges, chamfer, ground) & region map
//	heat/      — the solver: Reset, Step with four launch strategies, rendering, RunUntil
//	snapshot/  — checkpoints: msgpack body, lz4 block compression, crc32 integrity
//	stream/    — WebSocket hub that broadcasts rendered frames to viewers
//	config/    — YAML settings with documented defaults
//	cmd/heatsim — command-line driver tying it all together
//
// A run in three calls:
//
//	sim, _ := heat.New(heat.DefaultParams())
//	_ = sim.Reset(field, bc, heat.DefaultShape())
//	_ = sim.Step(img, field, bc, heat.DefaultShape())
//
// Every cell is either fixed (pipe, open-air edge, ground) and held at its
// region temperature, or free and updated from its four neighbours:
//
//	T' = T + Δt·κ/c_V · ((T_E − 2T + T_W)/Dx² + (T_N − 2T + T_S)/Dy²)
//
// With the default parameters the update is the plain four-neighbour
// average, the largest step the explicit scheme tolerates.
package heatpipe
