// Package snapshot saves and restores a running heat simulation.
//
// A Checkpoint carries everything needed to continue a run bit-for-bit:
// the temperature field, the boundary condition, the physical params and
// the number of completed steps.
//
// Wire layout (little endian):
//
//	magic "HEAT" | version u16 | flags u16 | raw size u32 | crc32 u32 | body
//
// The body is the msgpack encoding of the Checkpoint, lz4 block compressed
// unless FlagStored is set (incompressible input). The crc32 (IEEE) covers
// the uncompressed body.
//
// Typical use:
//
//	cp, err := snapshot.FromField(field, bc, params, sim.Steps())
//	err = snapshot.Save("run.heat", cp)
//	...
//	cp, err = snapshot.Load("run.heat")
//	field, err := cp.Field()
package snapshot
