// Package config loads heatsim settings.
//
// Settings start from Default (the 640×640 plate with the pipe at its
// centre) and are overlaid by an optional YAML file. Values derived from
// the plate size (pipe centre, radius, chamfer) follow the grid section of
// the file unless the pipe section sets them explicitly.
//
// Example file:
//
//	grid:
//	  width: 320
//	  height: 240
//	pipe:
//	  t_pipe: 180
//	physics:
//	  dt: 0.2
//	execution:
//	  strategy: strip
//	  tiles: {x: 16, y: 16, z: 4}
//	run:
//	  steps: 5000
//	  tolerance: 1e-4
package config
