// Package velocity provides layered velocity models of a spherical body.
//
// A model is an ordered, contiguous stack of layers from the surface down:
//
//   - [Layer]: one layer with linearly varying P/S velocity, density and Q
//   - [Model]: the layer stack plus body radius and named boundaries
//
// Models are read-only once built. They can be loaded from YAML with [Load]
// or taken from the built-in set with [GetPreset].
//
// # Units
//
// Depths and radii are kilometres, velocities km/s, density g/cm^3.
package velocity
