// Package slowness builds sampled slowness models from layered velocity
// models.
//
// A slowness model samples p = r/v as a function of depth densely enough
// that linear interpolation between samples reproduces travel time and
// distance within fixed bounds, while keeping every discontinuity and
// slowness extremum as an exact sample boundary:
//
//   - [VelocityModel]: read-only accessor for the input layers
//   - [SlownessLayer]: one sampled interval for a single wave type
//   - [CriticalDepth]: a depth producing a travel-time branch point
//   - [DepthRange]: a fluid or high-slowness zone
//   - [Model]: the constructed model, built by [New]
//
// # Pipeline
//
// [New] runs critical point detection, coarse sampling, iterative
// refinement (ray parameter, depth and distance checks until none splits a
// layer), critical point reconciliation and validation. Any failure aborts
// construction; there is no partially built model.
//
//	vmod, _ := velocity.GetPreset("simple-earth")
//	m, err := slowness.New(vmod, slowness.DefaultParams(),
//	    slowness.WithLogger(logger))
//
// # Thread Safety
//
// A [Model] is immutable once [New] returns and may be shared freely.
// Independent models can be built in parallel with [BuildAll].
package slowness
