// Package viz renders slowness models for the terminal.
//
//   - [RenderSummary]: lipgloss panel with critical depths, zones and stats
//   - [RenderRuns]: table of stored runs
//   - [RenderLayers]: layer listing for one or both wave types
//   - [PlotProfile]: asciigraph slowness-depth curve
package viz
