// Package render draws Sv and mask grids as echograms.
//
// # Overview
//
// All rendering goes through an explicit [Context]. A context holds the colour
// scale, the name of the continuous ramp used for masks, a logger, and the
// current [Raster]. Nothing is looked up from process-wide registries, so
// separate contexts can render concurrently.
//
//	rc, err := render.NewContext(render.WithLogger(logger))
//	r, err := rc.RenderSv(ctx, sv, mask, render.WithTitle("18 kHz"))
//	path, err := rc.Save(ctx, "out", "echogram", render.WithDPI(300))
//
// # Rasters
//
// A [Raster] is the result of a render: one pixel per grid cell (row 0 at
// the top), the per-cell colour bucket for Sv renders, and the legend that
// accompanies it. Rasters are plain values and can be compared pixel for
// pixel.
//
// # Figures
//
// [Raster.Figure] composes the raster into a gonum/plot figure: a heat map
// with "columns"/"rows" axes and a vertical colour bar on the right. The
// [sink] subpackage encodes figures to PNG and writes them to disk.
//
// [sink]: github.com/echoplot/echoplot/pkg/render/sink
package render
