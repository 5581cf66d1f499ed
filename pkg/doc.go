// Package pkg provides the core libraries for echoplot echogram rendering.
//
// # Overview
//
// Echoplot draws 2-D grids of volume backscattering strength (Sv, dB) as
// echogram images using the fixed ek500 colour scale. The pkg directory is
// organized by concern:
//
//  1. [grid] and [colorscale] - Domain values (Sv grids, masks, the ek500 scale)
//  2. [render] - Rendering contexts, rasters, figures and PNG persistence
//  3. [synth] - Synthetic single-layer test grids
//  4. [io], [cache] and [config] - Grid files, the figure cache, configuration
//  5. [pipeline] - Orchestration (load → render → encode → write)
//
// # Architecture
//
// The typical data flow through echoplot:
//
//	JSON/CSV grid (optionally gzip)      synth.Layer
//	         ↓                                ↓
//	    [io] package (decode)  ──────→  [grid] package (Sv + mask)
//	                                          ↓
//	                             [render] package (ek500 buckets, figure)
//	                                          ↓
//	                                  PNG on disk / cache
//
// # Quick Start
//
//	import (
//	    "github.com/echoplot/echoplot/pkg/grid"
//	    "github.com/echoplot/echoplot/pkg/render"
//	)
//
//	sv, _ := grid.New([][]float64{{-70, -60}, {-50, -40}})
//	rc, _ := render.NewContext()
//	if _, err := rc.RenderSv(ctx, sv, nil, render.WithTitle("Transect 4")); err != nil {
//	    return err
//	}
//	path, err := rc.Save(ctx, "out", "echogram")
//
// The [pipeline] package wraps the same steps with file loading and a
// content-addressed cache; the echoplot CLI is built on it.
//
// # Errors
//
// Every package reports failures as [errors] values carrying a code such as
// INVALID_GRID, SHAPE_MISMATCH or IO_FAILURE.
//
// [grid]: https://pkg.go.dev/github.com/echoplot/echoplot/pkg/grid
// [colorscale]: https://pkg.go.dev/github.com/echoplot/echoplot/pkg/colorscale
// [render]: https://pkg.go.dev/github.com/echoplot/echoplot/pkg/render
// [synth]: https://pkg.go.dev/github.com/echoplot/echoplot/pkg/synth
// [io]: https://pkg.go.dev/github.com/echoplot/echoplot/pkg/io
// [cache]: https://pkg.go.dev/github.com/echoplot/echoplot/pkg/cache
// [config]: https://pkg.go.dev/github.com/echoplot/echoplot/pkg/config
// [pipeline]: https://pkg.go.dev/github.com/echoplot/echoplot/pkg/pipeline
// [errors]: https://pkg.go.dev/github.com/echoplot/echoplot/pkg/errors
package pkg
