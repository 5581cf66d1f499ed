// Package synth builds synthetic Sv grids for exercising the renderer
// without real echosounder data.
//
// [Layer] produces a sound scattering layer: a band of Gaussian Sv values,
// one layer thick, centred in a grid three layers tall, over a uniform
// noise floor.
//
//	res, err := synth.Layer(synth.NewParams(-60, 2, 10, 50))
//	r, err := rc.RenderSv(ctx, res.Grid, nil, render.WithYTicks(res.YTicks))
//
// Given the same Seed the output is identical across calls. Set Random to
// draw from a clock-seeded source instead.
package synth
