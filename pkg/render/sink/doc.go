// Package sink encodes rendered figures and writes them to disk.
//
// [RenderPNG] draws anything that can paint itself on a gonum draw.Canvas
// into a raster canvas of the requested size and resolution and returns the
// PNG bytes:
//
//	data, err := sink.RenderPNG(fig, sink.WithDPI(300), sink.WithSize(6.4, 4.8))
//
// [WriteFile] stores the bytes as <dir>/<name>. The directory must already
// exist; the file is written to a temporary sibling and renamed into place
// so readers never observe a partial image. The working directory of the
// process is never consulted or changed.
package sink
