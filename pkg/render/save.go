package render

import (
	"context"

	"github.com/echoplot/echoplot/pkg/errors"
	"github.com/echoplot/echoplot/pkg/observability"
	"github.com/echoplot/echoplot/pkg/render/sink"
)

// SaveOption configures figure encoding.
type SaveOption = sink.PNGOption

// WithDPI sets the output resolution (default 300).
func WithDPI(dpi int) SaveOption { return sink.WithDPI(dpi) }

// WithSize sets the figure size in inches (default 6.4x4.8).
func WithSize(width, height float64) SaveOption { return sink.WithSize(width, height) }

// Encode returns the PNG encoding of r's figure.
func Encode(r *Raster, opts ...SaveOption) ([]byte, error) {
	if r == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no raster to encode")
	}
	return sink.RenderPNG(r.Figure(), opts...)
}

// Save writes the current raster to dir/filename.png and returns the path.
// filename is a base name without extension. The current raster is cleared
// whether or not the save succeeds.
func (c *Context) Save(ctx context.Context, dir, filename string, opts ...SaveOption) (path string, err error) {
	r := c.current
	defer c.Clear()

	var size int
	defer func() {
		observability.Render().OnSave(ctx, c.id, path, size, err)
	}()

	if r == nil {
		return "", errors.New(errors.ErrCodeInvalidInput, "nothing rendered to save")
	}
	if err := errors.ValidateFilename(filename); err != nil {
		return "", err
	}

	data, err := Encode(r, opts...)
	if err != nil {
		return "", err
	}
	path, err = sink.WriteFile(dir, filename+".png", data)
	if err != nil {
		return "", err
	}
	size = len(data)

	c.logger.Debug("saved figure", "run", c.id, "path", path, "bytes", size)
	return path, nil
}
