package io

import (
	"compress/gzip"
	"encoding/json"
	"io"
	"math"
	"os"
	"strings"

	"github.com/echoplot/echoplot/pkg/errors"
	"github.com/echoplot/echoplot/pkg/grid"
)

// WriteJSON encodes g as an indented JSON array of rows. NaN and infinite
// cells are written as null, since JSON cannot represent them.
func WriteJSON(g *grid.Grid, w io.Writer) error {
	if err := grid.Validate(g); err != nil {
		return err
	}
	rows, cols := g.Dims()
	out := make([][]*float64, rows)
	for i := range out {
		out[i] = make([]*float64, cols)
		for j := range out[i] {
			v := g.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			out[i][j] = &v
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "encode json grid")
	}
	return nil
}

// Export writes g as JSON to path, gzip-compressed when path ends in ".gz".
func Export(g *grid.Grid, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "create %s", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrap(errors.ErrCodeIO, cerr, "close %s", path)
		}
	}()

	if !strings.HasSuffix(strings.ToLower(path), ".gz") {
		return WriteJSON(g, f)
	}
	zw := gzip.NewWriter(f)
	if err := WriteJSON(g, zw); err != nil {
		return err
	}
	if err := zw.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "compress %s", path)
	}
	return nil
}
