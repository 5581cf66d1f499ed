package io

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"encoding/csv"
	"encoding/json"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/echoplot/echoplot/pkg/errors"
	"github.com/echoplot/echoplot/pkg/grid"
)

// Format is a grid serialization.
type Format string

const (
	FormatAuto Format = ""
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// ParseFormat converts a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatAuto, FormatJSON, FormatCSV:
		return f, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown grid format %q (want json or csv)", s)
}

// FormatFromPath infers the format from a file name, ignoring a trailing
// ".gz". It returns FormatAuto when the extension is not recognized.
func FormatFromPath(path string) Format {
	name := strings.TrimSuffix(strings.ToLower(filepath.Base(path)), ".gz")
	switch filepath.Ext(name) {
	case ".json":
		return FormatJSON
	case ".csv":
		return FormatCSV
	}
	return FormatAuto
}

var gzipMagic = []byte{0x1f, 0x8b}

// Read decodes a grid from r in format f, transparently decompressing gzip
// input. FormatAuto sniffs the content. Read does not close r.
func Read(r io.Reader, f Format) (*grid.Grid, error) {
	br := bufio.NewReader(r)
	if head, _ := br.Peek(2); bytes.Equal(head, gzipMagic) {
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "gzip header")
		}
		defer zr.Close()
		br = bufio.NewReader(zr)
	}

	if f == FormatAuto {
		f = sniff(br)
	}
	switch f {
	case FormatJSON:
		return ReadJSON(br)
	case FormatCSV:
		return ReadCSV(br)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown grid format %q", f)
}

// sniff picks JSON when the first non-space byte is '['.
func sniff(br *bufio.Reader) Format {
	for n := 1; ; n++ {
		head, err := br.Peek(n)
		if len(head) < n {
			return FormatCSV
		}
		switch c := head[n-1]; c {
		case ' ', '\t', '\r', '\n':
			if err != nil {
				return FormatCSV
			}
			continue
		case '[':
			return FormatJSON
		default:
			return FormatCSV
		}
	}
}

// ReadJSON decodes a JSON array of rows. null cells become NaN.
func ReadJSON(r io.Reader) (*grid.Grid, error) {
	var rows [][]*float64
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json grid")
	}
	out := make([][]float64, len(rows))
	for i, row := range rows {
		out[i] = make([]float64, len(row))
		for j, v := range row {
			if v == nil {
				out[i][j] = math.NaN()
				continue
			}
			out[i][j] = *v
		}
	}
	return grid.New(out)
}

// ReadCSV decodes comma-separated rows. Empty fields and "NaN" become NaN.
func ReadCSV(r io.Reader) (*grid.Grid, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // ragged rows are reported as INVALID_GRID
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	records, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode csv grid")
	}
	out := make([][]float64, len(records))
	for i, rec := range records {
		out[i] = make([]float64, len(rec))
		for j, field := range rec {
			field = strings.TrimSpace(field)
			if field == "" {
				out[i][j] = math.NaN()
				continue
			}
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "row %d column %d", i+1, j+1)
			}
			out[i][j] = v
		}
	}
	return grid.New(out)
}

// Import reads a grid file. The format comes from the path's extension, or
// from the content when the extension is not recognized.
func Import(path string) (*grid.Grid, error) {
	return ImportAs(path, FormatFromPath(path))
}

// ImportAs reads a grid file in format f, ignoring its extension.
// FormatAuto sniffs the content.
func ImportAs(path string, f Format) (*grid.Grid, error) {
	fh, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeIO, err, "open %s", path)
	}
	defer fh.Close()

	g, err := Read(fh, f)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "read %s", path)
	}
	return g, nil
}
