// Package io reads and writes numeric grids as JSON or CSV.
//
// # Formats
//
// JSON grids are arrays of rows. NaN cells are written as null:
//
//	[
//	  [-72.1, -70.4, null],
//	  [-65.0, -61.9, -60.2]
//	]
//
// CSV grids have one row per line and no header. Empty fields and "NaN"
// read as NaN.
//
// Either format may be gzip-compressed. Compression is detected from the
// stream's magic bytes, not the file name.
//
// # Import
//
// Use [Import] to read a grid from a file path, or [Read] to read from any
// io.Reader:
//
//	g, err := io.Import("sv.json.gz")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// The format is taken from the file extension (".json", ".csv", optionally
// followed by ".gz"). When the extension is unknown the content is sniffed:
// input starting with '[' is JSON, anything else CSV.
//
// # Export
//
// Use [Export] to write a grid to a file, or [WriteJSON] to write to any
// io.Writer. A ".gz" suffix on the path compresses the output.
//
// # Errors
//
// Malformed input fails with INVALID_FORMAT, ragged or empty grids with
// INVALID_GRID, and missing files with FILE_NOT_FOUND.
package io
