// Reelmatch - Multi-Signal Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package similarity

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/reelmatch/internal/models"
)

// Binary format constants.
const (
	binaryMagic = "RMSM"
	headerSize  = 12

	// binaryFloat32 stores 4-byte scores; binaryFloat64 stores 8-byte scores.
	binaryFloat32 = 1
	binaryFloat64 = 2
)

// Format identifies a similarity source encoding.
type Format int

const (
	// FormatJSON is a JSON array of arrays.
	FormatJSON Format = iota
	// FormatBinary is the RMSM little-endian layout.
	FormatBinary
)

// DetectFormat infers the format and compression from a file name.
func DetectFormat(path string) (Format, bool, error) {
	base := strings.ToLower(filepath.Base(path))
	gz := strings.HasSuffix(base, ".gz")
	base = strings.TrimSuffix(base, ".gz")

	switch filepath.Ext(base) {
	case ".json":
		return FormatJSON, gz, nil
	case ".bin":
		return FormatBinary, gz, nil
	default:
		return 0, gz, fmt.Errorf("unsupported similarity source extension: %s", filepath.Base(path))
	}
}

// Load reads the matrix at path and binds it to cat under name.
func Load(name, path string, cat Catalog, opts Options) (*Index, error) {
	format, gz, err := DetectFormat(path)
	if err != nil {
		return nil, models.DataUnavailableError("similarity "+name, err)
	}

	f, err := os.Open(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, models.DataUnavailableError("similarity "+name, err)
	}
	defer f.Close() //nolint:errcheck // read-only file

	var r io.Reader = bufio.NewReaderSize(f, 1<<20)
	if gz {
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, models.DataUnavailableError("similarity "+name+": gzip", err)
		}
		defer zr.Close() //nolint:errcheck // read-only stream
		r = zr
	}

	return Read(name, r, format, cat, opts)
}

// Read decodes a matrix in the given format from r.
func Read(name string, r io.Reader, format Format, cat Catalog, opts Options) (*Index, error) {
	switch format {
	case FormatJSON:
		var rows [][]float64
		if err := json.NewDecoder(r).Decode(&rows); err != nil {
			return nil, models.DataUnavailableError("similarity "+name+": decode json", err)
		}
		return FromRows(name, cat, rows, opts)

	case FormatBinary:
		n, scores, err := readBinary(r, cat.Len())
		if err != nil {
			return nil, models.DataUnavailableError("similarity "+name, err)
		}
		return New(name, cat, n, scores, opts)

	default:
		return nil, models.DataUnavailableError(fmt.Sprintf("similarity %s: unknown format %d", name, format), nil)
	}
}

// readBinary decodes the RMSM layout. The declared dimension must equal want
// so a corrupt header cannot trigger a huge allocation.
func readBinary(r io.Reader, want int) (int, []float64, error) {
	var header [headerSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return 0, nil, fmt.Errorf("read header: %w", err)
	}
	if !bytes.Equal(header[0:4], []byte(binaryMagic)) {
		return 0, nil, fmt.Errorf("bad magic %q", header[0:4])
	}

	var width int
	switch v := binary.LittleEndian.Uint32(header[4:8]); v {
	case binaryFloat32:
		width = 4
	case binaryFloat64:
		width = 8
	default:
		return 0, nil, fmt.Errorf("unsupported version %d", v)
	}

	n := int(binary.LittleEndian.Uint32(header[8:12]))
	if n != want {
		return 0, nil, fmt.Errorf("matrix has %d rows, catalog has %d movies", n, want)
	}

	scores := make([]float64, n*n)
	buf := make([]byte, width*n)
	for row := 0; row < n; row++ {
		if _, err := io.ReadFull(r, buf); err != nil {
			return 0, nil, fmt.Errorf("read row %d: %w", row, err)
		}
		base := row * n
		for col := 0; col < n; col++ {
			if width == 4 {
				scores[base+col] = float64(math.Float32frombits(binary.LittleEndian.Uint32(buf[col*4:])))
			} else {
				scores[base+col] = math.Float64frombits(binary.LittleEndian.Uint64(buf[col*8:]))
			}
		}
	}

	// Trailing bytes mean the declared size is wrong.
	var extra [1]byte
	k, err := r.Read(extra[:])
	if k > 0 {
		return 0, nil, errors.New("trailing data after matrix")
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, nil, fmt.Errorf("read trailer: %w", err)
	}
	return n, scores, nil
}

// WriteBinary encodes a square matrix in the RMSM layout with float64 scores,
// so a round trip keeps every score exactly.
func WriteBinary(w io.Writer, rows [][]float64) error {
	n := len(rows)
	for i, r := range rows {
		if len(r) != n {
			return fmt.Errorf("matrix is not square: row %d has %d columns, want %d", i, len(r), n)
		}
	}

	bw := bufio.NewWriter(w)
	var header [headerSize]byte
	copy(header[0:4], binaryMagic)
	binary.LittleEndian.PutUint32(header[4:8], binaryFloat64)
	binary.LittleEndian.PutUint32(header[8:12], uint32(n)) //nolint:gosec // n is a slice length
	if _, err := bw.Write(header[:]); err != nil {
		return err
	}

	buf := make([]byte, 8*n)
	for _, r := range rows {
		for col, v := range r {
			binary.LittleEndian.PutUint64(buf[col*8:], math.Float64bits(v))
		}
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}
