// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Plain-text codec shared by connectome resources and log exports:
//     rows separated by newlines, columns by commas, values as invariant
//     decimal floats ('.' decimal point, no grouping).
//
// Policy:
//   - Blank lines are skipped; surrounding whitespace and '\r' are trimmed.
//   - Every non-blank row must carry the same number of fields (ErrBadShape).
//   - NaN/Inf are rejected on read (ErrNaNInf); writing uses the shortest
//     representation that round-trips exactly.

package matrix

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

const (
	opReadCSV  = "ReadCSV"
	opWriteCSV = "WriteCSV"

	csvSep = ","
)

// ReadCSV parses a comma-separated numeric matrix from r.
// An input with no rows yields a 0×0 matrix.
//
// Errors:
//   - ErrParse (wrapped with line/column), ErrBadShape, ErrNaNInf, read errors.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func ReadCSV(r io.Reader) (*Dense, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var (
		data []float64
		cols = -1
		rows int
		line int
	)
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		fields := strings.Split(text, csvSep)
		if cols < 0 {
			cols = len(fields)
		} else if len(fields) != cols {
			return nil, matrixErrorf(opReadCSV, fmt.Errorf("line %d: %d fields, want %d: %w", line, len(fields), cols, ErrBadShape))
		}
		for j, f := range fields {
			v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
			if err != nil {
				return nil, matrixErrorf(opReadCSV, fmt.Errorf("line %d field %d %q: %w", line, j+1, f, ErrParse))
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, matrixErrorf(opReadCSV, fmt.Errorf("line %d field %d: %w", line, j+1, ErrNaNInf))
			}
			data = append(data, v)
		}
		rows++
	}
	if err := sc.Err(); err != nil {
		return nil, matrixErrorf(opReadCSV, err)
	}
	if rows == 0 {
		return &Dense{}, nil
	}

	return &Dense{r: rows, c: cols, data: data}, nil
}

// WriteCSV serializes m to w in the format ReadCSV accepts, one line per row.
func WriteCSV(w io.Writer, m Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return matrixErrorf(opWriteCSV, err)
	}
	bw := bufio.NewWriter(w)
	r, c := m.Rows(), m.Cols()
	buf := make([]byte, 0, 32)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v, err := m.At(i, j)
			if err != nil {
				return matrixErrorf(opWriteCSV, err)
			}
			if j > 0 {
				buf = append(buf, csvSep...)
			}
			buf = strconv.AppendFloat(buf, v, 'g', -1, 64)
		}
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return matrixErrorf(opWriteCSV, err)
		}
		buf = buf[:0]
	}
	if err := bw.Flush(); err != nil {
		return matrixErrorf(opWriteCSV, err)
	}

	return nil
}
