// Package pointio parses the plain point-file format: a count and
// dimension on the first line, then that many rows of dimension
// whitespace-separated reals — the classic LSH-benchmark point-file
// shape.
//
// No third-party parser fits a format this simple; bufio/strconv are
// used directly, recorded in DESIGN.md as a case with no library
// grounding.
package pointio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Read parses a point file, returning n points of dimension d.
func Read(r io.Reader) (points [][]float64, dim int, err error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)

	if !sc.Scan() {
		return nil, 0, fmt.Errorf("pointio: empty input")
	}
	header := strings.Fields(sc.Text())
	if len(header) != 2 {
		return nil, 0, fmt.Errorf("pointio: header must be \"n d\", got %q", sc.Text())
	}
	n, err := strconv.Atoi(header[0])
	if err != nil {
		return nil, 0, fmt.Errorf("pointio: n: %w", err)
	}
	d, err := strconv.Atoi(header[1])
	if err != nil {
		return nil, 0, fmt.Errorf("pointio: d: %w", err)
	}

	pts := make([][]float64, 0, n)
	for len(pts) < n {
		if !sc.Scan() {
			return nil, 0, fmt.Errorf("pointio: expected %d rows, got %d", n, len(pts))
		}
		fields := strings.Fields(sc.Text())
		if len(fields) != d {
			return nil, 0, fmt.Errorf("pointio: row %d has %d fields, want %d", len(pts), len(fields), d)
		}
		row := make([]float64, d)
		for i, tok := range fields {
			v, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return nil, 0, fmt.Errorf("pointio: row %d field %d: %w", len(pts), i, err)
			}
			row[i] = v
		}
		pts = append(pts, row)
	}
	if err := sc.Err(); err != nil {
		return nil, 0, err
	}

	return pts, d, nil
}

// Write serializes points in the same format Read parses. All points
// must share dimension dim.
func Write(w io.Writer, points [][]float64, dim int) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%d %d\n", len(points), dim); err != nil {
		return err
	}
	for _, p := range points {
		if len(p) != dim {
			return fmt.Errorf("pointio: point has dimension %d, want %d", len(p), dim)
		}
		for i, v := range p {
			if i > 0 {
				if err := bw.WriteByte(' '); err != nil {
					return err
				}
			}
			if _, err := bw.WriteString(strconv.FormatFloat(v, 'g', -1, 64)); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
