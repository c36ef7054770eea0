// Package paramio reads and writes the LSH parameter record's
// line-oriented text format: one labeled section per field, a
// human-readable label line followed by a value line, in a fixed
// order.
//
// No retrievable library parses a format this simple (a handful of
// label/value line pairs); bufio/strconv are used directly, recorded
// in DESIGN.md as a case with no library grounding.
package paramio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Record is the on-disk representation of an index's build parameters.
type Record struct {
	R                  float64
	SuccessProbability float64
	Dimension          int
	R2                 float64
	UseU               bool
	K                  int
	M                  int
	L                  int
	W                  float64
	T                  int
	TypeHT             int // 1=LinkedChain, 2=Statistics, 3=HybridChain
}

var fields = []string{
	"R",
	"Success probability",
	"Dimension",
	"R^2",
	"Use <u> functions",
	"k",
	"m [# independent tuples of LSH functions]",
	"L",
	"W",
	"T",
	"typeHT",
}

// Write serializes r in the fixed label/value line order, emitting
// reals with 9-digit decimal precision.
func Write(w io.Writer, r Record) error {
	bw := bufio.NewWriter(w)

	values := []string{
		formatReal(r.R),
		formatReal(r.SuccessProbability),
		strconv.Itoa(r.Dimension),
		formatReal(r.R2),
		boolToFlag(r.UseU),
		strconv.Itoa(r.K),
		strconv.Itoa(r.M),
		strconv.Itoa(r.L),
		formatReal(r.W),
		strconv.Itoa(r.T),
		strconv.Itoa(r.TypeHT),
	}

	for i, label := range fields {
		if _, err := fmt.Fprintf(bw, "%s\n%s\n", label, values[i]); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Read parses a Record written by Write. Each label line is skipped;
// only the value line on each pair is parsed.
func Read(r io.Reader) (Record, error) {
	sc := bufio.NewScanner(r)
	var rec Record
	vals := make([]string, 0, len(fields))

	for len(vals) < len(fields) {
		if !sc.Scan() {
			return Record{}, fmt.Errorf("paramio: unexpected EOF reading label for field %d", len(vals))
		}
		// label line, discarded
		if !sc.Scan() {
			return Record{}, fmt.Errorf("paramio: unexpected EOF reading value for field %d", len(vals))
		}
		vals = append(vals, strings.TrimSpace(sc.Text()))
	}
	if err := sc.Err(); err != nil {
		return Record{}, err
	}

	var err error
	if rec.R, err = strconv.ParseFloat(vals[0], 64); err != nil {
		return Record{}, fmt.Errorf("paramio: R: %w", err)
	}
	if rec.SuccessProbability, err = strconv.ParseFloat(vals[1], 64); err != nil {
		return Record{}, fmt.Errorf("paramio: success probability: %w", err)
	}
	if rec.Dimension, err = strconv.Atoi(vals[2]); err != nil {
		return Record{}, fmt.Errorf("paramio: dimension: %w", err)
	}
	if rec.R2, err = strconv.ParseFloat(vals[3], 64); err != nil {
		return Record{}, fmt.Errorf("paramio: R^2: %w", err)
	}
	rec.UseU = vals[4] == "1"
	if rec.K, err = strconv.Atoi(vals[5]); err != nil {
		return Record{}, fmt.Errorf("paramio: k: %w", err)
	}
	if rec.M, err = strconv.Atoi(vals[6]); err != nil {
		return Record{}, fmt.Errorf("paramio: m: %w", err)
	}
	if rec.L, err = strconv.Atoi(vals[7]); err != nil {
		return Record{}, fmt.Errorf("paramio: L: %w", err)
	}
	if rec.W, err = strconv.ParseFloat(vals[8], 64); err != nil {
		return Record{}, fmt.Errorf("paramio: W: %w", err)
	}
	if rec.T, err = strconv.Atoi(vals[9]); err != nil {
		return Record{}, fmt.Errorf("paramio: T: %w", err)
	}
	if rec.TypeHT, err = strconv.Atoi(vals[10]); err != nil {
		return Record{}, fmt.Errorf("paramio: typeHT: %w", err)
	}

	return rec, nil
}

func formatReal(v float64) string {
	return strconv.FormatFloat(v, 'f', 9, 64)
}

func boolToFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
