package paramio

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	rec := Record{
		R:                  1.5,
		SuccessProbability: 0.9,
		Dimension:          32,
		R2:                 2.25,
		UseU:               true,
		K:                  4,
		M:                  4,
		L:                  6,
		W:                  4.0,
		T:                  10,
		TypeHT:             3,
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, rec))

	got, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, rec, got)
}

func TestWriteUsesNineDigitPrecision(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, Record{R: 1.0 / 3.0}))
	assert.Contains(t, buf.String(), "0.333333333")
}

func TestReadSkipsLabelLines(t *testing.T) {
	raw := "R\n1.000000000\n" +
		"Success probability\n0.900000000\n" +
		"Dimension\n8\n" +
		"R^2\n1.000000000\n" +
		"Use <u> functions\n0\n" +
		"k\n2\n" +
		"m [# independent tuples of LSH functions]\n0\n" +
		"L\n4\n" +
		"W\n2.000000000\n" +
		"T\n1\n" +
		"typeHT\n1\n"

	rec, err := Read(bytes.NewBufferString(raw))
	require.NoError(t, err)
	assert.Equal(t, 8, rec.Dimension)
	assert.False(t, rec.UseU)
	assert.Equal(t, 1, rec.TypeHT)
}
