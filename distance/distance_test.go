package distance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterWithinL2(t *testing.T) {
	f := NewFilter(L2, 1.5*1.5)

	tests := []struct {
		name string
		q, c []float64
		want bool
	}{
		{"exact", []float64{0, 0}, []float64{1, 0}, true},
		{"boundary", []float64{0, 0}, []float64{1.5, 0}, true},
		{"outside", []float64{0, 0}, []float64{10, 10}, false},
		{"identical", []float64{1, 2, 3}, []float64{1, 2, 3}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.Within(tt.q, tt.c))
		})
	}
}

func TestFilterWithinL1(t *testing.T) {
	f := NewFilter(L1, 4.9)
	assert.True(t, f.Within([]float64{0, 0, 0}, []float64{3, 1, 0}))
	assert.False(t, f.Within([]float64{0, 0, 0}, []float64{3, 4, 0}))
}

func TestFilterZeroRadiusSelf(t *testing.T) {
	f := NewFilter(L2, 0)
	p := []float64{1, 0, 0, 0, 0, 0, 0, 0}
	assert.True(t, f.Within(p, p))
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "L2", L2.String())
	assert.Equal(t, "L1", L1.String())
	assert.Equal(t, "Unknown(99)", Mode(99).String())
}
