package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVertexCount(t *testing.T) {
	tests := []struct {
		name      string
		positions []float32
		colors    []uint8
		want      int32
		ok        bool
	}{
		{"triangle", []float32{0, 1, -1, -1, 1, -1}, make([]uint8, 9), 3, true},
		{"square", make([]float32, 12), make([]uint8, 18), 6, true},
		{"empty", nil, nil, 0, false},
		{"odd positions", make([]float32, 5), make([]uint8, 9), 0, false},
		{"short colors", make([]float32, 6), make([]uint8, 6), 0, false},
		{"partial color", make([]float32, 6), make([]uint8, 8), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, ok := VertexCount(tt.positions, tt.colors)
			assert.Equal(t, tt.want, n)
			assert.Equal(t, tt.ok, ok)
		})
	}
}
