package bubbletea_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/diffmark/diffmark/bubbletea"
)

func TestDisplayWidth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want int
	}{
		{"empty", "", 0},
		{"ascii", "hello", 5},
		{"leading tab", "\tx", 9},
		{"tab mid string", "ab\tcd", 10},
		{"tab at stop boundary", "12345678\tx", 17},
		{"wide runes", "日本", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, bubbletea.DisplayWidth(tt.in))
		})
	}
}
