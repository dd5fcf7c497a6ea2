package utils

import (
	"math"
	"testing"
)

func TestEasing(t *testing.T) {
	tests := []struct {
		name string
		fn   func(float64) float64
		in   float64
		want float64
	}{
		{"EaseOutQuad 起点", EaseOutQuad, 0, 0},
		{"EaseOutQuad 中点", EaseOutQuad, 0.5, 0.75},
		{"EaseOutQuad 终点", EaseOutQuad, 1, 1},
		{"EaseOutQuad 超出范围", EaseOutQuad, 2, 1},
		{"EaseOutQuad 负数", EaseOutQuad, -1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(tt.in); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLerp(t *testing.T) {
	if got := Lerp(0.3, 0.6, 0.5); math.Abs(got-0.45) > 1e-9 {
		t.Errorf("Lerp(0.3, 0.6, 0.5): got %v, want 0.45", got)
	}
}
