package utils

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestNewTopDownView(t *testing.T) {
	tests := []struct {
		name      string
		w, h      float64
		diameter  float64
		margin    float64
		wantScale float64
	}{
		{"正方形屏幕", 800, 800, 20, 1, 40},
		{"长方形屏幕取短边", 1000, 600, 20, 1.5, 20},
		{"直径为0", 800, 800, 0, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewTopDownView(tt.w, tt.h, tt.diameter, tt.margin)
			if math.Abs(v.Scale-tt.wantScale) > 1e-9 {
				t.Errorf("Scale: got %v, want %v", v.Scale, tt.wantScale)
			}
		})
	}
}

func TestWorldToScreen(t *testing.T) {
	v := NewTopDownView(800, 800, 20, 1)

	x, y := v.WorldToScreen(mgl64.Vec3{0, 5, 0})
	if x != 400 || y != 400 {
		t.Errorf("origin: got (%v, %v), want (400, 400)", x, y)
	}

	// 高度不影响俯视投影
	x, y = v.WorldToScreen(mgl64.Vec3{10, -3, -10})
	if x != 800 || y != 0 {
		t.Errorf("corner: got (%v, %v), want (800, 0)", x, y)
	}
}

func TestScreenToWorldRoundTrip(t *testing.T) {
	v := NewTopDownView(800, 600, 20, 1.1)
	p := mgl64.Vec3{3.5, 2, -4.25}

	x, y := v.WorldToScreen(p)
	got := v.ScreenToWorld(x, y, 2)
	if !got.ApproxEqualThreshold(p, 1e-9) {
		t.Errorf("round trip: got %v, want %v", got, p)
	}
}
