package engine

import (
	"math"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestMinScale(t *testing.T) {
	tests := []struct {
		name     string
		viewport Size
		content  Size
		margin   float64
		want     float64
	}{
		// Portrait phone against the reference trail map: width is the
		// limiting axis, 375/1521 * 0.98.
		{"phone portrait", Size{375, 600}, Size{1521, 2021}, 0.98, 0.24162},
		{"square fit", Size{500, 500}, Size{1000, 1000}, 1.0, 0.5},
		{"height limited", Size{800, 300}, Size{1000, 1000}, 1.0, 0.3},
	}

	for _, tt := range tests {
		got, err := MinScale(tt.viewport, tt.content, tt.margin)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", tt.name, err)
			continue
		}
		if !almostEqual(got, tt.want, 0.001) {
			t.Errorf("%s: MinScale = %.5f, want %.5f", tt.name, got, tt.want)
		}
	}
}

func TestMinScaleDegenerate(t *testing.T) {
	tests := []struct {
		name     string
		viewport Size
		content  Size
	}{
		{"zero content", Size{375, 600}, Size{0, 0}},
		{"zero content height", Size{375, 600}, Size{1521, 0}},
		{"zero viewport", Size{0, 0}, Size{1521, 2021}},
		{"negative viewport", Size{-1, 600}, Size{1521, 2021}},
	}

	for _, tt := range tests {
		got, err := MinScale(tt.viewport, tt.content, 0.98)
		if err == nil {
			t.Errorf("%s: expected error, got scale %g", tt.name, got)
		}
		if math.IsNaN(got) || math.IsInf(got, 0) {
			t.Errorf("%s: scale must stay finite, got %g", tt.name, got)
		}
	}
}

func TestCoverScale(t *testing.T) {
	got := CoverScale(Size{375, 600}, Size{1521, 2021})
	want := 600.0 / 2021.0
	if !almostEqual(got, want, 1e-9) {
		t.Errorf("CoverScale = %.5f, want %.5f", got, want)
	}
}

func TestDefaultScale(t *testing.T) {
	tests := []struct {
		name           string
		min, zoom, max float64
		want           float64
	}{
		{"overview zoom", 0.24, 1.25, 1.0, 0.3},
		{"clamped to ceiling", 0.9, 1.6, 1.0, 1.0},
		{"zoom below one keeps min", 0.5, 0.5, 1.0, 0.5},
	}

	for _, tt := range tests {
		got := DefaultScale(tt.min, tt.zoom, tt.max)
		if !almostEqual(got, tt.want, 1e-9) {
			t.Errorf("%s: DefaultScale = %g, want %g", tt.name, got, tt.want)
		}
	}
}
