package engine

import "testing"

func TestClampAxisCentersSmallContent(t *testing.T) {
	// Reference scenario: at the fit scale the content height (~487px)
	// is below the 600px viewport, so the vertical position is forced
	// to the centered value regardless of the candidate.
	scaled := 2021 * 0.2416
	for _, candidate := range []float64{-500, 0, 56.5, 300} {
		got := ClampAxis(candidate, scaled, 600)
		want := (600 - scaled) / 2
		if !almostEqual(got, want, 0.01) {
			t.Errorf("ClampAxis(%g) = %.2f, want centered %.2f", candidate, got, want)
		}
	}
	// Roughly 56 on-screen pixels of letterboxing; the exact value
	// depends on how far the scale constant is carried (55.86 at
	// 0.2416, 56.5 at 0.241).
	if got := ClampAxis(0, scaled, 600); !almostEqual(got, 56.5, 1.0) {
		t.Errorf("centered position = %.2f, want about 56.5", got)
	}
}

func TestClampAxisBoundsLargeContent(t *testing.T) {
	tests := []struct {
		name            string
		pos, scaled, vp float64
		want            float64
	}{
		{"inside range untouched", -100, 1000, 600, -100},
		{"leading edge past origin", 50, 1000, 600, 0},
		{"trailing edge inside viewport", -900, 1000, 600, -400},
		{"exact lower bound", -400, 1000, 600, -400},
	}

	for _, tt := range tests {
		got := ClampAxis(tt.pos, tt.scaled, tt.vp)
		if got != tt.want {
			t.Errorf("%s: ClampAxis(%g, %g, %g) = %g, want %g",
				tt.name, tt.pos, tt.scaled, tt.vp, got, tt.want)
		}
	}
}

// Sweep a range of scales and candidate translations: after Constrain
// the visible region must lie within [0, viewport] on overflowing axes
// and be exactly centered on fitting axes.
func TestConstrainInvariant(t *testing.T) {
	viewport := Size{375, 600}
	content := Size{1521, 2021}

	for _, scale := range []float64{0.2, 0.2416, 0.3, 0.5, 0.75, 1.0} {
		for _, x := range []float64{-2000, -500, 0, 500} {
			for _, y := range []float64{-2000, -500, 0, 500} {
				tf := Constrain(Transform{Scale: scale, X: x, Y: y}, viewport, content)

				checkAxis := func(axis string, pos, scaled, vp float64) {
					if scaled <= vp {
						if !almostEqual(pos, (vp-scaled)/2, 1e-9) {
							t.Fatalf("scale %g %s: pos %g not centered", scale, axis, pos)
						}
						return
					}
					if pos > 0 || pos < vp-scaled {
						t.Fatalf("scale %g %s: pos %g outside [%g, 0]", scale, axis, pos, vp-scaled)
					}
				}
				checkAxis("x", tf.X, content.W*scale, viewport.W)
				checkAxis("y", tf.Y, content.H*scale, viewport.H)
			}
		}
	}
}
