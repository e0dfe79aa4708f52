package tess

import (
	"math"
	"testing"
)

func TestMatrixPredicates(t *testing.T) {
	persp := Identity()
	persp.G = 0.01
	tiny := Identity()
	tiny.H = 1e-6

	tests := []struct {
		name         string
		m            Matrix
		translation  bool
		perspective  bool
		nearlyAffine bool
	}{
		{"identity", Identity(), true, false, true},
		{"translate", Translate(3, 4), true, false, true},
		{"scale", Scale(2, 3), false, false, true},
		{"rotate", Rotate(math.Pi / 3), false, false, true},
		{"perspective", persp, false, true, false},
		{"tiny perspective", tiny, false, true, true},
		{"zero matrix", Matrix{}, false, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.IsTranslation(); got != tt.translation {
				t.Errorf("IsTranslation() = %v, want %v", got, tt.translation)
			}
			if got := tt.m.HasPerspective(); got != tt.perspective {
				t.Errorf("HasPerspective() = %v, want %v", got, tt.perspective)
			}
			if got := tt.m.IsNearlyAffine(); got != tt.nearlyAffine {
				t.Errorf("IsNearlyAffine() = %v, want %v", got, tt.nearlyAffine)
			}
		})
	}
}

func TestMatrixInvertRoundTrip(t *testing.T) {
	m := Translate(10, -5).Multiply(Rotate(0.7)).Multiply(Scale(2, 0.5))
	p := Pt(3, 4)
	got := m.Invert().TransformPoint(m.TransformPoint(p))
	diff(t, p, got, pointComparer)
}

func TestMatrixPerspectiveDivide(t *testing.T) {
	m := Identity()
	m.I = 2
	diff(t, Pt(1, 2), m.TransformPoint(Pt(2, 4)))

	a, ok := m.Affine()
	if !ok {
		t.Fatal("Affine() rejected uniform homogeneous scale")
	}
	diff(t, Pt(1, 2), a.TransformPoint(Pt(2, 4)))
}

func TestMatrixMaxScale(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
		want float32
	}{
		{"identity", Identity(), 1},
		{"non-uniform", Scale(2, 5), 5},
		{"rotation keeps length", Rotate(1.1), 1},
		{"rotated scale", Rotate(0.3).Multiply(Scale(3, 1)), 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.m.MaxScale()
			if math.Abs(float64(got-tt.want)) > 1e-4 {
				t.Errorf("MaxScale() = %v, want %v", got, tt.want)
			}
		})
	}
}
