package tess

import "testing"

func TestAsPath(t *testing.T) {
	custom := MustParsePathData("M0 0 L4 0 L0 4 Z")
	tests := []struct {
		name     string
		shape    Shape
		verbs    int
		fillable bool
	}{
		{"empty", EmptyShape{}, 0, false},
		{"line", LineShape{P0: Pt(0, 0), P1: Pt(5, 5)}, 2, false},
		{"rect", RectShape{Rect: RectXYWH(0, 0, 4, 4)}, 5, true},
		{"degenerate rect", RectShape{Rect: RectXYWH(0, 0, 0, 4)}, 5, false},
		{"rrect", RRectShape{Rect: RectXYWH(0, 0, 10, 10), RX: 2, RY: 2}, 10, true},
		{"square rrect", RRectShape{Rect: RectXYWH(0, 0, 10, 10)}, 5, true},
		{"path", PathShape{Path: custom}, 4, true},
		{"nil path", PathShape{}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AsPath(tt.shape).CountVerbs(); got != tt.verbs {
				t.Errorf("AsPath().CountVerbs() = %d, want %d", got, tt.verbs)
			}
			if got := IsFillable(tt.shape); got != tt.fillable {
				t.Errorf("IsFillable() = %v, want %v", got, tt.fillable)
			}
		})
	}
}

func TestAsPathReturnsSamePath(t *testing.T) {
	p := MustParsePathData("M0 0 L1 1")
	if AsPath(PathShape{Path: p}) != p {
		t.Error("AsPath copied a PathShape's path")
	}
}
