package tessellate

import (
	"strings"
	"testing"
)

func TestShaderInput(t *testing.T) {
	tests := []struct {
		name string
		new  func() (Attribs, error)
		want []string
	}{
		{"wedge", func() (Attribs, error) {
			wt, err := NewWedgeTessellator(WithAttribs(AttribColor))
			if err != nil {
				return 0, err
			}
			return wt.Attribs(), nil
		}, []string{"@location(2) fan_point: vec2<f32>", "@location(3) color: vec4<f32>"}},
		{"stroke", func() (Attribs, error) {
			st, err := NewStrokeTessellator()
			if err != nil {
				return 0, err
			}
			return st.Attribs(), nil
		}, []string{"stroke_params", "join_control_point"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attribs, err := tt.new()
			if err != nil {
				t.Fatal(err)
			}
			wgsl, err := ShaderInput(attribs)
			if err != nil {
				if s := err.Error(); strings.Contains(s, "not yet implemented") || strings.Contains(s, "not supported") {
					t.Skipf("Skipping: naga feature not yet implemented: %v", err)
				}
				t.Fatalf("ShaderInput: %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(wgsl, w) {
					t.Errorf("shader input missing %q:\n%s", w, wgsl)
				}
			}
		})
	}
}
