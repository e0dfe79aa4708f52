package gpu

import (
	"fmt"
	"strings"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"

	"github.com/gogpu/tess/internal/patch"
)

// Field names of the optional attributes, in record order.
var attribFields = []struct {
	a    patch.Attribs
	name string
}{
	{patch.AttribFanPoint, "fan_point"},
	{patch.AttribColor, "color"},
	{patch.AttribExplicitCurveType, "curve_type"},
	{patch.AttribStrokeParams, "stroke_params"},
	{patch.AttribJoinControlPoint, "join_control_point"},
}

func wgslType(f gputypes.VertexFormat) string {
	switch f {
	case gputypes.VertexFormatFloat32:
		return "f32"
	case gputypes.VertexFormatFloat32x2:
		return "vec2<f32>"
	default:
		return "vec4<f32>"
	}
}

// PatchInputWGSL returns a WGSL struct named PatchInput whose fields and
// locations are those of patch.VertexAttributes(attribs).
func PatchInputWGSL(attribs patch.Attribs) string {
	attrs := patch.VertexAttributes(attribs)
	names := []string{"p01", "p23"}
	for _, f := range attribFields {
		if attribs.Has(f.a) {
			names = append(names, f.name)
		}
	}

	var sb strings.Builder
	sb.WriteString("struct PatchInput {\n")
	for i, a := range attrs {
		fmt.Fprintf(&sb, "    @location(%d) %s: %s,\n", a.ShaderLocation, names[i], wgslType(a.Format))
	}
	sb.WriteString("}\n")
	return sb.String()
}

// ValidatePatchInput compiles a minimal vertex shader reading every
// PatchInput field and returns the SPIR-V.
func ValidatePatchInput(attribs patch.Attribs) ([]byte, error) {
	var sb strings.Builder
	sb.WriteString(PatchInputWGSL(attribs))
	sb.WriteString(`
@vertex
fn vs_main(in: PatchInput) -> @builtin(position) vec4<f32> {
    var p = in.p01 + in.p23;
`)
	for _, f := range attribFields {
		if !attribs.Has(f.a) {
			continue
		}
		switch f.a {
		case patch.AttribColor:
			fmt.Fprintf(&sb, "    p = p + in.%s;\n", f.name)
		case patch.AttribExplicitCurveType:
			fmt.Fprintf(&sb, "    p.x = p.x + in.%s;\n", f.name)
		default:
			fmt.Fprintf(&sb, "    p = vec4<f32>(p.xy + in.%s, p.zw);\n", f.name)
		}
	}
	sb.WriteString("    return vec4<f32>(p.xy, 0.0, 1.0);\n}\n")

	spirv, err := naga.Compile(sb.String())
	if err != nil {
		return nil, fmt.Errorf("gpu: compile patch input for %v: %w", attribs, err)
	}
	return spirv, nil
}
