package patch

import "github.com/gogpu/gputypes"

// Shader locations of the patch inputs. Control points always occupy 0 and
// 1; optional attributes take the following locations in declaration order,
// skipping absent ones.
const (
	LocationP01 = 0
	LocationP23 = 1
)

// VertexAttributes returns the vertex attributes describing one record.
// Offsets match what the Writer produces byte for byte.
func VertexAttributes(attribs Attribs) []gputypes.VertexAttribute {
	attrs := []gputypes.VertexAttribute{
		{Format: gputypes.VertexFormatFloat32x4, Offset: 0, ShaderLocation: LocationP01},
		{Format: gputypes.VertexFormatFloat32x4, Offset: 16, ShaderLocation: LocationP23},
	}
	offset := uint64(pointsSize)
	loc := uint32(2)
	add := func(format gputypes.VertexFormat, size int) {
		attrs = append(attrs, gputypes.VertexAttribute{Format: format, Offset: offset, ShaderLocation: loc})
		offset += uint64(size)
		loc++
	}
	if attribs.Has(AttribFanPoint) {
		add(gputypes.VertexFormatFloat32x2, fanPointSize)
	}
	if attribs.Has(AttribColor) {
		add(gputypes.VertexFormatFloat32x4, colorSize)
	}
	if attribs.Has(AttribExplicitCurveType) {
		add(gputypes.VertexFormatFloat32, curveTypeSize)
	}
	if attribs.Has(AttribStrokeParams) {
		add(gputypes.VertexFormatFloat32x2, strokeParamsSize)
	}
	if attribs.Has(AttribJoinControlPoint) {
		add(gputypes.VertexFormatFloat32x2, joinControlPointSize)
	}
	return attrs
}

// VertexBufferLayout returns the buffer layout for patch records. Fixed-count
// draws read patches per instance; hardware tessellation reads them per
// vertex.
func VertexBufferLayout(attribs Attribs, instanced bool) gputypes.VertexBufferLayout {
	step := gputypes.VertexStepModeVertex
	if instanced {
		step = gputypes.VertexStepModeInstance
	}
	return gputypes.VertexBufferLayout{
		ArrayStride: uint64(attribs.Stride()),
		StepMode:    step,
		Attributes:  VertexAttributes(attribs),
	}
}
