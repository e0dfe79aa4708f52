package tessellate

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/tess/internal/cache"
)

// TemplateKind identifies a fixed-count template mesh.
type TemplateKind uint8

const (
	// TemplateCurve is the middle-out triangulation of a curve's segments.
	TemplateCurve TemplateKind = iota
	// TemplateWedge is the curve template plus a fan vertex.
	TemplateWedge
	// TemplateStroke is a strip of edge IDs.
	TemplateStroke
)

func (k TemplateKind) String() string {
	switch k {
	case TemplateCurve:
		return "Curve"
	case TemplateWedge:
		return "Wedge"
	case TemplateStroke:
		return "Stroke"
	default:
		return fmt.Sprintf("TemplateKind(%d)", uint8(k))
	}
}

// Template is the per-vertex mesh every instance of a fixed-count draw
// shares. Curve and wedge vertices are float32 pairs (resolve level, index
// within level) from which the shader derives T = index / 2^level; the fan
// vertex is (-1, -1). Indices are uint16 triangle lists ordered so that the
// first 3*triangles(L) of them draw resolve level L. Stroke vertices are
// single float32 edge IDs, +i and -i for the two sides of edge i, drawn as a
// triangle strip without indices.
type Template struct {
	Kind TemplateKind
	// Size is the resolve level for curves and wedges and the edge count
	// for strokes.
	Size        int
	Vertices    []byte
	Indices     []byte
	VertexCount int
	IndexCount  int
}

// Layout returns the template's per-vertex buffer layout, reading its
// attribute at the given shader location.
func (t *Template) Layout(location uint32) gputypes.VertexBufferLayout {
	format, stride := gputypes.VertexFormatFloat32x2, uint64(8)
	if t.Kind == TemplateStroke {
		format, stride = gputypes.VertexFormatFloat32, 4
	}
	return gputypes.VertexBufferLayout{
		ArrayStride: stride,
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes: []gputypes.VertexAttribute{
			{Format: format, Offset: 0, ShaderLocation: location},
		},
	}
}

type templateKey struct {
	kind TemplateKind
	size int
}

// StaticBuffers caches template meshes. It is safe for concurrent use and
// is meant to live as long as the GPU context the templates are uploaded
// to.
type StaticBuffers struct {
	templates *cache.Cache[templateKey, *Template]
}

// NewStaticBuffers returns a template cache holding at most limit
// templates. Zero means unlimited.
func NewStaticBuffers(limit int) *StaticBuffers {
	return &StaticBuffers{templates: cache.New[templateKey, *Template](limit)}
}

// Stats returns the cache statistics.
func (s *StaticBuffers) Stats() cache.Stats { return s.templates.Stats() }

// Curve returns the curve template for a resolve level.
func (s *StaticBuffers) Curve(level int) *Template {
	level = min(max(level, 0), MaxFixedResolveLevel)
	return s.templates.GetOrCreate(templateKey{TemplateCurve, level}, func() *Template {
		return buildFillTemplate(TemplateCurve, level)
	})
}

// Wedge returns the wedge template for a resolve level.
func (s *StaticBuffers) Wedge(level int) *Template {
	level = min(max(level, 0), MaxFixedResolveLevel)
	return s.templates.GetOrCreate(templateKey{TemplateWedge, level}, func() *Template {
		return buildFillTemplate(TemplateWedge, level)
	})
}

// Stroke returns a stroke template with at least edges edges. Edge counts
// are rounded up to a power of two so nearby counts share one template.
func (s *StaticBuffers) Stroke(edges int) *Template {
	n := 1
	for n < edges {
		n <<= 1
	}
	n = min(n, MaxStrokeEdges)
	return s.templates.GetOrCreate(templateKey{TemplateStroke, n}, func() *Template {
		return buildStrokeTemplate(n)
	})
}

// For returns the template a fixed-count draw of res needs, or nil for an
// empty or hardware-tessellated result.
func (s *StaticBuffers) For(res Result) *Template {
	if res.Mode != FixedCount || res.IsEmpty() {
		return nil
	}
	switch {
	case res.FixedEdgeCount > 0:
		return s.Stroke(res.FixedEdgeCount)
	case res.Attribs.Has(AttribFanPoint):
		return s.Wedge(res.ResolveLevel)
	default:
		return s.Curve(res.ResolveLevel)
	}
}

// buildFillTemplate builds the middle-out template of 1<<level segments.
// Vertex 0 is T=0 and vertex 1 is T=1; each finer level then inserts one
// vertex between every adjacent pair of the previous level, in T order,
// with the triangle it cuts off.
func buildFillTemplate(kind TemplateKind, level int) *Template {
	type vtx struct{ level, idx float32 }
	verts := []vtx{{0, 0}, {0, 1}}
	var indices []uint16

	fan := uint16(1<<level + 1)
	if kind == TemplateWedge {
		indices = append(indices, fan, 0, 1)
	}
	order := []uint16{0, 1}
	for l := 1; l <= level; l++ {
		next := make([]uint16, 0, 2*len(order)-1)
		for j := 0; j+1 < len(order); j++ {
			v := uint16(len(verts))
			verts = append(verts, vtx{float32(l), float32(2*j + 1)})
			indices = append(indices, order[j], v, order[j+1])
			next = append(next, order[j], v)
		}
		order = append(next, order[len(order)-1])
	}
	if kind == TemplateWedge {
		verts = append(verts, vtx{-1, -1})
	}

	t := &Template{Kind: kind, Size: level, VertexCount: len(verts), IndexCount: len(indices)}
	t.Vertices = make([]byte, 0, 8*len(verts))
	for _, v := range verts {
		t.Vertices = binary.LittleEndian.AppendUint32(t.Vertices, math.Float32bits(v.level))
		t.Vertices = binary.LittleEndian.AppendUint32(t.Vertices, math.Float32bits(v.idx))
	}
	t.Indices = make([]byte, 0, 2*len(indices))
	for _, i := range indices {
		t.Indices = binary.LittleEndian.AppendUint16(t.Indices, i)
	}
	return t
}

// buildStrokeTemplate builds the edge ID strip for n edges. Edge 0's
// negative side is -0, so the shader tells the sides apart by sign bit.
func buildStrokeTemplate(n int) *Template {
	t := &Template{Kind: TemplateStroke, Size: n, VertexCount: 2 * n}
	t.Vertices = make([]byte, 0, 8*n)
	for i := 0; i < n; i++ {
		f := float32(i)
		t.Vertices = binary.LittleEndian.AppendUint32(t.Vertices, math.Float32bits(f))
		t.Vertices = binary.LittleEndian.AppendUint32(t.Vertices, math.Float32bits(-f))
	}
	return t
}
