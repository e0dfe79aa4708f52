package tessellate

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/tess"
)

func indices(tpl *Template) []uint16 {
	out := make([]uint16, 0, tpl.IndexCount)
	for i := 0; i < len(tpl.Indices); i += 2 {
		out = append(out, binary.LittleEndian.Uint16(tpl.Indices[i:]))
	}
	return out
}

func floats(b []byte) []float32 {
	out := make([]float32, 0, len(b)/4)
	for i := 0; i < len(b); i += 4 {
		out = append(out, math.Float32frombits(binary.LittleEndian.Uint32(b[i:])))
	}
	return out
}

func TestFillTemplates(t *testing.T) {
	sb := NewStaticBuffers(0)
	tests := []struct {
		name         string
		tpl          *Template
		wantVertices []float32
		wantIndices  []uint16
	}{
		{
			name:         "curve level 1",
			tpl:          sb.Curve(1),
			wantVertices: []float32{0, 0, 0, 1, 1, 1},
			wantIndices:  []uint16{0, 2, 1},
		},
		{
			name:         "curve level 2",
			tpl:          sb.Curve(2),
			wantVertices: []float32{0, 0, 0, 1, 1, 1, 2, 1, 2, 3},
			wantIndices:  []uint16{0, 2, 1, 0, 3, 2, 2, 4, 1},
		},
		{
			name:         "wedge level 1",
			tpl:          sb.Wedge(1),
			wantVertices: []float32{0, 0, 0, 1, 1, 1, -1, -1},
			wantIndices:  []uint16{3, 0, 1, 0, 2, 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diff(t, tt.wantVertices, floats(tt.tpl.Vertices))
			diff(t, tt.wantIndices, indices(tt.tpl))
			if tt.tpl.VertexCount != len(tt.wantVertices)/2 || tt.tpl.IndexCount != len(tt.wantIndices) {
				t.Errorf("counts = %d, %d", tt.tpl.VertexCount, tt.tpl.IndexCount)
			}
		})
	}
}

func TestFillTemplateSizes(t *testing.T) {
	sb := NewStaticBuffers(0)
	for level := 0; level <= MaxFixedResolveLevel; level++ {
		c, w := sb.Curve(level), sb.Wedge(level)
		if c.VertexCount != 1<<level+1 || w.VertexCount != 1<<level+2 {
			t.Errorf("level %d: vertex counts %d, %d", level, c.VertexCount, w.VertexCount)
		}
		if c.IndexCount != 3*NumCurveTrianglesAtResolveLevel(level) {
			t.Errorf("level %d: curve index count %d", level, c.IndexCount)
		}
		if w.IndexCount != 3*NumWedgeTrianglesAtResolveLevel(level) {
			t.Errorf("level %d: wedge index count %d", level, w.IndexCount)
		}
		for _, i := range indices(c) {
			if int(i) >= c.VertexCount {
				t.Errorf("level %d: index %d out of range", level, i)
			}
		}
	}
}

// Every level's triangles are a prefix of the finest template's.
func TestFillTemplatePrefix(t *testing.T) {
	sb := NewStaticBuffers(0)
	finest := indices(sb.Curve(MaxFixedResolveLevel))
	for level := 1; level < MaxFixedResolveLevel; level++ {
		got := indices(sb.Curve(level))
		diff(t, finest[:len(got)], got)
	}
}

func TestStrokeTemplate(t *testing.T) {
	sb := NewStaticBuffers(0)
	tpl := sb.Stroke(5)
	if tpl.Size != 8 || tpl.VertexCount != 16 || tpl.Indices != nil {
		t.Fatalf("Size, VertexCount = %d, %d, want 8, 16 and no indices", tpl.Size, tpl.VertexCount)
	}
	ids := floats(tpl.Vertices)
	if !math.Signbit(float64(ids[1])) || ids[1] != 0 {
		t.Errorf("edge 0 negative side = %v, want -0", ids[1])
	}
	if ids[6] != 3 || ids[7] != -3 {
		t.Errorf("edge 3 = %v, %v, want 3, -3", ids[6], ids[7])
	}
	if sb.Stroke(MaxStrokeEdges+100).Size != MaxStrokeEdges {
		t.Error("stroke template not capped at MaxStrokeEdges")
	}
}

func TestStaticBuffersCache(t *testing.T) {
	sb := NewStaticBuffers(0)
	a := sb.Curve(3)
	if b := sb.Curve(3); a != b {
		t.Error("Curve(3) built twice")
	}
	if sb.Stroke(7) != sb.Stroke(8) {
		t.Error("Stroke(7) and Stroke(8) do not share a template")
	}
	st := sb.Stats()
	if st.Len != 2 || st.Hits != 2 || st.Misses != 2 {
		t.Errorf("Stats = %+v, want 2 entries, 2 hits, 2 misses", st)
	}
}

func TestTemplateFor(t *testing.T) {
	sb := NewStaticBuffers(0)
	tests := []struct {
		name string
		res  Result
		want *Template
	}{
		{"empty", Result{}, nil},
		{"hardware", Result{Mode: HardwareTessellation, PatchCount: 1}, nil},
		{"curve", Result{PatchCount: 1, ResolveLevel: 2}, sb.Curve(2)},
		{"wedge", Result{PatchCount: 1, ResolveLevel: 2, Attribs: AttribFanPoint}, sb.Wedge(2)},
		{"stroke", Result{PatchCount: 1, FixedEdgeCount: 20, Attribs: AttribStrokeParams}, sb.Stroke(32)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sb.For(tt.res); got != tt.want {
				t.Errorf("For = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestTemplateLayout(t *testing.T) {
	sb := NewStaticBuffers(0)
	l := sb.Stroke(4).Layout(6)
	if l.ArrayStride != 4 || l.Attributes[0].Format != gputypes.VertexFormatFloat32 || l.Attributes[0].ShaderLocation != 6 {
		t.Errorf("stroke layout = %+v", l)
	}
	l = sb.Wedge(3).Layout(3)
	if l.ArrayStride != 8 || l.Attributes[0].Format != gputypes.VertexFormatFloat32x2 {
		t.Errorf("wedge layout = %+v", l)
	}
	if l.StepMode != gputypes.VertexStepModeVertex {
		t.Errorf("step mode = %v, want per vertex", l.StepMode)
	}
}

func TestSharedStaticBuffers(t *testing.T) {
	sb := NewStaticBuffers(0)
	wt, err := NewWedgeTessellator(WithStaticBuffers(sb))
	if err != nil {
		t.Fatal(err)
	}
	st, err := NewStrokeTessellator(WithStaticBuffers(sb))
	if err != nil {
		t.Fatal(err)
	}
	fill := wt.Prepare(DrawList{pathDraw(bowl, tess.Identity())})
	if fill.Template != sb.Wedge(fill.ResolveLevel) {
		t.Error("wedge result does not use the shared template")
	}
	line := st.Prepare(StrokeList{pathStroke("M0 0 L10 0", tess.Identity(), tess.DefaultStrokeStyle())})
	if line.Template == nil || line.Template.Kind != TemplateStroke || line.Template.Size < line.FixedEdgeCount {
		t.Errorf("stroke template = %+v for %d edges", line.Template, line.FixedEdgeCount)
	}
}
