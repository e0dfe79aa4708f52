package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/tess/internal/patch"
)

// ChunkBuffer is one uploaded patch chunk.
type ChunkBuffer struct {
	*Buffer
	// FirstPatch is the index of the chunk's first patch in the stream,
	// the base instance (or base vertex) of its draw.
	FirstPatch int
	// Count is the number of patches in the chunk.
	Count int
}

// UploadChunks uploads every chunk of arr into its own vertex buffer, in
// order. If any upload fails, the buffers already created are released.
func (m *Manager) UploadChunks(label string, arr *patch.VertexChunkArray) ([]ChunkBuffer, error) {
	out := make([]ChunkBuffer, 0, len(arr.Chunks))
	for i, c := range arr.Chunks {
		b, err := m.Upload(fmt.Sprintf("%s[%d]", label, i), gputypes.BufferUsageVertex, c.Data[:c.Count*arr.Stride])
		if err != nil {
			for _, done := range out {
				m.Release(done.Buffer)
			}
			return nil, fmt.Errorf("gpu: upload chunk %d of %d: %w", i, len(arr.Chunks), err)
		}
		out = append(out, ChunkBuffer{Buffer: b, FirstPatch: c.Base, Count: c.Count})
	}
	return out, nil
}

// Template is a fixed-count vertex template on the GPU. Index is nil for
// templates drawn without an index buffer.
type Template struct {
	Vertex *Buffer
	Index  *Buffer
}

// UploadTemplate uploads a fixed-count template's vertex data and, when
// indices is not empty, its index data.
func (m *Manager) UploadTemplate(label string, vertices, indices []byte) (Template, error) {
	vb, err := m.Upload(label+".vertex", gputypes.BufferUsageVertex, vertices)
	if err != nil {
		return Template{}, err
	}
	if len(indices) == 0 {
		return Template{Vertex: vb}, nil
	}
	ib, err := m.Upload(label+".index", gputypes.BufferUsageIndex, indices)
	if err != nil {
		m.Release(vb)
		return Template{}, err
	}
	return Template{Vertex: vb, Index: ib}, nil
}

// ReleaseTemplate releases both buffers of t.
func (m *Manager) ReleaseTemplate(t Template) {
	if t.Vertex != nil {
		m.Release(t.Vertex)
	}
	if t.Index != nil {
		m.Release(t.Index)
	}
}
