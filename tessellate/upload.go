package tessellate

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/tess/internal/cache"
	"github.com/gogpu/tess/internal/gpu"
	"github.com/gogpu/tess/internal/patch"
)

// ErrNilProvider is returned by NewUploader for a nil device provider.
var ErrNilProvider = errors.New("tessellate: nil device provider")

// Uploaded is a Result whose chunks live in GPU vertex buffers.
type Uploaded struct {
	Result Result
	// Chunks are the vertex buffers, one per chunk, in stream order.
	Chunks []gpu.ChunkBuffer
	// Layout describes one patch record. Fixed-count draws step it per
	// instance, hardware tessellation per vertex.
	Layout gputypes.VertexBufferLayout
}

// Uploader copies tessellation output to a GPU device. Uploaded templates
// are cached for the Uploader's lifetime and released by Close.
type Uploader struct {
	mem       *gpu.Manager
	templates *cache.Cache[templateKey, gpu.Template]
}

// NewUploader returns an Uploader for provider's device. The provider must
// also expose its HAL device and queue (HalDevice() and HalQueue()), as the
// gogpu providers do. budgetBytes caps the GPU memory used; zero selects
// the default budget.
func NewUploader(provider gpucontext.DeviceProvider, budgetBytes uint64) (*Uploader, error) {
	if provider == nil {
		return nil, ErrNilProvider
	}
	mem, err := gpu.NewManagerFromProvider(provider, budgetBytes)
	if err != nil {
		return nil, fmt.Errorf("tessellate: uploader: %w", err)
	}
	return newUploader(mem), nil
}

func newUploader(mem *gpu.Manager) *Uploader {
	u := &Uploader{mem: mem, templates: cache.New[templateKey, gpu.Template](0)}
	u.templates.OnEvict(func(_ templateKey, t gpu.Template) {
		mem.ReleaseTemplate(t)
	})
	return u
}

// Upload copies every chunk of res into its own vertex buffer.
func (u *Uploader) Upload(label string, res Result) (*Uploaded, error) {
	if res.Chunks == nil || res.IsEmpty() {
		return &Uploaded{Result: res}, nil
	}
	chunks, err := u.mem.UploadChunks(label, res.Chunks)
	if err != nil {
		return nil, err
	}
	return &Uploaded{
		Result: res,
		Chunks: chunks,
		Layout: patch.VertexBufferLayout(res.Attribs, res.Mode == FixedCount),
	}, nil
}

// Release frees the vertex buffers of up.
func (u *Uploader) Release(up *Uploaded) {
	for _, c := range up.Chunks {
		u.mem.Release(c.Buffer)
	}
	up.Chunks = nil
}

// UploadStatic returns t on the GPU, uploading it on first use.
func (u *Uploader) UploadStatic(t *Template) (gpu.Template, error) {
	key := templateKey{t.Kind, t.Size}
	if g, ok := u.templates.Get(key); ok {
		return g, nil
	}
	g, err := u.mem.UploadTemplate(fmt.Sprintf("tess.%s.%d", t.Kind, t.Size), t.Vertices, t.Indices)
	if err != nil {
		return gpu.Template{}, err
	}
	u.templates.Set(key, g)
	return g, nil
}

// Stats returns GPU memory usage.
func (u *Uploader) Stats() gpu.MemoryStats { return u.mem.Stats() }

// Close releases every template and buffer.
func (u *Uploader) Close() {
	u.templates.Clear()
	u.mem.Close()
}
