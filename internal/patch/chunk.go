package patch

import (
	"errors"
	"fmt"

	"github.com/gogpu/tess"
)

// Allocation errors.
var (
	// ErrBudgetExceeded is returned by an Arena that cannot satisfy the
	// minimum request within its byte budget.
	ErrBudgetExceeded = errors.New("patch: vertex budget exceeded")

	// ErrShortBuffer is returned by Decode for data that is not a whole
	// number of patch records.
	ErrShortBuffer = errors.New("patch: buffer is not a multiple of the patch stride")

	// ErrCurveTypeMismatch is returned by Decode when the explicit curve
	// type disagrees with the infinity sentinels.
	ErrCurveTypeMismatch = errors.New("patch: explicit curve type disagrees with encoding")
)

// Allocator hands out vertex storage for patch chunks.
type Allocator interface {
	// Allocate returns storage for at least minCount and at most
	// preferredCount records of stride bytes, and the record count it holds.
	Allocate(stride, minCount, preferredCount int) ([]byte, int, error)
	// PutBack returns the last count records of the most recent allocation.
	PutBack(count, stride int)
}

// Arena is a CPU Allocator with an optional byte budget. It is not safe for
// concurrent use; each tessellator owns its own.
type Arena struct {
	budget int
	used   int
}

// NewArena returns an Arena limited to budgetBytes. Zero means unlimited.
func NewArena(budgetBytes int) *Arena {
	return &Arena{budget: budgetBytes}
}

// Allocate implements Allocator.
func (a *Arena) Allocate(stride, minCount, preferredCount int) ([]byte, int, error) {
	if preferredCount < minCount {
		preferredCount = minCount
	}
	count := preferredCount
	if a.budget > 0 {
		avail := (a.budget - a.used) / stride
		if avail < minCount {
			return nil, 0, fmt.Errorf("%w: need %d bytes, %d of %d used",
				ErrBudgetExceeded, minCount*stride, a.used, a.budget)
		}
		count = min(count, avail)
	}
	a.used += count * stride
	return make([]byte, count*stride), count, nil
}

// PutBack implements Allocator.
func (a *Arena) PutBack(count, stride int) {
	a.used = max(a.used-count*stride, 0)
}

// Used returns the bytes currently handed out.
func (a *Arena) Used() int { return a.used }

// Chunk is one contiguous run of patch records.
type Chunk struct {
	// Data holds Count records of the array's stride.
	Data  []byte
	Count int
	// Base is the index of the chunk's first patch within the array.
	Base int
}

// VertexChunkArray is the ordered list of chunks a tessellation pass wrote.
// Chunks are appended, never resized in place.
type VertexChunkArray struct {
	Stride int
	Chunks []Chunk
}

// PatchCount returns the total number of records across all chunks.
func (a *VertexChunkArray) PatchCount() int {
	n := 0
	for _, c := range a.Chunks {
		n += c.Count
	}
	return n
}

// Bytes returns all records concatenated.
func (a *VertexChunkArray) Bytes() []byte {
	out := make([]byte, 0, a.PatchCount()*a.Stride)
	for _, c := range a.Chunks {
		out = append(out, c.Data[:c.Count*a.Stride]...)
	}
	return out
}

// Chunk growth bounds.
const (
	// DefaultMinChunkPatches is the smallest chunk allocated when no
	// preallocation hint is given.
	DefaultMinChunkPatches = 64
	// maxChunkBytes caps chunk growth so stride*count stays well inside int32.
	maxChunkBytes = 1 << 26
)

// ChunkBuilder appends records to a VertexChunkArray. At most one chunk is
// open at a time; when it fills, a new one is allocated with
// max(request, minChunk) records and minChunk doubles for the next one.
//
// If the allocator fails, Append returns a scratch record so callers never
// check for nil. The record is lost and counted by Dropped.
type ChunkBuilder struct {
	alloc    Allocator
	arr      *VertexChunkArray
	stride   int
	minChunk int
	maxChunk int

	cur      []byte
	curCount int
	curCap   int
	open     bool

	scratch []byte
	dropped int
}

// NewChunkBuilder returns a builder writing stride-byte records into arr.
// preallocCount sizes the first chunk.
func NewChunkBuilder(alloc Allocator, arr *VertexChunkArray, stride, preallocCount int) *ChunkBuilder {
	arr.Stride = stride
	maxChunk := max(maxChunkBytes/stride, 1)
	return &ChunkBuilder{
		alloc:    alloc,
		arr:      arr,
		stride:   stride,
		minChunk: min(max(preallocCount, 1), maxChunk),
		maxChunk: maxChunk,
		scratch:  make([]byte, stride),
	}
}

// Append returns storage for one record.
func (b *ChunkBuilder) Append() []byte {
	if !b.open || b.curCount == b.curCap {
		if !b.allocChunk(1) {
			b.dropped++
			clear(b.scratch)
			return b.scratch
		}
	}
	off := b.curCount * b.stride
	b.curCount++
	b.arr.Chunks[len(b.arr.Chunks)-1].Count = b.curCount
	return b.cur[off : off+b.stride : off+b.stride]
}

func (b *ChunkBuilder) allocChunk(minCount int) bool {
	b.closeChunk()
	base := b.arr.PatchCount()
	b.arr.Chunks = append(b.arr.Chunks, Chunk{Base: base})

	want := max(minCount, b.minChunk)
	data, n, err := b.alloc.Allocate(b.stride, minCount, want)
	if err != nil {
		tess.Logger().Warn("patch: chunk allocation failed, dropping patches",
			"stride", b.stride, "count", want, "err", err)
		// Pop the chunk we could not back.
		b.arr.Chunks = b.arr.Chunks[:len(b.arr.Chunks)-1]
		return false
	}
	tess.Logger().Debug("patch: new chunk", "patches", n, "stride", b.stride, "base", base)

	b.cur, b.curCap, b.curCount, b.open = data, n, 0, true
	b.arr.Chunks[len(b.arr.Chunks)-1].Data = data
	b.minChunk = min(b.minChunk*2, b.maxChunk)
	return true
}

// closeChunk finalizes the open chunk, returning its unused records to the
// allocator and dropping it if it is empty.
func (b *ChunkBuilder) closeChunk() {
	if !b.open {
		return
	}
	if unused := b.curCap - b.curCount; unused > 0 {
		b.alloc.PutBack(unused, b.stride)
	}
	last := len(b.arr.Chunks) - 1
	if b.curCount == 0 {
		b.arr.Chunks = b.arr.Chunks[:last]
	} else {
		b.arr.Chunks[last].Data = b.cur[:b.curCount*b.stride]
	}
	b.cur, b.curCap, b.curCount, b.open = nil, 0, 0, false
}

// Close finalizes the builder. The array is complete afterwards.
func (b *ChunkBuilder) Close() {
	b.closeChunk()
}

// Dropped returns how many records were lost to allocation failures.
func (b *ChunkBuilder) Dropped() int {
	return b.dropped
}
