package gpu

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Errors.
var (
	// ErrMemoryBudgetExceeded is returned when a buffer would exceed the
	// manager's budget.
	ErrMemoryBudgetExceeded = errors.New("gpu: memory budget exceeded")

	// ErrManagerClosed is returned when operating on a closed manager.
	ErrManagerClosed = errors.New("gpu: manager closed")

	// ErrNoHAL is returned when a provider does not expose a HAL device and
	// queue.
	ErrNoHAL = errors.New("gpu: provider does not expose HAL device and queue")

	// ErrEmptyBuffer is returned for zero-length uploads.
	ErrEmptyBuffer = errors.New("gpu: empty buffer")
)

// DefaultMaxMemoryMB is the default buffer budget.
const DefaultMaxMemoryMB = 64

// copyBufferAlignment is the WebGPU COPY_BUFFER_ALIGNMENT.
const copyBufferAlignment uint64 = 4

// Device is the part of hal.Device the manager uses.
type Device interface {
	CreateBuffer(desc *hal.BufferDescriptor) (hal.Buffer, error)
	DestroyBuffer(buffer hal.Buffer)
}

// Queue is the part of hal.Queue the manager uses.
type Queue interface {
	WriteBuffer(buffer hal.Buffer, offset uint64, data []byte)
}

// MemoryStats contains buffer usage statistics.
type MemoryStats struct {
	TotalBytes     uint64
	UsedBytes      uint64
	AvailableBytes uint64
	BufferCount    int
	Utilization    float64
}

// String returns a human-readable summary.
func (s MemoryStats) String() string {
	return fmt.Sprintf("Memory[%.1f%% used, %d/%d KB, %d buffers]",
		s.Utilization*100, s.UsedBytes/1024, s.TotalBytes/1024, s.BufferCount)
}

// Buffer is a GPU buffer created by a Manager.
type Buffer struct {
	Raw   hal.Buffer
	Label string
	// Size is the allocated size, Len rounded up to the copy alignment.
	Size  uint64
	Len   int
	Usage gputypes.BufferUsage
}

// Manager creates GPU buffers and tracks them against a byte budget.
//
// Manager is safe for concurrent use.
type Manager struct {
	mu      sync.Mutex
	device  Device
	queue   Queue
	budget  uint64
	used    uint64
	buffers map[*Buffer]struct{}
	closed  bool
}

// NewManager returns a Manager for device and queue. A budget of 0 uses
// DefaultMaxMemoryMB.
func NewManager(device Device, queue Queue, budgetBytes uint64) *Manager {
	if budgetBytes == 0 {
		budgetBytes = DefaultMaxMemoryMB << 20
	}
	return &Manager{
		device:  device,
		queue:   queue,
		budget:  budgetBytes,
		buffers: make(map[*Buffer]struct{}),
	}
}

// NewManagerFromProvider extracts the HAL device and queue from provider,
// which must expose HalDevice() any and HalQueue() any.
func NewManagerFromProvider(provider any, budgetBytes uint64) (*Manager, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrNoHAL
	}
	device, ok := hp.HalDevice().(Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is %T", ErrNoHAL, hp.HalDevice())
	}
	queue, ok := hp.HalQueue().(Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue is %T", ErrNoHAL, hp.HalQueue())
	}
	return NewManager(device, queue, budgetBytes), nil
}

// Upload creates a buffer holding data. usage gets CopyDst added.
func (m *Manager) Upload(label string, usage gputypes.BufferUsage, data []byte) (*Buffer, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyBuffer, label)
	}
	n := len(data)
	size := (uint64(n) + copyBufferAlignment - 1) &^ (copyBufferAlignment - 1)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, ErrManagerClosed
	}
	if m.used+size > m.budget {
		return nil, fmt.Errorf("%w: need %d bytes, have %d bytes available",
			ErrMemoryBudgetExceeded, size, m.budget-m.used)
	}

	usage |= gputypes.BufferUsageCopyDst
	raw, err := m.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  size,
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: create buffer %q: %w", label, err)
	}
	if uint64(len(data)) != size {
		padded := make([]byte, size)
		copy(padded, data)
		data = padded
	}
	m.queue.WriteBuffer(raw, 0, data)

	b := &Buffer{Raw: raw, Label: label, Size: size, Len: n, Usage: usage}
	m.buffers[b] = struct{}{}
	m.used += size
	slogger().Info("buffer uploaded", "label", label, "bytes", size)
	return b, nil
}

// Release destroys b and returns its bytes to the budget. Releasing a
// buffer twice, or after Close, does nothing.
func (m *Manager) Release(b *Buffer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.buffers[b]; !ok {
		return
	}
	delete(m.buffers, b)
	m.used -= b.Size
	m.device.DestroyBuffer(b.Raw)
}

// Stats returns current usage.
func (m *Manager) Stats() MemoryStats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return MemoryStats{
		TotalBytes:     m.budget,
		UsedBytes:      m.used,
		AvailableBytes: m.budget - m.used,
		BufferCount:    len(m.buffers),
		Utilization:    float64(m.used) / float64(m.budget),
	}
}

// Close destroys every live buffer. The manager must not be used
// afterwards.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	for b := range m.buffers {
		m.device.DestroyBuffer(b.Raw)
	}
	m.buffers = nil
	m.used = 0
	m.closed = true
}
