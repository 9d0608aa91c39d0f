package memfs

import (
	"sync"

	"github.com/valyala/bytebufferpool"
)

// buffer is the shared byte storage behind one registry entry.
//
// It is held by the registry entry (while registered) and by every open handle.
// The pooled storage goes back to the pool once neither holds it.
type buffer struct {
	mu         sync.Mutex
	data       *bytebufferpool.ByteBuffer
	registered bool
	handles    int
}

func newBuffer(data []byte) *buffer {
	bb := bytebufferpool.Get()
	_, _ = bb.Write(data)
	return &buffer{
		data:       bb,
		registered: true,
	}
}

// acquire adds a handle hold. It fails if the buffer has left the registry,
// in which case the caller must look the name up again.
func (b *buffer) acquire() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.registered {
		return false
	}
	b.handles++
	return true
}

// release drops a handle hold.
func (b *buffer) release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handles--
	b.freeLocked()
}

// unregister drops the registry hold. Caller holds b.mu.
func (b *buffer) unregisterLocked() {
	b.registered = false
	b.freeLocked()
}

func (b *buffer) freeLocked() {
	if b.registered || b.handles > 0 || b.data == nil {
		return
	}
	bytebufferpool.Put(b.data)
	b.data = nil
}

// discard frees a buffer that never made it into the registry.
func (b *buffer) discard() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handles = 0
	b.unregisterLocked()
}

// snapshotLocked returns a copy of the contents. Caller holds b.mu.
func (b *buffer) snapshotLocked() []byte {
	out := make([]byte, b.data.Len())
	copy(out, b.data.B)
	return out
}

func (b *buffer) size() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.data == nil {
		return 0
	}
	return b.data.Len()
}
