package pool

import "bytes"

// BufferPool pools *bytes.Buffer values for page rendering. Buffers are
// reset on Put; buffers that grew beyond maxCap are dropped so one huge
// page doesn't pin memory for the rest of the build.
type BufferPool struct {
	pool   *Pool[*bytes.Buffer]
	maxCap int
}

// NewBuffers creates a BufferPool whose buffers start at initial bytes of
// capacity and are discarded once they exceed maxCap.
func NewBuffers(initial, maxCap int) *BufferPool {
	if initial <= 0 {
		initial = 4 << 10
	}
	if maxCap < initial {
		maxCap = initial * 16
	}
	return &BufferPool{
		pool: New(func() *bytes.Buffer {
			return bytes.NewBuffer(make([]byte, 0, initial))
		}),
		maxCap: maxCap,
	}
}

// Get retrieves an empty buffer from the pool.
func (bp *BufferPool) Get() *bytes.Buffer {
	return bp.pool.Get()
}

// Put resets buf and returns it to the pool.
func (bp *BufferPool) Put(buf *bytes.Buffer) {
	if buf == nil || buf.Cap() > bp.maxCap {
		return
	}
	buf.Reset()
	bp.pool.Put(buf)
}
