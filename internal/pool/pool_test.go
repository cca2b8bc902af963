package pool_test

import (
	"sync"
	"testing"

	"github.com/robworks/opsdocs/internal/pool"
	"github.com/stretchr/testify/assert"
)

// =============================================================================
// Pool Basic Operations Tests
// =============================================================================

func TestPool_GetAndPut(t *testing.T) {
	// Create a pool of byte slices
	bufPool := pool.New(func() []byte {
		return make([]byte, 1024)
	})

	// Get an item
	buf := bufPool.Get()
	assert.NotNil(t, buf)
	assert.Len(t, buf, 1024)

	// Put it back
	bufPool.Put(buf)

	// Get again - may or may not be the same item
	buf2 := bufPool.Get()
	assert.NotNil(t, buf2)
	assert.Len(t, buf2, 1024)
}

func TestPool_ConstructorCalled(t *testing.T) {
	callCount := 0
	p := pool.New(func() int {
		callCount++
		return callCount
	})

	// First get should call constructor
	v1 := p.Get()
	assert.Equal(t, 1, v1)
	assert.Equal(t, 1, callCount)

	// Second get should also call constructor (nothing put back yet)
	v2 := p.Get()
	assert.Equal(t, 2, v2)
	assert.Equal(t, 2, callCount)
}

func TestPool_WithStructType(t *testing.T) {
	type page struct {
		HTML  []byte
		Route string
	}

	p := pool.New(func() *page {
		return &page{
			HTML: make([]byte, 0, 512),
		}
	})

	r := p.Get()
	assert.NotNil(t, r)
	assert.Equal(t, 512, cap(r.HTML))

	r.Route = "/linux/permissions/"
	p.Put(r)
}

// =============================================================================
// Pool Concurrency Tests
// =============================================================================

func TestPool_ConcurrentAccess(t *testing.T) {
	p := pool.New(func() []byte {
		return make([]byte, 256)
	})

	var wg sync.WaitGroup
	const goroutines = 100
	const iterations = 1000

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				buf := p.Get()
				assert.NotNil(t, buf)
				// Simulate work
				buf[0] = 1
				p.Put(buf)
			}
		}()
	}

	wg.Wait()
}

// =============================================================================
// BufferPool Tests
// =============================================================================

func TestBufferPool_ResetOnPut(t *testing.T) {
	bp := pool.NewBuffers(64, 1024)

	buf := bp.Get()
	buf.WriteString("<h1>Permissions</h1>")
	bp.Put(buf)

	buf2 := bp.Get()
	assert.Equal(t, 0, buf2.Len())
}

func TestBufferPool_DropsOversized(t *testing.T) {
	bp := pool.NewBuffers(64, 128)

	buf := bp.Get()
	buf.Grow(4096)
	// Must not panic; oversized buffers are simply dropped.
	bp.Put(buf)

	buf2 := bp.Get()
	assert.Equal(t, 0, buf2.Len())
}

func TestBufferPool_NilPut(t *testing.T) {
	bp := pool.NewBuffers(64, 1024)
	assert.NotPanics(t, func() { bp.Put(nil) })
}

// =============================================================================
// Pool Benchmarks
// =============================================================================

func BenchmarkPool_GetPut(b *testing.B) {
	p := pool.New(func() []byte {
		return make([]byte, 1024)
	})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf := p.Get()
		p.Put(buf)
	}
}

func BenchmarkBufferPool_Parallel(b *testing.B) {
	bp := pool.NewBuffers(4096, 1<<20)

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			buf := bp.Get()
			buf.WriteString("<section>")
			bp.Put(buf)
		}
	})
}
