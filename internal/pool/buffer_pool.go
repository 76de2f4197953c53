package pool

import (
	"sync"
)

// BufferPool implements a pool of byte slices for efficient memory reuse
type BufferPool struct {
	pool sync.Pool
	size int
}

// NewBufferPool creates a new buffer pool with buffers of the specified size
func NewBufferPool(size int) *BufferPool {
	return &BufferPool{
		pool: sync.Pool{
			New: func() interface{} {
				buffer := make([]byte, 0, size)
				return &buffer
			},
		},
		size: size,
	}
}

// Get retrieves a buffer from the pool or creates a new one if none are available
func (bp *BufferPool) Get() *[]byte {
	return bp.pool.Get().(*[]byte)
}

// Put returns a buffer to the pool for reuse. Buffers that grew far beyond
// the pool size are dropped so one large list does not pin memory.
func (bp *BufferPool) Put(buffer *[]byte) {
	if cap(*buffer) > 16*bp.size {
		return
	}
	*buffer = (*buffer)[:0]
	bp.pool.Put(buffer)
}

// AppendLines appends each term followed by a newline to dst.
func AppendLines(dst []byte, terms []string) []byte {
	for _, term := range terms {
		dst = append(dst, term...)
		dst = append(dst, '\n')
	}
	return dst
}
