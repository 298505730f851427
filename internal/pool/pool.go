// Package pool provides bucketed sync.Pool instances for picture pixel
// storage. A decoded picture borrows one buffer for its whole lifetime and
// gives it back when it is encoded or released, so bursts of conversions of
// similar sizes reuse memory instead of growing the heap.
package pool

import "sync"

// Size classes, chosen around common square picture sizes at 4 bytes per
// pixel (128², 256², 512², 1024², 2048², 4096²).
const (
	Size64K  = 64 << 10
	Size256K = 256 << 10
	Size1M   = 1 << 20
	Size4M   = 4 << 20
	Size16M  = 16 << 20
	Size64M  = 64 << 20
)

var sizes = [...]int{Size64K, Size256K, Size1M, Size4M, Size16M, Size64M}

var pools [len(sizes)]sync.Pool

func init() {
	for i := range pools {
		sz := sizes[i]
		pools[i] = sync.Pool{
			New: func() any {
				b := make([]byte, sz)
				return &b
			},
		}
	}
}

// getIndex returns the smallest bucket whose class holds size bytes, or -1
// when size exceeds the largest class.
func getIndex(size int) int {
	for i, sz := range sizes {
		if size <= sz {
			return i
		}
	}
	return -1
}

// putIndex returns the largest bucket whose class fits in capacity c, or -1
// when c is outside the pooled range.
func putIndex(c int) int {
	if c < sizes[0] || c > sizes[len(sizes)-1] {
		return -1
	}
	idx := -1
	for i, sz := range sizes {
		if c >= sz {
			idx = i
		}
	}
	return idx
}

// Get returns a byte slice with length == size. The contents are not
// zeroed. Sizes above Size64M are allocated directly and never pooled.
func Get(size int) []byte {
	idx := getIndex(size)
	if idx < 0 {
		return make([]byte, size)
	}
	bp := pools[idx].Get().(*[]byte)
	b := *bp
	if cap(b) < size {
		return make([]byte, size)
	}
	return b[:size]
}

// Put returns a byte slice obtained from Get to its pool. Slices whose
// capacity falls outside the pooled range are dropped.
func Put(b []byte) {
	idx := putIndex(cap(b))
	if idx < 0 {
		return
	}
	b = b[:cap(b)]
	pools[idx].Put(&b)
}
