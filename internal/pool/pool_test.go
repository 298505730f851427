package pool

import (
	"sync"
	"testing"
)

func TestGetPut_ExactSize(t *testing.T) {
	tests := []struct {
		name string
		size int
	}{
		{"1x1", 4},
		{"64K", Size64K},
		{"256K", Size256K},
		{"1M", Size1M},
		{"300x200", 300 * 200 * 4},
		{"1000x1000", 1000 * 1000 * 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Get(tt.size)
			if len(b) != tt.size {
				t.Errorf("Get(%d): len = %d, want %d", tt.size, len(b), tt.size)
			}
			Put(b)
		})
	}
}

func TestGet_Oversize(t *testing.T) {
	size := Size64M + 1
	b := Get(size)
	if len(b) != size {
		t.Fatalf("Get(%d): len = %d", size, len(b))
	}
	// Must not panic or poison a bucket.
	Put(b)

	small := Get(16)
	if len(small) != 16 || cap(small) < Size64K {
		t.Errorf("Get(16) after oversize Put: len=%d cap=%d", len(small), cap(small))
	}
	Put(small)
}

func TestPut_OutOfRange(t *testing.T) {
	Put(nil)
	Put(make([]byte, 100))
	b := Get(Size64K)
	if len(b) != Size64K {
		t.Errorf("Get(%d) after small Put: len = %d", Size64K, len(b))
	}
	Put(b)
}

func TestBucketIndex(t *testing.T) {
	tests := []struct {
		size    int
		wantGet int
		wantPut int
	}{
		{1, 0, -1},
		{Size64K, 0, 0},
		{Size64K + 1, 1, 0},
		{Size256K, 1, 1},
		{Size1M, 2, 2},
		{Size1M + 1, 3, 2},
		{Size64M, 5, 5},
		{Size64M + 1, -1, -1},
	}
	for _, tt := range tests {
		if got := getIndex(tt.size); got != tt.wantGet {
			t.Errorf("getIndex(%d) = %d, want %d", tt.size, got, tt.wantGet)
		}
		if got := putIndex(tt.size); got != tt.wantPut {
			t.Errorf("putIndex(%d) = %d, want %d", tt.size, got, tt.wantPut)
		}
	}
}

func TestPut_OddCapacityServesBucket(t *testing.T) {
	// A buffer whose capacity sits between classes lands in the lower
	// bucket, so every Get from that bucket still fits.
	odd := make([]byte, Size256K+10)
	Put(odd)
	for i := 0; i < 4; i++ {
		b := Get(Size256K)
		if len(b) != Size256K {
			t.Fatalf("Get(%d): len = %d", Size256K, len(b))
		}
		Put(b)
	}
}

func TestConcurrency(t *testing.T) {
	const goroutines = 16
	const iterations = 20

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for g := 0; g < goroutines; g++ {
		go func() {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				for _, size := range []int{4, 4096, 100000, 300000, 2000000} {
					b := Get(size)
					if len(b) != size {
						t.Errorf("concurrent Get(%d): len = %d", size, len(b))
						return
					}
					b[0], b[size-1] = 1, 1
					Put(b)
				}
			}
		}()
	}
	wg.Wait()
}

func BenchmarkGet(b *testing.B) {
	benchmarks := []struct {
		name string
		size int
	}{
		{"64K", Size64K},
		{"1M", Size1M},
		{"16M", Size16M},
	}
	for _, bm := range benchmarks {
		b.Run(bm.name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				buf := Get(bm.size)
				Put(buf)
			}
		})
	}
}
