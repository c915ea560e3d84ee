package markup

// Notes:
// - Converters created by the pool never start a browser unless PDF output
//   is requested, so these tests run without Chrome

import (
	"errors"
	"runtime"
	"sync"
	"testing"
	"time"
)

// Compile-time interface check.
var _ interface {
	Acquire() (*Converter, error)
	Release(*Converter)
	Size() int
	Close() error
} = (*ConverterPool)(nil)

func TestResolvePoolSize(t *testing.T) {
	t.Parallel()

	gomaxprocs := runtime.GOMAXPROCS(0)

	tests := []struct {
		name    string
		workers int
		want    int
	}{
		{"explicit takes priority", 4, 4},
		{"explicit=1 for sequential", 1, 1},
		{"explicit can exceed max", 16, 16},
		{"zero uses auto calculation", 0, min(max(gomaxprocs/cpuDivisor, MinPoolSize), MaxPoolSize)},
		{"negative uses auto calculation", -3, min(max(gomaxprocs/cpuDivisor, MinPoolSize), MaxPoolSize)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ResolvePoolSize(tt.workers); got != tt.want {
				t.Errorf("ResolvePoolSize(%d) = %d, want %d", tt.workers, got, tt.want)
			}
		})
	}
}

func TestNewConverterPool_InvalidOptions(t *testing.T) {
	t.Parallel()

	_, err := NewConverterPool(2, WithStyle("does-not-exist"))
	if !errors.Is(err, ErrStyleNotFound) {
		t.Errorf("NewConverterPool() error = %v, want %v", err, ErrStyleNotFound)
	}
}

func TestConverterPool_AcquireRelease(t *testing.T) {
	t.Parallel()

	pool, err := NewConverterPool(2)
	if err != nil {
		t.Fatalf("NewConverterPool() unexpected error: %v", err)
	}
	defer pool.Close()

	conv1, err := pool.Acquire()
	if err != nil || conv1 == nil {
		t.Fatalf("Acquire() = %v, %v", conv1, err)
	}

	conv2, err := pool.Acquire()
	if err != nil || conv2 == nil {
		t.Fatalf("Acquire() = %v, %v", conv2, err)
	}

	if conv1 == conv2 {
		t.Error("expected different converter instances")
	}

	pool.Release(conv1)
	conv3, err := pool.Acquire()
	if err != nil {
		t.Fatalf("Acquire() unexpected error: %v", err)
	}
	if conv3 != conv1 {
		t.Error("expected to get back released converter")
	}

	pool.Release(conv2)
	pool.Release(conv3)
}

func TestConverterPool_Size(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		size int
		want int
	}{
		{"size 1", 1, 1},
		{"size 4", 4, 4},
		{"size 0 becomes 1", 0, 1},
		{"negative becomes 1", -1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			pool, err := NewConverterPool(tt.size)
			if err != nil {
				t.Fatalf("NewConverterPool() unexpected error: %v", err)
			}
			defer pool.Close()

			if got := pool.Size(); got != tt.want {
				t.Errorf("Size() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestConverterPool_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	pool, err := NewConverterPool(4)
	if err != nil {
		t.Fatalf("NewConverterPool() unexpected error: %v", err)
	}
	defer pool.Close()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			conv, err := pool.Acquire()
			if err != nil {
				t.Errorf("Acquire() unexpected error: %v", err)
				return
			}
			time.Sleep(5 * time.Millisecond)
			pool.Release(conv)
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	timer := time.NewTimer(5 * time.Second)
	defer timer.Stop()

	select {
	case <-done:
	case <-timer.C:
		t.Fatal("concurrent access test timed out - possible deadlock")
	}
}

func TestConverterPool_Close(t *testing.T) {
	t.Parallel()

	pool, err := NewConverterPool(2)
	if err != nil {
		t.Fatalf("NewConverterPool() unexpected error: %v", err)
	}

	conv, err := pool.Acquire()
	if err != nil {
		t.Fatalf("Acquire() unexpected error: %v", err)
	}

	if err := pool.Close(); err != nil {
		t.Errorf("first Close() error = %v", err)
	}
	if err := pool.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}

	// Release after close is a no-op.
	pool.Release(conv)
	pool.Release(nil)

	if _, err := pool.Acquire(); !errors.Is(err, ErrPoolClosed) {
		t.Errorf("Acquire() after Close error = %v, want %v", err, ErrPoolClosed)
	}
}
