package ringqueue

import (
	"fmt"
	"testing"

	"github.com/eapache/queue"
	ring "github.com/randomizedcoder/go-lock-free-ring"

	"github.com/c360/ringqueue/metric"
)

// BenchmarkEnqueueDequeue measures a steady-state enqueue/dequeue pair at
// different resident sizes.
func BenchmarkEnqueueDequeue(b *testing.B) {
	for _, resident := range []int{0, 100, 10000} {
		b.Run(fmt.Sprintf("Resident_%d", resident), func(b *testing.B) {
			q, err := NewWithCapacity[int](resident + 1)
			if err != nil {
				b.Fatal(err)
			}
			for i := 0; i < resident; i++ {
				_ = q.Enqueue(i)
			}

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = q.Enqueue(i)
				_, _ = q.Dequeue()
			}
		})
	}
}

// BenchmarkEnqueueGrowth measures enqueues that repeatedly trigger growth.
func BenchmarkEnqueueGrowth(b *testing.B) {
	for _, factor := range []float64{1.5, 2.0, 4.0} {
		b.Run(fmt.Sprintf("Factor_%.1f", factor), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				q, err := New[int](WithGrowthFactor[int](factor))
				if err != nil {
					b.Fatal(err)
				}
				for j := 0; j < 4096; j++ {
					_ = q.Enqueue(j)
				}
			}
		})
	}
}

// BenchmarkResize measures shrinking and regrowing a wrapped queue.
func BenchmarkResize(b *testing.B) {
	q, err := NewWithCapacity[int](1024)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for q.Size() < 1000 {
			_ = q.Enqueue(i)
		}
		q.DequeueBatch(300)
		_ = q.Resize(512)
		_ = q.Resize(1024)
	}
}

func BenchmarkFind(b *testing.B) {
	q, err := NewWithCapacity[int](1000)
	if err != nil {
		b.Fatal(err)
	}
	for i := 0; i < 1000; i++ {
		_ = q.Enqueue(i)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Find(q, 999)
	}
}

func BenchmarkWithMetrics(b *testing.B) {
	q, err := NewWithCapacity[int](1024, WithMetrics[int](metric.NewMetricsRegistry(), "bench"))
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = q.Enqueue(i)
		_, _ = q.Dequeue()
	}
}

// Comparison benchmarks against other FIFO implementations. Each runs the same
// single-goroutine enqueue/dequeue pair with 100 resident elements.

func BenchmarkCompare_RingQueue(b *testing.B) {
	q, err := NewWithCapacity[int](128)
	if err != nil {
		b.Fatal(err)
	}
	for i := 0; i < 100; i++ {
		_ = q.Enqueue(i)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = q.Enqueue(i)
		_, _ = q.Dequeue()
	}
}

func BenchmarkCompare_EapacheQueue(b *testing.B) {
	q := queue.New()
	for i := 0; i < 100; i++ {
		q.Add(i)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		q.Add(i)
		q.Remove()
	}
}

func BenchmarkCompare_Channel(b *testing.B) {
	ch := make(chan int, 128)
	for i := 0; i < 100; i++ {
		ch <- i
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ch <- i
		<-ch
	}
}

func BenchmarkCompare_LockFreeRing(b *testing.B) {
	r, err := ring.NewShardedRing(128, 1)
	if err != nil {
		b.Fatal(err)
	}
	for i := 0; i < 100; i++ {
		r.Write(0, i)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for !r.Write(0, i) {
		}
		r.TryRead()
	}
}
