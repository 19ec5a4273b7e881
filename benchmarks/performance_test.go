// Package benchmarks
// Author: momentics <momentics@gmail.com>
//
// Performance benchmarks for concur components.

package benchmarks

import (
	"io"
	"sync"
	"testing"

	"github.com/momentics/concur/control"
	"github.com/momentics/concur/facade"
	"github.com/momentics/concur/internal/concurrency"
)

func benchmarkSubmit(b *testing.B, workers int) {
	p, err := concurrency.NewSimplePool(workers, nil)
	if err != nil {
		b.Fatal(err)
	}
	defer p.Shutdown()

	var wg sync.WaitGroup
	wg.Add(b.N)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := p.Submit(wg.Done); err != nil {
			b.Fatal(err)
		}
	}
	wg.Wait()
}

// BenchmarkSubmitSingleWorker measures the queue with no worker contention.
func BenchmarkSubmitSingleWorker(b *testing.B) { benchmarkSubmit(b, 1) }

// BenchmarkSubmitPerCPU measures the queue with one worker per CPU.
func BenchmarkSubmitPerCPU(b *testing.B) { benchmarkSubmit(b, concurrency.HardwareConcurrency()) }

// BenchmarkSubmitParallel measures contended submission from many goroutines.
func BenchmarkSubmitParallel(b *testing.B) {
	p, err := concurrency.NewDefaultSimplePool(nil)
	if err != nil {
		b.Fatal(err)
	}
	defer p.Shutdown()

	var wg sync.WaitGroup
	wg.Add(b.N)
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_ = p.Submit(wg.Done)
		}
	})
	wg.Wait()
}

// BenchmarkFacadeIntegration measures submission with metrics enabled.
func BenchmarkFacadeIntegration(b *testing.B) {
	c, err := facade.New(control.DefaultConfig(), facade.WithLogOutput(io.Discard))
	if err != nil {
		b.Fatal(err)
	}
	defer c.Shutdown()

	var wg sync.WaitGroup
	wg.Add(b.N)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = c.Submit(wg.Done)
	}
	wg.Wait()
}
