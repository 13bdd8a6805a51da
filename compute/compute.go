// Package compute fans batch valuation out across worker goroutines and
// reassembles the results in row order.
package compute

import (
	"runtime"
	"sync"
	"time"

	"github.com/shirou/gopsutil/cpu"
	log "github.com/sirupsen/logrus"
	"github.com/vbauerster/mpb/v7"

	"github.com/akerlund/optbatch/batch"
)

const jobBatchSize = 1000

type job struct {
	index int
	part  *batch.OptionBatch
}

// PriceAll values the batch in parallel: the contracts are split into chunks
// of chunkSize rows, priced and greeked on a worker pool, and merged back in
// the original row order. The result is identical to a serial ComputePrices
// plus ComputeGreeks on the whole batch. workers defaults to the CPU count
// when non-positive; bar may be nil, otherwise it advances once per chunk.
func PriceAll(b *batch.OptionBatch, chunkSize, workers int, bar *mpb.Bar) (*batch.OptionBatch, error) {
	parts, err := batch.Split(b, chunkSize)
	if err != nil {
		return nil, err
	}
	if len(parts) == 0 {
		out := batch.New(b.Set, b.Model)
		out.ComputePrices()
		out.ComputeGreeks()
		return out, nil
	}

	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	var wg sync.WaitGroup
	jobChan := make(chan job, jobBatchSize)
	// Each worker writes only its own slots, so order survives without locks
	results := make([]*batch.OptionBatch, len(parts))

	// Start workers
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go worker(jobChan, results, &wg, bar)
	}

	// Feed jobs to workers
	go func() {
		for i, part := range parts {
			jobChan <- job{index: i, part: part}
		}
		close(jobChan)
	}()

	wg.Wait()

	return batch.Merge(results)
}

func worker(jobs <-chan job, results []*batch.OptionBatch, wg *sync.WaitGroup, bar *mpb.Bar) {
	defer wg.Done()
	for j := range jobs {
		j.part.ComputePrices()
		j.part.ComputeGreeks()
		results[j.index] = j.part
		if bar != nil {
			bar.Increment()
		}
	}
}

// MonitorCPU logs overall CPU usage every five seconds until stop closes.
// Run it in its own goroutine alongside a long valuation.
func MonitorCPU(stop <-chan struct{}) {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			percentage, err := cpu.Percent(time.Second, false)
			if err == nil && len(percentage) > 0 {
				log.Debugf("CPU usage: %.2f%%", percentage[0])
			}
		}
	}
}
