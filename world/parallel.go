package world

import (
	"runtime"
	"sync"
)

// parallelThreshold is the minimum cell count to grow resources in parallel.
// Below this, single-threaded is faster due to goroutine overhead.
const parallelThreshold = 16384

// rowChunk is a half-open range of rows for one worker.
type rowChunk struct {
	start, end int
}

// growthPool runs resource growth over row chunks. Rows are independent and
// growth draws no random numbers, so the result does not depend on
// scheduling.
type growthPool struct {
	numWorkers int

	// Worker pool channels
	workChan chan rowChunk
	doneChan chan struct{}
	stopChan chan struct{}
	wg       sync.WaitGroup
	running  bool
}

func newGrowthPool() *growthPool {
	return &growthPool{numWorkers: runtime.GOMAXPROCS(0)}
}

// start launches persistent worker goroutines.
func (p *growthPool) start(w *World) {
	if p.running {
		return
	}

	p.workChan = make(chan rowChunk, p.numWorkers)
	p.doneChan = make(chan struct{}, p.numWorkers)
	p.stopChan = make(chan struct{})
	p.running = true

	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker(w)
	}
}

// stop signals all workers to exit and waits for them.
func (p *growthPool) stop() {
	if !p.running {
		return
	}

	close(p.stopChan)
	p.wg.Wait()
	close(p.workChan)
	close(p.doneChan)
	p.running = false
}

func (p *growthPool) worker(w *World) {
	defer p.wg.Done()

	for {
		select {
		case <-p.stopChan:
			return
		case chunk, ok := <-p.workChan:
			if !ok {
				return
			}
			w.growRows(chunk.start, chunk.end)
			p.doneChan <- struct{}{}
		}
	}
}

// run grows every row, fanning out over the workers for large grids.
func (p *growthPool) run(w *World) {
	height := w.space.Height()
	if height*w.space.Width() < parallelThreshold || p.numWorkers < 2 || height < p.numWorkers {
		w.growRows(0, height)
		return
	}

	p.start(w)
	rows := (height + p.numWorkers - 1) / p.numWorkers
	chunks := 0
	for start := 0; start < height; start += rows {
		p.workChan <- rowChunk{start: start, end: min(start+rows, height)}
		chunks++
	}
	for i := 0; i < chunks; i++ {
		<-p.doneChan
	}
}
