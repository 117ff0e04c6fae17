package xbrz

import (
	"runtime"
	"sync"
)

// ScaleParallel is Scale split across workers goroutines by contiguous
// row chunks. workers <= 0 means GOMAXPROCS. The output is bit-identical
// to Scale: each chunk rebuilds the blend state of the row above it, and
// every source row only writes its own output rows.
func ScaleParallel(n int, src, dst []Pixel, width, height, workers int) error {
	return ScaleParallelWithOptions(n, src, dst, width, height, workers, DefaultOptions())
}

// ScaleParallelWithOptions is ScaleParallel with tuned edge detection.
func ScaleParallelWithOptions(n int, src, dst []Pixel, width, height, workers int, opts Options) error {
	s, err := prepare(n, src, dst, width, height, opts)
	if err != nil {
		return err
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, height)
	if workers == 1 {
		s.scanRows(src, dst, width, height, 0, height)
		return nil
	}

	chunk := (height + workers - 1) / workers
	var wg sync.WaitGroup
	for y0 := 0; y0 < height; y0 += chunk {
		y1 := min(y0+chunk, height)
		wg.Add(1)
		go func(y0, y1 int) {
			defer wg.Done()
			s.scanRows(src, dst, width, height, y0, y1)
		}(y0, y1)
	}
	wg.Wait()
	return nil
}
