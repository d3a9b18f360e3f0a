// Package batch renders a recorded track offline with a worker pool.
// The rig is immutable after construction, so frames deform and warp
// concurrently without synchronization.
package batch

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"pose-warp/internal/pipeline"
	"pose-warp/internal/track"

	"github.com/HugoSmits86/nativewebp"
)

// Config holds all shared resources for a batch run.
type Config struct {
	OutputDir   string
	Rig         *pipeline.Rig
	Texture     *image.NRGBA
	Frames      []track.Frame
	Width       int
	Height      int
	Supersample int
	Workers     int
}

// Result holds the outcome of processing one frame.
type Result struct {
	Frame   int
	Success bool
	Skipped bool
	Error   string
}

// Run warps every frame using a worker pool.
func Run(cfg Config) []Result {
	total := len(cfg.Frames)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					rate := float64(p) / elapsed
					fmt.Printf("  [%d/%d] %.1f frames/sec\n", p, total, rate)
				}
			}
		}
	}()

	// Worker pool
	frameChan := make(chan int, cfg.Workers*2)
	var wg sync.WaitGroup

	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range frameChan {
				results[idx] = processFrame(cfg, idx)
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range cfg.Frames {
		frameChan <- i
	}
	close(frameChan)

	wg.Wait()
	close(done)

	return results
}

func processFrame(cfg Config, idx int) Result {
	frame := cfg.Frames[idx]

	// A frame whose detection failed carries no points; skip it
	// without touching the rig.
	if len(frame.Points) == 0 {
		return Result{Frame: idx, Skipped: true}
	}

	img, err := cfg.Rig.Warp(cfg.Texture, frame.Targets(), cfg.Width, cfg.Height, cfg.Supersample)
	if err != nil {
		return Result{Frame: idx, Error: err.Error()}
	}

	outPath := filepath.Join(cfg.OutputDir, fmt.Sprintf("frame_%05d.webp", idx))
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return Result{Frame: idx, Error: err.Error()}
	}

	f, err := os.Create(outPath)
	if err != nil {
		return Result{Frame: idx, Error: err.Error()}
	}
	defer f.Close()

	if err := nativewebp.Encode(f, img, nil); err != nil {
		return Result{Frame: idx, Error: fmt.Sprintf("WebP encode: %v", err)}
	}

	return Result{Frame: idx, Success: true}
}
