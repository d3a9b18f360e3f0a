package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"pose-warp/internal/batch"
	"pose-warp/internal/config"
	"pose-warp/internal/geom"
	"pose-warp/internal/pipeline"
	"pose-warp/internal/pose"
	"pose-warp/internal/texture"
	"pose-warp/internal/track"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	boundaryFile := flag.String("boundary", "", "Boundary polygon JSON (overrides config)")
	refFile := flag.String("ref", "", "Reference handle set JSON (overrides config)")
	trackFile := flag.String("track", "", "Recorded track JSON (overrides config)")
	textureFile := flag.String("texture", "", "Garment texture PNG/JPEG/TGA (overrides config)")
	outputDir := flag.String("output", "", "Output directory (default: frames)")
	segments := flag.Int("segments", 0, "Boundary resampling segment count (default: 24)")
	weight := flag.Float64("weight", 0, "Handle constraint weight (default: 1000)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	testN := flag.Int("test", 0, "Warp only first N frames for testing")

	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		OutputDir: *outputDir,
		Segments:  *segments,
		Weight:    *weight,
		Workers:   *workers,
	})
	if *boundaryFile != "" {
		cfg.BoundaryJSON = *boundaryFile
	}
	if *refFile != "" {
		cfg.ReferenceJSON = *refFile
	}
	if *trackFile != "" {
		cfg.TrackJSON = *trackFile
	}
	if *textureFile != "" {
		cfg.Texture = *textureFile
	}

	if cfg.BoundaryJSON == "" || cfg.ReferenceJSON == "" || cfg.TrackJSON == "" || cfg.Texture == "" {
		fmt.Fprintln(os.Stderr, "Error: boundary, ref, track, and texture are all required. Use flags or config.json.")
		os.Exit(1)
	}

	// Load inputs
	boundaryPts, err := track.LoadHandles(cfg.BoundaryJSON)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading boundary: %v\n", err)
		os.Exit(1)
	}
	reference, err := track.LoadHandles(cfg.ReferenceJSON)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading reference handles: %v\n", err)
		os.Exit(1)
	}
	tr, err := track.Load(cfg.TrackJSON)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading track: %v\n", err)
		os.Exit(1)
	}
	tex, err := texture.Load(cfg.Texture)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading texture: %v\n", err)
		os.Exit(1)
	}

	// Canvas defaults to the texture size.
	if cfg.CanvasWidth <= 0 {
		cfg.CanvasWidth = tex.Bounds().Dx()
	}
	if cfg.CanvasHeight <= 0 {
		cfg.CanvasHeight = tex.Bounds().Dy()
	}

	frames := tr.Frames
	if *testN > 0 && *testN < len(frames) {
		frames = frames[:*testN]
	}

	// Temporal smoothing before any frame touches the solver.
	if cfg.SmoothAlpha > 0 {
		sm := pose.NewSmoother(cfg.SmoothAlpha)
		for i := range frames {
			if len(frames[i].Points) == 0 {
				continue
			}
			frames[i].Points = []geom.Point(sm.Filter(frames[i].Targets()))
		}
	}

	mode := ""
	if *testN > 0 {
		mode = fmt.Sprintf(" (TEST: first %d)", *testN)
	}
	fmt.Printf("Pose Warp → WebP%s\n", mode)
	fmt.Printf("Frames: %d, Workers: %d\n", len(frames), cfg.Workers)
	fmt.Printf("Canvas: %dx%d, Supersample: %dx\n", cfg.CanvasWidth, cfg.CanvasHeight, cfg.Supersample)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	// Build the rig once; every frame shares it.
	buildStart := time.Now()
	rig, err := pipeline.Build(geom.Polygon(boundaryPts), reference, cfg.Segments, cfg.HandleWeight)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building rig: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Rig: %d vertices, %d triangles, %d handles (%.0fms)\n",
		len(rig.Topo.Mesh.Vertices), len(rig.Topo.Mesh.Triangles), len(rig.Factors.Handles),
		time.Since(buildStart).Seconds()*1000)

	start := time.Now()

	batchCfg := batch.Config{
		OutputDir:   cfg.OutputDir,
		Rig:         rig,
		Texture:     tex,
		Frames:      frames,
		Width:       cfg.CanvasWidth,
		Height:      cfg.CanvasHeight,
		Supersample: cfg.Supersample,
		Workers:     cfg.Workers,
	}

	results := batch.Run(batchCfg)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	success, skipped, failed := 0, 0, 0
	var errors []Result
	for _, r := range results {
		switch {
		case r.Success:
			success++
		case r.Skipped:
			skipped++
		default:
			failed++
			errors = append(errors, r)
		}
	}

	fmt.Printf("Warped: %d/%d", success, len(frames))
	if skipped > 0 {
		fmt.Printf(" (%d skipped)", skipped)
	}
	fmt.Println()

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		limit := 20
		if len(errors) < limit {
			limit = len(errors)
		}
		for _, e := range errors[:limit] {
			fmt.Printf("  frame %d: %s\n", e.Frame, e.Error)
		}
	}

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	os.MkdirAll(cfg.OutputDir, 0755)
	if err := batch.WriteManifest(manifestPath, frames, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if failed > 0 {
		os.Exit(1)
	}
}

type Result = batch.Result
