// Command wireframe renders the rig's edges to a PNG, either at rest
// or deformed against one frame of a recorded track.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"pose-warp/internal/geom"
	"pose-warp/internal/pipeline"
	"pose-warp/internal/topology"
	"pose-warp/internal/track"
)

func main() {
	boundaryFile := flag.String("boundary", "", "Boundary polygon JSON")
	refFile := flag.String("ref", "", "Reference handle set JSON")
	trackFile := flag.String("track", "", "Optional track JSON to deform against")
	frameIdx := flag.Int("frame", 0, "Track frame index to deform against")
	segments := flag.Int("segments", 24, "Boundary resampling segment count")
	weight := flag.Float64("weight", 1000, "Handle constraint weight")
	width := flag.Int("width", 512, "Output width")
	height := flag.Int("height", 512, "Output height")
	outFile := flag.String("o", "wireframe.png", "Output PNG path")

	flag.Parse()

	if *boundaryFile == "" || *refFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: wireframe -boundary boundary.json -ref ref.json [-track track.json -frame N] [-o out.png]")
		os.Exit(1)
	}

	boundaryPts, err := track.LoadHandles(*boundaryFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading boundary: %v\n", err)
		os.Exit(1)
	}
	reference, err := track.LoadHandles(*refFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading reference handles: %v\n", err)
		os.Exit(1)
	}

	rig, err := pipeline.Build(geom.Polygon(boundaryPts), reference, *segments, *weight)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building rig: %v\n", err)
		os.Exit(1)
	}

	positions := rig.Topo.Mesh.Vertices
	if *trackFile != "" {
		tr, err := track.Load(*trackFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading track: %v\n", err)
			os.Exit(1)
		}
		if *frameIdx < 0 || *frameIdx >= len(tr.Frames) {
			fmt.Fprintf(os.Stderr, "Error: frame %d out of range (track has %d frames)\n", *frameIdx, len(tr.Frames))
			os.Exit(1)
		}
		positions, err = rig.Deform(tr.Frames[*frameIdx].Targets())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error deforming: %v\n", err)
			os.Exit(1)
		}
	}

	img := render(rig.Topo, positions, *width, *height)

	f, err := os.Create(*outFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding PNG: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %s (%d edges)\n", *outFile, len(rig.Topo.Edges))
}

// render fits the positions into the canvas with a small margin and
// draws every edge. Interior edges gray, boundary edges white.
func render(topo *topology.Topology, positions []geom.Point, width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i := range img.Pix {
		if i%4 == 3 {
			img.Pix[i] = 255
		} else {
			img.Pix[i] = 16
		}
	}

	min, max := geom.Polygon(positions).Bounds()
	span := max.Sub(min)
	margin := 10.0
	sx := (float64(width) - 2*margin) / span.X
	sy := (float64(height) - 2*margin) / span.Y
	s := math.Min(sx, sy)

	project := func(p geom.Point) (float64, float64) {
		return margin + (p.X-min.X)*s, margin + (p.Y-min.Y)*s
	}

	interior := color.NRGBA{R: 110, G: 110, B: 110, A: 255}
	border := color.NRGBA{R: 240, G: 240, B: 240, A: 255}
	for i, e := range topo.Edges {
		c := interior
		if topo.Neighborhoods[i].Kind == topology.BoundaryEdge {
			c = border
		}
		x0, y0 := project(positions[e.I])
		x1, y1 := project(positions[e.J])
		drawLine(img, x0, y0, x1, y1, c)
	}
	return img
}

func drawLine(img *image.NRGBA, x0, y0, x1, y1 float64, c color.NRGBA) {
	dx, dy := x1-x0, y1-y0
	steps := int(math.Ceil(math.Max(math.Abs(dx), math.Abs(dy))))
	if steps < 1 {
		steps = 1
	}
	for k := 0; k <= steps; k++ {
		t := float64(k) / float64(steps)
		x := int(math.Round(x0 + dx*t))
		y := int(math.Round(y0 + dy*t))
		if image.Pt(x, y).In(img.Rect) {
			img.SetNRGBA(x, y, c)
		}
	}
}
