// Command meshinfo builds a rig from a boundary and reference handle
// set and prints its structure. Useful when tuning the segment count or
// debugging a handle that fails to bind to a vertex.
package main

import (
	"flag"
	"fmt"
	"os"

	"pose-warp/internal/geom"
	"pose-warp/internal/pipeline"
	"pose-warp/internal/pose"
	"pose-warp/internal/topology"
	"pose-warp/internal/track"
)

func main() {
	boundaryFile := flag.String("boundary", "", "Boundary polygon JSON")
	refFile := flag.String("ref", "", "Reference handle set JSON")
	segments := flag.Int("segments", 24, "Boundary resampling segment count")
	weight := flag.Float64("weight", 1000, "Handle constraint weight")

	flag.Parse()

	if *boundaryFile == "" || *refFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: meshinfo -boundary boundary.json -ref ref.json [-segments N]")
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

	boundary := geom.Polygon(boundaryPts)
	rig, err := pipeline.Build(boundary, reference, *segments, *weight)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building rig: %v\n", err)
		os.Exit(1)
	}

	topo := rig.Topo
	boundaryEdges, interiorEdges := 0, 0
	for _, nb := range topo.Neighborhoods {
		if nb.Kind == topology.InteriorEdge {
			interiorEdges++
		} else {
			boundaryEdges++
		}
	}

	meshArea := 0.0
	for _, tri := range topo.Mesh.Triangles {
		a := topo.Mesh.Vertices[tri[0]]
		b := topo.Mesh.Vertices[tri[1]]
		c := topo.Mesh.Vertices[tri[2]]
		meshArea += 0.5 * (b.Sub(a).Cross(c.Sub(a)))
	}
	if meshArea < 0 {
		meshArea = -meshArea
	}

	min, max := boundary.Bounds()
	fmt.Printf("Boundary: %d points, area %.2f, bounds (%.1f, %.1f)-(%.1f, %.1f)\n",
		len(boundary), boundary.Area(), min.X, min.Y, max.X, max.Y)
	fmt.Printf("Mesh: %d vertices, %d triangles, area %.2f\n",
		len(topo.Mesh.Vertices), len(topo.Mesh.Triangles), meshArea)
	fmt.Printf("Edges: %d total (%d boundary, %d interior)\n",
		len(topo.Edges), boundaryEdges, interiorEdges)

	r1, c1 := rig.Factors.L1.Dims()
	r2, c2 := rig.Factors.L2.Dims()
	fmt.Printf("Systems: L1 %dx%d, L2 %dx%d, weight %.0f\n", r1, c1, r2, c2, *weight)

	fmt.Printf("Handles (%d):\n", len(rig.Factors.Handles))
	for i, id := range rig.Factors.Handles {
		name := ""
		if len(rig.Factors.Handles) == pose.NumKeypoints {
			name = " " + pose.KeypointName(i)
		}
		p := topo.Mesh.Vertices[id]
		fmt.Printf("  [%2d]%s → vertex %d at (%.2f, %.2f)\n", i, name, id, p.X, p.Y)
	}
}
