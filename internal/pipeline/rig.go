// Package pipeline wires the deformation stages together: build the
// rig once from the reference shape, then warp the texture against
// each frame's handle targets.
package pipeline

import (
	"fmt"
	"image"

	"pose-warp/internal/geom"
	"pose-warp/internal/mesh"
	"pose-warp/internal/pose"
	"pose-warp/internal/postprocess"
	"pose-warp/internal/rigidity"
	"pose-warp/internal/topology"
	"pose-warp/internal/warp"
)

// Rig is the immutable per-garment state: triangulated mesh, indexed
// topology, rigidity factors, and the factorized deformer. Build it
// once per reference shape and share it across frames; Warp and
// Deform never mutate it.
type Rig struct {
	Topo      *topology.Topology
	Factors   *rigidity.Factors
	Deformer  *rigidity.Deformer
	Reference pose.HandleSet
}

// Build constructs the rig. The reference handles are injected into
// the triangulation as exact vertices, so each resolves to a mesh
// vertex id without any matching tolerance beyond the indexer's
// coordinate canonicalization.
func Build(boundary geom.Polygon, reference pose.HandleSet, segments int, weight float64) (*Rig, error) {
	tris, err := mesh.Triangulate(boundary, reference, segments)
	if err != nil {
		return nil, err
	}
	topo, err := topology.Index(tris)
	if err != nil {
		return nil, err
	}

	ids := make([]int, len(reference))
	for i, h := range reference {
		id, ok := topo.FindVertex(h)
		if !ok {
			return nil, fmt.Errorf("pipeline: handle %d at (%.2f, %.2f) is outside the boundary: %w",
				i, h.X, h.Y, mesh.ErrInvalidBoundary)
		}
		ids[i] = id
	}

	factors, err := rigidity.New(topo, ids)
	if err != nil {
		return nil, err
	}
	deformer, err := rigidity.NewDeformer(factors, weight)
	if err != nil {
		return nil, err
	}

	return &Rig{
		Topo:      topo,
		Factors:   factors,
		Deformer:  deformer,
		Reference: reference.Clone(),
	}, nil
}

// Deform solves vertex positions for one frame's targets.
func (r *Rig) Deform(targets pose.HandleSet) ([]geom.Point, error) {
	return r.Deformer.Deform(targets)
}

// Warp deforms the mesh against targets and remaps src onto a
// width×height canvas. supersample > 1 rasterizes at a multiple of
// the canvas size and reduces afterwards, smoothing triangle seams.
func (r *Rig) Warp(src *image.NRGBA, targets pose.HandleSet, width, height, supersample int) (*image.NRGBA, error) {
	deformed, err := r.Deform(targets)
	if err != nil {
		return nil, err
	}

	ss := supersample
	if ss < 1 {
		ss = 1
	}
	positions := deformed
	if ss > 1 {
		positions = make([]geom.Point, len(deformed))
		for i, p := range deformed {
			positions[i] = p.Scale(float64(ss))
		}
	}

	img := warp.Remap(src, r.Topo.Mesh.Triangles, r.Topo.Mesh.Vertices, positions, width*ss, height*ss)
	img = postprocess.FillPinholes(img)
	if ss > 1 {
		img = postprocess.Downsample(img, width, height)
	}
	return img, nil
}
