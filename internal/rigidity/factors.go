// Package rigidity assembles the per-edge local-fit operators and the
// global sparse systems of the ARAP deformation, and solves them per
// frame. Factors are built once per topology and shared read-only
// across all frames.
package rigidity

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"pose-warp/internal/geom"
	"pose-warp/internal/topology"
)

// ErrSingularRigidityMatrix reports a degenerate edge neighborhood
// whose similarity fit G_kᵗG_k cannot be inverted.
var ErrSingularRigidityMatrix = errors.New("singular rigidity matrix")

// ErrSingularSystem reports a singular normal-equations matrix:
// a degenerate mesh or a handle layout that leaves the solve
// under-determined.
var ErrSingularSystem = errors.New("singular system")

// edgeFit holds one edge's precomputed local similarity projector in
// fixed-size storage. cols() of the 8 columns are live: 6 for a
// boundary edge (3 neighborhood vertices), 8 for an interior edge.
type edgeFit struct {
	kind  topology.EdgeKind
	verts [4]int
	t     [2][8]float64 // (c, s) rows of T_k = (G_kᵗG_k)⁻¹G_kᵗ
	rest  geom.Point    // edge vector v_j - v_i at rest
}

func (f *edgeFit) cols() int {
	if f.kind == topology.InteriorEdge {
		return 8
	}
	return 6
}

// Factors are the one-time products of the rigidity solver: per-edge
// fit projectors plus the two global systems. L1 holds the
// similarity-residual rows (2·|E| × 2·N, interleaved x/y columns); L2
// holds the plain per-edge incidence rows (|E| × N). Handle rows are
// appended, weight-scaled, when a Deformer is constructed.
type Factors struct {
	Topo    *topology.Topology
	Handles []int // mesh vertex id per handle, in handle order
	L1      *mat.Dense
	L2      *mat.Dense

	fits []edgeFit
}

// New builds the rigidity factors for a fixed topology and handle
// assignment. handleIDs maps each handle, in order, to its mesh vertex
// id. The result is immutable and must be rebuilt if the mesh changes.
func New(topo *topology.Topology, handleIDs []int) (*Factors, error) {
	nVerts := len(topo.Mesh.Vertices)
	nEdges := len(topo.Edges)
	if nEdges == 0 {
		return nil, fmt.Errorf("rigidity: topology has no edges: %w", ErrSingularSystem)
	}
	for hi, id := range handleIDs {
		if id < 0 || id >= nVerts {
			return nil, fmt.Errorf("rigidity: handle %d maps to invalid vertex %d", hi, id)
		}
	}

	f := &Factors{
		Topo:    topo,
		Handles: append([]int(nil), handleIDs...),
		L1:      mat.NewDense(2*nEdges, 2*nVerts, nil),
		L2:      mat.NewDense(nEdges, nVerts, nil),
		fits:    make([]edgeFit, nEdges),
	}

	for k, e := range topo.Edges {
		nb := topo.Neighborhoods[k]
		n := nb.Size()

		// G_k stacks each neighborhood vertex in the similarity
		// basis: rows [x, y, 1, 0] and [y, -x, 0, 1]. The unknowns
		// (c, s, tx, ty) describe the rotation-scale-translation best
		// fitting the neighborhood; translation drops out of the edge
		// reconstruction but keeping its columns makes the fit exact
		// under any global similarity motion.
		g := mat.NewDense(2*n, 4, nil)
		for a := 0; a < n; a++ {
			p := topo.Mesh.Vertices[nb.Verts[a]]
			g.Set(2*a, 0, p.X)
			g.Set(2*a, 1, p.Y)
			g.Set(2*a, 2, 1)
			g.Set(2*a+1, 0, p.Y)
			g.Set(2*a+1, 1, -p.X)
			g.Set(2*a+1, 3, 1)
		}

		var gtg mat.Dense
		gtg.Mul(g.T(), g)
		var inv mat.Dense
		if err := inv.Inverse(&gtg); err != nil {
			return nil, fmt.Errorf("rigidity: edge %d-%d neighborhood degenerate: %w",
				e.I, e.J, ErrSingularRigidityMatrix)
		}
		var tk mat.Dense
		tk.Mul(&inv, g.T()) // 4 × 2n projector

		fit := &f.fits[k]
		fit.kind = nb.Kind
		fit.verts = nb.Verts
		fit.rest = topo.Mesh.Vertices[e.J].Sub(topo.Mesh.Vertices[e.I])
		for m := 0; m < 2*n; m++ {
			fit.t[0][m] = tk.At(0, m)
			fit.t[1][m] = tk.At(1, m)
		}

		// L1 rows 2k, 2k+1: residual between the naive edge vector
		// and the edge vector reconstructed through the local fit,
		// H_k = F_k - E_k·T_k with E_k the rest edge in the
		// rotation-scale basis.
		ex, ey := fit.rest.X, fit.rest.Y
		for m := 0; m < 2*n; m++ {
			hx := -(ex*fit.t[0][m] + ey*fit.t[1][m])
			hy := -(ey*fit.t[0][m] - ex*fit.t[1][m])
			col := colOf(nb.Verts[m/2], m%2)
			f.L1.Set(2*k, col, hx)
			f.L1.Set(2*k+1, col, hy)
		}
		f.L1.Set(2*k, colOf(e.I, 0), f.L1.At(2*k, colOf(e.I, 0))-1)
		f.L1.Set(2*k, colOf(e.J, 0), f.L1.At(2*k, colOf(e.J, 0))+1)
		f.L1.Set(2*k+1, colOf(e.I, 1), f.L1.At(2*k+1, colOf(e.I, 1))-1)
		f.L1.Set(2*k+1, colOf(e.J, 1), f.L1.At(2*k+1, colOf(e.J, 1))+1)

		// L2 row k: plain incidence.
		f.L2.Set(k, e.I, -1)
		f.L2.Set(k, e.J, 1)
	}

	return f, nil
}

// colOf maps a vertex id and axis (0 = x, 1 = y) to its interleaved
// column in L1.
func colOf(id, axis int) int {
	return 2*id + axis
}
