package rigidity

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"pose-warp/internal/geom"
	"pose-warp/internal/pose"
)

// Deformer runs the per-frame two-phase ARAP solve for one (factors,
// handle weight) pair. Handle rows carry a single weight-scaled entry
// each, so the normal equations of the row-extended systems are the
// edge-row products plus w² on the handle diagonals; both Cholesky
// factorizations happen here, once, and every frame reuses them.
//
// A Deformer is safe for concurrent use: Deform only reads shared
// state.
type Deformer struct {
	factors *Factors
	weight  float64
	w2      float64
	chol1   mat.Cholesky // phase 1, (2N)×(2N)
	chol2   mat.Cholesky // phase 2, N×N, shared by both axes
}

// NewDeformer factorizes the handle-extended normal equations. A
// larger weight tracks the handles tighter at the cost of local
// rigidity; it is the system's only tunable trade-off.
func NewDeformer(f *Factors, weight float64) (*Deformer, error) {
	if weight <= 0 {
		return nil, fmt.Errorf("rigidity: handle weight %v must be positive", weight)
	}
	d := &Deformer{factors: f, weight: weight, w2: weight * weight}

	var a1 mat.SymDense
	a1.SymOuterK(1, f.L1.T())
	for _, q := range f.Handles {
		a1.SetSym(2*q, 2*q, a1.At(2*q, 2*q)+d.w2)
		a1.SetSym(2*q+1, 2*q+1, a1.At(2*q+1, 2*q+1)+d.w2)
	}
	if ok := d.chol1.Factorize(&a1); !ok {
		return nil, fmt.Errorf("rigidity: phase-1 normal equations not positive definite: %w", ErrSingularSystem)
	}

	var a2 mat.SymDense
	a2.SymOuterK(1, f.L2.T())
	for _, q := range f.Handles {
		a2.SetSym(q, q, a2.At(q, q)+d.w2)
	}
	if ok := d.chol2.Factorize(&a2); !ok {
		return nil, fmt.Errorf("rigidity: phase-2 normal equations not positive definite: %w", ErrSingularSystem)
	}

	return d, nil
}

// Weight returns the handle weight the deformer was built with.
func (d *Deformer) Weight() float64 { return d.weight }

// Deform solves for new vertex positions tracking the target handles.
// The result has one position per mesh vertex id; on any failure no
// partial result is returned.
func (d *Deformer) Deform(targets pose.HandleSet) ([]geom.Point, error) {
	f := d.factors
	if len(targets) != len(f.Handles) {
		return nil, fmt.Errorf("rigidity: %d targets for %d handles: %w",
			len(targets), len(f.Handles), pose.ErrCardinalityMismatch)
	}
	n := len(f.Topo.Mesh.Vertices)

	// Phase 1: positional relax. The right-hand side is zero on edge
	// rows and weight·target on handle rows, so L1ᵗb reduces to w² at
	// the handle coordinates.
	b1 := make([]float64, 2*n)
	for hi, q := range f.Handles {
		b1[2*q] = d.w2 * targets[hi].X
		b1[2*q+1] = d.w2 * targets[hi].Y
	}
	v1 := mat.NewVecDense(2*n, nil)
	if err := d.chol1.SolveVecTo(v1, mat.NewVecDense(2*n, b1)); err != nil {
		return nil, fmt.Errorf("rigidity: phase-1 solve: %w", ErrSingularSystem)
	}

	// Phase 2: rigidity correction. Each edge's similarity parameters
	// are re-fit from the phase-1 positions and applied to the rest
	// edge vector; the per-axis incidence systems then reconstruct
	// positions from these corrected edge vectors.
	b2x := make([]float64, n)
	b2y := make([]float64, n)
	for k := range f.fits {
		fit := &f.fits[k]
		var c, s float64
		for m := 0; m < fit.cols(); m++ {
			g := v1.AtVec(colOf(fit.verts[m/2], m%2))
			c += fit.t[0][m] * g
			s += fit.t[1][m] * g
		}
		ex := c*fit.rest.X + s*fit.rest.Y
		ey := -s*fit.rest.X + c*fit.rest.Y
		i, j := fit.verts[0], fit.verts[1]
		b2x[i] -= ex
		b2x[j] += ex
		b2y[i] -= ey
		b2y[j] += ey
	}
	for hi, q := range f.Handles {
		b2x[q] += d.w2 * targets[hi].X
		b2y[q] += d.w2 * targets[hi].Y
	}

	vx := mat.NewVecDense(n, nil)
	vy := mat.NewVecDense(n, nil)
	if err := d.chol2.SolveVecTo(vx, mat.NewVecDense(n, b2x)); err != nil {
		return nil, fmt.Errorf("rigidity: phase-2 x solve: %w", ErrSingularSystem)
	}
	if err := d.chol2.SolveVecTo(vy, mat.NewVecDense(n, b2y)); err != nil {
		return nil, fmt.Errorf("rigidity: phase-2 y solve: %w", ErrSingularSystem)
	}

	out := make([]geom.Point, n)
	for i := range out {
		out[i] = geom.Point{X: vx.AtVec(i), Y: vy.AtVec(i)}
	}
	return out, nil
}
