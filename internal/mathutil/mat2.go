package mathutil

// Mat2 is a 2×2 matrix stored row-major: [r0c0, r0c1, r1c0, r1c1].
// Value type for zero heap allocation.
type Mat2 [4]float64

func Mat2Identity() Mat2 {
	return Mat2{1, 0, 0, 1}
}

func (m Mat2) Det() float64 {
	return m[0]*m[3] - m[1]*m[2]
}

// Inverse returns the inverse and false if the matrix is singular.
func (m Mat2) Inverse() (Mat2, bool) {
	d := m.Det()
	if d > -1e-12 && d < 1e-12 {
		return Mat2Identity(), false
	}
	invD := 1.0 / d
	return Mat2{
		m[3] * invD, -m[1] * invD,
		-m[2] * invD, m[0] * invD,
	}, true
}

// MulVec returns M × v.
func (m Mat2) MulVec(v [2]float64) [2]float64 {
	return [2]float64{
		m[0]*v[0] + m[1]*v[1],
		m[2]*v[0] + m[3]*v[1],
	}
}
