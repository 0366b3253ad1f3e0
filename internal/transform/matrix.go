// Package transform provides a small 2D affine transform used to place
// composite-glyph components (see truetype.decodeCompositeComponents).
package transform

import (
	"fmt"
	"math"
)

// Matrix is a 2D affine transform:
//
//	x' = a*x + c*y + tx
//	y' = b*x + d*y + ty
//
// laid out the way font and PDF transform matrices conventionally are.
type Matrix struct {
	A, B, C, D float64
	Tx, Ty     float64
}

// IdentityMatrix returns the identity transform.
func IdentityMatrix() Matrix {
	return Matrix{A: 1, D: 1}
}

// NewMatrix returns the affine transform with the given coefficients.
func NewMatrix(a, b, c, d, tx, ty float64) Matrix {
	return Matrix{A: a, B: b, C: c, D: d, Tx: tx, Ty: ty}
}

// Transform applies `m` to the point (x, y).
func (m Matrix) Transform(x, y float64) (float64, float64) {
	return m.A*x + m.C*y + m.Tx, m.B*x + m.D*y + m.Ty
}

// Mult returns `m` composed with `n`, i.e. the transform that applies `m`
// first and then `n`.
func (m Matrix) Mult(n Matrix) Matrix {
	return Matrix{
		A:  m.A*n.A + m.B*n.C,
		B:  m.A*n.B + m.B*n.D,
		C:  m.C*n.A + m.D*n.C,
		D:  m.C*n.B + m.D*n.D,
		Tx: m.Tx*n.A + m.Ty*n.C + n.Tx,
		Ty: m.Tx*n.B + m.Ty*n.D + n.Ty,
	}
}

// Translate returns `m` with an additional translation by (dx, dy).
func (m Matrix) Translate(dx, dy float64) Matrix {
	return m.Mult(Matrix{A: 1, D: 1, Tx: dx, Ty: dy})
}

// Scale returns `m` with an additional scale by (sx, sy).
func (m Matrix) Scale(sx, sy float64) Matrix {
	return m.Mult(Matrix{A: sx, D: sy})
}

// NewRowMajor builds the transform x' = a*x + b*y + tx, y' = c*x + d*y + ty,
// the row-major convention composite glyph components are specified in.
func NewRowMajor(a, b, c, d, tx, ty float64) Matrix {
	return Matrix{A: a, B: c, C: b, D: d, Tx: tx, Ty: ty}
}

// Angle returns the rotation angle of `m` in degrees, in [0, 360).
func (m Matrix) Angle() float64 {
	theta := math.Atan2(-m.B, m.A) * 180.0 / math.Pi
	if theta < 0 {
		theta += 360.0
	}
	return theta
}

// Inverse returns the inverse of `m` and true, or the zero Matrix and false
// if `m` is singular.
func (m Matrix) Inverse() (Matrix, bool) {
	det := m.A*m.D - m.B*m.C
	if det == 0 {
		return Matrix{}, false
	}
	invDet := 1.0 / det
	a := m.D * invDet
	b := -m.B * invDet
	c := -m.C * invDet
	d := m.A * invDet
	tx := -(m.Tx*a + m.Ty*c)
	ty := -(m.Tx*b + m.Ty*d)
	return Matrix{A: a, B: b, C: c, D: d, Tx: tx, Ty: ty}, true
}

func (m Matrix) String() string {
	return fmt.Sprintf("[%g %g %g %g %g %g]", m.A, m.B, m.C, m.D, m.Tx, m.Ty)
}
