// Package majorana implements MajoranaOperator: sparse polynomials of
// self-adjoint generators γ_k satisfying {γ_i, γ_j} = 2δ_ij, built over the
// same shared arena.Arena used by the fermion package.
package majorana

import (
	"math/cmplx"

	"github.com/qiskit-community/go-fermion-operators/internal/arena"
)

// Operator is a sparse polynomial of Majorana generators, each identified
// only by its mode index.
type Operator struct {
	a *arena.Arena[uint32]
}

// Zero returns the polynomial with no terms.
func Zero() *Operator { return &Operator{a: arena.Zero[uint32]()} }

// One returns the single-term identity polynomial.
func One() *Operator { return &Operator{a: arena.One[uint32]()} }

// New constructs an operator from raw columnar arrays.
func New(coeffs []complex128, modes []uint32, boundaries []uint32) (*Operator, error) {
	a, err := arena.New(coeffs, modes, boundaries)
	if err != nil {
		return nil, err
	}
	return &Operator{a: a}, nil
}

// AddTerm appends one term of k modes in place.
func (op *Operator) AddTerm(modes []uint32, coeff complex128) {
	op.a.AddTerm(modes, coeff)
}

// Add concatenates the term lists of a and b; no simplification.
func Add(a, b *Operator) *Operator { return &Operator{a: arena.Add(a.a, b.a)} }

// Mul scales every coefficient by a scalar, returning a new operator.
func (op *Operator) Mul(scalar complex128) *Operator { return &Operator{a: op.a.Scale(scalar)} }

// Compose is the bilinear product: identical to fermionic composition,
// term-wise concatenation with coefficient product.
func Compose(a, b *Operator) *Operator { return &Operator{a: arena.Compose(a.a, b.a)} }

// Adjoint reverses each term's mode list, conjugates the coefficient, and
// multiplies by (-1)^(k(k-1)/2) for a term of length k: every γ is
// self-adjoint, and reversing k pairwise-anticommuting factors contributes
// that sign.
func Adjoint(op *Operator) *Operator {
	out := arena.Zero[uint32]()
	for t := 0; t < op.a.NumTerms(); t++ {
		term := op.a.Term(t)
		k := len(term)
		rev := make([]uint32, k)
		for i, m := range term {
			rev[k-1-i] = m
		}
		sign := reversalSign(k)
		out.AddTerm(rev, cmplx.Conj(op.a.Coeffs[t])*complex(sign, 0))
	}
	return &Operator{a: out}
}

func reversalSign(k int) float64 {
	if (k*(k-1)/2)%2 == 0 {
		return 1
	}
	return -1
}

// IChop drops, in place, every term whose coefficient magnitude is <= tol.
func (op *Operator) IChop(tol float64) { op.a.IChop(tol) }

// NormalOrdered rewrites every term so modes appear in strictly decreasing
// order, with simplify optionally run afterward.
func NormalOrdered(op *Operator, simplify bool) *Operator {
	out := arena.Zero[uint32]()
	for t := 0; t < op.a.NumTerms(); t++ {
		for _, term := range normalOrderTerm(op.a.Term(t), op.a.Coeffs[t]) {
			out.AddTerm(term.Payload, term.Coeff)
		}
	}
	result := &Operator{a: out}
	if simplify {
		return Simplify(result, 0)
	}
	return result
}

// Simplify aggregates like mode-lists (after per-term normal ordering) and
// drops terms with magnitude <= tol.
func Simplify(op *Operator, tol float64) *Operator {
	var flat []arena.Term[uint32]
	for t := 0; t < op.a.NumTerms(); t++ {
		flat = append(flat, normalOrderTerm(op.a.Term(t), op.a.Coeffs[t])...)
	}
	return &Operator{a: arena.AggregateByKey(flat, canonicalKey, tol)}
}

// Commutator returns compose(a,b) - compose(b,a).
func Commutator(a, b *Operator) *Operator {
	return Add(Compose(a, b), Compose(b, a).Mul(-1))
}

// AntiCommutator returns compose(a,b) + compose(b,a).
func AntiCommutator(a, b *Operator) *Operator {
	return Add(Compose(a, b), Compose(b, a))
}

// DoubleCommutator mirrors fermion.DoubleCommutator's two definitions.
func DoubleCommutator(a, b, c *Operator, anti bool) *Operator {
	if !anti {
		return Commutator(Commutator(a, b), c)
	}
	left := AntiCommutator(Commutator(a, b), c)
	right := AntiCommutator(Commutator(a, c), b)
	return Add(left, right).Mul(0.5)
}

// IsHermitian reports whether op is equivalent to its own adjoint within tol.
func IsHermitian(op *Operator, tol float64) bool {
	return Equiv(op, Adjoint(op), tol)
}

// ManyBodyOrder is the maximum term length across the operator.
func ManyBodyOrder(op *Operator) uint32 {
	var max int
	for t := 0; t < op.a.NumTerms(); t++ {
		if n := len(op.a.Term(t)); n > max {
			max = n
		}
	}
	return uint32(max)
}

// IsEven reports whether every term has an even number of modes.
func IsEven(op *Operator) bool {
	for t := 0; t < op.a.NumTerms(); t++ {
		if len(op.a.Term(t))%2 != 0 {
			return false
		}
	}
	return true
}

// Len returns the number of terms.
func (op *Operator) Len() int { return op.a.NumTerms() }

// NumTerms returns the number of terms.
func (op *Operator) NumTerms() int { return op.a.NumTerms() }

// Term exposes the payload and coefficient of term t.
func (op *Operator) Term(t int) ([]uint32, complex128) {
	return op.a.Term(t), op.a.Coeffs[t]
}

// Equal is structural equality.
func Equal(a, b *Operator) bool { return arena.Equal(a.a, b.a) }

// Equiv reports numerical equivalence within tol.
func Equiv(a, b *Operator, tol float64) bool {
	ca, cb := Simplify(a, tol), Simplify(b, tol)
	diff := Add(ca, cb.Mul(-1))
	simplified := Simplify(diff, tol)
	return simplified.a.NumTerms() == 0
}

func canonicalKey(term []uint32) string {
	buf := make([]byte, 0, len(term)*4)
	for _, m := range term {
		buf = append(buf, byte(m>>24), byte(m>>16), byte(m>>8), byte(m))
	}
	return string(buf)
}
