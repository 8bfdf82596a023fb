// Package fermion implements FermionOperator: sparse polynomials of
// creation/annihilation generators c†_i, c_j with canonical anticommutation
// semantics, built over the shared arena.Arena.
package fermion

import (
	"math/cmplx"

	"github.com/qiskit-community/go-fermion-operators/internal/arena"
	"github.com/qiskit-community/go-fermion-operators/internal/qferrors"
)

// Action distinguishes creation from annihilation; true means creation.
type Action bool

const (
	Annihilate Action = false
	Create     Action = true
)

func (a Action) String() string {
	if a == Create {
		return "†"
	}
	return ""
}

// Generator is one fermionic ladder operator: c†_index or c_index.
type Generator struct {
	Action Action
	Index  uint32
}

// Operator is a sparse polynomial of fermionic generators.
type Operator struct {
	a *arena.Arena[Generator]
}

// Zero returns the polynomial with no terms.
func Zero() *Operator { return &Operator{a: arena.Zero[Generator]()} }

// One returns the single-term identity polynomial.
func One() *Operator { return &Operator{a: arena.One[Generator]()} }

// New constructs an operator from raw columnar arrays: actions and indices
// are parallel arrays of length totalActions, coeffs has length numTerms,
// boundaries has length numTerms+1.
func New(coeffs []complex128, actions []Action, indices []uint32, boundaries []uint32) (*Operator, error) {
	if len(actions) != len(indices) {
		return nil, qferrors.New(qferrors.InvalidArgument,
			"actions has length %d, indices has length %d", len(actions), len(indices))
	}
	payload := make([]Generator, len(actions))
	for i := range actions {
		payload[i] = Generator{Action: actions[i], Index: indices[i]}
	}
	a, err := arena.New(coeffs, payload, boundaries)
	if err != nil {
		return nil, err
	}
	return &Operator{a: a}, nil
}

// AddTerm appends one term of k generators in place.
func (op *Operator) AddTerm(actions []Action, indices []uint32, coeff complex128) error {
	if len(actions) != len(indices) {
		return qferrors.New(qferrors.InvalidArgument,
			"actions has length %d, indices has length %d", len(actions), len(indices))
	}
	payload := make([]Generator, len(actions))
	for i := range actions {
		payload[i] = Generator{Action: actions[i], Index: indices[i]}
	}
	op.a.AddTerm(payload, coeff)
	return nil
}

// Add concatenates the term lists of a and b; no simplification.
func Add(a, b *Operator) *Operator { return &Operator{a: arena.Add(a.a, b.a)} }

// Mul scales every coefficient by a scalar, returning a new operator.
func (op *Operator) Mul(scalar complex128) *Operator { return &Operator{a: op.a.Scale(scalar)} }

// Compose is the bilinear product: for i in [0,|a|) then j in [0,|b|),
// concatenates term i of a with term j of b.
func Compose(a, b *Operator) *Operator { return &Operator{a: arena.Compose(a.a, b.a)} }

// Adjoint conjugates every coefficient and reverses each term's payload,
// swapping CREATE <-> ANNIHILATE on every generator.
func Adjoint(op *Operator) *Operator {
	out := arena.Zero[Generator]()
	for t := 0; t < op.a.NumTerms(); t++ {
		term := op.a.Term(t)
		rev := make([]Generator, len(term))
		for i, g := range term {
			rev[len(term)-1-i] = Generator{Action: !g.Action, Index: g.Index}
		}
		out.AddTerm(rev, cmplx.Conj(op.a.Coeffs[t]))
	}
	return &Operator{a: out}
}

// IChop drops, in place, every term whose coefficient magnitude is <= tol.
func (op *Operator) IChop(tol float64) { op.a.IChop(tol) }

// Simplify aggregates like payloads (after per-term normal ordering to
// compute the canonical key) and drops terms with magnitude <= tol.
func Simplify(op *Operator, tol float64) *Operator {
	var flat []arena.Term[Generator]
	for t := 0; t < op.a.NumTerms(); t++ {
		flat = append(flat, normalOrderTerm(op.a.Term(t), op.a.Coeffs[t])...)
	}
	return &Operator{a: arena.AggregateByKey(flat, canonicalKey, tol)}
}

// NormalOrdered rewrites every term into fermionic normal form: creation
// generators left of annihilation generators, strictly decreasing indices
// within the creation block, strictly increasing within the annihilation
// block. Produced terms are emitted as-is, without merging (that is
// Simplify's job).
func NormalOrdered(op *Operator) *Operator {
	out := arena.Zero[Generator]()
	for t := 0; t < op.a.NumTerms(); t++ {
		for _, term := range normalOrderTerm(op.a.Term(t), op.a.Coeffs[t]) {
			out.AddTerm(term.Payload, term.Coeff)
		}
	}
	return &Operator{a: out}
}

// Commutator returns compose(a,b) - compose(b,a).
func Commutator(a, b *Operator) *Operator {
	return Add(Compose(a, b), Compose(b, a).Mul(-1))
}

// AntiCommutator returns compose(a,b) + compose(b,a).
func AntiCommutator(a, b *Operator) *Operator {
	return Add(Compose(a, b), Compose(b, a))
}

// DoubleCommutator computes [[a,b],c] when anti is false, or the
// symmetrized mixed double (anti-)commutator ½({[a,b],c} + {[a,c],b}) when
// anti is true, the form used in quantum-chemistry subspace expansions.
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

// ManyBodyOrder is the maximum payload length across terms, divided by 2
// (creation+annihilation pair count), 0 for the identity-only case.
func ManyBodyOrder(op *Operator) uint32 {
	var max int
	for t := 0; t < op.a.NumTerms(); t++ {
		if n := len(op.a.Term(t)); n > max {
			max = n
		}
	}
	return uint32(max / 2)
}

// ConservesParticleNumber reports whether every term has equal counts of
// CREATE and ANNIHILATE generators.
func ConservesParticleNumber(op *Operator) bool {
	for t := 0; t < op.a.NumTerms(); t++ {
		var balance int
		for _, g := range op.a.Term(t) {
			if g.Action == Create {
				balance++
			} else {
				balance--
			}
		}
		if balance != 0 {
			return false
		}
	}
	return true
}

// Len returns the number of terms.
func (op *Operator) Len() int { return op.a.NumTerms() }

// NumTerms returns the number of terms (same as Len, exposed for callers
// that prefer the arena-style name used by the diagnostics, bridge and
// jordanwigner packages).
func (op *Operator) NumTerms() int { return op.a.NumTerms() }

// PayloadLen returns the total generator count across all terms.
func (op *Operator) PayloadLen() int { return len(op.a.Payload) }

// Term exposes the payload and coefficient of term t, for callers (the
// Jordan-Wigner mapper, the Majorana bridge) that need to walk an
// operator's terms directly.
func (op *Operator) Term(t int) ([]Generator, complex128) {
	return op.a.Term(t), op.a.Coeffs[t]
}

// Equal is structural equality: Coeffs, Payload and Boundaries pairwise equal.
func Equal(a, b *Operator) bool { return arena.Equal(a.a, b.a) }

// Equiv reports numerical equivalence within tol: after canonicalizing both
// operands with Simplify, their coefficient-wise difference has all
// magnitudes <= tol.
func Equiv(a, b *Operator, tol float64) bool {
	ca, cb := Simplify(a, tol), Simplify(b, tol)
	diff := Add(ca, cb.Mul(-1))
	simplified := Simplify(diff, tol)
	return simplified.a.NumTerms() == 0
}

func canonicalKey(term []Generator) string {
	buf := make([]byte, 0, len(term)*5)
	for _, g := range term {
		if g.Action == Create {
			buf = append(buf, 1)
		} else {
			buf = append(buf, 0)
		}
		buf = append(buf, byte(g.Index>>24), byte(g.Index>>16), byte(g.Index>>8), byte(g.Index))
	}
	return string(buf)
}
