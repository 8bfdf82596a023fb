// Package spinop provides a concrete, reference implementation of the
// Pauli/spin-operator consumer: the Jordan-Wigner mapper in
// internal/jordanwigner depends only on its own SpinBuilder interface,
// never on this package's concrete Operator type, but something has to
// play that role in tests.
package spinop

import (
	"math/cmplx"

	"github.com/qiskit-community/go-fermion-operators/internal/arena"
)

// PauliOp is one single-qubit Pauli factor. Identity is never stored: a
// qubit absent from a term's generator list carries an implicit I.
type PauliOp uint8

const (
	PauliX PauliOp = iota
	PauliY
	PauliZ
)

func (p PauliOp) String() string {
	switch p {
	case PauliX:
		return "X"
	case PauliY:
		return "Y"
	case PauliZ:
		return "Z"
	default:
		return "?"
	}
}

// Generator names one single-qubit Pauli factor acting on Qubit.
type Generator struct {
	Op    PauliOp
	Qubit uint32
}

// Operator is a sparse polynomial of tensor-product Pauli terms, built over
// the same shared arena.Arena used by FermionOperator and MajoranaOperator.
type Operator struct {
	a *arena.Arena[Generator]
}

// Zero returns the polynomial with no terms.
func Zero() *Operator { return &Operator{a: arena.Zero[Generator]()} }

// One returns the single-term identity polynomial.
func One() *Operator { return &Operator{a: arena.One[Generator]()} }

// AddTerm appends one term: a coefficient and the list of single-qubit
// factors making up its tensor product, in ascending-qubit order by
// convention (not enforced; callers that need a canonical key should sort
// first). This is the entry point the Jordan-Wigner mapper's SpinBuilder
// interface requires.
func (op *Operator) AddTerm(coeff complex128, ops []PauliOp, qubits []uint32) error {
	gens := make([]Generator, len(ops))
	for i := range ops {
		gens[i] = Generator{Op: ops[i], Qubit: qubits[i]}
	}
	op.a.AddTerm(gens, coeff)
	return nil
}

// Add concatenates the term lists of a and b; no simplification.
func Add(a, b *Operator) *Operator { return &Operator{a: arena.Add(a.a, b.a)} }

// Mul scales every coefficient by a scalar, returning a new operator.
func (op *Operator) Mul(scalar complex128) *Operator { return &Operator{a: op.a.Scale(scalar)} }

// IChop drops, in place, every term whose coefficient magnitude is <= tol.
func (op *Operator) IChop(tol float64) { op.a.IChop(tol) }

// Len returns the number of terms.
func (op *Operator) Len() int { return op.a.NumTerms() }

// NumTerms returns the number of terms.
func (op *Operator) NumTerms() int { return op.a.NumTerms() }

// Term exposes the per-qubit factor list and coefficient of term t.
func (op *Operator) Term(t int) ([]Generator, complex128) {
	return op.a.Term(t), op.a.Coeffs[t]
}

// Equal is structural equality.
func Equal(a, b *Operator) bool { return arena.Equal(a.a, b.a) }

// Canonicalize sorts each term's factors by qubit index and merges terms
// that become identical payloads after sorting, dropping accumulated terms
// with magnitude <= tol. Callers use this after Jordan-Wigner mapping,
// which performs no canonicalization of its own.
func Canonicalize(op *Operator, tol float64) *Operator {
	flat := make([]arena.Term[Generator], 0, op.a.NumTerms())
	for t := 0; t < op.a.NumTerms(); t++ {
		term := op.a.Term(t)
		sorted := append([]Generator(nil), term...)
		sortByQubit(sorted)
		flat = append(flat, arena.Term[Generator]{Payload: sorted, Coeff: op.a.Coeffs[t]})
	}
	return &Operator{a: arena.AggregateByKey(flat, canonicalKey, tol)}
}

// Equiv reports numerical equivalence within tol: canonicalize both sides,
// then require the coefficient-wise difference to vanish within tol.
func Equiv(a, b *Operator, tol float64) bool {
	ca, cb := Canonicalize(a, tol), Canonicalize(b, tol)
	diff := Add(ca, cb.Mul(-1))
	simplified := Canonicalize(diff, tol)
	for t := 0; t < simplified.a.NumTerms(); t++ {
		if cmplx.Abs(simplified.a.Coeffs[t]) > tol {
			return false
		}
	}
	return true
}

func sortByQubit(gens []Generator) {
	for i := 1; i < len(gens); i++ {
		for j := i; j > 0 && gens[j-1].Qubit > gens[j].Qubit; j-- {
			gens[j-1], gens[j] = gens[j], gens[j-1]
		}
	}
}

func canonicalKey(term []Generator) string {
	buf := make([]byte, 0, len(term)*5)
	for _, g := range term {
		buf = append(buf, byte(g.Op))
		buf = append(buf, byte(g.Qubit>>24), byte(g.Qubit>>16), byte(g.Qubit>>8), byte(g.Qubit))
	}
	return string(buf)
}
