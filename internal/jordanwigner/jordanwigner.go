// Package jordanwigner implements the Jordan-Wigner mapping from
// FermionOperator to an external spin/Pauli polynomial. It depends only on
// the SpinBuilder interface below, never on a concrete spin-operator type:
// the Pauli library is an opaque external collaborator here.
package jordanwigner

import (
	"github.com/qiskit-community/go-fermion-operators/internal/fermion"
	"github.com/qiskit-community/go-fermion-operators/internal/qferrors"
	"github.com/qiskit-community/go-fermion-operators/internal/spinop"
)

// SpinBuilder is the (coefficient, Pauli-op-sequence, qubit-sequence)
// acceptor the external spin library exposes. spinop.Operator satisfies it;
// no other dependency on that package is required here.
type SpinBuilder interface {
	AddTerm(coeff complex128, ops []spinop.PauliOp, qubits []uint32) error
}

// factor is one coefficient-weighted Pauli string (a per-qubit map) pending
// composition.
type factor struct {
	coeff    complex128
	perQubit map[uint32]spinop.PauliOp
}

// Map runs the Jordan-Wigner substitution on op into numQubits qubits,
// appending every produced term to builder. It performs no canonicalization
// of its own; callers combine with spinop.Canonicalize.
func Map(op *fermion.Operator, numQubits uint32, builder SpinBuilder) error {
	for t := 0; t < op.NumTerms(); t++ {
		payload, coeff := op.Term(t)
		for _, g := range payload {
			if g.Index >= numQubits {
				return qferrors.New(qferrors.OutOfRange,
					"fermionic index %d out of range for %d qubits", g.Index, numQubits)
			}
		}
		if err := mapTerm(payload, coeff, builder); err != nil {
			return err
		}
	}
	return nil
}

// mapTerm distributes the two-spin-term-per-generator substitution across a
// single fermionic term by cartesian product over its generators, composing
// the chosen per-generator factor maps qubit-by-qubit in generator order.
func mapTerm(payload []fermion.Generator, coeff complex128, builder SpinBuilder) error {
	if len(payload) == 0 {
		return builder.AddTerm(coeff, nil, nil)
	}
	choices := make([][2]factor, len(payload))
	for i, g := range payload {
		choices[i] = generatorFactors(g)
	}
	return distribute(choices, 0, coeff, map[uint32]spinop.PauliOp{}, builder)
}

// distribute walks the cartesian product of per-generator (X, Y) choices
// depth-first, multiplying the running per-qubit map by each chosen factor
// in generator order, and emits a builder term at each leaf.
func distribute(choices [][2]factor, idx int, coeff complex128, running map[uint32]spinop.PauliOp, builder SpinBuilder) error {
	if idx == len(choices) {
		return emit(coeff, running, builder)
	}
	for _, f := range choices[idx] {
		nextCoeff := coeff * f.coeff
		merged, phase, err := compose(running, f.perQubit)
		if err != nil {
			return err
		}
		if err := distribute(choices, idx+1, nextCoeff*phase, merged, builder); err != nil {
			return err
		}
	}
	return nil
}

// generatorFactors returns the two single-qubit-map terms substituting for
// one fermionic generator:
//
//	a†_j = ½(X_j - iY_j) · Z_{j-1}...Z_0
//	a_j  = ½(X_j + iY_j) · Z_{j-1}...Z_0
func generatorFactors(g fermion.Generator) [2]factor {
	j := g.Index
	xTerm := map[uint32]spinop.PauliOp{j: spinop.PauliX}
	yTerm := map[uint32]spinop.PauliOp{j: spinop.PauliY}
	for q := uint32(0); q < j; q++ {
		xTerm[q] = spinop.PauliZ
		yTerm[q] = spinop.PauliZ
	}
	yCoeff := complex(0, -1)
	if g.Action == fermion.Annihilate {
		yCoeff = complex(0, 1)
	}
	return [2]factor{
		{coeff: 0.5, perQubit: xTerm},
		{coeff: complex(0.5, 0) * yCoeff, perQubit: yTerm},
	}
}

// compose multiplies two per-qubit Pauli maps in order (a then b), returning
// the merged map and the scalar phase picked up from same-qubit
// cancellations (X·Y = iZ, Y·Z = iX, Z·X = iY, P·P = I; reversed order
// yields the conjugate phase).
func compose(a, b map[uint32]spinop.PauliOp) (map[uint32]spinop.PauliOp, complex128, error) {
	out := make(map[uint32]spinop.PauliOp, len(a)+len(b))
	for q, p := range a {
		out[q] = p
	}
	phase := complex(1, 0)
	for q, pb := range b {
		pa, ok := out[q]
		if !ok {
			out[q] = pb
			continue
		}
		result, f, err := pauliMul(pa, pb)
		if err != nil {
			return nil, 0, err
		}
		phase *= f
		if result == nil {
			delete(out, q)
			continue
		}
		out[q] = *result
	}
	return out, phase, nil
}

// pauliMul implements single-qubit Pauli multiplication σ_a·σ_b = δ_ab·I +
// i·ε_abc·σ_c: result is nil for the identity case (P·P).
func pauliMul(a, b spinop.PauliOp) (*spinop.PauliOp, complex128, error) {
	if a == b {
		return nil, 1, nil
	}
	z := spinop.PauliZ
	x := spinop.PauliX
	y := spinop.PauliY
	switch {
	case a == spinop.PauliX && b == spinop.PauliY:
		return &z, complex(0, 1), nil
	case a == spinop.PauliY && b == spinop.PauliX:
		return &z, complex(0, -1), nil
	case a == spinop.PauliY && b == spinop.PauliZ:
		return &x, complex(0, 1), nil
	case a == spinop.PauliZ && b == spinop.PauliY:
		return &x, complex(0, -1), nil
	case a == spinop.PauliZ && b == spinop.PauliX:
		return &y, complex(0, 1), nil
	case a == spinop.PauliX && b == spinop.PauliZ:
		return &y, complex(0, -1), nil
	}
	return nil, 0, qferrors.New(qferrors.InvalidArgument, "unreachable Pauli pair (%v, %v)", a, b)
}

// emit flattens the accumulated per-qubit map into ascending-qubit factor
// and qubit slices and appends one term to builder, dropping qubits whose
// factor collapsed entirely (an empty Z-string, or full cancellation).
func emit(coeff complex128, m map[uint32]spinop.PauliOp, builder SpinBuilder) error {
	qubits := make([]uint32, 0, len(m))
	for q := range m {
		qubits = append(qubits, q)
	}
	sortUint32(qubits)
	ops := make([]spinop.PauliOp, len(qubits))
	for i, q := range qubits {
		ops[i] = m[q]
	}
	return builder.AddTerm(coeff, ops, qubits)
}

func sortUint32(s []uint32) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}
