// Package bridge implements the linear substitution between FermionOperator
// and MajoranaOperator generator sets.
package bridge

import (
	"github.com/qiskit-community/go-fermion-operators/internal/fermion"
	"github.com/qiskit-community/go-fermion-operators/internal/majorana"
)

// FermionToMajorana replaces each fermionic generator by its 2-term
// Majorana expansion and distributes the result with compose. No
// canonicalization is performed; the caller chooses whether to run
// normal ordering or simplification afterward.
//
// The substitution is the algebraic inverse of the γ_2j/γ_2j+1 formulas
// used by MajoranaToFermion below:
//
//	c_j  = (γ_2j - i·γ_2j+1) / 2
//	c†_j = (γ_2j + i·γ_2j+1) / 2
func FermionToMajorana(op *fermion.Operator) *majorana.Operator {
	out := majorana.Zero()
	for t := 0; t < op.NumTerms(); t++ {
		payload, coeff := op.Term(t)
		termOp := majorana.One().Mul(coeff)
		for _, g := range payload {
			termOp = majorana.Compose(termOp, generatorToMajorana(g))
		}
		out = majorana.Add(out, termOp)
	}
	return out
}

// generatorToMajorana returns the 2-term Majorana arena for one fermionic
// generator, coefficient 1 on the whole sub-expression.
func generatorToMajorana(g fermion.Generator) *majorana.Operator {
	sign := complex(0, -1)
	if g.Action == fermion.Create {
		sign = -sign
	}
	op := majorana.Zero()
	op.AddTerm([]uint32{2 * g.Index}, 0.5)
	op.AddTerm([]uint32{2*g.Index + 1}, 0.5*sign)
	return op
}

// MajoranaToFermion is the dual substitution, same distribute-then-return
// policy.
//
//	γ_2j   = c_j + c†_j
//	γ_2j+1 = i·(c_j - c†_j)
func MajoranaToFermion(op *majorana.Operator) *fermion.Operator {
	out := fermion.Zero()
	for t := 0; t < op.NumTerms(); t++ {
		payload, coeff := op.Term(t)
		termOp := fermion.One().Mul(coeff)
		for _, mode := range payload {
			termOp = fermion.Compose(termOp, modeToFermion(mode))
		}
		out = fermion.Add(out, termOp)
	}
	return out
}

// modeToFermion returns the 2-term fermionic arena for one Majorana mode.
func modeToFermion(mode uint32) *fermion.Operator {
	j := mode / 2
	op := fermion.Zero()
	if mode%2 == 0 {
		// γ_2j = c_j + c†_j
		op.AddTerm([]fermion.Action{fermion.Annihilate}, []uint32{j}, 1)
		op.AddTerm([]fermion.Action{fermion.Create}, []uint32{j}, 1)
		return op
	}
	// γ_2j+1 = i·(c_j - c†_j)
	op.AddTerm([]fermion.Action{fermion.Annihilate}, []uint32{j}, complex(0, 1))
	op.AddTerm([]fermion.Action{fermion.Create}, []uint32{j}, complex(0, -1))
	return op
}
