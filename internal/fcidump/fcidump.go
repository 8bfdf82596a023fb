package fcidump

import (
	"os"

	"github.com/qiskit-community/go-fermion-operators/internal/fermion"
	"github.com/qiskit-community/go-fermion-operators/internal/integrals"
	"github.com/qiskit-community/go-fermion-operators/internal/qferrors"
)

// ParseFile reads and parses a FCIDUMP file from disk, synchronously and in
// full; nothing else in this library touches the filesystem.
func ParseFile(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, qferrors.New(qferrors.ParseError, "reading %s: %v", path, err).WithOffset(0)
	}
	return Parse(string(data))
}

// Lift builds the FermionOperator electronic Hamiltonian's one- and
// two-body pieces from the record, auto-selecting the spin-restricted or
// spin-unrestricted lifter by whether a β-sector block was present.
func (r *Record) Lift() *fermion.Operator {
	norb := int(r.Norb)
	if r.Restricted {
		return fermion.Add(
			integrals.From1BodyTrilSpinSym(r.H1eA, norb),
			integrals.From2BodyTrilSpinSym(r.H2eAA, norb),
		)
	}
	return fermion.Add(
		integrals.From1BodyTrilSpin(r.H1eA, r.H1eB, norb),
		integrals.From2BodyTrilSpin(r.H2eAA, r.H2eAB, r.H2eBB, norb),
	)
}
