// Package integrals lifts one- and two-body electronic integral tensors,
// stored in lower-triangular form, into FermionOperator Hamiltonians.
// Spin convention: alpha orbitals occupy [0, n), beta orbitals occupy
// [n, 2n).
package integrals

import "github.com/qiskit-community/go-fermion-operators/internal/fermion"

// trilIndex returns the position of (p, q), p >= q, in row-major lower
// triangular storage.
func trilIndex(p, q int) int { return p*(p+1)/2 + q }

// TrilIndex is the exported form of trilIndex, used by the fcidump parser
// to place incoming (i, j) integral records into the same triangular layout
// these lifters read back.
func TrilIndex(p, q int) int {
	if p < q {
		p, q = q, p
	}
	return trilIndex(p, q)
}

// TrilSize returns the number of distinct unordered pairs over n orbitals,
// i.e. the length of a triangular tensor of order n.
func TrilSize(n int) int { return n * (n + 1) / 2 }

// From1BodyTrilSpinSym builds Σ_pq h_pq (a†_p a_q + a†_q a_p) (diagonal
// counted once) over both spin sectors from a single spin-restricted
// tensor h, emitting the alpha block then the beta block for each (p,q)
// pair in turn.
func From1BodyTrilSpinSym(h []float64, norb int) *fermion.Operator {
	op := fermion.Zero()
	for p := 0; p < norb; p++ {
		for q := 0; q <= p; q++ {
			val := complex(h[trilIndex(p, q)], 0)
			emitOneBodyPair(op, p, q, val, 0)
			emitOneBodyPair(op, p, q, val, norb)
		}
	}
	return op
}

// From1BodyTrilSpin is the spin-unrestricted counterpart: distinct alpha
// and beta tensors, alpha block emitted in full before the beta block.
func From1BodyTrilSpin(hA, hB []float64, norb int) *fermion.Operator {
	op := fermion.Zero()
	for p := 0; p < norb; p++ {
		for q := 0; q <= p; q++ {
			emitOneBodyPair(op, p, q, complex(hA[trilIndex(p, q)], 0), 0)
		}
	}
	for p := 0; p < norb; p++ {
		for q := 0; q <= p; q++ {
			emitOneBodyPair(op, p, q, complex(hB[trilIndex(p, q)], 0), norb)
		}
	}
	return op
}

// emitOneBodyPair appends, for orbital pair (p, q) offset into spin sector
// offset, a†_p a_q alone when p == q (diagonal counted once), or both
// a†_p a_q and a†_q a_p when p != q.
func emitOneBodyPair(op *fermion.Operator, p, q int, val complex128, offset int) {
	pp, qq := uint32(p+offset), uint32(q+offset)
	if p == q {
		op.AddTerm([]fermion.Action{fermion.Create, fermion.Annihilate}, []uint32{pp, qq}, val)
		return
	}
	op.AddTerm([]fermion.Action{fermion.Create, fermion.Annihilate}, []uint32{pp, qq}, val)
	op.AddTerm([]fermion.Action{fermion.Create, fermion.Annihilate}, []uint32{qq, pp}, val)
}

// From2BodyTrilSpinSym builds the spin-symmetric two-body term
// Σ (pq|rs) a†_p a†_r a_s a_q from a single tensor stored tril-of-tril,
// with the standard per-spin-pair decomposition: for each stored value
// h_pqrs the bra pair (p,q) and the ket pair (r,s) each independently
// range over the alpha/beta sectors, contributing four terms of equal
// coefficient h/2, further multiplied by the orbital-index permutations
// that are not already implied by the triangular storage (bra swap when
// p != q, ket swap when r != s, bra/ket swap when the two composite
// indices differ). Variants are emitted outer-ket-orbitals then
// inner-bra-orbitals, and the bra/ket-swapped block (when present) is
// emitted as a whole second pass rather than interleaved with the first.
func From2BodyTrilSpinSym(h []float64, norb int) *fermion.Operator {
	op := fermion.Zero()
	t2 := norb * (norb + 1) / 2
	for pqComp := 0; pqComp < t2; pqComp++ {
		p, q := trilPair(pqComp)
		for rsComp := 0; rsComp <= pqComp; rsComp++ {
			r, s := trilPair(rsComp)
			val := complex(h[trilIndex(pqComp, rsComp)]/2, 0)
			emitTwoBodyVariants(op, p, q, r, s, norb, val)
			if pqComp != rsComp {
				emitTwoBodyVariants(op, r, s, p, q, norb, val)
			}
		}
	}
	return op
}

// emitTwoBodyVariants emits every spin-sector, orbital-permutation variant
// of a single bra/ket orbital quadruple, ket-orbital-variant outer loop and
// bra-orbital-variant inner loop.
func emitTwoBodyVariants(op *fermion.Operator, p, q, r, s, norb int, val complex128) {
	for _, rs := range orbitalVariants(r, s) {
		for _, pq := range orbitalVariants(p, q) {
			emitTwoBodySpinBlock(op, pq[0], pq[1], rs[0], rs[1], norb, val)
		}
	}
}

// From2BodyTrilSpin is the spin-unrestricted counterpart: aa and bb
// tensors are tril-of-tril like the symmetric case (length T2(T2+1)/2),
// while ab is a dense T2 x T2 tensor indexed (alpha pair, beta pair); the
// two electrons are distinguishable by spin, so ab carries no bra/ket
// exchange symmetry in storage. Emission order is the alpha-alpha block,
// then the cross block, then the beta-beta block.
func From2BodyTrilSpin(hAA, hAB, hBB []float64, norb int) *fermion.Operator {
	op := fermion.Zero()
	t2 := norb * (norb + 1) / 2

	emitSameSpinVariants := func(p, q, r, s, offset int, val complex128) {
		for _, rs := range orbitalVariants(r, s) {
			for _, pq := range orbitalVariants(p, q) {
				emitTwoBodyTerm(op, pq[0]+offset, rs[0]+offset, rs[1]+offset, pq[1]+offset, val)
			}
		}
	}
	emitSameSpin := func(h []float64, offset int) {
		for pqComp := 0; pqComp < t2; pqComp++ {
			p, q := trilPair(pqComp)
			for rsComp := 0; rsComp <= pqComp; rsComp++ {
				r, s := trilPair(rsComp)
				val := complex(h[trilIndex(pqComp, rsComp)]/2, 0)
				emitSameSpinVariants(p, q, r, s, offset, val)
				if pqComp != rsComp {
					emitSameSpinVariants(r, s, p, q, offset, val)
				}
			}
		}
	}
	emitSameSpin(hAA, 0)

	// Each stored cross value serves both sector assignments: the alpha
	// pair in the bra with the beta pair in the ket, then the mirrored
	// term with the sectors swapped.
	for pqComp := 0; pqComp < t2; pqComp++ {
		p, q := trilPair(pqComp)
		for rsComp := 0; rsComp < t2; rsComp++ {
			r, s := trilPair(rsComp)
			val := complex(hAB[pqComp*t2+rsComp]/2, 0)
			for _, rs := range orbitalVariants(r, s) {
				for _, pq := range orbitalVariants(p, q) {
					emitTwoBodyTerm(op, pq[0], rs[0]+norb, rs[1]+norb, pq[1], val)
					emitTwoBodyTerm(op, rs[0]+norb, pq[0], pq[1], rs[1]+norb, val)
				}
			}
		}
	}

	emitSameSpin(hBB, norb)
	return op
}

// emitTwoBodySpinBlock emits the four spin-sector variants of the chemists'
// term a†_p a†_r a_s a_q for the orbital quadruple (p,q,r,s), with the bra
// pair (p,q) sharing one spin and the ket pair (r,s) sharing another,
// looped outer-ket-spin then inner-bra-spin to match the reference
// emission order.
func emitTwoBodySpinBlock(op *fermion.Operator, p, q, r, s, norb int, val complex128) {
	for _, sigma2 := range [2]int{0, norb} {
		for _, sigma1 := range [2]int{0, norb} {
			emitTwoBodyTerm(op, p+sigma1, r+sigma2, s+sigma2, q+sigma1, val)
		}
	}
}

func emitTwoBodyTerm(op *fermion.Operator, p, r, s, q int, val complex128) {
	op.AddTerm(
		[]fermion.Action{fermion.Create, fermion.Create, fermion.Annihilate, fermion.Annihilate},
		[]uint32{uint32(p), uint32(r), uint32(s), uint32(q)},
		val,
	)
}

// trilPair inverts trilIndex: returns (p, q), p >= q, for a triangular
// storage position.
func trilPair(idx int) (int, int) {
	p := 0
	for trilIndex(p+1, 0) <= idx {
		p++
	}
	return p, idx - trilIndex(p, 0)
}

// orbitalVariants returns the distinct (p, q) orderings for a triangular
// pair: just (p, q) when p == q, both orderings otherwise.
func orbitalVariants(p, q int) [][2]int {
	if p == q {
		return [][2]int{{p, q}}
	}
	return [][2]int{{p, q}, {q, p}}
}
