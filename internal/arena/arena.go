// Package arena implements the flat columnar term storage shared by
// FermionOperator, MajoranaOperator and SpinOperator: a sum of products of
// generators stored as three parallel slices rather than one allocation per
// term, so dense expansions stay contiguous and bulk-copyable.
//
// None of the three operator packages dispatch through an interface to get
// here: Fermion, Majorana and Spin each instantiate Arena[G] with their own
// concrete generator type, so term layout and growth are resolved at
// compile time, not through runtime polymorphism.
package arena

import (
	"math/cmplx"

	"github.com/qiskit-community/go-fermion-operators/internal/qferrors"
)

// Arena is a sum of T terms over A total generators: Coeffs has length T,
// Payload has length A, Boundaries has length T+1 with Boundaries[0] = 0
// and Boundaries[T] = A. Term t occupies Payload[Boundaries[t]:Boundaries[t+1]].
type Arena[G any] struct {
	Coeffs     []complex128
	Payload    []G
	Boundaries []uint32
}

// Zero returns the polynomial with no terms.
func Zero[G any]() *Arena[G] {
	return &Arena[G]{Boundaries: []uint32{0}}
}

// One returns the single-term identity polynomial: empty payload, coefficient 1+0i.
func One[G any]() *Arena[G] {
	return &Arena[G]{
		Coeffs:     []complex128{1},
		Boundaries: []uint32{0, 0},
	}
}

// New constructs an Arena from raw columnar arrays, validating that
// boundaries is monotone non-decreasing, starts at 0, ends at len(payload),
// and has exactly len(coeffs)+1 entries.
func New[G any](coeffs []complex128, payload []G, boundaries []uint32) (*Arena[G], error) {
	a := &Arena[G]{Coeffs: coeffs, Payload: payload, Boundaries: boundaries}
	if err := a.validate(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Arena[G]) validate() error {
	if len(a.Boundaries) != len(a.Coeffs)+1 {
		return qferrors.New(qferrors.InvalidArgument,
			"boundaries has length %d, want len(coeffs)+1 = %d", len(a.Boundaries), len(a.Coeffs)+1)
	}
	if len(a.Boundaries) == 0 || a.Boundaries[0] != 0 {
		return qferrors.New(qferrors.InvalidArgument, "boundaries[0] must be 0")
	}
	for i := 1; i < len(a.Boundaries); i++ {
		if a.Boundaries[i] < a.Boundaries[i-1] {
			return qferrors.New(qferrors.InvalidArgument, "boundaries is not monotone non-decreasing at index %d", i)
		}
	}
	if int(a.Boundaries[len(a.Boundaries)-1]) != len(a.Payload) {
		return qferrors.New(qferrors.InvalidArgument,
			"boundaries[T] = %d, want len(payload) = %d", a.Boundaries[len(a.Boundaries)-1], len(a.Payload))
	}
	return nil
}

// NumTerms returns T, the number of terms.
func (a *Arena[G]) NumTerms() int { return len(a.Coeffs) }

// Term returns the payload slice for term t. The returned slice aliases the
// arena's backing array and must not be retained across a mutation of a.
func (a *Arena[G]) Term(t int) []G {
	return a.Payload[a.Boundaries[t]:a.Boundaries[t+1]]
}

// AddTerm appends one term of the given payload and coefficient in place.
func (a *Arena[G]) AddTerm(payload []G, coeff complex128) {
	a.Coeffs = append(a.Coeffs, coeff)
	a.Payload = append(a.Payload, payload...)
	a.Boundaries = append(a.Boundaries, uint32(len(a.Payload)))
}

// Clone returns a deep copy.
func (a *Arena[G]) Clone() *Arena[G] {
	out := &Arena[G]{
		Coeffs:     append([]complex128(nil), a.Coeffs...),
		Payload:    append([]G(nil), a.Payload...),
		Boundaries: append([]uint32(nil), a.Boundaries...),
	}
	return out
}

// Add concatenates the term lists of a and b with no simplification.
func Add[G any](a, b *Arena[G]) *Arena[G] {
	out := a.Clone()
	base := uint32(len(out.Payload))
	out.Coeffs = append(out.Coeffs, b.Coeffs...)
	out.Payload = append(out.Payload, b.Payload...)
	for _, bnd := range b.Boundaries[1:] {
		out.Boundaries = append(out.Boundaries, base+bnd)
	}
	return out
}

// Compose is the bilinear term-wise product shared by FermionOperator and
// MajoranaOperator: for every i in [0,|a|) then j in [0,|b|), emit the
// concatenation of term i of a with term j of b, coefficient the product
// of the two coefficients.
func Compose[G any](a, b *Arena[G]) *Arena[G] {
	out := Zero[G]()
	na, nb := a.NumTerms(), b.NumTerms()
	out.Coeffs = make([]complex128, 0, na*nb)
	out.Boundaries = make([]uint32, 1, na*nb+1)
	out.Boundaries[0] = 0
	for i := 0; i < na; i++ {
		ti := a.Term(i)
		for j := 0; j < nb; j++ {
			tj := b.Term(j)
			out.Payload = append(out.Payload, ti...)
			out.Payload = append(out.Payload, tj...)
			out.Coeffs = append(out.Coeffs, a.Coeffs[i]*b.Coeffs[j])
			out.Boundaries = append(out.Boundaries, uint32(len(out.Payload)))
		}
	}
	return out
}

// Scale returns a new arena with every coefficient multiplied by factor.
func (a *Arena[G]) Scale(factor complex128) *Arena[G] {
	out := a.Clone()
	for i := range out.Coeffs {
		out.Coeffs[i] *= factor
	}
	return out
}

// IChop drops, in place, every term whose coefficient magnitude is <= tol.
func (a *Arena[G]) IChop(tol float64) {
	newCoeffs := a.Coeffs[:0]
	newPayload := a.Payload[:0]
	newBoundaries := make([]uint32, 0, len(a.Boundaries))
	newBoundaries = append(newBoundaries, 0)
	for t := 0; t < a.NumTerms(); t++ {
		if cmplx.Abs(a.Coeffs[t]) <= tol {
			continue
		}
		term := a.Term(t)
		newCoeffs = append(newCoeffs, a.Coeffs[t])
		newPayload = append(newPayload, term...)
		newBoundaries = append(newBoundaries, uint32(len(newPayload)))
	}
	a.Coeffs = newCoeffs
	a.Payload = newPayload
	a.Boundaries = newBoundaries
}

// Equal reports whether a and b have pairwise-equal Coeffs, Payload and
// Boundaries: structural equality, sensitive to term order and unmerged
// duplicates.
func Equal[G comparable](a, b *Arena[G]) bool {
	if len(a.Coeffs) != len(b.Coeffs) || len(a.Payload) != len(b.Payload) || len(a.Boundaries) != len(b.Boundaries) {
		return false
	}
	for i := range a.Coeffs {
		if a.Coeffs[i] != b.Coeffs[i] {
			return false
		}
	}
	for i := range a.Payload {
		if a.Payload[i] != b.Payload[i] {
			return false
		}
	}
	for i := range a.Boundaries {
		if a.Boundaries[i] != b.Boundaries[i] {
			return false
		}
	}
	return true
}

// AggregateByKey is the shared engine behind Simplify in both fermion and
// majorana: given, for each term, its canonicalized (possibly
// multi-term) rewrite and a caller-supplied key function, it sums
// coefficients of identical keys in first-arrival order and drops any
// accumulated term whose magnitude is <= tol, returning a fresh arena in
// key-insertion order.
func AggregateByKey[G any, K comparable](terms []Term[G], keyOf func([]G) K, tol float64) *Arena[G] {
	type bucket struct {
		key     K
		payload []G
		coeff   complex128
	}
	order := make([]K, 0, len(terms))
	buckets := make(map[K]*bucket, len(terms))
	for _, t := range terms {
		k := keyOf(t.Payload)
		b, ok := buckets[k]
		if !ok {
			b = &bucket{key: k, payload: t.Payload}
			buckets[k] = b
			order = append(order, k)
		}
		b.coeff += t.Coeff
	}
	out := Zero[G]()
	for _, k := range order {
		b := buckets[k]
		if cmplx.Abs(b.coeff) <= tol {
			continue
		}
		out.AddTerm(b.payload, b.coeff)
	}
	return out
}

// Term is one (payload, coefficient) pair, used as the intermediate value
// between a per-term rewrite pass and AggregateByKey.
type Term[G any] struct {
	Payload []G
	Coeff   complex128
}
