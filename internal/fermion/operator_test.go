package fermion

import (
	"math/cmplx"
	"testing"
)

func TestNew(t *testing.T) {
	coeffs := []complex128{1, -1, complex(0, -1)}
	actions := []Action{Create, Annihilate, Create, Annihilate}
	indices := []uint32{0, 1, 2, 3}
	boundaries := []uint32{0, 0, 2, 4}
	op, err := New(coeffs, actions, indices, boundaries)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	expected := Zero()
	expected.AddTerm(nil, nil, 1)
	expected.AddTerm([]Action{Create, Annihilate}, []uint32{0, 1}, -1)
	expected.AddTerm([]Action{Create, Annihilate}, []uint32{2, 3}, complex(0, -1))

	if !Equal(op, expected) {
		t.Fatalf("New produced unexpected operator")
	}
}

func TestAdd(t *testing.T) {
	if !Equal(Add(Zero(), One()), One()) {
		t.Fatalf("zero + one != one")
	}
}

func TestAddTerm(t *testing.T) {
	op := Zero()
	op.AddTerm(nil, nil, 1)
	if !Equal(op, One()) {
		t.Fatalf("add_term of identity payload != one()")
	}
}

func TestEquivTolerance(t *testing.T) {
	op := Zero()
	op.AddTerm(nil, nil, 1e-7)
	if !Equiv(op, Zero(), 1e-6) {
		t.Fatalf("1e-7 should be equiv to zero within 1e-6")
	}
	if Equiv(op, Zero(), 1e-8) {
		t.Fatalf("1e-7 should not be equiv to zero within 1e-8")
	}
}

func TestMul(t *testing.T) {
	op := One().Mul(2)
	expected := Zero()
	expected.AddTerm(nil, nil, 2)
	if !Equal(op, expected) {
		t.Fatalf("mul(one, 2) != {2}")
	}
}

func TestCompose(t *testing.T) {
	op1, err := New([]complex128{2, 3}, []Action{Create, Annihilate}, []uint32{0, 1}, []uint32{0, 0, 2})
	if err != nil {
		t.Fatal(err)
	}
	op2, err := New([]complex128{1.5, 4}, []Action{Create, Annihilate}, []uint32{1, 0}, []uint32{0, 0, 2})
	if err != nil {
		t.Fatal(err)
	}

	result := Compose(op1, op2)

	expected := Zero()
	expected.AddTerm(nil, nil, 3)
	expected.AddTerm([]Action{Create, Annihilate}, []uint32{1, 0}, 8)
	expected.AddTerm([]Action{Create, Annihilate}, []uint32{0, 1}, 4.5)
	expected.AddTerm([]Action{Create, Annihilate, Create, Annihilate}, []uint32{0, 1, 1, 0}, 12)

	if !Equal(result, expected) {
		t.Fatalf("compose mismatch")
	}
}

func TestIChop(t *testing.T) {
	op := Zero()
	op.AddTerm(nil, nil, 1e-8)
	op.IChop(1e-6)
	if !Equal(op, Zero()) {
		t.Fatalf("ichop should have dropped the sub-tolerance term")
	}
}

// Sub-tolerance terms drop, like payloads merge, terms squaring a ladder
// operator vanish under the canonicalizing rewrite, and opposite
// coefficients on a shared payload cancel exactly.
func TestSimplify(t *testing.T) {
	op := Zero()
	op.AddTerm(nil, nil, 1e-10)
	op.AddTerm([]Action{Create}, []uint32{0}, 2)
	op.AddTerm([]Action{Create}, []uint32{0}, 3)
	op.AddTerm([]Action{Annihilate, Annihilate}, []uint32{1, 1}, 4)
	op.AddTerm([]Action{Annihilate, Annihilate}, []uint32{1, 1}, -4)

	canon := Simplify(op, 1e-8)

	expected := Zero()
	expected.AddTerm([]Action{Create}, []uint32{0}, 5)

	if !Equiv(canon, expected, 1e-10) {
		t.Fatalf("simplify mismatch")
	}
}

func TestSimplifyVsIChopLargeN(t *testing.T) {
	const n = 100000
	op := Zero()
	for i := 0; i < n; i++ {
		op.AddTerm(nil, nil, 1e-5)
	}

	canon := Simplify(op, 1e-4)
	if !Equiv(canon, One(), 1e-6) {
		t.Fatalf("100000 * 1e-5 should simplify to one()")
	}

	op.IChop(1e-4)
	if !Equiv(op, Zero(), 1e-6) {
		t.Fatalf("ichop with tol 1e-4 should drop every 1e-5 term")
	}
}

func TestAdjoint(t *testing.T) {
	op := Zero()
	op.AddTerm(nil, nil, complex(0, 1))

	adj := Adjoint(op)

	expected := Zero()
	expected.AddTerm(nil, nil, complex(0, -1))

	if !Equal(adj, expected) {
		t.Fatalf("adjoint of identity*i != identity*-i")
	}
}

func TestNormalOrdered(t *testing.T) {
	op := Zero()
	op.AddTerm([]Action{Annihilate, Create, Annihilate, Create}, []uint32{1, 1, 0, 0}, 1)

	result := NormalOrdered(op)

	// a_1 c†_1 a_0 c†_0 = (1 - c†_1 a_1)(1 - c†_0 a_0)
	//                   = 1 - c†_0 a_0 - c†_1 a_1 + c†_1 c†_0 a_0 a_1.
	expected := Zero()
	expected.AddTerm(nil, nil, 1)
	expected.AddTerm([]Action{Create, Annihilate}, []uint32{0, 0}, -1)
	expected.AddTerm([]Action{Create, Annihilate}, []uint32{1, 1}, -1)
	expected.AddTerm([]Action{Create, Create, Annihilate, Annihilate}, []uint32{1, 0, 0, 1}, 1)

	if !Equiv(result, expected, 1e-10) {
		t.Fatalf("normal_ordered mismatch")
	}
}

func TestIsHermitian(t *testing.T) {
	op := Zero()
	op.AddTerm([]Action{Create, Annihilate}, []uint32{0, 1}, complex(0, 1.00001))
	op.AddTerm([]Action{Create, Annihilate}, []uint32{1, 0}, complex(0, -1))

	if !IsHermitian(op, 1e-4) {
		t.Fatalf("should be hermitian within 1e-4")
	}
	if IsHermitian(op, 1e-8) {
		t.Fatalf("should not be hermitian within 1e-8")
	}
}

func TestManyBodyOrder(t *testing.T) {
	op := Zero()
	op.AddTerm([]Action{Create, Annihilate, Create, Annihilate}, []uint32{0, 1, 2, 3}, 1)
	if got := ManyBodyOrder(op); got != 2 {
		t.Fatalf("many_body_order = %d, want 2", got)
	}
}

func TestConservesParticleNumber(t *testing.T) {
	op1 := Zero()
	op1.AddTerm([]Action{Create, Annihilate}, []uint32{0, 1}, 1)
	if !ConservesParticleNumber(op1) {
		t.Fatalf("c†0 c1 should conserve particle number")
	}

	op2 := Zero()
	op2.AddTerm([]Action{Create}, []uint32{0}, 1)
	if ConservesParticleNumber(op2) {
		t.Fatalf("c†0 alone should not conserve particle number")
	}
}

func TestLen(t *testing.T) {
	op := Zero()
	op.AddTerm([]Action{Create, Annihilate, Create, Annihilate}, []uint32{0, 1, 2, 3}, 1)
	if op.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", op.Len())
	}
}

func TestCommutatorAntiCommutator(t *testing.T) {
	a := Zero()
	a.AddTerm([]Action{Create}, []uint32{0}, 1)
	b := Zero()
	b.AddTerm([]Action{Annihilate}, []uint32{0}, 1)

	comm := Commutator(a, b)
	anti := AntiCommutator(a, b)

	sum := Simplify(Add(comm, anti), 1e-12)
	expected := Simplify(Compose(a, b).Mul(2), 1e-12)
	if !Equiv(sum, expected, 1e-9) {
		t.Fatalf("commutator + anticommutator should equal 2*compose(a,b)")
	}
}

func TestDoubleCommutatorNonAnti(t *testing.T) {
	a := Zero()
	a.AddTerm([]Action{Create}, []uint32{0}, 1)
	b := Zero()
	b.AddTerm([]Action{Annihilate}, []uint32{0}, 1)
	c := Zero()
	c.AddTerm([]Action{Create}, []uint32{1}, 1)

	got := DoubleCommutator(a, b, c, false)
	want := Commutator(Commutator(a, b), c)
	if !Equiv(got, want, 1e-9) {
		t.Fatalf("double_commutator(anti=false) should equal [[a,b],c]")
	}
}

func TestEqualVsEquivOnTermOrder(t *testing.T) {
	a := Zero()
	a.AddTerm([]Action{Create}, []uint32{0}, 1)
	a.AddTerm([]Action{Create}, []uint32{1}, 2)

	b := Zero()
	b.AddTerm([]Action{Create}, []uint32{1}, 2)
	b.AddTerm([]Action{Create}, []uint32{0}, 1)

	if Equal(a, b) {
		t.Fatalf("reordered terms should not be structurally equal")
	}
	if !Equiv(a, b, 1e-12) {
		t.Fatalf("reordered terms should be numerically equivalent")
	}
}

func TestComposeIdentity(t *testing.T) {
	a := Zero()
	a.AddTerm([]Action{Create, Annihilate}, []uint32{2, 1}, complex(1, 3))
	a.AddTerm([]Action{Annihilate}, []uint32{0}, -2)

	if !Equal(Compose(One(), a), a) {
		t.Fatalf("compose(one, a) should equal a")
	}
	if !Equal(Compose(a, One()), a) {
		t.Fatalf("compose(a, one) should equal a")
	}
}

func TestAdjointInvolution(t *testing.T) {
	a := Zero()
	a.AddTerm([]Action{Create, Annihilate}, []uint32{0, 1}, complex(1, 2))
	a.AddTerm([]Action{Annihilate, Create}, []uint32{3, 2}, complex(-1, 0.5))

	if !Equal(Adjoint(Adjoint(a)), a) {
		t.Fatalf("adjoint(adjoint(a)) should equal a")
	}
}

func TestAdjointConjugateLinearity(t *testing.T) {
	a := Zero()
	a.AddTerm([]Action{Create}, []uint32{0}, 1)
	b := Zero()
	b.AddTerm([]Action{Annihilate}, []uint32{1}, 1)

	alpha := complex(2, -1)
	beta := complex(0, 3)

	lhs := Adjoint(Add(a.Mul(alpha), b.Mul(beta)))
	rhs := Add(Adjoint(a).Mul(cmplx.Conj(alpha)), Adjoint(b).Mul(cmplx.Conj(beta)))
	if !Equiv(lhs, rhs, 1e-12) {
		t.Fatalf("adjoint should be conjugate-linear")
	}
}

// {a_i, a†_j} = delta_ij, after normal ordering and simplification.
func TestCanonicalAnticommutation(t *testing.T) {
	for _, idx := range [][2]uint32{{0, 0}, {0, 1}} {
		a := Zero()
		a.AddTerm([]Action{Create}, []uint32{idx[0]}, 1)
		b := Zero()
		b.AddTerm([]Action{Annihilate}, []uint32{idx[1]}, 1)

		sum := AntiCommutator(a, b)
		if idx[0] == idx[1] {
			sum = Add(sum, One().Mul(-1))
		}
		result := Simplify(NormalOrdered(sum), 1e-10)
		if !Equiv(result, Zero(), 1e-10) {
			t.Fatalf("{a†_%d, a_%d} - delta should vanish, got %d terms", idx[0], idx[1], result.Len())
		}
	}
}

func TestCommutatorAntisymmetry(t *testing.T) {
	a := Zero()
	a.AddTerm([]Action{Create, Annihilate}, []uint32{0, 1}, 1)
	b := Zero()
	b.AddTerm([]Action{Create, Annihilate}, []uint32{1, 0}, 2)

	if !Equiv(Commutator(a, b), Commutator(b, a).Mul(-1), 1e-12) {
		t.Fatalf("commutator(a,b) should equal -commutator(b,a)")
	}
}

func TestSimplifyIdempotent(t *testing.T) {
	op := Zero()
	op.AddTerm([]Action{Annihilate, Create}, []uint32{0, 0}, 2)
	op.AddTerm(nil, nil, -1)
	op.AddTerm([]Action{Create}, []uint32{1}, 1e-10)

	once := Simplify(op, 1e-8)
	twice := Simplify(once, 1e-8)
	if !Equal(once, twice) {
		t.Fatalf("simplify should be idempotent")
	}
}

// The commutator of number-operator factors vanishes after the full
// normal-order, simplify, chop pipeline.
func TestCommutatorNumberOperatorFactors(t *testing.T) {
	op1 := Zero()
	op1.AddTerm([]Action{Create, Annihilate}, []uint32{0, 0}, 1)
	op2 := Zero()
	op2.AddTerm([]Action{Annihilate, Create}, []uint32{0, 0}, 2)

	result := Simplify(NormalOrdered(Commutator(op1, op2)), 1e-8)
	result.IChop(1e-8)
	if !Equiv(result, Zero(), 1e-8) {
		t.Fatalf("[n_0, 2 a_0 a†_0] should vanish, got %d terms", result.Len())
	}
}

func TestAdjointReverseAndSwap(t *testing.T) {
	op := Zero()
	op.AddTerm([]Action{Create, Annihilate}, []uint32{0, 1}, complex(1, 2))

	adj := Adjoint(op)
	payload, coeff := adj.Term(0)
	if len(payload) != 2 || payload[0].Action != Create || payload[0].Index != 1 ||
		payload[1].Action != Annihilate || payload[1].Index != 0 {
		t.Fatalf("adjoint should reverse order and swap action: got %+v", payload)
	}
	if cmplx.Abs(coeff-cmplx.Conj(complex(1, 2))) > 1e-12 {
		t.Fatalf("adjoint should conjugate the coefficient: got %v", coeff)
	}
}
