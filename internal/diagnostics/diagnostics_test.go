package diagnostics

import (
	"strings"
	"testing"

	"github.com/qiskit-community/go-fermion-operators/internal/fermion"
	"github.com/qiskit-community/go-fermion-operators/internal/majorana"
)

func TestFermionStats(t *testing.T) {
	op := fermion.Zero()
	op.AddTerm([]fermion.Action{fermion.Create, fermion.Annihilate}, []uint32{0, 1}, 1)
	op.AddTerm([]fermion.Action{fermion.Create}, []uint32{2}, 1)

	stats := FermionStats(op)
	if stats.Terms != 2 {
		t.Fatalf("Terms = %d, want 2", stats.Terms)
	}
	if stats.PayloadLen != 3 {
		t.Fatalf("PayloadLen = %d, want 3", stats.PayloadLen)
	}
	if stats.Bytes <= 0 {
		t.Fatalf("Bytes should be positive, got %d", stats.Bytes)
	}
}

func TestMajoranaStats(t *testing.T) {
	op := majorana.Zero()
	op.AddTerm([]uint32{0, 1, 2}, 1)

	stats := MajoranaStats(op)
	if stats.Terms != 1 || stats.PayloadLen != 3 {
		t.Fatalf("stats = %+v, want Terms:1 PayloadLen:3", stats)
	}
}

func TestStatsStringUsesHumanizedFormatting(t *testing.T) {
	op := fermion.Zero()
	for i := 0; i < 1500; i++ {
		op.AddTerm(nil, nil, 1)
	}
	s := FermionStats(op).String()
	if !strings.Contains(s, "1,500") {
		t.Fatalf("String() = %q, want a comma-grouped term count", s)
	}
	if !strings.Contains(s, "terms") || !strings.Contains(s, "generators") {
		t.Fatalf("String() = %q, missing expected labels", s)
	}
}
