package batch

import (
	"context"
	"errors"
	"testing"

	"github.com/qiskit-community/go-fermion-operators/internal/fermion"
)

func buildOps(n int) []*fermion.Operator {
	ops := make([]*fermion.Operator, n)
	for i := range ops {
		op := fermion.Zero()
		op.AddTerm([]fermion.Action{fermion.Create, fermion.Annihilate}, []uint32{uint32(i), uint32(i)}, 1)
		ops[i] = op
	}
	return ops
}

func TestSimplifyPreservesOrderAndCount(t *testing.T) {
	ops := buildOps(8)
	results, err := Simplify(context.Background(), ops, 1e-10)
	if err != nil {
		t.Fatalf("Simplify: %v", err)
	}
	if len(results) != len(ops) {
		t.Fatalf("got %d results, want %d", len(results), len(ops))
	}
	for i, r := range results {
		if !fermion.Equiv(r, ops[i], 1e-10) {
			t.Fatalf("result %d should equal the already-normal-form input", i)
		}
	}
}

func TestNormalOrderConcurrent(t *testing.T) {
	ops := buildOps(4)
	results, err := NormalOrder(context.Background(), ops)
	if err != nil {
		t.Fatalf("NormalOrder: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("got %d results, want 4", len(results))
	}
}

func TestMapPropagatesFirstError(t *testing.T) {
	ops := buildOps(3)
	wantErr := errors.New("boom")
	_, err := Map(context.Background(), ops, func(op *fermion.Operator) (*fermion.Operator, error) {
		return nil, wantErr
	})
	if err == nil {
		t.Fatalf("Map should propagate a transform error")
	}
}

func TestMapEmptyInput(t *testing.T) {
	results, err := Map(context.Background(), nil, func(op *fermion.Operator) (*fermion.Operator, error) {
		t.Fatalf("transform should not be called on an empty input")
		return nil, nil
	})
	if err != nil {
		t.Fatalf("Map(nil): %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("Map(nil) should return zero results")
	}
}
