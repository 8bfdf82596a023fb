// Package batch fans independent, read-only operator transforms across
// goroutines with golang.org/x/sync/errgroup. Algebraic constructors
// return freshly owned values, so evaluating distinct operators
// concurrently is safe as long as no mutable operator is aliased.
package batch

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/qiskit-community/go-fermion-operators/internal/fermion"
)

// Transform is a pure, allocating operator transform: Simplify,
// NormalOrdered, or any caller-supplied composition of them.
type Transform func(*fermion.Operator) (*fermion.Operator, error)

// Map applies fn to every operator in ops concurrently, one goroutine per
// input, and returns results in input order. It returns the first error
// encountered; the transforms themselves are CPU-bound and run to
// completion once started.
func Map(ctx context.Context, ops []*fermion.Operator, fn Transform) ([]*fermion.Operator, error) {
	out := make([]*fermion.Operator, len(ops))
	g, _ := errgroup.WithContext(ctx)
	for i, op := range ops {
		i, op := i, op
		g.Go(func() error {
			result, err := fn(op)
			if err != nil {
				return err
			}
			out[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Simplify runs fermion.Simplify(op, tol) over every operator concurrently.
func Simplify(ctx context.Context, ops []*fermion.Operator, tol float64) ([]*fermion.Operator, error) {
	return Map(ctx, ops, func(op *fermion.Operator) (*fermion.Operator, error) {
		return fermion.Simplify(op, tol), nil
	})
}

// NormalOrder runs fermion.NormalOrdered over every operator concurrently.
func NormalOrder(ctx context.Context, ops []*fermion.Operator) ([]*fermion.Operator, error) {
	return Map(ctx, ops, func(op *fermion.Operator) (*fermion.Operator, error) {
		return fermion.NormalOrdered(op), nil
	})
}
