// Package diagnostics formats size/footprint snapshots of large operators
// for test failure messages and debugging. Operators with tens of
// thousands of terms are a normal workload here, so raw counts get
// humanized formatting.
package diagnostics

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/qiskit-community/go-fermion-operators/internal/fermion"
	"github.com/qiskit-community/go-fermion-operators/internal/majorana"
)

// Stats snapshots an operator's shape: term count, total generator count
// across the payload, and the estimated byte footprint of the three
// backing columnar arrays (16 bytes per complex128 coefficient, plus the
// per-generator and per-boundary element sizes).
type Stats struct {
	Terms      int
	PayloadLen int
	Bytes      int64
}

// bytesFor computes the footprint given each array's element size in bytes.
func bytesFor(terms, payloadLen, genSize int) int64 {
	const coeffSize = 16 // complex128
	const boundarySize = 4
	return int64(terms)*coeffSize + int64(payloadLen)*int64(genSize) + int64(terms+1)*boundarySize
}

// FermionStats snapshots a FermionOperator: Generator is 1 bool + 4 bytes.
func FermionStats(op *fermion.Operator) Stats {
	terms := op.NumTerms()
	payload := op.PayloadLen()
	return Stats{Terms: terms, PayloadLen: payload, Bytes: bytesFor(terms, payload, 5)}
}

// MajoranaStats snapshots a MajoranaOperator: each mode is a bare uint32.
func MajoranaStats(op *majorana.Operator) Stats {
	terms := op.NumTerms()
	var payload int
	for t := 0; t < terms; t++ {
		modes, _ := op.Term(t)
		payload += len(modes)
	}
	return Stats{Terms: terms, PayloadLen: payload, Bytes: bytesFor(terms, payload, 4)}
}

// String renders a human-readable summary using go-humanize for both the
// term/payload counts (thousands separators) and the byte footprint
// (SI decimal prefixes, e.g. "128 kB").
func (s Stats) String() string {
	return fmt.Sprintf("%s terms, %s generators, %s",
		humanize.Comma(int64(s.Terms)),
		humanize.Comma(int64(s.PayloadLen)),
		humanize.Bytes(uint64(s.Bytes)),
	)
}
