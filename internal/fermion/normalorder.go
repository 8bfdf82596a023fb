package fermion

import "github.com/qiskit-community/go-fermion-operators/internal/arena"

// normalOrderTerm rewrites one (payload, coeff) term into fermionic normal
// form, returning every term produced along the way. It works off an
// explicit FIFO work queue rather than recursion, so the Kronecker
// contraction fan-out cannot grow the call stack:
// every queued item is either a same-length swap, which removes exactly one
// out-of-order pair (inversion) from the term, or a strictly shorter
// contraction fragment, so the queue drains.
func normalOrderTerm(payload []Generator, coeff complex128) []arena.Term[Generator] {
	type item struct {
		payload []Generator
		coeff   complex128
	}
	queue := []item{{append([]Generator(nil), payload...), coeff}}
	var finished []arena.Term[Generator]

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		violation := -1
		for i := 0; i+1 < len(cur.payload); i++ {
			if isViolation(cur.payload[i], cur.payload[i+1]) {
				violation = i
				break
			}
		}
		if violation < 0 {
			finished = append(finished, arena.Term[Generator]{Payload: cur.payload, Coeff: cur.coeff})
			continue
		}

		for _, next := range applyRule(cur.payload, cur.coeff, violation) {
			queue = append(queue, item{next.Payload, next.Coeff})
		}
	}
	return finished
}

// isViolation reports whether the adjacent pair (a, b) is out of the target
// normal-ordered shape: same-kind pairs must strictly decrease (CREATE) or
// strictly increase (ANNIHILATE) in index, and any ANNIHILATE-then-CREATE
// pair must always be rewritten regardless of index.
func isViolation(a, b Generator) bool {
	if a.Action == b.Action {
		if a.Action == Create {
			return a.Index <= b.Index // want strictly decreasing
		}
		return a.Index >= b.Index // want strictly increasing
	}
	return a.Action == Annihilate // ANNIHILATE then CREATE
}

// applyRule rewrites the violating adjacent pair at position i, returning
// the resulting work items. A same-kind, same-index pair annihilates the
// whole term (c†_i c†_i = 0, c_i c_i = 0), returning no items.
func applyRule(payload []Generator, coeff complex128, i int) []arena.Term[Generator] {
	a, b := payload[i], payload[i+1]

	if a.Action == b.Action {
		if a.Index == b.Index {
			return nil
		}
		swapped := clonePayload(payload)
		swapped[i], swapped[i+1] = swapped[i+1], swapped[i]
		return []arena.Term[Generator]{{Payload: swapped, Coeff: -coeff}}
	}

	// ANNIHILATE i then CREATE j: -CREATE_j ANNIHILATE_i + delta_ij * fragment.
	swapped := clonePayload(payload)
	swapped[i] = Generator{Action: Create, Index: b.Index}
	swapped[i+1] = Generator{Action: Annihilate, Index: a.Index}
	out := []arena.Term[Generator]{{Payload: swapped, Coeff: -coeff}}

	if a.Index == b.Index {
		frag := make([]Generator, 0, len(payload)-2)
		frag = append(frag, payload[:i]...)
		frag = append(frag, payload[i+2:]...)
		out = append(out, arena.Term[Generator]{Payload: frag, Coeff: coeff})
	}
	return out
}

func clonePayload(payload []Generator) []Generator {
	return append([]Generator(nil), payload...)
}
