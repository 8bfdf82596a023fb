package majorana

import "github.com/qiskit-community/go-fermion-operators/internal/arena"

// normalOrderTerm rewrites one (payload, coeff) term so modes appear in
// strictly decreasing order, via the same FIFO work-queue shape as
// fermion.normalOrderTerm: γ_i γ_j with i<j swaps and negates; γ_i γ_i
// collapses to the identity pair (dropped, coefficient unchanged, since
// γ_i² = 1).
func normalOrderTerm(payload []uint32, coeff complex128) []arena.Term[uint32] {
	type item struct {
		payload []uint32
		coeff   complex128
	}
	queue := []item{{append([]uint32(nil), payload...), coeff}}
	var finished []arena.Term[uint32]

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		violation := -1
		for i := 0; i+1 < len(cur.payload); i++ {
			if cur.payload[i] <= cur.payload[i+1] {
				violation = i
				break
			}
		}
		if violation < 0 {
			finished = append(finished, arena.Term[uint32]{Payload: cur.payload, Coeff: cur.coeff})
			continue
		}

		i := violation
		if cur.payload[i] == cur.payload[i+1] {
			frag := make([]uint32, 0, len(cur.payload)-2)
			frag = append(frag, cur.payload[:i]...)
			frag = append(frag, cur.payload[i+2:]...)
			queue = append(queue, item{frag, cur.coeff})
			continue
		}
		swapped := append([]uint32(nil), cur.payload...)
		swapped[i], swapped[i+1] = swapped[i+1], swapped[i]
		queue = append(queue, item{swapped, -cur.coeff})
	}
	return finished
}
