package oso

import "sync/atomic"

// correlationIDCounter assigns the host-question correlation ids used by
// Question (see hostproto.go). It is process-wide rather than
// per-dispatch: dispatches never share a question/answer pairing, so a
// single monotonic source is simpler than threading a per-dispatch
// counter through every askFunc call and is still collision-free.
var correlationIDCounter uint64

func nextCorrelationID() uint64 {
	return atomic.AddUint64(&correlationIDCounter, 1)
}
