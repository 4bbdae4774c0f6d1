package matching

import (
	"github.com/rohankumardubey/hetu-sub001/common"
)

// captureKey is the identity of a capture slot. Two Captures with the same
// name are still distinct slots; identity is the pointer.
type captureKey struct {
	name string
}

// Capture is a typed token naming one slot to be bound during a match.
// Create one per slot with NewCapture; reusing the same token twice within
// one pattern is a construction-time error.
type Capture[T any] struct {
	key *captureKey
}

func NewCapture[T any](name string) *Capture[T] {
	return &Capture[T]{key: &captureKey{name: name}}
}

// Captures is the immutable set of bindings accumulated along one match
// decomposition path. It is a persistent chain: adding a binding shares the
// tail, so sibling paths never observe each other's bindings.
type Captures struct {
	key   *captureKey
	value any
	tail  *Captures
}

// NilCaptures is the empty binding set.
var NilCaptures *Captures

func (c *Captures) withBinding(key *captureKey, value any) *Captures {
	return &Captures{key: key, value: value, tail: c}
}

// CaptureValue returns the value bound to the capture. Asking for a capture
// the pattern never bound is a programming error.
func CaptureValue[T any](c *Captures, capture *Capture[T]) T {
	for cur := c; cur != nil; cur = cur.tail {
		if cur.key == capture.key {
			return cur.value.(T)
		}
	}
	panic(common.NewPlannerError(common.InvariantViolation,
		"capture '%s' was not bound by the pattern", capture.key.name))
}
