// Package matching is a declarative structural pattern engine: a Pattern
// describes the shape of a value independent of concrete types, and
// evaluating it yields a lazy, finite sequence of matches with named
// captures bound along each satisfying decomposition path.
package matching

import (
	"iter"
	"reflect"

	"github.com/rohankumardubey/hetu-sub001/common"
)

// AnyMatch is the type-erased form of a match, consumed by callers that
// hold heterogeneous patterns (the rule driver).
type AnyMatch struct {
	Value    any
	Captures *Captures
}

// Match is one result of evaluating a Pattern[T].
type Match[T any] struct {
	Value    T
	Captures *Captures
}

// Matcher is the type-erased face of a Pattern. MatchAny yields every
// satisfying decomposition path exactly once; the sequence is finite,
// restartable, and evaluated lazily. Context is opaque to the engine and
// handed through to properties and predicates.
type Matcher interface {
	MatchAny(value any, context any) iter.Seq[AnyMatch]

	// TargetType returns the concrete type the pattern's root matches,
	// letting callers index patterns without evaluating them.
	TargetType() reflect.Type
}

// Pattern describes the shape of a T. Patterns are immutable; every
// combinator returns a new pattern. Evaluation never mutates the value
// being matched.
type Pattern[T any] struct {
	match func(value any, captures *Captures, context any) iter.Seq[AnyMatch]
	// capture keys bound anywhere in this pattern, for duplicate detection
	// at construction time
	captures map[*captureKey]struct{}
}

// TypeOf matches any value of concrete type T.
func TypeOf[T any]() *Pattern[T] {
	return &Pattern[T]{
		match: func(value any, captures *Captures, _ any) iter.Seq[AnyMatch] {
			return func(yield func(AnyMatch) bool) {
				if v, ok := value.(T); ok {
					yield(AnyMatch{Value: v, Captures: captures})
				}
			}
		},
		captures: map[*captureKey]struct{}{},
	}
}

// Matching refines the pattern with a predicate. A predicate failure ends
// that decomposition path; nothing nested is evaluated past it.
func (p *Pattern[T]) Matching(predicate func(value T, context any) bool) *Pattern[T] {
	return &Pattern[T]{
		match: func(value any, captures *Captures, context any) iter.Seq[AnyMatch] {
			return func(yield func(AnyMatch) bool) {
				for m := range p.match(value, captures, context) {
					if !predicate(m.Value.(T), context) {
						continue
					}
					if !yield(m) {
						return
					}
				}
			}
		},
		captures: p.captures,
	}
}

// CapturedAs binds the currently matched value to the capture. Binding the
// same capture twice within one pattern, even across branches, is a fatal
// construction-time error.
func (p *Pattern[T]) CapturedAs(capture *Capture[T]) *Pattern[T] {
	return &Pattern[T]{
		match: func(value any, captures *Captures, context any) iter.Seq[AnyMatch] {
			return func(yield func(AnyMatch) bool) {
				for m := range p.match(value, captures, context) {
					if !yield(AnyMatch{Value: m.Value, Captures: m.Captures.withBinding(capture.key, m.Value)}) {
						return
					}
				}
			}
		},
		captures: addCapture(p.captures, capture.key),
	}
}

// With refines the pattern through a property: for each candidate value the
// property extracts, the sub-pattern must match it. Each (match, candidate,
// sub-match) combination yields one result, carrying the captures of the
// whole path. This is a free function because it introduces the property's
// value type.
func With[T, R, S any](p *Pattern[T], property Property[T, R], sub *Pattern[S]) *Pattern[T] {
	return &Pattern[T]{
		match: func(value any, captures *Captures, context any) iter.Seq[AnyMatch] {
			return func(yield func(AnyMatch) bool) {
				for m := range p.match(value, captures, context) {
					for _, candidate := range property.extract(m.Value.(T), context) {
						for sm := range sub.match(candidate, m.Captures, context) {
							if !yield(AnyMatch{Value: m.Value, Captures: sm.Captures}) {
								return
							}
						}
					}
				}
			}
		},
		captures: mergeCaptures(p.captures, sub.captures),
	}
}

// Match evaluates the pattern, yielding each satisfying decomposition path
// once. Matches are produced lazily; stopping early stops evaluation.
func (p *Pattern[T]) Match(value any, context any) iter.Seq[Match[T]] {
	return func(yield func(Match[T]) bool) {
		for m := range p.match(value, NilCaptures, context) {
			if !yield(Match[T]{Value: m.Value.(T), Captures: m.Captures}) {
				return
			}
		}
	}
}

// Matches reports whether the pattern matches at all.
func (p *Pattern[T]) Matches(value any, context any) bool {
	for range p.Match(value, context) {
		return true
	}
	return false
}

func (p *Pattern[T]) MatchAny(value any, context any) iter.Seq[AnyMatch] {
	return func(yield func(AnyMatch) bool) {
		for m := range p.match(value, NilCaptures, context) {
			if !yield(m) {
				return
			}
		}
	}
}

func (p *Pattern[T]) TargetType() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

func addCapture(set map[*captureKey]struct{}, key *captureKey) map[*captureKey]struct{} {
	if _, dup := set[key]; dup {
		panic(common.NewPlannerError(common.InvariantViolation,
			"capture '%s' is bound more than once in the same pattern", key.name))
	}
	merged := make(map[*captureKey]struct{}, len(set)+1)
	for k := range set {
		merged[k] = struct{}{}
	}
	merged[key] = struct{}{}
	return merged
}

func mergeCaptures(a, b map[*captureKey]struct{}) map[*captureKey]struct{} {
	merged := make(map[*captureKey]struct{}, len(a)+len(b))
	for k := range a {
		merged[k] = struct{}{}
	}
	for k := range b {
		if _, dup := merged[k]; dup {
			panic(common.NewPlannerError(common.InvariantViolation,
				"capture '%s' is bound more than once in the same pattern", k.name))
		}
		merged[k] = struct{}{}
	}
	return merged
}
