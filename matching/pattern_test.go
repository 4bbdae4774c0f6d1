package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test shapes: a tiny tree of boxes so the engine is exercised without any
// dependency on the plan model.
type box struct {
	label    string
	size     int
	contents []*box
}

func contents() Property[*box, *box] {
	return NewMultiProperty("contents", func(b *box, _ any) []*box {
		return b.contents
	})
}

func firstContent() Property[*box, *box] {
	return NewProperty("firstContent", func(b *box, _ any) (*box, bool) {
		if len(b.contents) == 0 {
			return nil, false
		}
		return b.contents[0], true
	})
}

func collect[T any](t *testing.T, p *Pattern[T], value any) []Match[T] {
	t.Helper()
	var out []Match[T]
	for m := range p.Match(value, nil) {
		out = append(out, m)
	}
	return out
}

func TestTypeOf(t *testing.T) {
	p := TypeOf[*box]()

	matches := collect(t, p, &box{label: "a"})
	require.Len(t, matches, 1)
	assert.Equal(t, "a", matches[0].Value.label)

	assert.Empty(t, collect(t, p, "not a box"), "mismatched type must not match")
	assert.Empty(t, collect(t, p, nil))
}

func TestPredicateFiltersAndShortCircuits(t *testing.T) {
	nestedCalls := 0
	counting := NewProperty("counting", func(b *box, _ any) (*box, bool) {
		nestedCalls++
		return b, true
	})

	p := With(
		TypeOf[*box]().Matching(func(b *box, _ any) bool { return b.size > 10 }),
		counting,
		TypeOf[*box](),
	)

	assert.Empty(t, collect(t, p, &box{size: 5}))
	assert.Equal(t, 0, nestedCalls, "predicate failure must not evaluate nested matching")

	assert.Len(t, collect(t, p, &box{size: 20}), 1)
	assert.Equal(t, 1, nestedCalls)
}

func TestCapturedValues(t *testing.T) {
	inner := NewCapture[*box]("inner")
	outer := NewCapture[*box]("outer")

	p := With(
		TypeOf[*box]().CapturedAs(outer),
		firstContent(),
		TypeOf[*box]().CapturedAs(inner),
	)

	child := &box{label: "child"}
	parent := &box{label: "parent", contents: []*box{child}}

	matches := collect(t, p, parent)
	require.Len(t, matches, 1)
	assert.Same(t, parent, matches[0].Value)
	assert.Same(t, parent, CaptureValue(matches[0].Captures, outer))
	assert.Same(t, child, CaptureValue(matches[0].Captures, inner))
}

func TestAmbiguousPropertyYieldsOneMatchPerPath(t *testing.T) {
	item := matchCapture(t)

	p := With(
		TypeOf[*box](),
		contents(),
		TypeOf[*box]().CapturedAs(item),
	)

	a := &box{label: "a"}
	b := &box{label: "b"}
	parent := &box{contents: []*box{a, b}}

	matches := collect(t, p, parent)
	require.Len(t, matches, 2, "each satisfying decomposition path yields once")
	// Sibling paths must not observe each other's bindings.
	assert.Same(t, a, CaptureValue(matches[0].Captures, item))
	assert.Same(t, b, CaptureValue(matches[1].Captures, item))
}

func matchCapture(t *testing.T) *Capture[*box] {
	t.Helper()
	return NewCapture[*box]("item")
}

func TestLazyEvaluation(t *testing.T) {
	extractions := 0
	counting := NewMultiProperty("counting", func(b *box, _ any) []*box {
		extractions++
		return b.contents
	})

	p := With(TypeOf[*box](), counting, TypeOf[*box]())
	parent := &box{contents: []*box{{label: "a"}, {label: "b"}}}

	for range p.Match(parent, nil) {
		break // consume only the first match
	}
	assert.Equal(t, 1, extractions, "stopping early must stop evaluation")
}

func TestMatchesIsRestartable(t *testing.T) {
	p := TypeOf[*box]()
	b := &box{}
	assert.True(t, p.Matches(b, nil))
	assert.True(t, p.Matches(b, nil), "evaluating again from scratch must succeed")
}

func TestDuplicateCaptureWithinChain(t *testing.T) {
	c := NewCapture[*box]("dup")
	require.Panics(t, func() {
		TypeOf[*box]().CapturedAs(c).CapturedAs(c)
	}, "binding the same capture twice must fail at construction")
}

func TestDuplicateCaptureAcrossBranches(t *testing.T) {
	c := NewCapture[*box]("dup")
	require.Panics(t, func() {
		With(
			TypeOf[*box]().CapturedAs(c),
			firstContent(),
			TypeOf[*box]().CapturedAs(c),
		)
	}, "binding the same capture in a sub-pattern must fail at construction")
}

func TestDistinctCapturesWithSameNameAreDistinctSlots(t *testing.T) {
	p := With(
		TypeOf[*box]().CapturedAs(NewCapture[*box]("x")),
		firstContent(),
		TypeOf[*box]().CapturedAs(NewCapture[*box]("x")),
	)
	parent := &box{contents: []*box{{}}}
	assert.True(t, p.Matches(parent, nil), "capture identity is the token, not the name")
}

func TestUnboundCapturePanics(t *testing.T) {
	bound := NewCapture[*box]("bound")
	unbound := NewCapture[*box]("unbound")

	matches := collect(t, TypeOf[*box]().CapturedAs(bound), &box{})
	require.Len(t, matches, 1)
	require.Panics(t, func() {
		CaptureValue(matches[0].Captures, unbound)
	})
}

func TestEvaluationDoesNotMutateInput(t *testing.T) {
	child := &box{label: "child"}
	parent := &box{label: "parent", size: 3, contents: []*box{child}}

	p := With(TypeOf[*box](), contents(), TypeOf[*box]().CapturedAs(matchCapture(t)))
	for range p.Match(parent, nil) {
	}

	assert.Equal(t, "parent", parent.label)
	assert.Equal(t, 3, parent.size)
	require.Len(t, parent.contents, 1)
	assert.Same(t, child, parent.contents[0])
}
