package join

import (
	_c "context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hermes"
)

func TestInnerDropsIncompleteKeys(t *testing.T) {
	a := newMemSource(0, rec{"1", "a1"}, rec{"2", "a2"})
	b := newMemSource(1, rec{"1", "b1"}, rec{"3", "b3"})

	e, err := NewEngine(ctxBg(), 0, hermes.StringComparator, Inner, a, b)
	require.NoError(t, err)
	defer e.Close()

	assert.Equal(t, []string{"1\t[a1,b1]"}, drain(t, e))
}

func TestOuterKeepsAbsentSlots(t *testing.T) {
	a := newMemSource(0, rec{"1", "a1"}, rec{"2", "a2"})
	b := newMemSource(1, rec{"1", "b1"}, rec{"3", "b3"})

	e, err := NewEngine(ctxBg(), 0, hermes.StringComparator, Outer, a, b)
	require.NoError(t, err)
	defer e.Close()

	assert.Equal(t, []string{
		"1\t[a1,b1]",
		"2\t[a2,]",
		"3\t[,b3]",
	}, drain(t, e))
}

func TestInnerCrossProduct(t *testing.T) {
	a := newMemSource(0, rec{"1", "a1"}, rec{"1", "a2"})
	b := newMemSource(1, rec{"1", "b1"}, rec{"1", "b2"})

	e, err := NewEngine(ctxBg(), 0, hermes.StringComparator, Inner, a, b)
	require.NoError(t, err)
	defer e.Close()

	assert.Equal(t, []string{
		"1\t[a1,b1]",
		"1\t[a1,b2]",
		"1\t[a2,b1]",
		"1\t[a2,b2]",
	}, drain(t, e))
}

func TestOutputKeysStrictlyIncrease(t *testing.T) {
	a := newMemSource(0, rec{"1", "a"}, rec{"3", "a"}, rec{"5", "a"})
	b := newMemSource(1, rec{"2", "b"}, rec{"3", "b"}, rec{"4", "b"})

	e, err := NewEngine(ctxBg(), 0, hermes.StringComparator, Outer, a, b)
	require.NoError(t, err)
	defer e.Close()

	prev := ""
	for e.HasNext() {
		require.NoError(t, e.Next(ctxBg()))
		key := e.CurrentKey().(string)
		assert.Greater(t, key, prev)
		prev = key
	}
}

func TestDeterministicReplay(t *testing.T) {
	build := func() *Engine {
		a := newMemSource(0, rec{"1", "a1"}, rec{"1", "a2"}, rec{"2", "a3"})
		b := newMemSource(1, rec{"1", "b1"}, rec{"1", "b2"})
		e, err := NewEngine(ctxBg(), 0, hermes.StringComparator, Outer, a, b)
		require.NoError(t, err)
		return e
	}
	first := build()
	defer first.Close()
	second := build()
	defer second.Close()
	assert.Equal(t,
		strings.Join(drain(t, first), "\n"),
		strings.Join(drain(t, second), "\n"))
}

//override(a,override(b,c)) and override(a,b,c) agree: both prefer c, then
//b, then a for every key.
func TestRecursiveComposition(t *testing.T) {
	recsA := []rec{{"1", "a1"}, {"2", "a2"}, {"4", "a4"}}
	recsB := []rec{{"1", "b1"}, {"3", "b3"}}
	recsC := []rec{{"1", "c1"}, {"4", "c4"}}

	inner, err := NewEngine(ctxBg(), 1, hermes.StringComparator, Override,
		newMemSource(0, recsB...), newMemSource(1, recsC...))
	require.NoError(t, err)
	nested, err := NewEngine(ctxBg(), 0, hermes.StringComparator, Override,
		newMemSource(0, recsA...), inner)
	require.NoError(t, err)
	defer nested.Close()

	flat, err := NewEngine(ctxBg(), 0, hermes.StringComparator, Override,
		newMemSource(0, recsA...), newMemSource(1, recsB...), newMemSource(2, recsC...))
	require.NoError(t, err)
	defer flat.Close()

	assert.Equal(t, drain(t, flat), drain(t, nested))
}

func TestNextAfterExhaustedIsAnError(t *testing.T) {
	a := newMemSource(0, rec{"1", "a1"})
	e, err := NewEngine(ctxBg(), 0, hermes.StringComparator, Override, a)
	require.NoError(t, err)
	defer e.Close()

	drain(t, e)
	assert.ErrorIs(t, e.Next(ctxBg()), ErrExhausted)
}

func TestCancelledContextAborts(t *testing.T) {
	a := newMemSource(0, rec{"1", "a1"}, rec{"2", "a2"})
	e, err := NewEngine(ctxBg(), 0, hermes.StringComparator, Override, a)
	require.NoError(t, err)
	defer e.Close()

	ctx, cancel := _c.WithCancel(_c.Background())
	cancel()
	assert.ErrorIs(t, e.Next(ctx), _c.Canceled)
}

func TestBlockedSourceObservesCancellation(t *testing.T) {
	b := &blockSource{
		memSource: *newMemSource(0, rec{"1", "b1"}, rec{"2", "b2"}),
		blockAt:   "2",
	}
	e, err := NewEngine(ctxBg(), 0, hermes.StringComparator, Override, b)
	require.NoError(t, err)
	defer e.Close()

	ctx, cancel := _c.WithCancel(_c.Background())
	done := make(chan error, 1)
	go func() {
		//consumes key 1, then blocks forming the group for key 2
		done <- e.Next(ctx)
	}()
	cancel()
	assert.ErrorIs(t, <-done, _c.Canceled)
}

func TestCloseClosesEveryKidOnce(t *testing.T) {
	a := newMemSource(0, rec{"1", "a1"})
	b := newMemSource(1, rec{"1", "b1"})
	e, err := NewEngine(ctxBg(), 0, hermes.StringComparator, Inner, a, b)
	require.NoError(t, err)

	require.NoError(t, e.Close())
	require.NoError(t, e.Close())
	assert.Equal(t, 1, a.closed)
	assert.Equal(t, 1, b.closed)
}

func TestInnerOuterBlankIsTuple(t *testing.T) {
	a := newMemSource(0, rec{"1", "a1"})
	b := newMemSource(1, rec{"1", "b1"})
	e, err := NewEngine(ctxBg(), 0, hermes.StringComparator, Outer, a, b)
	require.NoError(t, err)
	defer e.Close()

	blank := e.BlankValue()
	assert.Equal(t, hermes.TupleType, blank.Type())
	assert.Equal(t, 2, blank.(*Tuple).Size())
}

func TestNewEngineValidation(t *testing.T) {
	_, err := NewEngine(ctxBg(), 0, hermes.StringComparator, Override)
	assert.ErrorIs(t, err, ErrNoSources)

	a := newMemSource(1, rec{"1", "a1"})
	b := newMemSource(1, rec{"1", "b1"})
	_, err = NewEngine(ctxBg(), 0, hermes.StringComparator, Override, a, b)
	assert.ErrorIs(t, err, ErrDuplicateID)
	//kids are released on a construction failure
	assert.Equal(t, 1, a.closed)
	assert.Equal(t, 1, b.closed)

	_, err = NewEngine(ctxBg(), 0, hermes.StringComparator, "cross", newMemSource(0))
	assert.ErrorIs(t, err, ErrUnknownPolicy)
}
