package join

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hermes"
)

func TestSchedulerGroupFormation(t *testing.T) {
	a := newMemSource(2, rec{"1", "a1"}, rec{"3", "a3"})
	b := newMemSource(1, rec{"1", "b1"}, rec{"2", "b2"})
	c := newMemSource(3)

	s := newScheduler(hermes.StringComparator, []hermes.Source{a, b, c})

	group, key, ok := s.nextGroup()
	require.True(t, ok)
	assert.Equal(t, "1", key)
	require.Len(t, group, 2)
	//id ascending tie break
	assert.Equal(t, 1, group[0].ID())
	assert.Equal(t, 2, group[1].ID())

	//members are out of the heap until pushed back
	assert.True(t, s.empty())
}

func TestSchedulerRequeue(t *testing.T) {
	a := newMemSource(1, rec{"1", "a1"}, rec{"2", "a2"})
	s := newScheduler(hermes.StringComparator, []hermes.Source{a})

	group, key, ok := s.nextGroup()
	require.True(t, ok)
	require.NoError(t, group[0].Skip(ctxBg(), key))
	s.push(group[0])

	group, key, ok = s.nextGroup()
	require.True(t, ok)
	assert.Equal(t, "2", key)

	require.NoError(t, group[0].Skip(ctxBg(), key))
	s.push(group[0]) //exhausted, must not re queue

	_, _, ok = s.nextGroup()
	assert.False(t, ok)
}
