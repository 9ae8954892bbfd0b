package join

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hermes"
)

//The reference override scenario: values of the less preferred source
//never surface for a key the preferred one also carries, and every value
//the preferred source holds under that key is emitted.
func TestOverridePrefersHighestID(t *testing.T) {
	a := newMemSource(1, rec{"1", "a1"}, rec{"2", "a2"})
	b := newMemSource(2, rec{"1", "b1"}, rec{"1", "b1x"}, rec{"3", "b3"})

	e, err := NewEngine(ctxBg(), 0, hermes.StringComparator, Override, a, b)
	require.NoError(t, err)
	defer e.Close()

	assert.Equal(t, []string{
		"1\tb1",
		"1\tb1x",
		"2\ta2",
		"3\tb3",
	}, drain(t, e))
}

func TestOverrideSkipAdvancesPastGroupKey(t *testing.T) {
	a := newMemSource(1, rec{"1", "a1"}, rec{"1", "a1x"}, rec{"2", "a2"})
	b := newMemSource(2, rec{"1", "b1"})

	e, err := NewEngine(ctxBg(), 0, hermes.StringComparator, Override, a, b)
	require.NoError(t, err)
	defer e.Close()

	out := drain(t, e)
	//a1 and a1x were skipped without surfacing, a resumes at key 2
	assert.Equal(t, []string{"1\tb1", "2\ta2"}, out)
}

func TestOverrideEmptySourceTerminates(t *testing.T) {
	a := newMemSource(1, rec{"1", "a1"})
	b := newMemSource(2)

	e, err := NewEngine(ctxBg(), 0, hermes.StringComparator, Override, a, b)
	require.NoError(t, err)
	defer e.Close()

	assert.Equal(t, []string{"1\ta1"}, drain(t, e))
	assert.False(t, e.HasNext())
}

func TestOverrideEmitCountMatchesPreferred(t *testing.T) {
	//the preferred source holds three values under the key, the discarded
	//ones hold two each, the emit count must be three, not a cross product
	a := newMemSource(1, rec{"k", "a1"}, rec{"k", "a2"})
	b := newMemSource(2, rec{"k", "b1"}, rec{"k", "b2"})
	c := newMemSource(3, rec{"k", "c1"}, rec{"k", "c2"}, rec{"k", "c3"})

	e, err := NewEngine(ctxBg(), 0, hermes.StringComparator, Override, a, b, c)
	require.NoError(t, err)
	defer e.Close()

	assert.Equal(t, []string{"k\tc1", "k\tc2", "k\tc3"}, drain(t, e))
}

func TestOverrideBlankValueResolution(t *testing.T) {
	a := newMemSource(1)
	a.blank = hermes.String("")
	b := newMemSource(2)
	b.blank = hermes.Null
	c := newMemSource(3)
	c.blank = hermes.Null

	e, err := NewEngine(ctxBg(), 0, hermes.StringComparator, Override, c, a, b)
	require.NoError(t, err)
	defer e.Close()
	//ids 3 and 2 declare the null marker, the scan falls through to id 1's
	//concrete declaration regardless of slice order
	assert.Equal(t, hermes.StringType, e.BlankValue().Type())
}

func TestOverrideBlankValueAllNull(t *testing.T) {
	a := newMemSource(1)
	a.blank = hermes.Null
	b := newMemSource(2)
	b.blank = hermes.Null

	e, err := NewEngine(ctxBg(), 0, hermes.StringComparator, Override, a, b)
	require.NoError(t, err)
	defer e.Close()
	//all null marker resolves to the null marker itself, without error
	assert.Equal(t, hermes.NullType, e.BlankValue().Type())
}
