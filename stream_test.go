package hermes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringComparator(t *testing.T) {
	assert.Less(t, StringComparator.Compare("a", "b"), 0)
	assert.Zero(t, StringComparator.Compare("a", "a"))
	assert.Greater(t, StringComparator.Compare("b", "a"), 0)
}

func TestIntComparator(t *testing.T) {
	//numeric order, not lexicographic
	assert.Less(t, IntComparator.Compare(int64(9), int64(10)), 0)
	assert.Zero(t, IntComparator.Compare(int64(7), int64(7)))
	assert.Greater(t, IntComparator.Compare(int64(10), int64(9)), 0)
}

func TestComparatorFor(t *testing.T) {
	for _, name := range []string{"", "string", "int"} {
		_, ok := ComparatorFor(name)
		assert.True(t, ok, name)
	}
	_, ok := ComparatorFor("uuid")
	assert.False(t, ok)
}

func TestValueTypes(t *testing.T) {
	assert.Equal(t, NullType, Null.Type())
	assert.Equal(t, "", Null.String())
	assert.Equal(t, StringType, String("x").Type())
	assert.Equal(t, "x", String("x").String())
	assert.Equal(t, BytesType, Bytes("y").Type())
	assert.Equal(t, "y", Bytes("y").String())
}
