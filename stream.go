package hermes

import (
	_c "context"
	"strings"

	"github.com/spf13/cast"
)

//Key is an opaque join key, the engine never looks inside it. Ordering
//comes from the Comparator the engine was constructed with.
type Key = interface{}

//Comparator is a total order over keys.
type Comparator interface {
	Compare(a, b Key) int
}

//ComparatorFunc adapts a compare function to Comparator.
type ComparatorFunc func(a, b Key) int

func (f ComparatorFunc) Compare(a, b Key) int {
	return f(a, b)
}

var (
	//StringComparator orders string keys bytewise.
	StringComparator Comparator = ComparatorFunc(func(a, b Key) int {
		return strings.Compare(cast.ToString(a), cast.ToString(b))
	})
	//IntComparator orders int64 keys numerically.
	IntComparator Comparator = ComparatorFunc(func(a, b Key) int {
		x, y := cast.ToInt64(a), cast.ToInt64(b)
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		default:
			return 0
		}
	})
)

//ComparatorFor returns the named comparator, string is the default.
func ComparatorFor(keyType string) (Comparator, bool) {
	switch keyType {
	case "", "string":
		return StringComparator, true
	case "int":
		return IntComparator, true
	default:
		return nil, false
	}
}

//Collector receives the values one source materializes for a key.
type Collector interface {
	Collect(id int, v Value) error
}

//Source is one key sorted input stream. Keys must be monotonically non
//decreasing under the engine's comparator, that is a caller obligation and
//is never verified here. A freshly opened source is already positioned at
//its first record, a source with no records opens exhausted.
//
//A source is owned by exactly one engine instance and is advanced only by
//it. Accept and Skip may block on underlying io and must return the ctx
//error promptly once ctx is done.
type Source interface {
	//ID is the caller assigned priority rank, larger means more preferred.
	ID() int
	//Key returns the current unconsumed key, nil once exhausted.
	Key() Key
	//HasNext reports whether an unconsumed record remains.
	HasNext() bool
	//Accept materializes every value held under key into c and advances
	//past them. A source may hold several values under one key.
	Accept(ctx _c.Context, c Collector, key Key) error
	//Skip advances strictly past key without materializing any value.
	Skip(ctx _c.Context, key Key) error
	//BlankValue returns a template value carrying the source's declared
	//value type, constructed before any data is read.
	BlankValue() Value
	//Close releases the source, exactly once per stream.
	Close() error
}
