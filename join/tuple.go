package join

import (
	"strings"

	"hermes"
)

//Tuple is a fixed arity positional container, one slot per configured
//source ordinal. Slots start absent and become present when written.
//A Tuple is itself a hermes.Value, so inner and outer join output can feed
//a sink or an enclosing join unchanged.
type Tuple struct {
	values  []hermes.Value
	written []bool
}

func NewTuple(size int) *Tuple {
	return &Tuple{
		values:  make([]hermes.Value, size),
		written: make([]bool, size),
	}
}

//Size is the configured arity, not the populated slot count.
func (t *Tuple) Size() int {
	return len(t.values)
}

func (t *Tuple) Has(i int) bool {
	return t.written[i]
}

func (t *Tuple) Get(i int) hermes.Value {
	return t.values[i]
}

func (t *Tuple) Set(i int, v hermes.Value) {
	t.values[i] = v
	t.written[i] = true
}

//Each visits the populated slots in ordinal order.
func (t *Tuple) Each(fn func(i int, v hermes.Value)) {
	for i, ok := range t.written {
		if ok {
			fn(i, t.values[i])
		}
	}
}

//First returns the value of the lowest populated slot, hermes.Null when
//every slot is absent.
func (t *Tuple) First() hermes.Value {
	for i, ok := range t.written {
		if ok {
			return t.values[i]
		}
	}
	return hermes.Null
}

func (t *Tuple) Type() hermes.Type {
	return hermes.TupleType
}

func (t *Tuple) String() string {
	parts := make([]string, len(t.values))
	for i, ok := range t.written {
		if ok {
			parts[i] = t.values[i].String()
		}
	}
	return "[" + strings.Join(parts, ",") + "]"
}
