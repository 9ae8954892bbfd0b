package join

import (
	"github.com/pkg/errors"

	"hermes"
)

//collector accumulates, for the current key group, the values each
//participating source contributed, one slot per source ordinal. Between
//groups it replays the accumulated slots as a lazily enumerated cross
//product of Tuples: source ordinal ascending, within source arrival order,
//so repeated runs over identical input emit identical sequences.
type collector struct {
	ords  map[int]int //source id -> tuple ordinal
	slots [][]hermes.Value

	idx     []int
	started bool
	done    bool
}

func newCollector(ids []int) (*collector, error) {
	ords := make(map[int]int, len(ids))
	for ord, id := range ids {
		if _, ok := ords[id]; ok {
			return nil, errors.WithMessage(ErrDuplicateID, "collector")
		}
		ords[id] = ord
	}
	return &collector{
		ords:  ords,
		slots: make([][]hermes.Value, len(ids)),
		idx:   make([]int, len(ids)),
	}, nil
}

func (c *collector) Collect(id int, v hermes.Value) error {
	ord, ok := c.ords[id]
	if !ok {
		return errors.Errorf("collect: unknown source id %d", id)
	}
	c.slots[ord] = append(c.slots[ord], v)
	return nil
}

//reset discards the current group, accumulation starts over.
func (c *collector) reset() {
	for i := range c.slots {
		c.slots[i] = c.slots[i][:0]
	}
	c.started = false
	c.done = false
}

//next returns the next Tuple of the cross product, nil once drained.
//Absent slots stay absent in every emitted tuple. The counter treats the
//lowest ordinal as most significant, which yields the documented order.
func (c *collector) next() *Tuple {
	if c.done {
		return nil
	}
	if !c.started {
		empty := true
		for i := range c.slots {
			c.idx[i] = 0
			if len(c.slots[i]) > 0 {
				empty = false
			}
		}
		if empty {
			c.done = true
			return nil
		}
		c.started = true
	} else if !c.advance() {
		c.done = true
		return nil
	}
	t := NewTuple(len(c.slots))
	for i, slot := range c.slots {
		if len(slot) > 0 {
			t.Set(i, slot[c.idx[i]])
		}
	}
	return t
}

func (c *collector) advance() bool {
	for i := len(c.slots) - 1; i >= 0; i-- {
		if len(c.slots[i]) == 0 {
			continue
		}
		c.idx[i]++
		if c.idx[i] < len(c.slots[i]) {
			return true
		}
		c.idx[i] = 0
	}
	return false
}
