package join

import (
	_c "context"

	"hermes"
)

//multiPolicy is the shared group handling of inner and outer joins, every
//member contributes its values for the key, survivors are re queued.
type multiPolicy struct{}

func (multiPolicy) fill(ctx _c.Context, sched *scheduler, group []hermes.Source, key hermes.Key, jc *collector) error {
	for _, src := range group {
		if err := src.Accept(ctx, jc, key); err != nil {
			return err
		}
	}
	for _, src := range group {
		sched.push(src)
	}
	return nil
}

//resolveBlank of a composed join declares a blank tuple over the kids.
func (multiPolicy) resolveBlank(kids []hermes.Source) func() hermes.Value {
	size := len(kids)
	return func() hermes.Value { return NewTuple(size) }
}

//innerPolicy drops a key entirely when any configured source did not
//contribute, so every emitted tuple is fully populated.
type innerPolicy struct{ multiPolicy }

func (innerPolicy) emit(t *Tuple) (hermes.Value, bool) {
	for i := 0; i < t.Size(); i++ {
		if !t.Has(i) {
			return nil, false
		}
	}
	return t, true
}

//outerPolicy always emits, missing sources stay absent in the tuple.
type outerPolicy struct{ multiPolicy }

func (outerPolicy) emit(t *Tuple) (hermes.Value, bool) {
	return t, true
}
