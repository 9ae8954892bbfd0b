package join

import (
	_c "context"
	"sort"

	"hermes"
)

//overridePolicy prefers the group member with the greatest id. Only that
//member's values are materialized, every other member is skipped strictly
//past the group key, so a discarded group never instantiates the cross
//product of its sources, the step costs O(group size).
type overridePolicy struct{}

func (overridePolicy) fill(ctx _c.Context, sched *scheduler, group []hermes.Source, key hermes.Key, jc *collector) error {
	high := 0
	for i, src := range group {
		//last write wins on equal ids
		if src.ID() >= group[high].ID() {
			high = i
		}
	}
	if err := group[high].Accept(ctx, jc, key); err != nil {
		return err
	}
	for i, src := range group {
		if i == high {
			continue
		}
		if err := src.Skip(ctx, key); err != nil {
			return err
		}
	}
	for _, src := range group {
		sched.push(src)
	}
	return nil
}

//emit returns the single populated slot's value. By construction exactly
//one slot is ever populated, a tuple violating that is an upstream
//collector bug and is not checked here.
func (overridePolicy) emit(t *Tuple) (hermes.Value, bool) {
	return t.First(), true
}

//resolveBlank scans the sources from most preferred to least, skipping
//every source that declares the null marker, and adopts the first concrete
//declaration. The scan is clamped to the valid range, all null marker
//sources resolve to the null marker itself. The winning source constructs
//blank templates on demand for the rest of the engine's lifetime.
func (overridePolicy) resolveBlank(kids []hermes.Source) func() hermes.Value {
	byID := make([]hermes.Source, len(kids))
	copy(byID, kids)
	sort.SliceStable(byID, func(i, j int) bool {
		return byID[i].ID() > byID[j].ID()
	})
	for _, kid := range byID {
		if kid.BlankValue().Type() != hermes.NullType {
			kid := kid
			return kid.BlankValue
		}
	}
	return func() hermes.Value { return hermes.Null }
}
