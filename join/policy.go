package join

import (
	_c "context"

	"github.com/pkg/errors"

	"hermes"
)

//Composition policy names accepted by NewEngine and by expressions.
const (
	Inner    = "inner"
	Outer    = "outer"
	Override = "override"
)

//Policy is the composition strategy, chosen once at construction and
//stateless across keys. fill consumes or skips every group member and re
//queues the survivors, emit turns one tuple of the collector's replay into
//the engine's output value, false drops the tuple. resolveBlank is called
//once per engine lifetime and returns the on demand blank template
//constructor for the engine's declared output type.
type Policy interface {
	fill(ctx _c.Context, sched *scheduler, group []hermes.Source, key hermes.Key, jc *collector) error
	emit(t *Tuple) (hermes.Value, bool)
	resolveBlank(kids []hermes.Source) func() hermes.Value
}

var ErrUnknownPolicy = errors.New("join: unknown composition policy")

func policyFor(kind string) (Policy, error) {
	switch kind {
	case Inner:
		return innerPolicy{}, nil
	case Outer:
		return outerPolicy{}, nil
	case Override:
		return overridePolicy{}, nil
	default:
		return nil, errors.WithMessage(ErrUnknownPolicy, kind)
	}
}
