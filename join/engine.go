package join

import (
	_c "context"

	"github.com/pkg/errors"

	"hermes"
)

var (
	//ErrExhausted is returned by Next once the engine has no more groups,
	//advancing an exhausted engine is a contract violation.
	ErrExhausted   = errors.New("join: engine exhausted")
	ErrNoSources   = errors.New("join: engine needs at least one source")
	ErrDuplicateID = errors.New("join: duplicate source id")
)

type state uint8

const (
	stNew state = iota
	stReady
	stConsuming
	stExhausted
)

//Engine is the externally visible join. It composes the scheduler, the
//chosen composition policy and the value type resolution protocol, and it
//implements hermes.Source itself so a join's output can serve as a child
//of an enclosing join.
//
//An engine instance is driven by exactly one goroutine. It buffers one
//joined record of lookahead, Key and HasNext observe the lookahead, Next
//consumes it into CurrentKey and CurrentValue. Group keys strictly
//increase across the engine's lifetime as long as every kid honors its
//sortedness precondition.
type Engine struct {
	id     int
	cmp    hermes.Comparator
	kids   []hermes.Source
	policy Policy
	sched  *scheduler
	jc     *collector

	st       state
	groupKey hermes.Key
	headKey  hermes.Key
	headVal  hermes.Value
	curKey   hermes.Key
	curVal   hermes.Value

	blank  func() hermes.Value
	closed bool
}

//NewEngine assembles a join over the given kids, which must already be
//positioned at their first record. The engine takes ownership of the kids
//and closes them at teardown, on a construction error they are closed
//before returning. kind is one of Inner, Outer, Override. The kid slice
//order fixes the tuple ordinal of each source, ids only rank preference
//and need not be contiguous.
func NewEngine(ctx _c.Context, id int, cmp hermes.Comparator, kind string, kids ...hermes.Source) (*Engine, error) {
	e := &Engine{id: id, cmp: cmp, kids: kids}
	if len(kids) == 0 {
		return nil, ErrNoSources
	}
	policy, err := policyFor(kind)
	if err != nil {
		e.Close()
		return nil, err
	}
	ids := make([]int, len(kids))
	for i, kid := range kids {
		ids[i] = kid.ID()
	}
	jc, err := newCollector(ids)
	if err != nil {
		e.Close()
		return nil, err
	}
	e.policy = policy
	e.jc = jc
	e.sched = newScheduler(cmp, kids)
	if err := e.advance(ctx); err != nil {
		e.Close()
		return nil, err
	}
	return e, nil
}

//advance computes the next lookahead record, draining the collector's
//replay first and forming the next key group once it runs dry. Tuples the
//policy refuses are dropped and the loop continues.
func (e *Engine) advance(ctx _c.Context) error {
	e.st = stConsuming
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if t := e.jc.next(); t != nil {
			if v, ok := e.policy.emit(t); ok {
				e.headKey, e.headVal = e.groupKey, v
				e.st = stReady
				return nil
			}
			continue
		}
		e.jc.reset()
		group, key, ok := e.sched.nextGroup()
		if !ok {
			e.headKey, e.headVal = nil, nil
			e.st = stExhausted
			return nil
		}
		e.groupKey = key
		if err := e.policy.fill(ctx, e.sched, group, key, e.jc); err != nil {
			return err
		}
	}
}

//Next consumes the lookahead into CurrentKey and CurrentValue and buffers
//the record after it. Any returned error aborts the engine instance,
//there is no partial group recovery, the caller still must Close.
func (e *Engine) Next(ctx _c.Context) error {
	if e.st == stExhausted {
		return ErrExhausted
	}
	e.curKey, e.curVal = e.headKey, e.headVal
	return e.advance(ctx)
}

func (e *Engine) CurrentKey() hermes.Key {
	return e.curKey
}

func (e *Engine) CurrentValue() hermes.Value {
	return e.curVal
}

func (e *Engine) ID() int {
	return e.id
}

//Key is the lookahead key, nil once exhausted.
func (e *Engine) Key() hermes.Key {
	return e.headKey
}

func (e *Engine) HasNext() bool {
	return e.st == stReady
}

//Accept materializes every joined value under key into c, the engine acts
//as an ordinary source of an enclosing join here.
func (e *Engine) Accept(ctx _c.Context, c hermes.Collector, key hermes.Key) error {
	for e.st == stReady && e.cmp.Compare(e.headKey, key) == 0 {
		if err := c.Collect(e.id, e.headVal); err != nil {
			return err
		}
		if err := e.advance(ctx); err != nil {
			return err
		}
	}
	return nil
}

//Skip advances strictly past key without handing any value upward.
func (e *Engine) Skip(ctx _c.Context, key hermes.Key) error {
	for e.st == stReady && e.cmp.Compare(e.headKey, key) <= 0 {
		if err := e.advance(ctx); err != nil {
			return err
		}
	}
	return nil
}

//BlankValue resolves the engine's declared output type on first use and
//caches the resolution for the engine's whole lifetime.
func (e *Engine) BlankValue() hermes.Value {
	if e.blank == nil {
		e.blank = e.policy.resolveBlank(e.kids)
	}
	return e.blank()
}

//Close closes every kid exactly once. All kids are attempted, the first
//error wins.
func (e *Engine) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	var first error
	for _, kid := range e.kids {
		if err := kid.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
