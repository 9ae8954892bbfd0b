package join

import (
	_c "context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"hermes"
)

type rec struct {
	k string
	v string
}

//memSource is an in memory sorted source over string keys.
type memSource struct {
	id     int
	recs   []rec
	pos    int
	blank  hermes.Value
	closed int
}

func newMemSource(id int, recs ...rec) *memSource {
	return &memSource{id: id, recs: recs, blank: hermes.String("")}
}

func (m *memSource) ID() int { return m.id }

func (m *memSource) Key() hermes.Key {
	if m.pos >= len(m.recs) {
		return nil
	}
	return m.recs[m.pos].k
}

func (m *memSource) HasNext() bool { return m.pos < len(m.recs) }

func (m *memSource) Accept(ctx _c.Context, c hermes.Collector, key hermes.Key) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for m.pos < len(m.recs) && m.recs[m.pos].k == key.(string) {
		if err := c.Collect(m.id, hermes.String(m.recs[m.pos].v)); err != nil {
			return err
		}
		m.pos++
	}
	return nil
}

func (m *memSource) Skip(ctx _c.Context, key hermes.Key) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for m.pos < len(m.recs) && m.recs[m.pos].k <= key.(string) {
		m.pos++
	}
	return nil
}

func (m *memSource) BlankValue() hermes.Value { return m.blank }

func (m *memSource) Close() error {
	m.closed++
	return nil
}

//blockSource blocks inside Accept until its ctx is done, standing in for
//a source stuck on io.
type blockSource struct {
	memSource
	blockAt string
}

func (b *blockSource) Accept(ctx _c.Context, c hermes.Collector, key hermes.Key) error {
	if key.(string) == b.blockAt {
		<-ctx.Done()
		return ctx.Err()
	}
	return b.memSource.Accept(ctx, c, key)
}

func ctxBg() _c.Context { return _c.Background() }

func drain(t *testing.T, e *Engine) []string {
	t.Helper()
	var out []string
	for e.HasNext() {
		require.NoError(t, e.Next(_c.Background()))
		out = append(out, fmt.Sprintf("%v\t%s", e.CurrentKey(), e.CurrentValue()))
	}
	return out
}
