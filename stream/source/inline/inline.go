package inline

import (
	_c "context"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cast"

	"hermes"
	"hermes/properties"
)

var (
	RecordsProperty = properties.NewRequiredProperty[[]string]("records", "sorted key<TAB>value records")
	KeyTypeProperty = properties.NewProperty[string]("key-type", "string or int", "string")
)

//provider serves records listed directly in the job properties, a single
//partition, mostly for fixtures and smoke jobs.
type provider struct {
	cmp  hermes.Comparator
	recs [][2]string
}

func (p *provider) Open(ctx hermes.Context) error {
	keyType := ctx.Properties().GetString(KeyTypeProperty.Name())
	cmp, ok := hermes.ComparatorFor(keyType)
	if !ok {
		return errors.Errorf("unknown key-type %s", keyType)
	}
	p.cmp = cmp
	for _, line := range ctx.Properties().GetStringSlice(RecordsProperty.Name()) {
		k, v, _ := strings.Cut(line, "\t")
		if keyType == "int" {
			if _, err := cast.ToInt64E(k); err != nil {
				return errors.WithMessage(err, "parse key")
			}
		}
		p.recs = append(p.recs, [2]string{k, v})
	}
	return nil
}

func (p *provider) Close() error {
	return nil
}

func (p *provider) PropertyDef() hermes.PropertyDef {
	return hermes.PropertyDef{RecordsProperty, KeyTypeProperty}
}

func (p *provider) Partitions() int {
	return 1
}

func (p *provider) Stream(ctx _c.Context, partition, id int) (hermes.Source, error) {
	if partition != 0 {
		return nil, errors.Errorf("inline provider has a single partition, got %d", partition)
	}
	return &source{id: id, cmp: p.cmp, recs: p.recs}, nil
}

func New() hermes.Provider {
	return &provider{}
}

type source struct {
	id   int
	cmp  hermes.Comparator
	recs [][2]string
	pos  int
}

func (s *source) ID() int { return s.id }

func (s *source) Key() hermes.Key {
	if s.pos >= len(s.recs) {
		return nil
	}
	return s.recs[s.pos][0]
}

func (s *source) HasNext() bool { return s.pos < len(s.recs) }

func (s *source) Accept(ctx _c.Context, c hermes.Collector, key hermes.Key) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for s.pos < len(s.recs) && s.cmp.Compare(s.recs[s.pos][0], key) == 0 {
		if err := c.Collect(s.id, hermes.String(s.recs[s.pos][1])); err != nil {
			return err
		}
		s.pos++
	}
	return nil
}

func (s *source) Skip(ctx _c.Context, key hermes.Key) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for s.pos < len(s.recs) && s.cmp.Compare(s.recs[s.pos][0], key) <= 0 {
		s.pos++
	}
	return nil
}

func (s *source) BlankValue() hermes.Value {
	return hermes.String("")
}

func (s *source) Close() error {
	return nil
}
