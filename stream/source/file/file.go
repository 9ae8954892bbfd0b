package file

import (
	"bufio"
	_c "context"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cast"

	"hermes"
	"hermes/properties"
)

var (
	PathsProperty   = properties.NewRequiredProperty[[]string]("paths", "one sorted key<TAB>value file per partition")
	KeyTypeProperty = properties.NewProperty[string]("key-type", "string or int", "string")
	KeyOnlyProperty = properties.NewProperty[bool]("key-only", "keys without values, declares the null marker", false)
)

//provider serves one sorted text file per partition. Lines are
//key<TAB>value, keys must be non decreasing per the declared key type,
//that is not verified here.
type provider struct {
	ctx     hermes.Context
	paths   []string
	keyOnly bool
	cmp     hermes.Comparator
	parse   func(string) (hermes.Key, error)
}

func (p *provider) Open(ctx hermes.Context) error {
	p.ctx = ctx
	p.paths = ctx.Properties().GetStringSlice(PathsProperty.Name())
	if len(p.paths) == 0 {
		return errors.New("file provider needs at least one path")
	}
	keyType := ctx.Properties().GetString(KeyTypeProperty.Name())
	cmp, ok := hermes.ComparatorFor(keyType)
	if !ok {
		return errors.Errorf("unknown key-type %s", keyType)
	}
	p.cmp = cmp
	if keyType == "int" {
		p.parse = func(s string) (hermes.Key, error) { return cast.ToInt64E(s) }
	} else {
		p.parse = func(s string) (hermes.Key, error) { return s, nil }
	}
	p.keyOnly = ctx.Properties().GetBool(KeyOnlyProperty.Name())
	return nil
}

func (p *provider) Close() error {
	return nil
}

func (p *provider) PropertyDef() hermes.PropertyDef {
	return hermes.PropertyDef{PathsProperty, KeyTypeProperty, KeyOnlyProperty}
}

func (p *provider) Partitions() int {
	return len(p.paths)
}

func (p *provider) Stream(ctx _c.Context, partition, id int) (hermes.Source, error) {
	if partition < 0 || partition >= len(p.paths) {
		return nil, errors.Errorf("partition %d out of range, have %d", partition, len(p.paths))
	}
	f, err := os.Open(p.paths[partition])
	if err != nil {
		return nil, errors.WithMessage(err, "open partition")
	}
	s := &source{
		id:      id,
		f:       f,
		scanner: bufio.NewScanner(f),
		cmp:     p.cmp,
		parse:   p.parse,
		keyOnly: p.keyOnly,
	}
	if err := s.advance(ctx); err != nil {
		f.Close()
		return nil, err
	}
	return s, nil
}

func New() hermes.Provider {
	return &provider{}
}

type source struct {
	id      int
	f       *os.File
	scanner *bufio.Scanner
	cmp     hermes.Comparator
	parse   func(string) (hermes.Key, error)
	keyOnly bool

	headKey hermes.Key
	headVal hermes.Value
}

func (s *source) advance(ctx _c.Context) error {
	s.headKey, s.headVal = nil, nil
	if err := ctx.Err(); err != nil {
		return err
	}
	if !s.scanner.Scan() {
		return s.scanner.Err()
	}
	keyText, valText, _ := strings.Cut(s.scanner.Text(), "\t")
	key, err := s.parse(keyText)
	if err != nil {
		return errors.WithMessage(err, "parse key")
	}
	s.headKey = key
	if s.keyOnly {
		s.headVal = hermes.Null
	} else {
		s.headVal = hermes.String(valText)
	}
	return nil
}

func (s *source) ID() int { return s.id }

func (s *source) Key() hermes.Key { return s.headKey }

func (s *source) HasNext() bool { return s.headKey != nil }

func (s *source) Accept(ctx _c.Context, c hermes.Collector, key hermes.Key) error {
	for s.headKey != nil && s.cmp.Compare(s.headKey, key) == 0 {
		if err := c.Collect(s.id, s.headVal); err != nil {
			return err
		}
		if err := s.advance(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (s *source) Skip(ctx _c.Context, key hermes.Key) error {
	for s.headKey != nil && s.cmp.Compare(s.headKey, key) <= 0 {
		if err := s.advance(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (s *source) BlankValue() hermes.Value {
	if s.keyOnly {
		return hermes.Null
	}
	return hermes.String("")
}

func (s *source) Close() error {
	return s.f.Close()
}
