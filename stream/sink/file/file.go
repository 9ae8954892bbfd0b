package file

import (
	"bufio"
	"fmt"
	"os"
	"sync"

	"github.com/pkg/errors"

	"hermes"
	"hermes/properties"
)

var PathProperty = properties.NewRequiredProperty[string]("path", "output file, key<TAB>value lines")

//sink writes joined records as key<TAB>value lines. One sink serves every
//partition task of the job, Emit is serialized by a mutex.
type sink struct {
	mu sync.Mutex
	f  *os.File
	w  *bufio.Writer
}

func (s *sink) Open(ctx hermes.Context) error {
	f, err := os.Create(ctx.Properties().GetString(PathProperty.Name()))
	if err != nil {
		return errors.WithMessage(err, "create output")
	}
	s.f = f
	s.w = bufio.NewWriter(f)
	return nil
}

func (s *sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.f == nil {
		return nil
	}
	if err := s.w.Flush(); err != nil {
		s.f.Close()
		return err
	}
	return s.f.Close()
}

func (s *sink) PropertyDef() hermes.PropertyDef {
	return hermes.PropertyDef{PathProperty}
}

func (s *sink) Emit(key hermes.Key, value hermes.Value) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := fmt.Fprintf(s.w, "%v\t%s\n", key, value.String())
	return err
}

func New() hermes.Sink {
	return &sink{}
}
