package echo

import (
	"hermes"
	"hermes/properties"
)

var LevelProperty = properties.NewProperty[string]("level", "echo level, like info debug", "info")

//sink logs every joined record, handy for smoke jobs and debugging.
type sink struct {
	ctx      hermes.Context
	echoFunc func(format string, args ...interface{})
}

func (s *sink) Open(ctx hermes.Context) error {
	s.ctx = ctx
	switch ctx.Properties().GetString(LevelProperty.Name()) {
	case "debug":
		s.echoFunc = ctx.Logger().Debugf
	default:
		s.echoFunc = ctx.Logger().Infof
	}
	return nil
}

func (s *sink) Close() error {
	return nil
}

func (s *sink) PropertyDef() hermes.PropertyDef {
	return hermes.PropertyDef{LevelProperty}
}

func (s *sink) Emit(key hermes.Key, value hermes.Value) error {
	s.echoFunc("%v\t%s", key, value.String())
	return nil
}

func New() hermes.Sink {
	return &sink{}
}
