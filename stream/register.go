package stream

import (
	"hermes/registry"
	"hermes/stream/filter"
	"hermes/stream/sink/echo"
	file_sink "hermes/stream/sink/file"
	"hermes/stream/sink/kafka"
	file_source "hermes/stream/source/file"
	"hermes/stream/source/inline"
)

func registryProvider() {
	registry.RegisterNewProviderFunc("file", file_source.New)
	registry.RegisterNewProviderFunc("inline", inline.New)
}

func registrySink() {
	registry.RegisterNewSinkFunc("echo", echo.New)
	registry.RegisterNewSinkFunc("file", file_sink.New)
	registry.RegisterNewSinkFunc("kafka", kafka.New)
}

func registryFilter() {
	registry.RegisterNewFilterFunc("tengo", filter.New)
}

func init() {
	registryProvider()
	registrySink()
	registryFilter()
}
