package registry

import (
	"hermes"
)

var (
	providerMap = map[string]hermes.NewProviderFunc{}
	sinkMap     = map[string]hermes.NewSinkFunc{}
	filterMap   = map[string]hermes.NewFilterFunc{}
)

func RegisterNewProviderFunc(_type string, providerFunc hermes.NewProviderFunc) {
	providerMap[_type] = providerFunc
}

func RegisterNewSinkFunc(_type string, sinkFunc hermes.NewSinkFunc) {
	sinkMap[_type] = sinkFunc
}

func RegisterNewFilterFunc(_type string, filterFunc hermes.NewFilterFunc) {
	filterMap[_type] = filterFunc
}

func NewProviderFunc(_type string) hermes.NewProviderFunc {
	return providerMap[_type]
}

func NewSinkFunc(_type string) hermes.NewSinkFunc {
	return sinkMap[_type]
}

func NewFilterFunc(_type string) hermes.NewFilterFunc {
	return filterMap[_type]
}

func ListProviderDef() map[string]hermes.PropertyDef {
	providerDefMap := map[string]hermes.PropertyDef{}
	for name, providerFunc := range providerMap {
		providerDefMap[name] = providerFunc().PropertyDef()
	}
	return providerDefMap
}

func ListSinkDef() map[string]hermes.PropertyDef {
	sinkDefMap := map[string]hermes.PropertyDef{}
	for name, sinkFunc := range sinkMap {
		sinkDefMap[name] = sinkFunc().PropertyDef()
	}
	return sinkDefMap
}

func ListFilterDef() map[string]hermes.PropertyDef {
	filterDefMap := map[string]hermes.PropertyDef{}
	for name, filterFunc := range filterMap {
		filterDefMap[name] = filterFunc().PropertyDef()
	}
	return filterDefMap
}
