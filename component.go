package hermes

import (
	_c "context"
)

//Component is the life cycle every pluggable piece shares.
type Component interface {
	//Open initialize the component
	Open(ctx Context) error
	//Close cleaning up after the context done.
	Close() error
	//PropertyDef return Component properties defend
	PropertyDef() PropertyDef
}

//Provider opens the sorted partitions of one named input. Partition p of
//every provider in a job is handled by the same engine instance.
type Provider interface {
	Component
	//Partitions is the number of sorted partitions this input carries.
	Partitions() int
	//Stream opens partition p as a Source with priority id.
	Stream(ctx _c.Context, p int, id int) (Source, error)
}

//Sink consumes joined records. One sink instance is shared by every
//partition task of a job, Emit must be safe for concurrent use.
type Sink interface {
	Component
	Emit(key Key, value Value) error
}

//Filter drops joined records before they reach the sink. A filter
//instance serves a single partition task.
type Filter interface {
	Component
	Keep(key Key, value Value) (bool, error)
}

type NewProviderFunc func() Provider
type NewSinkFunc func() Sink
type NewFilterFunc func() Filter
