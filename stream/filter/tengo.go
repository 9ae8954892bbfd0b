package filter

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"

	"hermes"
	"hermes/properties"
)

var ConditionProperty = properties.NewRequiredProperty[string]("condition", "condition tengo script, key and value are in scope")

//tengoFilter evaluates a condition script against every joined record. A
//compiled script is not safe for concurrent use, every partition task gets
//its own filter instance.
type tengoFilter struct {
	ctx      hermes.Context
	compiled *tengo.Compiled
}

func (f *tengoFilter) Open(ctx hermes.Context) error {
	f.ctx = ctx
	conditionStr := ctx.Properties().GetString(ConditionProperty.Name())
	script := tengo.NewScript([]byte(fmt.Sprintf("__res__ := (%s)", strings.TrimSpace(conditionStr))))
	if err := script.Add("key", ""); err != nil {
		return err
	}
	if err := script.Add("value", ""); err != nil {
		return err
	}
	compiled, err := script.Compile()
	if err != nil {
		return err
	}
	f.compiled = compiled
	return nil
}

func (f *tengoFilter) Close() error {
	return nil
}

func (f *tengoFilter) PropertyDef() hermes.PropertyDef {
	return hermes.PropertyDef{ConditionProperty}
}

func (f *tengoFilter) Keep(key hermes.Key, value hermes.Value) (bool, error) {
	if err := f.compiled.Set("key", fmt.Sprintf("%v", key)); err != nil {
		return false, err
	}
	if err := f.compiled.Set("value", value.String()); err != nil {
		return false, err
	}
	if err := f.compiled.RunContext(f.ctx.Ctx()); err != nil {
		return false, err
	}
	keep, ok := f.compiled.Get("__res__").Value().(bool)
	if !ok {
		return false, fmt.Errorf("condition is not a bool")
	}
	return keep, nil
}

func New() hermes.Filter {
	return &tengoFilter{}
}
