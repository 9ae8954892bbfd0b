package runtime

import (
	_c "context"
	"fmt"
	"path"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/pkg/errors"

	"hermes"
	"hermes/context"
	"hermes/join"
	"hermes/logger"
	"hermes/properties"
	"hermes/registry"
)

const (
	SourcePrefix = "source"
	SinkPrefix   = "sink"
	FilterPrefix = "filter"
)

//TypeProperty is the component type every configured component names.
var TypeProperty = properties.NewRequiredProperty[string]("type", "component type")

type Config struct {
	LogLevel    string `mapstructure:"log-level"`
	KeyType     string `mapstructure:"key-type"`
	Expression  string `mapstructure:"expression"`
	Parallelism int    `mapstructure:"parallelism"`
	Schedule    string `mapstructure:"schedule"`
}

//Job is one join job: named partitioned inputs, a composition expression
//and a sink. Every partition index becomes one independent engine
//instance, partitions run concurrently on a worker pool, instances share
//nothing but the sink.
type Job struct {
	ctx    hermes.Context
	config Config
	cmp    hermes.Comparator

	//a Job owns one set of open components, runs never interleave
	runMu      sync.Mutex
	providers  map[string]hermes.Provider
	sink       hermes.Sink
	filterType string
}

//JobFileParts splits a job file path into the properties name, type and
//directory New expects. The extension names the properties type, a path
//without one is rejected.
func JobFileParts(jobFile string) (name string, ext string, dir string, err error) {
	ext = strings.TrimPrefix(path.Ext(jobFile), ".")
	if ext == "" {
		return "", "", "", errors.Errorf("job file %s has no extension", jobFile)
	}
	name = strings.TrimSuffix(path.Base(jobFile), path.Ext(jobFile))
	return name, ext, path.Dir(jobFile), nil
}

func New(originCtx _c.Context, propertiesName string, propertiesType string, propertiesPath ...string) (*Job, error) {
	ps, err := properties.New(propertiesName, propertiesType, propertiesPath...)
	if err != nil {
		return nil, err
	}
	//default job config
	config := Config{
		LogLevel:    "info",
		KeyType:     "string",
		Parallelism: 1,
	}
	if err := ps.Unmarshal(&config); err != nil {
		return nil, errors.WithMessage(err, "init job config")
	}
	if config.Expression == "" {
		return nil, errors.New("job expression can't be nil")
	}
	cmp, ok := hermes.ComparatorFor(config.KeyType)
	if !ok {
		return nil, errors.Errorf("unknown key-type %s", config.KeyType)
	}
	return &Job{
		ctx:       context.New(originCtx, ps, logger.New(config.LogLevel).WithField("job", propertiesName)),
		config:    config,
		cmp:       cmp,
		providers: map[string]hermes.Provider{},
	}, nil
}

func (j *Job) initProviders() error {
	sourceNames := j.ctx.Properties().GetStringMapString(SourcePrefix)
	if len(sourceNames) == 0 {
		return errors.New("job has to have at least one source")
	}
	for name := range sourceNames {
		sourceName := SourcePrefix + "." + name
		sourceCtx := j.ctx.With("component", sourceName)
		if sourceCtx.Properties() == nil {
			return errors.Errorf("source %s properties can't be nil", sourceName)
		}
		//a source's key ordering has to agree with the job comparator,
		//sources that declare nothing inherit the job key-type
		if kt := sourceCtx.Properties().GetString("key-type"); kt == "" {
			sourceCtx.Properties().Set("key-type", j.config.KeyType)
		} else if kt != j.config.KeyType {
			return errors.Errorf("source %s key-type %s conflicts with job key-type %s", sourceName, kt, j.config.KeyType)
		}
		providerFunc := registry.NewProviderFunc(sourceCtx.Properties().GetString(TypeProperty.Name()))
		if providerFunc == nil {
			return errors.Errorf("unknown source type for %s", sourceName)
		}
		provider := providerFunc()
		renderText, err := properties.InitPropertyDef(sourceCtx, append(provider.PropertyDef(), TypeProperty))
		if err != nil {
			return errors.WithMessagef(err, "init %s properties", sourceName)
		}
		if err := provider.Open(sourceCtx); err != nil {
			return errors.WithMessagef(err, "open %s", sourceName)
		}
		j.ctx.Logger().Infof("open %s source:\n%s", sourceName, renderText)
		j.providers[name] = provider
	}
	return nil
}

func (j *Job) initSink() error {
	sinkCtx := j.ctx.With("component", SinkPrefix)
	if sinkCtx.Properties() == nil {
		return errors.New("sink properties can't be nil")
	}
	sinkFunc := registry.NewSinkFunc(sinkCtx.Properties().GetString(TypeProperty.Name()))
	if sinkFunc == nil {
		return errors.New("unknown sink type")
	}
	sink := sinkFunc()
	renderText, err := properties.InitPropertyDef(sinkCtx, append(sink.PropertyDef(), TypeProperty))
	if err != nil {
		return errors.WithMessage(err, "init sink properties")
	}
	if err := sink.Open(sinkCtx); err != nil {
		return errors.WithMessage(err, "open sink")
	}
	j.ctx.Logger().Infof("open sink:\n%s", renderText)
	j.sink = sink
	return nil
}

func (j *Job) open() error {
	j.providers = map[string]hermes.Provider{}
	if err := j.initProviders(); err != nil {
		return err
	}
	if err := j.initSink(); err != nil {
		return err
	}
	j.filterType = ""
	if j.ctx.Properties().IsSet(FilterPrefix) {
		j.filterType = j.ctx.Properties().GetString(FilterPrefix + "." + TypeProperty.Name())
	}
	return nil
}

func (j *Job) close() {
	for name, provider := range j.providers {
		if err := provider.Close(); err != nil {
			j.ctx.Logger().WithError(err).Errorf("close source %s error.", name)
		}
	}
	if j.sink != nil {
		if err := j.sink.Close(); err != nil {
			j.ctx.Logger().WithError(err).Errorf("close sink error.")
		}
		j.sink = nil
	}
}

//partitions validates the providers agree on a partition count. A single
//partition provider is replicated to every task, which is how a small
//reference input joins against a partitioned one.
func (j *Job) partitions() (int, error) {
	n := 1
	for name, provider := range j.providers {
		p := provider.Partitions()
		if p == 1 || p == n {
			continue
		}
		if n == 1 {
			n = p
			continue
		}
		return 0, errors.Errorf("source %s has %d partitions, want %d or 1", name, p, n)
	}
	return n, nil
}

//Run executes every partition of the job once and blocks until all
//engines drained or the first error aborted the job.
func (j *Job) Run() error {
	j.runMu.Lock()
	defer j.runMu.Unlock()
	if err := j.open(); err != nil {
		return err
	}
	defer j.close()
	n, err := j.partitions()
	if err != nil {
		return err
	}
	pool, err := ants.NewPool(j.config.Parallelism)
	if err != nil {
		return err
	}
	defer pool.Release()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
			//abort the sibling tasks
			j.ctx.Cancel()
		}
		mu.Unlock()
	}
	for p := 0; p < n; p++ {
		p := p
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			if err := j.runPartition(p); err != nil {
				j.ctx.Logger().WithError(err).Errorf("partition %d failed.", p)
				fail(err)
			}
		}); err != nil {
			wg.Done()
			fail(err)
			break
		}
	}
	wg.Wait()
	return firstErr
}

func (j *Job) runPartition(p int) error {
	taskCtx := j.ctx.With("task", fmt.Sprintf("partition-%d", p))
	defer taskCtx.Cancel()

	resolve := func(ctx _c.Context, name string, id int) (hermes.Source, error) {
		provider, ok := j.providers[name]
		if !ok {
			return nil, errors.Errorf("expression names unknown source %s", name)
		}
		part := p
		if provider.Partitions() == 1 {
			part = 0
		}
		return provider.Stream(ctx, part, id)
	}
	src, err := join.Parse(taskCtx.Ctx(), j.cmp, j.config.Expression, resolve)
	if err != nil {
		return err
	}
	engine, ok := src.(*join.Engine)
	if !ok {
		src.Close()
		return errors.New("expression must compose at least one join")
	}
	defer engine.Close()

	filter, err := j.newFilter()
	if err != nil {
		return err
	}
	if filter != nil {
		defer filter.Close()
	}

	count := 0
	for engine.HasNext() {
		if err := engine.Next(taskCtx.Ctx()); err != nil {
			return err
		}
		key, value := engine.CurrentKey(), engine.CurrentValue()
		if filter != nil {
			keep, err := filter.Keep(key, value)
			if err != nil {
				return err
			}
			if !keep {
				continue
			}
		}
		if err := j.sink.Emit(key, value); err != nil {
			return err
		}
		count++
	}
	taskCtx.Logger().Infof("partition %d emitted %d records.", p, count)
	return nil
}

//newFilter builds one filter instance per partition task, compiled
//scripts are not shared across tasks.
func (j *Job) newFilter() (hermes.Filter, error) {
	if j.filterType == "" {
		return nil, nil
	}
	filterFunc := registry.NewFilterFunc(j.filterType)
	if filterFunc == nil {
		return nil, errors.Errorf("unknown filter type %s", j.filterType)
	}
	filter := filterFunc()
	filterCtx := j.ctx.With("component", FilterPrefix)
	if _, err := properties.InitPropertyDef(filterCtx, append(filter.PropertyDef(), TypeProperty)); err != nil {
		return nil, errors.WithMessage(err, "init filter properties")
	}
	if err := filter.Open(filterCtx); err != nil {
		return nil, errors.WithMessage(err, "open filter")
	}
	return filter, nil
}
