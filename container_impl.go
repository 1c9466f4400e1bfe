package alloy

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"sync"
	"time"

	logger "github.com/xraph/go-utils/log"
	"github.com/xraph/go-utils/metrics"
)

// containerImpl implements Alloy.
type containerImpl struct {
	instances  map[reflect.Type]any
	providers  map[reflect.Type]*constructorInfo
	graph      *DependencyGraph
	middleware *middlewareChain
	logger     logger.Logger
	metrics    metrics.Metrics
	mu         sync.RWMutex
}

// newContainer creates a new container implementation.
func newContainer(opts ...Option) Alloy {
	c := &containerImpl{
		instances:  make(map[reflect.Type]any),
		providers:  make(map[reflect.Type]*constructorInfo),
		graph:      NewDependencyGraph(),
		middleware: newMiddlewareChain(),
		logger:     logger.NewNoopLogger(),
	}

	for _, opt := range opts {
		opt.apply(c)
	}

	return c
}

// Get returns the instance bound to t, resolving it on first use.
func (c *containerImpl) Get(t reflect.Type) (any, error) {
	ctx := context.Background()

	// Call middleware before resolve
	if err := c.middleware.beforeResolve(ctx, t); err != nil {
		return nil, err
	}

	// Perform actual resolution
	instance, err := c.resolve(t, nil)

	// Call middleware after resolve
	if mwErr := c.middleware.afterResolve(ctx, t, instance, err); mwErr != nil {
		return nil, mwErr
	}

	return instance, err
}

// MustGet is Get, panicking on error. Use only during startup.
func (c *containerImpl) MustGet(t reflect.Type) any {
	instance, err := c.Get(t)
	if err != nil {
		panic(fmt.Sprintf("failed to resolve %s: %v", typeName(t), err))
	}

	return instance
}

// Set binds an instance to t, overwriting any existing binding.
// The contract is duck-typed: nothing is validated, and a later Get(t)
// returns exactly this instance, bypassing construction entirely.
func (c *containerImpl) Set(t reflect.Type, instance any) {
	c.mu.Lock()
	c.instances[t] = instance
	c.mu.Unlock()

	c.logger.Debug("instance bound", logger.String("type", typeName(t)))

	if c.metrics != nil {
		c.metrics.Counter("alloy_binds_total",
			metrics.WithLabel("type", typeName(t)),
		).Inc()
	}
}

// Has checks if t is bound or has a constructor.
func (c *containerImpl) Has(t reflect.Type) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if _, ok := c.instances[t]; ok {
		return true
	}

	_, ok := c.providers[t]

	return ok
}

// Types returns all known types, sorted by name for stable output.
func (c *containerImpl) Types() []reflect.Type {
	c.mu.RLock()
	defer c.mu.RUnlock()

	types := make([]reflect.Type, 0, len(c.instances)+len(c.providers))
	for t := range c.instances {
		types = append(types, t)
	}

	for t := range c.providers {
		if _, ok := c.instances[t]; !ok {
			types = append(types, t)
		}
	}

	sort.Slice(types, func(i, j int) bool {
		return typeName(types[i]) < typeName(types[j])
	})

	return types
}

// Inspect returns diagnostic information about a type.
func (c *containerImpl) Inspect(t reflect.Type) TypeInfo {
	c.mu.RLock()
	_, cached := c.instances[t]
	info := c.providers[t]
	c.mu.RUnlock()

	ti := TypeInfo{
		Type:     t,
		Name:     typeName(t),
		Cached:   cached,
		Provided: info != nil,
	}

	if info != nil {
		ti.DependsOn = append(ti.DependsOn, info.params...)

		return ti
	}

	params, err := ParametersOf(t)
	if err != nil {
		return ti
	}

	ti.Params = params
	for _, p := range params {
		if p.Kind != KindUnresolvable {
			ti.DependsOn = append(ti.DependsOn, p.Type)
		}
	}

	return ti
}

// Use adds middleware to the container.
// Middleware is called in the order it was added.
func (c *containerImpl) Use(mw Middleware) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.middleware.add(mw)
}

// Graph returns a snapshot of the dependency graph observed so far.
func (c *containerImpl) Graph() *DependencyGraph {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.graph.clone()
}

// Clone returns an independent container seeded with the current instances
// and constructors. Later changes on either side are not shared.
func (c *containerImpl) Clone() Alloy {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := &containerImpl{
		instances:  make(map[reflect.Type]any, len(c.instances)),
		providers:  make(map[reflect.Type]*constructorInfo, len(c.providers)),
		graph:      c.graph.clone(),
		middleware: c.middleware.clone(),
		logger:     c.logger,
		metrics:    c.metrics,
	}

	for t, instance := range c.instances {
		out.instances[t] = instance
	}

	for t, info := range c.providers {
		out.providers[t] = info
	}

	return out
}

// resolve runs the resolution algorithm for t. The stack carries the types
// currently under construction on this call path; re-entering one is a cycle.
func (c *containerImpl) resolve(t reflect.Type, stack []reflect.Type) (any, error) {
	if t == nil {
		return nil, ErrNilType
	}

	// Registry hit: return the bound instance verbatim
	c.mu.RLock()
	if instance, ok := c.instances[t]; ok {
		c.mu.RUnlock()

		return instance, nil
	}
	info := c.providers[t]
	c.mu.RUnlock()

	for _, s := range stack {
		if s == t {
			return nil, ErrCircularDependency(append(stack, t))
		}
	}
	stack = append(stack, t)

	// Provided constructor takes precedence over auto-construction
	if info != nil {
		return c.invoke(t, info, stack)
	}

	ci, err := analyzeClass(t)
	if err != nil {
		return nil, err
	}

	return c.construct(ci, stack)
}

// construct auto-constructs a class instance, resolving its declared
// parameters in declaration order.
func (c *containerImpl) construct(ci *classInfo, stack []reflect.Type) (any, error) {
	start := time.Now()
	v := reflect.New(ci.elem)

	if err := c.injectFields(v.Elem(), ci, stack); err != nil {
		return nil, err
	}

	c.mu.Lock()
	if !c.graph.HasNode(ci.typ) {
		c.graph.AddNode(ci.typ, classRefs(ci.fields))
	}
	c.mu.Unlock()

	c.observeConstruction(ci.typ, start)
	c.logger.Debug("constructed instance",
		logger.String("type", typeName(ci.typ)),
		logger.String("source", "auto"),
	)

	return c.memoize(ci.typ, v.Interface()), nil
}

// injectFields resolves and assigns the injectable fields of a struct value.
func (c *containerImpl) injectFields(v reflect.Value, ci *classInfo, stack []reflect.Type) error {
	for _, f := range ci.fields {
		if f.kind == KindUnresolvable {
			if f.optional {
				continue
			}

			// Never consult the registry for non-class parameters: only a
			// bound instance of the whole owning type can rescue them.
			return ErrUnresolvableParameter(ci.typ, f.name, f.typ)
		}

		dep, err := c.resolve(f.typ, stack)
		if err != nil {
			if f.optional {
				// Leave the zero value for optional dependencies
				continue
			}

			return err
		}

		if dep == nil {
			continue
		}

		dv := reflect.ValueOf(dep)
		if !dv.Type().AssignableTo(f.typ) {
			return ErrTypeMismatch(ci.typ, f.name, f.typ, dep)
		}

		v.Field(f.index).Set(dv)
	}

	return nil
}

// memoize stores a constructed instance unless one appeared meanwhile.
// First write wins, so every caller converges on the stored instance.
func (c *containerImpl) memoize(t reflect.Type, instance any) any {
	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.instances[t]; ok {
		return existing
	}

	c.instances[t] = instance

	return instance
}

// observeConstruction records construction metrics when metrics are enabled.
func (c *containerImpl) observeConstruction(t reflect.Type, start time.Time) {
	if c.metrics == nil {
		return
	}

	c.metrics.Counter("alloy_constructions_total",
		metrics.WithLabel("type", typeName(t)),
	).Inc()
	c.metrics.Histogram("alloy_construct_duration_seconds",
		metrics.WithLabel("type", typeName(t)),
	).Observe(time.Since(start).Seconds())
}
