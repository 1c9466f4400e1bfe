package alloy

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type handle struct {
	id int
}

type wrapper struct {
	Handle *handle
}

func TestProvide_Simple(t *testing.T) {
	c := New()

	err := c.Provide(func() *handle { return &handle{id: 1} })
	require.NoError(t, err)
	assert.True(t, c.Has(TypeOf[*handle]()))

	h := MustGet[*handle](c)
	assert.Equal(t, 1, h.id)
}

func TestProvide_RunsOnce(t *testing.T) {
	c := New()
	calls := 0

	err := c.Provide(func() *handle {
		calls++

		return &handle{id: calls}
	})
	require.NoError(t, err)

	h1 := MustGet[*handle](c)
	h2 := MustGet[*handle](c)

	assert.Same(t, h1, h2)
	assert.Equal(t, 1, calls)
}

func TestProvide_WithDependencies(t *testing.T) {
	c := New()

	err := c.Provide(func(cfg *appConfig) *handle {
		require.NotNil(t, cfg)

		return &handle{id: 7}
	})
	require.NoError(t, err)

	h := MustGet[*handle](c)
	assert.Equal(t, 7, h.id)

	// The dependency was constructed and cached along the way
	assert.True(t, c.Has(TypeOf[*appConfig]()))
}

func TestProvide_ConstructorChain(t *testing.T) {
	c := New()

	err := c.Provide(
		func() *handle { return &handle{id: 3} },
		func(h *handle) *wrapper { return &wrapper{Handle: h} },
	)
	require.NoError(t, err)

	w := MustGet[*wrapper](c)
	require.NotNil(t, w.Handle)
	assert.Equal(t, 3, w.Handle.id)
	assert.Same(t, w.Handle, MustGet[*handle](c))
}

func TestProvide_ErrorReturn(t *testing.T) {
	c := New()
	boom := errors.New("connect failed")

	err := c.Provide(func() (*handle, error) {
		return nil, boom
	})
	require.NoError(t, err)

	_, err = c.Get(TypeOf[*handle]())

	// The constructor's error comes back untouched
	assert.ErrorIs(t, err, boom)
}

func TestProvide_FailureDoesNotPoisonCache(t *testing.T) {
	c := New()
	boom := errors.New("first attempt fails")
	calls := 0

	err := c.Provide(func() (*handle, error) {
		calls++
		if calls == 1 {
			return nil, boom
		}

		return &handle{id: calls}, nil
	})
	require.NoError(t, err)

	// First demand fails and leaves nothing behind
	_, err = c.Get(TypeOf[*handle]())
	assert.ErrorIs(t, err, boom)

	// Second demand retries the constructor and succeeds
	h, err := Get[*handle](c)
	require.NoError(t, err)
	assert.Equal(t, 2, h.id)

	// Third demand hits the cache
	again := MustGet[*handle](c)
	assert.Same(t, h, again)
	assert.Equal(t, 2, calls)
}

func TestProvide_InterfaceKey(t *testing.T) {
	c := New()

	err := c.Provide(func() messageSource { return &defaultSource{} })
	require.NoError(t, err)

	src, err := Get[messageSource](c)
	require.NoError(t, err)
	assert.Equal(t, "Some String", src.Message())
}

func TestProvide_PreferredOverAutoConstruction(t *testing.T) {
	c := New()
	marker := &appConfig{}

	err := c.Provide(func() *connPool { return &connPool{Config: marker} })
	require.NoError(t, err)

	pool := MustGet[*connPool](c)
	assert.Same(t, marker, pool.Config)
}

func TestProvide_BoundInstanceWins(t *testing.T) {
	c := New()
	calls := 0

	err := c.Provide(func() *handle {
		calls++

		return &handle{id: 99}
	})
	require.NoError(t, err)

	bound := &handle{id: 1}
	Set[*handle](c, bound)

	got := MustGet[*handle](c)
	assert.Same(t, bound, got)
	assert.Equal(t, 0, calls)
}

func TestProvide_Duplicate(t *testing.T) {
	c := New()

	err := c.Provide(func() *handle { return &handle{} })
	require.NoError(t, err)

	err = c.Provide(func() *handle { return &handle{} })
	require.Error(t, err)
	assert.ErrorContains(t, err, "already provided")
	assert.ErrorContains(t, err, "*alloy.handle")
}

func TestProvide_CycleAcrossConstructors(t *testing.T) {
	c := New()

	err := c.Provide(
		func(p *pongService) *pingService { return &pingService{Pong: p} },
		func(p *pingService) *pongService { return &pongService{Ping: p} },
	)
	require.NoError(t, err)

	_, err = c.Get(TypeOf[*pingService]())
	require.Error(t, err)
	assert.ErrorContains(t, err, "circular dependency detected")
}

func TestProvide_InvalidConstructors(t *testing.T) {
	c := New()

	tests := []struct {
		name string
		fn   any
		want string
	}{
		{"nil", nil, "constructor is nil"},
		{"not a function", 42, "expected a function"},
		{"no results", func() {}, "at least one value"},
		{"too many results", func() (*handle, *wrapper, error) { return nil, nil, nil }, "must return (T) or (T, error)"},
		{"error first", func() error { return nil }, "must not be an error"},
		{"second not error", func() (*handle, *wrapper) { return nil, nil }, "second return value must be an error"},
		{"variadic", func(hs ...*handle) *wrapper { return nil }, "variadic"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.Provide(tt.fn)
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestProvide_StopsAtFirstInvalid(t *testing.T) {
	c := New()

	err := c.Provide(
		func() *handle { return &handle{} },
		42,
		func() *wrapper { return &wrapper{} },
	)
	require.Error(t, err)

	// Constructors before the bad one are registered, later ones are not
	assert.True(t, c.Has(TypeOf[*handle]()))
	assert.False(t, c.Has(TypeOf[*wrapper]()))
}

func TestProvide_RegistersGraphNodes(t *testing.T) {
	c := New()

	err := c.Provide(func(h *handle) *wrapper { return &wrapper{Handle: h} })
	require.NoError(t, err)

	g := c.Graph()
	assert.True(t, g.HasNode(TypeOf[*wrapper]()))
	assert.Equal(t, []reflect.Type{TypeOf[*handle]()}, g.Dependencies(TypeOf[*wrapper]()))
}

func TestAnalyzeConstructor_Signature(t *testing.T) {
	info, err := analyzeConstructor(func(cfg *appConfig, src messageSource) (*handle, error) {
		return nil, nil
	})
	require.NoError(t, err)

	assert.Equal(t, TypeOf[*handle](), info.result)
	assert.True(t, info.hasError)
	require.Len(t, info.params, 2)
	assert.Equal(t, TypeOf[*appConfig](), info.params[0])
	assert.Equal(t, TypeOf[messageSource](), info.params[1])
}

func TestAnalyzeConstructor_NoError(t *testing.T) {
	info, err := analyzeConstructor(func() *handle { return nil })
	require.NoError(t, err)

	assert.False(t, info.hasError)
	assert.Empty(t, info.params)
}
