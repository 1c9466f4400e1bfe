package alloy

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeOf(t *testing.T) {
	assert.Equal(t, reflect.TypeOf(&appConfig{}), TypeOf[*appConfig]())
	assert.Equal(t, reflect.TypeOf(""), TypeOf[string]())

	// Interface types have no value to reflect on, TypeOf still names them
	src := TypeOf[messageSource]()
	assert.Equal(t, reflect.Interface, src.Kind())
	assert.Equal(t, "alloy.messageSource", src.String())
}

func TestGetTyped_Success(t *testing.T) {
	c := New()

	pool, err := Get[*connPool](c)
	require.NoError(t, err)
	require.NotNil(t, pool)
	assert.NotNil(t, pool.Config)
}

func TestGetTyped_Interface(t *testing.T) {
	c := New()
	Set[messageSource](c, &defaultSource{})

	src, err := Get[messageSource](c)
	require.NoError(t, err)
	assert.Equal(t, "Some String", src.Message())
}

func TestGetTyped_PropagatesError(t *testing.T) {
	c := New()

	_, err := Get[*namedThing](c)
	require.Error(t, err)
	assert.ErrorContains(t, err, "cannot resolve parameter 'Name'")
}

func TestGetTyped_Mismatch(t *testing.T) {
	c := New()
	c.Set(TypeOf[*connPool](), "a string instead")

	_, err := Get[*connPool](c)
	assert.ErrorIs(t, err, ErrTypeMismatchSentinel)
}

func TestGetTyped_NilBinding(t *testing.T) {
	c := New()
	Set[*connPool](c, nil)

	pool, err := Get[*connPool](c)
	require.NoError(t, err)
	assert.Nil(t, pool)
}

func TestMustGetTyped_Panics(t *testing.T) {
	c := New()

	assert.Panics(t, func() {
		MustGet[*namedThing](c)
	})
}

func TestTryGet(t *testing.T) {
	c := New()

	pool, ok := TryGet[*connPool](c)
	assert.True(t, ok)
	assert.NotNil(t, pool)

	_, ok = TryGet[*namedThing](c)
	assert.False(t, ok)
}

func TestGetOr(t *testing.T) {
	c := New()

	fallback := &namedThing{Name: "fallback"}
	got := GetOr[*namedThing](c, fallback)
	assert.Same(t, fallback, got)

	pool := GetOr[*connPool](c, nil)
	assert.NotNil(t, pool)
}

func TestSetTyped_InterfaceKey(t *testing.T) {
	c := New()

	Set[flusher](c, nil)
	assert.True(t, Has[flusher](c))
}

func TestHasTyped(t *testing.T) {
	c := New()

	assert.False(t, Has[*connPool](c))

	MustGet[*connPool](c)
	assert.True(t, Has[*connPool](c))
}

func TestInspectTyped(t *testing.T) {
	c := New()

	info := Inspect[*repository](c)
	assert.Equal(t, TypeOf[*repository](), info.Type)
	assert.Len(t, info.Params, 2)
}
