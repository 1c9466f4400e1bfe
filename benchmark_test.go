package alloy

import (
	"testing"
)

// Benchmark binding and registration.
func BenchmarkSet(b *testing.B) {
	c := New()
	cfg := &appConfig{}

	for i := 0; i < b.N; i++ {
		Set[*appConfig](c, cfg)
	}
}

func BenchmarkProvide(b *testing.B) {
	for i := 0; i < b.N; i++ {
		c := New()
		_ = c.Provide(func() *handle {
			return &handle{}
		})
	}
}

// Benchmark resolution.
func BenchmarkGet_Cached(b *testing.B) {
	c := New()

	// Warm up cache
	_, _ = c.Get(TypeOf[*connPool]())

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, _ = c.Get(TypeOf[*connPool]())
	}
}

func BenchmarkGet_Uncached(b *testing.B) {
	for i := 0; i < b.N; i++ {
		c := New()
		_, _ = c.Get(TypeOf[*connPool]())
	}
}

func BenchmarkGet_DeepChain(b *testing.B) {
	for i := 0; i < b.N; i++ {
		c := New()
		_, _ = c.Get(TypeOf[*levelFive]())
	}
}

func BenchmarkGet_Constructor(b *testing.B) {
	c := New()
	_ = c.Provide(func() *handle {
		return &handle{}
	})

	// Warm up cache
	_, _ = c.Get(TypeOf[*handle]())

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, _ = c.Get(TypeOf[*handle]())
	}
}

// Benchmark generic helpers.
func BenchmarkGetGeneric(b *testing.B) {
	c := New()

	// Warm up cache
	_, _ = Get[*connPool](c)

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, _ = Get[*connPool](c)
	}
}

func BenchmarkMustGetGeneric(b *testing.B) {
	c := New()

	// Warm up cache
	_ = MustGet[*connPool](c)

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = MustGet[*connPool](c)
	}
}

func BenchmarkTypeOf(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = TypeOf[*connPool]()
	}
}

// Benchmark introspection.
func BenchmarkParametersOf(b *testing.B) {
	t := TypeOf[*apiServer]()

	for i := 0; i < b.N; i++ {
		_, _ = ParametersOf(t)
	}
}

// Benchmark concurrent access.
func BenchmarkConcurrentGet(b *testing.B) {
	c := New()
	_, _ = c.Get(TypeOf[*connPool]())

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_, _ = c.Get(TypeOf[*connPool]())
		}
	})
}
