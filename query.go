package alloy

import "reflect"

// TypeQuery defines criteria for querying the types a container knows.
type TypeQuery struct {
	// Cached filters by whether an instance is already bound.
	// nil matches all types (cached and not cached).
	Cached *bool

	// Provided filters by whether a constructor is registered.
	// nil matches all types.
	Provided *bool

	// AssignableTo keeps only types whose instances could be assigned to
	// this type, interfaces included. nil matches all types.
	AssignableTo reflect.Type
}

// Query returns detailed information about types matching the query criteria.
//
// Example:
//
//	// Find everything already constructed that satisfies io.Closer
//	cached := true
//	results := alloy.Query(c, alloy.TypeQuery{
//	    Cached:       &cached,
//	    AssignableTo: alloy.TypeOf[io.Closer](),
//	})
func Query(c Alloy, query TypeQuery) []TypeInfo {
	var results []TypeInfo

	for _, t := range c.Types() {
		info := c.Inspect(t)

		if query.Cached != nil && info.Cached != *query.Cached {
			continue
		}

		if query.Provided != nil && info.Provided != *query.Provided {
			continue
		}

		if query.AssignableTo != nil {
			if t == nil || !t.AssignableTo(query.AssignableTo) {
				continue
			}
		}

		results = append(results, info)
	}

	return results
}

// QueryTypes returns the types matching the query criteria.
// This is more convenient than Query when you only need the keys.
func QueryTypes(c Alloy, query TypeQuery) []reflect.Type {
	results := Query(c, query)

	types := make([]reflect.Type, len(results))
	for i, info := range results {
		types[i] = info.Type
	}

	return types
}

// FindCached returns all types that already have a bound instance.
func FindCached(c Alloy) []TypeInfo {
	cached := true

	return Query(c, TypeQuery{Cached: &cached})
}

// FindProvided returns all types with a registered constructor.
func FindProvided(c Alloy) []TypeInfo {
	provided := true

	return Query(c, TypeQuery{Provided: &provided})
}

// FindAssignableTo returns all known types assignable to t.
// Pass an interface type to discover every known implementation.
func FindAssignableTo(c Alloy, t reflect.Type) []TypeInfo {
	return Query(c, TypeQuery{AssignableTo: t})
}
