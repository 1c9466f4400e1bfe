package alloy

import "fmt"

// Module groups constructors that are registered together.
// Grouping keeps registration at the composition root while each package
// declares its own wiring.
type Module struct {
	Name         string
	Constructors []any
}

// NewModule creates a named module from constructor functions.
//
// Example:
//
//	var Storage = alloy.NewModule("storage",
//	    NewDatabase,
//	    NewCache,
//	)
func NewModule(name string, constructors ...any) Module {
	return Module{
		Name:         name,
		Constructors: constructors,
	}
}

// RegisterModules registers the constructors of each module in order.
// Registration stops at the first failure so a broken module is not
// half-applied silently.
//
// Example:
//
//	err := alloy.RegisterModules(c,
//	    storage.Module(),
//	    api.Module(),
//	)
func RegisterModules(c Alloy, modules ...Module) error {
	for _, m := range modules {
		if err := c.Provide(m.Constructors...); err != nil {
			return fmt.Errorf("module %s: %w", m.Name, err)
		}
	}

	return nil
}
