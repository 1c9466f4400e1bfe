package alloy

import "reflect"

// DependencyGraph records which types depend on which. The container feeds it
// from constructor registrations and from successful auto-constructions, so
// it reflects the wiring that has actually been declared or observed.
type DependencyGraph struct {
	nodes map[reflect.Type]*node
	order []reflect.Type // Preserve insertion order
}

type node struct {
	typ          reflect.Type
	dependencies []reflect.Type
}

// NewDependencyGraph creates a new dependency graph.
func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{
		nodes: make(map[reflect.Type]*node),
		order: make([]reflect.Type, 0),
	}
}

// AddNode adds a node with its dependencies.
// Re-adding a node replaces its dependency list without changing its position.
func (g *DependencyGraph) AddNode(t reflect.Type, dependencies []reflect.Type) {
	if existing, ok := g.nodes[t]; ok {
		existing.dependencies = dependencies

		return
	}

	g.nodes[t] = &node{typ: t, dependencies: dependencies}
	g.order = append(g.order, t)
}

// HasNode checks if a node exists in the graph.
func (g *DependencyGraph) HasNode(t reflect.Type) bool {
	_, ok := g.nodes[t]

	return ok
}

// Nodes returns all node types in insertion order.
func (g *DependencyGraph) Nodes() []reflect.Type {
	nodes := make([]reflect.Type, len(g.order))
	copy(nodes, g.order)

	return nodes
}

// Dependencies returns the dependency types of a node.
func (g *DependencyGraph) Dependencies(t reflect.Type) []reflect.Type {
	if node, ok := g.nodes[t]; ok {
		return node.dependencies
	}

	return nil
}

// Dependents returns the types that declare a dependency on t.
func (g *DependencyGraph) Dependents(t reflect.Type) []reflect.Type {
	var dependents []reflect.Type

	for _, name := range g.order {
		for _, dep := range g.nodes[name].dependencies {
			if dep == t {
				dependents = append(dependents, name)

				break
			}
		}
	}

	return dependents
}

// TopologicalSort returns types in dependency order.
// Nodes without dependencies maintain their insertion order (FIFO).
// Returns an error carrying the full chain if a cycle is detected.
func (g *DependencyGraph) TopologicalSort() ([]reflect.Type, error) {
	visited := make(map[reflect.Type]bool)
	visiting := make(map[reflect.Type]bool)
	result := make([]reflect.Type, 0, len(g.nodes))

	// Visit nodes in insertion order to preserve FIFO for independent nodes
	for _, t := range g.order {
		if err := g.visit(t, visited, visiting, nil, &result); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// visit performs DFS traversal, threading the path for cycle reporting.
func (g *DependencyGraph) visit(t reflect.Type, visited, visiting map[reflect.Type]bool, path []reflect.Type, result *[]reflect.Type) error {
	if visited[t] {
		return nil
	}

	if visiting[t] {
		return ErrCircularDependency(append(path, t))
	}

	node := g.nodes[t]
	if node == nil {
		// Dependency without a node of its own, skip
		return nil
	}

	visiting[t] = true

	// Visit dependencies first
	for _, dep := range node.dependencies {
		if err := g.visit(dep, visited, visiting, append(path, t), result); err != nil {
			return err
		}
	}

	visiting[t] = false
	visited[t] = true
	*result = append(*result, t)

	return nil
}

// clone returns an independent copy of the graph.
func (g *DependencyGraph) clone() *DependencyGraph {
	out := NewDependencyGraph()
	for _, t := range g.order {
		deps := g.nodes[t].dependencies
		copied := make([]reflect.Type, len(deps))
		copy(copied, deps)
		out.AddNode(t, copied)
	}

	return out
}
