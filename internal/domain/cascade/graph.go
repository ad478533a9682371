// Package cascade implements soft-delete propagation from parent entities to
// their dependents.
//
// The parent→dependent graph is declared as an explicit adjacency map consumed
// by one generic traversal, instead of per-entity hand-written cascade code.
// The configured schema is one level deep (order → {order_item, payment});
// the traversal itself is recursive and rejects cyclic configurations.
package cascade

import (
	"context"
	"time"

	"bakehouse/internal/core/apperror"
	"bakehouse/internal/core/id"
)

// Kind names an entity type in the cascade graph.
type Kind string

const (
	KindProduct   Kind = "product"
	KindBrand     Kind = "brand"
	KindStockItem Kind = "stock_item"
	KindOrder     Kind = "order"
	KindOrderItem Kind = "order_item"
	KindPayment   Kind = "payment"
)

// DeletedDependent is one soft-deleted dependent row, with the timestamp it
// was deleted at. The timestamp identifies which cascade (if any) removed it.
type DeletedDependent struct {
	ID        id.ID
	DeletedAt time.Time
}

// DependentSet is one dependent relation of a parent entity: the rows of one
// table whose foreign key points at the parent. Implementations wrap the
// dependent's repository.
type DependentSet interface {
	// Kind returns the dependent entity kind.
	Kind() Kind

	// SoftDestroyByParent soft-destroys all ACTIVE dependents of the parent
	// (default scope, fk = parentID) with the given timestamp, and returns
	// the IDs it touched so the traversal can recurse into them.
	SoftDestroyByParent(ctx context.Context, parentID id.ID, at time.Time) ([]id.ID, error)

	// FindDeletedByParent returns soft-deleted dependents of the parent
	// (onlyDeleted scope, fk = parentID).
	FindDeletedByParent(ctx context.Context, parentID id.ID) ([]DeletedDependent, error)

	// Restore clears the deletion mark on one dependent row.
	Restore(ctx context.Context, entityID id.ID) error
}

// Graph is the static parent→dependents adjacency map.
type Graph struct {
	relations map[Kind][]DependentSet
}

// NewGraph creates an empty cascade graph.
func NewGraph() *Graph {
	return &Graph{relations: make(map[Kind][]DependentSet)}
}

// Register adds a dependent relation under a parent kind.
func (g *Graph) Register(parent Kind, dep DependentSet) {
	g.relations[parent] = append(g.relations[parent], dep)
}

// Dependents returns the configured dependent sets for a parent kind.
// Kinds with no configured dependents delete in isolation.
func (g *Graph) Dependents(parent Kind) []DependentSet {
	return g.relations[parent]
}

// Validate walks the adjacency map and fails with a CASCADE_CYCLE error if
// any kind can reach itself. Call at bootstrap, before the graph is used.
func (g *Graph) Validate() error {
	const (
		unvisited = 0
		inPath    = 1
		done      = 2
	)
	state := make(map[Kind]int, len(g.relations))

	var visit func(k Kind, path []Kind) error
	visit = func(k Kind, path []Kind) error {
		switch state[k] {
		case inPath:
			cycle := make([]string, 0, len(path)+1)
			for _, p := range path {
				cycle = append(cycle, string(p))
			}
			cycle = append(cycle, string(k))
			return apperror.NewCascadeCycle(cycle)
		case done:
			return nil
		}

		state[k] = inPath
		for _, dep := range g.relations[k] {
			if err := visit(dep.Kind(), append(path, k)); err != nil {
				return err
			}
		}
		state[k] = done
		return nil
	}

	for k := range g.relations {
		if err := visit(k, nil); err != nil {
			return err
		}
	}
	return nil
}
