package cascade

import (
	"context"
	"fmt"
	"time"

	"bakehouse/internal/core/apperror"
	"bakehouse/internal/core/id"
)

// Propagator applies lifecycle operations across the configured graph.
//
// It performs no transaction management of its own: callers run it inside the
// same transaction as the parent write, which is what makes the cascade
// synchronous-complete and atomic.
type Propagator struct {
	graph *Graph
}

// NewPropagator creates a propagator over a validated graph.
func NewPropagator(graph *Graph) (*Propagator, error) {
	if err := graph.Validate(); err != nil {
		return nil, err
	}
	return &Propagator{graph: graph}, nil
}

// Destroy soft-destroys every configured dependent of the parent, recursively,
// using one shared timestamp. Only rows visible in the default scope are
// touched: a dependent deleted independently beforehand keeps its own
// timestamp, which is what later makes it ineligible for cascade restore.
// Returns the number of dependent rows soft-destroyed.
func (p *Propagator) Destroy(ctx context.Context, parent Kind, parentID id.ID, at time.Time) (int, error) {
	return p.destroy(ctx, parent, parentID, at, []Kind{parent})
}

func (p *Propagator) destroy(ctx context.Context, parent Kind, parentID id.ID, at time.Time, path []Kind) (int, error) {
	destroyed := 0
	for _, dep := range p.graph.Dependents(parent) {
		// Defense against misconfigured graphs that bypass Validate.
		for _, seen := range path {
			if seen == dep.Kind() {
				cycle := make([]string, 0, len(path)+1)
				for _, k := range path {
					cycle = append(cycle, string(k))
				}
				return destroyed, apperror.NewCascadeCycle(append(cycle, string(dep.Kind())))
			}
		}

		ids, err := dep.SoftDestroyByParent(ctx, parentID, at)
		if err != nil {
			return destroyed, fmt.Errorf("cascade destroy %s: %w", dep.Kind(), err)
		}
		destroyed += len(ids)

		// Recurse into transitive dependents, if any are configured.
		if len(p.graph.Dependents(dep.Kind())) == 0 {
			continue
		}
		for _, childID := range ids {
			n, err := p.destroy(ctx, dep.Kind(), childID, at, append(path, dep.Kind()))
			destroyed += n
			if err != nil {
				return destroyed, err
			}
		}
	}
	return destroyed, nil
}

// RestoreDependents is the explicit, caller-driven restore loop. It is NOT
// invoked automatically on parent restore: restore does not cascade.
//
// When deletedAt is non-nil, only dependents whose deletion timestamp equals
// it — i.e. rows removed by that same cascade — are restored; dependents
// deleted independently before the parent keep their deleted state. A nil
// deletedAt restores every deleted dependent. Returns the number of rows
// restored.
func (p *Propagator) RestoreDependents(ctx context.Context, parent Kind, parentID id.ID, deletedAt *time.Time) (int, error) {
	restored := 0
	for _, dep := range p.graph.Dependents(parent) {
		rows, err := dep.FindDeletedByParent(ctx, parentID)
		if err != nil {
			return restored, fmt.Errorf("find deleted %s: %w", dep.Kind(), err)
		}
		for _, row := range rows {
			if deletedAt != nil && !row.DeletedAt.Equal(*deletedAt) {
				continue
			}
			if err := dep.Restore(ctx, row.ID); err != nil {
				return restored, fmt.Errorf("restore %s: %w", dep.Kind(), err)
			}
			restored++
		}
	}
	return restored, nil
}
