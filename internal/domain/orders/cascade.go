package orders

import (
	"context"
	"time"

	"bakehouse/internal/core/id"
	"bakehouse/internal/domain/cascade"
	"bakehouse/internal/domain/scope"
)

// itemDependents adapts ItemRepository to the cascade graph.
type itemDependents struct {
	repo ItemRepository
}

func (d *itemDependents) Kind() cascade.Kind { return cascade.KindOrderItem }

func (d *itemDependents) SoftDestroyByParent(ctx context.Context, parentID id.ID, at time.Time) ([]id.ID, error) {
	return d.repo.SoftDestroyByOrder(ctx, parentID, at)
}

func (d *itemDependents) FindDeletedByParent(ctx context.Context, parentID id.ID) ([]cascade.DeletedDependent, error) {
	items, err := d.repo.FindByOrder(ctx, scope.OnlyDeleted, parentID)
	if err != nil {
		return nil, err
	}
	out := make([]cascade.DeletedDependent, 0, len(items))
	for _, item := range items {
		out = append(out, cascade.DeletedDependent{ID: item.ID, DeletedAt: *item.DeletedAt})
	}
	return out, nil
}

func (d *itemDependents) Restore(ctx context.Context, entityID id.ID) error {
	return d.repo.Restore(ctx, entityID)
}

// paymentDependents adapts PaymentRepository to the cascade graph.
type paymentDependents struct {
	repo PaymentRepository
}

func (d *paymentDependents) Kind() cascade.Kind { return cascade.KindPayment }

func (d *paymentDependents) SoftDestroyByParent(ctx context.Context, parentID id.ID, at time.Time) ([]id.ID, error) {
	return d.repo.SoftDestroyByOrder(ctx, parentID, at)
}

func (d *paymentDependents) FindDeletedByParent(ctx context.Context, parentID id.ID) ([]cascade.DeletedDependent, error) {
	payments, err := d.repo.FindByOrder(ctx, scope.OnlyDeleted, parentID)
	if err != nil {
		return nil, err
	}
	out := make([]cascade.DeletedDependent, 0, len(payments))
	for _, p := range payments {
		out = append(out, cascade.DeletedDependent{ID: p.ID, DeletedAt: *p.DeletedAt})
	}
	return out, nil
}

func (d *paymentDependents) Restore(ctx context.Context, entityID id.ID) error {
	return d.repo.Restore(ctx, entityID)
}

// NewCascadeGraph builds the static dependent graph for the order aggregate:
// order → {order_item, payment}. Products, brands and stock items have no
// entries — they delete in isolation.
func NewCascadeGraph(items ItemRepository, payments PaymentRepository) *cascade.Graph {
	g := cascade.NewGraph()
	g.Register(cascade.KindOrder, &itemDependents{repo: items})
	g.Register(cascade.KindOrder, &paymentDependents{repo: payments})
	return g
}
