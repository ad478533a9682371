package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"bakehouse/internal/core/apperror"
	"bakehouse/internal/core/id"
	"bakehouse/internal/core/tx"
	"bakehouse/internal/domain"
	"bakehouse/internal/domain/cascade"
	"bakehouse/internal/domain/scope"
	"bakehouse/internal/observability"
)

// NumberGenerator yields the next order number.
type NumberGenerator interface {
	Next(ctx context.Context) (string, error)
}

// Service provides business logic for the Order aggregate.
//
// Order destroy cascades to items and payment inside one transaction.
// Restore never cascades: RestoreWithDependents is the explicit,
// caller-driven loop, and it only revives dependents removed by the same
// cascade as the parent.
type Service struct {
	*domain.LifecycleService[*Order]

	orders     OrderRepository
	items      ItemRepository
	payments   PaymentRepository
	propagator *cascade.Propagator
	txManager  tx.Manager
	numbers    NumberGenerator

	itemLifecycle    *domain.LifecycleService[*OrderItem]
	paymentLifecycle *domain.LifecycleService[*Payment]
}

// ServiceConfig configures the order service.
type ServiceConfig struct {
	Orders    OrderRepository
	Items     ItemRepository
	Payments  PaymentRepository
	TxManager tx.Manager
	Numbers   NumberGenerator
}

// NewService creates the order service and validates the cascade graph.
func NewService(cfg ServiceConfig) (*Service, error) {
	propagator, err := cascade.NewPropagator(NewCascadeGraph(cfg.Items, cfg.Payments))
	if err != nil {
		return nil, err
	}

	s := &Service{
		orders:     cfg.Orders,
		items:      cfg.Items,
		payments:   cfg.Payments,
		propagator: propagator,
		txManager:  cfg.TxManager,
		numbers:    cfg.Numbers,
	}

	s.LifecycleService = domain.NewLifecycleService(domain.LifecycleServiceConfig[*Order]{
		Repo:       cfg.Orders,
		TxManager:  cfg.TxManager,
		EntityName: "order",
		CascadeDestroy: func(ctx context.Context, parent *Order, at time.Time) error {
			n, err := propagator.Destroy(ctx, cascade.KindOrder, parent.ID, at)
			if err != nil {
				return err
			}
			observability.CascadeDependentsTotal.Add(float64(n))
			return nil
		},
	})

	// Items and payments delete in isolation; their facades carry no cascade.
	s.itemLifecycle = domain.NewLifecycleService(domain.LifecycleServiceConfig[*OrderItem]{
		Repo:       cfg.Items,
		TxManager:  cfg.TxManager,
		EntityName: "order_item",
	})
	s.paymentLifecycle = domain.NewLifecycleService(domain.LifecycleServiceConfig[*Payment]{
		Repo:       cfg.Payments,
		TxManager:  cfg.TxManager,
		EntityName: "payment",
	})

	return s, nil
}

// Items exposes the item lifecycle facade (independent delete/restore).
func (s *Service) Items() *domain.LifecycleService[*OrderItem] {
	return s.itemLifecycle
}

// Payments exposes the payment lifecycle facade.
func (s *Service) Payments() *domain.LifecycleService[*Payment] {
	return s.paymentLifecycle
}

// CreateOrder inserts an order with its initial items in one transaction.
// The order number is generated when absent and must be unique among active
// orders; the check runs inside the same transaction as the insert.
func (s *Service) CreateOrder(ctx context.Context, o *Order, items []*OrderItem) error {
	if o.OrderNumber == "" {
		number, err := s.numbers.Next(ctx)
		if err != nil {
			return fmt.Errorf("generate order number: %w", err)
		}
		o.OrderNumber = number
	}

	if err := o.Validate(ctx); err != nil {
		return err
	}
	for _, item := range items {
		item.OrderID = o.ID
		if err := item.Validate(ctx); err != nil {
			return err
		}
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		taken, err := s.orders.ExistsActiveByNumber(ctx, o.OrderNumber, o.ID)
		if err != nil {
			return fmt.Errorf("check order number: %w", err)
		}
		if taken {
			return apperror.NewDuplicate("order", "orderNumber", o.OrderNumber)
		}
		if err := s.orders.Create(ctx, o); err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		for _, item := range items {
			if err := s.items.Create(ctx, item); err != nil {
				return fmt.Errorf("create order item: %w", err)
			}
		}
		return nil
	})
}

// AddItem appends a line item to an existing active order.
func (s *Service) AddItem(ctx context.Context, item *OrderItem) error {
	if err := item.Validate(ctx); err != nil {
		return err
	}
	if _, err := s.GetByID(ctx, scope.Default, item.OrderID); err != nil {
		return err
	}
	return s.itemLifecycle.Create(ctx, item)
}

// RecordPayment records the order's payment. At most one active payment per
// order; the uniqueness check runs in the insert transaction.
func (s *Service) RecordPayment(ctx context.Context, p *Payment) error {
	if err := p.Validate(ctx); err != nil {
		return err
	}
	if _, err := s.GetByID(ctx, scope.Default, p.OrderID); err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		exists, err := s.payments.ExistsActiveByOrder(ctx, p.OrderID, p.ID)
		if err != nil {
			return fmt.Errorf("check payment: %w", err)
		}
		if exists {
			return apperror.NewDuplicate("payment", "orderId", p.OrderID.String())
		}
		if err := s.payments.Create(ctx, p); err != nil {
			return fmt.Errorf("create payment: %w", err)
		}
		return nil
	})
}

// ItemsOf retrieves the order's items under the given scope.
func (s *Service) ItemsOf(ctx context.Context, sc scope.Scope, orderID id.ID) ([]*OrderItem, error) {
	if !sc.Valid() {
		return nil, apperror.NewInvalidScope(string(sc))
	}
	return s.items.FindByOrder(ctx, sc, orderID)
}

// PaymentsOf retrieves the order's payments under the given scope.
func (s *Service) PaymentsOf(ctx context.Context, sc scope.Scope, orderID id.ID) ([]*Payment, error) {
	if !sc.Valid() {
		return nil, apperror.NewInvalidScope(string(sc))
	}
	return s.payments.FindByOrder(ctx, sc, orderID)
}

// Total sums the active line items of an order.
func (s *Service) Total(ctx context.Context, orderID id.ID) (decimal.Decimal, error) {
	items, err := s.items.FindByOrder(ctx, scope.Default, orderID)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Total())
	}
	return total, nil
}

// RestoreWithDependents restores a soft-deleted order together with the
// dependents removed by the same cascade, in one transaction. Dependents
// deleted independently before the order keep their deleted state. Returns
// the restored order (nil when the order is missing or active, mirroring
// Restore) and the number of dependents revived.
func (s *Service) RestoreWithDependents(ctx context.Context, orderID id.ID) (*Order, int, error) {
	var restored *Order
	var revived int

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		o, err := s.orders.FindByID(ctx, scope.WithDeleted, orderID)
		if err != nil {
			if apperror.IsNotFound(err) {
				return nil
			}
			return err
		}
		if !o.IsDeleted() {
			return nil
		}

		deletedAt := *o.DeletedAt
		if err := s.orders.Restore(ctx, orderID); err != nil {
			return fmt.Errorf("restore order: %w", err)
		}

		n, err := s.propagator.RestoreDependents(ctx, cascade.KindOrder, orderID, &deletedAt)
		if err != nil {
			return err
		}

		o.SetDeletedAt(nil)
		restored = o
		revived = n
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return restored, revived, nil
}

// GetByNumber retrieves an order by its number under the given scope. The
// default scope yields at most one match; withDeleted may match several
// soft-deleted orders sharing the number, in which case one of them comes
// back.
func (s *Service) GetByNumber(ctx context.Context, sc scope.Scope, number string) (*Order, error) {
	if !sc.Valid() {
		return nil, apperror.NewInvalidScope(string(sc))
	}
	return s.orders.FindByNumber(ctx, sc, number)
}
