// Package numbering wires the generic numerator to the order domain.
package numbering

import (
	"context"
	"time"

	"bakehouse/internal/domain/orders"
	"bakehouse/pkg/numerator"
)

var _ orders.NumberGenerator = (*OrderNumbers)(nil)

// OrderNumbers issues order numbers in the ORD-<year>-<n> format, resetting
// the counter each year. Orders are internal documents, so the cached
// strategy is fine: a gap after a restart costs nothing.
type OrderNumbers struct {
	svc  *numerator.Service
	cfg  numerator.Config
	opts *numerator.Options
}

// NewOrderNumbers creates an order number generator over the given querier
// (typically the connection pool).
func NewOrderNumbers(q numerator.Querier) *OrderNumbers {
	return &OrderNumbers{
		svc: numerator.New(q),
		cfg: numerator.DefaultConfig("ORD"),
		opts: &numerator.Options{
			Strategy:  numerator.StrategyCached,
			RangeSize: 50,
		},
	}
}

// Next implements orders.NumberGenerator.
func (n *OrderNumbers) Next(ctx context.Context) (string, error) {
	return n.svc.GetNextNumber(ctx, n.cfg, n.opts, time.Now())
}
