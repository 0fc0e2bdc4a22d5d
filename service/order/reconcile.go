package order

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	orderRepo "procure.GO/model/repository/order"
)

// Drift is an order whose cached total disagreed with its lines.
type Drift struct {
	PONumber string
	Stored   decimal.Decimal
	Actual   decimal.Decimal
}

// ReconcileResult summarizes a reconciliation run.
type ReconcileResult struct {
	Checked int
	Drifted []Drift
}

// Reconcile recomputes every order total and reports the ones that changed.
func (s *Service) Reconcile(ctx context.Context) (*ReconcileResult, error) {
	ids, err := orderRepo.NewOrderRepository(s.db).IDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	res := &ReconcileResult{}
	for _, id := range ids {
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			orders := orderRepo.NewOrderRepository(tx)
			po, err := orders.FindByID(ctx, id)
			if err != nil || po == nil {
				return err
			}
			actual, err := recomputeTotal(ctx, orders, id)
			if err != nil {
				return err
			}
			res.Checked++
			if !actual.Equal(po.TotalPrice) {
				res.Drifted = append(res.Drifted, Drift{PONumber: po.Number(), Stored: po.TotalPrice, Actual: actual})
			}
			return nil
		})
		if err != nil {
			return res, fmt.Errorf("reconcile order %d: %w", id, err)
		}
	}
	return res, nil
}
