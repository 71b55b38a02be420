package services

import (
	"context"
	"log"

	"kivi-backend/internal/cache"
	"kivi-backend/internal/models"
	"kivi-backend/internal/reconcile"
	"kivi-backend/internal/repositories"
)

// ChargeService applies the narrow charge edits. Price and quantity are
// separate operations on purpose: a weighing correction and a rate change
// are different business events and either can fail alone.
type ChargeService struct {
	Charges *repositories.ChargeRepository
}

func NewChargeService(charges *repositories.ChargeRepository) *ChargeService {
	return &ChargeService{Charges: charges}
}

func (s *ChargeService) ListCharges(ctx context.Context, filter *models.ChargeFilter) ([]*models.Charge, error) {
	return s.Charges.List(ctx, filter)
}

func (s *ChargeService) UpdatePrice(ctx context.Context, id int, unitPrice float64) (*models.Charge, error) {
	if unitPrice < 0 {
		return nil, &reconcile.ValidationError{Message: "unit price cannot be negative"}
	}
	ok, err := s.Charges.UpdatePrice(ctx, id, unitPrice)
	if err != nil {
		return nil, &reconcile.RemoteError{Op: "update charge price", Err: err}
	}
	if !ok {
		return nil, &reconcile.NotFoundError{Message: "charge not found"}
	}
	cache.InvalidateSummaries(ctx)
	return s.Charges.GetByID(ctx, id)
}

func (s *ChargeService) UpdateQuantity(ctx context.Context, id int, chargedQty float64) (*models.Charge, error) {
	if chargedQty < 0 {
		return nil, &reconcile.ValidationError{Message: "charged quantity cannot be negative"}
	}
	ok, err := s.Charges.UpdateQuantity(ctx, id, chargedQty)
	if err != nil {
		return nil, &reconcile.RemoteError{Op: "update charge quantity", Err: err}
	}
	if !ok {
		return nil, &reconcile.NotFoundError{Message: "charge not found"}
	}
	cache.InvalidateSummaries(ctx)
	return s.Charges.GetByID(ctx, id)
}

func (s *ChargeService) ChangeOrder(ctx context.Context, id, orderID int) (*models.Charge, error) {
	if orderID <= 0 {
		return nil, &reconcile.ValidationError{Message: "order id is required"}
	}
	ok, err := s.Charges.ChangeOrder(ctx, id, orderID)
	if err != nil {
		return nil, &reconcile.RemoteError{Op: "move charge", Err: err}
	}
	if !ok {
		return nil, &reconcile.NotFoundError{Message: "charge not found"}
	}
	cache.InvalidateSummaries(ctx)
	return s.Charges.GetByID(ctx, id)
}

// ReturnToExcess cancels the billing and puts the stock back into the
// unassigned pool.
func (s *ChargeService) ReturnToExcess(ctx context.Context, id int) (*models.Lot, error) {
	lot, err := s.Charges.ReturnToExcess(ctx, id)
	if err != nil {
		return nil, &reconcile.RemoteError{Op: "return charge to excess", Err: err}
	}
	if lot == nil {
		return nil, &reconcile.NotFoundError{Message: "charge not found"}
	}
	cache.InvalidateSummaries(ctx)
	log.Printf("[Charge] Charge %d returned to excess as lot %d", id, lot.ID)
	return lot, nil
}
