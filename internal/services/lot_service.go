package services

import (
	"context"
	"errors"
	"log"

	"kivi-backend/internal/cache"
	"kivi-backend/internal/models"
	"kivi-backend/internal/reconcile"
	"kivi-backend/internal/repositories"
)

type LotService struct {
	Lots *repositories.LotRepository
}

func NewLotService(lots *repositories.LotRepository) *LotService {
	return &LotService{Lots: lots}
}

func (s *LotService) ListLots(ctx context.Context, productID int) ([]*models.Lot, error) {
	return s.Lots.List(ctx, productID)
}

func (s *LotService) CreateLot(ctx context.Context, req *models.CreateLotRequest) (*models.Lot, error) {
	if req.ProductID <= 0 {
		return nil, &reconcile.ValidationError{Message: "product id is required"}
	}
	if req.Unit != models.UnitKg && req.Unit != models.UnitEach {
		return nil, &reconcile.ValidationError{Message: "unit must be kg or unit"}
	}
	if req.QtyKg <= 0 && req.QtyUnit <= 0 {
		return nil, &reconcile.ValidationError{Message: "lot quantity must be positive"}
	}

	lot := &models.Lot{
		ProductID: req.ProductID,
		OrderID:   req.OrderID,
		QtyKg:     req.QtyKg,
		QtyUnit:   req.QtyUnit,
		Unit:      req.Unit,
		Status:    models.LotStatusUnassigned,
	}
	if err := s.Lots.Create(ctx, lot); err != nil {
		return nil, &reconcile.RemoteError{Op: "store lot", Err: err}
	}
	cache.InvalidateSummaries(ctx)
	return lot, nil
}

// MarkWaste writes a lot off. Wasted stock leaves the excess pool but stays
// on record for shrinkage tracking.
func (s *LotService) MarkWaste(ctx context.Context, id int) (*models.Lot, error) {
	ok, err := s.Lots.UpdateStatus(ctx, id, models.LotStatusWaste)
	if err != nil {
		return nil, &reconcile.RemoteError{Op: "mark lot waste", Err: err}
	}
	if !ok {
		return nil, &reconcile.NotFoundError{Message: "lot not found"}
	}
	cache.InvalidateSummaries(ctx)
	log.Printf("[Lot] Lot %d written off as waste", id)
	return s.Lots.GetByID(ctx, id)
}

// Process converts surplus of one product into another, e.g. loose kilos
// bagged into retail units.
func (s *LotService) Process(ctx context.Context, req *models.ProcessLotRequest) (*models.Lot, error) {
	if req.FromProductID <= 0 || req.ToProductID <= 0 {
		return nil, &reconcile.ValidationError{Message: "source and target products are required"}
	}
	if req.InputQtyKg <= 0 || req.OutputQty <= 0 {
		return nil, &reconcile.ValidationError{Message: "input and output quantities must be positive"}
	}
	if req.Unit != models.UnitKg && req.Unit != models.UnitEach {
		return nil, &reconcile.ValidationError{Message: "unit must be kg or unit"}
	}

	lot, err := s.Lots.Process(ctx, req)
	if errors.Is(err, repositories.ErrInsufficientStock) {
		return nil, &reconcile.ValidationError{Message: "not enough unassigned stock of the source product"}
	}
	if err != nil {
		return nil, &reconcile.RemoteError{Op: "process lots", Err: err}
	}
	cache.InvalidateSummaries(ctx)
	log.Printf("[Lot] Processed %.3f kg of product %d into lot %d (product %d)",
		req.InputQtyKg, req.FromProductID, lot.ID, lot.ProductID)
	return lot, nil
}
