package services

import (
	"context"
	"log"

	"kivi-backend/internal/models"
	"kivi-backend/internal/reconcile"
	"kivi-backend/internal/repositories"
)

// VendorPriceService maintains the per-vendor price lists that feed the
// catalog and the order-summary cost valuation.
type VendorPriceService struct {
	Prices *repositories.VendorPriceRepository
}

func NewVendorPriceService(prices *repositories.VendorPriceRepository) *VendorPriceService {
	return &VendorPriceService{Prices: prices}
}

func validatePriceEntry(productID int, unit string, basePrice, markup float64) error {
	if productID <= 0 {
		return &reconcile.ValidationError{Message: "product id is required"}
	}
	if unit != models.UnitKg && unit != models.UnitEach {
		return &reconcile.ValidationError{Message: "unit must be kg or unit"}
	}
	if basePrice <= 0 {
		return &reconcile.ValidationError{Message: "base price must be positive"}
	}
	if markup < 0 {
		return &reconcile.ValidationError{Message: "markup percentage cannot be negative"}
	}
	return nil
}

func (s *VendorPriceService) ListPrices(ctx context.Context, filter *models.VendorPriceFilter) ([]*models.VendorPrice, error) {
	return s.Prices.List(ctx, filter)
}

func (s *VendorPriceService) CreatePrice(ctx context.Context, vendorID int, req *models.CreateVendorPriceRequest) (*models.VendorPrice, error) {
	if vendorID <= 0 {
		return nil, &reconcile.ValidationError{Message: "vendor id is required"}
	}
	if err := validatePriceEntry(req.ProductID, req.Unit, req.BasePrice, req.MarkupPercentage); err != nil {
		return nil, err
	}
	vp, err := s.Prices.Create(ctx, vendorID, req)
	if err != nil {
		return nil, &reconcile.RemoteError{Op: "store vendor price", Err: err}
	}
	return vp, nil
}

func (s *VendorPriceService) UpdatePrice(ctx context.Context, id int, req *models.UpdateVendorPriceRequest) (*models.VendorPrice, error) {
	if req.Unit != models.UnitKg && req.Unit != models.UnitEach {
		return nil, &reconcile.ValidationError{Message: "unit must be kg or unit"}
	}
	if req.BasePrice <= 0 {
		return nil, &reconcile.ValidationError{Message: "base price must be positive"}
	}
	if req.MarkupPercentage < 0 {
		return nil, &reconcile.ValidationError{Message: "markup percentage cannot be negative"}
	}
	ok, err := s.Prices.Update(ctx, id, req)
	if err != nil {
		return nil, &reconcile.RemoteError{Op: "update vendor price", Err: err}
	}
	if !ok {
		return nil, &reconcile.NotFoundError{Message: "vendor price not found"}
	}
	return s.Prices.GetByID(ctx, id)
}

func (s *VendorPriceService) ToggleAvailability(ctx context.Context, id int) (*models.VendorPrice, error) {
	vp, err := s.Prices.ToggleAvailability(ctx, id)
	if err != nil {
		return nil, &reconcile.RemoteError{Op: "toggle vendor price", Err: err}
	}
	if vp == nil {
		return nil, &reconcile.NotFoundError{Message: "vendor price not found"}
	}
	return vp, nil
}

func (s *VendorPriceService) DeletePrice(ctx context.Context, id int) error {
	ok, err := s.Prices.Delete(ctx, id)
	if err != nil {
		return &reconcile.RemoteError{Op: "delete vendor price", Err: err}
	}
	if !ok {
		return &reconcile.NotFoundError{Message: "vendor price not found"}
	}
	return nil
}

// BatchUpdate applies one vendor's full price round atomically. Entries are
// validated up front so a bad row rejects the whole round.
func (s *VendorPriceService) BatchUpdate(ctx context.Context, req *models.BatchUpdateVendorPricesRequest) (int, error) {
	if req.VendorID <= 0 {
		return 0, &reconcile.ValidationError{Message: "vendor id is required"}
	}
	if len(req.Prices) == 0 {
		return 0, &reconcile.ValidationError{Message: "prices are required"}
	}
	for _, p := range req.Prices {
		if err := validatePriceEntry(p.ProductID, p.Unit, p.BasePrice, p.MarkupPercentage); err != nil {
			return 0, err
		}
	}

	n, err := s.Prices.BatchUpsert(ctx, req.VendorID, req.Prices)
	if err != nil {
		return 0, &reconcile.RemoteError{Op: "batch update vendor prices", Err: err}
	}
	log.Printf("[VendorPrice] Batch updated %d price(s) for vendor %d", n, req.VendorID)
	return n, nil
}
