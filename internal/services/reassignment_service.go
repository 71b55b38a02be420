package services

import (
	"context"
	"errors"
	"log"

	"github.com/shopspring/decimal"

	"kivi-backend/internal/cache"
	"kivi-backend/internal/metrics"
	"kivi-backend/internal/models"
	"kivi-backend/internal/reconcile"
	"kivi-backend/internal/repositories"
)

// lotStore is the slice of the lot repository the reassignment flow needs.
type lotStore interface {
	ListUnassignedWithProduct(ctx context.Context) ([]*models.Lot, map[int]string, map[int]string, error)
	ReassignToCustomer(ctx context.Context, lotID int, charge *models.Charge) error
}

// ReassignmentService moves surplus stock from an order's excess to a
// customer, billing them for it. The excess index is always re-read from
// storage here, never taken from the cache: a reassignment must fail against
// what the database holds now, not against what a client last saw.
type ReassignmentService struct {
	Lots lotStore
}

func NewReassignmentService(lots *repositories.LotRepository) *ReassignmentService {
	return &ReassignmentService{Lots: lots}
}

func (s *ReassignmentService) Reassign(ctx context.Context, req *models.ReassignExcessRequest) (*models.Charge, error) {
	index, err := s.loadIndex(ctx)
	if err != nil {
		return nil, &reconcile.RemoteError{Op: "load excess index", Err: err}
	}

	rr, err := reconcile.BuildReassignmentRequest(
		req.OrderID,
		req.ProductID,
		req.CustomerID,
		decimal.NewFromFloat(req.Qty),
		decimal.NewFromFloat(req.UnitPrice),
		index,
	)
	if err != nil {
		return nil, err
	}

	charge := &models.Charge{
		OrderID:    rr.OrderID,
		CustomerID: rr.CustomerID,
		ProductID:  rr.ProductID,
		Qty:        rr.Qty.InexactFloat64(),
		Unit:       rr.Unit,
		UnitPrice:  rr.UnitPrice.InexactFloat64(),
	}
	if err := s.Lots.ReassignToCustomer(ctx, rr.LotID, charge); err != nil {
		if errors.Is(err, repositories.ErrInsufficientStock) {
			return nil, &reconcile.ValidationError{Message: "quantity exceeds the remaining excess of the lot"}
		}
		return nil, &reconcile.RemoteError{Op: "store reassignment", Err: err}
	}
	charge.Total = charge.BilledQty()*charge.UnitPrice - charge.DiscountAmount

	metrics.ExcessReassignments.Inc()
	cache.InvalidateSummaries(ctx)
	log.Printf("[Reassign] Lot %d: %.3f %s of product %d from order %d to customer %d",
		rr.LotID, charge.Qty, charge.Unit, charge.ProductID, charge.OrderID, charge.CustomerID)
	return charge, nil
}

func (s *ReassignmentService) loadIndex(ctx context.Context) ([]reconcile.ExcessOrder, error) {
	lots, productNames, orderTitles, err := s.Lots.ListUnassignedWithProduct(ctx)
	if err != nil {
		return nil, err
	}

	var index []reconcile.ExcessOrder
	byOrder := make(map[int]int) // order id -> index position
	for _, lot := range lots {
		if lot.OrderID == nil {
			continue // orphan lots are not reachable through the order-keyed index
		}
		orderID := *lot.OrderID
		pos, ok := byOrder[orderID]
		if !ok {
			pos = len(index)
			byOrder[orderID] = pos
			index = append(index, reconcile.ExcessOrder{
				OrderID:    orderID,
				OrderTitle: orderTitles[orderID],
			})
		}
		index[pos].Lines = append(index[pos].Lines, reconcile.ExcessLine{
			LotID:       lot.ID,
			ProductID:   lot.ProductID,
			ProductName: productNames[lot.ProductID],
			Qty:         decimal.NewFromFloat(lot.Qty()),
			Unit:        lot.Unit,
		})
	}
	return index, nil
}
