package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kivi-backend/internal/models"
	"kivi-backend/internal/reconcile"
	"kivi-backend/internal/repositories"
)

type stubLotStore struct {
	lots         []*models.Lot
	productNames map[int]string
	orderTitles  map[int]string
	reassignErr  error

	gotLotID  int
	gotCharge *models.Charge
}

func (s *stubLotStore) ListUnassignedWithProduct(ctx context.Context) ([]*models.Lot, map[int]string, map[int]string, error) {
	return s.lots, s.productNames, s.orderTitles, nil
}

func (s *stubLotStore) ReassignToCustomer(ctx context.Context, lotID int, charge *models.Charge) error {
	s.gotLotID = lotID
	s.gotCharge = charge
	if s.reassignErr != nil {
		return s.reassignErr
	}
	charge.ID = 1
	return nil
}

func intPtr(v int) *int { return &v }

func excessStub() *stubLotStore {
	return &stubLotStore{
		lots: []*models.Lot{
			{ID: 11, ProductID: 9, OrderID: intPtr(4), QtyKg: 30, Unit: models.UnitKg, Status: models.LotStatusUnassigned},
		},
		productNames: map[int]string{9: "Tomato"},
		orderTitles:  map[int]string{4: "Week 31"},
	}
}

func TestReassign(t *testing.T) {
	store := excessStub()
	svc := &ReassignmentService{Lots: store}

	charge, err := svc.Reassign(context.Background(), &models.ReassignExcessRequest{
		OrderID: 4, ProductID: 9, CustomerID: 2, Qty: 12, UnitPrice: 55,
	})
	require.NoError(t, err)

	assert.Equal(t, 11, store.gotLotID)
	assert.Equal(t, 4, charge.OrderID)
	assert.Equal(t, 2, charge.CustomerID)
	assert.Equal(t, models.UnitKg, charge.Unit) // unit comes from the matched lot
	assert.InDelta(t, 660, charge.Total, 1e-9)
}

func TestReassign_InsufficientStock(t *testing.T) {
	store := excessStub()
	store.reassignErr = repositories.ErrInsufficientStock
	svc := &ReassignmentService{Lots: store}

	// The index said 30 kg, but by commit time another reassignment has
	// drained the lot. The guarded update rejects it and the caller sees a
	// validation failure, not a stored charge.
	_, err := svc.Reassign(context.Background(), &models.ReassignExcessRequest{
		OrderID: 4, ProductID: 9, CustomerID: 2, Qty: 25, UnitPrice: 55,
	})
	require.Error(t, err)

	var verr *reconcile.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestReassign_NoMatchingExcess(t *testing.T) {
	svc := &ReassignmentService{Lots: &stubLotStore{}}

	_, err := svc.Reassign(context.Background(), &models.ReassignExcessRequest{
		OrderID: 4, ProductID: 9, CustomerID: 2, Qty: 5, UnitPrice: 55,
	})
	require.Error(t, err)

	var nferr *reconcile.NotFoundError
	assert.ErrorAs(t, err, &nferr)
}
