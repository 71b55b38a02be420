package services

import (
	"context"

	"kivi-backend/internal/cache"
	"kivi-backend/internal/models"
	"kivi-backend/internal/repositories"
)

// AccountingService serves the summary cards, fronted by the optional Redis
// cache. Detail variants are cached under their own keys so a cached shallow
// card is never served where a deep one was asked for.
type AccountingService struct {
	Accounting *repositories.AccountingRepository
	Lots       *repositories.LotRepository
}

func NewAccountingService(accounting *repositories.AccountingRepository, lots *repositories.LotRepository) *AccountingService {
	return &AccountingService{Accounting: accounting, Lots: lots}
}

func (s *AccountingService) OrderSummaries(ctx context.Context, includeDetails bool) ([]*models.OrderSummary, error) {
	key := cache.OrdersSummaryKey
	if includeDetails {
		key += ":details"
	}
	var cached []*models.OrderSummary
	if cache.GetJSON(ctx, key, &cached) {
		return cached, nil
	}

	summaries, err := s.Accounting.OrderSummaries(ctx, includeDetails)
	if err != nil {
		return nil, err
	}
	cache.SetJSON(ctx, key, summaries)
	return summaries, nil
}

func (s *AccountingService) CustomerSummaries(ctx context.Context, includeOrders bool) ([]*models.CustomerSummary, error) {
	key := cache.CustomersSummaryKey
	if includeOrders {
		key += ":orders"
	}
	var cached []*models.CustomerSummary
	if cache.GetJSON(ctx, key, &cached) {
		return cached, nil
	}

	summaries, err := s.Accounting.CustomerSummaries(ctx, includeOrders)
	if err != nil {
		return nil, err
	}
	cache.SetJSON(ctx, key, summaries)
	return summaries, nil
}

// ExcessIndex groups the unassigned lots by source order. Lots recorded
// without a source order are grouped under order id 0.
func (s *AccountingService) ExcessIndex(ctx context.Context) ([]*models.ExcessOrderSummary, error) {
	var cached []*models.ExcessOrderSummary
	if cache.GetJSON(ctx, cache.ExcessIndexKey, &cached) {
		return cached, nil
	}

	lots, productNames, orderTitles, err := s.Lots.ListUnassignedWithProduct(ctx)
	if err != nil {
		return nil, err
	}

	var index []*models.ExcessOrderSummary
	byOrder := make(map[int]*models.ExcessOrderSummary)
	for _, lot := range lots {
		orderID := 0
		if lot.OrderID != nil {
			orderID = *lot.OrderID
		}
		group, ok := byOrder[orderID]
		if !ok {
			group = &models.ExcessOrderSummary{
				Order: models.OrderRef{ID: orderID, Title: orderTitles[orderID]},
			}
			byOrder[orderID] = group
			index = append(index, group)
		}
		group.Excesses = append(group.Excesses, &models.ExcessLineSummary{
			LotID:       lot.ID,
			ProductID:   lot.ProductID,
			ProductName: productNames[lot.ProductID],
			ExcessQty:   lot.Qty(),
			Unit:        lot.Unit,
		})
	}

	cache.SetJSON(ctx, cache.ExcessIndexKey, index)
	return index, nil
}
