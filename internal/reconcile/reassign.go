package reconcile

import "github.com/shopspring/decimal"

// BuildReassignmentRequest validates a surplus reassignment and resolves it
// against the fetched excess index. All five scalar inputs are mandatory and
// checked before any lookup. A failed lookup returns NotFoundError: the index
// is stale relative to the backend and should be re-fetched.
//
// Qty and unitPrice are taken verbatim from the caller; a qty exceeding the
// remaining excess is the backend's to reject. The unit always comes from the
// matched excess line so source and destination records can never disagree.
func BuildReassignmentRequest(sourceOrderID, productID, destCustomerID int, qty, unitPrice decimal.Decimal, index []ExcessOrder) (*ReassignmentRequest, error) {
	if sourceOrderID == 0 {
		return nil, validationf("source order is required")
	}
	if productID == 0 {
		return nil, validationf("product is required")
	}
	if destCustomerID == 0 {
		return nil, validationf("destination customer is required")
	}
	if qty.LessThanOrEqual(decimal.Zero) {
		return nil, validationf("quantity must be positive, got %s", qty)
	}
	if unitPrice.LessThanOrEqual(decimal.Zero) {
		return nil, validationf("unit price must be positive, got %s", unitPrice)
	}

	line, err := findExcessLine(index, sourceOrderID, productID)
	if err != nil {
		return nil, err
	}

	return &ReassignmentRequest{
		LotID:      line.LotID,
		OrderID:    sourceOrderID,
		ProductID:  productID,
		CustomerID: destCustomerID,
		Qty:        qty,
		Unit:       line.Unit,
		UnitPrice:  unitPrice,
	}, nil
}

func findExcessLine(index []ExcessOrder, orderID, productID int) (*ExcessLine, error) {
	for i := range index {
		if index[i].OrderID != orderID {
			continue
		}
		for j := range index[i].Lines {
			if index[i].Lines[j].ProductID == productID {
				return &index[i].Lines[j], nil
			}
		}
		return nil, notFoundf("order %d has no excess of product %d", orderID, productID)
	}
	return nil, notFoundf("no excess recorded for order %d", orderID)
}
