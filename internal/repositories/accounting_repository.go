package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"kivi-backend/internal/models"
	"kivi-backend/internal/reconcile"
)

// AccountingRepository computes the summary cards served by the accounting
// endpoints. Everything is recomputed from storage on every call.
type AccountingRepository struct {
	DB *pgxpool.Pool
}

func NewAccountingRepository(db *pgxpool.Pool) *AccountingRepository {
	return &AccountingRepository{DB: db}
}

// OrderSummaries returns the per-order accounting cards, newest order first.
// Cost is valued at the cheapest available vendor price for each charged
// product; charges without any vendor price contribute zero cost.
func (r *AccountingRepository) OrderSummaries(ctx context.Context, includeDetails bool) ([]*models.OrderSummary, error) {
	query := `
		SELECT o.id, o.title,
		       COALESCE(b.billed, 0),
		       COALESCE(c.cost, 0),
		       COALESCE(p.paid, 0)
		FROM orders o
		LEFT JOIN (
			SELECT order_id,
			       SUM(COALESCE(charged_qty, qty) * unit_price - discount_amount) AS billed
			FROM charges
			WHERE status <> 'returned'
			GROUP BY order_id
		) b ON b.order_id = o.id
		LEFT JOIN (
			SELECT ch.order_id,
			       SUM(COALESCE(ch.charged_qty, ch.qty) * COALESCE(vp.base_price, 0)) AS cost
			FROM charges ch
			LEFT JOIN LATERAL (
				SELECT MIN(base_price) AS base_price
				FROM vendor_prices
				WHERE product_id = ch.product_id AND unit = ch.unit AND available
			) vp ON TRUE
			WHERE ch.status <> 'returned'
			GROUP BY ch.order_id
		) c ON c.order_id = o.id
		LEFT JOIN (
			SELECT order_id, SUM(amount) AS paid
			FROM payment_applications
			GROUP BY order_id
		) p ON p.order_id = o.id
		WHERE o.status = 'confirmed'
		ORDER BY o.created_at DESC, o.id DESC
	`
	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []*models.OrderSummary
	byOrder := make(map[int]*models.OrderSummary)
	for rows.Next() {
		s := &models.OrderSummary{PurchaseStatus: models.PurchaseComplete}
		var paid float64
		err := rows.Scan(&s.Order.ID, &s.Order.Title, &s.Billed, &s.Cost, &paid)
		if err != nil {
			return nil, err
		}
		s.Due = s.Billed - paid
		s.ProfitAmount = s.Billed - s.Cost
		if s.Cost > 0 {
			s.ProfitPct = s.ProfitAmount / s.Cost * 100
		}
		summaries = append(summaries, s)
		byOrder[s.Order.ID] = s
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	orderStatus, productStatus, err := r.purchaseStatuses(ctx)
	if err != nil {
		return nil, err
	}
	for id, st := range orderStatus {
		if s, ok := byOrder[id]; ok {
			s.PurchaseStatus = st
		}
	}

	if includeDetails {
		if err := r.attachOrderDetails(ctx, byOrder, productStatus); err != nil {
			return nil, err
		}
	}
	return summaries, nil
}

type orderProductKey struct {
	orderID   int
	productID int
}

// purchaseStatuses compares, per order and product, the quantity customers
// ordered against what was charged plus what sits unassigned in excess.
func (r *AccountingRepository) purchaseStatuses(ctx context.Context) (map[int]models.PurchaseStatus, map[orderProductKey]models.PurchaseStatus, error) {
	query := `
		SELECT oi.order_id, oi.product_id,
		       SUM(oi.qty) AS ordered,
		       COALESCE(ch.charged, 0),
		       COALESCE(l.excess, 0)
		FROM order_items oi
		LEFT JOIN (
			SELECT order_id, product_id, SUM(COALESCE(charged_qty, qty)) AS charged
			FROM charges
			WHERE status <> 'returned'
			GROUP BY order_id, product_id
		) ch ON ch.order_id = oi.order_id AND ch.product_id = oi.product_id
		LEFT JOIN (
			SELECT order_id, product_id, SUM(qty_kg + qty_unit) AS excess
			FROM lots
			WHERE status = 'unassigned'
			GROUP BY order_id, product_id
		) l ON l.order_id = oi.order_id AND l.product_id = oi.product_id
		GROUP BY oi.order_id, oi.product_id, ch.charged, l.excess
	`
	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	orderStatus := make(map[int]models.PurchaseStatus)
	productStatus := make(map[orderProductKey]models.PurchaseStatus)
	for rows.Next() {
		var orderID, productID int
		var ordered, charged, excess float64
		if err := rows.Scan(&orderID, &productID, &ordered, &charged, &excess); err != nil {
			return nil, nil, err
		}
		st := models.PurchaseComplete
		supplied := charged + excess
		switch {
		case supplied < ordered:
			st = models.PurchaseShort
		case excess > 0 || supplied > ordered:
			st = models.PurchaseOver
		}
		productStatus[orderProductKey{orderID, productID}] = st

		// Short dominates at the order level; over beats complete.
		prev, ok := orderStatus[orderID]
		switch {
		case !ok:
			orderStatus[orderID] = st
		case prev == models.PurchaseShort || st == models.PurchaseShort:
			orderStatus[orderID] = models.PurchaseShort
		case prev == models.PurchaseOver || st == models.PurchaseOver:
			orderStatus[orderID] = models.PurchaseOver
		}
	}
	return orderStatus, productStatus, rows.Err()
}

// attachOrderDetails fills the customer and product breakdown of each card
// from the charge rows.
func (r *AccountingRepository) attachOrderDetails(ctx context.Context, byOrder map[int]*models.OrderSummary, productStatus map[orderProductKey]models.PurchaseStatus) error {
	query := `
		SELECT ` + chargeColumns + `, cu.name
		FROM charges c
		JOIN products p ON p.id = c.product_id
		JOIN customers cu ON cu.id = c.customer_id
		WHERE c.status <> 'returned'
		ORDER BY cu.name, p.name, c.id
	`
	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	type custKey struct {
		orderID    int
		customerID int
	}
	customers := make(map[custKey]*models.OrderCustomerSummary)
	products := make(map[orderProductKey]map[int]*models.OrderProductSummary)

	for rows.Next() {
		charge := &models.Charge{}
		var customerName string
		err := rows.Scan(
			&charge.ID,
			&charge.OrderID,
			&charge.CustomerID,
			&charge.ProductID,
			&charge.ProductName,
			&charge.Qty,
			&charge.ChargedQty,
			&charge.Unit,
			&charge.UnitPrice,
			&charge.DiscountAmount,
			&charge.Total,
			&charge.Status,
			&charge.CreatedAt,
			&customerName,
		)
		if err != nil {
			return err
		}
		order, ok := byOrder[charge.OrderID]
		if !ok {
			continue
		}

		ck := custKey{charge.OrderID, charge.CustomerID}
		cust, ok := customers[ck]
		if !ok {
			cust = &models.OrderCustomerSummary{
				CustomerID:   charge.CustomerID,
				CustomerName: customerName,
			}
			customers[ck] = cust
			order.Customers = append(order.Customers, cust)
		}
		cust.Billed += charge.Total

		pk := orderProductKey{charge.OrderID, charge.ProductID}
		if products[pk] == nil {
			products[pk] = make(map[int]*models.OrderProductSummary)
		}
		prod, ok := products[pk][charge.CustomerID]
		if !ok {
			prod = &models.OrderProductSummary{
				ProductID:      charge.ProductID,
				ProductName:    charge.ProductName,
				Unit:           charge.Unit,
				PurchaseStatus: models.PurchaseComplete,
			}
			if st, ok := productStatus[pk]; ok {
				prod.PurchaseStatus = st
			}
			products[pk][charge.CustomerID] = prod
			cust.Products = append(cust.Products, prod)
		}
		prod.Qty += charge.BilledQty()
		prod.TotalBilled += charge.Total
		prod.Charges = append(prod.Charges, charge)
	}
	return rows.Err()
}

// CustomerSummaries returns the per-customer accounting cards. Due is
// computed here, never by the client.
func (r *AccountingRepository) CustomerSummaries(ctx context.Context, includeOrders bool) ([]*models.CustomerSummary, error) {
	query := `
		SELECT c.id, c.name,
		       COALESCE(b.billed, 0),
		       COALESCE(p.paid, 0)
		FROM customers c
		LEFT JOIN (
			SELECT customer_id,
			       SUM(COALESCE(charged_qty, qty) * unit_price - discount_amount) AS billed
			FROM charges
			WHERE status <> 'returned'
			GROUP BY customer_id
		) b ON b.customer_id = c.id
		LEFT JOIN (
			SELECT customer_id, SUM(amount) AS paid
			FROM payments
			GROUP BY customer_id
		) p ON p.customer_id = c.id
		ORDER BY c.name, c.id
	`
	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []*models.CustomerSummary
	byCustomer := make(map[int]*models.CustomerSummary)
	for rows.Next() {
		s := &models.CustomerSummary{}
		err := rows.Scan(&s.Customer.ID, &s.Customer.Name, &s.Billed, &s.Paid)
		if err != nil {
			return nil, err
		}
		s.Due = s.Billed - s.Paid
		summaries = append(summaries, s)
		byCustomer[s.Customer.ID] = s
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if includeOrders {
		if err := r.attachCustomerOrders(ctx, byCustomer); err != nil {
			return nil, err
		}
	}
	return summaries, nil
}

func (r *AccountingRepository) attachCustomerOrders(ctx context.Context, byCustomer map[int]*models.CustomerSummary) error {
	query := `
		SELECT b.customer_id, b.order_id, b.billed, COALESCE(p.paid, 0)
		FROM (
			SELECT ch.customer_id, ch.order_id,
			       SUM(COALESCE(ch.charged_qty, ch.qty) * ch.unit_price - ch.discount_amount) AS billed
			FROM charges ch
			WHERE ch.status <> 'returned'
			GROUP BY ch.customer_id, ch.order_id
		) b
		LEFT JOIN (
			SELECT pm.customer_id, pa.order_id, SUM(pa.amount) AS paid
			FROM payment_applications pa
			JOIN payments pm ON pm.id = pa.payment_id
			GROUP BY pm.customer_id, pa.order_id
		) p ON p.customer_id = b.customer_id AND p.order_id = b.order_id
		JOIN orders o ON o.id = b.order_id
		ORDER BY o.created_at, o.id
	`
	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	type custOrderKey struct {
		customerID int
		orderID    int
	}
	orders := make(map[custOrderKey]*models.CustomerOrderSummary)
	for rows.Next() {
		var customerID int
		o := &models.CustomerOrderSummary{}
		if err := rows.Scan(&customerID, &o.OrderID, &o.Billed, &o.Paid); err != nil {
			return err
		}
		o.Due = o.Billed - o.Paid
		cust, ok := byCustomer[customerID]
		if !ok {
			continue
		}
		cust.Orders = append(cust.Orders, o)
		orders[custOrderKey{customerID, o.OrderID}] = o
	}
	if err := rows.Err(); err != nil {
		return err
	}

	lineQuery := `
		SELECT c.id, c.customer_id, c.order_id, c.product_id, p.name,
		       c.qty, c.charged_qty, c.unit, c.unit_price,
		       COALESCE(c.charged_qty, c.qty) * c.unit_price - c.discount_amount
		FROM charges c
		JOIN products p ON p.id = c.product_id
		WHERE c.status <> 'returned'
		ORDER BY c.id
	`
	lineRows, err := r.DB.Query(ctx, lineQuery)
	if err != nil {
		return err
	}
	defer lineRows.Close()

	for lineRows.Next() {
		var customerID, orderID int
		line := &models.CustomerProductSummary{}
		err := lineRows.Scan(
			&line.ChargeID,
			&customerID,
			&orderID,
			&line.ProductID,
			&line.ProductName,
			&line.Qty,
			&line.ChargedQty,
			&line.Unit,
			&line.UnitPrice,
			&line.Total,
		)
		if err != nil {
			return err
		}
		if o, ok := orders[custOrderKey{customerID, orderID}]; ok {
			o.Products = append(o.Products, line)
		}
	}
	return lineRows.Err()
}

// CustomerDebts returns the customer's outstanding balance per order, oldest
// order first. Orders already settled still appear; the caller decides what
// counts as owed.
func (r *AccountingRepository) CustomerDebts(ctx context.Context, customerID int) ([]reconcile.OrderDebt, error) {
	query := `
		SELECT b.order_id, b.billed, COALESCE(p.paid, 0)
		FROM (
			SELECT order_id,
			       SUM(COALESCE(charged_qty, qty) * unit_price - discount_amount) AS billed
			FROM charges
			WHERE customer_id = $1 AND status <> 'returned'
			GROUP BY order_id
		) b
		LEFT JOIN (
			SELECT pa.order_id, SUM(pa.amount) AS paid
			FROM payment_applications pa
			JOIN payments pm ON pm.id = pa.payment_id
			WHERE pm.customer_id = $1
			GROUP BY pa.order_id
		) p ON p.order_id = b.order_id
		JOIN orders o ON o.id = b.order_id
		ORDER BY o.created_at, o.id
	`
	rows, err := r.DB.Query(ctx, query, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var debts []reconcile.OrderDebt
	for rows.Next() {
		var orderID int
		var billed, paid float64
		if err := rows.Scan(&orderID, &billed, &paid); err != nil {
			return nil, err
		}
		debts = append(debts, reconcile.OrderDebt{
			OrderID: orderID,
			Billed:  decimal.NewFromFloat(billed),
			Paid:    decimal.NewFromFloat(paid),
		})
	}
	return debts, rows.Err()
}
