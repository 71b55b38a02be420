package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"kivi-backend/internal/models"
)

type ChargeRepository struct {
	DB *pgxpool.Pool
}

func NewChargeRepository(db *pgxpool.Pool) *ChargeRepository {
	return &ChargeRepository{DB: db}
}

const chargeColumns = `
	c.id, c.order_id, c.customer_id, c.product_id, p.name,
	c.qty, c.charged_qty, c.unit, c.unit_price, c.discount_amount,
	COALESCE(c.charged_qty, c.qty) * c.unit_price - c.discount_amount,
	c.status, c.created_at
`

func scanCharge(row pgx.Row) (*models.Charge, error) {
	charge := &models.Charge{}
	err := row.Scan(
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
	)
	if err != nil {
		return nil, err
	}
	return charge, nil
}

func (r *ChargeRepository) Create(ctx context.Context, charge *models.Charge) error {
	query := `
		INSERT INTO charges (order_id, customer_id, product_id, qty, charged_qty, unit, unit_price, discount_amount, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`
	if charge.Status == "" {
		charge.Status = models.ChargeStatusPending
	}
	return r.DB.QueryRow(ctx, query,
		charge.OrderID,
		charge.CustomerID,
		charge.ProductID,
		charge.Qty,
		charge.ChargedQty,
		charge.Unit,
		charge.UnitPrice,
		charge.DiscountAmount,
		charge.Status,
	).Scan(&charge.ID, &charge.CreatedAt)
}

func (r *ChargeRepository) GetByID(ctx context.Context, id int) (*models.Charge, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM charges c
		JOIN products p ON p.id = c.product_id
		WHERE c.id = $1
	`, chargeColumns)

	charge, err := scanCharge(r.DB.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return charge, nil
}

// List returns charges matching the filter, oldest first so payment
// allocation and the summaries see orders in creation order.
func (r *ChargeRepository) List(ctx context.Context, filter *models.ChargeFilter) ([]*models.Charge, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM charges c
		JOIN products p ON p.id = c.product_id
		WHERE ($1 = 0 OR c.customer_id = $1)
		  AND ($2 = 0 OR c.order_id = $2)
		  AND ($3 = '' OR c.status = $3)
		ORDER BY c.created_at, c.id
	`, chargeColumns)

	rows, err := r.DB.Query(ctx, query, filter.CustomerID, filter.OrderID, filter.Status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var charges []*models.Charge
	for rows.Next() {
		charge, err := scanCharge(rows)
		if err != nil {
			return nil, err
		}
		charges = append(charges, charge)
	}
	return charges, rows.Err()
}

func (r *ChargeRepository) UpdatePrice(ctx context.Context, id int, unitPrice float64) (bool, error) {
	tag, err := r.DB.Exec(ctx,
		"UPDATE charges SET unit_price = $1 WHERE id = $2", unitPrice, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *ChargeRepository) UpdateQuantity(ctx context.Context, id int, chargedQty float64) (bool, error) {
	tag, err := r.DB.Exec(ctx,
		"UPDATE charges SET charged_qty = $1 WHERE id = $2", chargedQty, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *ChargeRepository) ChangeOrder(ctx context.Context, id, orderID int) (bool, error) {
	tag, err := r.DB.Exec(ctx,
		"UPDATE charges SET order_id = $1 WHERE id = $2", orderID, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// ReturnToExcess marks the charge returned and creates an unassigned lot
// with the charge's quantity, in one transaction.
func (r *ChargeRepository) ReturnToExcess(ctx context.Context, id int) (*models.Lot, error) {
	charge, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if charge == nil {
		return nil, nil
	}

	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		"UPDATE charges SET status = $1 WHERE id = $2", models.ChargeStatusReturned, id); err != nil {
		return nil, err
	}

	lot := &models.Lot{
		ProductID: charge.ProductID,
		OrderID:   &charge.OrderID,
		Unit:      charge.Unit,
		Status:    models.LotStatusUnassigned,
	}
	qty := charge.BilledQty()
	if charge.Unit == models.UnitKg {
		lot.QtyKg = qty
	} else {
		lot.QtyUnit = qty
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO lots (product_id, order_id, qty_kg, qty_unit, unit, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, lot.ProductID, lot.OrderID, lot.QtyKg, lot.QtyUnit, lot.Unit, lot.Status).
		Scan(&lot.ID, &lot.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return lot, nil
}
