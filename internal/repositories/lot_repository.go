package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"kivi-backend/internal/models"
)

type LotRepository struct {
	DB *pgxpool.Pool
}

func NewLotRepository(db *pgxpool.Pool) *LotRepository {
	return &LotRepository{DB: db}
}

func (r *LotRepository) Create(ctx context.Context, lot *models.Lot) error {
	query := `
		INSERT INTO lots (product_id, order_id, qty_kg, qty_unit, unit, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	if lot.Status == "" {
		lot.Status = models.LotStatusUnassigned
	}
	return r.DB.QueryRow(ctx, query,
		lot.ProductID,
		lot.OrderID,
		lot.QtyKg,
		lot.QtyUnit,
		lot.Unit,
		lot.Status,
	).Scan(&lot.ID, &lot.CreatedAt)
}

func (r *LotRepository) GetByID(ctx context.Context, id int) (*models.Lot, error) {
	query := `
		SELECT id, product_id, order_id, qty_kg, qty_unit, unit, status, created_at
		FROM lots
		WHERE id = $1
	`
	lot := &models.Lot{}
	err := r.DB.QueryRow(ctx, query, id).Scan(
		&lot.ID,
		&lot.ProductID,
		&lot.OrderID,
		&lot.QtyKg,
		&lot.QtyUnit,
		&lot.Unit,
		&lot.Status,
		&lot.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return lot, nil
}

func (r *LotRepository) List(ctx context.Context, productID int) ([]*models.Lot, error) {
	query := `
		SELECT id, product_id, order_id, qty_kg, qty_unit, unit, status, created_at
		FROM lots
		WHERE ($1 = 0 OR product_id = $1)
		ORDER BY created_at, id
	`
	rows, err := r.DB.Query(ctx, query, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lots []*models.Lot
	for rows.Next() {
		lot := &models.Lot{}
		err := rows.Scan(
			&lot.ID,
			&lot.ProductID,
			&lot.OrderID,
			&lot.QtyKg,
			&lot.QtyUnit,
			&lot.Unit,
			&lot.Status,
			&lot.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		lots = append(lots, lot)
	}
	return lots, rows.Err()
}

// ListUnassignedWithProduct returns unassigned lots joined with product and
// order names, the raw material of the excess index.
func (r *LotRepository) ListUnassignedWithProduct(ctx context.Context) ([]*models.Lot, map[int]string, map[int]string, error) {
	query := `
		SELECT l.id, l.product_id, l.order_id, l.qty_kg, l.qty_unit, l.unit, l.status, l.created_at,
		       p.name, COALESCE(o.title, '')
		FROM lots l
		JOIN products p ON p.id = l.product_id
		LEFT JOIN orders o ON o.id = l.order_id
		WHERE l.status = 'unassigned'
		ORDER BY l.order_id, l.id
	`
	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, nil, nil, err
	}
	defer rows.Close()

	var lots []*models.Lot
	productNames := make(map[int]string)
	orderTitles := make(map[int]string)
	for rows.Next() {
		lot := &models.Lot{}
		var productName, orderTitle string
		err := rows.Scan(
			&lot.ID,
			&lot.ProductID,
			&lot.OrderID,
			&lot.QtyKg,
			&lot.QtyUnit,
			&lot.Unit,
			&lot.Status,
			&lot.CreatedAt,
			&productName,
			&orderTitle,
		)
		if err != nil {
			return nil, nil, nil, err
		}
		lots = append(lots, lot)
		productNames[lot.ProductID] = productName
		if lot.OrderID != nil {
			orderTitles[*lot.OrderID] = orderTitle
		}
	}
	return lots, productNames, orderTitles, rows.Err()
}

// Process consumes input kilos from the unassigned lots of one product,
// oldest first, and records the output as a fresh unassigned lot of another.
func (r *LotRepository) Process(ctx context.Context, req *models.ProcessLotRequest) (*models.Lot, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx, `
		SELECT id, qty_kg FROM lots
		WHERE product_id = $1 AND status = 'unassigned' AND qty_kg > 0
		ORDER BY created_at, id
		FOR UPDATE
	`, req.FromProductID)
	if err != nil {
		return nil, err
	}
	type lotQty struct {
		id  int
		qty float64
	}
	var available []lotQty
	for rows.Next() {
		var lq lotQty
		if err := rows.Scan(&lq.id, &lq.qty); err != nil {
			rows.Close()
			return nil, err
		}
		available = append(available, lq)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	remaining := req.InputQtyKg
	for _, lq := range available {
		if remaining <= 0 {
			break
		}
		take := lq.qty
		if take > remaining {
			take = remaining
		}
		_, err = tx.Exec(ctx, `
			UPDATE lots
			SET qty_kg = qty_kg - $1,
			    status = CASE WHEN qty_kg - $1 <= 0 THEN 'assigned' ELSE status END
			WHERE id = $2
		`, take, lq.id)
		if err != nil {
			return nil, err
		}
		remaining -= take
	}
	if remaining > 0 {
		return nil, ErrInsufficientStock
	}

	out := &models.Lot{
		ProductID: req.ToProductID,
		Unit:      req.Unit,
		Status:    models.LotStatusUnassigned,
	}
	if req.Unit == models.UnitKg {
		out.QtyKg = req.OutputQty
	} else {
		out.QtyUnit = req.OutputQty
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO lots (product_id, order_id, qty_kg, qty_unit, unit, status)
		VALUES ($1, NULL, $2, $3, $4, $5)
		RETURNING id, created_at
	`, out.ProductID, out.QtyKg, out.QtyUnit, out.Unit, out.Status).
		Scan(&out.ID, &out.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *LotRepository) UpdateStatus(ctx context.Context, id int, status string) (bool, error) {
	tag, err := r.DB.Exec(ctx,
		"UPDATE lots SET status = $1 WHERE id = $2", status, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// ReassignToCustomer inserts the charge that bills the destination customer
// and draws the quantity down from the source lot, in one transaction.
func (r *LotRepository) ReassignToCustomer(ctx context.Context, lotID int, charge *models.Charge) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if charge.Status == "" {
		charge.Status = models.ChargeStatusPending
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO charges (order_id, customer_id, product_id, qty, charged_qty, unit, unit_price, discount_amount, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`,
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
	if err != nil {
		return err
	}

	if err := r.ReduceQty(ctx, tx, lotID, charge.BilledQty(), charge.Unit); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// ReduceQty subtracts a reassigned quantity from the lot, marking it
// assigned when nothing is left. Fails with ErrInsufficientStock when the
// lot holds less than requested, aborting the caller's transaction so no
// charge is ever billed against stock the lot does not have.
func (r *LotRepository) ReduceQty(ctx context.Context, tx pgx.Tx, id int, qty float64, unit string) error {
	var query string
	if unit == models.UnitKg {
		query = `
			UPDATE lots
			SET qty_kg = qty_kg - $1,
			    status = CASE WHEN qty_kg - $1 <= 0 THEN 'assigned' ELSE status END
			WHERE id = $2 AND qty_kg >= $1
		`
	} else {
		query = `
			UPDATE lots
			SET qty_unit = qty_unit - $1,
			    status = CASE WHEN qty_unit - $1 <= 0 THEN 'assigned' ELSE status END
			WHERE id = $2 AND qty_unit >= $1
		`
	}
	tag, err := tx.Exec(ctx, query, qty, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrInsufficientStock
	}
	return nil
}
