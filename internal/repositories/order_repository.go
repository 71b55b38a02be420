package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"kivi-backend/internal/models"
)

type OrderRepository struct {
	DB *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{DB: db}
}

func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	query := `
		INSERT INTO orders (title, status)
		VALUES ($1, $2)
		RETURNING id, created_at
	`
	if order.Status == "" {
		order.Status = models.OrderStatusConfirmed
	}
	return r.DB.QueryRow(ctx, query, order.Title, order.Status).
		Scan(&order.ID, &order.CreatedAt)
}

func (r *OrderRepository) GetByID(ctx context.Context, id int) (*models.Order, error) {
	query := `
		SELECT id, COALESCE(title, ''), status, created_at
		FROM orders
		WHERE id = $1
	`
	order := &models.Order{}
	err := r.DB.QueryRow(ctx, query, id).Scan(
		&order.ID,
		&order.Title,
		&order.Status,
		&order.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *OrderRepository) List(ctx context.Context) ([]*models.Order, error) {
	query := `
		SELECT id, COALESCE(title, ''), status, created_at
		FROM orders
		ORDER BY created_at DESC
	`
	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		order := &models.Order{}
		if err := rows.Scan(&order.ID, &order.Title, &order.Status, &order.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

// GetDetail returns an order with its items, joined with product names.
func (r *OrderRepository) GetDetail(ctx context.Context, id int) (*models.OrderDetail, error) {
	order, err := r.GetByID(ctx, id)
	if err != nil || order == nil {
		return nil, err
	}

	query := `
		SELECT oi.id, oi.order_id, oi.product_id, p.name, oi.customer_id, oi.qty, oi.unit
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = $1
		ORDER BY oi.id
	`
	rows, err := r.DB.Query(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	detail := &models.OrderDetail{Order: *order}
	for rows.Next() {
		item := &models.OrderItem{}
		err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.ProductName,
			&item.CustomerID,
			&item.Qty,
			&item.Unit,
		)
		if err != nil {
			return nil, err
		}
		detail.Items = append(detail.Items, item)
	}
	return detail, rows.Err()
}

// AddItems inserts all items in a single transaction.
func (r *OrderRepository) AddItems(ctx context.Context, orderID int, items []models.OrderItemInput) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO order_items (order_id, product_id, customer_id, qty, unit)
		VALUES ($1, $2, $3, $4, $5)
	`
	for _, item := range items {
		if _, err := tx.Exec(ctx, query, orderID, item.ProductID, item.CustomerID, item.Qty, item.Unit); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id int, status string) (bool, error) {
	tag, err := r.DB.Exec(ctx,
		"UPDATE orders SET status = $1 WHERE id = $2", status, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *OrderRepository) DeleteItem(ctx context.Context, orderID, itemID int) (bool, error) {
	tag, err := r.DB.Exec(ctx,
		"DELETE FROM order_items WHERE id = $1 AND order_id = $2", itemID, orderID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
