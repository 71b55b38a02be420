package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"kivi-backend/internal/models"
)

type PaymentRepository struct {
	DB *pgxpool.Pool
}

func NewPaymentRepository(db *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{DB: db}
}

// CheckDuplicatePayment reports whether a payment with the same customer and
// amount was recorded within the last 10 seconds. This is the server-side
// guard against double submission of the same form.
func (r *PaymentRepository) CheckDuplicatePayment(ctx context.Context, customerID int, amount float64) (bool, error) {
	query := `
		SELECT COUNT(*) FROM payments
		WHERE customer_id = $1
		AND amount = $2
		AND created_at > NOW() - INTERVAL '10 seconds'
	`
	var count int
	if err := r.DB.QueryRow(ctx, query, customerID, amount).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create persists the payment and its applications in one transaction.
func (r *PaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	isDuplicate, err := r.CheckDuplicatePayment(ctx, payment.CustomerID, payment.Amount)
	if err != nil {
		return fmt.Errorf("failed to check for duplicate payment: %w", err)
	}
	if isDuplicate {
		return fmt.Errorf("%w: a payment of %.2f for this customer was already processed within the last 10 seconds", ErrDuplicatePayment, payment.Amount)
	}

	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO payments (customer_id, order_id, amount, method, reference)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, payment_date, created_at
	`
	err = tx.QueryRow(ctx, query,
		payment.CustomerID,
		payment.OrderID,
		payment.Amount,
		payment.Method,
		payment.Reference,
	).Scan(&payment.ID, &payment.PaymentDate, &payment.CreatedAt)
	if err != nil {
		return err
	}

	for _, app := range payment.Applications {
		app.PaymentID = payment.ID
		err = tx.QueryRow(ctx, `
			INSERT INTO payment_applications (payment_id, order_id, amount)
			VALUES ($1, $2, $3)
			RETURNING id
		`, app.PaymentID, app.OrderID, app.Amount).Scan(&app.ID)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *PaymentRepository) ListByCustomer(ctx context.Context, customerID int) ([]*models.Payment, error) {
	query := `
		SELECT id, customer_id, order_id, amount, COALESCE(method, ''), COALESCE(reference, ''), payment_date, created_at
		FROM payments
		WHERE ($1 = 0 OR customer_id = $1)
		ORDER BY payment_date DESC
	`
	rows, err := r.DB.Query(ctx, query, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*models.Payment
	for rows.Next() {
		payment := &models.Payment{}
		err := rows.Scan(
			&payment.ID,
			&payment.CustomerID,
			&payment.OrderID,
			&payment.Amount,
			&payment.Method,
			&payment.Reference,
			&payment.PaymentDate,
			&payment.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}
	return payments, rows.Err()
}

// GetApplications returns the per-order split of one payment.
func (r *PaymentRepository) GetApplications(ctx context.Context, paymentID int) ([]*models.PaymentApplication, error) {
	query := `
		SELECT id, payment_id, order_id, amount
		FROM payment_applications
		WHERE payment_id = $1
		ORDER BY id
	`
	rows, err := r.DB.Query(ctx, query, paymentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []*models.PaymentApplication
	for rows.Next() {
		app := &models.PaymentApplication{}
		if err := rows.Scan(&app.ID, &app.PaymentID, &app.OrderID, &app.Amount); err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	return apps, rows.Err()
}
