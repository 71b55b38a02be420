package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/shopspring/decimal"

	"kivi-backend/internal/cache"
	"kivi-backend/internal/metrics"
	"kivi-backend/internal/models"
	"kivi-backend/internal/reconcile"
	"kivi-backend/internal/repositories"
)

// PaymentService validates incoming payments against the customer's open
// orders and persists them with their per-order applications.
type PaymentService struct {
	Payments   *repositories.PaymentRepository
	Accounting *repositories.AccountingRepository
}

func NewPaymentService(payments *repositories.PaymentRepository, accounting *repositories.AccountingRepository) *PaymentService {
	return &PaymentService{Payments: payments, Accounting: accounting}
}

// CreatePayment runs the full intake path: parse the distribution, load the
// customer's debts, validate, allocate, persist.
func (s *PaymentService) CreatePayment(ctx context.Context, req *models.CreatePaymentRequest) (*models.Payment, error) {
	distribution, err := parseDistribution(req.Distribution)
	if err != nil {
		metrics.PaymentsRejected.Inc()
		return nil, err
	}

	debts, err := s.Accounting.CustomerDebts(ctx, req.CustomerID)
	if err != nil {
		return nil, &reconcile.RemoteError{Op: "load customer debts", Err: err}
	}

	explicitOrderID := 0
	if req.OrderID != nil {
		explicitOrderID = *req.OrderID
	}

	pr, err := reconcile.BuildPaymentRequest(
		req.CustomerID,
		decimal.NewFromFloat(req.Amount),
		explicitOrderID,
		distribution,
		debts,
	)
	if err != nil {
		metrics.PaymentsRejected.Inc()
		return nil, err
	}

	payment := &models.Payment{
		CustomerID:   pr.CustomerID,
		OrderID:      pr.OrderID,
		Amount:       req.Amount,
		Method:       req.Method,
		Reference:    req.Reference,
		Applications: buildApplications(pr, debts),
	}

	if err := s.Payments.Create(ctx, payment); err != nil {
		if errors.Is(err, repositories.ErrDuplicatePayment) {
			metrics.PaymentsRejected.Inc()
			return nil, &reconcile.ValidationError{Message: err.Error()}
		}
		return nil, &reconcile.RemoteError{Op: "store payment", Err: err}
	}

	metrics.PaymentsCreated.Inc()
	cache.InvalidateSummaries(ctx)
	log.Printf("[Payment] Recorded payment %d: customer %d, amount %.2f, %d application(s)",
		payment.ID, payment.CustomerID, payment.Amount, len(payment.Applications))
	return payment, nil
}

// buildApplications turns the validated request into per-order application
// rows. A manual distribution or explicit order pins the split; otherwise
// the amount is walked across open orders oldest first.
func buildApplications(pr *reconcile.PaymentRequest, debts []reconcile.OrderDebt) []*models.PaymentApplication {
	if len(pr.Distribution) > 0 {
		apps := make([]*models.PaymentApplication, 0, len(pr.Distribution))
		// Keep order ids stable by walking debts, then any extra keys.
		seen := make(map[int]bool)
		for _, d := range debts {
			if amt, ok := pr.Distribution[d.OrderID]; ok {
				apps = append(apps, &models.PaymentApplication{OrderID: d.OrderID, Amount: amt.InexactFloat64()})
				seen[d.OrderID] = true
			}
		}
		for orderID, amt := range pr.Distribution {
			if !seen[orderID] {
				apps = append(apps, &models.PaymentApplication{OrderID: orderID, Amount: amt.InexactFloat64()})
			}
		}
		return apps
	}

	if pr.OrderID != nil {
		return []*models.PaymentApplication{{OrderID: *pr.OrderID, Amount: pr.Amount.InexactFloat64()}}
	}

	allocations := reconcile.AllocateOldestFirst(debts, pr.Amount)
	apps := make([]*models.PaymentApplication, 0, len(allocations))
	for _, a := range allocations {
		apps = append(apps, &models.PaymentApplication{OrderID: a.OrderID, Amount: a.Amount.InexactFloat64()})
	}
	return apps
}

// parseDistribution converts JSON object keys to order ids. Entries with
// a zero amount are dropped, matching how an untouched form field reads.
func parseDistribution(raw map[string]float64) (map[int]decimal.Decimal, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	distribution := make(map[int]decimal.Decimal, len(raw))
	for key, amount := range raw {
		orderID, err := strconv.Atoi(key)
		if err != nil || orderID <= 0 {
			return nil, &reconcile.ValidationError{Message: fmt.Sprintf("invalid distribution order id %q", key)}
		}
		if amount < 0 {
			return nil, &reconcile.ValidationError{Message: fmt.Sprintf("distribution amount for order %s cannot be negative", key)}
		}
		if amount == 0 {
			continue
		}
		distribution[orderID] = decimal.NewFromFloat(amount)
	}
	return distribution, nil
}

func (s *PaymentService) ListPayments(ctx context.Context, customerID int) ([]*models.Payment, error) {
	payments, err := s.Payments.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	for _, p := range payments {
		apps, err := s.Payments.GetApplications(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		p.Applications = apps
	}
	return payments, nil
}
