package services

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jung-kurt/gofpdf/v2"

	"kivi-backend/internal/models"
	"kivi-backend/internal/reconcile"
	"kivi-backend/internal/repositories"
	"kivi-backend/internal/storage"
)

// InvoiceData holds everything printed on a customer invoice.
type InvoiceData struct {
	Customer *models.Customer
	Charges  []*models.Charge
	Payments []*models.Payment
	Billed   float64
	Paid     float64
	Balance  float64
}

// ReportService renders PDF documents and, when an archiver is configured,
// uploads a copy of each generated document.
type ReportService struct {
	Customers *repositories.CustomerRepository
	Charges   *repositories.ChargeRepository
	Payments  *repositories.PaymentRepository
	Prices    *repositories.VendorPriceRepository
	Archiver  *storage.Archiver
}

func NewReportService(
	customers *repositories.CustomerRepository,
	charges *repositories.ChargeRepository,
	payments *repositories.PaymentRepository,
	prices *repositories.VendorPriceRepository,
	archiver *storage.Archiver,
) *ReportService {
	return &ReportService{
		Customers: customers,
		Charges:   charges,
		Payments:  payments,
		Prices:    prices,
		Archiver:  archiver,
	}
}

// GetInvoiceData fetches everything the invoice prints.
func (s *ReportService) GetInvoiceData(ctx context.Context, customerID int) (*InvoiceData, error) {
	customer, err := s.Customers.GetByID(ctx, customerID)
	if err != nil {
		return nil, &reconcile.RemoteError{Op: "load customer", Err: err}
	}
	if customer == nil {
		return nil, &reconcile.NotFoundError{Message: "customer not found"}
	}

	charges, err := s.Charges.List(ctx, &models.ChargeFilter{CustomerID: customerID})
	if err != nil {
		return nil, &reconcile.RemoteError{Op: "load charges", Err: err}
	}
	payments, err := s.Payments.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, &reconcile.RemoteError{Op: "load payments", Err: err}
	}

	data := &InvoiceData{Customer: customer, Payments: payments}
	for _, c := range charges {
		if c.Status == models.ChargeStatusReturned {
			continue
		}
		data.Charges = append(data.Charges, c)
		data.Billed += c.Total
	}
	for _, p := range payments {
		data.Paid += p.Amount
	}
	data.Balance = data.Billed - data.Paid
	return data, nil
}

// GenerateInvoicePDF renders the customer invoice and archives a copy.
func (s *ReportService) GenerateInvoicePDF(ctx context.Context, customerID int) ([]byte, error) {
	data, err := s.GetInvoiceData(ctx, customerID)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, "Kivi Fresh Produce - Customer Invoice", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Generated: %s", time.Now().Format("02-Jan-2006 03:04 PM")), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	// Customer Info Box
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Customer", "1", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("Name: %s", data.Customer.Name), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Phone: %s", data.Customer.Phone), "RB", 1, "L", false, 0, "")
	pdf.Ln(5)

	// Charges table
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Charges", "1", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(20, 7, "Order", "1", 0, "L", true, 0, "")
	pdf.CellFormat(70, 7, "Product", "1", 0, "L", true, 0, "")
	pdf.CellFormat(30, 7, "Qty", "1", 0, "R", true, 0, "")
	pdf.CellFormat(35, 7, "Unit Price", "1", 0, "R", true, 0, "")
	pdf.CellFormat(35, 7, "Total", "1", 1, "R", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, c := range data.Charges {
		pdf.CellFormat(20, 7, fmt.Sprintf("#%d", c.OrderID), "1", 0, "L", false, 0, "")
		pdf.CellFormat(70, 7, c.ProductName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, fmt.Sprintf("%.3f %s", c.BilledQty(), c.Unit), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 7, fmt.Sprintf("%.2f", c.UnitPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 7, fmt.Sprintf("%.2f", c.Total), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(5)

	// Payments
	if len(data.Payments) > 0 {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(190, 8, "Payments", "1", 1, "L", true, 0, "")
		pdf.SetFont("Arial", "", 10)
		for _, p := range data.Payments {
			ref := p.Reference
			if ref == "" {
				ref = "-"
			}
			pdf.CellFormat(50, 7, p.PaymentDate.Format("02-Jan-2006"), "1", 0, "L", false, 0, "")
			pdf.CellFormat(70, 7, ref, "1", 0, "L", false, 0, "")
			pdf.CellFormat(70, 7, fmt.Sprintf("%.2f", p.Amount), "1", 1, "R", false, 0, "")
		}
		pdf.Ln(5)
	}

	// Totals
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(120, 8, "Total Billed", "1", 0, "L", true, 0, "")
	pdf.CellFormat(70, 8, fmt.Sprintf("%.2f", data.Billed), "1", 1, "R", false, 0, "")
	pdf.CellFormat(120, 8, "Total Paid", "1", 0, "L", true, 0, "")
	pdf.CellFormat(70, 8, fmt.Sprintf("%.2f", data.Paid), "1", 1, "R", false, 0, "")
	pdf.CellFormat(120, 8, "Balance Due", "1", 0, "L", true, 0, "")
	pdf.CellFormat(70, 8, fmt.Sprintf("%.2f", data.Balance), "1", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render invoice: %w", err)
	}

	s.archive(ctx, fmt.Sprintf("invoices/customer-%d-%s.pdf", customerID, time.Now().Format("20060102-150405")), buf.Bytes())
	return buf.Bytes(), nil
}

// GenerateCatalogPDF renders the current price catalog from the available
// vendor price entries.
func (s *ReportService) GenerateCatalogPDF(ctx context.Context) ([]byte, error) {
	prices, err := s.Prices.List(ctx, &models.VendorPriceFilter{AvailableOnly: true})
	if err != nil {
		return nil, &reconcile.RemoteError{Op: "load vendor prices", Err: err}
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, "Kivi Fresh Produce - Price Catalog", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Generated: %s", time.Now().Format("02-Jan-2006 03:04 PM")), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(60, 7, "Vendor", "1", 0, "L", true, 0, "")
	pdf.CellFormat(70, 7, "Product", "1", 0, "L", true, 0, "")
	pdf.CellFormat(20, 7, "Unit", "1", 0, "L", true, 0, "")
	pdf.CellFormat(40, 7, "Price", "1", 1, "R", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, vp := range prices {
		pdf.CellFormat(60, 7, vp.VendorName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(70, 7, vp.ProductName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 7, vp.Unit, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 7, fmt.Sprintf("%.2f", vp.SalePrice), "1", 1, "R", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render catalog: %w", err)
	}

	s.archive(ctx, fmt.Sprintf("catalogs/catalog-%s.pdf", time.Now().Format("20060102-150405")), buf.Bytes())
	return buf.Bytes(), nil
}

func (s *ReportService) archive(ctx context.Context, key string, body []byte) {
	if err := s.Archiver.Store(ctx, key, body, "application/pdf"); err != nil {
		log.Printf("[Report] %v", err)
	}
}
