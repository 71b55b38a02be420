package http

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"kivi-backend/internal/handlers"
)

func NewRouter(
	customerHandler *handlers.CustomerHandler,
	vendorHandler *handlers.VendorHandler,
	productHandler *handlers.ProductHandler,
	orderHandler *handlers.OrderHandler,
	chargeHandler *handlers.ChargeHandler,
	paymentHandler *handlers.PaymentHandler,
	accountingHandler *handlers.AccountingHandler,
	lotHandler *handlers.LotHandler,
	vendorPriceHandler *handlers.VendorPriceHandler,
	reportHandler *handlers.ReportHandler,
	healthHandler *handlers.HealthHandler,
) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", healthHandler.Health).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	// Customers
	api.HandleFunc("/customers", customerHandler.ListCustomers).Methods("GET")
	api.HandleFunc("/customers", customerHandler.CreateCustomer).Methods("POST")
	api.HandleFunc("/customers/{id}", customerHandler.GetCustomer).Methods("GET")

	// Vendors
	api.HandleFunc("/vendors", vendorHandler.ListVendors).Methods("GET")
	api.HandleFunc("/vendors", vendorHandler.CreateVendor).Methods("POST")
	api.HandleFunc("/vendors/{id}", vendorHandler.GetVendor).Methods("GET")

	// Products
	api.HandleFunc("/products", productHandler.ListProducts).Methods("GET")
	api.HandleFunc("/products", productHandler.CreateProduct).Methods("POST")
	api.HandleFunc("/products/{id}", productHandler.GetProduct).Methods("GET")
	api.HandleFunc("/products/{id}", productHandler.UpdateProduct).Methods("PUT")

	// Orders and their items
	api.HandleFunc("/orders", orderHandler.ListOrders).Methods("GET")
	api.HandleFunc("/orders", orderHandler.CreateOrder).Methods("POST")
	api.HandleFunc("/orders/{id}", orderHandler.GetOrder).Methods("GET")
	api.HandleFunc("/orders/{id}/confirm", orderHandler.ConfirmOrder).Methods("POST")
	api.HandleFunc("/orders/{id}/items", orderHandler.AddItems).Methods("POST")
	api.HandleFunc("/orders/{id}/items/{item_id}", orderHandler.DeleteItem).Methods("DELETE")

	// Charges: narrow edits, each its own endpoint
	api.HandleFunc("/charges", chargeHandler.ListCharges).Methods("GET")
	api.HandleFunc("/charges/{id}/price", chargeHandler.UpdatePrice).Methods("PATCH")
	api.HandleFunc("/charges/{id}/quantity", chargeHandler.UpdateQuantity).Methods("PATCH")
	api.HandleFunc("/charges/{id}/order", chargeHandler.ChangeOrder).Methods("PATCH")
	api.HandleFunc("/charges/{id}/return", chargeHandler.ReturnToExcess).Methods("POST")

	// Payments
	api.HandleFunc("/payments", paymentHandler.ListPayments).Methods("GET")
	api.HandleFunc("/payments", paymentHandler.CreatePayment).Methods("POST")

	// Accounting summaries and the excess flow
	api.HandleFunc("/accounting/orders", accountingHandler.OrderSummaries).Methods("GET")
	api.HandleFunc("/accounting/customers", accountingHandler.CustomerSummaries).Methods("GET")
	api.HandleFunc("/accounting/excess", accountingHandler.ExcessIndex).Methods("GET")
	api.HandleFunc("/accounting/excess/reassign", accountingHandler.ReassignExcess).Methods("POST")

	// Inventory lots
	api.HandleFunc("/inventory/lots", lotHandler.ListLots).Methods("GET")
	api.HandleFunc("/inventory/lots", lotHandler.CreateLot).Methods("POST")
	api.HandleFunc("/inventory/lots/{id}/waste", lotHandler.MarkWaste).Methods("POST")
	api.HandleFunc("/inventory/lots/process", lotHandler.Process).Methods("POST")

	// Vendor price administration
	api.HandleFunc("/admin/vendors/prices", vendorPriceHandler.ListPrices).Methods("GET")
	api.HandleFunc("/admin/vendors/prices/batch", vendorPriceHandler.BatchUpdate).Methods("POST")
	api.HandleFunc("/admin/vendors/{vendor_id}/prices", vendorPriceHandler.CreatePrice).Methods("POST")
	api.HandleFunc("/admin/vendors/prices/{id}", vendorPriceHandler.UpdatePrice).Methods("PUT")
	api.HandleFunc("/admin/vendors/prices/{id}", vendorPriceHandler.DeletePrice).Methods("DELETE")
	api.HandleFunc("/admin/vendors/prices/{id}/toggle", vendorPriceHandler.ToggleAvailability).Methods("POST")

	// Reports
	api.HandleFunc("/reports/invoice/{customer_id}", reportHandler.Invoice).Methods("GET")
	api.HandleFunc("/reports/catalog", reportHandler.Catalog).Methods("GET")

	return r
}
