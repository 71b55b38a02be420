package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"kivi-backend/internal/services"
	"kivi-backend/pkg/utils"
)

type ReportHandler struct {
	Service *services.ReportService
}

func NewReportHandler(service *services.ReportService) *ReportHandler {
	return &ReportHandler{Service: service}
}

// Invoice handles GET /reports/invoice/{customer_id}, streaming the PDF.
func (h *ReportHandler) Invoice(w http.ResponseWriter, r *http.Request) {
	customerID, err := strconv.Atoi(mux.Vars(r)["customer_id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid customer id")
		return
	}

	pdf, err := h.Service.GenerateInvoicePDF(r.Context(), customerID)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=invoice-%d.pdf", customerID))
	w.Write(pdf)
}

// Catalog handles GET /reports/catalog.
func (h *ReportHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	pdf, err := h.Service.GenerateCatalogPDF(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=catalog.pdf")
	w.Write(pdf)
}
