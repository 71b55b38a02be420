package handlers

import (
	"encoding/json"
	"net/http"

	"kivi-backend/internal/models"
	"kivi-backend/internal/services"
	"kivi-backend/pkg/utils"
)

type AccountingHandler struct {
	Service  *services.AccountingService
	Reassign *services.ReassignmentService
}

func NewAccountingHandler(service *services.AccountingService, reassign *services.ReassignmentService) *AccountingHandler {
	return &AccountingHandler{Service: service, Reassign: reassign}
}

// OrderSummaries handles GET /accounting/orders. include_details=true adds
// the per-customer, per-product breakdown to every card.
func (h *AccountingHandler) OrderSummaries(w http.ResponseWriter, r *http.Request) {
	includeDetails := r.URL.Query().Get("include_details") == "true"

	summaries, err := h.Service.OrderSummaries(r.Context(), includeDetails)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, summaries)
}

// CustomerSummaries handles GET /accounting/customers. include_orders=true
// adds the per-order debt breakdown.
func (h *AccountingHandler) CustomerSummaries(w http.ResponseWriter, r *http.Request) {
	includeOrders := r.URL.Query().Get("include_orders") == "true"

	summaries, err := h.Service.CustomerSummaries(r.Context(), includeOrders)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, summaries)
}

// ExcessIndex handles GET /accounting/excess: unassigned surplus grouped by
// source order.
func (h *AccountingHandler) ExcessIndex(w http.ResponseWriter, r *http.Request) {
	index, err := h.Service.ExcessIndex(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if index == nil {
		index = []*models.ExcessOrderSummary{}
	}
	utils.JSON(w, http.StatusOK, index)
}

// ReassignExcess handles POST /accounting/excess/reassign.
func (h *AccountingHandler) ReassignExcess(w http.ResponseWriter, r *http.Request) {
	var req models.ReassignExcessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	charge, err := h.Reassign.Reassign(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, charge)
}
