package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"kivi-backend/internal/models"
	"kivi-backend/internal/services"
	"kivi-backend/pkg/utils"
)

type ChargeHandler struct {
	Service *services.ChargeService
}

func NewChargeHandler(service *services.ChargeService) *ChargeHandler {
	return &ChargeHandler{Service: service}
}

func (h *ChargeHandler) ListCharges(w http.ResponseWriter, r *http.Request) {
	filter := &models.ChargeFilter{
		Status: r.URL.Query().Get("status"),
	}
	filter.CustomerID, _ = strconv.Atoi(r.URL.Query().Get("customer_id"))
	filter.OrderID, _ = strconv.Atoi(r.URL.Query().Get("order_id"))

	charges, err := h.Service.ListCharges(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, charges)
}

// UpdatePrice handles PATCH /charges/{id}/price. Price and quantity edits
// are separate endpoints so either correction can be applied, and fail,
// alone.
func (h *ChargeHandler) UpdatePrice(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid charge id")
		return
	}

	var req models.UpdateChargePriceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	charge, err := h.Service.UpdatePrice(r.Context(), id, req.UnitPrice)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, charge)
}

// UpdateQuantity handles PATCH /charges/{id}/quantity, recording the weighed
// correction while keeping the originally ordered quantity.
func (h *ChargeHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid charge id")
		return
	}

	var req models.UpdateChargeQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	charge, err := h.Service.UpdateQuantity(r.Context(), id, req.ChargedQty)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, charge)
}

func (h *ChargeHandler) ChangeOrder(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid charge id")
		return
	}

	var req models.ChangeChargeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	charge, err := h.Service.ChangeOrder(r.Context(), id, req.OrderID)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, charge)
}

func (h *ChargeHandler) ReturnToExcess(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid charge id")
		return
	}

	lot, err := h.Service.ReturnToExcess(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, lot)
}
