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

type VendorPriceHandler struct {
	Service *services.VendorPriceService
}

func NewVendorPriceHandler(service *services.VendorPriceService) *VendorPriceHandler {
	return &VendorPriceHandler{Service: service}
}

func (h *VendorPriceHandler) ListPrices(w http.ResponseWriter, r *http.Request) {
	filter := &models.VendorPriceFilter{
		AvailableOnly: r.URL.Query().Get("available") == "true",
	}
	filter.VendorID, _ = strconv.Atoi(r.URL.Query().Get("vendor_id"))
	filter.ProductID, _ = strconv.Atoi(r.URL.Query().Get("product_id"))

	prices, err := h.Service.ListPrices(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, prices)
}

func (h *VendorPriceHandler) CreatePrice(w http.ResponseWriter, r *http.Request) {
	vendorID, err := strconv.Atoi(mux.Vars(r)["vendor_id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid vendor id")
		return
	}

	var req models.CreateVendorPriceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	vp, err := h.Service.CreatePrice(r.Context(), vendorID, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, vp)
}

func (h *VendorPriceHandler) UpdatePrice(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid price id")
		return
	}

	var req models.UpdateVendorPriceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	vp, err := h.Service.UpdatePrice(r.Context(), id, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, vp)
}

func (h *VendorPriceHandler) ToggleAvailability(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid price id")
		return
	}

	vp, err := h.Service.ToggleAvailability(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, vp)
}

func (h *VendorPriceHandler) DeletePrice(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid price id")
		return
	}

	if err := h.Service.DeletePrice(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// BatchUpdate handles POST /admin/vendors/prices/batch: one vendor's full
// price round, applied atomically.
func (h *VendorPriceHandler) BatchUpdate(w http.ResponseWriter, r *http.Request) {
	var req models.BatchUpdateVendorPricesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	n, err := h.Service.BatchUpdate(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]int{"updated": n})
}
