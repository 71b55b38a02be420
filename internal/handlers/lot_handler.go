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

type LotHandler struct {
	Service *services.LotService
}

func NewLotHandler(service *services.LotService) *LotHandler {
	return &LotHandler{Service: service}
}

func (h *LotHandler) ListLots(w http.ResponseWriter, r *http.Request) {
	productID, _ := strconv.Atoi(r.URL.Query().Get("product_id"))

	lots, err := h.Service.ListLots(r.Context(), productID)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, lots)
}

func (h *LotHandler) CreateLot(w http.ResponseWriter, r *http.Request) {
	var req models.CreateLotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	lot, err := h.Service.CreateLot(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, lot)
}

func (h *LotHandler) MarkWaste(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid lot id")
		return
	}

	lot, err := h.Service.MarkWaste(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, lot)
}

func (h *LotHandler) Process(w http.ResponseWriter, r *http.Request) {
	var req models.ProcessLotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	lot, err := h.Service.Process(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, lot)
}
