package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"kivi-backend/internal/models"
	"kivi-backend/internal/repositories"
	"kivi-backend/pkg/utils"
)

type VendorHandler struct {
	Repo *repositories.VendorRepository
}

func NewVendorHandler(repo *repositories.VendorRepository) *VendorHandler {
	return &VendorHandler{Repo: repo}
}

func (h *VendorHandler) CreateVendor(w http.ResponseWriter, r *http.Request) {
	var req models.CreateVendorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		utils.Error(w, http.StatusBadRequest, "name is required")
		return
	}

	vendor := &models.Vendor{
		Name:   req.Name,
		Phone:  req.Phone,
		Market: req.Market,
	}
	if err := h.Repo.Create(r.Context(), vendor); err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, vendor)
}

func (h *VendorHandler) ListVendors(w http.ResponseWriter, r *http.Request) {
	vendors, err := h.Repo.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, vendors)
}

func (h *VendorHandler) GetVendor(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid vendor id")
		return
	}

	vendor, err := h.Repo.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if vendor == nil {
		utils.Error(w, http.StatusNotFound, "vendor not found")
		return
	}
	utils.JSON(w, http.StatusOK, vendor)
}
