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

type OrderHandler struct {
	Repo *repositories.OrderRepository
}

func NewOrderHandler(repo *repositories.OrderRepository) *OrderHandler {
	return &OrderHandler{Repo: repo}
}

func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req models.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order := &models.Order{Title: req.Title}
	if req.Draft {
		order.Status = models.OrderStatusDraft
	}
	if err := h.Repo.Create(r.Context(), order); err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, order)
}

func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Repo.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid order id")
		return
	}

	detail, err := h.Repo.GetDetail(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if detail == nil {
		utils.Error(w, http.StatusNotFound, "order not found")
		return
	}
	utils.JSON(w, http.StatusOK, detail)
}

func (h *OrderHandler) ConfirmOrder(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid order id")
		return
	}

	ok, err := h.Repo.UpdateStatus(r.Context(), id, models.OrderStatusConfirmed)
	if err != nil {
		writeError(w, err)
		return
	}
	if !ok {
		utils.Error(w, http.StatusNotFound, "order not found")
		return
	}

	order, err := h.Repo.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, order)
}

func (h *OrderHandler) AddItems(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid order id")
		return
	}

	var req models.AddOrderItemsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Items) == 0 {
		utils.Error(w, http.StatusBadRequest, "items are required")
		return
	}
	for _, item := range req.Items {
		if item.ProductID <= 0 || item.CustomerID <= 0 {
			utils.Error(w, http.StatusBadRequest, "every item needs a product and a customer")
			return
		}
		if item.Qty <= 0 {
			utils.Error(w, http.StatusBadRequest, "item quantity must be positive")
			return
		}
		if item.Unit != models.UnitKg && item.Unit != models.UnitEach {
			utils.Error(w, http.StatusBadRequest, "unit must be kg or unit")
			return
		}
	}

	order, err := h.Repo.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if order == nil {
		utils.Error(w, http.StatusNotFound, "order not found")
		return
	}

	if err := h.Repo.AddItems(r.Context(), id, req.Items); err != nil {
		writeError(w, err)
		return
	}

	detail, err := h.Repo.GetDetail(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, detail)
}

func (h *OrderHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	orderID, err := strconv.Atoi(vars["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid order id")
		return
	}
	itemID, err := strconv.Atoi(vars["item_id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid item id")
		return
	}

	ok, err := h.Repo.DeleteItem(r.Context(), orderID, itemID)
	if err != nil {
		writeError(w, err)
		return
	}
	if !ok {
		utils.Error(w, http.StatusNotFound, "order item not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
