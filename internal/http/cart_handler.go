package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/fjod/go_shop/internal/shop"
	"go.uber.org/zap"
)

type CartHandler struct {
	svc     ShopService
	timeout time.Duration
	log     *zap.Logger
}

func NewCartHandler(svc ShopService, timeout time.Duration, log *zap.Logger) *CartHandler {
	return &CartHandler{
		svc:     svc,
		timeout: timeout,
		log:     log,
	}
}

type AddItemRequestDTO struct {
	ProductID int64 `json:"product_id"`
}

type UpdateQuantityRequestDTO struct {
	Quantity *int `json:"quantity"`
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	h.cartAction(w, r, http.StatusOK, h.svc.Cart)
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	// Parse request body
	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	// Validate request
	if req.ProductID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be positive")
		return
	}

	h.cartAction(w, r, http.StatusCreated, func(ctx context.Context, v shop.Visitor) (shop.CartView, error) {
		return h.svc.AddToCart(ctx, v, req.ProductID)
	})
}

// UpdateQuantity sets a line's quantity. Zero or less removes the line.
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	productID, ok := productIDParam(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return
	}

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Quantity == nil {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity is required")
		return
	}

	h.cartAction(w, r, http.StatusOK, func(ctx context.Context, v shop.Visitor) (shop.CartView, error) {
		return h.svc.UpdateQuantity(ctx, v, productID, *req.Quantity)
	})
}

func (h *CartHandler) IncreaseQuantity(w http.ResponseWriter, r *http.Request) {
	h.lineAction(w, r, h.svc.IncreaseQuantity)
}

func (h *CartHandler) DecreaseQuantity(w http.ResponseWriter, r *http.Request) {
	h.lineAction(w, r, h.svc.DecreaseQuantity)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	h.lineAction(w, r, h.svc.RemoveFromCart)
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.cartAction(w, r, http.StatusOK, h.svc.ClearCart)
}

func (h *CartHandler) ToggleCart(w http.ResponseWriter, r *http.Request) {
	h.cartAction(w, r, http.StatusOK, h.svc.ToggleCart)
}

// Checkout answers with the receipt once the cart has been emptied.
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	v, ok := visitorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusBadRequest, "missing_session", errMissingSession.Error())
		return
	}

	receipt, err := h.svc.Checkout(ctx, v)
	if err != nil {
		handleServiceError(w, r, h.log, err)
		return
	}

	respondJSON(w, http.StatusOK, receipt)
}

func (h *CartHandler) lineAction(w http.ResponseWriter, r *http.Request, fn func(context.Context, shop.Visitor, int64) (shop.CartView, error)) {
	productID, ok := productIDParam(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return
	}
	h.cartAction(w, r, http.StatusOK, func(ctx context.Context, v shop.Visitor) (shop.CartView, error) {
		return fn(ctx, v, productID)
	})
}

func (h *CartHandler) cartAction(w http.ResponseWriter, r *http.Request, status int, fn func(context.Context, shop.Visitor) (shop.CartView, error)) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	v, ok := visitorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusBadRequest, "missing_session", errMissingSession.Error())
		return
	}

	view, err := fn(ctx, v)
	if err != nil {
		handleServiceError(w, r, h.log, err)
		return
	}

	respondJSON(w, status, view)
}
