package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/fjod/go_shop/internal/cart"
	"github.com/fjod/go_shop/internal/domain"
	"github.com/fjod/go_shop/internal/notify"
	"github.com/fjod/go_shop/internal/shop"
	"github.com/fjod/go_shop/pkg/logger"
	"go.uber.org/zap"
)

// BootstrapText is served where the page would embed the client bundle.
const BootstrapText = "Shop Plugin Working!"

// ShopService is the subset of shop.Service the handlers drive.
type ShopService interface {
	Page(ctx context.Context, v shop.Visitor) (domain.PageData, error)
	Refine(ctx context.Context, v shop.Visitor, upd shop.SelectionUpdate) (shop.ProductsView, error)
	ToggleViewMode(ctx context.Context, v shop.Visitor) (shop.ViewMode, error)
	ShowProduct(ctx context.Context, v shop.Visitor, productID int64) (shop.ProductDetail, error)
	CloseProduct(ctx context.Context, v shop.Visitor) error

	Cart(ctx context.Context, v shop.Visitor) (shop.CartView, error)
	AddToCart(ctx context.Context, v shop.Visitor, productID int64) (shop.CartView, error)
	RemoveFromCart(ctx context.Context, v shop.Visitor, productID int64) (shop.CartView, error)
	UpdateQuantity(ctx context.Context, v shop.Visitor, productID int64, quantity int) (shop.CartView, error)
	IncreaseQuantity(ctx context.Context, v shop.Visitor, productID int64) (shop.CartView, error)
	DecreaseQuantity(ctx context.Context, v shop.Visitor, productID int64) (shop.CartView, error)
	ClearCart(ctx context.Context, v shop.Visitor) (shop.CartView, error)
	ToggleCart(ctx context.Context, v shop.Visitor) (shop.CartView, error)
	Checkout(ctx context.Context, v shop.Visitor) (cart.Receipt, error)

	Notifications(ctx context.Context, v shop.Visitor) []notify.Notification
	DismissNotification(ctx context.Context, v shop.Visitor, id string)

	EndSession(ctx context.Context, v shop.Visitor) error
}

type ShopHandler struct {
	svc     ShopService
	timeout time.Duration
	log     *zap.Logger
}

func NewShopHandler(svc ShopService, timeout time.Duration, log *zap.Logger) *ShopHandler {
	return &ShopHandler{
		svc:     svc,
		timeout: timeout,
		log:     log,
	}
}

type ViewModeResponse struct {
	ViewMode shop.ViewMode `json:"view_mode"`
}

// Page serves the data for the shop page. Whatever goes wrong while it is
// assembled, panics included, ends as a 500 carrying the message.
func (h *ShopHandler) Page(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	defer func() {
		if rec := recover(); rec != nil {
			h.pageFailed(w, r, fmt.Errorf("%v", rec))
		}
	}()

	v, ok := visitorFromContext(r.Context())
	if !ok {
		h.pageFailed(w, r, errMissingSession)
		return
	}

	page, err := h.svc.Page(ctx, v)
	if err != nil {
		h.pageFailed(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, page)
}

func (h *ShopHandler) pageFailed(w http.ResponseWriter, r *http.Request, err error) {
	logger.FromContext(r.Context(), h.log).Error("shop page failed",
		zap.String("tag", "shop"),
		zap.Error(err),
	)
	respondJSON(w, http.StatusInternalServerError, PageErrorResponse{
		Error:  err.Error(),
		Status: http.StatusInternalServerError,
	})
}

func (h *ShopHandler) Bootstrap(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(BootstrapText))
}

// Products lists the catalog. Query parameters that are present replace
// the matching part of the session's selection.
func (h *ShopHandler) Products(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	v, ok := visitorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusBadRequest, "missing_session", errMissingSession.Error())
		return
	}

	q := r.URL.Query()
	var upd shop.SelectionUpdate
	if q.Has("category") {
		upd.Category = stringPtr(q.Get("category"))
	}
	if q.Has("q") {
		upd.Search = stringPtr(q.Get("q"))
	}
	if q.Has("sort") {
		upd.Sort = stringPtr(q.Get("sort"))
	}

	view, err := h.svc.Refine(ctx, v, upd)
	if err != nil {
		handleServiceError(w, r, h.log, err)
		return
	}

	respondJSON(w, http.StatusOK, view)
}

func stringPtr(s string) *string { return &s }

func (h *ShopHandler) ShowProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	v, ok := visitorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusBadRequest, "missing_session", errMissingSession.Error())
		return
	}

	productID, ok := productIDParam(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return
	}

	detail, err := h.svc.ShowProduct(ctx, v, productID)
	if err != nil {
		handleServiceError(w, r, h.log, err)
		return
	}

	respondJSON(w, http.StatusOK, detail)
}

func (h *ShopHandler) CloseProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	v, ok := visitorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusBadRequest, "missing_session", errMissingSession.Error())
		return
	}

	if err := h.svc.CloseProduct(ctx, v); err != nil {
		handleServiceError(w, r, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *ShopHandler) ToggleView(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	v, ok := visitorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusBadRequest, "missing_session", errMissingSession.Error())
		return
	}

	mode, err := h.svc.ToggleViewMode(ctx, v)
	if err != nil {
		handleServiceError(w, r, h.log, err)
		return
	}

	respondJSON(w, http.StatusOK, ViewModeResponse{ViewMode: mode})
}

// EndSession forgets the shopper's session and expires the cookie.
func (h *ShopHandler) EndSession(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	v, ok := visitorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusBadRequest, "missing_session", errMissingSession.Error())
		return
	}

	if err := h.svc.EndSession(ctx, v); err != nil {
		handleServiceError(w, r, h.log, err)
		return
	}

	w.Header().Del(SessionHeader)
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/shop",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}
