package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/service"
	"github.com/go-chi/chi/v5"
)

const (
	maxBodyBytes = 1 << 20

	// MaxLineQuantity bounds the quantity a single request may add or set.
	MaxLineQuantity = 999
)

type CartHandler struct {
	checkout *service.CheckoutService
	log      logger.Logger
}

func NewCartHandler(checkout *service.CheckoutService, log logger.Logger) *CartHandler {
	return &CartHandler{
		checkout: checkout,
		log:      log.With("component", "CartHTTPHandler"),
	}
}

func (h *CartHandler) HandleGetCart(w http.ResponseWriter, r *http.Request) {
	store := service.CartStoreFrom(r.Context())
	respondWithJSON(w, http.StatusOK, newCartResponse(store.Snapshot()))
}

func (h *CartHandler) HandleGetBadge(w http.ResponseWriter, r *http.Request) {
	store := service.CartStoreFrom(r.Context())
	respondWithJSON(w, http.StatusOK, badgeResponse{Count: store.Snapshot().TotalQuantity()})
}

func (h *CartHandler) HandleAddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if !h.decode(w, r, &req) {
		return
	}

	req.Size = strings.TrimSpace(req.Size)
	switch {
	case req.Product.ID.String() == "":
		respondWithError(w, http.StatusBadRequest, "product id is required")
		return
	case req.Size == "":
		respondWithError(w, http.StatusBadRequest, "size is required")
		return
	case len(req.Product.Sizes) > 0 && !req.Product.HasSize(req.Size):
		respondWithError(w, http.StatusBadRequest, "size is not offered for this product")
		return
	case req.Quantity < 0:
		respondWithError(w, http.StatusBadRequest, "quantity must be positive")
		return
	case req.Quantity > MaxLineQuantity:
		respondWithError(w, http.StatusBadRequest, fmt.Sprintf("quantity must not exceed %d", MaxLineQuantity))
		return
	case req.Product.Price.IsNegative():
		respondWithError(w, http.StatusBadRequest, "price must not be negative")
		return
	}

	store := service.CartStoreFrom(r.Context())
	cart, err := store.AddToCart(r.Context(), req.Product, req.Size, req.Quantity)
	if err != nil {
		h.handleServiceError(w, err, "Failed to add item")
		return
	}
	respondWithJSON(w, http.StatusOK, newCartResponse(cart))
}

func (h *CartHandler) HandleUpdateQuantity(w http.ResponseWriter, r *http.Request) {
	var req updateQuantityRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.Quantity < 1 || req.Quantity > MaxLineQuantity {
		respondWithError(w, http.StatusBadRequest, fmt.Sprintf("quantity must be between 1 and %d", MaxLineQuantity))
		return
	}

	store := service.CartStoreFrom(r.Context())
	cart, err := store.UpdateQuantity(r.Context(), chi.URLParam(r, "productID"), chi.URLParam(r, "size"), req.Quantity)
	if err != nil {
		h.handleServiceError(w, err, "Failed to update quantity")
		return
	}
	respondWithJSON(w, http.StatusOK, newCartResponse(cart))
}

func (h *CartHandler) HandleRemoveItem(w http.ResponseWriter, r *http.Request) {
	store := service.CartStoreFrom(r.Context())
	cart, err := store.RemoveFromCart(r.Context(), chi.URLParam(r, "productID"), chi.URLParam(r, "size"))
	if err != nil {
		h.handleServiceError(w, err, "Failed to remove item")
		return
	}
	respondWithJSON(w, http.StatusOK, newCartResponse(cart))
}

func (h *CartHandler) HandleClearCart(w http.ResponseWriter, r *http.Request) {
	store := service.CartStoreFrom(r.Context())
	cart, err := store.ClearCart(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "Failed to clear cart")
		return
	}
	respondWithJSON(w, http.StatusOK, newCartResponse(cart))
}

func (h *CartHandler) HandleCheckout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if !h.decode(w, r, &req) {
		return
	}

	store := service.CartStoreFrom(r.Context())
	res, err := h.checkout.Checkout(r.Context(), store, req.toShipping())
	if err != nil {
		h.handleServiceError(w, err, "Failed to place order")
		return
	}
	respondWithJSON(w, http.StatusOK, res)
}

// HandlePreviewCheckout renders the order message without placing the order.
// The shipping form may be partial.
func (h *CartHandler) HandlePreviewCheckout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if !h.decode(w, r, &req) {
		return
	}

	store := service.CartStoreFrom(r.Context())
	text, summary, err := h.checkout.Preview(store, req.toShipping())
	if err != nil {
		h.handleServiceError(w, err, "Failed to preview order")
		return
	}
	respondWithJSON(w, http.StatusOK, previewResponse{Message: text, Summary: summary})
}

func HandleHealth(w http.ResponseWriter, _ *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *CartHandler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.log.Debugf("Failed to decode request: %v", err)
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func (h *CartHandler) handleServiceError(w http.ResponseWriter, err error, defaultMessage string) {
	switch {
	case errors.Is(err, service.ErrEmptyCart),
		errors.Is(err, service.ErrCartChanged),
		errors.Is(err, service.ErrStoreClosed):
		respondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidShipping):
		respondWithError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		h.log.Errorf("%s: %v", defaultMessage, err)
		respondWithError(w, http.StatusInternalServerError, defaultMessage)
	}
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, errorResponse{Error: message})
}
