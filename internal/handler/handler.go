// Package handler exposes the order service over HTTP. The wire surface is
// a small JSON API: mutations and failures answer with a Status body whose
// code mirrors the HTTP status code.
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/Averus89/shopapp/internal/domain/order"
	"github.com/Averus89/shopapp/internal/domain/product"
)

// Canonical status messages.
const (
	msgProductAdded    = "Product added to order"
	msgProductNotFound = "Product not found"
	msgOrderNotFound   = "Order not found"
	msgQuantityTooLow  = "Quantity too low"
	msgInternalError   = "Internal server error"
)

// Status is the JSON body returned for mutations and failures.
type Status struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Handler wires the order service to HTTP routes.
type Handler struct {
	orders *order.Service
}

// New constructs a Handler around the order service.
func New(orders *order.Service) *Handler {
	return &Handler{orders: orders}
}

// Register mounts the order routes on the given router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/orders/v1", func(r chi.Router) {
		r.Put("/add/{orderId}", h.addProductToOrder)
		r.Get("/getOrders", h.getOrders)
		r.Get("/getOrderSummary/{orderId}", h.getOrderSummary)
		r.Get("/getOrderIds", h.getOrderIDs)
	})
}

// writeJSON encodes v with the given HTTP status code.
func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeStatus writes a Status body whose code matches the HTTP status.
func writeStatus(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, Status{Code: code, Message: message})
}

// writeError maps domain errors to Status responses. Unrecognized errors
// are logged and surfaced as a generic 500, never masked as a domain error.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, order.ErrQuantityTooLow):
		writeStatus(w, http.StatusNotAcceptable, msgQuantityTooLow)
	case errors.Is(err, product.ErrNotFound):
		writeStatus(w, http.StatusNotFound, msgProductNotFound)
	case errors.Is(err, order.ErrOrderNotFound):
		writeStatus(w, http.StatusNotFound, msgOrderNotFound)
	default:
		zctx.From(r.Context()).Error("request failed", zap.Error(err))
		writeStatus(w, http.StatusInternalServerError, msgInternalError)
	}
}
