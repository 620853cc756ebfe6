package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Averus89/shopapp/internal/domain/order"
)

type productResponse struct {
	Name      string `json:"name"`
	BasePrice int64  `json:"basePrice"`
}

type lineItemResponse struct {
	Product  productResponse `json:"product"`
	Discount int             `json:"discount"`
	Total    int64           `json:"total"`
}

type orderResponse struct {
	ID         int64              `json:"id"`
	Items      []lineItemResponse `json:"items"`
	OrderTotal int64              `json:"orderTotal"`
}

func toOrderResponse(o order.Order) orderResponse {
	items := make([]lineItemResponse, len(o.Items))
	for i, li := range o.Items {
		items[i] = lineItemResponse{
			Product: productResponse{
				Name:      li.Product.Name,
				BasePrice: li.Product.Price,
			},
			Discount: li.Discount(),
			Total:    li.Total(),
		}
	}
	return orderResponse{
		ID:         o.ID,
		Items:      items,
		OrderTotal: o.Total(),
	}
}

// addProductToOrder handles PUT /orders/v1/add/{orderId}?productId=N&quantity=M.
// Quantity defaults to 1 when omitted.
func (h *Handler) addProductToOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.ParseInt(chi.URLParam(r, "orderId"), 10, 64)
	if err != nil {
		writeStatus(w, http.StatusBadRequest, "invalid order id")
		return
	}

	productID, err := strconv.ParseInt(r.URL.Query().Get("productId"), 10, 64)
	if err != nil {
		writeStatus(w, http.StatusBadRequest, "invalid product id")
		return
	}

	quantity := 1
	if q := r.URL.Query().Get("quantity"); q != "" {
		quantity, err = strconv.Atoi(q)
		if err != nil {
			writeStatus(w, http.StatusBadRequest, "invalid quantity")
			return
		}
	}

	if err := h.orders.AddItems(r.Context(), orderID, productID, quantity); err != nil {
		writeError(w, r, err)
		return
	}
	writeStatus(w, http.StatusCreated, msgProductAdded)
}

// getOrders handles GET /orders/v1/getOrders, returning every order
// ascending by id.
func (h *Handler) getOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.GetOrders(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]orderResponse, len(orders))
	for i, o := range orders {
		out[i] = toOrderResponse(o)
	}
	writeJSON(w, http.StatusOK, out)
}

// getOrderSummary handles GET /orders/v1/getOrderSummary/{orderId}.
func (h *Handler) getOrderSummary(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.ParseInt(chi.URLParam(r, "orderId"), 10, 64)
	if err != nil {
		writeStatus(w, http.StatusBadRequest, "invalid order id")
		return
	}

	o, err := h.orders.GetOrderByID(r.Context(), orderID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(*o))
}

// getOrderIDs handles GET /orders/v1/getOrderIds, returning ascending ids.
func (h *Handler) getOrderIDs(w http.ResponseWriter, r *http.Request) {
	ids, err := h.orders.GetOrderIDs(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ids)
}
