// internal/adapters/in/http/handler/cart_handler.go
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/apaluca/ReactRetail/internal/adapters/in/http/middleware"
	"github.com/apaluca/ReactRetail/internal/application/query"
	"github.com/apaluca/ReactRetail/internal/application/usecase"
	"github.com/apaluca/ReactRetail/internal/infra/logging"
)

// CartHandler serves /api/cart. Every route requires a signed-in user; the
// uid is the cart owner.
type CartHandler struct {
	uc    *usecase.CartUsecase
	query *query.CartQuery
	log   *logrus.Entry
}

func NewCartHandler(uc *usecase.CartUsecase, q *query.CartQuery) *CartHandler {
	return &CartHandler{uc: uc, query: q, log: logging.Component("cart_handler")}
}

type addItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  *int   `json:"quantity"`
}

type setQuantityRequest struct {
	Quantity *int `json:"quantity"`
}

// Get handles GET /api/cart. A user without a stored cart gets an empty one.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	uid, ok := middleware.CurrentUserUID(r)
	if !ok {
		unauthorized(w)
		return
	}
	h.writeCart(w, r, uid, http.StatusOK, false)
}

// AddItem handles POST /api/cart/items {productId, quantity}.
// quantity defaults to 1 when omitted.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	uid, ok := middleware.CurrentUserUID(r)
	if !ok {
		unauthorized(w)
		return
	}

	var req addItemRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequest(w, "invalid json")
		return
	}
	qty := 1
	if req.Quantity != nil {
		qty = *req.Quantity
	}

	if _, err := h.uc.AddItem(r.Context(), uid, req.ProductID, qty); err != nil {
		writeUsecaseErr(w, h.log, r, err)
		return
	}

	h.log.WithFields(logrus.Fields{"uid": uid, "productId": req.ProductID, "qty": qty}).Info("[cart_handler] item added")
	h.writeCart(w, r, uid, http.StatusOK, true)
}

// SetQuantity handles PUT /api/cart/items/{itemId} {quantity}; 0 removes.
func (h *CartHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	uid, ok := middleware.CurrentUserUID(r)
	if !ok {
		unauthorized(w)
		return
	}

	var req setQuantityRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequest(w, "invalid json")
		return
	}
	if req.Quantity == nil {
		badRequest(w, "quantity is required")
		return
	}

	if _, err := h.uc.UpdateItemQuantity(r.Context(), uid, chi.URLParam(r, "itemId"), *req.Quantity); err != nil {
		writeUsecaseErr(w, h.log, r, err)
		return
	}
	h.writeCart(w, r, uid, http.StatusOK, true)
}

// RemoveItem handles DELETE /api/cart/items/{itemId}.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	uid, ok := middleware.CurrentUserUID(r)
	if !ok {
		unauthorized(w)
		return
	}

	if _, err := h.uc.RemoveItem(r.Context(), uid, chi.URLParam(r, "itemId")); err != nil {
		writeUsecaseErr(w, h.log, r, err)
		return
	}
	h.writeCart(w, r, uid, http.StatusOK, true)
}

// Clear handles DELETE /api/cart.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	uid, ok := middleware.CurrentUserUID(r)
	if !ok {
		unauthorized(w)
		return
	}

	if err := h.uc.Clear(r.Context(), uid); err != nil {
		writeUsecaseErr(w, h.log, r, err)
		return
	}
	h.writeCart(w, r, uid, http.StatusOK, true)
}

// writeCart responds with the cart read model. Mutations wrap it as
// {success, cart}.
func (h *CartHandler) writeCart(w http.ResponseWriter, r *http.Request, uid string, code int, envelope bool) {
	c, err := h.query.GetByUserID(r.Context(), uid)
	if err != nil {
		writeUsecaseErr(w, h.log, r, err)
		return
	}
	if !envelope {
		writeJSON(w, code, c)
		return
	}
	writeJSON(w, code, map[string]any{"success": true, "cart": c})
}
