// internal/adapters/in/http/handler/product_handler.go
package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/apaluca/ReactRetail/internal/adapters/in/http/middleware"
	"github.com/apaluca/ReactRetail/internal/application/productview"
	"github.com/apaluca/ReactRetail/internal/application/query/dto"
	"github.com/apaluca/ReactRetail/internal/application/usecase"
	"github.com/apaluca/ReactRetail/internal/domain/common"
	productdom "github.com/apaluca/ReactRetail/internal/domain/product"
	"github.com/apaluca/ReactRetail/internal/infra/logging"
)

// ProductHandler serves catalog reads and the product detail view model.
type ProductHandler struct {
	catalog *usecase.CatalogUsecase
	cart    productview.CartAdder
	log     *logrus.Entry
}

func NewProductHandler(catalog *usecase.CatalogUsecase, cart productview.CartAdder) *ProductHandler {
	return &ProductHandler{
		catalog: catalog,
		cart:    cart,
		log:     logging.Component("product_handler"),
	}
}

// List handles GET /api/products?category=&q=&page=&perPage=
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	qv := r.URL.Query()
	filter := productdom.Filter{
		Category: qv.Get("category"),
		Search:   qv.Get("q"),
	}
	page := common.Page{
		Number:  parseIntDefault(qv.Get("page"), 1),
		PerPage: parseIntDefault(qv.Get("perPage"), 0),
	}

	res, err := h.catalog.List(r.Context(), filter, page)
	if err != nil {
		writeUsecaseErr(w, h.log, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.ToProductPageDTO(res))
}

// Get handles GET /api/products/{id}
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))

	p, err := h.catalog.Get(r.Context(), id)
	if err != nil {
		writeUsecaseErr(w, h.log, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.ToProductDTO(*p))
}

// View handles GET /api/products/{id}/view?image=&quantity=
// Authentication is optional: signed-out callers get the sign-in call to action.
func (h *ProductHandler) View(w http.ResponseWriter, r *http.Request) {
	v, ok := h.loadView(w, r)
	if !ok {
		return
	}

	status := http.StatusOK
	if v.State() == productview.StateError {
		status = http.StatusNotFound
	}
	writeJSON(w, status, v.Model())
}

// loadView builds and loads the view, applying the image/quantity query.
// It returns false when the request context ended before the fetch did.
func (h *ProductHandler) loadView(w http.ResponseWriter, r *http.Request) (*productview.View, bool) {
	id := chi.URLParam(r, "id")
	v := productview.New(id, sessionFrom(r), h.catalog, h.cart)

	if err := v.Load(r.Context()); err != nil {
		if r.Context().Err() != nil {
			h.log.WithField("productId", id).Debug("[product_handler] request cancelled during load")
			return nil, false
		}
		h.log.WithField("productId", id).WithError(err).Info("[product_handler] product load failed")
	}

	qv := r.URL.Query()
	if raw := qv.Get("image"); raw != "" {
		_ = v.SelectImage(parseIntDefault(raw, -1))
	}
	if raw := qv.Get("quantity"); raw != "" {
		v.SetQuantityInput(raw)
	}
	return v, true
}

func sessionFrom(r *http.Request) productview.Session {
	uid, ok := middleware.CurrentUserUID(r)
	if !ok {
		return productview.Session{}
	}
	name, _ := middleware.CurrentUserFullName(r)
	return productview.Session{UserID: uid, DisplayName: name}
}
