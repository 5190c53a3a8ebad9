// internal/adapters/in/http/handler/page_handler.go
package handler

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/apaluca/ReactRetail/internal/adapters/in/http/middleware"
	"github.com/apaluca/ReactRetail/internal/application/productview"
	"github.com/apaluca/ReactRetail/internal/application/query"
	"github.com/apaluca/ReactRetail/internal/application/usecase"
	"github.com/apaluca/ReactRetail/internal/infra/logging"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templateFuncs = template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}

// PageHandler renders the server-side product detail and cart pages.
// Routes are mounted behind the optional auth middleware.
type PageHandler struct {
	products *ProductHandler
	cart     *query.CartQuery
	pages    map[string]*template.Template
	log      *logrus.Entry
}

func NewPageHandler(catalog *usecase.CatalogUsecase, cartUC *usecase.CartUsecase, cartQuery *query.CartQuery) (*PageHandler, error) {
	pages := map[string]*template.Template{}
	for _, name := range []string{"product", "cart"} {
		t, err := template.New(name).Funcs(templateFuncs).ParseFS(templatesFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, errors.Wrapf(err, "parse %s template", name)
		}
		pages[name] = t
	}

	return &PageHandler{
		products: NewProductHandler(catalog, cartUC),
		cart:     cartQuery,
		pages:    pages,
		log:      logging.Component("page_handler"),
	}, nil
}

// Product handles GET /products/{id}?image=&quantity=
func (h *PageHandler) Product(w http.ResponseWriter, r *http.Request) {
	v, ok := h.products.loadView(w, r)
	if !ok {
		return
	}

	status := http.StatusOK
	if v.State() == productview.StateError {
		status = http.StatusNotFound
	}
	h.render(w, status, "product", v.Model())
}

// AddToCart handles the product page form: POST /products/{id}/cart.
// Success redirects to the cart page; failure re-renders the page with the
// error message and the form still enabled.
func (h *PageHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	v, ok := h.products.loadView(w, r)
	if !ok {
		return
	}
	if v.State() == productview.StateError {
		h.render(w, http.StatusNotFound, "product", v.Model())
		return
	}
	if !sessionFrom(r).SignedIn() {
		http.Redirect(w, r, v.SignInURL(), http.StatusSeeOther)
		return
	}
	if raw := r.PostForm.Get("quantity"); raw != "" && !v.SetQuantityInput(raw) {
		h.render(w, http.StatusOK, "product", v.Model())
		return
	}

	nav, err := v.AddToCart(r.Context())
	if err != nil {
		if !errors.Is(err, productview.ErrAddToCartDisabled) {
			h.log.WithField("productId", chi.URLParam(r, "id")).WithError(err).Warn("[page_handler] add to cart failed")
		}
		h.render(w, http.StatusOK, "product", v.Model())
		return
	}
	http.Redirect(w, r, nav.To, http.StatusSeeOther)
}

// Cart handles GET /cart.
func (h *PageHandler) Cart(w http.ResponseWriter, r *http.Request) {
	uid, ok := middleware.CurrentUserUID(r)
	if !ok {
		http.Redirect(w, r, "/login?next="+url.QueryEscape(productview.CartPath), http.StatusSeeOther)
		return
	}

	c, err := h.cart.GetByUserID(r.Context(), uid)
	if err != nil {
		h.log.WithField("uid", uid).WithError(err).Error("[page_handler] load cart failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	h.render(w, http.StatusOK, "cart", c)
}

func (h *PageHandler) render(w http.ResponseWriter, status int, page string, data any) {
	t, ok := h.pages[page]
	if !ok {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		h.log.WithField("page", page).WithError(err).Error("[page_handler] render failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
