package httpin_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	fbauth "firebase.google.com/go/v4/auth"

	httpin "github.com/apaluca/ReactRetail/internal/adapters/in/http"
	"github.com/apaluca/ReactRetail/internal/adapters/in/http/middleware"
	"github.com/apaluca/ReactRetail/internal/adapters/out/memory"
	"github.com/apaluca/ReactRetail/internal/application/productview"
	"github.com/apaluca/ReactRetail/internal/application/query"
	"github.com/apaluca/ReactRetail/internal/application/usecase"
	productdom "github.com/apaluca/ReactRetail/internal/domain/product"
)

type tokenVerifier map[string]string

func (v tokenVerifier) VerifyIDToken(_ context.Context, tok string) (*fbauth.Token, error) {
	uid, ok := v[tok]
	if !ok {
		return nil, errors.New("invalid")
	}
	return &fbauth.Token{UID: uid, Claims: map[string]interface{}{"name": "Ana"}}, nil
}

func (v tokenVerifier) VerifySessionCookie(ctx context.Context, c string) (*fbauth.Token, error) {
	return v.VerifyIDToken(ctx, c)
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	products := memory.NewProductRepository(
		productdom.Product{ID: "p1", Name: "Mug", Price: 999, Stock: 5, Category: "Kitchen", ImageURL: "A", Images: []string{"A", "B", "A", "C"}},
		productdom.Product{ID: "p0", Name: "Sold out", Price: 100, Stock: 0},
	)
	carts := memory.NewCartRepository()
	reviews := memory.NewReviewRepository()

	catalogUC := usecase.NewCatalogUsecase(products, nil)
	cartUC := usecase.NewCartUsecase(carts, products)
	reviewUC := usecase.NewReviewUsecase(reviews, products)

	h, err := httpin.NewRouter(httpin.RouterDeps{
		CatalogUC: catalogUC,
		CartUC:    cartUC,
		ReviewUC:  reviewUC,
		CartQuery: query.NewCartQuery(cartUC, catalogUC),
		UserAuth:  &middleware.UserAuthMiddleware{Verifier: tokenVerifier{"tok-u1": "u1", "tok-u2": "u2"}},
	})
	if err != nil {
		t.Fatalf("NewRouter: %v", err)
	}
	return h
}

func do(t *testing.T, h http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

type cartResponse struct {
	Success bool `json:"success"`
	Cart    struct {
		Items []struct {
			ID       string  `json:"_id"`
			Product  string  `json:"product"`
			Quantity int     `json:"quantity"`
			Price    float64 `json:"price"`
		} `json:"items"`
		Total float64 `json:"total"`
	} `json:"cart"`
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func TestCartAPI_AddMergeUpdateRemove(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodPost, "/api/cart/items", "tok-u1", `{"productId":"p1","quantity":3}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("add status = %d body=%s", rec.Code, rec.Body.String())
	}
	res := decode[cartResponse](t, rec)
	if !res.Success || res.Cart.Total != 29.97 {
		t.Fatalf("after add 3: %+v", res)
	}

	res = decode[cartResponse](t, do(t, h, http.MethodPost, "/api/cart/items", "tok-u1", `{"productId":"p1","quantity":2}`))
	if len(res.Cart.Items) != 1 || res.Cart.Items[0].Quantity != 5 || res.Cart.Total != 49.95 {
		t.Fatalf("after add 2: %+v", res)
	}
	lineID := res.Cart.Items[0].ID

	if rec := do(t, h, http.MethodPost, "/api/cart/items", "tok-u1", `{"productId":"p1","quantity":1}`); rec.Code != http.StatusConflict {
		t.Fatalf("over stock status = %d", rec.Code)
	}

	res = decode[cartResponse](t, do(t, h, http.MethodPut, "/api/cart/items/"+lineID, "tok-u1", `{"quantity":2}`))
	if res.Cart.Total != 19.98 {
		t.Fatalf("after update: %+v", res)
	}

	res = decode[cartResponse](t, do(t, h, http.MethodDelete, "/api/cart/items/"+lineID, "tok-u1", ""))
	if len(res.Cart.Items) != 0 || res.Cart.Total != 0 {
		t.Fatalf("after remove: %+v", res)
	}
}

func TestCartAPI_Errors(t *testing.T) {
	h := newTestRouter(t)

	tests := []struct {
		name       string
		method     string
		path       string
		token      string
		body       string
		wantStatus int
	}{
		{name: "unauthenticated", method: http.MethodGet, path: "/api/cart", wantStatus: http.StatusUnauthorized},
		{name: "bad token", method: http.MethodGet, path: "/api/cart", token: "nope", wantStatus: http.StatusUnauthorized},
		{name: "empty cart", method: http.MethodGet, path: "/api/cart", token: "tok-u1", wantStatus: http.StatusOK},
		{name: "zero quantity", method: http.MethodPost, path: "/api/cart/items", token: "tok-u1", body: `{"productId":"p1","quantity":0}`, wantStatus: http.StatusBadRequest},
		{name: "unknown field", method: http.MethodPost, path: "/api/cart/items", token: "tok-u1", body: `{"productId":"p1","qty":1}`, wantStatus: http.StatusBadRequest},
		{name: "unknown product", method: http.MethodPost, path: "/api/cart/items", token: "tok-u1", body: `{"productId":"zz","quantity":1}`, wantStatus: http.StatusNotFound},
		{name: "out of stock", method: http.MethodPost, path: "/api/cart/items", token: "tok-u1", body: `{"productId":"p0","quantity":1}`, wantStatus: http.StatusConflict},
		{name: "update missing cart", method: http.MethodPut, path: "/api/cart/items/x", token: "tok-u1", body: `{"quantity":1}`, wantStatus: http.StatusNotFound},
		{name: "update without quantity", method: http.MethodPut, path: "/api/cart/items/x", token: "tok-u1", body: `{}`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, tt.method, tt.path, tt.token, tt.body)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body=%s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}

func TestProductAPI(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/api/products/p1", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}
	p := decode[map[string]any](t, rec)
	if p["_id"] != "p1" || p["price"] != 9.99 {
		t.Fatalf("product = %v", p)
	}

	if rec := do(t, h, http.MethodGet, "/api/products/missing", "", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("missing status = %d", rec.Code)
	}

	list := decode[struct {
		Products   []map[string]any `json:"products"`
		TotalCount int              `json:"totalCount"`
	}](t, do(t, h, http.MethodGet, "/api/products?category=kitchen", "", ""))
	if list.TotalCount != 1 || len(list.Products) != 1 {
		t.Fatalf("list = %+v", list)
	}
}

func TestProductViewAPI(t *testing.T) {
	h := newTestRouter(t)

	signedOut := decode[productview.Model](t, do(t, h, http.MethodGet, "/api/products/p1/view", "", ""))
	if signedOut.State != productview.StateLoadedNoQuantityControl || !signedOut.ShowSignIn || signedOut.CanAddToCart {
		t.Fatalf("signed out model = %+v", signedOut)
	}
	if strings.Join(signedOut.Gallery, ",") != "A,B,C" {
		t.Fatalf("gallery = %v", signedOut.Gallery)
	}

	m := decode[productview.Model](t, do(t, h, http.MethodGet, "/api/products/p1/view?image=1&quantity=9", "tok-u1", ""))
	if m.State != productview.StateLoadedWithQuantityControl || !m.CanAddToCart {
		t.Fatalf("signed in model = %+v", m)
	}
	if m.SelectedImageURL != "B" || m.Quantity != 1 {
		t.Fatalf("image/quantity = %q/%d", m.SelectedImageURL, m.Quantity)
	}

	soldOut := decode[productview.Model](t, do(t, h, http.MethodGet, "/api/products/p0/view", "tok-u1", ""))
	if soldOut.CanAddToCart || soldOut.ShowQuantityControl {
		t.Fatalf("sold out model = %+v", soldOut)
	}

	rec := do(t, h, http.MethodGet, "/api/products/missing/view", "", "")
	notFound := decode[productview.Model](t, rec)
	if rec.Code != http.StatusNotFound || notFound.Error != productview.NotFoundMessage {
		t.Fatalf("missing view = %d %+v", rec.Code, notFound)
	}
}

func TestReviewAPI(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodPost, "/api/products/p1/reviews", "tok-u1", `{"rating":4,"comment":"nice"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d body=%s", rec.Code, rec.Body.String())
	}
	created := decode[map[string]any](t, rec)
	id, _ := created["_id"].(string)
	if id == "" || created["userName"] != "Ana" {
		t.Fatalf("created = %v", created)
	}

	if rec := do(t, h, http.MethodPost, "/api/products/p1/reviews", "tok-u1", `{"rating":5}`); rec.Code != http.StatusConflict {
		t.Fatalf("duplicate status = %d", rec.Code)
	}
	if rec := do(t, h, http.MethodPost, "/api/products/p1/reviews", "", `{"rating":5}`); rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous status = %d", rec.Code)
	}

	list := decode[struct {
		Count         int     `json:"count"`
		AverageRating float64 `json:"averageRating"`
	}](t, do(t, h, http.MethodGet, "/api/products/p1/reviews", "", ""))
	if list.Count != 1 || list.AverageRating != 4 {
		t.Fatalf("list = %+v", list)
	}

	if rec := do(t, h, http.MethodDelete, "/api/products/p1/reviews/"+id, "tok-u2", ""); rec.Code != http.StatusForbidden {
		t.Fatalf("delete by other status = %d", rec.Code)
	}
	if rec := do(t, h, http.MethodDelete, "/api/products/p1/reviews/"+id, "tok-u1", ""); rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}
}

func TestPages(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/products/p1", "", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Sign in to purchase") {
		t.Fatalf("signed out page = %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "Add to Cart") {
		t.Fatalf("signed out page offers add to cart")
	}

	form := url.Values{"quantity": {"2"}}
	req := httptest.NewRequest(http.MethodPost, "/products/p1/cart", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "tok-u1"})
	post := httptest.NewRecorder()
	h.ServeHTTP(post, req)
	if post.Code != http.StatusSeeOther || post.Header().Get("Location") != "/cart" {
		t.Fatalf("form add = %d %q", post.Code, post.Header().Get("Location"))
	}

	req = httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "tok-u1"})
	cart := httptest.NewRecorder()
	h.ServeHTTP(cart, req)
	if cart.Code != http.StatusOK || !strings.Contains(cart.Body.String(), "$19.98") {
		t.Fatalf("cart page = %d %s", cart.Code, cart.Body.String())
	}

	anon := do(t, h, http.MethodGet, "/cart", "", "")
	if anon.Code != http.StatusSeeOther {
		t.Fatalf("anonymous cart page = %d", anon.Code)
	}

	missing := do(t, h, http.MethodGet, "/products/missing", "", "")
	if missing.Code != http.StatusNotFound || !strings.Contains(missing.Body.String(), productview.NotFoundMessage) {
		t.Fatalf("missing page = %d", missing.Code)
	}
}
