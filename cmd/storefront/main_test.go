package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAtomicHandler_Swap(t *testing.T) {
	h := newAtomicHandler(bootHandler(nil))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("healthz = %d %q", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/products", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("boot handler served /api/products: %d", rec.Code)
	}

	h.Store(nil)
	h.Store(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/products", nil))
	if rec.Code != http.StatusTeapot {
		t.Fatalf("swapped handler not used: %d", rec.Code)
	}
}
