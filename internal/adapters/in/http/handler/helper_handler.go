// internal/adapters/in/http/handler/helper_handler.go
package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/apaluca/ReactRetail/internal/application/usecase"
	cartdom "github.com/apaluca/ReactRetail/internal/domain/cart"
	productdom "github.com/apaluca/ReactRetail/internal/domain/product"
	reviewdom "github.com/apaluca/ReactRetail/internal/domain/review"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": strings.TrimSpace(msg)})
}

func badRequest(w http.ResponseWriter, msg string) {
	writeErr(w, http.StatusBadRequest, msg)
}

func unauthorized(w http.ResponseWriter) {
	writeErr(w, http.StatusUnauthorized, "unauthorized")
}

// readJSON decodes a single JSON object; unknown fields are rejected.
func readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errors.Wrap(err, "invalid json")
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("invalid json: trailing data")
	}
	return nil
}

func parseIntDefault(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// errorStatus maps domain and usecase errors to an HTTP status and a
// client-facing message.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, usecase.ErrCartInvalidArgument),
		errors.Is(err, cartdom.ErrInvalidCart),
		errors.Is(err, productdom.ErrInvalid):
		return http.StatusBadRequest, "invalid request"
	case errors.Is(err, cartdom.ErrInvalidQuantity):
		return http.StatusBadRequest, "quantity must be at least 1"
	case errors.Is(err, reviewdom.ErrInvalid):
		return http.StatusBadRequest, "rating must be 1-5 and comment at most 2000 characters"
	case errors.Is(err, usecase.ErrForbidden):
		return http.StatusForbidden, "forbidden"
	case errors.Is(err, usecase.ErrProductNotFound),
		errors.Is(err, productdom.ErrNotFound):
		return http.StatusNotFound, "product not found"
	case errors.Is(err, usecase.ErrCartNotFound):
		return http.StatusNotFound, "cart not found"
	case errors.Is(err, cartdom.ErrLineNotFound):
		return http.StatusNotFound, "cart item not found"
	case errors.Is(err, reviewdom.ErrNotFound):
		return http.StatusNotFound, "review not found"
	case errors.Is(err, reviewdom.ErrAlreadyReviewed):
		return http.StatusConflict, "you have already reviewed this product"
	case errors.Is(err, usecase.ErrOutOfStock):
		return http.StatusConflict, "product is out of stock"
	case errors.Is(err, usecase.ErrInsufficientStock):
		return http.StatusConflict, "not enough stock available"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

func writeUsecaseErr(w http.ResponseWriter, log *logrus.Entry, r *http.Request, err error) {
	code, msg := errorStatus(err)
	if code >= http.StatusInternalServerError && log != nil {
		log.WithFields(logrus.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
		}).WithError(err).Error("[handler] request failed")
	}
	writeErr(w, code, msg)
}
