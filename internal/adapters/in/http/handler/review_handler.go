// internal/adapters/in/http/handler/review_handler.go
package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/apaluca/ReactRetail/internal/adapters/in/http/middleware"
	"github.com/apaluca/ReactRetail/internal/application/query/dto"
	"github.com/apaluca/ReactRetail/internal/application/usecase"
	"github.com/apaluca/ReactRetail/internal/infra/logging"
)

type ReviewHandler struct {
	uc  *usecase.ReviewUsecase
	log *logrus.Entry
}

func NewReviewHandler(uc *usecase.ReviewUsecase) *ReviewHandler {
	return &ReviewHandler{uc: uc, log: logging.Component("review_handler")}
}

type createReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// List handles GET /api/products/{id}/reviews
func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	res, err := h.uc.ListByProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeUsecaseErr(w, h.log, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.ToProductReviewsDTO(res.Reviews, res.Summary))
}

// Create handles POST /api/products/{id}/reviews {rating, comment}
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, ok := middleware.CurrentUserUID(r)
	if !ok {
		unauthorized(w)
		return
	}

	var req createReviewRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequest(w, "invalid json")
		return
	}

	rv, err := h.uc.Create(r.Context(), uid, displayName(r), chi.URLParam(r, "id"), req.Rating, req.Comment)
	if err != nil {
		writeUsecaseErr(w, h.log, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, dto.ToReviewDTO(*rv))
}

// Delete handles DELETE /api/products/{id}/reviews/{reviewId}
func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	uid, ok := middleware.CurrentUserUID(r)
	if !ok {
		unauthorized(w)
		return
	}

	if err := h.uc.Delete(r.Context(), uid, chi.URLParam(r, "reviewId")); err != nil {
		writeUsecaseErr(w, h.log, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// displayName prefers the token name, then the e-mail local part.
func displayName(r *http.Request) string {
	if name, ok := middleware.CurrentUserFullName(r); ok {
		return name
	}
	email := middleware.CurrentUserEmail(r)
	if i := strings.Index(email, "@"); i > 0 {
		return email[:i]
	}
	return ""
}
