package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/snippets-manager/internal/apperror"
	"github.com/sakif/snippets-manager/internal/auth"
	"github.com/sakif/snippets-manager/internal/model"
	"github.com/sakif/snippets-manager/internal/pagination"
	"github.com/sakif/snippets-manager/internal/service"
)

// CategoryHandler manages CRUD over snippet categories. All routes sit
// behind the auth guard; the acting account comes from the request context.
type CategoryHandler struct {
	categories *service.CategoryService
	logger     *slog.Logger
}

func NewCategoryHandler(categories *service.CategoryService, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{
		categories: categories,
		logger:     logger,
	}
}

type categoryRequest struct {
	Name string `json:"name" validate:"required,max=50"`
}

// categoryListResponse echoes the applied window back alongside the data,
// the navigation links and the total count.
type categoryListResponse struct {
	Categories []model.Category `json:"categories"`
	Pagination pagination.Page  `json:"pagination"`
	Links      pagination.Links `json:"links"`
	Total      int              `json:"total"`
}

// HandleList returns one page of the account's categories.
//
// HTTP: GET /v1/category?skip&take&orderBy&direction
func (h *CategoryHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	page, err := pagination.FromQuery(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}

	userID, _ := auth.UserIDFromContext(r.Context())

	categories, total, err := h.categories.List(r.Context(), userID, page)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, categoryListResponse{
		Categories: categories,
		Pagination: page,
		Links:      page.Links("category"),
		Total:      total,
	})
}

// HandleGet returns a single category, or `{category: null}` when no owned
// category matches — not finding one is not an error.
//
// HTTP: GET /v1/category/{id}
func (h *CategoryHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	category, err := h.categories.Get(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			writeJSON(w, http.StatusOK, map[string]*model.Category{"category": nil})
			return
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]*model.Category{"category": category})
}

// HandleCreate inserts a new category and returns its generated id.
//
// HTTP: POST /v1/category
func (h *CategoryHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	userID, _ := auth.UserIDFromContext(r.Context())

	category, err := h.categories.Create(r.Context(), userID, req.Name)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Message string `json:"message"`
		ID      string `json:"id"`
	}{
		Message: "Category successfully added.",
		ID:      category.ID,
	})
}

// HandleUpdate renames a category. A non-owned or missing id answers 400.
//
// HTTP: PUT /v1/category/{id}
func (h *CategoryHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	userID, _ := auth.UserIDFromContext(r.Context())

	if err := h.categories.Update(r.Context(), userID, chi.URLParam(r, "id"), req.Name); err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "Category successfully updated.")
}

// HandleDelete removes a category; snippets that referenced it lose the
// reference but survive.
//
// HTTP: DELETE /v1/category/{id}
func (h *CategoryHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	if err := h.categories.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "Category successfully deleted.")
}
