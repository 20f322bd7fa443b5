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

// SnippetHandler manages CRUD over code snippets, including their tag
// associations.
type SnippetHandler struct {
	snippets *service.SnippetService
	logger   *slog.Logger
}

func NewSnippetHandler(snippets *service.SnippetService, logger *slog.Logger) *SnippetHandler {
	return &SnippetHandler{
		snippets: snippets,
		logger:   logger,
	}
}

// createSnippetRequest requires the full field set. Tags must be present
// (an empty array is fine, a missing key is not), and the category must be
// named — a snippet is always created inside one of the account's
// categories.
type createSnippetRequest struct {
	Title      string   `json:"title" validate:"required,max=50"`
	Code       string   `json:"code"`
	Language   string   `json:"language" validate:"required,max=32"`
	Tags       []string `json:"tags" validate:"required"`
	CategoryID string   `json:"category_id" validate:"required"`
}

// updateSnippetRequest is a partial update: absent keys stay untouched.
// A present tags array replaces the snippet's whole tag set.
type updateSnippetRequest struct {
	Title    *string   `json:"title" validate:"omitempty,max=50"`
	Code     *string   `json:"code"`
	Language *string   `json:"language" validate:"omitempty,max=32"`
	Tags     *[]string `json:"tags"`
}

type snippetListResponse struct {
	Snippets   []model.Snippet  `json:"snippets"`
	Pagination pagination.Page  `json:"pagination"`
	Links      pagination.Links `json:"links"`
	Total      int              `json:"total"`
}

// HandleList returns one page of the account's snippets with their tags
// flattened to {id, name} arrays.
//
// HTTP: GET /v1/snippet?skip&take&orderBy&direction
func (h *SnippetHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	page, err := pagination.FromQuery(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}

	userID, _ := auth.UserIDFromContext(r.Context())

	snippets, total, err := h.snippets.List(r.Context(), userID, page)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, snippetListResponse{
		Snippets:   snippets,
		Pagination: page,
		Links:      page.Links("snippet"),
		Total:      total,
	})
}

// HandleGet returns a single snippet with tags, or `{snippet: null}` when
// no owned snippet matches.
//
// HTTP: GET /v1/snippet/{id}
func (h *SnippetHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	snippet, err := h.snippets.Get(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			writeJSON(w, http.StatusOK, map[string]*model.Snippet{"snippet": nil})
			return
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]*model.Snippet{"snippet": snippet})
}

// HandleCreate persists a new snippet with its tags.
//
// HTTP: POST /v1/snippet
func (h *SnippetHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createSnippetRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	userID, _ := auth.UserIDFromContext(r.Context())

	_, err := h.snippets.Create(r.Context(), userID, service.CreateSnippetInput{
		Title:      req.Title,
		Code:       req.Code,
		Language:   req.Language,
		Tags:       req.Tags,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "Snippet successfully added.")
}

// HandleUpdate applies a partial update to a snippet.
//
// HTTP: PUT /v1/snippet/{id}
func (h *SnippetHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req updateSnippetRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	userID, _ := auth.UserIDFromContext(r.Context())

	err := h.snippets.Update(r.Context(), userID, chi.URLParam(r, "id"), service.UpdateSnippetInput{
		Title:    req.Title,
		Code:     req.Code,
		Language: req.Language,
		Tags:     req.Tags,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "Snippet successfully updated.")
}

// HandleDelete removes a snippet; its tag associations cascade away, the
// tag rows themselves stay.
//
// HTTP: DELETE /v1/snippet/{id}
func (h *SnippetHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	if err := h.snippets.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "Snippet successfully deleted.")
}
