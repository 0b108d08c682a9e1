package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/category-api/internal/api/shared"
	"github.com/phrazzld/category-api/internal/domain"
	"github.com/phrazzld/category-api/internal/platform/logger"
	"github.com/phrazzld/category-api/internal/service"
	"github.com/phrazzld/category-api/internal/store"
)

// Plain-text responses for malformed requests and unknown categories.
const (
	msgMalformedID      = "Missing or malformed id"
	msgMalformedBody    = "Malformed request body"
	msgCategoryNotFound = "Category with this id doesn't exist"
)

// idParam is the chi URL parameter holding the category ID.
const idParam = "id"

// CategoryHandler handles category-related HTTP requests
type CategoryHandler struct {
	categoryService service.CategoryService
	views           CategoryViewFactory
	logger          *slog.Logger
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(
	categoryService service.CategoryService,
	views CategoryViewFactory,
	logger *slog.Logger,
) *CategoryHandler {
	if categoryService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("category service cannot be nil for CategoryHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for CategoryHandler")
	}

	return &CategoryHandler{
		categoryService: categoryService,
		views:           views,
		logger:          logger.With(slog.String("component", "category_handler")),
	}
}

// RegisterCategoryRoutes mounts the category endpoints on r.
func RegisterCategoryRoutes(r chi.Router, h *CategoryHandler) {
	r.Route("/categories", func(r chi.Router) {
		r.Get("/", h.ListCategories)
		r.Post("/", h.CreateCategory)
		r.Get("/{id}", h.GetCategory)
		r.Patch("/{id}", h.UpdateCategory)
		r.Delete("/{id}", h.DeleteCategory)
	})
}

// ListCategories handles GET /categories requests
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryService.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, h.views.CreateList(categories))
}

// GetCategory handles GET /categories/{id} requests
func (h *CategoryHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	category, err := h.categoryService.Get(r.Context(), id)
	if errors.Is(err, store.ErrCategoryNotFound) {
		shared.RespondWithText(w, r, http.StatusNotFound, fmt.Sprintf("No category with id %s", id))
		return
	}
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, h.views.CreateSingle(category))
}

// CreateCategory handles POST /categories requests
func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	result, err := h.categoryService.Create(r.Context(), req)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	if result.Invalid() {
		shared.RespondWithJSON(w, r, http.StatusBadRequest, result.Violations)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, h.views.CreateSingle(result.Category))
}

// UpdateCategory handles PATCH /categories/{id} requests
func (h *CategoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	result, err := h.categoryService.Update(r.Context(), id, req)
	if errors.Is(err, store.ErrCategoryNotFound) {
		shared.RespondWithText(w, r, http.StatusNotFound, msgCategoryNotFound)
		return
	}
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	if result.Invalid() {
		shared.RespondWithJSON(w, r, http.StatusBadRequest, result.Violations)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, h.views.CreateSingle(result.Category))
}

// DeleteCategory handles DELETE /categories/{id} requests
func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	err := h.categoryService.Delete(r.Context(), id)
	if errors.Is(err, store.ErrCategoryNotFound) {
		shared.RespondWithText(w, r, http.StatusNotFound, msgCategoryNotFound)
		return
	}
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondNoContent(w)
}

// pathID extracts the category ID from the path, writing a 400 response
// if it is missing or malformed.
func (h *CategoryHandler) pathID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, err := getPathUUID(r, idParam)
	if err != nil {
		logger.FromContextOrDefault(r.Context(), h.logger).Debug("invalid category id",
			slog.String("value", chi.URLParam(r, idParam)),
			slog.String("error", err.Error()))
		shared.RespondWithText(w, r, http.StatusBadRequest, msgMalformedID)
		return "", false
	}
	return id.String(), true
}

// decodeRequest parses the category request body, writing a 400 response
// if it cannot be decoded.
func (h *CategoryHandler) decodeRequest(w http.ResponseWriter, r *http.Request) (domain.CategoryRequest, bool) {
	var req domain.CategoryRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		logger.FromContextOrDefault(r.Context(), h.logger).Debug("malformed category request",
			slog.String("error", err.Error()))
		shared.RespondWithText(w, r, http.StatusBadRequest, msgMalformedBody)
		return domain.CategoryRequest{}, false
	}
	return req, true
}
