// Package handler provides HTTP handlers for product-related operations.
package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/abgdnv/inventory/internal/platform/web"
	producterrors "github.com/abgdnv/inventory/internal/product/errors"
	"github.com/abgdnv/inventory/internal/product/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type Handler struct {
	service  service.ProductService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewHandler creates a new Handler backed by the given ProductService.
func NewHandler(service service.ProductService, logger *slog.Logger) *Handler {
	return &Handler{
		service:  service,
		validate: web.NewValidator(),
		logger:   logger.With("component", "rest"),
	}
}

// RegisterRoutes mounts the product endpoints and the health check on r.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.FindAll)
		r.Post("/", h.Create)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.FindByID)
			r.Put("/", h.Replace)
			r.Patch("/", h.Patch)
			r.Delete("/", h.DeleteByID)
		})
	})

	r.Get("/healthz", h.HealthCheck)
}

// FindAll lists products, optionally filtered by the category and name query parameters.
func (h *Handler) FindAll(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	name := r.URL.Query().Get("name")

	h.logger.DebugContext(r.Context(), "Received request to list products", "category", category, "name", name)
	list, err := h.service.FindAll(r.Context(), category, name)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Error retrieving product list", "error", err)
		web.RespondError(w, h.logger, http.StatusInternalServerError, "Failed to fetch products")
		return
	}
	h.logger.DebugContext(r.Context(), "Successfully retrieved product list", "count", len(list))
	web.RespondJSON(w, h.logger, http.StatusOK, list)
}

// FindByID retrieves a product by its ID.
func (h *Handler) FindByID(w http.ResponseWriter, r *http.Request) {
	id, ok := web.ParseID(w, r, h.logger)
	if !ok {
		return
	}

	h.logger.DebugContext(r.Context(), "Received request to find product by ID", "ID", id)
	found, err := h.service.FindByID(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, r, id, err, "retrieve")
		return
	}
	h.logger.DebugContext(r.Context(), "Successfully retrieved product", "ID", found.ID, "Name", found.Name)
	web.RespondJSON(w, h.logger, http.StatusOK, found)
}

// Create handles the creation of a new product.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var productCreateDto service.ProductCreateDto
	if !web.DecodeJSON(w, r, h.logger, &productCreateDto) {
		return
	}
	if !web.ValidateStruct(w, r, h.logger, h.validate, productCreateDto) {
		return
	}

	newProduct, err := h.service.Create(r.Context(), productCreateDto)
	if err != nil {
		h.respondServiceError(w, r, 0, err, "create")
		return
	}
	h.logger.InfoContext(r.Context(), "Product created successfully", "ID", newProduct.ID, "Name", newProduct.Name)
	web.RespondJSON(w, h.logger, http.StatusCreated, newProduct)
}

// Replace overwrites every field of an existing product.
func (h *Handler) Replace(w http.ResponseWriter, r *http.Request) {
	id, ok := web.ParseID(w, r, h.logger)
	if !ok {
		return
	}
	h.logger.DebugContext(r.Context(), "Received request to replace product", "ID", id)

	var productDto service.ProductCreateDto
	if !web.DecodeJSON(w, r, h.logger, &productDto) {
		return
	}
	if !web.ValidateStruct(w, r, h.logger, h.validate, productDto) {
		return
	}

	replaced, err := h.service.Replace(r.Context(), id, productDto)
	if err != nil {
		h.respondServiceError(w, r, id, err, "replace")
		return
	}
	h.logger.InfoContext(r.Context(), "Product replaced successfully", "ID", replaced.ID, "Name", replaced.Name)
	web.RespondJSON(w, h.logger, http.StatusOK, replaced)
}

// Patch updates only the fields present in the request body.
func (h *Handler) Patch(w http.ResponseWriter, r *http.Request) {
	id, ok := web.ParseID(w, r, h.logger)
	if !ok {
		return
	}
	h.logger.DebugContext(r.Context(), "Received request to patch product", "ID", id)

	var patchDto service.ProductPatchDto
	if !web.DecodeJSON(w, r, h.logger, &patchDto) {
		return
	}
	h.logger.DebugContext(r.Context(), "Decoded patch", "ID", id, "patch", patchDto)

	patched, err := h.service.Patch(r.Context(), id, patchDto)
	if err != nil {
		h.respondServiceError(w, r, id, err, "patch")
		return
	}
	h.logger.InfoContext(r.Context(), "Product patched successfully", "ID", patched.ID, "Stock", patched.Stock)
	web.RespondJSON(w, h.logger, http.StatusOK, patched)
}

// DeleteByID deletes a product by its ID.
func (h *Handler) DeleteByID(w http.ResponseWriter, r *http.Request) {
	id, ok := web.ParseID(w, r, h.logger)
	if !ok {
		return
	}
	h.logger.DebugContext(r.Context(), "Received request to delete product", "ID", id)
	if err := h.service.DeleteByID(r.Context(), id); err != nil {
		h.respondServiceError(w, r, id, err, "delete")
		return
	}
	h.logger.InfoContext(r.Context(), "Product deleted successfully", "ID", id)
	w.WriteHeader(http.StatusNoContent)
}

// HealthCheck is a simple health check endpoint.
func (h *Handler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// respondServiceError maps service errors to 404, 422 or 500.
func (h *Handler) respondServiceError(w http.ResponseWriter, r *http.Request, id int, err error, action string) {
	var validationErr *producterrors.ValidationError
	switch {
	case errors.Is(err, producterrors.ErrProductNotFound):
		h.logger.WarnContext(r.Context(), "Product not found", "ID", id, "action", action)
		web.RespondError(w, h.logger, http.StatusNotFound, fmt.Sprintf("Product with ID %d not found", id))
	case errors.As(err, &validationErr):
		h.logger.WarnContext(r.Context(), "Validation errors occurred", "errors", validationErr.Fields, "action", action)
		fields := make(map[string]string, len(validationErr.Fields))
		for field, rule := range validationErr.Fields {
			fields[field] = "failed on rule: " + rule
		}
		web.RespondValidationErrors(w, h.logger, fields)
	default:
		h.logger.ErrorContext(r.Context(), "Error processing product", "ID", id, "action", action, "error", err)
		web.RespondError(w, h.logger, http.StatusInternalServerError, fmt.Sprintf("Failed to %s product", action))
	}
}
