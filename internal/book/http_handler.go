package book

import (
	"errors"
	"fmt"
	"net/http"

	"bookgateway/internal/httpx"
	"bookgateway/internal/platform/upstream"
)

// BasePath is the local mount point of the book resource.
const BasePath = "/api/book"

type HTTPHandler struct {
	books Dispatcher
}

func NewHTTPHandler(books Dispatcher) *HTTPHandler {
	return &HTTPHandler{books: books}
}

// Routes registers the book endpoints on mux.
func (h *HTTPHandler) Routes(mux *http.ServeMux) {
	mux.HandleFunc("GET "+BasePath, h.List)
	mux.HandleFunc("GET "+BasePath+"/{id}", h.GetByID)
	mux.HandleFunc("POST "+BasePath, h.Create)
	mux.HandleFunc("PUT "+BasePath+"/{id}", h.Update)
	mux.HandleFunc("DELETE "+BasePath+"/{id}", h.Delete)
}

// List handles GET /api/book
// @Summary List books
// @Tags books
// @Produce json
// @Success 200 {array} Book
// @Failure 502 {object} httpx.ErrorResponse
// @Router /api/book [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.books.ListAll(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, books)
}

// GetByID handles GET /api/book/{id}
// @Summary Get book by id
// @Tags books
// @Produce json
// @Param id path int true "Book ID"
// @Success 200 {object} Book
// @Failure 404 {object} httpx.ErrorResponse
// @Router /api/book/{id} [get]
func (h *HTTPHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.PathID(w, r, "id")
	if !ok {
		return
	}

	b, err := h.books.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, b)
}

// Create handles POST /api/book
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in Book
	if !httpx.DecodeJSONBody(w, r, &in) {
		return
	}
	if details := httpx.ValidateStruct(in); details != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid book", details)
		return
	}

	created, err := h.books.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSONCreated(w, fmt.Sprintf("%s/%d", BasePath, created.ID), created)
}

// Update handles PUT /api/book/{id}
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.PathID(w, r, "id")
	if !ok {
		return
	}

	var in Book
	if !httpx.DecodeJSONBody(w, r, &in) {
		return
	}
	if in.ID != id {
		httpx.JSONError(w, r, http.StatusBadRequest, "ID_MISMATCH", "The id does not match the selected book", nil)
		return
	}
	if details := httpx.ValidateStruct(in); details != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid book", details)
		return
	}

	if err := h.books.Update(r.Context(), id, in); err != nil {
		writeError(w, r, err)
		return
	}
	httpx.NoContent(w)
}

// Delete handles DELETE /api/book/{id}
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.PathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.books.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	httpx.NoContent(w)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
	case upstream.IsTransport(err):
		httpx.JSONError(w, r, http.StatusBadGateway, "UPSTREAM_UNAVAILABLE", "Book service is unavailable", nil)
	default:
		httpx.JSONError(w, r, http.StatusBadGateway, "UPSTREAM_ERROR", "Book service returned an error", nil)
	}
}
