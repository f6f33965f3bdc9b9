package author

import (
	"fmt"
	"net/http"

	"bookgateway/internal/httpx"
)

// BasePath is the local mount point of the author resource.
const BasePath = "/api/author"

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// Routes registers the author endpoints on mux.
func (h *HTTPHandler) Routes(mux *http.ServeMux) {
	mux.HandleFunc("GET "+BasePath, h.List)
	mux.HandleFunc("GET "+BasePath+"/{id}", h.GetByID)
	mux.HandleFunc("GET "+BasePath+"/bybook/{bookId}", h.ListByBook)
	mux.HandleFunc("POST "+BasePath, h.Create)
	mux.HandleFunc("PUT "+BasePath+"/{id}", h.Update)
	mux.HandleFunc("DELETE "+BasePath+"/{id}", h.Delete)
}

// List handles GET /api/author
// @Summary List authors
// @Tags authors
// @Produce json
// @Success 200 {array} Author
// @Router /api/author [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	authors, _ := h.service.ListAll(r.Context())
	httpx.JSON(w, http.StatusOK, authors)
}

// GetByID handles GET /api/author/{id}
// @Summary Get author by id
// @Tags authors
// @Produce json
// @Param id path int true "Author ID"
// @Success 200 {object} Author
// @Failure 404 {object} httpx.ErrorResponse
// @Router /api/author/{id} [get]
func (h *HTTPHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.PathID(w, r, "id")
	if !ok {
		return
	}

	a, outcome := h.service.GetByID(r.Context(), id)
	if !outcome.OK() {
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Author not found", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, a)
}

// ListByBook handles GET /api/author/bybook/{bookId}
// @Summary List the authors of a book
// @Tags authors
// @Produce json
// @Param bookId path int true "Book ID"
// @Success 200 {array} Author
// @Router /api/author/bybook/{bookId} [get]
func (h *HTTPHandler) ListByBook(w http.ResponseWriter, r *http.Request) {
	bookID, ok := httpx.PathID(w, r, "bookId")
	if !ok {
		return
	}

	authors, _ := h.service.ListByBook(r.Context(), bookID)
	httpx.JSON(w, http.StatusOK, authors)
}

// Create handles POST /api/author
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in Author
	if !httpx.DecodeJSONBody(w, r, &in) {
		return
	}
	if details := httpx.ValidateStruct(in); details != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid author", details)
		return
	}

	created, outcome := h.service.Add(r.Context(), in)
	if !outcome.OK() {
		upstreamFailure(w, r, outcome)
		return
	}
	httpx.JSONCreated(w, fmt.Sprintf("%s/%d", BasePath, created.ID), created)
}

// Update handles PUT /api/author/{id}
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.PathID(w, r, "id")
	if !ok {
		return
	}

	var in Author
	if !httpx.DecodeJSONBody(w, r, &in) {
		return
	}
	if in.ID != id {
		httpx.JSONError(w, r, http.StatusBadRequest, "ID_MISMATCH", "ID mismatch", nil)
		return
	}
	if details := httpx.ValidateStruct(in); details != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid author", details)
		return
	}

	if !h.service.Update(r.Context(), in).OK() {
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Author not found", nil)
		return
	}
	httpx.NoContent(w)
}

// Delete handles DELETE /api/author/{id}
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.PathID(w, r, "id")
	if !ok {
		return
	}

	if !h.service.Remove(r.Context(), id).OK() {
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Author not found", nil)
		return
	}
	httpx.NoContent(w)
}

func upstreamFailure(w http.ResponseWriter, r *http.Request, outcome Outcome) {
	if outcome == OutcomeUnavailable {
		httpx.JSONError(w, r, http.StatusBadGateway, "UPSTREAM_UNAVAILABLE", "Author service is unavailable", nil)
		return
	}
	httpx.JSONError(w, r, http.StatusBadGateway, "UPSTREAM_REJECTED", "Author service rejected the request", nil)
}
