package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mstiles/blog-api/internal/api/shared"
	"github.com/mstiles/blog-api/internal/service"
	"github.com/mstiles/blog-api/internal/store"
)

// BlogHandler handles the blog endpoints.
type BlogHandler struct {
	blogService service.BlogService
	logger      *slog.Logger
}

// NewBlogHandler creates a new BlogHandler with the given dependencies.
func NewBlogHandler(blogService service.BlogService, logger *slog.Logger) *BlogHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &BlogHandler{
		blogService: blogService,
		logger:      logger.With(slog.String("component", "blog_handler")),
	}
}

// List handles GET /blogs.
func (h *BlogHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.blogService.List(r.Context())
	if err != nil {
		HandleError(w, r, err)
		return
	}

	shared.RespondSuccess(w, r, http.StatusOK, "", map[string]any{
		"blogs": items,
	})
}

// Show handles GET /blogs/{id}. An absent or deleted blog renders as an
// empty object inside a success envelope, not as an error.
func (h *BlogHandler) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	blog, err := h.blogService.Get(r.Context(), id)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	var payload any = map[string]any{}
	if blog != nil {
		payload = blogDetail(blog)
	}

	shared.RespondSuccess(w, r, http.StatusOK, "", map[string]any{
		"blog": payload,
	})
}

// Create handles POST /blogs/create.
func (h *BlogHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateBlogRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondError(w, r, http.StatusBadRequest, msgInvalidRequest, err)
		return
	}

	blog, err := h.blogService.Create(r.Context(), service.CreateBlogInput{
		Title:       req.Title,
		Body:        req.Body,
		PublishDate: req.PublishDate,
		Credentials: service.Credentials{Email: req.Email, Password: req.Password},
	})
	if err != nil {
		HandleError(w, r, err)
		return
	}

	shared.RespondSuccess(w, r, http.StatusCreated, "blog successfully posted", map[string]any{
		"blog": BlogSummary{Title: blog.Title, Body: blog.Body},
	})
}

// Update handles PUT /blogs/{id}.
func (h *BlogHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req UpdateBlogRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondError(w, r, http.StatusBadRequest, msgInvalidRequest, err)
		return
	}

	blog, err := h.blogService.Update(r.Context(), id, service.UpdateBlogInput{
		Title:       req.Title,
		Body:        req.Body,
		Credentials: service.Credentials{Email: req.Email, Password: req.Password},
	})
	if err != nil {
		HandleError(w, r, err)
		return
	}

	shared.RespondSuccess(w, r, http.StatusOK, "blog successfully updated", map[string]any{
		"blog": BlogSummary{Title: blog.Title, Body: blog.Body},
	})
}

// Delete handles DELETE /blogs/{id}.
func (h *BlogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req CredentialsRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondError(w, r, http.StatusBadRequest, msgInvalidRequest, err)
		return
	}

	err := h.blogService.Delete(r.Context(), id,
		service.Credentials{Email: req.Email, Password: req.Password})
	if err != nil {
		HandleError(w, r, err)
		return
	}

	shared.RespondSuccess(w, r, http.StatusOK, "blog successfully deleted", nil)
}

// pathID extracts and parses the {id} path parameter. On failure it writes
// the error envelope and returns false.
func (h *BlogHandler) pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		h.logger.Debug("invalid blog id in path", slog.String("value", raw))
		shared.RespondError(w, r, http.StatusBadRequest, "Input id must be a valid id", err)
		return uuid.Nil, false
	}
	return id, true
}

// blogDetail is the full representation returned by the show endpoint.
// The author renders as a display name, the same expansion the list
// endpoint does.
func blogDetail(detail *store.BlogDetail) map[string]any {
	return map[string]any{
		"id":           detail.ID,
		"title":        detail.Title,
		"body":         detail.Body,
		"author":       detail.Author,
		"created_at":   detail.CreatedAt,
		"publish_date": detail.PublishAt,
	}
}
