package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/mstiles/blog-api/internal/domain"
)

// BlogListItem is a published blog post expanded with its author's display
// name, as returned by the list endpoint.
type BlogListItem struct {
	ID     uuid.UUID `json:"id"`
	Title  string    `json:"title"`
	Body   string    `json:"body"`
	Author string    `json:"author"`
}

// BlogDetail is a single blog post expanded with its author's display name,
// the same projection the list endpoint uses plus timestamps.
type BlogDetail struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
	PublishAt time.Time `json:"publish_date"`
}

// BlogStore defines the interface for blog post persistence.
type BlogStore interface {
	// Create saves a new blog post to the store.
	// Returns ErrInvalidEntity if the author does not exist (foreign key
	// violation), or validation errors from the domain Blog.
	Create(ctx context.Context, blog *domain.Blog) error

	// GetByID retrieves a non-deleted blog post by its unique ID.
	// Returns ErrBlogNotFound if the post does not exist or has been
	// soft-deleted, so a second delete of the same post resolves to
	// not-found rather than re-deleting.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Blog, error)

	// GetDetail retrieves a non-deleted blog post joined with its author's
	// display name. Returns ErrBlogNotFound under the same conditions as
	// GetByID.
	GetDetail(ctx context.Context, id uuid.UUID) (*BlogDetail, error)

	// ListPublished returns all non-deleted posts whose publish time is at
	// or before now, each joined with the author's display name, in
	// insertion order.
	ListPublished(ctx context.Context, now time.Time) ([]BlogListItem, error)

	// Update overwrites the title and body of an existing post. The author
	// is immutable and is not written. Returns ErrBlogNotFound if the post
	// does not exist or has been soft-deleted.
	Update(ctx context.Context, blog *domain.Blog) error

	// SoftDelete marks the post as deleted by setting deleted_at.
	// The row is never removed. Returns ErrBlogNotFound if the post does
	// not exist or is already soft-deleted.
	SoftDelete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a BlogStore bound to the provided transaction so
	// multiple operations can share one transaction. The transaction is
	// created and managed by the caller.
	WithTx(tx *sql.Tx) BlogStore
}
