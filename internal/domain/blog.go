package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Blog
var (
	ErrEmptyBlogID       = fmt.Errorf("%w: blog ID cannot be empty", ErrValidation)
	ErrEmptyBlogTitle    = fmt.Errorf("%w: blog title cannot be empty", ErrValidation)
	ErrEmptyBlogBody     = fmt.Errorf("%w: blog body cannot be empty", ErrValidation)
	ErrEmptyBlogAuthorID = fmt.Errorf("%w: blog author ID cannot be empty", ErrValidation)
)

// Blog represents a single blog post. The author is immutable after
// creation; a post is visible in listings only once the clock passes
// PublishAt and the post has not been soft-deleted.
type Blog struct {
	ID        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	AuthorID  uuid.UUID  `json:"author_id"`
	CreatedAt time.Time  `json:"created_at"`
	PublishAt time.Time  `json:"publish_at"`
	DeletedAt *time.Time `json:"-"` // Soft-delete marker; nil means active
}

// NewBlog creates a new Blog owned by the given author, stamped against the
// caller's clock so creation and publish gating share one time source.
// If publishAt is the zero time, the post publishes at now.
// Returns an error if validation fails.
func NewBlog(authorID uuid.UUID, title, body string, publishAt, now time.Time) (*Blog, error) {
	now = now.UTC()
	if publishAt.IsZero() {
		publishAt = now
	}

	blog := &Blog{
		ID:        uuid.New(),
		Title:     title,
		Body:      body,
		AuthorID:  authorID,
		CreatedAt: now,
		PublishAt: publishAt.UTC(),
	}

	if err := blog.Validate(); err != nil {
		return nil, err
	}

	return blog, nil
}

// Validate checks if the Blog has valid data.
// Returns an error if any field fails validation.
func (b *Blog) Validate() error {
	if b.ID == uuid.Nil {
		return ErrEmptyBlogID
	}

	if b.Title == "" {
		return ErrEmptyBlogTitle
	}

	if b.Body == "" {
		return ErrEmptyBlogBody
	}

	if b.AuthorID == uuid.Nil {
		return ErrEmptyBlogAuthorID
	}

	return nil
}

// OwnedBy reports whether the given user is the author of the post.
func (b *Blog) OwnedBy(userID uuid.UUID) bool {
	return b.AuthorID == userID
}

// PublishedAt reports whether the post is visible at the given time.
func (b *Blog) PublishedAt(now time.Time) bool {
	return b.DeletedAt == nil && !b.PublishAt.After(now)
}

// SoftDelete marks the post as deleted at the given time.
// The record is never removed from storage.
func (b *Blog) SoftDelete(at time.Time) {
	t := at.UTC()
	b.DeletedAt = &t
}
