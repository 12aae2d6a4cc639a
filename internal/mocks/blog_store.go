package mocks

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mstiles/blog-api/internal/domain"
	"github.com/mstiles/blog-api/internal/store"
)

// BlogStore is an in-memory store.BlogStore for tests. Listing resolves
// author names through the associated UserStore, mirroring the SQL join.
type BlogStore struct {
	mu    sync.Mutex
	blogs map[uuid.UUID]*domain.Blog
	users *UserStore

	CreateErr     error
	GetErr        error
	ListErr       error
	UpdateErr     error
	SoftDeleteErr error
}

// NewBlogStore creates an empty in-memory blog store that resolves authors
// against the given user store.
func NewBlogStore(users *UserStore) *BlogStore {
	return &BlogStore{
		blogs: make(map[uuid.UUID]*domain.Blog),
		users: users,
	}
}

var _ store.BlogStore = (*BlogStore)(nil)

// Create implements store.BlogStore.Create.
func (s *BlogStore) Create(ctx context.Context, blog *domain.Blog) error {
	if s.CreateErr != nil {
		return s.CreateErr
	}
	if err := blog.Validate(); err != nil {
		return err
	}

	if s.users != nil {
		if _, err := s.users.GetByID(ctx, blog.AuthorID); err != nil {
			return fmt.Errorf("%w: author with ID %s not found",
				store.ErrInvalidEntity, blog.AuthorID)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *blog
	s.blogs[blog.ID] = &copied
	return nil
}

// GetByID implements store.BlogStore.GetByID.
func (s *BlogStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Blog, error) {
	if s.GetErr != nil {
		return nil, s.GetErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	blog, ok := s.blogs[id]
	if !ok || blog.DeletedAt != nil {
		return nil, store.ErrBlogNotFound
	}
	copied := *blog
	return &copied, nil
}

// GetDetail implements store.BlogStore.GetDetail.
func (s *BlogStore) GetDetail(ctx context.Context, id uuid.UUID) (*store.BlogDetail, error) {
	blog, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	author := ""
	if s.users != nil {
		if user, err := s.users.GetByID(ctx, blog.AuthorID); err == nil {
			author = user.Name
		}
	}

	return &store.BlogDetail{
		ID:        blog.ID,
		Title:     blog.Title,
		Body:      blog.Body,
		Author:    author,
		CreatedAt: blog.CreatedAt,
		PublishAt: blog.PublishAt,
	}, nil
}

// ListPublished implements store.BlogStore.ListPublished.
func (s *BlogStore) ListPublished(
	ctx context.Context,
	now time.Time,
) ([]store.BlogListItem, error) {
	if s.ListErr != nil {
		return nil, s.ListErr
	}

	s.mu.Lock()
	published := make([]*domain.Blog, 0, len(s.blogs))
	for _, blog := range s.blogs {
		if blog.PublishedAt(now) {
			published = append(published, blog)
		}
	}
	s.mu.Unlock()

	sort.Slice(published, func(i, j int) bool {
		return published[i].CreatedAt.Before(published[j].CreatedAt)
	})

	items := []store.BlogListItem{}
	for _, blog := range published {
		author := ""
		if s.users != nil {
			if user, err := s.users.GetByID(ctx, blog.AuthorID); err == nil {
				author = user.Name
			}
		}
		items = append(items, store.BlogListItem{
			ID:     blog.ID,
			Title:  blog.Title,
			Body:   blog.Body,
			Author: author,
		})
	}
	return items, nil
}

// Update implements store.BlogStore.Update.
func (s *BlogStore) Update(ctx context.Context, blog *domain.Blog) error {
	if s.UpdateErr != nil {
		return s.UpdateErr
	}
	if err := blog.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.blogs[blog.ID]
	if !ok || existing.DeletedAt != nil {
		return store.ErrBlogNotFound
	}
	existing.Title = blog.Title
	existing.Body = blog.Body
	return nil
}

// SoftDelete implements store.BlogStore.SoftDelete.
func (s *BlogStore) SoftDelete(ctx context.Context, id uuid.UUID) error {
	if s.SoftDeleteErr != nil {
		return s.SoftDeleteErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	blog, ok := s.blogs[id]
	if !ok || blog.DeletedAt != nil {
		return store.ErrBlogNotFound
	}
	blog.SoftDelete(time.Now().UTC())
	return nil
}

// WithTx implements store.BlogStore.WithTx. The in-memory store has no
// transactions; it returns itself.
func (s *BlogStore) WithTx(tx *sql.Tx) store.BlogStore {
	return s
}
