package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mstiles/blog-api/internal/domain"
	"github.com/mstiles/blog-api/internal/rules"
	"github.com/mstiles/blog-api/internal/service/auth"
	"github.com/mstiles/blog-api/internal/store"
)

// CreateBlogInput is the payload for creating a post.
type CreateBlogInput struct {
	Title       string
	Body        string
	PublishDate string // optional; defaults to creation time
	Credentials
}

// UpdateBlogInput is the payload for updating a post.
type UpdateBlogInput struct {
	Title string
	Body  string
	Credentials
}

// BlogService provides the blog use-cases.
type BlogService interface {
	// List returns published, non-deleted posts with author names.
	List(ctx context.Context) ([]store.BlogListItem, error)

	// Get returns one non-deleted post by id, expanded with the author's
	// display name. An absent or deleted post is an empty result, not an
	// error: it returns (nil, nil).
	Get(ctx context.Context, id uuid.UUID) (*store.BlogDetail, error)

	// Create validates the input, authenticates the credentials and
	// persists a new post owned by the authenticated user.
	Create(ctx context.Context, in CreateBlogInput) (*domain.Blog, error)

	// Update validates the input, authenticates, then resolves the post
	// and compares ownership before overwriting title and body.
	// A missing post and a foreign owner both return auth.ErrNotAuthorized.
	Update(ctx context.Context, id uuid.UUID, in UpdateBlogInput) (*domain.Blog, error)

	// Delete authenticates, checks ownership the same way Update does, and
	// soft-deletes the post. Deleting an already-deleted post returns
	// auth.ErrNotAuthorized, never a crash.
	Delete(ctx context.Context, id uuid.UUID, creds Credentials) error
}

// BlogServiceImpl implements the BlogService interface.
type BlogServiceImpl struct {
	blogs    store.BlogStore
	verifier auth.CredentialVerifier
	db       *sql.DB
	logger   *slog.Logger
	now      func() time.Time
}

// NewBlogService creates a new BlogService. db may be nil, in which case
// writes run without an explicit transaction (unit tests, stores that
// manage their own atomicity).
func NewBlogService(
	blogs store.BlogStore,
	verifier auth.CredentialVerifier,
	db *sql.DB,
	logger *slog.Logger,
) *BlogServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &BlogServiceImpl{
		blogs:    blogs,
		verifier: verifier,
		db:       db,
		logger:   logger.With(slog.String("component", "blog_service")),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

var _ BlogService = (*BlogServiceImpl)(nil)

// WithClock overrides the service clock. Tests use this to move posts
// across their publish boundary.
func (s *BlogServiceImpl) WithClock(now func() time.Time) *BlogServiceImpl {
	s.now = now
	return s
}

// List implements BlogService.List.
func (s *BlogServiceImpl) List(ctx context.Context) ([]store.BlogListItem, error) {
	items, err := s.blogs.ListPublished(ctx, s.now())
	if err != nil {
		s.logger.Error("failed to list blogs", "error", err)
		return nil, err
	}
	return items, nil
}

// Get implements BlogService.Get.
func (s *BlogServiceImpl) Get(ctx context.Context, id uuid.UUID) (*store.BlogDetail, error) {
	detail, err := s.blogs.GetDetail(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrBlogNotFound) {
			return nil, nil
		}
		s.logger.Error("failed to get blog", "error", err, "blog_id", id)
		return nil, err
	}
	return detail, nil
}

// Create implements BlogService.Create.
func (s *BlogServiceImpl) Create(
	ctx context.Context,
	in CreateBlogInput,
) (*domain.Blog, error) {
	if err := validateBlogFields(in.Title, in.Body); err != nil {
		return nil, err
	}
	if err := rules.Validate("publish_date", in.PublishDate, rules.Date); err != nil {
		return nil, err
	}

	author, err := s.verifier.Verify(ctx, in.Email, in.Password)
	if err != nil {
		return nil, err
	}

	var publishAt time.Time
	if in.PublishDate != "" {
		// Already validated by the date rule above.
		publishAt, _ = rules.ParseDate(in.PublishDate)
	}

	blog, err := domain.NewBlog(author.ID, in.Title, in.Body, publishAt, s.now())
	if err != nil {
		return nil, err
	}

	err = s.runWrite(ctx, func(ctx context.Context, blogs store.BlogStore) error {
		return blogs.Create(ctx, blog)
	})
	if err != nil {
		s.logger.Error("failed to save blog", "error", err, "blog_id", blog.ID)
		return nil, err
	}

	s.logger.Info("blog created", "blog_id", blog.ID, "author_id", author.ID)
	return blog, nil
}

// Update implements BlogService.Update.
func (s *BlogServiceImpl) Update(
	ctx context.Context,
	id uuid.UUID,
	in UpdateBlogInput,
) (*domain.Blog, error) {
	if err := validateBlogFields(in.Title, in.Body); err != nil {
		return nil, err
	}

	author, err := s.verifier.Verify(ctx, in.Email, in.Password)
	if err != nil {
		return nil, err
	}

	blog, err := s.resolveOwned(ctx, id, author)
	if err != nil {
		return nil, err
	}

	blog.Title = in.Title
	blog.Body = in.Body

	err = s.runWrite(ctx, func(ctx context.Context, blogs store.BlogStore) error {
		return blogs.Update(ctx, blog)
	})
	if err != nil {
		if errors.Is(err, store.ErrBlogNotFound) {
			return nil, auth.ErrNotAuthorized
		}
		s.logger.Error("failed to update blog", "error", err, "blog_id", id)
		return nil, err
	}

	s.logger.Info("blog updated", "blog_id", id, "author_id", author.ID)
	return blog, nil
}

// Delete implements BlogService.Delete.
func (s *BlogServiceImpl) Delete(
	ctx context.Context,
	id uuid.UUID,
	creds Credentials,
) error {
	author, err := s.verifier.Verify(ctx, creds.Email, creds.Password)
	if err != nil {
		return err
	}

	blog, err := s.resolveOwned(ctx, id, author)
	if err != nil {
		return err
	}

	err = s.runWrite(ctx, func(ctx context.Context, blogs store.BlogStore) error {
		return blogs.SoftDelete(ctx, blog.ID)
	})
	if err != nil {
		if errors.Is(err, store.ErrBlogNotFound) {
			return auth.ErrNotAuthorized
		}
		s.logger.Error("failed to soft-delete blog", "error", err, "blog_id", id)
		return err
	}

	s.logger.Info("blog deleted", "blog_id", id, "author_id", author.ID)
	return nil
}

// resolveOwned fetches the post and checks that the authenticated user owns
// it, as two explicit steps. A missing post and an ownership mismatch both
// collapse into auth.ErrNotAuthorized so the caller cannot probe which blog
// ids exist.
func (s *BlogServiceImpl) resolveOwned(
	ctx context.Context,
	id uuid.UUID,
	author *domain.User,
) (*domain.Blog, error) {
	blog, err := s.blogs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrBlogNotFound) {
			s.logger.Debug("mutation on missing blog", "blog_id", id)
			return nil, auth.ErrNotAuthorized
		}
		s.logger.Error("failed to resolve blog", "error", err, "blog_id", id)
		return nil, err
	}

	if !blog.OwnedBy(author.ID) {
		s.logger.Debug("ownership mismatch",
			"blog_id", id, "author_id", blog.AuthorID, "user_id", author.ID)
		return nil, auth.ErrNotAuthorized
	}

	return blog, nil
}

// runWrite executes a single write, inside an explicit transaction when a
// database handle is present.
func (s *BlogServiceImpl) runWrite(
	ctx context.Context,
	fn func(ctx context.Context, blogs store.BlogStore) error,
) error {
	if s.db == nil {
		return fn(ctx, s.blogs)
	}
	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return fn(ctx, s.blogs.WithTx(tx))
	})
}

// validateBlogFields runs the shared title/body rules used by both create
// and update. Rule order mirrors the validation table: varchar before
// required for the title, text before required for the body.
func validateBlogFields(title, body string) error {
	if err := rules.Validate("title", title, rules.Varchar, rules.Required); err != nil {
		return err
	}
	return rules.Validate("body", body, rules.Text, rules.Required)
}
