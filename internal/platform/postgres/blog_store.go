package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mstiles/blog-api/internal/domain"
	"github.com/mstiles/blog-api/internal/platform/logger"
	"github.com/mstiles/blog-api/internal/store"
)

// PostgresBlogStore implements the store.BlogStore interface
// using a PostgreSQL database as the storage backend.
type PostgresBlogStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresBlogStore creates a new PostgreSQL implementation of the
// BlogStore interface. It accepts a database connection or transaction that
// should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresBlogStore(db store.DBTX, logger *slog.Logger) *PostgresBlogStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresBlogStore{
		db:     db,
		logger: logger.With(slog.String("component", "blog_store")),
	}
}

// Ensure PostgresBlogStore implements store.BlogStore interface
var _ store.BlogStore = (*PostgresBlogStore)(nil)

// WithTx implements store.BlogStore.WithTx
func (s *PostgresBlogStore) WithTx(tx *sql.Tx) store.BlogStore {
	return &PostgresBlogStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.BlogStore.Create
// It saves a new blog post, handling domain validation.
// Returns store.ErrInvalidEntity if the author does not exist.
func (s *PostgresBlogStore) Create(ctx context.Context, blog *domain.Blog) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := blog.Validate(); err != nil {
		log.Warn("blog validation failed during create",
			slog.String("error", err.Error()),
			slog.String("blog_id", blog.ID.String()))
		return err
	}

	query := `
		INSERT INTO blogs (id, title, body, author_id, created_at, publish_at, deleted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		blog.ID,
		blog.Title,
		blog.Body,
		blog.AuthorID,
		blog.CreatedAt,
		blog.PublishAt,
		blog.DeletedAt,
	)

	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during blog creation",
				slog.String("blog_id", blog.ID.String()),
				slog.String("author_id", blog.AuthorID.String()))
			return fmt.Errorf("%w: author with ID %s not found",
				store.ErrInvalidEntity, blog.AuthorID)
		}

		log.Error("failed to create blog",
			slog.String("error", err.Error()),
			slog.String("blog_id", blog.ID.String()))
		return MapError(err)
	}

	log.Info("blog created successfully",
		slog.String("blog_id", blog.ID.String()),
		slog.String("author_id", blog.AuthorID.String()))
	return nil
}

// GetByID implements store.BlogStore.GetByID
// It retrieves a non-deleted blog post by its unique ID.
// Returns store.ErrBlogNotFound if the post does not exist or has been
// soft-deleted.
func (s *PostgresBlogStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Blog, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, title, body, author_id, created_at, publish_at, deleted_at
		FROM blogs
		WHERE id = $1 AND deleted_at IS NULL
	`

	var blog domain.Blog
	var deletedAt sql.NullTime

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&blog.ID,
		&blog.Title,
		&blog.Body,
		&blog.AuthorID,
		&blog.CreatedAt,
		&blog.PublishAt,
		&deletedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("blog not found", slog.String("blog_id", id.String()))
			return nil, store.ErrBlogNotFound
		}
		log.Error("failed to get blog by ID",
			slog.String("error", err.Error()),
			slog.String("blog_id", id.String()))
		return nil, MapError(err)
	}

	if deletedAt.Valid {
		t := deletedAt.Time
		blog.DeletedAt = &t
	}

	return &blog, nil
}

// GetDetail implements store.BlogStore.GetDetail
// It retrieves a non-deleted blog post joined with its author's display
// name, the projection the show endpoint renders.
func (s *PostgresBlogStore) GetDetail(
	ctx context.Context,
	id uuid.UUID,
) (*store.BlogDetail, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT b.id, b.title, b.body, u.name, b.created_at, b.publish_at
		FROM blogs b
		JOIN users u ON u.id = b.author_id
		WHERE b.id = $1 AND b.deleted_at IS NULL
	`

	var detail store.BlogDetail

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&detail.ID,
		&detail.Title,
		&detail.Body,
		&detail.Author,
		&detail.CreatedAt,
		&detail.PublishAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("blog not found", slog.String("blog_id", id.String()))
			return nil, store.ErrBlogNotFound
		}
		log.Error("failed to get blog detail",
			slog.String("error", err.Error()),
			slog.String("blog_id", id.String()))
		return nil, MapError(err)
	}

	return &detail, nil
}

// ListPublished implements store.BlogStore.ListPublished
// It returns non-deleted posts whose publish time is at or before now,
// joined with the author's display name, in insertion order.
func (s *PostgresBlogStore) ListPublished(
	ctx context.Context,
	now time.Time,
) ([]store.BlogListItem, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT b.id, b.title, b.body, u.name
		FROM blogs b
		JOIN users u ON u.id = b.author_id
		WHERE b.deleted_at IS NULL AND b.publish_at <= $1
		ORDER BY b.created_at
	`

	rows, err := s.db.QueryContext(ctx, query, now.UTC())
	if err != nil {
		log.Error("failed to list published blogs",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Warn("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	items := []store.BlogListItem{}
	for rows.Next() {
		var item store.BlogListItem
		if err := rows.Scan(&item.ID, &item.Title, &item.Body, &item.Author); err != nil {
			log.Error("failed to scan blog row",
				slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		log.Error("error iterating blog rows",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	return items, nil
}

// Update implements store.BlogStore.Update
// It overwrites title and body of an existing, non-deleted post. The author
// column is immutable and never written. Returns store.ErrBlogNotFound if
// the post does not exist or has been soft-deleted.
func (s *PostgresBlogStore) Update(ctx context.Context, blog *domain.Blog) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := blog.Validate(); err != nil {
		log.Warn("blog validation failed during update",
			slog.String("error", err.Error()),
			slog.String("blog_id", blog.ID.String()))
		return err
	}

	query := `
		UPDATE blogs
		SET title = $2, body = $3
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := s.db.ExecContext(ctx, query, blog.ID, blog.Title, blog.Body)
	if err != nil {
		log.Error("failed to update blog",
			slog.String("error", err.Error()),
			slog.String("blog_id", blog.ID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "blog"); err != nil {
		log.Debug("update matched no active blog",
			slog.String("blog_id", blog.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrBlogNotFound, err)
	}

	log.Info("blog updated successfully",
		slog.String("blog_id", blog.ID.String()))
	return nil
}

// SoftDelete implements store.BlogStore.SoftDelete
// It sets deleted_at on an active post. Returns store.ErrBlogNotFound if
// the post does not exist or is already soft-deleted.
func (s *PostgresBlogStore) SoftDelete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE blogs
		SET deleted_at = $2
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := s.db.ExecContext(ctx, query, id, time.Now().UTC())
	if err != nil {
		log.Error("failed to soft-delete blog",
			slog.String("error", err.Error()),
			slog.String("blog_id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "blog"); err != nil {
		log.Debug("soft-delete matched no active blog",
			slog.String("blog_id", id.String()))
		return fmt.Errorf("%w: %v", store.ErrBlogNotFound, err)
	}

	log.Info("blog soft-deleted",
		slog.String("blog_id", id.String()))
	return nil
}
