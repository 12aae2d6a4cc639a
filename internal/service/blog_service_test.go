package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mstiles/blog-api/internal/domain"
	"github.com/mstiles/blog-api/internal/mocks"
	"github.com/mstiles/blog-api/internal/rules"
	"github.com/mstiles/blog-api/internal/service"
	"github.com/mstiles/blog-api/internal/service/auth"
)

// blogFixture wires a blog service against in-memory stores with two
// registered users.
type blogFixture struct {
	users *mocks.UserStore
	blogs *mocks.BlogStore
	svc   *service.BlogServiceImpl

	ann service.Credentials
	bob service.Credentials
}

func newBlogFixture(t *testing.T) *blogFixture {
	t.Helper()

	users := mocks.NewUserStore()
	blogs := mocks.NewBlogStore(users)
	userSvc := newUserService(users)

	_, err := userSvc.Register(context.Background(),
		service.RegisterInput{Name: "Ann", Email: "a@x.com", Password: "secret"})
	require.NoError(t, err)
	_, err = userSvc.Register(context.Background(),
		service.RegisterInput{Name: "Bob", Email: "b@x.com", Password: "hunter2"})
	require.NoError(t, err)

	verifier := auth.NewVerifier(users, auth.NewBcryptVerifier(), nil)
	svc := service.NewBlogService(blogs, verifier, nil, nil)

	return &blogFixture{
		users: users,
		blogs: blogs,
		svc:   svc,
		ann:   service.Credentials{Email: "a@x.com", Password: "secret"},
		bob:   service.Credentials{Email: "b@x.com", Password: "hunter2"},
	}
}

func (f *blogFixture) createBlog(t *testing.T, title, body string) *domain.Blog {
	t.Helper()

	blog, err := f.svc.Create(context.Background(), service.CreateBlogInput{
		Title:       title,
		Body:        body,
		Credentials: f.ann,
	})
	require.NoError(t, err)
	return blog
}

func TestCreateBlog(t *testing.T) {
	long := strings.Repeat("a", 256)

	tests := []struct {
		name        string
		input       service.CreateBlogInput
		expectedMsg string
		expectedErr error
	}{
		{
			name: "valid",
			input: service.CreateBlogInput{
				Title: "Hi", Body: "World",
				Credentials: service.Credentials{Email: "a@x.com", Password: "secret"},
			},
		},
		{
			name: "valid_with_publish_date",
			input: service.CreateBlogInput{
				Title: "Hi", Body: "World", PublishDate: "2030-01-02",
				Credentials: service.Credentials{Email: "a@x.com", Password: "secret"},
			},
		},
		{
			name: "missing_title",
			input: service.CreateBlogInput{
				Body:        "World",
				Credentials: service.Credentials{Email: "a@x.com", Password: "secret"},
			},
			expectedMsg: "Input title is required",
		},
		{
			name: "title_too_long",
			input: service.CreateBlogInput{
				Title: long, Body: "World",
				Credentials: service.Credentials{Email: "a@x.com", Password: "secret"},
			},
			expectedMsg: "Input title must be a string with max length of 255 characters",
		},
		{
			name: "missing_body",
			input: service.CreateBlogInput{
				Title:       "Hi",
				Credentials: service.Credentials{Email: "a@x.com", Password: "secret"},
			},
			expectedMsg: "Input body is required",
		},
		{
			name: "bad_publish_date",
			input: service.CreateBlogInput{
				Title: "Hi", Body: "World", PublishDate: "someday",
				Credentials: service.Credentials{Email: "a@x.com", Password: "secret"},
			},
			expectedMsg: "Input publish_date must be a valid date",
		},
		{
			name: "bad_credentials",
			input: service.CreateBlogInput{
				Title: "Hi", Body: "World",
				Credentials: service.Credentials{Email: "a@x.com", Password: "wrong"},
			},
			expectedErr: auth.ErrNotAuthorized,
		},
		{
			name: "validation_runs_before_authentication",
			input: service.CreateBlogInput{
				Body:        "World",
				Credentials: service.Credentials{Email: "a@x.com", Password: "wrong"},
			},
			expectedMsg: "Input title is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBlogFixture(t)

			blog, err := f.svc.Create(context.Background(), tt.input)

			if tt.expectedMsg != "" {
				var ve *rules.ValidationError
				require.ErrorAs(t, err, &ve)
				assert.Equal(t, tt.expectedMsg, ve.Message)
				assert.Nil(t, blog)
				return
			}
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, blog)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, blog)
			assert.Equal(t, tt.input.Title, blog.Title)
			assert.Equal(t, tt.input.Body, blog.Body)

			if tt.input.PublishDate == "" {
				assert.Equal(t, blog.CreatedAt, blog.PublishAt)
			} else {
				expected, perr := rules.ParseDate(tt.input.PublishDate)
				require.NoError(t, perr)
				assert.Equal(t, expected, blog.PublishAt)
			}

			// The post is owned by the authenticated user.
			author, err := f.users.GetByEmail(context.Background(), tt.input.Email)
			require.NoError(t, err)
			assert.Equal(t, author.ID, blog.AuthorID)
		})
	}
}

func TestListPublishGating(t *testing.T) {
	f := newBlogFixture(t)

	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	now := base
	f.svc.WithClock(func() time.Time { return now })

	// No publish date, so the post publishes at the service clock's now.
	old, err := f.svc.Create(context.Background(), service.CreateBlogInput{
		Title: "Old post", Body: "already out",
		Credentials: f.ann,
	})
	require.NoError(t, err)
	assert.Equal(t, base, old.CreatedAt, "creation is stamped from the service clock")
	assert.Equal(t, base, old.PublishAt)

	now = base.Add(time.Minute)
	future, err := f.svc.Create(context.Background(), service.CreateBlogInput{
		Title: "Future post", Body: "not yet",
		PublishDate: base.Add(24 * time.Hour).Format(time.RFC3339),
		Credentials: f.ann,
	})
	require.NoError(t, err)

	items, err := f.svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1, "future post must not appear before its publish date")
	assert.Equal(t, "Old post", items[0].Title)
	assert.Equal(t, "Ann", items[0].Author, "list expands the author display name")

	// Move the clock past the publish date.
	now = base.Add(25 * time.Hour)
	items, err = f.svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, future.ID, items[1].ID)
}

func TestGetBlog(t *testing.T) {
	f := newBlogFixture(t)
	blog := f.createBlog(t, "Hi", "World")

	t.Run("existing", func(t *testing.T) {
		got, err := f.svc.Get(context.Background(), blog.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, blog.ID, got.ID)
		assert.Equal(t, "Ann", got.Author, "show expands the author display name")
	})

	t.Run("absent_is_empty_not_error", func(t *testing.T) {
		got, err := f.svc.Get(context.Background(), uuid.New())
		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("deleted_is_empty_not_error", func(t *testing.T) {
		require.NoError(t, f.svc.Delete(context.Background(), blog.ID, f.ann))

		got, err := f.svc.Get(context.Background(), blog.ID)
		assert.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestUpdateBlog(t *testing.T) {
	f := newBlogFixture(t)
	blog := f.createBlog(t, "Hi", "World")

	t.Run("owner_can_update", func(t *testing.T) {
		updated, err := f.svc.Update(context.Background(), blog.ID, service.UpdateBlogInput{
			Title: "Hi again", Body: "Universe", Credentials: f.ann,
		})
		require.NoError(t, err)
		assert.Equal(t, "Hi again", updated.Title)

		got, err := f.svc.Get(context.Background(), blog.ID)
		require.NoError(t, err)
		assert.Equal(t, "Hi again", got.Title)
		assert.Equal(t, "Universe", got.Body)
		assert.Equal(t, "Ann", got.Author, "author is immutable")
	})

	t.Run("other_user_is_not_authorized", func(t *testing.T) {
		updated, err := f.svc.Update(context.Background(), blog.ID, service.UpdateBlogInput{
			Title: "Stolen", Body: "post", Credentials: f.bob,
		})
		assert.Nil(t, updated)
		assert.ErrorIs(t, err, auth.ErrNotAuthorized)
	})

	t.Run("missing_blog_is_not_authorized", func(t *testing.T) {
		updated, err := f.svc.Update(context.Background(), uuid.New(), service.UpdateBlogInput{
			Title: "Hi", Body: "World", Credentials: f.ann,
		})
		assert.Nil(t, updated)
		assert.ErrorIs(t, err, auth.ErrNotAuthorized)
	})

	t.Run("invalid_fields_rejected_before_storage", func(t *testing.T) {
		updated, err := f.svc.Update(context.Background(), blog.ID, service.UpdateBlogInput{
			Title: "", Body: "World", Credentials: f.ann,
		})
		var ve *rules.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "title", ve.Field)
		assert.Nil(t, updated)
	})
}

func TestDeleteBlog(t *testing.T) {
	f := newBlogFixture(t)
	blog := f.createBlog(t, "Hi", "World")

	t.Run("other_user_is_not_authorized", func(t *testing.T) {
		err := f.svc.Delete(context.Background(), blog.ID, f.bob)
		assert.ErrorIs(t, err, auth.ErrNotAuthorized)
	})

	t.Run("owner_can_delete", func(t *testing.T) {
		require.NoError(t, f.svc.Delete(context.Background(), blog.ID, f.ann))

		items, err := f.svc.List(context.Background())
		require.NoError(t, err)
		assert.Empty(t, items, "deleted post must disappear from the list")
	})

	t.Run("second_delete_is_not_authorized", func(t *testing.T) {
		err := f.svc.Delete(context.Background(), blog.ID, f.ann)
		assert.ErrorIs(t, err, auth.ErrNotAuthorized)
	})
}

func TestBlogStorageFailure(t *testing.T) {
	f := newBlogFixture(t)
	f.blogs.CreateErr = errors.New("disk full")

	blog, err := f.svc.Create(context.Background(), service.CreateBlogInput{
		Title: "Hi", Body: "World", Credentials: f.ann,
	})
	assert.Nil(t, blog)
	require.Error(t, err)
	assert.NotErrorIs(t, err, auth.ErrNotAuthorized)
}

// TestEndToEndScenario walks the registration, authentication, ownership
// and soft-delete flow in one pass.
func TestEndToEndScenario(t *testing.T) {
	users := mocks.NewUserStore()
	blogs := mocks.NewBlogStore(users)
	userSvc := newUserService(users)
	verifier := auth.NewVerifier(users, auth.NewBcryptVerifier(), nil)
	blogSvc := service.NewBlogService(blogs, verifier, nil, nil)

	// Register Ann.
	_, err := userSvc.Register(context.Background(),
		service.RegisterInput{Name: "Ann", Email: "a@x.com", Password: "secret"})
	require.NoError(t, err)

	// Login with wrong password fails.
	_, err = verifier.Verify(context.Background(), "a@x.com", "wrong")
	assert.ErrorIs(t, err, auth.ErrNotAuthorized)

	// Create a blog as Ann; it appears in the list.
	blog, err := blogSvc.Create(context.Background(), service.CreateBlogInput{
		Title: "Hi", Body: "World",
		Credentials: service.Credentials{Email: "a@x.com", Password: "secret"},
	})
	require.NoError(t, err)

	items, err := blogSvc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Hi", items[0].Title)

	// A different registered user cannot update it.
	_, err = userSvc.Register(context.Background(),
		service.RegisterInput{Name: "Eve", Email: "e@x.com", Password: "letmein"})
	require.NoError(t, err)

	_, err = blogSvc.Update(context.Background(), blog.ID, service.UpdateBlogInput{
		Title: "Hijacked", Body: "post",
		Credentials: service.Credentials{Email: "e@x.com", Password: "letmein"},
	})
	assert.ErrorIs(t, err, auth.ErrNotAuthorized)

	// Ann soft-deletes it; it disappears from list and show.
	require.NoError(t, blogSvc.Delete(context.Background(), blog.ID,
		service.Credentials{Email: "a@x.com", Password: "secret"}))

	items, err = blogSvc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)

	got, err := blogSvc.Get(context.Background(), blog.ID)
	assert.NoError(t, err)
	assert.Nil(t, got)
}
