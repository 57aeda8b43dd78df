package graph

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/VadimK2/usergraph/graph/model"
	"github.com/VadimK2/usergraph/internal/apperr"
	"github.com/VadimK2/usergraph/internal/storage/memory"
)

func newTestResolver() *Resolver {
	users := memory.NewUserMemoryStorage()
	posts := memory.NewPostMemoryStorage(users)
	return NewResolver(users, posts, zap.NewNop())
}

func strPtr(s string) *string { return &s }

func int32Ptr(v int32) *int32 { return &v }

func createTestUser(t *testing.T, r *Resolver, name, email string) *model.User {
	t.Helper()

	u, err := r.CreateUser(context.Background(), createUserArgs{Input: model.UserInput{
		Name:  name,
		Email: email,
	}})
	require.NoError(t, err)

	return u
}

func TestMutationResolver_CreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("Successful user creation", func(t *testing.T) {
		r := newTestResolver()

		u, err := r.CreateUser(ctx, createUserArgs{Input: model.UserInput{
			Name:  "Alice",
			Email: "alice@example.com",
			Age:   int32Ptr(30),
			Bio:   strPtr("hello"),
		}})
		require.NoError(t, err)

		assert.NotEmpty(t, u.ID)
		_, err = strconv.ParseUint(string(u.ID), 10, 64)
		assert.NoError(t, err, "id must be a decimal string")

		assert.Equal(t, "Alice", u.Name)
		assert.Equal(t, "alice@example.com", u.Email)
		require.NotNil(t, u.Age)
		assert.Equal(t, int32(30), *u.Age)
		require.NotNil(t, u.Bio)
		assert.Equal(t, "hello", *u.Bio)
		assert.Equal(t, u.CreatedAt, u.UpdatedAt)

		// A subsequent lookup returns an equal record.
		got, err := r.User(ctx, idArgs{ID: u.ID})
		require.NoError(t, err)
		assert.Equal(t, u, got)
	})

	t.Run("Duplicate email is rejected and creates no row", func(t *testing.T) {
		r := newTestResolver()
		createTestUser(t, r, "Alice", "alice@example.com")

		_, err := r.CreateUser(ctx, createUserArgs{Input: model.UserInput{
			Name:  "Another Alice",
			Email: "alice@example.com",
		}})
		require.Error(t, err)
		assert.Equal(t, apperr.CodeAlreadyExists, apperr.CodeOf(err))
		assert.Equal(t, "User with this email already exists", err.Error())

		users, err := r.Users(ctx)
		require.NoError(t, err)
		assert.Len(t, users, 1)
	})

	t.Run("Missing required fields", func(t *testing.T) {
		r := newTestResolver()

		_, err := r.CreateUser(ctx, createUserArgs{Input: model.UserInput{
			Name:  "",
			Email: "noname@example.com",
		}})
		require.Error(t, err)
		assert.Equal(t, apperr.CodeInvalidArgument, apperr.CodeOf(err))

		_, err = r.CreateUser(ctx, createUserArgs{Input: model.UserInput{
			Name:  "No Email",
			Email: "   ",
		}})
		require.Error(t, err)
		assert.Equal(t, apperr.CodeInvalidArgument, apperr.CodeOf(err))
	})
}

func TestQueryResolver_User(t *testing.T) {
	ctx := context.Background()

	t.Run("Non-numeric id is invalid", func(t *testing.T) {
		r := newTestResolver()

		_, err := r.User(ctx, idArgs{ID: "abc"})
		require.Error(t, err)
		assert.Equal(t, apperr.CodeInvalidArgument, apperr.CodeOf(err))
	})

	t.Run("Well-formed but absent id returns null, not an error", func(t *testing.T) {
		r := newTestResolver()

		u, err := r.User(ctx, idArgs{ID: "999999"})
		require.NoError(t, err)
		assert.Nil(t, u)
	})
}

func TestQueryResolver_Users(t *testing.T) {
	ctx := context.Background()

	t.Run("Empty store returns empty list", func(t *testing.T) {
		r := newTestResolver()

		users, err := r.Users(ctx)
		require.NoError(t, err)
		assert.NotNil(t, users)
		assert.Empty(t, users)
	})

	t.Run("Users are ordered by creation time", func(t *testing.T) {
		r := newTestResolver()
		first := createTestUser(t, r, "First", "first@example.com")
		second := createTestUser(t, r, "Second", "second@example.com")
		third := createTestUser(t, r, "Third", "third@example.com")

		users, err := r.Users(ctx)
		require.NoError(t, err)
		require.Len(t, users, 3)
		assert.Equal(t, first.ID, users[0].ID)
		assert.Equal(t, second.ID, users[1].ID)
		assert.Equal(t, third.ID, users[2].ID)
	})
}

func TestQueryResolver_UsersByEmail(t *testing.T) {
	ctx := context.Background()

	t.Run("Empty pattern matches all users", func(t *testing.T) {
		r := newTestResolver()
		createTestUser(t, r, "Alice", "alice@example.com")
		createTestUser(t, r, "Bob", "bob@other.org")

		users, err := r.UsersByEmail(ctx, usersByEmailArgs{Email: ""})
		require.NoError(t, err)
		assert.Len(t, users, 2)
	})

	t.Run("Substring match is case-insensitive", func(t *testing.T) {
		r := newTestResolver()
		createTestUser(t, r, "Alice", "alice@Example.COM")
		createTestUser(t, r, "Bob", "bob@other.org")

		users, err := r.UsersByEmail(ctx, usersByEmailArgs{Email: "example.com"})
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, "Alice", users[0].Name)
	})

	t.Run("No match returns empty list, not an error", func(t *testing.T) {
		r := newTestResolver()
		createTestUser(t, r, "Alice", "alice@example.com")

		users, err := r.UsersByEmail(ctx, usersByEmailArgs{Email: "zzz-no-match"})
		require.NoError(t, err)
		assert.Empty(t, users)
	})
}

func TestMutationResolver_UpdateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("Empty input only refreshes updatedAt", func(t *testing.T) {
		r := newTestResolver()
		created := createTestUser(t, r, "Alice", "alice@example.com")

		// The wire format has millisecond precision.
		time.Sleep(5 * time.Millisecond)

		updated, err := r.UpdateUser(ctx, updateUserArgs{ID: created.ID, Input: model.UpdateUserInput{}})
		require.NoError(t, err)
		require.NotNil(t, updated)

		assert.Equal(t, created.Name, updated.Name)
		assert.Equal(t, created.Email, updated.Email)
		assert.Equal(t, created.Age, updated.Age)
		assert.Equal(t, created.Bio, updated.Bio)
		assert.Equal(t, created.CreatedAt, updated.CreatedAt)

		before, err := time.Parse(timeLayout, created.UpdatedAt)
		require.NoError(t, err)
		after, err := time.Parse(timeLayout, updated.UpdatedAt)
		require.NoError(t, err)
		assert.True(t, after.After(before), "updatedAt must strictly increase")
	})

	t.Run("Partial update preserves absent fields", func(t *testing.T) {
		r := newTestResolver()

		created, err := r.CreateUser(ctx, createUserArgs{Input: model.UserInput{
			Name:  "Alice",
			Email: "alice@example.com",
			Age:   int32Ptr(30),
			Bio:   strPtr("hello"),
		}})
		require.NoError(t, err)

		updated, err := r.UpdateUser(ctx, updateUserArgs{ID: created.ID, Input: model.UpdateUserInput{
			Name: strPtr("Alice Smith"),
		}})
		require.NoError(t, err)
		require.NotNil(t, updated)

		assert.Equal(t, "Alice Smith", updated.Name)
		assert.Equal(t, "alice@example.com", updated.Email)
		require.NotNil(t, updated.Age)
		assert.Equal(t, int32(30), *updated.Age)
		require.NotNil(t, updated.Bio)
		assert.Equal(t, "hello", *updated.Bio)
	})

	t.Run("Email taken by another user is rejected", func(t *testing.T) {
		r := newTestResolver()
		createTestUser(t, r, "Alice", "alice@example.com")
		bob := createTestUser(t, r, "Bob", "bob@example.com")

		_, err := r.UpdateUser(ctx, updateUserArgs{ID: bob.ID, Input: model.UpdateUserInput{
			Email: strPtr("alice@example.com"),
		}})
		require.Error(t, err)
		assert.Equal(t, apperr.CodeAlreadyExists, apperr.CodeOf(err))
	})

	t.Run("Updating to own unchanged email succeeds", func(t *testing.T) {
		r := newTestResolver()
		alice := createTestUser(t, r, "Alice", "alice@example.com")

		updated, err := r.UpdateUser(ctx, updateUserArgs{ID: alice.ID, Input: model.UpdateUserInput{
			Email: strPtr("alice@example.com"),
		}})
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, "alice@example.com", updated.Email)
	})

	t.Run("Unknown id returns null, not an error", func(t *testing.T) {
		r := newTestResolver()

		updated, err := r.UpdateUser(ctx, updateUserArgs{ID: "424242", Input: model.UpdateUserInput{
			Name: strPtr("Ghost"),
		}})
		require.NoError(t, err)
		assert.Nil(t, updated)
	})

	t.Run("Non-numeric id is invalid", func(t *testing.T) {
		r := newTestResolver()

		_, err := r.UpdateUser(ctx, updateUserArgs{ID: "abc", Input: model.UpdateUserInput{}})
		require.Error(t, err)
		assert.Equal(t, apperr.CodeInvalidArgument, apperr.CodeOf(err))
	})
}

func TestMutationResolver_DeleteUser(t *testing.T) {
	ctx := context.Background()

	t.Run("Deleting an existing user", func(t *testing.T) {
		r := newTestResolver()
		alice := createTestUser(t, r, "Alice", "alice@example.com")

		deleted, err := r.DeleteUser(ctx, idArgs{ID: alice.ID})
		require.NoError(t, err)
		assert.True(t, deleted)

		got, err := r.User(ctx, idArgs{ID: alice.ID})
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("Deleting twice returns false, not an error", func(t *testing.T) {
		r := newTestResolver()
		alice := createTestUser(t, r, "Alice", "alice@example.com")

		deleted, err := r.DeleteUser(ctx, idArgs{ID: alice.ID})
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = r.DeleteUser(ctx, idArgs{ID: alice.ID})
		require.NoError(t, err)
		assert.False(t, deleted)
	})

	t.Run("Non-numeric id is invalid", func(t *testing.T) {
		r := newTestResolver()

		_, err := r.DeleteUser(ctx, idArgs{ID: "abc"})
		require.Error(t, err)
		assert.Equal(t, apperr.CodeInvalidArgument, apperr.CodeOf(err))
	})

	t.Run("User referenced by posts cannot be deleted", func(t *testing.T) {
		r := newTestResolver()
		alice := createTestUser(t, r, "Alice", "alice@example.com")

		_, err := r.CreatePost(ctx, createPostArgs{Input: model.PostInput{
			AuthorID:    alice.ID,
			Description: "first post",
		}})
		require.NoError(t, err)

		_, err = r.DeleteUser(ctx, idArgs{ID: alice.ID})
		require.Error(t, err)
		assert.Equal(t, apperr.CodeConflict, apperr.CodeOf(err))

		// The user is still there.
		got, err := r.User(ctx, idArgs{ID: alice.ID})
		require.NoError(t, err)
		assert.NotNil(t, got)
	})
}

func TestMutationResolver_CreatePost(t *testing.T) {
	ctx := context.Background()

	t.Run("Unknown author", func(t *testing.T) {
		r := newTestResolver()

		_, err := r.CreatePost(ctx, createPostArgs{Input: model.PostInput{
			AuthorID:    "999999",
			Description: "x",
		}})
		require.Error(t, err)
		assert.Equal(t, apperr.CodeNotFound, apperr.CodeOf(err))
		assert.Equal(t, "Author not found", err.Error())
	})

	t.Run("Non-numeric author id is invalid", func(t *testing.T) {
		r := newTestResolver()

		_, err := r.CreatePost(ctx, createPostArgs{Input: model.PostInput{
			AuthorID:    "abc",
			Description: "x",
		}})
		require.Error(t, err)
		assert.Equal(t, apperr.CodeInvalidArgument, apperr.CodeOf(err))
	})

	t.Run("Empty description is invalid", func(t *testing.T) {
		r := newTestResolver()
		alice := createTestUser(t, r, "Alice", "alice@example.com")

		_, err := r.CreatePost(ctx, createPostArgs{Input: model.PostInput{
			AuthorID:    alice.ID,
			Description: "  ",
		}})
		require.Error(t, err)
		assert.Equal(t, apperr.CodeInvalidArgument, apperr.CodeOf(err))
	})

	t.Run("Post embeds its author", func(t *testing.T) {
		r := newTestResolver()
		alice := createTestUser(t, r, "Alice", "alice@example.com")

		p, err := r.CreatePost(ctx, createPostArgs{Input: model.PostInput{
			AuthorID:    alice.ID,
			Description: "first post",
		}})
		require.NoError(t, err)

		assert.NotEmpty(t, p.ID)
		assert.Equal(t, "first post", p.Description)
		assert.Equal(t, alice.ID, p.AuthorID)
		require.NotNil(t, p.Author)
		assert.Equal(t, alice, p.Author)
	})
}

func TestQueryResolver_Posts(t *testing.T) {
	ctx := context.Background()

	t.Run("Empty store returns empty list", func(t *testing.T) {
		r := newTestResolver()

		posts, err := r.Posts(ctx)
		require.NoError(t, err)
		assert.NotNil(t, posts)
		assert.Empty(t, posts)
	})

	t.Run("Posts come back with normalized authors", func(t *testing.T) {
		r := newTestResolver()
		alice := createTestUser(t, r, "Alice", "alice@example.com")
		bob := createTestUser(t, r, "Bob", "bob@example.com")

		for _, in := range []model.PostInput{
			{AuthorID: alice.ID, Description: "by alice"},
			{AuthorID: bob.ID, Description: "by bob"},
		} {
			_, err := r.CreatePost(ctx, createPostArgs{Input: in})
			require.NoError(t, err)
		}

		posts, err := r.Posts(ctx)
		require.NoError(t, err)
		require.Len(t, posts, 2)

		assert.Equal(t, "by alice", posts[0].Description)
		require.NotNil(t, posts[0].Author)
		assert.Equal(t, alice.ID, posts[0].Author.ID)
		assert.Equal(t, "Alice", posts[0].Author.Name)

		assert.Equal(t, "by bob", posts[1].Description)
		require.NotNil(t, posts[1].Author)
		assert.Equal(t, bob.ID, posts[1].Author.ID)
	})
}
