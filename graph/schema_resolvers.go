package graph

import (
	"context"
	"errors"
	"strconv"
	"strings"

	graphql "github.com/graph-gophers/graphql-go"
	"go.uber.org/zap"

	"github.com/VadimK2/usergraph/graph/model"
	"github.com/VadimK2/usergraph/internal/apperr"
	"github.com/VadimK2/usergraph/internal/post"
	"github.com/VadimK2/usergraph/internal/user"
	"github.com/VadimK2/usergraph/models"
)

// timeLayout is millisecond-precision RFC 3339, the wire format for
// createdAt/updatedAt.
const timeLayout = "2006-01-02T15:04:05.000Z07:00"

type idArgs struct {
	ID graphql.ID
}

type usersByEmailArgs struct {
	Email string
}

type createUserArgs struct {
	Input model.UserInput
}

type updateUserArgs struct {
	ID    graphql.ID
	Input model.UpdateUserInput
}

type createPostArgs struct {
	Input model.PostInput
}

func parseID(id graphql.ID) (uint, error) {
	n, err := strconv.ParseUint(string(id), 10, 32)
	if err != nil {
		return 0, apperr.InvalidArgument("Invalid id: must be a decimal number")
	}
	return uint(n), nil
}

func toUser(u *models.User) *model.User {
	return &model.User{
		ID:        graphql.ID(strconv.FormatUint(uint64(u.ID), 10)),
		Name:      u.Name,
		Email:     u.Email,
		Age:       u.Age,
		Bio:       u.Bio,
		CreatedAt: u.CreatedAt.UTC().Format(timeLayout),
		UpdatedAt: u.UpdatedAt.UTC().Format(timeLayout),
	}
}

func toPost(p *models.Post) *model.Post {
	return &model.Post{
		ID:          graphql.ID(strconv.FormatUint(uint64(p.ID), 10)),
		Description: p.Description,
		AuthorID:    graphql.ID(strconv.FormatUint(uint64(p.AuthorID), 10)),
		Author:      toUser(&p.Author),
	}
}

func (r *Resolver) Users(ctx context.Context) ([]*model.User, error) {
	users, err := r.UserStore.ListUsers()
	if err != nil {
		r.Logger.Error("fetching users", zap.Error(err))
		return nil, apperr.Storage("Error fetching users")
	}

	out := make([]*model.User, 0, len(users))
	for i := range users {
		out = append(out, toUser(&users[i]))
	}

	return out, nil
}

func (r *Resolver) User(ctx context.Context, args idArgs) (*model.User, error) {
	id, err := parseID(args.ID)
	if err != nil {
		return nil, err
	}

	u, err := r.UserStore.GetUserByID(id)
	if err != nil {
		r.Logger.Error("fetching user", zap.Uint("id", id), zap.Error(err))
		return nil, apperr.Storage("Error fetching user")
	}
	if u == nil {
		// Absent is a null result, not an error.
		return nil, nil
	}

	return toUser(u), nil
}

func (r *Resolver) UsersByEmail(ctx context.Context, args usersByEmailArgs) ([]*model.User, error) {
	users, err := r.UserStore.FindUsersByEmail(args.Email)
	if err != nil {
		r.Logger.Error("searching users by email", zap.Error(err))
		return nil, apperr.Storage("Error fetching users")
	}

	out := make([]*model.User, 0, len(users))
	for i := range users {
		out = append(out, toUser(&users[i]))
	}

	return out, nil
}

func (r *Resolver) Posts(ctx context.Context) ([]*model.Post, error) {
	posts, err := r.PostStore.ListPosts()
	if err != nil {
		r.Logger.Error("fetching posts", zap.Error(err))
		return nil, apperr.Storage("Error fetching posts")
	}

	out := make([]*model.Post, 0, len(posts))
	for i := range posts {
		out = append(out, toPost(&posts[i]))
	}

	return out, nil
}

func (r *Resolver) CreateUser(ctx context.Context, args createUserArgs) (*model.User, error) {
	input := args.Input
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperr.InvalidArgument("Name is required")
	}
	if strings.TrimSpace(input.Email) == "" {
		return nil, apperr.InvalidArgument("Email is required")
	}

	// Fast-path check; the storage unique constraint stays the arbiter.
	existing, err := r.UserStore.GetUserByEmail(input.Email)
	if err != nil {
		r.Logger.Error("checking email uniqueness", zap.Error(err))
		return nil, apperr.Storage("Error creating user")
	}
	if existing != nil {
		return nil, apperr.AlreadyExists("User with this email already exists")
	}

	u, err := r.UserStore.CreateUser(user.CreateParams{
		Name:  input.Name,
		Email: input.Email,
		Age:   input.Age,
		Bio:   input.Bio,
	})
	if err != nil {
		if errors.Is(err, user.ErrEmailExists) {
			return nil, apperr.AlreadyExists("User with this email already exists")
		}
		r.Logger.Error("creating user", zap.Error(err))
		return nil, apperr.Storage("Error creating user")
	}

	return toUser(u), nil
}

func (r *Resolver) UpdateUser(ctx context.Context, args updateUserArgs) (*model.User, error) {
	id, err := parseID(args.ID)
	if err != nil {
		return nil, err
	}

	existing, err := r.UserStore.GetUserByID(id)
	if err != nil {
		r.Logger.Error("fetching user for update", zap.Uint("id", id), zap.Error(err))
		return nil, apperr.Storage("Error updating user")
	}
	if existing == nil {
		return nil, nil
	}

	input := args.Input
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, apperr.InvalidArgument("Name must not be empty")
	}
	if input.Email != nil && strings.TrimSpace(*input.Email) == "" {
		return nil, apperr.InvalidArgument("Email must not be empty")
	}

	if input.Email != nil && *input.Email != existing.Email {
		taken, err := r.UserStore.GetUserByEmail(*input.Email)
		if err != nil {
			r.Logger.Error("checking email uniqueness", zap.Error(err))
			return nil, apperr.Storage("Error updating user")
		}
		if taken != nil && taken.ID != id {
			return nil, apperr.AlreadyExists("User with this email already exists")
		}
	}

	u, err := r.UserStore.UpdateUser(id, user.UpdateParams{
		Name:  input.Name,
		Email: input.Email,
		Age:   input.Age,
		Bio:   input.Bio,
	})
	if err != nil {
		if errors.Is(err, user.ErrEmailExists) {
			return nil, apperr.AlreadyExists("User with this email already exists")
		}
		r.Logger.Error("updating user", zap.Uint("id", id), zap.Error(err))
		return nil, apperr.Storage("Error updating user")
	}
	if u == nil {
		return nil, nil
	}

	return toUser(u), nil
}

func (r *Resolver) DeleteUser(ctx context.Context, args idArgs) (bool, error) {
	id, err := parseID(args.ID)
	if err != nil {
		return false, err
	}

	// Restrict: a user that posts still reference cannot be deleted.
	count, err := r.PostStore.CountByAuthor(id)
	if err != nil {
		r.Logger.Error("counting posts by author", zap.Uint("id", id), zap.Error(err))
		return false, apperr.Storage("Error deleting user")
	}
	if count > 0 {
		return false, apperr.Conflict("User is referenced by existing posts")
	}

	deleted, err := r.UserStore.DeleteUser(id)
	if err != nil {
		if errors.Is(err, user.ErrHasPosts) {
			return false, apperr.Conflict("User is referenced by existing posts")
		}
		r.Logger.Error("deleting user", zap.Uint("id", id), zap.Error(err))
		return false, apperr.Storage("Error deleting user")
	}

	return deleted, nil
}

func (r *Resolver) CreatePost(ctx context.Context, args createPostArgs) (*model.Post, error) {
	input := args.Input
	if strings.TrimSpace(input.Description) == "" {
		return nil, apperr.InvalidArgument("Description is required")
	}

	authorID, err := parseID(input.AuthorID)
	if err != nil {
		return nil, err
	}

	p, err := r.PostStore.CreatePost(post.CreateParams{
		AuthorID:    authorID,
		Description: input.Description,
	})
	if err != nil {
		if errors.Is(err, post.ErrAuthorNotFound) {
			return nil, apperr.NotFound("Author not found")
		}
		r.Logger.Error("creating post", zap.Error(err))
		return nil, apperr.Storage("Error creating post")
	}

	return toPost(p), nil
}
