package post

import (
	"errors"

	"github.com/VadimK2/usergraph/models"
)

// ErrAuthorNotFound is returned when a post references a user that does not exist.
var ErrAuthorNotFound = errors.New("author not found")

type CreateParams struct {
	AuthorID    uint
	Description string
}

type PostStorage interface {
	// ListPosts returns all posts with Author populated.
	ListPosts() ([]models.Post, error)
	CreatePost(params CreateParams) (*models.Post, error)
	CountByAuthor(authorID uint) (int64, error)
}
