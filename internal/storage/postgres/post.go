package postgres

import (
	"fmt"

	"github.com/jinzhu/gorm"

	"github.com/VadimK2/usergraph/internal/post"
	"github.com/VadimK2/usergraph/models"
)

type PostPostgresStorage struct{}

func NewPostPostgresStorage() *PostPostgresStorage {
	return &PostPostgresStorage{}
}

func (s *PostPostgresStorage) ListPosts() ([]models.Post, error) {
	var posts []models.Post
	err := DB.Preload("Author").Order("created_at asc, id asc").Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("could not list posts: %w", err)
	}

	return posts, nil
}

func (s *PostPostgresStorage) CreatePost(params post.CreateParams) (*models.Post, error) {
	var author models.User
	err := DB.First(&author, params.AuthorID).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, post.ErrAuthorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("could not get author: %w", err)
	}

	p := models.Post{
		Description: params.Description,
		AuthorID:    params.AuthorID,
	}

	if err := DB.Create(&p).Error; err != nil {
		// The foreign key can still fire if the author vanished between
		// the check and the insert.
		if isForeignKeyViolation(err) {
			return nil, post.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("could not create post: %w", err)
	}

	p.Author = author
	return &p, nil
}

func (s *PostPostgresStorage) CountByAuthor(authorID uint) (int64, error) {
	var count int64
	err := DB.Model(&models.Post{}).Where("author_id = ?", authorID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("could not count posts by author: %w", err)
	}

	return count, nil
}
