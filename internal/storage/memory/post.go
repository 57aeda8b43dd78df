package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/VadimK2/usergraph/internal/post"
	"github.com/VadimK2/usergraph/internal/user"
	"github.com/VadimK2/usergraph/models"
)

type PostMemoryStorage struct {
	mu     sync.Mutex
	posts  map[uint]*models.Post
	users  user.UserStorage
	nextID uint
}

// NewPostMemoryStorage needs the user storage to resolve and embed authors.
func NewPostMemoryStorage(users user.UserStorage) *PostMemoryStorage {
	return &PostMemoryStorage{
		posts:  make(map[uint]*models.Post),
		users:  users,
		nextID: 1,
	}
}

func (s *PostMemoryStorage) ListPosts() ([]models.Post, error) {
	s.mu.Lock()
	posts := make([]models.Post, 0, len(s.posts))
	for _, p := range s.posts {
		posts = append(posts, *p)
	}
	s.mu.Unlock()

	sort.Slice(posts, func(i, j int) bool {
		if posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].ID < posts[j].ID
		}
		return posts[i].CreatedAt.Before(posts[j].CreatedAt)
	})

	// Authors are re-resolved on every read so updates show through.
	for i := range posts {
		author, err := s.users.GetUserByID(posts[i].AuthorID)
		if err != nil {
			return nil, err
		}
		if author != nil {
			posts[i].Author = *author
		}
	}

	return posts, nil
}

func (s *PostMemoryStorage) CreatePost(params post.CreateParams) (*models.Post, error) {
	author, err := s.users.GetUserByID(params.AuthorID)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, post.ErrAuthorNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++

	now := time.Now()
	p := &models.Post{
		ID:          id,
		Description: params.Description,
		AuthorID:    params.AuthorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	s.posts[id] = p

	out := *p
	out.Author = *author
	return &out, nil
}

func (s *PostMemoryStorage) CountByAuthor(authorID uint) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	for _, p := range s.posts {
		if p.AuthorID == authorID {
			count++
		}
	}

	return count, nil
}
