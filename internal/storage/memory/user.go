package memory

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/VadimK2/usergraph/internal/user"
	"github.com/VadimK2/usergraph/models"
)

type UserMemoryStorage struct {
	mu     sync.Mutex
	users  map[uint]*models.User
	nextID uint
}

func NewUserMemoryStorage() *UserMemoryStorage {
	return &UserMemoryStorage{
		users:  make(map[uint]*models.User),
		nextID: 1,
	}
}

func cloneUser(u *models.User) *models.User {
	c := *u
	if u.Age != nil {
		age := *u.Age
		c.Age = &age
	}
	if u.Bio != nil {
		bio := *u.Bio
		c.Bio = &bio
	}
	return &c
}

func sortUsers(users []models.User) {
	sort.Slice(users, func(i, j int) bool {
		if users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].ID < users[j].ID
		}
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
}

func (s *UserMemoryStorage) ListUsers() ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, *cloneUser(u))
	}
	sortUsers(users)

	return users, nil
}

func (s *UserMemoryStorage) GetUserByID(id uint) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, exists := s.users[id]
	if !exists {
		return nil, nil
	}

	return cloneUser(u), nil
}

func (s *UserMemoryStorage) GetUserByEmail(email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}

	return nil, nil
}

func (s *UserMemoryStorage) FindUsersByEmail(substr string) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	needle := strings.ToLower(substr)
	var users []models.User
	for _, u := range s.users {
		if strings.Contains(strings.ToLower(u.Email), needle) {
			users = append(users, *cloneUser(u))
		}
	}
	sortUsers(users)

	return users, nil
}

func (s *UserMemoryStorage) CreateUser(params user.CreateParams) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == params.Email {
			return nil, user.ErrEmailExists
		}
	}

	id := s.nextID
	s.nextID++

	now := time.Now()
	u := &models.User{
		ID:        id,
		Name:      params.Name,
		Email:     params.Email,
		Age:       params.Age,
		Bio:       params.Bio,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.users[id] = u
	return cloneUser(u), nil
}

func (s *UserMemoryStorage) UpdateUser(id uint, params user.UpdateParams) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, exists := s.users[id]
	if !exists {
		return nil, nil
	}

	if params.Email != nil && *params.Email != u.Email {
		for _, other := range s.users {
			if other.ID != id && other.Email == *params.Email {
				return nil, user.ErrEmailExists
			}
		}
	}

	if params.Name != nil {
		u.Name = *params.Name
	}
	if params.Email != nil {
		u.Email = *params.Email
	}
	if params.Age != nil {
		age := *params.Age
		u.Age = &age
	}
	if params.Bio != nil {
		bio := *params.Bio
		u.Bio = &bio
	}
	u.UpdatedAt = time.Now()

	return cloneUser(u), nil
}

func (s *UserMemoryStorage) DeleteUser(id uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, exists := s.users[id]
	if !exists {
		return false, nil
	}

	delete(s.users, id)
	return true, nil
}
