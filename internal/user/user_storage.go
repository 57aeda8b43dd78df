package user

import (
	"errors"

	"github.com/VadimK2/usergraph/models"
)

var (
	// ErrEmailExists is returned when a write would give two users the same email.
	ErrEmailExists = errors.New("email already exists")
	// ErrHasPosts is returned when deleting a user that posts still reference.
	ErrHasPosts = errors.New("user is referenced by posts")
)

// CreateParams carries the fields for a new user. Age and Bio are nullable.
type CreateParams struct {
	Name  string
	Email string
	Age   *int32
	Bio   *string
}

// UpdateParams carries a partial update. Nil fields preserve the stored value.
type UpdateParams struct {
	Name  *string
	Email *string
	Age   *int32
	Bio   *string
}

type UserStorage interface {
	ListUsers() ([]models.User, error)
	GetUserByID(id uint) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	FindUsersByEmail(substr string) ([]models.User, error)
	CreateUser(params CreateParams) (*models.User, error)
	UpdateUser(id uint, params UpdateParams) (*models.User, error)
	DeleteUser(id uint) (bool, error)
}
