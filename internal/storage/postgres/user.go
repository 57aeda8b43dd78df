package postgres

import (
	"fmt"

	"github.com/jinzhu/gorm"

	"github.com/VadimK2/usergraph/internal/user"
	"github.com/VadimK2/usergraph/models"
)

type UserPostgresStorage struct{}

func NewUserPostgresStorage() *UserPostgresStorage {
	return &UserPostgresStorage{}
}

func (s *UserPostgresStorage) ListUsers() ([]models.User, error) {
	var users []models.User
	err := DB.Order("created_at asc, id asc").Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("could not list users: %w", err)
	}

	return users, nil
}

func (s *UserPostgresStorage) GetUserByID(id uint) (*models.User, error) {
	var u models.User
	err := DB.First(&u, id).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not get user by id: %w", err)
	}

	return &u, nil
}

func (s *UserPostgresStorage) GetUserByEmail(email string) (*models.User, error) {
	var u models.User
	err := DB.Where("email = ?", email).First(&u).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not get user by email: %w", err)
	}

	return &u, nil
}

func (s *UserPostgresStorage) FindUsersByEmail(substr string) ([]models.User, error) {
	var users []models.User
	// Case-insensitive substring match; an empty pattern matches everything.
	err := DB.Where("LOWER(email) LIKE LOWER(?)", "%"+substr+"%").
		Order("created_at asc, id asc").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("could not search users by email: %w", err)
	}

	return users, nil
}

func (s *UserPostgresStorage) CreateUser(params user.CreateParams) (*models.User, error) {
	u := models.User{
		Name:  params.Name,
		Email: params.Email,
		Age:   params.Age,
		Bio:   params.Bio,
	}

	if err := DB.Create(&u).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, user.ErrEmailExists
		}
		return nil, fmt.Errorf("could not create user: %w", err)
	}

	return &u, nil
}

func (s *UserPostgresStorage) UpdateUser(id uint, params user.UpdateParams) (*models.User, error) {
	var u models.User
	err := DB.First(&u, id).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not get user by id: %w", err)
	}

	if params.Name != nil {
		u.Name = *params.Name
	}
	if params.Email != nil {
		u.Email = *params.Email
	}
	if params.Age != nil {
		u.Age = params.Age
	}
	if params.Bio != nil {
		u.Bio = params.Bio
	}

	// Save also refreshes updated_at, even when no field changed.
	if err := DB.Save(&u).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, user.ErrEmailExists
		}
		return nil, fmt.Errorf("could not update user: %w", err)
	}

	return &u, nil
}

func (s *UserPostgresStorage) DeleteUser(id uint) (bool, error) {
	res := DB.Delete(&models.User{}, id)
	if res.Error != nil {
		if isForeignKeyViolation(res.Error) {
			return false, user.ErrHasPosts
		}
		return false, fmt.Errorf("could not delete user: %w", res.Error)
	}

	return res.RowsAffected > 0, nil
}
