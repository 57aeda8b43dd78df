package models

import "time"

type User struct {
	ID        uint   `gorm:"primary_key"`
	Name      string `gorm:"not null"`
	Email     string `gorm:"unique;not null"`
	Age       *int32
	Bio       *string
	CreatedAt time.Time
	UpdatedAt time.Time
	Posts     []Post `gorm:"foreignkey:AuthorID"`
}

type Post struct {
	ID          uint   `gorm:"primary_key"`
	Description string `gorm:"not null"`
	AuthorID    uint   `gorm:"not null"`
	Author      User   `gorm:"foreignkey:AuthorID"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
