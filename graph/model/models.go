// Package model holds the wire-shaped types: string ids, ISO-8601
// timestamps, nullable fields as pointers.
package model

import graphql "github.com/graph-gophers/graphql-go"

type User struct {
	ID        graphql.ID
	Name      string
	Email     string
	Age       *int32
	Bio       *string
	CreatedAt string
	UpdatedAt string
}

type Post struct {
	ID          graphql.ID
	Description string
	AuthorID    graphql.ID
	Author      *User
}

type UserInput struct {
	Name  string
	Email string
	Age   *int32
	Bio   *string
}

type UpdateUserInput struct {
	Name  *string
	Email *string
	Age   *int32
	Bio   *string
}

type PostInput struct {
	AuthorID    graphql.ID
	Description string
}
