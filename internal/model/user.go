package model

import "time"

type UserID string

type User struct {
	ID        UserID     `db:"ID" json:"id"`
	CreatedAt time.Time  `db:"CreatedAt" json:"createdAt"`
	UpdatedAt *time.Time `db:"UpdatedAt" json:"-"`
	Email     string     `db:"Email" json:"email"`
	Password  string     `db:"Password" json:"-"`
	FirstName string     `db:"FirstName" json:"firstName"`
	LastName  string     `db:"LastName" json:"lastName"`
	BirthDate *time.Time `db:"BirthDate" json:"birthDate,omitempty"`
	IsAdmin   bool       `db:"IsAdmin" json:"isAdmin"`
}

type CreateUserParams struct {
	Email     string     `json:"email" validate:"required,email"`
	Password  string     `json:"password" validate:"required,min=6"`
	FirstName string     `json:"firstName" validate:"required"`
	LastName  string     `json:"lastName" validate:"required"`
	BirthDate *time.Time `json:"birthDate"`
}

// UserSummary is the shape embedded in message payloads: name fields only,
// never email or credential material.
type UserSummary struct {
	ID        UserID `db:"ID" json:"id"`
	FirstName string `db:"FirstName" json:"firstName"`
	LastName  string `db:"LastName" json:"lastName"`
}
