package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"pt.arrendado.flatfinder/internal/model"
)

func (s *Store) CreateUser(user *model.User) error {
	res, err := s.db.NamedExec(`insert into user
		(ID, CreatedAt, Email, Password, FirstName, LastName, BirthDate, IsAdmin)
		values(:ID, :CreatedAt, :Email, :Password, :FirstName, :LastName, :BirthDate, :IsAdmin)`, user)

	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return model.ErrorUserExists
		}
		return fmt.Errorf("inserting user: %w", err)
	}
	if rows, err := res.RowsAffected(); rows != 1 {
		return fmt.Errorf("expected 1 row to be affected, got %d", rows)
	} else if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	return nil
}

func (s *Store) UserByID(id model.UserID) (*model.User, error) {
	user := &model.User{}
	err := s.db.Get(user, `select * from user where ID = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrorUserNotFound
		}
		return nil, fmt.Errorf("fetching user: %w", err)
	}
	return user, nil
}

func (s *Store) UserByEmail(email string) (*model.User, error) {
	user := &model.User{}
	err := s.db.Get(user, `select * from user where Email = ?`, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrorUserNotFound
		}
		return nil, fmt.Errorf("fetching user by email: %w", err)
	}
	return user, nil
}
