package user

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"pt.arrendado.flatfinder/internal/model"
)

type Store interface {
	CreateUser(user *model.User) error
	UserByID(id model.UserID) (*model.User, error)
	UserByEmail(email string) (*model.User, error)
	ToggleFavourite(userID model.UserID, flatID model.FlatID) (bool, error)
	FavouriteFlatIDs(userID model.UserID) ([]model.FlatID, error)
	FavouriteFlats(userID model.UserID) ([]model.Flat, error)
}

type service struct {
	store Store
}

func New(store Store) *service {
	return &service{store}
}

func (s *service) Create(params *model.CreateUserParams) (*model.User, error) {
	passwordBytes, err := bcrypt.GenerateFromPassword([]byte(params.Password), 10)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &model.User{
		ID:        model.UserID(model.CreateID()),
		CreatedAt: time.Now().UTC(),
		Email:     params.Email,
		Password:  string(passwordBytes),
		FirstName: params.FirstName,
		LastName:  params.LastName,
		BirthDate: params.BirthDate,
	}

	if err := s.store.CreateUser(user); err != nil {
		return nil, err
	}

	return user, nil
}

// Authenticate verifies an email/password pair. Unknown emails and wrong
// passwords come back as the same failure so the response does not reveal
// which accounts exist.
func (s *service) Authenticate(email, password string) (*model.User, error) {
	user, err := s.store.UserByEmail(email)
	if err != nil {
		if errors.Is(err, model.ErrorUserNotFound) {
			return nil, model.ErrorInvalidEmailOrPassword
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, model.ErrorInvalidEmailOrPassword
	}

	return user, nil
}

func (s *service) Fetch(id model.UserID) (*model.User, error) {
	return s.store.UserByID(id)
}

// ToggleFavourite flips a flat in and out of the caller's favourites and
// returns the resulting favourite ids.
func (s *service) ToggleFavourite(userID model.UserID, flatID model.FlatID) ([]model.FlatID, error) {
	if _, err := s.store.ToggleFavourite(userID, flatID); err != nil {
		return nil, err
	}
	return s.store.FavouriteFlatIDs(userID)
}

func (s *service) FavouriteFlats(userID model.UserID) ([]model.Flat, error) {
	return s.store.FavouriteFlats(userID)
}
