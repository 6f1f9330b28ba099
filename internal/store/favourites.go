package store

import (
	"fmt"
	"time"

	"pt.arrendado.flatfinder/internal/model"
)

// ToggleFavourite adds a flat to a user's favourites, or removes it if it is
// already there. It reports whether the flat is a favourite afterwards.
func (s *Store) ToggleFavourite(userID model.UserID, flatID model.FlatID) (bool, error) {
	if _, err := s.FlatByID(flatID); err != nil {
		return false, err
	}

	res, err := s.db.Exec(`delete from favourite where UserID = ? and FlatID = ?`, userID, flatID)
	if err != nil {
		return false, fmt.Errorf("removing favourite: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows > 0 {
		return false, nil
	}

	_, err = s.db.Exec(`insert into favourite (UserID, FlatID, CreatedAt) values (?, ?, ?)`,
		userID, flatID, time.Now().UTC())
	if err != nil {
		return false, fmt.Errorf("adding favourite: %w", err)
	}
	return true, nil
}

func (s *Store) FavouriteFlatIDs(userID model.UserID) ([]model.FlatID, error) {
	ids := []model.FlatID{}
	err := s.db.Select(&ids, `select FlatID from favourite
		where UserID = ?
		order by CreatedAt`, userID)
	if err != nil {
		return nil, fmt.Errorf("listing favourite ids: %w", err)
	}
	return ids, nil
}

func (s *Store) FavouriteFlats(userID model.UserID) ([]model.Flat, error) {
	flats := []model.Flat{}
	err := s.db.Select(&flats, `select f.* from favourite fav
		join flat f on f.ID = fav.FlatID
		where fav.UserID = ?
		order by fav.CreatedAt`, userID)
	if err != nil {
		return nil, fmt.Errorf("listing favourite flats: %w", err)
	}
	return flats, nil
}
