package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"pt.arrendado.flatfinder/internal/model"
)

func (s *Store) CreateFlat(flat *model.Flat) error {
	res, err := s.db.NamedExec(`insert into flat
		(ID, CreatedAt, OwnerID, City, StreetName, StreetNumber, AreaSize, HasAC, YearBuilt, RentPrice, DateAvailable)
		values(:ID, :CreatedAt, :OwnerID, :City, :StreetName, :StreetNumber, :AreaSize, :HasAC, :YearBuilt, :RentPrice, :DateAvailable)`, flat)

	if err != nil {
		return fmt.Errorf("inserting flat: %w", err)
	}
	if rows, err := res.RowsAffected(); rows != 1 {
		return fmt.Errorf("expected 1 row to be affected, got %d", rows)
	} else if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	return nil
}

func (s *Store) FlatByID(id model.FlatID) (*model.Flat, error) {
	flat := &model.Flat{}
	err := s.db.Get(flat, `select * from flat where ID = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrorFlatNotFound
		}
		return nil, fmt.Errorf("fetching flat: %w", err)
	}
	return flat, nil
}

type flatRow struct {
	model.Flat
	OwnerFirstName string `db:"OwnerFirstName"`
	OwnerLastName  string `db:"OwnerLastName"`
}

func (r flatRow) withOwner() model.FlatWithOwner {
	return model.FlatWithOwner{
		Flat: r.Flat,
		Owner: model.UserSummary{
			ID:        r.OwnerID,
			FirstName: r.OwnerFirstName,
			LastName:  r.OwnerLastName,
		},
	}
}

func (s *Store) FlatWithOwnerByID(id model.FlatID) (*model.FlatWithOwner, error) {
	row := flatRow{}
	err := s.db.Get(&row, `select f.*, u.FirstName as OwnerFirstName, u.LastName as OwnerLastName
		from flat f
		join user u on u.ID = f.OwnerID
		where f.ID = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrorFlatNotFound
		}
		return nil, fmt.Errorf("fetching flat with owner: %w", err)
	}

	flat := row.withOwner()
	return &flat, nil
}

func (s *Store) FlatsWithOwner(filter *model.FlatFilter) ([]model.FlatWithOwner, error) {
	where := []string{}
	args := []interface{}{}

	if filter != nil {
		if filter.City != "" {
			where = append(where, `f.City like ?`)
			args = append(args, "%"+filter.City+"%")
		}
		if filter.HasAC != nil {
			where = append(where, `f.HasAC = ?`)
			args = append(args, *filter.HasAC)
		}
		if filter.MinArea != nil {
			where = append(where, `f.AreaSize >= ?`)
			args = append(args, *filter.MinArea)
		}
		if filter.MaxArea != nil {
			where = append(where, `f.AreaSize <= ?`)
			args = append(args, *filter.MaxArea)
		}
		if filter.MaxPrice != nil {
			where = append(where, `f.RentPrice <= ?`)
			args = append(args, *filter.MaxPrice)
		}
		if filter.MinYear != nil {
			where = append(where, `f.YearBuilt >= ?`)
			args = append(args, *filter.MinYear)
		}
	}

	query := `select f.*, u.FirstName as OwnerFirstName, u.LastName as OwnerLastName
		from flat f
		join user u on u.ID = f.OwnerID`
	if len(where) > 0 {
		query += ` where ` + strings.Join(where, ` and `)
	}
	query += ` order by f.CreatedAt desc`

	rows := []flatRow{}
	if err := s.db.Select(&rows, query, args...); err != nil {
		return nil, fmt.Errorf("listing flats: %w", err)
	}

	flats := make([]model.FlatWithOwner, 0, len(rows))
	for _, row := range rows {
		flats = append(flats, row.withOwner())
	}
	return flats, nil
}

func (s *Store) UpdateFlat(flat *model.Flat) error {
	now := time.Now().UTC()
	flat.UpdatedAt = &now

	res, err := s.db.NamedExec(`update flat set
		UpdatedAt = :UpdatedAt, City = :City, StreetName = :StreetName,
		StreetNumber = :StreetNumber, AreaSize = :AreaSize, HasAC = :HasAC,
		YearBuilt = :YearBuilt, RentPrice = :RentPrice, DateAvailable = :DateAvailable
		where ID = :ID`, flat)

	if err != nil {
		return fmt.Errorf("updating flat: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return model.ErrorFlatNotFound
	}

	return nil
}

// DeleteFlat removes a flat together with its conversation and any favourite
// entries pointing at it.
func (s *Store) DeleteFlat(id model.FlatID) error {
	if _, err := s.db.Exec(`delete from message where FlatID = ?`, id); err != nil {
		return fmt.Errorf("deleting flat messages: %w", err)
	}
	if _, err := s.db.Exec(`delete from favourite where FlatID = ?`, id); err != nil {
		return fmt.Errorf("deleting flat favourites: %w", err)
	}

	res, err := s.db.Exec(`delete from flat where ID = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting flat: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return model.ErrorFlatNotFound
	}

	return nil
}
