package flat

import (
	"time"

	"pt.arrendado.flatfinder/internal/model"
)

type Store interface {
	CreateFlat(flat *model.Flat) error
	FlatByID(id model.FlatID) (*model.Flat, error)
	FlatWithOwnerByID(id model.FlatID) (*model.FlatWithOwner, error)
	FlatsWithOwner(filter *model.FlatFilter) ([]model.FlatWithOwner, error)
	UpdateFlat(flat *model.Flat) error
	DeleteFlat(id model.FlatID) error
}

type service struct {
	store Store
}

func New(store Store) *service {
	return &service{store}
}

func (s *service) Create(ownerID model.UserID, params *model.CreateFlatParams) (*model.Flat, error) {
	flat := &model.Flat{
		ID:            model.FlatID(model.CreateID()),
		CreatedAt:     time.Now().UTC(),
		OwnerID:       ownerID,
		City:          params.City,
		StreetName:    params.StreetName,
		StreetNumber:  params.StreetNumber,
		AreaSize:      params.AreaSize,
		HasAC:         params.HasAC,
		YearBuilt:     params.YearBuilt,
		RentPrice:     params.RentPrice,
		DateAvailable: params.DateAvailable,
	}

	if err := s.store.CreateFlat(flat); err != nil {
		return nil, err
	}
	return flat, nil
}

func (s *service) Fetch(id model.FlatID) (*model.FlatWithOwner, error) {
	return s.store.FlatWithOwnerByID(id)
}

func (s *service) List(filter *model.FlatFilter) ([]model.FlatWithOwner, error) {
	return s.store.FlatsWithOwner(filter)
}

// Update applies the non-nil fields of params. Only the owner or an admin may
// edit a flat; ownership itself is immutable.
func (s *service) Update(callerID model.UserID, isAdmin bool, id model.FlatID, params *model.UpdateFlatParams) (*model.Flat, error) {
	flat, err := s.store.FlatByID(id)
	if err != nil {
		return nil, err
	}
	if flat.OwnerID != callerID && !isAdmin {
		return nil, model.ErrorForbidden
	}

	if params.City != nil {
		flat.City = *params.City
	}
	if params.StreetName != nil {
		flat.StreetName = *params.StreetName
	}
	if params.StreetNumber != nil {
		flat.StreetNumber = *params.StreetNumber
	}
	if params.AreaSize != nil {
		flat.AreaSize = *params.AreaSize
	}
	if params.HasAC != nil {
		flat.HasAC = *params.HasAC
	}
	if params.YearBuilt != nil {
		flat.YearBuilt = *params.YearBuilt
	}
	if params.RentPrice != nil {
		flat.RentPrice = *params.RentPrice
	}
	if params.DateAvailable != nil {
		flat.DateAvailable = params.DateAvailable
	}

	if err := s.store.UpdateFlat(flat); err != nil {
		return nil, err
	}
	return flat, nil
}

func (s *service) Delete(callerID model.UserID, isAdmin bool, id model.FlatID) error {
	flat, err := s.store.FlatByID(id)
	if err != nil {
		return err
	}
	if flat.OwnerID != callerID && !isAdmin {
		return model.ErrorForbidden
	}

	return s.store.DeleteFlat(id)
}
