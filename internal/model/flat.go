package model

import "time"

type FlatID string

type Flat struct {
	ID            FlatID     `db:"ID" json:"id"`
	CreatedAt     time.Time  `db:"CreatedAt" json:"createdAt"`
	UpdatedAt     *time.Time `db:"UpdatedAt" json:"-"`
	OwnerID       UserID     `db:"OwnerID" json:"ownerId"`
	City          string     `db:"City" json:"city"`
	StreetName    string     `db:"StreetName" json:"streetName"`
	StreetNumber  string     `db:"StreetNumber" json:"streetNumber"`
	AreaSize      int        `db:"AreaSize" json:"areaSize"`
	HasAC         bool       `db:"HasAC" json:"hasAc"`
	YearBuilt     int        `db:"YearBuilt" json:"yearBuilt"`
	RentPrice     int        `db:"RentPrice" json:"rentPrice"`
	DateAvailable *time.Time `db:"DateAvailable" json:"dateAvailable,omitempty"`
}

type CreateFlatParams struct {
	City          string     `json:"city" validate:"required"`
	StreetName    string     `json:"streetName" validate:"required"`
	StreetNumber  string     `json:"streetNumber"`
	AreaSize      int        `json:"areaSize"`
	HasAC         bool       `json:"hasAc"`
	YearBuilt     int        `json:"yearBuilt"`
	RentPrice     int        `json:"rentPrice"`
	DateAvailable *time.Time `json:"dateAvailable"`
}

type UpdateFlatParams struct {
	City          *string    `json:"city"`
	StreetName    *string    `json:"streetName"`
	StreetNumber  *string    `json:"streetNumber"`
	AreaSize      *int       `json:"areaSize"`
	HasAC         *bool      `json:"hasAc"`
	YearBuilt     *int       `json:"yearBuilt"`
	RentPrice     *int       `json:"rentPrice"`
	DateAvailable *time.Time `json:"dateAvailable"`
}

// FlatWithOwner is a flat joined with its owner's summary, the shape returned
// by the public listing and detail endpoints.
type FlatWithOwner struct {
	Flat
	Owner UserSummary `json:"owner"`
}

// FlatFilter holds the optional query-string filters of the flat listing
// endpoint. Nil fields are not applied.
type FlatFilter struct {
	City     string
	HasAC    *bool
	MinArea  *int
	MaxArea  *int
	MaxPrice *int
	MinYear  *int
}
