package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"pt.arrendado.flatfinder/internal/model"
)

func TestFavourites(t *testing.T) {
	assert := assert.New(t)
	a := newTestApp(t)

	owner := a.seedUser(t, "Olivia", "Owner")
	tenant := a.seedUser(t, "Tiago", "Tenant")
	flat := a.seedFlat(t, owner)
	toggle := "/users/favorites/" + string(flat.ID)

	t.Run("requires a credential", func(t *testing.T) {
		rec := a.request(t, http.MethodPatch, toggle, "", nil)
		assert.Equal(http.StatusUnauthorized, rec.Code)

		rec = a.request(t, http.MethodGet, "/users/favorites", "", nil)
		assert.Equal(http.StatusUnauthorized, rec.Code)
	})

	t.Run("toggle adds the flat", func(t *testing.T) {
		rec := a.request(t, http.MethodPatch, toggle, "", tenant)
		assert.Equal(http.StatusOK, rec.Code)

		response := map[string][]model.FlatID{}
		assert.Nil(json.Unmarshal(rec.Body.Bytes(), &response))
		assert.Equal([]model.FlatID{flat.ID}, response["favourites"])

		rec = a.request(t, http.MethodGet, "/users/favorites", "", tenant)
		assert.Equal(http.StatusOK, rec.Code)

		flats := []model.Flat{}
		assert.Nil(json.Unmarshal(rec.Body.Bytes(), &flats))
		assert.Len(flats, 1)
		assert.Equal(flat.ID, flats[0].ID)
	})

	t.Run("toggle again removes it", func(t *testing.T) {
		rec := a.request(t, http.MethodPatch, toggle, "", tenant)
		assert.Equal(http.StatusOK, rec.Code)

		response := map[string][]model.FlatID{}
		assert.Nil(json.Unmarshal(rec.Body.Bytes(), &response))
		assert.Empty(response["favourites"])
	})

	t.Run("favourites are per-user", func(t *testing.T) {
		_ = a.request(t, http.MethodPatch, toggle, "", tenant)

		rec := a.request(t, http.MethodGet, "/users/favorites", "", owner)
		assert.Equal(http.StatusOK, rec.Code)

		flats := []model.Flat{}
		assert.Nil(json.Unmarshal(rec.Body.Bytes(), &flats))
		assert.Empty(flats)
	})

	t.Run("unknown flat is not found", func(t *testing.T) {
		rec := a.request(t, http.MethodPatch, "/users/favorites/no-such-flat", "", tenant)
		assert.Equal(http.StatusNotFound, rec.Code)
	})
}
