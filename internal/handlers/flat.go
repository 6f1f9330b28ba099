package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"pt.arrendado.flatfinder/internal/auth"
	"pt.arrendado.flatfinder/internal/model"
)

type FlatService interface {
	Create(ownerID model.UserID, params *model.CreateFlatParams) (*model.Flat, error)
	Fetch(id model.FlatID) (*model.FlatWithOwner, error)
	List(filter *model.FlatFilter) ([]model.FlatWithOwner, error)
	Update(callerID model.UserID, isAdmin bool, id model.FlatID, params *model.UpdateFlatParams) (*model.Flat, error)
	Delete(callerID model.UserID, isAdmin bool, id model.FlatID) error
}

func ListFlats(svc FlatService) echo.HandlerFunc {
	return func(c echo.Context) error {
		filter := &model.FlatFilter{City: c.QueryParam("city")}

		if v := c.QueryParam("hasAc"); v == "true" || v == "false" {
			hasAC := v == "true"
			filter.HasAC = &hasAC
		}
		filter.MinArea = intParam(c, "minArea")
		filter.MaxArea = intParam(c, "maxArea")
		filter.MaxPrice = intParam(c, "maxPrice")
		filter.MinYear = intParam(c, "minYear")

		flats, err := svc.List(filter)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusOK, flats)
	}
}

func GetFlat(svc FlatService) echo.HandlerFunc {
	return func(c echo.Context) error {
		flat, err := svc.Fetch(model.FlatID(c.Param("id")))
		if err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusOK, flat)
	}
}

func CreateFlat(svc FlatService) echo.HandlerFunc {
	return func(c echo.Context) error {
		identity, ok := auth.IdentityFrom(c)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, model.ErrorMissingCredential.Error())
		}

		params := &model.CreateFlatParams{}
		if err := c.Bind(params); err != nil {
			return err
		}
		if err := c.Validate(params); err != nil {
			return err
		}

		flat, err := svc.Create(identity.UserID, params)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusCreated, flat)
	}
}

func UpdateFlat(svc FlatService) echo.HandlerFunc {
	return func(c echo.Context) error {
		identity, ok := auth.IdentityFrom(c)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, model.ErrorMissingCredential.Error())
		}

		params := &model.UpdateFlatParams{}
		if err := c.Bind(params); err != nil {
			return err
		}

		flat, err := svc.Update(identity.UserID, identity.IsAdmin, model.FlatID(c.Param("id")), params)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusOK, flat)
	}
}

func DeleteFlat(svc FlatService) echo.HandlerFunc {
	return func(c echo.Context) error {
		identity, ok := auth.IdentityFrom(c)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, model.ErrorMissingCredential.Error())
		}

		if err := svc.Delete(identity.UserID, identity.IsAdmin, model.FlatID(c.Param("id"))); err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "flat deleted"})
	}
}

func intParam(c echo.Context, name string) *int {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &v
}
