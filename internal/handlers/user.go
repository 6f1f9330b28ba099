package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"pt.arrendado.flatfinder/internal/auth"
	"pt.arrendado.flatfinder/internal/model"
)

type UserService interface {
	Create(params *model.CreateUserParams) (*model.User, error)
	Authenticate(email, password string) (*model.User, error)
	ToggleFavourite(userID model.UserID, flatID model.FlatID) ([]model.FlatID, error)
	FavouriteFlats(userID model.UserID) ([]model.Flat, error)
}

// TokenIssuer turns an authenticated user into a signed bearer token.
type TokenIssuer interface {
	Generate(user *model.User) (string, error)
}

type loginParams struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func Register(svc UserService) echo.HandlerFunc {
	return func(c echo.Context) error {
		params := &model.CreateUserParams{}
		if err := c.Bind(params); err != nil {
			return err
		}
		if err := c.Validate(params); err != nil {
			return err
		}

		user, err := svc.Create(params)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusCreated, user)
	}
}

func Login(svc UserService, issuer TokenIssuer) echo.HandlerFunc {
	return func(c echo.Context) error {
		params := &loginParams{}
		if err := c.Bind(params); err != nil {
			return err
		}
		if err := c.Validate(params); err != nil {
			return err
		}

		user, err := svc.Authenticate(params.Email, params.Password)
		if err != nil {
			return httpError(err)
		}

		token, err := issuer.Generate(user)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusOK, map[string]string{"token": token})
	}
}

// ToggleFavourite adds the flat to the caller's favourites, or removes it if
// already present, and returns the updated favourite ids.
func ToggleFavourite(svc UserService) echo.HandlerFunc {
	return func(c echo.Context) error {
		identity, ok := auth.IdentityFrom(c)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, model.ErrorMissingCredential.Error())
		}

		favourites, err := svc.ToggleFavourite(identity.UserID, model.FlatID(c.Param("flatId")))
		if err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusOK, map[string][]model.FlatID{"favourites": favourites})
	}
}

// Favourites serves the caller's favourite flats.
func Favourites(svc UserService) echo.HandlerFunc {
	return func(c echo.Context) error {
		identity, ok := auth.IdentityFrom(c)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, model.ErrorMissingCredential.Error())
		}

		flats, err := svc.FavouriteFlats(identity.UserID)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusOK, flats)
	}
}
