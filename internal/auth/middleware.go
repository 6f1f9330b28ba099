package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const identityKey = "auth.identity"

// Middleware is the single credential guard composed by every protected
// route: it resolves the bearer token and stores the verified identity in the
// request context, or short-circuits with 401.
func Middleware(tokens *Tokens) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, err := tokens.FromHeader(c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
			}
			c.Set(identityKey, identity)
			return next(c)
		}
	}
}

// IdentityFrom returns the identity the middleware stored on the context.
func IdentityFrom(c echo.Context) (*Identity, bool) {
	identity, ok := c.Get(identityKey).(*Identity)
	return identity, ok
}
