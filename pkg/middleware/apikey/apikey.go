package apikey

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/chalher_shop/pkg/tokens"
)

const Header = "apikey"

type Middleware struct {
	Secret []byte
}

func New(secret []byte) *Middleware {
	return &Middleware{Secret: secret}
}

// Require rejects requests whose apikey header is not a valid key. With an
// empty secret every request passes.
func (m *Middleware) Require(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if len(m.Secret) == 0 {
			return next(c)
		}
		key := c.Request().Header.Get(Header)
		if key == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing api key")
		}
		claims, err := tokens.APIKeyClaimsFromToken(key, m.Secret)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid api key")
		}
		c.Set("role", claims.Role)
		return next(c)
	}
}
