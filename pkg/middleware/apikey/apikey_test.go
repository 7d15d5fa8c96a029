package apikey

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/chalher_shop/pkg/tokens"
)

func serve(t *testing.T, m *Middleware, key string) (int, any) {
	t.Helper()
	e := echo.New()
	var role any
	e.GET("/x", m.Require(func(c echo.Context) error {
		role = c.Get("role")
		return c.NoContent(http.StatusOK)
	}))
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	if key != "" {
		req.Header.Set(Header, key)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec.Code, role
}

func TestRequire(t *testing.T) {
	t.Parallel()
	secret := []byte("s3cret")
	anon, err := tokens.IssueAPIKey(secret, "test", tokens.RoleAnon, 0)
	require.NoError(t, err)

	code, role := serve(t, New(secret), anon)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, tokens.RoleAnon, role)

	code, _ = serve(t, New(secret), "")
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = serve(t, New(secret), "garbage")
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = serve(t, New(nil), "")
	assert.Equal(t, http.StatusOK, code)
}
