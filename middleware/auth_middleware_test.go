package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func invokeRequireUserType(t *testing.T, userType string, allowed ...string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userType != "" {
		c.Set("userType", userType)
	}

	handler := RequireUserType(allowed...)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	return rec
}

func TestRequireUserType(t *testing.T) {
	t.Run("allows a matching type", func(t *testing.T) {
		rec := invokeRequireUserType(t, "admin", "admin", "super_admin")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("rejects a non-matching type", func(t *testing.T) {
		rec := invokeRequireUserType(t, "user", "admin", "super_admin")
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("rejects when no type is set", func(t *testing.T) {
		rec := invokeRequireUserType(t, "", "admin")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
