package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestSetupRecover(t *testing.T) {
	e := echo.New()
	SetupRecover(e)
	e.GET("/observations", func(echo.Context) error {
		var content []string
		_ = content[3]
		return nil
	})

	rec := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/observations", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
