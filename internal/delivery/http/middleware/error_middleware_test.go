package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	domainerrors "bazaar/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newErrorTestContext(t *testing.T) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestErrorMiddleware_AppError(t *testing.T) {
	m := NewErrorMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)))
	c, rec := newErrorTestContext(t)

	m.HandleHTTPError(domainerrors.ErrOrderNotFound, c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "ORDER_NOT_FOUND")
}

func TestErrorMiddleware_HTTPErrorWithNonStringMessage(t *testing.T) {
	m := NewErrorMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)))
	c, rec := newErrorTestContext(t)

	err := echo.NewHTTPError(http.StatusUnprocessableEntity, map[string]string{"field": "quantity"})

	require.NotPanics(t, func() {
		m.HandleHTTPError(err, c)
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "quantity")
}

func TestErrorMiddleware_UnknownError(t *testing.T) {
	m := NewErrorMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)))
	c, rec := newErrorTestContext(t)

	m.HandleHTTPError(assert.AnError, c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
