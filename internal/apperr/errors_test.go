package apperr_test

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DjordjeVuckovic/rankeval/internal/apperr"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidation(t *testing.T) {
	err := apperr.NewValidation("k_range 20 exceeds max_k 10")

	assert.Equal(t, "k_range 20 exceeds max_k 10", err.Error())
	assert.Nil(t, err.Unwrap())
}

func TestNewValidationWrap(t *testing.T) {
	inner := fmt.Errorf("unexpected EOF")
	err := apperr.NewValidationWrap("invalid request body", inner)

	assert.Equal(t, "invalid request body: unexpected EOF", err.Error())
	assert.ErrorIs(t, err, inner)
}

func TestValidationError_SurvivesFmtWrapping(t *testing.T) {
	wrapped := fmt.Errorf("run %q: %w", "bm25", apperr.NewValidation("max_k must be positive, got 0"))

	var ve *apperr.ValidationError
	require.True(t, errors.As(wrapped, &ve))
	assert.Equal(t, "max_k must be positive, got 0", ve.Message)
}

func TestDataLoadError(t *testing.T) {
	err := apperr.NewDataLoad("gt.json", fs.ErrNotExist)
	wrapped := fmt.Errorf("load ground truth: %w", err)

	assert.Equal(t, "load gt.json: file does not exist", err.Error())
	assert.ErrorIs(t, wrapped, fs.ErrNotExist)

	var de *apperr.DataLoadError
	require.True(t, errors.As(wrapped, &de))
	assert.Equal(t, "gt.json", de.Source)

	var ve *apperr.ValidationError
	assert.False(t, errors.As(wrapped, &ve))
}

func TestGlobalErrorHandler(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", fmt.Errorf("wrap: %w", apperr.NewValidation("bad")), http.StatusBadRequest},
		{"data load", apperr.NewDataLoad("x.csv", errors.New("boom")), http.StatusUnprocessableEntity},
		{"echo http error", echo.NewHTTPError(http.StatusNotFound, "missing"), http.StatusNotFound},
		{"unhandled", errors.New("boom"), http.StatusInternalServerError},
	}

	handler := apperr.GlobalErrorHandler()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			handler(tt.err, c)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
