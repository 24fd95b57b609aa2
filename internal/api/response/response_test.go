package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/apperrors"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{apperrors.ErrSnapshotNotReady, http.StatusServiceUnavailable},
		{fmt.Errorf("lookup: %w", apperrors.ErrHoldingNotFound), http.StatusNotFound},
		{apperrors.ErrNoSectorData, http.StatusNotFound},
		{fmt.Errorf("%w: %q", apperrors.ErrInvalidMoverCount, "0"), http.StatusBadRequest},
		{apperrors.ErrInvalidSymbol, http.StatusBadRequest},
		{fmt.Errorf("%w: %w", apperrors.ErrFailedToRefresh, apperrors.ErrInvalidHolding), http.StatusBadRequest},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(tt.err))
		})
	}
}

func TestRespondError(t *testing.T) {
	w := httptest.NewRecorder()
	RespondError(w, http.StatusNotFound, "holding not found", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "holding not found", body["error"])
	assert.NotContains(t, body, "details")
}

func TestRespondServiceError(t *testing.T) {
	w := httptest.NewRecorder()
	RespondServiceError(w, apperrors.ErrSnapshotNotReady, "portfolio unavailable")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "still loading")
}

func TestRespondBytes(t *testing.T) {
	w := httptest.NewRecorder()
	RespondBytes(w, http.StatusOK, "text/markdown; charset=utf-8", []byte("# hi"))

	assert.Equal(t, "text/markdown; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, "# hi", w.Body.String())
}
