package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/testutil"
)

func TestMarketHandler_Quote(t *testing.T) {
	f := newFixture(t, false)

	t.Run("returns the current price", func(t *testing.T) {
		w := httptest.NewRecorder()
		f.market.Quote(w, testutil.NewRequestWithURLParams(http.MethodGet, "/api/quote/TCS.NS", map[string]string{"symbol": "TCS.NS"}))

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"symbol":"TCS.NS","cmp":"3450.55"}`, w.Body.String())
	})

	t.Run("returns null for an unavailable quote", func(t *testing.T) {
		w := httptest.NewRecorder()
		f.market.Quote(w, testutil.NewRequestWithURLParams(http.MethodGet, "/api/quote/ZZZ.NS", map[string]string{"symbol": "ZZZ.NS"}))

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"symbol":"ZZZ.NS","cmp":null}`, w.Body.String())
	})

	t.Run("rejects a malformed symbol", func(t *testing.T) {
		w := httptest.NewRecorder()
		f.market.Quote(w, testutil.NewRequestWithURLParams(http.MethodGet, "/api/quote/x", map[string]string{"symbol": "a b"}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestMarketHandler_Fundamentals(t *testing.T) {
	f := newFixture(t, false)

	w := httptest.NewRecorder()
	f.market.Fundamentals(w, testutil.NewRequestWithURLParams(http.MethodGet, "/api/fundamentals/TCS", map[string]string{"symbol": "TCS"}))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"symbol":"TCS","peRatio":"25.6","earnings":"134.19"}`, w.Body.String())

	w = httptest.NewRecorder()
	f.market.Fundamentals(w, testutil.NewRequestWithURLParams(http.MethodGet, "/api/fundamentals/YESBANK", map[string]string{"symbol": "YESBANK"}))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"symbol":"YESBANK","peRatio":null,"earnings":null}`, w.Body.String())
}
