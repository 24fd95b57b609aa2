package screener

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/apperrors"
)

const companyPage = `<html><body>
<ul id="top-ratios">
  <li><span class="name">Market Cap</span><span class="value">₹ <span class="number">12,34,567</span> Cr.</span></li>
  <li><span class="name">Stock P/E</span><span class="value"><span class="number">29.4</span></span></li>
  <li><span class="name">EPS</span><span class="value">₹ <span class="number">1,28.20</span></span></li>
</ul>
</body></html>`

func TestClient_Fundamentals(t *testing.T) {
	t.Run("reads ratios from the consolidated page", func(t *testing.T) {
		var paths []string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			paths = append(paths, r.URL.Path)
			_, _ = w.Write([]byte(companyPage))
		}))
		t.Cleanup(srv.Close)

		f, err := NewClient(WithBaseURL(srv.URL), WithRateLimit(100)).Fundamentals(context.Background(), "tcs")
		require.NoError(t, err)

		assert.Equal(t, "29.4", f.PERatio.Decimal.String())
		assert.Equal(t, "128.2", f.Earnings.Decimal.String())
		assert.Equal(t, []string{"/company/TCS/consolidated/"}, paths)
	})

	t.Run("falls back to the standalone page", func(t *testing.T) {
		var paths []string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			paths = append(paths, r.URL.Path)
			if r.URL.Path == "/company/SBIN/consolidated/" {
				http.NotFound(w, r)
				return
			}
			_, _ = w.Write([]byte(companyPage))
		}))
		t.Cleanup(srv.Close)

		f, err := NewClient(WithBaseURL(srv.URL), WithRateLimit(100)).Fundamentals(context.Background(), "SBIN")
		require.NoError(t, err)
		assert.True(t, f.PERatio.Valid)
		assert.Equal(t, []string{"/company/SBIN/consolidated/", "/company/SBIN/"}, paths)
	})

	t.Run("reports pages without ratios", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html><body>nothing here</body></html>`))
		}))
		t.Cleanup(srv.Close)

		_, err := NewClient(WithBaseURL(srv.URL), WithRateLimit(100)).Fundamentals(context.Background(), "TCS")
		assert.ErrorIs(t, err, apperrors.ErrFundamentalsUnavailable)
	})

	t.Run("fails when both pages are missing", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		t.Cleanup(srv.Close)

		_, err := NewClient(WithBaseURL(srv.URL), WithRateLimit(100)).Fundamentals(context.Background(), "TCS")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "404")
	})
}

func TestParseNumber(t *testing.T) {
	assert.Equal(t, "1234.5", parseNumber(" 1,234.5 ").Decimal.String())
	assert.Equal(t, "12", parseNumber("₹ 12").Decimal.String())
	assert.False(t, parseNumber("").Valid)
	assert.False(t, parseNumber("n/a").Valid)
}
