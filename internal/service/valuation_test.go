package service_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/service"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/testutil"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// TestValue covers the valuation rules for present and absent market data.
//
// WHY: Investment must never depend on the quote, and an absent quote must
// degrade present value to exactly zero so existing dashboards keep their numbers.
func TestValue(t *testing.T) {
	tcs := testutil.NewHolding("TCS", 10, "3000", "Tech")

	t.Run("values a holding against a live quote", func(t *testing.T) {
		v := service.Value(tcs, testutil.NewQuote("TCS", "3200"), nil)

		assert.True(t, v.Investment.Equal(dec("30000")), "investment %s", v.Investment)
		assert.True(t, v.PresentValue.Equal(dec("32000")), "present value %s", v.PresentValue)
		assert.True(t, v.GainLoss.Equal(dec("2000")), "gain/loss %s", v.GainLoss)
		assert.True(t, v.HasQuote())
		assert.False(t, v.QuoteUnavailable)
		assert.True(t, v.CMP.Decimal.Equal(dec("3200")))
	})

	t.Run("degrades present value to zero without a quote", func(t *testing.T) {
		v := service.Value(tcs, nil, nil)

		assert.True(t, v.Investment.Equal(dec("30000")))
		assert.True(t, v.PresentValue.IsZero())
		assert.True(t, v.GainLoss.Equal(dec("-30000")))
		assert.False(t, v.HasQuote())
		assert.True(t, v.QuoteUnavailable)
		assert.False(t, v.CMP.Valid)
	})

	t.Run("copies fundamentals through", func(t *testing.T) {
		f := testutil.NewFundamentals("TCS", "29.4", "128.2")
		v := service.Value(tcs, nil, f)

		assert.True(t, v.PERatio.Valid)
		assert.True(t, v.PERatio.Decimal.Equal(dec("29.4")))
		assert.True(t, v.LatestEarnings.Decimal.Equal(dec("128.2")))
	})

	t.Run("leaves fundamentals absent when missing", func(t *testing.T) {
		v := service.Value(tcs, testutil.NewQuote("TCS", "3200"), nil)

		assert.False(t, v.PERatio.Valid)
		assert.False(t, v.LatestEarnings.Valid)
	})

	t.Run("keeps holding fields intact", func(t *testing.T) {
		v := service.Value(tcs, nil, nil)
		assert.Equal(t, tcs, v.Holding)
	})

	t.Run("a genuine zero price is still a quote", func(t *testing.T) {
		v := service.Value(tcs, &model.Quote{Symbol: "TCS", Price: decimal.Zero}, nil)

		assert.True(t, v.HasQuote())
		assert.True(t, v.PresentValue.IsZero())
		assert.False(t, v.QuoteUnavailable)
	})

	t.Run("keeps decimal precision", func(t *testing.T) {
		h := testutil.NewHolding("YESBANK.NS", 3, "21.10", "Financials")
		v := service.Value(h, testutil.NewQuote("YESBANK.NS", "19.95"), nil)

		assert.Equal(t, "63.3", v.Investment.String())
		assert.Equal(t, "59.85", v.PresentValue.String())
		assert.Equal(t, "-3.45", v.GainLoss.String())
	})
}
