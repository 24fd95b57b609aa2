package service

import (
	"github.com/shopspring/decimal"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
)

// Value merges a holding with its latest quote and fundamentals.
//
// Either market input may be nil. A missing quote degrades the present value
// to zero, so the gain/loss reads as a full loss of the investment; the
// ValuedHolding still records QuoteUnavailable so callers can tell the two
// cases apart. Quantity and cost basis are trusted as already validated.
func Value(h model.Holding, q *model.Quote, f *model.Fundamentals) model.ValuedHolding {
	qty := decimal.NewFromInt(h.Quantity)

	v := model.ValuedHolding{
		Holding:      h,
		Investment:   qty.Mul(h.CostBasis),
		PresentValue: decimal.Zero,
	}

	if q != nil {
		v.CMP = decimal.NewNullDecimal(q.Price)
		v.PresentValue = qty.Mul(q.Price)
	} else {
		v.QuoteUnavailable = true
	}

	if f != nil {
		v.PERatio = f.PERatio
		v.LatestEarnings = f.Earnings
	}

	v.GainLoss = v.PresentValue.Sub(v.Investment)
	return v
}
