package service

import (
	"slices"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
)

// DefaultMoverCount is the number of gainers and losers shown when none is requested.
const DefaultMoverCount = 5

// SummarizeBySector rolls valued holdings up per sector, in order of first
// appearance. Holdings without a quote contribute at their degraded value.
func SummarizeBySector(holdings []model.ValuedHolding) []model.SectorSummary {
	summaries := []model.SectorSummary{}
	index := make(map[string]int)

	for _, h := range holdings {
		i, ok := index[h.Sector]
		if !ok {
			i = len(summaries)
			index[h.Sector] = i
			summaries = append(summaries, model.SectorSummary{
				Sector:       h.Sector,
				Investment:   decimal.Zero,
				PresentValue: decimal.Zero,
				GainLoss:     decimal.Zero,
			})
		}

		s := &summaries[i]
		s.Investment = s.Investment.Add(h.Investment)
		s.PresentValue = s.PresentValue.Add(h.PresentValue)
		s.GainLoss = s.GainLoss.Add(h.GainLoss)
	}

	return summaries
}

// RankTopMovers returns the count best and count worst holdings by gain/loss.
//
// Holdings without a quote are left out entirely rather than ranked at zero.
// Gainers and losers are cut from the same ranking, so with fewer than
// 2×count ranked holdings the two lists share entries. Callers must pass a
// positive count; anything else yields empty lists.
func RankTopMovers(holdings []model.ValuedHolding, count int) model.TopMovers {
	ranked := make([]model.ValuedHolding, 0, len(holdings))
	for _, h := range holdings {
		if h.HasQuote() {
			ranked = append(ranked, h)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].GainLoss.GreaterThan(ranked[j].GainLoss)
	})

	n := max(0, min(count, len(ranked)))

	gainers := slices.Clone(ranked[:n])
	losers := slices.Clone(ranked[len(ranked)-n:])
	slices.Reverse(losers)

	if gainers == nil {
		gainers = []model.ValuedHolding{}
	}
	if losers == nil {
		losers = []model.ValuedHolding{}
	}

	return model.TopMovers{Gainers: gainers, Losers: losers}
}

// ComputeTotals sums investment, present value and gain/loss over all holdings.
func ComputeTotals(holdings []model.ValuedHolding) model.PortfolioTotals {
	t := model.PortfolioTotals{
		Investment:   decimal.Zero,
		PresentValue: decimal.Zero,
		GainLoss:     decimal.Zero,
	}
	for _, h := range holdings {
		t.Investment = t.Investment.Add(h.Investment)
		t.PresentValue = t.PresentValue.Add(h.PresentValue)
		t.GainLoss = t.GainLoss.Add(h.GainLoss)
	}
	return t
}
