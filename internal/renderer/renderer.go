// Package renderer turns portfolio snapshots into markdown reports and charts.
package renderer

import (
	"embed"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
)

//go:embed templates/*.md
var templates embed.FS

// Renderer formats money in a single display currency.
type Renderer struct {
	currency *money.Currency
	tmpl     *template.Template
}

// New creates a Renderer for an ISO 4217 currency code such as "INR".
func New(currencyCode string) (*Renderer, error) {
	cur := money.GetCurrency(strings.ToUpper(currencyCode))
	if cur == nil {
		return nil, fmt.Errorf("%w: unknown currency %q", apperrors.ErrInvalidConfig, currencyCode)
	}

	r := &Renderer{currency: cur}

	tmpl, err := template.New("").Funcs(template.FuncMap{
		"money":     r.formatMoney,
		"nullMoney": r.formatNullMoney,
		"ratio":     formatRatio,
		"time":      func(t time.Time) string { return t.UTC().Format("2006-01-02 15:04:05 UTC") },
		"inc":       func(i int) int { return i + 1 },
	}).ParseFS(templates, "templates/*.md")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	r.tmpl = tmpl

	return r, nil
}

// Report renders the full snapshot: totals, holdings, sectors and movers.
func (r *Renderer) Report(snap *model.Snapshot) (string, error) {
	return r.execute("report.md", snap)
}

// Holdings renders a holdings table.
func (r *Renderer) Holdings(holdings []model.ValuedHolding) (string, error) {
	return r.execute("holdings.md", holdings)
}

// Sectors renders a sector summary table.
func (r *Renderer) Sectors(sectors []model.SectorSummary) (string, error) {
	return r.execute("sectors.md", sectors)
}

// Movers renders the gainers and losers tables.
func (r *Renderer) Movers(movers model.TopMovers) (string, error) {
	return r.execute("movers.md", movers)
}

func (r *Renderer) execute(name string, data any) (string, error) {
	var b strings.Builder
	if err := r.tmpl.ExecuteTemplate(&b, name, data); err != nil {
		return "", fmt.Errorf("%w: %s: %w", apperrors.ErrFailedToRenderReport, name, err)
	}
	return b.String(), nil
}

// formatMoney rounds to the currency's minor unit and formats with its grapheme.
func (r *Renderer) formatMoney(d decimal.Decimal) string {
	minor := d.Shift(int32(r.currency.Fraction)).Round(0).IntPart()
	return r.currency.Formatter().Format(minor)
}

func (r *Renderer) formatNullMoney(d decimal.NullDecimal) string {
	if !d.Valid {
		return "n/a"
	}
	return r.formatMoney(d.Decimal)
}

func formatRatio(d decimal.NullDecimal) string {
	if !d.Valid {
		return "n/a"
	}
	return d.Decimal.StringFixed(2)
}
