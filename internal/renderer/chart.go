package renderer

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
)

// RenderSectorChart renders a PNG pie chart of investment by sector.
// Sectors without a positive investment are left out; if none remain the
// result is ErrNoSectorData.
func RenderSectorChart(sectors []model.SectorSummary) ([]byte, error) {
	values := make([]chart.Value, 0, len(sectors))
	for _, s := range sectors {
		if !s.Investment.IsPositive() {
			continue
		}
		v, _ := s.Investment.Float64()
		values = append(values, chart.Value{Label: s.Sector, Value: v})
	}
	if len(values) == 0 {
		return nil, apperrors.ErrNoSectorData
	}

	pie := chart.PieChart{
		Title:  "Investment by Sector",
		Width:  600,
		Height: 600,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		Values: values,
	}

	var buf bytes.Buffer
	if err := pie.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrFailedToRenderChart, err)
	}
	return buf.Bytes(), nil
}
