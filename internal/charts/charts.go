// Package charts renders budget reports as PNG images.
package charts

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"budgettracker/internal/money"
	"budgettracker/internal/performance"
)

const (
	barWidth   = 60
	barSpacing = 20
)

var (
	underLimitColor = drawing.ColorFromHex("2e7d32")
	overLimitColor  = drawing.ColorFromHex("c62828")
)

// SpendingByCategory renders spent-per-category bars for a report. It returns
// nil when the report has no categories.
func SpendingByCategory(report *performance.Report) ([]byte, error) {
	if report == nil || len(report.Categories) == 0 {
		return nil, nil
	}

	bars := make([]chart.Value, 0, len(report.Categories))
	maxValue := 1.0
	for _, c := range report.Categories {
		spent := money.Float(c.Spent)
		if spent < 0 {
			spent = 0
		}
		if spent > maxValue {
			maxValue = spent
		}
		if limit := money.Float(c.Limit); limit > maxValue {
			maxValue = limit
		}

		color := underLimitColor
		if c.Limit > 0 && c.Spent > c.Limit {
			color = overLimitColor
		}
		bars = append(bars, chart.Value{
			Label: c.Name,
			Value: spent,
			Style: chart.Style{
				StrokeColor: color,
				FillColor:   color,
			},
		})
	}

	graph := chart.BarChart{
		Title: fmt.Sprintf("Spending %s (%d days left)", report.CurrentFinancialMonth, report.DaysRemaining),
		TitleStyle: chart.Style{
			FontSize:  14,
			FontColor: chart.ColorBlack,
		},
		Width:      max(1000, len(bars)*(barWidth+barSpacing)+200),
		Height:     500,
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    50,
				Left:   50,
				Right:  50,
				Bottom: 50,
			},
			FillColor: chart.ColorWhite,
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: maxValue},
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%.0f", v.(float64))
			},
			Style: chart.Style{
				FontSize:  12,
				FontColor: chart.ColorBlack,
			},
		},
		Bars: bars,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render spending chart: %w", err)
	}

	return buffer.Bytes(), nil
}
