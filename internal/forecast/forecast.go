// Package forecast fits a univariate linear trend over monthly spend
// aggregates and projects the next month.
package forecast

import (
	"errors"
	"sort"

	"github.com/shatwik/finassist/internal/analytics"
	"github.com/shatwik/finassist/internal/ledger"
)

// ErrInsufficientData is returned when fewer than two monthly points
// exist; the model is never fit degenerately.
var ErrInsufficientData = errors.New("not enough data to generate forecast")

// Model is a fitted line over (month index, amount) pairs, index
// starting at 1.
type Model struct {
	Slope     float64
	Intercept float64
	Points    int
}

// Fit runs ordinary least squares over points indexed 1..n.
func Fit(points []float64) (Model, error) {
	n := len(points)
	if n < 2 {
		return Model{}, ErrInsufficientData
	}
	var sumX, sumY, sumXY, sumXX float64
	for i, y := range points {
		x := float64(i + 1)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}
	fn := float64(n)
	denom := fn*sumXX - sumX*sumX
	slope := (fn*sumXY - sumX*sumY) / denom
	intercept := (sumY - slope*sumX) / fn
	return Model{Slope: slope, Intercept: intercept, Points: n}, nil
}

// Predict evaluates the fitted line at index.
func (m Model) Predict(index int) float64 {
	return m.Slope*float64(index) + m.Intercept
}

// Next projects the value at the index following the fitted series.
func (m Model) Next() float64 {
	return m.Predict(m.Points + 1)
}

// MonthlySeries returns the per-month sums of the ledger in
// chronological order.
func MonthlySeries(txs []ledger.Transaction) []float64 {
	sums := analytics.SumBy(txs, analytics.ByMonth)
	keys := make([]string, 0, len(sums))
	for k := range sums {
		keys = append(keys, k)
	}
	sort.Strings(keys) // "2006-01" keys sort chronologically
	out := make([]float64, 0, len(keys))
	for _, k := range keys {
		out = append(out, sums[k])
	}
	return out
}

// NextMonth projects next month's overall spend.
func NextMonth(txs []ledger.Transaction) (float64, error) {
	m, err := Fit(MonthlySeries(txs))
	if err != nil {
		return 0, err
	}
	return m.Next(), nil
}

// NextMonthByCategory projects next month's spend per category.
// Categories with fewer than two monthly points are silently skipped.
func NextMonthByCategory(txs []ledger.Transaction) map[string]float64 {
	out := make(map[string]float64)
	for _, cat := range ledger.Categories(txs) {
		slice := analytics.Filter(txs, analytics.Predicate{Categories: []string{cat}})
		m, err := Fit(MonthlySeries(slice))
		if err != nil {
			continue
		}
		out[cat] = m.Next()
	}
	return out
}
