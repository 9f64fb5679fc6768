// Package analytics provides the pure aggregation layer shared by the
// dashboard, the forecaster and the query assistant. Nothing here
// mutates its input.
package analytics

import (
	"fmt"
	"time"

	"github.com/shatwik/finassist/internal/ledger"
)

// KeyFunc maps a transaction to a bucket label.
type KeyFunc func(ledger.Transaction) string

// ByCategory buckets on the stored category value (case-sensitive).
func ByCategory(t ledger.Transaction) string { return t.Category }

// ByMonth buckets on the calendar month, e.g. "2024-03".
func ByMonth(t ledger.Transaction) string { return t.Timestamp.Format("2006-01") }

// ByISOWeek buckets on the ISO-8601 week, e.g. "2024-W09".
func ByISOWeek(t ledger.Transaction) string {
	year, week := t.Timestamp.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// ByHour buckets on hour of day, "00" .. "23".
func ByHour(t ledger.Transaction) string { return t.Timestamp.Format("15") }

// ByDate buckets on the calendar date, e.g. "2024-03-14".
func ByDate(t ledger.Transaction) string { return t.Timestamp.Format("2006-01-02") }

// SumBy groups the ledger with key and sums amounts per bucket.
func SumBy(txs []ledger.Transaction, key KeyFunc) map[string]float64 {
	out := make(map[string]float64)
	for _, t := range txs {
		out[key(t)] += t.Amount
	}
	return out
}

// Total sums all amounts.
func Total(txs []ledger.Transaction) float64 {
	var sum float64
	for _, t := range txs {
		sum += t.Amount
	}
	return sum
}

// Mean returns the average transaction amount, 0 for an empty slice.
func Mean(txs []ledger.Transaction) float64 {
	if len(txs) == 0 {
		return 0
	}
	return Total(txs) / float64(len(txs))
}

// DailyTotals returns spend per calendar date.
func DailyTotals(txs []ledger.Transaction) map[string]float64 {
	return SumBy(txs, ByDate)
}

// FilterDateRange keeps rows whose date portion falls in [start, end],
// inclusive on both ends. Time of day is ignored. An inverted range
// yields an empty result.
func FilterDateRange(txs []ledger.Transaction, start, end time.Time) []ledger.Transaction {
	startDay := truncateDay(start)
	endDay := truncateDay(end)
	var out []ledger.Transaction
	for _, t := range txs {
		d := truncateDay(t.Timestamp)
		if d.Before(startDay) || d.After(endDay) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Predicate selects rows by field membership. A nil slice leaves that
// field unconstrained; all set fields must match (boolean AND).
type Predicate struct {
	Types      []string
	Categories []string
}

// Filter applies p to the ledger.
func Filter(txs []ledger.Transaction, p Predicate) []ledger.Transaction {
	var out []ledger.Transaction
	for _, t := range txs {
		if p.Types != nil && !contains(p.Types, t.Type) {
			continue
		}
		if p.Categories != nil && !contains(p.Categories, t.Category) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// MonthSlice keeps rows whose timestamp falls in the calendar month of ref.
func MonthSlice(txs []ledger.Transaction, ref time.Time) []ledger.Transaction {
	key := ref.Format("2006-01")
	var out []ledger.Transaction
	for _, t := range txs {
		if t.Timestamp.Format("2006-01") == key {
			out = append(out, t)
		}
	}
	return out
}

// ISOWeekSlice keeps rows in the same ISO year and week as ref.
func ISOWeekSlice(txs []ledger.Transaction, ref time.Time) []ledger.Transaction {
	refYear, refWeek := ref.ISOWeek()
	var out []ledger.Transaction
	for _, t := range txs {
		y, w := t.Timestamp.ISOWeek()
		if y == refYear && w == refWeek {
			out = append(out, t)
		}
	}
	return out
}

// YearMonthSlice filters by year and/or month; zero values leave the
// corresponding dimension unconstrained.
func YearMonthSlice(txs []ledger.Transaction, year int, month time.Month) []ledger.Transaction {
	var out []ledger.Transaction
	for _, t := range txs {
		if year != 0 && t.Timestamp.Year() != year {
			continue
		}
		if month != 0 && t.Timestamp.Month() != month {
			continue
		}
		out = append(out, t)
	}
	return out
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func contains(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}
