// Package chat implements the rule-based query assistant: a small,
// closed intent set matched by keyword scanning over free text. It is
// deliberately not a grammar or an ML classifier; the utterance domain
// is fixed and tiny.
package chat

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/agnivade/levenshtein"

	"github.com/shatwik/finassist/internal/analytics"
	"github.com/shatwik/finassist/internal/ledger"
)

// Intent is the classified purpose of a query.
type Intent int

const (
	IntentUnknown Intent = iota
	IntentCategorySpend
	IntentPeriodSpend
	IntentWeeklySummary
	IntentNudgeRequest
)

// Result carries the matched intent and any extracted parameters.
// Category is empty when the category-spend phrase matched but no known
// category appeared in the input.
type Result struct {
	Intent   Intent
	Category string
	Year     int
	Month    time.Month
}

const (
	phraseCategorySpend = "how much did i spend on"
	phrasePeriodSpend   = "how much did i spend in"
)

// suggestionMaxDistance bounds the levenshtein distance for "did you
// mean" category suggestions.
const suggestionMaxDistance = 2

const helpMessage = "You can ask things like:\n" +
	"- How much did I spend on Food?\n" +
	"- Show me my weekly spending\n" +
	"- How much did I spend in March 2024?\n" +
	"- Give me a nudge to save"

var monthsByName = map[string]time.Month{
	"january": time.January, "february": time.February, "march": time.March,
	"april": time.April, "may": time.May, "june": time.June,
	"july": time.July, "august": time.August, "september": time.September,
	"october": time.October, "november": time.November, "december": time.December,
}

// Classify maps free text to an intent, scanning categories for the
// category-spend case. Matching is first-match-wins in the fixed rule
// order; category matching is case-insensitive substring with a
// longest-match-wins tie-break so overlapping names ("Food" inside
// "Food Delivery") resolve deterministically.
func Classify(input string, categories []string) Result {
	text := strings.ToLower(input)

	switch {
	case strings.Contains(text, phraseCategorySpend):
		return Result{Intent: IntentCategorySpend, Category: matchCategory(text, categories)}
	case strings.Contains(text, phrasePeriodSpend):
		year, month := extractYear(text), extractMonth(text)
		return Result{Intent: IntentPeriodSpend, Year: year, Month: month}
	case strings.Contains(text, "weekly spending") || strings.Contains(text, "this week"):
		return Result{Intent: IntentWeeklySummary}
	case strings.Contains(text, "nudge") || strings.Contains(text, "tip"):
		return Result{Intent: IntentNudgeRequest}
	default:
		return Result{Intent: IntentUnknown}
	}
}

// Assistant answers queries against a ledger slice. It never fails: any
// input the rules cannot place yields the help message.
type Assistant struct {
	Currency string
	Now      func() time.Time
}

// Respond produces a single human-readable reply for the input.
func (a Assistant) Respond(input string, txs []ledger.Transaction) string {
	now := time.Now
	if a.Now != nil {
		now = a.Now
	}
	categories := ledger.Categories(txs)
	res := Classify(input, categories)

	switch res.Intent {
	case IntentCategorySpend:
		if res.Category == "" {
			if suggestion := nearestCategory(strings.ToLower(input), categories); suggestion != "" {
				return fmt.Sprintf("I couldn't find that category. Did you mean %s?", suggestion)
			}
			return helpMessage
		}
		total := categoryTotal(txs, res.Category)
		return fmt.Sprintf("You spent %s%.2f on %s overall.", a.Currency, total, res.Category)

	case IntentPeriodSpend:
		filtered := analytics.YearMonthSlice(txs, res.Year, res.Month)
		if len(filtered) == 0 {
			return "No spending data found for that period."
		}
		return fmt.Sprintf("You spent %s%.2f in %s.", a.Currency, analytics.Total(filtered), periodLabel(res.Year, res.Month))

	case IntentWeeklySummary:
		current := now()
		week := analytics.ISOWeekSlice(txs, current)
		if len(week) == 0 {
			return "No spending activity recorded this week."
		}
		_, weekNum := current.ISOWeek()
		sums := analytics.SumBy(week, analytics.ByCategory)
		cats := make([]string, 0, len(sums))
		for cat := range sums {
			cats = append(cats, cat)
		}
		sort.Strings(cats)
		var b strings.Builder
		fmt.Fprintf(&b, "Spending Summary for Week %d:", weekNum)
		for _, cat := range cats {
			fmt.Fprintf(&b, "\n- %s: %s%.2f", labelOr(cat, "untagged"), a.Currency, sums[cat])
		}
		return b.String()

	case IntentNudgeRequest:
		return a.spendingTips(txs)

	default:
		return helpMessage
	}
}

// spendingTips applies three independent fixed thresholds; every
// triggered tip is included.
func (a Assistant) spendingTips(txs []ledger.Transaction) string {
	sums := analytics.SumBy(txs, analytics.ByCategory)
	var tips []string
	if sums["Food"] > 2000 {
		tips = append(tips, "Try reducing food delivery - maybe meal prep this week?")
	}
	if sums["Shopping"] > 3000 {
		tips = append(tips, "A no-spend weekend challenge could help!")
	}
	if analytics.Total(txs) > 10000 {
		tips = append(tips, "Consider setting a monthly budget to avoid overspending.")
	}
	if len(tips) == 0 {
		return "You're spending wisely! Keep it up!"
	}
	return strings.Join(tips, "\n")
}

// matchCategory returns the category whose name appears in the text,
// preferring the longest match. Empty string when none appears.
func matchCategory(text string, categories []string) string {
	best := ""
	for _, cat := range categories {
		if cat == "" {
			continue
		}
		if strings.Contains(text, strings.ToLower(cat)) && len(cat) > len(best) {
			best = cat
		}
	}
	return best
}

// nearestCategory finds the category closest by edit distance to any
// token following the category-spend phrase, within
// suggestionMaxDistance. Only the remainder is scanned so filler words
// earlier in the sentence cannot produce spurious suggestions.
func nearestCategory(text string, categories []string) string {
	_, after, found := strings.Cut(text, phraseCategorySpend)
	if !found {
		return ""
	}
	best := ""
	bestDist := suggestionMaxDistance + 1
	for _, cat := range categories {
		lower := strings.ToLower(cat)
		for _, token := range strings.Fields(after) {
			if d := levenshtein.ComputeDistance(trimToken(token), lower); d < bestDist {
				best, bestDist = cat, d
			}
		}
	}
	return best
}

// extractYear returns the first 4-digit numeric token, or 0.
func extractYear(text string) int {
	for _, token := range strings.Fields(text) {
		token = trimToken(token)
		if len(token) != 4 {
			continue
		}
		year := 0
		ok := true
		for _, r := range token {
			if r < '0' || r > '9' {
				ok = false
				break
			}
			year = year*10 + int(r-'0')
		}
		if ok {
			return year
		}
	}
	return 0
}

// extractMonth returns the first English month name token, or 0.
func extractMonth(text string) time.Month {
	for _, token := range strings.Fields(text) {
		if m, ok := monthsByName[trimToken(token)]; ok {
			return m
		}
	}
	return 0
}

func periodLabel(year int, month time.Month) string {
	switch {
	case year != 0 && month != 0:
		return fmt.Sprintf("%s %d", month, year)
	case month != 0:
		return month.String()
	case year != 0:
		return fmt.Sprintf("%d", year)
	default:
		return "total"
	}
}

// categoryTotal sums rows whose stored category equals name
// case-insensitively, mirroring the classifier's matching.
func categoryTotal(txs []ledger.Transaction, name string) float64 {
	lower := strings.ToLower(name)
	var sum float64
	for _, t := range txs {
		if strings.ToLower(t.Category) == lower {
			sum += t.Amount
		}
	}
	return sum
}

func trimToken(token string) string {
	return strings.Trim(token, ".,!?;:'\"")
}

func labelOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
