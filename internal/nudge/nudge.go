// Package nudge evaluates a fixed rule set over a month of spending and
// a budget configuration, producing short advisory messages. Every
// function here is pure and deterministic; callers may re-run them
// freely on each interaction.
package nudge

import (
	"fmt"
	"sort"
	"time"

	"github.com/shatwik/finassist/internal/analytics"
	"github.com/shatwik/finassist/internal/ledger"
)

const (
	lowSpendDayCeiling  = 200.0
	lowSpendStreakDays  = 3
	dominanceShare      = 0.4
	dailyAverageCeiling = 500.0
	spikeDayFloor       = 2000.0
	spikeDayCount       = 2
	warningRatio        = 0.6
)

// Gamified evaluates the rule set over the current month's transaction
// slice. Rules are independent and order-stable; each appends at most
// one message. An overall budget of zero or less means "no budget set"
// and skips the pace and badge rules.
func Gamified(txs []ledger.Transaction, budget float64) []string {
	if len(txs) == 0 {
		return []string{"No transactions found for this period. Try adjusting your filters!"}
	}

	var nudges []string
	totalSpent := analytics.Total(txs)

	// budget milestones
	if budget > 0 {
		switch {
		case totalSpent < budget*0.5:
			nudges = append(nudges, "Great job! You've spent less than 50% of your budget!")
		case totalSpent < budget:
			nudges = append(nudges, "You're within your budget! Keep it going!")
		default:
			nudges = append(nudges, "You've exceeded your budget. Let's get back on track!")
		}
	}

	daily := analytics.DailyTotals(txs)

	// low-spend streaks
	lowSpendDays := 0
	for _, amount := range daily {
		if amount < lowSpendDayCeiling {
			lowSpendDays++
		}
	}
	if lowSpendDays >= lowSpendStreakDays {
		nudges = append(nudges, fmt.Sprintf("You had %d low-spend days! That's solid discipline!", lowSpendDays))
	}

	// single category dominance
	if top, amount, ok := topCategory(txs); ok && totalSpent > 0 && amount/totalSpent > dominanceShare {
		nudges = append(nudges, fmt.Sprintf("Most of your spend went to %s. Consider dialing it down.", top))
	}

	// consistent saving habit
	if len(daily) > 0 && totalSpent/float64(len(daily)) < dailyAverageCeiling {
		nudges = append(nudges, "You're averaging under 500/day. That's budget champion behavior!")
	}

	// spending awareness
	spikeDays := 0
	for _, amount := range daily {
		if amount > spikeDayFloor {
			spikeDays++
		}
	}
	if spikeDays > spikeDayCount {
		nudges = append(nudges, fmt.Sprintf("You had %d high-spend days. Watch out for spikes!", spikeDays))
	}

	// saving badge
	if budget > 0 {
		if badge, ok := SavingsBadge(budget - totalSpent); ok {
			nudges = append(nudges, badge)
		}
	}

	return nudges
}

// SavingsBadge awards a tier for the given savings amount. Tiers are
// mutually exclusive and boundary-inclusive; savings below 1 yield no
// badge.
func SavingsBadge(savings float64) (string, bool) {
	switch {
	case savings > 2000:
		return "You earned the Diamond badge for saving 2000+! Legendary savings!", true
	case savings >= 1001:
		return "You earned the Platinum badge for saving 1001-2000! You're killing it!", true
	case savings >= 501:
		return "You earned the Gold badge for saving 501-1000! Great work!", true
	case savings >= 101:
		return "You earned the Silver badge for saving 101-500! Nice job!", true
	case savings >= 1:
		return "You earned the Bronze badge for saving 1-100! Good start!", true
	default:
		return "", false
	}
}

// CategoryWarnings emits one warning per category whose spend in the
// month of now exceeds 60% of its configured budget. Categories without
// a (positive) configured budget are skipped.
func CategoryWarnings(txs []ledger.Transaction, categoryBudgets map[string]float64, now time.Time) []string {
	if len(txs) == 0 {
		return nil
	}
	monthly := analytics.MonthSlice(txs, now)
	spent := analytics.SumBy(monthly, analytics.ByCategory)

	cats := make([]string, 0, len(spent))
	for cat := range spent {
		cats = append(cats, cat)
	}
	sort.Strings(cats)

	var warnings []string
	for _, cat := range cats {
		budget, ok := categoryBudgets[cat]
		if !ok || budget <= 0 {
			continue
		}
		if spent[cat]/budget > warningRatio {
			warnings = append(warnings, fmt.Sprintf(
				"You've spent %.0f in %s, which is over 60%% of its %.0f budget!", spent[cat], cat, budget))
		}
	}
	return warnings
}

func topCategory(txs []ledger.Transaction) (string, float64, bool) {
	sums := analytics.SumBy(txs, analytics.ByCategory)
	if len(sums) == 0 {
		return "", 0, false
	}
	var best string
	bestAmount := -1.0
	cats := make([]string, 0, len(sums))
	for cat := range sums {
		cats = append(cats, cat)
	}
	sort.Strings(cats) // stable winner when amounts tie
	for _, cat := range cats {
		if sums[cat] > bestAmount {
			best, bestAmount = cat, sums[cat]
		}
	}
	return best, bestAmount, true
}
