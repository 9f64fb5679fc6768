package nudge

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/shatwik/finassist/internal/ledger"
)

func dayTx(day int, amount float64, category string) ledger.Transaction {
	return ledger.Transaction{
		Timestamp: time.Date(2024, time.March, day, 12, 0, 0, 0, time.UTC),
		Amount:    amount,
		Category:  category,
		Type:      "want",
	}
}

func TestGamifiedEmpty(t *testing.T) {
	got := Gamified(nil, 10000)
	require.Equal(t, []string{"No transactions found for this period. Try adjusting your filters!"}, got)
}

func TestGamifiedBudgetPace(t *testing.T) {
	cases := []struct {
		spent float64
		want  string
	}{
		{3000, "Great job! You've spent less than 50% of your budget!"},
		{7000, "You're within your budget! Keep it going!"},
		{12000, "You've exceeded your budget. Let's get back on track!"},
	}
	for _, tc := range cases {
		got := Gamified([]ledger.Transaction{dayTx(1, tc.spent, "Rent")}, 10000)
		require.Contains(t, got, tc.want, fmt.Sprintf("spent=%v", tc.spent))
	}

	// spending exactly the budget counts as exceeded, not within
	got := Gamified([]ledger.Transaction{dayTx(1, 10000, "Rent")}, 10000)
	require.Contains(t, got, "You've exceeded your budget. Let's get back on track!")
}

func TestGamifiedNoBudgetSkipsPaceAndBadge(t *testing.T) {
	txs := []ledger.Transaction{dayTx(1, 9000, "Rent")}
	for _, msg := range Gamified(txs, 0) {
		require.NotContains(t, msg, "budget!")
		require.NotContains(t, msg, "badge")
	}
}

func TestGamifiedLowSpendStreak(t *testing.T) {
	txs := []ledger.Transaction{
		dayTx(1, 50, "Food"),
		dayTx(2, 150, "Food"),
		dayTx(3, 199, "Food"),
		dayTx(4, 5000, "Travel"),
	}
	require.Contains(t, Gamified(txs, 0), "You had 3 low-spend days! That's solid discipline!")

	// two low days is not a streak
	got := Gamified(txs[1:], 0)
	for _, msg := range got {
		require.NotContains(t, msg, "low-spend")
	}
}

func TestGamifiedDominance(t *testing.T) {
	txs := []ledger.Transaction{
		dayTx(1, 500, "Shopping"),
		dayTx(2, 300, "Food"),
		dayTx(3, 200, "Transport"),
	}
	require.Contains(t, Gamified(txs, 0), "Most of your spend went to Shopping. Consider dialing it down.")

	// a share of exactly 40% does not trigger
	even := []ledger.Transaction{
		dayTx(1, 400, "Shopping"),
		dayTx(2, 300, "Food"),
		dayTx(3, 300, "Transport"),
	}
	for _, msg := range Gamified(even, 0) {
		require.NotContains(t, msg, "Most of your spend")
	}
}

func TestGamifiedSpikeDays(t *testing.T) {
	txs := []ledger.Transaction{
		dayTx(1, 2500, "Travel"),
		dayTx(2, 3000, "Travel"),
		dayTx(3, 2100, "Travel"),
	}
	require.Contains(t, Gamified(txs, 0), "You had 3 high-spend days. Watch out for spikes!")

	// exactly two spike days stays quiet
	for _, msg := range Gamified(txs[:2], 0) {
		require.NotContains(t, msg, "high-spend")
	}
}

func TestGamifiedIdempotent(t *testing.T) {
	txs := []ledger.Transaction{
		dayTx(1, 100, "Food"),
		dayTx(2, 2500, "Travel"),
		dayTx(3, 150, "Food"),
		dayTx(4, 180, "Transport"),
	}
	first := Gamified(txs, 10000)
	second := Gamified(txs, 10000)
	require.Equal(t, first, second)
}

func TestSavingsBadgeBoundaries(t *testing.T) {
	cases := []struct {
		savings float64
		tier    string
	}{
		{1, "Bronze"},
		{100, "Bronze"},
		{101, "Silver"},
		{500, "Silver"},
		{501, "Gold"},
		{1000, "Gold"},
		{1001, "Platinum"},
		{2000, "Platinum"},
		{2001, "Diamond"},
	}
	for _, tc := range cases {
		badge, ok := SavingsBadge(tc.savings)
		require.True(t, ok, fmt.Sprintf("savings=%v", tc.savings))
		require.Contains(t, badge, tc.tier, fmt.Sprintf("savings=%v", tc.savings))
	}

	for _, savings := range []float64{0, 0.5, -300} {
		_, ok := SavingsBadge(savings)
		require.False(t, ok, fmt.Sprintf("savings=%v", savings))
	}
}

func TestCategoryWarnings(t *testing.T) {
	now := time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC)
	txs := []ledger.Transaction{
		dayTx(5, 700, "Food"),     // 70% of 1000
		dayTx(6, 500, "Shopping"), // 50% of 1000
		{Timestamp: time.Date(2024, time.February, 5, 0, 0, 0, 0, time.UTC), Amount: 999, Category: "Travel"},
	}
	budgets := map[string]float64{"Food": 1000, "Shopping": 1000, "Travel": 1000}

	got := CategoryWarnings(txs, budgets, now)
	require.Equal(t, []string{"You've spent 700 in Food, which is over 60% of its 1000 budget!"}, got)
}

func TestCategoryWarningsSkipsUnbudgeted(t *testing.T) {
	now := time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC)
	txs := []ledger.Transaction{dayTx(5, 999, "Food")}

	require.Empty(t, CategoryWarnings(txs, nil, now))
	require.Empty(t, CategoryWarnings(txs, map[string]float64{"Food": 0}, now))
	require.Empty(t, CategoryWarnings(nil, map[string]float64{"Food": 1000}, now))
}
