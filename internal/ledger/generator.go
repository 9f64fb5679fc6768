package ledger

import (
	"fmt"
	"math/rand"
	"sort"
	"time"
)

// defaultCategoryTypes maps the stock categories to their need/want tag.
var defaultCategoryTypes = map[string]string{
	"Groceries":     "need",
	"Rent":          "need",
	"Utilities":     "need",
	"Transport":     "need",
	"Healthcare":    "need",
	"Dining Out":    "want",
	"Shopping":      "want",
	"Entertainment": "want",
	"Travel":        "want",
	"Food Delivery": "want",
	"Subscriptions": "want",
}

// Generate produces n sample transactions uniformly spread over
// [start, end), sorted by time. Pass a seeded rng for reproducibility.
func Generate(n int, start, end time.Time, rng *rand.Rand) []Transaction {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	span := end.Sub(start)
	if span <= 0 {
		return nil
	}
	names := make([]string, 0, len(defaultCategoryTypes))
	for name := range defaultCategoryTypes {
		names = append(names, name)
	}
	// map order is random; sort for a deterministic pick sequence
	sort.Strings(names)

	out := make([]Transaction, 0, n)
	for i := 0; i < n; i++ {
		cat := names[rng.Intn(len(names))]
		ts := start.Add(time.Duration(rng.Int63n(int64(span))))
		amount := float64(rng.Intn(490000)+10000) / 100 // 100.00 .. 5000.00
		out = append(out, Transaction{
			Timestamp:   ts,
			Amount:      amount,
			Category:    cat,
			Type:        defaultCategoryTypes[cat],
			Description: fmt.Sprintf("%s expense", cat),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out
}
