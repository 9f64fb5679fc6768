package ledger

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)

	txs := Generate(50, start, end, rand.New(rand.NewSource(7)))
	require.Len(t, txs, 50)
	for i, tr := range txs {
		require.False(t, tr.Timestamp.Before(start))
		require.True(t, tr.Timestamp.Before(end))
		require.GreaterOrEqual(t, tr.Amount, 100.0)
		require.LessOrEqual(t, tr.Amount, 5000.0)
		require.Equal(t, defaultCategoryTypes[tr.Category], tr.Type)
		if i > 0 {
			require.False(t, tr.Timestamp.Before(txs[i-1].Timestamp))
		}
	}

	// seeded runs are reproducible
	again := Generate(50, start, end, rand.New(rand.NewSource(7)))
	require.Equal(t, txs, again)
}

func TestGenerateEmptySpan(t *testing.T) {
	now := time.Now()
	require.Nil(t, Generate(10, now, now, rand.New(rand.NewSource(1))))
}
