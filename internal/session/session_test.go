package session

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewSeedsDefaults(t *testing.T) {
	s := New("shatwik", []string{"Food", "Rent"})
	require.Equal(t, "shatwik", s.Username)
	require.NotEmpty(t, s.ID)
	require.False(t, s.CreatedAt.IsZero())
	require.Equal(t, float64(DefaultBudget), s.Budget)
	require.Equal(t, map[string]float64{
		"Food": DefaultCategoryBudget,
		"Rent": DefaultCategoryBudget,
	}, s.CategoryBudgets)

	// ids are unique per session
	require.NotEqual(t, s.ID, New("shatwik", nil).ID)
}

func TestSetBudgetClampsNegative(t *testing.T) {
	s := New("u", []string{"Food"})

	s.SetBudget(2500)
	require.Equal(t, 2500.0, s.Budget)
	s.SetBudget(-10)
	require.Equal(t, 0.0, s.Budget)

	s.SetCategoryBudget("Food", 800)
	require.Equal(t, 800.0, s.CategoryBudgets["Food"])
	s.SetCategoryBudget("Food", -1)
	require.Equal(t, 0.0, s.CategoryBudgets["Food"])

	// unknown categories are created on first set
	s.SetCategoryBudget("Travel", 1500)
	require.Equal(t, 1500.0, s.CategoryBudgets["Travel"])
}

func TestClear(t *testing.T) {
	s := New("u", []string{"Food"})
	s.Clear()
	require.Empty(t, s.Username)
	require.Empty(t, s.ID)
	require.Empty(t, s.CategoryBudgets)
}
