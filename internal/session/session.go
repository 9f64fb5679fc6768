// Package session holds per-login state that the original kept in
// ambient globals: the active user, budget configuration and payment
// provider credentials. A Session is created at login, passed
// explicitly to the views that need it, and cleared at logout.
package session

import (
	"time"

	"github.com/google/uuid"
)

// DefaultBudget is the overall monthly ceiling before the user sets one.
const DefaultBudget = 10000

// DefaultCategoryBudget is the per-category ceiling before the user
// sets one.
const DefaultCategoryBudget = 1000

// Session is the explicit per-login state. Budgets live only here; they
// are not persisted across sessions.
type Session struct {
	ID        string
	Username  string
	CreatedAt time.Time

	Budget          float64
	CategoryBudgets map[string]float64

	RazorpayKeyID     string
	RazorpayKeySecret string
}

// New starts a session for username with default budgets for the given
// categories.
func New(username string, categories []string) *Session {
	s := &Session{
		ID:              uuid.NewString(),
		Username:        username,
		CreatedAt:       time.Now(),
		Budget:          DefaultBudget,
		CategoryBudgets: make(map[string]float64, len(categories)),
	}
	for _, cat := range categories {
		s.CategoryBudgets[cat] = DefaultCategoryBudget
	}
	return s
}

// SetBudget updates the overall ceiling; negative input is clamped to 0
// ("no budget set").
func (s *Session) SetBudget(v float64) {
	if v < 0 {
		v = 0
	}
	s.Budget = v
}

// SetCategoryBudget updates one category ceiling.
func (s *Session) SetCategoryBudget(category string, v float64) {
	if v < 0 {
		v = 0
	}
	if s.CategoryBudgets == nil {
		s.CategoryBudgets = make(map[string]float64)
	}
	s.CategoryBudgets[category] = v
}

// Clear wipes the session at logout.
func (s *Session) Clear() {
	*s = Session{}
}
