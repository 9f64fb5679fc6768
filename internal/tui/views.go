package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shatwik/finassist/internal/analytics"
	"github.com/shatwik/finassist/internal/forecast"
	"github.com/shatwik/finassist/internal/ledger"
	"github.com/shatwik/finassist/internal/nudge"
)

func (a *App) View() string {
	var body string
	switch a.state {
	case viewLogin:
		body = a.renderLogin()
	case viewDashboard:
		body = a.renderDashboard()
	case viewTrends:
		body = a.renderTrends()
	case viewBudgets:
		body = a.renderBudgets()
	case viewAssistant:
		body = a.renderAssistant()
	case viewImport:
		body = a.renderImport()
	case viewFilters:
		body = a.renderFilters()
	}
	if a.status != "" {
		body += "\n\n" + statusStyle.Render(a.status)
	}
	return body + "\n"
}

func (a *App) money(v float64) string {
	return fmt.Sprintf("%s%.2f", a.cfg.UI.CurrencySymbol, v)
}

// navHints is the footer shared by the logged-in views.
func navHints() string {
	return hintStyle.Render(
		"[d] Dashboard  [t] Trends  [b] Budgets  [a] Assistant  [i] Import  [f] Filters  [L] Logout  [q] Quit")
}

// ---------------------------------------------------------------------------
// Login
// ---------------------------------------------------------------------------

func (a *App) renderLogin() string {
	var b strings.Builder
	switch a.mode {
	case authRegister:
		b.WriteString(titleStyle.Render("FinAssist — Register"))
	case authReset:
		b.WriteString(titleStyle.Render("FinAssist — Reset Password"))
	default:
		b.WriteString(titleStyle.Render("FinAssist — Login"))
	}
	b.WriteString("\n\n")

	labels := authFieldLabels(a.mode)
	for i, in := range a.authInputs {
		marker := "  "
		if i == a.authFocus {
			marker = cursorStyle.Render("> ")
		}
		b.WriteString(fmt.Sprintf("%s%-22s %s\n", marker, labels[i]+":", in.View()))
	}
	b.WriteString("\n")
	b.WriteString(hintStyle.Render("[enter] Submit  [tab] Next field  [ctrl+r] Switch mode  [esc] Quit"))
	return b.String()
}

// ---------------------------------------------------------------------------
// Dashboard
// ---------------------------------------------------------------------------

func (a *App) renderDashboard() string {
	txs := a.filtered()
	now := a.now()
	month := analytics.MonthSlice(txs, now)

	var b strings.Builder
	b.WriteString(titleStyle.Render("FinAssist Dashboard — " + now.Format("January 2006")))
	b.WriteString("\n")
	b.WriteString(hintStyle.Render(fmt.Sprintf("ledger: %s (%d transactions)", a.source, len(a.txs))))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Quick Summary"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  Total spent (filtered):  %s\n", a.money(analytics.Total(txs))))
	b.WriteString(fmt.Sprintf("  Transactions:            %d\n", len(txs)))
	b.WriteString(fmt.Sprintf("  Average per transaction: %s\n", a.money(analytics.Mean(txs))))
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("Monthly Budget"))
	b.WriteString("\n")
	spent := analytics.Total(month)
	if a.sess.Budget > 0 {
		remaining := a.sess.Budget - spent
		over := spent > a.sess.Budget
		b.WriteString("  " + renderProgress(spent/a.sess.Budget, over, 40) + "\n")
		b.WriteString(fmt.Sprintf("  Spent %s of %s", a.money(spent), a.money(a.sess.Budget)))
		if over {
			b.WriteString(errorStyle.Render(fmt.Sprintf("  (over by %s)", a.money(-remaining))))
		} else {
			b.WriteString(successStyle.Render(fmt.Sprintf("  (%s remaining)", a.money(remaining))))
		}
		b.WriteString("\n")
	} else {
		b.WriteString(hintStyle.Render("  No budget set. Press [b] to configure one.") + "\n")
	}
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("Forecast"))
	b.WriteString("\n")
	b.WriteString(a.renderForecast(txs))
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("Nudges"))
	b.WriteString("\n")
	for _, n := range nudge.Gamified(month, a.sess.Budget) {
		b.WriteString(infoStyle.Render("  • "+n) + "\n")
	}
	for _, w := range nudge.CategoryWarnings(txs, a.sess.CategoryBudgets, now) {
		b.WriteString(cautionStyle.Render("  ! "+w) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(navHints())
	return b.String()
}

func (a *App) renderForecast(txs []ledger.Transaction) string {
	var b strings.Builder
	next, err := forecast.NextMonth(txs)
	if err != nil {
		b.WriteString(hintStyle.Render("  Not enough data to generate forecast.") + "\n")
		return b.String()
	}
	line := fmt.Sprintf("  Predicted expense for next month: %s", a.money(next))
	if a.sess.Budget > 0 && next > a.sess.Budget {
		line += warnStyle.Render("  — likely to exceed your budget!")
	}
	b.WriteString(line + "\n")

	byCat := forecast.NextMonthByCategory(txs)
	cats := make([]string, 0, len(byCat))
	for cat := range byCat {
		cats = append(cats, cat)
	}
	sort.Strings(cats)
	for _, cat := range cats {
		budget := a.sess.CategoryBudgets[cat]
		verdict := successStyle.Render("looks safe")
		if budget > 0 && byCat[cat] > budget {
			verdict = warnStyle.Render("likely to overspend!")
		}
		b.WriteString(fmt.Sprintf("  %-16s %-12s %s\n", cat+":", a.money(byCat[cat]), verdict))
	}
	return b.String()
}

// ---------------------------------------------------------------------------
// Trends
// ---------------------------------------------------------------------------

func (a *App) renderTrends() string {
	txs := a.filtered()
	var b strings.Builder
	b.WriteString(titleStyle.Render("Spending Trends"))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Monthly Spend") + "\n")
	b.WriteString(renderBars(sortedPoints(analytics.SumBy(txs, analytics.ByMonth)), a.width, a.cfg.UI.CurrencySymbol))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Weekly Spend") + "\n")
	b.WriteString(renderBars(sortedPoints(analytics.SumBy(txs, analytics.ByISOWeek)), a.width, a.cfg.UI.CurrencySymbol))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("By Category") + "\n")
	b.WriteString(renderBars(rankedPoints(analytics.SumBy(txs, analytics.ByCategory)), a.width, a.cfg.UI.CurrencySymbol))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("By Hour of Day") + "\n")
	b.WriteString(renderBars(sortedPoints(analytics.SumBy(txs, analytics.ByHour)), a.width, a.cfg.UI.CurrencySymbol))
	b.WriteString("\n\n")
	b.WriteString(navHints())
	return b.String()
}

// sortedPoints orders buckets by label; the bucket keys used here sort
// chronologically as strings.
func sortedPoints(sums map[string]float64) []chartPoint {
	keys := make([]string, 0, len(sums))
	for k := range sums {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	points := make([]chartPoint, 0, len(keys))
	for _, k := range keys {
		label := k
		if label == "" {
			label = "untagged"
		}
		points = append(points, chartPoint{Label: label, Value: sums[k]})
	}
	return points
}

// rankedPoints orders buckets by value, largest first.
func rankedPoints(sums map[string]float64) []chartPoint {
	points := sortedPoints(sums)
	sort.SliceStable(points, func(i, j int) bool { return points[i].Value > points[j].Value })
	return points
}

// ---------------------------------------------------------------------------
// Budgets
// ---------------------------------------------------------------------------

func (a *App) renderBudgets() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Budgets"))
	b.WriteString("\n\n")

	now := a.now()
	month := analytics.MonthSlice(a.filtered(), now)
	spentByCat := analytics.SumBy(month, analytics.ByCategory)

	for i, row := range a.budgetRows() {
		marker := "  "
		if i == a.budgetCursor && a.editingBudget == "" {
			marker = cursorStyle.Render("> ")
		}
		var budget, spent float64
		if row == overallKey {
			budget = a.sess.Budget
			spent = analytics.Total(month)
		} else {
			budget = a.sess.CategoryBudgets[row]
			spent = spentByCat[row]
		}
		line := fmt.Sprintf("%s%-16s %-12s", marker, row, a.money(budget))
		if budget > 0 {
			line += " " + renderProgress(spent/budget, spent > budget, 24)
			line += fmt.Sprintf("  %s spent", a.money(spent))
		} else {
			line += " " + hintStyle.Render("(no budget)")
		}
		if a.editingBudget == row {
			line = fmt.Sprintf("%s%-16s %s", cursorStyle.Render("> "), row, a.budgetInput.View())
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n")
	if a.editingBudget != "" {
		b.WriteString(hintStyle.Render("[enter] Save  [esc] Cancel"))
	} else {
		b.WriteString(hintStyle.Render("[↑/↓] Select  [enter] Edit  [S] Save overall as default") + "\n")
		b.WriteString(navHints())
	}
	return b.String()
}

// ---------------------------------------------------------------------------
// Assistant
// ---------------------------------------------------------------------------

func (a *App) renderAssistant() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Assistant"))
	b.WriteString("\n\n")

	if len(a.chatLog) == 0 {
		b.WriteString(hintStyle.Render("Ask about your spending, e.g. \"How much did I spend on Food?\""))
		b.WriteString("\n")
	}
	start := 0
	if len(a.chatLog) > 8 {
		start = len(a.chatLog) - 8
	}
	for _, entry := range a.chatLog[start:] {
		b.WriteString(cursorStyle.Render("You: ") + entry.question + "\n")
		b.WriteString(infoStyle.Render("FinAssist: ") + entry.answer + "\n\n")
	}

	b.WriteString("\n" + a.chatInput.View() + "\n\n")
	b.WriteString(hintStyle.Render("[enter] Ask  [esc] Back") + "\n")
	b.WriteString(navHints())
	return b.String()
}

// ---------------------------------------------------------------------------
// Import
// ---------------------------------------------------------------------------

func (a *App) renderImport() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Import Transactions"))
	b.WriteString("\n\n")
	b.WriteString("Load a CSV with datetime, amount, category, type and description columns.\n")
	b.WriteString("The current ledger is replaced; rows that fail to parse are skipped.\n\n")
	b.WriteString(fmt.Sprintf("Current source: %s (%d transactions)\n\n", a.source, len(a.txs)))
	b.WriteString("Path: " + a.importInput.View() + "\n\n")
	b.WriteString(hintStyle.Render("[enter] Load  [esc] Back") + "\n")
	b.WriteString(navHints())
	return b.String()
}

// ---------------------------------------------------------------------------
// Filters
// ---------------------------------------------------------------------------

func (a *App) renderFilters() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Filters"))
	b.WriteString("\n\n")

	types := ledger.Types(a.txs)
	items := a.filterItems()
	for i, item := range items {
		marker := "  "
		if i == a.filterCursor && a.editingDate == "" {
			marker = cursorStyle.Render("> ")
		}
		switch {
		case i < len(types):
			b.WriteString(fmt.Sprintf("%s%s %s\n", marker, checkbox(a.typeFilter[item]), item))
			if i == len(types)-1 {
				b.WriteString("\n")
			}
		case i < len(items)-2:
			b.WriteString(fmt.Sprintf("%s%s %s\n", marker, checkbox(a.catFilter[item]), item))
			if i == len(items)-3 {
				b.WriteString("\n")
			}
		default:
			bound := a.dateFrom
			editing := a.editingDate == "from"
			if item == "To date" {
				bound = a.dateTo
				editing = a.editingDate == "to"
			}
			value := "(any)"
			if !bound.IsZero() {
				value = bound.Format("2006-01-02")
			}
			if editing {
				b.WriteString(fmt.Sprintf("%s%-10s %s\n", cursorStyle.Render("> "), item+":", a.dateInput.View()))
			} else {
				b.WriteString(fmt.Sprintf("%s%-10s %s\n", marker, item+":", value))
			}
		}
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Matching transactions: %d of %d\n\n", len(a.filtered()), len(a.txs)))
	if a.editingDate != "" {
		b.WriteString(hintStyle.Render("[enter] Apply  [esc] Cancel (empty clears the bound)"))
	} else {
		b.WriteString(hintStyle.Render("[space] Toggle  [r] Reset  [↑/↓] Move") + "\n")
		b.WriteString(navHints())
	}
	return b.String()
}

func checkbox(on bool) string {
	if on {
		return successStyle.Render("[x]")
	}
	return "[ ]"
}
