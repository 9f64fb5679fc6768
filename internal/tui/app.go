// Package tui is the presentation layer: a Bubble Tea program with a
// login gate and tabbed views over the in-memory ledger. It only
// consumes the analytics/forecast/nudge/chat packages; every failure
// degrades to a status message, never a crash.
package tui

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/shatwik/finassist/internal/analytics"
	"github.com/shatwik/finassist/internal/auth"
	"github.com/shatwik/finassist/internal/chat"
	"github.com/shatwik/finassist/internal/config"
	"github.com/shatwik/finassist/internal/ledger"
	"github.com/shatwik/finassist/internal/session"
)

type appState string

const (
	viewLogin     appState = "login"
	viewDashboard appState = "dashboard"
	viewTrends    appState = "trends"
	viewBudgets   appState = "budgets"
	viewAssistant appState = "assistant"
	viewImport    appState = "import"
	viewFilters   appState = "filters"
)

type authMode string

const (
	authLogin    authMode = "login"
	authRegister authMode = "register"
	authReset    authMode = "reset"
)

// overallKey marks the overall ceiling in the budgets view cursor.
const overallKey = "Overall"

type statusMsg string

type errMsg struct{ err error }

// auth command outcomes. Commands run on their own goroutine, so they
// only report; the model mutation happens in Update.
type loginOKMsg struct{ username string }

type registeredMsg struct{}

type resetOKMsg struct{}

type chatEntry struct {
	question string
	answer   string
}

// App ties together views.
type App struct {
	ctx  context.Context
	cfg  config.Config
	auth *auth.Service
	sess *session.Session
	loc  *time.Location
	now  func() time.Time

	txs       []ledger.Transaction
	source    string
	assistant chat.Assistant

	state  appState
	status string
	width  int
	height int

	// login form
	mode       authMode
	authInputs []textinput.Model
	authFocus  int

	// filters
	typeFilter   map[string]bool
	catFilter    map[string]bool
	filterCursor int
	dateFrom     time.Time
	dateTo       time.Time
	dateInput    textinput.Model
	editingDate  string // "", "from", "to"

	// budgets
	budgetCursor  int
	budgetInput   textinput.Model
	editingBudget string // "", overallKey, or a category name

	// assistant
	chatInput textinput.Model
	chatLog   []chatEntry

	// import
	importInput textinput.Model
}

// New builds the app. txs is the starting ledger (uploaded, polled or
// bundled); source labels where it came from.
func New(ctx context.Context, cfg config.Config, authSvc *auth.Service, txs []ledger.Transaction, source string, loc *time.Location) *App {
	if loc == nil {
		loc = time.Local
	}
	now := func() time.Time { return time.Now().In(loc) }

	a := &App{
		ctx:       ctx,
		cfg:       cfg,
		auth:      authSvc,
		loc:       loc,
		now:       now,
		txs:       txs,
		source:    source,
		assistant: chat.Assistant{Currency: cfg.UI.CurrencySymbol, Now: now},
		state:     viewLogin,
		mode:      authLogin,
		width:     80,
		height:    24,
	}
	a.rebuildFilters()
	a.setupAuthInputs()

	a.chatInput = newInput("e.g. How much did I spend on Food?", 64)
	a.importInput = newInput("path/to/transactions.csv", 64)
	a.budgetInput = newInput("amount", 12)
	a.dateInput = newInput("YYYY-MM-DD", 12)
	return a
}

func newInput(placeholder string, width int) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = 128
	in.Width = width
	return in
}

func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

// ---------------------------------------------------------------------------
// Update
// ---------------------------------------------------------------------------

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		return a, nil
	case statusMsg:
		a.status = string(msg)
		return a, nil
	case errMsg:
		a.status = errorStyle.Render(msg.err.Error())
		return a, nil
	case loginOKMsg:
		a.login(msg.username)
		a.status = successStyle.Render("Welcome back, " + msg.username + "!")
		return a, nil
	case registeredMsg:
		a.mode = authLogin
		a.setupAuthInputs()
		a.status = successStyle.Render("Registration successful! You can now log in.")
		return a, nil
	case resetOKMsg:
		a.mode = authLogin
		a.setupAuthInputs()
		a.status = successStyle.Render("Password reset successfully!")
		return a, nil
	case tea.KeyMsg:
		return a.handleKey(msg)
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return a, tea.Quit
	}
	switch a.state {
	case viewLogin:
		return a.handleLoginKey(msg)
	case viewDashboard, viewTrends:
		return a.handleBrowseKey(msg)
	case viewBudgets:
		return a.handleBudgetKey(msg)
	case viewAssistant:
		return a.handleAssistantKey(msg)
	case viewImport:
		return a.handleImportKey(msg)
	case viewFilters:
		return a.handleFilterKey(msg)
	}
	return a, nil
}

// switchView is shared by every logged-in view.
func (a *App) switchView(msg tea.KeyMsg) (bool, appState) {
	switch msg.String() {
	case "d":
		return true, viewDashboard
	case "t":
		return true, viewTrends
	case "b":
		return true, viewBudgets
	case "a":
		return true, viewAssistant
	case "i":
		return true, viewImport
	case "f":
		return true, viewFilters
	}
	return false, a.state
}

func (a *App) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "L":
		a.logout()
		return a, nil
	}
	if ok, next := a.switchView(msg); ok {
		a.state = next
		a.status = ""
	}
	return a, nil
}

// --- login ---

func (a *App) setupAuthInputs() {
	labels := authFieldLabels(a.mode)
	a.authInputs = make([]textinput.Model, len(labels))
	for i, label := range labels {
		in := newInput(label, 32)
		if strings.Contains(strings.ToLower(label), "password") {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '•'
		}
		a.authInputs[i] = in
	}
	a.authFocus = 0
	a.authInputs[0].Focus()
}

func authFieldLabels(mode authMode) []string {
	switch mode {
	case authRegister:
		return []string{"Username", "Password", "Confirm Password"}
	case authReset:
		return []string{"Username", "Old Password", "New Password", "Confirm New Password"}
	default:
		return []string{"Username", "Password"}
	}
}

func (a *App) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return a, tea.Quit
	case "ctrl+r":
		switch a.mode {
		case authLogin:
			a.mode = authRegister
		case authRegister:
			a.mode = authReset
		default:
			a.mode = authLogin
		}
		a.status = ""
		a.setupAuthInputs()
		return a, nil
	case "tab", "down":
		a.focusAuthField(a.authFocus + 1)
		return a, nil
	case "shift+tab", "up":
		a.focusAuthField(a.authFocus - 1)
		return a, nil
	case "enter":
		if a.authFocus < len(a.authInputs)-1 {
			a.focusAuthField(a.authFocus + 1)
			return a, nil
		}
		return a, a.submitAuth()
	}
	var cmd tea.Cmd
	a.authInputs[a.authFocus], cmd = a.authInputs[a.authFocus].Update(msg)
	return a, cmd
}

func (a *App) focusAuthField(i int) {
	n := len(a.authInputs)
	i = ((i % n) + n) % n
	a.authInputs[a.authFocus].Blur()
	a.authFocus = i
	a.authInputs[i].Focus()
}

func (a *App) submitAuth() tea.Cmd {
	values := make([]string, len(a.authInputs))
	for i := range a.authInputs {
		values[i] = strings.TrimSpace(a.authInputs[i].Value())
	}
	mode := a.mode
	svc, ctx := a.auth, a.ctx
	return func() tea.Msg {
		switch mode {
		case authRegister:
			if err := svc.Register(ctx, values[0], values[1], values[2]); err != nil {
				return errMsg{err}
			}
			return registeredMsg{}
		case authReset:
			if err := svc.Reset(ctx, values[0], values[1], values[2], values[3]); err != nil {
				return errMsg{err}
			}
			return resetOKMsg{}
		default:
			ok, err := svc.Verify(ctx, values[0], values[1])
			if err != nil {
				return errMsg{err}
			}
			if !ok {
				return errMsg{auth.ErrInvalidCredentials}
			}
			return loginOKMsg{username: values[0]}
		}
	}
}

func (a *App) login(username string) {
	a.sess = session.New(username, ledger.Categories(a.txs))
	a.sess.Budget = a.cfg.Budget.Overall
	for cat := range a.sess.CategoryBudgets {
		a.sess.CategoryBudgets[cat] = a.cfg.Budget.CategoryDefault
	}
	a.state = viewDashboard
}

func (a *App) logout() {
	if a.sess != nil {
		a.sess.Clear()
		a.sess = nil
	}
	a.state = viewLogin
	a.mode = authLogin
	a.status = "Logged out."
	a.setupAuthInputs()
}

// --- budgets ---

func (a *App) budgetRows() []string {
	rows := []string{overallKey}
	return append(rows, ledger.Categories(a.txs)...)
}

func (a *App) handleBudgetKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.editingBudget != "" {
		switch msg.String() {
		case "esc":
			a.editingBudget = ""
			a.budgetInput.Blur()
			return a, nil
		case "enter":
			v, err := strconv.ParseFloat(strings.TrimSpace(a.budgetInput.Value()), 64)
			if err != nil || v < 0 {
				a.status = errorStyle.Render("Enter a non-negative number.")
				return a, nil
			}
			if a.editingBudget == overallKey {
				a.sess.SetBudget(v)
			} else {
				a.sess.SetCategoryBudget(a.editingBudget, v)
			}
			a.status = fmt.Sprintf("Budget updated to %s%.0f", a.cfg.UI.CurrencySymbol, v)
			a.editingBudget = ""
			a.budgetInput.Blur()
			return a, nil
		}
		var cmd tea.Cmd
		a.budgetInput, cmd = a.budgetInput.Update(msg)
		return a, cmd
	}

	rows := a.budgetRows()
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "L":
		a.logout()
		return a, nil
	case "S":
		// budgets themselves live only in the session; this persists the
		// current overall ceiling as the default for future sessions
		a.cfg.Budget.Overall = a.sess.Budget
		if err := config.Save(a.cfg); err != nil {
			a.status = errorStyle.Render("Save failed: " + err.Error())
		} else {
			a.status = successStyle.Render("Saved as default for future sessions.")
		}
		return a, nil
	case "up", "k":
		if a.budgetCursor > 0 {
			a.budgetCursor--
		}
		return a, nil
	case "down", "j":
		if a.budgetCursor < len(rows)-1 {
			a.budgetCursor++
		}
		return a, nil
	case "enter":
		a.editingBudget = rows[a.budgetCursor]
		a.budgetInput.SetValue("")
		a.budgetInput.Focus()
		return a, nil
	}
	if ok, next := a.switchView(msg); ok {
		a.state = next
		a.status = ""
	}
	return a, nil
}

// --- assistant ---

func (a *App) handleAssistantKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if a.chatInput.Focused() {
			a.chatInput.Blur()
			return a, nil
		}
		a.state = viewDashboard
		return a, nil
	case "enter":
		if !a.chatInput.Focused() {
			a.chatInput.Focus()
			return a, nil
		}
		question := strings.TrimSpace(a.chatInput.Value())
		if question == "" {
			return a, nil
		}
		answer := a.assistant.Respond(question, a.filtered())
		a.chatLog = append(a.chatLog, chatEntry{question: question, answer: answer})
		a.chatInput.SetValue("")
		return a, nil
	}
	if !a.chatInput.Focused() {
		switch msg.String() {
		case "q":
			return a, tea.Quit
		case "L":
			a.logout()
			return a, nil
		}
		if ok, next := a.switchView(msg); ok {
			a.state = next
			a.status = ""
			return a, nil
		}
		a.chatInput.Focus()
	}
	var cmd tea.Cmd
	a.chatInput, cmd = a.chatInput.Update(msg)
	return a, cmd
}

// --- import ---

func (a *App) handleImportKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if a.importInput.Focused() {
			a.importInput.Blur()
			return a, nil
		}
		a.state = viewDashboard
		return a, nil
	case "enter":
		if !a.importInput.Focused() {
			a.importInput.Focus()
			return a, nil
		}
		path := strings.TrimSpace(a.importInput.Value())
		if path == "" {
			return a, nil
		}
		a.importCSV(path)
		a.importInput.Blur()
		return a, nil
	}
	if !a.importInput.Focused() {
		switch msg.String() {
		case "q":
			return a, tea.Quit
		case "L":
			a.logout()
			return a, nil
		}
		if ok, next := a.switchView(msg); ok {
			a.state = next
			a.status = ""
			return a, nil
		}
		a.importInput.Focus()
	}
	var cmd tea.Cmd
	a.importInput, cmd = a.importInput.Update(msg)
	return a, cmd
}

// importCSV replaces the in-memory ledger. A file missing required
// columns is rejected and the bundled dataset takes its place; other
// failures keep the current data.
func (a *App) importCSV(path string) {
	res, err := ledger.LoadFile(path)
	switch {
	case errors.Is(err, ledger.ErrMissingColumns):
		a.txs = ledger.DefaultDataset()
		a.source = "default dataset"
		a.rebuildFilters()
		a.refreshSessionCategories()
		a.status = errorStyle.Render("Uploaded file is missing required columns.") +
			" Using default dataset."
	case err != nil:
		a.status = errorStyle.Render("Import failed: " + err.Error())
	default:
		a.txs = res.Transactions
		a.source = path
		a.rebuildFilters()
		a.refreshSessionCategories()
		note := ""
		if res.Skipped > 0 {
			note = fmt.Sprintf(" (%d row(s) skipped)", res.Skipped)
		}
		a.status = successStyle.Render(
			fmt.Sprintf("File uploaded and loaded successfully! %d transaction(s)%s", len(res.Transactions), note))
	}
}

// refreshSessionCategories gives newly observed categories a default
// ceiling without touching ones the user already set.
func (a *App) refreshSessionCategories() {
	if a.sess == nil {
		return
	}
	for _, cat := range ledger.Categories(a.txs) {
		if _, ok := a.sess.CategoryBudgets[cat]; !ok {
			a.sess.CategoryBudgets[cat] = a.cfg.Budget.CategoryDefault
		}
	}
	if a.budgetCursor >= len(a.budgetRows()) {
		a.budgetCursor = 0
	}
}

// --- filters ---

func (a *App) rebuildFilters() {
	a.typeFilter = map[string]bool{}
	for _, t := range ledger.Types(a.txs) {
		a.typeFilter[t] = true
	}
	a.catFilter = map[string]bool{}
	for _, c := range ledger.Categories(a.txs) {
		a.catFilter[c] = true
	}
	a.dateFrom = time.Time{}
	a.dateTo = time.Time{}
	a.filterCursor = 0
}

// filterItems lists toggle rows: types, then categories, then the two
// date bounds.
func (a *App) filterItems() []string {
	items := ledger.Types(a.txs)
	items = append(items, ledger.Categories(a.txs)...)
	return append(items, "From date", "To date")
}

func (a *App) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.editingDate != "" {
		switch msg.String() {
		case "esc":
			a.editingDate = ""
			a.dateInput.Blur()
			return a, nil
		case "enter":
			raw := strings.TrimSpace(a.dateInput.Value())
			if raw == "" {
				if a.editingDate == "from" {
					a.dateFrom = time.Time{}
				} else {
					a.dateTo = time.Time{}
				}
			} else {
				d, err := time.ParseInLocation("2006-01-02", raw, a.loc)
				if err != nil {
					a.status = errorStyle.Render("Dates use YYYY-MM-DD.")
					return a, nil
				}
				if a.editingDate == "from" {
					a.dateFrom = d
				} else {
					a.dateTo = d
				}
			}
			a.editingDate = ""
			a.dateInput.Blur()
			a.status = ""
			return a, nil
		}
		var cmd tea.Cmd
		a.dateInput, cmd = a.dateInput.Update(msg)
		return a, cmd
	}

	items := a.filterItems()
	types := ledger.Types(a.txs)
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "L":
		a.logout()
		return a, nil
	case "up", "k":
		if a.filterCursor > 0 {
			a.filterCursor--
		}
		return a, nil
	case "down", "j":
		if a.filterCursor < len(items)-1 {
			a.filterCursor++
		}
		return a, nil
	case "r":
		a.rebuildFilters()
		a.status = "Filters reset."
		return a, nil
	case " ", "enter":
		switch {
		case a.filterCursor < len(types):
			name := items[a.filterCursor]
			a.typeFilter[name] = !a.typeFilter[name]
		case a.filterCursor < len(items)-2:
			name := items[a.filterCursor]
			a.catFilter[name] = !a.catFilter[name]
		default:
			if a.filterCursor == len(items)-2 {
				a.editingDate = "from"
			} else {
				a.editingDate = "to"
			}
			a.dateInput.SetValue("")
			a.dateInput.Focus()
		}
		return a, nil
	}
	if ok, next := a.switchView(msg); ok {
		a.state = next
		a.status = ""
	}
	return a, nil
}

// filtered applies the sidebar filters to the ledger. When every toggle
// in a group is on, the group is unconstrained so untagged rows still
// show.
func (a *App) filtered() []ledger.Transaction {
	p := analytics.Predicate{
		Types:      enabledOrNil(a.typeFilter),
		Categories: enabledOrNil(a.catFilter),
	}
	txs := analytics.Filter(a.txs, p)
	if a.dateFrom.IsZero() && a.dateTo.IsZero() {
		return txs
	}
	from, to := a.dateFrom, a.dateTo
	if from.IsZero() {
		from = time.Date(1, 1, 1, 0, 0, 0, 0, a.loc)
	}
	if to.IsZero() {
		to = time.Date(9999, 1, 1, 0, 0, 0, 0, a.loc)
	}
	return analytics.FilterDateRange(txs, from, to)
}

func enabledOrNil(set map[string]bool) []string {
	all := true
	var on []string
	for name, enabled := range set {
		if enabled {
			on = append(on, name)
		} else {
			all = false
		}
	}
	if all {
		return nil
	}
	sort.Strings(on)
	return on
}
