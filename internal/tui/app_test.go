package tui

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/shatwik/finassist/internal/auth"
	"github.com/shatwik/finassist/internal/config"
	"github.com/shatwik/finassist/internal/database"
	"github.com/shatwik/finassist/internal/database/repository"
	"github.com/shatwik/finassist/internal/ledger"
)

func testApp(t *testing.T) *App {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.RunMigrations(db))

	svc := &auth.Service{Users: repository.NewUserRepo(db)}
	require.NoError(t, svc.EnsureDefault(context.Background()))

	cfg := config.Config{
		Budget: config.BudgetConfig{Overall: 10000, CategoryDefault: 1000},
		UI:     config.UIConfig{CurrencySymbol: "₹"},
	}
	return New(context.Background(), cfg, svc, ledger.DefaultDataset(), "default dataset", time.UTC)
}

// The auth commands run off the event loop, so they must only report an
// outcome; every model mutation belongs to Update. Here the command
// executes on its own goroutine while View renders concurrently, and the
// session only appears once Update consumes the message.
func TestLoginAppliesStateInUpdate(t *testing.T) {
	app := testApp(t)
	app.authInputs[0].SetValue(auth.DefaultUsername)
	app.authInputs[1].SetValue("12903478")

	cmd := app.submitAuth()
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	var msg tea.Msg
	for msg == nil {
		_ = app.View()
		select {
		case msg = <-done:
		default:
		}
	}

	require.IsType(t, loginOKMsg{}, msg)
	require.Nil(t, app.sess)
	require.Equal(t, viewLogin, app.state)

	_, _ = app.Update(msg)
	require.NotNil(t, app.sess)
	require.Equal(t, auth.DefaultUsername, app.sess.Username)
	require.Equal(t, viewDashboard, app.state)
	require.Equal(t, 10000.0, app.sess.Budget)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	app := testApp(t)
	app.authInputs[0].SetValue(auth.DefaultUsername)
	app.authInputs[1].SetValue("wrong")

	msg := app.submitAuth()()
	require.IsType(t, errMsg{}, msg)

	_, _ = app.Update(msg)
	require.Nil(t, app.sess)
	require.Equal(t, viewLogin, app.state)
	require.Contains(t, app.status, "invalid credentials")
}

func TestRegisterSwitchesBackToLogin(t *testing.T) {
	app := testApp(t)
	app.mode = authRegister
	app.setupAuthInputs()
	app.authInputs[0].SetValue("alice")
	app.authInputs[1].SetValue("secret")
	app.authInputs[2].SetValue("secret")

	msg := app.submitAuth()()
	require.IsType(t, registeredMsg{}, msg)
	require.Equal(t, authRegister, app.mode)

	_, _ = app.Update(msg)
	require.Equal(t, authLogin, app.mode)
	require.Len(t, app.authInputs, 2)

	ok, err := app.auth.Verify(context.Background(), "alice", "secret")
	require.NoError(t, err)
	require.True(t, ok)
}
