package auth

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shatwik/finassist/internal/database"
	"github.com/shatwik/finassist/internal/database/repository"
)

func testService(t *testing.T) *Service {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.RunMigrations(db))
	return &Service{Users: repository.NewUserRepo(db)}
}

func TestEnsureDefaultProvisionsOnce(t *testing.T) {
	ctx := context.Background()
	svc := testService(t)

	require.NoError(t, svc.EnsureDefault(ctx))
	ok, err := svc.Verify(ctx, DefaultUsername, "12903478")
	require.NoError(t, err)
	require.True(t, ok)

	// second call is a no-op, not a duplicate insert
	require.NoError(t, svc.EnsureDefault(ctx))
	n, err := svc.Users.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestEnsureDefaultSkipsNonEmptyStore(t *testing.T) {
	ctx := context.Background()
	svc := testService(t)

	require.NoError(t, svc.Register(ctx, "alice", "secret", "secret"))
	require.NoError(t, svc.EnsureDefault(ctx))

	ok, err := svc.Verify(ctx, DefaultUsername, "12903478")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestVerify(t *testing.T) {
	ctx := context.Background()
	svc := testService(t)
	require.NoError(t, svc.Register(ctx, "alice", "secret", "secret"))

	ok, err := svc.Verify(ctx, "alice", "secret")
	require.NoError(t, err)
	require.True(t, ok)

	// wrong password and unknown user both answer false without error
	ok, err = svc.Verify(ctx, "alice", "wrong")
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = svc.Verify(ctx, "nobody", "secret")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()
	svc := testService(t)

	require.ErrorIs(t, svc.Register(ctx, "", "a", "a"), ErrFieldsRequired)
	require.ErrorIs(t, svc.Register(ctx, "bob", "", ""), ErrFieldsRequired)
	require.ErrorIs(t, svc.Register(ctx, "bob", "a", "b"), ErrPasswordMismatch)

	require.NoError(t, svc.Register(ctx, "bob", "hunter2", "hunter2"))
	require.ErrorIs(t, svc.Register(ctx, "bob", "other", "other"), ErrUsernameTaken)
}

func TestRegisterStoresHashNotPassword(t *testing.T) {
	ctx := context.Background()
	svc := testService(t)
	require.NoError(t, svc.Register(ctx, "carol", "plaintext", "plaintext"))

	u, err := svc.Users.Get(ctx, "carol")
	require.NoError(t, err)
	require.NotNil(t, u)
	require.NotEqual(t, "plaintext", u.PasswordHash)
	require.NotContains(t, u.PasswordHash, "plaintext")
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	svc := testService(t)
	require.NoError(t, svc.Register(ctx, "dave", "oldpass", "oldpass"))

	require.ErrorIs(t, svc.Reset(ctx, "dave", "wrong", "newpass", "newpass"), ErrInvalidCredentials)
	require.ErrorIs(t, svc.Reset(ctx, "dave", "oldpass", "newpass", "different"), ErrPasswordMismatch)
	require.ErrorIs(t, svc.Reset(ctx, "dave", "oldpass", "", ""), ErrFieldsRequired)

	require.NoError(t, svc.Reset(ctx, "dave", "oldpass", "newpass", "newpass"))

	ok, err := svc.Verify(ctx, "dave", "newpass")
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = svc.Verify(ctx, "dave", "oldpass")
	require.NoError(t, err)
	require.False(t, ok)
}
