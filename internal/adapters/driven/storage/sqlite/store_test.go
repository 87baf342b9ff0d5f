package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bdlens/bdlens-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/bdlens/bdlens-cli/internal/core/domain"
	"github.com/bdlens/bdlens-cli/internal/core/ports/driven"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, store)
	t.Cleanup(func() {
		assert.NoError(t, store.Close())
	})
	return store
}

func TestNewStore_CreatesDatabase(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, filepath.Join(dir, DatabaseFile), store.Path())
	_, err = os.Stat(store.Path())
	assert.NoError(t, err)
}

func TestMigrate_RecordsVersions(t *testing.T) {
	store := setupTestStore(t)

	var version int
	require.NoError(t, store.db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version))
	assert.Equal(t, 2, version)

	// Running again is a no-op
	require.NoError(t, store.migrate(migrations.FS))
	var count int
	require.NoError(t, store.db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, 2, count)
}

func TestNewStore_Reopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.SessionStore().SaveSession(ctx, driven.Session{Origin: "http://localhost:8000", Token: "tok"}))
	require.NoError(t, store.Close())

	store, err = NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	got, err := store.SessionStore().GetSession(ctx, "http://localhost:8000")
	require.NoError(t, err)
	assert.Equal(t, "tok", got.Token)
}

func TestSessionStore_RoundTrip(t *testing.T) {
	store := setupTestStore(t).SessionStore()
	ctx := context.Background()
	expires := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)

	require.NoError(t, store.SaveSession(ctx, driven.Session{
		Origin:    "https://api.bdlens.gov.bd",
		Token:     "abc",
		ExpiresAt: expires,
	}))

	got, err := store.GetSession(ctx, "https://api.bdlens.gov.bd")
	require.NoError(t, err)
	assert.Equal(t, "abc", got.Token)
	assert.True(t, expires.Equal(got.ExpiresAt))
	assert.False(t, got.UpdatedAt.IsZero())
}

func TestSessionStore_SessionCookieHasNoExpiry(t *testing.T) {
	store := setupTestStore(t).SessionStore()
	ctx := context.Background()

	require.NoError(t, store.SaveSession(ctx, driven.Session{Origin: "http://localhost:8000", Token: "abc"}))
	got, err := store.GetSession(ctx, "http://localhost:8000")
	require.NoError(t, err)
	assert.True(t, got.ExpiresAt.IsZero())
}

func TestSessionStore_Replace(t *testing.T) {
	store := setupTestStore(t).SessionStore()
	ctx := context.Background()

	require.NoError(t, store.SaveSession(ctx, driven.Session{Origin: "o", Token: "first"}))
	require.NoError(t, store.SaveSession(ctx, driven.Session{Origin: "o", Token: "second"}))

	got, err := store.GetSession(ctx, "o")
	require.NoError(t, err)
	assert.Equal(t, "second", got.Token)
}

func TestSessionStore_NotFoundAndDelete(t *testing.T) {
	store := setupTestStore(t).SessionStore()
	ctx := context.Background()

	_, err := store.GetSession(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, store.SaveSession(ctx, driven.Session{Origin: "o", Token: "t"}))
	require.NoError(t, store.DeleteSession(ctx, "o"))
	_, err = store.GetSession(ctx, "o")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Deleting twice is fine
	assert.NoError(t, store.DeleteSession(ctx, "o"))
}

func TestSessionStore_RequiresOrigin(t *testing.T) {
	store := setupTestStore(t).SessionStore()
	err := store.SaveSession(context.Background(), driven.Session{Token: "t"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUploadLedger(t *testing.T) {
	ledger := setupTestStore(t).UploadLedger()
	ctx := context.Background()

	_, err := ledger.FindUpload(ctx, "deadbeef")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, ledger.RecordUpload(ctx, driven.UploadRecord{
		Checksum:   "deadbeef",
		Path:       "/inbox/budget.pdf",
		DocumentID: 42,
	}))

	rec, err := ledger.FindUpload(ctx, "deadbeef")
	require.NoError(t, err)
	assert.Equal(t, int64(42), rec.DocumentID)
	assert.Equal(t, "/inbox/budget.pdf", rec.Path)
	assert.False(t, rec.UploadedAt.IsZero())

	assert.ErrorIs(t, ledger.RecordUpload(ctx, driven.UploadRecord{}), domain.ErrInvalidInput)
}
