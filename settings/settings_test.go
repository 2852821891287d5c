package settings

import (
	"path/filepath"
	"testing"

	"github.com/postpilot/postpilot/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *storage.DB {
	t.Helper()

	db, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Migrate()
	require.NoError(t, err)

	return db
}

func TestGeminiKeyRoundTrip(t *testing.T) {
	db := openTestDB(t)

	service := NewService(db.Settings)
	assert.Empty(t, service.GeminiKey(), "unset key defaults to empty string")

	require.NoError(t, service.SetGeminiKey("gem123"))
	assert.Equal(t, "gem123", service.GeminiKey())

	// a fresh service re-seeds from the store, like a reload
	reloaded := NewService(db.Settings)
	assert.Equal(t, "gem123", reloaded.GeminiKey())
}

func TestGeminiKeyIsJSONEncodedAtRest(t *testing.T) {
	db := openTestDB(t)

	service := NewService(db.Settings)
	require.NoError(t, service.SetGeminiKey(`with "quotes"`))

	stored, err := db.Settings.GetKey("gemini_api_key")
	require.NoError(t, err)
	assert.Equal(t, `"with \"quotes\""`, stored)

	reloaded := NewService(db.Settings)
	assert.Equal(t, `with "quotes"`, reloaded.GeminiKey())
}

func TestLegacyUnencodedKeyIsReadable(t *testing.T) {
	db := openTestDB(t)

	// values written before JSON encoding was introduced
	require.NoError(t, db.Settings.SetKey("gemini_api_key", "raw-legacy-key"))

	service := NewService(db.Settings)
	assert.Equal(t, "raw-legacy-key", service.GeminiKey())
}

func TestAuthToken(t *testing.T) {
	db := openTestDB(t)

	service := NewService(db.Settings)
	assert.Empty(t, service.Token())

	require.NoError(t, service.SetToken("tok123"))
	assert.Equal(t, "tok123", service.Token())

	reloaded := NewService(db.Settings)
	assert.Equal(t, "tok123", reloaded.Token())

	require.NoError(t, service.ClearToken())
	assert.Empty(t, service.Token())

	cleared := NewService(db.Settings)
	assert.Empty(t, cleared.Token())

	// clearing an absent token is not an error
	require.NoError(t, service.ClearToken())
}
