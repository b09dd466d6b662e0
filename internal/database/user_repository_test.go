package database

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTestDB points the package connection at an in-memory sqlite database.
func openTestDB(t *testing.T) {
	t.Helper()
	db, err := sqlx.Connect("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	DB = db
	require.NoError(t, initializeSchema())
	t.Cleanup(func() {
		db.Close()
		DB = nil
	})
}

func TestGetOrCreateAppliesCallerDefaults(t *testing.T) {
	openTestDB(t)
	repo := NewUserRepository()
	ctx := context.Background()

	user, err := repo.GetOrCreate(ctx, 42, "sam", "Sam", "", "B1", 15)
	require.NoError(t, err)
	assert.Equal(t, "B1", user.Level)
	assert.Equal(t, 15, user.DailyWords)

	// A second contact returns the stored profile untouched by new defaults.
	again, err := repo.GetOrCreate(ctx, 42, "sam", "Sam", "", "A1", 5)
	require.NoError(t, err)
	assert.Equal(t, "B1", again.Level)
	assert.Equal(t, 15, again.DailyWords)
}
