package reel

import (
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestDB(t *testing.T) *badger.DB {
	t.Helper()

	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func newTestSession(t *testing.T, db *badger.DB, userID string) *SessionStore {
	t.Helper()

	sess := NewSessionStore(db, zap.NewNop())
	if userID != "" {
		err := sess.Set(User{
			ID:       userID,
			Username: "tester",
			Email:    "tester@example.com",
		}, "token-"+userID)
		require.NoError(t, err)
	}

	return sess
}
