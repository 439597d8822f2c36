package reel

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// Badger keys for the session slot. lastOwnerKey survives logout so a
// later login can tell whether the cached reviews belong to someone else.
const (
	currentSessionKey = "session:current"
	lastOwnerKey      = "session:last_user"
)

// User is the minimal identity the review layer needs. It is produced
// by the login endpoint, never by this package.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type sessionRecord struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// SessionStore is the explicit session object injected into the store
// client and cache facade. It holds the current identity in a durable
// slot and notifies observers whenever the owning user changes, which
// is what keeps one user's cached reviews from leaking to the next.
type SessionStore struct {
	db  *badger.DB
	log *zap.Logger

	mu        sync.Mutex
	observers []func()
}

func NewSessionStore(db *badger.DB, log *zap.Logger) *SessionStore {
	return &SessionStore{
		db:  db,
		log: log.With(zap.String("store", "session")),
	}
}

// OnIdentityChange registers fn to run whenever the signed-in user id
// changes. Observers run synchronously inside Set.
func (s *SessionStore) OnIdentityChange(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

// Current returns the signed-in user and session token. ok is false
// when nobody is signed in; every mutating review operation is gated on it.
func (s *SessionStore) Current() (*User, string, bool) {
	var rec sessionRecord

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(currentSessionKey))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})

	if err != nil {
		if !errors.Is(err, badger.ErrKeyNotFound) {
			s.log.Error("Failed to read session slot", zap.Error(err))
		}
		return nil, "", false
	}

	return &rec.User, rec.Token, true
}

// Set stores the signed-in identity. When the user id differs from the
// last identity that owned the slot, registered observers fire so stale
// cached data is invalidated before the new user sees anything.
func (s *SessionStore) Set(user User, token string) error {
	if user.ID == "" {
		return fmt.Errorf("set session: user id is empty")
	}

	changed := false

	err := s.db.Update(func(txn *badger.Txn) error {
		prevOwner := ""
		item, err := txn.Get([]byte(lastOwnerKey))
		if err == nil {
			if err := item.Value(func(val []byte) error {
				prevOwner = string(val)
				return nil
			}); err != nil {
				return err
			}
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		changed = prevOwner != "" && prevOwner != user.ID

		data, err := json.Marshal(sessionRecord{User: user, Token: token})
		if err != nil {
			return fmt.Errorf("marshal session: %w", err)
		}

		if err := txn.Set([]byte(currentSessionKey), data); err != nil {
			return err
		}
		return txn.Set([]byte(lastOwnerKey), []byte(user.ID))
	})

	if err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	s.log.Info("Session identity set",
		zap.String("user_id", user.ID),
		zap.Bool("identity_changed", changed),
	)

	if changed {
		s.notify()
	}

	return nil
}

// Clear signs the current user out. The last-owner marker is kept so the
// next Set can still detect an identity change.
func (s *SessionStore) Clear() error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(currentSessionKey))
	})
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	s.log.Info("Session cleared")
	return nil
}

func (s *SessionStore) notify() {
	s.mu.Lock()
	observers := make([]func(), len(s.observers))
	copy(observers, s.observers)
	s.mu.Unlock()

	for _, fn := range observers {
		fn()
	}
}
