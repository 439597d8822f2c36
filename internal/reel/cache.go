package reel

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const snapshotKeyPrefix = "reviews:"

// Cache holds the review lists currently shown to the user, keyed by
// owner context ("user:<id>" or "movie:<id>"), alongside a durable
// badger snapshot of each list. Every mutating operation persists the
// snapshot before the in-memory list is swapped, so the snapshot never
// diverges from what the UI renders.
type Cache struct {
	db  *badger.DB
	log *zap.Logger

	mu    sync.Mutex
	lists map[string][]Review
}

func NewCache(db *badger.DB, log *zap.Logger) *Cache {
	return &Cache{
		db:    db,
		log:   log.With(zap.String("store", "reviewcache")),
		lists: make(map[string][]Review),
	}
}

// OwnerKeyUser builds the owner key for a user's own reel.
func OwnerKeyUser(userID string) string {
	return "user:" + userID
}

// Load returns the current list for the owner context. When memory is
// cold the durable snapshot is surfaced, which is what lets the UI show
// stale data immediately while the authoritative remote fetch runs.
func (c *Cache) Load(ownerKey string) []Review {
	c.mu.Lock()
	defer c.mu.Unlock()

	if list, ok := c.lists[ownerKey]; ok {
		return copyReviews(list)
	}

	list, err := c.readSnapshot(ownerKey)
	if err != nil {
		if !errors.Is(err, badger.ErrKeyNotFound) {
			c.log.Error("Failed to read review snapshot",
				zap.Error(err),
				zap.String("owner", ownerKey),
			)
		}
		return nil
	}

	c.lists[ownerKey] = list
	return copyReviews(list)
}

// ReplaceAll swaps the whole list for the owner context, typically after
// a full remote refresh.
func (c *Cache) ReplaceAll(ownerKey string, reviews []Review) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	list := copyReviews(reviews)
	if err := c.writeSnapshot(ownerKey, list); err != nil {
		return err
	}

	c.lists[ownerKey] = list
	return nil
}

// ApplyUpdate patches the matching entry in place. Ordering and all
// other entries are untouched; an id not present in the list is a no-op.
func (c *Cache) ApplyUpdate(ownerKey, reviewID string, p Patch) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	current, ok := c.lists[ownerKey]
	if !ok {
		var err error
		if current, err = c.readSnapshot(ownerKey); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			return err
		}
	}

	list := copyReviews(current)
	found := false
	for i := range list {
		if list[i].ID == reviewID {
			list[i].Comment = p.Comment
			list[i].Rating = p.Rating
			found = true
			break
		}
	}

	if !found {
		return nil
	}

	if err := c.writeSnapshot(ownerKey, list); err != nil {
		return err
	}

	c.lists[ownerKey] = list
	return nil
}

// ApplyDelete removes the matching entry and reports what was removed
// and where, so a failed two-phase delete can roll the removal back.
func (c *Cache) ApplyDelete(ownerKey, reviewID string) (*Review, int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	current, ok := c.lists[ownerKey]
	if !ok {
		var err error
		if current, err = c.readSnapshot(ownerKey); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil, -1, nil
			}
			return nil, -1, err
		}
	}

	pos := -1
	for i := range current {
		if current[i].ID == reviewID {
			pos = i
			break
		}
	}

	if pos == -1 {
		return nil, -1, nil
	}

	removed := current[pos]
	list := make([]Review, 0, len(current)-1)
	list = append(list, current[:pos]...)
	list = append(list, current[pos+1:]...)

	if err := c.writeSnapshot(ownerKey, list); err != nil {
		return nil, -1, err
	}

	c.lists[ownerKey] = list
	return &removed, pos, nil
}

// Restore reinserts a review removed by ApplyDelete at its old position.
func (c *Cache) Restore(ownerKey string, review Review, pos int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	current := c.lists[ownerKey]
	if pos < 0 || pos > len(current) {
		pos = len(current)
	}

	list := make([]Review, 0, len(current)+1)
	list = append(list, current[:pos]...)
	list = append(list, review)
	list = append(list, current[pos:]...)

	if err := c.writeSnapshot(ownerKey, list); err != nil {
		return err
	}

	c.lists[ownerKey] = list
	return nil
}

// InvalidateAll drops every list and snapshot. Wired to the session
// store's identity-change notification.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	err := c.db.Update(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.IteratorOptions{
			Prefix: []byte(snapshotKeyPrefix),
		})
		defer it.Close()

		var keys [][]byte
		for it.Rewind(); it.Valid(); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}

		for _, key := range keys {
			if err := txn.Delete(key); err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		c.log.Error("Failed to drop review snapshots", zap.Error(err))
	}

	c.lists = make(map[string][]Review)
	c.log.Info("Review cache invalidated")
}

func (c *Cache) readSnapshot(ownerKey string) ([]Review, error) {
	var list []Review

	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(snapshotKeyPrefix + ownerKey))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &list)
		})
	})

	if err != nil {
		return nil, err
	}

	return list, nil
}

func (c *Cache) writeSnapshot(ownerKey string, list []Review) error {
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("marshal review snapshot: %w", err)
	}

	err = c.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(snapshotKeyPrefix+ownerKey), data)
	})
	if err != nil {
		return fmt.Errorf("persist review snapshot for %s: %w", ownerKey, err)
	}

	return nil
}

func copyReviews(list []Review) []Review {
	out := make([]Review, len(list))
	copy(out, list)
	return out
}
