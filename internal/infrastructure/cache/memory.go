package cache

import (
	"sync"
	"time"

	"github.com/meetinglabs/meeting-summarizer/internal/domain/entities"
)

// MemoryStore is an in-memory meeting record cache with expiration, used as
// a read-through cache for lookups. Records are immutable after insert, so
// cached entries can never go stale within their TTL.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]*memoryItem
}

type memoryItem struct {
	record     *entities.MeetingRecord
	expireTime time.Time
}

// NewMemoryStore creates a new in-memory store
func NewMemoryStore() *MemoryStore {
	store := &MemoryStore{
		items: make(map[string]*memoryItem),
	}

	// Cleanup goroutine removes expired items
	go store.cleanupExpired()

	return store
}

// Set stores a record under a key with expiration
func (ms *MemoryStore) Set(key string, record *entities.MeetingRecord, expiration time.Duration) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.items[key] = &memoryItem{
		record:     record,
		expireTime: time.Now().Add(expiration),
	}
}

// Get retrieves a record by key (second return is false when not found or
// expired)
func (ms *MemoryStore) Get(key string) (*entities.MeetingRecord, bool) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	item, exists := ms.items[key]
	if !exists {
		return nil, false
	}

	if time.Now().After(item.expireTime) {
		return nil, false
	}

	return item.record, true
}

// Delete removes a key
func (ms *MemoryStore) Delete(key string) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	delete(ms.items, key)
}

// cleanupExpired periodically removes expired items
func (ms *MemoryStore) cleanupExpired() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		ms.mu.Lock()
		now := time.Now()
		for key, item := range ms.items {
			if now.After(item.expireTime) {
				delete(ms.items, key)
			}
		}
		ms.mu.Unlock()
	}
}
