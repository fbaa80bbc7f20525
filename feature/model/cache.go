package model

import (
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// cacheEntry is one cached snapshot plus its build time.
type cacheEntry struct {
	snap  *Snapshot
	built time.Time
}

// snapshotCache keeps parsed snapshots keyed by object key, so repeated
// comparisons against the same model version skip the storage round trip and
// the reparse. Singleflight collapses concurrent builds of the same key into
// one. A TTL of zero disables caching entirely.
type snapshotCache struct {
	mu      sync.RWMutex
	entries map[string]*cacheEntry
	sf      singleflight.Group
	ttl     time.Duration
}

func newSnapshotCache(ttl time.Duration) *snapshotCache {
	return &snapshotCache{
		entries: make(map[string]*cacheEntry),
		ttl:     ttl,
	}
}

func (c *snapshotCache) expired(e *cacheEntry) bool {
	if c.ttl == 0 {
		return true
	}
	return time.Since(e.built) > c.ttl
}

// getOrBuild returns the cached snapshot for key, building it with build when
// missing or expired. Concurrent callers for the same key share one build.
func (c *snapshotCache) getOrBuild(key string, build func() (*Snapshot, error)) (*Snapshot, error) {
	c.mu.RLock()
	entry, exists := c.entries[key]
	c.mu.RUnlock()

	if exists && !c.expired(entry) {
		return entry.snap, nil
	}

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		// Re-check after winning the flight: a concurrent builder may have
		// stored a fresh entry while this caller was queued.
		c.mu.RLock()
		entry, exists := c.entries[key]
		c.mu.RUnlock()
		if exists && !c.expired(entry) {
			return entry.snap, nil
		}

		snap, err := build()
		if err != nil {
			return nil, err
		}

		if c.ttl > 0 {
			c.mu.Lock()
			c.entries[key] = &cacheEntry{snap: snap, built: time.Now()}
			c.mu.Unlock()
		}
		return snap, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*Snapshot), nil
}

// invalidate drops the cached snapshot for key. Called on re-upload and
// delete so a stale parse can never shadow the stored document.
func (c *snapshotCache) invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}
