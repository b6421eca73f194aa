// Package cache provides an in-memory, TTL-bound store of identities keyed by token digest.
package cache

import (
	"context"
	"sync"
	"time"

	authDomain "github.com/allisson/assettrack/internal/auth/domain"
)

// entry is a cached identity with its absolute expiry.
type entry struct {
	identity  *authDomain.Identity
	expiresAt time.Time
}

// TokenCache maps token digests to identities. Entries expire passively on read and are
// swept by a janitor goroutine when a cleanup interval is configured.
type TokenCache struct {
	mu         sync.RWMutex
	entries    map[string]entry
	defaultTTL time.Duration
	now        func() time.Time
	stop       chan struct{}
	done       chan struct{}
	closeOnce  sync.Once
}

// NewTokenCache creates a cache with defaultTTL. A positive cleanupInterval starts a janitor
// goroutine that must be stopped with Close.
func NewTokenCache(defaultTTL, cleanupInterval time.Duration) *TokenCache {
	c := &TokenCache{
		entries:    make(map[string]entry),
		defaultTTL: defaultTTL,
		now:        time.Now,
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}

	if cleanupInterval > 0 {
		go c.janitor(cleanupInterval)
	} else {
		close(c.done)
	}

	return c
}

// Get returns a copy of the identity stored under key if it has not expired.
func (c *TokenCache) Get(_ context.Context, key string) (*authDomain.Identity, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}

	if !c.now().Before(e.expiresAt) {
		c.mu.Lock()
		// Re-check under the write lock; a concurrent Set may have refreshed it.
		if current, ok := c.entries[key]; ok && !c.now().Before(current.expiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil, false
	}

	return e.identity.Clone(), true
}

// Set stores a copy of identity under key. A non-positive ttl uses the default TTL.
func (c *TokenCache) Set(_ context.Context, key string, identity *authDomain.Identity, ttl time.Duration) {
	if identity == nil {
		return
	}
	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	c.mu.Lock()
	c.entries[key] = entry{identity: identity.Clone(), expiresAt: c.now().Add(ttl)}
	c.mu.Unlock()
}

// Delete removes key from the cache.
func (c *TokenCache) Delete(_ context.Context, key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Len returns the number of stored entries, expired or not.
func (c *TokenCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// DeleteExpired removes every expired entry and returns how many were removed.
func (c *TokenCache) DeleteExpired() int {
	now := c.now()
	removed := 0

	c.mu.Lock()
	for key, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, key)
			removed++
		}
	}
	c.mu.Unlock()

	return removed
}

// Close stops the janitor goroutine and waits for it to exit. Safe to call more than once.
func (c *TokenCache) Close() {
	c.closeOnce.Do(func() {
		close(c.stop)
	})
	<-c.done
}

func (c *TokenCache) janitor(interval time.Duration) {
	defer close(c.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.DeleteExpired()
		case <-c.stop:
			return
		}
	}
}
