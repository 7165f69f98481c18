// Package cache provides the persistent bbolt cache and an in-process
// memo for expensive loads such as the commit dataset.
package cache

import (
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// Memory memoizes loader results for a fixed TTL. Concurrent misses on the
// same key share one load.
type Memory struct {
	items  *cache.Cache
	group  singleflight.Group
	logger *logrus.Logger
}

// NewMemory creates a memo whose entries live for ttl. A ttl of zero or
// less keeps entries until Flush.
func NewMemory(ttl time.Duration, logger *logrus.Logger) *Memory {
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}
	return &Memory{
		items:  cache.New(ttl, 10*time.Minute),
		logger: logger,
	}
}

// GetOrLoad returns the cached value for key or runs load and caches its
// result. Errors are not cached.
func (m *Memory) GetOrLoad(key string, load func() (interface{}, error)) (interface{}, error) {
	if v, found := m.items.Get(key); found {
		return v, nil
	}

	v, err, shared := m.group.Do(key, func() (interface{}, error) {
		if v, found := m.items.Get(key); found {
			return v, nil
		}
		v, err := load()
		if err != nil {
			return nil, err
		}
		m.items.Set(key, v, cache.DefaultExpiration)
		return v, nil
	})
	if err != nil {
		return nil, err
	}

	m.logger.WithFields(logrus.Fields{"key": key, "shared": shared}).Debug("memo loaded")
	return v, nil
}

// Flush drops every memoized value.
func (m *Memory) Flush() {
	m.items.Flush()
}
