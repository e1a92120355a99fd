package config

import (
	"sync"
	"time"

	"elearn/models"

	"gorm.io/gorm"
)

// SettingsCache serves platform settings with a TTL so request handlers do
// not hit the settings table on every call. The clock is injected for tests.
type SettingsCache struct {
	DB  *gorm.DB
	TTL time.Duration
	Now func() time.Time

	mu        sync.Mutex
	cached    models.PlatformSettings
	fetchedAt time.Time
	primed    bool
}

// NewSettingsCache builds a cache with a one-minute TTL.
func NewSettingsCache(db *gorm.DB) *SettingsCache {
	return &SettingsCache{DB: db, TTL: time.Minute, Now: time.Now}
}

// Get returns the cached settings, refreshing from the database when the TTL
// elapsed. A fetch failure keeps serving the last good value.
func (c *SettingsCache) Get() models.PlatformSettings {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.primed && c.Now().Sub(c.fetchedAt) < c.TTL {
		return c.cached
	}

	var settings models.PlatformSettings
	err := c.DB.Where("is_deleted = false").Order("id desc").First(&settings).Error
	if err != nil {
		return c.cached
	}

	c.cached = settings
	c.fetchedAt = c.Now()
	c.primed = true
	return c.cached
}

// Invalidate drops the cached value so the next Get refetches.
func (c *SettingsCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.primed = false
}
