package driveapi

import (
	"sync"
	"time"
)

// DefaultFolderCacheTTL bounds how long a resolved folder handle is
// reused before Drive is asked again.
const DefaultFolderCacheTTL = 30 * time.Minute

// folderCache holds one folder handle with an expiry. It replaces the
// module-level cache of the original app with explicit, testable state.
type folderCache struct {
	mu        sync.Mutex
	value     *Folder
	expiresAt time.Time
	ttl       time.Duration
	now       func() time.Time
}

func newFolderCache(ttl time.Duration) *folderCache {
	return &folderCache{ttl: ttl, now: time.Now}
}

// get returns the cached folder, or nil when empty or expired.
func (c *folderCache) get() *Folder {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.value == nil || c.now().After(c.expiresAt) {
		c.value = nil
		return nil
	}
	v := *c.value
	return &v
}

func (c *folderCache) set(f Folder) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = &f
	c.expiresAt = c.now().Add(c.ttl)
}

// Invalidate drops the cached value immediately.
func (c *folderCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = nil
	c.expiresAt = time.Time{}
}
