package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sync"

	"docqa/internal/models"
)

// cachedResponseTime is the response time reported for a cache hit.
const cachedResponseTime = 0.01

// Key derives a deterministic fingerprint of the exact document reference and
// the exact ordered question list. No normalization: a reordered question
// list is a different key.
func Key(document string, questions []string) string {
	payload, _ := json.Marshal(struct {
		Document  string   `json:"document"`
		Questions []string `json:"questions"`
	}{Document: document, Questions: questions})
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

// Cache memoizes full responses for the lifetime of the process. It grows
// without bound and is never invalidated, so a changed document behind an
// already-seen URL keeps serving the stale response. Two concurrent
// identical requests can both miss and both compute; the later Put
// overwrites with an equivalent response, so only the duplicated work is
// lost.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*models.Response
}

func New() *Cache {
	return &Cache{entries: make(map[string]*models.Response)}
}

// Get returns a copy of the stored response with the cached flag set and a
// near-zero response time. The stored value itself is never mutated.
func (c *Cache) Get(key string) (*models.Response, bool) {
	c.mu.RLock()
	stored, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	resp := *stored
	resp.Metadata.Cached = true
	resp.Metadata.ResponseTime = cachedResponseTime
	return &resp, true
}

// Put stores a computed response. Failed pipeline runs must not be stored.
func (c *Cache) Put(key string, resp *models.Response) {
	c.mu.Lock()
	c.entries[key] = resp
	c.mu.Unlock()
}

// Len reports how many responses are memoized.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
