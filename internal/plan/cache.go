package plan

import (
	"fmt"
	"sync"

	"github.com/ImaiTakashi-biz/Request-metal-cleaning/internal/model"
)

// Cache holds the current date's record list as the single in-memory
// source of truth. Every view (shards, the cleaning-instruction view,
// the unprocessed aggregations) projects from this one list; none of
// them fetch from the store independently.
type Cache struct {
	mu      sync.RWMutex
	date    string
	records []model.PlanRecord
	byID    map[int64]int
}

// NewCache creates an empty row cache.
func NewCache() *Cache {
	return &Cache{byID: make(map[int64]int)}
}

// Load replaces the whole record list atomically. Consumers observe
// either the previous list or the new one, never a half-updated mix.
func (c *Cache) Load(date string, records []model.PlanRecord) {
	byID := make(map[int64]int, len(records))
	for i := range records {
		byID[records[i].ID] = i
	}
	c.mu.Lock()
	c.date = date
	c.records = records
	c.byID = byID
	c.mu.Unlock()
}

// Date returns the acquisition date the cache currently holds.
func (c *Cache) Date() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.date
}

// Len returns the number of cached records.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records)
}

// Records returns a snapshot copy of the cached record list.
func (c *Cache) Records() []model.PlanRecord {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]model.PlanRecord, len(c.records))
	copy(out, c.records)
	return out
}

// Get returns a copy of the record with the given id.
func (c *Cache) Get(id int64) (model.PlanRecord, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i, ok := c.byID[id]
	if !ok {
		return model.PlanRecord{}, false
	}
	return c.records[i], true
}

// At returns a copy of the record at list position i.
func (c *Cache) At(i int) (model.PlanRecord, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i < 0 || i >= len(c.records) {
		return model.PlanRecord{}, false
	}
	return c.records[i], true
}

// Apply mutates one editable field of one cached record in place. This is
// the optimistic half of a cell edit: already-rendered views see the new
// value before the store round-trip completes.
func (c *Cache) Apply(id int64, column string, value any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	i, ok := c.byID[id]
	if !ok {
		return fmt.Errorf("record %d is not in the loaded date", id)
	}
	return c.records[i].SetField(column, value)
}
