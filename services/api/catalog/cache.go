package catalog

import "sync"

// SeriesKey addresses one cached sensor series. Temperature and moisture for
// the same sensor are stored separately.
type SeriesKey struct {
	SensorID int
	Quantity string
}

// SeriesCache holds fetched sensor series for the lifetime of the process.
// Nothing is ever evicted; a failed fetch is simply not cached, so the next
// selection retries it.
type SeriesCache struct {
	mu     sync.Mutex
	series map[SeriesKey]*SeriesResponse
}

// NewSeriesCache creates an empty cache.
func NewSeriesCache() *SeriesCache {
	return &SeriesCache{series: make(map[SeriesKey]*SeriesResponse)}
}

// Get returns a cached series, if present.
func (c *SeriesCache) Get(key SeriesKey) (*SeriesResponse, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.series[key]
	return s, ok
}

// Put stores a fetched series. Nil values are ignored.
func (c *SeriesCache) Put(key SeriesKey, series *SeriesResponse) {
	if series == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.series[key] = series
}
