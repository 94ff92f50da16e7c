package sitedesk

import (
	"sync"
	"time"
)

// StatsCache holds the most recent Stats snapshot. It is refreshed at startup
// and after every mutation rather than on a timer.
type StatsCache struct {
	mu        sync.RWMutex
	agg       *Aggregator
	stats     Stats
	refreshed time.Time
	log       Logger
}

// NewStatsCache creates a StatsCache over agg. Call Refresh before first use.
func NewStatsCache(agg *Aggregator, logger Logger) *StatsCache {
	return &StatsCache{agg: agg, log: logger}
}

// Refresh recomputes the counters. On failure the previous snapshot is kept.
func (c *StatsCache) Refresh() error {
	st, err := c.agg.Aggregate()
	if err != nil {
		c.log.Warnf("refresh statistics: %v", err)
		return err
	}
	c.mu.Lock()
	c.stats = st
	c.refreshed = time.Now()
	c.mu.Unlock()
	return nil
}

// Snapshot returns the current counters and when they were computed.
func (c *StatsCache) Snapshot() (Stats, time.Time) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats, c.refreshed
}
