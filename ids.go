package sitedesk

import (
	"strconv"
	"sync"
	"time"
)

// IDSource hands out millisecond timestamps that strictly increase, so records
// created within the same millisecond still get distinct ids and
// non-decreasing createdAt values.
type IDSource struct {
	mu   sync.Mutex
	last int64
}

// Next returns the millisecond stamp for a record created at now.
func (s *IDSource) Next(now time.Time) int64 {
	ms := now.UnixMilli()
	s.mu.Lock()
	defer s.mu.Unlock()
	if ms <= s.last {
		ms = s.last + 1
	}
	s.last = ms
	return ms
}

func formatID(ms int64) string {
	return strconv.FormatInt(ms, 10)
}

func photoItemID(ms int64, index int) string {
	return strconv.FormatInt(ms, 10) + "-" + strconv.Itoa(index)
}
