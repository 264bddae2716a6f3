package ratelimit

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

type window struct {
	count int
	start time.Time
}

// MemoryLimiter is a fixed-window limiter held in process memory. Suitable
// for a single instance; use the redis limiter when running more than one.
type MemoryLimiter struct {
	config  *Config
	stats   Stats
	windows map[string]*window
	mu      sync.Mutex
	stop    chan struct{}
}

func NewMemoryLimiter(config *Config) *MemoryLimiter {
	if config == nil {
		config = DefaultConfig()
	}
	limiter := &MemoryLimiter{
		config:  config,
		windows: make(map[string]*window),
		stop:    make(chan struct{}),
	}
	go limiter.evictStale()
	return limiter
}

func (m *MemoryLimiter) Allow(clientID, category string) (bool, time.Duration, error) {
	if !m.config.Enabled {
		return true, 0, nil
	}
	atomic.AddInt64(&m.stats.TotalRequests, 1)

	limit := m.config.LimitFor(category)
	key := fmt.Sprintf("%s:%s", clientID, category)
	now := time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.windows[key]
	if !ok || now.Sub(w.start) >= limit.Window {
		m.windows[key] = &window{count: 1, start: now}
		return true, 0, nil
	}

	if w.count < limit.Requests {
		w.count++
		return true, 0, nil
	}

	atomic.AddInt64(&m.stats.BlockedRequests, 1)
	return false, limit.Window - now.Sub(w.start), nil
}

func (m *MemoryLimiter) LimitFor(category string) Limit {
	return m.config.LimitFor(category)
}

func (m *MemoryLimiter) Stats() Stats {
	return Stats{
		TotalRequests:   atomic.LoadInt64(&m.stats.TotalRequests),
		BlockedRequests: atomic.LoadInt64(&m.stats.BlockedRequests),
	}
}

// Close stops the background eviction loop.
func (m *MemoryLimiter) Close() {
	close(m.stop)
}

func (m *MemoryLimiter) evictStale() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			now := time.Now()
			m.mu.Lock()
			for key, w := range m.windows {
				if now.Sub(w.start) > time.Hour {
					delete(m.windows, key)
				}
			}
			m.mu.Unlock()
		case <-m.stop:
			return
		}
	}
}
