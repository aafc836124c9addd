package services

import (
	"context"
	"time"

	"github.com/printdesk/printdesk/cache"
	"github.com/printdesk/printdesk/utils"
)

// CacheRefresher periodically reloads the mirror from the remote so edits
// made outside this process (or missed notifications) converge.
type CacheRefresher struct {
	Cache    *cache.Cache
	Interval time.Duration
	StopChan chan struct{}
}

func NewCacheRefresher(c *cache.Cache, interval time.Duration) *CacheRefresher {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &CacheRefresher{
		Cache:    c,
		Interval: interval,
		StopChan: make(chan struct{}),
	}
}

// Start runs the refresh loop in its own goroutine until Stop is called.
func (r *CacheRefresher) Start() {
	go func() {
		ticker := time.NewTicker(r.Interval)
		defer ticker.Stop()
		utils.InfoLogger.Printf("cache refresher started (every %s)", r.Interval)
		for {
			select {
			case <-ticker.C:
				r.Cache.Load(context.Background())
			case <-r.StopChan:
				utils.InfoLogger.Println("cache refresher stopped")
				return
			}
		}
	}()
}

func (r *CacheRefresher) Stop() {
	close(r.StopChan)
}
