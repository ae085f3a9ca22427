package services

import (
	"context"
	"sync"
	"time"

	"zing-keeper/internal/config"
	"zing-keeper/internal/logger"
	"zing-keeper/internal/models"
)

/**
 * Periodic update checker
 * @description
 * - Runs one check immediately, then one every configured interval
 * - Manual checks through Trigger reuse the same sweep and reset nothing
 */
type Checker struct {
	mu       sync.Mutex
	manager  *PackageManager
	interval time.Duration
	running  bool
	last     time.Time
	next     time.Time
	updates  int
	cancel   context.CancelFunc
}

var checker *Checker

/**
 * Get the process-wide checker instance
 */
func GetChecker() *Checker {
	if checker != nil {
		return checker
	}
	interval, err := time.ParseDuration(config.Config.Check.Interval)
	if err != nil || interval <= 0 {
		logger.Warnf("Invalid check interval %q, using 1h", config.Config.Check.Interval)
		interval = time.Hour
	}
	checker = NewChecker(GetPackageManager(), interval)
	return checker
}

/**
 * Create new checker instance
 * @param {time.Duration} interval - Period between update checks
 */
func NewChecker(manager *PackageManager, interval time.Duration) *Checker {
	return &Checker{manager: manager, interval: interval}
}

/**
 * Start the periodic check loop
 * @description
 * - The first sweep runs right away so a fresh keeper reports real state
 * - Calling Start on a running checker is a no-op
 */
func (c *Checker) Start(ctx context.Context) {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return
	}
	ctx, c.cancel = context.WithCancel(ctx)
	c.running = true
	c.mu.Unlock()

	go c.run(ctx)
}

func (c *Checker) run(ctx context.Context) {
	logger.Infof("Update checker started, interval: %s", c.interval)
	c.Trigger()

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			logger.Info("Update checker stopped")
			c.mu.Lock()
			c.running = false
			c.mu.Unlock()
			return
		case <-ticker.C:
			c.Trigger()
		}
	}
}

/**
 * Stop the periodic check loop
 */
func (c *Checker) Stop() {
	c.mu.Lock()
	cancel := c.cancel
	c.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

/**
 * Run one update check sweep now
 * @returns {[]models.PackageCheckResult} Per-package results
 */
func (c *Checker) Trigger() []models.PackageCheckResult {
	results, updates := c.manager.CheckUpdates()

	c.mu.Lock()
	c.last = time.Now()
	c.next = c.last.Add(c.interval)
	c.updates = updates
	c.mu.Unlock()
	return results
}

/**
 * Get the checker's scheduling state
 */
func (c *Checker) Status() models.SchedulerCheckResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	status := "idle"
	if c.running {
		status = "active"
	}
	return models.SchedulerCheckResult{
		Status:           status,
		NextCheckTime:    c.next,
		LastCheckTime:    c.last,
		PackagesCount:    c.manager.State().Count(),
		UpdatesAvailable: c.updates,
	}
}
