package services

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// TrashReaperConfig holds configuration for the trash reaper
type TrashReaperConfig struct {
	// Interval is how often expired trash is purged
	Interval time.Duration
	// Retention is how long a mail stays in trash before it is purged
	Retention time.Duration
}

// TrashReaper periodically hard-deletes mail that has been in trash longer
// than the retention window. Purging by id set is idempotent, so a tick
// racing a foreground delete of the same mail is harmless.
type TrashReaper struct {
	mailService MailService
	config      TrashReaperConfig
	logger      *slog.Logger
	stopCh      chan struct{}
	wg          sync.WaitGroup
	running     bool
	mu          sync.Mutex
}

// NewTrashReaper creates a new trash reaper
func NewTrashReaper(mailService MailService, config TrashReaperConfig, logger *slog.Logger) *TrashReaper {
	// Set defaults
	if config.Interval <= 0 {
		config.Interval = 60 * time.Second
	}
	if config.Retention <= 0 {
		config.Retention = time.Minute
	}

	return &TrashReaper{
		mailService: mailService,
		config:      config,
		logger:      logger,
		stopCh:      make(chan struct{}),
	}
}

// Start begins the background purge loop
func (r *TrashReaper) Start() {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return
	}
	r.running = true
	r.stopCh = make(chan struct{})
	r.mu.Unlock()

	r.wg.Add(1)
	go r.purgeLoop()

	r.logger.Info("trash reaper started",
		slog.Duration("interval", r.config.Interval),
		slog.Duration("retention", r.config.Retention))
}

// Stop gracefully stops the purge loop. A tick in flight runs to completion.
func (r *TrashReaper) Stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	r.running = false
	close(r.stopCh)
	r.mu.Unlock()

	r.wg.Wait()
	r.logger.Info("trash reaper stopped")
}

// IsRunning returns whether the reaper is currently running
func (r *TrashReaper) IsRunning() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

// purgeLoop runs a purge immediately, then on every tick
func (r *TrashReaper) purgeLoop() {
	defer r.wg.Done()

	r.purgeExpired()

	ticker := time.NewTicker(r.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stopCh:
			return
		case <-ticker.C:
			r.purgeExpired()
		}
	}
}

// purgeExpired performs one purge pass. A store failure is logged and left
// for the next tick.
func (r *TrashReaper) purgeExpired() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	count, err := r.mailService.PurgeExpiredTrash(ctx, r.config.Retention)
	if err != nil {
		r.logger.Error("trash purge failed, will retry next tick",
			slog.Any("error", err))
		return
	}

	if count == 0 {
		r.logger.Debug("no expired trash to purge")
		return
	}

	r.logger.Info("trash purge completed", slog.Int("purged", count))
}

// ForcePurge triggers an immediate purge pass, for tests and manual
// intervention. The pass joins the reaper's wait group, so Stop blocks until
// it finishes.
func (r *TrashReaper) ForcePurge() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		r.logger.Warn("force purge called but reaper is not running")
		return
	}
	r.wg.Add(1)
	r.mu.Unlock()

	go func() {
		defer r.wg.Done()
		r.purgeExpired()
	}()
}
