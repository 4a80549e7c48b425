package services

import (
	"context"
	"time"

	"nfl-survivor-go/logging"
)

// BackgroundUpdater polls the ESPN feed on a timer, decoupled from request
// handling. After each sync pass it hands any week that went fully final to
// the resolver.
type BackgroundUpdater struct {
	syncService *SyncService
	resolver    *WeekResolver
	ticker      *time.Ticker
	stopChan    chan struct{}
	running     bool
	logger      *logging.Logger
}

// NewBackgroundUpdater creates a new background updater
func NewBackgroundUpdater(syncService *SyncService, resolver *WeekResolver) *BackgroundUpdater {
	return &BackgroundUpdater{
		syncService: syncService,
		resolver:    resolver,
		stopChan:    make(chan struct{}),
		logger:      logging.WithPrefix("BackgroundUpdater"),
	}
}

// Start begins the polling loop
func (bu *BackgroundUpdater) Start() {
	if bu.running {
		bu.logger.Warn("Already running")
		return
	}
	bu.running = true

	interval := bu.updateInterval()
	bu.logger.Infof("Starting feed polling every %v", interval)
	bu.ticker = time.NewTicker(interval)

	go bu.update()

	go func() {
		for {
			select {
			case <-bu.ticker.C:
				go bu.update()
			case <-bu.stopChan:
				bu.logger.Info("Stopping background updates")
				return
			}
		}
	}()
}

// Stop halts the polling loop
func (bu *BackgroundUpdater) Stop() {
	if !bu.running {
		return
	}
	bu.running = false
	if bu.ticker != nil {
		bu.ticker.Stop()
	}
	close(bu.stopChan)
}

// update runs one sync pass and resolves any week that went final
func (bu *BackgroundUpdater) update() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	started := time.Now()
	completed, err := bu.syncService.RefreshResults(ctx)
	if err != nil {
		bu.logger.Errorf("Feed sync failed: %v", err)
		return
	}

	if len(completed) > 0 {
		for _, result := range bu.resolver.ResolveCompletedWeeks(ctx, completed) {
			bu.logger.Infof("Resolved week %d: %d resolved, %d skipped, %d failed",
				result.Week, result.Resolved, result.Skipped, len(result.Failures))
		}
	}

	bu.logger.Debugf("Sync pass finished in %v", time.Since(started))
}

// updateInterval polls every 2 minutes during the NFL season (September
// through February) and every 30 minutes otherwise.
func (bu *BackgroundUpdater) updateInterval() time.Duration {
	month := time.Now().Month()
	if month >= time.September || month <= time.February {
		return 2 * time.Minute
	}
	return 30 * time.Minute
}
