package jobs

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/robfig/cron/v3"

	"SalesIngest/internal/config"
	"SalesIngest/internal/logger"
)

// StaleUploadConfig controls the watchdog that closes abandoned uploads.
type StaleUploadConfig struct {
	Schedule   string        // cron spec, default every 15 minutes
	StaleAfter time.Duration // how long an upload may stay in processing
	TimeZone   string
}

// StaleUploadMarker is implemented by pgstore.Store.
type StaleUploadMarker interface {
	MarkStaleUploadsFailed(ctx context.Context, olderThan time.Duration) (int64, error)
}

// NewDefaultStaleUploadConfig reads STALE_UPLOAD_SCHEDULE and
// STALE_UPLOAD_MINUTES, falling back to the package defaults.
func NewDefaultStaleUploadConfig() *StaleUploadConfig {
	schedule := os.Getenv("STALE_UPLOAD_SCHEDULE")
	if schedule == "" {
		schedule = config.DefaultStaleUploadSchedule
	}
	minutes := config.DefaultStaleUploadMinutes
	if m, err := strconv.Atoi(os.Getenv("STALE_UPLOAD_MINUTES")); err == nil && m > 0 {
		minutes = m
	}
	return &StaleUploadConfig{
		Schedule:   schedule,
		StaleAfter: time.Duration(minutes) * time.Minute,
		TimeZone:   config.DefaultTimeZone,
	}
}

// RunStaleUploadWatchdog schedules the sweep and starts the scheduler. The
// caller stops the returned cron.
func RunStaleUploadWatchdog(cfg *StaleUploadConfig, marker StaleUploadMarker) (*cron.Cron, error) {
	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		loc = time.UTC
		logger.GlobalLogger.LogAudit(fmt.Sprintf("Invalid timezone %s, falling back to UTC: %v", cfg.TimeZone, err))
	}

	c := cron.New(cron.WithLocation(loc))
	_, err = c.AddFunc(cfg.Schedule, func() {
		if _, err := SweepStaleUploads(context.Background(), marker, cfg.StaleAfter); err != nil {
			log.Printf("[ERROR] stale upload sweep failed: %v", err)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("unable to schedule stale upload watchdog: %w", err)
	}
	c.Start()
	logger.GlobalLogger.LogAudit(fmt.Sprintf("Stale upload watchdog started with schedule: %s (stale after %s)", cfg.Schedule, cfg.StaleAfter))
	return c, nil
}

// SweepStaleUploads runs one pass of the watchdog.
func SweepStaleUploads(ctx context.Context, marker StaleUploadMarker, staleAfter time.Duration) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()
	n, err := marker.MarkStaleUploadsFailed(ctx, staleAfter)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		logger.GlobalLogger.LogAudit(fmt.Sprintf("Marked %d stale sales uploads as failed", n))
	}
	return n, nil
}
