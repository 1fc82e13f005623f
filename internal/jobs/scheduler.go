package jobs

import (
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/robfig/cron/v3"

	"SalesIngest/internal/config"
	"SalesIngest/internal/serviceiface"
	"SalesIngest/internal/store/pgstore"
)

type CronService struct {
	config map[string]interface{}
	db     *pgxpool.Pool
	crons  []*cron.Cron
}

func NewCronService(cfg map[string]interface{}, db *pgxpool.Pool) serviceiface.Service {
	return &CronService{
		config: cfg,
		db:     db,
	}
}

func (s *CronService) Name() string {
	return "cron"
}

func (s *CronService) Start() error {
	if s.db == nil {
		return fmt.Errorf("cron service needs a database pool")
	}
	staleCfg := NewDefaultStaleUploadConfig()
	if s.config != nil {
		staleCfg.Schedule = config.String(s.config, "stale_upload_schedule", staleCfg.Schedule)
		if m := config.Int(s.config, "stale_upload_minutes", 0); m > 0 {
			staleCfg.StaleAfter = time.Duration(m) * time.Minute
		}
		staleCfg.TimeZone = config.String(s.config, "timezone", staleCfg.TimeZone)
	}

	c, err := RunStaleUploadWatchdog(staleCfg, pgstore.New(s.db))
	if err != nil {
		return err
	}
	s.crons = append(s.crons, c)
	log.Println("[INFO] cron service started: stale upload watchdog scheduled")
	return nil
}

func (s *CronService) Stop() error {
	for _, c := range s.crons {
		<-c.Stop().Done()
	}
	s.crons = nil
	log.Println("[INFO] cron service stopped")
	return nil
}
