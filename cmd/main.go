package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"SalesIngest/internal/appmanager"
	"SalesIngest/internal/config"
	"SalesIngest/internal/store/pgstore"
)

// InitDB opens both connections from env vars: database/sql for migrations
// and listings, pgxpool for ingestion.
func InitDB(ctx context.Context) (*sql.DB, *pgxpool.Pool, error) {
	settings, err := config.DBFromEnv()
	if err != nil {
		return nil, nil, err
	}
	db, err := sql.Open("postgres", settings.ConnString())
	if err != nil {
		return nil, nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}
	pool, err := pgxpool.New(ctx, settings.URL())
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return db, pool, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func main() {
	// .env is optional outside local dev
	_ = godotenv.Load(envOr("ENV_FILE", config.DefaultEnvFile))

	ctx := context.Background()
	db, pool, err := InitDB(ctx)
	if err != nil {
		log.Fatal("failed to connect to DB:", err)
	}
	defer db.Close()
	defer pool.Close()

	if err := pgstore.Migrate(db); err != nil {
		log.Fatal("failed to migrate:", err)
	}
	appmanager.SetDB(db)
	appmanager.SetPgxPool(pool)

	servicesCfg, err := appmanager.LoadServiceSequence(envOr("SERVICES_FILE", config.DefaultServicesFile))
	if err != nil {
		log.Fatal("failed to load service sequence:", err)
	}

	manager := appmanager.NewAppManager()
	manager.AutoRegisterServices(servicesCfg)
	if err := manager.StartAll(); err != nil {
		manager.StopAll()
		log.Fatal("failed to start:", err)
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs

	if err := manager.StopAll(); err != nil {
		log.Println("[ERROR] failed to stop:", err)
	}
}
