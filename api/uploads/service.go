package uploads

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"SalesIngest/api"
	"SalesIngest/internal/config"
	"SalesIngest/internal/ingest"
	"SalesIngest/internal/serviceiface"
	"SalesIngest/internal/store/pgstore"
)

// SalesService serves the upload and listing endpoints.
type SalesService struct {
	config map[string]interface{}
	db     *sql.DB
	pool   *pgxpool.Pool
	server *http.Server
}

func NewSalesService(cfg map[string]interface{}, db *sql.DB, pool *pgxpool.Pool) serviceiface.Service {
	return &SalesService{config: cfg, db: db, pool: pool}
}

func (s *SalesService) Name() string {
	return "sales"
}

// Routes builds the sales endpoints around an orchestrator.
func Routes(orch *ingest.Orchestrator, db *sql.DB) []api.Route {
	return []api.Route{
		{Name: "sales-upload", Method: http.MethodPost, Path: "/sales/upload", Handler: UploadSalesHandler(orch)},
		{Name: "sales-uploads", Method: http.MethodGet, Path: "/sales/uploads", Handler: ListUploadsHandler(db)},
	}
}

func (s *SalesService) Start() error {
	if s.db == nil || s.pool == nil {
		return errors.New("sales service needs both database connections")
	}
	companies, err := config.Companies(s.config)
	if err != nil {
		return err
	}
	if len(companies) == 0 {
		return fmt.Errorf("sales service: no companies configured")
	}
	orch := ingest.New(pgstore.New(s.pool), ingest.NewDirectory(companies...))

	addr := config.String(s.config, "addr", config.DefaultSalesAddr)
	s.server = &http.Server{
		Addr:              addr,
		Handler:           api.NewRouter(Routes(orch, s.db)...),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Println("Sales Service started on", addr)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Sales Service failed: %v", err)
		}
	}()
	return nil
}

func (s *SalesService) Stop() error {
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}
