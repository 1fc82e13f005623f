package ingest

import (
	"context"

	"SalesIngest/internal/dedup"
	"SalesIngest/internal/sales"
)

// Scope bounds the existing-key lookup so it does not grow with history.
type Scope struct {
	CompanyID int64
	Submodule string
	Years     []int
}

// TransactionRecord is one novel transaction ready to be written, tagged with
// the upload that produced it and its resolved master-data ids.
type TransactionRecord struct {
	UploadID  int64
	CompanyID int64
	Submodule string
	ClientID  int64
	ProductID int64
	sales.Transaction
}

// Store is the persistence the orchestrator needs. Implementations must be
// safe for concurrent runs of different uploads.
type Store interface {
	ExistingDedupKeys(ctx context.Context, scope Scope) (dedup.Set, error)
	FindOrCreateClient(ctx context.Context, companyID int64, name string) (int64, error)
	FindOrCreateProduct(ctx context.Context, companyID int64, name string) (int64, error)
	InsertTransaction(ctx context.Context, rec TransactionRecord) error
	CreateUpload(ctx context.Context, meta sales.UploadMeta) (int64, error)
	UpdateUpload(ctx context.Context, id int64, status sales.UploadStatus, counts sales.UploadCounts, notes string) error
}
