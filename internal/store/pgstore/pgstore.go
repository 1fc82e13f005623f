// Package pgstore persists sales uploads in PostgreSQL through a pgx pool.
package pgstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"SalesIngest/internal/dedup"
	"SalesIngest/internal/ingest"
	"SalesIngest/internal/sales"
)

var ErrDuplicate = errors.New("transaction already stored")

const uniqueViolation = "23505"

type Store struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

var _ ingest.Store = (*Store)(nil)

// ExistingDedupKeys recomputes keys from the stored columns of the scope; the
// key itself is never stored.
func (s *Store) ExistingDedupKeys(ctx context.Context, scope ingest.Scope) (dedup.Set, error) {
	years := make([]int32, 0, len(scope.Years))
	for _, y := range scope.Years {
		years = append(years, int32(y))
	}
	rows, err := s.pool.Query(ctx, `
		SELECT coalesce(document_ref, ''), transaction_date, product_name, quantity::text
		FROM sales_transactions
		WHERE company_id = $1 AND submodule = $2
		  AND (coalesce(cardinality($3::int[]), 0) = 0 OR source_year = ANY($3::int[]))`,
		scope.CompanyID, scope.Submodule, years)
	if err != nil {
		return nil, fmt.Errorf("query existing keys: %w", err)
	}
	defer rows.Close()

	set := dedup.Set{}
	for rows.Next() {
		var (
			doc, product, qtyText string
			date                  time.Time
		)
		if err := rows.Scan(&doc, &date, &product, &qtyText); err != nil {
			return nil, fmt.Errorf("scan existing key: %w", err)
		}
		qty, err := decimal.NewFromString(qtyText)
		if err != nil {
			return nil, fmt.Errorf("stored quantity %q: %w", qtyText, err)
		}
		set[dedup.KeyOf(doc, date, product, qty)] = struct{}{}
	}
	return set, rows.Err()
}

func (s *Store) FindOrCreateClient(ctx context.Context, companyID int64, name string) (int64, error) {
	return s.findOrCreate(ctx, "sales_clients", companyID, name)
}

func (s *Store) FindOrCreateProduct(ctx context.Context, companyID int64, name string) (int64, error) {
	return s.findOrCreate(ctx, "sales_products", companyID, name)
}

// findOrCreate relies on the (company_id, lower(btrim(name))) unique index;
// the no-op update makes RETURNING yield the existing id.
func (s *Store) findOrCreate(ctx context.Context, table string, companyID int64, name string) (int64, error) {
	var id int64
	if err := s.pool.QueryRow(ctx, findOrCreateSQL(table), companyID, name).Scan(&id); err != nil {
		return 0, fmt.Errorf("find or create %s %q: %w", table, name, err)
	}
	return id, nil
}

func findOrCreateSQL(table string) string {
	return fmt.Sprintf(`
		INSERT INTO %[1]s (company_id, name) VALUES ($1, btrim($2))
		ON CONFLICT (company_id, (lower(btrim(name))))
		DO UPDATE SET name = %[1]s.name
		RETURNING id`, table)
}

func (s *Store) InsertTransaction(ctx context.Context, rec ingest.TransactionRecord) error {
	tx := rec.Transaction
	_, err := s.pool.Exec(ctx, `
		INSERT INTO sales_transactions (
			upload_id, company_id, submodule, client_id, product_id,
			transaction_date, document_ref, client_name, product_name, quantity,
			unit_price, total_amount, local_amount, exchange_rate,
			product_family, unit_of_measure, unit_cost, gross_margin,
			source_year, source_month, source_sheet, source_row
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22)`,
		rec.UploadID, rec.CompanyID, rec.Submodule, rec.ClientID, rec.ProductID,
		tx.Date, tx.DocumentRef, tx.ClientName, tx.ProductName, tx.Quantity,
		tx.UnitPrice, tx.TotalAmount, tx.LocalAmount, tx.ExchangeRate,
		tx.ProductFamily, tx.UnitOfMeasure, tx.UnitCost, tx.GrossMargin,
		tx.SourceYear, tx.SourceMonth, tx.SourceSheet, tx.SourceRow,
	)
	return insertError(err)
}

// insertError maps a unique violation from a concurrent run to ErrDuplicate.
func insertError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", ErrDuplicate, pgErr.ConstraintName)
	}
	return fmt.Errorf("insert transaction: %w", err)
}

func (s *Store) CreateUpload(ctx context.Context, meta sales.UploadMeta) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx, `
		INSERT INTO sales_uploads (
			run_id, company_id, submodule, file_name, file_size, file_hash,
			period_start, period_end, status, records_count, uploaded_by
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		RETURNING id`,
		meta.RunID, meta.CompanyID, meta.Submodule, meta.FileName, meta.FileSize, meta.FileHash,
		meta.PeriodStart, meta.PeriodEnd, string(sales.UploadProcessing), meta.RecordsCount, meta.UploadedBy,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create upload: %w", err)
	}
	return id, nil
}

func (s *Store) UpdateUpload(ctx context.Context, id int64, status sales.UploadStatus, counts sales.UploadCounts, notes string) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE sales_uploads
		SET status = $2, inserted_count = $3, already_existed_count = $4,
		    insertion_error_count = $5, notes = $6, updated_at = now()
		WHERE id = $1`,
		id, string(status), counts.Inserted, counts.AlreadyExisted, counts.InsertionErrors, notes)
	if err != nil {
		return fmt.Errorf("update upload %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update upload %d: not found", id)
	}
	return nil
}

// MarkStaleUploadsFailed closes uploads left in processing by a crashed run.
// It is not a retry: the rows already inserted stay, the dedup index keeps a
// re-upload from duplicating them.
func (s *Store) MarkStaleUploadsFailed(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)
	tag, err := s.pool.Exec(ctx, `
		UPDATE sales_uploads
		SET status = 'failed',
		    notes = CASE WHEN notes = '' THEN $2 ELSE notes || '; ' || $2 END,
		    updated_at = now()
		WHERE status = 'processing' AND updated_at < $1`,
		cutoff, fmt.Sprintf("abandoned: still processing after %s", olderThan))
	if err != nil {
		return 0, fmt.Errorf("mark stale uploads: %w", err)
	}
	return tag.RowsAffected(), nil
}
