// Package ingest runs one upload through classification, sheet selection,
// deduplication and persistence, and reports what happened.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"SalesIngest/internal/dedup"
	"SalesIngest/internal/logger"
	"SalesIngest/internal/sales"
	"SalesIngest/internal/salesparse"
	"SalesIngest/internal/workbook"
)

// ErrRunFailed wraps every run-level failure: the existing-key lookup or the
// upload record bookkeeping could not be done.
var ErrRunFailed = errors.New("ingestion run failed")

// Request is the upload context plus the opened workbook.
type Request struct {
	ActorID     string
	CompanyID   *int64
	PeriodStart *time.Time
	PeriodEnd   *time.Time
	FileName    string
	FileSize    int64
	FileHash    string
	// 0 infers the year from sheet names
	TargetYear int
	Workbook   *workbook.Workbook
}

type Orchestrator struct {
	store Store
	dir   *Directory
	now   func() time.Time
}

type Option func(*Orchestrator)

// WithClock replaces time.Now, used for month sheets without a year.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

func New(store Store, dir *Directory, opts ...Option) *Orchestrator {
	o := &Orchestrator{store: store, dir: dir, now: time.Now}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// resolved is the company and layout a run settled on.
type resolved struct {
	company sales.Company
	layout  sales.Layout
	via     string
}

// resolve applies anchor classification, then the file name and structural
// heuristics, then the caller's declared company, in that order.
func (o *Orchestrator) resolve(req Request) (resolved, error) {
	type attempt struct {
		via    string
		layout func() sales.Layout
	}
	attempts := []attempt{
		{"anchors", func() sales.Layout { return salesparse.Classify(req.Workbook) }},
		{"file name", func() sales.Layout { return salesparse.ClassifyFileName(req.FileName) }},
		{"structure", func() sales.Layout { return salesparse.ClassifyStructure(req.Workbook) }},
	}
	for _, a := range attempts {
		l := a.layout()
		if l == sales.LayoutUnknown {
			continue
		}
		if c, ok := o.dir.ByLayout(l); ok {
			return resolved{company: c, layout: l, via: a.via}, nil
		}
		if req.CompanyID != nil {
			if c, ok := o.dir.ByID(*req.CompanyID); ok {
				return resolved{company: c, layout: l, via: a.via + " + declared company"}, nil
			}
		}
		return resolved{}, fmt.Errorf("workbook looks like %s but no company is configured for it", l)
	}
	if req.CompanyID != nil {
		if c, ok := o.dir.ByID(*req.CompanyID); ok && c.Layout != sales.LayoutUnknown {
			return resolved{company: c, layout: c.Layout, via: "declared company"}, nil
		}
		return resolved{}, fmt.Errorf("declared company %d is not configured", *req.CompanyID)
	}
	return resolved{}, errors.New("could not recognise the workbook layout")
}

// Ingest performs one run. The returned error is non-nil only for run-level
// failures and always wraps ErrRunFailed; the Summary is filled in either way.
func (o *Orchestrator) Ingest(ctx context.Context, req Request) (Summary, error) {
	sum := Summary{Details: Details{SourceSheets: []string{}, ParserDiagnostics: []string{}}}
	if req.Workbook == nil {
		return noValidData(sum, "the uploaded file has no readable sheets"), nil
	}

	res, err := o.resolve(req)
	if err != nil {
		log.Printf("[SALES-UPLOAD] %s: %v", req.FileName, err)
		return noValidData(sum, err.Error()), nil
	}
	sum.Details.DetectedCompany = res.company.Name
	sum.Details.CompanyID = res.company.ID
	sum.Details.Submodule = res.company.Submodule
	sum.Details.Layout = res.layout.String()
	log.Printf("[SALES-UPLOAD] %s classified as %s (company %q via %s)", req.FileName, res.layout, res.company.Name, res.via)

	sel, err := salesparse.Select(req.Workbook, res.layout, req.TargetYear, o.now())
	if err != nil {
		return noValidData(sum, err.Error()), nil
	}
	sum.Details.SourceSheets = append(sum.Details.SourceSheets, sel.Sheets...)
	sum.Details.ParserDiagnostics = diagnosticStrings(sel.Diagnostics)
	sum.Details.TotalInSource = len(sel.Transactions)
	if len(sel.Transactions) == 0 {
		return noValidData(sum, "no valid sales rows were found in the uploaded workbook"), nil
	}

	meta := sales.UploadMeta{
		RunID:        uuid.New(),
		CompanyID:    res.company.ID,
		Submodule:    res.company.Submodule,
		FileName:     req.FileName,
		FileSize:     req.FileSize,
		FileHash:     req.FileHash,
		PeriodStart:  req.PeriodStart,
		PeriodEnd:    req.PeriodEnd,
		UploadedBy:   req.ActorID,
		RecordsCount: len(sel.Transactions),
	}

	scope := Scope{CompanyID: res.company.ID, Submodule: res.company.Submodule, Years: yearsOf(sel.Transactions)}
	existing, err := o.store.ExistingDedupKeys(ctx, scope)
	if err != nil {
		return o.failRun(ctx, sum, meta, fmt.Errorf("lookup existing dedup keys: %w", err))
	}

	novel, present, repeats := dedup.Partition(sel.Transactions, existing)
	sum.Details.AlreadyExisted = len(present)
	sum.Details.DuplicatesInSource = len(repeats)
	if len(novel) == 0 {
		sum.Success = true
		sum.Outcome = OutcomeNothingNew
		sum.Message = fmt.Sprintf("All %d transactions in this file already exist; nothing new to insert.", len(present))
		log.Printf("[SALES-UPLOAD] %s: nothing new (%d already existed)", req.FileName, len(present))
		return sum, nil
	}

	uploadID, err := o.store.CreateUpload(ctx, meta)
	if err != nil {
		return failed(sum, fmt.Errorf("%w: create upload record: %v", ErrRunFailed, err))
	}
	sum.UploadID = &uploadID
	logger.GlobalLogger.LogAudit(fmt.Sprintf("sales upload %d (%s) started by %s: %d novel rows for %s", uploadID, meta.RunID, req.ActorID, len(novel), res.company.Name))

	counts := o.persistRows(ctx, uploadID, res.company, novel)
	counts.AlreadyExisted = len(present)
	sum.Details.NewlyInserted = counts.Inserted
	sum.Details.InsertionErrors = counts.InsertionErrors

	notes := runNotes(counts, len(repeats), len(sel.Diagnostics))
	if err := o.store.UpdateUpload(context.WithoutCancel(ctx), uploadID, sales.UploadProcessed, counts, notes); err != nil {
		cause := fmt.Errorf("update upload record %d: %w", uploadID, err)
		o.markFailed(ctx, uploadID, counts, cause)
		return failed(sum, fmt.Errorf("%w: %v", ErrRunFailed, cause))
	}
	logger.GlobalLogger.LogAudit(fmt.Sprintf("sales upload %d processed: %s", uploadID, notes))

	sum.Success = true
	sum.Outcome = OutcomeIngested
	sum.Message = fmt.Sprintf("Inserted %d new transactions (%d already existed, %d failed).",
		counts.Inserted, counts.AlreadyExisted, counts.InsertionErrors)
	return sum, nil
}

// persistRows writes novel rows one by one. The loop is detached from
// request cancellation: once started it always runs to the end.
func (o *Orchestrator) persistRows(ctx context.Context, uploadID int64, company sales.Company, novel []sales.Transaction) sales.UploadCounts {
	ctx = context.WithoutCancel(ctx)
	clients := map[string]int64{}
	products := map[string]int64{}
	var counts sales.UploadCounts
	for _, tx := range novel {
		if err := o.persistRow(ctx, uploadID, company, tx, clients, products); err != nil {
			counts.InsertionErrors++
			log.Printf("[SALES-UPLOAD-ERROR] upload %d sheet %q row %d: %v", uploadID, tx.SourceSheet, tx.SourceRow, err)
			continue
		}
		counts.Inserted++
	}
	return counts
}

func (o *Orchestrator) persistRow(ctx context.Context, uploadID int64, company sales.Company, tx sales.Transaction, clients, products map[string]int64) error {
	clientID, err := cachedID(clients, tx.ClientName, func() (int64, error) {
		return o.store.FindOrCreateClient(ctx, company.ID, tx.ClientName)
	})
	if err != nil {
		return fmt.Errorf("client %q: %w", tx.ClientName, err)
	}
	productID, err := cachedID(products, tx.ProductName, func() (int64, error) {
		return o.store.FindOrCreateProduct(ctx, company.ID, tx.ProductName)
	})
	if err != nil {
		return fmt.Errorf("product %q: %w", tx.ProductName, err)
	}
	return o.store.InsertTransaction(ctx, TransactionRecord{
		UploadID:    uploadID,
		CompanyID:   company.ID,
		Submodule:   company.Submodule,
		ClientID:    clientID,
		ProductID:   productID,
		Transaction: tx,
	})
}

func cachedID(cache map[string]int64, name string, lookup func() (int64, error)) (int64, error) {
	k := strings.ToLower(strings.TrimSpace(name))
	if id, ok := cache[k]; ok {
		return id, nil
	}
	id, err := lookup()
	if err != nil {
		return 0, err
	}
	cache[k] = id
	return id, nil
}

// failRun records the failed attempt when the lookup itself fails. Writing
// the record is best effort; the run error is returned regardless.
func (o *Orchestrator) failRun(ctx context.Context, sum Summary, meta sales.UploadMeta, cause error) (Summary, error) {
	ctx = context.WithoutCancel(ctx)
	if id, err := o.store.CreateUpload(ctx, meta); err != nil {
		log.Printf("[SALES-UPLOAD-ERROR] could not record failed run %s: %v", meta.RunID, err)
	} else {
		sum.UploadID = &id
		o.markFailed(ctx, id, sales.UploadCounts{}, cause)
	}
	return failed(sum, fmt.Errorf("%w: %v", ErrRunFailed, cause))
}

// markFailed is best effort: the run is already failing.
func (o *Orchestrator) markFailed(ctx context.Context, uploadID int64, counts sales.UploadCounts, cause error) {
	if err := o.store.UpdateUpload(context.WithoutCancel(ctx), uploadID, sales.UploadFailed, counts, cause.Error()); err != nil {
		log.Printf("[SALES-UPLOAD-ERROR] could not mark upload %d failed: %v", uploadID, err)
	}
	logger.GlobalLogger.LogAudit(fmt.Sprintf("sales upload %d failed: %v", uploadID, cause))
}

func failed(sum Summary, err error) (Summary, error) {
	log.Printf("[SALES-UPLOAD-ERROR] %v", err)
	sum.Success = false
	sum.Outcome = OutcomeFailed
	sum.Message = err.Error()
	return sum, err
}

func noValidData(sum Summary, msg string) Summary {
	sum.Success = false
	sum.Outcome = OutcomeNoValidData
	sum.Message = msg
	return sum
}

func yearsOf(txs []sales.Transaction) []int {
	seen := map[int]bool{}
	var years []int
	for _, tx := range txs {
		if !seen[tx.SourceYear] {
			seen[tx.SourceYear] = true
			years = append(years, tx.SourceYear)
		}
	}
	sort.Ints(years)
	return years
}

func runNotes(c sales.UploadCounts, repeats, diags int) string {
	return fmt.Sprintf("inserted=%d already_existed=%d insertion_errors=%d duplicates_in_source=%d diagnostics=%d",
		c.Inserted, c.AlreadyExisted, c.InsertionErrors, repeats, diags)
}
