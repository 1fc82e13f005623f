package sales

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Layout identifies one of the two spreadsheet arrangements produced by the
// business units.
type Layout int

const (
	LayoutUnknown Layout = iota
	LayoutA
	LayoutB
)

func (l Layout) String() string {
	switch l {
	case LayoutA:
		return "LAYOUT_A"
	case LayoutB:
		return "LAYOUT_B"
	default:
		return "UNKNOWN"
	}
}

// ParseLayout accepts "LAYOUT_A", "a", "layout_b"... as written in services.yaml.
func ParseLayout(s string) Layout {
	s = strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(s)), "LAYOUT_")
	switch s {
	case "A":
		return LayoutA
	case "B":
		return LayoutB
	}
	return LayoutUnknown
}

var ErrInvalidTransaction = errors.New("invalid transaction")

// FieldError names the required field a row is missing.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string { return e.Reason }

func (e *FieldError) Unwrap() error { return ErrInvalidTransaction }

// Transaction is the canonical unit of work of the ingestion pipeline.
type Transaction struct {
	Date          time.Time
	DocumentRef   *string
	ClientName    string
	ProductName   string
	Quantity      decimal.Decimal
	UnitPrice     decimal.NullDecimal
	TotalAmount   decimal.NullDecimal
	LocalAmount   decimal.NullDecimal
	ExchangeRate  decimal.NullDecimal
	ProductFamily *string
	UnitOfMeasure *string
	UnitCost      decimal.NullDecimal
	GrossMargin   decimal.NullDecimal
	SourceYear    int
	SourceMonth   int

	// provenance
	SourceSheet string
	SourceRow   int
}

// NewTransaction is the only way to build a Transaction; the required fields
// are checked here so parsers can never emit a partial row.
func NewTransaction(date time.Time, client, product string, qty decimal.Decimal) (Transaction, error) {
	client = strings.TrimSpace(client)
	product = strings.TrimSpace(product)
	switch {
	case date.IsZero():
		return Transaction{}, &FieldError{Field: "date", Reason: "missing date"}
	case client == "":
		return Transaction{}, &FieldError{Field: "client", Reason: "missing client name"}
	case product == "":
		return Transaction{}, &FieldError{Field: "product", Reason: "missing product name"}
	case !qty.IsPositive():
		return Transaction{}, &FieldError{Field: "quantity", Reason: fmt.Sprintf("quantity must be positive, got %s", qty.String())}
	}
	d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return Transaction{
		Date:        d,
		ClientName:  client,
		ProductName: product,
		Quantity:    qty,
		SourceYear:  d.Year(),
		SourceMonth: int(d.Month()),
	}, nil
}

// Diagnostic records why a row was dropped. It is never fatal.
type Diagnostic struct {
	Sheet   string
	Row     int
	Message string
}

func (d Diagnostic) String() string {
	if d.Sheet == "" {
		return fmt.Sprintf("row %d: %s", d.Row, d.Message)
	}
	return fmt.Sprintf("sheet %q row %d: %s", d.Sheet, d.Row, d.Message)
}

// Company ties a business unit to the layout it reports in.
type Company struct {
	ID        int64  `yaml:"id" json:"id"`
	Name      string `yaml:"name" json:"name"`
	Submodule string `yaml:"submodule" json:"submodule"`
	Layout    Layout `yaml:"-" json:"-"`
}

type UploadStatus string

const (
	UploadProcessing UploadStatus = "processing"
	UploadProcessed  UploadStatus = "processed"
	UploadFailed     UploadStatus = "failed"
)

// UploadMeta is what the orchestrator knows when it opens an upload record.
type UploadMeta struct {
	RunID       uuid.UUID  `json:"run_id"`
	CompanyID   int64      `json:"company_id"`
	Submodule   string     `json:"submodule"`
	FileName    string     `json:"file_name"`
	FileSize    int64      `json:"file_size"`
	FileHash    string     `json:"file_hash"`
	PeriodStart *time.Time `json:"period_start,omitempty"`
	PeriodEnd   *time.Time `json:"period_end,omitempty"`
	UploadedBy  string     `json:"uploaded_by"`

	// transactions parsed from the file, before dedup
	RecordsCount int `json:"records_count"`
}

// UploadCounts are written once, when the run finishes.
type UploadCounts struct {
	Inserted        int `json:"inserted"`
	AlreadyExisted  int `json:"already_existed"`
	InsertionErrors int `json:"insertion_errors"`
}

// UploadRecord is the bookkeeping row for one ingestion attempt.
type UploadRecord struct {
	ID int64 `json:"id"`
	UploadMeta
	Status UploadStatus `json:"status"`
	UploadCounts
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
