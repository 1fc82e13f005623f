package constants

// Content Types
const (
	ContentTypeJSON   = "application/json"
	ContentTypeHeader = "Content-Type"
)

// Date formats
const (
	DateFormat    = "2006-01-02"
	DateFormatAlt = "02-01-2006"
)

// Multipart fields of the sales upload form
const (
	FormFile        = "file"
	FormUserID      = "user_id"
	FormCompanyID   = "company_id"
	FormPeriodStart = "period_start"
	FormPeriodEnd   = "period_end"
	FormTargetYear  = "target_year"
	FormChecksum    = "checksum"
)
