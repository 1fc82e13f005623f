package constants

// ============================================================================
// REQUEST ERRORS
// ============================================================================

const (
	ErrMethodNotAllowed  = "Method Not Allowed"
	ErrRouteNotFound     = "Route not found"
	ErrUserIDRequired    = "user_id is required in the request"
	ErrInvalidCompanyID  = "company_id must be a number"
	ErrInvalidPeriod     = "period dates must be in YYYY-MM-DD or DD-MM-YYYY format"
	ErrInvalidTargetYear = "target_year must be a four digit year"
	ErrInvalidLimit      = "page and limit must be positive numbers"
)

// ============================================================================
// UPLOAD ERRORS
// ============================================================================

const (
	ErrFormUnreadable    = "Unable to read the uploaded file. Please try again."
	ErrFileMissing       = "No file was attached to the upload. Please choose a file."
	ErrFileUnsupported   = "We could not read this file as an Excel workbook (.xlsx or .xls). Please check the file format and try again."
	ErrChecksumMismatch  = "The uploaded file does not match its declared checksum. Please upload it again."
	ErrUploadNotRecorded = "The sales upload could not be completed. Check the upload history before trying again."
)

// ============================================================================
// DATABASE OPERATION ERRORS
// ============================================================================

const (
	ErrDatabaseConnection = "Database connection failed. Please try again later"
	ErrQueryFailed        = "Database query failed. Please contact support if this persists"
	ErrDatabaseScanFailed = "Failed to read database results"
)
