package ingest

import "SalesIngest/internal/sales"

type Outcome string

const (
	OutcomeIngested    Outcome = "ingested"
	OutcomeNoValidData Outcome = "no_valid_data"
	OutcomeNothingNew  Outcome = "nothing_new"
	OutcomeFailed      Outcome = "failed"
)

// Summary is returned to the upload handler and the CLI as-is.
type Summary struct {
	Success  bool    `json:"success"`
	UploadID *int64  `json:"uploadId"`
	Message  string  `json:"message"`
	Outcome  Outcome `json:"outcome"`
	Details  Details `json:"details"`
}

type Details struct {
	DetectedCompany    string   `json:"detectedCompany"`
	CompanyID          int64    `json:"companyId"`
	Submodule          string   `json:"submodule"`
	Layout             string   `json:"layout"`
	SourceSheets       []string `json:"sourceSheets"`
	TotalInSource      int      `json:"totalInSource"`
	AlreadyExisted     int      `json:"alreadyExisted"`
	DuplicatesInSource int      `json:"duplicatesInSource"`
	NewlyInserted      int      `json:"newlyInserted"`
	InsertionErrors    int      `json:"insertionErrors"`
	ParserDiagnostics  []string `json:"parserDiagnostics"`
}

func diagnosticStrings(diags []sales.Diagnostic) []string {
	out := make([]string, 0, len(diags))
	for _, d := range diags {
		out = append(out, d.String())
	}
	return out
}
