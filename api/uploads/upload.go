package uploads

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"SalesIngest/api"
	"SalesIngest/api/constants"
	"SalesIngest/internal/checksum"
	"SalesIngest/internal/config"
	"SalesIngest/internal/ingest"
	"SalesIngest/internal/workbook"
)

// UploadSalesHandler accepts a multipart form with the workbook under "file"
// and runs it through the orchestrator.
func UploadSalesHandler(orch *ingest.Orchestrator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, config.MaxUploadBytes+1<<20)
		if err := r.ParseMultipartForm(config.MaxUploadBytes); err != nil {
			log.Printf("[SALES-UPLOAD-ERROR] Failed to parse multipart form: %v", err)
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrFormUnreadable)
			return
		}
		userID := strings.TrimSpace(r.FormValue(constants.FormUserID))
		if userID == "" {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrUserIDRequired)
			return
		}
		req, msg := requestFromForm(r)
		if msg != "" {
			api.RespondWithError(w, http.StatusBadRequest, msg)
			return
		}
		req.ActorID = userID

		file, header, err := r.FormFile(constants.FormFile)
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrFileMissing)
			return
		}
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			log.Printf("[SALES-UPLOAD-ERROR] read %s: %v", header.Filename, err)
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrFormUnreadable)
			return
		}

		sum, err := checksum.NewMatcher(r.FormValue(constants.FormChecksum)).Match(data)
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, userFriendlyUploadError(err))
			return
		}
		wb, err := workbook.Open(data, header.Filename)
		if err != nil {
			log.Printf("[SALES-UPLOAD-ERROR] open %s: %v", header.Filename, err)
			api.RespondWithError(w, http.StatusUnprocessableEntity, userFriendlyUploadError(err))
			return
		}
		req.FileName = header.Filename
		req.FileSize = int64(len(data))
		req.FileHash = sum
		req.Workbook = wb

		summary, err := orch.Ingest(r.Context(), req)
		if err != nil {
			summary.Message = userFriendlyUploadError(err)
			api.RespondWithJSON(w, http.StatusInternalServerError, summary)
			return
		}
		status := http.StatusOK
		if summary.Outcome == ingest.OutcomeNoValidData {
			status = http.StatusUnprocessableEntity
		}
		api.LogInfo("sales upload %s by %s: %s", header.Filename, userID, summary.Outcome)
		api.RespondWithJSON(w, status, summary)
	})
}

// requestFromForm reads the optional declared fields. A non-empty message
// means the form is invalid.
func requestFromForm(r *http.Request) (ingest.Request, string) {
	var req ingest.Request
	if v := strings.TrimSpace(r.FormValue(constants.FormCompanyID)); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return req, constants.ErrInvalidCompanyID
		}
		req.CompanyID = &id
	}
	var ok bool
	if req.PeriodStart, ok = formDate(r, constants.FormPeriodStart); !ok {
		return req, constants.ErrInvalidPeriod
	}
	if req.PeriodEnd, ok = formDate(r, constants.FormPeriodEnd); !ok {
		return req, constants.ErrInvalidPeriod
	}
	if v := strings.TrimSpace(r.FormValue(constants.FormTargetYear)); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil || y < 1990 || y > 2100 {
			return req, constants.ErrInvalidTargetYear
		}
		req.TargetYear = y
	}
	return req, ""
}

func formDate(r *http.Request, field string) (*time.Time, bool) {
	v := strings.TrimSpace(r.FormValue(field))
	if v == "" {
		return nil, true
	}
	for _, layout := range []string{constants.DateFormat, constants.DateFormatAlt} {
		if t, err := time.Parse(layout, v); err == nil {
			return &t, true
		}
	}
	return nil, false
}

func userFriendlyUploadError(err error) string {
	if err == nil {
		return ""
	}
	switch {
	case errors.Is(err, checksum.ErrMismatch):
		return constants.ErrChecksumMismatch
	case errors.Is(err, workbook.ErrUnsupportedFormat):
		return constants.ErrFileUnsupported
	case errors.Is(err, ingest.ErrRunFailed):
		return constants.ErrUploadNotRecorded
	}
	log.Println("[SALES-UPLOAD-ERROR] unmapped upload error:", err)
	return constants.ErrUploadNotRecorded
}
