package uploads

import (
	"database/sql"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"

	"SalesIngest/api"
	"SalesIngest/api/constants"
	"SalesIngest/api/utils"
	"SalesIngest/internal/config"
	"SalesIngest/internal/sales"
)

// ListUploadsHandler serves GET /sales/uploads?company_id=1&status=failed,processing&page=2&limit=20.
// Newest first.
func ListUploadsHandler(db *sql.DB) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		var companyID sql.NullInt64
		if v := strings.TrimSpace(q.Get(constants.FormCompanyID)); v != "" {
			id, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				api.RespondWithError(w, http.StatusBadRequest, constants.ErrInvalidCompanyID)
				return
			}
			companyID = sql.NullInt64{Int64: id, Valid: true}
		}
		page, err := utils.ExtractPagination(r, config.DefaultUploadsLimit, config.MaxUploadsLimit)
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrInvalidLimit)
			return
		}
		var statuses []string
		for _, s := range strings.Split(q.Get("status"), ",") {
			if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
				statuses = append(statuses, s)
			}
		}

		const filter = `
			WHERE ($1::bigint IS NULL OR company_id = $1)
			  AND (coalesce(cardinality($2::text[]), 0) = 0 OR status = ANY($2::text[]))`
		total, err := utils.CountTotal(r.Context(), db, `SELECT count(*) FROM sales_uploads`+filter, companyID, pq.Array(statuses))
		if err != nil {
			log.Printf("[ERROR] count sales uploads: %v", err)
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrQueryFailed)
			return
		}
		page.SetPaginationStats(total)

		rows, err := db.QueryContext(r.Context(), `
			SELECT id, run_id, company_id, submodule, file_name, file_size, file_hash,
			       period_start, period_end, status, records_count, inserted_count,
			       already_existed_count, insertion_error_count, notes, uploaded_by,
			       created_at, updated_at
			FROM sales_uploads`+filter+`
			ORDER BY created_at DESC, id DESC
			LIMIT $3 OFFSET $4`,
			companyID, pq.Array(statuses), page.Limit, page.Offset)
		if err != nil {
			log.Printf("[ERROR] list sales uploads: %v", err)
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrQueryFailed)
			return
		}
		defer rows.Close()

		out := []sales.UploadRecord{}
		for rows.Next() {
			var (
				u          sales.UploadRecord
				status     string
				start, end sql.NullTime
			)
			if err := rows.Scan(&u.ID, &u.RunID, &u.CompanyID, &u.Submodule, &u.FileName, &u.FileSize, &u.FileHash,
				&start, &end, &status, &u.RecordsCount, &u.Inserted,
				&u.AlreadyExisted, &u.InsertionErrors, &u.Notes, &u.UploadedBy,
				&u.CreatedAt, &u.UpdatedAt); err != nil {
				log.Printf("[ERROR] scan sales upload: %v", err)
				api.RespondWithError(w, http.StatusInternalServerError, constants.ErrDatabaseScanFailed)
				return
			}
			u.Status = sales.UploadStatus(status)
			u.PeriodStart = nullTime(start)
			u.PeriodEnd = nullTime(end)
			out = append(out, u)
		}
		if err := rows.Err(); err != nil {
			log.Printf("[ERROR] iterate sales uploads: %v", err)
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrQueryFailed)
			return
		}
		api.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
			"success":    true,
			"rows":       out,
			"pagination": page,
		})
	})
}

func nullTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	return &t.Time
}
