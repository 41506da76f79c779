package http

import (
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	"github.com/deedlab/deedtrainer/internal/deed"
)

// GET /api/dashboard/stats
func StatsHandler(attempts deed.AttemptStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, err := attempts.Stats(r.Context())
		if err != nil {
			http.Error(w, "failed to compute stats", http.StatusInternalServerError)
			return
		}
		if st.Last7Days == nil {
			st.Last7Days = []deed.DayCount{}
		}
		writeJSON(w, st)
	}
}

// GET /api/dashboard/attempts?user_id=&limit=&offset=
func ListAttemptsHandler(attempts deed.AttemptStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts := deed.AttemptListOpts{
			UserID: r.URL.Query().Get("user_id"),
			Limit:  parseIntDefault(r.URL.Query().Get("limit"), 50),
			Offset: parseIntDefault(r.URL.Query().Get("offset"), 0),
		}
		list, err := attempts.List(r.Context(), opts)
		if err != nil {
			http.Error(w, "failed to load attempts", http.StatusInternalServerError)
			return
		}
		if list == nil {
			list = []deed.Attempt{}
		}
		writeJSON(w, map[string][]deed.Attempt{"attempts": list})
	}
}

// GET /api/dashboard/export?user_id=&since=&until= — attempts as CSV.
func ExportAttemptsHandler(attempts deed.AttemptStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts := deed.AttemptListOpts{
			UserID: r.URL.Query().Get("user_id"),
			Since:  parseDate(r.URL.Query().Get("since")),
			Until:  parseDate(r.URL.Query().Get("until")),
			Limit:  500,
		}
		list, err := attempts.List(r.Context(), opts)
		if err != nil {
			http.Error(w, "failed to export attempts", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="attempts-export.csv"`)
		cw := csv.NewWriter(w)
		_ = cw.Write([]string{"attempt_id", "user_id", "deed_id", "score", "time_seconds", "feedback", "created_at"})
		for _, a := range list {
			_ = cw.Write([]string{
				a.ID,
				a.UserID,
				strconv.FormatInt(a.DeedID, 10),
				strconv.Itoa(a.TotalScore),
				strconv.Itoa(a.TimeTakenSeconds),
				a.Feedback,
				a.CreatedAt.Format(time.RFC3339),
			})
		}
		cw.Flush()
	}
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
