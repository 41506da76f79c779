package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/deedlab/deedtrainer/internal/deed"
	"github.com/deedlab/deedtrainer/internal/metrics"
	"github.com/deedlab/deedtrainer/internal/rbac"
)

type submitAttemptRequest struct {
	DeedID           int64  `json:"deed_id"`
	Grantor          string `json:"grantor"`
	Grantee          string `json:"grantee"`
	RecordingDate    string `json:"recording_date"`
	DatedDate        string `json:"dated_date"`
	DocumentType     string `json:"document_type"`
	RecordingBook    string `json:"recording_book"`
	RecordingPage    string `json:"recording_page"`
	InstrumentNumber string `json:"instrument_number"`
	TimeTakenSeconds int    `json:"time_taken_seconds"`
}

// POST /api/attempts — grade a submission against the deed's ground truth and
// persist the attempt.
func SubmitAttemptHandler(svc *deed.Service, m *metrics.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := subjectOr401(w, r)
		if userID == "" {
			return
		}
		var req submitAttemptRequest
		if err := decodeJSON(r, &req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if req.DeedID == 0 {
			http.Error(w, "deed_id is required", http.StatusBadRequest)
			return
		}
		sub := deed.Submission{
			Grantor:          req.Grantor,
			Grantee:          req.Grantee,
			RecordingDate:    req.RecordingDate,
			DatedDate:        req.DatedDate,
			DocumentType:     req.DocumentType,
			RecordingBook:    req.RecordingBook,
			RecordingPage:    req.RecordingPage,
			InstrumentNumber: req.InstrumentNumber,
		}
		a, outcome, err := svc.SubmitAttempt(r.Context(), userID, req.DeedID, sub, req.TimeTakenSeconds)
		if errors.Is(err, deed.ErrNotFound) {
			http.Error(w, "deed not found", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		m.AttemptsGraded.Inc()
		m.ScoreHistogram.Observe(float64(outcome.TotalScore))
		writeJSON(w, map[string]any{
			"attempt":  a,
			"score":    outcome.TotalScore,
			"fields":   outcome.Fields,
			"feedback": outcome.Feedback,
		})
	}
}

// GET /api/attempts/my — the caller's attempts, newest first.
func MyAttemptsHandler(attempts deed.AttemptStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := subjectOr401(w, r)
		if userID == "" {
			return
		}
		list, err := attempts.ListByUser(r.Context(), userID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if list == nil {
			list = []deed.Attempt{}
		}
		writeJSON(w, map[string][]deed.Attempt{"attempts": list})
	}
}

func subjectOr401(w http.ResponseWriter, r *http.Request) string {
	sub := rbac.SubjectFromContext(r.Context())
	if sub == "" {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
	}
	return sub
}

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}
