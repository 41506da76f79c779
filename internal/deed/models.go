package deed

import "time"

// Deed is the authoritative record for one scanned document: the ground-truth
// field values trainees are graded against, plus the storage key of the scan
// itself. Empty fields are not graded for this document.
type Deed struct {
	ID               int64  `json:"id"`
	Filename         string `json:"filename"`
	FileKey          string `json:"file_key"` // blob storage key; empty means no scan uploaded
	DocumentType     string `json:"document_type,omitempty"`
	Grantor          string `json:"grantor,omitempty"`
	Grantee          string `json:"grantee,omitempty"`
	RecordingDate    string `json:"recording_date,omitempty"`
	DatedDate        string `json:"dated_date,omitempty"`
	RecordingBook    string `json:"recording_book,omitempty"`
	RecordingPage    string `json:"recording_page,omitempty"`
	InstrumentNumber string `json:"instrument_number,omitempty"`
	CreatedAt        int64  `json:"created_at,omitempty"`
}

// Submission is one user's typed answers for a deed. All fields optional and
// taken as entered; normalization happens only inside scoring.
type Submission struct {
	Grantor          string `json:"grantor"`
	Grantee          string `json:"grantee"`
	RecordingDate    string `json:"recording_date"`
	DatedDate        string `json:"dated_date"`
	DocumentType     string `json:"document_type"`
	RecordingBook    string `json:"recording_book"`
	RecordingPage    string `json:"recording_page"`
	InstrumentNumber string `json:"instrument_number"`
}

// FieldResult is the per-field outcome of grading. Expected and Got carry the
// raw values as stored/entered, never the normalized forms.
type FieldResult struct {
	Label    string `json:"label"`
	Passed   bool   `json:"passed"`
	Expected string `json:"expected"`
	Got      string `json:"got"`
}

// ScoreOutcome is the full result of grading one submission.
type ScoreOutcome struct {
	TotalScore int           `json:"total_score"` // 0..100
	Fields     []FieldResult `json:"fields"`
	Feedback   string        `json:"feedback"`
}

// Attempt is a persisted grading event. Attempts are insert-only; each
// submission is a distinct training event even for the same deed.
type Attempt struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	DeedID           int64     `json:"deed_id"`
	Grantor          string    `json:"grantor,omitempty"`
	Grantee          string    `json:"grantee,omitempty"`
	RecordingDate    string    `json:"recording_date,omitempty"`
	DatedDate        string    `json:"dated_date,omitempty"`
	DocumentType     string    `json:"document_type,omitempty"`
	TotalScore       int       `json:"total_score"`
	TimeTakenSeconds int       `json:"time_taken_seconds"`
	Feedback         string    `json:"feedback"`
	CreatedAt        time.Time `json:"created_at"`
}

// AttemptListOpts filters attempt listings for dashboards and exports.
type AttemptListOpts struct {
	UserID string
	Since  time.Time
	Until  time.Time
	Limit  int
	Offset int
}

// Stats is the aggregate dashboard view over all attempts.
type Stats struct {
	TotalAttempts int        `json:"total_attempts"`
	AvgScore      int        `json:"avg_score"`
	BestScore     int        `json:"best_score"`
	TotalUsers    int        `json:"total_users"`
	DeedsWithFile int        `json:"deeds_with_file"`
	Last7Days     []DayCount `json:"last_7_days"`
}

// DayCount is one day's attempt count for the activity chart.
type DayCount struct {
	Day      string `json:"day"` // YYYY-MM-DD
	Attempts int    `json:"attempts"`
}
