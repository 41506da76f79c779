package deed

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"
)

// SQLStore implements DeedStore and AttemptStore over postgres or sqlite.
// Placeholders use the $n form, which both drivers accept.
type SQLStore struct {
	db     *sql.DB
	driver string // "sqlite" or "postgres"
}

func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

func (s *SQLStore) Put(ctx context.Context, d Deed) (Deed, error) {
	d.CreatedAt = time.Now().Unix()
	if s.driver == "postgres" {
		err := s.db.QueryRowContext(ctx, `INSERT INTO deeds
			(filename,file_key,document_type,grantor,grantee,recording_date,dated_date,recording_book,recording_page,instrument_number,created_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11) RETURNING id`,
			d.Filename, d.FileKey, d.DocumentType, d.Grantor, d.Grantee, d.RecordingDate, d.DatedDate,
			d.RecordingBook, d.RecordingPage, d.InstrumentNumber, d.CreatedAt).Scan(&d.ID)
		if err != nil {
			return Deed{}, err
		}
		return d, nil
	}
	res, err := s.db.ExecContext(ctx, `INSERT INTO deeds
		(filename,file_key,document_type,grantor,grantee,recording_date,dated_date,recording_book,recording_page,instrument_number,created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		d.Filename, d.FileKey, d.DocumentType, d.Grantor, d.Grantee, d.RecordingDate, d.DatedDate,
		d.RecordingBook, d.RecordingPage, d.InstrumentNumber, d.CreatedAt)
	if err != nil {
		return Deed{}, err
	}
	d.ID, err = res.LastInsertId()
	if err != nil {
		return Deed{}, err
	}
	return d, nil
}

const deedColumns = `id,filename,file_key,document_type,grantor,grantee,recording_date,dated_date,recording_book,recording_page,instrument_number,created_at`

func scanDeed(row interface{ Scan(...any) error }) (Deed, error) {
	var d Deed
	err := row.Scan(&d.ID, &d.Filename, &d.FileKey, &d.DocumentType, &d.Grantor, &d.Grantee,
		&d.RecordingDate, &d.DatedDate, &d.RecordingBook, &d.RecordingPage, &d.InstrumentNumber, &d.CreatedAt)
	return d, err
}

func (s *SQLStore) Get(ctx context.Context, id int64) (Deed, error) {
	d, err := scanDeed(s.db.QueryRowContext(ctx, `SELECT `+deedColumns+` FROM deeds WHERE id=$1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Deed{}, ErrNotFound
	}
	if err != nil {
		return Deed{}, err
	}
	return d, nil
}

func (s *SQLStore) ListAll(ctx context.Context) ([]Deed, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+deedColumns+` FROM deeds ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Deed
	for rows.Next() {
		d, err := scanDeed(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *SQLStore) UpdateMetadata(ctx context.Context, d Deed) error {
	res, err := s.db.ExecContext(ctx, `UPDATE deeds SET
		document_type=$1, grantor=$2, grantee=$3, recording_date=$4, dated_date=$5,
		recording_book=$6, recording_page=$7, instrument_number=$8
		WHERE id=$9`,
		d.DocumentType, d.Grantor, d.Grantee, d.RecordingDate, d.DatedDate,
		d.RecordingBook, d.RecordingPage, d.InstrumentNumber, d.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLStore) CountWithFile(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM deeds WHERE file_key <> ''`).Scan(&n)
	return n, err
}

// --- attempts ---

const attemptColumns = `id,user_id,deed_id,grantor,grantee,recording_date,dated_date,document_type,total_score,time_taken_seconds,feedback,created_at`

func scanAttempt(row interface{ Scan(...any) error }) (Attempt, error) {
	var a Attempt
	var created int64
	err := row.Scan(&a.ID, &a.UserID, &a.DeedID, &a.Grantor, &a.Grantee, &a.RecordingDate,
		&a.DatedDate, &a.DocumentType, &a.TotalScore, &a.TimeTakenSeconds, &a.Feedback, &created)
	a.CreatedAt = time.Unix(created, 0).UTC()
	return a, err
}

func (s *SQLStore) Insert(ctx context.Context, a Attempt) (Attempt, error) {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO attempts
		(id,user_id,deed_id,grantor,grantee,recording_date,dated_date,document_type,total_score,time_taken_seconds,feedback,created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
		a.ID, a.UserID, a.DeedID, a.Grantor, a.Grantee, a.RecordingDate, a.DatedDate,
		a.DocumentType, a.TotalScore, a.TimeTakenSeconds, a.Feedback, a.CreatedAt.Unix())
	if err != nil {
		return Attempt{}, err
	}
	return a, nil
}

func (s *SQLStore) ListByUser(ctx context.Context, userID string) ([]Attempt, error) {
	return s.List(ctx, AttemptListOpts{UserID: userID, Limit: 200})
}

func (s *SQLStore) List(ctx context.Context, opts AttemptListOpts) ([]Attempt, error) {
	q := `SELECT ` + attemptColumns + ` FROM attempts`
	var args []any
	var where []string
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, cond)
	}
	if opts.UserID != "" {
		add("user_id=$", opts.UserID)
	}
	if !opts.Since.IsZero() {
		add("created_at>=$", opts.Since.Unix())
	}
	if !opts.Until.IsZero() {
		add("created_at<=$", opts.Until.Unix())
	}
	if len(where) > 0 {
		q += " WHERE "
		for i, w := range where {
			if i > 0 {
				q += " AND "
			}
			q += w + strconv.Itoa(i+1)
		}
	}
	q += " ORDER BY created_at DESC, id DESC"
	limit := opts.Limit
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}
	q += " LIMIT " + strconv.Itoa(limit) + " OFFSET " + strconv.Itoa(opts.Offset)

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Attempt
	for rows.Next() {
		a, err := scanAttempt(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *SQLStore) AttemptedDeedIDs(ctx context.Context, userID string) (map[int64]bool, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT deed_id FROM attempts WHERE user_id=$1`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := map[int64]bool{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out[id] = true
	}
	return out, rows.Err()
}

func (s *SQLStore) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*), COALESCE(AVG(total_score),0), COALESCE(MAX(total_score),0) FROM attempts`).
		Scan(&st.TotalAttempts, &avgScanner{&st.AvgScore}, &st.BestScore); err != nil {
		return Stats{}, err
	}
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&st.TotalUsers); err != nil {
		return Stats{}, err
	}
	var err error
	if st.DeedsWithFile, err = s.CountWithFile(ctx); err != nil {
		return Stats{}, err
	}

	// Per-day counts for the trailing week are grouped here rather than in
	// SQL: the date functions differ between the two drivers.
	cutoff := time.Now().UTC().AddDate(0, 0, -7).Unix()
	rows, err := s.db.QueryContext(ctx, `SELECT created_at FROM attempts WHERE created_at>=$1 ORDER BY created_at ASC`, cutoff)
	if err != nil {
		return Stats{}, err
	}
	defer rows.Close()
	counts := map[string]int{}
	var days []string
	for rows.Next() {
		var ts int64
		if err := rows.Scan(&ts); err != nil {
			return Stats{}, err
		}
		day := time.Unix(ts, 0).UTC().Format("2006-01-02")
		if _, seen := counts[day]; !seen {
			days = append(days, day)
		}
		counts[day]++
	}
	if err := rows.Err(); err != nil {
		return Stats{}, err
	}
	for _, day := range days {
		st.Last7Days = append(st.Last7Days, DayCount{Day: day, Attempts: counts[day]})
	}
	return st, nil
}

// avgScanner rounds the SQL AVG (a float on both drivers) into an int field.
type avgScanner struct{ dst *int }

func (a *avgScanner) Scan(src any) error {
	switch v := src.(type) {
	case float64:
		*a.dst = int(v + 0.5)
	case int64:
		*a.dst = int(v)
	case []byte:
		// pgx can hand numeric aggregates back as text
		if f, err := strconv.ParseFloat(string(v), 64); err == nil {
			*a.dst = int(f + 0.5)
		}
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*a.dst = int(f + 0.5)
		}
	case nil:
		*a.dst = 0
	}
	return nil
}
