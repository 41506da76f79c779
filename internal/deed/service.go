package deed

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Service ties the grading and assignment engines to the repositories the
// caller injects. It holds no mutable state of its own and is safe for
// concurrent use; concurrent attempts by the same user are persisted as
// separate rows by design.
type Service struct {
	deeds    DeedStore
	attempts AttemptStore
	probe    ContentProbe
}

func NewService(deeds DeedStore, attempts AttemptStore, probe ContentProbe) *Service {
	return &Service{deeds: deeds, attempts: attempts, probe: probe}
}

// Grade loads the ground truth for deedID and scores the submission against
// it. Returns ErrNotFound when the deed does not exist; nothing else about the
// submission can fail.
func (s *Service) Grade(ctx context.Context, deedID int64, sub Submission) (ScoreOutcome, error) {
	truth, err := s.deeds.Get(ctx, deedID)
	if err != nil {
		return ScoreOutcome{}, err
	}
	return Score(truth, sub), nil
}

// SubmitAttempt grades the submission and persists the attempt row. The
// grading outcome is stored verbatim; persistence failures propagate to the
// caller unchanged.
func (s *Service) SubmitAttempt(ctx context.Context, userID string, deedID int64, sub Submission, timeTakenSeconds int) (Attempt, ScoreOutcome, error) {
	outcome, err := s.Grade(ctx, deedID, sub)
	if err != nil {
		return Attempt{}, ScoreOutcome{}, err
	}
	a := Attempt{
		ID:               uuid.NewString(),
		UserID:           userID,
		DeedID:           deedID,
		Grantor:          sub.Grantor,
		Grantee:          sub.Grantee,
		RecordingDate:    sub.RecordingDate,
		DatedDate:        sub.DatedDate,
		DocumentType:     sub.DocumentType,
		TotalScore:       outcome.TotalScore,
		TimeTakenSeconds: timeTakenSeconds,
		Feedback:         outcome.Feedback,
		CreatedAt:        time.Now().UTC(),
	}
	saved, err := s.attempts.Insert(ctx, a)
	if err != nil {
		return Attempt{}, ScoreOutcome{}, fmt.Errorf("save attempt: %w", err)
	}
	return saved, outcome, nil
}

// NextAssignment returns the lowest-id deed the user has not attempted whose
// scan is retrievable, or ErrNotFound when no more work is available.
func (s *Service) NextAssignment(ctx context.Context, userID string) (Deed, error) {
	catalog, err := s.deeds.ListAll(ctx)
	if err != nil {
		return Deed{}, err
	}
	attempted, err := s.attempts.AttemptedDeedIDs(ctx, userID)
	if err != nil {
		return Deed{}, err
	}
	d, ok := SelectNext(catalog, attempted, func(d Deed) bool {
		if d.FileKey == "" {
			return false
		}
		ok, err := s.probe.Exists(ctx, d.FileKey)
		return err == nil && ok
	})
	if !ok {
		return Deed{}, ErrNotFound
	}
	return d, nil
}
