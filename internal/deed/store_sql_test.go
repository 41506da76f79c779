package deed

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deedlab/deedtrainer/internal/db"
)

func newTestStore(t *testing.T) *SQLStore {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "test.db")
	dbh, err := db.Open(context.Background(), db.DriverSQLite, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { dbh.Close() })

	// attempts reference users; seed one
	_, err = dbh.Exec(`INSERT INTO users (id,username,password_hash,role,created_at) VALUES ('u1','alice','x','trainee',0)`)
	require.NoError(t, err)
	return NewSQLStore(dbh, "sqlite")
}

func TestSQLStoreDeedRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	d, err := s.Put(ctx, Deed{
		Filename:      "deed1.pdf",
		FileKey:       "deeds/deed1.pdf",
		Grantor:       "JOHN DOE",
		RecordingDate: "09/24/2020",
	})
	require.NoError(t, err)
	assert.NotZero(t, d.ID)

	got, err := s.Get(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, "JOHN DOE", got.Grantor)
	assert.Equal(t, "deeds/deed1.pdf", got.FileKey)

	_, err = s.Get(ctx, d.ID+1000)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLStoreListAllAscending(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	for _, name := range []string{"a.pdf", "b.pdf", "c.pdf"} {
		_, err := s.Put(ctx, Deed{Filename: name, FileKey: "deeds/" + name})
		require.NoError(t, err)
	}
	list, err := s.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	for i := 1; i < len(list); i++ {
		assert.Less(t, list[i-1].ID, list[i].ID)
	}
}

func TestSQLStoreUpdateMetadata(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	d, err := s.Put(ctx, Deed{Filename: "a.pdf", Grantor: "OLD"})
	require.NoError(t, err)

	d.Grantor = "NEW NAME"
	require.NoError(t, s.UpdateMetadata(ctx, d))

	got, err := s.Get(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, "NEW NAME", got.Grantor)

	missing := d
	missing.ID = d.ID + 99
	assert.ErrorIs(t, s.UpdateMetadata(ctx, missing), ErrNotFound)
}

func TestSQLStoreAttempts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	d, err := s.Put(ctx, Deed{Filename: "a.pdf", FileKey: "deeds/a.pdf"})
	require.NoError(t, err)

	a := Attempt{
		ID:         uuid.NewString(),
		UserID:     "u1",
		DeedID:     d.ID,
		Grantor:    "john doe",
		TotalScore: 67,
		Feedback:   "Grantor correct.",
		CreatedAt:  time.Now().UTC(),
	}
	_, err = s.Insert(ctx, a)
	require.NoError(t, err)

	rows, err := s.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, a.ID, rows[0].ID)
	assert.Equal(t, 67, rows[0].TotalScore)
	assert.Equal(t, "Grantor correct.", rows[0].Feedback)

	ids, err := s.AttemptedDeedIDs(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, ids[d.ID])

	ids, err = s.AttemptedDeedIDs(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestSQLStoreStats(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	d, err := s.Put(ctx, Deed{Filename: "a.pdf", FileKey: "deeds/a.pdf"})
	require.NoError(t, err)

	for _, score := range []int{40, 80} {
		_, err := s.Insert(ctx, Attempt{
			ID:         uuid.NewString(),
			UserID:     "u1",
			DeedID:     d.ID,
			TotalScore: score,
			CreatedAt:  time.Now().UTC(),
		})
		require.NoError(t, err)
	}

	st, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, st.TotalAttempts)
	assert.Equal(t, 60, st.AvgScore)
	assert.Equal(t, 80, st.BestScore)
	assert.Equal(t, 1, st.TotalUsers)
	assert.Equal(t, 1, st.DeedsWithFile)
	require.Len(t, st.Last7Days, 1)
	assert.Equal(t, 2, st.Last7Days[0].Attempts)
}
