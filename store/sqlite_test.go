package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *sqliteStore {
	t.Helper()

	st, err := NewSQLiteStore(filepath.Join(t.TempDir(), "outages.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	return st.(*sqliteStore)
}

func insertOutage(t *testing.T, s *sqliteStore, title string, start time.Time, end *time.Time, active bool) int64 {
	t.Helper()

	var endUnix interface{}
	if end != nil {
		endUnix = end.UTC().Unix()
	}

	res, err := s.db.Exec(`INSERT INTO outage(title, start, end, active) VALUES(?, ?, ?, ?);`,
		title, start.UTC().Unix(), endUnix, active)
	require.NoError(t, err)

	id, err := res.LastInsertId()
	require.NoError(t, err)
	return id
}

func TestFindOutageByID(t *testing.T) {
	s := newTestStore(t)

	start := time.Date(2023, 4, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	id := insertOutage(t, s, "network upgrade", start, &end, false)

	got, err := s.FindOutageByID(id)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, id, got.ID)
	require.Equal(t, "network upgrade", got.Title)
	require.True(t, got.Start.Equal(start))
	require.NotNil(t, got.End)
	require.True(t, got.End.Equal(end))
}

func TestFindOutageByIDMissing(t *testing.T) {
	s := newTestStore(t)

	got, err := s.FindOutageByID(42)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestFindOutageByIDNullEnd(t *testing.T) {
	s := newTestStore(t)

	start := time.Date(2023, 4, 1, 10, 0, 0, 0, time.UTC)
	id := insertOutage(t, s, "open ended", start, nil, false)

	got, err := s.FindOutageByID(id)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Nil(t, got.End)
}

func TestFindActiveOutage(t *testing.T) {
	s := newTestStore(t)

	start := time.Date(2023, 4, 1, 10, 0, 0, 0, time.UTC)
	insertOutage(t, s, "not this one", start, nil, false)
	want := insertOutage(t, s, "this one", start.Add(time.Hour), nil, true)

	got, err := s.FindActiveOutage()
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, want, got.ID)
	require.Equal(t, "this one", got.Title)
}

func TestFindActiveOutageNone(t *testing.T) {
	s := newTestStore(t)

	start := time.Date(2023, 4, 1, 10, 0, 0, 0, time.UTC)
	insertOutage(t, s, "scheduled but not active", start, nil, false)

	got, err := s.FindActiveOutage()
	require.NoError(t, err)
	require.Nil(t, got)
}
