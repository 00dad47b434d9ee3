package store

import (
	"testing"
	"time"

	"github.com/cg14823/outage-wait/outage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreHandsOutCopies(t *testing.T) {
	start := time.Date(2023, 4, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	s := NewMemoryStore(1, &outage.Outage{ID: 1, Title: "original", Start: start, End: &end})

	first, err := s.FindOutageByID(1)
	require.NoError(t, err)
	require.NotNil(t, first)

	first.Title = "mutated"
	*first.End = end.Add(time.Hour)

	second, err := s.FindOutageByID(1)
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.Equal(t, "original", second.Title)
	assert.True(t, second.End.Equal(end))
}

func TestMemoryStoreActiveLookup(t *testing.T) {
	start := time.Date(2023, 4, 1, 10, 0, 0, 0, time.UTC)
	s := NewMemoryStore(2,
		&outage.Outage{ID: 1, Title: "first", Start: start},
		&outage.Outage{ID: 2, Title: "second", Start: start.Add(time.Hour)},
	)

	active, err := s.FindActiveOutage()
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, int64(2), active.ID)

	none, err := NewMemoryStore(0).FindActiveOutage()
	require.NoError(t, err)
	assert.Nil(t, none)
}
