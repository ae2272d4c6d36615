package recurrence

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("res-%d", n)
	}
}

func TestExpandThreeWeeks(t *testing.T) {
	// 2024-03-04 is a Monday.
	start := time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 4, 8, 50, 0, 0, time.UTC)

	e := NewExpander(sequentialIDs())
	occurrences, err := e.Expand(Template{
		RoomID:      "room-7",
		TeacherName: "Prof. Ana Silva",
		Purpose:     "Cálculo",
		Start:       start,
		End:         end,
	}, 3)
	require.NoError(t, err)
	require.Len(t, occurrences, 3)

	wantDates := []string{"2024-03-04", "2024-03-11", "2024-03-18"}
	for i, occ := range occurrences {
		assert.Equal(t, wantDates[i], occ.Start.Format("2006-01-02"))
		assert.Equal(t, "08:00", occ.Start.Format("15:04"))
		assert.Equal(t, "08:50", occ.End.Format("15:04"))
		assert.Equal(t, "room-7", occ.RoomID)
		assert.Equal(t, "Prof. Ana Silva", occ.TeacherName)
		assert.Equal(t, "Cálculo", occ.Purpose)
		assert.Equal(t, fmt.Sprintf("res-%d", i+1), occ.ID)
	}
}

func TestExpandSpacingIsExactlySevenDays(t *testing.T) {
	start := time.Date(2025, 2, 6, 14, 5, 0, 0, time.UTC)
	end := start.Add(50 * time.Minute)

	for _, weeks := range []int{1, 2, 5, 16, 20} {
		e := NewExpander(nil)
		occurrences, err := e.Expand(Template{RoomID: "r", TeacherName: "t", Purpose: "p", Start: start, End: end}, weeks)
		require.NoError(t, err)
		require.Len(t, occurrences, weeks)
		for i := 1; i < len(occurrences); i++ {
			assert.Equal(t, 7*24*time.Hour, occurrences[i].Start.Sub(occurrences[i-1].Start))
			assert.Equal(t, 7*24*time.Hour, occurrences[i].End.Sub(occurrences[i-1].End))
		}
	}
}

func TestExpandGeneratesUniqueIDs(t *testing.T) {
	start := time.Date(2025, 2, 6, 8, 0, 0, 0, time.UTC)
	e := NewExpander(nil)
	occurrences, err := e.Expand(Template{Start: start, End: start.Add(time.Hour)}, 16)
	require.NoError(t, err)

	seen := make(map[string]struct{}, len(occurrences))
	for _, occ := range occurrences {
		_, dup := seen[occ.ID]
		assert.False(t, dup, "duplicate id %s", occ.ID)
		seen[occ.ID] = struct{}{}
	}
}

func TestExpandRejectsInvalidInput(t *testing.T) {
	start := time.Date(2025, 2, 6, 8, 0, 0, 0, time.UTC)
	e := NewExpander(nil)

	_, err := e.Expand(Template{Start: start, End: start.Add(time.Hour)}, 0)
	assert.ErrorIs(t, err, ErrInvalidWeekCount)

	_, err = e.Expand(Template{Start: start, End: start.Add(time.Hour)}, -3)
	assert.ErrorIs(t, err, ErrInvalidWeekCount)

	_, err = e.Expand(Template{Start: start, End: start}, 2)
	assert.ErrorIs(t, err, ErrInvalidDuration)
}
