// Package recurrence expands a single reservation template into the weekly
// series that makes up a semester booking.
package recurrence

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidWeekCount indicates the requested week count is not a positive integer.
var ErrInvalidWeekCount = errors.New("recurrence: week count must be at least 1")

// ErrInvalidDuration indicates the template end does not follow its start.
var ErrInvalidDuration = errors.New("recurrence: template end must be after start")

// Template carries the fields copied verbatim into every generated occurrence.
type Template struct {
	RoomID      string
	TeacherName string
	Purpose     string
	Start       time.Time
	End         time.Time
}

// Occurrence is one generated reservation instance.
type Occurrence struct {
	ID          string
	RoomID      string
	TeacherName string
	Purpose     string
	Start       time.Time
	End         time.Time
}

// Expander generates weekly occurrences from a template.
type Expander struct {
	newID func() string
}

// NewExpander constructs an Expander. A nil id generator defaults to UUIDs.
func NewExpander(newID func() string) *Expander {
	if newID == nil {
		newID = uuid.NewString
	}
	return &Expander{newID: newID}
}

// Expand produces exactly weekCount occurrences spaced seven days apart.
// The caller is responsible for substituting the semester default before
// calling; no defaulting happens here.
func (e *Expander) Expand(template Template, weekCount int) ([]Occurrence, error) {
	if weekCount < 1 {
		return nil, ErrInvalidWeekCount
	}
	if !template.End.After(template.Start) {
		return nil, ErrInvalidDuration
	}

	occurrences := make([]Occurrence, 0, weekCount)
	for i := 0; i < weekCount; i++ {
		occurrences = append(occurrences, Occurrence{
			ID:          e.newID(),
			RoomID:      template.RoomID,
			TeacherName: template.TeacherName,
			Purpose:     template.Purpose,
			Start:       template.Start.AddDate(0, 0, 7*i),
			End:         template.End.AddDate(0, 0, 7*i),
		})
	}
	return occurrences, nil
}
