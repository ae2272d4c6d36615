// Package reservations owns the persisted reservation records and the
// semester-expansion service that creates them in weekly batches.
package reservations

import (
	"errors"
	"time"
)

// Reservation is one persisted room booking. Records are immutable once
// created; corrections happen by delete and re-create.
type Reservation struct {
	ID          string    `json:"id"`
	RoomID      string    `json:"room_id"`
	TeacherName string    `json:"teacher_name"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Purpose     string    `json:"purpose"`
}

// ErrReservationNotFound is returned when a reservation id does not resolve.
var ErrReservationNotFound = errors.New("reservations: not found")

// SemesterRequest describes a weekly repeating booking to expand and persist.
type SemesterRequest struct {
	RoomID      string    `json:"room_id"`
	TeacherName string    `json:"teacher_name"`
	Purpose     string    `json:"purpose"`
	Start       time.Time `json:"start_time"`
	End         time.Time `json:"end_time"`
	Weeks       int       `json:"weeks"`
}
