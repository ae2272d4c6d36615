package reservations

import (
	"context"
	"fmt"

	"github.com/Silveira-k7/PragmaL/internal/recurrence"
	"github.com/Silveira-k7/PragmaL/pkg/logging"
)

// Store is the persistence surface the service writes through.
type Store interface {
	CreateBatch(ctx context.Context, records []Reservation) error
}

// Service expands semester requests into weekly records and persists them.
type Service struct {
	store    Store
	expander *recurrence.Expander
	logger   *logging.Logger
}

// NewService wires the semester-expansion service.
func NewService(store Store, expander *recurrence.Expander, logger *logging.Logger) *Service {
	if expander == nil {
		expander = recurrence.NewExpander(nil)
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{store: store, expander: expander, logger: logger}
}

// CreateSemester expands the request into one record per week and persists the
// whole series atomically. It returns the number of records created. Weeks must
// already be resolved by the caller; there is no defaulting here.
func (s *Service) CreateSemester(ctx context.Context, req SemesterRequest) (int, error) {
	occurrences, err := s.expander.Expand(recurrence.Template{
		RoomID:      req.RoomID,
		TeacherName: req.TeacherName,
		Purpose:     req.Purpose,
		Start:       req.Start,
		End:         req.End,
	}, req.Weeks)
	if err != nil {
		return 0, err
	}

	records := make([]Reservation, 0, len(occurrences))
	for _, occ := range occurrences {
		records = append(records, Reservation{
			ID:          occ.ID,
			RoomID:      occ.RoomID,
			TeacherName: occ.TeacherName,
			StartTime:   occ.Start,
			EndTime:     occ.End,
			Purpose:     occ.Purpose,
		})
	}

	if err := s.store.CreateBatch(ctx, records); err != nil {
		return 0, fmt.Errorf("reservations: persist semester: %w", err)
	}

	s.logger.Info("semester reservations created",
		"room_id", req.RoomID,
		"teacher", req.TeacherName,
		"weeks", req.Weeks,
	)
	return len(records), nil
}
