package reservations

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Silveira-k7/PragmaL/pkg/logging"
)

// Handler handles HTTP requests for reservations.
type Handler struct {
	repo    *Repository
	service *Service
	logger  *logging.Logger
}

// NewHandler creates a new reservations handler.
func NewHandler(repo *Repository, service *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{repo: repo, service: service, logger: logger}
}

// List handles GET /api/reservations. An optional ?date=YYYY-MM-DD query
// restricts results to one day, matching the calendar view.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	var (
		records []Reservation
		err     error
	)
	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		day, parseErr := time.ParseInLocation("2006-01-02", dateStr, time.Local)
		if parseErr != nil {
			http.Error(w, "invalid date, want YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		records, err = h.repo.ListForDay(r.Context(), day)
	} else {
		records, err = h.repo.List(r.Context())
	}
	if err != nil {
		h.logger.Error("failed to list reservations", "error", err)
		http.Error(w, "failed to list reservations", http.StatusInternalServerError)
		return
	}
	if records == nil {
		records = []Reservation{}
	}
	writeJSON(w, http.StatusOK, records)
}

// CreateRequest carries the payload for one-off reservation creation.
type CreateRequest struct {
	RoomID      string    `json:"room_id"`
	TeacherName string    `json:"teacher_name"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Purpose     string    `json:"purpose"`
}

// Create handles POST /api/reservations.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.RoomID == "" || req.TeacherName == "" {
		http.Error(w, "room_id and teacher_name are required", http.StatusBadRequest)
		return
	}
	if !req.EndTime.After(req.StartTime) {
		http.Error(w, "end_time must be after start_time", http.StatusBadRequest)
		return
	}

	res := Reservation{
		ID:          uuid.NewString(),
		RoomID:      req.RoomID,
		TeacherName: req.TeacherName,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Purpose:     req.Purpose,
	}
	if err := h.repo.Create(r.Context(), res); err != nil {
		h.logger.Error("failed to create reservation", "error", err)
		http.Error(w, "failed to create reservation", http.StatusInternalServerError)
		return
	}

	h.logger.Info("reservation created", "id", res.ID, "room_id", res.RoomID)
	writeJSON(w, http.StatusCreated, res)
}

// CreateSemester handles POST /api/reservations/semester.
func (h *Handler) CreateSemester(w http.ResponseWriter, r *http.Request) {
	var req SemesterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Weeks == 0 {
		req.Weeks = 16
	}

	count, err := h.service.CreateSemester(r.Context(), req)
	if err != nil {
		h.logger.Error("failed to create semester reservations", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]int{"created": count})
}

// Delete handles DELETE /api/reservations/{reservationID}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "reservationID")
	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrReservationNotFound) {
			http.Error(w, "reservation not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to delete reservation", "error", err, "id", id)
		http.Error(w, "failed to delete reservation", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
