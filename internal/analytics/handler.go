package analytics

import (
	"encoding/csv"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/Silveira-k7/PragmaL/pkg/logging"
)

// Handler serves the reporting endpoints backing the dashboard charts.
type Handler struct {
	repo   *Repository
	logger *logging.Logger
	now    func() time.Time
}

// NewHandler creates an analytics handler. A nil clock defaults to time.Now.
func NewHandler(repo *Repository, logger *logging.Logger, now func() time.Time) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if now == nil {
		now = time.Now
	}
	return &Handler{repo: repo, logger: logger, now: now}
}

func (h *Handler) periodRange(r *http.Request) (time.Time, time.Time, error) {
	period := Period(r.URL.Query().Get("period"))
	if period == "" {
		period = PeriodMonth
	}
	return period.Range(h.now())
}

// GetStats handles GET /api/analytics/stats?period=week|month|year.
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	start, end, err := h.periodRange(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	stats, err := h.repo.GetStats(r.Context(), start, end)
	if err != nil {
		h.logger.Error("failed to aggregate stats", "error", err)
		http.Error(w, "failed to aggregate stats", http.StatusInternalServerError)
		return
	}
	writeJSON(w, stats)
}

// TeacherRanking handles GET /api/analytics/teachers?period=...&limit=N.
func (h *Handler) TeacherRanking(w http.ResponseWriter, r *http.Request) {
	start, end, err := h.periodRange(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	ranking, err := h.repo.TeacherRanking(r.Context(), start, end, limit)
	if err != nil {
		h.logger.Error("failed to rank teachers", "error", err)
		http.Error(w, "failed to rank teachers", http.StatusInternalServerError)
		return
	}
	if ranking == nil {
		ranking = []TeacherCount{}
	}
	writeJSON(w, ranking)
}

// RoomUsage handles GET /api/analytics/rooms?period=....
func (h *Handler) RoomUsage(w http.ResponseWriter, r *http.Request) {
	start, end, err := h.periodRange(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	usage, err := h.repo.RoomUsage(r.Context(), start, end)
	if err != nil {
		h.logger.Error("failed to compute room usage", "error", err)
		http.Error(w, "failed to compute room usage", http.StatusInternalServerError)
		return
	}
	if usage == nil {
		usage = []RoomCount{}
	}
	writeJSON(w, usage)
}

// Export handles GET /api/analytics/export?period=... and streams CSV.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	start, end, err := h.periodRange(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rows, err := h.repo.ExportRows(r.Context(), start, end)
	if err != nil {
		h.logger.Error("failed to export reservations", "error", err)
		http.Error(w, "failed to export reservations", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="agendamentos.csv"`)

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"professor", "disciplina", "sala", "bloco", "inicio", "fim"})
	for _, row := range rows {
		_ = cw.Write([]string{
			row.TeacherName,
			row.Purpose,
			row.RoomName,
			row.BlockName,
			row.StartTime.Format("02/01/2006 15:04"),
			row.EndTime.Format("02/01/2006 15:04"),
		})
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		h.logger.Error("failed to flush csv export", "error", err)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
