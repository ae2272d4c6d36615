// Package analytics aggregates reservation data into the dashboard's
// reporting views: period totals, teacher rankings, room utilization and a
// CSV export of the raw records.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Period selects the reporting window, anchored at "now" and reaching back.
type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

// Range returns the [start, end) window the period covers, ending at now.
func (p Period) Range(now time.Time) (start, end time.Time, err error) {
	end = now
	switch p {
	case PeriodWeek:
		return now.AddDate(0, 0, -7), end, nil
	case PeriodMonth:
		return now.AddDate(0, -1, 0), end, nil
	case PeriodYear:
		return now.AddDate(-1, 0, 0), end, nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("analytics: unknown period %q", p)
	}
}

// Stats is the aggregated view of one reporting period.
type Stats struct {
	TotalReservations int64   `json:"total_reservations"`
	DistinctTeachers  int64   `json:"distinct_teachers"`
	DistinctRooms     int64   `json:"distinct_rooms"`
	TotalHours        float64 `json:"total_hours"`
	PeriodStart       string  `json:"period_start"`
	PeriodEnd         string  `json:"period_end"`
}

// TeacherCount ranks one teacher by reservation volume.
type TeacherCount struct {
	TeacherName  string `json:"teacher_name"`
	Reservations int64  `json:"reservations"`
}

// RoomCount reports how often one room was booked in the period.
type RoomCount struct {
	RoomID       string `json:"room_id"`
	RoomName     string `json:"room_name"`
	BlockName    string `json:"block_name"`
	Reservations int64  `json:"reservations"`
}

type analyticsDB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repository queries reservation aggregates from Postgres.
type Repository struct {
	db analyticsDB
}

// NewRepository creates an analytics repository backed by pgxpool.
func NewRepository(pool *pgxpool.Pool) *Repository {
	if pool == nil {
		panic("analytics: pgx pool required")
	}
	return &Repository{db: pool}
}

// NewRepositoryWithDB allows injecting a mock database for testing.
func NewRepositoryWithDB(db analyticsDB) *Repository {
	return &Repository{db: db}
}

// GetStats aggregates reservation counts within [start, end).
func (r *Repository) GetStats(ctx context.Context, start, end time.Time) (*Stats, error) {
	stats := &Stats{
		PeriodStart: start.Format(time.RFC3339),
		PeriodEnd:   end.Format(time.RFC3339),
	}

	query := `
		SELECT COUNT(*), COUNT(DISTINCT teacher_name), COUNT(DISTINCT room_id),
			COALESCE(SUM(EXTRACT(EPOCH FROM (end_time - start_time))) / 3600, 0)
		FROM reservations
		WHERE start_time >= $1 AND start_time < $2
	`
	if err := r.db.QueryRow(ctx, query, start, end).Scan(
		&stats.TotalReservations, &stats.DistinctTeachers, &stats.DistinctRooms, &stats.TotalHours,
	); err != nil {
		return nil, fmt.Errorf("analytics: aggregate stats: %w", err)
	}
	return stats, nil
}

// TeacherRanking lists teachers by booked reservation count, busiest first.
func (r *Repository) TeacherRanking(ctx context.Context, start, end time.Time, limit int) ([]TeacherCount, error) {
	if limit <= 0 {
		limit = 10
	}
	query := `
		SELECT teacher_name, COUNT(*) AS total
		FROM reservations
		WHERE start_time >= $1 AND start_time < $2
		GROUP BY teacher_name
		ORDER BY total DESC, teacher_name
		LIMIT $3
	`
	rows, err := r.db.Query(ctx, query, start, end, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics: teacher ranking: %w", err)
	}
	defer rows.Close()

	var out []TeacherCount
	for rows.Next() {
		var tc TeacherCount
		if err := rows.Scan(&tc.TeacherName, &tc.Reservations); err != nil {
			return nil, fmt.Errorf("analytics: scan teacher ranking: %w", err)
		}
		out = append(out, tc)
	}
	return out, rows.Err()
}

// RoomUsage lists rooms by booked reservation count, busiest first.
func (r *Repository) RoomUsage(ctx context.Context, start, end time.Time) ([]RoomCount, error) {
	query := `
		SELECT rm.id, rm.name, b.name, COUNT(res.id) AS total
		FROM rooms rm
		JOIN blocks b ON b.id = rm.block_id
		LEFT JOIN reservations res
			ON res.room_id = rm.id AND res.start_time >= $1 AND res.start_time < $2
		GROUP BY rm.id, rm.name, b.name
		ORDER BY total DESC, rm.name
	`
	rows, err := r.db.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("analytics: room usage: %w", err)
	}
	defer rows.Close()

	var out []RoomCount
	for rows.Next() {
		var rc RoomCount
		if err := rows.Scan(&rc.RoomID, &rc.RoomName, &rc.BlockName, &rc.Reservations); err != nil {
			return nil, fmt.Errorf("analytics: scan room usage: %w", err)
		}
		out = append(out, rc)
	}
	return out, rows.Err()
}

// ExportRow is one line of the CSV export.
type ExportRow struct {
	TeacherName string
	Purpose     string
	RoomName    string
	BlockName   string
	StartTime   time.Time
	EndTime     time.Time
}

// ExportRows returns the reservations of [start, end) joined with their room
// and block names, ordered by start time.
func (r *Repository) ExportRows(ctx context.Context, start, end time.Time) ([]ExportRow, error) {
	query := `
		SELECT res.teacher_name, res.purpose, rm.name, b.name, res.start_time, res.end_time
		FROM reservations res
		JOIN rooms rm ON rm.id = res.room_id
		JOIN blocks b ON b.id = rm.block_id
		WHERE res.start_time >= $1 AND res.start_time < $2
		ORDER BY res.start_time
	`
	rows, err := r.db.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("analytics: export rows: %w", err)
	}
	defer rows.Close()

	var out []ExportRow
	for rows.Next() {
		var row ExportRow
		if err := rows.Scan(
			&row.TeacherName, &row.Purpose, &row.RoomName, &row.BlockName,
			&row.StartTime, &row.EndTime,
		); err != nil {
			return nil, fmt.Errorf("analytics: scan export row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
