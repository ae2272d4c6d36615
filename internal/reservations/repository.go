package reservations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// reservationsDB is the slice of pgxpool.Pool the repository needs; pgxmock
// satisfies it in tests.
type reservationsDB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Repository stores reservation records in Postgres.
type Repository struct {
	db reservationsDB
}

// NewRepository initializes a repo backed by pgxpool.
func NewRepository(pool *pgxpool.Pool) *Repository {
	if pool == nil {
		panic("reservations: pgx pool required")
	}
	return &Repository{db: pool}
}

// NewRepositoryWithDB allows injecting a mock database for testing.
func NewRepositoryWithDB(db reservationsDB) *Repository {
	return &Repository{db: db}
}

const insertQuery = `
	INSERT INTO reservations (id, room_id, teacher_name, start_time, end_time, purpose)
	VALUES ($1, $2, $3, $4, $5, $6)
`

// Create inserts a single reservation row.
func (r *Repository) Create(ctx context.Context, res Reservation) error {
	if _, err := r.db.Exec(ctx, insertQuery,
		res.ID, res.RoomID, res.TeacherName, res.StartTime, res.EndTime, res.Purpose,
	); err != nil {
		return fmt.Errorf("reservations: insert failed: %w", err)
	}
	return nil
}

// CreateBatch inserts all records inside one transaction. Either every record
// lands or none do, which is what the assistant's commit step relies on.
func (r *Repository) CreateBatch(ctx context.Context, records []Reservation) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("reservations: begin batch failed: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, res := range records {
		if _, err := tx.Exec(ctx, insertQuery,
			res.ID, res.RoomID, res.TeacherName, res.StartTime, res.EndTime, res.Purpose,
		); err != nil {
			return fmt.Errorf("reservations: batch insert failed: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("reservations: commit batch failed: %w", err)
	}
	return nil
}

// Delete removes a reservation by id.
func (r *Repository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM reservations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("reservations: delete failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrReservationNotFound
	}
	return nil
}

const selectColumns = `id, room_id, teacher_name, start_time, end_time, purpose`

// List returns every reservation ordered by start time.
func (r *Repository) List(ctx context.Context) ([]Reservation, error) {
	query := `SELECT ` + selectColumns + ` FROM reservations ORDER BY start_time`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("reservations: select failed: %w", err)
	}
	defer rows.Close()
	return scanAll(rows)
}

// ListBetween returns reservations starting within [start, end).
func (r *Repository) ListBetween(ctx context.Context, start, end time.Time) ([]Reservation, error) {
	query := `
		SELECT ` + selectColumns + `
		FROM reservations
		WHERE start_time >= $1 AND start_time < $2
		ORDER BY start_time
	`
	rows, err := r.db.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("reservations: select range failed: %w", err)
	}
	defer rows.Close()
	return scanAll(rows)
}

// ListForDay returns the reservations of one calendar day.
func (r *Repository) ListForDay(ctx context.Context, day time.Time) ([]Reservation, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return r.ListBetween(ctx, start, start.AddDate(0, 0, 1))
}

// Get fetches a single reservation.
func (r *Repository) Get(ctx context.Context, id string) (*Reservation, error) {
	query := `SELECT ` + selectColumns + ` FROM reservations WHERE id = $1`
	var res Reservation
	if err := r.db.QueryRow(ctx, query, id).Scan(
		&res.ID, &res.RoomID, &res.TeacherName, &res.StartTime, &res.EndTime, &res.Purpose,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrReservationNotFound
		}
		return nil, fmt.Errorf("reservations: select one failed: %w", err)
	}
	return &res, nil
}

func scanAll(rows pgx.Rows) ([]Reservation, error) {
	var out []Reservation
	for rows.Next() {
		var res Reservation
		if err := rows.Scan(
			&res.ID, &res.RoomID, &res.TeacherName, &res.StartTime, &res.EndTime, &res.Purpose,
		); err != nil {
			return nil, fmt.Errorf("reservations: scan failed: %w", err)
		}
		out = append(out, res)
	}
	return out, rows.Err()
}
