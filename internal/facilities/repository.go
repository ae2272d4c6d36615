package facilities

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// facilitiesDB is the slice of pgxpool.Pool the repository needs; pgxmock
// satisfies it in tests.
type facilitiesDB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Repository stores blocks and rooms in Postgres.
type Repository struct {
	db facilitiesDB
}

// NewRepository initializes a repo backed by pgxpool.
func NewRepository(pool *pgxpool.Pool) *Repository {
	if pool == nil {
		panic("facilities: pgx pool required")
	}
	return &Repository{db: pool}
}

// NewRepositoryWithDB allows injecting a mock database for testing.
func NewRepositoryWithDB(db facilitiesDB) *Repository {
	return &Repository{db: db}
}

// CreateBlock inserts a new block row.
func (r *Repository) CreateBlock(ctx context.Context, req *CreateBlockRequest) (*Block, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	query := `
		INSERT INTO blocks (id, name)
		VALUES ($1, $2)
		RETURNING created_at
	`
	var createdAt time.Time
	if err := r.db.QueryRow(ctx, query, id, req.Name).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("facilities: insert block failed: %w", err)
	}

	return &Block{ID: id, Name: req.Name, CreatedAt: createdAt}, nil
}

// ListBlocks returns all blocks ordered by name.
func (r *Repository) ListBlocks(ctx context.Context) ([]Block, error) {
	query := `
		SELECT id, name, created_at
		FROM blocks
		ORDER BY name
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("facilities: select blocks failed: %w", err)
	}
	defer rows.Close()

	var blocks []Block
	for rows.Next() {
		var b Block
		if err := rows.Scan(&b.ID, &b.Name, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("facilities: scan block failed: %w", err)
		}
		blocks = append(blocks, b)
	}
	return blocks, rows.Err()
}

// GetBlock fetches one block by id.
func (r *Repository) GetBlock(ctx context.Context, id string) (*Block, error) {
	query := `
		SELECT id, name, created_at
		FROM blocks
		WHERE id = $1
	`
	var b Block
	if err := r.db.QueryRow(ctx, query, id).Scan(&b.ID, &b.Name, &b.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBlockNotFound
		}
		return nil, fmt.Errorf("facilities: select block failed: %w", err)
	}
	return &b, nil
}

// DeleteBlock removes a block; its rooms go with it via ON DELETE CASCADE.
func (r *Repository) DeleteBlock(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM blocks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("facilities: delete block failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrBlockNotFound
	}
	return nil
}

// CreateRoom inserts a new room row.
func (r *Repository) CreateRoom(ctx context.Context, req *CreateRoomRequest) (*Room, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	query := `
		INSERT INTO rooms (id, block_id, name)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`
	var createdAt time.Time
	if err := r.db.QueryRow(ctx, query, id, req.BlockID, req.Name).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("facilities: insert room failed: %w", err)
	}

	return &Room{ID: id, BlockID: req.BlockID, Name: req.Name, CreatedAt: createdAt}, nil
}

// ListRoomsByBlock returns the rooms of a block ordered by name.
func (r *Repository) ListRoomsByBlock(ctx context.Context, blockID string) ([]Room, error) {
	query := `
		SELECT id, block_id, name, created_at
		FROM rooms
		WHERE block_id = $1
		ORDER BY name
	`
	rows, err := r.db.Query(ctx, query, blockID)
	if err != nil {
		return nil, fmt.Errorf("facilities: select rooms failed: %w", err)
	}
	defer rows.Close()

	var rooms []Room
	for rows.Next() {
		var room Room
		if err := rows.Scan(&room.ID, &room.BlockID, &room.Name, &room.CreatedAt); err != nil {
			return nil, fmt.Errorf("facilities: scan room failed: %w", err)
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}

// DeleteRoom removes a room.
func (r *Repository) DeleteRoom(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM rooms WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("facilities: delete room failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrRoomNotFound
	}
	return nil
}
