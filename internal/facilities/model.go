// Package facilities manages the block/room directory: blocks are the
// top-level groupings (one per building wing) and rooms belong to exactly
// one block.
package facilities

import (
	"errors"
	"strings"
	"time"
)

// Block is a top-level facility grouping containing rooms.
type Block struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Room is a bookable space inside a block.
type Room struct {
	ID        string    `json:"id"`
	BlockID   string    `json:"block_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// ErrBlockNotFound is returned when a block id does not resolve.
var ErrBlockNotFound = errors.New("facilities: block not found")

// ErrRoomNotFound is returned when a room id does not resolve.
var ErrRoomNotFound = errors.New("facilities: room not found")

// CreateBlockRequest carries the payload for creating a block.
type CreateBlockRequest struct {
	Name string `json:"name"`
}

// Validate checks required fields.
func (r *CreateBlockRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("facilities: block name is required")
	}
	return nil
}

// CreateRoomRequest carries the payload for creating a room.
type CreateRoomRequest struct {
	BlockID string `json:"block_id"`
	Name    string `json:"name"`
}

// Validate checks required fields.
func (r *CreateRoomRequest) Validate() error {
	if strings.TrimSpace(r.BlockID) == "" {
		return errors.New("facilities: block_id is required")
	}
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("facilities: room name is required")
	}
	return nil
}
