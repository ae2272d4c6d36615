package facilities

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Silveira-k7/PragmaL/pkg/logging"
)

// Handler handles HTTP requests for blocks and rooms.
type Handler struct {
	repo   *Repository
	logger *logging.Logger
}

// NewHandler creates a new facilities handler.
func NewHandler(repo *Repository, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{repo: repo, logger: logger}
}

// ListBlocks handles GET /api/blocks.
func (h *Handler) ListBlocks(w http.ResponseWriter, r *http.Request) {
	blocks, err := h.repo.ListBlocks(r.Context())
	if err != nil {
		h.logger.Error("failed to list blocks", "error", err)
		http.Error(w, "failed to list blocks", http.StatusInternalServerError)
		return
	}
	if blocks == nil {
		blocks = []Block{}
	}
	writeJSON(w, http.StatusOK, blocks)
}

// CreateBlock handles POST /api/blocks.
func (h *Handler) CreateBlock(w http.ResponseWriter, r *http.Request) {
	var req CreateBlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	block, err := h.repo.CreateBlock(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create block", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.logger.Info("block created", "id", block.ID, "name", block.Name)
	writeJSON(w, http.StatusCreated, block)
}

// DeleteBlock handles DELETE /api/blocks/{blockID}.
func (h *Handler) DeleteBlock(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "blockID")
	if err := h.repo.DeleteBlock(r.Context(), id); err != nil {
		if errors.Is(err, ErrBlockNotFound) {
			http.Error(w, "block not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to delete block", "error", err, "id", id)
		http.Error(w, "failed to delete block", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListRooms handles GET /api/blocks/{blockID}/rooms.
func (h *Handler) ListRooms(w http.ResponseWriter, r *http.Request) {
	blockID := chi.URLParam(r, "blockID")
	rooms, err := h.repo.ListRoomsByBlock(r.Context(), blockID)
	if err != nil {
		h.logger.Error("failed to list rooms", "error", err, "block_id", blockID)
		http.Error(w, "failed to list rooms", http.StatusInternalServerError)
		return
	}
	if rooms == nil {
		rooms = []Room{}
	}
	writeJSON(w, http.StatusOK, rooms)
}

// CreateRoom handles POST /api/rooms.
func (h *Handler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	room, err := h.repo.CreateRoom(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create room", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.logger.Info("room created", "id", room.ID, "block_id", room.BlockID)
	writeJSON(w, http.StatusCreated, room)
}

// DeleteRoom handles DELETE /api/rooms/{roomID}.
func (h *Handler) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "roomID")
	if err := h.repo.DeleteRoom(r.Context(), id); err != nil {
		if errors.Is(err, ErrRoomNotFound) {
			http.Error(w, "room not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to delete room", "error", err, "id", id)
		http.Error(w, "failed to delete room", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
