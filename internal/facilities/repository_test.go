package facilities

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
)

func TestCreateBlock(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	createdAt := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`INSERT INTO blocks`).
		WithArgs(pgxmock.AnyArg(), "BLOCO C").
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(createdAt))

	repo := NewRepositoryWithDB(mock)
	block, err := repo.CreateBlock(context.Background(), &CreateBlockRequest{Name: "BLOCO C"})
	if err != nil {
		t.Fatalf("CreateBlock failed: %v", err)
	}
	if block.Name != "BLOCO C" {
		t.Errorf("Name = %q, want BLOCO C", block.Name)
	}
	if block.ID == "" {
		t.Error("expected generated id")
	}
	if !block.CreatedAt.Equal(createdAt) {
		t.Errorf("CreatedAt = %v, want %v", block.CreatedAt, createdAt)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCreateBlockValidation(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewRepositoryWithDB(mock)
	if _, err := repo.CreateBlock(context.Background(), &CreateBlockRequest{Name: "  "}); err == nil {
		t.Fatal("expected validation error for blank name")
	}
}

func TestListRoomsByBlock(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	createdAt := time.Now()
	mock.ExpectQuery(`SELECT id, block_id, name, created_at\s+FROM rooms`).
		WithArgs("block-c").
		WillReturnRows(pgxmock.NewRows([]string{"id", "block_id", "name", "created_at"}).
			AddRow("room-1", "block-c", "Lab 301 - Informática", createdAt).
			AddRow("room-2", "block-c", "Lab 302 - Química", createdAt))

	repo := NewRepositoryWithDB(mock)
	rooms, err := repo.ListRoomsByBlock(context.Background(), "block-c")
	if err != nil {
		t.Fatalf("ListRoomsByBlock failed: %v", err)
	}
	if len(rooms) != 2 {
		t.Fatalf("len(rooms) = %d, want 2", len(rooms))
	}
	if rooms[0].Name != "Lab 301 - Informática" {
		t.Errorf("rooms[0].Name = %q", rooms[0].Name)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestDeleteBlockNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectExec(`DELETE FROM blocks WHERE id = \$1`).
		WithArgs("missing").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	repo := NewRepositoryWithDB(mock)
	if err := repo.DeleteBlock(context.Background(), "missing"); err != ErrBlockNotFound {
		t.Fatalf("err = %v, want ErrBlockNotFound", err)
	}
}
