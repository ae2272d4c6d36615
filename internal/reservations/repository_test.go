package reservations

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
)

func sampleReservation(id string) Reservation {
	start := time.Date(2024, 3, 4, 8, 0, 0, 0, time.Local)
	return Reservation{
		ID:          id,
		RoomID:      "room-1",
		TeacherName: "Prof. João Silva",
		StartTime:   start,
		EndTime:     start.Add(50 * time.Minute),
		Purpose:     "Cálculo I",
	}
}

func TestCreate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	res := sampleReservation("res-1")
	mock.ExpectExec(`INSERT INTO reservations`).
		WithArgs(res.ID, res.RoomID, res.TeacherName, res.StartTime, res.EndTime, res.Purpose).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	repo := NewRepositoryWithDB(mock)
	if err := repo.Create(context.Background(), res); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCreateBatch(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	records := []Reservation{sampleReservation("res-1"), sampleReservation("res-2"), sampleReservation("res-3")}

	mock.ExpectBegin()
	for _, res := range records {
		mock.ExpectExec(`INSERT INTO reservations`).
			WithArgs(res.ID, res.RoomID, res.TeacherName, res.StartTime, res.EndTime, res.Purpose).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
	}
	mock.ExpectCommit()

	repo := NewRepositoryWithDB(mock)
	if err := repo.CreateBatch(context.Background(), records); err != nil {
		t.Fatalf("CreateBatch failed: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCreateBatchRollsBackOnFailure(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	records := []Reservation{sampleReservation("res-1"), sampleReservation("res-2")}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO reservations`).
		WithArgs(records[0].ID, records[0].RoomID, records[0].TeacherName,
			records[0].StartTime, records[0].EndTime, records[0].Purpose).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`INSERT INTO reservations`).
		WithArgs(records[1].ID, records[1].RoomID, records[1].TeacherName,
			records[1].StartTime, records[1].EndTime, records[1].Purpose).
		WillReturnError(errors.New("constraint violation"))
	mock.ExpectRollback()

	repo := NewRepositoryWithDB(mock)
	if err := repo.CreateBatch(context.Background(), records); err == nil {
		t.Fatal("expected batch insert error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCreateBatchEmpty(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewRepositoryWithDB(mock)
	if err := repo.CreateBatch(context.Background(), nil); err != nil {
		t.Fatalf("CreateBatch(nil) failed: %v", err)
	}
}

func TestListForDay(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	day := time.Date(2024, 3, 4, 15, 30, 0, 0, time.Local)
	dayStart := time.Date(2024, 3, 4, 0, 0, 0, 0, time.Local)
	res := sampleReservation("res-1")

	mock.ExpectQuery(`SELECT id, room_id, teacher_name, start_time, end_time, purpose`).
		WithArgs(dayStart, dayStart.AddDate(0, 0, 1)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "room_id", "teacher_name", "start_time", "end_time", "purpose"}).
			AddRow(res.ID, res.RoomID, res.TeacherName, res.StartTime, res.EndTime, res.Purpose))

	repo := NewRepositoryWithDB(mock)
	records, err := repo.ListForDay(context.Background(), day)
	if err != nil {
		t.Fatalf("ListForDay failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(records))
	}
	if records[0].TeacherName != "Prof. João Silva" {
		t.Errorf("TeacherName = %q", records[0].TeacherName)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestDeleteNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectExec(`DELETE FROM reservations WHERE id = \$1`).
		WithArgs("missing").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	repo := NewRepositoryWithDB(mock)
	if err := repo.Delete(context.Background(), "missing"); !errors.Is(err, ErrReservationNotFound) {
		t.Fatalf("err = %v, want ErrReservationNotFound", err)
	}
}
