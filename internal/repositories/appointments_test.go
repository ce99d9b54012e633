package repositories

import (
	"testing"
	"time"

	"vetclinic/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestAppointmentListCompilesFilters(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(30 * time.Minute)

	rows := sqlmock.NewRows([]string{
		"id", "patient_id", "p.name", "client_id", "c.name",
		"veterinarian_id", "u.name", "start_time", "end_time", "status", "reason",
	}).AddRow(1, 5, "Rocky", 3, "Ana Diaz", 7, "Dr. Reyes", start, end, "scheduled", "checkup")

	mock.ExpectQuery(`(?s)SELECT (.+) FROM appointments a(.+) WHERE a\.veterinarian_id = \? AND a\.status = \?(.+)LIMIT \? OFFSET \?`).
		WithArgs(int64(7), "scheduled", int64(50), int64(0)).
		WillReturnRows(rows)

	repo := AppointmentRepository{DB: db}
	got, err := repo.List(AppointmentFilter{
		VeterinarianID: "7",
		Status:         "SCHEDULED",
	})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 row, got %d", len(got))
	}
	if got[0].Status != "Scheduled" {
		t.Fatalf("status not canonicalized: %q", got[0].Status)
	}
	if got[0].DurationMinutes != 30 {
		t.Fatalf("duration: got %d", got[0].DurationMinutes)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAppointmentListIgnoresMalformedFilters(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	// bogus values compile to no WHERE clause at all
	mock.ExpectQuery(`(?s)SELECT (.+) FROM appointments a(.+)ORDER BY a\.start_time DESC LIMIT \? OFFSET \?`).
		WithArgs(int64(50), int64(0)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "patient_id", "p.name", "client_id", "c.name",
			"veterinarian_id", "u.name", "start_time", "end_time", "status", "reason",
		}))

	repo := AppointmentRepository{DB: db}
	got, err := repo.List(AppointmentFilter{
		VeterinarianID: "not-a-number",
		Status:         "bogus",
		StartDate:      "yesterday",
	})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %d", len(got))
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestVeterinarianBusy(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(int64(7), int64(0), end, start).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	repo := AppointmentRepository{DB: db}
	busy, err := repo.VeterinarianBusy(7, start, end, 0)
	if err != nil {
		t.Fatalf("VeterinarianBusy error: %v", err)
	}
	if !busy {
		t.Fatalf("expected busy")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAppointmentGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`(?s)SELECT (.+) FROM appointments a(.+) WHERE a\.id = \?`).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "patient_id", "p.name", "client_id", "c.name",
			"veterinarian_id", "u.name", "start_time", "end_time", "status", "reason",
		}))

	repo := AppointmentRepository{DB: db}
	_, err = repo.GetByID(99)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}
