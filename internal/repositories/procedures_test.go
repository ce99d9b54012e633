package repositories

import (
	"testing"

	"vetclinic/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		minutes int64
		want    string
	}{
		{45, "45m"},
		{120, "2h"},
		{150, "2h 30m"},
		{0, "0m"},
	}
	for _, c := range cases {
		if got := FormatDuration(c.minutes); got != c.want {
			t.Fatalf("%d minutes: got %q want %q", c.minutes, got, c.want)
		}
	}
}

func TestProcedureCreateRejectsUnknownType(t *testing.T) {
	repo := ProcedureRepository{}
	_, err := repo.Create("Teeth cleaning", "Dentistry", nil, nil)
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestProcedureListDurationBounds(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT (.+) FROM procedures WHERE duration_minutes >= \? AND duration_minutes <= \? ORDER BY name ASC LIMIT \? OFFSET \?`).
		WithArgs(int64(30), int64(90), int64(50), int64(0)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "type", "description", "duration_minutes"}).
			AddRow(1, "Spay", "surgery", nil, 60))

	repo := ProcedureRepository{DB: db}
	got, err := repo.List(ProcedureFilter{MinDuration: "30", MaxDuration: "90"})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 row, got %d", len(got))
	}
	if got[0].ProcedureType != "Surgery" {
		t.Fatalf("type not canonicalized: %q", got[0].ProcedureType)
	}
	if got[0].DurationFormatted == nil || *got[0].DurationFormatted != "1h" {
		t.Fatalf("duration_formatted wrong: %v", got[0].DurationFormatted)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
