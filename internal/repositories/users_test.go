package repositories

import (
	"testing"
	"time"

	"vetclinic/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
)

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "email", "password_hash", "name", "role",
		"license_number", "is_active", "created_at", "updated_at",
	})
}

func TestUserGetByEmailOnlyActive(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`SELECT (.+) FROM users WHERE email = \? AND is_active = TRUE`).
		WithArgs("vet@clinic.test").
		WillReturnRows(userRows().AddRow(
			7, "vet@clinic.test", "$argon2id$...", "Dr. Reyes", "veterinarian",
			"VET-123", true, now, now,
		))

	repo := UserRepository{DB: db}
	u, err := repo.GetByEmail("vet@clinic.test")
	if err != nil {
		t.Fatalf("GetByEmail error: %v", err)
	}
	if u.Role != domain.RoleVeterinarian {
		t.Fatalf("role not canonicalized: %q", u.Role)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserGetByEmailNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT (.+) FROM users WHERE email = \? AND is_active = TRUE`).
		WithArgs("ghost@clinic.test").
		WillReturnRows(userRows())

	repo := UserRepository{DB: db}
	if _, err := repo.GetByEmail("ghost@clinic.test"); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUserCreateRejectsUnknownRole(t *testing.T) {
	repo := UserRepository{}
	_, err := repo.Create("a@b.test", "hash", "Name", "Janitor", nil)
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUserListFiltersCompile(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT (.+) FROM users WHERE role = \? AND is_active = \? ORDER BY created_at DESC LIMIT \? OFFSET \?`).
		WithArgs("admin", true, int64(10), int64(0)).
		WillReturnRows(userRows())

	repo := UserRepository{DB: db}
	if _, err := repo.List(UserFilter{Role: "Admin", IsActive: "true", Limit: "10"}); err != nil {
		t.Fatalf("List error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserDeactivateNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`UPDATE users SET is_active = FALSE`).
		WithArgs(int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := UserRepository{DB: db}
	if err := repo.Deactivate(99); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}
