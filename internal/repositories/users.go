package repositories

import (
	"database/sql"
	"time"

	intconfig "vetclinic/internal/config"
	"vetclinic/internal/domain"
	"vetclinic/internal/query"
)

type User struct {
	ID            int64     `json:"id"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	Name          string    `json:"name"`
	Role          string    `json:"role"`
	LicenseNumber *string   `json:"license_number"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// UserFilter carries the raw query string values; the compiler decides
// what survives.
type UserFilter struct {
	Email         string
	Role          string
	LicenseNumber string
	IsActive      string
	CreatedAfter  string
	CreatedBefore string
	Limit         string
	Offset        string
}

// UserPatch updates only the non-nil fields. Role is the canonical form.
type UserPatch struct {
	Email         *string
	PasswordHash  *string
	Name          *string
	Role          *string
	LicenseNumber *string
	IsActive      *bool
}

type UserRepository struct {
	DB *sql.DB
}

func (r UserRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const userColumns = `id, email, password_hash, name, role, license_number, is_active, created_at, updated_at`

func (r UserRepository) List(f UserFilter) ([]User, error) {
	b := &query.Builder{}
	b.ContainsFold("email", f.Email)
	b.EnumFold("role", f.Role, domain.Roles)
	b.Exact("license_number", f.LicenseNumber)
	b.Bool("is_active", f.IsActive)
	b.TimeFrom("created_at", f.CreatedAfter)
	b.TimeTo("created_at", f.CreatedBefore)

	page := query.ParsePage(f.Limit, f.Offset)
	if err := page.Validate(); err != nil {
		return nil, err
	}

	rows, err := r.db().Query(
		`SELECT `+userColumns+` FROM users`+b.Where()+` ORDER BY created_at DESC LIMIT ? OFFSET ?`,
		append(b.Args(), page.Limit, page.Offset)...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r UserRepository) GetByID(id int64) (User, error) {
	row := r.db().QueryRow(`SELECT `+userColumns+` FROM users WHERE id = ? AND is_active = TRUE`, id)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return User{}, domain.NotFoundError{Resource: "user"}
	}
	return u, err
}

// GetByEmail looks up an active user for login.
func (r UserRepository) GetByEmail(email string) (User, error) {
	row := r.db().QueryRow(`SELECT `+userColumns+` FROM users WHERE email = ? AND is_active = TRUE`, email)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return User{}, domain.NotFoundError{Resource: "user"}
	}
	return u, err
}

// EmailExists reports whether another user already claims the email.
func (r UserRepository) EmailExists(email string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db().QueryRow(
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = ? AND id != ?)`,
		email, excludeID,
	).Scan(&exists)
	return exists, err
}

func (r UserRepository) Create(email, passwordHash, name, role string, licenseNumber *string) (User, error) {
	stored, ok := domain.Roles.Stored(role)
	if !ok {
		return User{}, domain.ValidationError{Field: "role", Msg: "unknown role"}
	}

	res, err := r.db().Exec(`
		INSERT INTO users (email, password_hash, name, role, license_number, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, TRUE, NOW(), NOW())
	`, email, passwordHash, name, stored, licenseNumber)
	if err != nil {
		return User{}, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return User{}, err
	}
	return r.GetByID(id)
}

func (r UserRepository) Update(id int64, patch UserPatch) (User, error) {
	var storedRole *string
	if patch.Role != nil {
		s, ok := domain.Roles.Stored(*patch.Role)
		if !ok {
			return User{}, domain.ValidationError{Field: "role", Msg: "unknown role"}
		}
		storedRole = &s
	}

	_, err := r.db().Exec(`
		UPDATE users SET
			email = COALESCE(?, email),
			password_hash = COALESCE(?, password_hash),
			name = COALESCE(?, name),
			role = COALESCE(?, role),
			license_number = COALESCE(?, license_number),
			is_active = COALESCE(?, is_active),
			updated_at = NOW()
		WHERE id = ?
	`, patch.Email, patch.PasswordHash, patch.Name, storedRole, patch.LicenseNumber, patch.IsActive, id)
	if err != nil {
		return User{}, err
	}

	// re-read instead of trusting RowsAffected: a no-op update reports 0 too
	row := r.db().QueryRow(`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return User{}, domain.NotFoundError{Resource: "user"}
	}
	return u, err
}

// Deactivate is the delete operation: users are never removed, only
// switched off so their history stays referenceable.
func (r UserRepository) Deactivate(id int64) error {
	res, err := r.db().Exec(
		`UPDATE users SET is_active = FALSE, updated_at = NOW() WHERE id = ? AND is_active = TRUE`,
		id,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "user"}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (User, error) {
	var u User
	var role string
	if err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.Name,
		&role,
		&u.LicenseNumber,
		&u.IsActive,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		return User{}, err
	}
	u.Role = domain.Roles.FromStored(role)
	return u, nil
}
