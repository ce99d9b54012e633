package repositories

import (
	"database/sql"

	intconfig "vetclinic/internal/config"
	"vetclinic/internal/domain"
	"vetclinic/internal/query"
)

type Client struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Email      *string `json:"email"`
	Phone      string  `json:"phone"`
	Address    *string `json:"address"`
	Notes      *string `json:"notes"`
	AssignedTo *int64  `json:"assigned_to"`
}

type ClientFilter struct {
	Name       string
	Phone      string
	AssignedTo string
	Limit      string
	Offset     string
}

type ClientPatch struct {
	Name       *string
	Email      *string
	Phone      *string
	Address    *string
	Notes      *string
	AssignedTo *int64
}

type ClientRepository struct {
	DB *sql.DB
}

func (r ClientRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const clientColumns = `id, name, email, phone, address, notes, assigned_to`

func (r ClientRepository) List(f ClientFilter) ([]Client, error) {
	b := &query.Builder{}
	b.ContainsFold("name", f.Name)
	b.Exact("phone", f.Phone)
	b.Int("assigned_to", f.AssignedTo)

	page := query.ParsePage(f.Limit, f.Offset)
	if err := page.Validate(); err != nil {
		return nil, err
	}

	rows, err := r.db().Query(
		`SELECT `+clientColumns+` FROM clients`+b.Where()+` ORDER BY name ASC LIMIT ? OFFSET ?`,
		append(b.Args(), page.Limit, page.Offset)...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Client{}
	for rows.Next() {
		var cl Client
		if err := rows.Scan(&cl.ID, &cl.Name, &cl.Email, &cl.Phone, &cl.Address, &cl.Notes, &cl.AssignedTo); err != nil {
			return nil, err
		}
		out = append(out, cl)
	}
	return out, rows.Err()
}

func (r ClientRepository) GetByID(id int64) (Client, error) {
	var cl Client
	err := r.db().QueryRow(`SELECT `+clientColumns+` FROM clients WHERE id = ?`, id).
		Scan(&cl.ID, &cl.Name, &cl.Email, &cl.Phone, &cl.Address, &cl.Notes, &cl.AssignedTo)
	if err == sql.ErrNoRows {
		return Client{}, domain.NotFoundError{Resource: "client"}
	}
	return cl, err
}

func (r ClientRepository) EmailExists(email string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db().QueryRow(
		`SELECT EXISTS(SELECT 1 FROM clients WHERE email = ? AND id != ?)`,
		email, excludeID,
	).Scan(&exists)
	return exists, err
}

func (r ClientRepository) Create(cl Client) (Client, error) {
	res, err := r.db().Exec(`
		INSERT INTO clients (name, email, phone, address, notes, assigned_to)
		VALUES (?, ?, ?, ?, ?, ?)
	`, cl.Name, cl.Email, cl.Phone, cl.Address, cl.Notes, cl.AssignedTo)
	if err != nil {
		return Client{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Client{}, err
	}
	return r.GetByID(id)
}

func (r ClientRepository) Update(id int64, patch ClientPatch) (Client, error) {
	_, err := r.db().Exec(`
		UPDATE clients SET
			name = COALESCE(?, name),
			email = COALESCE(?, email),
			phone = COALESCE(?, phone),
			address = COALESCE(?, address),
			notes = COALESCE(?, notes),
			assigned_to = COALESCE(?, assigned_to)
		WHERE id = ?
	`, patch.Name, patch.Email, patch.Phone, patch.Address, patch.Notes, patch.AssignedTo, id)
	if err != nil {
		return Client{}, err
	}
	return r.GetByID(id)
}

// HasPatients reports whether any patient still references the client.
// Deletion is refused while true; the same rule the store's foreign keys
// enforce, surfaced as a Conflict instead of a driver error.
func (r ClientRepository) HasPatients(id int64) (bool, error) {
	var exists bool
	err := r.db().QueryRow(`SELECT EXISTS(SELECT 1 FROM patients WHERE client_id = ?)`, id).Scan(&exists)
	return exists, err
}

func (r ClientRepository) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM clients WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "client"}
	}
	return nil
}
