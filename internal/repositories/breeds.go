package repositories

import (
	"database/sql"

	intconfig "vetclinic/internal/config"
	"vetclinic/internal/domain"
	"vetclinic/internal/query"
)

type Breed struct {
	ID      int64  `json:"id"`
	Species string `json:"species"`
	Name    string `json:"name"`
}

type BreedFilter struct {
	Species string
	Name    string
	Limit   string
	Offset  string
}

type BreedRepository struct {
	DB *sql.DB
}

func (r BreedRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r BreedRepository) List(f BreedFilter) ([]Breed, error) {
	b := &query.Builder{}
	b.EnumFold("species", f.Species, domain.Species)
	b.ContainsFold("name", f.Name)

	page := query.ParsePage(f.Limit, f.Offset)
	if err := page.Validate(); err != nil {
		return nil, err
	}

	rows, err := r.db().Query(
		`SELECT id, species, name FROM breeds`+b.Where()+` ORDER BY species ASC, name ASC LIMIT ? OFFSET ?`,
		append(b.Args(), page.Limit, page.Offset)...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Breed{}
	for rows.Next() {
		var br Breed
		var species string
		if err := rows.Scan(&br.ID, &species, &br.Name); err != nil {
			return nil, err
		}
		br.Species = domain.Species.FromStored(species)
		out = append(out, br)
	}
	return out, rows.Err()
}

func (r BreedRepository) GetByID(id int64) (Breed, error) {
	var br Breed
	var species string
	err := r.db().QueryRow(`SELECT id, species, name FROM breeds WHERE id = ?`, id).
		Scan(&br.ID, &species, &br.Name)
	if err == sql.ErrNoRows {
		return Breed{}, domain.NotFoundError{Resource: "breed"}
	}
	if err != nil {
		return Breed{}, err
	}
	br.Species = domain.Species.FromStored(species)
	return br, nil
}

// NameExists checks the species+name uniqueness rule, case-insensitively.
func (r BreedRepository) NameExists(species, name string, excludeID int64) (bool, error) {
	stored, ok := domain.Species.Stored(species)
	if !ok {
		return false, domain.ValidationError{Field: "species", Msg: "unknown species"}
	}
	var exists bool
	err := r.db().QueryRow(
		`SELECT EXISTS(SELECT 1 FROM breeds WHERE species = ? AND LOWER(name) = LOWER(?) AND id != ?)`,
		stored, name, excludeID,
	).Scan(&exists)
	return exists, err
}

func (r BreedRepository) Create(species, name string) (Breed, error) {
	stored, ok := domain.Species.Stored(species)
	if !ok {
		return Breed{}, domain.ValidationError{Field: "species", Msg: "unknown species"}
	}
	res, err := r.db().Exec(`INSERT INTO breeds (species, name) VALUES (?, ?)`, stored, name)
	if err != nil {
		return Breed{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Breed{}, err
	}
	return r.GetByID(id)
}

func (r BreedRepository) Update(id int64, species, name *string) (Breed, error) {
	var stored *string
	if species != nil {
		s, ok := domain.Species.Stored(*species)
		if !ok {
			return Breed{}, domain.ValidationError{Field: "species", Msg: "unknown species"}
		}
		stored = &s
	}
	_, err := r.db().Exec(`
		UPDATE breeds SET
			species = COALESCE(?, species),
			name = COALESCE(?, name)
		WHERE id = ?
	`, stored, name, id)
	if err != nil {
		return Breed{}, err
	}
	return r.GetByID(id)
}

// HasPatients reports whether any patient still references the breed.
func (r BreedRepository) HasPatients(id int64) (bool, error) {
	var exists bool
	err := r.db().QueryRow(`SELECT EXISTS(SELECT 1 FROM patients WHERE breed_id = ?)`, id).Scan(&exists)
	return exists, err
}

func (r BreedRepository) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM breeds WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "breed"}
	}
	return nil
}
