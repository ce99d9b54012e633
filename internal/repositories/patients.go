package repositories

import (
	"database/sql"

	intconfig "vetclinic/internal/config"
	"vetclinic/internal/domain"
	"vetclinic/internal/query"
)

type Patient struct {
	ID        int64    `json:"id"`
	Name      string   `json:"name"`
	Species   string   `json:"species"`
	BreedID   *int64   `json:"breed_id"`
	Breed     *string  `json:"breed"`
	BirthDate *string  `json:"birth_date"`
	Gender    *string  `json:"gender"`
	WeightKg  *float64 `json:"weight_kg"`
	ClientID  int64    `json:"client_id"`
	PhotoURL  *string  `json:"photo_url"`
}

type PatientFilter struct {
	Name     string
	Species  string
	BreedID  string
	ClientID string
	Gender   string
	Limit    string
	Offset   string
}

type PatientPatch struct {
	Name      *string
	Species   *string // canonical form
	BreedID   *int64
	BirthDate *string
	Gender    *string // canonical form
	WeightKg  *float64
	ClientID  *int64
	PhotoURL  *string
}

type PatientRepository struct {
	DB *sql.DB
}

func (r PatientRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// breed name joined in so list/get responses don't need a second query
const patientSelect = `
	SELECT p.id, p.name, p.species, p.breed_id, b.name,
	       DATE_FORMAT(p.birth_date, '%Y-%m-%d'), p.gender, p.weight_kg, p.client_id, p.photo_url
	FROM patients p
	LEFT JOIN breeds b ON b.id = p.breed_id`

func (r PatientRepository) List(f PatientFilter) ([]Patient, error) {
	b := &query.Builder{}
	b.ContainsFold("p.name", f.Name)
	b.EnumFold("p.species", f.Species, domain.Species)
	b.Int("p.breed_id", f.BreedID)
	b.Int("p.client_id", f.ClientID)
	b.EnumFold("p.gender", f.Gender, domain.Genders)

	page := query.ParsePage(f.Limit, f.Offset)
	if err := page.Validate(); err != nil {
		return nil, err
	}

	rows, err := r.db().Query(
		patientSelect+b.Where()+` ORDER BY p.name ASC LIMIT ? OFFSET ?`,
		append(b.Args(), page.Limit, page.Offset)...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Patient{}
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r PatientRepository) GetByID(id int64) (Patient, error) {
	row := r.db().QueryRow(patientSelect+` WHERE p.id = ?`, id)
	p, err := scanPatient(row)
	if err == sql.ErrNoRows {
		return Patient{}, domain.NotFoundError{Resource: "patient"}
	}
	return p, err
}

func (r PatientRepository) ClientExists(clientID int64) (bool, error) {
	var exists bool
	err := r.db().QueryRow(`SELECT EXISTS(SELECT 1 FROM clients WHERE id = ?)`, clientID).Scan(&exists)
	return exists, err
}

func (r PatientRepository) Create(p Patient) (Patient, error) {
	species, ok := domain.Species.Stored(p.Species)
	if !ok {
		return Patient{}, domain.ValidationError{Field: "species", Msg: "unknown species"}
	}
	var gender *string
	if p.Gender != nil {
		g, ok := domain.Genders.Stored(*p.Gender)
		if !ok {
			return Patient{}, domain.ValidationError{Field: "gender", Msg: "unknown gender"}
		}
		gender = &g
	}

	res, err := r.db().Exec(`
		INSERT INTO patients (name, species, breed_id, birth_date, gender, weight_kg, client_id, photo_url)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, p.Name, species, p.BreedID, p.BirthDate, gender, p.WeightKg, p.ClientID, p.PhotoURL)
	if err != nil {
		return Patient{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Patient{}, err
	}
	return r.GetByID(id)
}

func (r PatientRepository) Update(id int64, patch PatientPatch) (Patient, error) {
	var species *string
	if patch.Species != nil {
		s, ok := domain.Species.Stored(*patch.Species)
		if !ok {
			return Patient{}, domain.ValidationError{Field: "species", Msg: "unknown species"}
		}
		species = &s
	}
	var gender *string
	if patch.Gender != nil {
		g, ok := domain.Genders.Stored(*patch.Gender)
		if !ok {
			return Patient{}, domain.ValidationError{Field: "gender", Msg: "unknown gender"}
		}
		gender = &g
	}

	_, err := r.db().Exec(`
		UPDATE patients SET
			name = COALESCE(?, name),
			species = COALESCE(?, species),
			breed_id = COALESCE(?, breed_id),
			birth_date = COALESCE(?, birth_date),
			gender = COALESCE(?, gender),
			weight_kg = COALESCE(?, weight_kg),
			client_id = COALESCE(?, client_id),
			photo_url = COALESCE(?, photo_url)
		WHERE id = ?
	`, patch.Name, species, patch.BreedID, patch.BirthDate, gender, patch.WeightKg, patch.ClientID, patch.PhotoURL, id)
	if err != nil {
		return Patient{}, err
	}
	return r.GetByID(id)
}

func (r PatientRepository) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM patients WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "patient"}
	}
	return nil
}

func scanPatient(row rowScanner) (Patient, error) {
	var p Patient
	var species string
	var gender *string
	if err := row.Scan(
		&p.ID,
		&p.Name,
		&species,
		&p.BreedID,
		&p.Breed,
		&p.BirthDate,
		&gender,
		&p.WeightKg,
		&p.ClientID,
		&p.PhotoURL,
	); err != nil {
		return Patient{}, err
	}
	p.Species = domain.Species.FromStored(species)
	if gender != nil {
		g := domain.Genders.FromStored(*gender)
		p.Gender = &g
	}
	return p, nil
}
