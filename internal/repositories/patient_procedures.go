package repositories

import (
	"database/sql"

	intconfig "vetclinic/internal/config"
	"vetclinic/internal/domain"
	"vetclinic/internal/query"
)

type PatientProcedure struct {
	ID             int64   `json:"id"`
	PatientID      int64   `json:"patient_id"`
	ProcedureID    int64   `json:"procedure_id"`
	VeterinarianID *int64  `json:"veterinarian_id"`
	Date           string  `json:"date"`
	NextDueDate    *string `json:"next_due_date"`
	Notes          *string `json:"notes"`
}

type PatientProcedureFilter struct {
	PatientID      string
	ProcedureID    string
	VeterinarianID string
	StartDate      string
	EndDate        string
	Limit          string
	Offset         string
}

type PatientProcedurePatch struct {
	PatientID      *int64
	ProcedureID    *int64
	VeterinarianID *int64
	Date           *string
	NextDueDate    *string
	Notes          *string
}

type PatientProcedureRepository struct {
	DB *sql.DB
}

func (r PatientProcedureRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const patientProcedureColumns = `id, patient_id, procedure_id, veterinarian_id,
	DATE_FORMAT(date, '%Y-%m-%d'), DATE_FORMAT(next_due_date, '%Y-%m-%d'), notes`

func (r PatientProcedureRepository) List(f PatientProcedureFilter) ([]PatientProcedure, error) {
	b := &query.Builder{}
	b.Int("patient_id", f.PatientID)
	b.Int("procedure_id", f.ProcedureID)
	b.Int("veterinarian_id", f.VeterinarianID)
	b.DateFrom("date", f.StartDate)
	b.DateTo("date", f.EndDate)

	page := query.ParsePage(f.Limit, f.Offset)
	if err := page.Validate(); err != nil {
		return nil, err
	}

	rows, err := r.db().Query(
		`SELECT `+patientProcedureColumns+` FROM patient_procedures`+b.Where()+` ORDER BY date DESC LIMIT ? OFFSET ?`,
		append(b.Args(), page.Limit, page.Offset)...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []PatientProcedure{}
	for rows.Next() {
		var pp PatientProcedure
		if err := rows.Scan(&pp.ID, &pp.PatientID, &pp.ProcedureID, &pp.VeterinarianID, &pp.Date, &pp.NextDueDate, &pp.Notes); err != nil {
			return nil, err
		}
		out = append(out, pp)
	}
	return out, rows.Err()
}

func (r PatientProcedureRepository) GetByID(id int64) (PatientProcedure, error) {
	var pp PatientProcedure
	err := r.db().QueryRow(`SELECT `+patientProcedureColumns+` FROM patient_procedures WHERE id = ?`, id).
		Scan(&pp.ID, &pp.PatientID, &pp.ProcedureID, &pp.VeterinarianID, &pp.Date, &pp.NextDueDate, &pp.Notes)
	if err == sql.ErrNoRows {
		return PatientProcedure{}, domain.NotFoundError{Resource: "patient procedure"}
	}
	return pp, err
}

func (r PatientProcedureRepository) Create(pp PatientProcedure) (PatientProcedure, error) {
	res, err := r.db().Exec(`
		INSERT INTO patient_procedures (patient_id, procedure_id, veterinarian_id, date, next_due_date, notes)
		VALUES (?, ?, ?, ?, ?, ?)
	`, pp.PatientID, pp.ProcedureID, pp.VeterinarianID, pp.Date, pp.NextDueDate, pp.Notes)
	if err != nil {
		return PatientProcedure{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return PatientProcedure{}, err
	}
	return r.GetByID(id)
}

func (r PatientProcedureRepository) Update(id int64, patch PatientProcedurePatch) (PatientProcedure, error) {
	_, err := r.db().Exec(`
		UPDATE patient_procedures SET
			patient_id = COALESCE(?, patient_id),
			procedure_id = COALESCE(?, procedure_id),
			veterinarian_id = COALESCE(?, veterinarian_id),
			date = COALESCE(?, date),
			next_due_date = COALESCE(?, next_due_date),
			notes = COALESCE(?, notes)
		WHERE id = ?
	`, patch.PatientID, patch.ProcedureID, patch.VeterinarianID, patch.Date, patch.NextDueDate, patch.Notes, id)
	if err != nil {
		return PatientProcedure{}, err
	}
	return r.GetByID(id)
}

func (r PatientProcedureRepository) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM patient_procedures WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "patient procedure"}
	}
	return nil
}
