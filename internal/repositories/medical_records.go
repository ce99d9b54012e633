package repositories

import (
	"database/sql"
	"time"

	intconfig "vetclinic/internal/config"
	"vetclinic/internal/domain"
	"vetclinic/internal/query"
)

type MedicalRecord struct {
	ID               int64     `json:"id"`
	PatientID        int64     `json:"patient_id"`
	PatientName      string    `json:"patient_name"`
	VeterinarianID   int64     `json:"veterinarian_id"`
	VeterinarianName string    `json:"veterinarian_name"`
	Date             time.Time `json:"date"`
	Diagnosis        string    `json:"diagnosis"`
	Treatment        *string   `json:"treatment"`
	Notes            *string   `json:"notes"`
	WeightAtVisit    *float64  `json:"weight_at_visit"`
}

type MedicalRecordFilter struct {
	PatientID         string
	VeterinarianID    string
	StartDate         string
	EndDate           string
	DiagnosisContains string
	Limit             string
	Offset            string
}

type MedicalRecordPatch struct {
	PatientID      *int64
	VeterinarianID *int64
	Diagnosis      *string
	Treatment      *string
	Notes          *string
	WeightAtVisit  *float64
}

type MedicalRecordRepository struct {
	DB *sql.DB
}

func (r MedicalRecordRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const medicalRecordSelect = `
	SELECT m.id, m.patient_id, p.name, m.veterinarian_id, u.name,
	       m.date, m.diagnosis, m.treatment, m.notes, m.weight_at_visit
	FROM medical_records m
	JOIN patients p ON p.id = m.patient_id
	JOIN users u ON u.id = m.veterinarian_id`

func (r MedicalRecordRepository) List(f MedicalRecordFilter) ([]MedicalRecord, error) {
	b := &query.Builder{}
	b.Int("m.patient_id", f.PatientID)
	b.Int("m.veterinarian_id", f.VeterinarianID)
	b.TimeFrom("m.date", f.StartDate)
	b.TimeTo("m.date", f.EndDate)
	b.ContainsFold("m.diagnosis", f.DiagnosisContains)

	page := query.ParsePage(f.Limit, f.Offset)
	if err := page.Validate(); err != nil {
		return nil, err
	}

	rows, err := r.db().Query(
		medicalRecordSelect+b.Where()+` ORDER BY m.date DESC LIMIT ? OFFSET ?`,
		append(b.Args(), page.Limit, page.Offset)...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []MedicalRecord{}
	for rows.Next() {
		m, err := scanMedicalRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r MedicalRecordRepository) GetByID(id int64) (MedicalRecord, error) {
	row := r.db().QueryRow(medicalRecordSelect+` WHERE m.id = ?`, id)
	m, err := scanMedicalRecord(row)
	if err == sql.ErrNoRows {
		return MedicalRecord{}, domain.NotFoundError{Resource: "medical record"}
	}
	return m, err
}

func (r MedicalRecordRepository) Create(m MedicalRecord) (MedicalRecord, error) {
	res, err := r.db().Exec(`
		INSERT INTO medical_records (patient_id, veterinarian_id, date, diagnosis, treatment, notes, weight_at_visit)
		VALUES (?, ?, NOW(), ?, ?, ?, ?)
	`, m.PatientID, m.VeterinarianID, m.Diagnosis, m.Treatment, m.Notes, m.WeightAtVisit)
	if err != nil {
		return MedicalRecord{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return MedicalRecord{}, err
	}
	return r.GetByID(id)
}

func (r MedicalRecordRepository) Update(id int64, patch MedicalRecordPatch) (MedicalRecord, error) {
	_, err := r.db().Exec(`
		UPDATE medical_records SET
			patient_id = COALESCE(?, patient_id),
			veterinarian_id = COALESCE(?, veterinarian_id),
			diagnosis = COALESCE(?, diagnosis),
			treatment = COALESCE(?, treatment),
			notes = COALESCE(?, notes),
			weight_at_visit = COALESCE(?, weight_at_visit)
		WHERE id = ?
	`, patch.PatientID, patch.VeterinarianID, patch.Diagnosis, patch.Treatment, patch.Notes, patch.WeightAtVisit, id)
	if err != nil {
		return MedicalRecord{}, err
	}
	return r.GetByID(id)
}

func (r MedicalRecordRepository) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM medical_records WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "medical record"}
	}
	return nil
}

func scanMedicalRecord(row rowScanner) (MedicalRecord, error) {
	var m MedicalRecord
	if err := row.Scan(
		&m.ID,
		&m.PatientID,
		&m.PatientName,
		&m.VeterinarianID,
		&m.VeterinarianName,
		&m.Date,
		&m.Diagnosis,
		&m.Treatment,
		&m.Notes,
		&m.WeightAtVisit,
	); err != nil {
		return MedicalRecord{}, err
	}
	return m, nil
}
