package repositories

import (
	"database/sql"

	intconfig "vetclinic/internal/config"
	"vetclinic/internal/domain"
	"vetclinic/internal/query"
)

type MonthCount struct {
	Month string `json:"month"`
	Count int64  `json:"count"`
}

type UserCounts struct {
	TotalUsers    int64 `json:"total_users"`
	Veterinarians int64 `json:"veterinarians"`
	Assistants    int64 `json:"assistants"`
	Admins        int64 `json:"admins"`
}

type ProcedureTypeCount struct {
	ProcedureType string `json:"procedure_type"`
	Count         int64  `json:"count"`
}

type SpeciesCount struct {
	Species string `json:"species"`
	Count   int64  `json:"count"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type VeterinarianStats struct {
	AppointmentsByStatus  []StatusCount        `json:"appointments_by_status"`
	ProceduresPerformed   []ProcedureTypeCount `json:"procedures_performed"`
	MedicalRecordsCreated int64                `json:"medical_records_created"`
	PatientsAttended      []SpeciesCount       `json:"patients_attended"`
}

type StatsRepository struct {
	DB *sql.DB
}

func (r StatsRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r StatsRepository) AppointmentsByMonth(startDate, endDate string) ([]MonthCount, error) {
	b := &query.Builder{}
	b.DateFrom("DATE(start_time)", startDate)
	b.DateTo("DATE(start_time)", endDate)

	rows, err := r.db().Query(`
		SELECT DATE_FORMAT(start_time, '%Y-%m') AS month, COUNT(*)
		FROM appointments`+b.Where()+`
		GROUP BY month ORDER BY month ASC
	`, b.Args()...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []MonthCount{}
	for rows.Next() {
		var mc MonthCount
		if err := rows.Scan(&mc.Month, &mc.Count); err != nil {
			return nil, err
		}
		out = append(out, mc)
	}
	return out, rows.Err()
}

func (r StatsRepository) CountUsers() (UserCounts, error) {
	var c UserCounts
	err := r.db().QueryRow(`
		SELECT COUNT(*),
		       COALESCE(SUM(role = 'veterinarian'), 0),
		       COALESCE(SUM(role = 'assistant'), 0),
		       COALESCE(SUM(role = 'admin'), 0)
		FROM users
	`).Scan(&c.TotalUsers, &c.Veterinarians, &c.Assistants, &c.Admins)
	return c, err
}

func (r StatsRepository) ProceduresByType(startDate, endDate string, vetID int64) ([]ProcedureTypeCount, error) {
	b := &query.Builder{}
	if vetID > 0 {
		b.And("pp.veterinarian_id = ?", vetID)
	}
	b.DateFrom("pp.date", startDate)
	b.DateTo("pp.date", endDate)

	rows, err := r.db().Query(`
		SELECT p.type, COUNT(*)
		FROM patient_procedures pp
		JOIN procedures p ON p.id = pp.procedure_id`+b.Where()+`
		GROUP BY p.type ORDER BY COUNT(*) DESC
	`, b.Args()...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []ProcedureTypeCount{}
	for rows.Next() {
		var tc ProcedureTypeCount
		var pt string
		if err := rows.Scan(&pt, &tc.Count); err != nil {
			return nil, err
		}
		tc.ProcedureType = domain.ProcedureTypes.FromStored(pt)
		out = append(out, tc)
	}
	return out, rows.Err()
}

func (r StatsRepository) PatientsBySpecies() ([]SpeciesCount, error) {
	rows, err := r.db().Query(`
		SELECT species, COUNT(*)
		FROM patients
		GROUP BY species ORDER BY COUNT(*) DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSpeciesCounts(rows)
}

func (r StatsRepository) VeterinarianStats(vetID int64, startDate, endDate string) (VeterinarianStats, error) {
	var stats VeterinarianStats

	b := &query.Builder{}
	b.And("veterinarian_id = ?", vetID)
	b.DateFrom("DATE(start_time)", startDate)
	b.DateTo("DATE(start_time)", endDate)

	rows, err := r.db().Query(`
		SELECT status, COUNT(*)
		FROM appointments`+b.Where()+`
		GROUP BY status
	`, b.Args()...)
	if err != nil {
		return stats, err
	}
	stats.AppointmentsByStatus = []StatusCount{}
	for rows.Next() {
		var sc StatusCount
		var status string
		if err := rows.Scan(&status, &sc.Count); err != nil {
			rows.Close()
			return stats, err
		}
		sc.Status = domain.AppointmentStatuses.FromStored(status)
		stats.AppointmentsByStatus = append(stats.AppointmentsByStatus, sc)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return stats, err
	}

	stats.ProceduresPerformed, err = r.ProceduresByType(startDate, endDate, vetID)
	if err != nil {
		return stats, err
	}

	rb := &query.Builder{}
	rb.And("veterinarian_id = ?", vetID)
	rb.DateFrom("DATE(date)", startDate)
	rb.DateTo("DATE(date)", endDate)
	if err := r.db().QueryRow(
		`SELECT COUNT(*) FROM medical_records`+rb.Where(), rb.Args()...,
	).Scan(&stats.MedicalRecordsCreated); err != nil {
		return stats, err
	}

	pb := &query.Builder{}
	pb.And("m.veterinarian_id = ?", vetID)
	pb.DateFrom("DATE(m.date)", startDate)
	pb.DateTo("DATE(m.date)", endDate)
	prows, err := r.db().Query(`
		SELECT pa.species, COUNT(DISTINCT pa.id)
		FROM medical_records m
		JOIN patients pa ON pa.id = m.patient_id`+pb.Where()+`
		GROUP BY pa.species
	`, pb.Args()...)
	if err != nil {
		return stats, err
	}
	defer prows.Close()

	stats.PatientsAttended, err = scanSpeciesCounts(prows)
	return stats, err
}

func scanSpeciesCounts(rows *sql.Rows) ([]SpeciesCount, error) {
	out := []SpeciesCount{}
	for rows.Next() {
		var sc SpeciesCount
		var species string
		if err := rows.Scan(&species, &sc.Count); err != nil {
			return nil, err
		}
		sc.Species = domain.Species.FromStored(species)
		out = append(out, sc)
	}
	return out, rows.Err()
}
