package repositories

import (
	"database/sql"
	"time"

	intconfig "vetclinic/internal/config"
	"vetclinic/internal/domain"
	"vetclinic/internal/query"
)

type Appointment struct {
	ID               int64     `json:"id"`
	PatientID        *int64    `json:"patient_id"`
	PatientName      *string   `json:"patient_name"`
	ClientID         *int64    `json:"client_id"`
	ClientName       *string   `json:"client_name"`
	VeterinarianID   int64     `json:"veterinarian_id"`
	VeterinarianName string    `json:"veterinarian_name"`
	StartTime        time.Time `json:"start_time"`
	EndTime          time.Time `json:"end_time"`
	Status           string    `json:"status"`
	Reason           string    `json:"reason"`
	DurationMinutes  int64     `json:"duration_minutes"`
}

type AppointmentFilter struct {
	PatientID      string
	ClientID       string
	VeterinarianID string
	Status         string
	StartDate      string
	EndDate        string
	ReasonContains string
	Limit          string
	Offset         string
}

type AppointmentPatch struct {
	PatientID      *int64
	ClientID       *int64
	VeterinarianID *int64
	StartTime      *time.Time
	EndTime        *time.Time
	Status         *string // canonical form
	Reason         *string
}

type AppointmentRepository struct {
	DB *sql.DB
}

func (r AppointmentRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// names joined in up front instead of the per-row lookups the listing
// would otherwise need
const appointmentSelect = `
	SELECT a.id, a.patient_id, p.name, a.client_id, c.name,
	       a.veterinarian_id, u.name, a.start_time, a.end_time, a.status, a.reason
	FROM appointments a
	LEFT JOIN patients p ON p.id = a.patient_id
	LEFT JOIN clients c ON c.id = a.client_id
	JOIN users u ON u.id = a.veterinarian_id`

func (r AppointmentRepository) List(f AppointmentFilter) ([]Appointment, error) {
	b := &query.Builder{}
	b.Int("a.patient_id", f.PatientID)
	b.Int("a.client_id", f.ClientID)
	b.Int("a.veterinarian_id", f.VeterinarianID)
	b.EnumFold("a.status", f.Status, domain.AppointmentStatuses)
	b.TimeFrom("a.start_time", f.StartDate)
	b.TimeTo("a.end_time", f.EndDate)
	b.ContainsFold("a.reason", f.ReasonContains)

	page := query.ParsePage(f.Limit, f.Offset)
	if err := page.Validate(); err != nil {
		return nil, err
	}

	rows, err := r.db().Query(
		appointmentSelect+b.Where()+` ORDER BY a.start_time DESC LIMIT ? OFFSET ?`,
		append(b.Args(), page.Limit, page.Offset)...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Appointment{}
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r AppointmentRepository) GetByID(id int64) (Appointment, error) {
	row := r.db().QueryRow(appointmentSelect+` WHERE a.id = ?`, id)
	a, err := scanAppointment(row)
	if err == sql.ErrNoRows {
		return Appointment{}, domain.NotFoundError{Resource: "appointment"}
	}
	return a, err
}

// VeterinarianBusy reports whether the veterinarian already has an
// appointment overlapping [start, end). excludeID skips the appointment
// being rescheduled.
func (r AppointmentRepository) VeterinarianBusy(vetID int64, start, end time.Time, excludeID int64) (bool, error) {
	var busy bool
	err := r.db().QueryRow(`
		SELECT EXISTS(
			SELECT 1 FROM appointments
			WHERE veterinarian_id = ? AND id != ? AND start_time < ? AND end_time > ?
		)
	`, vetID, excludeID, end, start).Scan(&busy)
	return busy, err
}

func (r AppointmentRepository) Create(a Appointment) (Appointment, error) {
	res, err := r.db().Exec(`
		INSERT INTO appointments (patient_id, client_id, veterinarian_id, start_time, end_time, status, reason)
		VALUES (?, ?, ?, ?, ?, 'scheduled', ?)
	`, a.PatientID, a.ClientID, a.VeterinarianID, a.StartTime, a.EndTime, a.Reason)
	if err != nil {
		return Appointment{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Appointment{}, err
	}
	return r.GetByID(id)
}

func (r AppointmentRepository) Update(id int64, patch AppointmentPatch) (Appointment, error) {
	var status *string
	if patch.Status != nil {
		s, ok := domain.AppointmentStatuses.Stored(*patch.Status)
		if !ok {
			return Appointment{}, domain.ValidationError{Field: "status", Msg: "unknown status"}
		}
		status = &s
	}

	_, err := r.db().Exec(`
		UPDATE appointments SET
			patient_id = COALESCE(?, patient_id),
			client_id = COALESCE(?, client_id),
			veterinarian_id = COALESCE(?, veterinarian_id),
			start_time = COALESCE(?, start_time),
			end_time = COALESCE(?, end_time),
			status = COALESCE(?, status),
			reason = COALESCE(?, reason)
		WHERE id = ?
	`, patch.PatientID, patch.ClientID, patch.VeterinarianID, patch.StartTime, patch.EndTime, status, patch.Reason, id)
	if err != nil {
		return Appointment{}, err
	}
	return r.GetByID(id)
}

func (r AppointmentRepository) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM appointments WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "appointment"}
	}
	return nil
}

func scanAppointment(row rowScanner) (Appointment, error) {
	var a Appointment
	var status string
	if err := row.Scan(
		&a.ID,
		&a.PatientID,
		&a.PatientName,
		&a.ClientID,
		&a.ClientName,
		&a.VeterinarianID,
		&a.VeterinarianName,
		&a.StartTime,
		&a.EndTime,
		&status,
		&a.Reason,
	); err != nil {
		return Appointment{}, err
	}
	a.Status = domain.AppointmentStatuses.FromStored(status)
	a.DurationMinutes = int64(a.EndTime.Sub(a.StartTime).Minutes())
	return a, nil
}
