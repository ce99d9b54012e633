package repositories

import (
	"database/sql"
	"fmt"

	intconfig "vetclinic/internal/config"
	"vetclinic/internal/domain"
	"vetclinic/internal/query"
)

type Procedure struct {
	ID                int64   `json:"id"`
	Name              string  `json:"name"`
	ProcedureType     string  `json:"procedure_type"`
	Description       *string `json:"description"`
	DurationMinutes   *int64  `json:"duration_minutes"`
	DurationFormatted *string `json:"duration_formatted"`
}

type ProcedureFilter struct {
	NameContains  string
	ProcedureType string
	MinDuration   string
	MaxDuration   string
	Limit         string
	Offset        string
}

type ProcedurePatch struct {
	Name            *string
	ProcedureType   *string // canonical form
	Description     *string
	DurationMinutes *int64
}

type ProcedureRepository struct {
	DB *sql.DB
}

func (r ProcedureRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const procedureColumns = `id, name, type, description, duration_minutes`

func (r ProcedureRepository) List(f ProcedureFilter) ([]Procedure, error) {
	b := &query.Builder{}
	b.ContainsFold("name", f.NameContains)
	b.EnumFold("type", f.ProcedureType, domain.ProcedureTypes)
	b.IntFrom("duration_minutes", f.MinDuration)
	b.IntTo("duration_minutes", f.MaxDuration)

	page := query.ParsePage(f.Limit, f.Offset)
	if err := page.Validate(); err != nil {
		return nil, err
	}

	rows, err := r.db().Query(
		`SELECT `+procedureColumns+` FROM procedures`+b.Where()+` ORDER BY name ASC LIMIT ? OFFSET ?`,
		append(b.Args(), page.Limit, page.Offset)...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Procedure{}
	for rows.Next() {
		p, err := scanProcedure(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r ProcedureRepository) GetByID(id int64) (Procedure, error) {
	row := r.db().QueryRow(`SELECT `+procedureColumns+` FROM procedures WHERE id = ?`, id)
	p, err := scanProcedure(row)
	if err == sql.ErrNoRows {
		return Procedure{}, domain.NotFoundError{Resource: "procedure"}
	}
	return p, err
}

func (r ProcedureRepository) Create(name, procedureType string, description *string, durationMinutes *int64) (Procedure, error) {
	stored, ok := domain.ProcedureTypes.Stored(procedureType)
	if !ok {
		return Procedure{}, domain.ValidationError{Field: "procedure_type", Msg: "unknown procedure type"}
	}
	res, err := r.db().Exec(`
		INSERT INTO procedures (name, type, description, duration_minutes)
		VALUES (?, ?, ?, ?)
	`, name, stored, description, durationMinutes)
	if err != nil {
		return Procedure{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Procedure{}, err
	}
	return r.GetByID(id)
}

func (r ProcedureRepository) Update(id int64, patch ProcedurePatch) (Procedure, error) {
	var stored *string
	if patch.ProcedureType != nil {
		s, ok := domain.ProcedureTypes.Stored(*patch.ProcedureType)
		if !ok {
			return Procedure{}, domain.ValidationError{Field: "procedure_type", Msg: "unknown procedure type"}
		}
		stored = &s
	}
	_, err := r.db().Exec(`
		UPDATE procedures SET
			name = COALESCE(?, name),
			type = COALESCE(?, type),
			description = COALESCE(?, description),
			duration_minutes = COALESCE(?, duration_minutes)
		WHERE id = ?
	`, patch.Name, stored, patch.Description, patch.DurationMinutes, id)
	if err != nil {
		return Procedure{}, err
	}
	return r.GetByID(id)
}

func (r ProcedureRepository) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM procedures WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "procedure"}
	}
	return nil
}

// FormatDuration renders minutes as "2h 30m" style text for responses.
func FormatDuration(minutes int64) string {
	h := minutes / 60
	m := minutes % 60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh %dm", h, m)
	}
}

func scanProcedure(row rowScanner) (Procedure, error) {
	var p Procedure
	var pt string
	if err := row.Scan(&p.ID, &p.Name, &pt, &p.Description, &p.DurationMinutes); err != nil {
		return Procedure{}, err
	}
	p.ProcedureType = domain.ProcedureTypes.FromStored(pt)
	if p.DurationMinutes != nil {
		formatted := FormatDuration(*p.DurationMinutes)
		p.DurationFormatted = &formatted
	}
	return p, nil
}
