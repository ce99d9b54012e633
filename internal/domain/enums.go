package domain

import "strings"

// Enum is a fixed bidirectional mapping between the canonical capitalized
// wire form (Dog, NoShow) and the stored column value (dog, no_show).
// Inputs match case-insensitively; unknown values simply don't map.
type Enum struct {
	name    string
	byInput map[string]string // normalized input -> canonical
	toDB    map[string]string // canonical -> stored
	fromDB  map[string]string // stored -> canonical
}

func newEnum(name string, pairs ...[2]string) Enum {
	e := Enum{
		name:    name,
		byInput: make(map[string]string, len(pairs)*2),
		toDB:    make(map[string]string, len(pairs)),
		fromDB:  make(map[string]string, len(pairs)),
	}
	for _, p := range pairs {
		canonical, stored := p[0], p[1]
		e.byInput[normalizeEnumInput(canonical)] = canonical
		e.byInput[normalizeEnumInput(stored)] = canonical
		e.toDB[canonical] = stored
		e.fromDB[stored] = canonical
	}
	return e
}

// Case folded, separators stripped, so Scheduled, no_show and NOSHOW all
// resolve.
func normalizeEnumInput(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "_", "")
	s = strings.ReplaceAll(s, "-", "")
	return s
}

func (e Enum) Name() string { return e.name }

// Canonical resolves any accepted spelling to the canonical wire form.
func (e Enum) Canonical(raw string) (string, bool) {
	c, ok := e.byInput[normalizeEnumInput(raw)]
	return c, ok
}

// Stored resolves any accepted spelling to the stored column value.
func (e Enum) Stored(raw string) (string, bool) {
	c, ok := e.Canonical(raw)
	if !ok {
		return "", false
	}
	return e.toDB[c], true
}

// FromStored converts a column value back to the canonical wire form.
// Unknown stored values pass through untouched rather than blanking the
// response.
func (e Enum) FromStored(stored string) string {
	if c, ok := e.fromDB[stored]; ok {
		return c
	}
	return stored
}

const (
	RoleVeterinarian = "Veterinarian"
	RoleAssistant    = "Assistant"
	RoleAdmin        = "Admin"
)

var Roles = newEnum("role",
	[2]string{RoleVeterinarian, "veterinarian"},
	[2]string{RoleAssistant, "assistant"},
	[2]string{RoleAdmin, "admin"},
)

var Species = newEnum("species",
	[2]string{"Dog", "dog"},
	[2]string{"Cat", "cat"},
	[2]string{"Bird", "bird"},
	[2]string{"Reptile", "reptile"},
	[2]string{"Rodent", "rodent"},
	[2]string{"Rabbit", "rabbit"},
	[2]string{"Other", "other"},
)

var Genders = newEnum("gender",
	[2]string{"Male", "male"},
	[2]string{"Female", "female"},
	[2]string{"Unknown", "unknown"},
)

var AppointmentStatuses = newEnum("status",
	[2]string{"Scheduled", "scheduled"},
	[2]string{"Completed", "completed"},
	[2]string{"Canceled", "canceled"},
	[2]string{"NoShow", "no_show"},
)

var ProcedureTypes = newEnum("procedure_type",
	[2]string{"Vaccine", "vaccine"},
	[2]string{"Surgery", "surgery"},
	[2]string{"Deworming", "deworming"},
	[2]string{"Test", "test"},
	[2]string{"Grooming", "grooming"},
	[2]string{"Other", "other"},
)
