package domain

import "testing"

func TestEnumCanonicalAcceptsAnySpelling(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"NoShow", "NoShow"},
		{"no_show", "NoShow"},
		{"no-show", "NoShow"},
		{"NOSHOW", "NoShow"},
		{"  scheduled ", "Scheduled"},
	}
	for _, c := range cases {
		got, ok := AppointmentStatuses.Canonical(c.raw)
		if !ok {
			t.Fatalf("%q not recognized", c.raw)
		}
		if got != c.want {
			t.Fatalf("%q: got %q want %q", c.raw, got, c.want)
		}
	}
}

func TestEnumStored(t *testing.T) {
	if s, ok := AppointmentStatuses.Stored("NoShow"); !ok || s != "no_show" {
		t.Fatalf("got %q ok=%v", s, ok)
	}
	if s, ok := Species.Stored("DOG"); !ok || s != "dog" {
		t.Fatalf("got %q ok=%v", s, ok)
	}
	if _, ok := Species.Stored("dragon"); ok {
		t.Fatalf("unknown species accepted")
	}
}

func TestEnumFromStored(t *testing.T) {
	if got := AppointmentStatuses.FromStored("no_show"); got != "NoShow" {
		t.Fatalf("got %q", got)
	}
	// unknown stored values pass through rather than blanking the response
	if got := AppointmentStatuses.FromStored("legacy_value"); got != "legacy_value" {
		t.Fatalf("got %q", got)
	}
}

func TestRoleConstantsResolve(t *testing.T) {
	for _, role := range []string{RoleVeterinarian, RoleAssistant, RoleAdmin} {
		got, ok := Roles.Canonical(role)
		if !ok || got != role {
			t.Fatalf("role %q did not round-trip (got %q ok=%v)", role, got, ok)
		}
	}
}
