package query

import (
	"strings"
	"testing"
	"time"

	"vetclinic/internal/domain"
)

func TestBuilderEmptyMeansNoWhere(t *testing.T) {
	b := &Builder{}
	if got := b.Where(); got != "" {
		t.Fatalf("empty builder rendered %q", got)
	}
	if len(b.Args()) != 0 {
		t.Fatalf("empty builder holds args: %v", b.Args())
	}
	if !b.Empty() {
		t.Fatalf("Empty() should report true")
	}
}

func TestBuilderIgnoresMalformedValues(t *testing.T) {
	b := &Builder{}
	b.Int("client_id", "abc")
	b.Int("client_id", "")
	b.Bool("is_active", "maybe")
	b.TimeFrom("created_at", "not-a-date")
	b.EnumFold("status", "bogus", domain.AppointmentStatuses)

	if !b.Empty() {
		t.Fatalf("malformed values must degrade to no restriction, got %q", b.Where())
	}
}

func TestBuilderValuesNeverReachPredicateText(t *testing.T) {
	b := &Builder{}
	b.ContainsFold("reason", "EMERGENCY")
	b.Exact("phone", "555-0101")
	b.Int("client_id", "42")

	where := b.Where()
	for _, v := range []string{"EMERGENCY", "emergency", "555-0101", "42"} {
		if strings.Contains(where, v) {
			t.Fatalf("value %q leaked into predicate text: %q", v, where)
		}
	}
	if got := len(b.Args()); got != 3 {
		t.Fatalf("expected 3 bound args, got %d", got)
	}
}

func TestContainsFoldLowersAndWraps(t *testing.T) {
	b := &Builder{}
	b.ContainsFold("name", "  Rocky ")
	if got := b.Where(); got != " WHERE LOWER(name) LIKE ?" {
		t.Fatalf("unexpected clause %q", got)
	}
	if got := b.Args()[0]; got != "%rocky%" {
		t.Fatalf("unexpected pattern %v", got)
	}
}

func TestEnumFoldNormalizesToStoredForm(t *testing.T) {
	b := &Builder{}
	b.EnumFold("status", "no-show", domain.AppointmentStatuses)
	if b.Empty() {
		t.Fatalf("recognized enum value was dropped")
	}
	if got := b.Args()[0]; got != "no_show" {
		t.Fatalf("expected stored form no_show, got %v", got)
	}

	b2 := &Builder{}
	b2.EnumFold("status", "COMPLETED", domain.AppointmentStatuses)
	if got := b2.Args()[0]; got != "completed" {
		t.Fatalf("expected stored form completed, got %v", got)
	}
}

func TestBuilderJoinsWithAnd(t *testing.T) {
	b := &Builder{}
	b.Int("a.client_id", "7")
	b.EnumFold("a.status", "Scheduled", domain.AppointmentStatuses)
	want := " WHERE a.client_id = ? AND a.status = ?"
	if got := b.Where(); got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestTimeToBareDateCoversWholeDay(t *testing.T) {
	b := &Builder{}
	b.TimeTo("created_at", "2026-02-10")
	if b.Empty() {
		t.Fatalf("bare date should parse")
	}
	got, ok := b.Args()[0].(time.Time)
	if !ok {
		t.Fatalf("expected time.Time arg, got %T", b.Args()[0])
	}
	want := time.Date(2026, 2, 10, 23, 59, 59, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestTimeToTimestampUsedAsIs(t *testing.T) {
	b := &Builder{}
	b.TimeTo("created_at", "2026-02-10T08:30:00Z")
	got := b.Args()[0].(time.Time)
	want := time.Date(2026, 2, 10, 8, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestDateBoundsBindNormalizedString(t *testing.T) {
	b := &Builder{}
	b.DateFrom("date", "2026-01-05")
	b.DateTo("date", "2026-03-01T10:00:00Z")
	if got := b.Args()[0]; got != "2026-01-05" {
		t.Fatalf("DateFrom bound %v", got)
	}
	if got := b.Args()[1]; got != "2026-03-01" {
		t.Fatalf("DateTo bound %v", got)
	}
}
