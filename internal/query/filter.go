// Package query compiles loosely-typed query string values into WHERE
// fragments with positional parameters. Malformed values degrade to "no
// restriction" instead of failing the request; user input only ever ends
// up in the args list, never in predicate text.
package query

import (
	"strconv"
	"strings"
	"time"

	"vetclinic/internal/domain"
)

// Builder collects AND-ed predicate fragments plus their bound args.
// Fresh per request, discarded after execution.
type Builder struct {
	frags []string
	args  []any
}

// And appends a raw fragment. Callers pass literal column expressions with
// ? placeholders only.
func (b *Builder) And(frag string, args ...any) {
	b.frags = append(b.frags, frag)
	b.args = append(b.args, args...)
}

// Int filters on an integer column. Unparseable input is ignored.
func (b *Builder) Int(col, raw string) {
	n, ok := parseInt(raw)
	if !ok {
		return
	}
	b.And(col+" = ?", n)
}

// IntFrom / IntTo bound an integer column inclusively.
func (b *Builder) IntFrom(col, raw string) {
	if n, ok := parseInt(raw); ok {
		b.And(col+" >= ?", n)
	}
}

func (b *Builder) IntTo(col, raw string) {
	if n, ok := parseInt(raw); ok {
		b.And(col+" <= ?", n)
	}
}

// Exact filters on the literal value (phone numbers, license numbers).
func (b *Builder) Exact(col, raw string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return
	}
	b.And(col+" = ?", raw)
}

// ContainsFold is a case-insensitive substring match.
func (b *Builder) ContainsFold(col, raw string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return
	}
	b.And("LOWER("+col+") LIKE ?", "%"+strings.ToLower(raw)+"%")
}

// EnumFold filters an enum column. The value is normalized to its stored
// form; unrecognized values are ignored, equivalent to no filter.
func (b *Builder) EnumFold(col string, raw string, enum domain.Enum) {
	if strings.TrimSpace(raw) == "" {
		return
	}
	stored, ok := enum.Stored(raw)
	if !ok {
		return
	}
	b.And(col+" = ?", stored)
}

// Bool filters on a boolean column. Accepts the strconv spellings.
func (b *Builder) Bool(col, raw string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return
	}
	b.And(col+" = ?", v)
}

// TimeFrom is an inclusive lower bound on a timestamp column. Accepts
// RFC3339 or a bare date (midnight UTC).
func (b *Builder) TimeFrom(col, raw string) {
	if t, _, ok := parseTime(raw); ok {
		b.And(col+" >= ?", t)
	}
}

// TimeTo is an inclusive upper bound. A bare date covers the whole day.
func (b *Builder) TimeTo(col, raw string) {
	t, hasClock, ok := parseTime(raw)
	if !ok {
		return
	}
	if !hasClock {
		t = t.Add(24*time.Hour - time.Second)
	}
	b.And(col+" <= ?", t)
}

// DateFrom / DateTo bound a pure DATE column, binding the normalized
// yyyy-mm-dd string.
func (b *Builder) DateFrom(col, raw string) {
	if t, _, ok := parseTime(raw); ok {
		b.And(col+" >= ?", t.Format("2006-01-02"))
	}
}

func (b *Builder) DateTo(col, raw string) {
	if t, _, ok := parseTime(raw); ok {
		b.And(col+" <= ?", t.Format("2006-01-02"))
	}
}

// Where renders the combined clause, starting with " WHERE ", or returns
// the empty string when no filter survived (match all rows).
func (b *Builder) Where() string {
	if len(b.frags) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.frags, " AND ")
}

func (b *Builder) Args() []any { return b.args }

func (b *Builder) Empty() bool { return len(b.frags) == 0 }

func parseInt(raw string) (int64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func parseTime(raw string) (t time.Time, hasClock bool, ok bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false, false
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true, true
	}
	if t, err := time.Parse("2006-01-02 15:04:05", raw); err == nil {
		return t, true, true
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, false, true
	}
	return time.Time{}, false, false
}
