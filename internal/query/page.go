package query

import (
	"strconv"
	"strings"

	"vetclinic/internal/domain"
)

const (
	DefaultLimit = 50
	MaxLimit     = 400
)

// Page is the clamped pagination window appended to every compiled list
// query.
type Page struct {
	Limit  int64
	Offset int64
}

// ParsePage normalizes raw limit/offset values. Unparseable values fall
// back to the defaults; parsed values are clamped into [1, MaxLimit] and
// [0, ...]. Out-of-range input is corrected, not rejected.
func ParsePage(limitRaw, offsetRaw string) Page {
	p := Page{Limit: DefaultLimit, Offset: 0}

	if n, err := strconv.ParseInt(strings.TrimSpace(limitRaw), 10, 64); err == nil {
		p.Limit = n
	}
	if p.Limit < 1 {
		p.Limit = 1
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}

	if n, err := strconv.ParseInt(strings.TrimSpace(offsetRaw), 10, 64); err == nil {
		p.Offset = n
	}
	if p.Offset < 0 {
		p.Offset = 0
	}

	return p
}

// Validate rejects a window the clamp rule should have made impossible.
// Kept as a guard so a future change to ParsePage cannot silently hand a
// negative bound to the driver.
func (p Page) Validate() error {
	if p.Limit < 1 || p.Offset < 0 {
		return domain.ValidationError{Field: "pagination", Msg: "limit/offset out of range"}
	}
	return nil
}
