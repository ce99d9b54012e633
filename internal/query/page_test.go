package query

import "testing"

func TestParsePageDefaults(t *testing.T) {
	p := ParsePage("", "")
	if p.Limit != DefaultLimit || p.Offset != 0 {
		t.Fatalf("got %+v", p)
	}
}

func TestParsePageClampsLimit(t *testing.T) {
	cases := []struct {
		raw  string
		want int64
	}{
		{"0", 1},
		{"-5", 1},
		{"1", 1},
		{"400", 400},
		{"9999", MaxLimit},
		{"abc", DefaultLimit},
	}
	for _, c := range cases {
		if p := ParsePage(c.raw, ""); p.Limit != c.want {
			t.Fatalf("limit %q: got %d want %d", c.raw, p.Limit, c.want)
		}
	}
}

func TestParsePageClampsOffset(t *testing.T) {
	if p := ParsePage("", "-10"); p.Offset != 0 {
		t.Fatalf("negative offset not clamped: %d", p.Offset)
	}
	if p := ParsePage("", "250"); p.Offset != 250 {
		t.Fatalf("valid offset altered: %d", p.Offset)
	}
}

func TestPageValidateGuard(t *testing.T) {
	if err := (Page{Limit: 50, Offset: 0}).Validate(); err != nil {
		t.Fatalf("clamped page rejected: %v", err)
	}
	if err := (Page{Limit: 0, Offset: 0}).Validate(); err == nil {
		t.Fatalf("impossible page accepted")
	}
}
