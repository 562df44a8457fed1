package sequence

import "testing"

func TestFormatOrderID(t *testing.T) {
	cases := []struct {
		n    int64
		want string
	}{
		{1, "OD000001"},
		{42, "OD000042"},
		{999999, "OD999999"},
		{1000000, "OD1000000"}, // grows past the pad instead of wrapping
	}
	for _, c := range cases {
		if got := FormatOrderID(c.n); got != c.want {
			t.Fatalf("FormatOrderID(%d) = %s, want %s", c.n, got, c.want)
		}
	}
}

func TestParseOrderID(t *testing.T) {
	if n, ok := ParseOrderID("OD000042"); !ok || n != 42 {
		t.Fatalf("expected (42, true), got (%d, %v)", n, ok)
	}

	for _, id := range []string{"", "OD", "ODabc", "XX000001", "OD-5", "od000001", "OD000001x"} {
		if _, ok := ParseOrderID(id); ok {
			t.Fatalf("expected %q to be rejected", id)
		}
	}
}

func TestNextFromIDsIgnoresMalformed(t *testing.T) {
	ids := []string{"OD000001", "OD000003", "garbage", "OD000002"}
	if got := NextFromIDs(ids); got != "OD000004" {
		t.Fatalf("expected OD000004, got %s", got)
	}
}

func TestNextFromIDsEmpty(t *testing.T) {
	if got := NextFromIDs(nil); got != "OD000001" {
		t.Fatalf("expected OD000001 for no existing orders, got %s", got)
	}
	if got := NextFromIDs([]string{"junk", "also-junk"}); got != "OD000001" {
		t.Fatalf("expected OD000001 over all-malformed ids, got %s", got)
	}
}
