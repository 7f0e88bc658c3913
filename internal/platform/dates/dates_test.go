package dates

import (
	"errors"
	"testing"
	"time"
)

func TestDay_NormalizesToMidnightUTC(t *testing.T) {
	in := time.Date(2024, time.June, 3, 23, 59, 59, 0, time.UTC)
	got := Day(in)
	want := time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestAddDays_LeapYear(t *testing.T) {
	got := AddDays(time.Date(2024, time.February, 28, 0, 0, 0, 0, time.UTC), 1)
	want := time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestParse_Format_RoundTrip(t *testing.T) {
	got, err := Parse("2024-06-03")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if Format(got) != "2024-06-03" {
		t.Fatalf("round trip: %s", Format(got))
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, s := range []string{"", "   ", "03/06/2024", "2024-13-01", "ayer"} {
		if _, err := Parse(s); !errors.Is(err, ErrInvalidDate) {
			t.Fatalf("%q: expected ErrInvalidDate, got %v", s, err)
		}
	}
}

func TestInRange_InclusiveBothEnds(t *testing.T) {
	from := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.June, 8, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		day  int
		want bool
	}{
		{1, true},
		{8, true},
		{5, true},
		{9, false},
	}
	for _, c := range cases {
		d := time.Date(2024, time.June, c.day, 12, 0, 0, 0, time.UTC)
		if InRange(d, from, to) != c.want {
			t.Fatalf("day %d: want %v", c.day, c.want)
		}
	}
	if InRange(time.Date(2024, time.May, 31, 0, 0, 0, 0, time.UTC), from, to) {
		t.Fatal("may 31 should be out of range")
	}
}
