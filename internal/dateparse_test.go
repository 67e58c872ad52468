package internal

import (
	"testing"
	"time"
)

func TestParseFlexibleTime(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{"2021-08-23T22:49:20Z", time.Date(2021, 8, 23, 22, 49, 20, 0, time.UTC)},
		{"2021-08-23T22:49:20+02:00", time.Date(2021, 8, 23, 20, 49, 20, 0, time.UTC)},
		{"2021-08-23 22:49:20", time.Date(2021, 8, 23, 22, 49, 20, 0, time.UTC)},
		{"2021:08:23 22:49:20", time.Date(2021, 8, 23, 22, 49, 20, 0, time.UTC)},
		{"2021-08-23", time.Date(2021, 8, 23, 0, 0, 0, 0, time.UTC)},
		{"20210823", time.Date(2021, 8, 23, 0, 0, 0, 0, time.UTC)},
		{"2021", time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)},
		{" 2021-08-23T22:49:20Z ", time.Date(2021, 8, 23, 22, 49, 20, 0, time.UTC)},
	}
	for _, tc := range cases {
		got, ok := parseFlexibleTime(tc.in)
		if !ok {
			t.Errorf("parseFlexibleTime(%q) rejected the value", tc.in)
			continue
		}
		if !got.UTC().Equal(tc.want) {
			t.Errorf("parseFlexibleTime(%q) = %v, want %v", tc.in, got.UTC(), tc.want)
		}
	}
}

func TestParseFlexibleTimeRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "  ", "not a date", "730", "0000"} {
		if _, ok := parseFlexibleTime(in); ok {
			t.Errorf("parseFlexibleTime(%q) accepted garbage", in)
		}
	}
}

func TestParseFlexibleTimeReturnsLocal(t *testing.T) {
	got, ok := parseFlexibleTime("2021-08-23T22:49:20Z")
	if !ok {
		t.Fatal("value rejected")
	}
	if got.Location() != time.Local {
		t.Errorf("expected local zone, got %v", got.Location())
	}
}

func TestPDFDateToISO(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"D:20210823224920Z", "2021-08-23T22:49:20Z"},
		{"D:20210823224920+05'00'", "2021-08-23T22:49:20+05:00"},
		{"D:20210823224920-05'00'", "2021-08-23T22:49:20-05:00"},
		{"D:20210823224920", "2021-08-23T22:49:20"},
		{"D:20210823", "2021-08-23T00:00:00"},
		{"D:2021", "2021-01-01T00:00:00"},
	}
	for _, tc := range cases {
		if got := pdfDateToISO(tc.in); got != tc.want {
			t.Errorf("pdfDateToISO(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestPDFDateToISORoundtripsThroughParser(t *testing.T) {
	got, ok := parseFlexibleTime(pdfDateToISO("D:20210823224920+02'00'"))
	if !ok {
		t.Fatal("transformed PDF date rejected by parser")
	}
	want := time.Date(2021, 8, 23, 20, 49, 20, 0, time.UTC)
	if !got.UTC().Equal(want) {
		t.Errorf("got %v, want %v", got.UTC(), want)
	}
}
