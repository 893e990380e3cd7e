package parser

import (
	"testing"
	"time"
)

func TestExtractDate_NoisyText(t *testing.T) {
	t.Parallel()

	got, ok := ExtractDate("Tue 01-JUL-2025 (night audit)")
	if !ok {
		t.Fatalf("expected a date")
	}
	want := time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("want %v got %v", want, got)
	}
}

func TestExtractDate_MixedCaseMonth(t *testing.T) {
	t.Parallel()

	for _, text := range []string{"3-Jul-2025", "03-JUL-2025", "3-jul-2025"} {
		got, ok := ExtractDate(text)
		if !ok {
			t.Fatalf("%q: expected a date", text)
		}
		if got.Day() != 3 || got.Month() != time.July || got.Year() != 2025 {
			t.Fatalf("%q: unexpected date %v", text, got)
		}
	}
}

func TestExtractDate_Unparseable(t *testing.T) {
	t.Parallel()

	for _, text := range []string{"", "Forecast", "2025/07/01", "31-Feb-2025"} {
		if _, ok := ExtractDate(text); ok {
			t.Fatalf("%q: expected no date", text)
		}
	}
}

func TestParseNumber_ThousandsSeparators(t *testing.T) {
	t.Parallel()

	n := ParseNumber("1,250,000")
	if !n.Valid || n.Value != 1250000 {
		t.Fatalf("unexpected number: %+v", n)
	}
}

func TestParseNumber_Degrades(t *testing.T) {
	t.Parallel()

	for _, cell := range []string{"", "n/a", "--", "12x"} {
		if n := ParseNumber(cell); n.Valid {
			t.Fatalf("%q: expected missing, got %+v", cell, n)
		}
	}
	if ParseNumber("bad").OrZero() != 0 {
		t.Fatalf("missing must read as zero in arithmetic")
	}
}

func TestPropertyFromFilename(t *testing.T) {
	t.Parallel()

	prop, ok := PropertyFromFilename("Hashoo Karachi.xlsx")
	if !ok || prop != "Karachi" {
		t.Fatalf("unexpected: %q %v", prop, ok)
	}

	if _, ok := PropertyFromFilename("single.xlsx"); ok {
		t.Fatalf("one-token filename must fail")
	}
}
