package sheets

import (
	"testing"

	"membership_system/internal/domain"
)

func TestColumnLetter(t *testing.T) {
	if got := columnLetter(domain.ColNama); got != "A" {
		t.Errorf("columnLetter(ColNama) = %q, want %q", got, "A")
	}
	if got := columnLetter(domain.ColUsername); got != "B" {
		t.Errorf("columnLetter(ColUsername) = %q, want %q", got, "B")
	}
	if got := columnLetter(domain.ColTimestamp); got != "G" {
		t.Errorf("columnLetter(ColTimestamp) = %q, want %q", got, "G")
	}
}

func TestRangeOf(t *testing.T) {
	g := Gateway{sheet: "Sheet1"}
	if got := g.rangeOf("A1:G1"); got != "Sheet1!A1:G1" {
		t.Errorf("rangeOf = %q, want %q", got, "Sheet1!A1:G1")
	}
}

func TestToStrings(t *testing.T) {
	got := toStrings([]any{"jdoe", 42, nil})
	if got[0] != "jdoe" {
		t.Errorf("cell 0 = %q, want %q", got[0], "jdoe")
	}
	if got[1] != "42" {
		t.Errorf("cell 1 = %q, want %q", got[1], "42")
	}
	if got[2] != "" {
		t.Errorf("cell 2 = %q, want empty", got[2])
	}
}
