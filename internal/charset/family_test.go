package charset

import (
	"reflect"
	"testing"
)

func TestFamilyOf(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"windows-1251", FamilyCyrillic},
		{"KOI8-R", FamilyCyrillic},
		{"ISO-8859-5", FamilyCyrillic},
		{"GB-18030", FamilyChineseSimplified},
		{"Shift_JIS", FamilyJapanese},
		{"EUC-KR", FamilyKorean},
		{"Big5", FamilyChineseTraditional},
		{"ISO-8859-1", FamilyWestern},
		{"ISO-8859-8-I", FamilyHebrew},
		{"IBM420_rtl", FamilyArabic},
		{"IBM424_ltr", FamilyHebrew},
		{"TIS-620", FamilyThai},
		{"UTF-16LE", FamilyUTF16},
	}
	for _, tt := range tests {
		got, ok := FamilyOf(tt.label)
		if !ok || got != tt.want {
			t.Errorf("FamilyOf(%q) = %q, %v; want %q", tt.label, got, ok, tt.want)
		}
	}
	if _, ok := FamilyOf("klingon-1"); ok {
		t.Error("unknown label mapped to a family")
	}
}

func TestExpandPutsHintFirst(t *testing.T) {
	got := Expand("KOI8-R")
	want := []string{"koi8-r", "windows-1251", "iso-8859-5", "koi8-u", "cp866"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Expand = %v, want %v", got, want)
	}
	if got := Expand("IBM420_rtl"); !reflect.DeepEqual(got, Members(FamilyArabic)) {
		t.Fatalf("undecodable hint should expand to its family, got %v", got)
	}
}

func TestFamilyMembersAreRegistered(t *testing.T) {
	for _, family := range Families() {
		members := Members(family)
		if len(members) == 0 {
			t.Errorf("family %s is empty", family)
		}
		for _, name := range members {
			if !Known(name) {
				t.Errorf("family %s member %s missing from registry", family, name)
			}
		}
	}
}

func TestLadderCoverage(t *testing.T) {
	ladder := Ladder()
	if len(ladder) < 25 {
		t.Fatalf("ladder has %d encodings", len(ladder))
	}
	if ladder[0] != UTF8 {
		t.Fatalf("ladder starts with %s", ladder[0])
	}
	seen := map[string]bool{}
	for _, name := range ladder {
		if seen[name] {
			t.Fatalf("duplicate ladder entry %s", name)
		}
		seen[name] = true
		if !Known(name) {
			t.Fatalf("ladder entry %s missing from registry", name)
		}
	}
}

func TestCanonicalAliases(t *testing.T) {
	tests := map[string]string{
		"UTF8":         UTF8,
		"sjis":         "shift_jis",
		"CP1252":       "windows-1252",
		"latin-1":      "iso-8859-1",
		"tis620":       "iso-8859-11",
		"x-unknown":    "",
		"windows-1251": "windows-1251",
	}
	for label, want := range tests {
		if got := Canonical(label); got != want {
			t.Errorf("Canonical(%q) = %q, want %q", label, got, want)
		}
	}
}
