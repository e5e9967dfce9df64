package cues

import (
	"math/rand"
	"reflect"
	"strings"
	"testing"
)

func TestValidateClipsOverlap(t *testing.T) {
	in := []Cue{
		{Index: 1, Start: 1 * Second, End: 3 * Second, Text: "first"},
		{Index: 2, Start: 2 * Second, End: 5 * Second, Text: "second"},
	}
	out, report := Validate(in, DefaultLimits())
	want := []Cue{
		{Index: 1, Start: 1 * Second, End: 2 * Second, Text: "first"},
		{Index: 2, Start: 2 * Second, End: 5 * Second, Text: "second"},
	}
	if !reflect.DeepEqual(out, want) {
		t.Fatalf("Validate = %+v, want %+v", out, want)
	}
	if report.Clipped != 1 || report.DroppedOverlap != 0 {
		t.Fatalf("unexpected report: %+v", report)
	}
}

func TestValidateDropsSliverInsteadOfKeeping(t *testing.T) {
	in := []Cue{
		{Start: 1 * Second, End: 3 * Second, Text: "sliver"},
		{Start: 1*Second + 200*Millisecond, End: 4 * Second, Text: "winner"},
	}
	out, report := Validate(in, DefaultLimits())
	if len(out) != 1 || out[0].Text != "winner" || out[0].Index != 1 {
		t.Fatalf("expected only the second cue, got %+v", out)
	}
	if report.DroppedOverlap != 1 {
		t.Fatalf("expected one overlap drop, got %+v", report)
	}
}

func TestValidateCascadingOverlap(t *testing.T) {
	in := []Cue{
		{Start: 0, End: 4 * Second, Text: "a"},
		{Start: 3 * Second, End: 9 * Second, Text: "b"},
		{Start: 3*Second + 100*Millisecond, End: 6 * Second, Text: "c"},
	}
	out, _ := Validate(in, DefaultLimits())
	if len(out) != 2 || out[0].Text != "a" || out[1].Text != "c" {
		t.Fatalf("unexpected survivors: %+v", out)
	}
	if out[0].End != 3*Second {
		t.Fatalf("expected first cue clipped to 3s, got %d", out[0].End)
	}
	if msg := CheckSequence(out, DefaultLimits()); msg != "" {
		t.Fatal(msg)
	}
}

func TestValidateClampsDurations(t *testing.T) {
	in := []Cue{
		{Start: 0, End: 100 * Millisecond, Text: "short"},
		{Start: 1 * Second, End: 30 * Second, Text: "long"},
		{Start: 40 * Second, End: 39 * Second, Text: "backwards"},
	}
	out, report := Validate(in, DefaultLimits())
	if out[0].Duration() != DefaultMinDuration {
		t.Fatalf("short cue duration = %d", out[0].Duration())
	}
	if out[1].Duration() != DefaultMaxDuration {
		t.Fatalf("long cue duration = %d", out[1].Duration())
	}
	if out[2].Start != 40*Second || out[2].Duration() != DefaultMinDuration {
		t.Fatalf("backwards cue = %+v", out[2])
	}
	if report.Extended != 2 || report.Shortened != 1 {
		t.Fatalf("unexpected report: %+v", report)
	}
}

func TestValidateTextHandling(t *testing.T) {
	long := strings.Repeat("x", 150)
	in := []Cue{
		{Start: 0, End: 1 * Second, Text: "   \n\t"},
		{Start: 1 * Second, End: 2 * Second, Text: "<i>styled</i>\n\n  second line  "},
		{Start: 2 * Second, End: 3 * Second, Text: long},
		{Start: 3 * Second, End: 4 * Second, Text: "<b></b>"},
	}
	out, report := Validate(in, DefaultLimits())
	if len(out) != 2 {
		t.Fatalf("expected 2 survivors, got %+v", out)
	}
	if out[0].Text != "styled\nsecond line" {
		t.Fatalf("normalized text = %q", out[0].Text)
	}
	if out[1].Text != strings.Repeat("x", 97)+"..." {
		t.Fatalf("truncated text = %q", out[1].Text)
	}
	if report.DroppedEmpty != 2 || report.Truncated != 1 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if out[0].Index != 1 || out[1].Index != 2 {
		t.Fatalf("expected renumbering, got %d %d", out[0].Index, out[1].Index)
	}
}

func TestValidateKeepsMarkupWhenDisabled(t *testing.T) {
	limits := DefaultLimits()
	limits.StripMarkup = false
	out, _ := Validate([]Cue{{Start: 0, End: Second, Text: "<i>kept</i>"}}, limits)
	if out[0].Text != "<i>kept</i>" {
		t.Fatalf("text = %q", out[0].Text)
	}
}

func TestValidateIdempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	limits := DefaultLimits()
	for round := 0; round < 200; round++ {
		in := randomCues(rng, 30)
		once, _ := Validate(in, limits)
		twice, report := Validate(once, limits)
		if !reflect.DeepEqual(once, twice) {
			t.Fatalf("round %d: second pass changed sequence\nonce:  %+v\ntwice: %+v", round, once, twice)
		}
		if report.Kept != len(once) || report.Clipped != 0 || report.Extended != 0 || report.Truncated != 0 {
			t.Fatalf("round %d: second pass reported changes: %+v", round, report)
		}
	}
}

func TestValidateInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	limits := DefaultLimits()
	for round := 0; round < 500; round++ {
		out, _ := Validate(randomCues(rng, 40), limits)
		if msg := CheckSequence(out, limits); msg != "" {
			t.Fatalf("round %d: %s", round, msg)
		}
		for i, cue := range out {
			if cue.Index != i+1 {
				t.Fatalf("round %d: index %d at position %d", round, cue.Index, i)
			}
		}
	}
}

func randomCues(rng *rand.Rand, n int) []Cue {
	texts := []string{"hello", "", "  ", "<i>quiet</i>", strings.Repeat("long words ", 15), "line one\nline two", "{\\an8}top"}
	cues := make([]Cue, 0, n)
	var cursor int64
	for i := 0; i < n; i++ {
		cursor += int64(rng.Intn(3000)-500) * Millisecond
		if cursor < 0 {
			cursor = 0
		}
		start := cursor
		end := start + int64(rng.Intn(14000)-1000)*Millisecond
		cues = append(cues, Cue{
			Index: i + 1,
			Start: start,
			End:   end,
			Text:  texts[rng.Intn(len(texts))],
		})
	}
	return cues
}
