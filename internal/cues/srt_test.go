package cues

import "testing"

func TestWriteSRT(t *testing.T) {
	seq := []Cue{
		{Index: 1, Start: 1 * Second, End: 2500 * Millisecond, Text: "Hello\nworld"},
		{Index: 2, Start: 3 * Second, End: 4 * Second, Text: "Bye"},
	}
	want := "1\n00:00:01,000 --> 00:00:02,500\nHello\nworld\n\n2\n00:00:03,000 --> 00:00:04,000\nBye\n"
	if got := FormatSRT(seq); got != want {
		t.Fatalf("FormatSRT =\n%q\nwant\n%q", got, want)
	}
}

func TestWriteSRTRoundTrip(t *testing.T) {
	input := "3\n0:00:01.5 -> 0:00:04\n<i>one</i>\n\n\n9\n00:00:03,000-->00:00:06,000\ntwo\n"
	raw, _ := Parse(input)
	timed, _ := Repairer{}.Resolve(raw)
	validated, _ := Validate(timed, DefaultLimits())
	rendered := FormatSRT(validated)

	again, _ := Parse(rendered)
	retimed, _ := Repairer{}.Resolve(again)
	revalidated, _ := Validate(retimed, DefaultLimits())
	if FormatSRT(revalidated) != rendered {
		t.Fatalf("canonical output not stable:\n%s\nvs\n%s", rendered, FormatSRT(revalidated))
	}
}

func TestSummarize(t *testing.T) {
	seq := []Cue{
		{Start: 1 * Second, End: 2 * Second},
		{Start: 3 * Second, End: 6 * Second},
	}
	s := Summarize(seq)
	if s.Count != 2 || s.FirstStart != Second || s.LastEnd != 6*Second || s.TotalSpoken != 4*Second || s.Average != 2*Second {
		t.Fatalf("unexpected summary: %+v", s)
	}
	if (Summarize(nil) != Summary{}) {
		t.Fatal("expected zero summary for empty input")
	}
}
