package cues

import (
	"reflect"
	"testing"
)

func TestParseStandardBlocks(t *testing.T) {
	input := "1\r\n00:00:01,000 --> 00:00:03,000\r\nHello there\r\nGeneral Kenobi\r\n\r\n2\r\n00:00:04,500 --> 00:00:06,000\r\nSecond cue\r\n"
	raw, report := Parse(input)
	if len(raw) != 2 {
		t.Fatalf("expected 2 cues, got %d", len(raw))
	}
	want := RawCue{
		Index:     1,
		HasIndex:  true,
		RawStart:  "00:00:01,000",
		RawEnd:    "00:00:03,000",
		TextLines: []string{"Hello there", "General Kenobi"},
		Block:     1,
	}
	if !reflect.DeepEqual(raw[0], want) {
		t.Fatalf("first cue = %+v, want %+v", raw[0], want)
	}
	if report.Blocks != 2 || report.Kept != 2 || report.SkippedTotal() != 0 {
		t.Fatalf("unexpected report: %+v", report)
	}
}

func TestParseArrowVariants(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		start string
		end   string
	}{
		{name: "canonical", line: "00:00:01,000 --> 00:00:02,000", start: "00:00:01,000", end: "00:00:02,000"},
		{name: "short arrow", line: "00:00:01,000->00:00:02,000", start: "00:00:01,000", end: "00:00:02,000"},
		{name: "fat arrow", line: "0:00:01.5 => 0:00:02.25", start: "0:00:01.5", end: "0:00:02.25"},
		{name: "triple dash", line: "00:00:01,000 ---> 00:00:02,000", start: "00:00:01,000", end: "00:00:02,000"},
		{name: "no millis", line: "00:00:01 --> 00:00:02", start: "00:00:01", end: "00:00:02"},
		{name: "position hints", line: "00:00:01,000 --> 00:00:02,000 X1:40 X2:600", start: "00:00:01,000", end: "00:00:02,000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, _ := Parse(tt.line + "\ntext\n")
			if len(raw) != 1 {
				t.Fatalf("expected 1 cue, got %d", len(raw))
			}
			if raw[0].RawStart != tt.start || raw[0].RawEnd != tt.end {
				t.Fatalf("got %q / %q, want %q / %q", raw[0].RawStart, raw[0].RawEnd, tt.start, tt.end)
			}
		})
	}
}

func TestParseSkipsBlocksWithoutTimestamp(t *testing.T) {
	input := "WEBVTT\n\n1\n00:00:01,000 --> 00:00:02,000\nkept\n\njust some text\nwithout timing\n"
	raw, report := Parse(input)
	if len(raw) != 1 {
		t.Fatalf("expected 1 cue, got %d", len(raw))
	}
	if report.Skipped[SkipNoTimestamp] != 2 {
		t.Fatalf("expected 2 skipped blocks, got %+v", report.Skipped)
	}
	if len(report.Results) != 3 || report.Results[0].Kept() || !report.Results[1].Kept() {
		t.Fatalf("unexpected block results: %+v", report.Results)
	}
}

func TestParseSynthesizesIndex(t *testing.T) {
	input := "00:00:01,000 --> 00:00:02,000\nfirst\n\n7\n00:00:03,000 --> 00:00:04,000\nsecond\n\n00:00:05,000 --> 00:00:06,000\nthird\n"
	raw, _ := Parse(input)
	if len(raw) != 3 {
		t.Fatalf("expected 3 cues, got %d", len(raw))
	}
	got := []int{raw[0].Index, raw[1].Index, raw[2].Index}
	if !reflect.DeepEqual(got, []int{1, 7, 3}) {
		t.Fatalf("indexes = %v", got)
	}
	if raw[0].HasIndex || !raw[1].HasIndex {
		t.Fatal("HasIndex flags wrong")
	}
}

func TestParseIndexAfterTimestamp(t *testing.T) {
	raw, _ := Parse("00:00:01,000 --> 00:00:02,000\n4\nhello\n")
	if len(raw) != 1 || raw[0].Index != 4 || !raw[0].HasIndex {
		t.Fatalf("expected index 4 after timestamp, got %+v", raw)
	}
	if !reflect.DeepEqual(raw[0].TextLines, []string{"hello"}) {
		t.Fatalf("text lines = %v", raw[0].TextLines)
	}
}

func TestParseTrailingIntegerIsText(t *testing.T) {
	raw, _ := Parse("1\n00:00:01,000 --> 00:00:02,000\n42\n")
	if len(raw) != 1 {
		t.Fatalf("expected 1 cue, got %d", len(raw))
	}
	if !reflect.DeepEqual(raw[0].TextLines, []string{"42"}) {
		t.Fatalf("expected integer caption text, got %v", raw[0].TextLines)
	}
}

func TestParseSplitsMergedBlocks(t *testing.T) {
	input := "1\n00:00:01,000 --> 00:00:02,000\nfirst\n2\n00:00:03,000 --> 00:00:04,000\nsecond\n"
	raw, report := Parse(input)
	if len(raw) != 2 {
		t.Fatalf("expected 2 cues, got %d", len(raw))
	}
	if raw[1].Index != 2 || raw[1].RawStart != "00:00:03,000" {
		t.Fatalf("second cue = %+v", raw[1])
	}
	if !reflect.DeepEqual(raw[0].TextLines, []string{"first"}) {
		t.Fatalf("first cue text = %v", raw[0].TextLines)
	}
	if report.Split != 1 {
		t.Fatalf("expected 1 split, got %d", report.Split)
	}
}

func TestParseEmptyInput(t *testing.T) {
	raw, report := Parse("\ufeff\n \n\t\n")
	if len(raw) != 0 || report.Blocks != 0 {
		t.Fatalf("expected nothing, got %d cues and %+v", len(raw), report)
	}
}

func TestParseSkipsTimedBlocksWithoutText(t *testing.T) {
	input := "1\n00:00:01,000 --> 00:00:02,000\n\n2\n00:00:03,000 --> 00:00:04,000\nkept\n"
	raw, report := Parse(input)
	if len(raw) != 1 || raw[0].Index != 2 {
		t.Fatalf("unexpected cues: %+v", raw)
	}
	if report.Skipped[SkipNoText] != 1 {
		t.Fatalf("no_text count = %d, want 1", report.Skipped[SkipNoText])
	}
	if report.Results[0].Kept() || report.Results[0].Skip != SkipNoText {
		t.Fatalf("first result = %+v", report.Results[0])
	}
}
