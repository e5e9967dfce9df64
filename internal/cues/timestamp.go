package cues

import (
	"fmt"
	"strings"
)

// RepairSet is a bit set of repairs applied to a time field.
type RepairSet uint16

const (
	// RepairSeparator marks a "." millisecond separator rewritten to ",".
	RepairSeparator RepairSet = 1 << iota
	// RepairMissingMillis marks an absent millisecond part defaulted to 000.
	RepairMissingMillis
	// RepairMillisWidth marks a millisecond part padded or cut to 3 digits.
	RepairMillisWidth
	// RepairHourPadding marks a single-digit hour.
	RepairHourPadding
	// RepairSecondsCarry marks seconds >= 60 carried into minutes.
	RepairSecondsCarry
	// RepairMinutesCarry marks minutes >= 60 carried into hours.
	RepairMinutesCarry
	// RepairMinutesAsSeconds marks a minute value reinterpreted as seconds.
	RepairMinutesAsSeconds
	// RepairUnparsable marks a field that kept a best-effort partial value.
	RepairUnparsable
)

var repairNames = []struct {
	flag RepairSet
	name string
}{
	{RepairSeparator, "separator"},
	{RepairMissingMillis, "missing_millis"},
	{RepairMillisWidth, "millis_width"},
	{RepairHourPadding, "hour_padding"},
	{RepairSecondsCarry, "seconds_carry"},
	{RepairMinutesCarry, "minutes_carry"},
	{RepairMinutesAsSeconds, "minutes_as_seconds"},
	{RepairUnparsable, "unparsable"},
}

// Has reports whether every flag in f is set.
func (s RepairSet) Has(f RepairSet) bool {
	return s&f == f
}

// Names lists the set flags in a stable order.
func (s RepairSet) Names() []string {
	var names []string
	for _, entry := range repairNames {
		if s.Has(entry.flag) {
			names = append(names, entry.name)
		}
	}
	return names
}

func (s RepairSet) String() string {
	names := s.Names()
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ",")
}

// RepairReport counts repairs across a cue list.
type RepairReport struct {
	Fields int
	Counts map[string]int
}

// Repairer resolves loose time fields into microseconds. The zero value
// applies every repair except the minutes-as-seconds reinterpretation, which
// turns a legitimate "00:03:00,000" into three seconds and therefore has to be
// enabled explicitly.
type Repairer struct {
	MinutesAsSeconds bool
}

type clockFields struct {
	hours   int64
	minutes int64
	seconds int64
	millis  int64
}

func (c clockFields) micros() int64 {
	total := ((c.hours*60+c.minutes)*60+c.seconds)*1000 + c.millis
	return total * Millisecond
}

// holdsSeconds matches "MM:00" where MM is a plausible seconds value.
func (c clockFields) holdsSeconds() bool {
	return c.minutes > 0 && c.minutes < 60 && c.seconds == 0
}

// RepairField resolves a single time field.
func (r Repairer) RepairField(raw string) (int64, RepairSet) {
	fields, flags := splitClock(raw)
	if r.MinutesAsSeconds && fields.holdsSeconds() {
		fields.seconds, fields.minutes = fields.minutes, 0
		flags |= RepairMinutesAsSeconds
	}
	return carry(fields, flags)
}

// RepairPair resolves a start/end pair. When the minutes-as-seconds repair
// fires on the start field and the end field carries the same hour and minute
// values, the end's minute field is the same misplaced value and is zeroed as
// well. End >= Start is not enforced.
func (r Repairer) RepairPair(rawStart, rawEnd string) (start, end int64, flags RepairSet) {
	sf, sflags := splitClock(rawStart)
	ef, eflags := splitClock(rawEnd)

	if r.MinutesAsSeconds {
		startMinutes, startHours := sf.minutes, sf.hours
		if sf.holdsSeconds() {
			sf.seconds, sf.minutes = sf.minutes, 0
			sflags |= RepairMinutesAsSeconds
		}
		switch {
		case ef.holdsSeconds():
			ef.seconds, ef.minutes = ef.minutes, 0
			eflags |= RepairMinutesAsSeconds
		case sflags.Has(RepairMinutesAsSeconds) && ef.hours == startHours && ef.minutes == startMinutes:
			ef.minutes = 0
			eflags |= RepairMinutesAsSeconds
		}
	}

	start, sflags = carry(sf, sflags)
	end, eflags = carry(ef, eflags)
	return start, end, sflags | eflags
}

// Resolve turns raw cues into timed cues in source order. Text lines are
// joined with "\n"; cleanup is left to Validate.
func (r Repairer) Resolve(raw []RawCue) ([]Cue, RepairReport) {
	report := RepairReport{Counts: map[string]int{}}
	out := make([]Cue, 0, len(raw))
	for _, rc := range raw {
		start, end, flags := r.RepairPair(rc.RawStart, rc.RawEnd)
		report.Fields += 2
		for _, name := range flags.Names() {
			report.Counts[name]++
		}
		out = append(out, Cue{
			Index: rc.Index,
			Start: start,
			End:   end,
			Text:  strings.Join(rc.TextLines, "\n"),
		})
	}
	return out, report
}

func carry(c clockFields, flags RepairSet) (int64, RepairSet) {
	if c.seconds >= 60 {
		c.minutes += c.seconds / 60
		c.seconds %= 60
		flags |= RepairSecondsCarry
	}
	if c.minutes >= 60 {
		c.hours += c.minutes / 60
		c.minutes %= 60
		flags |= RepairMinutesCarry
	}
	return c.micros(), flags
}

// splitClock reads "H:M:S[,.]ms" leniently. Missing components are taken from
// the right (seconds first) and garbage keeps its leading digits.
func splitClock(raw string) (clockFields, RepairSet) {
	var (
		fields clockFields
		flags  RepairSet
	)
	value := strings.TrimSpace(raw)
	if strings.Contains(value, ".") {
		value = strings.ReplaceAll(value, ".", ",")
		flags |= RepairSeparator
	}

	clock, ms, hasMillis := strings.Cut(value, ",")
	if !hasMillis {
		flags |= RepairMissingMillis
	} else {
		ms = strings.TrimSpace(ms)
		digits, _ := leadingDigits(ms)
		if len(digits) != len(ms) {
			flags |= RepairUnparsable
		}
		switch {
		case len(digits) == 0:
			flags |= RepairMissingMillis
		case len(digits) < 3:
			digits += strings.Repeat("0", 3-len(digits))
			flags |= RepairMillisWidth
		case len(digits) > 3:
			digits = digits[:3]
			flags |= RepairMillisWidth
		}
		fields.millis = atoi(digits)
	}

	parts := strings.Split(clock, ":")
	if len(parts) != 3 {
		flags |= RepairUnparsable
	}
	values := make([]int64, 3)
	for i := 0; i < 3 && i < len(parts); i++ {
		part := strings.TrimSpace(parts[len(parts)-1-i])
		digits, ok := leadingDigits(part)
		if !ok || len(digits) != len(part) {
			flags |= RepairUnparsable
		}
		values[2-i] = atoi(digits)
	}
	if len(parts) >= 3 && len(strings.TrimSpace(parts[len(parts)-3])) == 1 {
		flags |= RepairHourPadding
	}
	fields.hours, fields.minutes, fields.seconds = values[0], values[1], values[2]
	return fields, flags
}

func leadingDigits(s string) (string, bool) {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	return s[:end], end > 0
}

func atoi(digits string) int64 {
	var n int64
	for i := 0; i < len(digits); i++ {
		n = n*10 + int64(digits[i]-'0')
		if n > 1<<40 {
			break
		}
	}
	return n
}

// FormatTimestamp renders microseconds as HH:MM:SS,mmm. Negative values
// render as zero.
func FormatTimestamp(us int64) string {
	if us < 0 {
		us = 0
	}
	ms := us / Millisecond
	hours := ms / 3_600_000
	ms -= hours * 3_600_000
	minutes := ms / 60_000
	ms -= minutes * 60_000
	seconds := ms / 1000
	ms -= seconds * 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, seconds, ms)
}

// FormatRange renders the canonical "start --> end" time range line.
func FormatRange(start, end int64) string {
	return FormatTimestamp(start) + " --> " + FormatTimestamp(end)
}
