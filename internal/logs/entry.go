package logs

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"time"
)

// Entry is one decoded JSON log line.
type Entry struct {
	Time      time.Time
	Level     slog.Level
	Message   string
	Component string
	RunID     string
	Fields    map[string]any
	Raw       string
}

var reservedKeys = map[string]bool{
	"ts": true, "level": true, "msg": true, "component": true, "run_id": true,
}

// ParseEntry decodes a JSON log line. Lines that are not JSON objects are
// reported as not ok.
func ParseEntry(line string) (Entry, bool) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "{") {
		return Entry{}, false
	}
	var fields map[string]any
	if err := json.Unmarshal([]byte(line), &fields); err != nil {
		return Entry{}, false
	}
	entry := Entry{Raw: line, Fields: make(map[string]any, len(fields))}
	entry.Message, _ = fields["msg"].(string)
	entry.Component, _ = fields["component"].(string)
	entry.RunID, _ = fields["run_id"].(string)
	if ts, ok := fields["ts"].(string); ok {
		entry.Time, _ = time.Parse(time.RFC3339Nano, ts)
	}
	if lvl, ok := fields["level"].(string); ok {
		_ = entry.Level.UnmarshalText([]byte(lvl))
	}
	for key, value := range fields {
		if !reservedKeys[key] {
			entry.Fields[key] = value
		}
	}
	return entry, true
}

// Format renders e as a single human-readable line.
func (e Entry) Format() string {
	var b strings.Builder
	if !e.Time.IsZero() {
		b.WriteString(e.Time.Local().Format("2006-01-02 15:04:05"))
		b.WriteByte(' ')
	}
	fmt.Fprintf(&b, "%-5s", e.Level.String())
	if e.Component != "" {
		fmt.Fprintf(&b, " [%s]", e.Component)
	}
	b.WriteString(" ")
	b.WriteString(e.Message)
	for _, key := range slices.Sorted(maps.Keys(e.Fields)) {
		fmt.Fprintf(&b, " %s=%v", key, e.Fields[key])
	}
	return b.String()
}

// Query selects entries. Empty strings match everything; the zero MinLevel
// is slog.LevelInfo.
type Query struct {
	RunID     string
	Component string
	MinLevel  slog.Level
	Search    string
}

// Match reports whether e passes every set filter.
func (q Query) Match(e Entry) bool {
	if q.RunID != "" && e.RunID != q.RunID {
		return false
	}
	if q.Component != "" && !strings.EqualFold(e.Component, q.Component) {
		return false
	}
	if e.Level < q.MinLevel {
		return false
	}
	if q.Search != "" && !strings.Contains(strings.ToLower(e.Raw), strings.ToLower(q.Search)) {
		return false
	}
	return true
}
