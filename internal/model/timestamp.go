package model

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"time"
)

// MaxSeconds is the largest accepted epoch second, 9999-12-31T23:59:59Z.
const MaxSeconds = 253402300799

// Timestamp is a point in time reduced to whole epoch seconds. Nanoseconds are
// kept only so a value read from the backend can be written back unchanged.
type Timestamp struct {
	Seconds     int64
	Nanoseconds int64

	// blank marks an empty string value, which the backend uses for "no date".
	blank bool
}

// TimestampFromTime converts a native time value.
func TimestampFromTime(t time.Time) Timestamp {
	if t.IsZero() || t.Unix() < 0 {
		return Timestamp{}
	}
	return Timestamp{Seconds: t.Unix(), Nanoseconds: int64(t.Nanosecond())}
}

// Time returns the instant as a time.Time in the local zone.
func (ts Timestamp) Time() time.Time {
	return time.Unix(ts.Seconds, ts.Nanoseconds)
}

// IsZero reports whether ts is the epoch, which is also what every malformed
// input normalises to.
func (ts Timestamp) IsZero() bool {
	return ts.Seconds == 0 && ts.Nanoseconds == 0
}

// MarshalJSON writes the {seconds, nanoseconds} shape. A blank value is
// written back as an empty string.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if ts.blank {
		return []byte(`""`), nil
	}
	return json.Marshal(struct {
		Seconds     int64 `json:"seconds"`
		Nanoseconds int64 `json:"nanoseconds"`
	}{ts.Seconds, ts.Nanoseconds})
}

// UnmarshalJSON accepts every encoding NormalizeSeconds does. It never fails:
// unreadable values decode to the epoch.
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	*ts = parseTimestamp(data, 1)
	return nil
}

// NormalizeSeconds converts the raw JSON encoding of a point in time into
// epoch seconds. Accepted shapes are {"seconds","nanoseconds"},
// {"_seconds","_nanoseconds"}, a string holding either object as JSON, and an
// RFC 3339 / ISO-8601 string. ISO strings without a zone are read in
// time.Local. Absent, null, negative, out of range or unparsable input
// yields 0.
func NormalizeSeconds(raw []byte) int64 {
	return parseTimestamp(raw, 1).Seconds
}

type secondsPair struct {
	Seconds        *float64 `json:"seconds"`
	Nanoseconds    *float64 `json:"nanoseconds"`
	AltSeconds     *float64 `json:"_seconds"`
	AltNanoseconds *float64 `json:"_nanoseconds"`
}

var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseTimestamp decodes raw. depth bounds how many levels of JSON-in-a-string
// are unwrapped.
func parseTimestamp(raw []byte, depth int) Timestamp {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return Timestamp{}
	}

	switch raw[0] {
	case '{':
		var p secondsPair
		if err := json.Unmarshal(raw, &p); err != nil {
			return Timestamp{}
		}
		sec, nsec := p.Seconds, p.Nanoseconds
		if sec == nil {
			sec, nsec = p.AltSeconds, p.AltNanoseconds
		}
		if sec == nil || math.IsNaN(*sec) || math.IsInf(*sec, 0) || *sec < 0 || *sec > MaxSeconds {
			return Timestamp{}
		}
		ts := Timestamp{Seconds: int64(math.Floor(*sec))}
		if nsec != nil && *nsec > 0 && *nsec < 1e9 {
			ts.Nanoseconds = int64(*nsec)
		}
		return ts

	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return Timestamp{}
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return Timestamp{blank: true}
		}
		if strings.HasPrefix(s, "{") || strings.HasPrefix(s, "\"") {
			if depth <= 0 {
				return Timestamp{}
			}
			return parseTimestamp([]byte(s), depth-1)
		}
		for _, layout := range isoLayouts {
			if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
				return TimestampFromTime(t)
			}
		}
	}
	return Timestamp{}
}
