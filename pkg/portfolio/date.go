package portfolio

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// DateLayout is the wire format of a Date.
const DateLayout = "2006-01-02"

// Date is a calendar date. The zero Date means no date was recorded.
type Date struct {
	time.Time
}

// NewDate returns the date at UTC midnight.
func NewDate(year int, month time.Month, day int) (d Date) {
	d = Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
	return d
}

// ParseDate accepts "2006-01-02" or an RFC 3339 timestamp and keeps the calendar date.
func ParseDate(s string) (d Date, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return d, err
	}

	var t time.Time
	t, err = time.Parse(DateLayout, s)
	if err == nil {
		d = NewDate(t.Year(), t.Month(), t.Day())
		return d, err
	}

	t, err = time.Parse(time.RFC3339, s)
	if err != nil {
		err = errors.Errorf("invalid date %q: expected YYYY-MM-DD or RFC 3339", s)
		return d, err
	}

	d = NewDate(t.Year(), t.Month(), t.Day())
	return d, err
}

// timestampObject is the shape document databases use for stored timestamps.
type timestampObject struct {
	Seconds       *int64 `json:"seconds"`
	LegacySeconds *int64 `json:"_seconds"`
}

// UnmarshalJSON accepts null, a date string, unix seconds or a {"seconds": n}
// timestamp object.
func (d *Date) UnmarshalJSON(data []byte) (err error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*d = Date{}
		return err
	}

	switch trimmed[0] {
	case '"':
		var s string
		err = json.Unmarshal(trimmed, &s)
		if err != nil {
			err = errors.Wrap(err, "failed to parse date string")
			return err
		}
		*d, err = ParseDate(s)
		return err
	case '{':
		var ts timestampObject
		err = json.Unmarshal(trimmed, &ts)
		if err != nil {
			err = errors.Wrap(err, "failed to parse timestamp object")
			return err
		}
		seconds := ts.Seconds
		if seconds == nil {
			seconds = ts.LegacySeconds
		}
		if seconds == nil {
			err = errors.New("timestamp object has no seconds field")
			return err
		}
		*d = fromUnix(*seconds)
		return err
	}

	var seconds int64
	seconds, err = strconv.ParseInt(string(trimmed), 10, 64)
	if err == nil {
		*d = fromUnix(seconds)
		return err
	}

	err = errors.Errorf("invalid date value: %s", string(trimmed))
	return err
}

func fromUnix(seconds int64) (d Date) {
	t := time.Unix(seconds, 0).UTC()
	d = NewDate(t.Year(), t.Month(), t.Day())
	return d
}

// MarshalJSON writes the zero Date as null and others as "2006-01-02".
func (d Date) MarshalJSON() (data []byte, err error) {
	if d.IsZero() {
		data = []byte("null")
		return data, err
	}
	data, err = json.Marshal(d.Format(DateLayout))
	return data, err
}
