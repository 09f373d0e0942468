package respond

import (
	"net/url"
	"strconv"
	"time"

	"github.com/MrJamesThe3rd/gastrack/internal/apperror"
	"github.com/MrJamesThe3rd/gastrack/internal/ledger"
)

// DateRange reads start and end from q. Both accept RFC 3339 or a plain
// date; a plain end date includes that whole day.
func DateRange(q url.Values) (ledger.DateRange, error) {
	var r ledger.DateRange

	if s := q.Get("start"); s != "" {
		t, _, err := parseTime(s)
		if err != nil {
			return r, apperror.Validation("start %q is not a date", s)
		}

		r.Start = &t
	}

	if s := q.Get("end"); s != "" {
		t, dateOnly, err := parseTime(s)
		if err != nil {
			return r, apperror.Validation("end %q is not a date", s)
		}

		if dateOnly {
			t = t.AddDate(0, 0, 1)
		}

		r.End = &t
	}

	return r, nil
}

func parseTime(s string) (time.Time, bool, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, true, nil
	}

	t, err := time.Parse(time.RFC3339, s)

	return t, false, err
}

// Int reads an optional integer query parameter.
func Int(q url.Values, name string) (int, error) {
	s := q.Get(name)
	if s == "" {
		return 0, nil
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, apperror.Validation("%s must be a number", name)
	}

	return n, nil
}

// ID parses a positive integer path parameter.
func ID(s, name string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return 0, apperror.Validation("%s must be a positive integer", name)
	}

	return n, nil
}
