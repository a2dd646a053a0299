package usecase

import (
	"strconv"
	"strings"
	"time"

	"github.com/HusenovAbdullo/LogisticReact-sub001/internal/domain"
)

// FilterRecords applies criteria to records, preserving input order. The
// filter is permissive: an empty or malformed criterion narrows nothing, so
// a bad query parameter can never fail a request.
func FilterRecords(records []domain.Record, c domain.FilterCriteria) []domain.Record {
	q := strings.ToLower(strings.TrimSpace(c.Q))
	method := strings.ToUpper(strings.TrimSpace(c.Method))
	direction := strings.TrimSpace(c.Direction)
	statusLo, statusHi, statusSet := parseStatusConstraint(c.Status)
	from, fromSet := parseTimeBound(c.From)
	to, toSet := parseTimeBound(c.To)

	out := make([]domain.Record, 0, len(records))
	for _, rec := range records {
		if q != "" && !strings.Contains(haystack(rec), q) {
			continue
		}
		if method != "" && strings.ToUpper(rec.Method) != method {
			continue
		}
		if direction != "" && string(rec.Direction) != direction {
			continue
		}
		if statusSet {
			// A record with no status never satisfies a numeric comparison.
			if !rec.HasStatus() || rec.Status < statusLo || rec.Status > statusHi {
				continue
			}
		}
		if fromSet && rec.Timestamp.Before(from) {
			continue
		}
		if toSet && rec.Timestamp.After(to) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// haystack is the searchable text of a record: method, URL, status, error,
// and tag joined with spaces, lowercased.
func haystack(rec domain.Record) string {
	parts := []string{rec.Method, rec.URL}
	if rec.HasStatus() {
		parts = append(parts, strconv.Itoa(rec.Status))
	}
	if rec.Error != "" {
		parts = append(parts, rec.Error)
	}
	if rec.Tag != "" {
		parts = append(parts, rec.Tag)
	}
	return strings.ToLower(strings.Join(parts, " "))
}

// parseStatusConstraint accepts a single code ("204") or an inclusive range
// ("500-599"). Malformed input means no constraint.
func parseStatusConstraint(s string) (lo, hi int, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, 0, false
	}
	if lo, hi, found := strings.Cut(s, "-"); found {
		a, errA := strconv.Atoi(strings.TrimSpace(lo))
		b, errB := strconv.Atoi(strings.TrimSpace(hi))
		if errA != nil || errB != nil || a > b {
			return 0, 0, false
		}
		return a, b, true
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, 0, false
	}
	return n, n, true
}

// parseTimeBound accepts RFC 3339 timestamps or plain dates. Malformed
// bounds are treated as unset.
func parseTimeBound(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
