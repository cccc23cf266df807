// Package timestamp converts elapsed-time strings from show notes into video deep links.
package timestamp

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidTimestamp is returned for anything that is not SS, MM:SS or HH:MM:SS.
var ErrInvalidTimestamp = errors.New("invalid timestamp")

// offsetParam is the query parameter YouTube reads the start offset (in seconds) from.
const offsetParam = "t"

// maxSeconds is the largest offset a time.Duration can hold.
const maxSeconds = math.MaxInt64 / int64(time.Second)

// ParseOffset parses an elapsed-time string such as "05:30" or "1:05:30".
//
// The leading field is unbounded ("75:10" is 75 minutes and 10 seconds); every
// following field must be below 60.
func ParseOffset(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidTimestamp)
	}

	fields := strings.Split(s, ":")
	if len(fields) > 3 {
		return 0, fmt.Errorf("%w: %q has too many fields", ErrInvalidTimestamp, s)
	}

	var total int64
	for i, field := range fields {
		n, err := parseField(field)
		if err != nil {
			return 0, fmt.Errorf("%w: %q: %v", ErrInvalidTimestamp, s, err)
		}
		if i > 0 && n >= 60 {
			return 0, fmt.Errorf("%w: %q: field %q out of range", ErrInvalidTimestamp, s, field)
		}
		if n > maxSeconds || total > (maxSeconds-n)/60 {
			return 0, fmt.Errorf("%w: %q: out of range", ErrInvalidTimestamp, s)
		}
		total = total*60 + n
	}

	return time.Duration(total) * time.Second, nil
}

// parseField accepts only plain decimal digits, so "+5", "-5" and " 5" are rejected.
func parseField(field string) (int64, error) {
	if field == "" {
		return 0, errors.New("empty field")
	}
	for _, r := range field {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("non-numeric field %q", field)
		}
	}
	return strconv.ParseInt(field, 10, 64)
}

// DeepLink returns videoURL with its start offset set to ts.
//
// Any existing offset parameter is replaced; the remaining query parameters keep
// their original order.
func DeepLink(videoURL, ts string) (string, error) {
	offset, err := ParseOffset(ts)
	if err != nil {
		return "", err
	}

	u, err := url.Parse(strings.TrimSpace(videoURL))
	if err != nil {
		return "", fmt.Errorf("parse video URL: %w", err)
	}
	if !u.IsAbs() {
		return "", fmt.Errorf("video URL %q is not absolute", videoURL)
	}

	seconds := strconv.FormatInt(int64(offset/time.Second), 10)
	u.RawQuery = setParam(u.RawQuery, offsetParam, seconds)

	return u.String(), nil
}

// setParam replaces (or appends) key in a raw query string without reordering the
// other pairs the way url.Values.Encode would.
func setParam(rawQuery, key, value string) string {
	pairs := make([]string, 0, 4)
	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" {
			continue
		}
		name, _, _ := strings.Cut(pair, "=")
		if unescaped, err := url.QueryUnescape(name); err == nil && unescaped == key {
			continue
		}
		pairs = append(pairs, pair)
	}

	pairs = append(pairs, url.QueryEscape(key)+"="+url.QueryEscape(value))
	return strings.Join(pairs, "&")
}
