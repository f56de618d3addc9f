// Package dbconn holds postgres connection-string helpers shared by the API
// server and the migration CLI.
package dbconn

import (
	"net/url"
	"strings"
)

const (
	preparedBinaryParam = "disable_prepared_binary_result"
	defaultDBName       = "season_engine"
)

// Prepare trims raw and, when disablePreparedBinary is set on a URL-style
// DSN, adds disable_prepared_binary_result=yes unless the caller already
// chose a value. Keyword-style DSNs pass through untouched.
func Prepare(raw string, disablePreparedBinary bool) string {
	raw = strings.TrimSpace(raw)
	if !disablePreparedBinary || raw == "" {
		return raw
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" {
		return raw
	}

	query := parsed.Query()
	if query.Get(preparedBinaryParam) != "" {
		return raw
	}
	query.Set(preparedBinaryParam, "yes")
	parsed.RawQuery = query.Encode()
	return parsed.String()
}

// Name reports the database a DSN points at, for span and metric labels.
// It falls back to season_engine when the DSN does not name one.
func Name(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if parsed, err := url.Parse(trimmed); err == nil && parsed.Scheme != "" {
		if name := strings.Trim(parsed.Path, "/ "); name != "" {
			return name
		}
		return defaultDBName
	}

	for _, token := range strings.Fields(trimmed) {
		key, value, ok := strings.Cut(token, "=")
		if !ok || key != "dbname" {
			continue
		}
		if name := strings.Trim(value, `"'`); name != "" {
			return name
		}
	}
	return defaultDBName
}
