package dbconn

import "strings"

// MaxTracedQueryLength caps the statement text attached to a span.
const MaxTracedQueryLength = 512

// TraceQuery collapses whitespace in a SQL statement and truncates it to
// MaxTracedQueryLength bytes so repository queries read as one line in
// traces.
func TraceQuery(query string) string {
	normalized := strings.Join(strings.Fields(query), " ")
	if len(normalized) <= MaxTracedQueryLength {
		return normalized
	}
	return normalized[:MaxTracedQueryLength] + "..."
}
