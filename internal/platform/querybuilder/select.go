// Package querybuilder renders the small set of postgres statements the
// catalogue and season-snapshot repositories issue, with $n placeholders.
package querybuilder

import (
	"errors"
	"strconv"
	"strings"
)

var (
	errNoColumns = errors.New("columns are required")
	errNoTable   = errors.New("table is required")
)

// Condition is one conjunct of a WHERE clause.
type Condition struct {
	column string
	op     string
	value  any
	bound  bool
}

func Eq(column string, value any) Condition {
	return Condition{column: column, op: "=", value: value, bound: true}
}

func IsNull(column string) Condition {
	return Condition{column: column, op: "IS NULL"}
}

func NotNull(column string) Condition {
	return Condition{column: column, op: "IS NOT NULL"}
}

type SelectBuilder struct {
	columns []string
	table   string
	where   []Condition
	orderBy []string
	limit   int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *SelectBuilder) OrderBy(parts ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, parts...)
	return b
}

func (b *SelectBuilder) Limit(limit int) *SelectBuilder {
	b.limit = limit
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	if len(b.columns) == 0 {
		return "", nil, errNoColumns
	}
	if strings.TrimSpace(b.table) == "" {
		return "", nil, errNoTable
	}

	var buf strings.Builder
	buf.WriteString("SELECT ")
	buf.WriteString(strings.Join(b.columns, ", "))
	buf.WriteString(" FROM ")
	buf.WriteString(b.table)

	var args []any
	for i, c := range b.where {
		if i == 0 {
			buf.WriteString(" WHERE ")
		} else {
			buf.WriteString(" AND ")
		}
		buf.WriteString(c.column)
		buf.WriteByte(' ')
		buf.WriteString(c.op)
		if c.bound {
			args = append(args, c.value)
			buf.WriteString(" $")
			buf.WriteString(strconv.Itoa(len(args)))
		}
	}
	if len(b.orderBy) > 0 {
		buf.WriteString(" ORDER BY ")
		buf.WriteString(strings.Join(b.orderBy, ", "))
	}
	if b.limit > 0 {
		buf.WriteString(" LIMIT ")
		buf.WriteString(strconv.Itoa(b.limit))
	}

	return buf.String(), args, nil
}
