package querybuilder

import (
	"strconv"
	"strings"
)

// InsertBuilder writes a single-row insert taken from a db-tagged model,
// optionally followed by an ON CONFLICT clause.
type InsertBuilder struct {
	table    string
	model    any
	conflict []string
	excluded []string
	now      []string
	ignore   bool
}

func Insert(table string, model any) *InsertBuilder {
	return &InsertBuilder{table: table, model: model}
}

// OnConflict names the unique columns that identify an existing row.
func (b *InsertBuilder) OnConflict(columns ...string) *InsertBuilder {
	b.conflict = append(b.conflict, columns...)
	return b
}

// DoNothing keeps the existing row untouched on conflict.
func (b *InsertBuilder) DoNothing() *InsertBuilder {
	b.ignore = true
	return b
}

// UpdateExcluded overwrites columns with the values of the rejected row.
func (b *InsertBuilder) UpdateExcluded(columns ...string) *InsertBuilder {
	b.excluded = append(b.excluded, columns...)
	return b
}

// Touch sets columns to NOW() on conflict.
func (b *InsertBuilder) Touch(columns ...string) *InsertBuilder {
	b.now = append(b.now, columns...)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, errNoTable
	}
	cols, args, err := columnsAndValues(b.model)
	if err != nil {
		return "", nil, err
	}

	var buf strings.Builder
	buf.WriteString("INSERT INTO ")
	buf.WriteString(b.table)
	buf.WriteString(" (")
	buf.WriteString(strings.Join(cols, ", "))
	buf.WriteString(") VALUES (")
	for i := range args {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString("$")
		buf.WriteString(strconv.Itoa(i + 1))
	}
	buf.WriteString(")")

	if len(b.conflict) == 0 {
		return buf.String(), args, nil
	}
	buf.WriteString(" ON CONFLICT (")
	buf.WriteString(strings.Join(b.conflict, ", "))
	buf.WriteString(")")

	sets := make([]string, 0, len(b.excluded)+len(b.now))
	for _, col := range b.excluded {
		sets = append(sets, col+" = EXCLUDED."+col)
	}
	for _, col := range b.now {
		sets = append(sets, col+" = NOW()")
	}
	if b.ignore || len(sets) == 0 {
		buf.WriteString(" DO NOTHING")
		return buf.String(), args, nil
	}
	buf.WriteString(" DO UPDATE SET ")
	buf.WriteString(strings.Join(sets, ", "))
	return buf.String(), args, nil
}
