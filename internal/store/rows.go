package store

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/seqlab/comprehend/internal/value"
	"github.com/seqlab/comprehend/seq"
)

// identPattern restricts table and column names to plain identifiers.
// SQLite cannot parameterize identifiers, so they are validated and
// quoted instead.
var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Table returns the rows of a table as a lazy sequence. Each
// consumption runs a fresh query, ordered by rowid, so the sequence
// observes the table's current contents. A row with one selected
// column yields its scalar; a wider row yields a tuple in column
// order. With no cols given, all columns are selected in declared
// order.
func (s *Store) Table(ctx context.Context, name string, cols ...string) seq.Seq[value.Value] {
	return func(yield func(value.Value, error) bool) {
		query, err := tableQuery(name, cols)
		if err != nil {
			yield(nil, err)
			return
		}

		rows, err := s.db.QueryContext(ctx, query)
		if err != nil {
			yield(nil, fmt.Errorf("query table %s: %w", name, err))
			return
		}
		defer rows.Close()

		names, err := rows.Columns()
		if err != nil {
			yield(nil, fmt.Errorf("columns of table %s: %w", name, err))
			return
		}

		raw := make([]any, len(names))
		ptrs := make([]any, len(names))
		for i := range raw {
			ptrs[i] = &raw[i]
		}

		for rows.Next() {
			if err := rows.Scan(ptrs...); err != nil {
				yield(nil, fmt.Errorf("scan row of table %s: %w", name, err))
				return
			}
			v, err := rowValue(name, names, raw)
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(v, nil) {
				return
			}
		}

		if err := rows.Err(); err != nil {
			yield(nil, fmt.Errorf("iterate table %s: %w", name, err))
		}
	}
}

// Dataset wraps a table as a named stream value, ready to be bound
// into an environment as a generator source.
func (s *Store) Dataset(ctx context.Context, name string, cols ...string) (value.Stream, error) {
	if _, err := tableQuery(name, cols); err != nil {
		return value.Stream{}, err
	}
	return value.Stream{Name: name, Source: s.Table(ctx, name, cols...)}, nil
}

// tableQuery builds the deterministic row query for a table.
func tableQuery(name string, cols []string) (string, error) {
	if !identPattern.MatchString(name) {
		return "", fmt.Errorf("invalid table name %q", name)
	}
	selected := "*"
	if len(cols) > 0 {
		quoted := make([]string, len(cols))
		for i, c := range cols {
			if !identPattern.MatchString(c) {
				return "", fmt.Errorf("invalid column name %q", c)
			}
			quoted[i] = `"` + c + `"`
		}
		selected = strings.Join(quoted, ", ")
	}
	return fmt.Sprintf(`SELECT %s FROM "%s" ORDER BY rowid ASC`, selected, name), nil
}

// rowValue converts one scanned row into a runtime value.
func rowValue(table string, names []string, raw []any) (value.Value, error) {
	if len(raw) == 1 {
		return columnValue(table, names[0], raw[0])
	}
	tup := make(value.Tuple, len(raw))
	for i, col := range raw {
		v, err := columnValue(table, names[i], col)
		if err != nil {
			return nil, err
		}
		tup[i] = v
	}
	return tup, nil
}

// columnValue maps SQLite storage classes onto runtime values. NULL is
// rejected: the value set has no null and silently inventing one would
// corrupt downstream arithmetic.
func columnValue(table, column string, col any) (value.Value, error) {
	switch v := col.(type) {
	case int64:
		return value.Int(v), nil
	case float64:
		return value.Float(v), nil
	case bool:
		return value.Bool(v), nil
	case string:
		return value.Str(v), nil
	case []byte:
		return value.Str(string(v)), nil
	case nil:
		return nil, fmt.Errorf("table %s: column %s is NULL", table, column)
	default:
		return nil, fmt.Errorf("table %s: column %s has unsupported type %T", table, column, col)
	}
}
