package postgres

import (
	"fmt"
	"strings"
)

// QueryBuilder assembles a parameterized statement from optional fragments.
// Every caller-supplied value goes through Bind and comes back as a $n
// placeholder; fragments are fixed strings, so nothing caller-controlled is
// ever concatenated into SQL.
type QueryBuilder struct {
	conds []string
	sets  []string
	args  []any
}

// Bind appends v to the argument list and returns its placeholder.
func (b *QueryBuilder) Bind(v any) string {
	b.args = append(b.args, v)
	return fmt.Sprintf("$%d", len(b.args))
}

// Where appends a conjunct. The fragment uses %s for each value in vals, in
// order; the values are bound, not interpolated.
func (b *QueryBuilder) Where(frag string, vals ...any) {
	b.conds = append(b.conds, b.expand(frag, vals))
}

// Set appends an assignment for an UPDATE statement, in call order.
func (b *QueryBuilder) Set(frag string, vals ...any) {
	b.sets = append(b.sets, b.expand(frag, vals))
}

func (b *QueryBuilder) expand(frag string, vals []any) string {
	placeholders := make([]any, len(vals))
	for i, v := range vals {
		placeholders[i] = b.Bind(v)
	}
	return fmt.Sprintf(frag, placeholders...)
}

// WhereClause renders " WHERE c1 AND c2 …", or "" when no conjunct was added.
func (b *QueryBuilder) WhereClause() string {
	if len(b.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.conds, " AND ")
}

// SetClause renders "SET a = $1, b = $2" in the order the fields were added.
func (b *QueryBuilder) SetClause() string {
	return "SET " + strings.Join(b.sets, ", ")
}

// HasSets reports whether any assignment was added.
func (b *QueryBuilder) HasSets() bool { return len(b.sets) > 0 }

// Args returns the bound values in placeholder order.
func (b *QueryBuilder) Args() []any { return b.args }
