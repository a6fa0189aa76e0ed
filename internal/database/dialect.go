package database

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yasinhessnawi1/OldNotice_Backend/internal/constants"
)

// dialect returns the effective driver name.
func (p *Pool) dialect() string {
	if p.Driver == constants.DriverPostgres {
		return constants.DriverPostgres
	}
	return constants.DriverMySQL
}

// IsPostgres reports whether the pool talks to PostgreSQL.
func (p *Pool) IsPostgres() bool {
	return p.dialect() == constants.DriverPostgres
}

// Rebind rewrites "?" placeholders into the driver's bind syntax.
// Queries are written with "?" and rebound to "$1, $2, ..." for PostgreSQL.
// Question marks inside single-quoted literals are left alone.
func (p *Pool) Rebind(query string) string {
	if !p.IsPostgres() {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)

	n := 0
	inQuote := false
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case c == '\'':
			inQuote = !inQuote
			b.WriteByte(c)
		case c == '?' && !inQuote:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// UpsertClause returns the clause that turns an INSERT into an upsert on the
// given unique key, overwriting updateCols.
func (p *Pool) UpsertClause(keyCols []string, updateCols []string) string {
	sets := make([]string, len(updateCols))
	if p.IsPostgres() {
		for i, c := range updateCols {
			sets[i] = fmt.Sprintf("%s = EXCLUDED.%s", c, c)
		}
		return fmt.Sprintf(" ON CONFLICT (%s) DO UPDATE SET %s", strings.Join(keyCols, ", "), strings.Join(sets, ", "))
	}

	for i, c := range updateCols {
		sets[i] = fmt.Sprintf("%s = VALUES(%s)", c, c)
	}
	return " ON DUPLICATE KEY UPDATE " + strings.Join(sets, ", ")
}
