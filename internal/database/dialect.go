package database

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Dialect covers the two differences between the supported drivers that
// plain CRUD queries care about: placeholder syntax and UUID column type.
type Dialect string

// DialectFor returns the dialect of a database/sql driver name.
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case DriverPostgres, DriverMySQL:
		return Dialect(driver), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedDriver, driver)
	}
}

// Rebind rewrites ? placeholders to $1..$n for PostgreSQL. Queries must not
// contain a literal question mark.
func (d Dialect) Rebind(query string) string {
	if d != DriverPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// UUID returns the bind value for id: the native uuid type on PostgreSQL,
// 16 raw bytes for a MySQL BINARY(16) column. Scanning needs no help since
// uuid.UUID.Scan accepts both forms.
func (d Dialect) UUID(id uuid.UUID) any {
	if d == DriverPostgres {
		return id
	}
	return id[:]
}
