package sqlstore

import (
	"context"
	"database/sql"
	"strconv"
	"strings"
)

const (
	driverSQLite   = "sqlite3"
	driverPostgres = "postgres"
)

// dialect holds what differs between the supported drivers. Queries are written
// once with "?" placeholders and rebound on the way out.
type dialect struct {
	name         string
	dollarParams bool
	floatType    string
	timeType     string
	serialPK     string
}

var sqliteDialect = dialect{
	name:      driverSQLite,
	floatType: "REAL",
	timeType:  "DATETIME",
	serialPK:  "INTEGER PRIMARY KEY AUTOINCREMENT",
}

var postgresDialect = dialect{
	name:         driverPostgres,
	dollarParams: true,
	floatType:    "DOUBLE PRECISION",
	timeType:     "TIMESTAMPTZ",
	serialPK:     "SERIAL PRIMARY KEY",
}

func (d dialect) rebind(query string) string {
	if !d.dollarParams {
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

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func trimSQL(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) > 60 {
		return s[:60] + "..."
	}
	return s
}
