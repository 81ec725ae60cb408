package database

import (
	"fmt"
	"strconv"
	"strings"
)

type Dialect string

const (
	SQLite   Dialect = "sqlite"
	Postgres Dialect = "postgres"
)

const memoryPath = ":memory:"

// sqlite pragmas applied to every file-backed connection.
const sqliteParams = "_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_time_format=sqlite"

// Target is a parsed DATABASE_URL.
type Target struct {
	Dialect Dialect
	Driver  string
	DSN     string
}

func (t Target) InMemory() bool {
	return t.Dialect == SQLite && strings.HasPrefix(t.DSN, memoryPath)
}

// ParseURL maps a connection string onto a database/sql driver and DSN.
// Accepted forms:
//
//	sqlite:///relative/path.db, sqlite:////absolute/path.db, sqlite://:memory:
//	postgres://..., postgresql://...
func ParseURL(raw string) (Target, error) {
	raw = strings.TrimSpace(raw)

	switch {
	case strings.HasPrefix(raw, "postgres://"), strings.HasPrefix(raw, "postgresql://"):
		return Target{Dialect: Postgres, Driver: "pgx", DSN: raw}, nil

	case strings.HasPrefix(raw, "sqlite://"):
		path := strings.TrimPrefix(raw, "sqlite://")
		if strings.TrimPrefix(path, "/") == memoryPath {
			return Target{Dialect: SQLite, Driver: "sqlite", DSN: memoryPath + "?_time_format=sqlite"}, nil
		}
		if !strings.HasPrefix(path, "/") || len(path) < 2 {
			return Target{}, fmt.Errorf("invalid sqlite url %q: expected sqlite:///<path>", raw)
		}
		path = path[1:]
		sep := "?"
		if strings.Contains(path, "?") {
			sep = "&"
		}
		return Target{Dialect: SQLite, Driver: "sqlite", DSN: path + sep + sqliteParams}, nil
	}

	return Target{}, fmt.Errorf("unsupported database url %q", redact(raw))
}

// Rebind rewrites '?' placeholders into the form the dialect expects.
func (d Dialect) Rebind(query string) string {
	if d != Postgres {
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

func redact(raw string) string {
	if i := strings.Index(raw, "@"); i > 0 {
		if j := strings.Index(raw, "://"); j > 0 && j < i {
			return raw[:j+3] + "***" + raw[i:]
		}
	}
	return raw
}
