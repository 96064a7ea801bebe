package database

import "strconv"

type dialect int

const (
	sqliteDialect dialect = iota
	postgresDialect
)

func dialectFor(driver string) dialect {
	switch driver {
	case "postgres", "pgx":
		return postgresDialect
	default:
		return sqliteDialect
	}
}

// rebind rewrites ? placeholders as $1, $2, ... for Postgres.
func (d dialect) rebind(query string) string {
	if d != postgresDialect {
		return query
	}
	out := make([]byte, 0, len(query)+8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			out = append(out, '$')
			out = strconv.AppendInt(out, int64(n), 10)
			continue
		}
		out = append(out, query[i])
	}
	return string(out)
}

func (d dialect) schema() []string {
	if d == postgresDialect {
		return postgresSchema
	}
	return sqliteSchema
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS workers (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    first_name TEXT NOT NULL,
    last_name TEXT NOT NULL,
    phone TEXT,
    email TEXT,
    supervisor_id INTEGER REFERENCES workers(id),
    created_at DATETIME NOT NULL,
    UNIQUE (first_name, last_name)
)`,
	`CREATE TABLE IF NOT EXISTS submissions (
    id TEXT PRIMARY KEY NOT NULL,
    worker_id INTEGER NOT NULL REFERENCES workers(id),
    day DATE NOT NULL,
    hours NUMERIC NOT NULL,
    previous_hours NUMERIC,
    message TEXT NOT NULL,
    location TEXT,
    sender TEXT,
    created_at DATETIME NOT NULL,
    updated_at DATETIME NOT NULL,
    UNIQUE (worker_id, day)
)`,
	`CREATE INDEX IF NOT EXISTS idx_submissions_day ON submissions(day)`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS workers (
    id BIGSERIAL PRIMARY KEY,
    first_name TEXT NOT NULL,
    last_name TEXT NOT NULL,
    phone TEXT,
    email TEXT,
    supervisor_id BIGINT REFERENCES workers(id),
    created_at TIMESTAMPTZ NOT NULL,
    UNIQUE (first_name, last_name)
)`,
	`CREATE TABLE IF NOT EXISTS submissions (
    id TEXT PRIMARY KEY,
    worker_id BIGINT NOT NULL REFERENCES workers(id),
    day DATE NOT NULL,
    hours NUMERIC(8,2) NOT NULL,
    previous_hours NUMERIC(8,2),
    message TEXT NOT NULL,
    location TEXT,
    sender TEXT,
    created_at TIMESTAMPTZ NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL,
    UNIQUE (worker_id, day)
)`,
	`CREATE INDEX IF NOT EXISTS idx_submissions_day ON submissions(day)`,
}
