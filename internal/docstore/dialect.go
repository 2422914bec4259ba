package docstore

import (
	"fmt"
	"strconv"
	"strings"
)

// dialect captures the few places where MySQL, PostgreSQL and SQLite differ
// for the documents table.
type dialect struct {
	name      string
	schema    string
	forUpdate string
	// field returns an SQL expression reading a top-level string from data.
	field func(name string) string
	// dollar placeholders ($1, $2) instead of ?
	dollar bool
}

var dialects = map[string]dialect{
	"mysql": {
		name: "mysql",
		schema: `CREATE TABLE IF NOT EXISTS documents (
    collection VARCHAR(64)  NOT NULL,
    id         VARCHAR(64)  NOT NULL,
    data       JSON         NOT NULL,
    created_at DATETIME(6)  NOT NULL,
    updated_at DATETIME(6)  NOT NULL,
    PRIMARY KEY (collection, id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
		forUpdate: " FOR UPDATE",
		field: func(name string) string {
			return fmt.Sprintf("JSON_UNQUOTE(JSON_EXTRACT(data, '$.%s'))", name)
		},
	},
	"postgres": {
		name: "postgres",
		schema: `CREATE TABLE IF NOT EXISTS documents (
    collection VARCHAR(64)  NOT NULL,
    id         VARCHAR(64)  NOT NULL,
    data       JSONB        NOT NULL,
    created_at TIMESTAMPTZ  NOT NULL,
    updated_at TIMESTAMPTZ  NOT NULL,
    PRIMARY KEY (collection, id)
)`,
		forUpdate: " FOR UPDATE",
		field: func(name string) string {
			return fmt.Sprintf("data->>'%s'", name)
		},
		dollar: true,
	},
	"sqlite": {
		name: "sqlite",
		schema: `CREATE TABLE IF NOT EXISTS documents (
    collection TEXT      NOT NULL,
    id         TEXT      NOT NULL,
    data       TEXT      NOT NULL,
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL,
    PRIMARY KEY (collection, id)
)`,
		field: func(name string) string {
			return fmt.Sprintf("json_extract(data, '$.%s')", name)
		},
	},
}

// dialectFor maps a database/sql driver name onto a dialect.
func dialectFor(driver string) (dialect, error) {
	switch strings.ToLower(driver) {
	case "mysql":
		return dialects["mysql"], nil
	case "postgres", "pgx":
		return dialects["postgres"], nil
	case "sqlite", "sqlite3":
		return dialects["sqlite"], nil
	}
	return dialect{}, fmt.Errorf("docstore: unsupported sql driver %q", driver)
}

// rebind rewrites ? placeholders for drivers that use numbered ones.
func (d dialect) rebind(q string) string {
	if !d.dollar {
		return q
	}
	var b strings.Builder
	n := 0
	for _, r := range q {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (d dialect) orderClause(o OrderBy) string {
	dir := "ASC"
	if o.Desc {
		dir = "DESC"
	}
	if o.Field == DocumentID {
		return "id " + dir
	}
	return d.field(o.Field) + " " + dir + ", id ASC"
}
