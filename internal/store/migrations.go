package store

// migration holds a single schema migration with its target version and SQL
// per dialect.
type migration struct {
	version int
	sql     map[dialect]string
}

// schemaVersionDDL is portable across both dialects.
const schemaVersionDDL = `CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL)`

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: map[dialect]string{
			dialectSQLite: `
CREATE TABLE IF NOT EXISTS todos (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	title      TEXT NOT NULL,
	completed  BOOLEAN NOT NULL DEFAULT 0 CHECK(completed IN (0, 1)),
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

INSERT INTO schema_version (version) VALUES (1);
`,
			dialectPostgres: `
CREATE TABLE IF NOT EXISTS todos (
	id         BIGSERIAL PRIMARY KEY,
	title      TEXT NOT NULL,
	completed  BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

INSERT INTO schema_version (version) VALUES (1);
`,
		},
	},
	{
		version: 2,
		sql: map[dialect]string{
			dialectSQLite: `
CREATE INDEX IF NOT EXISTS idx_todos_created_at ON todos(created_at);

INSERT INTO schema_version (version) VALUES (2);
`,
			dialectPostgres: `
CREATE INDEX IF NOT EXISTS idx_todos_created_at ON todos(created_at);

INSERT INTO schema_version (version) VALUES (2);
`,
		},
	},
}
