package sqlite

import "database/sql"

// schema sets up the preference table. It runs on startup to ensure the table exists.
// The value column has no declared type so SQLite keeps whatever type was written;
// the preference layer relies on that to detect wrong-typed rows.
const schema = `
CREATE TABLE IF NOT EXISTS preferences (
    name TEXT PRIMARY KEY,
    value,
    updated_at INTEGER NOT NULL
);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
