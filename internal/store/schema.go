package store

import (
	"context"
	"database/sql"
)

func ensureSchema(ctx context.Context, db *sql.DB, driver Driver) error {
	schema := schemaSQLite
	if driver == DriverPostgres {
		schema = schemaPostgres
	}
	_, err := db.ExecContext(ctx, schema)
	return err
}

const schemaSQLite = `
CREATE TABLE IF NOT EXISTS students (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  class TEXT NOT NULL DEFAULT '',
  average_grade REAL,
  attendance REAL,
  attitude REAL,
  tasks INTEGER
);

CREATE TABLE IF NOT EXISTS grades (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  student_id TEXT NOT NULL REFERENCES students(id) ON DELETE CASCADE,
  subject TEXT NOT NULL DEFAULT '',
  score REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_grades_student ON grades(student_id);
`

const schemaPostgres = `
CREATE TABLE IF NOT EXISTS students (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  class TEXT NOT NULL DEFAULT '',
  average_grade DOUBLE PRECISION,
  attendance DOUBLE PRECISION,
  attitude DOUBLE PRECISION,
  tasks INTEGER
);

CREATE TABLE IF NOT EXISTS grades (
  id BIGSERIAL PRIMARY KEY,
  student_id TEXT NOT NULL REFERENCES students(id) ON DELETE CASCADE,
  subject TEXT NOT NULL DEFAULT '',
  score DOUBLE PRECISION NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_grades_student ON grades(student_id);
`
