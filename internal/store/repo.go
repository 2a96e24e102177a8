package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Ajosh-NyxBar/siswaAnalyze/internal/student"
)

// Filter narrows a student listing. Both fields match a case-insensitive
// substring; empty fields match everything.
type Filter struct {
	Class string
	Name  string
}

// StudentRepo reads and writes student records.
type StudentRepo interface {
	// List returns students ordered by id, with their grade lists attached.
	List(ctx context.Context, f Filter) ([]student.Record, error)

	// Upsert inserts or replaces a student's identity and metrics. The
	// grade list on rec is ignored; use AddGrade or Import.
	Upsert(ctx context.Context, rec student.Record) error

	// AddGrade appends one subject score for an existing student.
	AddGrade(ctx context.Context, studentID, subject string, score float64) error

	// Import upserts every record and replaces its grades in one transaction.
	Import(ctx context.Context, recs []student.Record) error
}

type studentRepo struct {
	db *sql.DB
}

func (r *studentRepo) List(ctx context.Context, f Filter) ([]student.Record, error) {
	var (
		where []string
		args  []any
	)
	if f.Class != "" {
		args = append(args, strings.ToLower(f.Class))
		where = append(where, fmt.Sprintf("LOWER(class) LIKE '%%' || $%d || '%%'", len(args)))
	}
	if f.Name != "" {
		args = append(args, strings.ToLower(f.Name))
		where = append(where, fmt.Sprintf("LOWER(name) LIKE '%%' || $%d || '%%'", len(args)))
	}

	q := `SELECT id, name, class, average_grade, attendance, attitude, tasks FROM students`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY id"

	out, index, err := r.scanStudents(ctx, q, args)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	if err := r.attachGrades(ctx, out, index); err != nil {
		return nil, err
	}
	return out, nil
}

// scanStudents runs q and releases its rows before returning; the SQLite
// pool holds a single connection.
func (r *studentRepo) scanStudents(ctx context.Context, q string, args []any) ([]student.Record, map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("query students: %w", err)
	}
	defer rows.Close()

	out := []student.Record{}
	index := make(map[string]int)
	for rows.Next() {
		var (
			rec        student.Record
			grade      sql.NullFloat64
			attendance sql.NullFloat64
			attitude   sql.NullFloat64
			tasks      sql.NullInt64
		)
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Class, &grade, &attendance, &attitude, &tasks); err != nil {
			return nil, nil, fmt.Errorf("scan student: %w", err)
		}
		if grade.Valid {
			rec.AverageGrade = student.Float(grade.Float64)
		}
		if attendance.Valid {
			rec.Attendance = student.Float(attendance.Float64)
		}
		if attitude.Valid {
			rec.Attitude = student.Float(attitude.Float64)
		}
		if tasks.Valid {
			rec.Tasks = student.Int(int(tasks.Int64))
		}
		index[rec.ID] = len(out)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterate students: %w", err)
	}
	return out, index, nil
}

func (r *studentRepo) attachGrades(ctx context.Context, recs []student.Record, index map[string]int) error {
	rows, err := r.db.QueryContext(ctx, `SELECT student_id, score FROM grades ORDER BY student_id, id`)
	if err != nil {
		return fmt.Errorf("query grades: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id    string
			score float64
		)
		if err := rows.Scan(&id, &score); err != nil {
			return fmt.Errorf("scan grade: %w", err)
		}
		if i, ok := index[id]; ok {
			recs[i].Grades = append(recs[i].Grades, score)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate grades: %w", err)
	}
	return nil
}

func (r *studentRepo) Upsert(ctx context.Context, rec student.Record) error {
	return upsert(ctx, r.db, rec)
}

func (r *studentRepo) AddGrade(ctx context.Context, studentID, subject string, score float64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO grades (student_id, subject, score) VALUES ($1, $2, $3)`,
		studentID, subject, score)
	if err != nil {
		return fmt.Errorf("add grade for %s: %w", studentID, err)
	}
	return nil
}

func (r *studentRepo) Import(ctx context.Context, recs []student.Record) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	for _, rec := range recs {
		if err := upsert(ctx, tx, rec); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM grades WHERE student_id = $1`, rec.ID); err != nil {
			return fmt.Errorf("clear grades for %s: %w", rec.ID, err)
		}
		for _, g := range rec.Grades {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO grades (student_id, subject, score) VALUES ($1, '', $2)`, rec.ID, g); err != nil {
				return fmt.Errorf("insert grade for %s: %w", rec.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit import: %w", err)
	}
	return nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func upsert(ctx context.Context, db execer, rec student.Record) error {
	if rec.ID == "" {
		return fmt.Errorf("upsert student: empty id")
	}
	var tasks any
	if rec.Tasks != nil {
		tasks = int64(*rec.Tasks)
	}
	_, err := db.ExecContext(ctx, `
		INSERT INTO students (id, name, class, average_grade, attendance, attitude, tasks)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET name=EXCLUDED.name, class=EXCLUDED.class,
			average_grade=EXCLUDED.average_grade, attendance=EXCLUDED.attendance, attitude=EXCLUDED.attitude, tasks=EXCLUDED.tasks`,
		rec.ID, rec.Name, rec.Class, nullable(rec.AverageGrade), nullable(rec.Attendance), nullable(rec.Attitude), tasks)
	if err != nil {
		return fmt.Errorf("upsert student %s: %w", rec.ID, err)
	}
	return nil
}

func nullable(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
