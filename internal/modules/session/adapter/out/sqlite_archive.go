package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"abaterm/internal/modules/session/domain"

	_ "modernc.org/sqlite"
)

// SQLiteArchive keeps a local record of every session the sheet accepted.
// The sheet remains the source of truth; this is a read-only trail for the
// therapist's own review, so rows are only ever inserted.
type SQLiteArchive struct {
	db *sql.DB
}

func NewSQLiteArchive(dbPath string) (*SQLiteArchive, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	archive := &SQLiteArchive{db: db}
	if err := archive.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return archive, nil
}

func (a *SQLiteArchive) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS sessions (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  student_name TEXT NOT NULL,
  therapist_name TEXT NOT NULL,
  session_date TEXT NOT NULL,
  start_time TEXT NOT NULL,
  end_time TEXT NOT NULL,
  general_observations TEXT,
  submitted_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS session_programs (
  session_id INTEGER NOT NULL REFERENCES sessions(id),
  position INTEGER NOT NULL,
  program_id TEXT NOT NULL,
  name TEXT NOT NULL,
  level TEXT,
  elements TEXT,
  correct_count INTEGER NOT NULL,
  incorrect_count INTEGER NOT NULL,
  selected_help TEXT,
  selected_reinforcer TEXT,
  reinforcement_schedule TEXT,
  reinforcement_schedule_time TEXT,
  notes TEXT,
  PRIMARY KEY (session_id, position)
);
`
	if _, err := a.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create archive tables: %w", err)
	}
	return nil
}

func (a *SQLiteArchive) RecordSubmission(ctx context.Context, session domain.Session) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin archive tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
INSERT INTO sessions (student_name, therapist_name, session_date, start_time, end_time, general_observations, submitted_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		session.StudentName,
		session.TherapistName,
		session.Date,
		session.StartTime,
		session.EndTime,
		session.GeneralObservations,
		time.Now().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	sessionID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("session row id: %w", err)
	}

	for i, p := range session.Programs {
		_, err := tx.ExecContext(ctx, `
INSERT INTO session_programs (session_id, position, program_id, name, level, elements, correct_count, incorrect_count, selected_help, selected_reinforcer, reinforcement_schedule, reinforcement_schedule_time, notes)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			sessionID,
			i,
			p.ID,
			p.Name,
			p.Level,
			p.Elements,
			p.CorrectCount,
			p.IncorrectCount,
			strings.Join(p.SelectedHelp, ","),
			strings.Join(p.SelectedReinforcer, ","),
			p.ReinforcementSchedule,
			p.ReinforcementScheduleTime,
			p.Notes,
		)
		if err != nil {
			return fmt.Errorf("insert program %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit archive tx: %w", err)
	}
	return nil
}

// ArchivedSession is one row of the local submission trail.
type ArchivedSession struct {
	StudentName   string
	TherapistName string
	Date          string
	StartTime     string
	EndTime       string
	ProgramCount  int
	SubmittedAt   string
}

// RecentSubmissions lists the latest archived sessions, newest first.
func (a *SQLiteArchive) RecentSubmissions(ctx context.Context, limit int) ([]ArchivedSession, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := a.db.QueryContext(ctx, `
SELECT s.student_name, s.therapist_name, s.session_date, s.start_time, s.end_time,
       (SELECT COUNT(*) FROM session_programs p WHERE p.session_id = s.id),
       s.submitted_at
FROM sessions s
ORDER BY s.id DESC
LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query archive: %w", err)
	}
	defer rows.Close()

	var out []ArchivedSession
	for rows.Next() {
		var row ArchivedSession
		if err := rows.Scan(&row.StudentName, &row.TherapistName, &row.Date, &row.StartTime, &row.EndTime, &row.ProgramCount, &row.SubmittedAt); err != nil {
			return nil, fmt.Errorf("scan archive row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (a *SQLiteArchive) Close() error {
	return a.db.Close()
}
