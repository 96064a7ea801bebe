package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jesses-code-adventures/timebot/internal/config"
	"github.com/jesses-code-adventures/timebot/internal/models"
)

// SQLDB implements DB over database/sql for SQLite (sqlite3, libsql) and
// Postgres.
type SQLDB struct {
	conn    *sql.DB
	dialect dialect
}

func NewDB(cfg *config.Config) (*SQLDB, error) {
	conn, err := sql.Open(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if cfg.DatabaseDriver == "sqlite3" {
		// Single connection so concurrent writers queue instead of failing with SQLITE_BUSY.
		conn.SetMaxOpenConns(1)
	}
	return NewSQLDB(conn, cfg.DatabaseDriver), nil
}

// NewSQLDB wraps an open connection. driver selects the SQL dialect.
func NewSQLDB(conn *sql.DB, driver string) *SQLDB {
	return &SQLDB{conn: conn, dialect: dialectFor(driver)}
}

func (s *SQLDB) Close() error {
	return s.conn.Close()
}

func (s *SQLDB) Migrate(ctx context.Context) error {
	for _, stmt := range s.dialect.schema() {
		if _, err := s.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create database schema: %w", err)
		}
	}
	return nil
}

func (s *SQLDB) CreateWorker(ctx context.Context, worker *models.Worker) (*models.Worker, error) {
	created := *worker
	created.FirstName = strings.ToLower(worker.FirstName)
	created.LastName = strings.ToLower(worker.LastName)
	created.CreatedAt = time.Now().UTC()

	var supervisor sql.NullInt64
	if worker.SupervisorID != nil {
		supervisor = sql.NullInt64{Int64: *worker.SupervisorID, Valid: true}
	}

	err := s.conn.QueryRowContext(ctx, s.dialect.rebind(`
		INSERT INTO workers (first_name, last_name, phone, email, supervisor_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id`),
		created.FirstName,
		created.LastName,
		ptrToNullString(worker.Phone),
		ptrToNullString(worker.Email),
		supervisor,
		created.CreatedAt,
	).Scan(&created.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create worker: %w", err)
	}
	return &created, nil
}

func (s *SQLDB) GetWorker(ctx context.Context, workerID int64) (*models.Worker, error) {
	row := s.conn.QueryRowContext(ctx, s.dialect.rebind(`
		SELECT id, first_name, last_name, phone, email, supervisor_id, created_at
		FROM workers WHERE id = ?`), workerID)

	worker, err := scanWorker(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("failed to get worker: %w", err)
	}
	return worker, nil
}

func (s *SQLDB) ListWorkers(ctx context.Context) ([]*models.Worker, error) {
	rows, err := s.conn.QueryContext(ctx, `
		SELECT id, first_name, last_name, phone, email, supervisor_id, created_at
		FROM workers ORDER BY last_name, first_name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list workers: %w", err)
	}
	defer rows.Close()

	var result []*models.Worker
	for rows.Next() {
		worker, err := scanWorker(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan worker: %w", err)
		}
		result = append(result, worker)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list workers: %w", err)
	}
	return result, nil
}

// LookupWorker matches names case-insensitively. found is false when no
// worker has that name.
func (s *SQLDB) LookupWorker(ctx context.Context, firstName, lastName string) (int64, bool, error) {
	var id int64
	err := s.conn.QueryRowContext(ctx, s.dialect.rebind(
		"SELECT id FROM workers WHERE first_name = ? AND last_name = ?"),
		strings.ToLower(firstName),
		strings.ToLower(lastName),
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to get worker ID: %w", err)
	}
	return id, true, nil
}

func (s *SQLDB) WorkerDisplayName(ctx context.Context, workerID int64) (string, error) {
	var firstName, lastName string
	err := s.conn.QueryRowContext(ctx, s.dialect.rebind(
		"SELECT first_name, last_name FROM workers WHERE id = ?"), workerID,
	).Scan(&firstName, &lastName)
	if err != nil {
		return "", fmt.Errorf("failed to get worker name: %w", err)
	}
	return DisplayName(firstName, lastName), nil
}

// UpsertSubmission inserts sub or, when (worker_id, day) already exists,
// replaces its hours in the same statement. The returned value is the
// replaced hours, or null for a new row.
func (s *SQLDB) UpsertSubmission(ctx context.Context, sub models.Submission) (decimal.NullDecimal, error) {
	var previous decimal.NullDecimal
	err := s.conn.QueryRowContext(ctx, s.dialect.rebind(`
		INSERT INTO submissions (id, worker_id, day, hours, message, location, sender, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (worker_id, day) DO UPDATE SET
			previous_hours = submissions.hours,
			hours = excluded.hours,
			message = excluded.message,
			location = excluded.location,
			sender = excluded.sender,
			updated_at = excluded.updated_at
		RETURNING previous_hours`),
		sub.ID,
		sub.WorkerID,
		sub.Day.Format(models.DayFormat),
		sub.Hours,
		sub.Message,
		ptrToNullString(sub.Location),
		ptrToNullString(sub.Sender),
		sub.CreatedAt,
		sub.UpdatedAt,
	).Scan(&previous)
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("failed to submit time: %w", err)
	}
	return previous, nil
}

// ListSubmissions returns submissions with from <= day <= to, ordered by
// worker then day.
func (s *SQLDB) ListSubmissions(ctx context.Context, from, to time.Time) ([]*models.Submission, error) {
	rows, err := s.conn.QueryContext(ctx, s.dialect.rebind(`
		SELECT id, worker_id, day, hours, previous_hours, message, location, sender, created_at, updated_at
		FROM submissions
		WHERE day >= ? AND day <= ?
		ORDER BY worker_id, day`),
		from.Format(models.DayFormat),
		to.Format(models.DayFormat),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	defer rows.Close()

	var result []*models.Submission
	for rows.Next() {
		var sub models.Submission
		var day string
		var location, sender sql.NullString
		err := rows.Scan(
			&sub.ID,
			&sub.WorkerID,
			&day,
			&sub.Hours,
			&sub.PreviousHours,
			&sub.Message,
			&location,
			&sender,
			&sub.CreatedAt,
			&sub.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		if sub.Day, err = models.ParseDay(day); err != nil {
			return nil, fmt.Errorf("failed to scan submission day: %w", err)
		}
		sub.Location = nullStringToPtr(location)
		sub.Sender = nullStringToPtr(sender)
		result = append(result, &sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	return result, nil
}

// DisplayName title-cases a stored first and last name.
func DisplayName(firstName, lastName string) string {
	title := cases.Title(language.English)
	return title.String(firstName) + " " + title.String(lastName)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanWorker(row scanner) (*models.Worker, error) {
	var worker models.Worker
	var phone, email sql.NullString
	var supervisor sql.NullInt64
	err := row.Scan(
		&worker.ID,
		&worker.FirstName,
		&worker.LastName,
		&phone,
		&email,
		&supervisor,
		&worker.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	worker.Phone = nullStringToPtr(phone)
	worker.Email = nullStringToPtr(email)
	if supervisor.Valid {
		worker.SupervisorID = &supervisor.Int64
	}
	return &worker, nil
}

func nullStringToPtr(ns sql.NullString) *string {
	if ns.Valid {
		return &ns.String
	}
	return nil
}

func ptrToNullString(s *string) sql.NullString {
	if s != nil {
		return sql.NullString{String: *s, Valid: true}
	}
	return sql.NullString{Valid: false}
}
