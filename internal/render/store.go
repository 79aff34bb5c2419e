package render

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"thirdcoast.systems/clipstudio/internal/editor"
)

// ErrJobNotFound is returned when no job matches the requested ID.
var ErrJobNotFound = errors.New("export job not found")

const timeLayout = "2006-01-02 15:04:05"

// Store is the export_jobs repository. It operates on the shared sqlite
// connection; the spec is persisted as JSON in spec_json.
type Store struct {
	db *sql.DB
}

// NewStore creates a Store over the given database connection.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Create inserts a queued job.
func (s *Store) Create(ctx context.Context, job *Job) error {
	specJSON, err := json.Marshal(job.Spec)
	if err != nil {
		return fmt.Errorf("marshal export spec: %w", err)
	}

	now := time.Now().UTC()
	job.Status = StatusQueued
	job.CreatedAt = now
	job.UpdatedAt = now

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO export_jobs (id, session_id, source_path, format, quality, spec_json, status, duration_seconds, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		job.ID, job.SessionID, job.SourcePath, job.Format, job.Quality,
		string(specJSON), string(StatusQueued), job.Spec.TrimmedDuration(),
		now.Format(timeLayout), now.Format(timeLayout))
	if err != nil {
		return fmt.Errorf("insert export job: %w", err)
	}
	return nil
}

// Get returns the job with the given ID, or ErrJobNotFound.
func (s *Store) Get(ctx context.Context, id string) (*Job, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+" WHERE id = ?", id)
	return scanJob(row)
}

// ListBySession returns all jobs for a session, newest first.
func (s *Store) ListBySession(ctx context.Context, sessionID string) ([]*Job, error) {
	return s.list(ctx, selectColumns+" WHERE session_id = ? ORDER BY created_at DESC", sessionID)
}

// List returns all jobs, newest first.
func (s *Store) List(ctx context.Context) ([]*Job, error) {
	return s.list(ctx, selectColumns + " ORDER BY created_at DESC")
}

func (s *Store) list(ctx context.Context, query string, args ...any) ([]*Job, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query export jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

// ClaimNextQueued atomically moves the oldest queued job to processing and
// returns it. Returns ErrJobNotFound when the queue is empty.
func (s *Store) ClaimNextQueued(ctx context.Context) (*Job, error) {
	now := time.Now().UTC().Format(timeLayout)
	row := s.db.QueryRowContext(ctx, `
		UPDATE export_jobs
		SET status = ?, started_at = ?, updated_at = ?
		WHERE id = (SELECT id FROM export_jobs WHERE status = ? ORDER BY created_at LIMIT 1)
		RETURNING `+jobColumns,
		string(StatusProcessing), now, now, string(StatusQueued))
	return scanJob(row)
}

// UpdateProgress records encoding progress (0-100).
func (s *Store) UpdateProgress(ctx context.Context, id string, pct int) error {
	return s.exec(ctx, `UPDATE export_jobs SET progress = ?, updated_at = ? WHERE id = ?`,
		pct, time.Now().UTC().Format(timeLayout), id)
}

// SetOutputPath records where the worker will write the output file.
func (s *Store) SetOutputPath(ctx context.Context, id, path string) error {
	return s.exec(ctx, `UPDATE export_jobs SET output_path = ?, updated_at = ? WHERE id = ?`,
		path, time.Now().UTC().Format(timeLayout), id)
}

// FinishReady marks a processing job as ready with its output metadata.
func (s *Store) FinishReady(ctx context.Context, id string, sizeBytes int64, duration float64) error {
	now := time.Now().UTC().Format(timeLayout)
	return s.exec(ctx, `
		UPDATE export_jobs
		SET status = ?, progress = 100, size_bytes = ?, duration_seconds = ?, finished_at = ?, updated_at = ?
		WHERE id = ? AND status = ?`,
		string(StatusReady), sizeBytes, duration, now, now, id, string(StatusProcessing))
}

// FinishError marks a processing job as failed.
func (s *Store) FinishError(ctx context.Context, id, errMsg string) error {
	now := time.Now().UTC().Format(timeLayout)
	return s.exec(ctx, `
		UPDATE export_jobs
		SET status = ?, error = ?, finished_at = ?, updated_at = ?
		WHERE id = ? AND status = ?`,
		string(StatusError), errMsg, now, now, id, string(StatusProcessing))
}

// SetPublishedURL records the remote location after an S3 publish.
func (s *Store) SetPublishedURL(ctx context.Context, id, url string) error {
	return s.exec(ctx, `UPDATE export_jobs SET published_url = ?, updated_at = ? WHERE id = ?`,
		url, time.Now().UTC().Format(timeLayout), id)
}

// MarkCanceled cancels a job unless it already reached a terminal state.
// Returns ErrInvalidTransition when the job is terminal. The guarded UPDATE
// is the only authority: a job racing to ready between a caller's read and
// the cancel still reports the conflict, not a missing job.
func (s *Store) MarkCanceled(ctx context.Context, id string) error {
	now := time.Now().UTC().Format(timeLayout)
	res, err := s.db.ExecContext(ctx, `
		UPDATE export_jobs
		SET status = ?, finished_at = ?, updated_at = ?
		WHERE id = ? AND status IN (?, ?)`,
		string(StatusCanceled), now, now, id, string(StatusQueued), string(StatusProcessing))
	if err != nil {
		return fmt.Errorf("update export job: %w", err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}

	job, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	return fmt.Errorf("cancel %s from %s: %w", id, job.Status, ErrInvalidTransition)
}

// ResetStuck requeues jobs left in processing by a previous service instance.
// Returns the number of jobs requeued.
func (s *Store) ResetStuck(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE export_jobs
		SET status = ?, progress = 0, started_at = NULL, updated_at = ?
		WHERE status = ?`,
		string(StatusQueued), time.Now().UTC().Format(timeLayout), string(StatusProcessing))
	if err != nil {
		return 0, fmt.Errorf("reset stuck jobs: %w", err)
	}
	return res.RowsAffected()
}

func (s *Store) exec(ctx context.Context, query string, args ...any) error {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update export job: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrJobNotFound
	}
	return nil
}

const jobColumns = `id, session_id, source_path, output_path, format, quality, spec_json,
	status, progress, error, size_bytes, duration_seconds, published_url,
	created_at, updated_at, started_at, finished_at`

const selectColumns = "SELECT " + jobColumns + " FROM export_jobs"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (*Job, error) {
	var (
		job                  Job
		outputPath           sql.NullString
		errMsg               sql.NullString
		publishedURL         sql.NullString
		specJSON             string
		status               string
		createdAt, updatedAt string
		startedAt            sql.NullString
		finishedAt           sql.NullString
	)

	err := row.Scan(&job.ID, &job.SessionID, &job.SourcePath, &outputPath, &job.Format,
		&job.Quality, &specJSON, &status, &job.Progress, &errMsg, &job.SizeBytes,
		&job.Duration, &publishedURL, &createdAt, &updatedAt, &startedAt, &finishedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrJobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan export job: %w", err)
	}

	job.OutputPath = outputPath.String
	job.Error = errMsg.String
	job.PublishedURL = publishedURL.String
	job.Status = Status(status)

	var spec editor.ExportSpec
	if err := json.Unmarshal([]byte(specJSON), &spec); err != nil {
		return nil, fmt.Errorf("parse export spec for job %s: %w", job.ID, err)
	}
	job.Spec = spec

	job.CreatedAt = parseTime(createdAt)
	job.UpdatedAt = parseTime(updatedAt)
	if startedAt.Valid {
		t := parseTime(startedAt.String)
		job.StartedAt = &t
	}
	if finishedAt.Valid {
		t := parseTime(finishedAt.String)
		job.FinishedAt = &t
	}

	return &job, nil
}

func parseTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}
