package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/previoip/srcds-resource-manager/internal/domain"
)

// ErrRunNotFound is returned when a run ID has no row.
var ErrRunNotFound = errors.New("store: install run not found")

// fixed width so stored timestamps sort as text
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

var now = func() time.Time { return time.Now().UTC() }

// BeginRun records the start of an install run and returns it.
func (s *Store) BeginRun(platform string) (domain.InstallRun, error) {
	run := domain.InstallRun{
		ID:        uuid.NewString(),
		StartedAt: now(),
		Platform:  platform,
		Status:    domain.RunRunning,
	}

	_, err := s.db.Exec(
		`INSERT INTO install_runs (id, started_at, platform, status) VALUES (?, ?, ?, ?)`,
		run.ID,
		run.StartedAt.Format(timeLayout),
		run.Platform,
		string(run.Status),
	)
	if err != nil {
		s.logger.Error("store: begin run failed: %v", err)
		return domain.InstallRun{}, fmt.Errorf("begin run: %w", err)
	}

	s.logger.Debug("store: run %s started (platform=%s)", run.ID, platform)
	return run, nil
}

// RecordFile appends a file to its run.
func (s *Store) RecordFile(f domain.InstalledFile) error {
	if f.CreatedAt.IsZero() {
		f.CreatedAt = now()
	}

	_, err := s.db.Exec(
		`INSERT INTO installed_files
		 (run_id, entity_id, kind, name, url, path, size_bytes, status, error, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		f.RunID,
		f.EntityID,
		string(f.Kind),
		f.Name,
		f.URL,
		f.Path,
		f.SizeBytes,
		string(f.Status),
		f.Error,
		f.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		s.logger.Error("store: record file failed: %v (run=%s, url=%s)", err, f.RunID, f.URL)
		return fmt.Errorf("record file: %w", err)
	}
	return nil
}

// FinishRun stamps the end time and final status of a run.
func (s *Store) FinishRun(runID string, status domain.RunStatus) error {
	result, err := s.db.Exec(
		`UPDATE install_runs SET finished_at = ?, status = ? WHERE id = ?`,
		now().Format(timeLayout),
		string(status),
		runID,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}

	s.logger.Debug("store: run %s finished (%s)", runID, status)
	return nil
}

// ListRuns returns the most recent runs first. limit <= 0 returns all.
func (s *Store) ListRuns(limit int) ([]domain.InstallRun, error) {
	query := `
		SELECT
			r.id,
			r.started_at,
			r.finished_at,
			r.platform,
			r.status,
			(SELECT COUNT(*) FROM installed_files f WHERE f.run_id = r.id)
		FROM install_runs r
		ORDER BY r.started_at DESC, r.rowid DESC
	`

	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []domain.InstallRun

	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, run)
	}

	return out, rows.Err()
}

// ListFiles returns the files of one run in the order they were recorded.
func (s *Store) ListFiles(runID string) ([]domain.InstalledFile, error) {
	rows, err := s.db.Query(`
		SELECT
			id,
			run_id,
			entity_id,
			kind,
			name,
			url,
			path,
			size_bytes,
			status,
			error,
			created_at
		FROM installed_files
		WHERE run_id = ?
		ORDER BY id ASC
	`, runID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []domain.InstalledFile

	for rows.Next() {
		var (
			f       domain.InstalledFile
			kind    string
			status  string
			created string
		)
		if err := rows.Scan(
			&f.ID,
			&f.RunID,
			&f.EntityID,
			&kind,
			&f.Name,
			&f.URL,
			&f.Path,
			&f.SizeBytes,
			&status,
			&f.Error,
			&created,
		); err != nil {
			return nil, err
		}

		t, err := time.Parse(timeLayout, created)
		if err != nil {
			return nil, err
		}
		f.Kind = domain.EntryKind(kind)
		f.Status = domain.FileStatus(status)
		f.CreatedAt = t
		out = append(out, f)
	}

	return out, rows.Err()
}

// Clear deletes every run and file. Returns the number of runs removed.
func (s *Store) Clear() (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM installed_files`); err != nil {
		return 0, err
	}
	result, err := tx.Exec(`DELETE FROM install_runs`)
	if err != nil {
		return 0, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}

	s.logger.Info("store: cleared %d install runs", n)
	return n, nil
}

func scanRun(rows *sql.Rows) (domain.InstallRun, error) {
	var (
		run      domain.InstallRun
		started  string
		finished sql.NullString
		status   string
	)

	if err := rows.Scan(
		&run.ID,
		&started,
		&finished,
		&run.Platform,
		&status,
		&run.Files,
	); err != nil {
		return domain.InstallRun{}, err
	}

	t, err := time.Parse(timeLayout, started)
	if err != nil {
		return domain.InstallRun{}, err
	}
	run.StartedAt = t
	run.Status = domain.RunStatus(status)

	if finished.Valid {
		ft, err := time.Parse(timeLayout, finished.String)
		if err != nil {
			return domain.InstallRun{}, err
		}
		run.FinishedAt = &ft
	}

	return run, nil
}

var _ domain.Ledger = (*Store)(nil)
