package store

import (
	"database/sql"
	"time"
)

// RefreshRun records one drop zone weather refresh for auditing.
type RefreshRun struct {
	ID           int64
	StartedAt    time.Time
	FinishedAt   sql.NullTime
	Reason       string // "schedule", "manual", "cli"
	Zones        int
	Live         int
	Synthetic    int
	Failed       int
	Success      bool
	ErrorMessage sql.NullString
}

// StartRefreshRun creates a new refresh run record and returns it.
func (s *Store) StartRefreshRun(reason string, zones int, startedAt time.Time) (*RefreshRun, error) {
	run := &RefreshRun{
		StartedAt: startedAt.UTC(),
		Reason:    reason,
		Zones:     zones,
	}

	result, err := s.db.Exec(`
		INSERT INTO refresh_runs (started_at, reason, zones, success)
		VALUES (?, ?, ?, FALSE)
	`, run.StartedAt, run.Reason, run.Zones)
	if err != nil {
		return nil, err
	}

	run.ID, err = result.LastInsertId()
	if err != nil {
		return nil, err
	}
	return run, nil
}

// CompleteRefreshRun updates the run with its outcome.
func (s *Store) CompleteRefreshRun(run *RefreshRun, finishedAt time.Time) error {
	if run == nil {
		return nil
	}

	run.FinishedAt = sql.NullTime{Time: finishedAt.UTC(), Valid: true}

	_, err := s.db.Exec(`
		UPDATE refresh_runs SET
			finished_at = ?,
			live = ?,
			synthetic = ?,
			failed = ?,
			success = ?,
			error_message = ?
		WHERE id = ?
	`, run.FinishedAt, run.Live, run.Synthetic, run.Failed, run.Success, run.ErrorMessage, run.ID)
	return err
}

// GetRecentRefreshRuns returns the most recent runs, newest first.
func (s *Store) GetRecentRefreshRuns(limit int) ([]RefreshRun, error) {
	rows, err := s.db.Query(`
		SELECT id, started_at, finished_at, reason, zones, live, synthetic, failed,
		       success, error_message
		FROM refresh_runs
		ORDER BY started_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []RefreshRun
	for rows.Next() {
		var r RefreshRun
		if err := rows.Scan(&r.ID, &r.StartedAt, &r.FinishedAt, &r.Reason, &r.Zones,
			&r.Live, &r.Synthetic, &r.Failed, &r.Success, &r.ErrorMessage); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// GetLastRefreshRun returns the most recent completed run, or nil if none.
func (s *Store) GetLastRefreshRun() (*RefreshRun, error) {
	var r RefreshRun
	err := s.db.QueryRow(`
		SELECT id, started_at, finished_at, reason, zones, live, synthetic, failed,
		       success, error_message
		FROM refresh_runs
		WHERE finished_at IS NOT NULL
		ORDER BY started_at DESC, id DESC
		LIMIT 1
	`).Scan(&r.ID, &r.StartedAt, &r.FinishedAt, &r.Reason, &r.Zones,
		&r.Live, &r.Synthetic, &r.Failed, &r.Success, &r.ErrorMessage)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// CleanupRefreshRuns deletes runs started before the cutoff.
func (s *Store) CleanupRefreshRuns(before time.Time) (int64, error) {
	result, err := s.db.Exec(`DELETE FROM refresh_runs WHERE started_at < ?`, before.UTC())
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
