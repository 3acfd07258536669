package store

import (
	"fmt"

	"github.com/lox/skylog/internal/models"
)

const jumpColumns = `id, account_id, jump_number, jump_date, location, aircraft, altitude_m, canopy_size, weather, wind, freefall_notes, canopy_notes, created_at`

// InsertJump appends a jump to the account's logbook. The jump number is
// assigned here as one more than the highest existing number, and the
// account's jump total is updated in the same transaction. It returns the
// assigned number.
func (s *Store) InsertJump(j models.Jump) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var number int
	err = tx.QueryRow(`
		INSERT INTO jumps (id, account_id, jump_number, jump_date, location, aircraft, altitude_m, canopy_size, weather, wind, freefall_notes, canopy_notes, created_at)
		SELECT ?, ?, COALESCE(MAX(jump_number), 0) + 1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?
		FROM jumps WHERE account_id = ?
		RETURNING jump_number
	`, j.ID, j.AccountID, j.Date, j.Location, j.Aircraft, j.AltitudeM, j.CanopySize, j.Weather, j.Wind, j.FreefallNotes, j.CanopyNotes, j.CreatedAt, j.AccountID).Scan(&number)
	if err != nil {
		return 0, fmt.Errorf("insert jump: %w", err)
	}

	if _, err := tx.Exec(`
		UPDATE accounts SET total_jumps = (SELECT COUNT(*) FROM jumps WHERE account_id = ?) WHERE id = ?
	`, j.AccountID, j.AccountID); err != nil {
		return 0, fmt.Errorf("update jump total: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return number, nil
}

// GetJumps returns the account's jumps, most recent date first.
func (s *Store) GetJumps(accountID string) ([]models.Jump, error) {
	rows, err := s.db.Query(`
		SELECT `+jumpColumns+`
		FROM jumps
		WHERE account_id = ?
		ORDER BY jump_date DESC, jump_number DESC
	`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jumps []models.Jump
	for rows.Next() {
		var j models.Jump
		if err := rows.Scan(&j.ID, &j.AccountID, &j.JumpNumber, &j.Date, &j.Location, &j.Aircraft, &j.AltitudeM, &j.CanopySize, &j.Weather, &j.Wind, &j.FreefallNotes, &j.CanopyNotes, &j.CreatedAt); err != nil {
			return nil, err
		}
		jumps = append(jumps, j)
	}
	return jumps, rows.Err()
}

// GetLatestJump returns the most recently logged jump, or nil if there are none.
func (s *Store) GetLatestJump(accountID string) (*models.Jump, error) {
	rows, err := s.db.Query(`
		SELECT `+jumpColumns+`
		FROM jumps
		WHERE account_id = ?
		ORDER BY jump_number DESC
		LIMIT 1
	`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	var j models.Jump
	if err := rows.Scan(&j.ID, &j.AccountID, &j.JumpNumber, &j.Date, &j.Location, &j.Aircraft, &j.AltitudeM, &j.CanopySize, &j.Weather, &j.Wind, &j.FreefallNotes, &j.CanopyNotes, &j.CreatedAt); err != nil {
		return nil, err
	}
	return &j, nil
}

// DeleteJump removes one of the account's jumps. It reports whether a jump
// was removed; jumps belonging to other accounts are never touched.
func (s *Store) DeleteJump(accountID, jumpID string) (bool, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return false, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`DELETE FROM jumps WHERE account_id = ? AND id = ?`, accountID, jumpID)
	if err != nil {
		return false, fmt.Errorf("delete jump: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n == 0 {
		return false, nil
	}

	if _, err := tx.Exec(`
		UPDATE accounts SET total_jumps = (SELECT COUNT(*) FROM jumps WHERE account_id = ?) WHERE id = ?
	`, accountID, accountID); err != nil {
		return false, fmt.Errorf("update jump total: %w", err)
	}
	return true, tx.Commit()
}
