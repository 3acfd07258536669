package store

import (
	"github.com/lox/skylog/internal/models"
)

// AddFavorite marks a drop zone as a favourite. Adding twice is a no-op.
func (s *Store) AddFavorite(f models.Favorite) error {
	_, err := s.db.Exec(`
		INSERT INTO favorites (account_id, dropzone_id, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT(account_id, dropzone_id) DO NOTHING
	`, f.AccountID, f.DropzoneID, f.CreatedAt)
	return err
}

func (s *Store) RemoveFavorite(accountID, dropzoneID string) error {
	_, err := s.db.Exec(`DELETE FROM favorites WHERE account_id = ? AND dropzone_id = ?`, accountID, dropzoneID)
	return err
}

// GetFavorites returns the account's favourite drop-zone IDs in the order
// they were added.
func (s *Store) GetFavorites(accountID string) ([]string, error) {
	rows, err := s.db.Query(`
		SELECT dropzone_id FROM favorites WHERE account_id = ? ORDER BY created_at ASC, dropzone_id ASC
	`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
