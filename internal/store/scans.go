package store

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/lox/skylog/internal/models"
)

// SaveScanImage stores an uploaded scan for its account. Uploading the same
// bytes twice returns the existing record with duplicate set.
func (s *Store) SaveScanImage(img models.ScanImage, data []byte) (saved *models.ScanImage, duplicate bool, err error) {
	hash := sha256.Sum256(data)
	img.Hash = hex.EncodeToString(hash[:])
	img.SizeBytes = int64(len(data))

	result, err := s.db.Exec(`
		INSERT INTO scan_images
		(id, account_id, uploaded_at, filename, content_type, size_bytes, image, image_hash)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(account_id, image_hash) DO NOTHING
	`, img.ID, img.AccountID, img.UploadedAt.UTC(), img.Filename, img.ContentType,
		img.SizeBytes, data, img.Hash)
	if err != nil {
		return nil, false, fmt.Errorf("insert scan image: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return nil, false, err
	}
	if n == 1 {
		return &img, false, nil
	}

	existing, err := s.getScanImageMeta(`account_id = ? AND image_hash = ?`, img.AccountID, img.Hash)
	if err != nil {
		return nil, false, err
	}
	return existing, true, nil
}

// GetScanImage returns a scan and its bytes, or nil if the account owns no
// scan with that ID.
func (s *Store) GetScanImage(accountID, id string) (*models.ScanImage, []byte, error) {
	var img models.ScanImage
	var data []byte
	err := s.db.QueryRow(`
		SELECT id, account_id, uploaded_at, filename, content_type, size_bytes, image_hash, image
		FROM scan_images WHERE id = ? AND account_id = ?
	`, id, accountID).Scan(&img.ID, &img.AccountID, &img.UploadedAt, &img.Filename,
		&img.ContentType, &img.SizeBytes, &img.Hash, &data)
	if err == sql.ErrNoRows {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return &img, data, nil
}

func (s *Store) getScanImageMeta(where string, args ...any) (*models.ScanImage, error) {
	var img models.ScanImage
	err := s.db.QueryRow(`
		SELECT id, account_id, uploaded_at, filename, content_type, size_bytes, image_hash
		FROM scan_images WHERE `+where, args...).Scan(&img.ID, &img.AccountID, &img.UploadedAt,
		&img.Filename, &img.ContentType, &img.SizeBytes, &img.Hash)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &img, nil
}

// CleanupScanImages deletes scans uploaded before the cutoff and returns
// how many were removed.
func (s *Store) CleanupScanImages(before time.Time) (int64, error) {
	result, err := s.db.Exec(`DELETE FROM scan_images WHERE uploaded_at < ?`, before.UTC())
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
