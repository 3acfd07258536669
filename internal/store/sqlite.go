package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/lox/skylog/internal/models"
)

type Store struct {
	db     *sql.DB
	logger *zap.SugaredLogger
}

func New(db *sql.DB, logger *zap.SugaredLogger) *Store {
	return &Store{db: db, logger: logger}
}

// Open opens a SQLite database at path with the pragmas the server expects.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}
	return db, nil
}

// Ping reports whether the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

const accountColumns = `id, name, email, license, password_hash, joined_at, total_jumps, created_at`

func (s *Store) CreateAccount(a models.Account) error {
	_, err := s.db.Exec(`
		INSERT INTO accounts (id, name, email, license, password_hash, joined_at, total_jumps, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, a.ID, a.Name, a.Email, a.License, a.PasswordHash, a.JoinedAt, a.TotalJumps, a.CreatedAt)
	return err
}

func (s *Store) GetAccount(id string) (*models.Account, error) {
	return s.getAccount(`SELECT `+accountColumns+` FROM accounts WHERE id = ?`, id)
}

func (s *Store) GetAccountByLicense(license string) (*models.Account, error) {
	return s.getAccount(`SELECT `+accountColumns+` FROM accounts WHERE license = ?`, license)
}

func (s *Store) GetAccountByEmail(email string) (*models.Account, error) {
	return s.getAccount(`SELECT `+accountColumns+` FROM accounts WHERE email = ? COLLATE NOCASE`, email)
}

func (s *Store) getAccount(query string, arg string) (*models.Account, error) {
	var a models.Account
	err := s.db.QueryRow(query, arg).Scan(&a.ID, &a.Name, &a.Email, &a.License, &a.PasswordHash, &a.JoinedAt, &a.TotalJumps, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *Store) CreateSession(sess models.Session) error {
	_, err := s.db.Exec(`
		INSERT INTO sessions (token, account_id, created_at, expires_at)
		VALUES (?, ?, ?, ?)
	`, sess.Token, sess.AccountID, sess.CreatedAt, sess.ExpiresAt)
	return err
}

func (s *Store) GetSession(token string) (*models.Session, error) {
	var sess models.Session
	err := s.db.QueryRow(`
		SELECT token, account_id, created_at, expires_at FROM sessions WHERE token = ?
	`, token).Scan(&sess.Token, &sess.AccountID, &sess.CreatedAt, &sess.ExpiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *Store) DeleteSession(token string) error {
	_, err := s.db.Exec(`DELETE FROM sessions WHERE token = ?`, token)
	return err
}

// DeleteExpiredSessions removes sessions that expired before now and returns
// how many were removed.
func (s *Store) DeleteExpiredSessions(now time.Time) (int64, error) {
	res, err := s.db.Exec(`DELETE FROM sessions WHERE expires_at <= ?`, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
