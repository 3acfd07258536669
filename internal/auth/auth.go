// Package auth manages skydiver accounts and bearer sessions. Accounts are
// identified at sign-in by their federation license number rather than email.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"golang.org/x/crypto/bcrypt"

	"github.com/lox/skylog/internal/models"
)

var (
	ErrMissingFields   = errors.New("all fields are required")
	ErrLicenseTaken    = errors.New("license number already in use")
	ErrEmailTaken      = errors.New("email already in use")
	ErrLicenseNotFound = errors.New("license number not found")
	ErrInvalidPassword = errors.New("incorrect password")
	ErrUnauthorized    = errors.New("unauthorized")
)

const DefaultSessionTTL = 7 * 24 * time.Hour

// Store is the persistence the service needs.
type Store interface {
	CreateAccount(a models.Account) error
	GetAccount(id string) (*models.Account, error)
	GetAccountByLicense(license string) (*models.Account, error)
	GetAccountByEmail(email string) (*models.Account, error)
	CreateSession(s models.Session) error
	GetSession(token string) (*models.Session, error)
	DeleteSession(token string) error
}

type Service struct {
	store      Store
	clock      clockwork.Clock
	sessionTTL time.Duration
	bcryptCost int
}

type Option func(*Service)

// WithClock overrides the time source used for join dates and session expiry.
func WithClock(c clockwork.Clock) Option {
	return func(s *Service) { s.clock = c }
}

func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.sessionTTL = ttl
		}
	}
}

// WithBcryptCost lowers the hashing cost, for tests.
func WithBcryptCost(cost int) Option {
	return func(s *Service) { s.bcryptCost = cost }
}

func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store:      store,
		clock:      clockwork.NewRealClock(),
		sessionTTL: DefaultSessionTTL,
		bcryptCost: bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type SignupRequest struct {
	Name     string
	Email    string
	Password string
	License  string
}

// Signup creates an account. The license number and email must be unused.
func (s *Service) Signup(req SignupRequest) (*models.Account, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.License = strings.TrimSpace(req.License)
	if req.Name == "" || req.Email == "" || req.Password == "" || req.License == "" {
		return nil, ErrMissingFields
	}

	existing, err := s.store.GetAccountByLicense(req.License)
	if err != nil {
		return nil, fmt.Errorf("lookup license: %w", err)
	}
	if existing != nil {
		return nil, ErrLicenseTaken
	}
	existing, err = s.store.GetAccountByEmail(req.Email)
	if err != nil {
		return nil, fmt.Errorf("lookup email: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.clock.Now().UTC()
	acc := models.Account{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		License:      req.License,
		PasswordHash: string(hash),
		JoinedAt:     now,
		CreatedAt:    now,
	}
	if err := s.store.CreateAccount(acc); err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}
	return &acc, nil
}

// Signin checks a license number and password and opens a new session.
func (s *Service) Signin(license, password string) (*models.Session, *models.Account, error) {
	license = strings.TrimSpace(license)
	if license == "" || password == "" {
		return nil, nil, ErrMissingFields
	}

	acc, err := s.store.GetAccountByLicense(license)
	if err != nil {
		return nil, nil, fmt.Errorf("lookup license: %w", err)
	}
	if acc == nil {
		return nil, nil, ErrLicenseNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)); err != nil {
		return nil, nil, ErrInvalidPassword
	}

	now := s.clock.Now().UTC()
	sess := models.Session{
		Token:     uuid.NewString(),
		AccountID: acc.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}
	if err := s.store.CreateSession(sess); err != nil {
		return nil, nil, fmt.Errorf("create session: %w", err)
	}
	return &sess, acc, nil
}

// Authenticate resolves a bearer token to its account.
func (s *Service) Authenticate(token string) (*models.Account, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}
	sess, err := s.store.GetSession(token)
	if err != nil {
		return nil, fmt.Errorf("lookup session: %w", err)
	}
	if sess == nil || !s.clock.Now().Before(sess.ExpiresAt) {
		return nil, ErrUnauthorized
	}
	acc, err := s.store.GetAccount(sess.AccountID)
	if err != nil {
		return nil, fmt.Errorf("lookup account: %w", err)
	}
	if acc == nil {
		return nil, ErrUnauthorized
	}
	return acc, nil
}

func (s *Service) Signout(token string) error {
	if token == "" {
		return ErrUnauthorized
	}
	return s.store.DeleteSession(token)
}
