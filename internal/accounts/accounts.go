// Package accounts manages user credentials: lookup, password
// verification, generated passwords and admin edits.
package accounts

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"net/mail"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/abhisek/lectora/internal/store"
)

var (
	// ErrInvalidCredentials is returned for an unknown email or a wrong
	// password. The two cases are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserExists is returned when inserting an email that is taken.
	ErrUserExists = errors.New("user already exists")

	// ErrInvalidEmail is returned for addresses that do not parse.
	ErrInvalidEmail = errors.New("invalid email")

	ErrEmptyPassword = errors.New("password is empty")

	// ErrPasswordTooLong is returned for passwords bcrypt cannot hash.
	ErrPasswordTooLong = fmt.Errorf("password longer than %d bytes", MaxPasswordBytes)
)

// MaxPasswordBytes is bcrypt's input limit.
const MaxPasswordBytes = 72

// Role gates access to the administration actions.
type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

// ParseRole accepts "student" or "admin"; empty means student.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case "", RoleStudent:
		return RoleStudent, nil
	case RoleAdmin:
		return RoleAdmin, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// HashScheme identifies how PasswordHash was produced.
type HashScheme string

const (
	SchemeBcrypt HashScheme = "bcrypt"
	// SchemeSHA256 is a hex SHA-256 digest carried over from legacy
	// imports. It is replaced with bcrypt on the next successful login.
	SchemeSHA256 HashScheme = "sha256"
)

// User is an account without its secret.
type User struct {
	Email     string
	Role      Role
	Scheme    HashScheme
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAdmin reports whether u may use the administration actions.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// PasswordLength is the length of generated passwords.
const PasswordLength = 12

const passwordAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789" +
	"!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// Service implements the credential store on top of a store.UserRepo.
type Service struct {
	repo store.UserRepo

	// Cost is the bcrypt work factor for new hashes.
	Cost int

	dummyOnce sync.Once
	dummyHash []byte
}

// NewService creates a Service using bcrypt.DefaultCost.
func NewService(repo store.UserRepo) *Service {
	return &Service{repo: repo, Cost: bcrypt.DefaultCost}
}

// NormalizeEmail trims and lowercases email and checks that it parses as a
// bare address.
func NormalizeEmail(email string) (string, error) {
	e := strings.ToLower(strings.TrimSpace(email))
	addr, err := mail.ParseAddress(e)
	if err != nil || addr.Address != e {
		return "", fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}
	return e, nil
}

// Find returns the user or an error wrapping store.ErrNotFound.
func (s *Service) Find(ctx context.Context, email string) (*User, error) {
	e, err := NormalizeEmail(email)
	if err != nil {
		return nil, err
	}
	rec, err := s.repo.Get(ctx, e)
	if err != nil {
		return nil, err
	}
	return toUser(rec), nil
}

// Verify checks password against the stored hash. Unknown emails still pay
// for one bcrypt comparison. Legacy SHA-256 rows are rehashed with bcrypt
// on success.
func (s *Service) Verify(ctx context.Context, email, password string) (*User, error) {
	e, err := NormalizeEmail(email)
	if err != nil {
		s.burn(password)
		return nil, ErrInvalidCredentials
	}

	rec, err := s.repo.Get(ctx, e)
	if errors.Is(err, store.ErrNotFound) {
		s.burn(password)
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	switch HashScheme(rec.Scheme) {
	case SchemeSHA256:
		sum := sha256.Sum256([]byte(password))
		want := []byte(strings.ToLower(string(rec.PasswordHash)))
		got := []byte(hex.EncodeToString(sum[:]))
		if subtle.ConstantTimeCompare(got, want) != 1 {
			return nil, ErrInvalidCredentials
		}
		if err := s.setHash(ctx, e, password); err != nil {
			return nil, fmt.Errorf("upgrade legacy hash: %w", err)
		}
		rec.Scheme = string(SchemeBcrypt)
	default:
		if bcrypt.CompareHashAndPassword(rec.PasswordHash, []byte(password)) != nil {
			return nil, ErrInvalidCredentials
		}
	}
	return toUser(rec), nil
}

// Create adds a user with a generated password and returns the plaintext.
// It is the only time the password is available.
func (s *Service) Create(ctx context.Context, email string, role Role) (string, error) {
	password, err := GeneratePassword(PasswordLength)
	if err != nil {
		return "", err
	}
	if err := s.CreateWithPassword(ctx, email, password, role); err != nil {
		return "", err
	}
	return password, nil
}

// CreateWithPassword adds a user with a caller-chosen password.
func (s *Service) CreateWithPassword(ctx context.Context, email, password string, role Role) error {
	if err := checkPassword(password); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.Cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.Insert(ctx, email, hash, SchemeBcrypt, role)
}

// Insert stores an existing hash. Used by legacy imports.
func (s *Service) Insert(ctx context.Context, email string, hash []byte, scheme HashScheme, role Role) error {
	e, err := NormalizeEmail(email)
	if err != nil {
		return err
	}
	err = s.repo.Insert(ctx, &store.UserRecord{
		Email:        e,
		PasswordHash: hash,
		Scheme:       string(scheme),
		Role:         string(role),
	})
	if errors.Is(err, store.ErrDuplicate) {
		return fmt.Errorf("%w: %s", ErrUserExists, e)
	}
	return err
}

// SetPassword replaces the user's password.
func (s *Service) SetPassword(ctx context.Context, email, password string) error {
	e, err := NormalizeEmail(email)
	if err != nil {
		return err
	}
	if err := checkPassword(password); err != nil {
		return err
	}
	return s.setHash(ctx, e, password)
}

func checkPassword(password string) error {
	switch {
	case password == "":
		return ErrEmptyPassword
	case len(password) > MaxPasswordBytes:
		return ErrPasswordTooLong
	}
	return nil
}

// ResetPassword replaces the user's password with a generated one and
// returns it.
func (s *Service) ResetPassword(ctx context.Context, email string) (string, error) {
	password, err := GeneratePassword(PasswordLength)
	if err != nil {
		return "", err
	}
	if err := s.SetPassword(ctx, email, password); err != nil {
		return "", err
	}
	return password, nil
}

// Delete removes the user. Their progress records are kept.
func (s *Service) Delete(ctx context.Context, email string) error {
	e, err := NormalizeEmail(email)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, e)
}

// List returns all users ordered by email.
func (s *Service) List(ctx context.Context) ([]User, error) {
	recs, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]User, len(recs))
	for i := range recs {
		out[i] = *toUser(&recs[i])
	}
	return out, nil
}

// HasAdmin reports whether at least one admin account exists.
func (s *Service) HasAdmin(ctx context.Context) (bool, error) {
	n, err := s.repo.Count(ctx, string(RoleAdmin))
	return n > 0, err
}

func (s *Service) setHash(ctx context.Context, email, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.Cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.repo.UpdatePassword(ctx, email, hash, string(SchemeBcrypt))
}

// burn spends one bcrypt comparison so unknown emails take as long as
// known ones.
func (s *Service) burn(password string) {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("lectora-dummy"), s.Cost)
	})
	_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
}

// GeneratePassword returns n characters drawn uniformly from letters,
// digits and ASCII punctuation.
func GeneratePassword(n int) (string, error) {
	max := big.NewInt(int64(len(passwordAlphabet)))
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generate password: %w", err)
		}
		b[i] = passwordAlphabet[idx.Int64()]
	}
	return string(b), nil
}

func toUser(rec *store.UserRecord) *User {
	return &User{
		Email:     rec.Email,
		Role:      Role(rec.Role),
		Scheme:    HashScheme(rec.Scheme),
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}
