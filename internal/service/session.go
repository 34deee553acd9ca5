package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/vietanh2810/event-registration-api/internal/config"
	"github.com/vietanh2810/event-registration-api/internal/domain"
	"github.com/vietanh2810/event-registration-api/internal/pkg/jwthelper"
)

const adminSubject = "admin"

var (
	ErrAdminNotConfigured = errors.New("admin password not configured")
	ErrWrongPassword      = errors.New("invalid password")
	ErrInvalidSession     = jwthelper.ErrInvalidToken
)

// AdminSessionService exchanges the shared admin secret for a signed,
// expiring session token and verifies such tokens.
type AdminSessionService struct {
	passwordHash []byte
	signingKey   []byte
	ttl          time.Duration
	now          func() time.Time
}

func NewAdminSessionService(conf *config.AdminConfig) (*AdminSessionService, error) {
	s := &AdminSessionService{
		signingKey: []byte(conf.SessionSigningKey),
		ttl:        conf.SessionTTL,
		now:        time.Now,
	}

	switch {
	case conf.PasswordHash != "":
		if _, err := bcrypt.Cost([]byte(conf.PasswordHash)); err != nil {
			return nil, fmt.Errorf("invalid admin password hash -> %w", err)
		}
		s.passwordHash = []byte(conf.PasswordHash)
	case conf.Password != "":
		hash, err := bcrypt.GenerateFromPassword([]byte(conf.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("bcrypt.GenerateFromPassword -> %w", err)
		}
		s.passwordHash = hash
	}

	return s, nil
}

func (s *AdminSessionService) Login(_ context.Context, password string) (domain.AdminSession, error) {
	if len(s.passwordHash) == 0 {
		return domain.AdminSession{}, ErrAdminNotConfigured
	}

	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return domain.AdminSession{}, ErrWrongPassword
	}

	issuedAt := s.now()
	expiresAt := issuedAt.Add(s.ttl)

	token, err := jwthelper.GenerateToken(s.signingKey, adminSubject, issuedAt, expiresAt)
	if err != nil {
		return domain.AdminSession{}, fmt.Errorf("jwthelper.GenerateToken -> %w", err)
	}

	return domain.AdminSession{
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

func (s *AdminSessionService) Verify(token string) error {
	if _, err := jwthelper.ParseToken(s.signingKey, token, adminSubject, s.now); err != nil {
		return fmt.Errorf("jwthelper.ParseToken -> %w", err)
	}

	return nil
}

// TTL is how long a new session stays valid.
func (s *AdminSessionService) TTL() time.Duration {
	return s.ttl
}
