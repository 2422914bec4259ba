// Package auth signs admins in and out. A session is a signed token that
// expires exactly one hour (configurable) after sign-in; it is never
// extended, and signing out revokes it before that.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/iliyamo/flavor-house/internal/repository"
	"github.com/iliyamo/flavor-house/internal/utils"
)

// RoleAdmin is the only role; every account in the admins collection has it.
const RoleAdmin = "ADMIN"

// DefaultSessionTTL is the fixed session window.
const DefaultSessionTTL = time.Hour

var (
	ErrInvalidEmail       = errors.New("auth/invalid-email")
	ErrInvalidCredentials = errors.New("auth/invalid-credential")
	ErrSessionEnded       = errors.New("auth/session-ended")
)

// Message returns the text shown on the sign-in screen for err.
func Message(err error) string {
	switch {
	case errors.Is(err, ErrInvalidEmail):
		return "Please enter a valid email address."
	case errors.Is(err, ErrInvalidCredentials):
		return "Incorrect email or password."
	case errors.Is(err, ErrSessionEnded):
		return "Your session has ended. Please sign in again."
	}
	return "Unable to sign in. Please try again."
}

// Session is what a successful sign-in hands back.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	AdminID   string    `json:"admin_id"`
	Email     string    `json:"email"`
}

type Service struct {
	admins *repository.AdminRepo
	deny   Denylist
	secret string
	ttl    time.Duration
	now    func() time.Time
	log    *slog.Logger
}

// NewService builds the sign-in service. A nil denylist keeps revocations
// in memory; a non-positive ttl means DefaultSessionTTL.
func NewService(admins *repository.AdminRepo, deny Denylist, secret string, ttl time.Duration, log *slog.Logger) *Service {
	if admins == nil || secret == "" {
		panic("auth: admins repo and secret are required")
	}
	if deny == nil {
		deny = NewMemoryDenylist()
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	if log == nil {
		log = slog.Default()
	}
	return &Service{admins: admins, deny: deny, secret: secret, ttl: ttl, now: time.Now, log: log}
}

// SignIn checks the credentials and starts a session.
func (s *Service) SignIn(ctx context.Context, email, password string) (Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return Session{}, ErrInvalidEmail
	}
	if password == "" {
		return Session{}, ErrInvalidCredentials
	}
	a, err := s.admins.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrAdminNotFound) {
		return Session{}, ErrInvalidCredentials
	}
	if err != nil {
		return Session{}, err
	}
	if !utils.VerifyPassword(a.PasswordHash, password) {
		return Session{}, ErrInvalidCredentials
	}
	tok, err := utils.NewSessionToken(s.secret, a.ID, a.Email, RoleAdmin, s.now(), s.ttl)
	if err != nil {
		return Session{}, err
	}
	s.log.Info("admin signed in", "admin_id", a.ID)
	return Session{Token: tok.Token, ExpiresAt: tok.Exp, AdminID: a.ID, Email: a.Email}, nil
}

// Verify returns the claims of a live session. Expired, malformed and
// revoked tokens all yield ErrSessionEnded. If the denylist cannot be
// reached the token is judged on its signature and expiry alone.
func (s *Service) Verify(ctx context.Context, raw string) (*utils.SessionClaims, error) {
	claims, err := utils.ParseSessionToken(s.secret, raw, s.now())
	if err != nil {
		return nil, ErrSessionEnded
	}
	revoked, err := s.deny.Revoked(ctx, claims.ID)
	if err != nil {
		s.log.Warn("denylist lookup failed", "err", err)
		return claims, nil
	}
	if revoked {
		return nil, ErrSessionEnded
	}
	return claims, nil
}

// SignOut revokes the session until the moment it would have expired.
func (s *Service) SignOut(ctx context.Context, raw string) error {
	claims, err := s.Verify(ctx, raw)
	if err != nil {
		return err
	}
	return s.deny.Revoke(ctx, claims.ID, claims.ExpiresAt.Time)
}
