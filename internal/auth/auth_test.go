package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/flavor-house/internal/docstore"
	"github.com/iliyamo/flavor-house/internal/repository"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newService(t *testing.T) (*Service, *clock) {
	t.Helper()
	admins := repository.NewAdminRepo(docstore.NewMemoryStore())
	_, err := admins.Create(context.Background(), "chef@example.com", "correct horse", bcrypt.MinCost)
	require.NoError(t, err)

	c := &clock{t: time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)}
	deny := NewMemoryDenylist()
	deny.now = c.now
	s := NewService(admins, deny, "s3cret", 0, nil)
	s.now = c.now
	return s, c
}

func TestSignIn(t *testing.T) {
	s, c := newService(t)
	ctx := context.Background()

	sess, err := s.SignIn(ctx, " Chef@Example.com", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, c.t.Add(time.Hour), sess.ExpiresAt)
	assert.Equal(t, "chef@example.com", sess.Email)

	_, err = s.SignIn(ctx, "chef@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = s.SignIn(ctx, "ghost@example.com", "correct horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = s.SignIn(ctx, "not-an-email", "correct horse")
	assert.ErrorIs(t, err, ErrInvalidEmail)
	assert.Equal(t, "Please enter a valid email address.", Message(err))
}

func TestSession_FixedWindow(t *testing.T) {
	s, c := newService(t)
	ctx := context.Background()
	sess, err := s.SignIn(ctx, "chef@example.com", "correct horse")
	require.NoError(t, err)

	c.t = c.t.Add(59 * time.Minute)
	claims, err := s.Verify(ctx, sess.Token)
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, claims.Role)

	c.t = c.t.Add(2 * time.Minute)
	_, err = s.Verify(ctx, sess.Token)
	assert.ErrorIs(t, err, ErrSessionEnded)
}

func TestSignOut_Revokes(t *testing.T) {
	s, _ := newService(t)
	ctx := context.Background()
	sess, err := s.SignIn(ctx, "chef@example.com", "correct horse")
	require.NoError(t, err)

	require.NoError(t, s.SignOut(ctx, sess.Token))
	_, err = s.Verify(ctx, sess.Token)
	assert.ErrorIs(t, err, ErrSessionEnded)

	// A second session is unaffected.
	other, err := s.SignIn(ctx, "chef@example.com", "correct horse")
	require.NoError(t, err)
	_, err = s.Verify(ctx, other.Token)
	assert.NoError(t, err)
}

func TestMemoryDenylist_Expires(t *testing.T) {
	c := &clock{t: time.Unix(1000, 0)}
	d := NewMemoryDenylist()
	d.now = c.now
	ctx := context.Background()

	require.NoError(t, d.Revoke(ctx, "a", c.t.Add(time.Minute)))
	ok, _ := d.Revoked(ctx, "a")
	assert.True(t, ok)

	c.t = c.t.Add(2 * time.Minute)
	ok, _ = d.Revoked(ctx, "a")
	assert.False(t, ok)

	require.NoError(t, d.Revoke(ctx, "b", c.t.Add(-time.Second)))
	ok, _ = d.Revoked(ctx, "b")
	assert.False(t, ok)
}
