package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventcheckin/internal/domain"
)

type mockUserRepo struct {
	users map[string]*domain.User
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, ok := m.users[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

type mockRoleRepo struct {
	roles map[string][]*domain.Role
}

func (m *mockRoleRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.Role, error) {
	return m.roles[userID], nil
}

type mockHasher struct{}

func (mockHasher) GenerateSalt() (string, error) { return "salt", nil }

func (mockHasher) Hash(salt, password string) (string, error) {
	return salt + ":" + password, nil
}

func (mockHasher) Compare(hash, salt, password string) error {
	if hash != salt+":"+password {
		return errors.New("mismatch")
	}
	return nil
}

type mockIssuer struct {
	roles []string
}

func (m *mockIssuer) Issue(userID, email string, roles []string, expiry time.Duration) (string, error) {
	m.roles = roles
	return "token-" + userID, nil
}

func TestAuthService_Login(t *testing.T) {
	users := &mockUserRepo{users: map[string]*domain.User{
		"staff@example.com": {ID: "u1", Email: "staff@example.com", PasswordHash: "s1:secret", Salt: "s1"},
		"noroles@example.com": {ID: "u2", Email: "noroles@example.com", PasswordHash: "s2:secret", Salt: "s2"},
	}}
	roles := &mockRoleRepo{roles: map[string][]*domain.Role{
		"u1": {{ID: "r1", Code: domain.RoleCheckInStaff}},
	}}

	t.Run("success", func(t *testing.T) {
		issuer := &mockIssuer{}
		svc := NewAuthService(users, roles, mockHasher{}, issuer, time.Hour)

		token, user, userRoles, err := svc.Login(context.Background(), " Staff@Example.com ", "secret")
		require.NoError(t, err)
		assert.Equal(t, "token-u1", token)
		assert.Equal(t, "u1", user.ID)
		assert.Equal(t, []string{domain.RoleCheckInStaff}, userRoles)
		assert.Equal(t, userRoles, issuer.roles)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc := NewAuthService(users, roles, mockHasher{}, &mockIssuer{}, time.Hour)
		_, _, _, err := svc.Login(context.Background(), "staff@example.com", "wrong")
		require.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("unknown email looks like a bad password", func(t *testing.T) {
		svc := NewAuthService(users, roles, mockHasher{}, &mockIssuer{}, time.Hour)
		_, _, _, err := svc.Login(context.Background(), "nobody@example.com", "secret")
		require.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("user without roles defaults to viewer", func(t *testing.T) {
		svc := NewAuthService(users, roles, mockHasher{}, &mockIssuer{}, time.Hour)
		_, _, userRoles, err := svc.Login(context.Background(), "noroles@example.com", "secret")
		require.NoError(t, err)
		assert.Equal(t, []string{domain.RoleViewer}, userRoles)
	})

	t.Run("blank input", func(t *testing.T) {
		svc := NewAuthService(users, roles, mockHasher{}, &mockIssuer{}, time.Hour)
		_, _, _, err := svc.Login(context.Background(), "", "")
		require.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}
