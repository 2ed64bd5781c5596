package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventcheckin/internal/domain"
)

type authService struct {
	userRepo  domain.UserRepository
	roleRepo  domain.RoleRepository
	hasher    domain.PasswordHasher
	issuer    domain.TokenIssuer
	jwtExpiry time.Duration
}

// NewAuthService creates an AuthService with the given repositories, hasher, and token issuer.
func NewAuthService(
	userRepo domain.UserRepository,
	roleRepo domain.RoleRepository,
	hasher domain.PasswordHasher,
	issuer domain.TokenIssuer,
	jwtExpiry time.Duration,
) domain.AuthService {
	return &authService{
		userRepo:  userRepo,
		roleRepo:  roleRepo,
		hasher:    hasher,
		issuer:    issuer,
		jwtExpiry: jwtExpiry,
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.User, []string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return "", nil, nil, fmt.Errorf("%w: email and password are required", domain.ErrInvalidInput)
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Same error as a bad password so responses don't leak which emails exist.
			return "", nil, nil, domain.ErrInvalidCredentials
		}
		return "", nil, nil, fmt.Errorf("get user: %w", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, user.Salt, password); err != nil {
		return "", nil, nil, domain.ErrInvalidCredentials
	}

	roleRecords, err := s.roleRepo.ListByUserID(ctx, user.ID)
	if err != nil {
		return "", nil, nil, fmt.Errorf("list roles: %w", err)
	}
	roles := make([]string, 0, len(roleRecords))
	for _, r := range roleRecords {
		roles = append(roles, r.Code)
	}
	if len(roles) == 0 {
		roles = append(roles, domain.RoleViewer)
	}

	token, err := s.issuer.Issue(user.ID, user.Email, roles, s.jwtExpiry)
	if err != nil {
		return "", nil, nil, fmt.Errorf("issue token: %w", err)
	}
	return token, user, roles, nil
}
