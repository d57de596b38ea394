package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"campus-housing-backend/internal/domain"
	"campus-housing-backend/internal/logger"
	"campus-housing-backend/internal/repository"
	"campus-housing-backend/internal/security"
	"campus-housing-backend/internal/validation"
)

type authService struct {
	userRepo repository.UserRepository
	hasher   security.PasswordHasher
	tokens   security.TokenManager
	validate *validation.Validator
}

func NewAuthService(userRepo repository.UserRepository, hasher security.PasswordHasher, tokens security.TokenManager) AuthService {
	return &authService{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		validate: validation.New(),
	}
}

func (s *authService) Register(ctx context.Context, in domain.Registration) (*domain.User, string, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	in.FullName = strings.TrimSpace(in.FullName)

	logger.EnterMethod("authService.Register", "username", in.Username)

	if err := s.validate.Registration(in); err != nil {
		logger.ExitMethodWithWarning("authService.Register", err, "username", in.Username)
		return nil, "", err
	}

	if err := s.ensureAvailable(ctx, in.Username, in.Email); err != nil {
		logger.ExitMethodWithWarning("authService.Register", err, "username", in.Username)
		return nil, "", err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		logger.ExitMethodWithError("authService.Register", err, "username", in.Username)
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		FullName:     in.FullName,
		PasswordHash: hash,
	}
	// A concurrent registration can still win the race; the unique
	// constraints surface that as ErrConflict.
	if err := s.userRepo.Create(ctx, user); err != nil {
		logger.ExitMethodWithError("authService.Register", err, "username", in.Username)
		return nil, "", err
	}

	token, err := s.tokens.GenerateAccessToken(user.ID, user.Username)
	if err != nil {
		logger.ExitMethodWithError("authService.Register", err, "userID", user.ID)
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	logger.ExitMethod("authService.Register", "userID", user.ID)
	return user, token, nil
}

func (s *authService) ensureAvailable(ctx context.Context, username, email string) error {
	if _, err := s.userRepo.GetByUsername(ctx, username); err == nil {
		return fmt.Errorf("username %w", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return fmt.Errorf("email %w", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return nil
}

// Verify checks credentials. Unknown usernames and wrong passwords fail the
// same way and take the same time.
func (s *authService) Verify(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	logger.EnterMethod("authService.Verify", "username", username)

	user, err := s.userRepo.GetByUsername(ctx, username)
	if errors.Is(err, domain.ErrNotFound) {
		s.hasher.CompareDummy(password)
		logger.ExitMethodWithWarning("authService.Verify", domain.ErrUnauthenticated, "username", username)
		return nil, domain.ErrUnauthenticated
	}
	if err != nil {
		logger.ExitMethodWithError("authService.Verify", err, "username", username)
		return nil, err
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		logger.ExitMethodWithWarning("authService.Verify", domain.ErrUnauthenticated, "username", username)
		return nil, domain.ErrUnauthenticated
	}

	logger.ExitMethod("authService.Verify", "userID", user.ID)
	return user, nil
}

func (s *authService) Login(ctx context.Context, username, password string) (*domain.User, string, error) {
	user, err := s.Verify(ctx, username, password)
	if err != nil {
		return nil, "", err
	}
	token, err := s.tokens.GenerateAccessToken(user.ID, user.Username)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return user, token, nil
}
