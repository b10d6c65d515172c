package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/askbob/project-management-api/internal/auth"
	"github.com/askbob/project-management-api/internal/constants"
	"github.com/askbob/project-management-api/internal/models"
	"github.com/askbob/project-management-api/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken           = errors.New("email already registered")
	ErrTenantNameTaken      = errors.New("tenant name already registered")
	ErrInvalidCredentials   = errors.New("incorrect email or password")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrUnauthenticated      = errors.New("could not validate credentials")
	ErrFailedToHashPassword = errors.New("failed to hash password")
	ErrFailedToCreateUser   = errors.New("failed to create user")
	ErrFailedToCreateTenant = errors.New("failed to create tenant")
)

// AuthService handles registration, login and bearer-token resolution. Its
// ResolveUser method is the single trust boundary every tenant-scoping
// decision depends on.
type AuthService struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenManager
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, tokens *auth.TokenManager) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// RegisterInput represents the required information to create a tenant and
// its first user.
type RegisterInput struct {
	Email      string
	Password   string
	TenantName string
}

// Register creates a new tenant together with its first user and returns a
// signed access token.
func (s *AuthService) Register(input RegisterInput) (*models.User, string, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if len(input.Password) < constants.MinPasswordLength {
		return nil, "", ErrPasswordTooShort
	}

	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, "", ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", fmt.Errorf("failed to check email: %w", err)
	}

	hashed, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, "", ErrFailedToHashPassword
	}

	tenant := &models.Tenant{
		Name: strings.TrimSpace(input.TenantName),
	}
	user := &models.User{
		Email:          email,
		HashedPassword: hashed,
		IsActive:       true,
	}

	if err := s.userRepo.CreateWithTenant(user, tenant); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateTenantName):
			return nil, "", ErrTenantNameTaken
		case errors.Is(err, repository.ErrCreateTenant):
			return nil, "", ErrFailedToCreateTenant
		case errors.Is(err, repository.ErrCreateUser):
			return nil, "", ErrFailedToCreateUser
		default:
			return nil, "", fmt.Errorf("failed to complete registration: %w", err)
		}
	}

	token, err := s.tokens.Issue(user.ID, user.TenantID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	return user, token, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

// Login verifies credentials and returns the user with a fresh access token.
func (s *AuthService) Login(input LoginInput) (*models.User, string, error) {
	user, err := s.userRepo.FindByEmail(strings.TrimSpace(strings.ToLower(input.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to find user: %w", err)
	}

	if !auth.CheckPassword(input.Password, user.HashedPassword) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.TenantID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	return user, token, nil
}

// ResolveUser maps a bearer token to its user. It fails with
// ErrUnauthenticated when the signature is invalid, the token is expired, the
// user no longer exists, or the user has been deactivated. The user row is
// re-read on every call, so deactivation takes effect on the next request.
func (s *AuthService) ResolveUser(token string) (*models.User, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !user.IsActive {
		return nil, ErrUnauthenticated
	}

	return user, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}
