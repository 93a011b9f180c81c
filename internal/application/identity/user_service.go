package identity

import (
	"context"

	"github.com/easygo-schools/backend/internal/domain/identity"
	"github.com/easygo-schools/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserService handles user account administration
type UserService struct {
	userRepo identity.UserRepository
	logger   *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo identity.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{userRepo: userRepo, logger: logger}
}

// CreateUserRequest carries the fields for a new user account
type CreateUserRequest struct {
	Username string   `json:"username" binding:"required"`
	Email    string   `json:"email" binding:"required,email"`
	Phone    string   `json:"phone"`
	Password string   `json:"password" binding:"required,min=8"`
	Roles    []string `json:"roles" binding:"required,min=1"`
}

// CreateUser registers a new portal account
func (s *UserService) CreateUser(ctx context.Context, req CreateUserRequest) (*identity.User, error) {
	roles := make([]identity.Role, len(req.Roles))
	for i, r := range req.Roles {
		roles[i] = identity.Role(r)
	}

	user, err := identity.NewUser(req.Username, req.Email, req.Password, roles...)
	if err != nil {
		return nil, err
	}
	user.Phone = req.Phone

	exists, err := s.userRepo.ExistsByUsername(ctx, user.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Username is already taken")
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user created",
		zap.String("username", user.Username),
		zap.Strings("roles", user.RoleStrings()),
	)
	return user, nil
}

// GetUser fetches one user by ID
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	return s.userRepo.FindByID(ctx, id)
}

// DeactivateUser disables an account; the user can no longer log in
func (s *UserService) DeactivateUser(ctx context.Context, id uuid.UUID) error {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	user.Deactivate()
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}
	s.logger.Info("user deactivated", zap.String("username", user.Username))
	return nil
}

func parseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}
