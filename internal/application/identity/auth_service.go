package identity

import (
	"context"

	"github.com/easygo-schools/backend/internal/domain/identity"
	"github.com/easygo-schools/backend/internal/domain/shared"
	"github.com/easygo-schools/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// AuthService handles authentication operations
type AuthService struct {
	userRepo   identity.UserRepository
	jwtService *auth.JWTService
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(userRepo identity.UserRepository, jwtService *auth.JWTService, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// LoginRequest carries the credentials for a login attempt
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse is returned on successful authentication
type LoginResponse struct {
	Token *auth.Token    `json:"token"`
	User  *identity.User `json:"user"`
}

// Login authenticates a user and returns a signed access token.
// Lookup and password failures return the same error so usernames
// cannot be probed.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		s.logger.Warn("login failed: unknown username", zap.String("username", req.Username))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")
	}

	if !user.IsActive {
		s.logger.Warn("login attempt for deactivated account", zap.String("username", user.Username))
		return nil, shared.NewDomainError("ACCOUNT_DEACTIVATED", "Account has been deactivated")
	}

	if !user.CheckPassword(req.Password) {
		s.logger.Warn("login failed: bad password", zap.String("username", user.Username))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Username, user.RoleStrings())
	if err != nil {
		return nil, err
	}

	user.RecordLogin()
	if err := s.userRepo.Update(ctx, user); err != nil {
		// The login itself succeeded; a stale last-login stamp is acceptable.
		s.logger.Error("recording login time", zap.String("username", user.Username), zap.Error(err))
	}

	s.logger.Info("user logged in", zap.String("username", user.Username))
	return &LoginResponse{Token: token, User: user}, nil
}

// ChangePasswordRequest carries a password change
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// ChangePassword replaces the caller's password after verifying the current one
func (s *AuthService) ChangePassword(ctx context.Context, userID string, req ChangePasswordRequest) error {
	user, err := s.findByIDString(ctx, userID)
	if err != nil {
		return err
	}
	if err := user.ChangePassword(req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}
	s.logger.Info("password changed", zap.String("username", user.Username))
	return nil
}

func (s *AuthService) findByIDString(ctx context.Context, userID string) (*identity.User, error) {
	id, err := parseUUID(userID)
	if err != nil {
		return nil, shared.ErrInvalidInput
	}
	return s.userRepo.FindByID(ctx, id)
}
