// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"
	"strings"

	"bazaar/internal/domain/entity"
	domainerrors "bazaar/internal/domain/errors"
	"bazaar/internal/domain/repository"
	"bazaar/internal/domain/service"
	"bazaar/internal/usecase"

	"github.com/pkg/errors"
)

// userService implements the UserUsecase interface.
type userService struct {
	txManager repository.TransactionManager
	hasher    service.PasswordHasher
	tokenSvc  service.TokenService
	logger    *slog.Logger
}

// NewUserService is the constructor for userService.
func NewUserService(
	txManager repository.TransactionManager,
	hasher service.PasswordHasher,
	tokenSvc service.TokenService,
	logger *slog.Logger,
) usecase.UserUsecase {
	return &userService{
		txManager: txManager,
		hasher:    hasher,
		tokenSvc:  tokenSvc,
		logger:    logger,
	}
}

// Register creates a customer or vendor account. The admin role cannot be
// self-assigned through this path.
func (srv *userService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	role := entity.Role(input.Role)
	if input.Role == "" {
		role = entity.RoleUser
	}
	if role != entity.RoleUser && role != entity.RoleVendor {
		return nil, errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("role must be 'user' or 'vendor'"))
	}
	if role == entity.RoleVendor && strings.TrimSpace(input.StoreName) == "" {
		return nil, errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("storeName is required for vendors"))
	}

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.WithStack(domainerrors.ErrPasswordHashFailed)
	}

	user := &entity.User{
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		Name:         input.Name,
		PasswordHash: hash,
		Roles:        entity.Roles{role},
		StoreName:    input.StoreName,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		if _, err := userRepo.FindByEmail(ctx, user.Email); err == nil {
			return errors.WithStack(domainerrors.ErrUserAlreadyExists)
		} else if !errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(err, "failed to check existing user")
		}

		if err := userRepo.Create(ctx, user); err != nil {
			return errors.Wrap(err, "failed to create user")
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to register")
	}

	srv.logger.Info("Account registered", "userID", user.ID, "role", role)

	// Never hand the hash back to the delivery layer.
	user.PasswordHash = ""

	return &usecase.RegisterOutput{User: user}, nil
}

// Login verifies credentials and issues a token pair.
func (srv *userService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	var user *entity.User

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.UserRepo().FindByEmail(ctx, strings.ToLower(strings.TrimSpace(input.Email)))
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.WithStack(domainerrors.ErrInvalidCredentials)
			}

			return errors.Wrap(err, "failed to find user")
		}
		user = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to login")
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		return nil, errors.WithStack(domainerrors.ErrInvalidCredentials)
	}

	access, refresh, err := srv.tokenSvc.GenerateTokens(user.ID, user.Roles.ToStrings())
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate tokens")
	}

	user.PasswordHash = ""

	return &usecase.LoginOutput{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         user,
	}, nil
}
