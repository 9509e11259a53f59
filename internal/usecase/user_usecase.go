// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"bazaar/internal/domain/entity"
)

// UserUsecase defines the authentication surface: registration and login.
// Admin accounts are provisioned out of band, never through this API.
type UserUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error)
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
}

// RegisterInput defines the data required to register an account.
// Role may be "user" or "vendor"; StoreName is required for vendors.
type RegisterInput struct {
	Email     string `json:"email" validate:"required,email"`
	Name      string `json:"name" validate:"required"`
	Password  string `json:"password" validate:"required,min=8"`
	Role      string `json:"role,omitempty"`
	StoreName string `json:"storeName,omitempty"`
}

// RegisterOutput returns the created account's public fields.
type RegisterOutput struct {
	User *entity.User `json:"user"`
}

// LoginInput defines the credentials for a login request.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginOutput returns tokens plus the authenticated account.
type LoginOutput struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	User         *entity.User `json:"user"`
}
