package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/fekuna/omnipos-storefront-service/internal/apperrors"
	"github.com/fekuna/omnipos-storefront-service/internal/auth"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/user"
	"github.com/fekuna/omnipos-storefront-service/internal/user/dto"
)

type userUseCase struct {
	repo   user.Repository
	tokens *auth.TokenManager
	logger *zap.Logger
}

func NewUserUseCase(repo user.Repository, tokens *auth.TokenManager, log *zap.Logger) user.UseCase {
	return &userUseCase{
		repo:   repo,
		tokens: tokens,
		logger: log,
	}
}

func (uc *userUseCase) Register(ctx context.Context, input *dto.RegisterInput) (*model.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	existing, err := uc.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.NewValidation("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	// Role is never taken from the request; admins are provisioned out of band.
	u := &model.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         model.RoleCustomer,
		CreatedAt:    time.Now(),
	}

	if err := uc.repo.Create(ctx, u); err != nil {
		if errors.Is(err, user.ErrEmailExists) {
			// Lost a race with a concurrent registration for the same email.
			return nil, apperrors.NewValidation("email already registered")
		}
		return nil, err
	}

	uc.logger.Info("user registered", zap.String("user_id", u.ID))
	return u, nil
}

func (uc *userUseCase) Login(ctx context.Context, input *dto.LoginInput) (string, *model.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	u, err := uc.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if u == nil {
		return "", nil, apperrors.NewValidation("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(input.Password)); err != nil {
		return "", nil, apperrors.NewValidation("invalid credentials")
	}

	token, err := uc.tokens.Generate(u.ID, u.Role)
	if err != nil {
		return "", nil, err
	}

	return token, u, nil
}
