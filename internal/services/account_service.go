package services

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"nearby/internal/models/db_models"
	"nearby/internal/models/request_models"
	"nearby/internal/models/response_models"
	"nearby/internal/repositories"
	"nearby/pkg/middleware"
	"nearby/pkg/utils"
)

type AccountServiceInterface interface {
	Login(request request_models.LoginRequest, ctx context.Context) (*response_models.LoginResponse, error)
	CreateAccount(request request_models.SignUpRequest, ctx context.Context) error
}

type AccountService struct {
	accountRepo repositories.AccountRepository
	tokens      *utils.TokenIssuer
	logger      *zap.Logger
}

func NewAccountService(accountRepo repositories.AccountRepository, tokens *utils.TokenIssuer, logger *zap.Logger) AccountServiceInterface {
	return &AccountService{
		accountRepo: accountRepo,
		tokens:      tokens,
		logger:      logger,
	}
}

func (a *AccountService) Login(request request_models.LoginRequest, ctx context.Context) (*response_models.LoginResponse, error) {
	account, err := a.accountRepo.FindByEmail(ctx, normalizeEmail(request.Email))
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if account == nil {
		return nil, utils.ErrInvalidCredentials
	}

	if err := utils.ComparePasswords(account.PasswordHash, request.Password); err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	token, err := a.tokens.CreateToken(account.ID, account.Role)
	if err != nil {
		a.logger.Error("failed to sign token", zap.Error(err))
		return nil, err
	}

	return &response_models.LoginResponse{Token: token, Role: account.Role}, nil
}

func (a *AccountService) CreateAccount(request request_models.SignUpRequest, ctx context.Context) error {
	email := normalizeEmail(request.Email)
	existing, err := a.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if existing != nil {
		return utils.ErrEmailAlreadyExists
	}

	hashed, err := utils.HashPassword(request.Password)
	if err != nil {
		return err
	}

	account := &db_models.Account{
		Name:         strings.TrimSpace(request.Name),
		Email:        email,
		PasswordHash: hashed,
		Role:         middleware.RoleUser,
	}
	if err := a.accountRepo.InsertTx(account, ctx); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func normalizeEmail(e string) string {
	return strings.ToLower(strings.TrimSpace(e))
}
