package identity

import (
	"context"
	"errors"

	"github.com/moon8997/my-erp/internal/domain/identity"
	"github.com/moon8997/my-erp/internal/domain/shared"
	"go.uber.org/zap"
)

const invalidCredentialsMessage = "invalid id or password"

// AccountService handles account registration and login
type AccountService struct {
	accountRepo identity.AccountRepository
	txManager   shared.TransactionManager
	logger      *zap.Logger
}

// NewAccountService creates a new AccountService
func NewAccountService(accountRepo identity.AccountRepository, txManager shared.TransactionManager, logger *zap.Logger) *AccountService {
	return &AccountService{
		accountRepo: accountRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// Register creates an account. A taken id is a conflict.
func (s *AccountService) Register(ctx context.Context, req RegisterRequest) error {
	account, err := identity.NewAccount(req.ID, req.Password, req.Name)
	if err != nil {
		return err
	}

	err = s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		exists, err := s.accountRepo.ExistsByID(ctx, account.ID)
		if err != nil {
			return err
		}
		if exists {
			return shared.NewConflict("account %q already exists", account.ID)
		}
		return s.accountRepo.Create(ctx, account)
	})
	if err != nil {
		return err
	}

	s.logger.Info("Account registered", zap.String("account_id", account.ID))
	return nil
}

// Login verifies credentials. Unknown ids and wrong passwords fail with the
// same message.
func (s *AccountService) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	account, err := s.accountRepo.FindByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("Login with unknown account", zap.String("account_id", req.ID))
			return nil, shared.NewInvalidArgument(invalidCredentialsMessage)
		}
		return nil, err
	}

	if !account.VerifyPassword(req.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("account_id", req.ID))
		return nil, shared.NewInvalidArgument(invalidCredentialsMessage)
	}

	if !account.IsHashed() {
		s.logger.Info("Account still stores a legacy password", zap.String("account_id", account.ID))
	}
	return &LoginResult{UserID: account.ID, Name: account.Name}, nil
}
