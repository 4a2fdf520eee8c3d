package impl

import (
	"context"
	"log/slog"

	deliverycontext "housing/internal/delivery/context"
	"housing/internal/domain/entity"
	domainerrors "housing/internal/domain/errors"
	"housing/internal/domain/repository"
	"housing/internal/domain/service"
	"housing/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	txManager    repository.TransactionManager
	hasher       service.PasswordHasher
	emailUsecase usecase.EmailUsecase
	logger       *slog.Logger
}

// UserServiceParams holds dependencies for userService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	Hasher       service.PasswordHasher
	EmailUsecase usecase.EmailUsecase
	Logger       *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		txManager:    params.TxManager,
		hasher:       params.Hasher,
		emailUsecase: params.EmailUsecase,
		logger:       params.Logger,
	}
}

func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Signup registers a local account. The address must carry a live verified
// marker; the marker is consumed after the account exists so a failed
// create leaves the verification usable.
func (srv *userService) Signup(ctx context.Context, input *usecase.SignupInput) (*usecase.SignupOutput, error) {
	srv.log(ctx).Info("Starting signup", slog.String("loginID", input.LoginID))

	verified, err := srv.emailUsecase.IsVerified(ctx, input.Email)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check email verification")
	}
	if !verified {
		srv.log(ctx).Warn("Signup with unverified email", slog.String("email", input.Email))

		return nil, errors.Wrap(domainerrors.ErrEmailNotVerified, "signup requires a verified email")
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password during signup")
	}

	var createdUser *entity.User
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		if _, err := userRepo.FindByLoginID(ctx, input.LoginID); err == nil {
			return errors.Wrap(domainerrors.ErrUserAlreadyExists, "login id already registered")
		} else if !errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(err, "failed to check login id availability")
		}

		// Email uniqueness only applies among local accounts.
		if _, err := userRepo.FindLocalByEmail(ctx, input.Email); err == nil {
			return errors.Wrap(domainerrors.ErrUserAlreadyExists, "email already registered")
		} else if !errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(err, "failed to check email availability")
		}

		newUser := &entity.User{
			LoginID:      input.LoginID,
			PasswordHash: hashedPassword,
			Email:        input.Email,
			Name:         input.Name,
			Role:         entity.RoleUser,
			AuthType:     entity.AuthTypeLocal,
		}

		if err := userRepo.Create(ctx, newUser); err != nil {
			return errors.Wrap(err, "failed to create user during signup")
		}

		createdUser = newUser

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Signup failed", slog.String("loginID", input.LoginID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute signup transaction")
	}

	// Consume the marker; best effort, TTL cleans up if this fails.
	if err := srv.emailUsecase.ClearVerified(ctx, input.Email); err != nil {
		srv.log(ctx).Warn("Failed to clear verified marker after signup", slog.String("email", input.Email), slog.Any("error", err))
	}

	srv.log(ctx).Debug("Signup completed", slog.Int64("userID", createdUser.ID))

	return &usecase.SignupOutput{User: createdUser}, nil
}
