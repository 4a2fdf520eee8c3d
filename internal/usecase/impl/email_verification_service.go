package impl

import (
	"context"
	"log/slog"
	"time"

	"housing/config"
	deliverycontext "housing/internal/delivery/context"
	domainerrors "housing/internal/domain/errors"
	"housing/internal/domain/repository"
	"housing/internal/domain/service"
	"housing/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	defaultCodeTTL     = 5 * time.Minute
	defaultVerifiedTTL = 30 * time.Minute
)

// emailVerificationService implements the EmailUsecase interface. Each
// address walks a two-phase TTL state machine: a pending code (short TTL)
// and, after successful consumption, a verified marker (longer TTL).
type emailVerificationService struct {
	codeStore   repository.VerificationCodeStore
	statusStore repository.VerificationStatusStore
	generator   service.CodeGenerator
	sender      service.EmailSender
	codeTTL     time.Duration
	verifiedTTL time.Duration
	logger      *slog.Logger
}

// EmailServiceParams holds dependencies for emailVerificationService, injected by Fx.
type EmailServiceParams struct {
	fx.In

	CodeStore   repository.VerificationCodeStore
	StatusStore repository.VerificationStatusStore
	Generator   service.CodeGenerator
	Sender      service.EmailSender
	Config      *config.Config
	Logger      *slog.Logger
}

// NewEmailVerificationService is the constructor for emailVerificationService.
func NewEmailVerificationService(params EmailServiceParams) usecase.EmailUsecase {
	codeTTL := defaultCodeTTL
	verifiedTTL := defaultVerifiedTTL
	if params.Config != nil && params.Config.Email != nil {
		if params.Config.Email.CodeTTL > 0 {
			codeTTL = params.Config.Email.CodeTTL
		}
		if params.Config.Email.VerifiedTTL > 0 {
			verifiedTTL = params.Config.Email.VerifiedTTL
		}
	}

	return &emailVerificationService{
		codeStore:   params.CodeStore,
		statusStore: params.StatusStore,
		generator:   params.Generator,
		sender:      params.Sender,
		codeTTL:     codeTTL,
		verifiedTTL: verifiedTTL,
		logger:      params.Logger,
	}
}

func (srv *emailVerificationService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// SendSignupCode generates, stores and mails a fresh code. A resend
// overwrites the pending code and resets its TTL.
func (srv *emailVerificationService) SendSignupCode(ctx context.Context, email string) error {
	code, err := srv.generator.Generate()
	if err != nil {
		return errors.Wrap(err, "failed to generate verification code")
	}

	if err := srv.codeStore.SaveCode(ctx, email, code, srv.codeTTL); err != nil {
		return errors.Wrap(err, "failed to store verification code")
	}

	if err := srv.sender.SendVerificationCode(ctx, email, code); err != nil {
		return errors.Wrap(err, "failed to send verification code")
	}

	srv.log(ctx).Debug("Verification code sent", slog.String("email", email))

	return nil
}

// VerifyCode compares the submitted code against the stored one. A match
// consumes the code: delete the code first, then set the verified marker.
// That order means a crash between the two steps loses the code rather
// than leaving a consumable code next to a verified marker.
func (srv *emailVerificationService) VerifyCode(ctx context.Context, email, code string) (*usecase.VerifyCodeOutput, error) {
	stored, err := srv.codeStore.GetCode(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrCodeNotFound) {
			return nil, errors.Wrap(domainerrors.ErrCodeExpired, "no verification code on record")
		}

		return nil, errors.Wrap(err, "failed to load verification code")
	}

	if stored != code {
		// A mismatch is a normal negative result; the pending code stays
		// usable.
		srv.log(ctx).Debug("Verification code mismatch", slog.String("email", email))

		return &usecase.VerifyCodeOutput{Verified: false}, nil
	}

	if err := srv.codeStore.DeleteCode(ctx, email); err != nil {
		return nil, errors.Wrap(err, "failed to consume verification code")
	}

	if err := srv.statusStore.MarkVerified(ctx, email, srv.verifiedTTL); err != nil {
		return nil, errors.Wrap(err, "failed to mark email verified")
	}

	srv.log(ctx).Debug("Email verified", slog.String("email", email))

	return &usecase.VerifyCodeOutput{Verified: true}, nil
}

// IsVerified reports whether a live verified marker exists.
func (srv *emailVerificationService) IsVerified(ctx context.Context, email string) (bool, error) {
	verified, err := srv.statusStore.IsVerified(ctx, email)
	if err != nil {
		return false, errors.Wrap(err, "failed to check verified marker")
	}

	return verified, nil
}

// ClearVerified removes the verified marker.
func (srv *emailVerificationService) ClearVerified(ctx context.Context, email string) error {
	if err := srv.statusStore.DeleteVerified(ctx, email); err != nil {
		return errors.Wrap(err, "failed to clear verified marker")
	}

	return nil
}
