// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	deliverycontext "housing/internal/delivery/context"
	"housing/internal/domain/entity"
	domainerrors "housing/internal/domain/errors"
	"housing/internal/domain/repository"
	"housing/internal/domain/service"
	"housing/internal/infra/oauth"
	"housing/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface. Reissue is the single
// path by which refresh tokens are rotated; nothing else writes the
// refresh token store except login, federated login and logout.
type authService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	refreshStore repository.RefreshTokenStore
	hasher       service.PasswordHasher
	tokenService service.TokenService
	oauthClients map[entity.AuthType]service.OAuthClient
	logger       *slog.Logger
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	RefreshStore repository.RefreshTokenStore
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	OAuthClients []service.OAuthClient `group:"oauth_clients"`
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	clients := make(map[entity.AuthType]service.OAuthClient, len(params.OAuthClients))
	for _, client := range params.OAuthClients {
		// Unconfigured providers inject as nil and stay off the allow-list.
		if client == nil {
			continue
		}
		clients[client.Provider()] = client
	}

	return &authService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		refreshStore: params.RefreshStore,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		oauthClients: clients,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Login verifies local credentials and mints a token pair.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.TokenPairOutput, error) {
	srv.log(ctx).Debug("Starting login", slog.String("loginID", input.LoginID))

	user, err := srv.userRepo.FindByLoginID(ctx, input.LoginID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Warn("Login failed", slog.String("loginID", input.LoginID))

			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
		}

		return nil, errors.Wrap(err, "failed to find user by login id")
	}

	// bcrypt check runs outside any transaction (CPU-bound).
	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("loginID", input.LoginID))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	output, err := srv.issueTokenPair(ctx, user)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Debug("User logged in successfully", slog.Int64("userID", user.ID))

	return output, nil
}

// Reissue rotates the presented refresh token into a new pair.
func (srv *authService) Reissue(ctx context.Context, refreshToken string) (*usecase.TokenPairOutput, error) {
	srv.log(ctx).Info("Attempting to reissue token pair")

	// First predicate: the token itself must be signature-valid, unexpired
	// and of refresh type.
	claims, err := srv.validateRefreshClaims(refreshToken)
	if err != nil {
		return nil, err
	}

	// Second predicate: it must byte-equal the single stored value for
	// its subject. A stale, signature-valid token fails here.
	if err := srv.matchesStored(ctx, claims.UserID, refreshToken); err != nil {
		return nil, err
	}

	user, err := srv.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Error("Refresh token subject no longer exists", slog.Int64("userID", claims.UserID))

			return nil, errors.Wrap(domainerrors.ErrPrincipalNotFound, "reissue failed")
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	// Overwriting the store entry is what invalidates the old token.
	output, err := srv.issueTokenPair(ctx, user)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Debug("Token pair rotated", slog.Int64("userID", user.ID))

	return output, nil
}

// Logout deletes the stored refresh token for the presented token's subject.
func (srv *authService) Logout(ctx context.Context, refreshToken string) error {
	claims, err := srv.validateRefreshClaims(refreshToken)
	if err != nil {
		return err
	}

	if err := srv.refreshStore.Delete(ctx, claims.UserID); err != nil {
		return errors.Wrap(err, "failed to delete refresh token during logout")
	}

	srv.log(ctx).Debug("User logged out", slog.Int64("userID", claims.UserID))

	return nil
}

// AuthorizationURL returns the consent page URL for the named provider.
func (srv *authService) AuthorizationURL(provider, state string) (string, error) {
	client, err := srv.clientFor(provider)
	if err != nil {
		return "", err
	}

	return client.BuildAuthorizationURL(state), nil
}

// OAuthLogin exchanges the callback code, links or creates the local
// account and mints a token pair.
func (srv *authService) OAuthLogin(ctx context.Context, provider, code string) (*usecase.TokenPairOutput, error) {
	client, err := srv.clientFor(provider)
	if err != nil {
		return nil, err
	}

	oauthUser, err := client.FetchUser(ctx, code)
	if err != nil {
		srv.log(ctx).Warn("Federated login failed", slog.String("provider", provider), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to fetch federated identity")
	}

	user, err := srv.linkOrCreate(ctx, oauthUser)
	if err != nil {
		return nil, err
	}

	output, err := srv.issueTokenPair(ctx, user)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Debug("Federated login succeeded",
		slog.String("provider", provider),
		slog.Int64("userID", user.ID))

	return output, nil
}

// validateRefreshClaims decodes the token and checks it is of refresh type.
func (srv *authService) validateRefreshClaims(refreshToken string) (*service.Claims, error) {
	claims, err := srv.tokenService.Decode(refreshToken)
	if err != nil {
		return nil, err
	}

	if claims.Type != service.TokenTypeRefresh {
		return nil, domainerrors.ErrTokenInvalid.WrapMessage("token is not a refresh token")
	}

	return claims, nil
}

// matchesStored checks the presented token against the stored one. Absent
// and mismatched entries are indistinguishable to the caller; both force
// re-authentication.
func (srv *authService) matchesStored(ctx context.Context, userID int64, presented string) error {
	stored, err := srv.refreshStore.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrRefreshTokenNotFound) {
			return errors.Wrap(domainerrors.ErrSessionNotFound, "no stored refresh token")
		}

		return errors.Wrap(err, "failed to load stored refresh token")
	}

	if stored != presented {
		return errors.Wrap(domainerrors.ErrSessionNotFound, "presented refresh token superseded")
	}

	return nil
}

// issueTokenPair mints an access/refresh pair and stores the refresh token
// under its subject, replacing any previous entry. The store write must
// succeed before tokens are handed out.
func (srv *authService) issueTokenPair(ctx context.Context, user *entity.User) (*usecase.TokenPairOutput, error) {
	accessToken, err := srv.tokenService.IssueAccessToken(user.ID, user.Role)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue access token")
	}

	refreshToken, err := srv.tokenService.IssueRefreshToken(user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue refresh token")
	}

	if err := srv.refreshStore.Save(ctx, user.ID, refreshToken, srv.tokenService.RefreshTokenTTL()); err != nil {
		return nil, errors.Wrap(err, "failed to store refresh token")
	}

	return &usecase.TokenPairOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

// clientFor resolves a provider name against the configured allow-list.
func (srv *authService) clientFor(provider string) (service.OAuthClient, error) {
	authType, err := oauth.ParseProvider(provider)
	if err != nil {
		return nil, err
	}

	client, ok := srv.oauthClients[authType]
	if !ok {
		return nil, domainerrors.ErrUnsupportedProvider.WrapMessage("provider not configured: " + provider)
	}

	return client, nil
}

// linkOrCreate finds the account for the federated identity or creates
// one. Find and create run in one transaction so a repeated callback does
// not race itself into two accounts.
func (srv *authService) linkOrCreate(ctx context.Context, oauthUser *service.OAuthUser) (*entity.User, error) {
	var linked *entity.User

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		existing, err := userRepo.FindByAuthTypeAndProviderID(ctx, oauthUser.Provider, oauthUser.ProviderID)
		if err == nil {
			// Repeat login: return the account unchanged, no attribute sync.
			linked = existing

			return nil
		}
		if !errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(err, "failed to find user by provider identity")
		}

		newUser := &entity.User{
			Email:      oauthUser.Email,
			Name:       oauthUser.Name,
			Role:       entity.RoleUser,
			AuthType:   oauthUser.Provider,
			ProviderID: oauthUser.ProviderID,
		}
		if newUser.Name == "" {
			newUser.Name = fallbackDisplayName(oauthUser)
		}

		if err := userRepo.Create(ctx, newUser); err != nil {
			return errors.Wrap(err, "failed to create federated user")
		}

		linked = newUser

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute federated link transaction")
	}

	return linked, nil
}

func fallbackDisplayName(oauthUser *service.OAuthUser) string {
	return fmt.Sprintf("%s_user_%s", strings.ToLower(oauthUser.Provider.String()), oauthUser.ProviderID)
}
