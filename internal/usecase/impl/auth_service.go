// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	"authsvc/internal/domain/entity"
	domainerrors "authsvc/internal/domain/errors"
	"authsvc/internal/domain/repository"
	"authsvc/internal/domain/service"
	"authsvc/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Internal diagnostic codes. They appear in log lines only: the caller-facing
// error for both is INVALID_CREDENTIALS, so failed logins cannot be used to
// probe which usernames exist.
const (
	diagUserNotFound    = "NOT_FOUND"
	diagInvalidPassword = "INVALID_PASSWORD"
)

// authService implements the AuthUsecase interface. It is a stateless
// orchestrator over the credential store, the password hasher and the token
// service; all blocking I/O goes through the injected repository.
type authService struct {
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	publisher    service.EventPublisher
	logger       *slog.Logger
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Publisher    service.EventPublisher
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		publisher:    params.Publisher,
		logger:       params.Logger,
	}
}

// Register creates a new account and issues its first session token.
//
// The username lookup is only a fast path: two concurrent registrations can
// both pass it, so the store's unique index is the authoritative guarantee
// and a create-time uniqueness violation reports the same outcome as a
// failed pre-check.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
	srv.logger.Debug("Starting registration", slog.String("username", input.Username))

	_, err := srv.userRepo.FindByUsername(ctx, input.Username)
	if err == nil {
		srv.logger.Warn("Registration rejected, username taken", slog.String("username", input.Username))

		return nil, errors.Wrap(domainerrors.ErrUserAlreadyExists, "registration failed")
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		srv.logger.Error("Registration lookup failed", slog.String("username", input.Username), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to look up username")
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.logger.Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrRegistrationFailed, "failed to hash password")
	}

	newUser := buildNewUserEntity(input.Username, input.Email, hashedPassword)

	if err := srv.userRepo.Create(ctx, newUser); err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			srv.logger.Warn("Registration lost uniqueness race", slog.String("username", input.Username))

			return nil, errors.Wrap(domainerrors.ErrUserAlreadyExists, "registration failed")
		}
		srv.logger.Error("Failed to create user", slog.String("username", input.Username), slog.Any("error", err))

		// Storage internals stay in the log; the caller sees a generic failure.
		return nil, errors.Wrap(domainerrors.ErrRegistrationFailed, "failed to create user")
	}

	accessToken, err := srv.issueToken(newUser.ID, newUser.Username, newUser.Email)
	if err != nil {
		srv.logger.Error("Failed to issue token after registration", slog.Any("userID", newUser.ID), slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrInternalError, "failed to issue token")
	}

	srv.publishEvent(ctx, service.EventUserRegistered, newUser.ID.String(), newUser.Username)
	srv.logger.Info("User registered", slog.Any("userID", newUser.ID), slog.String("username", newUser.Username))

	return &usecase.AuthOutput{User: newUser.Public(), AccessToken: accessToken}, nil
}

// Login validates credentials and issues a session token. Every failure
// propagates as a structured error; nothing is swallowed.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	srv.logger.Debug("Starting login", slog.String("username", input.Username))

	user, err := srv.userRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.logger.Warn("Login failed", slog.String("username", input.Username), slog.String("diag", diagUserNotFound))

			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
		}
		srv.logger.Error("Login lookup failed", slog.String("username", input.Username), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to look up username")
	}

	// bcrypt comparison is CPU-bound and constant-time over the hash.
	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.logger.Warn("Login failed", slog.String("username", input.Username), slog.String("diag", diagInvalidPassword))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	accessToken, err := srv.issueToken(user.ID, user.Username, user.Email)
	if err != nil {
		srv.logger.Error("Failed to issue token during login", slog.Any("userID", user.ID), slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrInternalError, "failed to issue token")
	}

	srv.publishEvent(ctx, service.EventUserLoggedIn, user.ID.String(), user.Username)
	srv.logger.Info("User logged in", slog.Any("userID", user.ID))

	return &usecase.AuthOutput{User: user.Public(), AccessToken: accessToken}, nil
}

// VerifyAndRefresh validates a session token and re-issues a fresh one with
// the same claims and a new expiry window. The signed claims are trusted as
// of issuance time; the store is not consulted again, so a record changed
// after issuance yields stale claims until the token expires. That staleness
// is an accepted limitation of the design.
func (srv *authService) VerifyAndRefresh(ctx context.Context, input *usecase.VerifyInput) (*usecase.AuthOutput, error) {
	claims, err := srv.tokenService.Verify(input.AccessToken)
	if err != nil {
		srv.logger.Warn("Token verification failed")

		return nil, errors.Wrap(domainerrors.ErrInvalidToken, "verification failed")
	}

	accessToken, err := srv.issueToken(claims.UserID, claims.Username, claims.Email)
	if err != nil {
		srv.logger.Error("Failed to re-issue token", slog.Any("userID", claims.UserID), slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrInternalError, "failed to issue token")
	}

	return &usecase.AuthOutput{
		User: &entity.PublicUser{
			ID:       claims.UserID,
			Username: claims.Username,
			Email:    claims.Email,
		},
		AccessToken: accessToken,
	}, nil
}

func (srv *authService) issueToken(userID uuid.UUID, username, email string) (string, error) {
	return srv.tokenService.Issue(&service.Claims{
		UserID:   userID,
		Username: username,
		Email:    email,
	})
}

// publishEvent emits an auth event best-effort: a queue outage must not fail
// the authentication call.
func (srv *authService) publishEvent(ctx context.Context, eventType, userID, username string) {
	if srv.publisher == nil {
		return
	}

	event := &service.AuthEvent{
		Type:     eventType,
		UserID:   userID,
		Username: username,
	}
	if err := srv.publisher.PublishAuthEvent(ctx, event); err != nil {
		srv.logger.Warn("Failed to publish auth event", slog.String("type", eventType), slog.Any("error", err))
	}
}

func buildNewUserEntity(username, email, passwordHash string) *entity.User {
	return &entity.User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
	}
}
