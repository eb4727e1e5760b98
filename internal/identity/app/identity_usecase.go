package app

import (
	"context"
	"time"

	"drift_chronicles_service/internal/identity/domain"
	"drift_chronicles_service/internal/identity/repository"
	"drift_chronicles_service/pkg/database"
	"drift_chronicles_service/pkg/encrypt"
	errprocess "drift_chronicles_service/pkg/err"
	"drift_chronicles_service/pkg/logger"
	token "drift_chronicles_service/pkg/token"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProfileInitializer consumer-side contract for ensuring the subject's
// profile document exists on first authentication
type ProfileInitializer interface {
	EnsureProfile(ctx context.Context, uid, email string, anonymous bool) error
}

// SessionEnder consumer-side contract for dropping per-session browsing
// state on logout
type SessionEnder interface {
	EndSession(userID string)
}

// IdentityUseCase definition subject issuance and session handling
type IdentityUseCase interface {
	// EnterVoid issue a fresh anonymous identity, no credentials
	EnterVoid(ctx context.Context) (string, error)
	// Register create a credentialed account
	Register(ctx context.Context, email, password string) error
	// Login authenticate and issue a session token
	Login(ctx context.Context, email, password string) (string, error)
	// Logout end the session and forget browsing state
	Logout(ctx context.Context, t string) error
	// CheckSessionTimeout whether the session behind t has expired
	CheckSessionTimeout(ctx context.Context, t string) (bool, error)
}

type identityUseCase struct {
	accounts   repository.AccountRepository
	profiles   ProfileInitializer
	sessions   database.RedisRepository[domain.Session]
	matchmaker SessionEnder
	sessionTTL time.Duration
}

// NewIdentityUseCase create a IdentityUseCase
func NewIdentityUseCase(accounts repository.AccountRepository,
	profiles ProfileInitializer,
	sessions database.RedisRepository[domain.Session],
	matchmaker SessionEnder,
	sessionTTL time.Duration,
) IdentityUseCase {
	return &identityUseCase{
		accounts:   accounts,
		profiles:   profiles,
		sessions:   sessions,
		matchmaker: matchmaker,
		sessionTTL: sessionTTL,
	}
}

// EnterVoid anonymous identities live only as a profile and a session,
// nothing lands in the account table.
func (u *identityUseCase) EnterVoid(ctx context.Context) (string, error) {
	subjectID := uuid.New().String()

	if err := u.profiles.EnsureProfile(ctx, subjectID, "", true); err != nil {
		return "", err
	}

	t, err := token.GenerateJWTWrapper(subjectID, token.ModeAnonymous)
	if err != nil {
		return "", errprocess.Wrap(errprocess.KindStorage, "failed to issue token", err)
	}

	u.storeSession(ctx, t, subjectID, token.ModeAnonymous)
	return t, nil
}

func (u *identityUseCase) Register(ctx context.Context, email, password string) error {
	if _, err := u.accounts.FindByAccount(ctx, &domain.AccountQuery{Email: &email}); err == nil {
		return errprocess.New(errprocess.KindValidation, "email already exists")
	}

	if err := encrypt.ValidatePasswordStrength(password); err != nil {
		return errprocess.Wrap(errprocess.KindValidation, "password rejected", err)
	}

	pw, err := encrypt.HashPassword(password)
	if err != nil {
		return errprocess.Wrap(errprocess.KindStorage, "failed to hash password", err)
	}

	account := domain.Account{
		SubjectID: uuid.New().String(),
		Email:     email,
		Password:  pw,
	}

	logger.Log.Info("usecase Register", zap.String("email", email))

	if err := u.accounts.CreateAccount(ctx, &account); err != nil {
		return err
	}

	return u.profiles.EnsureProfile(ctx, account.SubjectID, account.Email, false)
}

func (u *identityUseCase) Login(ctx context.Context, email, password string) (string, error) {
	account, err := u.accounts.FindByAccount(ctx, &domain.AccountQuery{Email: &email})
	if err != nil {
		logger.Log.Error("login email not found")
		return "", errprocess.New(errprocess.KindNotFound, "user not found")
	}

	if err := encrypt.CheckPassword(account.Password, password); err != nil {
		logger.Log.Error("login password mismatch")
		return "", errprocess.New(errprocess.KindPermission, "invalid credentials")
	}

	t, err := token.GenerateJWTWrapper(account.SubjectID, token.ModeCredentialed)
	if err != nil {
		return "", errprocess.Wrap(errprocess.KindStorage, "failed to issue token", err)
	}

	if err := u.profiles.EnsureProfile(ctx, account.SubjectID, account.Email, false); err != nil {
		return "", err
	}

	u.storeSession(ctx, t, account.SubjectID, token.ModeCredentialed)
	return t, nil
}

func (u *identityUseCase) Logout(ctx context.Context, t string) error {
	claims, err := token.ParseJWTWrapper(t)
	if err != nil {
		logger.Log.Error("logout err", zap.String("err", err.Error()))
		return errprocess.Wrap(errprocess.KindPermission, "invalid token", err)
	}

	if err := u.sessions.Del(ctx, claims.SubjectID); err != nil {
		logger.Log.Errorf("logout session delete failed", err)
	}
	// the browsing session dies with the identity session
	u.matchmaker.EndSession(claims.SubjectID)
	return nil
}

func (u *identityUseCase) CheckSessionTimeout(ctx context.Context, t string) (bool, error) {
	claims, err := token.ParseJWTWrapper(t)
	if err != nil {
		return true, errprocess.Wrap(errprocess.KindPermission, "invalid token", err)
	}

	ttl, err := u.sessions.GetTTL(ctx, claims.SubjectID)
	if err != nil {
		return true, err
	}
	return ttl <= 0, nil
}

func (u *identityUseCase) storeSession(ctx context.Context, t, subjectID string, mode token.IssuanceMode) {
	now := time.Now().UTC()
	session := domain.Session{
		Token:        t,
		SubjectID:    subjectID,
		Mode:         string(mode),
		CreatedAt:    now,
		LastActivity: now,
		ExpiredAt:    now.Add(u.sessionTTL),
	}
	if err := u.sessions.Set(ctx, subjectID, session, u.sessionTTL); err != nil {
		logger.Log.Errorf("store session failed", err)
	}
}
