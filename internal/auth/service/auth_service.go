package service

import (
	"context"
	"errors"
	"net/http"

	"github.com/AlibekovAA/postboard/internal/common/clock"
	commoncrypto "github.com/AlibekovAA/postboard/internal/common/crypto"
	commonerrors "github.com/AlibekovAA/postboard/internal/common/errors"
	"github.com/AlibekovAA/postboard/internal/common/logger"
	"github.com/AlibekovAA/postboard/internal/observability/metrics"
	userdomain "github.com/AlibekovAA/postboard/internal/user/domain"
	userrepo "github.com/AlibekovAA/postboard/internal/user/repository"
)

type AuthService struct {
	repo        userrepo.Repository
	hasher      commoncrypto.PasswordHasher
	idGenerator commoncrypto.IDGenerator
	tokens      *TokenIssuer
	clock       clock.Clock
	log         *logger.Logger
}

type AuthServiceDeps struct {
	Repo        userrepo.Repository
	Hasher      commoncrypto.PasswordHasher
	IDGenerator commoncrypto.IDGenerator
	Tokens      *TokenIssuer
	Clock       clock.Clock
	Log         *logger.Logger
}

func NewAuthService(deps AuthServiceDeps) *AuthService {
	return &AuthService{
		repo:        deps.Repo,
		hasher:      deps.Hasher,
		idGenerator: deps.IDGenerator,
		tokens:      deps.Tokens,
		clock:       deps.Clock,
		log:         deps.Log,
	}
}

type SignupInput struct {
	Email    string
	Username string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthResult struct {
	Token string
	User  userdomain.User
}

func (s *AuthService) Signup(ctx context.Context, input SignupInput) (AuthResult, error) {
	s.log.WithFields(ctx, logger.Fields{
		"email":  input.Email,
		"action": "signup_attempt",
	}).Info("signup attempt")

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "signup_hash_failed",
		}).Errorf("signup failed: password hash error: %v", err)
		return AuthResult{}, newInternalError("HASHING_FAILED", "failed to process credentials", err)
	}

	id, err := s.idGenerator.NewID()
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "signup_id_generation_failed",
		}).Errorf("signup failed: id generation error: %v", err)
		return AuthResult{}, newInternalError("ID_GENERATION_FAILED", "failed to create user", err)
	}

	user := userdomain.User{
		ID:           userdomain.ID(id),
		Email:        input.Email,
		Username:     input.Username,
		PasswordHash: hash,
		CreatedAt:    s.clock.Now(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, userrepo.ErrEmailAlreadyExists) {
			s.log.WithFields(ctx, logger.Fields{
				"email":  input.Email,
				"action": "signup_email_exists",
			}).Warn("signup failed: email already registered")
			metrics.SignupConflictsTotal.Inc()
			return AuthResult{}, ErrEmailTaken
		}
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "signup_create_failed",
		}).Errorf("signup failed: %v", err)
		return AuthResult{}, newInternalError("USER_CREATE_FAILED", "failed to create user", err)
	}

	token, err := s.tokens.IssueAccessToken(user)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":   input.Email,
			"user_id": string(user.ID),
			"action":  "signup_token_issue_failed",
		}).Errorf("signup failed: token issue error: %v", err)
		return AuthResult{}, newInternalError("TOKEN_ISSUE_FAILED", "failed to issue token", err)
	}

	s.log.WithFields(ctx, logger.Fields{
		"email":   user.Email,
		"user_id": string(user.ID),
		"action":  "signup_success",
	}).Info("signup success")

	metrics.SignupsTotal.Inc()

	return AuthResult{Token: token, User: user}, nil
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (AuthResult, error) {
	s.log.WithFields(ctx, logger.Fields{
		"email":  input.Email,
		"action": "login_attempt",
	}).Info("login attempt")

	user, err := s.repo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			s.log.WithFields(ctx, logger.Fields{
				"email":  input.Email,
				"action": "login_user_not_found",
			}).Warn("login failed")
			metrics.LoginFailuresTotal.Inc()
			return AuthResult{}, ErrInvalidCredentials
		}
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "login_fetch_failed",
		}).Errorf("login failed: %v", err)
		return AuthResult{}, newInternalError("USER_FETCH_FAILED", "failed to fetch user", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, input.Password); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "login_invalid_password",
		}).Warn("login failed")
		metrics.LoginFailuresTotal.Inc()
		return AuthResult{}, ErrInvalidCredentials
	}

	token, err := s.tokens.IssueAccessToken(user)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":   input.Email,
			"user_id": string(user.ID),
			"action":  "login_token_issue_failed",
		}).Errorf("login failed: token issue error: %v", err)
		return AuthResult{}, newInternalError("TOKEN_ISSUE_FAILED", "failed to issue token", err)
	}

	s.log.WithFields(ctx, logger.Fields{
		"email":   user.Email,
		"user_id": string(user.ID),
		"action":  "login_success",
	}).Info("login success")

	metrics.LoginsTotal.Inc()

	return AuthResult{Token: token, User: user}, nil
}

// CurrentUser refetches the caller's record; the token carries only the
// subject id, never profile fields.
func (s *AuthService) CurrentUser(ctx context.Context, id userdomain.ID) (userdomain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			return userdomain.User{}, commonerrors.ErrUserNotFound
		}
		return userdomain.User{}, newInternalError("USER_FETCH_FAILED", "failed to fetch user", err)
	}
	return user, nil
}

func newInternalError(code, message string, cause error) commonerrors.DomainError {
	err := commonerrors.NewDomainError(
		code,
		commonerrors.CategoryInternal,
		http.StatusInternalServerError,
		message,
	)
	if cause != nil {
		err = err.WithCause(cause)
	}
	return err
}
