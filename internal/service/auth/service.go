package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"todoapi/internal/apperr"
	"todoapi/internal/model"
	"todoapi/internal/notify"
	"todoapi/internal/store"
	"todoapi/internal/util"
)

const minPasswordLength = 6

// genericResetMessage is returned for every forgot-password request so
// responses never reveal whether an account exists.
const genericResetMessage = "If an account with that email exists, a reset link has been sent."

type Service struct {
	users        *store.UserStore
	notifier     notify.Notifier
	logger       *zap.Logger
	jwtSecret    string
	tokenTTL     time.Duration
	resetCodeTTL time.Duration
}

func NewService(users *store.UserStore, notifier notify.Notifier, logger *zap.Logger, jwtSecret string, tokenTTL, resetCodeTTL time.Duration) *Service {
	return &Service{
		users:        users,
		notifier:     notifier,
		logger:       logger,
		jwtSecret:    jwtSecret,
		tokenTTL:     tokenTTL,
		resetCodeTTL: resetCodeTTL,
	}
}

// Register creates a new user and returns its public view plus a
// session token.
func (s *Service) Register(ctx context.Context, req model.RegisterRequest) (*model.AuthResult, error) {
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return nil, apperr.Validation("Username, email, and password are required")
	}
	if len(req.Password) < minPasswordLength {
		return nil, apperr.Validation("Password must be at least 6 characters long")
	}

	hash, err := util.HashPassword(req.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	u, err := s.users.Create(username, email, hash)
	if err != nil {
		return nil, err
	}

	token, err := s.issueToken(&u)
	if err != nil {
		return nil, err
	}

	s.logger.Info("New user registered", zap.String("username", u.Username))

	return &model.AuthResult{User: u.Public(), Token: token}, nil
}

// Login checks credentials and returns the user plus a session token.
// Unknown user and wrong password yield the identical error so the
// response never reveals which one was wrong.
func (s *Service) Login(ctx context.Context, req model.LoginRequest) (*model.AuthResult, error) {
	if req.Username == "" || req.Password == "" {
		return nil, apperr.Validation("Username and password are required")
	}

	u, ok := s.users.FindByUsernameOrEmail(req.Username)
	if !ok || !util.CheckPassword(req.Password, u.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid credentials")
	}

	token, err := s.issueToken(&u)
	if err != nil {
		return nil, err
	}

	s.logger.Info("User logged in", zap.String("username", u.Username))

	return &model.AuthResult{User: u.Public(), Token: token}, nil
}

// RequestPasswordReset issues a reset code for the account, when one
// exists, and hands it to the notifier. The returned message and the
// devCode (empty unless the caller runs in development mode) are the
// same whether or not the email matched.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) (message, devCode string, err error) {
	if email == "" {
		return "", "", apperr.Validation("Email is required")
	}

	u, ok := s.users.FindByEmail(email)
	if !ok {
		return genericResetMessage, "", nil
	}

	code, err := util.GenerateResetCode()
	if err != nil {
		return "", "", apperr.Internal(err)
	}

	expires := time.Now().Add(s.resetCodeTTL)
	if !s.users.SetResetCode(u.ID, code, expires) {
		return genericResetMessage, "", nil
	}

	body := fmt.Sprintf("Your password reset code is %s. It expires at %s.", code, expires.UTC().Format(time.RFC3339))
	if err := s.notifier.Send(ctx, u.Email, "Password reset", body); err != nil {
		s.logger.Error("Failed to deliver reset code", zap.String("email", u.Email), zap.Error(err))
	}

	return genericResetMessage, code, nil
}

// ConfirmPasswordReset consumes a reset code and replaces the
// password. A code works at most once and only inside its expiry
// window.
func (s *Service) ConfirmPasswordReset(ctx context.Context, req model.ResetPasswordRequest) error {
	if req.Email == "" || req.Token == "" || req.NewPassword == "" {
		return apperr.Validation("Email, token, and new password are required")
	}
	if len(req.NewPassword) < minPasswordLength {
		return apperr.Validation("Password must be at least 6 characters long")
	}

	u, ok := s.users.FindByEmail(req.Email)
	if !ok {
		return apperr.Unauthorized("Invalid or expired reset token")
	}

	hash, err := util.HashPassword(req.NewPassword)
	if err != nil {
		return apperr.Internal(err)
	}

	// The store re-checks the code under its lock, so a concurrent
	// consume or expiry between the lookup and here still fails.
	if !s.users.ResetPassword(u.ID, req.Token, time.Now(), hash) {
		return apperr.Unauthorized("Invalid or expired reset token")
	}

	s.logger.Info("Password reset successful", zap.String("email", u.Email))

	return nil
}

func (s *Service) issueToken(u *model.User) (string, error) {
	token, err := util.GenerateJWT(util.Identity{UserID: u.ID, Username: u.Username}, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return "", apperr.Internal(err)
	}
	return token, nil
}
