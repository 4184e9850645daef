package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"todoapi/internal/apperr"
	"todoapi/internal/model"
	"todoapi/internal/notify"
	"todoapi/internal/store"
	"todoapi/internal/util"
)

// capturingNotifier records every message instead of delivering it.
type capturingNotifier struct {
	destinations []string
	bodies       []string
}

func (n *capturingNotifier) Send(ctx context.Context, destination, subject, body string) error {
	n.destinations = append(n.destinations, destination)
	n.bodies = append(n.bodies, body)
	return nil
}

var _ notify.Notifier = (*capturingNotifier)(nil)

func newTestService(resetTTL time.Duration) (*Service, *capturingNotifier) {
	notifier := &capturingNotifier{}
	users := store.NewUserStore()
	svc := NewService(users, notifier, zap.NewNop(), "test-secret", time.Hour, resetTTL)
	return svc, notifier
}

func register(t *testing.T, svc *Service, username, email, password string) *model.AuthResult {
	t.Helper()
	result, err := svc.Register(context.Background(), model.RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
	})
	if err != nil {
		t.Fatalf("Register(%s): %v", username, err)
	}
	return result
}

func TestRegisterReturnsUsableToken(t *testing.T) {
	svc, _ := newTestService(15 * time.Minute)

	result := register(t, svc, "alice", "alice@example.com", "password123")
	if result.User.Username != "alice" || result.User.Email != "alice@example.com" {
		t.Errorf("public user = %+v", result.User)
	}

	id, err := util.ParseJWT(result.Token, "test-secret")
	if err != nil {
		t.Fatalf("token does not verify: %v", err)
	}
	if id.UserID != result.User.ID || id.Username != "alice" {
		t.Errorf("token identity = %+v, want user %d", id, result.User.ID)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newTestService(15 * time.Minute)

	cases := []struct {
		name string
		req  model.RegisterRequest
	}{
		{"missing username", model.RegisterRequest{Email: "a@b.com", Password: "password123"}},
		{"missing email", model.RegisterRequest{Username: "a", Password: "password123"}},
		{"missing password", model.RegisterRequest{Username: "a", Email: "a@b.com"}},
		{"short password", model.RegisterRequest{Username: "a", Email: "a@b.com", Password: "12345"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := svc.Register(context.Background(), c.req); !apperr.IsKind(err, apperr.KindValidation) {
				t.Errorf("got %v, want validation error", err)
			}
		})
	}
}

func TestRegisterConflicts(t *testing.T) {
	svc, _ := newTestService(15 * time.Minute)
	register(t, svc, "alice", "alice@example.com", "password123")

	_, err := svc.Register(context.Background(), model.RegisterRequest{
		Username: "alice", Email: "new@example.com", Password: "password123",
	})
	if !apperr.IsKind(err, apperr.KindConflict) {
		t.Errorf("duplicate username: got %v, want conflict", err)
	}

	// email comparison is case-insensitive
	_, err = svc.Register(context.Background(), model.RegisterRequest{
		Username: "alice2", Email: "ALICE@EXAMPLE.COM", Password: "password123",
	})
	if !apperr.IsKind(err, apperr.KindConflict) {
		t.Errorf("duplicate email: got %v, want conflict", err)
	}
}

func TestLogin(t *testing.T) {
	svc, _ := newTestService(15 * time.Minute)
	register(t, svc, "alice", "alice@example.com", "password123")

	// by username
	if _, err := svc.Login(context.Background(), model.LoginRequest{Username: "alice", Password: "password123"}); err != nil {
		t.Errorf("login by username: %v", err)
	}
	// by email
	if _, err := svc.Login(context.Background(), model.LoginRequest{Username: "alice@example.com", Password: "password123"}); err != nil {
		t.Errorf("login by email: %v", err)
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc, _ := newTestService(15 * time.Minute)
	register(t, svc, "alice", "alice@example.com", "password123")

	_, errWrongPassword := svc.Login(context.Background(), model.LoginRequest{Username: "alice", Password: "wrong"})
	_, errNoUser := svc.Login(context.Background(), model.LoginRequest{Username: "nobody", Password: "password123"})

	if errWrongPassword == nil || errNoUser == nil {
		t.Fatal("expected both logins to fail")
	}
	if errWrongPassword.Error() != errNoUser.Error() {
		t.Errorf("error messages differ: %q vs %q", errWrongPassword, errNoUser)
	}
	if !apperr.IsKind(errWrongPassword, apperr.KindUnauthorized) {
		t.Errorf("got %v, want auth error", errWrongPassword)
	}
}

func TestPasswordResetFlow(t *testing.T) {
	svc, notifier := newTestService(15 * time.Minute)
	register(t, svc, "alice", "alice@example.com", "password123")

	message, code, err := svc.RequestPasswordReset(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("RequestPasswordReset: %v", err)
	}
	if code == "" {
		t.Fatal("no code issued for existing account")
	}
	if len(notifier.destinations) != 1 || notifier.destinations[0] != "alice@example.com" {
		t.Errorf("notifier destinations = %v", notifier.destinations)
	}
	if !strings.Contains(notifier.bodies[0], code) {
		t.Error("notification body does not contain the code")
	}

	// unknown email gets the identical generic message and no delivery
	unknownMsg, unknownCode, err := svc.RequestPasswordReset(context.Background(), "ghost@example.com")
	if err != nil {
		t.Fatalf("RequestPasswordReset(unknown): %v", err)
	}
	if unknownCode != "" {
		t.Error("code issued for unknown email")
	}
	if unknownMsg != message {
		t.Errorf("messages differ: %q vs %q", unknownMsg, message)
	}
	if len(notifier.destinations) != 1 {
		t.Error("notification sent for unknown email")
	}

	err = svc.ConfirmPasswordReset(context.Background(), model.ResetPasswordRequest{
		Email: "alice@example.com", Token: code, NewPassword: "newpassword",
	})
	if err != nil {
		t.Fatalf("ConfirmPasswordReset: %v", err)
	}

	// old password dead, new one works
	if _, err := svc.Login(context.Background(), model.LoginRequest{Username: "alice", Password: "password123"}); err == nil {
		t.Error("old password still accepted")
	}
	if _, err := svc.Login(context.Background(), model.LoginRequest{Username: "alice", Password: "newpassword"}); err != nil {
		t.Errorf("new password rejected: %v", err)
	}

	// consumed code cannot be reused
	err = svc.ConfirmPasswordReset(context.Background(), model.ResetPasswordRequest{
		Email: "alice@example.com", Token: code, NewPassword: "thirdpassword",
	})
	if !apperr.IsKind(err, apperr.KindUnauthorized) {
		t.Errorf("reused code: got %v, want auth error", err)
	}
}

func TestConfirmPasswordResetFailures(t *testing.T) {
	svc, _ := newTestService(15 * time.Minute)
	register(t, svc, "alice", "alice@example.com", "password123")

	_, code, err := svc.RequestPasswordReset(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("RequestPasswordReset: %v", err)
	}

	err = svc.ConfirmPasswordReset(context.Background(), model.ResetPasswordRequest{
		Email: "alice@example.com", Token: code, NewPassword: "short",
	})
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Errorf("short password: got %v, want validation error", err)
	}

	wrongCode := "000000"
	if code == wrongCode {
		wrongCode = "111111"
	}
	err = svc.ConfirmPasswordReset(context.Background(), model.ResetPasswordRequest{
		Email: "alice@example.com", Token: wrongCode, NewPassword: "newpassword",
	})
	if !apperr.IsKind(err, apperr.KindUnauthorized) {
		t.Errorf("wrong code: got %v, want auth error", err)
	}

	err = svc.ConfirmPasswordReset(context.Background(), model.ResetPasswordRequest{
		Email: "ghost@example.com", Token: code, NewPassword: "newpassword",
	})
	if !apperr.IsKind(err, apperr.KindUnauthorized) {
		t.Errorf("unknown email: got %v, want auth error", err)
	}
}

func TestConfirmPasswordResetExpiredCode(t *testing.T) {
	// A negative TTL makes every issued code already expired.
	svc, _ := newTestService(-time.Minute)
	register(t, svc, "alice", "alice@example.com", "password123")

	_, code, err := svc.RequestPasswordReset(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("RequestPasswordReset: %v", err)
	}

	err = svc.ConfirmPasswordReset(context.Background(), model.ResetPasswordRequest{
		Email: "alice@example.com", Token: code, NewPassword: "newpassword",
	})
	if !apperr.IsKind(err, apperr.KindUnauthorized) {
		t.Errorf("expired code: got %v, want auth error", err)
	}
}
