package services

import (
	"context"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/tecsup/autobody-backend/internal/faults"
	"github.com/tecsup/autobody-backend/internal/requestdata"
	"github.com/tecsup/autobody-backend/internal/types"
)

func newAuthEnv(t *testing.T) (*testEnv, *fakeTokenStore, *fakeAvatarService, AuthService) {
	t.Helper()
	te := newTestEnv(t)
	tokens := newFakeTokenStore()
	avatars := &fakeAvatarService{}
	svc := NewAuthService(testLogger(t), te.gw, te.userRepo, te.validator, avatars, tokens,
		"test-secret", 15*time.Minute, 24*time.Hour)
	return te, tokens, avatars, svc
}

func registerInput() RegisterInput {
	return RegisterInput{
		Name:     "Ana Quispe",
		DNI:      "11111111",
		Address:  "Av. Siempre Viva 123",
		Phone:    "999888777",
		Email:    "Ana@Example.com",
		Password: "hunter22",
	}
}

func TestRegister(t *testing.T) {
	te, _, avatars, svc := newAuthEnv(t)

	user, err := svc.Register(context.Background(), registerInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Role != types.RoleClient {
		t.Fatalf("new accounts are always cliente, got %q", user.Role)
	}
	if user.Email != "ana@example.com" {
		t.Fatalf("email must be lowercased, got %q", user.Email)
	}
	if avatars.calls != 1 || user.AvatarURL == "" {
		t.Fatalf("avatar must be generated at registration: calls=%d url=%q", avatars.calls, user.AvatarURL)
	}

	stored, err := te.userRepo.GetByID(context.Background(), nil, user.ID)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("hunter22")); err != nil {
		t.Fatalf("stored hash must verify against the password: %v", err)
	}
	if stored.PasswordHash == "hunter22" {
		t.Fatalf("password must never be stored in the clear")
	}
}

func TestRegisterDuplicateDNI(t *testing.T) {
	_, _, _, svc := newAuthEnv(t)
	if _, err := svc.Register(context.Background(), registerInput()); err != nil {
		t.Fatalf("first register: %v", err)
	}

	second := registerInput()
	second.Email = "otra@example.com"
	if _, err := svc.Register(context.Background(), second); !faults.IsValidation(err) {
		t.Fatalf("duplicate dni must be rejected, got %v", err)
	}
}

func TestRegisterSurvivesAvatarFailure(t *testing.T) {
	_, _, avatars, svc := newAuthEnv(t)
	avatars.err = errStoreDown

	user, err := svc.Register(context.Background(), registerInput())
	if err != nil {
		t.Fatalf("registration must not depend on the avatar upload: %v", err)
	}
	if user.AvatarURL != "" {
		t.Fatalf("no avatar url expected after a failed upload, got %q", user.AvatarURL)
	}
}

func TestLogin(t *testing.T) {
	_, tokens, _, svc := newAuthEnv(t)
	registered, err := svc.Register(context.Background(), registerInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	pair, err := svc.Login(context.Background(), LoginInput{Email: "ana@example.com", Password: "hunter22"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("login must mint both tokens: %+v", pair)
	}
	if pair.User.ID != registered.ID {
		t.Fatalf("login user mismatch")
	}
	if tokens.userByRefresh[pair.RefreshToken] != registered.ID {
		t.Fatalf("refresh token must be saved in the session store")
	}

	ctx, err := svc.SetContextFromToken(context.Background(), pair.AccessToken)
	if err != nil {
		t.Fatalf("token should verify: %v", err)
	}
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID != registered.ID || rd.Role != types.RoleClient {
		t.Fatalf("request data not populated: %+v", rd)
	}
}

func TestLoginBadCredentials(t *testing.T) {
	_, _, _, svc := newAuthEnv(t)
	if _, err := svc.Register(context.Background(), registerInput()); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := svc.Login(context.Background(), LoginInput{Email: "ana@example.com", Password: "wrong"}); !faults.IsAuth(err) {
		t.Fatalf("wrong password must be an auth error, got %v", err)
	}
	if _, err := svc.Login(context.Background(), LoginInput{Email: "nadie@example.com", Password: "hunter22"}); !faults.IsAuth(err) {
		t.Fatalf("unknown email must be an auth error, got %v", err)
	}
}

func TestSetContextFromTokenRejectsGarbage(t *testing.T) {
	_, _, _, svc := newAuthEnv(t)
	if _, err := svc.SetContextFromToken(context.Background(), "not-a-jwt"); !faults.IsAuth(err) {
		t.Fatalf("garbage token must be an auth error, got %v", err)
	}
}

func TestRefreshRotatesSession(t *testing.T) {
	_, tokens, _, svc := newAuthEnv(t)
	if _, err := svc.Register(context.Background(), registerInput()); err != nil {
		t.Fatalf("register: %v", err)
	}
	pair, err := svc.Login(context.Background(), LoginInput{Email: "ana@example.com", Password: "hunter22"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	ctx := requestdata.WithRequestData(context.Background(), &requestdata.RequestData{
		TokenString:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
	next, err := svc.Refresh(ctx)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if next.RefreshToken == pair.RefreshToken {
		t.Fatalf("refresh must rotate the refresh token")
	}
	if _, ok := tokens.userByRefresh[pair.RefreshToken]; ok {
		t.Fatalf("old refresh token must be revoked")
	}
}

func TestLogout(t *testing.T) {
	_, tokens, _, svc := newAuthEnv(t)
	if _, err := svc.Register(context.Background(), registerInput()); err != nil {
		t.Fatalf("register: %v", err)
	}
	pair, err := svc.Login(context.Background(), LoginInput{Email: "ana@example.com", Password: "hunter22"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	ctx := requestdata.WithRequestData(context.Background(), &requestdata.RequestData{
		TokenString:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
	if err := svc.Logout(ctx); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, ok := tokens.userByRefresh[pair.RefreshToken]; ok {
		t.Fatalf("logout must revoke the session")
	}

	if err := svc.Logout(context.Background()); !faults.IsAuth(err) {
		t.Fatalf("logout without a session is an auth error, got %v", err)
	}
}
