package services

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tecsup/autobody-backend/internal/faults"
	"github.com/tecsup/autobody-backend/internal/gateway"
	"github.com/tecsup/autobody-backend/internal/logger"
	"github.com/tecsup/autobody-backend/internal/normalization"
	"github.com/tecsup/autobody-backend/internal/repos"
	"github.com/tecsup/autobody-backend/internal/requestdata"
	"github.com/tecsup/autobody-backend/internal/tokenstore"
	"github.com/tecsup/autobody-backend/internal/types"
)

type RegisterInput struct {
	Name     string `json:"name"`
	DNI      string `json:"dni"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenPair struct {
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
	User         *types.User `json:"user"`
}

type sessionClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*types.User, error)
	Login(ctx context.Context, input LoginInput) (*TokenPair, error)
	Refresh(ctx context.Context) (*TokenPair, error)
	Logout(ctx context.Context) error
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	AccessTTL() time.Duration
}

type authService struct {
	log        *logger.Logger
	gw         gateway.DataGateway
	userRepo   repos.UserRepo
	validator  Validator
	avatars    AvatarService
	tokens     tokenstore.TokenStore
	jwtSecret  []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewAuthService(
	log *logger.Logger,
	gw gateway.DataGateway,
	userRepo repos.UserRepo,
	validator Validator,
	avatars AvatarService,
	tokens tokenstore.TokenStore,
	jwtSecret string,
	accessTTL, refreshTTL time.Duration,
) AuthService {
	serviceLog := log.With("service", "AuthService")
	return &authService{
		log:        serviceLog,
		gw:         gw,
		userRepo:   userRepo,
		validator:  validator,
		avatars:    avatars,
		tokens:     tokens,
		jwtSecret:  []byte(jwtSecret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (as *authService) AccessTTL() time.Duration { return as.accessTTL }

func (as *authService) Register(ctx context.Context, input RegisterInput) (*types.User, error) {
	email := normalization.ParseInputString(input.Email)
	dni := normalization.TrimInputString(input.DNI)
	name := normalization.TrimInputString(input.Name)
	if email == "" || input.Password == "" {
		return nil, faults.ValidationError("el correo y la contraseña son obligatorios")
	}
	if name == "" {
		return nil, faults.ValidationError("el nombre es obligatorio")
	}

	existing, err := as.userRepo.GetByEmail(ctx, nil, email)
	if err != nil {
		return nil, faults.IndeterminateError("no se pudo verificar el correo", err)
	}
	if existing != nil {
		return nil, faults.ValidationError("el correo ya está registrado")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, faults.WriteError("hash password", err)
	}

	user := &types.User{
		ID:           uuid.NewString(),
		Name:         name,
		DNI:          dni,
		Address:      normalization.TrimInputString(input.Address),
		Phone:        normalization.TrimInputString(input.Phone),
		Email:        email,
		Role:         types.RoleClient,
		PasswordHash: string(hash),
	}

	if as.avatars != nil {
		if err := as.avatars.CreateAndUploadUserAvatar(ctx, user); err != nil {
			// the account is still usable without an avatar
			as.log.Warn("Avatar generation failed, continuing without one", "error", err)
		}
	}

	err = as.gw.RunInTransaction(ctx, func(tx gateway.DataGateway) error {
		if err := as.validator.EnsureDNIUnique(ctx, tx, dni, ""); err != nil {
			return err
		}
		_, err := as.userRepo.Create(ctx, tx, user)
		return err
	})
	if err != nil {
		return nil, err
	}

	as.log.Info("Registered new client", "user_id", user.ID)
	return user, nil
}

func (as *authService) Login(ctx context.Context, input LoginInput) (*TokenPair, error) {
	email := normalization.ParseInputString(input.Email)
	user, err := as.userRepo.GetByEmail(ctx, nil, email)
	if err != nil {
		return nil, faults.AuthError("login failed", err)
	}
	if user == nil {
		return nil, faults.AuthError("invalid credentials", nil)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, faults.AuthError("invalid credentials", err)
	}
	return as.mintSession(ctx, user)
}

func (as *authService) mintSession(ctx context.Context, user *types.User) (*TokenPair, error) {
	now := time.Now()
	claims := sessionClaims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(as.accessTTL)),
		},
	}
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(as.jwtSecret)
	if err != nil {
		return nil, faults.AuthError("sign access token", err)
	}
	refreshToken := uuid.NewString()
	if err := as.tokens.Save(ctx, user.ID, accessToken, refreshToken, as.refreshTTL); err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken, User: user}, nil
}

func (as *authService) Refresh(ctx context.Context) (*TokenPair, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.RefreshToken == "" {
		return nil, faults.AuthError("missing refresh token", nil)
	}
	userID, err := as.tokens.UserIDForRefresh(ctx, rd.RefreshToken)
	if err != nil {
		return nil, err
	}
	user, err := as.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		return nil, faults.AuthError("session user no longer exists", err)
	}

	// rotate the pair so a leaked refresh token stops working after one use
	if rd.TokenString != "" {
		if err := as.tokens.Revoke(ctx, rd.TokenString, rd.RefreshToken); err != nil {
			as.log.Warn("Failed to revoke rotated session", "error", err)
		}
	}
	return as.mintSession(ctx, user)
}

func (as *authService) Logout(ctx context.Context) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.TokenString == "" {
		return faults.AuthError("no active session", nil)
	}
	refreshToken := rd.RefreshToken
	if refreshToken == "" {
		stored, err := as.tokens.RefreshForAccess(ctx, rd.TokenString)
		if err == nil {
			refreshToken = stored
		}
	}
	return as.tokens.Revoke(ctx, rd.TokenString, refreshToken)
}

// SetContextFromToken verifies the bearer token and attaches the session's
// user id and role to the context for the handlers downstream.
func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, faults.AuthError("unexpected signing method", nil)
		}
		return as.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return ctx, faults.AuthError("invalid token", err)
	}
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		rd = &requestdata.RequestData{}
		ctx = requestdata.WithRequestData(ctx, rd)
	}
	rd.TokenString = tokenString
	rd.UserID = claims.Subject
	rd.Role = claims.Role
	return ctx, nil
}
