package services

import (
	"context"

	"github.com/tecsup/autobody-backend/internal/faults"
	"github.com/tecsup/autobody-backend/internal/logger"
	"github.com/tecsup/autobody-backend/internal/repos"
	"github.com/tecsup/autobody-backend/internal/requestdata"
	"github.com/tecsup/autobody-backend/internal/types"
)

type UserService interface {
	GetMe(ctx context.Context) (*types.User, error)
	// DisplayName never fails: when the profile cannot be read it falls back
	// to the generic greeting name.
	DisplayName(ctx context.Context) string
}

type userService struct {
	log      *logger.Logger
	userRepo repos.UserRepo
}

func NewUserService(log *logger.Logger, userRepo repos.UserRepo) UserService {
	serviceLog := log.With("service", "UserService")
	return &userService{log: serviceLog, userRepo: userRepo}
}

func (us *userService) GetMe(ctx context.Context) (*types.User, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == "" {
		return nil, faults.AuthError("no session user", nil)
	}
	return us.userRepo.GetByID(ctx, nil, rd.UserID)
}

func (us *userService) DisplayName(ctx context.Context) string {
	user, err := us.GetMe(ctx)
	if err != nil || user == nil || user.Name == "" {
		return "Usuario"
	}
	return user.Name
}
