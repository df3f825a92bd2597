package repos

import (
	"context"

	"github.com/google/uuid"

	"github.com/tecsup/autobody-backend/internal/gateway"
	"github.com/tecsup/autobody-backend/internal/logger"
	"github.com/tecsup/autobody-backend/internal/types"
)

type UserRepo interface {
	Create(ctx context.Context, tx gateway.DataGateway, user *types.User) (*types.User, error)
	GetByID(ctx context.Context, tx gateway.DataGateway, userID string) (*types.User, error)
	GetByEmail(ctx context.Context, tx gateway.DataGateway, email string) (*types.User, error)
	DNIExists(ctx context.Context, tx gateway.DataGateway, dni, excludeID string) (bool, error)
	Update(ctx context.Context, tx gateway.DataGateway, userID string, partial map[string]any) error
}

type userRepo struct {
	gw  gateway.DataGateway
	log *logger.Logger
}

func NewUserRepo(gw gateway.DataGateway, baseLog *logger.Logger) UserRepo {
	repoLog := baseLog.With("repo", "UserRepo")
	return &userRepo{gw: gw, log: repoLog}
}

func (ur *userRepo) gateway(tx gateway.DataGateway) gateway.DataGateway {
	if tx != nil {
		return tx
	}
	return ur.gw
}

func (ur *userRepo) Create(ctx context.Context, tx gateway.DataGateway, user *types.User) (*types.User, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.Role == "" {
		user.Role = types.RoleClient
	}
	if err := ur.gateway(tx).SetDocument(ctx, types.UserPath(user.ID), user.ToFields()); err != nil {
		return nil, err
	}
	return user, nil
}

func (ur *userRepo) GetByID(ctx context.Context, tx gateway.DataGateway, userID string) (*types.User, error) {
	doc, err := ur.gateway(tx).GetDocument(ctx, types.UserPath(userID))
	if err != nil {
		return nil, err
	}
	return types.UserFromDocument(doc), nil
}

func (ur *userRepo) GetByEmail(ctx context.Context, tx gateway.DataGateway, email string) (*types.User, error) {
	docs, err := ur.gateway(tx).QueryCollection(ctx, "users", map[string]string{"email": email})
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, nil
	}
	return types.UserFromDocument(docs[0]), nil
}

func (ur *userRepo) DNIExists(ctx context.Context, tx gateway.DataGateway, dni, excludeID string) (bool, error) {
	docs, err := ur.gateway(tx).QueryCollection(ctx, "users", map[string]string{"dni": dni})
	if err != nil {
		return false, err
	}
	for _, doc := range docs {
		if doc.ID() != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (ur *userRepo) Update(ctx context.Context, tx gateway.DataGateway, userID string, partial map[string]any) error {
	return ur.gateway(tx).UpdateDocument(ctx, types.UserPath(userID), partial)
}
