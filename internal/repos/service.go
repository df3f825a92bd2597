package repos

import (
	"context"

	"github.com/google/uuid"

	"github.com/tecsup/autobody-backend/internal/gateway"
	"github.com/tecsup/autobody-backend/internal/logger"
	"github.com/tecsup/autobody-backend/internal/types"
)

type ServiceRepo interface {
	Create(ctx context.Context, tx gateway.DataGateway, userID string, service *types.Service) (*types.Service, error)
	Update(ctx context.Context, tx gateway.DataGateway, userID, serviceID string, partial map[string]any) error
	Delete(ctx context.Context, tx gateway.DataGateway, userID, serviceID string) error
	GetByID(ctx context.Context, tx gateway.DataGateway, userID, serviceID string) (*types.Service, error)
	ListByUser(ctx context.Context, tx gateway.DataGateway, userID string) ([]*types.Service, error)
	// ListAllDocuments returns every service document across all users with
	// its storage path intact; the admin aggregator resolves owners from the
	// paths.
	ListAllDocuments(ctx context.Context, tx gateway.DataGateway) ([]types.Document, error)
}

type serviceRepo struct {
	gw  gateway.DataGateway
	log *logger.Logger
}

func NewServiceRepo(gw gateway.DataGateway, baseLog *logger.Logger) ServiceRepo {
	repoLog := baseLog.With("repo", "ServiceRepo")
	return &serviceRepo{gw: gw, log: repoLog}
}

func (sr *serviceRepo) gateway(tx gateway.DataGateway) gateway.DataGateway {
	if tx != nil {
		return tx
	}
	return sr.gw
}

func (sr *serviceRepo) Create(ctx context.Context, tx gateway.DataGateway, userID string, service *types.Service) (*types.Service, error) {
	if service.ID == "" {
		service.ID = uuid.NewString()
	}
	service.UserID = userID
	if err := sr.gateway(tx).SetDocument(ctx, types.ServicePath(userID, service.ID), service.ToFields()); err != nil {
		return nil, err
	}
	return service, nil
}

func (sr *serviceRepo) Update(ctx context.Context, tx gateway.DataGateway, userID, serviceID string, partial map[string]any) error {
	return sr.gateway(tx).UpdateDocument(ctx, types.ServicePath(userID, serviceID), partial)
}

func (sr *serviceRepo) Delete(ctx context.Context, tx gateway.DataGateway, userID, serviceID string) error {
	return sr.gateway(tx).DeleteDocument(ctx, types.ServicePath(userID, serviceID))
}

func (sr *serviceRepo) GetByID(ctx context.Context, tx gateway.DataGateway, userID, serviceID string) (*types.Service, error) {
	doc, err := sr.gateway(tx).GetDocument(ctx, types.ServicePath(userID, serviceID))
	if err != nil {
		return nil, err
	}
	return types.ServiceFromDocument(doc), nil
}

func (sr *serviceRepo) ListByUser(ctx context.Context, tx gateway.DataGateway, userID string) ([]*types.Service, error) {
	docs, err := sr.gateway(tx).QueryCollection(ctx, types.ServiceCollection(userID), nil)
	if err != nil {
		return nil, err
	}
	out := make([]*types.Service, 0, len(docs))
	for _, doc := range docs {
		out = append(out, types.ServiceFromDocument(doc))
	}
	return out, nil
}

func (sr *serviceRepo) ListAllDocuments(ctx context.Context, tx gateway.DataGateway) ([]types.Document, error) {
	return sr.gateway(tx).QueryCollectionGroup(ctx, "services", nil)
}
