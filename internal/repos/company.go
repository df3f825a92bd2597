package repos

import (
	"context"

	"github.com/google/uuid"

	"github.com/tecsup/autobody-backend/internal/gateway"
	"github.com/tecsup/autobody-backend/internal/logger"
	"github.com/tecsup/autobody-backend/internal/types"
)

type CompanyRepo interface {
	ListGlobal(ctx context.Context, tx gateway.DataGateway) ([]*types.Company, error)
	// FindGlobalByName returns nil (no error) when the name is absent; the
	// global pool is name-keyed and the caller decides whether absence is a
	// problem.
	FindGlobalByName(ctx context.Context, tx gateway.DataGateway, name string) (*types.Company, error)
	CreateGlobal(ctx context.Context, tx gateway.DataGateway, name string) (*types.Company, error)
	UpdateGlobal(ctx context.Context, tx gateway.DataGateway, companyID string, newName string) error
	DeleteGlobal(ctx context.Context, tx gateway.DataGateway, companyID string) error

	ListPersonal(ctx context.Context, tx gateway.DataGateway, userID string) ([]*types.PersonalCompany, error)
	CreatePersonal(ctx context.Context, tx gateway.DataGateway, userID, name string) (*types.PersonalCompany, error)
	DeletePersonal(ctx context.Context, tx gateway.DataGateway, userID, entryID string) error
}

type companyRepo struct {
	gw  gateway.DataGateway
	log *logger.Logger
}

func NewCompanyRepo(gw gateway.DataGateway, baseLog *logger.Logger) CompanyRepo {
	repoLog := baseLog.With("repo", "CompanyRepo")
	return &companyRepo{gw: gw, log: repoLog}
}

func (cr *companyRepo) gateway(tx gateway.DataGateway) gateway.DataGateway {
	if tx != nil {
		return tx
	}
	return cr.gw
}

func (cr *companyRepo) ListGlobal(ctx context.Context, tx gateway.DataGateway) ([]*types.Company, error) {
	docs, err := cr.gateway(tx).QueryCollection(ctx, "companies", nil)
	if err != nil {
		return nil, err
	}
	out := make([]*types.Company, 0, len(docs))
	for _, doc := range docs {
		out = append(out, types.CompanyFromDocument(doc))
	}
	return out, nil
}

func (cr *companyRepo) FindGlobalByName(ctx context.Context, tx gateway.DataGateway, name string) (*types.Company, error) {
	docs, err := cr.gateway(tx).QueryCollection(ctx, "companies", map[string]string{"name": name})
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, nil
	}
	return types.CompanyFromDocument(docs[0]), nil
}

func (cr *companyRepo) CreateGlobal(ctx context.Context, tx gateway.DataGateway, name string) (*types.Company, error) {
	company := &types.Company{ID: uuid.NewString(), Name: name}
	if err := cr.gateway(tx).SetDocument(ctx, types.CompanyPath(company.ID), company.ToFields()); err != nil {
		return nil, err
	}
	return company, nil
}

func (cr *companyRepo) UpdateGlobal(ctx context.Context, tx gateway.DataGateway, companyID string, newName string) error {
	return cr.gateway(tx).UpdateDocument(ctx, types.CompanyPath(companyID), map[string]any{"name": newName})
}

func (cr *companyRepo) DeleteGlobal(ctx context.Context, tx gateway.DataGateway, companyID string) error {
	return cr.gateway(tx).DeleteDocument(ctx, types.CompanyPath(companyID))
}

func (cr *companyRepo) ListPersonal(ctx context.Context, tx gateway.DataGateway, userID string) ([]*types.PersonalCompany, error) {
	docs, err := cr.gateway(tx).QueryCollection(ctx, types.PersonalCompanyCollection(userID), nil)
	if err != nil {
		return nil, err
	}
	out := make([]*types.PersonalCompany, 0, len(docs))
	for _, doc := range docs {
		out = append(out, types.PersonalCompanyFromDocument(doc))
	}
	return out, nil
}

func (cr *companyRepo) CreatePersonal(ctx context.Context, tx gateway.DataGateway, userID, name string) (*types.PersonalCompany, error) {
	entry := &types.PersonalCompany{ID: uuid.NewString(), UserID: userID, Name: name}
	if err := cr.gateway(tx).SetDocument(ctx, types.PersonalCompanyPath(userID, entry.ID), entry.ToFields()); err != nil {
		return nil, err
	}
	return entry, nil
}

func (cr *companyRepo) DeletePersonal(ctx context.Context, tx gateway.DataGateway, userID, entryID string) error {
	return cr.gateway(tx).DeleteDocument(ctx, types.PersonalCompanyPath(userID, entryID))
}
