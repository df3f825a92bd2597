package services

import (
	"context"

	"github.com/tecsup/autobody-backend/internal/faults"
	"github.com/tecsup/autobody-backend/internal/gateway"
	"github.com/tecsup/autobody-backend/internal/logger"
	"github.com/tecsup/autobody-backend/internal/normalization"
	"github.com/tecsup/autobody-backend/internal/repos"
	"github.com/tecsup/autobody-backend/internal/types"
)

// CompanyService keeps the shared company pool deduplicated by name while
// each user maintains their own personal list of references into it.
type CompanyService interface {
	AddPersonal(ctx context.Context, userID, name string) (*types.PersonalCompany, error)
	ListGlobal(ctx context.Context) ([]*types.Company, error)
	ListPersonal(ctx context.Context, userID string) ([]*types.PersonalCompany, error)
	UpdateGlobal(ctx context.Context, oldName, newName string) error
	DeleteGlobal(ctx context.Context, name string) error
	DeletePersonal(ctx context.Context, userID, entryID string) error
}

type companyService struct {
	log         *logger.Logger
	gw          gateway.DataGateway
	companyRepo repos.CompanyRepo
}

func NewCompanyService(log *logger.Logger, gw gateway.DataGateway, companyRepo repos.CompanyRepo) CompanyService {
	serviceLog := log.With("service", "CompanyService")
	return &companyService{log: serviceLog, gw: gw, companyRepo: companyRepo}
}

func (cs *companyService) AddPersonal(ctx context.Context, userID, name string) (*types.PersonalCompany, error) {
	name = normalization.TrimInputString(name)
	if name == "" {
		return nil, faults.ValidationError("el nombre de la empresa es obligatorio")
	}

	var entry *types.PersonalCompany
	err := cs.gw.RunInTransaction(ctx, func(tx gateway.DataGateway) error {
		existing, err := cs.companyRepo.FindGlobalByName(ctx, tx, name)
		if err != nil {
			return err
		}
		if existing == nil {
			if _, err := cs.companyRepo.CreateGlobal(ctx, tx, name); err != nil {
				return err
			}
		}
		entry, err = cs.companyRepo.CreatePersonal(ctx, tx, userID, name)
		return err
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (cs *companyService) ListGlobal(ctx context.Context) ([]*types.Company, error) {
	return cs.companyRepo.ListGlobal(ctx, nil)
}

func (cs *companyService) ListPersonal(ctx context.Context, userID string) ([]*types.PersonalCompany, error) {
	return cs.companyRepo.ListPersonal(ctx, nil, userID)
}

func (cs *companyService) UpdateGlobal(ctx context.Context, oldName, newName string) error {
	oldName = normalization.TrimInputString(oldName)
	newName = normalization.TrimInputString(newName)
	if newName == "" {
		return faults.ValidationError("el nuevo nombre es obligatorio")
	}
	return cs.gw.RunInTransaction(ctx, func(tx gateway.DataGateway) error {
		company, err := cs.companyRepo.FindGlobalByName(ctx, tx, oldName)
		if err != nil {
			return err
		}
		if company == nil {
			return faults.NotFoundError("empresa no encontrada: " + oldName)
		}
		return cs.companyRepo.UpdateGlobal(ctx, tx, company.ID, newName)
	})
}

func (cs *companyService) DeleteGlobal(ctx context.Context, name string) error {
	name = normalization.TrimInputString(name)
	return cs.gw.RunInTransaction(ctx, func(tx gateway.DataGateway) error {
		company, err := cs.companyRepo.FindGlobalByName(ctx, tx, name)
		if err != nil {
			return err
		}
		if company == nil {
			return faults.NotFoundError("empresa no encontrada: " + name)
		}
		return cs.companyRepo.DeleteGlobal(ctx, tx, company.ID)
	})
}

func (cs *companyService) DeletePersonal(ctx context.Context, userID, entryID string) error {
	return cs.companyRepo.DeletePersonal(ctx, nil, userID, entryID)
}
