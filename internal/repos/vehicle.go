package repos

import (
	"context"

	"github.com/google/uuid"

	"github.com/tecsup/autobody-backend/internal/gateway"
	"github.com/tecsup/autobody-backend/internal/logger"
	"github.com/tecsup/autobody-backend/internal/types"
)

type VehicleRepo interface {
	Create(ctx context.Context, tx gateway.DataGateway, userID string, vehicle *types.Vehicle) (*types.Vehicle, error)
	// Update applies a partial-field merge. Full-document replacement is
	// deliberately not offered; every mutation path shares one discipline.
	Update(ctx context.Context, tx gateway.DataGateway, userID, vehicleID string, partial map[string]any) error
	Delete(ctx context.Context, tx gateway.DataGateway, userID, vehicleID string) error
	GetByID(ctx context.Context, tx gateway.DataGateway, userID, vehicleID string) (*types.Vehicle, error)
	ListByUser(ctx context.Context, tx gateway.DataGateway, userID string) ([]*types.Vehicle, error)
	// FindByPlaca searches the whole store across all users.
	FindByPlaca(ctx context.Context, tx gateway.DataGateway, placa string) ([]*types.Vehicle, error)
	FindByPlacaForUser(ctx context.Context, tx gateway.DataGateway, userID, placa string) ([]*types.Vehicle, error)
}

type vehicleRepo struct {
	gw  gateway.DataGateway
	log *logger.Logger
}

func NewVehicleRepo(gw gateway.DataGateway, baseLog *logger.Logger) VehicleRepo {
	repoLog := baseLog.With("repo", "VehicleRepo")
	return &vehicleRepo{gw: gw, log: repoLog}
}

func (vr *vehicleRepo) gateway(tx gateway.DataGateway) gateway.DataGateway {
	if tx != nil {
		return tx
	}
	return vr.gw
}

func (vr *vehicleRepo) Create(ctx context.Context, tx gateway.DataGateway, userID string, vehicle *types.Vehicle) (*types.Vehicle, error) {
	if vehicle.ID == "" {
		vehicle.ID = uuid.NewString()
	}
	vehicle.UserID = userID
	if err := vr.gateway(tx).SetDocument(ctx, types.VehiclePath(userID, vehicle.ID), vehicle.ToFields()); err != nil {
		return nil, err
	}
	return vehicle, nil
}

func (vr *vehicleRepo) Update(ctx context.Context, tx gateway.DataGateway, userID, vehicleID string, partial map[string]any) error {
	return vr.gateway(tx).UpdateDocument(ctx, types.VehiclePath(userID, vehicleID), partial)
}

func (vr *vehicleRepo) Delete(ctx context.Context, tx gateway.DataGateway, userID, vehicleID string) error {
	return vr.gateway(tx).DeleteDocument(ctx, types.VehiclePath(userID, vehicleID))
}

func (vr *vehicleRepo) GetByID(ctx context.Context, tx gateway.DataGateway, userID, vehicleID string) (*types.Vehicle, error) {
	doc, err := vr.gateway(tx).GetDocument(ctx, types.VehiclePath(userID, vehicleID))
	if err != nil {
		return nil, err
	}
	return types.VehicleFromDocument(doc), nil
}

func (vr *vehicleRepo) ListByUser(ctx context.Context, tx gateway.DataGateway, userID string) ([]*types.Vehicle, error) {
	docs, err := vr.gateway(tx).QueryCollection(ctx, types.VehicleCollection(userID), nil)
	if err != nil {
		return nil, err
	}
	return vehiclesFromDocuments(docs), nil
}

func (vr *vehicleRepo) FindByPlaca(ctx context.Context, tx gateway.DataGateway, placa string) ([]*types.Vehicle, error) {
	docs, err := vr.gateway(tx).QueryCollectionGroup(ctx, "vehicles", map[string]string{"placa": placa})
	if err != nil {
		return nil, err
	}
	return vehiclesFromDocuments(docs), nil
}

func (vr *vehicleRepo) FindByPlacaForUser(ctx context.Context, tx gateway.DataGateway, userID, placa string) ([]*types.Vehicle, error) {
	docs, err := vr.gateway(tx).QueryCollection(ctx, types.VehicleCollection(userID), map[string]string{"placa": placa})
	if err != nil {
		return nil, err
	}
	return vehiclesFromDocuments(docs), nil
}

func vehiclesFromDocuments(docs []types.Document) []*types.Vehicle {
	out := make([]*types.Vehicle, 0, len(docs))
	for _, doc := range docs {
		out = append(out, types.VehicleFromDocument(doc))
	}
	return out
}
