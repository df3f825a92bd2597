package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/tecsup/autobody-backend/internal/faults"
	"github.com/tecsup/autobody-backend/internal/gateway"
	"github.com/tecsup/autobody-backend/internal/logger"
	"github.com/tecsup/autobody-backend/internal/normalization"
	"github.com/tecsup/autobody-backend/internal/repos"
	"github.com/tecsup/autobody-backend/internal/storage"
	"github.com/tecsup/autobody-backend/internal/types"
)

type VehicleInput struct {
	Placa string `form:"placa" json:"placa"`
	Year  string `form:"año" json:"año"`
	Brand string `form:"marca" json:"marca"`
	Model string `form:"modelo" json:"modelo"`
	Color string `form:"color" json:"color"`
}

type VehicleService interface {
	// Add registers a vehicle for the user. When image is non-nil it is
	// uploaded first and the resulting URL rides on the document write.
	Add(ctx context.Context, userID string, input VehicleInput, image io.Reader, imageName string) (*types.Vehicle, error)
	Update(ctx context.Context, userID, vehicleID string, partial map[string]any) error
	Delete(ctx context.Context, userID, vehicleID string) error
	List(ctx context.Context, userID string) ([]*types.Vehicle, error)
}

type vehicleService struct {
	log         *logger.Logger
	gw          gateway.DataGateway
	vehicleRepo repos.VehicleRepo
	validator   Validator
	blobStore   storage.BlobStore
}

func NewVehicleService(
	log *logger.Logger,
	gw gateway.DataGateway,
	vehicleRepo repos.VehicleRepo,
	validator Validator,
	blobStore storage.BlobStore,
) VehicleService {
	serviceLog := log.With("service", "VehicleService")
	return &vehicleService{
		log:         serviceLog,
		gw:          gw,
		vehicleRepo: vehicleRepo,
		validator:   validator,
		blobStore:   blobStore,
	}
}

func (vs *vehicleService) Add(ctx context.Context, userID string, input VehicleInput, image io.Reader, imageName string) (*types.Vehicle, error) {
	placa := normalization.ParsePlaca(input.Placa)
	// a blank or already-taken plate must fail before anything leaves the
	// process, the image upload included
	if err := vs.validator.EnsurePlacaUnique(ctx, nil, placa, ""); err != nil {
		return nil, err
	}

	vehicle := &types.Vehicle{
		UserID: userID,
		Placa:  placa,
		Year:   normalization.TrimInputString(input.Year),
		Brand:  normalization.TrimInputString(input.Brand),
		Model:  normalization.TrimInputString(input.Model),
		Color:  normalization.TrimInputString(input.Color),
	}

	imageKey := ""
	if image != nil {
		ext := filepath.Ext(imageName)
		if ext == "" {
			ext = ".jpg"
		}
		imageKey = fmt.Sprintf("vehicle_images/%s/%d%s", userID, time.Now().UnixNano(), ext)
		if err := vs.blobStore.UploadFile(ctx, imageKey, image); err != nil {
			return nil, err
		}
		vehicle.ImageURL = vs.blobStore.GetPublicURL(imageKey)
	}

	err := vs.gw.RunInTransaction(ctx, func(tx gateway.DataGateway) error {
		if err := vs.validator.EnsurePlacaUnique(ctx, tx, placa, ""); err != nil {
			return err
		}
		_, err := vs.vehicleRepo.Create(ctx, tx, userID, vehicle)
		return err
	})
	if err == nil {
		err = vs.reconcilePlate(ctx, vehicle)
	}
	if err != nil {
		vs.removeOrphanImage(ctx, imageKey)
		return nil, err
	}

	vs.log.Info("Vehicle registered", "user_id", userID, "vehicle_id", vehicle.ID)
	return vehicle, nil
}

// reconcilePlate is the post-write check for the unguarded plate race on
// backends without transactions: two concurrent creates can both pass the
// pre-write check. When both land, the record with the smallest id stays
// and the other is rolled back with a conflict.
func (vs *vehicleService) reconcilePlate(ctx context.Context, vehicle *types.Vehicle) error {
	matches, err := vs.vehicleRepo.FindByPlaca(ctx, nil, vehicle.Placa)
	if err != nil {
		vs.log.Warn("Plate reconciliation could not complete", "placa", vehicle.Placa, "error", err)
		return nil
	}
	for _, other := range matches {
		if other.ID != vehicle.ID && other.ID < vehicle.ID {
			if derr := vs.vehicleRepo.Delete(ctx, nil, vehicle.UserID, vehicle.ID); derr != nil {
				vs.log.Warn("Failed to roll back conflicting vehicle", "vehicle_id", vehicle.ID, "error", derr)
			}
			return faults.ConflictError("la placa fue registrada por otra operación concurrente")
		}
	}
	return nil
}

func (vs *vehicleService) removeOrphanImage(ctx context.Context, imageKey string) {
	if imageKey == "" {
		return
	}
	if err := vs.blobStore.DeleteFile(ctx, imageKey); err != nil {
		vs.log.Warn("Failed to remove orphan vehicle image", "key", imageKey, "error", err)
	}
}

func (vs *vehicleService) Update(ctx context.Context, userID, vehicleID string, partial map[string]any) error {
	if len(partial) == 0 {
		return faults.ValidationError("no hay campos para actualizar")
	}
	if raw, ok := partial["placa"]; ok {
		placa, _ := raw.(string)
		placa = normalization.ParsePlaca(placa)
		partial["placa"] = placa
		return vs.gw.RunInTransaction(ctx, func(tx gateway.DataGateway) error {
			if err := vs.validator.EnsurePlacaUnique(ctx, tx, placa, vehicleID); err != nil {
				return err
			}
			return vs.vehicleRepo.Update(ctx, tx, userID, vehicleID, partial)
		})
	}
	return vs.vehicleRepo.Update(ctx, nil, userID, vehicleID, partial)
}

func (vs *vehicleService) Delete(ctx context.Context, userID, vehicleID string) error {
	return vs.vehicleRepo.Delete(ctx, nil, userID, vehicleID)
}

func (vs *vehicleService) List(ctx context.Context, userID string) ([]*types.Vehicle, error) {
	return vs.vehicleRepo.ListByUser(ctx, nil, userID)
}
