package services

import (
	"context"

	"github.com/tecsup/autobody-backend/internal/faults"
	"github.com/tecsup/autobody-backend/internal/gateway"
	"github.com/tecsup/autobody-backend/internal/logger"
	"github.com/tecsup/autobody-backend/internal/repos"
)

// Validator runs the pre-write uniqueness checks. A duplicate is a
// faults.ErrValidation; a check that cannot be completed (store unreachable,
// query rejected) is a faults.ErrIndeterminate and the caller must not write.
type Validator interface {
	EnsurePlacaUnique(ctx context.Context, tx gateway.DataGateway, placa, excludeVehicleID string) error
	EnsureDNIUnique(ctx context.Context, tx gateway.DataGateway, dni, excludeUserID string) error
}

type validator struct {
	log         *logger.Logger
	userRepo    repos.UserRepo
	vehicleRepo repos.VehicleRepo
}

func NewValidator(log *logger.Logger, userRepo repos.UserRepo, vehicleRepo repos.VehicleRepo) Validator {
	serviceLog := log.With("service", "Validator")
	return &validator{log: serviceLog, userRepo: userRepo, vehicleRepo: vehicleRepo}
}

// EnsurePlacaUnique checks the plate against the entire vehicle collection
// across all users, not just the caller's garage.
func (v *validator) EnsurePlacaUnique(ctx context.Context, tx gateway.DataGateway, placa, excludeVehicleID string) error {
	if placa == "" {
		return faults.ValidationError("la placa es obligatoria")
	}
	existing, err := v.vehicleRepo.FindByPlaca(ctx, tx, placa)
	if err != nil {
		v.log.Warn("Plate uniqueness check could not complete", "error", err)
		return faults.IndeterminateError("no se pudo verificar la placa", err)
	}
	for _, vehicle := range existing {
		if vehicle.ID != excludeVehicleID {
			return faults.ValidationError("la placa ya está registrada")
		}
	}
	return nil
}

func (v *validator) EnsureDNIUnique(ctx context.Context, tx gateway.DataGateway, dni, excludeUserID string) error {
	if dni == "" {
		return faults.ValidationError("el dni es obligatorio")
	}
	exists, err := v.userRepo.DNIExists(ctx, tx, dni, excludeUserID)
	if err != nil {
		v.log.Warn("DNI uniqueness check could not complete", "error", err)
		return faults.IndeterminateError("no se pudo verificar el dni", err)
	}
	if exists {
		return faults.ValidationError("el dni ya está registrado")
	}
	return nil
}
