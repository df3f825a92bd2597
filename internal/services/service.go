package services

import (
	"context"
	"strconv"
	"time"

	"github.com/tecsup/autobody-backend/internal/faults"
	"github.com/tecsup/autobody-backend/internal/gateway"
	"github.com/tecsup/autobody-backend/internal/logger"
	"github.com/tecsup/autobody-backend/internal/normalization"
	"github.com/tecsup/autobody-backend/internal/repos"
	"github.com/tecsup/autobody-backend/internal/types"
)

type ServiceInput struct {
	VehiclePlaca string   `json:"vehiclePlaca"`
	Date         string   `json:"date"`
	Hour         string   `json:"hour"`
	Fuel         string   `json:"fuel"`
	Mileage      string   `json:"mileage"`
	CompanyName  string   `json:"companyName"`
	WorkDetails  []string `json:"workDetails"`
}

// statusTransitions is the appointment lifecycle. Every pair is reachable in
// both directions: the shop confirms, the client cancels, and an admin can
// walk a record back to pendiente after either.
var statusTransitions = map[string][]string{
	types.StatusPending:   {types.StatusConfirmed, types.StatusCancelled},
	types.StatusConfirmed: {types.StatusPending, types.StatusCancelled},
	types.StatusCancelled: {types.StatusPending, types.StatusConfirmed},
}

// CanTransition reports whether from→to is allowed. Re-applying the current
// status is allowed and a no-op.
func CanTransition(from, to string) bool {
	if from == to {
		return types.IsServiceStatus(to)
	}
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type AppointmentService interface {
	Create(ctx context.Context, userID string, input ServiceInput) (*types.Service, error)
	Update(ctx context.Context, userID, serviceID string, partial map[string]any) error
	ChangeStatus(ctx context.Context, userID, serviceID, status string) error
	// Delete is unconditional and idempotent; deleting a missing record
	// succeeds.
	Delete(ctx context.Context, userID, serviceID string) error
	List(ctx context.Context, userID string) ([]*types.Service, error)
}

type appointmentService struct {
	log         *logger.Logger
	gw          gateway.DataGateway
	serviceRepo repos.ServiceRepo
	vehicleRepo repos.VehicleRepo
}

func NewAppointmentService(
	log *logger.Logger,
	gw gateway.DataGateway,
	serviceRepo repos.ServiceRepo,
	vehicleRepo repos.VehicleRepo,
) AppointmentService {
	serviceLog := log.With("service", "AppointmentService")
	return &appointmentService{
		log:         serviceLog,
		gw:          gw,
		serviceRepo: serviceRepo,
		vehicleRepo: vehicleRepo,
	}
}

func (ss *appointmentService) ensureOwnedPlaca(ctx context.Context, userID, placa string) error {
	if placa == "" {
		return faults.ValidationError("la placa del vehículo es obligatoria")
	}
	matches, err := ss.vehicleRepo.FindByPlacaForUser(ctx, nil, userID, placa)
	if err != nil {
		return faults.IndeterminateError("no se pudo verificar el vehículo", err)
	}
	if len(matches) == 0 {
		return faults.ValidationError("el vehículo no pertenece al usuario: " + placa)
	}
	return nil
}

func (ss *appointmentService) Create(ctx context.Context, userID string, input ServiceInput) (*types.Service, error) {
	placa := normalization.ParsePlaca(input.VehiclePlaca)
	if err := ss.ensureOwnedPlaca(ctx, userID, placa); err != nil {
		return nil, err
	}
	if input.Fuel != "" && !types.IsFuelLevel(input.Fuel) {
		return nil, faults.ValidationError("nivel de combustible inválido: " + input.Fuel)
	}

	service := &types.Service{
		UserID:       userID,
		VehiclePlaca: placa,
		Date:         normalization.TrimInputString(input.Date),
		Hour:         normalization.TrimInputString(input.Hour),
		Fuel:         input.Fuel,
		Mileage:      normalization.TrimInputString(input.Mileage),
		CompanyName:  normalization.TrimInputString(input.CompanyName),
		WorkDetails:  input.WorkDetails,
		CreatedAt:    strconv.FormatInt(time.Now().UnixMilli(), 10),
		Status:       types.StatusPending,
	}
	if service.WorkDetails == nil {
		service.WorkDetails = []string{}
	}

	created, err := ss.serviceRepo.Create(ctx, nil, userID, service)
	if err != nil {
		return nil, err
	}
	ss.log.Info("Service request created", "user_id", userID, "service_id", created.ID)
	return created, nil
}

func (ss *appointmentService) Update(ctx context.Context, userID, serviceID string, partial map[string]any) error {
	if len(partial) == 0 {
		return faults.ValidationError("no hay campos para actualizar")
	}
	// status and createdAt have dedicated paths; a plain update never
	// touches them
	delete(partial, "status")
	delete(partial, "createdAt")

	if raw, ok := partial["vehiclePlaca"]; ok {
		placa, _ := raw.(string)
		placa = normalization.ParsePlaca(placa)
		if err := ss.ensureOwnedPlaca(ctx, userID, placa); err != nil {
			return err
		}
		partial["vehiclePlaca"] = placa
	}
	if raw, ok := partial["fuel"]; ok {
		fuel, _ := raw.(string)
		if fuel != "" && !types.IsFuelLevel(fuel) {
			return faults.ValidationError("nivel de combustible inválido: " + fuel)
		}
	}
	return ss.serviceRepo.Update(ctx, nil, userID, serviceID, partial)
}

func (ss *appointmentService) ChangeStatus(ctx context.Context, userID, serviceID, status string) error {
	if !types.IsServiceStatus(status) {
		return faults.ValidationError("estado inválido: " + status)
	}
	current, err := ss.serviceRepo.GetByID(ctx, nil, userID, serviceID)
	if err != nil {
		return err
	}
	if current.Status == status {
		return nil
	}
	if !CanTransition(current.Status, status) {
		return faults.ValidationError("transición de estado no permitida")
	}
	return ss.serviceRepo.Update(ctx, nil, userID, serviceID, map[string]any{"status": status})
}

func (ss *appointmentService) Delete(ctx context.Context, userID, serviceID string) error {
	err := ss.serviceRepo.Delete(ctx, nil, userID, serviceID)
	if faults.IsNotFound(err) {
		return nil
	}
	return err
}

func (ss *appointmentService) List(ctx context.Context, userID string) ([]*types.Service, error) {
	return ss.serviceRepo.ListByUser(ctx, nil, userID)
}
