package services

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/tecsup/autobody-backend/internal/faults"
	"github.com/tecsup/autobody-backend/internal/types"
)

func newAppointmentEnv(t *testing.T) (*testEnv, AppointmentService) {
	t.Helper()
	te := newTestEnv(t)
	svc := NewAppointmentService(testLogger(t), te.gw, te.serviceRepo, te.vehicleRepo)
	return te, svc
}

func TestAppointmentCreate(t *testing.T) {
	te, svc := newAppointmentEnv(t)
	te.seedUser(t, "u1", "Ana", "11111111")
	te.seedVehicle(t, "u1", "v1", "ABC-123")

	before := time.Now().UnixMilli()
	created, err := svc.Create(context.Background(), "u1", ServiceInput{
		VehiclePlaca: "abc-123",
		Date:         "2026-09-01",
		Hour:         "10:00",
		Fuel:         "1/2",
		Mileage:      "42000",
		WorkDetails:  []string{"cambio de aceite", "alineamiento", "frenos"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Status != types.StatusPending {
		t.Fatalf("status forced to pendiente, got %q", created.Status)
	}
	if created.VehiclePlaca != "ABC-123" {
		t.Fatalf("plate should be normalized upper, got %q", created.VehiclePlaca)
	}
	millis, err := strconv.ParseInt(created.CreatedAt, 10, 64)
	if err != nil || millis < before {
		t.Fatalf("createdAt must be epoch millis as string, got %q", created.CreatedAt)
	}

	stored, err := te.serviceRepo.GetByID(context.Background(), nil, "u1", created.ID)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	want := []string{"cambio de aceite", "alineamiento", "frenos"}
	if len(stored.WorkDetails) != len(want) {
		t.Fatalf("workDetails length: got %d want %d", len(stored.WorkDetails), len(want))
	}
	for i, detail := range want {
		if stored.WorkDetails[i] != detail {
			t.Fatalf("workDetails order broken at %d: got %q want %q", i, stored.WorkDetails[i], detail)
		}
	}
}

func TestAppointmentCreateRejectsUnownedPlate(t *testing.T) {
	te, svc := newAppointmentEnv(t)
	te.seedUser(t, "u1", "Ana", "11111111")
	te.seedUser(t, "u2", "Bruno", "22222222")
	te.seedVehicle(t, "u2", "v2", "ZZZ-888")

	_, err := svc.Create(context.Background(), "u1", ServiceInput{VehiclePlaca: "ZZZ-888"})
	if !faults.IsValidation(err) {
		t.Fatalf("want validation error for another user's plate, got %v", err)
	}
}

func TestAppointmentCreateValidatesFuel(t *testing.T) {
	te, svc := newAppointmentEnv(t)
	te.seedUser(t, "u1", "Ana", "11111111")
	te.seedVehicle(t, "u1", "v1", "ABC-123")

	_, err := svc.Create(context.Background(), "u1", ServiceInput{VehiclePlaca: "ABC-123", Fuel: "half"})
	if !faults.IsValidation(err) {
		t.Fatalf("want validation error for fuel outside E..F, got %v", err)
	}
	for _, fuel := range types.FuelLevels {
		if _, err := svc.Create(context.Background(), "u1", ServiceInput{VehiclePlaca: "ABC-123", Fuel: fuel}); err != nil {
			t.Fatalf("fuel %q should be accepted: %v", fuel, err)
		}
	}
}

func TestAppointmentUpdatePartialMerge(t *testing.T) {
	te, svc := newAppointmentEnv(t)
	te.seedUser(t, "u1", "Ana", "11111111")
	te.seedVehicle(t, "u1", "v1", "ABC-123")
	created, err := svc.Create(context.Background(), "u1", ServiceInput{
		VehiclePlaca: "ABC-123", Date: "2026-09-01", Hour: "10:00", Fuel: "F",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	err = svc.Update(context.Background(), "u1", created.ID, map[string]any{
		"hour":      "15:30",
		"status":    types.StatusCancelled,
		"createdAt": "0",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	after, err := te.serviceRepo.GetByID(context.Background(), nil, "u1", created.ID)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if after.Hour != "15:30" {
		t.Fatalf("hour not merged, got %q", after.Hour)
	}
	if after.Date != "2026-09-01" || after.Fuel != "F" {
		t.Fatalf("untouched fields must survive a partial update: %+v", after)
	}
	if after.Status != types.StatusPending || after.CreatedAt != created.CreatedAt {
		t.Fatalf("status and createdAt must be immune to plain updates: %+v", after)
	}
}

func TestAppointmentChangeStatus(t *testing.T) {
	te, svc := newAppointmentEnv(t)
	te.seedUser(t, "u1", "Ana", "11111111")
	te.seedVehicle(t, "u1", "v1", "ABC-123")
	created, err := svc.Create(context.Background(), "u1", ServiceInput{VehiclePlaca: "ABC-123"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	statuses := []string{types.StatusPending, types.StatusConfirmed, types.StatusCancelled}
	for _, from := range statuses {
		for _, to := range statuses {
			if err := svc.ChangeStatus(context.Background(), "u1", created.ID, from); err != nil {
				t.Fatalf("set %s: %v", from, err)
			}
			if err := svc.ChangeStatus(context.Background(), "u1", created.ID, to); err != nil {
				t.Fatalf("transition %s -> %s should be allowed: %v", from, to, err)
			}
		}
	}

	// idempotent re-apply
	if err := svc.ChangeStatus(context.Background(), "u1", created.ID, types.StatusCancelled); err != nil {
		t.Fatalf("first cancel: %v", err)
	}
	if err := svc.ChangeStatus(context.Background(), "u1", created.ID, types.StatusCancelled); err != nil {
		t.Fatalf("re-applying the current status must succeed: %v", err)
	}

	if err := svc.ChangeStatus(context.Background(), "u1", created.ID, "terminado"); !faults.IsValidation(err) {
		t.Fatalf("unknown status must be rejected, got %v", err)
	}
}

func TestAppointmentDeleteMissingIsNoOp(t *testing.T) {
	te, svc := newAppointmentEnv(t)
	te.seedUser(t, "u1", "Ana", "11111111")

	if err := svc.Delete(context.Background(), "u1", "does-not-exist"); err != nil {
		t.Fatalf("deleting a missing record must succeed, got %v", err)
	}
}
