package services

import (
	"context"
	"testing"

	"github.com/tecsup/autobody-backend/internal/faults"
	"github.com/tecsup/autobody-backend/internal/repos"
)

func TestEnsurePlacaUnique(t *testing.T) {
	te := newTestEnv(t)
	te.seedUser(t, "u1", "Ana", "11111111")
	te.seedVehicle(t, "u1", "v1", "ABC-123")

	tests := []struct {
		name      string
		placa     string
		excludeID string
		wantErr   func(error) bool
	}{
		{name: "unique plate passes", placa: "XYZ-999", wantErr: nil},
		{name: "duplicate across users rejected", placa: "ABC-123", wantErr: faults.IsValidation},
		{name: "own record excluded", placa: "ABC-123", excludeID: "v1", wantErr: nil},
		{name: "blank plate rejected", placa: "", wantErr: faults.IsValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := te.validator.EnsurePlacaUnique(context.Background(), nil, tt.placa, tt.excludeID)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !tt.wantErr(err) {
				t.Fatalf("want matching error class, got %v", err)
			}
		})
	}
}

func TestEnsurePlacaUniqueFailsClosed(t *testing.T) {
	te := newTestEnv(t)
	log := testLogger(t)
	broken := &failingGateway{DataGateway: te.gw, failGroupQueries: true}
	validator := NewValidator(log, repos.NewUserRepo(broken, log), repos.NewVehicleRepo(broken, log))

	err := validator.EnsurePlacaUnique(context.Background(), nil, "NEW-111", "")
	if !faults.IsIndeterminate(err) {
		t.Fatalf("want indeterminate when the check cannot complete, got %v", err)
	}
	if faults.IsValidation(err) {
		t.Fatalf("indeterminate must not read as a plain validation failure")
	}
}

func TestEnsureDNIUnique(t *testing.T) {
	te := newTestEnv(t)
	te.seedUser(t, "u1", "Ana", "11111111")

	if err := te.validator.EnsureDNIUnique(context.Background(), nil, "22222222", ""); err != nil {
		t.Fatalf("unique dni: %v", err)
	}
	if err := te.validator.EnsureDNIUnique(context.Background(), nil, "11111111", ""); !faults.IsValidation(err) {
		t.Fatalf("want validation error for duplicate dni, got %v", err)
	}
	if err := te.validator.EnsureDNIUnique(context.Background(), nil, "11111111", "u1"); err != nil {
		t.Fatalf("own record exclusion: %v", err)
	}
	if err := te.validator.EnsureDNIUnique(context.Background(), nil, "", ""); !faults.IsValidation(err) {
		t.Fatalf("want validation error for blank dni, got %v", err)
	}
}

func TestEnsureDNIUniqueFailsClosed(t *testing.T) {
	te := newTestEnv(t)
	log := testLogger(t)
	broken := &failingGateway{DataGateway: te.gw, failQueries: true}
	validator := NewValidator(log, repos.NewUserRepo(broken, log), repos.NewVehicleRepo(broken, log))

	err := validator.EnsureDNIUnique(context.Background(), nil, "33333333", "")
	if !faults.IsIndeterminate(err) {
		t.Fatalf("want indeterminate when the check cannot complete, got %v", err)
	}
}
