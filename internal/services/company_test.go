package services

import (
	"context"
	"testing"

	"github.com/tecsup/autobody-backend/internal/faults"
)

func newCompanyEnv(t *testing.T) (*testEnv, CompanyService) {
	t.Helper()
	te := newTestEnv(t)
	svc := NewCompanyService(testLogger(t), te.gw, te.companyRepo)
	return te, svc
}

func TestAddPersonalDeduplicatesGlobalPool(t *testing.T) {
	te, svc := newCompanyEnv(t)
	te.seedUser(t, "u1", "Ana", "11111111")
	te.seedUser(t, "u2", "Bruno", "22222222")

	if _, err := svc.AddPersonal(context.Background(), "u1", "Taller Pérez"); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if _, err := svc.AddPersonal(context.Background(), "u2", "Taller Pérez"); err != nil {
		t.Fatalf("second add: %v", err)
	}

	global, err := svc.ListGlobal(context.Background())
	if err != nil {
		t.Fatalf("list global: %v", err)
	}
	count := 0
	for _, c := range global {
		if c.Name == "Taller Pérez" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("global pool must hold the name exactly once, got %d", count)
	}

	for _, userID := range []string{"u1", "u2"} {
		personal, err := svc.ListPersonal(context.Background(), userID)
		if err != nil {
			t.Fatalf("list personal %s: %v", userID, err)
		}
		if len(personal) != 1 || personal[0].Name != "Taller Pérez" {
			t.Fatalf("%s personal list: %+v", userID, personal)
		}
	}
}

func TestAddPersonalRejectsBlankName(t *testing.T) {
	_, svc := newCompanyEnv(t)
	if _, err := svc.AddPersonal(context.Background(), "u1", "   "); !faults.IsValidation(err) {
		t.Fatalf("want validation error, got %v", err)
	}
}

func TestUpdateGlobalByName(t *testing.T) {
	_, svc := newCompanyEnv(t)
	if _, err := svc.AddPersonal(context.Background(), "u1", "Taller Pérez"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if err := svc.UpdateGlobal(context.Background(), "Taller Pérez", "Taller Pérez e Hijos"); err != nil {
		t.Fatalf("update: %v", err)
	}
	global, err := svc.ListGlobal(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(global) != 1 || global[0].Name != "Taller Pérez e Hijos" {
		t.Fatalf("rename not applied: %+v", global)
	}

	if err := svc.UpdateGlobal(context.Background(), "No Existe", "Otro"); !faults.IsNotFound(err) {
		t.Fatalf("want not-found for absent name, got %v", err)
	}
}

func TestDeleteGlobalByName(t *testing.T) {
	_, svc := newCompanyEnv(t)
	if _, err := svc.AddPersonal(context.Background(), "u1", "Taller Pérez"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if err := svc.DeleteGlobal(context.Background(), "Taller Pérez"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	global, err := svc.ListGlobal(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(global) != 0 {
		t.Fatalf("pool should be empty, got %+v", global)
	}

	if err := svc.DeleteGlobal(context.Background(), "Taller Pérez"); !faults.IsNotFound(err) {
		t.Fatalf("deleting an absent name reports not-found, got %v", err)
	}
}

func TestDeletePersonalLeavesGlobalPool(t *testing.T) {
	_, svc := newCompanyEnv(t)
	entry, err := svc.AddPersonal(context.Background(), "u1", "Taller Pérez")
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	if err := svc.DeletePersonal(context.Background(), "u1", entry.ID); err != nil {
		t.Fatalf("delete personal: %v", err)
	}
	personal, err := svc.ListPersonal(context.Background(), "u1")
	if err != nil {
		t.Fatalf("list personal: %v", err)
	}
	if len(personal) != 0 {
		t.Fatalf("personal list should be empty, got %+v", personal)
	}
	global, err := svc.ListGlobal(context.Background())
	if err != nil {
		t.Fatalf("list global: %v", err)
	}
	if len(global) != 1 {
		t.Fatalf("global pool must survive personal deletes, got %+v", global)
	}
}
