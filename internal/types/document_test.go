package types

import (
	"reflect"
	"testing"
)

func TestDocumentStrFallsBackPerField(t *testing.T) {
	doc := Document{
		Path: "users/u1/services/s1",
		Fields: map[string]any{
			"date":  "2024-05-10",
			"hour":  "",
			"fuel":  42,
			"extra": "x",
		},
	}
	cases := []struct {
		name string
		key  string
		want string
	}{
		{name: "present", key: "date", want: "2024-05-10"},
		{name: "blank_uses_fallback", key: "hour", want: SentinelUnknown},
		{name: "wrong_type_uses_fallback", key: "fuel", want: SentinelUnknown},
		{name: "absent_uses_fallback", key: "mileage", want: SentinelUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := doc.Str(tc.key, SentinelUnknown)
			if got != tc.want {
				t.Fatalf("Str(%q): want %q got %q", tc.key, tc.want, got)
			}
		})
	}
}

func TestDocumentStrListPreservesOrder(t *testing.T) {
	doc := Document{
		Path: "users/u1/services/s1",
		Fields: map[string]any{
			"workDetails": []any{"Cambio de aceite", "Revisión de frenos"},
		},
	}
	got := doc.StrList("workDetails")
	want := []string{"Cambio de aceite", "Revisión de frenos"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("StrList order: want %v got %v", want, got)
	}
}

func TestDocumentPathHelpers(t *testing.T) {
	doc := Document{Path: "users/u42/services/s7"}
	if doc.ID() != "s7" {
		t.Fatalf("ID: want s7 got %s", doc.ID())
	}
	if doc.OwnerUserID() != "u42" {
		t.Fatalf("OwnerUserID: want u42 got %s", doc.OwnerUserID())
	}
	if CollectionOf(doc.Path) != "services" {
		t.Fatalf("CollectionOf: want services got %s", CollectionOf(doc.Path))
	}
	top := Document{Path: "companies/c1"}
	if top.OwnerUserID() != "" {
		t.Fatalf("top-level document has no owner, got %q", top.OwnerUserID())
	}
}

func TestServiceFromDocumentDefaults(t *testing.T) {
	svc := ServiceFromDocument(Document{
		Path:   "users/u1/services/s1",
		Fields: map[string]any{"vehiclePlaca": "ABC-123"},
	})
	if svc.Status != StatusPending {
		t.Fatalf("missing status must default to pendiente, got %q", svc.Status)
	}
	if svc.CreatedAt != "0" {
		t.Fatalf("missing createdAt must default to \"0\", got %q", svc.CreatedAt)
	}
	if svc.Date != SentinelUnknown {
		t.Fatalf("missing date must use sentinel, got %q", svc.Date)
	}
	if svc.UserID != "u1" || svc.ID != "s1" {
		t.Fatalf("back-references wrong: %q %q", svc.UserID, svc.ID)
	}
}

func TestVehicleFieldsRoundTrip(t *testing.T) {
	v := &Vehicle{Placa: "ABC-123", Year: "2019", Brand: "Toyota", Model: "Hilux", Color: "Rojo"}
	doc := Document{Path: "users/u1/vehicles/v1", Fields: v.ToFields()}
	got := VehicleFromDocument(doc)
	if got.Placa != "ABC-123" || got.Brand != "Toyota" || got.Year != "2019" {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if got.ImageURL != "" {
		t.Fatalf("imageUrl must stay empty when absent, got %q", got.ImageURL)
	}
}
