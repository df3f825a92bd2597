package gateway

import (
	"context"
	"testing"

	"github.com/tecsup/autobody-backend/internal/faults"
)

func TestMemoryGatewaySetGetUpdate(t *testing.T) {
	ctx := context.Background()
	g := NewMemoryGateway()

	if err := g.SetDocument(ctx, "users/u1", map[string]any{"name": "Ana", "dni": "12345678"}); err != nil {
		t.Fatalf("SetDocument: %v", err)
	}
	doc, err := g.GetDocument(ctx, "users/u1")
	if err != nil {
		t.Fatalf("GetDocument: %v", err)
	}
	if doc.Str("name", "") != "Ana" {
		t.Fatalf("name: got %q", doc.Str("name", ""))
	}

	if err := g.UpdateDocument(ctx, "users/u1", map[string]any{"name": "Ana María"}); err != nil {
		t.Fatalf("UpdateDocument: %v", err)
	}
	doc, _ = g.GetDocument(ctx, "users/u1")
	if doc.Str("name", "") != "Ana María" {
		t.Fatalf("partial merge lost update: %q", doc.Str("name", ""))
	}
	if doc.Str("dni", "") != "12345678" {
		t.Fatalf("partial merge clobbered untouched field: %q", doc.Str("dni", ""))
	}
}

func TestMemoryGatewayMissingDocument(t *testing.T) {
	ctx := context.Background()
	g := NewMemoryGateway()

	if _, err := g.GetDocument(ctx, "users/nope"); !faults.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := g.UpdateDocument(ctx, "users/nope", map[string]any{"x": "y"}); !faults.IsNotFound(err) {
		t.Fatalf("update of missing doc: expected not found, got %v", err)
	}
	// delete is idempotent
	if err := g.DeleteDocument(ctx, "users/nope"); err != nil {
		t.Fatalf("delete of missing doc must succeed, got %v", err)
	}
}

func TestMemoryGatewayQueryCollection(t *testing.T) {
	ctx := context.Background()
	g := NewMemoryGateway()
	seed := map[string]map[string]any{
		"users/u1/vehicles/v1": {"placa": "ABC-123"},
		"users/u1/vehicles/v2": {"placa": "XYZ-999"},
		"users/u2/vehicles/v3": {"placa": "DEF-456"},
		"users/u1/services/s1": {"vehiclePlaca": "ABC-123"},
	}
	for p, f := range seed {
		if err := g.SetDocument(ctx, p, f); err != nil {
			t.Fatalf("seed %s: %v", p, err)
		}
	}

	docs, err := g.QueryCollection(ctx, "users/u1/vehicles", nil)
	if err != nil {
		t.Fatalf("QueryCollection: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("u1 vehicles: want 2 got %d", len(docs))
	}

	docs, err = g.QueryCollection(ctx, "users/u1/vehicles", map[string]string{"placa": "XYZ-999"})
	if err != nil {
		t.Fatalf("filtered query: %v", err)
	}
	if len(docs) != 1 || docs[0].ID() != "v2" {
		t.Fatalf("filtered query: %+v", docs)
	}

	docs, err = g.QueryCollection(ctx, "users/u3/vehicles", nil)
	if err != nil {
		t.Fatalf("empty query must not error: %v", err)
	}
	if len(docs) != 0 {
		t.Fatalf("empty query: want 0 got %d", len(docs))
	}
}

func TestMemoryGatewayCollectionGroup(t *testing.T) {
	ctx := context.Background()
	g := NewMemoryGateway()
	_ = g.SetDocument(ctx, "users/u1/vehicles/v1", map[string]any{"placa": "ABC-123"})
	_ = g.SetDocument(ctx, "users/u2/vehicles/v2", map[string]any{"placa": "ABC-123"})
	_ = g.SetDocument(ctx, "users/u2/vehicles/v3", map[string]any{"placa": "DEF-456"})
	_ = g.SetDocument(ctx, "users/u1/services/s1", map[string]any{"vehiclePlaca": "ABC-123"})

	docs, err := g.QueryCollectionGroup(ctx, "vehicles", map[string]string{"placa": "ABC-123"})
	if err != nil {
		t.Fatalf("QueryCollectionGroup: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("cross-user plate query: want 2 got %d", len(docs))
	}
	for _, d := range docs {
		if d.OwnerUserID() == "" {
			t.Fatalf("group result lost its path: %+v", d)
		}
	}
}

func TestMemoryGatewayReturnsCopies(t *testing.T) {
	ctx := context.Background()
	g := NewMemoryGateway()
	_ = g.SetDocument(ctx, "users/u1/services/s1", map[string]any{
		"workDetails": []string{"Cambio de aceite", "Revisión de frenos"},
	})
	doc, _ := g.GetDocument(ctx, "users/u1/services/s1")
	list := doc.StrList("workDetails")
	list[0] = "mutated"

	again, _ := g.GetDocument(ctx, "users/u1/services/s1")
	if again.StrList("workDetails")[0] != "Cambio de aceite" {
		t.Fatalf("stored document was mutated through a read")
	}
}
