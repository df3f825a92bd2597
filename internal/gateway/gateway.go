package gateway

import (
	"context"

	"github.com/tecsup/autobody-backend/internal/types"
)

// DataGateway is the uniform contract every repository talks through. All
// persistence is delegated to the backing store; callers must treat every
// operation as potentially slow and must not assume ordering between two
// concurrently issued operations against different documents.
//
// Error contract: GetDocument and UpdateDocument report an absent document
// with faults.ErrNotFound; DeleteDocument of a missing path succeeds; query
// operations return an empty slice, not an error, when nothing matches;
// rejected writes carry faults.ErrWrite.
type DataGateway interface {
	GetDocument(ctx context.Context, path string) (types.Document, error)
	SetDocument(ctx context.Context, path string, fields map[string]any) error
	UpdateDocument(ctx context.Context, path string, partial map[string]any) error
	DeleteDocument(ctx context.Context, path string) error

	// QueryCollection lists the documents directly under a collection path,
	// optionally narrowed by field equality.
	QueryCollection(ctx context.Context, path string, filter map[string]string) ([]types.Document, error)

	// QueryCollectionGroup lists every document in any collection of the given
	// name regardless of parent, e.g. all "vehicles" across all users. Results
	// carry their full paths.
	QueryCollectionGroup(ctx context.Context, name string, filter map[string]string) ([]types.Document, error)

	// RunInTransaction runs fn against a gateway whose writes commit together
	// with any uniqueness checks fn performed. Backends without transactions
	// run fn directly against the live store; that weaker guarantee is part of
	// the backend's documentation, not hidden.
	RunInTransaction(ctx context.Context, fn func(tx DataGateway) error) error
}

func matchesFilter(doc types.Document, filter map[string]string) bool {
	for k, want := range filter {
		got, ok := doc.Fields[k].(string)
		if !ok || got != want {
			return false
		}
	}
	return true
}
