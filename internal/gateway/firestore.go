package gateway

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/tecsup/autobody-backend/internal/faults"
	"github.com/tecsup/autobody-backend/internal/logger"
	"github.com/tecsup/autobody-backend/internal/types"
)

// FirestoreGateway is the managed-backend DataGateway. Document paths map
// 1:1 onto Firestore document references; collection-group queries use the
// native CollectionGroup support.
//
// RunInTransaction here executes fn directly: check-then-write sequences are
// NOT transactional on this backend, the same weak guarantee the mobile
// client always had against this store.
type FirestoreGateway struct {
	client *firestore.Client
	log    *logger.Logger
}

func NewFirestoreGateway(ctx context.Context, log *logger.Logger, projectID, credentialsFile string) (*FirestoreGateway, error) {
	gatewayLog := log.With("gateway", "FirestoreGateway")
	if projectID == "" {
		return nil, fmt.Errorf("firestore project id is required")
	}
	var client *firestore.Client
	var err error
	if credentialsFile != "" {
		client, err = firestore.NewClient(ctx, projectID, option.WithCredentialsFile(credentialsFile))
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}
	if err != nil {
		return nil, fmt.Errorf("Failed to create firestore client: %w", err)
	}
	return &FirestoreGateway{client: client, log: gatewayLog}, nil
}

func (g *FirestoreGateway) Close() error {
	return g.client.Close()
}

func (g *FirestoreGateway) GetDocument(ctx context.Context, path string) (types.Document, error) {
	snap, err := g.client.Doc(path).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return types.Document{}, faults.NotFoundError("document " + path)
	}
	if err != nil {
		return types.Document{}, faults.WriteError("getDocument "+path, err)
	}
	return types.Document{Path: path, Fields: snap.Data()}, nil
}

func (g *FirestoreGateway) SetDocument(ctx context.Context, path string, fields map[string]any) error {
	if _, err := g.client.Doc(path).Set(ctx, fields); err != nil {
		return faults.WriteError("setDocument "+path, err)
	}
	return nil
}

func (g *FirestoreGateway) UpdateDocument(ctx context.Context, path string, partial map[string]any) error {
	updates := make([]firestore.Update, 0, len(partial))
	for k, v := range partial {
		updates = append(updates, firestore.Update{FieldPath: firestore.FieldPath{k}, Value: v})
	}
	_, err := g.client.Doc(path).Update(ctx, updates)
	if status.Code(err) == codes.NotFound {
		return faults.NotFoundError("document " + path)
	}
	if err != nil {
		return faults.WriteError("updateDocument "+path, err)
	}
	return nil
}

func (g *FirestoreGateway) DeleteDocument(ctx context.Context, path string) error {
	// firestore deletes are idempotent already
	if _, err := g.client.Doc(path).Delete(ctx); err != nil {
		return faults.WriteError("deleteDocument "+path, err)
	}
	return nil
}

func (g *FirestoreGateway) QueryCollection(ctx context.Context, path string, filter map[string]string) ([]types.Document, error) {
	q := g.client.Collection(path).Query
	for k, v := range filter {
		q = q.WherePath(firestore.FieldPath{k}, "==", v)
	}
	snaps, err := q.Documents(ctx).GetAll()
	if err != nil {
		return nil, faults.WriteError("queryCollection "+path, err)
	}
	return snapsToDocuments(snaps), nil
}

func (g *FirestoreGateway) QueryCollectionGroup(ctx context.Context, name string, filter map[string]string) ([]types.Document, error) {
	q := g.client.CollectionGroup(name).Query
	for k, v := range filter {
		q = q.WherePath(firestore.FieldPath{k}, "==", v)
	}
	snaps, err := q.Documents(ctx).GetAll()
	if err != nil {
		return nil, faults.WriteError("queryCollectionGroup "+name, err)
	}
	return snapsToDocuments(snaps), nil
}

func (g *FirestoreGateway) RunInTransaction(ctx context.Context, fn func(tx DataGateway) error) error {
	return fn(g)
}

func snapsToDocuments(snaps []*firestore.DocumentSnapshot) []types.Document {
	out := make([]types.Document, 0, len(snaps))
	for _, snap := range snaps {
		out = append(out, types.Document{
			Path:   relativePath(snap.Ref.Path),
			Fields: snap.Data(),
		})
	}
	return out
}

// relativePath strips the projects/{p}/databases/{d}/documents/ prefix of a
// firestore resource name.
func relativePath(resource string) string {
	const marker = "/documents/"
	idx := strings.Index(resource, marker)
	if idx < 0 {
		return resource
	}
	return resource[idx+len(marker):]
}
