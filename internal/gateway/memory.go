package gateway

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/tecsup/autobody-backend/internal/faults"
	"github.com/tecsup/autobody-backend/internal/types"
)

// MemoryGateway is the in-process backend used by tests and local
// development. A single mutex covers every operation, so RunInTransaction
// degenerates to running fn under the caller's own sequence of calls; the
// check-then-write race of the managed backends exists here too.
type MemoryGateway struct {
	mu   sync.RWMutex
	docs map[string]map[string]any
}

func NewMemoryGateway() *MemoryGateway {
	return &MemoryGateway{docs: make(map[string]map[string]any)}
}

func (m *MemoryGateway) GetDocument(ctx context.Context, path string) (types.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	fields, ok := m.docs[path]
	if !ok {
		return types.Document{}, faults.NotFoundError("document " + path)
	}
	return types.Document{Path: path, Fields: copyFields(fields)}, nil
}

func (m *MemoryGateway) SetDocument(ctx context.Context, path string, fields map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[path] = copyFields(fields)
	return nil
}

func (m *MemoryGateway) UpdateDocument(ctx context.Context, path string, partial map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.docs[path]
	if !ok {
		return faults.NotFoundError("document " + path)
	}
	for k, v := range partial {
		existing[k] = v
	}
	return nil
}

func (m *MemoryGateway) DeleteDocument(ctx context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.docs, path)
	return nil
}

func (m *MemoryGateway) QueryCollection(ctx context.Context, path string, filter map[string]string) ([]types.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	prefix := path + "/"
	var out []types.Document
	for docPath, fields := range m.docs {
		if !strings.HasPrefix(docPath, prefix) {
			continue
		}
		// direct children only, not nested subcollections
		if strings.Contains(strings.TrimPrefix(docPath, prefix), "/") {
			continue
		}
		doc := types.Document{Path: docPath, Fields: copyFields(fields)}
		if matchesFilter(doc, filter) {
			out = append(out, doc)
		}
	}
	sortByPath(out)
	return out, nil
}

func (m *MemoryGateway) QueryCollectionGroup(ctx context.Context, name string, filter map[string]string) ([]types.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []types.Document
	for docPath, fields := range m.docs {
		if types.CollectionOf(docPath) != name {
			continue
		}
		doc := types.Document{Path: docPath, Fields: copyFields(fields)}
		if matchesFilter(doc, filter) {
			out = append(out, doc)
		}
	}
	sortByPath(out)
	return out, nil
}

func (m *MemoryGateway) RunInTransaction(ctx context.Context, fn func(tx DataGateway) error) error {
	return fn(m)
}

func sortByPath(docs []types.Document) {
	sort.Slice(docs, func(i, j int) bool { return docs[i].Path < docs[j].Path })
}

func copyFields(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		if list, ok := v.([]string); ok {
			dup := make([]string, len(list))
			copy(dup, list)
			out[k] = dup
			continue
		}
		out[k] = v
	}
	return out
}
