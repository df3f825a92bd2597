package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tecsup/autobody-backend/internal/faults"
	"github.com/tecsup/autobody-backend/internal/logger"
	"github.com/tecsup/autobody-backend/internal/types"
)

// documentRow is the SQL shape of a stored document: one row per path, the
// loosely typed fields as a JSON payload, and the collection name broken out
// so collection-group queries stay a plain indexed lookup.
type documentRow struct {
	Path       string `gorm:"primaryKey;size:512"`
	ParentPath string `gorm:"index;size:512"`
	Collection string `gorm:"index;size:128"`
	Fields     datatypes.JSON
	UpdatedAt  time.Time
}

func (documentRow) TableName() string {
	return "documents"
}

// Docstore is the SQL-backed DataGateway. Unlike the managed backends its
// RunInTransaction really does commit uniqueness checks and writes together.
type Docstore struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDocstore(db *gorm.DB, baseLog *logger.Logger) *Docstore {
	storeLog := baseLog.With("gateway", "Docstore")
	return &Docstore{db: db, log: storeLog}
}

func OpenPostgres(log *logger.Logger, host, port, user, password, name string) (*Docstore, error) {
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, name)
	log.Info("Connecting to Postgres...")
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		log.Error("Failed to connect to Postgres", "error", err)
		return nil, fmt.Errorf("Failed to connect to Postgres: %w", err)
	}
	store := NewDocstore(db, log)
	if err := store.AutoMigrate(); err != nil {
		return nil, err
	}
	return store, nil
}

func OpenSQLite(log *logger.Logger, path string) (*Docstore, error) {
	log.Info("Opening SQLite document store...", "path", path)
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		log.Error("Failed to open SQLite", "error", err)
		return nil, fmt.Errorf("Failed to open SQLite: %w", err)
	}
	store := NewDocstore(db, log)
	if err := store.AutoMigrate(); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *Docstore) AutoMigrate() error {
	s.log.Info("Auto migrating document table...")
	if err := s.db.AutoMigrate(&documentRow{}); err != nil {
		s.log.Error("Auto migration failed", "error", err)
		return err
	}
	return nil
}

func (s *Docstore) GetDocument(ctx context.Context, path string) (types.Document, error) {
	var row documentRow
	err := s.db.WithContext(ctx).Where("path = ?", path).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return types.Document{}, faults.NotFoundError("document " + path)
	}
	if err != nil {
		return types.Document{}, faults.WriteError("getDocument "+path, err)
	}
	return rowToDocument(row)
}

func (s *Docstore) SetDocument(ctx context.Context, path string, fields map[string]any) error {
	payload, err := json.Marshal(fields)
	if err != nil {
		return faults.WriteError("encode "+path, err)
	}
	row := documentRow{
		Path:       path,
		ParentPath: parentPath(path),
		Collection: types.CollectionOf(path),
		Fields:     datatypes.JSON(payload),
		UpdatedAt:  time.Now(),
	}
	if err := s.db.WithContext(ctx).Save(&row).Error; err != nil {
		return faults.WriteError("setDocument "+path, err)
	}
	return nil
}

func (s *Docstore) UpdateDocument(ctx context.Context, path string, partial map[string]any) error {
	var row documentRow
	err := s.db.WithContext(ctx).Where("path = ?", path).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return faults.NotFoundError("document " + path)
	}
	if err != nil {
		return faults.WriteError("updateDocument "+path, err)
	}
	fields := map[string]any{}
	if len(row.Fields) > 0 {
		if err := json.Unmarshal(row.Fields, &fields); err != nil {
			return faults.WriteError("decode "+path, err)
		}
	}
	for k, v := range partial {
		fields[k] = v
	}
	payload, err := json.Marshal(fields)
	if err != nil {
		return faults.WriteError("encode "+path, err)
	}
	row.Fields = datatypes.JSON(payload)
	row.UpdatedAt = time.Now()
	if err := s.db.WithContext(ctx).Save(&row).Error; err != nil {
		return faults.WriteError("updateDocument "+path, err)
	}
	return nil
}

func (s *Docstore) DeleteDocument(ctx context.Context, path string) error {
	// gorm reports zero affected rows without error, which gives the
	// idempotent delete the contract asks for
	if err := s.db.WithContext(ctx).Where("path = ?", path).Delete(&documentRow{}).Error; err != nil {
		return faults.WriteError("deleteDocument "+path, err)
	}
	return nil
}

func (s *Docstore) QueryCollection(ctx context.Context, path string, filter map[string]string) ([]types.Document, error) {
	var rows []documentRow
	err := s.db.WithContext(ctx).
		Where("parent_path = ?", path).
		Order("path").
		Find(&rows).Error
	if err != nil {
		return nil, faults.WriteError("queryCollection "+path, err)
	}
	return filterRows(rows, filter)
}

func (s *Docstore) QueryCollectionGroup(ctx context.Context, name string, filter map[string]string) ([]types.Document, error) {
	var rows []documentRow
	err := s.db.WithContext(ctx).
		Where("collection = ?", name).
		Order("path").
		Find(&rows).Error
	if err != nil {
		return nil, faults.WriteError("queryCollectionGroup "+name, err)
	}
	return filterRows(rows, filter)
}

func (s *Docstore) RunInTransaction(ctx context.Context, fn func(tx DataGateway) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Docstore{db: tx, log: s.log})
	})
}

// Collections here hold tens of documents, so equality filters run in memory
// after the indexed parent/collection lookup instead of leaning on a JSON
// query dialect that differs between Postgres and SQLite.
func filterRows(rows []documentRow, filter map[string]string) ([]types.Document, error) {
	out := make([]types.Document, 0, len(rows))
	for _, row := range rows {
		doc, err := rowToDocument(row)
		if err != nil {
			return nil, err
		}
		if matchesFilter(doc, filter) {
			out = append(out, doc)
		}
	}
	return out, nil
}

func rowToDocument(row documentRow) (types.Document, error) {
	fields := map[string]any{}
	if len(row.Fields) > 0 {
		if err := json.Unmarshal(row.Fields, &fields); err != nil {
			return types.Document{}, faults.WriteError("decode "+row.Path, err)
		}
	}
	return types.Document{Path: row.Path, Fields: fields}, nil
}

func parentPath(path string) string {
	idx := strings.LastIndex(path, "/")
	if idx < 0 {
		return ""
	}
	return path[:idx]
}
