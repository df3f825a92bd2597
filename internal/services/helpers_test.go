package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/tecsup/autobody-backend/internal/gateway"
	"github.com/tecsup/autobody-backend/internal/logger"
	"github.com/tecsup/autobody-backend/internal/repos"
	"github.com/tecsup/autobody-backend/internal/types"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	return &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

type testEnv struct {
	gw          *gateway.MemoryGateway
	userRepo    repos.UserRepo
	vehicleRepo repos.VehicleRepo
	companyRepo repos.CompanyRepo
	serviceRepo repos.ServiceRepo
	validator   Validator
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	log := testLogger(t)
	gw := gateway.NewMemoryGateway()
	userRepo := repos.NewUserRepo(gw, log)
	vehicleRepo := repos.NewVehicleRepo(gw, log)
	return &testEnv{
		gw:          gw,
		userRepo:    userRepo,
		vehicleRepo: vehicleRepo,
		companyRepo: repos.NewCompanyRepo(gw, log),
		serviceRepo: repos.NewServiceRepo(gw, log),
		validator:   NewValidator(log, userRepo, vehicleRepo),
	}
}

func (te *testEnv) seedUser(t *testing.T, id, name, dni string) *types.User {
	t.Helper()
	user := &types.User{ID: id, Name: name, DNI: dni, Email: id + "@example.com"}
	if _, err := te.userRepo.Create(context.Background(), nil, user); err != nil {
		t.Fatalf("seed user %s: %v", id, err)
	}
	return user
}

func (te *testEnv) seedVehicle(t *testing.T, userID, id, placa string) *types.Vehicle {
	t.Helper()
	vehicle := &types.Vehicle{ID: id, Placa: placa, Brand: "Toyota", Model: "Hilux", Year: "2020", Color: "rojo"}
	if _, err := te.vehicleRepo.Create(context.Background(), nil, userID, vehicle); err != nil {
		t.Fatalf("seed vehicle %s: %v", id, err)
	}
	return vehicle
}

// failingGateway wraps a real gateway and fails the selected operations, for
// exercising the fail-closed paths.
type failingGateway struct {
	gateway.DataGateway
	failGroupQueries bool
	failQueries      bool
	failGets         bool
}

var errStoreDown = errors.New("store unreachable")

func (fg *failingGateway) QueryCollection(ctx context.Context, path string, filter map[string]string) ([]types.Document, error) {
	if fg.failQueries {
		return nil, errStoreDown
	}
	return fg.DataGateway.QueryCollection(ctx, path, filter)
}

func (fg *failingGateway) QueryCollectionGroup(ctx context.Context, name string, filter map[string]string) ([]types.Document, error) {
	if fg.failGroupQueries {
		return nil, errStoreDown
	}
	return fg.DataGateway.QueryCollectionGroup(ctx, name, filter)
}

func (fg *failingGateway) GetDocument(ctx context.Context, path string) (types.Document, error) {
	if fg.failGets {
		return types.Document{}, errStoreDown
	}
	return fg.DataGateway.GetDocument(ctx, path)
}

func (fg *failingGateway) RunInTransaction(ctx context.Context, fn func(tx gateway.DataGateway) error) error {
	return fn(fg)
}

type fakeBlobStore struct {
	uploads   []string
	deletes   []string
	uploadErr error
}

func (f *fakeBlobStore) UploadFile(_ context.Context, key string, _ io.Reader) error {
	if f.uploadErr != nil {
		return f.uploadErr
	}
	f.uploads = append(f.uploads, key)
	return nil
}

func (f *fakeBlobStore) DeleteFile(_ context.Context, key string) error {
	f.deletes = append(f.deletes, key)
	return nil
}

func (f *fakeBlobStore) GetPublicURL(key string) string {
	return "https://cdn.test/" + key
}

type fakeAvatarService struct {
	calls int
	err   error
}

func (f *fakeAvatarService) CreateAndUploadUserAvatar(_ context.Context, user *types.User) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	user.AvatarURL = "https://cdn.test/user_avatar/" + user.ID + ".png"
	return nil
}

func (f *fakeAvatarService) GenerateUserAvatar(*types.User) (bytes.Buffer, error) {
	return bytes.Buffer{}, nil
}

type fakeTokenStore struct {
	refreshByUser map[string]string
	userByRefresh map[string]string
	revoked       []string
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{
		refreshByUser: map[string]string{},
		userByRefresh: map[string]string{},
	}
}

func (f *fakeTokenStore) Save(_ context.Context, userID, accessToken, refreshToken string, _ time.Duration) error {
	f.refreshByUser[userID] = refreshToken
	f.userByRefresh[refreshToken] = userID
	return nil
}

func (f *fakeTokenStore) UserIDForRefresh(_ context.Context, refreshToken string) (string, error) {
	userID, ok := f.userByRefresh[refreshToken]
	if !ok {
		return "", errStoreDown
	}
	return userID, nil
}

func (f *fakeTokenStore) RefreshForAccess(_ context.Context, accessToken string) (string, error) {
	return "", errStoreDown
}

func (f *fakeTokenStore) Revoke(_ context.Context, accessToken, refreshToken string) error {
	f.revoked = append(f.revoked, accessToken)
	delete(f.userByRefresh, refreshToken)
	return nil
}
