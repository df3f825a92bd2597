package services

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/tecsup/autobody-backend/internal/logger"
	"github.com/tecsup/autobody-backend/internal/repos"
	"github.com/tecsup/autobody-backend/internal/types"
)

// AdminAggregator assembles the admin dashboard: every service request in
// the store joined at read time with its owner and the plate-matched
// vehicle. There is no denormalized admin table to keep in sync.
type AdminAggregator interface {
	AllServices(ctx context.Context) ([]*types.AdminServiceView, error)
	Filter(records []*types.AdminServiceView, query string) []*types.AdminServiceView
}

type adminAggregator struct {
	log         *logger.Logger
	serviceRepo repos.ServiceRepo
	userRepo    repos.UserRepo
	vehicleRepo repos.VehicleRepo
}

func NewAdminAggregator(
	log *logger.Logger,
	serviceRepo repos.ServiceRepo,
	userRepo repos.UserRepo,
	vehicleRepo repos.VehicleRepo,
) AdminAggregator {
	serviceLog := log.With("service", "AdminAggregator")
	return &adminAggregator{
		log:         serviceLog,
		serviceRepo: serviceRepo,
		userRepo:    userRepo,
		vehicleRepo: vehicleRepo,
	}
}

func (ag *adminAggregator) AllServices(ctx context.Context) ([]*types.AdminServiceView, error) {
	docs, err := ag.serviceRepo.ListAllDocuments(ctx, nil)
	if err != nil {
		return nil, err
	}

	var mu sync.Mutex
	views := make([]*types.AdminServiceView, 0, len(docs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for _, doc := range docs {
		doc := doc
		g.Go(func() error {
			view, err := ag.assembleView(gctx, doc)
			if err != nil {
				// one broken record must not empty the whole dashboard
				ag.log.Warn("Skipping service record in admin view",
					"path", doc.Path, "error", err)
				return nil
			}
			mu.Lock()
			views = append(views, view)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(views, func(i, j int) bool {
		return createdAtMillis(views[i].CreatedAt) > createdAtMillis(views[j].CreatedAt)
	})
	return views, nil
}

func (ag *adminAggregator) assembleView(ctx context.Context, doc types.Document) (*types.AdminServiceView, error) {
	service := types.ServiceFromDocument(doc)
	ownerID := doc.OwnerUserID()
	service.UserID = ownerID

	view := &types.AdminServiceView{
		Service:       *service,
		ClientName:    types.SentinelUnknownClient,
		ClientDniRuc:  types.SentinelUnknown,
		ClientAddress: types.SentinelUnknown,
		ClientPhone:   types.SentinelUnknown,
		ClientEmail:   types.SentinelUnknown,
		VehicleBrand:  types.SentinelUnknown,
		VehicleModel:  types.SentinelUnknown,
		VehicleYear:   types.SentinelUnknown,
		VehicleColor:  types.SentinelUnknown,
	}

	user, err := ag.userRepo.GetByID(ctx, nil, ownerID)
	if err != nil {
		return nil, err
	}
	view.ClientName = user.Name
	view.ClientDniRuc = user.DNI
	view.ClientAddress = user.Address
	view.ClientPhone = user.Phone
	view.ClientEmail = user.Email

	if service.VehiclePlaca != "" {
		vehicles, err := ag.vehicleRepo.FindByPlacaForUser(ctx, nil, ownerID, service.VehiclePlaca)
		if err != nil {
			return nil, err
		}
		if len(vehicles) > 0 {
			v := vehicles[0]
			view.VehicleBrand = v.Brand
			view.VehicleModel = v.Model
			view.VehicleYear = v.Year
			view.VehicleColor = v.Color
		}
	}
	return view, nil
}

// Filter keeps records whose plate or any work detail contains the query,
// case-insensitive. An empty query keeps everything.
func (ag *adminAggregator) Filter(records []*types.AdminServiceView, query string) []*types.AdminServiceView {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return records
	}
	out := make([]*types.AdminServiceView, 0, len(records))
	for _, rec := range records {
		if strings.Contains(strings.ToLower(rec.VehiclePlaca), query) {
			out = append(out, rec)
			continue
		}
		for _, detail := range rec.WorkDetails {
			if strings.Contains(strings.ToLower(detail), query) {
				out = append(out, rec)
				break
			}
		}
	}
	return out
}

func createdAtMillis(s string) int64 {
	millis, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return millis
}
