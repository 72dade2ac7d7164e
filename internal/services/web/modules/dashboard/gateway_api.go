package dashboard

import (
	"context"
	"log"

	"github.com/tuvarna/passport-admin/internal/services/web/apiclient"
	apperrors "github.com/tuvarna/passport-admin/internal/services/web/platform/errors"
	"github.com/tuvarna/passport-admin/internal/services/web/platform/paging"
	"golang.org/x/sync/errgroup"
)

// summaryLister is the part of the API client the dashboard reads totals from.
type summaryLister interface {
	ListPassports(ctx context.Context, token string, params paging.Params) (paging.PaginatedData[apiclient.Passport], error)
	ListUsers(ctx context.Context, token string, params paging.Params) (paging.PaginatedData[apiclient.User], error)
}

// NewAPIGateway reads dashboard totals from the first page of each remote
// collection. A nil client yields the unavailable gateway.
func NewAPIGateway(client *apiclient.Client) DashboardGateway {
	if client == nil {
		return unavailableGateway{}
	}
	return apiGateway{client: client}
}

type apiGateway struct {
	client summaryLister
}

// LoadDashboard fetches both totals concurrently. A failing collection is
// reported as degraded; an Unauthorized response aborts the load.
func (g apiGateway) LoadDashboard(ctx context.Context, token string) (DashboardSnapshot, error) {
	first := paging.Params{Page: paging.DefaultPage, Size: paging.DefaultSize}
	var (
		snapshot        DashboardSnapshot
		passportsFailed bool
		usersFailed     bool
	)
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		page, err := g.client.ListPassports(groupCtx, token, first)
		if err != nil {
			passportsFailed = true
			return degradeUnlessUnauthorized("passports", err)
		}
		snapshot.PassportTotal = page.TotalItems
		return nil
	})
	group.Go(func() error {
		page, err := g.client.ListUsers(groupCtx, token, first)
		if err != nil {
			usersFailed = true
			return degradeUnlessUnauthorized("users", err)
		}
		snapshot.UserTotal = page.TotalItems
		return nil
	})
	if err := group.Wait(); err != nil {
		return DashboardSnapshot{}, err
	}
	if passportsFailed {
		snapshot.DegradedDependencies = append(snapshot.DegradedDependencies, degradedDependencyPassports)
	}
	if usersFailed {
		snapshot.DegradedDependencies = append(snapshot.DegradedDependencies, degradedDependencyUsers)
	}
	return snapshot, nil
}

func degradeUnlessUnauthorized(source string, err error) error {
	if apperrors.IsUnauthorized(err) {
		return err
	}
	log.Printf("dashboard summary degraded source=%s err=%v", source, err)
	return nil
}
