package dashboard

import (
	"context"
	"net/http"
	"sync/atomic"

	"github.com/tuvarna/passport-admin/internal/services/web/apiclient"
	module "github.com/tuvarna/passport-admin/internal/services/web/module"
	"github.com/tuvarna/passport-admin/internal/services/web/platform/modulehandler"
	"github.com/tuvarna/passport-admin/internal/services/web/platform/paging"
)

type fakeGateway struct {
	snapshot  DashboardSnapshot
	err       error
	lastToken string
	calls     int
}

func (f *fakeGateway) LoadDashboard(_ context.Context, token string) (DashboardSnapshot, error) {
	f.calls++
	f.lastToken = token
	return f.snapshot, f.err
}

// fakeLister stands in for the API client behind apiGateway.
type fakeLister struct {
	passports    paging.PaginatedData[apiclient.Passport]
	users        paging.PaginatedData[apiclient.User]
	passportsErr error
	usersErr     error
	lastParams   atomic.Value
}

func (f *fakeLister) ListPassports(ctx context.Context, _ string, params paging.Params) (paging.PaginatedData[apiclient.Passport], error) {
	f.lastParams.Store(params)
	if f.passportsErr != nil {
		return paging.PaginatedData[apiclient.Passport]{}, f.passportsErr
	}
	return f.passports, ctx.Err()
}

func (f *fakeLister) ListUsers(ctx context.Context, _ string, params paging.Params) (paging.PaginatedData[apiclient.User], error) {
	if f.usersErr != nil {
		return paging.PaginatedData[apiclient.User]{}, f.usersErr
	}
	return f.users, nil
}

func dashboardTestBase(token string, cleared *atomic.Int32) modulehandler.Base {
	return modulehandler.NewBase(module.Dependencies{
		ResolveViewer: func(*http.Request) module.Viewer { return module.Viewer{DisplayName: "Ana Ivanova"} },
		ResolveToken:  func(*http.Request) string { return token },
		ClearSession:  func(http.ResponseWriter, *http.Request) { cleared.Add(1) },
	})
}
