package dashboard

import (
	"context"
	"slices"
	"strings"

	apperrors "github.com/tuvarna/passport-admin/internal/services/web/platform/errors"
)

const (
	degradedDependencyPassports = "api.passports"
	degradedDependencyUsers     = "api.users"
)

// DashboardView is the dashboard view model derived from the API summary.
type DashboardView struct {
	ViewerName     string
	PassportTotal  int
	UserTotal      int
	ShowTotals     bool
	ShowUsersTotal bool
}

// DashboardSnapshot contains the record totals shown on the dashboard.
type DashboardSnapshot struct {
	PassportTotal        int
	UserTotal            int
	DegradedDependencies []string
}

// DashboardGateway loads the dashboard summary for one bearer token.
type DashboardGateway interface {
	LoadDashboard(ctx context.Context, token string) (DashboardSnapshot, error)
}

type service struct {
	readGateway DashboardGateway
}

func newService(gateway DashboardGateway) service {
	if gateway == nil {
		gateway = unavailableGateway{}
	}
	return service{readGateway: gateway}
}

// loadDashboard never fails the page over a summary outage. Only an
// Unauthorized error is returned so the session can be recovered.
func (s service) loadDashboard(ctx context.Context, token, viewerName string) (DashboardView, error) {
	view := DashboardView{ViewerName: strings.TrimSpace(viewerName)}
	token = strings.TrimSpace(token)
	if token == "" {
		return view, nil
	}
	snapshot, err := s.readGateway.LoadDashboard(ctx, token)
	if err != nil {
		if apperrors.IsUnauthorized(err) {
			return DashboardView{}, err
		}
		return view, nil
	}
	if hasDegradedDependency(snapshot.DegradedDependencies, degradedDependencyPassports) {
		return view, nil
	}
	view.ShowTotals = true
	view.PassportTotal = max(snapshot.PassportTotal, 0)
	if !hasDegradedDependency(snapshot.DegradedDependencies, degradedDependencyUsers) {
		view.ShowUsersTotal = true
		view.UserTotal = max(snapshot.UserTotal, 0)
	}
	return view, nil
}

func hasDegradedDependency(values []string, want string) bool {
	want = strings.TrimSpace(want)
	if want == "" {
		return false
	}
	return slices.ContainsFunc(values, func(value string) bool {
		return strings.EqualFold(strings.TrimSpace(value), want)
	})
}
