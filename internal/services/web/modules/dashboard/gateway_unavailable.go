package dashboard

import (
	"context"

	apperrors "github.com/tuvarna/passport-admin/internal/services/web/platform/errors"
)

type unavailableGateway struct{}

func (unavailableGateway) LoadDashboard(context.Context, string) (DashboardSnapshot, error) {
	return DashboardSnapshot{}, apperrors.E(apperrors.KindUnavailable, "dashboard service is not configured")
}
