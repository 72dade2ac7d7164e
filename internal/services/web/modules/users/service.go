package users

import (
	"context"

	"github.com/tuvarna/passport-admin/internal/services/web/apiclient"
	apperrors "github.com/tuvarna/passport-admin/internal/services/web/platform/errors"
	"github.com/tuvarna/passport-admin/internal/services/web/platform/paging"
)

// UserGateway lists users on behalf of the bearer token.
type UserGateway interface {
	ListUsers(ctx context.Context, token string, params paging.Params) (paging.PaginatedData[apiclient.User], error)
}

// NewAPIGateway backs the module with the remote users API. A nil client
// yields the unavailable gateway.
func NewAPIGateway(client *apiclient.Client) UserGateway {
	if client == nil {
		return unavailableGateway{}
	}
	return client
}

type unavailableGateway struct{}

func (unavailableGateway) ListUsers(context.Context, string, paging.Params) (paging.PaginatedData[apiclient.User], error) {
	return paging.PaginatedData[apiclient.User]{}, apperrors.E(apperrors.KindUnavailable, "users service is not configured")
}

type service struct {
	gateway UserGateway
}

func newService(gateway UserGateway) service {
	if gateway == nil {
		gateway = unavailableGateway{}
	}
	return service{gateway: gateway}
}

func (s service) list(ctx context.Context, token string, params paging.Params) (paging.PaginatedData[apiclient.User], error) {
	page, err := s.gateway.ListUsers(ctx, token, params.Normalize())
	if err != nil {
		return paging.PaginatedData[apiclient.User]{}, err
	}
	return page.Normalize(), nil
}
