package passports

import (
	"context"

	"github.com/tuvarna/passport-admin/internal/services/web/apiclient"
	"github.com/tuvarna/passport-admin/internal/services/web/platform/paging"
)

// NewAPIGateway backs the module with the remote passports API. A nil
// client yields the unavailable gateway.
func NewAPIGateway(client *apiclient.Client) PassportGateway {
	if client == nil {
		return unavailableGateway{}
	}
	return apiGateway{client: client}
}

type apiGateway struct {
	client *apiclient.Client
}

func (g apiGateway) ListPassports(ctx context.Context, token string, params paging.Params) (paging.PaginatedData[apiclient.Passport], error) {
	return g.client.ListPassports(ctx, token, params)
}

func (g apiGateway) GetPassport(ctx context.Context, token string, id int64) (apiclient.Passport, error) {
	return g.client.GetPassport(ctx, token, id)
}

func (g apiGateway) CreatePassport(ctx context.Context, token string, in apiclient.PassportInput) (apiclient.Passport, error) {
	return g.client.CreatePassport(ctx, token, in)
}

func (g apiGateway) UpdatePassport(ctx context.Context, token string, id int64, in apiclient.PassportInput) (apiclient.Passport, error) {
	return g.client.UpdatePassport(ctx, token, id, in)
}

func (g apiGateway) DeletePassport(ctx context.Context, token string, id int64) error {
	return g.client.DeletePassport(ctx, token, id)
}
