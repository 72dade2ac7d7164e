package passports

import (
	"context"
	"strconv"
	"strings"

	"github.com/tuvarna/passport-admin/internal/services/web/apiclient"
	apperrors "github.com/tuvarna/passport-admin/internal/services/web/platform/errors"
	"github.com/tuvarna/passport-admin/internal/services/web/platform/paging"
)

// PassportGateway reads and writes passports on behalf of the bearer token.
type PassportGateway interface {
	ListPassports(ctx context.Context, token string, params paging.Params) (paging.PaginatedData[apiclient.Passport], error)
	GetPassport(ctx context.Context, token string, id int64) (apiclient.Passport, error)
	CreatePassport(ctx context.Context, token string, in apiclient.PassportInput) (apiclient.Passport, error)
	UpdatePassport(ctx context.Context, token string, id int64, in apiclient.PassportInput) (apiclient.Passport, error)
	DeletePassport(ctx context.Context, token string, id int64) error
}

type unavailableGateway struct{}

func errUnavailable() error {
	return apperrors.E(apperrors.KindUnavailable, "passports service is not configured")
}

func (unavailableGateway) ListPassports(context.Context, string, paging.Params) (paging.PaginatedData[apiclient.Passport], error) {
	return paging.PaginatedData[apiclient.Passport]{}, errUnavailable()
}

func (unavailableGateway) GetPassport(context.Context, string, int64) (apiclient.Passport, error) {
	return apiclient.Passport{}, errUnavailable()
}

func (unavailableGateway) CreatePassport(context.Context, string, apiclient.PassportInput) (apiclient.Passport, error) {
	return apiclient.Passport{}, errUnavailable()
}

func (unavailableGateway) UpdatePassport(context.Context, string, int64, apiclient.PassportInput) (apiclient.Passport, error) {
	return apiclient.Passport{}, errUnavailable()
}

func (unavailableGateway) DeletePassport(context.Context, string, int64) error {
	return errUnavailable()
}

type service struct {
	gateway PassportGateway
}

func newService(gateway PassportGateway) service {
	if gateway == nil {
		gateway = unavailableGateway{}
	}
	return service{gateway: gateway}
}

func (s service) list(ctx context.Context, token string, params paging.Params) (paging.PaginatedData[apiclient.Passport], error) {
	page, err := s.gateway.ListPassports(ctx, token, params.Normalize())
	if err != nil {
		return paging.PaginatedData[apiclient.Passport]{}, err
	}
	return page.Normalize(), nil
}

func (s service) get(ctx context.Context, token, rawID string) (apiclient.Passport, error) {
	id, err := parsePassportID(rawID)
	if err != nil {
		return apiclient.Passport{}, err
	}
	p, err := s.gateway.GetPassport(ctx, token, id)
	if err != nil {
		return apiclient.Passport{}, err
	}
	if p.ID == 0 {
		p.ID = id
	}
	return p, nil
}

func (s service) create(ctx context.Context, token string, in apiclient.PassportInput) (apiclient.Passport, error) {
	return s.gateway.CreatePassport(ctx, token, in)
}

func (s service) update(ctx context.Context, token, rawID string, in apiclient.PassportInput) (apiclient.Passport, error) {
	id, err := parsePassportID(rawID)
	if err != nil {
		return apiclient.Passport{}, err
	}
	return s.gateway.UpdatePassport(ctx, token, id, in)
}

func (s service) delete(ctx context.Context, token, rawID string) error {
	id, err := parsePassportID(rawID)
	if err != nil {
		return err
	}
	return s.gateway.DeletePassport(ctx, token, id)
}

// parsePassportID accepts positive base-10 ids. Anything else cannot name a
// passport and is reported as not found.
func parsePassportID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.E(apperrors.KindNotFound, "passport not found")
	}
	return id, nil
}
