package apiclient

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	apperrors "github.com/tuvarna/passport-admin/internal/services/web/platform/errors"
	"github.com/tuvarna/passport-admin/internal/services/web/platform/paging"
)

const (
	loginPath        = "/users/login"
	registrationPath = "/users/registration"
	usersPath        = "/users"
	passportsPath    = "/passports"
)

// Login exchanges credentials for a bearer token. The API answers bad
// credentials with 401, which surfaces as KindUnauthorized.
func (c *Client) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	var resp LoginResponse
	if err := c.Fetch(ctx, http.MethodPost, loginPath, "", req, &resp); err != nil {
		return LoginResponse{}, err
	}
	if strings.TrimSpace(resp.Token) == "" {
		return LoginResponse{}, apperrors.E(apperrors.KindUnknown, "login response missing token")
	}
	return resp, nil
}

// Register creates a user account bound to a purchased device.
func (c *Client) Register(ctx context.Context, req RegistrationRequest) error {
	return c.Fetch(ctx, http.MethodPost, registrationPath, "", req, nil)
}

// ListUsers returns one page of users.
func (c *Client) ListUsers(ctx context.Context, token string, params paging.Params) (paging.PaginatedData[User], error) {
	var page paging.PaginatedData[User]
	if err := c.Fetch(ctx, http.MethodGet, paging.URL(usersPath, params), token, nil, &page); err != nil {
		return paging.PaginatedData[User]{}, err
	}
	return page.Normalize(), nil
}

// ListPassports returns one page of passports.
func (c *Client) ListPassports(ctx context.Context, token string, params paging.Params) (paging.PaginatedData[Passport], error) {
	var page paging.PaginatedData[Passport]
	if err := c.Fetch(ctx, http.MethodGet, paging.URL(passportsPath, params), token, nil, &page); err != nil {
		return paging.PaginatedData[Passport]{}, err
	}
	return page.Normalize(), nil
}

// GetPassport loads one passport. A 404 from the API surfaces as
// KindNotFound.
func (c *Client) GetPassport(ctx context.Context, token string, id int64) (Passport, error) {
	var p Passport
	if err := c.Fetch(ctx, http.MethodGet, passportPath(id), token, nil, &p); err != nil {
		return Passport{}, notFoundFrom(err)
	}
	return p, nil
}

// CreatePassport stores a new passport and returns the API's record, which
// is zero when the API replies with an empty body.
func (c *Client) CreatePassport(ctx context.Context, token string, in PassportInput) (Passport, error) {
	var p Passport
	if err := c.Fetch(ctx, http.MethodPost, passportsPath, token, in, &p); err != nil {
		return Passport{}, err
	}
	return p, nil
}

// UpdatePassport replaces the writable fields of passport id.
func (c *Client) UpdatePassport(ctx context.Context, token string, id int64, in PassportInput) (Passport, error) {
	var p Passport
	if err := c.Fetch(ctx, http.MethodPut, passportPath(id), token, in, &p); err != nil {
		return Passport{}, notFoundFrom(err)
	}
	if p.ID == 0 {
		p.ID = id
	}
	return p, nil
}

// DeletePassport removes passport id.
func (c *Client) DeletePassport(ctx context.Context, token string, id int64) error {
	return notFoundFrom(c.Fetch(ctx, http.MethodDelete, passportPath(id), token, nil, nil))
}

func passportPath(id int64) string {
	return passportsPath + "/" + strconv.FormatInt(id, 10)
}

func notFoundFrom(err error) error {
	if err == nil || apperrors.Status(err) != http.StatusNotFound {
		return err
	}
	return apperrors.Error{Kind: apperrors.KindNotFound, Status: http.StatusNotFound, Message: err.Error(), Err: err}
}
