package passports

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/tuvarna/passport-admin/internal/services/web/apiclient"
	apperrors "github.com/tuvarna/passport-admin/internal/services/web/platform/errors"
	flashnotice "github.com/tuvarna/passport-admin/internal/services/web/platform/flash"
	"github.com/tuvarna/passport-admin/internal/services/web/platform/modulehandler"
	"github.com/tuvarna/passport-admin/internal/services/web/platform/paging"
	"github.com/tuvarna/passport-admin/internal/services/web/platform/submitguard"
	"github.com/tuvarna/passport-admin/internal/services/web/platform/validation"
	"github.com/tuvarna/passport-admin/internal/services/web/routepath"
	webtemplates "github.com/tuvarna/passport-admin/internal/services/web/templates"
)

const (
	noticeCreated = "passports.notice.created"
	noticeUpdated = "passports.notice.updated"
	noticeDeleted = "passports.notice.deleted"
)

// passportService defines the service operations used by passport handlers.
type passportService interface {
	list(ctx context.Context, token string, params paging.Params) (paging.PaginatedData[apiclient.Passport], error)
	get(ctx context.Context, token, rawID string) (apiclient.Passport, error)
	create(ctx context.Context, token string, in apiclient.PassportInput) (apiclient.Passport, error)
	update(ctx context.Context, token, rawID string, in apiclient.PassportInput) (apiclient.Passport, error)
	delete(ctx context.Context, token, rawID string) error
}

type handlers struct {
	modulehandler.Base
	service passportService
}

func newHandlers(s passportService, base modulehandler.Base) handlers {
	return handlers{Base: base, service: s}
}

func (h handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	params := paging.FromURL(r.URL)
	page, err := h.service.list(r.Context(), h.RequestToken(r), params)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	loc, _ := h.PageLocalizer(w, r)
	h.WritePage(w, r, webtemplates.T(loc, "passports.title"), http.StatusOK, indexView(loc, page, params))
}

func (h handlers) handleDetail(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.get(r.Context(), h.RequestToken(r), passportIDFrom(r))
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	loc, _ := h.PageLocalizer(w, r)
	h.WritePage(w, r, p.Name, http.StatusOK, detailView(loc, p))
}

func (h handlers) handleCreateGet(w http.ResponseWriter, r *http.Request) {
	h.renderCreate(w, r, http.StatusOK, formState{token: h.IssueSubmitToken()})
}

func (h handlers) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	form := passportFormFromRequest(r)
	in, errs := form.validate()
	state := formState{form: form, errs: errs, token: h.postedToken(r)}
	if len(errs) > 0 {
		h.renderCreate(w, r, http.StatusUnprocessableEntity, state)
		return
	}
	token := h.RequestToken(r)
	location, err := h.Submit(r, func(ctx context.Context) (string, error) {
		if _, err := h.service.create(ctx, token, in); err != nil {
			return "", err
		}
		return routepath.Passports, nil
	})
	if err != nil {
		if h.abortsForm(err) {
			h.WriteError(w, r, err)
			return
		}
		loc, _ := h.PageLocalizer(w, r)
		state.message = h.FormErrorMessage(loc, err)
		h.renderCreate(w, r, formFailureStatus(err), h.refreshToken(state, err))
		return
	}
	h.WriteFlash(w, r, flashnotice.Success(noticeCreated))
	h.Redirect(w, r, location)
}

func (h handlers) handleEditGet(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.get(r.Context(), h.RequestToken(r), passportIDFrom(r))
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	h.renderEdit(w, r, http.StatusOK, p.ID, formState{form: passportFormFromPassport(p), token: h.IssueSubmitToken()})
}

func (h handlers) handleEditPost(w http.ResponseWriter, r *http.Request) {
	rawID := passportIDFrom(r)
	id, err := parsePassportID(rawID)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	form := passportFormFromRequest(r)
	in, errs := form.validate()
	state := formState{form: form, errs: errs, token: h.postedToken(r)}
	if len(errs) > 0 {
		h.renderEdit(w, r, http.StatusUnprocessableEntity, id, state)
		return
	}
	token := h.RequestToken(r)
	location, err := h.Submit(r, func(ctx context.Context) (string, error) {
		if _, err := h.service.update(ctx, token, rawID, in); err != nil {
			return "", err
		}
		return routepath.Passport(rawID), nil
	})
	if err != nil {
		if h.abortsForm(err) {
			h.WriteError(w, r, err)
			return
		}
		loc, _ := h.PageLocalizer(w, r)
		state.message = h.FormErrorMessage(loc, err)
		h.renderEdit(w, r, formFailureStatus(err), id, h.refreshToken(state, err))
		return
	}
	h.WriteFlash(w, r, flashnotice.Success(noticeUpdated))
	h.Redirect(w, r, location)
}

func (h handlers) handleDeleteGet(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.get(r.Context(), h.RequestToken(r), passportIDFrom(r))
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	h.renderDelete(w, r, http.StatusOK, p, deleteState{
		returnTo: returnToFrom(r.URL.Query().Get(routepath.PassportReturnToField)),
		token:    h.IssueSubmitToken(),
	})
}

// handleDeletePost removes the passport only when the form confirms it.
// The guard makes repeated posts of one confirmation issue a single DELETE.
// Success goes to return_to when it is a local path, otherwise to the list.
func (h handlers) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	rawID := passportIDFrom(r)
	state := deleteState{
		returnTo: returnToFrom(r.PostFormValue(routepath.PassportReturnToField)),
		token:    h.postedToken(r),
	}
	if strings.TrimSpace(r.PostFormValue(routepath.PassportConfirmField)) != routepath.PassportConfirmedValue {
		p, err := h.service.get(r.Context(), h.RequestToken(r), rawID)
		if err != nil {
			h.WriteError(w, r, err)
			return
		}
		h.renderDelete(w, r, http.StatusUnprocessableEntity, p, state)
		return
	}
	token := h.RequestToken(r)
	location, err := h.Submit(r, func(ctx context.Context) (string, error) {
		if err := h.service.delete(ctx, token, rawID); err != nil {
			return "", err
		}
		return routepath.SafeLocalPath(state.returnTo, routepath.Passports), nil
	})
	if err != nil {
		if h.abortsForm(err) {
			h.WriteError(w, r, err)
			return
		}
		p, getErr := h.service.get(r.Context(), token, rawID)
		if getErr != nil {
			h.WriteError(w, r, getErr)
			return
		}
		loc, _ := h.PageLocalizer(w, r)
		state.message = h.FormErrorMessage(loc, err)
		if errors.Is(err, submitguard.ErrMissingToken) {
			state.token = h.IssueSubmitToken()
		}
		h.renderDelete(w, r, formFailureStatus(err), p, state)
		return
	}
	h.WriteFlash(w, r, flashnotice.Success(noticeDeleted))
	h.Redirect(w, r, location)
}

// formState is what a create or edit form renders with.
type formState struct {
	form    passportForm
	errs    validation.Errors
	message string
	token   string
}

// deleteState is what the delete confirmation renders with.
type deleteState struct {
	returnTo string
	message  string
	token    string
}

func (h handlers) renderCreate(w http.ResponseWriter, r *http.Request, status int, state formState) {
	loc, _ := h.PageLocalizer(w, r)
	h.WritePage(w, r, webtemplates.T(loc, "passports.create.title"), status, createView(loc, state))
}

func (h handlers) renderEdit(w http.ResponseWriter, r *http.Request, status int, id int64, state formState) {
	loc, _ := h.PageLocalizer(w, r)
	h.WritePage(w, r, webtemplates.T(loc, "passports.edit.title"), status, editView(loc, id, state))
}

func (h handlers) renderDelete(w http.ResponseWriter, r *http.Request, status int, p apiclient.Passport, state deleteState) {
	loc, _ := h.PageLocalizer(w, r)
	h.WritePage(w, r, webtemplates.T(loc, "passports.delete.title"), status, deleteView(loc, p, state))
}

// postedToken returns the submitted token so a re-rendered form stays
// bound to the same submission, or a fresh one when the post carried none.
func (h handlers) postedToken(r *http.Request) string {
	if token := strings.TrimSpace(r.PostFormValue(submitguard.FieldName)); token != "" {
		return token
	}
	return h.IssueSubmitToken()
}

// refreshToken replaces the token after a missing-token failure.
func (h handlers) refreshToken(state formState, err error) formState {
	if errors.Is(err, submitguard.ErrMissingToken) {
		state.token = h.IssueSubmitToken()
	}
	return state
}

// abortsForm reports failures that leave the form page entirely.
func (h handlers) abortsForm(err error) bool {
	return apperrors.IsUnauthorized(err) || apperrors.Is(err, apperrors.KindNotFound)
}

func formFailureStatus(err error) int {
	status := apperrors.HTTPStatus(err)
	if status < http.StatusBadRequest {
		return http.StatusBadRequest
	}
	return status
}

func passportIDFrom(r *http.Request) string {
	return strings.TrimSpace(r.PathValue(routepath.PassportIDPathValue))
}

func returnToFrom(raw string) string {
	return routepath.SafeLocalPath(raw, "")
}
