package passports

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/tuvarna/passport-admin/internal/services/web/apiclient"
	"github.com/tuvarna/passport-admin/internal/services/web/module"
	apperrors "github.com/tuvarna/passport-admin/internal/services/web/platform/errors"
	"github.com/tuvarna/passport-admin/internal/services/web/platform/modulehandler"
	"github.com/tuvarna/passport-admin/internal/services/web/platform/paging"
	"github.com/tuvarna/passport-admin/internal/services/web/platform/submitguard"
)

const testToken = "api-token-1"

// fakeGateway implements PassportGateway for tests with configurable return
// values, error injection, and call recording.
type fakeGateway struct {
	mu sync.Mutex

	page      paging.PaginatedData[apiclient.Passport]
	passports map[int64]apiclient.Passport
	listErr   error
	getErr    error
	createErr error
	updateErr error
	deleteErr error

	lastParams  paging.Params
	lastToken   string
	lastInput   apiclient.PassportInput
	lastID      int64
	listCalls   int
	getCalls    int
	createCalls int
	updateCalls int
	deleteCalls int
}

func newPopulatedFakeGateway() *fakeGateway {
	boiler := apiclient.Passport{ID: 7, Name: "Boiler X", Model: "BX-200", SerialPrefix: "BX", FromSerialNumber: 1000, ToSerialNumber: 1999, WarrantyMonths: 24}
	pump := apiclient.Passport{ID: 8, Name: "Heat Pump", Model: "HP-1", SerialPrefix: "HP", FromSerialNumber: 1, ToSerialNumber: 500, WarrantyMonths: 36}
	return &fakeGateway{
		page: paging.PaginatedData[apiclient.Passport]{
			CurrentPage: 1, TotalPages: 1, Size: 10, TotalItems: 2,
			Items: []apiclient.Passport{boiler, pump},
		},
		passports: map[int64]apiclient.Passport{boiler.ID: boiler, pump.ID: pump},
	}
}

func (f *fakeGateway) ListPassports(_ context.Context, token string, params paging.Params) (paging.PaginatedData[apiclient.Passport], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	f.lastToken = token
	f.lastParams = params
	if f.listErr != nil {
		return paging.PaginatedData[apiclient.Passport]{}, f.listErr
	}
	return f.page, nil
}

func (f *fakeGateway) GetPassport(_ context.Context, token string, id int64) (apiclient.Passport, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls++
	f.lastToken = token
	f.lastID = id
	if f.getErr != nil {
		return apiclient.Passport{}, f.getErr
	}
	p, ok := f.passports[id]
	if !ok {
		return apiclient.Passport{}, errNotFound
	}
	return p, nil
}

func (f *fakeGateway) CreatePassport(_ context.Context, token string, in apiclient.PassportInput) (apiclient.Passport, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	f.lastToken = token
	f.lastInput = in
	if f.createErr != nil {
		return apiclient.Passport{}, f.createErr
	}
	return apiclient.Passport{ID: 99, Name: in.Name}, nil
}

func (f *fakeGateway) UpdatePassport(_ context.Context, token string, id int64, in apiclient.PassportInput) (apiclient.Passport, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateCalls++
	f.lastToken = token
	f.lastID = id
	f.lastInput = in
	if f.updateErr != nil {
		return apiclient.Passport{}, f.updateErr
	}
	return apiclient.Passport{ID: id, Name: in.Name}, nil
}

func (f *fakeGateway) DeletePassport(_ context.Context, token string, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteCalls++
	f.lastToken = token
	f.lastID = id
	return f.deleteErr
}

func (f *fakeGateway) calls() (create, update, del int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.createCalls, f.updateCalls, f.deleteCalls
}

// blockingCreateGateway holds CreatePassport until release is closed and
// fails with the context error if its call context was cancelled meanwhile.
type blockingCreateGateway struct {
	*fakeGateway
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func newBlockingCreateGateway() *blockingCreateGateway {
	return &blockingCreateGateway{
		fakeGateway: newPopulatedFakeGateway(),
		started:     make(chan struct{}),
		release:     make(chan struct{}),
	}
}

func (g *blockingCreateGateway) CreatePassport(ctx context.Context, token string, in apiclient.PassportInput) (apiclient.Passport, error) {
	g.once.Do(func() { close(g.started) })
	<-g.release
	if err := ctx.Err(); err != nil {
		return apiclient.Passport{}, apperrors.Wrap(apperrors.KindUnavailable, "create passport", err)
	}
	return g.fakeGateway.CreatePassport(ctx, token, in)
}

var errNotFound = apperrors.E(apperrors.KindNotFound, "passport not found")

// testDeps records session clears so tests can assert the 401 recovery.
type testDeps struct {
	cleared atomic.Int32
	guard   *submitguard.Guard
}

func newTestDeps() *testDeps {
	return &testDeps{guard: submitguard.New(submitguard.DefaultRetention)}
}

func (d *testDeps) base() modulehandler.Base {
	return modulehandler.NewBase(module.Dependencies{
		ResolveViewer:   func(*http.Request) module.Viewer { return module.Viewer{DisplayName: "Ana Ivanova"} },
		ResolveSignedIn: func(*http.Request) bool { return true },
		ResolveToken:    func(*http.Request) string { return testToken },
		ClearSession:    func(http.ResponseWriter, *http.Request) { d.cleared.Add(1) },
		SubmitGuard:     d.guard,
	})
}
