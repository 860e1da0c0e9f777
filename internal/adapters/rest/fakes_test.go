package rest

import (
	"context"
	"io"
	"net/http"
	"time"

	logger_adapter "listing-admin-service/internal/adapters/logger"
	"listing-admin-service/internal/core/domain"
	"listing-admin-service/internal/core/editsession"
	"listing-admin-service/internal/core/formstate"
	"listing-admin-service/internal/core/media"
	"listing-admin-service/internal/core/port/usecases_port"
)

type fakeGetListing func(ctx context.Context, id string) (*domain.Listing, error)

func (f fakeGetListing) Execute(ctx context.Context, id string) (*domain.Listing, error) {
	return f(ctx, id)
}

type fakeListListings func(ctx context.Context, q domain.ListingQuery) (*domain.ListingPage, error)

func (f fakeListListings) Execute(ctx context.Context, q domain.ListingQuery) (*domain.ListingPage, error) {
	return f(ctx, q)
}

type fakeSimilar func(ctx context.Context, id string) ([]domain.Listing, error)

func (f fakeSimilar) Execute(ctx context.Context, id string) ([]domain.Listing, error) {
	return f(ctx, id)
}

type fakeCreateListing func(ctx context.Context, v formstate.Values) (*domain.Listing, error)

func (f fakeCreateListing) Execute(ctx context.Context, v formstate.Values) (*domain.Listing, error) {
	return f(ctx, v)
}

type fakeDeleteListing func(ctx context.Context, id string) error

func (f fakeDeleteListing) Execute(ctx context.Context, id string) error { return f(ctx, id) }

type fakeOptions struct{}

func (fakeOptions) Execute(ctx context.Context) domain.ListingOptions {
	return domain.DefaultListingOptions()
}

type fakeHistory func(ctx context.Context, listingID string, limit int) ([]domain.PatchAuditEntry, error)

func (f fakeHistory) Execute(ctx context.Context, listingID string, limit int) ([]domain.PatchAuditEntry, error) {
	return f(ctx, listingID, limit)
}

type fakeSessionByID func(ctx context.Context, id string) (*editsession.Session, error)

func (f fakeSessionByID) Execute(ctx context.Context, id string) (*editsession.Session, error) {
	return f(ctx, id)
}

type fakeUpdateForm func(ctx context.Context, id string, v formstate.Values) (*editsession.Session, error)

func (f fakeUpdateForm) Execute(ctx context.Context, id string, v formstate.Values) (*editsession.Session, error) {
	return f(ctx, id, v)
}

type fakeApplyMedia func(ctx context.Context, id string, ev media.Event) (*editsession.Session, error)

func (f fakeApplyMedia) Execute(ctx context.Context, id string, ev media.Event) (*editsession.Session, error) {
	return f(ctx, id, ev)
}

type fakeAttach func(ctx context.Context, id string, target usecases_port.UploadTarget, files []usecases_port.UploadFile) (*editsession.Session, error)

func (f fakeAttach) Execute(ctx context.Context, id string, target usecases_port.UploadTarget, files []usecases_port.UploadFile) (*editsession.Session, error) {
	return f(ctx, id, target, files)
}

type fakePreview func(ctx context.Context, id string) (*editsession.Preview, error)

func (f fakePreview) Execute(ctx context.Context, id string) (*editsession.Preview, error) {
	return f(ctx, id)
}

type fakeSubmit func(ctx context.Context, id string) (*usecases_port.SubmitResult, error)

func (f fakeSubmit) Execute(ctx context.Context, id string) (*usecases_port.SubmitResult, error) {
	return f(ctx, id)
}

type fakeCancel func(ctx context.Context, id string) error

func (f fakeCancel) Execute(ctx context.Context, id string) error { return f(ctx, id) }

type fakeCreateInterest func(ctx context.Context, req domain.InterestRequest) error

func (f fakeCreateInterest) Execute(ctx context.Context, req domain.InterestRequest) error {
	return f(ctx, req)
}

type fakeListInterests func(ctx context.Context, listingID string, page, pageSize int) (*domain.InterestPage, error)

func (f fakeListInterests) Execute(ctx context.Context, listingID string, page, pageSize int) (*domain.InterestPage, error) {
	return f(ctx, listingID, page, pageSize)
}

var testNow = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func loadedSession(id, listingID string) *editsession.Session {
	if listingID == "" {
		return editsession.NewCreate(id, testNow)
	}
	s := editsession.NewEdit(id, listingID, testNow)
	s.Loaded = true
	return s
}

// testDeps - набор фейковых use case. Незаданные возвращают нулевые результаты.
type testDeps struct {
	getListing     fakeGetListing
	listListings   fakeListListings
	similar        fakeSimilar
	createListing  fakeCreateListing
	deleteListing  fakeDeleteListing
	history        fakeHistory
	open           fakeSessionByID
	reload         fakeSessionByID
	get            fakeSessionByID
	form           fakeUpdateForm
	media          fakeApplyMedia
	attach         fakeAttach
	preview        fakePreview
	submit         fakeSubmit
	cancel         fakeCancel
	createInterest fakeCreateInterest
	listInterests  fakeListInterests
	origins        []string
}

func (d testDeps) router() http.Handler {
	sessionByID := func(f fakeSessionByID) fakeSessionByID {
		if f != nil {
			return f
		}
		return func(ctx context.Context, id string) (*editsession.Session, error) {
			return loadedSession(id, "lst-1"), nil
		}
	}
	if d.getListing == nil {
		d.getListing = func(ctx context.Context, id string) (*domain.Listing, error) {
			return &domain.Listing{ID: id, Title: "Flat"}, nil
		}
	}
	if d.listListings == nil {
		d.listListings = func(ctx context.Context, q domain.ListingQuery) (*domain.ListingPage, error) {
			return &domain.ListingPage{Items: []domain.Listing{}}, nil
		}
	}
	if d.similar == nil {
		d.similar = func(ctx context.Context, id string) ([]domain.Listing, error) { return nil, nil }
	}
	if d.createListing == nil {
		d.createListing = func(ctx context.Context, v formstate.Values) (*domain.Listing, error) { return nil, nil }
	}
	if d.deleteListing == nil {
		d.deleteListing = func(ctx context.Context, id string) error { return nil }
	}
	if d.history == nil {
		d.history = func(ctx context.Context, listingID string, limit int) ([]domain.PatchAuditEntry, error) {
			return nil, nil
		}
	}
	if d.form == nil {
		d.form = func(ctx context.Context, id string, v formstate.Values) (*editsession.Session, error) {
			return loadedSession(id, "lst-1"), nil
		}
	}
	if d.media == nil {
		d.media = func(ctx context.Context, id string, ev media.Event) (*editsession.Session, error) {
			return loadedSession(id, "lst-1"), nil
		}
	}
	if d.attach == nil {
		d.attach = func(ctx context.Context, id string, target usecases_port.UploadTarget, files []usecases_port.UploadFile) (*editsession.Session, error) {
			return loadedSession(id, "lst-1"), nil
		}
	}
	if d.preview == nil {
		d.preview = func(ctx context.Context, id string) (*editsession.Preview, error) {
			return &editsession.Preview{Snapshot: map[string]any{}, Patch: map[string]any{}}, nil
		}
	}
	if d.submit == nil {
		d.submit = func(ctx context.Context, id string) (*usecases_port.SubmitResult, error) {
			return &usecases_port.SubmitResult{ListingID: "lst-1", Kind: domain.ChangeUpdated}, nil
		}
	}
	if d.cancel == nil {
		d.cancel = func(ctx context.Context, id string) error { return nil }
	}
	if d.createInterest == nil {
		d.createInterest = func(ctx context.Context, req domain.InterestRequest) error { return nil }
	}
	if d.listInterests == nil {
		d.listInterests = func(ctx context.Context, listingID string, page, pageSize int) (*domain.InterestPage, error) {
			return &domain.InterestPage{Items: []domain.Interest{}}, nil
		}
	}

	listings := NewListingHandler(d.getListing, d.listListings, d.similar, d.createListing, d.deleteListing, fakeOptions{}, d.history)
	sessions := NewEditSessionHandler(
		sessionByID(d.open), sessionByID(d.reload), sessionByID(d.get),
		d.form, d.media, d.attach, d.preview, d.submit, d.cancel,
	)
	interests := NewInterestHandler(d.createInterest, d.listInterests)

	baseLogger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{Writer: io.Discard})
	return NewRouter(ServerConfig{AllowedOrigins: d.origins}, listings, sessions, interests, baseLogger)
}
