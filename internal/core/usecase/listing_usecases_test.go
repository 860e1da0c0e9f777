package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listing-admin-service/internal/core/domain"
	"listing-admin-service/internal/core/formstate"
)

func TestGetListing(t *testing.T) {
	api := &fakeAPI{listing: map[string]any{"data": listingPayload("lst-1", "Flat")}}

	l, err := NewGetListingUseCase(api).Execute(context.Background(), "lst-1")
	require.NoError(t, err)
	assert.Equal(t, "lst-1", l.ID)
	assert.Equal(t, 1500000.0, l.Price)
	assert.Equal(t, "Puri", l.AddressParts.City)
}

func TestGetListing_InvalidPayload(t *testing.T) {
	api := &fakeAPI{listing: map[string]any{"id": "lst-1", "title": 42, "price": 1}}

	_, err := NewGetListingUseCase(api).Execute(context.Background(), "lst-1")
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, domain.SourcePayload, verr.Source)
	assert.Equal(t, "/title", verr.Path)
}

func TestListListings(t *testing.T) {
	t.Run("page", func(t *testing.T) {
		api := &fakeAPI{list: map[string]any{
			"items": []any{listingPayload("a", "A"), listingPayload("b", "B")},
			"total": 7.0,
		}}
		page, err := NewListListingsUseCase(api).Execute(context.Background(), domain.ListingQuery{City: "Puri"})
		require.NoError(t, err)
		assert.Len(t, page.Items, 2)
		assert.Equal(t, 7, page.Total)
	})

	t.Run("empty page is not nil", func(t *testing.T) {
		api := &fakeAPI{list: map[string]any{"items": []any{}, "total": 0.0}}
		page, err := NewListListingsUseCase(api).Execute(context.Background(), domain.ListingQuery{})
		require.NoError(t, err)
		assert.NotNil(t, page.Items)
		assert.Empty(t, page.Items)
	})

	t.Run("one bad item fails the page", func(t *testing.T) {
		api := &fakeAPI{list: map[string]any{
			"items": []any{listingPayload("a", "A"), map[string]any{"id": "b"}},
			"total": 2.0,
		}}
		_, err := NewListListingsUseCase(api).Execute(context.Background(), domain.ListingQuery{})
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		require.NotNil(t, verr.Index)
		assert.Equal(t, 1, *verr.Index)
	})

	t.Run("upstream error", func(t *testing.T) {
		api := &fakeAPI{getErr: &domain.UpstreamError{Status: 503}}
		_, err := NewListListingsUseCase(api).Execute(context.Background(), domain.ListingQuery{})
		assert.ErrorIs(t, err, domain.ErrUpstream)
	})
}

func TestGetSimilarListings_DropsInvalidItems(t *testing.T) {
	api := &fakeAPI{similar: []any{
		listingPayload("a", "A"),
		map[string]any{"id": "broken"},
		listingPayload("c", "C"),
	}}

	items, err := NewGetSimilarListingsUseCase(api).Execute(context.Background(), "lst-1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "a", items[0].ID)
	assert.Equal(t, "c", items[1].ID)
}

func TestGetSimilarListings_UnknownShapeIsEmpty(t *testing.T) {
	api := &fakeAPI{similar: "nope"}

	items, err := NewGetSimilarListingsUseCase(api).Execute(context.Background(), "lst-1")
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestCreateListing(t *testing.T) {
	t.Run("invalid form never reaches upstream", func(t *testing.T) {
		api := &fakeAPI{}
		_, err := NewCreateListingUseCase(api, &fakeAudit{}, &fakeEvents{}).Execute(context.Background(), formstate.NewValues())
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Empty(t, api.created)
	})

	t.Run("created", func(t *testing.T) {
		api := &fakeAPI{saved: listingPayload("new-1", "Cottage")}
		audit := &fakeAudit{}
		events := &fakeEvents{}

		v := formstate.NewValues()
		v.Title = "Cottage"
		v.Price = "900000"

		l, err := NewCreateListingUseCase(api, audit, events).Execute(context.Background(), v)
		require.NoError(t, err)
		require.NotNil(t, l)
		assert.Equal(t, "new-1", l.ID)

		require.Len(t, api.created, 1)
		assert.Equal(t, "Cottage", api.created[0].Patch["title"])
		assert.False(t, api.created[0].Media.HasChanges())

		require.Len(t, audit.entries, 1)
		assert.Equal(t, domain.ChangeCreated, audit.entries[0].Kind)
		assert.Equal(t, "new-1", audit.entries[0].ListingID)
		require.Len(t, events.events, 1)
		assert.Contains(t, events.events[0].ChangedFields, "title")
	})

	t.Run("undecodable response is not an error", func(t *testing.T) {
		api := &fakeAPI{saved: map[string]any{"ok": true}}
		v := formstate.NewValues()
		v.Title = "Cottage"

		l, err := NewCreateListingUseCase(api, &fakeAudit{}, &fakeEvents{}).Execute(context.Background(), v)
		require.NoError(t, err)
		assert.Nil(t, l)
	})
}

func TestDeleteListing(t *testing.T) {
	api := &fakeAPI{}
	audit := &fakeAudit{}
	events := &fakeEvents{}

	require.NoError(t, NewDeleteListingUseCase(api, audit, events).Execute(context.Background(), "lst-1"))
	assert.Equal(t, []string{"lst-1"}, api.deleted)
	require.Len(t, audit.entries, 1)
	assert.Equal(t, domain.ChangeDeleted, audit.entries[0].Kind)
	require.Len(t, events.events, 1)
	assert.False(t, events.events[0].MediaChanged)

	api.deleteErr = &domain.UpstreamError{Status: 404}
	err := NewDeleteListingUseCase(api, audit, events).Execute(context.Background(), "lst-2")
	assert.ErrorIs(t, err, domain.ErrUpstream)
	assert.Len(t, audit.entries, 1)
}

func TestGetPatchHistory_ClampsLimit(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, 20},
		{-3, 20},
		{50, 50},
		{1000, 100},
	}
	for _, tt := range tests {
		audit := &fakeAudit{}
		entries, err := NewGetPatchHistoryUseCase(audit).Execute(context.Background(), "lst-1", tt.in)
		require.NoError(t, err)
		assert.NotNil(t, entries)
		assert.Equal(t, tt.want, audit.limit)
	}
}

func TestGetPatchHistory_Error(t *testing.T) {
	_, err := NewGetPatchHistoryUseCase(&fakeAudit{err: errors.New("db down")}).Execute(context.Background(), "lst-1", 5)
	assert.ErrorContains(t, err, "db down")
}

func TestGetListingOptions(t *testing.T) {
	opts := NewGetListingOptionsUseCase().Execute(context.Background())
	assert.NotEmpty(t, opts.Categories)
	assert.NotEmpty(t, opts.AreaUnits)
}

func TestCreateInterest(t *testing.T) {
	t.Run("trims and forwards", func(t *testing.T) {
		api := &fakeAPI{}
		msg := "  "
		err := NewCreateInterestUseCase(api).Execute(context.Background(), domain.InterestRequest{
			ListingID: "lst-1", Name: " Asha ", Phone: " +91 98765 43210 ", Message: &msg,
		})
		require.NoError(t, err)
		require.Len(t, api.interests, 1)
		assert.Equal(t, "Asha", api.interests[0].Name)
		assert.Equal(t, "+91 98765 43210", api.interests[0].Phone)
		assert.Nil(t, api.interests[0].Message)
	})

	t.Run("missing fields", func(t *testing.T) {
		api := &fakeAPI{}
		err := NewCreateInterestUseCase(api).Execute(context.Background(), domain.InterestRequest{ListingID: "lst-1", Name: " "})
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Len(t, verr.Issues, 2)
		assert.Empty(t, api.interests)
	})
}

func TestGetListingInterests(t *testing.T) {
	api := &fakeAPI{interestPayload: map[string]any{
		"data": map[string]any{
			"items": []any{map[string]any{"id": "i1", "name": "Asha", "phone": "+91 1"}},
		},
	}}

	page, err := NewGetListingInterestsUseCase(api).Execute(context.Background(), "lst-1", 0, 500)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Asha", page.Items[0].Name)
	assert.Equal(t, [2]int{1, 100}, api.interestQueries[0])
}
