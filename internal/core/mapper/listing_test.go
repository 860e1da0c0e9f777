package mapper

import (
	"encoding/json"
	"errors"
	"testing"

	"listing-admin-service/internal/core/domain"
	"listing-admin-service/internal/core/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mapPayload(t *testing.T, payload any) domain.Listing {
	t.Helper()
	w, err := validation.ParseListing(payload)
	require.NoError(t, err)
	l, err := ToListing(w)
	require.NoError(t, err)
	return l
}

func richPayload() map[string]any {
	return map[string]any{
		"id":                 "lst-1",
		"slug":               "sea-view-flat",
		"title":              "Sea view flat",
		"price":              "4500000",
		"status":             "Under Offer",
		"transactionType":    "SALE",
		"constructionStatus": "ready-to-move",
		"category":           "Flat (Society)",
		"carpetArea":         850.0,
		"landArea":           map[string]any{"value": "2", "unit": "decimal"},
		"bedrooms":           "2",
		"hasLift":            "true",
		"highlights":         []any{},
		"amenities":          []any{"Lift", "Power backup"},
		"priceBreakup":       map[string]any{"basePrice": 4000000.0, "negotiable": true},
		"addressParts":       map[string]any{"locality": "Chakratirtha", "city": "Bhubaneswar"},
		"geo":                map[string]any{"lat": 19.7983, "lng": 85.8249},
		"images": []any{
			"https://cdn.example.com/1.jpg",
			map[string]any{"id": "img-2", "url": "https://cdn.example.com/2.jpg", "alt": "Balcony", "order": 2.0},
		},
		"videoUrls":  []any{"https://youtu.be/abc"},
		"documents":  []any{map[string]any{"label": "Khata", "url": "https://cdn.example.com/k.pdf"}},
		"broker":     map[string]any{"name": "Ravi"},
		"seo":        map[string]any{"keywords": []any{"puri", "sea"}},
		"analytics":  map[string]any{"views": "10"},
		"createdAt":  "2024-03-01T10:00:00+05:30",
		"serverOnly": "passed back to the listing API",
	}
}

func TestToListing_Scenario(t *testing.T) {
	l := mapPayload(t, map[string]any{"id": "x", "title": "Flat", "price": "1500000", "images": []any{"http://a/1.jpg"}})

	assert.Equal(t, 1500000.0, l.Price)
	require.Len(t, l.Images, 1)
	assert.True(t, l.Images[0].IsPrimary)
	assert.Equal(t, "http://a/1.jpg", l.Images[0].URL)
}

func TestToListing_RichPayload(t *testing.T) {
	l := mapPayload(t, richPayload())

	assert.Equal(t, "under_offer", *l.Status)
	assert.Equal(t, "sale", *l.TransactionType)
	assert.Equal(t, "ready_to_move", *l.ConstructionStatus)
	assert.Equal(t, "Flat (Society)", *l.Category)
	assert.Equal(t, &domain.Area{Value: 850, Unit: domain.AreaUnitSqft}, l.CarpetArea)
	assert.Equal(t, &domain.Area{Value: 2, Unit: domain.AreaUnitDecimal}, l.LandArea)
	assert.Nil(t, l.BuiltUpArea)
	assert.Equal(t, 2.0, *l.Bedrooms)
	assert.True(t, *l.HasLift)
	assert.Nil(t, l.Highlights)
	assert.Nil(t, l.Bathrooms)
	assert.Equal(t, "Bhubaneswar", l.AddressParts.City)
	assert.Equal(t, domain.DefaultState, l.AddressParts.State)
	require.NotNil(t, l.Geo)
	assert.Len(t, l.Geo.Hash, GeohashPrecision)
	assert.True(t, l.Images[0].IsPrimary)
	assert.False(t, l.Images[1].IsPrimary)
	assert.Equal(t, "Ravi", *l.Broker.Name)
}

func TestNormalizeEnum(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		known []string
		want  string
	}{
		{"known with spaces", "Under Offer", domain.ListingStatuses, "under_offer"},
		{"known with dashes", "ready-to-move", domain.ConstructionStatuses, "ready_to_move"},
		{"known upper case", "RENT", domain.TransactionTypes, "rent"},
		{"unknown passes through", "Coming Soon", domain.ListingStatuses, "Coming Soon"},
		{"unknown keeps spaces", " lease ", domain.TransactionTypes, " lease "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := tt.in
			got := normalizeEnum(&in, tt.known)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, *got)
		})
	}

	assert.Nil(t, normalizeEnum(nil, domain.ListingStatuses))
}

func TestToListing_UnknownStatusUnchanged(t *testing.T) {
	l := mapPayload(t, map[string]any{"id": "x", "title": "Flat", "price": 1.0, "status": "Coming Soon"})
	require.NotNil(t, l.Status)
	assert.Equal(t, "Coming Soon", *l.Status)
}

func TestNormalizeArea(t *testing.T) {
	acre := domain.AreaUnitAcre
	got, err := NormalizeArea(validation.WireArea{Value: 5000})
	require.NoError(t, err)
	assert.Equal(t, domain.Area{Value: 5000, Unit: domain.AreaUnitSqft}, got)

	got, err = NormalizeArea(validation.WireArea{Value: 2, Unit: &acre})
	require.NoError(t, err)
	assert.Equal(t, domain.Area{Value: 2, Unit: domain.AreaUnitAcre}, got)

	bad := domain.AreaUnit("furlong")
	_, err = NormalizeArea(validation.WireArea{Value: 2, Unit: &bad})
	assert.Error(t, err)
}

func TestToListing_UnconvertibleAreaIsTransformationError(t *testing.T) {
	bad := domain.AreaUnit("furlong")
	_, err := ToListing(validation.WireListing{ID: "x", Title: "t", LandArea: &validation.WireArea{Value: 1, Unit: &bad}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrTransformation))
	var terr *domain.TransformationError
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, "/landArea", terr.Path)
}

func TestToImages_PrimaryInvariant(t *testing.T) {
	yes, no := true, false
	tests := []struct {
		name        string
		in          []validation.WireImage
		wantPrimary int
	}{
		{"none marked", []validation.WireImage{{URL: "u1"}, {URL: "u2"}}, 0},
		{"explicit false", []validation.WireImage{{URL: "u1", IsPrimary: &no}, {URL: "u2", IsPrimary: &no}}, 0},
		{"second marked", []validation.WireImage{{URL: "u1"}, {URL: "u2", IsPrimary: &yes}}, 1},
		{"several marked", []validation.WireImage{{URL: "u1"}, {URL: "u2", IsPrimary: &yes}, {URL: "u3", IsPrimary: &yes}}, 1},
		{"empty urls skipped", []validation.WireImage{{URL: " "}, {URL: "u2"}}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := ToImages(tt.in)
			count := 0
			for i, m := range out {
				if m.IsPrimary {
					count++
					assert.Equal(t, tt.wantPrimary, i)
				}
			}
			assert.Equal(t, 1, count)
		})
	}

	assert.Nil(t, ToImages(nil))
}

func TestToAddressParts_Defaults(t *testing.T) {
	parts := ToAddressParts(nil)
	assert.Equal(t, "Puri", parts.City)
	assert.Equal(t, "Odisha", parts.State)

	l := mapPayload(t, map[string]any{"id": "x", "title": "t", "price": 1.0})
	assert.Equal(t, "Puri", l.AddressParts.City)
	assert.Equal(t, "Odisha", l.AddressParts.State)
}

func TestToListing_OptionalFieldsStayUnset(t *testing.T) {
	l := mapPayload(t, map[string]any{"id": "x", "title": "t", "price": 1.0, "bedrooms": "", "cornerPlot": nil})
	assert.Nil(t, l.Bedrooms)
	assert.Nil(t, l.CornerPlot)
	assert.Nil(t, l.Description)
	assert.Nil(t, l.PriceBreakup)
	assert.Nil(t, l.Images)
}

func TestToWire_RoundTripIsStable(t *testing.T) {
	payloads := []map[string]any{
		richPayload(),
		{"id": "x", "title": "Flat", "price": "1500000", "images": []any{"http://a/1.jpg"}},
		{"data": map[string]any{"id": "y", "title": "Plot", "price": 0.0, "landArea": 1200.0}},
	}
	for _, p := range payloads {
		first := mapPayload(t, p)
		wire, err := ToWire(first)
		require.NoError(t, err)
		second := mapPayload(t, wire)
		assert.Equal(t, first, second)
	}
}

func TestToWire_CarriesUnknownFields(t *testing.T) {
	l := mapPayload(t, with(richPayload(), map[string]any{"score": 4.5}))
	assert.Equal(t, map[string]any{"serverOnly": "passed back to the listing API", "score": 4.5}, l.Extra)

	l.Extra["title"] = "shadowed"
	wire, err := ToWire(l)
	require.NoError(t, err)
	assert.Equal(t, "passed back to the listing API", wire["serverOnly"])
	assert.Equal(t, 4.5, wire["score"])
	assert.Equal(t, "Sea view flat", wire["title"])

	raw, err := json.Marshal(l)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "serverOnly")
}

func with(base, extra map[string]any) map[string]any {
	for k, v := range extra {
		base[k] = v
	}
	return base
}

func TestToListings(t *testing.T) {
	page, err := validation.ParseListingList([]any{richPayload(), map[string]any{"id": "2", "title": "t", "price": 1.0}})
	require.NoError(t, err)
	ls, err := ToListings(page.Items)
	require.NoError(t, err)
	assert.Len(t, ls, 2)
}
