package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseListing_Envelopes(t *testing.T) {
	tests := []struct {
		name    string
		payload any
	}{
		{"plain", baseListing()},
		{"data", map[string]any{"data": baseListing()}},
		{"nested data", map[string]any{"data": map[string]any{"data": baseListing()}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := ParseListing(tt.payload)
			require.NoError(t, err)
			assert.Equal(t, "x", w.ID)
			assert.Equal(t, 1500000.0, w.Price)
		})
	}
}

func TestParseListing_ReportsDeepestApplicableCandidate(t *testing.T) {
	_, err := ParseListing(map[string]any{"data": map[string]any{"id": "x", "title": "Flat"}})
	verr := requireValidationError(t, err)
	assert.Equal(t, "/data/price", verr.Path)
}

func TestParseListing_UnrecognizedEnvelope(t *testing.T) {
	_, err := ParseListing("oops")
	verr := requireValidationError(t, err)
	assert.Equal(t, "unrecognized response envelope", verr.Message)
}

func TestTry_RecordsEveryAttempt(t *testing.T) {
	res, attempts := Try(map[string]any{"data": baseListing()}, ListingCandidates, ValidateListing)
	require.True(t, res.OK())
	assert.Equal(t, "data", res.Candidate)
	require.Len(t, attempts, 2)
	assert.True(t, attempts[0].Applicable)
	assert.Error(t, attempts[0].Err)
}

func TestParseListingList(t *testing.T) {
	t.Run("items and total", func(t *testing.T) {
		page, err := ParseListingList(map[string]any{
			"items": []any{baseListing(), baseListing()},
			"total": "12",
		})
		require.NoError(t, err)
		assert.Len(t, page.Items, 2)
		assert.Equal(t, 12, page.Total)
	})

	t.Run("data envelope", func(t *testing.T) {
		page, err := ParseListingList(map[string]any{
			"data": map[string]any{"items": []any{baseListing()}, "total": 1.0},
		})
		require.NoError(t, err)
		assert.Len(t, page.Items, 1)
		assert.Equal(t, 1, page.Total)
	})

	t.Run("nested data envelope", func(t *testing.T) {
		page, err := ParseListingList(map[string]any{
			"data": map[string]any{"data": map[string]any{"items": []any{}, "total": 0.0}},
		})
		require.NoError(t, err)
		assert.Empty(t, page.Items)
	})

	t.Run("bare array", func(t *testing.T) {
		page, err := ParseListingList([]any{baseListing(), baseListing(), baseListing()})
		require.NoError(t, err)
		assert.Equal(t, 3, page.Total)
	})

	t.Run("first offending item by coercion", func(t *testing.T) {
		_, err := ParseListingList(map[string]any{
			"items": []any{baseListing(), with(map[string]any{"price": "abc"}), with(map[string]any{"price": "x"})},
			"total": 3.0,
		})
		verr := requireValidationError(t, err)
		require.NotNil(t, verr.Index)
		assert.Equal(t, 1, *verr.Index)
		assert.Equal(t, "/items/1/price", verr.Path)
	})

	t.Run("first offending item by schema", func(t *testing.T) {
		broken := baseListing()
		delete(broken, "title")
		_, err := ParseListingList(map[string]any{
			"items": []any{baseListing(), baseListing(), broken},
			"total": 3.0,
		})
		verr := requireValidationError(t, err)
		require.NotNil(t, verr.Index)
		assert.Equal(t, 2, *verr.Index)
		assert.Equal(t, "/items/2/title", verr.Path)
	})

	t.Run("earlier item wins over deeper error in later item", func(t *testing.T) {
		noPrice := baseListing()
		delete(noPrice, "price")
		_, err := ParseListingList(map[string]any{
			"items": []any{noPrice, with(map[string]any{"images": []any{map[string]any{"alt": "no url"}}})},
			"total": 2.0,
		})
		verr := requireValidationError(t, err)
		require.NotNil(t, verr.Index)
		assert.Equal(t, 0, *verr.Index)
		assert.Equal(t, "/items/0/price", verr.Path)
	})
}

func TestParseSimilar_DropsInvalidEntries(t *testing.T) {
	items, dropped := ParseSimilar([]any{baseListing(), map[string]any{"id": "y"}, baseListing()})
	assert.Len(t, items, 2)
	require.Len(t, dropped, 1)
	assert.Equal(t, 1, *dropped[0].Index)

	items, dropped = ParseSimilar(map[string]any{"unexpected": true})
	assert.Nil(t, items)
	assert.Nil(t, dropped)

	items, _ = ParseSimilar(map[string]any{"data": []any{baseListing()}})
	assert.Len(t, items, 1)
}
