package media

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listing-admin-service/internal/core/domain"
)

func upload(n int) Upload {
	return Upload{BlobID: fmt.Sprintf("blob-%d", n), Name: fmt.Sprintf("photo-%d.jpg", n), ContentType: "image/jpeg", Size: 1024}
}

func twoExisting() State {
	return Reduce(State{}, Reset{State: State{
		Existing: []ExistingImage{
			{ID: "a", URL: "https://cdn.example.com/a.jpg", Alt: "front"},
			{ID: "b", URL: "https://cdn.example.com/b.jpg"},
		},
	}})
}

// countPrimary считает изображения, которые будут помечены главными в отправке.
func countPrimary(s State) int {
	n := 0
	for _, img := range s.ActiveExisting() {
		if s.IsPrimaryExisting(img.ID) {
			n++
		}
	}
	for _, img := range BuildPayload(s).NewImages {
		if img.IsPrimary {
			n++
		}
	}
	return n
}

func TestFromListing(t *testing.T) {
	id := "img-2"
	alt := "garden"
	l := domain.Listing{
		Images: []domain.Media{
			{URL: "https://cdn.example.com/1.jpg"},
			{ID: &id, URL: "https://cdn.example.com/2.jpg", Alt: &alt, IsPrimary: true},
			{URL: ""},
		},
		VideoURLs: []string{" https://video.example.com/1.mp4 ", ""},
	}

	st := FromListing(l)

	require.Len(t, st.Existing, 2)
	assert.Equal(t, "https://cdn.example.com/1.jpg", st.Existing[0].ID, "url doubles as id")
	assert.Equal(t, "garden", st.Existing[1].Alt)
	assert.Equal(t, "existing:img-2", st.Primary.String())
	assert.Equal(t, []ExistingVideo{{URL: "https://video.example.com/1.mp4"}}, st.Videos.Existing)
}

func TestFromListingWithoutPrimaryPicksFirst(t *testing.T) {
	st := FromListing(domain.Listing{Images: []domain.Media{{URL: "u1"}, {URL: "u2"}}})
	assert.Equal(t, "existing:u1", st.Primary.String())

	assert.Nil(t, FromListing(domain.Listing{}).Primary)
}

func TestEnsurePrimary(t *testing.T) {
	existing := []ExistingImage{{ID: "a", Removed: true}, {ID: "b"}}
	newItems := []NewImage{{Upload: upload(1)}}

	tests := []struct {
		name      string
		existing  []ExistingImage
		newItems  []NewImage
		preferred *Selection
		want      string
	}{
		{"valid existing preference", existing, newItems, ExistingSelection("b"), "existing:b"},
		{"removed preference falls back", existing, newItems, ExistingSelection("a"), "existing:b"},
		{"valid new preference", existing, newItems, NewSelection(0), "new:0"},
		{"out of range new preference", existing, newItems, NewSelection(3), "existing:b"},
		{"no existing left", []ExistingImage{{ID: "a", Removed: true}}, newItems, nil, "new:0"},
		{"nothing at all", nil, nil, ExistingSelection("a"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EnsurePrimary(tt.existing, tt.newItems, tt.preferred).String())
		})
	}
}

func TestReduceAddNew(t *testing.T) {
	t.Run("keeps existing primary", func(t *testing.T) {
		st := Reduce(twoExisting(), AddNew{Uploads: []Upload{upload(1), upload(2)}})
		assert.Len(t, st.NewItems, 2)
		assert.Equal(t, "existing:a", st.Primary.String())
	})

	t.Run("first upload becomes primary when no images", func(t *testing.T) {
		st := Reduce(State{}, AddNew{Uploads: []Upload{upload(1)}})
		assert.Equal(t, "new:0", st.Primary.String())

		st = Reduce(st, AddNew{Uploads: []Upload{upload(2)}})
		assert.Equal(t, "new:0", st.Primary.String())
	})

	t.Run("empty is a no-op", func(t *testing.T) {
		before := twoExisting()
		assert.Equal(t, before, Reduce(before, AddNew{}))
	})
}

func TestReduceRemoveExisting(t *testing.T) {
	st := Reduce(twoExisting(), RemoveExisting{ID: "a"})

	assert.True(t, st.Existing[0].Removed)
	assert.Equal(t, "existing:b", st.Primary.String())

	st = Reduce(st, RemoveExisting{ID: "b"})
	assert.Nil(t, st.Primary)
	assert.Empty(t, st.ActiveExisting())
}

func TestReduceReplaceExisting(t *testing.T) {
	st := Reduce(twoExisting(), ReplaceExisting{ID: "a", Upload: upload(7)})

	assert.True(t, st.Existing[0].Removed)
	require.Len(t, st.NewItems, 1)
	assert.Equal(t, "a", st.NewItems[0].ReplacesID)
	assert.Equal(t, "front", st.NewItems[0].Alt, "alt carried over")
	assert.Equal(t, "new:0", st.Primary.String(), "replacement of primary stays primary")

	st = Reduce(st, ReplaceExisting{ID: "b", Upload: upload(8)})
	assert.Equal(t, "new:0", st.Primary.String())
}

func TestReduceRemoveNewReindexesPrimary(t *testing.T) {
	st := Reduce(State{}, AddNew{Uploads: []Upload{upload(1), upload(2), upload(3)}})
	st = Reduce(st, SetPrimaryNew{Index: 2})

	st = Reduce(st, RemoveNew{Index: 0})
	assert.Equal(t, "new:1", st.Primary.String())
	assert.Equal(t, "blob-3", st.NewItems[1].Upload.BlobID)

	st = Reduce(st, RemoveNew{Index: 1})
	assert.Equal(t, "new:0", st.Primary.String())

	st = Reduce(st, RemoveNew{Index: 0})
	assert.Nil(t, st.Primary)
	assert.Empty(t, st.NewItems)
}

func TestReduceSetPrimaryGuards(t *testing.T) {
	st := Reduce(twoExisting(), RemoveExisting{ID: "b"})

	assert.Equal(t, st, Reduce(st, SetPrimaryExisting{ID: "b"}), "removed image cannot become primary")
	assert.Equal(t, st, Reduce(st, SetPrimaryExisting{ID: "missing"}))
	assert.Equal(t, st, Reduce(st, SetPrimaryNew{Index: 0}))
	assert.Equal(t, st, Reduce(st, SetPrimaryNew{Index: -1}))

	st = Reduce(st, AddNew{Uploads: []Upload{upload(1)}})
	st = Reduce(st, SetPrimaryNew{Index: 0})
	assert.Equal(t, "new:0", st.Primary.String())

	st = Reduce(st, SetPrimaryExisting{ID: "a"})
	assert.Equal(t, "existing:a", st.Primary.String())
}

func TestReduceAlt(t *testing.T) {
	st := Reduce(twoExisting(), AddNew{Uploads: []Upload{upload(1)}})
	st = Reduce(st, SetExistingAlt{ID: "b", Alt: "kitchen"})
	st = Reduce(st, SetNewAlt{Index: 0, Alt: "balcony"})
	st = Reduce(st, SetNewAlt{Index: 5, Alt: "ignored"})

	assert.Equal(t, "kitchen", st.Existing[1].Alt)
	assert.Equal(t, "balcony", st.NewItems[0].Alt)
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	before := Reduce(twoExisting(), AddNew{Uploads: []Upload{upload(1), upload(2)}})

	_ = Reduce(before, RemoveExisting{ID: "a"})
	_ = Reduce(before, RemoveNew{Index: 0})
	_ = Reduce(before, SetNewAlt{Index: 1, Alt: "x"})

	assert.False(t, before.Existing[0].Removed)
	assert.Len(t, before.NewItems, 2)
	assert.Equal(t, "blob-1", before.NewItems[0].Upload.BlobID)
	assert.Empty(t, before.NewItems[1].Alt)
	assert.Equal(t, "existing:a", before.Primary.String())
}

func TestPrimaryInvariantAfterSequences(t *testing.T) {
	sequences := [][]Event{
		{AddNew{Uploads: []Upload{upload(1)}}, RemoveExisting{ID: "a"}, RemoveExisting{ID: "b"}},
		{ReplaceExisting{ID: "a", Upload: upload(1)}, RemoveNew{Index: 0}},
		{ReplaceExisting{ID: "b", Upload: upload(1)}, RemoveExisting{ID: "a"}, AddNew{Uploads: []Upload{upload(2)}}, RemoveNew{Index: 0}},
		{RemoveExisting{ID: "a"}, RemoveExisting{ID: "b"}, AddNew{Uploads: []Upload{upload(1), upload(2)}}, SetPrimaryNew{Index: 1}, RemoveNew{Index: 1}},
		{RemoveExisting{ID: "a"}, RemoveExisting{ID: "b"}},
	}

	for i, seq := range sequences {
		t.Run(fmt.Sprintf("sequence %d", i), func(t *testing.T) {
			st := twoExisting()
			for _, ev := range seq {
				st = Reduce(st, ev)
				hasImages := len(st.ActiveExisting()) > 0 || len(st.NewItems) > 0
				if hasImages {
					assert.Equal(t, 1, countPrimary(st), "after %T", ev)
				} else {
					assert.Nil(t, st.Primary, "after %T", ev)
				}
			}
		})
	}
}

func TestReduceVideos(t *testing.T) {
	st := FromListing(domain.Listing{VideoURLs: []string{"https://v/1.mp4", "https://v/2.mp4"}})

	st = Reduce(st, RemoveExistingVideo{URL: " https://v/1.mp4 "})
	st = Reduce(st, AddExternalVideo{URL: "  https://youtu.be/x  "})
	st = Reduce(st, AddExternalVideo{URL: "https://youtu.be/x"})
	st = Reduce(st, AddExternalVideo{URL: "   "})
	st = Reduce(st, AddExternalVideo{URL: "https://youtu.be/y"})
	st = Reduce(st, RemoveExternalVideo{URL: "https://youtu.be/y"})
	st = Reduce(st, AddNewVideos{Uploads: []Upload{{BlobID: "v1"}, {BlobID: "v2"}}})
	st = Reduce(st, RemoveNewVideo{Index: 0})

	assert.Equal(t, []string{"https://v/2.mp4", "https://youtu.be/x"}, st.ActiveVideoURLs())
	assert.Equal(t, []Upload{{BlobID: "v2"}}, st.Videos.New)
}

func TestReduceRemoveExternalVideoTrims(t *testing.T) {
	st := Reduce(State{}, AddExternalVideo{URL: " https://youtu.be/x "})
	require.Equal(t, []string{"https://youtu.be/x"}, st.Videos.External)

	next := Reduce(st, RemoveExternalVideo{URL: "  https://youtu.be/x\t"})
	assert.Empty(t, next.Videos.External)
	assert.Equal(t, []string{"https://youtu.be/x"}, st.Videos.External)
}

func TestReleasedUploads(t *testing.T) {
	before := Reduce(twoExisting(), AddNew{Uploads: []Upload{upload(1), upload(2)}})
	before = Reduce(before, AddNewVideos{Uploads: []Upload{{BlobID: "v1"}}})

	after := Reduce(before, RemoveNew{Index: 0})
	after = Reduce(after, RemoveNewVideo{Index: 0})

	released := ReleasedUploads(before, after)
	assert.ElementsMatch(t, []Upload{upload(1), {BlobID: "v1"}}, released)
	assert.Empty(t, ReleasedUploads(after, after))
}
