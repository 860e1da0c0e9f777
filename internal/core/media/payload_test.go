package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPayload(t *testing.T) {
	st := twoExisting()
	st.Videos.Existing = []ExistingVideo{{URL: "https://v/1.mp4"}, {URL: "https://v/2.mp4"}}

	st = Reduce(st, ReplaceExisting{ID: "a", Upload: upload(1)})
	st = Reduce(st, AddNew{Uploads: []Upload{upload(2)}})
	st = Reduce(st, SetNewAlt{Index: 1, Alt: "terrace"})
	st = Reduce(st, RemoveExistingVideo{URL: "https://v/2.mp4"})
	st = Reduce(st, AddExternalVideo{URL: "https://youtu.be/x"})
	st = Reduce(st, AddNewVideos{Uploads: []Upload{{BlobID: "v1", ContentType: "video/mp4"}}})

	p := BuildPayload(st)

	require.Len(t, p.NewImages, 2)
	assert.Equal(t, PayloadImage{Upload: upload(1), Alt: "front", IsPrimary: true, ReplacesID: "a"}, p.NewImages[0])
	assert.Equal(t, PayloadImage{Upload: upload(2), Alt: "terrace"}, p.NewImages[1])
	require.NotNil(t, p.PrimaryNewImageIndex)
	assert.Equal(t, 0, *p.PrimaryNewImageIndex)
	assert.Equal(t, []string{"a"}, p.RemoveImageIDs)
	assert.Equal(t, []string{"https://v/2.mp4"}, p.RemoveVideoURLs)
	assert.Equal(t, []string{"https://youtu.be/x"}, p.ExternalVideoURLs)
	assert.Equal(t, []Upload{{BlobID: "v1", ContentType: "video/mp4"}}, p.NewVideos)
	assert.True(t, p.HasChanges())
}

func TestBuildPayloadExistingPrimary(t *testing.T) {
	st := Reduce(twoExisting(), AddNew{Uploads: []Upload{upload(1)}})

	p := BuildPayload(st)

	assert.Nil(t, p.PrimaryNewImageIndex)
	assert.False(t, p.NewImages[0].IsPrimary)
}

func TestBuildPayloadUnchanged(t *testing.T) {
	p := BuildPayload(twoExisting())

	assert.False(t, p.HasChanges())
	assert.Empty(t, p.RemoveImageIDs)
	assert.Nil(t, p.PrimaryNewImageIndex)
}

func TestUniqueTrimmed(t *testing.T) {
	got := uniqueTrimmed([]string{" a ", "b", "a", "", "  ", "b "})
	assert.Equal(t, []string{"a", "b"}, got)
}
