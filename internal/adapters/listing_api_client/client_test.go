package listing_api_client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listing-admin-service/internal/contextkeys"
	"listing-admin-service/internal/core/domain"
	"listing-admin-service/internal/core/media"
	"listing-admin-service/internal/core/port"
)

type memBlobs map[string]string

func (m memBlobs) Put(ctx context.Context, name, contentType string, r io.Reader) (media.Upload, error) {
	return media.Upload{}, errors.New("not supported")
}

func (m memBlobs) Open(ctx context.Context, blobID string) (io.ReadCloser, error) {
	data, ok := m[blobID]
	if !ok {
		return nil, domain.ErrBlobNotFound
	}
	return io.NopCloser(strings.NewReader(data)), nil
}

func (m memBlobs) Release(ctx context.Context, blobIDs ...string) error { return nil }

func authedContext() context.Context {
	ctx := contextkeys.ContextWithTraceID(context.Background(), "trace-1")
	return contextkeys.ContextWithSession(ctx, domain.Session{AccessToken: "tok"})
}

func newClient(srv *httptest.Server, blobs port.BlobStorePort) *ListingAPIClient {
	return NewListingAPIClient(srv.URL+"/", 5*time.Second, contextkeys.SessionProvider{}, blobs)
}

func TestGetListingSendsHeadersAndDecodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/listings/lst%201", r.URL.EscapedPath())
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "trace-1", r.Header.Get("X-Trace-ID"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		_, _ = w.Write([]byte(`{"data":{"id":"lst 1"}}`))
	}))
	defer srv.Close()

	got, err := newClient(srv, nil).GetListing(authedContext(), "lst 1")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"data": map[string]any{"id": "lst 1"}}, got)
}

func TestAnonymousRequestHasNoAuthorization(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	got, err := newClient(srv, nil).GetSimilar(context.Background(), "lst-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestNon2xxBecomesUpstreamError(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantBody any
	}{
		{"json body", http.StatusUnprocessableEntity, `{"message":"price is required"}`, map[string]any{"message": "price is required"}},
		{"text body", http.StatusBadGateway, `gateway down`, "gateway down"},
		{"empty body", http.StatusNotFound, ``, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			err := newClient(srv, nil).DeleteListing(context.Background(), "lst-1")
			var uerr *domain.UpstreamError
			require.ErrorAs(t, err, &uerr)
			assert.Equal(t, tt.status, uerr.Status)
			assert.Equal(t, tt.wantBody, uerr.Body)
			assert.ErrorIs(t, err, domain.ErrUpstream)
		})
	}
}

func TestListListingsEncodesQuery(t *testing.T) {
	page, bhk := 2, 3
	minPrice := 1500000.5

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "Puri", q.Get("city"))
		assert.Equal(t, "2", q.Get("page"))
		assert.Equal(t, "3", q.Get("bhk"))
		assert.Equal(t, "1500000.5", q.Get("minPrice"))
		assert.Equal(t, "ready", q.Get("constructionStatus"))
		assert.False(t, q.Has("perPage"))
		assert.False(t, q.Has("q"))
		_, _ = w.Write([]byte(`{"items":[],"total":0}`))
	}))
	defer srv.Close()

	_, err := newClient(srv, nil).ListListings(context.Background(), domain.ListingQuery{
		City: "Puri", Page: &page, BHK: &bhk, MinPrice: &minPrice, ConstructionStatus: "ready",
	})
	require.NoError(t, err)
}

func TestUpdateListingSendsMultipart(t *testing.T) {
	primary := 0
	sub := port.ListingSubmission{
		Patch: map[string]any{"title": "New", "description": nil},
		Media: media.Payload{
			NewImages: []media.PayloadImage{
				{Upload: media.Upload{BlobID: "b1", Name: "front.jpg", ContentType: "image/jpeg"}, Alt: "  Front  ", IsPrimary: true, ReplacesID: "img-1"},
				{Upload: media.Upload{BlobID: "b2", Name: "back.jpg", ContentType: "image/jpeg"}},
			},
			NewVideos:            []media.Upload{{BlobID: "v1", Name: "tour.mp4", ContentType: "video/mp4"}},
			ExternalVideoURLs:    []string{"https://youtu.be/x", "  "},
			RemoveImageIDs:       []string{"img-9"},
			RemoveVideoURLs:      []string{"https://cdn/old.mp4"},
			PrimaryNewImageIndex: &primary,
		},
	}
	blobs := memBlobs{"b1": "front-bytes", "b2": "back-bytes", "v1": "video-bytes"}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/listings/lst-1", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		form := r.MultipartForm
		var patch map[string]any
		require.NoError(t, json.Unmarshal([]byte(form.Value["listing"][0]), &patch))
		assert.Equal(t, map[string]any{"title": "New", "description": nil}, patch)

		assert.Equal(t, []string{"Front", ""}, form.Value["imageAlts[]"])
		assert.Equal(t, []string{"img-1"}, form.Value["replaceImageIds[]"])
		assert.Equal(t, []string{"0"}, form.Value["primaryImageIndex"])
		assert.Equal(t, []string{"https://youtu.be/x"}, form.Value["externalVideoUrls[]"])
		assert.Equal(t, []string{"img-9"}, form.Value["removeImageIds[]"])
		assert.Equal(t, []string{"https://cdn/old.mp4"}, form.Value["removeVideoUrls[]"])

		require.Len(t, form.File["images[]"], 2)
		require.Len(t, form.File["images"], 2)
		require.Len(t, form.File["videos[]"], 1)
		require.Len(t, form.File["videos"], 1)

		first := form.File["images[]"][0]
		assert.Equal(t, "front.jpg", first.Filename)
		assert.Equal(t, "image/jpeg", first.Header.Get("Content-Type"))
		f, err := first.Open()
		require.NoError(t, err)
		data, _ := io.ReadAll(f)
		_ = f.Close()
		assert.Equal(t, "front-bytes", string(data))

		_, _ = w.Write([]byte(`{"id":"lst-1"}`))
	}))
	defer srv.Close()

	got, err := newClient(srv, blobs).UpdateListing(authedContext(), "lst-1", sub)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"id": "lst-1"}, got)
}

func TestCreateListingWithEmptyPatchSendsEmptyObject(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "{}", r.MultipartForm.Value["listing"][0])
		assert.Empty(t, r.MultipartForm.File)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	_, err := newClient(srv, memBlobs{}).CreateListing(context.Background(), port.ListingSubmission{})
	require.NoError(t, err)
}

func TestMissingBlobFailsSubmission(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	sub := port.ListingSubmission{Media: media.Payload{NewVideos: []media.Upload{{BlobID: "gone"}}}}
	_, err := newClient(srv, memBlobs{}).CreateListing(context.Background(), sub)
	assert.Error(t, err)
}

func TestCreateInterestPostsJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/interest", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "lst-1", body["listingId"])
		assert.Equal(t, "Asha", body["name"])
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	got, err := newClient(srv, nil).CreateInterest(context.Background(), domain.InterestRequest{ListingID: "lst-1", Name: "Asha", Phone: "+91 1"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"ok": true}, got)
}

func TestListInterestsQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/listings/lst-1/interests", r.URL.Path)
		assert.Equal(t, "3", r.URL.Query().Get("page"))
		assert.Equal(t, "50", r.URL.Query().Get("page_size"))
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	got, err := newClient(srv, nil).ListInterests(context.Background(), "lst-1", 3, 50)
	require.NoError(t, err)
	assert.Equal(t, []any{}, got)
}
