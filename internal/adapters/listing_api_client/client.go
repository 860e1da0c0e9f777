package listing_api_client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"listing-admin-service/internal/contextkeys"
	"listing-admin-service/internal/core/domain"
	"listing-admin-service/internal/core/port"
)

// ListingAPIClient - клиент апстримного API объявлений.
// Возвращает декодированный JSON без проверки, проверка делается в ядре.
type ListingAPIClient struct {
	baseURL    string // например, "https://api.example.com/v1"
	httpClient *http.Client
	session    port.SessionPort
	blobs      port.BlobStorePort
}

func NewListingAPIClient(baseURL string, timeout time.Duration, session port.SessionPort, blobs port.BlobStorePort) *ListingAPIClient {
	return &ListingAPIClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		session:    session,
		blobs:      blobs,
	}
}

// doRequest выполняет запрос и декодирует тело ответа.
// Пустое тело дает nil, тело не в JSON возвращается строкой.
// Ответ не 2xx превращается в *domain.UpstreamError.
func (c *ListingAPIClient) doRequest(ctx context.Context, method, path string, body io.Reader, contentType string) (any, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "ListingAPIClient",
		"method":    method,
		"path":      path,
	})

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		if closer, ok := body.(io.Closer); ok {
			_ = closer.Close()
		}
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		req.Header.Set("X-Trace-ID", traceID)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if c.session != nil {
		if s := c.session.Session(ctx); s.Authenticated() {
			req.Header.Set("Authorization", "Bearer "+s.AccessToken)
		}
	}

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error("Request to listing API failed", err, nil)
		return nil, fmt.Errorf("request to listing API failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Error("Failed to read listing API response", err, port.Fields{"status_code": resp.StatusCode})
		return nil, fmt.Errorf("failed to read listing API response: %w", err)
	}
	decoded := decodeBody(raw)

	fields := port.Fields{"status_code": resp.StatusCode, "duration_ms": time.Since(started).Milliseconds()}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Warn("Listing API returned non-2xx status", fields)
		return nil, &domain.UpstreamError{Status: resp.StatusCode, Body: decoded}
	}

	logger.Debug("Listing API request completed", fields)
	return decoded, nil
}

func decodeBody(raw []byte) any {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	return v
}

func listingPath(id string) string {
	return "/listings/" + url.PathEscape(id)
}

func (c *ListingAPIClient) GetListing(ctx context.Context, id string) (any, error) {
	return c.doRequest(ctx, http.MethodGet, listingPath(id), nil, "")
}

func (c *ListingAPIClient) ListListings(ctx context.Context, query domain.ListingQuery) (any, error) {
	path := "/listings"
	if qs := encodeQuery(query); qs != "" {
		path += "?" + qs
	}
	return c.doRequest(ctx, http.MethodGet, path, nil, "")
}

func (c *ListingAPIClient) GetSimilar(ctx context.Context, id string) (any, error) {
	return c.doRequest(ctx, http.MethodGet, listingPath(id)+"/similar", nil, "")
}

func (c *ListingAPIClient) CreateListing(ctx context.Context, sub port.ListingSubmission) (any, error) {
	body, contentType := c.multipartBody(ctx, sub)
	return c.doRequest(ctx, http.MethodPost, "/listings", body, contentType)
}

func (c *ListingAPIClient) UpdateListing(ctx context.Context, id string, sub port.ListingSubmission) (any, error) {
	body, contentType := c.multipartBody(ctx, sub)
	return c.doRequest(ctx, http.MethodPatch, listingPath(id), body, contentType)
}

func (c *ListingAPIClient) DeleteListing(ctx context.Context, id string) error {
	_, err := c.doRequest(ctx, http.MethodDelete, listingPath(id), nil, "")
	return err
}

func (c *ListingAPIClient) CreateInterest(ctx context.Context, req domain.InterestRequest) (any, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal interest request: %w", err)
	}
	return c.doRequest(ctx, http.MethodPost, "/interest", bytes.NewReader(body), "application/json")
}

func (c *ListingAPIClient) ListInterests(ctx context.Context, listingID string, page, pageSize int) (any, error) {
	qs := url.Values{}
	qs.Set("page", strconv.Itoa(page))
	qs.Set("page_size", strconv.Itoa(pageSize))
	return c.doRequest(ctx, http.MethodGet, listingPath(listingID)+"/interests?"+qs.Encode(), nil, "")
}

// encodeQuery передает заданные параметры поиска под их именами в API.
func encodeQuery(q domain.ListingQuery) string {
	v := url.Values{}
	setStr := func(key, val string) {
		if val != "" {
			v.Set(key, val)
		}
	}
	setInt := func(key string, val *int) {
		if val != nil {
			v.Set(key, strconv.Itoa(*val))
		}
	}
	setFloat := func(key string, val *float64) {
		if val != nil {
			v.Set(key, strconv.FormatFloat(*val, 'f', -1, 64))
		}
	}

	setStr("city", q.City)
	setStr("q", q.Q)
	setStr("sort", q.Sort)
	setInt("page", q.Page)
	setInt("perPage", q.PerPage)
	setFloat("minPrice", q.MinPrice)
	setFloat("maxPrice", q.MaxPrice)
	setInt("bedrooms", q.Bedrooms)
	setInt("bhk", q.BHK)
	setStr("furnishing", q.Furnishing)
	setStr("constructionStatus", q.ConstructionStatus)
	setStr("category", q.Category)
	setStr("status", q.Status)
	return v.Encode()
}
