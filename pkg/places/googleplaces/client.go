// Package googleplaces provides a places.Searcher implementation backed by the
// Google Places API (New) Text Search endpoint.
package googleplaces

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"leadfinder/pkg/domain"
	"leadfinder/pkg/metrics"
	"leadfinder/pkg/places"
	"leadfinder/pkg/serrors"
)

const (
	// DefaultBaseURL is the root of the public Places API.
	DefaultBaseURL = "https://places.googleapis.com"
	// FieldMask limits the response to the fields mapped into domain.Business.
	FieldMask = "places.displayName,places.formattedAddress,places.rating," +
		"places.nationalPhoneNumber,places.internationalPhoneNumber,places.websiteUri"

	searchTextPath = "/v1/places:searchText"
)

// Client talks to the Places API and fulfills the places.Searcher interface.
// It is safe for concurrent use.
type Client struct {
	httpClient *http.Client // httpClient performs HTTP requests to the Places API
	baseURL    string       // baseURL is the API root, without trailing slash
	apiKey     string       // apiKey is sent as X-Goog-Api-Key
}

// Ensure Client conforms to the places.Searcher interface at compile time.
var _ places.Searcher = (*Client)(nil)

// New constructs a Client. An empty baseURL means DefaultBaseURL. An empty
// apiKey is accepted; every Search then fails with serrors.ErrBadRequest.
func New(httpClient *http.Client, baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
	}
}

// searchTextResponse mirrors the subset of the Text Search response selected by FieldMask.
// Every field is optional.
type searchTextResponse struct {
	Places []struct {
		DisplayName *struct {
			Text string `json:"text"`
		} `json:"displayName"`
		FormattedAddress         string   `json:"formattedAddress"`
		Rating                   *float64 `json:"rating"`
		NationalPhoneNumber      string   `json:"nationalPhoneNumber"`
		InternationalPhoneNumber string   `json:"internationalPhoneNumber"`
		WebsiteURI               string   `json:"websiteUri"`
	} `json:"places"`
}

// Search runs a Text Search for query and maps every returned place into a
// domain.Business. A missing API key yields serrors.ErrBadRequest; a non-2xx
// answer yields serrors.ErrUpstream carrying the raw response body.
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]domain.Business, error) {
	// https://developers.google.com/maps/documentation/places/web-service/text-search
	if c.apiKey == "" {
		return nil, serrors.With(serrors.ErrBadRequest, "places API key is not configured")
	}

	type searchTextReq struct {
		TextQuery      string `json:"textQuery"`
		MaxResultCount int    `json:"maxResultCount"`
	}
	bodyBytes, err := json.Marshal(searchTextReq{TextQuery: query, MaxResultCount: places.ClampResults(maxResults)})
	if err != nil {
		return nil, fmt.Errorf("could not marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+searchTextPath, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", c.apiKey)
	req.Header.Set("X-Goog-FieldMask", FieldMask)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.PlacesSearches.WithLabelValues(metrics.ResultError).Inc()

		return nil, fmt.Errorf("could not send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.PlacesSearches.WithLabelValues(metrics.ResultError).Inc()

		return nil, fmt.Errorf("could not read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.PlacesSearches.WithLabelValues(metrics.ResultStatus).Inc()

		return nil, serrors.With(serrors.ErrUpstream, "%s", string(b))
	}

	// successful
	var rs searchTextResponse
	if err := json.Unmarshal(b, &rs); err != nil {
		metrics.PlacesSearches.WithLabelValues(metrics.ResultError).Inc()

		return nil, fmt.Errorf("could not decode response: %w", err)
	}
	metrics.PlacesSearches.WithLabelValues(metrics.ResultOK).Inc()

	out := make([]domain.Business, 0, len(rs.Places))
	for _, p := range rs.Places {
		biz := domain.Business{
			Address: p.FormattedAddress,
			Rating:  p.Rating,
			Phone:   p.NationalPhoneNumber,
			Website: p.WebsiteURI,
		}
		if p.DisplayName != nil {
			biz.Name = p.DisplayName.Text
		}
		if biz.Phone == "" {
			biz.Phone = p.InternationalPhoneNumber
		}
		out = append(out, biz)
	}

	return out, nil
}
