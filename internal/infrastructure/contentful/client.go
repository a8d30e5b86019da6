package contentful

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/catalogsync/backend/internal/domain/catalog"
	"github.com/catalogsync/backend/internal/domain/integration"
)

// maxResponseSize is the maximum allowed response size from the CDA (10MB)
const maxResponseSize = 10 * 1024 * 1024

// fetchLimit is the page size requested from the CDA. The catalog is small
// enough that a single page covers it.
const fetchLimit = 1000

// Client implements integration.CatalogSource against the Contentful
// Content Delivery API
type Client struct {
	config     *Config
	httpClient *http.Client
}

// NewClient creates a Contentful client with the given configuration.
// A client may be created without credentials; FetchEntries will refuse to
// run until IsConfigured reports true.
func NewClient(config *Config) *Client {
	if config.Environment == "" {
		config.Environment = "master"
	}
	if config.ContentType == "" {
		config.ContentType = DefaultContentType
	}
	if config.APIBaseURL == "" {
		config.APIBaseURL = DefaultAPIBaseURL
	}
	if config.TimeoutSeconds <= 0 {
		config.TimeoutSeconds = 30
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(config.TimeoutSeconds) * time.Second,
		},
	}
}

// IsConfigured reports whether the space ID and access token are both set
func (c *Client) IsConfigured() bool {
	return c.config.IsConfigured()
}

// FetchEntries retrieves all entries of the configured content type and
// normalizes them into catalog entries
func (c *Client) FetchEntries(ctx context.Context) ([]integration.CatalogEntry, error) {
	if !c.IsConfigured() {
		return nil, integration.ErrSourceNotConfigured
	}

	body, err := c.doRequest(ctx)
	if err != nil {
		return nil, err
	}

	var resp EntriesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", integration.ErrSourceInvalidResponse, err)
	}

	entries := make([]integration.CatalogEntry, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Sys.ID == "" {
			continue
		}
		entry, err := mapEntry(item)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %s: %v", integration.ErrSourceInvalidResponse, item.Sys.ID, err)
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// doRequest performs the entries query against the CDA
func (c *Client) doRequest(ctx context.Context) ([]byte, error) {
	endpoint := fmt.Sprintf("%s/spaces/%s/environments/%s/entries",
		c.config.APIBaseURL,
		url.PathEscape(c.config.SpaceID),
		url.PathEscape(c.config.Environment),
	)

	values := url.Values{}
	values.Set("access_token", c.config.AccessToken)
	values.Set("content_type", c.config.ContentType)
	values.Set("limit", strconv.Itoa(fetchLimit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+values.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("contentful: failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", integration.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("contentful: failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: space %q", integration.ErrSourceSpaceNotFound, c.config.SpaceID)
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, integration.ErrSourceUnauthorized
	case resp.StatusCode >= 400:
		return nil, fmt.Errorf("%w: HTTP %d: %s", integration.ErrSourceRequestFailed, resp.StatusCode, apiErrorMessage(body))
	}

	return body, nil
}

// apiErrorMessage extracts the error message from a CDA error body
func apiErrorMessage(body []byte) string {
	var apiErr APIError
	if err := json.Unmarshal(body, &apiErr); err != nil || apiErr.Message == "" {
		return "unknown error"
	}
	return apiErr.Message
}

// mapEntry normalizes a Contentful entry into a catalog entry.
// Name falls back from the name field to the title field; the entity applies
// the final default when both are absent. Category falls back to the first
// element of a categories list. The raw payload keeps the original fields and
// sys block for auditing.
func mapEntry(item Entry) (integration.CatalogEntry, error) {
	fields := catalog.ProductFields{
		Name:     stringField(item.Fields, "name"),
		Category: categoryField(item.Fields),
		Price:    priceField(item.Fields),
	}
	if fields.Name == "" {
		fields.Name = stringField(item.Fields, "title")
	}

	raw := make(map[string]any, len(item.Fields)+1)
	for k, v := range item.Fields {
		raw[k] = v
	}
	if len(item.Sys.RawSys) > 0 {
		raw["sys"] = item.Sys.RawSys
	} else {
		raw["sys"] = item.Sys
	}

	rawData, err := json.Marshal(raw)
	if err != nil {
		return integration.CatalogEntry{}, err
	}
	fields.RawData = string(rawData)

	return integration.CatalogEntry{
		ExternalID: item.Sys.ID,
		Fields:     fields,
	}, nil
}

// stringField reads a non-empty string field
func stringField(fields map[string]any, key string) string {
	if v, ok := fields[key].(string); ok {
		return v
	}
	return ""
}

// categoryField reads the category, falling back to the first entry of a
// categories list
func categoryField(fields map[string]any) *string {
	if v, ok := fields["category"].(string); ok && v != "" {
		return &v
	}
	if list, ok := fields["categories"].([]any); ok && len(list) > 0 {
		if v, ok := list[0].(string); ok && v != "" {
			return &v
		}
	}
	return nil
}

// priceField reads a numeric price field
func priceField(fields map[string]any) *decimal.Decimal {
	v, ok := fields["price"].(float64)
	if !ok {
		return nil
	}
	d := decimal.NewFromFloat(v)
	return &d
}

var _ integration.CatalogSource = (*Client)(nil)
