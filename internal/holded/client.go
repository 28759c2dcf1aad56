// =============================================================================
// Holded Stock Report - Holded API Client
// =============================================================================
//
// This module wraps the Holded invoicing API: paginated document fetches
// per document type, the full product catalog fetch, and the docNumber
// search across all configured document types.
//
// PAGINATION:
//   Every listing endpoint is fetched page by page (page/limit query
//   parameters) until a short or empty page signals the end. The API is
//   inconsistent about its envelope: some responses are a bare JSON array,
//   others wrap the array in {"data": [...]}. Both are accepted.
//
// AUTH:
//   Requests carry the API key in the "key" header. The key comes from the
//   environment via the config package; this client never reads it itself.
//
// =============================================================================

package holded

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jmfernandez-ops/holded-stock-report/internal/config"
	"github.com/jmfernandez-ops/holded-stock-report/internal/types"
)

// ErrDocumentNotFound reports a document number that matched nothing in
// any configured document type.
var ErrDocumentNotFound = errors.New("document not found in any configured document type")

// =============================================================================
// CLIENT
// =============================================================================

// Client wraps interactions with the Holded invoicing API.
type Client struct {
	baseURL    string
	apiKey     string
	pageSize   int
	endpoints  []config.DocumentEndpoint
	httpClient *http.Client
}

// NewClient constructs a new client from the loaded configuration.
func NewClient(cfg *config.MainConfig, creds config.Credentials) *Client {
	return &Client{
		baseURL:   strings.TrimRight(cfg.API.BaseURL, "/"),
		apiKey:    creds.APIKey,
		pageSize:  cfg.API.PageSize,
		endpoints: cfg.API.DocumentEndpoints,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.API.TimeoutSeconds) * time.Second,
		},
	}
}

// =============================================================================
// FETCH OPERATIONS
// =============================================================================

// FetchDocuments fetches every document of one type, across all pages.
//
// PARAMETERS:
//   - endpointPath: The path segment under /documents (e.g. "estimate").
//
// RETURNS:
//   - All documents of that type, in API order.
func (c *Client) FetchDocuments(ctx context.Context, endpointPath string) ([]types.Document, error) {
	return fetchAll[types.Document](ctx, c, "/documents/"+endpointPath)
}

// FetchAllProducts fetches the full product catalog, across all pages.
func (c *Client) FetchAllProducts(ctx context.Context) ([]types.ProductRecord, error) {
	return fetchAll[types.ProductRecord](ctx, c, "/products")
}

// FindDocument searches every configured document type, in order, for a
// document number (case-insensitive).
//
// RETURNS:
//   - The document type label, the matching document, and nil.
//   - ErrDocumentNotFound (wrapped) when no type contains the number.
func (c *Client) FindDocument(ctx context.Context, docNumber string) (string, types.Document, error) {
	for _, endpoint := range c.endpoints {
		docs, err := c.FetchDocuments(ctx, endpoint.Path)
		if err != nil {
			return "", types.Document{}, fmt.Errorf("failed to fetch %s documents: %w", endpoint.Label, err)
		}
		for _, doc := range docs {
			if strings.EqualFold(doc.DocNumber, docNumber) {
				return endpoint.Label, doc, nil
			}
		}
	}
	return "", types.Document{}, fmt.Errorf("%q: %w", docNumber, ErrDocumentNotFound)
}

// =============================================================================
// PAGINATED FETCH
// =============================================================================

// fetchAll walks a listing endpoint page by page, decoding each page into
// records of type T, until a short or empty page ends the listing.
func fetchAll[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	var all []T

	for page := 1; ; page++ {
		chunk, err := c.fetchPage(ctx, path, page)
		if err != nil {
			return nil, err
		}

		var records []T
		if err := json.Unmarshal(chunk, &records); err != nil {
			return nil, fmt.Errorf("failed to decode page %d of %s: %w", page, path, err)
		}

		if len(records) == 0 {
			break
		}
		all = append(all, records...)
		if len(records) < c.pageSize {
			break
		}
	}

	return all, nil
}

// fetchPage performs one GET against a listing endpoint and returns the
// raw JSON array for that page, unwrapping the {"data": [...]} envelope
// when present.
func (c *Client) fetchPage(ctx context.Context, path string, page int) (json.RawMessage, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(c.pageSize))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("holded returned status %d for %s", resp.StatusCode, path)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return unwrapEnvelope(body)
}

// unwrapEnvelope accepts either a bare JSON array or an object with a
// "data" array and returns the array. An object without data is an empty
// page; any other shape is an error.
func unwrapEnvelope(body []byte) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return json.RawMessage("[]"), nil
	}

	switch trimmed[0] {
	case '[':
		return json.RawMessage(trimmed), nil
	case '{':
		var envelope struct {
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return nil, fmt.Errorf("failed to decode response envelope: %w", err)
		}
		if len(envelope.Data) == 0 {
			return json.RawMessage("[]"), nil
		}
		return envelope.Data, nil
	default:
		return nil, fmt.Errorf("unexpected response shape: %.40s", trimmed)
	}
}
