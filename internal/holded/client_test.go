package holded

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmfernandez-ops/holded-stock-report/internal/config"
)

// newTestClient builds a client pointed at a test server, with a page
// size of 2 to exercise pagination quickly.
func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.MainConfig{
		API: config.APIConfig{
			BaseURL:        server.URL,
			PageSize:       2,
			TimeoutSeconds: 5,
			DocumentEndpoints: []config.DocumentEndpoint{
				{Label: "Presupuesto", Path: "estimate"},
				{Label: "Pedido", Path: "salesorder"},
			},
		},
	}
	return NewClient(cfg, config.Credentials{APIKey: "test-key"})
}

func TestFetchAllProductsPaginatesAndUnwrapsEnvelope(t *testing.T) {
	var seenKeys []string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/products", r.URL.Path)
		seenKeys = append(seenKeys, r.Header.Get("key"))

		switch r.URL.Query().Get("page") {
		case "1":
			// Enveloped full page.
			fmt.Fprint(w, `{"data":[{"id":"p1","name":"One"},{"id":"p2","name":"Two"}]}`)
		case "2":
			// Bare short page ends the listing.
			fmt.Fprint(w, `[{"id":"p3","name":"Three"}]`)
		default:
			t.Fatalf("unexpected page %q", r.URL.Query().Get("page"))
		}
	})

	products, err := newTestClient(t, handler).FetchAllProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, "p3", products[2].ID)
	assert.Equal(t, []string{"test-key", "test-key"}, seenKeys)
}

func TestFetchDocumentsStopsOnEmptyPage(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("page") {
		case "1":
			fmt.Fprint(w, `[{"id":"d1","docNumber":"A-1"},{"id":"d2","docNumber":"A-2"}]`)
		case "2":
			fmt.Fprint(w, `{"data":[]}`)
		default:
			t.Fatalf("unexpected page %q", r.URL.Query().Get("page"))
		}
	})

	docs, err := newTestClient(t, handler).FetchDocuments(context.Background(), "estimate")
	require.NoError(t, err)
	assert.Len(t, docs, 2)
}

func TestFindDocumentSearchesTypesInOrder(t *testing.T) {
	var paths []string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		switch r.URL.Path {
		case "/documents/estimate":
			fmt.Fprint(w, `[]`)
		case "/documents/salesorder":
			fmt.Fprint(w, `[{"id":"d9","docNumber":"PED-42","products":[{"productId":"p1","units":3}]}]`)
		default:
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
	})

	label, doc, err := newTestClient(t, handler).FindDocument(context.Background(), "ped-42")
	require.NoError(t, err)
	assert.Equal(t, "Pedido", label)
	assert.Equal(t, "PED-42", doc.DocNumber, "matching is case-insensitive, original casing kept")
	assert.Equal(t, []string{"/documents/estimate", "/documents/salesorder"}, paths)

	// The raw line-item container decodes loosely for the resolver.
	items, ok := doc.Items.([]any)
	require.True(t, ok)
	assert.Len(t, items, 1)
}

func TestFindDocumentNotFound(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	})

	_, _, err := newTestClient(t, handler).FindDocument(context.Background(), "NOPE-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestFetchPropagatesHTTPErrors(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	})

	_, err := newTestClient(t, handler).FetchAllProducts(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}

func TestUnwrapEnvelope(t *testing.T) {
	raw, err := unwrapEnvelope([]byte(`  [1,2]`))
	require.NoError(t, err)
	assert.JSONEq(t, `[1,2]`, string(raw))

	raw, err = unwrapEnvelope([]byte(`{"data":[1]}`))
	require.NoError(t, err)
	assert.JSONEq(t, `[1]`, string(raw))

	raw, err = unwrapEnvelope([]byte(`{"status":"ok"}`))
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(raw), "an object without data is an empty page")

	_, err = unwrapEnvelope([]byte(`"surprise"`))
	assert.Error(t, err)
}
