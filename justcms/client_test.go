package justcms

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	logger := zerolog.Nop()

	// Make sure ambient credentials don't leak into the table cases
	t.Setenv(EnvToken, "")
	t.Setenv(EnvProjectID, "")

	tests := []struct {
		name      string
		token     string
		projectID string
		wantErr   error
	}{
		{
			name:      "valid config",
			token:     "test-token",
			projectID: "test-project",
		},
		{
			name:      "missing token",
			token:     "",
			projectID: "test-project",
			wantErr:   ErrMissingToken,
		},
		{
			name:      "missing project ID",
			token:     "test-token",
			projectID: "",
			wantErr:   ErrMissingProjectID,
		},
		{
			name:      "both missing reports token first",
			token:     "",
			projectID: "",
			wantErr:   ErrMissingToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.token, tt.projectID, logger)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.token, client.token)
			assert.Equal(t, tt.projectID, client.projectID)
			assert.Equal(t, DefaultBaseURL, client.baseURL)
		})
	}
}

func TestNewClientAmbientFallback(t *testing.T) {
	logger := zerolog.Nop()

	t.Setenv(EnvToken, "env-token")
	t.Setenv(EnvProjectID, "env-project")

	t.Run("explicit arguments win", func(t *testing.T) {
		client, err := NewClient("explicit-token", "explicit-project", logger)
		require.NoError(t, err)
		assert.Equal(t, "explicit-token", client.token)
		assert.Equal(t, "explicit-project", client.projectID)
	})

	t.Run("environment fills the gaps", func(t *testing.T) {
		client, err := NewClient("", "", logger)
		require.NoError(t, err)
		assert.Equal(t, "env-token", client.token)
		assert.Equal(t, "env-project", client.projectID)
	})
}

func TestClientOptions(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("with base URL", func(t *testing.T) {
		client, err := NewClient("tok", "proj", logger, WithBaseURL("http://localhost:8080/"))
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8080", client.baseURL)
	})

	t.Run("with timeout", func(t *testing.T) {
		client, err := NewClient("tok", "proj", logger, WithTimeout(5*time.Second))
		require.NoError(t, err)
		assert.Equal(t, 5*time.Second, client.httpClient.Timeout)
	})

	t.Run("with custom http client", func(t *testing.T) {
		custom := &http.Client{Timeout: 10 * time.Second}
		client, err := NewClient("tok", "proj", logger, WithHTTPClient(custom))
		require.NoError(t, err)
		assert.Equal(t, custom, client.httpClient)
	})
}

// newTestClient spins up a mock API and returns a client pointed at it
func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient("test-token", "test-project", zerolog.Nop(), WithBaseURL(server.URL))
	require.NoError(t, err)
	return client
}

func TestGetCategories(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/test-project", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Empty(t, r.URL.RawQuery)

		json.NewEncoder(w).Encode(CategoriesResponse{
			Categories: []Category{
				{Name: "Blog", Slug: "blog"},
				{Name: "News", Slug: "news"},
			},
		})
	})

	categories, err := client.GetCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "blog", categories[0].Slug)
	assert.Equal(t, "news", categories[1].Slug)
}

func TestGetPages(t *testing.T) {
	intPtr := func(v int) *int { return &v }

	tests := []struct {
		name      string
		query     PageQuery
		wantQuery map[string]string
	}{
		{
			name:      "no filters omits all params",
			query:     PageQuery{},
			wantQuery: map[string]string{},
		},
		{
			name:  "category filter only",
			query: PageQuery{Category: "blog"},
			wantQuery: map[string]string{
				"filter.category.slug": "blog",
			},
		},
		{
			name:  "full pagination",
			query: PageQuery{Category: "blog", Start: intPtr(0), Offset: intPtr(10)},
			wantQuery: map[string]string{
				"filter.category.slug": "blog",
				"start":                "0",
				"offset":               "10",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/test-project/pages", r.URL.Path)

				query := r.URL.Query()
				assert.Len(t, query, len(tt.wantQuery))
				for key, want := range tt.wantQuery {
					assert.Equal(t, []string{want}, query[key])
				}

				json.NewEncoder(w).Encode(PagesResponse{
					Items: []PageSummary{{Title: "Hello", Slug: "hello"}},
					Total: 1,
				})
			})

			result, err := client.GetPages(context.Background(), tt.query)
			require.NoError(t, err)
			assert.Equal(t, 1, result.Total)
			require.Len(t, result.Items, 1)
			assert.Equal(t, "hello", result.Items[0].Slug)
		})
	}
}

func TestGetPageBySlug(t *testing.T) {
	t.Run("plain fetch", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/test-project/pages/hello-world", r.URL.Path)
			assert.Empty(t, r.URL.RawQuery)

			json.NewEncoder(w).Encode(PageDetail{
				Title: "Hello World",
				Slug:  "hello-world",
				Meta:  PageMeta{Title: "Hello", Description: "A greeting"},
			})
		})

		page, err := client.GetPageBySlug(context.Background(), "hello-world", "")
		require.NoError(t, err)
		assert.Equal(t, "Hello World", page.Title)
		assert.Equal(t, "A greeting", page.Meta.Description)
	})

	t.Run("version tag", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "draft", r.URL.Query().Get("v"))
			json.NewEncoder(w).Encode(PageDetail{Slug: "hello-world"})
		})

		_, err := client.GetPageBySlug(context.Background(), "hello-world", "draft")
		require.NoError(t, err)
	})

	t.Run("empty slug rejected before any request", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("no request expected")
		})

		_, err := client.GetPageBySlug(context.Background(), "", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "slug is required")
	})

	t.Run("unknown slug surfaces 404", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte("not found"))
		})

		_, err := client.GetPageBySlug(context.Background(), "missing", "")
		require.Error(t, err)

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
		assert.Equal(t, "not found", apiErr.Body)
		assert.True(t, apiErr.IsNotFound())
	})
}

func TestGetMenuByID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/test-project/menus/main", r.URL.Path)

		json.NewEncoder(w).Encode(Menu{
			ID:   "main",
			Name: "Main Menu",
			Items: []MenuItem{
				{
					Title: "Home",
					URL:   "/",
					Children: []MenuItem{
						{Title: "About", URL: "/about"},
					},
				},
			},
		})
	})

	menu, err := client.GetMenuByID(context.Background(), "main")
	require.NoError(t, err)
	assert.Equal(t, "Main Menu", menu.Name)
	require.Len(t, menu.Items, 1)
	require.Len(t, menu.Items[0].Children, 1)
	assert.Equal(t, "About", menu.Items[0].Children[0].Title)

	_, err = client.GetMenuByID(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "menu ID is required")
}

func TestGetLayoutByID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/test-project/layouts/footer", r.URL.Path)

		json.NewEncoder(w).Encode(Layout{
			ID:   "footer",
			Name: "Footer",
			Items: []LayoutItem{
				{Label: "Copyright", UID: "copyright", Type: "text", Value: json.RawMessage(`"© 2026"`)},
			},
		})
	})

	layout, err := client.GetLayoutByID(context.Background(), "footer")
	require.NoError(t, err)
	assert.Equal(t, "Footer", layout.Name)
	require.Len(t, layout.Items, 1)
	assert.Equal(t, "copyright", layout.Items[0].UID)
}

func TestGetLayoutsByIDs(t *testing.T) {
	t.Run("joined path and input order", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/test-project/layouts/a;b;c", r.URL.Path)

			json.NewEncoder(w).Encode([]Layout{
				{ID: "a"}, {ID: "b"}, {ID: "c"},
			})
		})

		layouts, err := client.GetLayoutsByIDs(context.Background(), []string{"a", "b", "c"})
		require.NoError(t, err)
		require.Len(t, layouts, 3)
		for i, want := range []string{"a", "b", "c"} {
			assert.Equal(t, want, layouts[i].ID)
		}
	})

	t.Run("empty list rejected", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("no request expected")
		})

		_, err := client.GetLayoutsByIDs(context.Background(), nil)
		require.Error(t, err)
	})
}

func TestAPIErrorSurfacesForEveryOperation(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	})

	ctx := context.Background()
	calls := []struct {
		name string
		call func() error
	}{
		{"categories", func() error { _, err := client.GetCategories(ctx); return err }},
		{"pages", func() error { _, err := client.GetPages(ctx, PageQuery{}); return err }},
		{"page by slug", func() error { _, err := client.GetPageBySlug(ctx, "x", ""); return err }},
		{"menu", func() error { _, err := client.GetMenuByID(ctx, "x"); return err }},
		{"layout", func() error { _, err := client.GetLayoutByID(ctx, "x"); return err }},
		{"layouts", func() error { _, err := client.GetLayoutsByIDs(ctx, []string{"x"}); return err }},
	}

	for _, tt := range calls {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			require.Error(t, err)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
			assert.Equal(t, "boom", apiErr.Body)
		})
	}
}

func TestMalformedBodyIsNotAPIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{not json"))
	})

	_, err := client.GetCategories(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
	assert.Contains(t, err.Error(), "parse")
}
