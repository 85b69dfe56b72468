package justcms

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultBaseURL is the public JustCMS API endpoint
const DefaultBaseURL = "https://api.justcms.co/public"

// Environment variables consulted when no explicit credentials are given
const (
	EnvToken     = "JUSTCMS_API_TOKEN"
	EnvProjectID = "JUSTCMS_PROJECT_ID"
)

// Client wraps the JustCMS public API
type Client struct {
	baseURL    string
	token      string
	projectID  string
	httpClient *http.Client
	logger     zerolog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithBaseURL overrides the API base URL
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithTimeout sets the HTTP client timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a new JustCMS client. Empty token or projectID fall
// back to the JUSTCMS_API_TOKEN and JUSTCMS_PROJECT_ID environment
// variables; if a value is still missing after that, the token is
// reported first. Credentials are resolved once and cached for the
// lifetime of the client.
func NewClient(token, projectID string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if token == "" {
		token = os.Getenv(EnvToken)
	}
	if projectID == "" {
		projectID = os.Getenv(EnvProjectID)
	}

	if token == "" {
		return nil, ErrMissingToken
	}
	if projectID == "" {
		return nil, ErrMissingProjectID
	}

	client := &Client{
		baseURL:   DefaultBaseURL,
		token:     token,
		projectID: projectID,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// ProjectID returns the resolved project identifier
func (c *Client) ProjectID() string {
	return c.projectID
}

// doRequest performs an authenticated GET against the project API.
// An empty endpoint addresses the project root. Returns the raw body;
// non-2xx responses surface as *APIError with the body read in full.
func (c *Client) doRequest(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	requestURL := fmt.Sprintf("%s/%s", c.baseURL, c.projectID)
	if endpoint != "" {
		requestURL += "/" + endpoint
	}
	if len(params) > 0 {
		requestURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().Str("url", requestURL).Msg("Making JustCMS API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	return body, nil
}

// CategoriesResponse wraps the project root category listing
type CategoriesResponse struct {
	Categories []Category `json:"categories"`
}

// GetCategories retrieves all categories for the project
func (c *Client) GetCategories(ctx context.Context) ([]Category, error) {
	body, err := c.doRequest(ctx, "", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}

	var response CategoriesResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse categories response: %w", err)
	}

	c.logger.Debug().Int("count", len(response.Categories)).Msg("Retrieved categories")
	return response.Categories, nil
}

// PageQuery narrows a page listing. Zero values mean "not set": an
// empty Category omits the slug filter and nil Start/Offset omit the
// pagination parameters entirely.
type PageQuery struct {
	Category string
	Start    *int
	Offset   *int
}

// GetPages retrieves pages for the project, optionally filtered by
// category slug and paginated via start/offset
func (c *Client) GetPages(ctx context.Context, query PageQuery) (*PagesResponse, error) {
	params := url.Values{}
	if query.Category != "" {
		params.Set("filter.category.slug", query.Category)
	}
	if query.Start != nil {
		params.Set("start", strconv.Itoa(*query.Start))
	}
	if query.Offset != nil {
		params.Set("offset", strconv.Itoa(*query.Offset))
	}

	body, err := c.doRequest(ctx, "pages", params)
	if err != nil {
		return nil, fmt.Errorf("failed to get pages: %w", err)
	}

	var response PagesResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse pages response: %w", err)
	}

	c.logger.Debug().
		Int("count", len(response.Items)).
		Int("total", response.Total).
		Msg("Retrieved pages")
	return &response, nil
}

// GetPageBySlug retrieves a single page by its slug. An optional
// version tag (e.g. a draft marker) is passed as the v query parameter.
// A missing slug surfaces as an *APIError with status 404.
func (c *Client) GetPageBySlug(ctx context.Context, slug, version string) (*PageDetail, error) {
	if slug == "" {
		return nil, fmt.Errorf("page slug is required")
	}

	params := url.Values{}
	if version != "" {
		params.Set("v", version)
	}

	body, err := c.doRequest(ctx, "pages/"+slug, params)
	if err != nil {
		return nil, fmt.Errorf("failed to get page %s: %w", slug, err)
	}

	var page PageDetail
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("failed to parse page response: %w", err)
	}

	return &page, nil
}

// GetMenuByID retrieves a menu by its identifier
func (c *Client) GetMenuByID(ctx context.Context, id string) (*Menu, error) {
	if id == "" {
		return nil, fmt.Errorf("menu ID is required")
	}

	body, err := c.doRequest(ctx, "menus/"+id, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get menu %s: %w", id, err)
	}

	var menu Menu
	if err := json.Unmarshal(body, &menu); err != nil {
		return nil, fmt.Errorf("failed to parse menu response: %w", err)
	}

	return &menu, nil
}

// GetLayoutByID retrieves a layout by its identifier
func (c *Client) GetLayoutByID(ctx context.Context, id string) (*Layout, error) {
	if id == "" {
		return nil, fmt.Errorf("layout ID is required")
	}

	body, err := c.doRequest(ctx, "layouts/"+id, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get layout %s: %w", id, err)
	}

	var layout Layout
	if err := json.Unmarshal(body, &layout); err != nil {
		return nil, fmt.Errorf("failed to parse layout response: %w", err)
	}

	return &layout, nil
}

// GetLayoutsByIDs retrieves multiple layouts in one request. The ids
// are joined with ";" into a single endpoint path and the result order
// matches the input order index-for-index.
func (c *Client) GetLayoutsByIDs(ctx context.Context, ids []string) ([]Layout, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("at least one layout ID is required")
	}

	body, err := c.doRequest(ctx, "layouts/"+strings.Join(ids, ";"), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get layouts: %w", err)
	}

	var layouts []Layout
	if err := json.Unmarshal(body, &layouts); err != nil {
		return nil, fmt.Errorf("failed to parse layouts response: %w", err)
	}

	c.logger.Debug().Int("count", len(layouts)).Msg("Retrieved layouts")
	return layouts, nil
}
