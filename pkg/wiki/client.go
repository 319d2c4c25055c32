package wiki

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"time"

	"github.com/matzehuels/wikigraph/pkg/buildinfo"
	"github.com/matzehuels/wikigraph/pkg/observability"
)

const (
	// DefaultLang is the Wikipedia edition queried when none is configured.
	DefaultLang = "en"

	httpTimeout = 10 * time.Second

	// maxContinuations bounds paging through a single category listing.
	// With cmlimit=max (500 per page) this allows 250k subcategories.
	maxContinuations = 500
)

var (
	// ErrNotFound is returned when a category doesn't exist.
	ErrNotFound = errors.New("category not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, unexpected status).
	ErrNetwork = errors.New("network error")

	// ErrAPI is returned when the MediaWiki API reports an error in its response body.
	ErrAPI = errors.New("mediawiki api error")
)

// APIError carries the error object returned by the MediaWiki API.
// It matches [ErrAPI] with errors.Is.
type APIError struct {
	Code string `json:"code"`
	Info string `json:"info"`
}

func (e *APIError) Error() string { return fmt.Sprintf("mediawiki api error: %s: %s", e.Code, e.Info) }

// Is reports whether target is [ErrAPI].
func (e *APIError) Is(target error) bool { return target == ErrAPI }

// Options configures a [Client].
type Options struct {
	// Lang selects the Wikipedia edition (the subdomain, e.g. "en", "de").
	// Defaults to [DefaultLang].
	Lang string

	// Endpoint overrides the action API URL. Defaults to
	// https://<lang>.wikipedia.org/w/api.php.
	Endpoint string

	// UserAgent overrides the User-Agent header. Defaults to [buildinfo.UserAgent].
	UserAgent string

	// HTTPClient overrides the HTTP client. Defaults to a client with a 10s timeout.
	HTTPClient *http.Client
}

// Client talks to the MediaWiki action API of one Wikipedia edition.
//
// A Client holds no mutable state and is safe for concurrent use.
type Client struct {
	http     *http.Client
	endpoint string
	lang     string
	headers  map[string]string
}

// NewClient creates a Client from opts, filling in defaults for zero fields.
func NewClient(opts Options) *Client {
	lang := opts.Lang
	if lang == "" {
		lang = DefaultLang
	}
	endpoint := opts.Endpoint
	if endpoint == "" {
		endpoint = fmt.Sprintf("https://%s.wikipedia.org/w/api.php", lang)
	}
	ua := opts.UserAgent
	if ua == "" {
		ua = buildinfo.UserAgent()
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: httpTimeout}
	}
	return &Client{
		http:     hc,
		endpoint: endpoint,
		lang:     lang,
		headers: map[string]string{
			"User-Agent": ua,
			"Accept":     "application/json",
		},
	}
}

// Lang returns the Wikipedia edition this client queries.
func (c *Client) Lang() string { return c.lang }

// CategoryURL returns the human-facing page URL of a category.
func (c *Client) CategoryURL(title string) string {
	return fmt.Sprintf("https://%s.wikipedia.org/wiki/%s%s",
		c.lang, categoryPrefix, url.PathEscape(FileName(title)))
}

// Exists checks that the category exists. A category without a description
// page still exists while it has members.
// It returns an error wrapping [ErrNotFound] for empty missing or invalid titles.
func (c *Client) Exists(ctx context.Context, title string) error {
	params := url.Values{
		"action": {"query"},
		"titles": {categoryPrefix + title},
		"prop":   {"categoryinfo"},
	}
	var resp pagesResponse
	if err := c.query(ctx, params, &resp); err != nil {
		return err
	}
	if len(resp.Query.Pages) == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, title)
	}
	page := resp.Query.Pages[0]
	if page.Invalid {
		return fmt.Errorf("%w: %s", ErrNotFound, title)
	}
	if page.Missing && (page.CategoryInfo == nil || page.CategoryInfo.Size == 0) {
		return fmt.Errorf("%w: %s", ErrNotFound, title)
	}
	return nil
}

// Subcategories returns the titles of the direct subcategories of title,
// without namespace prefix, sorted and deduplicated.
//
// Large listings are fetched page by page following the API continuation
// token. An empty result is not an error; use [Client.Exists] to tell an
// empty category from a missing one.
func (c *Client) Subcategories(ctx context.Context, title string) ([]string, error) {
	params := url.Values{
		"action":  {"query"},
		"list":    {"categorymembers"},
		"cmtitle": {categoryPrefix + title},
		"cmtype":  {"subcat"},
		"cmprop":  {"title"},
		"cmlimit": {"max"},
	}

	seen := make(map[string]bool)
	var titles []string
	for range maxContinuations {
		var resp membersResponse
		if err := c.query(ctx, params, &resp); err != nil {
			return nil, fmt.Errorf("subcategories of %s: %w", title, err)
		}
		for _, m := range resp.Query.Members {
			name := StripNamespace(m.Title)
			if name != "" && !seen[name] {
				seen[name] = true
				titles = append(titles, name)
			}
		}
		if len(resp.Continue) == 0 {
			slices.Sort(titles)
			return titles, nil
		}
		for k, v := range resp.Continue {
			params.Set(k, v)
		}
	}
	return nil, fmt.Errorf("subcategories of %s: %w: too many continuation pages", title, ErrAPI)
}

// query performs an action API GET request and decodes the JSON body into v.
func (c *Client) query(ctx context.Context, params url.Values, v any) error {
	params.Set("format", "json")
	params.Set("formatversion", "2")

	body, err := c.doRequest(ctx, c.endpoint+"?"+params.Encode())
	if err != nil {
		return err
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return fmt.Errorf("%w: read body: %v", ErrNetwork, err)
	}

	var envelope struct {
		Error *APIError `json:"error"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if envelope.Error != nil {
		return envelope.Error
	}
	return json.Unmarshal(data, v)
}

func (c *Client) doRequest(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	hooks := observability.HTTP()
	host, path := req.URL.Host, req.URL.Path
	hooks.OnRequest(ctx, req.Method, host, path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp.StatusCode); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp.Body, nil
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	}
}

type membersResponse struct {
	Continue map[string]string `json:"continue"`
	Query    struct {
		Members []apiPage `json:"categorymembers"`
	} `json:"query"`
}

type pagesResponse struct {
	Query struct {
		Pages []apiPage `json:"pages"`
	} `json:"query"`
}

type apiPage struct {
	NS           int           `json:"ns"`
	Title        string        `json:"title"`
	Missing      bool          `json:"missing"`
	Invalid      bool          `json:"invalid"`
	CategoryInfo *categoryInfo `json:"categoryinfo"`
}

// categoryInfo counts the members of a category, also for categories
// without a description page.
type categoryInfo struct {
	Size    int `json:"size"`
	Pages   int `json:"pages"`
	Files   int `json:"files"`
	Subcats int `json:"subcats"`
}
