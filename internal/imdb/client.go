package imdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"playtime/internal/media"
)

// IDPattern matches an IMDb title identifier anywhere in a string.
var IDPattern = regexp.MustCompile(`tt[0-9]{7,10}`)

// exactIDPattern matches a full string that is exactly one identifier.
var exactIDPattern = regexp.MustCompile(`^tt[0-9]{7,10}$`)

// ValidID reports whether id is a well-formed IMDb title identifier.
func ValidID(id string) bool {
	return exactIDPattern.MatchString(id)
}

var (
	// ErrNotFound indicates the id does not resolve to any title.
	ErrNotFound = errors.New("imdb title not found")
	// ErrUnsupported indicates the id resolves to something that is not a movie.
	ErrUnsupported = errors.New("imdb title type not supported")
)

// SearchResult is a single entry from a free-text title search, in provider
// ranking order.
type SearchResult struct {
	ID    string
	Title string
	Year  int
}

// Provider describes the metadata operations the identifier and refresher
// consume. The production implementation is Client; tests supply fakes.
type Provider interface {
	SearchTitle(ctx context.Context, query string) ([]SearchResult, error)
	GetTitle(ctx context.Context, id string) (*media.Movie, error)
}

// Client fetches movie metadata from IMDb using the public suggestion API for
// searches and the title page's embedded JSON-LD payload for details.
type Client struct {
	baseURL       string
	suggestionURL string
	language      string
	httpClient    *http.Client
}

var _ Provider = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// New creates an IMDb client.
func New(baseURL, suggestionURL, language string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("imdb base url required")
	}
	suggestionURL = strings.TrimSpace(suggestionURL)
	if suggestionURL == "" {
		return nil, errors.New("imdb suggestion url required")
	}
	language = strings.TrimSpace(language)
	if language == "" {
		language = "en"
	}
	client := &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		suggestionURL: strings.TrimRight(suggestionURL, "/"),
		language:      language,
		httpClient:    &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

type suggestionResponse struct {
	Entries []suggestionEntry `json:"d"`
}

type suggestionEntry struct {
	ID    string `json:"id"`
	Label string `json:"l"`
	Year  int    `json:"y"`
	QID   string `json:"qid"`
}

// SearchTitle performs a free-text title search. Results come back in
// provider ranking order; entries that are not titles are filtered out.
func (c *Client) SearchTitle(ctx context.Context, query string) ([]SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("query must not be empty")
	}

	endpoint := fmt.Sprintf("%s/%s.json", c.suggestionURL, url.PathEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search imdb: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search imdb: unexpected status %s", resp.Status)
	}

	var payload suggestionResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	results := make([]SearchResult, 0, len(payload.Entries))
	for _, entry := range payload.Entries {
		if !ValidID(entry.ID) {
			continue
		}
		results = append(results, SearchResult{ID: entry.ID, Title: entry.Label, Year: entry.Year})
	}
	return results, nil
}

// GetTitle fetches the full metadata record for an IMDb id.
func (c *Client) GetTitle(ctx context.Context, id string) (*media.Movie, error) {
	if !ValidID(id) {
		return nil, fmt.Errorf("malformed imdb id %q", id)
	}

	endpoint := fmt.Sprintf("%s/title/%s/", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build title request: %w", err)
	}
	req.Header.Set("Accept-Language", c.language)
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; playtime)")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch title page: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("fetch title page: unexpected status %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse title page: %w", err)
	}

	movie, err := movieFromDocument(doc, id)
	if err != nil {
		return nil, err
	}
	movie.DataEpoch = time.Now().Unix()
	return movie, nil
}
