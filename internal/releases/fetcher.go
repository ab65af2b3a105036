package releases

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/handiism/ds-patches-downloader/internal/http"
	"github.com/handiism/ds-patches-downloader/internal/logging"
	"github.com/handiism/ds-patches-downloader/internal/model"
	"github.com/handiism/ds-patches-downloader/internal/releases/dto"
)

// DefaultPerPage is the page size requested from the releases API.
const DefaultPerPage = 100

const (
	acceptHeader  = "application/vnd.github+json"
	pageSchemaURL = "https://github.com/handiism/ds-patches-downloader/schema/releases_page.json"
)

//go:embed schema/releases_page.json
var pageSchemaJSON []byte

var pageSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(pageSchemaJSON))
	if err != nil {
		return nil, err
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(pageSchemaURL, doc); err != nil {
		return nil, err
	}
	return c.Compile(pageSchemaURL)
})

// Fetcher pages through a releases API and builds a Catalog.
//
// The API is expected to behave like GitHub's "list releases" endpoint:
// GET {base}/releases?per_page=N&page=P returns a JSON array, and a page
// with fewer than N items is the last one.
//
// Example usage:
//
//	fetcher := NewFetcher(client, "https://api.github.com/repos/owner/repo",
//	    WithLogger(logger))
//
//	catalog, err := fetcher.Fetch(ctx)
//	if err != nil {
//	    var fetchErr *CatalogFetchError
//	    errors.As(err, &fetchErr) // true for every failure
//	}
type Fetcher struct {
	client  *http.Client
	baseURL string
	perPage int
	logger  *log.Logger
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithPerPage sets the page size. Values <= 0 are ignored.
func WithPerPage(n int) FetcherOption {
	return func(f *Fetcher) {
		if n > 0 {
			f.perPage = n
		}
	}
}

// WithLogger sets the logger used for per-page debug output.
func WithLogger(l *log.Logger) FetcherOption {
	return func(f *Fetcher) {
		f.logger = l
	}
}

// NewFetcher creates a Fetcher for the repository API at baseURL.
func NewFetcher(client *http.Client, baseURL string, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		client:  client,
		baseURL: baseURL,
		perPage: DefaultPerPage,
	}
	for _, opt := range opts {
		opt(f)
	}
	f.logger = logging.OrDiscard(f.logger)
	return f
}

// Fetch requests pages until one returns fewer items than the page size,
// then indexes all releases by tag name.
//
// Any failing page (transport error, non-2xx status, body that does not
// match the releases schema) aborts the fetch with a *CatalogFetchError.
// There are no retries. A tag that appears twice keeps the later entry.
func (f *Fetcher) Fetch(ctx context.Context) (model.Catalog, error) {
	var items []dto.JSONRelease

	for page := 1; ; page++ {
		pageItems, err := f.fetchPage(ctx, page)
		if err != nil {
			return nil, &CatalogFetchError{Page: page, Err: err}
		}
		f.logger.Debug("fetched releases page", "page", page, "items", len(pageItems))

		items = append(items, pageItems...)
		if len(pageItems) < f.perPage {
			break
		}
	}

	catalog := make(model.Catalog, len(items))
	for i := range items {
		rel := items[i].ToRelease()
		catalog[rel.TagName] = rel
	}
	return catalog, nil
}

func (f *Fetcher) pageURL(page int) (string, error) {
	u, err := url.Parse(f.baseURL)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	u = u.JoinPath("releases")

	q := u.Query()
	q.Set("per_page", strconv.Itoa(f.perPage))
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()

	return u.String(), nil
}

func (f *Fetcher) fetchPage(ctx context.Context, page int) ([]dto.JSONRelease, error) {
	pageURL, err := f.pageURL(page)
	if err != nil {
		return nil, err
	}

	body, err := f.client.GetWithAccept(ctx, pageURL, acceptHeader)
	if err != nil {
		return nil, err
	}

	if err := validatePage(body); err != nil {
		return nil, err
	}

	var items []dto.JSONRelease
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("decode releases: %w", err)
	}
	return items, nil
}

func validatePage(body []byte) error {
	schema, err := pageSchema()
	if err != nil {
		return fmt.Errorf("compile releases schema: %w", err)
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("decode releases: %w", err)
	}
	if err := schema.Validate(inst); err != nil {
		return fmt.Errorf("unexpected releases payload: %w", err)
	}
	return nil
}
