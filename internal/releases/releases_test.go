package releases

import (
	"context"
	"errors"
	"fmt"
	nethttp "net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/handiism/ds-patches-downloader/internal/http"
	"github.com/handiism/ds-patches-downloader/internal/model"
	"github.com/handiism/ds-patches-downloader/internal/version"
)

func releaseJSON(tag string) string {
	return fmt.Sprintf(`{"tag_name":%q,"assets":[{"browser_download_url":"https://example.com/%s/server-%s.zip","size":10}]}`, tag, tag, tag)
}

func pageJSON(tags ...string) string {
	items := make([]string, len(tags))
	for i, tag := range tags {
		items[i] = releaseJSON(tag)
	}
	return "[" + strings.Join(items, ",") + "]"
}

type pageServer struct {
	mu    sync.Mutex
	pages map[string]string
	seen  []string
}

func (p *pageServer) ServeHTTP(w nethttp.ResponseWriter, r *nethttp.Request) {
	p.mu.Lock()
	defer p.mu.Unlock()

	page := r.URL.Query().Get("page")
	p.seen = append(p.seen, page)

	if r.URL.Path != "/repos/o/r/releases" || r.URL.Query().Get("per_page") != "2" {
		nethttp.NotFound(w, r)
		return
	}
	body, ok := p.pages[page]
	if !ok {
		body = "[]"
	}
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprint(w, body)
}

func newFetcher(srv *httptest.Server) *Fetcher {
	return NewFetcher(http.NewClient(http.DefaultOptions()), srv.URL+"/repos/o/r", WithPerPage(2))
}

func TestFetcher_Fetch_Pagination(t *testing.T) {
	tests := []struct {
		name      string
		pages     map[string]string
		wantTags  []string
		wantPages []string
	}{
		{
			name:      "short last page",
			pages:     map[string]string{"1": pageJSON("4.10", "4.11"), "2": pageJSON("4.12")},
			wantTags:  []string{"4.10", "4.11", "4.12"},
			wantPages: []string{"1", "2"},
		},
		{
			name:      "empty page after full page",
			pages:     map[string]string{"1": pageJSON("4.10", "4.11")},
			wantTags:  []string{"4.10", "4.11"},
			wantPages: []string{"1", "2"},
		},
		{
			name:      "no releases",
			pages:     map[string]string{},
			wantTags:  []string{},
			wantPages: []string{"1"},
		},
		{
			name:      "duplicate tag keeps later entry",
			pages:     map[string]string{"1": pageJSON("4.10", "4.11"), "2": pageJSON("4.11")},
			wantTags:  []string{"4.10", "4.11"},
			wantPages: []string{"1", "2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ps := &pageServer{pages: tt.pages}
			srv := httptest.NewServer(ps)
			defer srv.Close()

			catalog, err := newFetcher(srv).Fetch(context.Background())
			if err != nil {
				t.Fatalf("Fetch() error = %v", err)
			}

			tags := catalog.Tags()
			if strings.Join(tags, ",") != strings.Join(tt.wantTags, ",") {
				t.Errorf("tags = %v, want %v", tags, tt.wantTags)
			}
			if strings.Join(ps.seen, ",") != strings.Join(tt.wantPages, ",") {
				t.Errorf("requested pages = %v, want %v", ps.seen, tt.wantPages)
			}
		})
	}
}

func TestFetcher_Fetch_Asset(t *testing.T) {
	ps := &pageServer{pages: map[string]string{"1": pageJSON("4.12")}}
	srv := httptest.NewServer(ps)
	defer srv.Close()

	catalog, err := newFetcher(srv).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	rel, ok := catalog["4.12"]
	if !ok {
		t.Fatal("release 4.12 missing")
	}
	if len(rel.Assets) != 1 {
		t.Fatalf("got %d assets, want 1", len(rel.Assets))
	}
	if rel.Assets[0].Name != "server-4.12.zip" {
		t.Errorf("asset name = %q, want %q", rel.Assets[0].Name, "server-4.12.zip")
	}
	if rel.Assets[0].Size != 10 {
		t.Errorf("asset size = %d, want 10", rel.Assets[0].Size)
	}
}

func TestFetcher_Fetch_Errors(t *testing.T) {
	tests := []struct {
		name     string
		handler  nethttp.HandlerFunc
		wantPage int
	}{
		{
			name: "server error",
			handler: func(w nethttp.ResponseWriter, r *nethttp.Request) {
				nethttp.Error(w, "boom", nethttp.StatusInternalServerError)
			},
			wantPage: 1,
		},
		{
			name: "malformed json",
			handler: func(w nethttp.ResponseWriter, r *nethttp.Request) {
				fmt.Fprint(w, `[{"tag_name":`)
			},
			wantPage: 1,
		},
		{
			name: "object instead of array",
			handler: func(w nethttp.ResponseWriter, r *nethttp.Request) {
				fmt.Fprint(w, `{"message":"Not Found"}`)
			},
			wantPage: 1,
		},
		{
			name: "release without assets",
			handler: func(w nethttp.ResponseWriter, r *nethttp.Request) {
				fmt.Fprint(w, `[{"tag_name":"4.12"}]`)
			},
			wantPage: 1,
		},
		{
			name: "second page fails",
			handler: func(w nethttp.ResponseWriter, r *nethttp.Request) {
				if r.URL.Query().Get("page") == "1" {
					fmt.Fprint(w, pageJSON("4.10", "4.11"))
					return
				}
				nethttp.Error(w, "rate limited", nethttp.StatusForbidden)
			},
			wantPage: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			catalog, err := newFetcher(srv).Fetch(context.Background())
			if err == nil {
				t.Fatalf("Fetch() = %v, want error", catalog)
			}
			if catalog != nil {
				t.Errorf("catalog = %v, want nil", catalog)
			}

			var fetchErr *CatalogFetchError
			if !errors.As(err, &fetchErr) {
				t.Fatalf("error %T is not *CatalogFetchError", err)
			}
			if fetchErr.Page != tt.wantPage {
				t.Errorf("Page = %d, want %d", fetchErr.Page, tt.wantPage)
			}
		})
	}
}

func TestFetcher_Fetch_StatusError(t *testing.T) {
	srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		nethttp.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := newFetcher(srv).Fetch(context.Background())

	var statusErr *http.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("error %v does not wrap *http.StatusError", err)
	}
	if statusErr.Code != nethttp.StatusNotFound {
		t.Errorf("Code = %d, want 404", statusErr.Code)
	}
}

func catalogOf(tags ...string) model.Catalog {
	c := make(model.Catalog, len(tags))
	for _, tag := range tags {
		c[tag] = &model.Release{TagName: tag}
	}
	return c
}

func TestFilter(t *testing.T) {
	catalog := catalogOf("4.11.2", "4.12.0", "4.12.1", "4.13.0", "nightly")

	tests := []struct {
		name        string
		constraints []string
		want        []string
	}{
		{"range", []string{">=4.12,<4.13"}, []string{"4.12.0", "4.12.1"}},
		{"wildcard", []string{"*"}, []string{"4.11.2", "4.12.0", "4.12.1", "4.13.0"}},
		{"union", []string{"4.11.2", ">=4.13"}, []string{"4.11.2", "4.13.0"}},
		{"nothing", []string{">=5"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			constraints, err := version.ParseAll(tt.constraints)
			if err != nil {
				t.Fatalf("ParseAll() error = %v", err)
			}

			got := Filter(catalog, constraints).Tags()
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("Filter() = %v, want %v", got, tt.want)
			}

			again := Filter(Filter(catalog, constraints), constraints).Tags()
			if strings.Join(again, ",") != strings.Join(got, ",") {
				t.Errorf("Filter() not idempotent: %v then %v", got, again)
			}
		})
	}

	if len(catalog) != 5 {
		t.Errorf("input catalog modified, len = %d", len(catalog))
	}
}

func TestSelect_NoMatch(t *testing.T) {
	constraints := []*version.Constraint{version.MustParse(">=5")}

	got, err := Select(catalogOf("4.12.0"), constraints)
	if got != nil {
		t.Errorf("Select() = %v, want nil", got)
	}

	var noMatch *NoMatchError
	if !errors.As(err, &noMatch) {
		t.Fatalf("error %v is not *NoMatchError", err)
	}
	if len(noMatch.Constraints) != 1 || noMatch.Constraints[0] != ">=5" {
		t.Errorf("Constraints = %v, want [>=5]", noMatch.Constraints)
	}

	var fetchErr *CatalogFetchError
	if errors.As(err, &fetchErr) {
		t.Error("no-match error must not be a CatalogFetchError")
	}
}

func TestResolve(t *testing.T) {
	outputDir := t.TempDir()
	zip := model.NewAsset("https://example.com/d/server-4.12.0.zip", 1000)
	md5 := model.NewAsset("https://example.com/d/server-4.12.0.zip.md5", 32)
	other := model.NewAsset("https://example.com/d/server-4.12.0.exe", 2000)

	tests := []struct {
		name         string
		assets       []model.Asset
		wantOK       bool
		wantTarget   bool
		wantChecksum bool
	}{
		{"both", []model.Asset{zip, md5}, true, true, true},
		{"reversed order", []model.Asset{md5, other, zip}, true, true, true},
		{"target only", []model.Asset{other, zip}, true, true, false},
		{"checksum only", []model.Asset{md5}, true, false, true},
		{"neither", []model.Asset{other}, false, false, false},
		{"empty", nil, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, ok := Resolve(tt.assets, "server-4.12.0.zip", "server-4.12.0.zip.md5", outputDir)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				if spec != nil {
					t.Errorf("spec = %+v, want nil", spec)
				}
				return
			}

			if (spec.Target != nil) != tt.wantTarget {
				t.Errorf("Target = %+v, want present=%v", spec.Target, tt.wantTarget)
			}
			if (spec.Checksum != nil) != tt.wantChecksum {
				t.Errorf("Checksum = %+v, want present=%v", spec.Checksum, tt.wantChecksum)
			}

			if spec.Target != nil {
				want := model.FileSpec{URL: zip.URL, Path: filepath.Join(outputDir, "server-4.12.0.zip"), Size: 1000}
				if *spec.Target != want {
					t.Errorf("Target = %+v, want %+v", *spec.Target, want)
				}
			}
			if spec.Checksum != nil {
				want := model.FileSpec{URL: md5.URL, Path: filepath.Join(outputDir, "server-4.12.0.zip.md5"), Size: 32}
				if *spec.Checksum != want {
					t.Errorf("Checksum = %+v, want %+v", *spec.Checksum, want)
				}
			}
		})
	}
}

func TestResolve_DuplicateNameLaterWins(t *testing.T) {
	first := model.NewAsset("https://example.com/a/server-4.12.0.zip", 1)
	second := model.NewAsset("https://example.com/b/server-4.12.0.zip", 2)

	spec, ok := Resolve([]model.Asset{first, second}, "server-4.12.0.zip", "server-4.12.0.zip.md5", t.TempDir())
	if !ok {
		t.Fatal("Resolve() found nothing")
	}
	if spec.Target.URL != second.URL {
		t.Errorf("Target.URL = %q, want %q", spec.Target.URL, second.URL)
	}
}
