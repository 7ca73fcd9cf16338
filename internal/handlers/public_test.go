// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"medivisor/internal/cms"
	"medivisor/internal/render"
	"medivisor/internal/richtext"
)

// chiRouteContext attaches URL params to a request outside a real router.
func chiRouteContext(r *http.Request, rctx *chi.Context) context.Context {
	return context.WithValue(r.Context(), chi.RouteCtxKey, rctx)
}

// fakeCMS serves canned collection pages keyed by collection name.
type fakeCMS struct {
	collections map[string][]cms.Record
	status      int
}

func (f *fakeCMS) handler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if f.status != 0 {
			http.Error(w, "cms down", f.status)
			return
		}

		// Path shape: /v1/collections/{name}/query
		parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
		if len(parts) != 4 {
			t.Errorf("unexpected path %q", r.URL.Path)
			http.NotFound(w, r)
			return
		}
		records := f.collections[parts[2]]

		var body struct {
			Offset  int `json:"offset"`
			Limit   int `json:"limit"`
			Filters []struct {
				Field string `json:"field"`
				Value any    `json:"value"`
			} `json:"filters"`
		}
		json.NewDecoder(r.Body).Decode(&body)

		// Apply slug filters so FindBySlug works against the fake.
		filtered := records
		for _, flt := range body.Filters {
			if flt.Field != "slug" {
				continue
			}
			filtered = nil
			for _, rec := range records {
				if rec["slug"] == flt.Value {
					filtered = append(filtered, rec)
				}
			}
		}

		start := body.Offset
		if start > len(filtered) {
			start = len(filtered)
		}
		end := start + body.Limit
		if end > len(filtered) {
			end = len(filtered)
		}
		json.NewEncoder(w).Encode(cms.QueryResult{
			Items: filtered[start:end], TotalCount: len(filtered),
		})
	})
}

func newTestPublic(t *testing.T, fake *fakeCMS) *Public {
	t.Helper()
	srv := httptest.NewServer(fake.handler(t))
	t.Cleanup(srv.Close)

	renderer, err := render.New()
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	return NewPublic(cms.New(srv.URL, "k", "s"), renderer, nil)
}

func postRecord(i int, slug, title string) cms.Record {
	return cms.Record{
		"_id": slug, "slug": slug, "title": title,
		"excerpt":     "An excerpt",
		"coverImage":  "cms:image://v1/abc/cover.jpg",
		"publishedAt": "2026-01-15T08:00:00Z",
	}
}

func TestHomepage(t *testing.T) {
	p := newTestPublic(t, &fakeCMS{collections: map[string][]cms.Record{
		"blog-posts": {postRecord(0, "first-post", "First Post")},
		"testimonials": {{
			"name": "Sela T.", "country": "Fiji", "quote": "Wonderful care.",
		}},
	}})

	w := httptest.NewRecorder()
	p.Homepage(w, httptest.NewRequest("GET", "/", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "First Post") {
		t.Error("homepage missing latest post")
	}
	if !strings.Contains(body, "Wonderful care.") {
		t.Error("homepage missing testimonial")
	}
}

func TestBlogIndex(t *testing.T) {
	records := make([]cms.Record, 0, 20)
	for i := 0; i < 20; i++ {
		records = append(records, postRecord(i, "post-"+string(rune('a'+i)), "Post "+string(rune('A'+i))))
	}
	p := newTestPublic(t, &fakeCMS{collections: map[string][]cms.Record{"blog-posts": records}})

	w := httptest.NewRecorder()
	p.BlogIndex(w, httptest.NewRequest("GET", "/blog", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "Post A") {
		t.Error("first page missing first post")
	}
	if strings.Contains(body, "Post M") {
		t.Error("first page should stop at the page size")
	}
	// 20 records > 12, so a load-more link at the next offset is expected.
	if !strings.Contains(body, "offset=12") {
		t.Error("load-more link missing")
	}

	// Second page.
	w = httptest.NewRecorder()
	p.BlogIndex(w, httptest.NewRequest("GET", "/blog?offset=12", nil))
	body = w.Body.String()
	if !strings.Contains(body, "Post M") {
		t.Error("second page missing post 13")
	}
	if strings.Contains(body, "offset=24") {
		t.Error("exhausted listing should not offer load-more")
	}
}

func TestBlogIndexUpstreamFailure(t *testing.T) {
	p := newTestPublic(t, &fakeCMS{status: http.StatusBadGateway})

	w := httptest.NewRecorder()
	p.BlogIndex(w, httptest.NewRequest("GET", "/blog", nil))

	// Fetch failures degrade to an inline message, never a 500 page.
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "temporarily unavailable") {
		t.Error("error page missing retry message")
	}
}

func TestBlogPost(t *testing.T) {
	content := `{"nodes":[
		{"type":"HEADING","headingData":{"level":2},"nodes":[{"type":"TEXT","textData":{"text":"Why India"}}]},
		{"type":"PARAGRAPH","nodes":[{"type":"TEXT","textData":{"text":"Costs are lower.","decorations":[{"type":"BOLD"}]}}]}
	]}`
	rec := postRecord(0, "why-india", "Why India")
	rec["content"] = content
	p := newTestPublic(t, &fakeCMS{collections: map[string][]cms.Record{"blog-posts": {rec}}})

	r := httptest.NewRequest("GET", "/blog/why-india", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("slug", "why-india")
	r = r.WithContext(chiRouteContext(r, rctx))

	w := httptest.NewRecorder()
	p.BlogPost(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "<strong>Costs are lower.</strong>") {
		t.Error("rich content not rendered")
	}
	if !strings.Contains(body, "1 min read") {
		t.Error("read time missing")
	}
	if !strings.Contains(body, "January 15, 2026") {
		t.Error("publish date missing")
	}
}

func TestBlogPostNotFound(t *testing.T) {
	p := newTestPublic(t, &fakeCMS{collections: map[string][]cms.Record{"blog-posts": {}}})

	r := httptest.NewRequest("GET", "/blog/missing", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("slug", "missing")
	r = r.WithContext(chiRouteContext(r, rctx))

	w := httptest.NewRecorder()
	p.BlogPost(w, r)

	if w.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", w.Code)
	}
}

func TestHospitalsCityFilter(t *testing.T) {
	p := newTestPublic(t, &fakeCMS{collections: map[string][]cms.Record{"hospitals": {
		{"name": "Fortis Memorial", "city": "Gurugram", "description": "Multi-speciality"},
		{"name": "Apollo Chennai", "city": "Chennai", "description": "Cardiac care"},
	}}})

	w := httptest.NewRecorder()
	p.Hospitals(w, httptest.NewRequest("GET", "/hospitals?city=Chennai", nil))

	body := w.Body.String()
	if !strings.Contains(body, "Apollo Chennai") {
		t.Error("filtered hospital missing")
	}
	if strings.Contains(body, "Fortis Memorial") {
		t.Error("other city should be filtered out")
	}
	// The city facet still lists every city so the visitor can switch.
	if !strings.Contains(body, "Gurugram") {
		t.Error("city dropdown missing unselected city")
	}
}

func TestFAQsRenderRichAnswers(t *testing.T) {
	p := newTestPublic(t, &fakeCMS{collections: map[string][]cms.Record{"faqs": {{
		"question": "How long is the stay?",
		"answer":   `{"nodes":[{"type":"PARAGRAPH","nodes":[{"type":"TEXT","textData":{"text":"About two weeks."}}]}]}`,
	}}}})

	w := httptest.NewRecorder()
	p.FAQs(w, httptest.NewRequest("GET", "/faqs", nil))

	body := w.Body.String()
	if !strings.Contains(body, "How long is the stay?") {
		t.Error("question missing")
	}
	if !strings.Contains(body, "<p>About two weeks.</p>") {
		t.Error("rich answer not rendered")
	}
}

func TestAPIBlogPage(t *testing.T) {
	records := make([]cms.Record, 0, 30)
	for i := 0; i < 30; i++ {
		records = append(records, postRecord(i, "p", "P"))
	}
	p := newTestPublic(t, &fakeCMS{collections: map[string][]cms.Record{"blog-posts": records}})

	w := httptest.NewRecorder()
	p.APIBlogPage(w, httptest.NewRequest("GET", "/api/blog?offset=12", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	var resp listingResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Items) != 12 {
		t.Errorf("items: got %d, want 12", len(resp.Items))
	}
	if resp.TotalCount != 30 || !resp.HasMore || resp.NextOffset != 24 {
		t.Errorf("paging: %+v", resp)
	}
}

func TestExtractPlainStripsLegacyMarkup(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"legacy html loses tags", "<p>Costs are <strong>much</strong> lower</p>", "Costs are much lower"},
		{"plain string kept", "a short note", "a short note"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractPlain(tt.raw); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}

	// Markup must not count as words when estimating read time.
	raw := `<div class="wrap"><span style="color:red">five short words right here</span></div>`
	minutes, label := richtext.ReadTime(extractPlain(raw))
	if minutes != 1 || label != "1 min" {
		t.Errorf("read time: got %d %q", minutes, label)
	}
}

func TestAPIBlogPageUpstreamFailure(t *testing.T) {
	p := newTestPublic(t, &fakeCMS{status: http.StatusInternalServerError})

	w := httptest.NewRecorder()
	p.APIBlogPage(w, httptest.NewRequest("GET", "/api/blog", nil))

	if w.Code != http.StatusBadGateway {
		t.Errorf("status: got %d, want 502", w.Code)
	}
}
