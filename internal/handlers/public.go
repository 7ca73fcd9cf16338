// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers wires the content API, rich-content renderer, and page
// cache into the public-facing HTTP surface. Each page handler checks the
// L2 Valkey page cache before fetching from the CMS, and stores rendered
// results on miss. Fetch failures never 500 the page: the template shows
// an inline retry message instead.
package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strconv"

	"github.com/go-chi/chi/v5"

	"medivisor/internal/cache"
	"medivisor/internal/cms"
	"medivisor/internal/listing"
	"medivisor/internal/media"
	"medivisor/internal/render"
	"medivisor/internal/richtext"
	"medivisor/internal/sanitize"
)

const contentUnavailableMsg = "Content is temporarily unavailable. Please try again in a moment."

// Card image dimensions for listing grids.
const (
	cardWidth  = 600
	cardHeight = 400
)

// Public groups the handlers for the public site.
type Public struct {
	cms       *cms.Client
	renderer  *render.Renderer
	pageCache *cache.PageCache
}

// NewPublic creates a new Public handler group. pageCache may be nil when
// Valkey is not configured; pages are then rendered on every request.
func NewPublic(client *cms.Client, renderer *render.Renderer, pageCache *cache.PageCache) *Public {
	return &Public{cms: client, renderer: renderer, pageCache: pageCache}
}

// postView is the template shape of one blog card or article header.
type postView struct {
	Title          string
	Slug           string
	Excerpt        string
	CoverURL       string
	PublishedLabel string
}

type testimonialView struct {
	Name    string
	Country string
	Quote   string
}

type hospitalView struct {
	Name          string
	City          string
	Description   string
	Accreditation string
	PhotoURL      string
}

type faqView struct {
	Question   string
	AnswerHTML string
}

type treatmentView struct {
	Treatment  string
	Summary    string
	PriceLabel string
	PhotoURL   string
}

func newPostView(p cms.Post) postView {
	v := postView{
		Title:   p.Title,
		Slug:    p.Slug,
		Excerpt: p.Excerpt,
		CoverURL: media.Resolve(p.CoverImage, media.Intent{
			Width: cardWidth, Height: cardHeight, Fit: media.FitFill,
		}),
	}
	if !p.PublishedAt.IsZero() {
		v.PublishedLabel = p.PublishedAt.Format("January 2, 2006")
	}
	return v
}

// serveCached writes a cache hit and reports whether it did.
func (p *Public) serveCached(w http.ResponseWriter, r *http.Request, key string) bool {
	if p.pageCache == nil {
		return false
	}
	cached, ok := p.pageCache.Get(r.Context(), key)
	if !ok {
		return false
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(cached)
	return true
}

// renderAndCache renders a page, stores it in the cache when rendering
// succeeded and the page carries no inline error, and writes it out.
func (p *Public) renderAndCache(w http.ResponseWriter, r *http.Request, key, tmpl string, data *render.PageData) {
	out, err := p.renderer.PageBytes(tmpl, data)
	if err != nil {
		slog.Error("page render failed", "template", tmpl, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if p.pageCache != nil && data.Error == "" {
		p.pageCache.Set(r.Context(), key, out)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(out)
}

// Homepage renders the landing page: latest posts plus patient stories.
func (p *Public) Homepage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if p.serveCached(w, r, cache.HomeKey()) {
		return
	}

	data := &render.PageData{
		Description: "Medivisor guides international patients to accredited hospitals in India.",
		Section:     "home",
		Data:        map[string]any{},
	}

	posts, err := p.cms.Query(ctx, cms.CollectionPosts, cms.QueryOptions{
		Limit: 3, SortField: "publishedAt", SortDirection: "desc",
	})
	if err != nil {
		slog.Error("homepage posts fetch failed", "error", err)
	} else {
		views := make([]postView, 0, len(posts.Items))
		for _, rec := range posts.Items {
			views = append(views, newPostView(cms.MapPost(rec)))
		}
		data.Data["Posts"] = views
	}

	stories, err := p.cms.Query(ctx, cms.CollectionTestimonials, cms.QueryOptions{Limit: 4})
	if err != nil {
		slog.Error("homepage testimonials fetch failed", "error", err)
	} else {
		views := make([]testimonialView, 0, len(stories.Items))
		for _, rec := range stories.Items {
			t := cms.MapTestimonial(rec)
			if t.Quote == "" {
				continue
			}
			views = append(views, testimonialView{Name: t.Name, Country: t.Country, Quote: t.Quote})
		}
		data.Data["Testimonials"] = views
	}

	p.renderAndCache(w, r, cache.HomeKey(), "home", data)
}

// BlogIndex renders one page of the blog listing. The offset query
// parameter drives the no-JavaScript "load more" link; each offset is a
// separate cache entry.
func (p *Public) BlogIndex(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	offset := parseOffset(r)
	key := cache.ListingKey(cms.CollectionPosts, offset, "")
	if p.serveCached(w, r, key) {
		return
	}

	data := &render.PageData{
		Title:       "Blog",
		Description: "Guides and patient resources for treatment in India.",
		Section:     "blog",
		Data:        map[string]any{},
	}

	ctrl := listing.New(
		listing.FetchCollection(p.cms, cms.CollectionPosts),
		listing.WithOffset(offset),
		listing.WithSort("publishedAt", "desc"),
	)
	if err := ctrl.Load(ctx); err != nil {
		slog.Error("blog listing fetch failed", "error", err, "offset", offset)
		data.Error = contentUnavailableMsg
		p.renderAndCache(w, r, key, "blog", data)
		return
	}

	items := ctrl.Items()
	views := make([]postView, 0, len(items))
	for _, rec := range items {
		views = append(views, newPostView(cms.MapPost(rec)))
	}
	data.Data["Posts"] = views
	data.Data["HasMore"] = ctrl.HasMore()
	data.Data["NextOffset"] = offset + listing.DefaultPageSize

	p.renderAndCache(w, r, key, "blog", data)
}

// BlogPost renders one article by slug: rich content to HTML, plus the
// read-time estimate derived from the extracted plain text.
func (p *Public) BlogPost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slugParam := chi.URLParam(r, "slug")
	key := cache.PostKey(slugParam)
	if p.serveCached(w, r, key) {
		return
	}

	rec, err := p.cms.FindBySlug(ctx, cms.CollectionPosts, slugParam)
	if err != nil {
		slog.Error("find post by slug failed", "error", err, "slug", slugParam)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if rec == nil {
		http.NotFound(w, r)
		return
	}

	post := cms.MapPost(rec)
	body := richtext.RenderContent(post.Content)

	_, readLabel := richtext.ReadTime(extractPlain(post.Content))

	view := newPostView(post)
	data := &render.PageData{
		Title:       post.Title,
		Description: post.Excerpt,
		Section:     "blog",
		Data: map[string]any{
			"Title":          post.Title,
			"PublishedLabel": view.PublishedLabel,
			"ReadTime":       readLabel,
			"CoverURL": media.Resolve(post.CoverImage, media.Intent{
				Width: 1200, Height: 630, Fit: media.FitFill,
			}),
			"Body": body,
		},
	}

	p.renderAndCache(w, r, key, "post", data)
}

// Hospitals renders the partner-hospital directory with an optional city
// filter. The directory is small, so one fetch covers it and the city
// facet is applied in memory.
func (p *Public) Hospitals(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	city := r.URL.Query().Get("city")
	key := cache.ListingKey(cms.CollectionHospitals, 0, city)
	if p.serveCached(w, r, key) {
		return
	}

	data := &render.PageData{
		Title:       "Partner Hospitals",
		Description: "Accredited hospitals Medivisor works with across India.",
		Section:     "hospitals",
		Data:        map[string]any{"ActiveCity": city, "Cities": []string{}},
	}

	result, err := p.cms.Query(ctx, cms.CollectionHospitals, cms.QueryOptions{
		Limit: 100, SortField: "name", SortDirection: "asc",
	})
	if err != nil {
		slog.Error("hospitals fetch failed", "error", err)
		data.Error = contentUnavailableMsg
		p.renderAndCache(w, r, key, "hospitals", data)
		return
	}

	citySet := map[string]bool{}
	var views []hospitalView
	for _, rec := range result.Items {
		h := cms.MapHospital(rec)
		if h.City != "" {
			citySet[h.City] = true
		}
		if city != "" && h.City != city {
			continue
		}
		views = append(views, hospitalView{
			Name:          h.Name,
			City:          h.City,
			Description:   h.Description,
			Accreditation: h.Accreditation,
			PhotoURL: media.Resolve(h.Photo, media.Intent{
				Width: cardWidth, Height: cardHeight, Fit: media.FitFill,
			}),
		})
	}

	cities := make([]string, 0, len(citySet))
	for c := range citySet {
		cities = append(cities, c)
	}
	sort.Strings(cities)

	data.Data["Hospitals"] = views
	data.Data["Cities"] = cities

	p.renderAndCache(w, r, key, "hospitals", data)
}

// FAQs renders the question list. Answers are rich-text fields and go
// through the same renderer as article bodies.
func (p *Public) FAQs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	key := cache.PageKey("faqs")
	if p.serveCached(w, r, key) {
		return
	}

	data := &render.PageData{
		Title:       "FAQs",
		Description: "Answers about treatment, travel, and costs in India.",
		Section:     "faqs",
		Data:        map[string]any{},
	}

	result, err := p.cms.Query(ctx, cms.CollectionFAQs, cms.QueryOptions{Limit: 100})
	if err != nil {
		slog.Error("faqs fetch failed", "error", err)
		data.Error = contentUnavailableMsg
		p.renderAndCache(w, r, key, "faqs", data)
		return
	}

	views := make([]faqView, 0, len(result.Items))
	for _, rec := range result.Items {
		f := cms.MapFAQ(rec)
		if f.Question == "" {
			continue
		}
		views = append(views, faqView{
			Question:   f.Question,
			AnswerHTML: richtext.RenderContent(f.Answer),
		})
	}
	data.Data["FAQs"] = views

	p.renderAndCache(w, r, key, "faqs", data)
}

// Treatments renders the treatment-cost cards.
func (p *Public) Treatments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	key := cache.PageKey("treatments")
	if p.serveCached(w, r, key) {
		return
	}

	data := &render.PageData{
		Title:       "Treatment Costs",
		Description: "Indicative prices for common procedures in Indian hospitals.",
		Section:     "treatments",
		Data:        map[string]any{},
	}

	result, err := p.cms.Query(ctx, cms.CollectionTreatments, cms.QueryOptions{Limit: 100})
	if err != nil {
		slog.Error("treatments fetch failed", "error", err)
		data.Error = contentUnavailableMsg
		p.renderAndCache(w, r, key, "treatments", data)
		return
	}

	views := make([]treatmentView, 0, len(result.Items))
	for _, rec := range result.Items {
		t := cms.MapTreatmentCost(rec)
		if t.Treatment == "" {
			continue
		}
		v := treatmentView{
			Treatment: t.Treatment,
			Summary:   t.Summary,
			PhotoURL: media.Resolve(t.Photo, media.Intent{
				Width: cardWidth, Height: cardHeight, Fit: media.FitFill,
			}),
		}
		if t.PriceUSD > 0 {
			v.PriceLabel = fmt.Sprintf("from $%.0f", t.PriceUSD)
		}
		views = append(views, v)
	}
	data.Data["Treatments"] = views

	p.renderAndCache(w, r, key, "treatments", data)
}

// extractPlain pulls the plain text out of a raw rich-content field for
// word counting. Legacy HTML content is stripped to text first so markup
// does not inflate the count.
func extractPlain(raw string) string {
	if doc, err := richtext.DecodeDocument([]byte(raw)); err == nil {
		return richtext.ExtractDocumentText(doc)
	}
	return sanitize.Text(raw)
}

func parseOffset(r *http.Request) int {
	n, err := strconv.Atoi(r.URL.Query().Get("offset"))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
