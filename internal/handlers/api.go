// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"medivisor/internal/cms"
	"medivisor/internal/listing"
)

// listingResponse is the JSON payload for the incremental load-more
// endpoint consumed by the blog page's client script.
type listingResponse struct {
	Items      []postView `json:"items"`
	TotalCount int        `json:"totalCount"`
	HasMore    bool       `json:"hasMore"`
	NextOffset int        `json:"nextOffset"`
}

// APIBlogPage serves one page of blog cards as JSON. Each request builds a
// fresh controller seeded at the requested offset; the accumulated-list
// state lives client-side.
func (p *Public) APIBlogPage(w http.ResponseWriter, r *http.Request) {
	offset := parseOffset(r)

	ctrl := listing.New(
		listing.FetchCollection(p.cms, cms.CollectionPosts),
		listing.WithOffset(offset),
		listing.WithSort("publishedAt", "desc"),
	)

	issued, err := ctrl.LoadMore(r.Context())
	if err != nil || !issued {
		if err != nil {
			slog.Error("blog api fetch failed", "error", err, "offset", offset)
		}
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "content unavailable"})
		return
	}

	items := ctrl.Items()
	resp := listingResponse{
		Items:      make([]postView, 0, len(items)),
		TotalCount: ctrl.TotalCount(),
		HasMore:    ctrl.HasMore(),
		NextOffset: offset + listing.DefaultPageSize,
	}
	for _, rec := range items {
		resp.Items = append(resp.Items, newPostView(cms.MapPost(rec)))
	}

	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("json encode failed", "error", err)
	}
}
