// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"medivisor/internal/cache"
	"medivisor/internal/store"
)

// Ops groups the token-guarded operational endpoints: cache revalidation
// for CMS webhooks and lead review for the care team. The endpoints are
// disabled entirely when no token is configured.
type Ops struct {
	pageCache *cache.PageCache
	inquiries *store.InquiryStore
	token     string
}

// NewOps creates the operational handler group. Either dependency may be
// nil when the backing service is not configured.
func NewOps(pageCache *cache.PageCache, inquiries *store.InquiryStore, token string) *Ops {
	return &Ops{pageCache: pageCache, inquiries: inquiries, token: token}
}

// authorize checks the bearer token. Unconfigured endpoints 404 so probes
// cannot tell them apart from unknown routes.
func (o *Ops) authorize(w http.ResponseWriter, r *http.Request) bool {
	if o.token == "" {
		http.NotFound(w, r)
		return false
	}
	got := r.Header.Get("Authorization")
	want := "Bearer " + o.token
	if subtle.ConstantTimeCompare([]byte(got), []byte(want)) != 1 {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return false
	}
	return true
}

// revalidateRequest is the webhook payload the CMS sends on content edits.
// An empty slug means a bulk change.
type revalidateRequest struct {
	Slug string `json:"slug"`
}

// Revalidate drops cached pages so a CMS edit shows up before the TTL
// expires. With a slug only that post is dropped; listing pages age out on
// their own. Without one the whole page cache is cleared.
func (o *Ops) Revalidate(w http.ResponseWriter, r *http.Request) {
	if !o.authorize(w, r) {
		return
	}
	if o.pageCache == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "cache not configured"})
		return
	}

	var req revalidateRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	if req.Slug != "" {
		o.pageCache.Invalidate(r.Context(), cache.PostKey(req.Slug))
	} else {
		o.pageCache.InvalidateAll(r.Context())
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// leadView is the JSON shape of one inquiry in the review listing.
type leadView struct {
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Country   string    `json:"country"`
	WhatsApp  string    `json:"whatsapp,omitempty"`
	Message   string    `json:"message"`
	Forwarded bool      `json:"forwarded"`
	CreatedAt time.Time `json:"createdAt"`
}

type leadsResponse struct {
	Items       []leadView `json:"items"`
	Unforwarded int        `json:"unforwarded"`
}

// Leads lists the newest inquiries plus a count of leads the external
// endpoint has not accepted, so stuck forwards are visible.
func (o *Ops) Leads(w http.ResponseWriter, r *http.Request) {
	if !o.authorize(w, r) {
		return
	}
	if o.inquiries == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "lead store not configured"})
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 {
		limit = 20
	}

	items, err := o.inquiries.ListRecent(limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "lead listing failed"})
		return
	}
	unforwarded, err := o.inquiries.CountUnforwarded()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "lead count failed"})
		return
	}

	resp := leadsResponse{Items: make([]leadView, 0, len(items)), Unforwarded: unforwarded}
	for _, inq := range items {
		resp.Items = append(resp.Items, leadView{
			Name:      inq.Name,
			Email:     inq.Email,
			Country:   inq.CountryName,
			WhatsApp:  inq.WhatsApp,
			Message:   inq.Message,
			Forwarded: inq.Forwarded,
			CreatedAt: inq.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}
