// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"medivisor/internal/forms"
	"medivisor/internal/models"
	"medivisor/internal/render"
	"medivisor/internal/store"
)

// Contact serves the contact form. Submissions are persisted locally
// first, then forwarded to the external form endpoint; persistence means
// an endpoint outage degrades to a delayed forward, not a lost lead.
type Contact struct {
	renderer  *render.Renderer
	inquiries *store.InquiryStore
	submitter *forms.Submitter
}

// NewContact creates a new Contact handler group. inquiries may be nil
// when the database is not configured; leads are then forward-only.
func NewContact(renderer *render.Renderer, inquiries *store.InquiryStore, submitter *forms.Submitter) *Contact {
	return &Contact{renderer: renderer, inquiries: inquiries, submitter: submitter}
}

// Form renders the empty contact form.
func (c *Contact) Form(w http.ResponseWriter, r *http.Request) {
	c.renderer.Page(w, "contact", contactPageData("", "", nil, models.Inquiry{}))
}

// Submit validates and processes a contact-form POST. Validation failures
// re-render the form with field-adjacent messages and the visitor's input
// preserved; nothing is stored or forwarded until the input is valid.
func (c *Contact) Submit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	inq := models.Inquiry{
		Name:        strings.TrimSpace(r.PostFormValue("name")),
		Email:       strings.TrimSpace(r.PostFormValue("email")),
		CountryName: strings.TrimSpace(r.PostFormValue("countryName")),
		CountryCode: strings.TrimSpace(r.PostFormValue("countryCode")),
		WhatsApp:    strings.TrimSpace(r.PostFormValue("whatsapp")),
		Message:     strings.TrimSpace(r.PostFormValue("message")),
	}

	if err := inq.Validate(); err != nil {
		fieldErrs := map[string]string{}
		if verrs, ok := err.(validation.Errors); ok {
			for field, ferr := range verrs {
				fieldErrs[field] = ferr.Error()
			}
		}
		w.WriteHeader(http.StatusUnprocessableEntity)
		c.renderer.Page(w, "contact", contactPageData(
			"Please fix the highlighted fields and resubmit.", "", fieldErrs, inq))
		return
	}

	// Persist first. A storage failure is logged but does not block the
	// forward: the visitor's submission still goes out.
	saved := &inq
	if c.inquiries != nil {
		var err error
		saved, err = c.inquiries.Create(&inq)
		if err != nil {
			slog.Error("inquiry persist failed", "error", err, "email", inq.Email)
			saved = &inq
		}
	}

	if err := c.submitter.Submit(ctx, saved); err != nil {
		slog.Error("inquiry forward failed", "error", err, "inquiry_id", saved.ID)
		c.renderer.Page(w, "contact", contactPageData(
			"We could not send your inquiry right now. Please try again, or reach us on WhatsApp.",
			"", nil, inq))
		return
	}

	if c.inquiries != nil && saved.ID != uuid.Nil {
		if err := c.inquiries.MarkForwarded(saved.ID); err != nil {
			slog.Warn("mark inquiry forwarded failed", "error", err, "inquiry_id", saved.ID)
		}
	}

	slog.Info("inquiry submitted", "inquiry_id", saved.ID, "country", inq.CountryName)
	c.renderer.Page(w, "contact", contactPageData(
		"", "Thank you! Your inquiry has been sent. We will reply within one working day.",
		nil, models.Inquiry{}))
}

func contactPageData(errMsg, successMsg string, fieldErrs map[string]string, inq models.Inquiry) *render.PageData {
	if fieldErrs == nil {
		fieldErrs = map[string]string{}
	}
	return &render.PageData{
		Title:   "Contact",
		Section: "contact",
		Error:   errMsg,
		Success: successMsg,
		Data: map[string]any{
			"Name":        inq.Name,
			"Email":       inq.Email,
			"CountryName": inq.CountryName,
			"CountryCode": inq.CountryCode,
			"WhatsApp":    inq.WhatsApp,
			"Message":     inq.Message,
			"FieldErrors": fieldErrs,
		},
	}
}
