// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"medivisor/internal/forms"
	"medivisor/internal/render"
)

func newTestContact(t *testing.T, formsHandler http.HandlerFunc) *Contact {
	t.Helper()
	srv := httptest.NewServer(formsHandler)
	t.Cleanup(srv.Close)

	renderer, err := render.New()
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	return NewContact(renderer, nil, forms.NewSubmitter(srv.URL))
}

func acceptAll(w http.ResponseWriter, r *http.Request) {
	json.NewEncoder(w).Encode(map[string]any{"ok": true})
}

func validForm() url.Values {
	return url.Values{
		"name":        {"Jone Vuki"},
		"email":       {"jone@example.com"},
		"countryName": {"Fiji"},
		"countryCode": {"+679"},
		"whatsapp":    {"9876543"},
		"message":     {"I need a cost estimate for knee replacement."},
	}
}

func postForm(h http.HandlerFunc, form url.Values) *httptest.ResponseRecorder {
	r := httptest.NewRequest("POST", "/contact", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	h(w, r)
	return w
}

func TestContactForm(t *testing.T) {
	c := newTestContact(t, acceptAll)

	w := httptest.NewRecorder()
	c.Form(w, httptest.NewRequest("GET", "/contact", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `name="email"`) {
		t.Error("form fields missing")
	}
}

func TestContactSubmitSuccess(t *testing.T) {
	var forwarded bool
	c := newTestContact(t, func(w http.ResponseWriter, r *http.Request) {
		forwarded = true
		acceptAll(w, r)
	})

	w := postForm(c.Submit, validForm())

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	if !forwarded {
		t.Error("inquiry was not forwarded")
	}
	body := w.Body.String()
	if !strings.Contains(body, "Thank you") {
		t.Error("success message missing")
	}
	// The form is reset after a successful submission.
	if strings.Contains(body, "Jone Vuki") {
		t.Error("form should be cleared after success")
	}
}

func TestContactSubmitValidationErrors(t *testing.T) {
	var forwarded bool
	c := newTestContact(t, func(w http.ResponseWriter, r *http.Request) {
		forwarded = true
		acceptAll(w, r)
	})

	form := validForm()
	form.Set("email", "not-an-email")
	form.Set("message", "hi")
	w := postForm(c.Submit, form)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status: got %d, want 422", w.Code)
	}
	if forwarded {
		t.Error("invalid input must not be forwarded")
	}
	body := w.Body.String()
	// Field-adjacent messages, and the visitor's input preserved.
	if !strings.Contains(body, "not-an-email") {
		t.Error("entered email should be preserved")
	}
	if !strings.Contains(body, "Jone Vuki") {
		t.Error("valid fields should be preserved too")
	}
	if !strings.Contains(body, "highlighted fields") {
		t.Error("summary error missing")
	}
}

func TestContactSubmitForwardFailure(t *testing.T) {
	c := newTestContact(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	})

	w := postForm(c.Submit, validForm())

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "could not send") {
		t.Error("failure message missing")
	}
	// Input is preserved so the visitor can simply retry.
	if !strings.Contains(body, "Jone Vuki") {
		t.Error("input should be preserved on forward failure")
	}
}
