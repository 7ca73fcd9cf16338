// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package forms

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"medivisor/internal/models"
)

func sampleInquiry() *models.Inquiry {
	return &models.Inquiry{
		Name:        "Jone Vuki",
		Email:       "jone@example.com",
		CountryName: "Fiji",
		CountryCode: "+679",
		WhatsApp:    "9876543",
		Message:     "I need a quote for a kidney transplant.",
	}
}

func TestSubmit(t *testing.T) {
	var gotBody submissionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method: got %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content-type: got %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode: %v", err)
		}
		json.NewEncoder(w).Encode(submissionResponse{OK: true})
	}))
	defer srv.Close()

	s := NewSubmitter(srv.URL)
	if err := s.Submit(context.Background(), sampleInquiry()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotBody.Name != "Jone Vuki" || gotBody.CountryCode != "+679" {
		t.Errorf("payload: got %+v", gotBody)
	}
	if gotBody.WhatsApp != "9876543" {
		t.Errorf("whatsapp: got %q", gotBody.WhatsApp)
	}
}

func TestSubmitRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(submissionResponse{OK: false, Error: "quota exceeded"})
	}))
	defer srv.Close()

	s := NewSubmitter(srv.URL)
	err := s.Submit(context.Background(), sampleInquiry())
	if err == nil {
		t.Fatal("expected an error for ok:false response")
	}
	if !strings.Contains(err.Error(), "quota exceeded") {
		t.Errorf("error should carry the endpoint message: %v", err)
	}
}

func TestSubmitServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	s := NewSubmitter(srv.URL)
	if err := s.Submit(context.Background(), sampleInquiry()); err == nil {
		t.Error("expected an error for a non-200 status")
	}
}

func TestSubmitTransportError(t *testing.T) {
	s := NewSubmitter("http://127.0.0.1:1/unreachable")
	if err := s.Submit(context.Background(), sampleInquiry()); err == nil {
		t.Error("expected a transport error")
	}
}
