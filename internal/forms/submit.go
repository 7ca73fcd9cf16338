// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package forms forwards validated contact inquiries to the external
// form-submission collaborator. Submission is fire-and-forget: a single
// POST, no retry; a failure is surfaced to the caller so the form can show
// an inline error while keeping the visitor's input.
package forms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"medivisor/internal/models"
)

// Submitter posts inquiries to the external submission endpoint.
type Submitter struct {
	endpoint string
	client   *http.Client
}

// NewSubmitter creates a Submitter for the given endpoint URL.
func NewSubmitter(endpoint string) *Submitter {
	return &Submitter{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 15 * time.Second},
	}
}

// submissionRequest is the wire payload the collaborator expects.
type submissionRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	CountryName string `json:"countryName"`
	CountryCode string `json:"countryCode"`
	WhatsApp    string `json:"whatsapp"`
	Message     string `json:"message"`
}

type submissionResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// Submit forwards one inquiry. Returns an error on transport failure, a
// non-2xx status, or an { ok: false } response body.
func (s *Submitter) Submit(ctx context.Context, inq *models.Inquiry) error {
	payload, err := json.Marshal(submissionRequest{
		Name:        inq.Name,
		Email:       inq.Email,
		CountryName: inq.CountryName,
		CountryCode: inq.CountryCode,
		WhatsApp:    inq.WhatsApp,
		Message:     inq.Message,
	})
	if err != nil {
		return fmt.Errorf("forms marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("forms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("forms http: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("forms read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("forms endpoint error (status %d)", resp.StatusCode)
	}

	var result submissionResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return fmt.Errorf("forms unmarshal: %w", err)
	}
	if !result.OK {
		if result.Error != "" {
			return fmt.Errorf("forms endpoint rejected submission: %s", result.Error)
		}
		return fmt.Errorf("forms endpoint rejected submission")
	}
	return nil
}
