// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the database-backed records of the site backend.
package models

import (
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

// Inquiry is a visitor lead captured by the contact form. Leads are
// persisted before being forwarded to the external form endpoint, so a
// flaky third party never loses one.
type Inquiry struct {
	ID          uuid.UUID
	Name        string
	Email       string
	CountryName string
	CountryCode string // dialing code, e.g. "+91"
	WhatsApp    string
	Message     string
	Forwarded   bool // whether the external submission endpoint accepted it
	CreatedAt   time.Time
}

var (
	countryCodeRe = regexp.MustCompile(`^\+?[0-9]{1,4}$`)
	whatsappRe    = regexp.MustCompile(`^[0-9 ()+-]{6,20}$`)
)

// Validate checks the visitor-supplied fields. Returns a validation.Errors
// map keyed by field name so the form can render field-adjacent messages.
func (i Inquiry) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Name, validation.Required, validation.Length(2, 120)),
		validation.Field(&i.Email, validation.Required, is.Email),
		validation.Field(&i.CountryName, validation.Required, validation.Length(2, 80)),
		validation.Field(&i.CountryCode, validation.Required,
			validation.Match(countryCodeRe).Error("must be a dialing code like +91")),
		validation.Field(&i.WhatsApp,
			validation.Match(whatsappRe).Error("must be a phone number")),
		validation.Field(&i.Message, validation.Required, validation.Length(10, 2000)),
	)
}
