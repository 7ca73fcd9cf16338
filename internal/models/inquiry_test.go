// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"strings"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

func validInquiry() Inquiry {
	return Inquiry{
		Name:        "Jone Vuki",
		Email:       "jone@example.com",
		CountryName: "Fiji",
		CountryCode: "+679",
		WhatsApp:    "987 654 321",
		Message:     "I would like a cost estimate for knee replacement.",
	}
}

func TestInquiryValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Inquiry)
		wantField string
	}{
		{"valid", func(i *Inquiry) {}, ""},
		{"whatsapp optional", func(i *Inquiry) { i.WhatsApp = "" }, ""},
		{"code without plus", func(i *Inquiry) { i.CountryCode = "91" }, ""},
		{"missing name", func(i *Inquiry) { i.Name = "" }, "Name"},
		{"name too short", func(i *Inquiry) { i.Name = "J" }, "Name"},
		{"bad email", func(i *Inquiry) { i.Email = "not-an-email" }, "Email"},
		{"missing country", func(i *Inquiry) { i.CountryName = "" }, "CountryName"},
		{"alpha dialing code", func(i *Inquiry) { i.CountryCode = "abc" }, "CountryCode"},
		{"dialing code too long", func(i *Inquiry) { i.CountryCode = "+123456" }, "CountryCode"},
		{"whatsapp with letters", func(i *Inquiry) { i.WhatsApp = "call me" }, "WhatsApp"},
		{"message too short", func(i *Inquiry) { i.Message = "hi" }, "Message"},
		{"message too long", func(i *Inquiry) { i.Message = strings.Repeat("a", 2001) }, "Message"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inq := validInquiry()
			tt.mutate(&inq)
			err := inq.Validate()

			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			if err == nil {
				t.Fatal("expected a validation error")
			}
			verrs, ok := err.(validation.Errors)
			if !ok {
				t.Fatalf("expected validation.Errors, got %T", err)
			}
			if _, found := verrs[tt.wantField]; !found {
				t.Errorf("error map missing %q: %v", tt.wantField, verrs)
			}
		})
	}
}
