// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// mapping.go is the single boundary where loosely shaped CMS records become
// strongly typed structs. Editors have renamed fields over the years
// ("photo" vs "Photo" vs "image"), so each logical attribute is resolved
// through an ordered list of candidate field names. The candidate-name
// pattern must not leak past this file: everything downstream works with
// the typed structs only.
package cms

import (
	"strconv"
	"time"
)

// Candidate field names per logical attribute, in priority order.
var (
	titleFields   = []string{"title", "Title", "name", "Name"}
	slugFields    = []string{"slug", "Slug", "urlSlug"}
	excerptFields = []string{"excerpt", "Excerpt", "summary", "description"}
	contentFields = []string{"content", "Content", "body", "richContent"}
	photoFields   = []string{"photo", "Photo", "image", "Image", "picture", "coverImage"}
	dateFields    = []string{"publishedAt", "publishedDate", "_createdDate", "createdDate"}
)

// str returns the first non-empty string value among the candidate names.
func (r Record) str(names ...string) string {
	for _, name := range names {
		if v, ok := r[name].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

// num returns the first numeric value among the candidate names. CMS
// exports deliver numbers either as JSON numbers or as strings.
func (r Record) num(names ...string) float64 {
	for _, name := range names {
		switch v := r[name].(type) {
		case float64:
			return v
		case string:
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				return f
			}
		}
	}
	return 0
}

// date returns the first parseable timestamp among the candidate names.
func (r Record) date(names ...string) time.Time {
	for _, name := range names {
		v, ok := r[name].(string)
		if !ok || v == "" {
			continue
		}
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return t
		}
		if t, err := time.Parse("2006-01-02", v); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Post is a blog article summary or full record.
type Post struct {
	ID          string
	Title       string
	Slug        string
	Excerpt     string
	Content     string // raw rich-text field: document JSON, HTML, or plain
	CoverImage  string // media identifier
	PublishedAt time.Time
}

// MapPost resolves a raw record into a Post.
func MapPost(r Record) Post {
	return Post{
		ID:          r.str("_id", "id"),
		Title:       r.str(titleFields...),
		Slug:        r.str(slugFields...),
		Excerpt:     r.str(excerptFields...),
		Content:     r.str(contentFields...),
		CoverImage:  r.str(photoFields...),
		PublishedAt: r.date(dateFields...),
	}
}

// Hospital is one entry of the partner-hospital directory.
type Hospital struct {
	ID            string
	Name          string
	Slug          string
	City          string
	Description   string
	Photo         string // media identifier
	Accreditation string
}

// MapHospital resolves a raw record into a Hospital.
func MapHospital(r Record) Hospital {
	return Hospital{
		ID:            r.str("_id", "id"),
		Name:          r.str(titleFields...),
		Slug:          r.str(slugFields...),
		City:          r.str("city", "City", "location"),
		Description:   r.str("description", "Description", "about"),
		Photo:         r.str(photoFields...),
		Accreditation: r.str("accreditation", "Accreditation"),
	}
}

// Testimonial is one patient story.
type Testimonial struct {
	Name     string
	Country  string
	Quote    string
	Photo    string // media identifier
	VideoURL string // external video-host link
}

// MapTestimonial resolves a raw record into a Testimonial.
func MapTestimonial(r Record) Testimonial {
	return Testimonial{
		Name:     r.str("name", "Name", "patientName"),
		Country:  r.str("country", "Country", "countryName"),
		Quote:    r.str("quote", "Quote", "testimonial", "message"),
		Photo:    r.str(photoFields...),
		VideoURL: r.str("videoUrl", "video", "youtubeUrl"),
	}
}

// TeamMember is one staff bio.
type TeamMember struct {
	Name  string
	Role  string
	Bio   string
	Photo string // media identifier
	Order int
}

// MapTeamMember resolves a raw record into a TeamMember.
func MapTeamMember(r Record) TeamMember {
	return TeamMember{
		Name:  r.str("name", "Name", "fullName"),
		Role:  r.str("role", "Role", "designation", "position"),
		Bio:   r.str("bio", "Bio", "about", "description"),
		Photo: r.str(photoFields...),
		Order: int(r.num("order", "sortOrder")),
	}
}

// FAQ is one question/answer pair. Answer is a rich-text field.
type FAQ struct {
	Question string
	Answer   string
	Category string
}

// MapFAQ resolves a raw record into a FAQ.
func MapFAQ(r Record) FAQ {
	return FAQ{
		Question: r.str("question", "Question", "title"),
		Answer:   r.str("answer", "Answer", "content"),
		Category: r.str("category", "Category", "topic"),
	}
}

// TreatmentCost is one treatment price card.
type TreatmentCost struct {
	Treatment string
	Slug      string
	Summary   string
	Content   string // rich-text field
	PriceUSD  float64
	Photo     string // media identifier
}

// MapTreatmentCost resolves a raw record into a TreatmentCost.
func MapTreatmentCost(r Record) TreatmentCost {
	return TreatmentCost{
		Treatment: r.str("treatment", "Treatment", "title", "name"),
		Slug:      r.str(slugFields...),
		Summary:   r.str(excerptFields...),
		Content:   r.str(contentFields...),
		PriceUSD:  r.num("priceUsd", "price", "startingPrice"),
		Photo:     r.str(photoFields...),
	}
}
