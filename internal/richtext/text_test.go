// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package richtext

import (
	"strings"
	"testing"
)

func TestExtractText(t *testing.T) {
	tests := []struct {
		name  string
		nodes []Node
		want  string
	}{
		{"nil", nil, ""},
		{"empty", []Node{}, ""},
		{
			"single paragraph",
			[]Node{para(text("hello world"))},
			"hello world",
		},
		{
			"decorations are ignored",
			[]Node{para(text("bold words", Decoration{Type: DecorationBold}))},
			"bold words",
		},
		{
			"block siblings separated",
			[]Node{
				Node{Type: TypeHeading, Heading: &HeadingData{Level: 2}, Nodes: []Node{text("Title")}},
				para(text("Body")),
			},
			"Title\nBody",
		},
		{
			"list items get bullets",
			[]Node{{Type: TypeBulletedList, Nodes: []Node{
				{Type: TypeListItem, Nodes: []Node{para(text("first"))}},
				{Type: TypeListItem, Nodes: []Node{para(text("second"))}},
			}}},
			"• first\n\n• second",
		},
		{
			"image caption contributes",
			[]Node{{Type: TypeImage, Image: &ImageData{Src: "cms:image://a/b.jpg", Caption: "The ward"}}},
			"The ward",
		},
		{
			"button text contributes",
			[]Node{{Type: TypeButton, Button: &ButtonData{Text: "Book now", URL: "x"}}},
			"Book now",
		},
		{
			"media without text contributes nothing",
			[]Node{{Type: TypeImage, Image: &ImageData{Src: "cms:image://a/b.jpg"}}},
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractText(tt.nodes)
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReadTime(t *testing.T) {
	words := func(n int) string {
		return strings.TrimSpace(strings.Repeat("word ", n))
	}

	tests := []struct {
		name        string
		text        string
		wantMinutes int
		wantLabel   string
	}{
		{"empty", "", 0, "less than 1 min"},
		{"whitespace only", "   \n\t  ", 0, "less than 1 min"},
		{"one word", "hello", 1, "1 min"},
		{"exactly one minute", words(200), 1, "1 min"},
		{"just over one minute", words(201), 2, "2 min"},
		{"five minutes", words(1000), 5, "5 min"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			minutes, label := ReadTime(tt.text)
			if minutes != tt.wantMinutes {
				t.Errorf("minutes: got %d, want %d", minutes, tt.wantMinutes)
			}
			if label != tt.wantLabel {
				t.Errorf("label: got %q, want %q", label, tt.wantLabel)
			}
		})
	}
}
