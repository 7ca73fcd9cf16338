// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package richtext models the structured rich-content documents served by
// the headless CMS and renders them to HTML. A document is a finite tree
// of typed nodes; decoding happens once at the ingestion boundary, and the
// renderer degrades field-by-field on malformed nodes rather than failing
// the whole document. Node types the decoder does not recognize are kept
// as transparent containers so future CMS schema additions render their
// children instead of breaking the page.
package richtext

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Node type discriminators as they appear in the CMS payload.
const (
	TypeParagraph    = "PARAGRAPH"
	TypeHeading      = "HEADING"
	TypeText         = "TEXT"
	TypeBulletedList = "BULLETED_LIST"
	TypeOrderedList  = "ORDERED_LIST"
	TypeListItem     = "LIST_ITEM"
	TypeImage        = "IMAGE"
	TypeVideo        = "VIDEO"
	TypeEmbed        = "EMBED"
	TypeGallery      = "GALLERY"
	TypeButton       = "BUTTON"
	TypeBlockquote   = "BLOCKQUOTE"
	TypeCodeBlock    = "CODE_BLOCK"
	TypeDivider      = "DIVIDER"
	TypeAudio        = "AUDIO"
	TypeFile         = "FILE"
)

// Decoration type discriminators.
const (
	DecorationBold      = "BOLD"
	DecorationItalic    = "ITALIC"
	DecorationUnderline = "UNDERLINE"
	DecorationLink      = "LINK"
	DecorationColor     = "COLOR"
	DecorationFontSize  = "FONT_SIZE"
)

// Document is the root container of a rich-content field. Documents are
// immutable once decoded; a changed field arrives as a whole new document.
type Document struct {
	Nodes []Node `json:"nodes"`
}

// Node is one block or inline element of a document. Type selects which
// payload field is meaningful; all payloads are optional so a node with a
// missing payload degrades at render time instead of failing decode.
type Node struct {
	Type  string `json:"type"`
	Nodes []Node `json:"nodes,omitempty"`

	Text      *TextData      `json:"textData,omitempty"`
	Paragraph *ParagraphData `json:"paragraphData,omitempty"`
	Heading   *HeadingData   `json:"headingData,omitempty"`
	Image     *ImageData     `json:"imageData,omitempty"`
	Video     *VideoData     `json:"videoData,omitempty"`
	Embed     *EmbedData     `json:"embedData,omitempty"`
	Gallery   *GalleryData   `json:"galleryData,omitempty"`
	Button    *ButtonData    `json:"buttonData,omitempty"`
	Code      *CodeData      `json:"codeBlockData,omitempty"`
	Audio     *AudioData     `json:"audioData,omitempty"`
	File      *FileData      `json:"fileData,omitempty"`
}

// TextData is the payload of a TEXT leaf node. Decorations are
// order-significant: the renderer nests them from the first (innermost)
// to the last (outermost).
type TextData struct {
	Text        string       `json:"text"`
	Decorations []Decoration `json:"decorations,omitempty"`
}

// Decoration is one formatting wrapper applied to a TEXT node.
type Decoration struct {
	Type     string        `json:"type"`
	Link     *LinkData     `json:"linkData,omitempty"`
	Color    *ColorData    `json:"colorData,omitempty"`
	FontSize *FontSizeData `json:"fontSizeData,omitempty"`
}

// LinkData describes a LINK decoration target.
type LinkData struct {
	URL        string `json:"url"`
	Target     string `json:"target,omitempty"` // "BLANK" or "SELF"
	NoReferrer bool   `json:"noReferrer,omitempty"`
}

// ColorData describes a COLOR decoration.
type ColorData struct {
	Foreground string `json:"foreground,omitempty"`
	Background string `json:"background,omitempty"`
}

// FontSizeData describes a FONT_SIZE decoration.
type FontSizeData struct {
	Value int `json:"value"` // pixels
}

// TextStyle holds block-level alignment.
type TextStyle struct {
	Alignment string `json:"textAlignment,omitempty"` // "LEFT", "CENTER", "RIGHT", "JUSTIFY"
}

// ParagraphData is the payload of a PARAGRAPH node.
type ParagraphData struct {
	Style *TextStyle `json:"textStyle,omitempty"`
}

// HeadingData is the payload of a HEADING node.
type HeadingData struct {
	Level int        `json:"level"`
	Style *TextStyle `json:"textStyle,omitempty"`
}

// ImageData is the payload of an IMAGE node. Src is an opaque media
// identifier, not a URL.
type ImageData struct {
	Src     string `json:"src"`
	AltText string `json:"altText,omitempty"`
	Caption string `json:"caption,omitempty"`
	Width   int    `json:"width,omitempty"`
	Height  int    `json:"height,omitempty"`
}

// VideoData is the payload of a VIDEO node. Exactly one of Src (media
// identifier) or URL (external video-host link) is expected.
type VideoData struct {
	Src       string `json:"src,omitempty"`
	URL       string `json:"url,omitempty"`
	Thumbnail string `json:"thumbnail,omitempty"` // media identifier for the poster
	Width     int    `json:"width,omitempty"`
	Height    int    `json:"height,omitempty"`
}

// EmbedData is the payload of an EMBED node.
type EmbedData struct {
	Src  string `json:"src"`
	Kind string `json:"embedType,omitempty"`
}

// GalleryData is the payload of a GALLERY node.
type GalleryData struct {
	Items []GalleryItem `json:"items,omitempty"`
}

// GalleryItem is one image in a gallery.
type GalleryItem struct {
	Src         string `json:"src"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	AltText     string `json:"altText,omitempty"`
}

// ButtonData is the payload of a BUTTON node.
type ButtonData struct {
	Text   string       `json:"text"`
	URL    string       `json:"url"`
	Target string       `json:"target,omitempty"`
	Design *ButtonStyle `json:"design,omitempty"`
}

// ButtonStyle holds optional button colors; absent fields use fixed defaults.
type ButtonStyle struct {
	Background string `json:"background,omitempty"`
	TextColor  string `json:"textColor,omitempty"`
	Border     string `json:"border,omitempty"`
}

// CodeData is the payload of a CODE_BLOCK node; the code itself lives in
// child TEXT nodes.
type CodeData struct {
	Language string `json:"language,omitempty"`
}

// AudioData is the payload of an AUDIO node.
type AudioData struct {
	Src    string `json:"src"`
	Name   string `json:"name,omitempty"`
	Author string `json:"author,omitempty"`
}

// FileData is the payload of a FILE node.
type FileData struct {
	URL  string `json:"url"`
	Name string `json:"name,omitempty"`
	Type string `json:"fileType,omitempty"`
	Size int64  `json:"sizeBytes,omitempty"`
}

// DecodeDocument parses a structured rich-content payload. It returns an
// error only when the payload is not a JSON document object at all;
// individual malformed nodes decode to whatever fields were valid and are
// handled by the renderer's degradation rules.
func DecodeDocument(raw []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode rich document: %w", err)
	}
	if doc.Nodes == nil {
		return nil, fmt.Errorf("decode rich document: no nodes field")
	}
	return &doc, nil
}

// IsDocument reports whether a raw content value looks like a structured
// document rather than a legacy HTML or plain string. The CMS delivers
// rich-text fields in all three shapes.
func IsDocument(raw string) bool {
	trimmed := bytes.TrimSpace([]byte(raw))
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return false
	}
	return bytes.Contains(trimmed, []byte(`"nodes"`))
}
