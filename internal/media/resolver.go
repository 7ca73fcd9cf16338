// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package media resolves opaque CMS media identifiers into CDN URLs.
// Media fields arrive from the CMS as scheme-prefixed identifier strings
// (e.g. "cms:image://v1/abc123/photo.jpg#originWidth=1600&originHeight=900")
// rather than URLs. Resolution is a pure function: a malformed or
// unrecognized identifier yields an empty string, never an error or panic,
// so callers always have a deterministic fallback path.
package media

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

const (
	imageScheme = "cms:image://"
	videoScheme = "cms:video://"
	audioScheme = "cms:audio://"

	// CDN bases for the vendor's media platform. Only this package
	// constructs media URLs; no other component addresses the CDN directly.
	imageCDNBase = "https://static.medivisorcdn.com/media"
	videoCDNBase = "https://video.medivisorcdn.com/video"

	defaultQuality = 80
)

// Fit selects the image scaling strategy for resolution.
type Fit int

const (
	// FitFill crops the image server-side to exactly Width x Height.
	FitFill Fit = iota
	// FitContain resizes the image to fit within Width x Height,
	// preserving aspect ratio.
	FitContain
	// FitOriginal returns the unmodified asset.
	FitOriginal
)

// Intent carries the display parameters that parameterize resolution.
type Intent struct {
	Width   int
	Height  int
	Fit     Fit
	Quality int      // 1-100; 0 means the default quality
	Filters []string // optional CDN filters, e.g. "con_20" for contrast
}

// Ref is a parsed media identifier: the asset path plus the embedded
// origin metadata the CMS records at upload time.
type Ref struct {
	ID           string // asset identifier, e.g. "v1/abc123"
	FileName     string // original file name, e.g. "photo.jpg"
	OriginWidth  int
	OriginHeight int
}

// ParseImage parses an image identifier string. Returns false for anything
// that does not carry the image scheme prefix (already-a-URL, empty,
// malformed) — it never panics on garbage input.
func ParseImage(ref string) (Ref, bool) {
	return parse(ref, imageScheme)
}

// ParseVideo parses a video identifier string.
func ParseVideo(ref string) (Ref, bool) {
	return parse(ref, videoScheme)
}

func parse(ref, scheme string) (Ref, bool) {
	if !strings.HasPrefix(ref, scheme) {
		return Ref{}, false
	}

	body := strings.TrimPrefix(ref, scheme)

	// Split off the metadata fragment (origin dimensions, revision tag).
	var meta string
	if idx := strings.IndexByte(body, '#'); idx != -1 {
		meta = body[idx+1:]
		body = body[:idx]
	}

	body = strings.Trim(body, "/")
	if body == "" {
		return Ref{}, false
	}

	r := Ref{ID: body}

	// The last path segment is the file name when it carries an extension.
	if idx := strings.LastIndexByte(body, '/'); idx != -1 {
		last := body[idx+1:]
		if strings.ContainsRune(last, '.') {
			r.ID = body[:idx]
			r.FileName = last
		}
	}
	if r.FileName == "" {
		r.FileName = "file"
	}

	if vals, err := url.ParseQuery(meta); err == nil {
		r.OriginWidth, _ = strconv.Atoi(vals.Get("originWidth"))
		r.OriginHeight, _ = strconv.Atoi(vals.Get("originHeight"))
	}

	return r, true
}

// Resolve turns an image identifier into a concrete CDN URL for the given
// intent. Returns "" when the identifier is not a recognized image ref.
func Resolve(ref string, intent Intent) string {
	r, ok := ParseImage(ref)
	if !ok {
		return ""
	}

	width, height := intent.Width, intent.Height
	if width <= 0 {
		width = r.OriginWidth
	}
	if height <= 0 {
		height = r.OriginHeight
	}

	switch intent.Fit {
	case FitFill:
		if width <= 0 || height <= 0 {
			return ""
		}
		return fmt.Sprintf("%s/%s/v1/fill/%s/%s",
			imageCDNBase, r.ID, renderParams(width, height, intent), r.FileName)
	case FitContain:
		if width <= 0 || height <= 0 {
			return ""
		}
		return fmt.Sprintf("%s/%s/v1/fit/%s/%s",
			imageCDNBase, r.ID, renderParams(width, height, intent), r.FileName)
	case FitOriginal:
		return fmt.Sprintf("%s/%s/%s", imageCDNBase, r.ID, r.FileName)
	default:
		return ""
	}
}

// renderParams builds the comma-separated transform segment of a CDN URL,
// e.g. "w_800,h_600,q_80" or "w_800,h_600,q_80,con_20".
func renderParams(width, height int, intent Intent) string {
	quality := intent.Quality
	if quality <= 0 || quality > 100 {
		quality = defaultQuality
	}
	parts := []string{
		fmt.Sprintf("w_%d", width),
		fmt.Sprintf("h_%d", height),
		fmt.Sprintf("q_%d", quality),
	}
	parts = append(parts, intent.Filters...)
	return strings.Join(parts, ",")
}

// VideoURL returns a direct playable URL for a video identifier at the
// requested rendition (e.g. "720p"). Returns "" for unrecognized refs.
func VideoURL(ref, rendition string) string {
	r, ok := ParseVideo(ref)
	if !ok {
		return ""
	}
	if rendition == "" {
		rendition = "720p"
	}
	return fmt.Sprintf("%s/%s/%s/mp4/%s", videoCDNBase, r.ID, rendition, r.FileName)
}

// AudioURL returns a direct playable URL for an audio identifier.
// Returns "" for unrecognized refs.
func AudioURL(ref string) string {
	r, ok := parse(ref, audioScheme)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s/%s/%s", imageCDNBase, r.ID, r.FileName)
}

// youtubeIDRe matches the 11-character video ID in the URL forms YouTube
// serves: watch?v=, youtu.be/, embed/, and shorts/.
var youtubeIDRe = regexp.MustCompile(`(?:youtube\.com/(?:watch\?(?:.*&)?v=|embed/|shorts/)|youtu\.be/)([A-Za-z0-9_-]{11})`)

// YouTubeEmbed extracts the video ID from a YouTube-style URL and returns
// the canonical embeddable URL. Non-matching input returns "".
func YouTubeEmbed(rawURL string) string {
	m := youtubeIDRe.FindStringSubmatch(rawURL)
	if m == nil {
		return ""
	}
	return "https://www.youtube.com/embed/" + m[1]
}

// fileSizeUnits is the binary (1024-based) unit ladder for FormatFileSize.
var fileSizeUnits = []string{"Bytes", "KB", "MB", "GB", "TB"}

// FormatFileSize renders a byte count using binary units to two decimal
// places, e.g. 1536 -> "1.50 KB". Zero and negative sizes render "0 Bytes".
func FormatFileSize(size int64) string {
	if size <= 0 {
		return "0 Bytes"
	}
	value := float64(size)
	idx := 0
	for value >= 1024 && idx < len(fileSizeUnits)-1 {
		value /= 1024
		idx++
	}
	return fmt.Sprintf("%.2f %s", value, fileSizeUnits[idx])
}
