// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// html.go renders a decoded rich-content document into an HTML fragment.
// Rendering is total: every known node type has a defined output, unknown
// types render their children, and a node missing a required field is
// omitted without failing siblings or the document.
package richtext

import (
	"fmt"
	"html"
	"strings"

	"medivisor/internal/media"
	"medivisor/internal/sanitize"
)

// maxRenderDepth caps tree recursion. The CMS contract promises an acyclic
// tree, but a corrupted payload must degrade to missing output rather than
// overflow the stack.
const maxRenderDepth = 64

// Default image intent when an IMAGE node carries no dimensions.
const (
	defaultImageWidth  = 800
	defaultImageHeight = 600
)

// externalGlyph is the affordance rendered after links that open in a new tab.
const externalGlyph = `<span class="rt-external" aria-hidden="true">&#8599;</span>`

// RenderContent renders a raw rich-text field value of any of the three
// shapes the CMS delivers: a structured document, a legacy HTML string, or
// a plain string. Legacy strings pass through verbatim after sanitizing —
// no tree walk is attempted.
func RenderContent(raw string) string {
	if IsDocument(raw) {
		if doc, err := DecodeDocument([]byte(raw)); err == nil {
			return RenderHTML(doc)
		}
	}
	return sanitize.HTML(raw)
}

// RenderHTML walks the document tree and returns an HTML fragment with one
// element per top-level node that produced output. It never panics on
// malformed nodes.
func RenderHTML(doc *Document) string {
	if doc == nil {
		return ""
	}
	var b strings.Builder
	for _, n := range doc.Nodes {
		renderNode(&b, n, 0)
	}
	return b.String()
}

// renderNode dispatches on the node type. The default branch renders
// children when present, so unknown future node types degrade to
// transparent containers.
func renderNode(b *strings.Builder, n Node, depth int) {
	if depth > maxRenderDepth {
		return
	}

	switch n.Type {
	case TypeParagraph:
		inner := renderChildren(n.Nodes, depth+1)
		if inner == "" {
			return
		}
		b.WriteString("<p" + alignAttr(paragraphStyle(n)) + ">" + inner + "</p>\n")

	case TypeHeading:
		renderHeading(b, n, depth)

	case TypeText:
		b.WriteString(renderText(n))

	case TypeBulletedList:
		renderList(b, n, depth, false)

	case TypeOrderedList:
		renderList(b, n, depth, true)

	case TypeListItem:
		// Rendered by the parent list; a stray list item renders inline.
		b.WriteString(renderChildren(n.Nodes, depth+1))

	case TypeImage:
		renderImage(b, n)

	case TypeVideo:
		renderVideo(b, n)

	case TypeEmbed:
		renderEmbed(b, n)

	case TypeGallery:
		renderGallery(b, n)

	case TypeButton:
		renderButton(b, n)

	case TypeBlockquote:
		inner := renderChildren(n.Nodes, depth+1)
		if inner == "" {
			return
		}
		b.WriteString("<blockquote class=\"rt-quote\">" + inner + "</blockquote>\n")

	case TypeCodeBlock:
		renderCodeBlock(b, n, depth)

	case TypeDivider:
		b.WriteString("<hr class=\"rt-divider\">\n")

	case TypeAudio:
		renderAudio(b, n)

	case TypeFile:
		renderFile(b, n)

	default:
		// Unknown variant: transparent container.
		b.WriteString(renderChildren(n.Nodes, depth+1))
	}
}

// renderChildren renders a node list into a single string so callers can
// decide whether any output was produced before emitting their wrapper.
func renderChildren(nodes []Node, depth int) string {
	if depth > maxRenderDepth {
		return ""
	}
	var b strings.Builder
	for _, child := range nodes {
		renderNode(&b, child, depth)
	}
	return strings.TrimRight(b.String(), "\n")
}

// headingClasses maps each clamped heading level to a fixed visual weight.
// The map is total over 1..6 — every level has an explicit style.
var headingClasses = map[int]string{
	1: "rt-h1 text-4xl font-bold",
	2: "rt-h2 text-3xl font-bold",
	3: "rt-h3 text-2xl font-semibold",
	4: "rt-h4 text-xl font-semibold",
	5: "rt-h5 text-lg font-medium",
	6: "rt-h6 text-base font-medium",
}

func renderHeading(b *strings.Builder, n Node, depth int) {
	inner := renderChildren(n.Nodes, depth+1)
	if inner == "" {
		return
	}

	level := 0
	var style *TextStyle
	if n.Heading != nil {
		level = n.Heading.Level
		style = n.Heading.Style
	}
	// Clamp to the valid structural range before selecting the tag.
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}

	fmt.Fprintf(b, "<h%d class=%q%s>%s</h%d>\n",
		level, headingClasses[level], alignAttr(style), inner, level)
}

func paragraphStyle(n Node) *TextStyle {
	if n.Paragraph == nil {
		return nil
	}
	return n.Paragraph.Style
}

// alignAttr converts a block alignment into an inline style attribute.
// LEFT is the document default and emits nothing.
func alignAttr(style *TextStyle) string {
	if style == nil {
		return ""
	}
	switch style.Alignment {
	case "CENTER":
		return ` style="text-align:center"`
	case "RIGHT":
		return ` style="text-align:right"`
	case "JUSTIFY":
		return ` style="text-align:justify"`
	default:
		return ""
	}
}

// renderText renders a TEXT leaf, applying decorations inside-out: the
// first declared decoration is the innermost wrap and the last declared is
// the outermost. This ordering is load-bearing — [BOLD, LINK] must produce
// a link wrapping bold text.
func renderText(n Node) string {
	if n.Text == nil {
		return ""
	}

	out := html.EscapeString(n.Text.Text)
	for _, dec := range n.Text.Decorations {
		out = applyDecoration(dec, out)
	}
	return out
}

// applyDecoration wraps the rendered content in one decoration. Decorations
// missing their required payload are skipped, leaving the content intact.
func applyDecoration(dec Decoration, inner string) string {
	switch dec.Type {
	case DecorationBold:
		return "<strong>" + inner + "</strong>"
	case DecorationItalic:
		return "<em>" + inner + "</em>"
	case DecorationUnderline:
		return "<u>" + inner + "</u>"
	case DecorationLink:
		if dec.Link == nil || dec.Link.URL == "" {
			return inner
		}
		return renderLink(dec.Link, inner)
	case DecorationColor:
		if dec.Color == nil || (dec.Color.Foreground == "" && dec.Color.Background == "") {
			return inner
		}
		var styles []string
		if dec.Color.Foreground != "" {
			styles = append(styles, "color:"+html.EscapeString(dec.Color.Foreground))
		}
		if dec.Color.Background != "" {
			styles = append(styles, "background-color:"+html.EscapeString(dec.Color.Background))
		}
		return `<span style="` + strings.Join(styles, ";") + `">` + inner + "</span>"
	case DecorationFontSize:
		if dec.FontSize == nil || dec.FontSize.Value <= 0 {
			return inner
		}
		return fmt.Sprintf(`<span style="font-size:%dpx">%s</span>`, dec.FontSize.Value, inner)
	default:
		return inner
	}
}

func renderLink(link *LinkData, inner string) string {
	href := normalizeURL(link.URL)

	var b strings.Builder
	b.WriteString(`<a href="` + html.EscapeString(href) + `"`)
	if link.Target == "BLANK" {
		rel := "noopener"
		if link.NoReferrer {
			rel = "noopener noreferrer"
		}
		b.WriteString(` target="_blank" rel="` + rel + `"`)
	}
	b.WriteString(">" + inner)
	if link.Target == "BLANK" {
		b.WriteString(externalGlyph)
	}
	b.WriteString("</a>")
	return b.String()
}

// normalizeURL prepends https:// to stored URLs that lack a protocol.
// Relative paths, fragments, and mailto/tel links are left alone.
func normalizeURL(raw string) string {
	if raw == "" {
		return raw
	}
	if strings.Contains(raw, "://") {
		return raw
	}
	switch raw[0] {
	case '/', '#':
		return raw
	}
	if strings.HasPrefix(raw, "mailto:") || strings.HasPrefix(raw, "tel:") {
		return raw
	}
	return "https://" + raw
}

// renderList renders a bulleted or ordered list. Bulleted lists use a
// fixed check glyph per item instead of the native marker; ordered lists
// keep native ordinal numbering.
func renderList(b *strings.Builder, n Node, depth int, ordered bool) {
	var items []string
	for _, item := range n.Nodes {
		inner := renderChildren(item.Nodes, depth+2)
		if inner == "" {
			continue
		}
		if ordered {
			items = append(items, "<li>"+inner+"</li>")
		} else {
			items = append(items, `<li><span class="rt-bullet" aria-hidden="true">&#10003;</span>`+inner+"</li>")
		}
	}
	if len(items) == 0 {
		return
	}
	if ordered {
		b.WriteString("<ol class=\"rt-list rt-ordered\">" + strings.Join(items, "") + "</ol>\n")
		return
	}
	b.WriteString("<ul class=\"rt-list rt-bulleted\">" + strings.Join(items, "") + "</ul>\n")
}

// renderImage resolves the node's media identifier and emits a figure.
// An unresolvable identifier emits nothing — a blank gap, not a broken
// image icon.
func renderImage(b *strings.Builder, n Node) {
	if n.Image == nil || n.Image.Src == "" {
		return
	}

	width, height := n.Image.Width, n.Image.Height
	if width <= 0 {
		width = defaultImageWidth
	}
	if height <= 0 {
		height = defaultImageHeight
	}

	src := media.Resolve(n.Image.Src, media.Intent{Width: width, Height: height, Fit: media.FitFill})
	if src == "" {
		return
	}

	fmt.Fprintf(b, `<figure class="rt-image"><img src="%s" alt="%s" width="%d" height="%d" loading="lazy">`,
		html.EscapeString(src), html.EscapeString(n.Image.AltText), width, height)
	if n.Image.Caption != "" {
		b.WriteString("<figcaption>" + html.EscapeString(n.Image.Caption) + "</figcaption>")
	}
	b.WriteString("</figure>\n")
}

// renderVideo embeds an external video host via iframe when the URL
// matches, falls back to a native player for direct media identifiers,
// and emits nothing when neither yields a playable source.
func renderVideo(b *strings.Builder, n Node) {
	if n.Video == nil {
		return
	}

	if n.Video.URL != "" {
		if embed := media.YouTubeEmbed(n.Video.URL); embed != "" {
			fmt.Fprintf(b, `<div class="rt-video"><iframe src="%s" allowfullscreen loading="lazy"></iframe></div>`+"\n", embed)
			return
		}
	}

	if n.Video.Src != "" {
		playable := media.VideoURL(n.Video.Src, "720p")
		if playable == "" {
			return
		}
		poster := media.Resolve(n.Video.Thumbnail, media.Intent{
			Width: defaultImageWidth, Height: defaultImageHeight, Fit: media.FitFill,
		})
		b.WriteString(`<video class="rt-video" controls preload="metadata" src="` + html.EscapeString(playable) + `"`)
		if poster != "" {
			b.WriteString(` poster="` + html.EscapeString(poster) + `"`)
		}
		b.WriteString("></video>\n")
	}
}

func renderEmbed(b *strings.Builder, n Node) {
	if n.Embed == nil || n.Embed.Src == "" {
		return
	}
	class := "rt-embed"
	if n.Embed.Kind != "" {
		class += " rt-embed-" + html.EscapeString(strings.ToLower(n.Embed.Kind))
	}
	fmt.Fprintf(b, `<div class="%s"><iframe src="%s" loading="lazy"></iframe></div>`+"\n", class, html.EscapeString(n.Embed.Src))
}

// renderGallery emits a grid of resolved gallery images. Items whose
// identifier does not resolve are skipped, not rendered as placeholders.
func renderGallery(b *strings.Builder, n Node) {
	if n.Gallery == nil || len(n.Gallery.Items) == 0 {
		return
	}

	var items []string
	for _, item := range n.Gallery.Items {
		src := media.Resolve(item.Src, media.Intent{Width: 400, Height: 300, Fit: media.FitFill})
		if src == "" {
			continue
		}
		var ib strings.Builder
		fmt.Fprintf(&ib, `<figure class="rt-gallery-item"><img src="%s" alt="%s" loading="lazy">`,
			html.EscapeString(src), html.EscapeString(item.AltText))
		if item.Title != "" || item.Description != "" {
			ib.WriteString("<figcaption>")
			if item.Title != "" {
				ib.WriteString("<strong>" + html.EscapeString(item.Title) + "</strong>")
			}
			if item.Description != "" {
				ib.WriteString("<span>" + html.EscapeString(item.Description) + "</span>")
			}
			ib.WriteString("</figcaption>")
		}
		ib.WriteString("</figure>")
		items = append(items, ib.String())
	}
	if len(items) == 0 {
		return
	}
	b.WriteString(`<div class="rt-gallery">` + strings.Join(items, "") + "</div>\n")
}

// Button color defaults applied when the design payload omits a field.
const (
	defaultButtonBackground = "#0e7490"
	defaultButtonText       = "#ffffff"
	defaultButtonBorder     = "transparent"
)

func renderButton(b *strings.Builder, n Node) {
	if n.Button == nil || n.Button.URL == "" {
		return
	}

	background, textColor, border := defaultButtonBackground, defaultButtonText, defaultButtonBorder
	if d := n.Button.Design; d != nil {
		if d.Background != "" {
			background = d.Background
		}
		if d.TextColor != "" {
			textColor = d.TextColor
		}
		if d.Border != "" {
			border = d.Border
		}
	}

	label := n.Button.Text
	if label == "" {
		label = "Learn more"
	}

	href := normalizeURL(n.Button.URL)
	fmt.Fprintf(b, `<a class="rt-button" href="%s" style="background-color:%s;color:%s;border-color:%s"`,
		html.EscapeString(href), html.EscapeString(background), html.EscapeString(textColor), html.EscapeString(border))
	if n.Button.Target == "BLANK" {
		b.WriteString(` target="_blank" rel="noopener"`)
	}
	b.WriteString(">" + html.EscapeString(label))
	if n.Button.Target == "BLANK" {
		b.WriteString(externalGlyph)
	}
	b.WriteString("</a>\n")
}

func renderCodeBlock(b *strings.Builder, n Node, depth int) {
	code := ExtractText(n.Nodes)
	if code == "" {
		return
	}
	class := "rt-code"
	if n.Code != nil && n.Code.Language != "" {
		class += " language-" + html.EscapeString(n.Code.Language)
	}
	fmt.Fprintf(b, `<pre class="%s"><code>%s</code></pre>`+"\n", class, html.EscapeString(code))
}

func renderAudio(b *strings.Builder, n Node) {
	if n.Audio == nil || n.Audio.Src == "" {
		return
	}
	src := media.AudioURL(n.Audio.Src)
	if src == "" {
		return
	}

	b.WriteString(`<figure class="rt-audio"><audio controls preload="metadata" src="` + html.EscapeString(src) + `"></audio>`)
	if n.Audio.Name != "" || n.Audio.Author != "" {
		b.WriteString("<figcaption>")
		if n.Audio.Name != "" {
			b.WriteString("<strong>" + html.EscapeString(n.Audio.Name) + "</strong>")
		}
		if n.Audio.Author != "" {
			b.WriteString("<span>" + html.EscapeString(n.Audio.Author) + "</span>")
		}
		b.WriteString("</figcaption>")
	}
	b.WriteString("</figure>\n")
}

// renderFile emits a download affordance with the file size formatted on
// the binary unit ladder.
func renderFile(b *strings.Builder, n Node) {
	if n.File == nil || n.File.URL == "" {
		return
	}

	name := n.File.Name
	if name == "" {
		name = "Download"
	}

	b.WriteString(`<a class="rt-file" href="` + html.EscapeString(n.File.URL) + `" download>` + html.EscapeString(name))
	if n.File.Size > 0 {
		b.WriteString(` <span class="rt-file-size">(` + media.FormatFileSize(n.File.Size) + `)</span>`)
	}
	b.WriteString("</a>\n")
}
