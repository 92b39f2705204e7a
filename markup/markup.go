// Package markup converts the HTML fragments the backend embeds in ticket
// and note fields into plain text, and prepares outbound rich content.
package markup

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"

	nethtml "golang.org/x/net/html"
)

// blockElements separate their content with a line break when text is
// extracted. br and hr are included even though they are void.
var blockElements = map[string]bool{
	"p": true, "div": true, "br": true, "hr": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"ul": true, "ol": true, "li": true, "dl": true, "dt": true, "dd": true,
	"blockquote": true, "pre": true, "table": true, "tr": true,
	"section": true, "article": true, "header": true, "footer": true,
	"form": true, "address": true,
}

// skipElements hold no human-readable content; their subtrees are dropped.
var skipElements = map[string]bool{
	"script": true, "style": true, "head": true, "title": true,
}

// Normalize converts an HTML fragment to readable plain text: tags collapse,
// entities decode, and block-level separators become newlines. Input without
// markup is returned unchanged, so the function is a no-op on its own
// output. Malformed HTML never fails; whatever text is recoverable is
// returned.
func Normalize(s string) string {
	if !IsHTML(s) {
		return s
	}
	out := extractText(s)
	// Entity-encoded angle brackets can decode into tag-shaped text. Escape
	// them so the result stays stable under repeated normalization.
	if IsHTML(out) {
		out = strings.ReplaceAll(out, "<", "&lt;")
		out = strings.ReplaceAll(out, ">", "&gt;")
	}
	return out
}

// IsHTML reports whether the content carries HTML markup: any complete tag,
// comment, or doctype. Bare angle brackets in prose do not count.
func IsHTML(content string) bool {
	if !strings.Contains(content, "<") {
		return false
	}
	tokenizer := nethtml.NewTokenizer(strings.NewReader(content))
	for {
		switch tokenizer.Next() {
		case nethtml.ErrorToken:
			return false
		case nethtml.StartTagToken, nethtml.EndTagToken, nethtml.SelfClosingTagToken,
			nethtml.CommentToken, nethtml.DoctypeToken:
			return true
		}
	}
}

// extractText walks the token stream, keeping text content and mapping block
// boundaries to single newlines. Script and style subtrees are dropped.
func extractText(content string) string {
	var b strings.Builder
	tokenizer := nethtml.NewTokenizer(strings.NewReader(content))
	skipDepth := 0

	breakLine := func() {
		s := b.String()
		if s != "" && !strings.HasSuffix(s, "\n") {
			b.WriteByte('\n')
		}
	}

	for {
		tt := tokenizer.Next()
		switch tt {
		case nethtml.ErrorToken:
			return strings.TrimSpace(b.String())

		case nethtml.TextToken:
			if skipDepth > 0 {
				continue
			}
			text := string(tokenizer.Text())
			if strings.TrimSpace(text) == "" {
				// whitespace between tags; block boundaries already separate
				s := b.String()
				if s != "" && !strings.HasSuffix(s, "\n") {
					b.WriteByte(' ')
				}
				continue
			}
			if strings.HasSuffix(b.String(), "\n") {
				text = strings.TrimLeft(text, " \t\r\n")
			}
			b.WriteString(text)

		case nethtml.StartTagToken, nethtml.EndTagToken, nethtml.SelfClosingTagToken:
			tn, _ := tokenizer.TagName()
			tagName := strings.ToLower(string(tn))
			if skipElements[tagName] {
				switch tt {
				case nethtml.StartTagToken:
					skipDepth++
				case nethtml.EndTagToken:
					if skipDepth > 0 {
						skipDepth--
					}
				}
				continue
			}
			if skipDepth == 0 && blockElements[tagName] {
				breakLine()
			}
		}
	}
}

// outboundPolicy keeps the formatting a helpdesk note can carry and removes
// everything executable before content is sent to the backend.
var outboundPolicy = newOutboundPolicy()

func newOutboundPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()

	// Basic formatting
	p.AllowElements("b", "strong", "i", "em", "u", "s", "del")

	// Paragraphs, breaks, headings
	p.AllowElements("p", "br", "hr")
	p.AllowElements("h1", "h2", "h3")

	// Lists
	p.AllowElements("ul", "ol", "li")

	// Quotes and code
	p.AllowElements("blockquote", "code", "pre")

	// Links with safe targets only
	p.AllowElements("a")
	p.AllowAttrs("href").OnElements("a")
	p.AllowURLSchemes("http", "https", "mailto")
	p.RequireParseableURLs(true)
	p.RequireNoFollowOnLinks(true)

	return p
}

// Sanitize cleans an outbound HTML fragment so a note or description never
// carries scripts or unexpected attributes to the backend.
func Sanitize(htmlContent string) string {
	return outboundPolicy.Sanitize(htmlContent)
}

// IsMarkdown checks if the content appears to be markdown rather than HTML
// or plain prose.
func IsMarkdown(content string) bool {
	markdownPatterns := []string{"**", "# ", "## ", "### ", "- ", "* ", "1. ", "](", "```", "> "}

	markdownCount := 0
	for _, pattern := range markdownPatterns {
		if strings.Contains(content, pattern) {
			markdownCount++
		}
	}

	return markdownCount >= 2
}

// MarkdownToHTML converts markdown content to HTML. Conversion failures
// return the original content.
func MarkdownToHTML(markdown string) string {
	md := goldmark.New(
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)

	var buf strings.Builder
	if err := md.Convert([]byte(markdown), &buf); err != nil {
		return markdown
	}

	return buf.String()
}
