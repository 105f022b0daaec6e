package render

import "strings"

// DefaultManualTitle labels the terminal fallback when the caller has no
// better name for the diagram.
const DefaultManualTitle = "Diagram"

// Manual builds a fixed two-box SVG fragment by string concatenation. It
// parses nothing and calls no backend, so it cannot fail; the terminal
// fallback tier depends on that.
func Manual(title string) []byte {
	if strings.TrimSpace(title) == "" {
		title = DefaultManualTitle
	}
	title = escapeText(title)

	var b strings.Builder
	b.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 360 200" width="360" height="200">`)
	b.WriteString(`<title>` + title + `</title>`)
	b.WriteString(`<rect x="40" y="30" width="280" height="40" rx="6" fill="white" stroke="#666"/>`)
	b.WriteString(`<text x="180" y="55" text-anchor="middle" font-family="sans-serif" font-size="14">` + title + `</text>`)
	b.WriteString(`<line x1="180" y1="70" x2="180" y2="120" stroke="#666"/>`)
	b.WriteString(`<polygon points="174,118 186,118 180,130" fill="#666"/>`)
	b.WriteString(`<rect x="40" y="130" width="280" height="40" rx="6" fill="white" stroke="#666"/>`)
	b.WriteString(`<text x="180" y="155" text-anchor="middle" font-family="sans-serif" font-size="14">Content unavailable</text>`)
	b.WriteString(`</svg>`)
	return []byte(b.String())
}

// escapeText replaces the XML-significant characters in display text.
func escapeText(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}
