package sanitize

import (
	"regexp"
	"strings"

	"github.com/mermend/mermend/pkg/diagram"
)

// Canonical fallback documents. These are constructed, never parsed, so the
// layers that emit them cannot fail.
const (
	// MinimalDiagram replaces empty or whitespace-only input.
	MinimalDiagram = "graph TD\n    A[Empty] --> B[Diagram]"

	// ErrorDiagram replaces documents the validator could not recover.
	ErrorDiagram = "graph TD\n    Error[Error] --> In[In] --> Processing[Processing]"

	// RenderFailedDiagram is the fixed document of the Minimal render tier.
	RenderFailedDiagram = "graph TD\n    A[Error] --> B[Rendering Failed]"

	// RepositoryDiagram is emitted by Synthesize when extraction finds
	// nothing. It is written in Synthesize's own defs-then-edges form so the
	// fallback is a fixed point of re-synthesis.
	RepositoryDiagram = "graph TD\n    Repository[Repository]\n    Components[Components]\n    Repository --> Components"
)

var (
	// danglingArrowRe matches an arrow token, or a bare arrow stem, sitting at
	// the end of a line with no target. Longer tokens come first so a stem
	// never shadows its completed form.
	danglingArrowRe = regexp.MustCompile(`(-\.->|-->|==>|---|===|-\.-|--o|--x|~~~|--|==|-\.)\s*(;?)\s*$`)

	// defineThenRefRe matches the broken "define a node, then immediately
	// start an edge from a second id" pattern the generator produces when it
	// truncates mid-line, e.g. "A[Label] B -->".
	defineThenRefRe = regexp.MustCompile(`^(\s*[A-Za-z0-9_-]+(?:\[[^\]]*\]|\([^)]*\)|\{[^}]*\}))\s+[A-Za-z0-9_-]+\s*(?:-\.->|-->|==>|---|===|-\.-|--|==|-\.)\s*(;?)\s*$`)
)

// Normalize rewrites raw diagram text into a form the later passes can rely
// on: LF line endings, exactly one leading header, no dangling arrows.
// Empty or whitespace-only input becomes [MinimalDiagram].
//
// Normalize is idempotent.
func Normalize(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return MinimalDiagram
	}

	text := normalizeLineEndings(raw)
	text = collapseDuplicateHeaders(text)
	text = collapseDefineThenReference(text)
	text = repairDanglingArrows(text)
	text = ensureHeader(text)
	return text
}

func normalizeLineEndings(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}

// collapseDuplicateHeaders drops consecutive repeats of the same
// diagram-type declaration, keeping the first occurrence.
func collapseDuplicateHeaders(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for i, line := range lines {
		if i > 0 && diagram.IsHeader(line) && diagram.IsHeader(lines[i-1]) {
			prevType, prevDir, _ := diagram.ParseHeader(lines[i-1])
			curType, curDir, _ := diagram.ParseHeader(line)
			if prevType == curType && prevDir == curDir {
				continue
			}
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// collapseDefineThenReference rewrites "NodeDef NodeId --" truncations into a
// single complete edge from the defined node to the sentinel.
func collapseDefineThenReference(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if isProtectedLine(line) {
			continue
		}
		if m := defineThenRefRe.FindStringSubmatch(line); m != nil {
			lines[i] = m[1] + " --> " + diagram.SentinelNode + m[2]
		}
	}
	return strings.Join(lines, "\n")
}

// repairDanglingArrows completes arrows that trail off before a target,
// pointing them at the sentinel node. Bare stems are promoted to the headed
// arrow of their family.
func repairDanglingArrows(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if isProtectedLine(line) {
			continue
		}
		lines[i] = danglingArrowRe.ReplaceAllStringFunc(line, func(match string) string {
			m := danglingArrowRe.FindStringSubmatch(match)
			return completeArrow(m[1]) + " " + diagram.SentinelNode + m[2]
		})
	}
	return strings.Join(lines, "\n")
}

// completeArrow maps a bare stem to the headed arrow of its family and
// passes complete tokens through unchanged.
func completeArrow(token string) string {
	switch token {
	case "--":
		return "-->"
	case "==":
		return "==>"
	case "-.":
		return "-.->"
	}
	return token
}

// ensureHeader guarantees the document starts with a diagram-type
// declaration, prepending "graph TD" when missing. An existing first header
// is rewritten canonically, which also replaces invalid direction tokens.
func ensureHeader(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if typ, dir, ok := diagram.ParseHeader(line); ok {
			lines[i] = typ + " " + dir
			return strings.Join(lines, "\n")
		}
		break
	}
	return diagram.TypeGraph + " " + diagram.DefaultDirection + "\n" + text
}

// isProtectedLine reports whether arrow repair must leave the line alone.
func isProtectedLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	return strings.HasPrefix(trimmed, "%%") || diagram.IsHeader(line)
}

// allowedRunes is the character set kept by StripUnsafe: the grammar's
// structural characters plus plain text.
func allowedRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == ' ' || r == '\n' || r == '\t':
		return true
	}
	return strings.ContainsRune(`[](){}<>|-=.~_:;,%#"'`, r)
}

// StripUnsafe reduces text to the allow-listed character set the render
// grammar understands. Anything else is dropped.
func StripUnsafe(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range normalizeLineEndings(text) {
		if allowedRune(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
