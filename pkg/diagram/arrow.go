package diagram

import (
	"regexp"
	"strings"
)

// ArrowKind identifies the visual style of an edge connector.
type ArrowKind string

// Arrow kinds recognized by the extractor and emitted by the renderer.
const (
	ArrowSolid         ArrowKind = "solid"
	ArrowSolidOpen     ArrowKind = "solid-open"
	ArrowThick         ArrowKind = "thick"
	ArrowThickOpen     ArrowKind = "thick-open"
	ArrowDotted        ArrowKind = "dotted"
	ArrowDottedOpen    ArrowKind = "dotted-open"
	ArrowCircle        ArrowKind = "circle-end"
	ArrowCircleBoth    ArrowKind = "circle-both"
	ArrowCross         ArrowKind = "cross-end"
	ArrowCrossBoth     ArrowKind = "cross-both"
	ArrowBidirectional ArrowKind = "bidirectional"
	ArrowInvisible     ArrowKind = "invisible"
)

// arrowTokens maps wire tokens to arrow kinds, ordered longest-first so the
// combined pattern never matches a prefix of a longer token.
var arrowTokens = []struct {
	Token string
	Kind  ArrowKind
}{
	{"<-->", ArrowBidirectional},
	{"o--o", ArrowCircleBoth},
	{"x--x", ArrowCrossBoth},
	{"-.->", ArrowDotted},
	{"==>", ArrowThick},
	{"-->", ArrowSolid},
	{"---", ArrowSolidOpen},
	{"===", ArrowThickOpen},
	{"-.-", ArrowDottedOpen},
	{"--o", ArrowCircle},
	{"--x", ArrowCross},
	{"~~~", ArrowInvisible},
}

// arrowPattern is the alternation of every known arrow token.
var arrowPattern = func() string {
	parts := make([]string, len(arrowTokens))
	for i, a := range arrowTokens {
		parts[i] = regexp.QuoteMeta(a.Token)
	}
	return strings.Join(parts, "|")
}()

// arrowRe matches any arrow token.
var arrowRe = regexp.MustCompile(arrowPattern)

// KindForToken returns the arrow kind for a wire token.
// Unrecognized tokens map to ArrowSolid so repaired edges stay renderable.
func KindForToken(token string) ArrowKind {
	for _, a := range arrowTokens {
		if a.Token == token {
			return a.Kind
		}
	}
	return ArrowSolid
}

// Token returns the canonical wire token for the arrow kind.
func (k ArrowKind) Token() string {
	for _, a := range arrowTokens {
		if a.Kind == k {
			return a.Token
		}
	}
	return "-->"
}

// ArrowTokenCount reports how many arrow-token variants the grammar knows.
func ArrowTokenCount() int {
	return len(arrowTokens)
}
