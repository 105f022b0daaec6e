package sanitize

import (
	"strings"

	"github.com/mermend/mermend/pkg/diagram"
)

// Synthesize rebuilds a diagram from scratch, ignoring the original
// formatting. It applies the normalizer's arrow and duplicate-definition
// fixes, extracts whatever nodes and edges survive, and re-emits a fresh
// document: one id[label] line per distinct node, then one "from --> to"
// line per edge. The result is passed through [Validate] before returning.
//
// When extraction finds no nodes at all, Synthesize returns
// [RepositoryDiagram].
func Synthesize(raw string) string {
	ext := Extract(Normalize(raw))

	// Distinct nodes: defined ones keep their labels; referenced-but-never-
	// defined ids get themselves as label.
	ids := make([]string, 0, len(ext.DefinedOrder)+len(ext.Referenced))
	seen := make(map[string]bool)
	for _, id := range ext.DefinedOrder {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	for _, id := range ext.Referenced {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	// The zero-node fallback flows through the same re-emission path below,
	// so [RepositoryDiagram] is itself a fixed point of Synthesize.
	if len(ids) == 0 {
		ids = append(ids, "Repository", "Components")
		ext.Edges = append(ext.Edges, diagram.Edge{From: "Repository", To: "Components"})
	}

	var b strings.Builder
	b.WriteString(diagram.TypeGraph + " " + diagram.DefaultDirection)
	for _, id := range ids {
		label := id
		if n, ok := ext.Defined[id]; ok {
			label = n.DisplayLabel()
		}
		b.WriteString("\n" + diagram.Indent + id + "[" + label + "]")
	}
	for _, e := range ext.Edges {
		b.WriteString("\n" + diagram.Indent + e.From + " --> " + e.To)
	}

	return Validate(b.String())
}
