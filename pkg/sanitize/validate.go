package sanitize

import (
	"strings"

	"github.com/mermend/mermend/pkg/diagram"
)

// Validate turns arbitrary raw text into a structurally well-formed document
// for the render grammar. It normalizes and repairs the input, then runs the
// two-pass validation:
//
//  1. Collect-pass: gather every node definition in the document.
//  2. Fix-pass: pass through header, comment, subgraph, end, and classDef
//     lines; synthesize definitions ahead of edges with undefined endpoints;
//     keep edge and definition lines; drop everything else.
//
// A document left with nodes but no edges gets one synthesized edge. A
// document with no nodes at all becomes [MinimalDiagram]. Any internal
// failure is absorbed and converted to [ErrorDiagram]; Validate never
// panics and never returns an empty string.
func Validate(raw string) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = ErrorDiagram
		}
	}()

	text := Repair(Normalize(raw))
	lines := strings.Split(text, "\n")

	// Collect-pass
	defined := make(map[string]bool)
	for _, raw := range lines {
		for _, n := range diagram.ExtractNodeDefs(raw) {
			defined[n.ID] = true
		}
	}

	var headers, content []string
	nodeCount := 0
	edgeCount := 0

	// Fix-pass
	for i, raw := range lines {
		line := diagram.ClassifyLine(raw)

		if line.Kind == diagram.LineHeader && i == 0 {
			headers = append(headers, raw)
			continue
		}

		switch line.Kind {
		case diagram.LineComment, diagram.LineSubgraph, diagram.LineEnd,
			diagram.LineClassDef, diagram.LineHeader:
			content = append(content, raw)

		case diagram.LineEdge:
			for _, e := range line.Edges {
				for _, id := range []string{e.From, e.To} {
					if !defined[id] {
						defined[id] = true
						nodeCount++
						content = append(content, diagram.Indent+id+"["+id+"]")
					}
				}
			}
			nodeCount += len(diagram.ExtractNodeDefs(raw))
			edgeCount += len(line.Edges)
			content = append(content, raw)

		case diagram.LineNodeDef:
			nodeCount++
			content = append(content, raw)
		}
		// Blank and raw lines are dropped.
	}

	if len(headers) == 0 {
		headers = []string{diagram.TypeGraph + " " + diagram.DefaultDirection}
	}

	if nodeCount == 0 {
		return MinimalDiagram
	}

	if edgeCount == 0 {
		content = append(content, synthesizeEdge(content))
	}

	return strings.Join(append(headers, content...), "\n")
}

// synthesizeEdge connects the first two defined nodes, or the sole node to
// the sentinel, so the document always contains at least one edge.
func synthesizeEdge(content []string) string {
	var ids []string
	seen := make(map[string]bool)
	for _, raw := range content {
		for _, n := range diagram.ExtractNodeDefs(raw) {
			if !seen[n.ID] {
				seen[n.ID] = true
				ids = append(ids, n.ID)
			}
		}
	}

	if len(ids) >= 2 {
		return diagram.Indent + ids[0] + " --> " + ids[1]
	}
	return diagram.Indent + diagram.SentinelNode + "[" + diagram.SentinelNode + "]\n" +
		diagram.Indent + ids[0] + " --> " + diagram.SentinelNode
}
