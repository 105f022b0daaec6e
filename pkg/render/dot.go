package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/mermend/mermend/pkg/diagram"
	"github.com/mermend/mermend/pkg/errors"
)

// rankdir maps a diagram direction token to the Graphviz equivalent.
func rankdir(direction string) string {
	switch diagram.NormalizeDirection(direction) {
	case "BT":
		return "BT"
	case "LR":
		return "LR"
	case "RL":
		return "RL"
	}
	return "TB"
}

// nodeShape maps a bracket-family shape to a Graphviz node shape.
func nodeShape(shape string) string {
	switch shape {
	case diagram.ShapeRound:
		return "ellipse"
	case diagram.ShapeDiamond:
		return "diamond"
	}
	return "box"
}

// edgeAttrs maps an arrow kind to Graphviz edge attributes.
func edgeAttrs(kind diagram.ArrowKind) []string {
	switch kind {
	case diagram.ArrowSolidOpen:
		return []string{"arrowhead=none"}
	case diagram.ArrowThick:
		return []string{"penwidth=2"}
	case diagram.ArrowThickOpen:
		return []string{"penwidth=2", "arrowhead=none"}
	case diagram.ArrowDotted:
		return []string{"style=dashed"}
	case diagram.ArrowDottedOpen:
		return []string{"style=dashed", "arrowhead=none"}
	case diagram.ArrowCircle:
		return []string{"arrowhead=odot"}
	case diagram.ArrowCircleBoth:
		return []string{"dir=both", "arrowhead=odot", "arrowtail=odot"}
	case diagram.ArrowCross:
		return []string{"arrowhead=tee"}
	case diagram.ArrowCrossBoth:
		return []string{"dir=both", "arrowhead=tee", "arrowtail=tee"}
	case diagram.ArrowBidirectional:
		return []string{"dir=both"}
	case diagram.ArrowInvisible:
		return []string{"style=invis"}
	}
	return nil
}

// ToDOT translates a parsed document to Graphviz DOT.
//
// The translation is strict: any line the classifier could not type, and any
// subgraph left unclosed or end without an opener, is rejected with
// errors.ErrCodeSyntaxRejected. Edge endpoints without a definition are
// declared implicitly with the id as label, matching Graphviz semantics.
// Header lines past the first are inert and skipped.
func ToDOT(doc diagram.Document) (string, error) {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", rankdir(doc.Direction))
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")

	declared := make(map[string]bool)
	var edges []diagram.Edge
	depth := 0
	clusters := 0

	for i, line := range doc.Lines {
		indent := strings.Repeat("  ", depth+1)

		switch line.Kind {
		case diagram.LineBlank, diagram.LineComment, diagram.LineHeader,
			diagram.LineClassDef:
			// classDef and friends style the source grammar, not the DOT
			// output; they carry no structure.

		case diagram.LineSubgraph:
			name := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line.Text), "subgraph"))
			fmt.Fprintf(&buf, "%ssubgraph cluster_%d {\n", indent, clusters)
			fmt.Fprintf(&buf, "%s  label=%q;\n", indent, name)
			clusters++
			depth++

		case diagram.LineEnd:
			if depth == 0 {
				return "", errors.New(errors.ErrCodeSyntaxRejected,
					"line %d: end without matching subgraph", i+2)
			}
			depth--
			fmt.Fprintf(&buf, "%s}\n", strings.Repeat("  ", depth+1))

		case diagram.LineNodeDef:
			n := *line.Node
			declared[n.ID] = true
			fmt.Fprintf(&buf, "%s%q [label=%q, shape=%s];\n",
				indent, n.ID, n.DisplayLabel(), nodeShape(n.Shape))

		case diagram.LineEdge:
			for _, n := range diagram.ExtractNodeDefs(line.Text) {
				if !declared[n.ID] {
					declared[n.ID] = true
					fmt.Fprintf(&buf, "%s%q [label=%q, shape=%s];\n",
						indent, n.ID, n.DisplayLabel(), nodeShape(n.Shape))
				}
			}
			edges = append(edges, line.Edges...)

		default:
			return "", errors.New(errors.ErrCodeSyntaxRejected,
				"line %d: not part of the diagram grammar: %q", i+2, strings.TrimSpace(line.Text))
		}
	}

	if depth != 0 {
		return "", errors.New(errors.ErrCodeSyntaxRejected,
			"%d subgraph(s) left unclosed", depth)
	}

	buf.WriteString("\n")
	for _, e := range edges {
		for _, id := range []string{e.From, e.To} {
			if !declared[id] {
				declared[id] = true
				fmt.Fprintf(&buf, "  %q [label=%q];\n", id, id)
			}
		}
		attrs := edgeAttrs(e.Arrow)
		if e.Label != "" {
			attrs = append(attrs, fmt.Sprintf("label=%q", e.Label))
		}
		if len(attrs) == 0 {
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
		} else {
			fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.From, e.To, strings.Join(attrs, ", "))
		}
	}

	buf.WriteString("}\n")
	return buf.String(), nil
}
