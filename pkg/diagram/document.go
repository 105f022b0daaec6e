package diagram

import (
	"regexp"
	"strings"
)

// Shape identifies the node outline inferred from the bracket family of its
// definition.
const (
	ShapeRectangle = "rectangle" // id[label]
	ShapeRound     = "round"     // id(label)
	ShapeDiamond   = "diamond"   // id{label}
)

// SentinelNode is the synthetic node used to complete dangling edges.
const SentinelNode = "Unknown"

// Diagram types accepted in the header line.
const (
	TypeGraph     = "graph"
	TypeFlowchart = "flowchart"
)

// DefaultDirection is substituted for any unrecognized direction token.
const DefaultDirection = "TD"

// Indent is the canonical indentation for synthesized content lines.
const Indent = "    "

// NormalizeDirection maps any direction token to a valid one.
// TB, TD, BT, RL, and LR pass through; everything else becomes TD.
func NormalizeDirection(dir string) string {
	switch dir {
	case "TB", "TD", "BT", "RL", "LR":
		return dir
	}
	return DefaultDirection
}

// =============================================================================
// Node and Edge
// =============================================================================

// Node is a node definition: identifier, display label, and shape.
type Node struct {
	ID    string
	Label string
	Shape string
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// String re-emits the definition in the bracket family of its shape.
func (n Node) String() string {
	label := n.DisplayLabel()
	switch n.Shape {
	case ShapeRound:
		return n.ID + "(" + label + ")"
	case ShapeDiamond:
		return n.ID + "{" + label + "}"
	default:
		return n.ID + "[" + label + "]"
	}
}

// Edge is a directed connection between two node ids.
type Edge struct {
	From  string
	To    string
	Arrow ArrowKind
	Label string // optional |label| text
}

// String re-emits the edge with its canonical arrow token.
func (e Edge) String() string {
	arrow := e.Arrow.Token()
	if e.Label != "" {
		return e.From + " " + arrow + "|" + e.Label + "| " + e.To
	}
	return e.From + " " + arrow + " " + e.To
}

// =============================================================================
// Line classification
// =============================================================================

// LineKind classifies a document line.
type LineKind int

// Line kinds. Header through ClassDef pass through repair unchanged;
// NodeDef and Edge are structural; Raw lines are candidates for dropping.
const (
	LineRaw LineKind = iota
	LineBlank
	LineHeader
	LineComment
	LineSubgraph
	LineEnd
	LineClassDef
	LineNodeDef
	LineEdge
)

// Line is one classified document line. Text preserves the original spelling
// for pass-through kinds; Node and Edge carry the parsed structure for
// structural kinds.
type Line struct {
	Kind  LineKind
	Text  string
	Node  *Node  // set when Kind == LineNodeDef
	Edges []Edge // set when Kind == LineEdge (chains produce several)
}

var (
	headerRe  = regexp.MustCompile(`^\s*(graph|flowchart)\b\s*([A-Za-z]*)\s*;?\s*$`)
	nodeDefRe = regexp.MustCompile(`([A-Za-z0-9_-]+)\s*(\[([^\]]*)\]|\(([^)]*)\)|\{([^}]*)\})`)
	// nodeRefRe matches a node reference with an optional attached bracket
	// group, so label text inside brackets is never mistaken for an id.
	nodeRefRe   = regexp.MustCompile(`([A-Za-z0-9_-]+)\s*(\[[^\]]*\]|\([^)]*\)|\{[^}]*\})?`)
	edgeLabelRe = regexp.MustCompile(`^\s*\|[^|]*\|`)
)

// passThroughPrefixes start lines that the repair passes preserve verbatim.
var passThroughPrefixes = []string{"classDef", "class ", "style ", "linkStyle", "direction "}

// IsHeader reports whether the line is a diagram-type declaration.
func IsHeader(line string) bool {
	return headerRe.MatchString(line)
}

// ParseHeader splits a header line into diagram type and direction.
// The direction is normalized; a missing token becomes TD.
func ParseHeader(line string) (diagType, direction string, ok bool) {
	m := headerRe.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	return m[1], NormalizeDirection(m[2]), true
}

// ClassifyLine parses one content line into its typed form.
func ClassifyLine(text string) Line {
	trimmed := strings.TrimSpace(text)

	switch {
	case trimmed == "":
		return Line{Kind: LineBlank, Text: text}
	case strings.HasPrefix(trimmed, "%%"):
		return Line{Kind: LineComment, Text: text}
	case IsHeader(text):
		return Line{Kind: LineHeader, Text: text}
	case strings.HasPrefix(trimmed, "subgraph"):
		return Line{Kind: LineSubgraph, Text: text}
	case trimmed == "end" || trimmed == "end;":
		return Line{Kind: LineEnd, Text: text}
	}

	for _, prefix := range passThroughPrefixes {
		if strings.HasPrefix(trimmed, prefix) {
			return Line{Kind: LineClassDef, Text: text}
		}
	}

	if edges := ParseEdges(text); len(edges) > 0 {
		return Line{Kind: LineEdge, Text: text, Edges: edges}
	}

	if node, ok := parseSoleNodeDef(text); ok {
		return Line{Kind: LineNodeDef, Text: text, Node: &node}
	}

	return Line{Kind: LineRaw, Text: text}
}

// parseSoleNodeDef reports whether the line consists of exactly one node
// definition and nothing else.
func parseSoleNodeDef(line string) (Node, bool) {
	loc := nodeDefRe.FindStringIndex(line)
	if loc == nil {
		return Node{}, false
	}
	before := strings.TrimSpace(line[:loc[0]])
	after := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(line[loc[1]:]), ";"))
	if before != "" || after != "" {
		return Node{}, false
	}
	nodes := ExtractNodeDefs(line)
	if len(nodes) != 1 {
		return Node{}, false
	}
	return nodes[0], true
}

// ExtractNodeDefs finds every node definition on the line, including
// definitions inlined on edge lines.
func ExtractNodeDefs(line string) []Node {
	var nodes []Node
	for _, m := range nodeDefRe.FindAllStringSubmatch(line, -1) {
		n := Node{ID: m[1]}
		switch m[2][0] {
		case '[':
			n.Shape = ShapeRectangle
			n.Label = m[3]
		case '(':
			n.Shape = ShapeRound
			n.Label = m[4]
		case '{':
			n.Shape = ShapeDiamond
			n.Label = m[5]
		}
		nodes = append(nodes, n)
	}
	return nodes
}

// ParseEdges extracts every edge on the line. Chained statements such as
// "A --> B --> C" yield one edge per arrow, sharing the interior endpoints.
func ParseEdges(line string) []Edge {
	locs := arrowRe.FindAllStringIndex(line, -1)
	if len(locs) == 0 {
		return nil
	}

	var edges []Edge
	for i, loc := range locs {
		segStart := 0
		if i > 0 {
			segStart = locs[i-1][1]
		}
		segEnd := len(line)
		if i < len(locs)-1 {
			segEnd = locs[i+1][0]
		}

		from := lastNodeRef(line[segStart:loc[0]])
		rest := line[loc[1]:segEnd]
		label := ""
		if m := edgeLabelRe.FindString(rest); m != "" {
			label = strings.Trim(strings.TrimSpace(m), "|")
			rest = rest[len(m):]
		}
		to := firstNodeRef(rest)

		if from == "" || to == "" {
			continue
		}
		edges = append(edges, Edge{
			From:  from,
			To:    to,
			Arrow: KindForToken(line[loc[0]:loc[1]]),
			Label: label,
		})
	}
	return edges
}

// lastNodeRef returns the id of the final node reference in the segment.
func lastNodeRef(segment string) string {
	matches := nodeRefRe.FindAllStringSubmatch(segment, -1)
	if len(matches) == 0 {
		return ""
	}
	return matches[len(matches)-1][1]
}

// firstNodeRef returns the id of the first node reference in the segment.
func firstNodeRef(segment string) string {
	m := nodeRefRe.FindStringSubmatch(segment)
	if m == nil {
		return ""
	}
	return m[1]
}

// =============================================================================
// Document
// =============================================================================

// Document is a parsed diagram: header plus ordered content lines.
type Document struct {
	Type      string // graph or flowchart
	Direction string // TB, TD, BT, RL, or LR
	Lines     []Line
}

// Parse splits normalized text into a Document. The first line must be the
// header; callers normalize first to guarantee that.
func Parse(text string) Document {
	doc := Document{Type: TypeGraph, Direction: DefaultDirection}

	lines := strings.Split(text, "\n")
	start := 0
	if len(lines) > 0 {
		if typ, dir, ok := ParseHeader(lines[0]); ok {
			doc.Type = typ
			doc.Direction = dir
			start = 1
		}
	}

	for _, raw := range lines[start:] {
		doc.Lines = append(doc.Lines, ClassifyLine(raw))
	}
	return doc
}

// Header returns the canonical header line.
func (d *Document) Header() string {
	typ := d.Type
	if typ == "" {
		typ = TypeGraph
	}
	return typ + " " + NormalizeDirection(d.Direction)
}

// String re-emits the document. Pass-through lines keep their original
// spelling; structural lines are re-emitted canonically.
func (d *Document) String() string {
	var b strings.Builder
	b.WriteString(d.Header())
	for _, line := range d.Lines {
		b.WriteString("\n")
		switch line.Kind {
		case LineNodeDef:
			b.WriteString(Indent + line.Node.String())
		case LineEdge:
			b.WriteString(line.Text)
		default:
			b.WriteString(line.Text)
		}
	}
	return b.String()
}

// Nodes returns every node definition in document order.
func (d *Document) Nodes() []Node {
	var nodes []Node
	for _, line := range d.Lines {
		switch line.Kind {
		case LineNodeDef:
			nodes = append(nodes, *line.Node)
		case LineEdge:
			nodes = append(nodes, ExtractNodeDefs(line.Text)...)
		}
	}
	return nodes
}

// Edges returns every edge in document order.
func (d *Document) Edges() []Edge {
	var edges []Edge
	for _, line := range d.Lines {
		if line.Kind == LineEdge {
			edges = append(edges, line.Edges...)
		}
	}
	return edges
}
