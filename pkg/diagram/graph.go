package diagram

import (
	"encoding/json"
)

// =============================================================================
// Graph - Diagram Serialization
// =============================================================================

// Graph is the canonical serialization format for extracted diagrams.
// Used for JSON output, history storage, and cross-tool compatibility.
//
// The format is human-readable and designed for round-trip fidelity:
// parse → repair → export → re-import produces identical results.
type Graph struct {
	Type      string      `json:"type" bson:"type"`
	Direction string      `json:"direction" bson:"direction"`
	Nodes     []GraphNode `json:"nodes" bson:"nodes"`
	Edges     []GraphEdge `json:"edges" bson:"edges"`
}

// GraphNode is the serialized node type.
type GraphNode struct {
	ID    string `json:"id" bson:"id"`
	Label string `json:"label,omitempty" bson:"label,omitempty"` // Display label (defaults to ID)
	Shape string `json:"shape,omitempty" bson:"shape,omitempty"` // rectangle, round, or diamond
}

// GraphEdge is the serialized edge type.
type GraphEdge struct {
	From  string `json:"from" bson:"from"`
	To    string `json:"to" bson:"to"`
	Arrow string `json:"arrow,omitempty" bson:"arrow,omitempty"`
	Label string `json:"label,omitempty" bson:"label,omitempty"`
}

// FromDocument converts a Document to its serialization format.
// Duplicate node definitions collapse to the first occurrence so the output
// mirrors the renderer's view of the diagram.
func FromDocument(d *Document) Graph {
	g := Graph{
		Type:      d.Type,
		Direction: NormalizeDirection(d.Direction),
	}

	seen := make(map[string]bool)
	for _, n := range d.Nodes() {
		if seen[n.ID] {
			continue
		}
		seen[n.ID] = true
		g.Nodes = append(g.Nodes, GraphNode{ID: n.ID, Label: n.Label, Shape: n.Shape})
	}

	for _, e := range d.Edges() {
		g.Edges = append(g.Edges, GraphEdge{
			From:  e.From,
			To:    e.To,
			Arrow: string(e.Arrow),
			Label: e.Label,
		})
	}

	return g
}

// ToDocument converts a Graph back to a renderable Document.
// Nodes are emitted first, then edges, matching the synthesizer's layout.
func ToDocument(g Graph) Document {
	doc := Document{
		Type:      g.Type,
		Direction: NormalizeDirection(g.Direction),
	}
	if doc.Type == "" {
		doc.Type = TypeGraph
	}

	for _, gn := range g.Nodes {
		node := Node{ID: gn.ID, Label: gn.Label, Shape: gn.Shape}
		doc.Lines = append(doc.Lines, Line{
			Kind: LineNodeDef,
			Text: Indent + node.String(),
			Node: &node,
		})
	}

	for _, ge := range g.Edges {
		edge := Edge{From: ge.From, To: ge.To, Arrow: ArrowKind(ge.Arrow), Label: ge.Label}
		if edge.Arrow == "" {
			edge.Arrow = ArrowSolid
		}
		doc.Lines = append(doc.Lines, Line{
			Kind:  LineEdge,
			Text:  Indent + edge.String(),
			Edges: []Edge{edge},
		})
	}

	return doc
}

// MarshalGraph serializes a Graph to indented JSON.
func MarshalGraph(g Graph) ([]byte, error) {
	return json.MarshalIndent(g, "", "  ")
}

// UnmarshalGraph deserializes JSON bytes to a Graph.
func UnmarshalGraph(data []byte) (Graph, error) {
	var g Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return Graph{}, err
	}
	return g, nil
}
