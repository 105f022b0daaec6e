package sanitize

import (
	"strings"

	"github.com/mermend/mermend/pkg/diagram"
)

// Extraction holds the symbol tables produced by scanning a document:
// defined nodes with their labels, every referenced node id, and the ordered
// edge list. Extraction is deterministic; identical input yields identical
// tables.
type Extraction struct {
	Defined      map[string]diagram.Node
	DefinedOrder []string
	Referenced   []string // distinct edge endpoints, in first-use order
	Edges        []diagram.Edge
}

// Extract scans normalized text line by line and builds the symbol tables.
// Comment, header, subgraph, end, and classDef lines are skipped; node
// definitions inlined on edge lines are collected like standalone ones.
func Extract(text string) *Extraction {
	ext := &Extraction{Defined: make(map[string]diagram.Node)}
	referenced := make(map[string]bool)

	for _, raw := range strings.Split(text, "\n") {
		line := diagram.ClassifyLine(raw)
		switch line.Kind {
		case diagram.LineBlank, diagram.LineComment, diagram.LineHeader,
			diagram.LineSubgraph, diagram.LineEnd, diagram.LineClassDef:
			continue
		}

		for _, n := range diagram.ExtractNodeDefs(raw) {
			if _, ok := ext.Defined[n.ID]; !ok {
				ext.Defined[n.ID] = n
				ext.DefinedOrder = append(ext.DefinedOrder, n.ID)
			}
		}

		for _, e := range diagram.ParseEdges(raw) {
			ext.Edges = append(ext.Edges, e)
			for _, id := range []string{e.From, e.To} {
				if !referenced[id] {
					referenced[id] = true
					ext.Referenced = append(ext.Referenced, id)
				}
			}
		}
	}

	return ext
}

// Missing returns referenced node ids with no definition, in reference
// order. The sentinel node is excluded; the validator defines it at the
// point of use instead.
func (e *Extraction) Missing() []string {
	var missing []string
	for _, id := range e.Referenced {
		if id == diagram.SentinelNode {
			continue
		}
		if _, ok := e.Defined[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}
