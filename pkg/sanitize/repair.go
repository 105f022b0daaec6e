package sanitize

import (
	"strings"

	"github.com/mermend/mermend/pkg/diagram"
)

// DefaultClassDefStyle replaces classDef bodies with no key:value separator.
const DefaultClassDefStyle = "fill:#f9f9f9,stroke:#666,stroke-width:1px"

// bracketFamilies lists the bracket pairs balanced per line, in the order
// missing closers are appended.
var bracketFamilies = []struct {
	Open  rune
	Close rune
}{
	{'(', ')'},
	{'[', ']'},
	{'{', '}'},
	{'<', '>'},
}

// Repair applies the structural fixes that make a normalized document
// acceptable to the grammar:
//
//   - a synthesized NodeId[NodeId] definition for every referenced node that
//     was never defined, inserted before the first non-header line
//   - end lines appended when subgraph blocks outnumber them
//   - classDef bodies without a ":" separator rewritten to a default style
//   - missing closing brackets appended per line
//
// Repair is idempotent: Repair(Repair(x)) == Repair(x).
func Repair(text string) string {
	text = synthesizeMissingDefinitions(text)
	text = balanceSubgraphs(text)
	text = fixClassDefs(text)
	text = balanceBrackets(text)
	return text
}

// synthesizeMissingDefinitions inserts NodeId[NodeId] lines for referenced
// but undefined nodes, preserving header order.
func synthesizeMissingDefinitions(text string) string {
	missing := Extract(text).Missing()
	if len(missing) == 0 {
		return text
	}

	lines := strings.Split(text, "\n")
	insertAt := len(lines)
	for i, line := range lines {
		if !diagram.IsHeader(line) {
			insertAt = i
			break
		}
	}

	defs := make([]string, len(missing))
	for i, id := range missing {
		defs[i] = diagram.Indent + id + "[" + id + "]"
	}

	out := make([]string, 0, len(lines)+len(defs))
	out = append(out, lines[:insertAt]...)
	out = append(out, defs...)
	out = append(out, lines[insertAt:]...)
	return strings.Join(out, "\n")
}

// balanceSubgraphs appends end lines equal to the subgraph/end deficit.
// Excess end lines are left alone.
func balanceSubgraphs(text string) string {
	subgraphs, ends := 0, 0
	for _, raw := range strings.Split(text, "\n") {
		switch diagram.ClassifyLine(raw).Kind {
		case diagram.LineSubgraph:
			subgraphs++
		case diagram.LineEnd:
			ends++
		}
	}

	for ; ends < subgraphs; ends++ {
		text += "\nend"
	}
	return text
}

// fixClassDefs rewrites classDef lines whose style text has no ":" separator
// to a default style the grammar accepts.
func fixClassDefs(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "classDef") {
			continue
		}
		fields := strings.Fields(trimmed)
		if len(fields) < 2 {
			continue
		}
		style := strings.Join(fields[2:], " ")
		if strings.Contains(style, ":") {
			continue
		}
		indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		lines[i] = indent + "classDef " + fields[1] + " " + DefaultClassDefStyle
	}
	return strings.Join(lines, "\n")
}

// balanceBrackets appends missing closing brackets per line, family by
// family. Excess closers are left alone.
func balanceBrackets(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if diagram.IsHeader(line) || strings.HasPrefix(strings.TrimSpace(line), "%%") {
			continue
		}

		var missing strings.Builder
		for _, fam := range bracketFamilies {
			opens := strings.Count(line, string(fam.Open))
			closes := strings.Count(line, string(fam.Close))
			for ; closes < opens; closes++ {
				missing.WriteRune(fam.Close)
			}
		}
		if missing.Len() > 0 {
			lines[i] = line + missing.String()
		}
	}
	return strings.Join(lines, "\n")
}
