package sanitize

import (
	"strings"
	"testing"
)

func TestRepairSynthesizesMissingDefinitions(t *testing.T) {
	got := Repair("graph TD\n    B --> C")

	lines := strings.Split(got, "\n")
	if lines[0] != "graph TD" {
		t.Fatalf("header moved: %q", got)
	}

	// Definitions appear immediately after the header, before the edge.
	if !strings.Contains(lines[1], "B[B]") || !strings.Contains(lines[2], "C[C]") {
		t.Errorf("missing definitions not inserted after header: %q", got)
	}
	if !strings.Contains(got, "B --> C") {
		t.Errorf("edge line lost: %q", got)
	}
}

func TestRepairSkipsSentinel(t *testing.T) {
	got := Repair("graph TD\n    A[Start] --> Unknown")
	if strings.Contains(got, "Unknown[Unknown]") {
		t.Errorf("sentinel must not be defined by the repairer: %q", got)
	}
}

func TestRepairSubgraphBalance(t *testing.T) {
	input := "graph TD\n    subgraph One\n    subgraph Two\n    subgraph Three\n    A --> B\n    end"
	got := Repair(input)

	ends := 0
	for _, line := range strings.Split(got, "\n") {
		if strings.TrimSpace(line) == "end" {
			ends++
		}
	}
	if ends != 3 {
		t.Errorf("end count = %d, want 3\n%s", ends, got)
	}
}

func TestRepairKeepsExcessEnds(t *testing.T) {
	input := "graph TD\n    A --> B\n    end\n    end"
	got := Repair(input)
	if strings.Count(got, "end") != 2 {
		t.Errorf("excess end lines must be left alone: %q", got)
	}
}

func TestRepairClassDef(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "missing separator",
			input: "graph TD\n    A --> B\n    classDef primary redfill",
			want:  "classDef primary " + DefaultClassDefStyle,
		},
		{
			name:  "valid style untouched",
			input: "graph TD\n    A --> B\n    classDef primary fill:#ff0000",
			want:  "classDef primary fill:#ff0000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Repair(tt.input)
			if !strings.Contains(got, tt.want) {
				t.Errorf("Repair(%q) = %q, want substring %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRepairBracketBalance(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"missing square close", "graph TD\n    A[Start", "A[Start]"},
		{"missing round close", "graph TD\n    A(Start", "A(Start)"},
		{"missing brace close", "graph TD\n    A{Start", "A{Start}"},
		{"families in order", "graph TD\n    A(One[Two", "A(One[Two)]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Repair(tt.input)
			if !strings.Contains(got, tt.want) {
				t.Errorf("Repair(%q) = %q, want substring %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRepairKeepsExcessClosers(t *testing.T) {
	input := "graph TD\n    A[Start]]"
	got := Repair(input)
	if !strings.Contains(got, "A[Start]]") {
		t.Errorf("excess closers must be left alone: %q", got)
	}
}

func TestRepairEdgeArrowsNotBracketBalanced(t *testing.T) {
	// "-->" contains ">" with no "<"; that surplus closer must not trigger
	// any repair, and "<-->" is already balanced.
	input := "graph TD\n    A --> B\n    C <--> D"
	got := Repair(input)
	if strings.Contains(got, "<>") || strings.Count(got, "<") != 1 {
		t.Errorf("arrow tokens were mangled: %q", got)
	}
}

func TestRepairIdempotent(t *testing.T) {
	inputs := []string{
		"graph TD\n    B --> C",
		"graph TD\n    subgraph One\n    subgraph Two\n    A --> B\n    end",
		"graph TD\n    classDef primary redfill\n    A(Start --> B",
		"graph TD\n    A[Start]] --> B\n    end\n    end",
		"graph TD\n    A --> B",
		MinimalDiagram,
		"random prose, not a diagram",
	}

	for _, input := range inputs {
		once := Repair(input)
		twice := Repair(once)
		if once != twice {
			t.Errorf("Repair not idempotent for %q:\nonce:  %q\ntwice: %q", input, once, twice)
		}
	}
}

func TestRepairSubgraphBalanceInvariant(t *testing.T) {
	inputs := []string{
		"graph TD\n    subgraph A",
		"graph TD\n    subgraph A\n    subgraph B\n    end",
		"graph TD\n    end",
		"graph TD\n    A --> B",
	}

	for _, input := range inputs {
		got := Repair(input)
		subgraphs, ends := 0, 0
		for _, line := range strings.Split(got, "\n") {
			trimmed := strings.TrimSpace(line)
			if strings.HasPrefix(trimmed, "subgraph") {
				subgraphs++
			}
			if trimmed == "end" || trimmed == "end;" {
				ends++
			}
		}
		if subgraphs > ends {
			t.Errorf("Repair(%q): subgraph count %d > end count %d", input, subgraphs, ends)
		}
	}
}
