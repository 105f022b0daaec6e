package sanitize

import (
	"strings"
	"testing"
)

func TestNormalizeEmptyInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\n", "\t \r\n"} {
		if got := Normalize(input); got != MinimalDiagram {
			t.Errorf("Normalize(%q) = %q, want %q", input, got, MinimalDiagram)
		}
	}
}

func TestNormalizeLineEndings(t *testing.T) {
	got := Normalize("graph TD\r\n    A[Start] --> B[End]\r\n")
	if strings.Contains(got, "\r") {
		t.Errorf("Normalize left carriage returns: %q", got)
	}
}

func TestNormalizeDuplicateHeader(t *testing.T) {
	got := Normalize("graph TD\ngraph TD\n    A --> B")
	if strings.Count(got, "graph TD") != 1 {
		t.Errorf("duplicate header not collapsed: %q", got)
	}

	// Non-identical consecutive headers are not collapsed here; the second
	// one is inert for the renderer.
	got = Normalize("graph TD\ngraph LR\n    A --> B")
	if !strings.Contains(got, "graph LR") {
		t.Errorf("distinct header should survive: %q", got)
	}
}

func TestNormalizeDanglingArrows(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"headed solid, no target", "graph TD\n    A --> ", "A --> Unknown"},
		{"bare solid stem", "graph TD\n    A --", "A --> Unknown"},
		{"bare thick stem", "graph TD\n    A ==", "A ==> Unknown"},
		{"bare dotted stem", "graph TD\n    A -.", "A -.-> Unknown"},
		{"headed thick", "graph TD\n    A ==> ", "A ==> Unknown"},
		{"headed dotted", "graph TD\n    A -.-> ", "A -.-> Unknown"},
		{"open link", "graph TD\n    A --- ", "A --- Unknown"},
		{"semicolon preserved", "graph TD\n    A -->;", "A --> Unknown;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)
			if !strings.Contains(got, tt.want) {
				t.Errorf("Normalize(%q) = %q, want substring %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeCompleteEdgeUntouched(t *testing.T) {
	input := "graph TD\n    A --> B\n    C ==> D"
	got := Normalize(input)
	if strings.Contains(got, "Unknown") {
		t.Errorf("complete edges must not gain a sentinel: %q", got)
	}
}

func TestNormalizeDefineThenReference(t *testing.T) {
	got := Normalize("graph TD\n    A[Start] B --")
	if !strings.Contains(got, "A[Start] --> Unknown") {
		t.Errorf("define-then-reference not collapsed: %q", got)
	}
}

func TestNormalizeHeaderGuarantee(t *testing.T) {
	got := Normalize("A --> B")
	if !strings.HasPrefix(got, "graph TD\n") {
		t.Errorf("missing header not prepended: %q", got)
	}

	// Invalid direction token replaced with TD.
	got = Normalize("graph XY\n    A --> B")
	if !strings.HasPrefix(got, "graph TD") {
		t.Errorf("invalid direction not replaced: %q", got)
	}

	// Valid header rewritten canonically, not duplicated.
	got = Normalize("flowchart LR\n    A --> B")
	if !strings.HasPrefix(got, "flowchart LR") {
		t.Errorf("valid header mangled: %q", got)
	}
	if strings.Contains(got, "graph TD") {
		t.Errorf("header duplicated: %q", got)
	}
}

func TestNormalizeCommentsProtected(t *testing.T) {
	input := "graph TD\n    %% arrows like -- are prose here --\n    A --> B"
	got := Normalize(input)
	if strings.Contains(got, "prose here --> Unknown") {
		t.Errorf("comment line was rewritten: %q", got)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"graph TD\n    A --> ",
		"A --> B",
		"graph TD\r\ngraph TD\r\n    A[Start] B --",
		"prose with no diagram at all",
	}

	for _, input := range inputs {
		once := Normalize(input)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q:\nonce:  %q\ntwice: %q", input, once, twice)
		}
	}
}

func TestStripUnsafe(t *testing.T) {
	got := StripUnsafe("graph TD\n    A[Caf\u00e9 \u2192 caf\u00e9!] --> B @ $5")
	for _, bad := range []string{"\u00e9", "\u2192", "!", "@", "$"} {
		if strings.Contains(got, bad) {
			t.Errorf("StripUnsafe kept %q: %q", bad, got)
		}
	}
	if !strings.Contains(got, "A[Caf  caf] --> B  5") {
		t.Errorf("StripUnsafe mangled structure: %q", got)
	}
}
