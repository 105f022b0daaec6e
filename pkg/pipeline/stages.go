package pipeline

import "github.com/mermend/mermend/pkg/sanitize"

// Stage is one sanitizer stage applied to an input, with its output text.
// The inspect surface shows these side by side.
type Stage struct {
	Name   string
	Output string
}

// Stages runs each sanitizer stage on the raw input independently and
// returns the outputs in pipeline order. Later stages include the earlier
// ones, matching what each layer of the pipeline would actually see.
func Stages(raw string) []Stage {
	normalized := sanitize.Normalize(raw)
	return []Stage{
		{Name: "normalize", Output: normalized},
		{Name: "repair", Output: sanitize.Repair(normalized)},
		{Name: "validate", Output: sanitize.Validate(raw)},
		{Name: "synthesize", Output: sanitize.Synthesize(raw)},
		{Name: "strip", Output: sanitize.StripUnsafe(raw)},
	}
}
